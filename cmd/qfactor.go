package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/ui"
)

var qfactorCmd = &cobra.Command{
	Use:   "qfactor <series>",
	Short: "Factor a q-polynomial into (1-q^i) pieces",
	Args:  cobra.ExactArgs(1),
	RunE:  runQfactor,
}

func init() {
	rootCmd.AddCommand(qfactorCmd)
}

func runQfactor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}

	factorization, err := qseries.Qfactor(f)
	if err != nil {
		return err
	}

	out := ui.FormatFactorization(factorization)
	printer.Result(out)
	recordResult(cfg, printer, "qfactor", args[0], out)
	return nil
}
