package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/ui"
)

var prodmakeCmd = &cobra.Command{
	Use:   "prodmake <series>",
	Short: "Recover the infinite product form prod (1-q^n)^(-a_n)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProdmake,
}

func init() {
	rootCmd.AddCommand(prodmakeCmd)
}

func runProdmake(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}

	product, err := qseries.Prodmake(f, cfg.Trunc-1)
	if err != nil {
		return err
	}

	out := ui.FormatProduct(product)
	printer.Result(out)
	recordResult(cfg, printer, "prodmake", args[0], out)
	return nil
}
