package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/ui"
)

var etamakeCmd = &cobra.Command{
	Use:   "etamake <series>",
	Short: "Recover an eta-quotient form prod eta(d*tau)^(r_d)",
	Args:  cobra.ExactArgs(1),
	RunE:  runEtamake,
}

func init() {
	etamakeCmd.Flags().Bool("no-shift", false, "drop the fractional q^s prefactor (qetamake form)")

	rootCmd.AddCommand(etamakeCmd)
}

func runEtamake(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}

	var quotient qseries.EtaQuotient
	if noShift, _ := cmd.Flags().GetBool("no-shift"); noShift {
		quotient, err = qseries.Qetamake(f, cfg.Trunc-1)
	} else {
		quotient, err = qseries.Etamake(f, cfg.Trunc-1)
	}
	if err != nil {
		return err
	}

	out := ui.FormatEta(quotient)
	printer.Result(out)
	recordResult(cfg, printer, "etamake", args[0], out)
	return nil
}
