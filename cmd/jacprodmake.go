package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/ui"
)

var jacprodmakeCmd = &cobra.Command{
	Use:   "jacprodmake <series>",
	Short: "Recover a Jacobi triple product form prod JAC(a,b)^e",
	Args:  cobra.ExactArgs(1),
	RunE:  runJacprodmake,
}

func init() {
	jacprodmakeCmd.Flags().Int64("period", 0, "restrict the fit to periods dividing this value")

	rootCmd.AddCommand(jacprodmakeCmd)
}

func runJacprodmake(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}

	var form qseries.JacProductForm
	if pp, _ := cmd.Flags().GetInt64("period"); pp > 0 {
		form, err = qseries.JacprodmakeWithPeriod(f, cfg.Trunc-1, pp)
	} else {
		form, err = qseries.Jacprodmake(f, cfg.Trunc-1)
	}
	if err != nil {
		return err
	}

	out := ui.FormatJacProduct(form)
	printer.Result(out)
	recordResult(cfg, printer, "jacprodmake", args[0], out)
	return nil
}
