package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/ui"
)

var expandCmd = &cobra.Command{
	Use:   "expand <series>",
	Short: "Print the q-expansion of a series",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}

	out := ui.FormatSeries(f)
	printer.Result(out)
	recordResult(cfg, printer, "expand", args[0], out)
	return nil
}
