package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/discovery"
	"github.com/papapumpkin/qsq/internal/ui"
)

var checkmultCmd = &cobra.Command{
	Use:   "checkmult <series>",
	Short: "Test whether the coefficient sequence is multiplicative",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckmult,
}

var checkprodCmd = &cobra.Command{
	Use:   "checkprod <series> <exponents>",
	Short: "Test the series against a finite product hypothesis",
	Long: "checkprod expands prod (1-q^k)^(e_k) from the given comma-separated\n" +
		"exponent vector and compares it with the series up to truncation.",
	Args: cobra.ExactArgs(2),
	RunE: runCheckprod,
}

func init() {
	checkmultCmd.Flags().Int64("start", 1, "first index assumed normalized to 1")

	rootCmd.AddCommand(checkmultCmd)
	rootCmd.AddCommand(checkprodCmd)
}

func runCheckmult(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}
	start, _ := cmd.Flags().GetInt64("start")

	out := strconv.FormatBool(discovery.Checkmult(f, start))
	printer.Result(out)
	recordResult(cfg, printer, "checkmult", args[0], out)
	return nil
}

func runCheckprod(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}
	exps, err := parseInt64List(args[1])
	if err != nil {
		return fmt.Errorf("exponents: %w", err)
	}

	out := strconv.FormatBool(discovery.Checkprod(f, exps, cfg.Trunc))
	printer.Result(out)
	recordResult(cfg, printer, "checkprod", fmt.Sprintf("%s %s", args[0], args[1]), out)
	return nil
}
