package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/ui"
)

var siftCmd = &cobra.Command{
	Use:   "sift <series> <modulus> <residue>",
	Short: "Extract an arithmetic progression of coefficients",
	Long: "sift keeps the coefficients of q^(m*k+j) and reindexes them as a series\n" +
		"in q^k, the standard first move when hunting Ramanujan-type congruences.",
	Args: cobra.ExactArgs(3),
	RunE: runSift,
}

func init() {
	rootCmd.AddCommand(siftCmd)
}

func runSift(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}
	m, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("modulus: %w", err)
	}
	j, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("residue: %w", err)
	}

	sifted, err := f.Sift(m, j)
	if err != nil {
		return err
	}

	out := ui.FormatSeries(sifted)
	printer.Result(out)
	recordResult(cfg, printer, "sift", fmt.Sprintf("%s %d %d", args[0], m, j), out)
	return nil
}
