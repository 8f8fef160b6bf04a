package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/discovery"
	"github.com/papapumpkin/qsq/internal/ui"
)

var findprodCmd = &cobra.Command{
	Use:   "findprod <series>",
	Short: "Search for a finite product matching the series",
	Long: "findprod scans exponent vectors e with |e_k| <= max-exponent and\n" +
		"k <= max-degree for prod (1-q^k)^(e_k) matching the series.",
	Args: cobra.ExactArgs(1),
	RunE: runFindprod,
}

func init() {
	findprodCmd.Flags().Int64("max-degree", 0, "largest k tried in (1-q^k) (default from config)")
	findprodCmd.Flags().Int64("max-exponent", 0, "largest |e_k| tried (default from config)")

	rootCmd.AddCommand(findprodCmd)
}

func runFindprod(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}

	maxDeg := cfg.FindprodMaxDegree
	if v, _ := cmd.Flags().GetInt64("max-degree"); v > 0 {
		maxDeg = v
	}
	maxExp := cfg.FindprodMaxExponent
	if v, _ := cmd.Flags().GetInt64("max-exponent"); v > 0 {
		maxExp = v
	}

	exps, err := discovery.Findprod(f, maxDeg, maxExp, cfg.Trunc)
	if err != nil {
		return err
	}

	var parts []string
	for i, e := range exps {
		if e == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("(1-q^%d)^%d", i+1, e))
	}
	out := "1"
	if len(parts) > 0 {
		out = strings.Join(parts, " * ")
	}
	printer.Result(out)
	recordResult(cfg, printer, "findprod", args[0], out)
	return nil
}
