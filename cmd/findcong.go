package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/discovery"
	"github.com/papapumpkin/qsq/internal/ui"
)

var findcongCmd = &cobra.Command{
	Use:   "findcong <series>",
	Short: "Search for Ramanujan-type congruences a(m*n+r) = 0 mod c",
	Args:  cobra.ExactArgs(1),
	RunE:  runFindcong,
}

func init() {
	findcongCmd.Flags().String("moduli", "", "comma-separated progression moduli to scan (default from config)")
	findcongCmd.Flags().String("mod", "", "comma-separated congruence moduli c (default: same as progression moduli)")

	rootCmd.AddCommand(findcongCmd)
}

func runFindcong(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}

	moduli := cfg.FindcongModuli
	if s, _ := cmd.Flags().GetString("moduli"); s != "" {
		moduli, err = parseInt64List(s)
		if err != nil {
			return err
		}
	}

	var congs []discovery.Congruence
	if s, _ := cmd.Flags().GetString("mod"); s != "" {
		congMods, err := parseInt64List(s)
		if err != nil {
			return err
		}
		congs = discovery.FindcongMod(f, moduli, congMods)
	} else {
		congs = discovery.Findcong(f, moduli)
	}

	if len(congs) == 0 {
		printer.Info("no congruences found")
		return nil
	}

	var lines []string
	for _, c := range congs {
		lines = append(lines, c.String())
		printer.Result(c.String())
	}
	recordResult(cfg, printer, "findcong", args[0], strings.Join(lines, "; "))
	return nil
}
