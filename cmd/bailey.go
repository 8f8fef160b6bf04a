package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/bailey"
	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/ui"
)

var baileyCmd = &cobra.Command{
	Use:   "bailey",
	Short: "Work with the Bailey pair catalog and chains",
}

var baileyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog pairs, optionally filtered by tag or name",
	Args:  cobra.NoArgs,
	RunE:  runBaileyList,
}

var baileyVerifyCmd = &cobra.Command{
	Use:   "verify <pair>",
	Short: "Check a pair against the defining Bailey relation",
	Args:  cobra.ExactArgs(1),
	RunE:  runBaileyVerify,
}

var baileyChainCmd = &cobra.Command{
	Use:   "chain <pair>",
	Short: "Iterate the Bailey lemma and print each weak-lemma series",
	Args:  cobra.ExactArgs(1),
	RunE:  runBaileyChain,
}

var baileyDiscoverCmd = &cobra.Command{
	Use:   "discover <series>",
	Short: "Match a series against weak-lemma sums of catalog pairs",
	Args:  cobra.ExactArgs(1),
	RunE:  runBaileyDiscover,
}

func init() {
	baileyListCmd.Flags().String("tag", "", "filter by tag")
	baileyListCmd.Flags().String("name", "", "filter by name substring")

	baileyVerifyCmd.Flags().String("a", "1", "Bailey parameter a (e.g. 1, q, 2*q^3)")

	baileyChainCmd.Flags().String("a", "1", "Bailey parameter a")
	baileyChainCmd.Flags().String("b", "", "lemma parameter b (empty means the b->inf limit)")
	baileyChainCmd.Flags().String("c", "", "lemma parameter c (empty means the c->inf limit)")
	baileyChainCmd.Flags().Int("depth", 0, "number of lemma iterations (default from config)")

	baileyCmd.AddCommand(baileyListCmd)
	baileyCmd.AddCommand(baileyVerifyCmd)
	baileyCmd.AddCommand(baileyChainCmd)
	baileyCmd.AddCommand(baileyDiscoverCmd)
	rootCmd.AddCommand(baileyCmd)
}

// findPair resolves a catalog pair by exact-ish name match.
func findPair(cat *bailey.Catalog, name string) (*bailey.Pair, error) {
	matches := cat.ByName(name)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no catalog pair matches %q", name)
	}
	for _, p := range matches {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	if len(matches) > 1 {
		var names []string
		for _, p := range matches {
			names = append(names, p.Name)
		}
		return nil, fmt.Errorf("pair %q is ambiguous: %s", name, strings.Join(names, ", "))
	}
	return matches[0], nil
}

// lemmaParam parses an optional finite lemma parameter; an empty flag
// selects the infinite limit.
func lemmaParam(cmd *cobra.Command, flag string) (*qseries.QMonomial, error) {
	s, _ := cmd.Flags().GetString(flag)
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	m, err := parseQMonomial(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return &m, nil
}

func runBaileyList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	cat, err := bailey.LoadCatalog()
	if err != nil {
		return err
	}

	pairs := cat.Pairs()
	if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
		pairs = cat.ByTag(tag)
	}
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		pairs = cat.ByName(name)
	}

	for _, p := range pairs {
		printer.Result(fmt.Sprintf("%-20s %-12s %s", p.Name, p.Kind, strings.Join(p.Tags, ",")))
	}
	return nil
}

func runBaileyVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	cat, err := bailey.LoadCatalog()
	if err != nil {
		return err
	}
	pair, err := findPair(cat, args[0])
	if err != nil {
		return err
	}

	aFlag, _ := cmd.Flags().GetString("a")
	a, err := parseQMonomial(aFlag)
	if err != nil {
		return fmt.Errorf("--a: %w", err)
	}

	ok, err := bailey.Verify(pair, a, cfg.BaileyMaxN, cfg.Trunc)
	if err != nil {
		return err
	}

	out := strconv.FormatBool(ok)
	printer.Result(out)
	recordResult(cfg, printer, "bailey verify", fmt.Sprintf("%s a=%s", pair.Name, aFlag), out)
	return nil
}

func runBaileyChain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	cat, err := bailey.LoadCatalog()
	if err != nil {
		return err
	}
	pair, err := findPair(cat, args[0])
	if err != nil {
		return err
	}

	aFlag, _ := cmd.Flags().GetString("a")
	a, err := parseQMonomial(aFlag)
	if err != nil {
		return fmt.Errorf("--a: %w", err)
	}
	b, err := lemmaParam(cmd, "b")
	if err != nil {
		return err
	}
	c, err := lemmaParam(cmd, "c")
	if err != nil {
		return err
	}

	depth := cfg.BaileyDepth
	if v, _ := cmd.Flags().GetInt("depth"); v > 0 {
		depth = v
	}

	chain, err := bailey.Chain(pair, a, b, c, depth, cfg.BaileyMaxN, cfg.Trunc)
	if err != nil {
		return err
	}

	var last string
	for i, p := range chain {
		lhs, _, err := bailey.WeakLemma(p, a, cfg.BaileyMaxN, cfg.Trunc)
		if err != nil {
			return err
		}
		last = ui.FormatSeries(lhs)
		printer.Result(fmt.Sprintf("step %d: %s", i, last))
	}
	recordResult(cfg, printer, "bailey chain", fmt.Sprintf("%s depth=%d", pair.Name, depth), last)
	return nil
}

func runBaileyDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	f, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}

	cat, err := bailey.LoadCatalog()
	if err != nil {
		return err
	}
	pair, err := cat.Discover(f)
	if err != nil {
		return err
	}

	printer.Result(pair.Name)
	recordResult(cfg, printer, "bailey discover", args[0], pair.Name)
	return nil
}
