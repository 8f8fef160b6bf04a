package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/discovery"
	"github.com/papapumpkin/qsq/internal/ui"
)

var findlincomboCmd = &cobra.Command{
	Use:   "findlincombo <target> <basis>...",
	Short: "Express a series as a rational linear combination of others",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFindlincombo,
}

var findhomCmd = &cobra.Command{
	Use:   "findhom <series>...",
	Short: "Search for a homogeneous polynomial relation among series",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFindhom,
}

var findpolyCmd = &cobra.Command{
	Use:   "findpoly <x> <y>",
	Short: "Search for a bivariate polynomial relation P(x,y) = 0",
	Args:  cobra.ExactArgs(2),
	RunE:  runFindpoly,
}

func init() {
	findlincomboCmd.Flags().Int64("topshift", 10, "extra verification rows beyond the unknown count")

	findhomCmd.Flags().Int64("degree", 2, "homogeneous degree of the candidate monomials")
	findhomCmd.Flags().Int64("topshift", 10, "extra verification rows beyond the unknown count")
	findhomCmd.Flags().Bool("nonhom", false, "include all monomials of degree 0 up to --degree")

	findpolyCmd.Flags().Int64("deg-x", 2, "maximum degree in x")
	findpolyCmd.Flags().Int64("deg-y", 2, "maximum degree in y")
	findpolyCmd.Flags().Int64("topshift", 10, "extra verification rows beyond the unknown count")

	rootCmd.AddCommand(findlincomboCmd)
	rootCmd.AddCommand(findhomCmd)
	rootCmd.AddCommand(findpolyCmd)
}

func runFindlincombo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	target, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}
	basisList := args[1:]
	parsed, err := parseSeriesList(basisList, cfg.Trunc)
	if err != nil {
		return err
	}

	topshift, _ := cmd.Flags().GetInt64("topshift")
	coeffs, err := discovery.Findlincombo(target, parsed, topshift)
	if err != nil {
		return err
	}

	var parts []string
	for i, c := range coeffs {
		if c.Sign() == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("(%s)*%s", c.RatString(), basisList[i]))
	}
	out := args[0] + " = " + strings.Join(parts, " + ")
	printer.Result(out)
	recordResult(cfg, printer, "findlincombo", strings.Join(args, " "), out)
	return nil
}

func runFindhom(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	fs, err := parseSeriesList(args, cfg.Trunc)
	if err != nil {
		return err
	}
	degree, _ := cmd.Flags().GetInt64("degree")
	topshift, _ := cmd.Flags().GetInt64("topshift")
	nonhom, _ := cmd.Flags().GetBool("nonhom")

	var rel discovery.HomRelation
	if nonhom {
		rel, err = discovery.Findnonhom(fs, degree, topshift)
	} else {
		rel, err = discovery.Findhom(fs, degree, topshift)
	}
	if err != nil {
		return err
	}

	out := formatHomRelation(rel, args)
	printer.Result(out)
	recordResult(cfg, printer, "findhom", strings.Join(args, " "), out)
	return nil
}

func runFindpoly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	x, err := parseSeries(args[0], cfg.Trunc)
	if err != nil {
		return err
	}
	y, err := parseSeries(args[1], cfg.Trunc)
	if err != nil {
		return err
	}
	degX, _ := cmd.Flags().GetInt64("deg-x")
	degY, _ := cmd.Flags().GetInt64("deg-y")
	topshift, _ := cmd.Flags().GetInt64("topshift")

	rel, err := discovery.Findpoly(x, y, degX, degY, topshift)
	if err != nil {
		return err
	}

	var parts []string
	for i, row := range rel.Coefficients {
		for j, c := range row {
			if c == nil || c.Sign() == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("(%s)*x^%d*y^%d", c.RatString(), i, j))
		}
	}
	out := strings.Join(parts, " + ") + " = 0"
	printer.Result(out)
	recordResult(cfg, printer, "findpoly", strings.Join(args, " "), out)
	return nil
}

// formatHomRelation renders sum c_i * prod f_j^(m_ij) = 0 with the
// CLI series specs standing in for the f_j.
func formatHomRelation(rel discovery.HomRelation, names []string) string {
	var parts []string
	for i, m := range rel.Monomials {
		c := rel.Coefficients[i]
		if c == nil || c.Sign() == 0 {
			continue
		}
		term := "(" + c.RatString() + ")"
		for j, e := range m {
			if e == 0 {
				continue
			}
			if e == 1 {
				term += "*" + names[j]
			} else {
				term += fmt.Sprintf("*%s^%d", names[j], e)
			}
		}
		parts = append(parts, term)
	}
	if len(parts) == 0 {
		return "0 = 0"
	}
	return strings.Join(parts, " + ") + " = 0"
}
