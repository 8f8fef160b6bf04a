package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/prove"
	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/ui"
)

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Find and certify recurrences for basic hypergeometric sums",
	Long: "prove runs q-Zeilberger creative telescoping on a terminating\n" +
		"rphis sum S(n) and checks the resulting recurrence with its WZ\n" +
		"certificate. Parameters are coefficient-times-q-power terms; an\n" +
		"upper parameter q^-n marks the summation bound.",
	RunE: runProve,
}

func init() {
	proveCmd.Flags().String("upper", "", "comma-separated upper parameters at the test value of n")
	proveCmd.Flags().String("lower", "", "comma-separated lower parameters (the implicit (q;q)_k is not listed)")
	proveCmd.Flags().String("arg", "q", "series argument z")
	proveCmd.Flags().String("q", "1/3", "rational evaluation point for q")
	proveCmd.Flags().Int64("n", 0, "test value of n used to detect n-dependent parameters")
	proveCmd.Flags().Int("max-order", 0, "largest recurrence order tried (default from config)")
	proveCmd.Flags().Int("verify-terms", 12, "k range for the WZ certificate check")

	rootCmd.AddCommand(proveCmd)
}

func runProve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	upperFlag, _ := cmd.Flags().GetString("upper")
	upper, err := parseQMonomialList(upperFlag)
	if err != nil {
		return fmt.Errorf("--upper: %w", err)
	}
	lowerFlag, _ := cmd.Flags().GetString("lower")
	lower, err := parseQMonomialList(lowerFlag)
	if err != nil {
		return fmt.Errorf("--lower: %w", err)
	}
	argFlag, _ := cmd.Flags().GetString("arg")
	argument, err := parseQMonomial(argFlag)
	if err != nil {
		return fmt.Errorf("--arg: %w", err)
	}
	qFlag, _ := cmd.Flags().GetString("q")
	qv, err := parseRat(qFlag)
	if err != nil {
		return fmt.Errorf("--q: %w", err)
	}

	h := qseries.Hypergeometric{Upper: upper, Lower: lower, Argument: argument}

	nVal, _ := cmd.Flags().GetInt64("n")
	if nVal == 0 {
		if order, ok := h.TerminationOrder(); ok {
			nVal = order
		}
	}
	nParams, nInArgument := prove.DetectNParams(h, nVal, qv)
	if len(nParams) == 0 {
		return fmt.Errorf("no upper parameter equals q^-%d; pass --n or a terminating series", nVal)
	}
	printer.Debug(fmt.Sprintf("n-dependent upper parameters: %v, argument depends on n: %v", nParams, nInArgument))

	maxOrder := cfg.ZeilbergerMaxOrder
	if v, _ := cmd.Flags().GetInt("max-order"); v > 0 {
		maxOrder = v
	}

	result, err := prove.QZeilberger(h, qv, maxOrder, nParams, nInArgument)
	if err != nil {
		return err
	}

	out := ui.FormatRecurrence(result.Coefficients)
	printer.Result(out)

	verifyTerms, _ := cmd.Flags().GetInt("verify-terms")
	if err := prove.VerifyWZ(h, qv, result.Coefficients, result.Certificate, nParams, nInArgument, verifyTerms); err != nil {
		return fmt.Errorf("certificate check: %w", err)
	}
	printer.Info(fmt.Sprintf("WZ certificate verified for k <= %d", verifyTerms))

	input := fmt.Sprintf("upper=%s lower=%s arg=%s q=%s", upperFlag, lowerFlag, argFlag, qFlag)
	recordResult(cfg, printer, "prove", input, out)
	return nil
}
