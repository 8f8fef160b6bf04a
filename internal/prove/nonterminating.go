package prove

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

// ErrProofFailed means a Chen-Hou-Mu nonterminating proof attempt did
// not go through; the wrapping error carries the failing step.
var ErrProofFailed = errors.New("prove: proof failed")

// NonterminatingProof records a successful Chen-Hou-Mu proof: both
// sides satisfy the recurrence and the initial conditions match.
type NonterminatingProof struct {
	RecurrenceOrder          int
	RecurrenceCoefficients   []*big.Rat
	InitialConditionsChecked int
}

// CheckRecurrenceOnValues reports whether the scalar sequence
// f(n), ..., f(n+d) satisfies c_0 f(n) + ... + c_d f(n+d) = 0.
func CheckRecurrenceOnValues(values, coefficients []*big.Rat) bool {
	if len(values) != len(coefficients) {
		return false
	}
	sum := new(big.Rat)
	for j := range values {
		sum.Add(sum, new(big.Rat).Mul(coefficients[j], values[j]))
	}
	return sum.Sign() == 0
}

// CheckRecurrenceOnSeries reports whether the truncated-series
// sequence f(n), ..., f(n+d) satisfies the same linear recurrence as a
// series identity.
func CheckRecurrenceOnSeries(values []*series.Series, coefficients []*big.Rat) bool {
	if len(values) != len(coefficients) || len(values) == 0 {
		return false
	}
	result := values[0].Scale(coefficients[0])
	for j := 1; j < len(values); j++ {
		result = result.Add(values[j].Scale(coefficients[j]))
	}
	return result.IsZero()
}

// ProveNonterminating proves a nonterminating q-hypergeometric
// identity by the Chen-Hou-Mu parameter specialization method. The
// caller supplies terminating specializations of both sides: lhs(n)
// must build a terminating series (a parameter specialized to q^{-n})
// and rhs(n) its claimed closed-form value at concrete q. The proof
// finds a recurrence for the left side by creative telescoping at
// nTest, checks the right side satisfies the same recurrence at nearby
// n values, and compares the first order+1 initial conditions.
func ProveNonterminating(lhs func(int64) qseries.Hypergeometric, rhs func(int64) *big.Rat, qv *big.Rat, nTest int64, maxOrder int) (*NonterminatingProof, error) {
	lhsSeries := lhs(nTest)
	if _, ok := lhsSeries.TerminationOrder(); !ok {
		return nil, fmt.Errorf("%w: left side at n=%d is not terminating", ErrProofFailed, nTest)
	}

	indices, inArg := DetectNParams(lhsSeries, nTest, qv)
	zr, err := QZeilberger(lhsSeries, qv, maxOrder, indices, inArg)
	if err != nil {
		return nil, fmt.Errorf("%w: no recurrence for left side up to order %d", ErrProofFailed, maxOrder)
	}
	d := zr.Order

	// The recurrence coefficients at concrete q are n-specific, so
	// re-derive at each verification point before checking the right
	// side against them.
	verifyAt := []int64{nTest}
	if nTest >= 2 {
		verifyAt = []int64{nTest - 2, nTest - 1, nTest}
	}
	for _, nv := range verifyAt {
		lhsAt := lhs(nv)
		if _, ok := lhsAt.TerminationOrder(); !ok {
			continue
		}
		nvIndices, nvInArg := DetectNParams(lhsAt, nv, qv)
		zrNv, err := QZeilberger(lhsAt, qv, maxOrder, nvIndices, nvInArg)
		if err != nil {
			continue
		}

		rhsVals := make([]*big.Rat, 0, zrNv.Order+1)
		for j := int64(0); j <= int64(zrNv.Order); j++ {
			rhsVals = append(rhsVals, rhs(nv+j))
		}
		if !CheckRecurrenceOnValues(rhsVals, zrNv.Coefficients) {
			return nil, fmt.Errorf("%w: right side violates the recurrence at n=%d", ErrProofFailed, nv)
		}
	}

	for n := int64(0); n <= int64(d); n++ {
		if computeSumAtN(lhs(n), qv).Cmp(rhs(n)) != 0 {
			return nil, fmt.Errorf("%w: initial condition mismatch at n=%d", ErrProofFailed, n)
		}
	}

	return &NonterminatingProof{
		RecurrenceOrder:          d,
		RecurrenceCoefficients:   zr.Coefficients,
		InitialConditionsChecked: d + 1,
	}, nil
}
