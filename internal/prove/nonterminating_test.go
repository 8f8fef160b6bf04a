package prove

import (
	"errors"
	"math/big"
	"testing"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

// pochhammerScalar evaluates (a;q)_n at concrete q.
func pochhammerScalar(a, qv *big.Rat, n int64) *big.Rat {
	result := big.NewRat(1, 1)
	for k := int64(0); k < n; k++ {
		factor := new(big.Rat).Mul(a, series.RatPow(qv, k))
		factor.Sub(big.NewRat(1, 1), factor)
		result.Mul(result, factor)
	}
	return result
}

// vandermondeRHS is (c/a;q)_n / (c;q)_n with a = q^2, c = q^3, the
// closed form of the q-Vandermonde sum.
func vandermondeRHS(qv *big.Rat) func(int64) *big.Rat {
	cVal := series.RatPow(qv, 3)
	cOverA := series.RatPow(qv, 1)
	return func(n int64) *big.Rat {
		if n == 0 {
			return big.NewRat(1, 1)
		}
		return new(big.Rat).Quo(
			pochhammerScalar(cOverA, qv, n),
			pochhammerScalar(cVal, qv, n),
		)
	}
}

func TestProveQVandermonde(t *testing.T) {
	qv := qr(1, 2)

	proof, err := ProveNonterminating(makeVandermonde, vandermondeRHS(qv), qv, 8, 2)
	if err != nil {
		t.Fatalf("ProveNonterminating: %v", err)
	}
	if proof.RecurrenceOrder < 1 {
		t.Fatalf("recurrence order = %d, want >= 1", proof.RecurrenceOrder)
	}
	if proof.InitialConditionsChecked != proof.RecurrenceOrder+1 {
		t.Fatalf("initial conditions checked = %d, want %d",
			proof.InitialConditionsChecked, proof.RecurrenceOrder+1)
	}
	if len(proof.RecurrenceCoefficients) != proof.RecurrenceOrder+1 {
		t.Fatalf("coefficient count = %d", len(proof.RecurrenceCoefficients))
	}
}

func TestProveFailsWrongRHS(t *testing.T) {
	qv := qr(1, 2)
	correct := vandermondeRHS(qv)
	wrong := func(n int64) *big.Rat {
		return new(big.Rat).Mul(correct(n), qr(2, 1))
	}

	_, err := ProveNonterminating(makeVandermonde, wrong, qv, 8, 2)
	if !errors.Is(err, ErrProofFailed) {
		t.Fatalf("err = %v, want ErrProofFailed", err)
	}
}

func TestProvePerturbedInitialCondition(t *testing.T) {
	qv := qr(1, 2)
	correct := vandermondeRHS(qv)
	perturbed := func(n int64) *big.Rat {
		if n == 0 {
			return big.NewRat(1, 1)
		}
		return new(big.Rat).Add(correct(n), qr(1, 1000))
	}

	_, err := ProveNonterminating(makeVandermonde, perturbed, qv, 8, 2)
	if !errors.Is(err, ErrProofFailed) {
		t.Fatalf("err = %v, want ErrProofFailed", err)
	}
}

func TestProveFailsNonterminatingLHS(t *testing.T) {
	qv := qr(1, 2)
	lhs := func(int64) qseries.Hypergeometric {
		return qseries.Hypergeometric{
			Upper:    []qseries.QMonomial{qseries.QPower(2), qseries.QPower(3)},
			Lower:    []qseries.QMonomial{qseries.QPower(5)},
			Argument: qseries.QPower(1),
		}
	}
	rhs := func(int64) *big.Rat { return big.NewRat(1, 1) }

	_, err := ProveNonterminating(lhs, rhs, qv, 8, 2)
	if !errors.Is(err, ErrProofFailed) {
		t.Fatalf("err = %v, want ErrProofFailed", err)
	}
}

func TestCheckRecurrenceOnValues(t *testing.T) {
	// f(n+1) = 3 f(n), so 3 f(n) - f(n+1) = 0.
	coeffs := []*big.Rat{qr(3, 1), qr(-1, 1)}

	if !CheckRecurrenceOnValues([]*big.Rat{qr(1, 1), qr(3, 1)}, coeffs) {
		t.Fatal("1, 3 should satisfy 3f(n) - f(n+1) = 0")
	}
	if CheckRecurrenceOnValues([]*big.Rat{qr(1, 1), qr(2, 1)}, coeffs) {
		t.Fatal("1, 2 should not satisfy the recurrence")
	}
}

func TestCheckRecurrenceOnSeries(t *testing.T) {
	const trunc = 10
	f0 := series.One(trunc)
	f1 := series.One(trunc).Scale(qr(2, 1))
	coeffs := []*big.Rat{qr(2, 1), qr(-1, 1)}

	if !CheckRecurrenceOnSeries([]*series.Series{f0, f1}, coeffs) {
		t.Fatal("constant series 1, 2 should satisfy 2f(n) - f(n+1) = 0")
	}
	if CheckRecurrenceOnSeries([]*series.Series{f1, f0}, coeffs) {
		t.Fatal("reversed sequence should fail")
	}
}
