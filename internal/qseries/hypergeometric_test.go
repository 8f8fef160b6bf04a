package qseries

import (
	"errors"
	"testing"

	"github.com/papapumpkin/qsq/internal/series"
)

func TestTerminationOrder(t *testing.T) {
	h := Hypergeometric{
		Upper: []QMonomial{QPower(-5), QPower(2), QPower(-3)},
		Lower: []QMonomial{QPower(1)},
	}
	if n, ok := h.TerminationOrder(); !ok || n != 3 {
		t.Fatalf("TerminationOrder = %d, %v; want 3, true", n, ok)
	}

	h = Hypergeometric{Upper: []QMonomial{QPower(2)}}
	if _, ok := h.TerminationOrder(); ok {
		t.Fatal("non-terminating series reported a termination order")
	}
}

func TestEvalPhiEulerIdentity(t *testing.T) {
	// 1phi0(0; -; q, q) = sum q^n/(q;q)_n = 1/(q;q)_inf.
	h := Hypergeometric{
		Upper:    []QMonomial{Constant(qr(0, 1))},
		Argument: QPower(1),
	}
	f, err := EvalPhi(h, 25)
	if err != nil {
		t.Fatalf("EvalPhi: %v", err)
	}
	if !f.Equal(PartitionGF(25)) {
		t.Fatalf("1phi0 = %s, want the partition generating function", f)
	}
}

func TestEvalPhiSecondEulerIdentity(t *testing.T) {
	// 0phi0(-; -; q, q) = sum (-1)^n q^{n(n+1)/2}/(q;q)_n = (q;q)_inf.
	h := Hypergeometric{Argument: QPower(1)}
	f, err := EvalPhi(h, 25)
	if err != nil {
		t.Fatalf("EvalPhi: %v", err)
	}
	if !f.Equal(series.Euler(25)) {
		t.Fatalf("0phi0 = %s, want the Euler function", f)
	}
}

func TestEvalPhiTerminatingVandermonde(t *testing.T) {
	// 2phi1(q^{-2}, q; q^3; q, q^4) = (q^2;q)_2/(q^3;q)_2 = 1/(1+q^2).
	h := Hypergeometric{
		Upper:    []QMonomial{QPower(-2), QPower(1)},
		Lower:    []QMonomial{QPower(3)},
		Argument: QPower(4),
	}
	f, err := EvalPhi(h, 20)
	if err != nil {
		t.Fatalf("EvalPhi: %v", err)
	}

	denom := series.One(20)
	denom.SetCoeff(2, qr(1, 1))
	want, err := series.One(20).Div(denom)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if !f.Equal(want) {
		t.Fatalf("2phi1 = %s, want 1/(1+q^2)", f)
	}
}

func TestEvalPhiTerminatingBinomialTheorem(t *testing.T) {
	// 1phi0(q^{-2}; -; q, q^3) = (q^{-2}*q^3;q)_inf / (q^3;q)_inf
	//                          = (1-q)(1-q^2).
	h := Hypergeometric{
		Upper:    []QMonomial{QPower(-2)},
		Argument: QPower(3),
	}
	f, err := EvalPhi(h, 20)
	if err != nil {
		t.Fatalf("EvalPhi: %v", err)
	}
	want := series.One(20)
	want.SetCoeff(1, qr(-1, 1))
	want.SetCoeff(2, qr(-1, 1))
	want.SetCoeff(3, qr(1, 1))
	if !f.Equal(want) {
		t.Fatalf("1phi0 = %s, want (1-q)(1-q^2)", f)
	}
}

func TestEvalPhiLowerParameterPole(t *testing.T) {
	// b = q^{-2} makes the n=2 denominator factor vanish.
	h := Hypergeometric{
		Upper:    []QMonomial{Constant(qr(2, 1))},
		Lower:    []QMonomial{QPower(-2)},
		Argument: QPower(1),
	}
	if _, err := EvalPhi(h, 15); !errors.Is(err, series.ErrNonInvertibleDivision) {
		t.Fatalf("err = %v, want ErrNonInvertibleDivision", err)
	}
}

func TestEvalPsiLowerPoleKillsNegativeTail(t *testing.T) {
	// 1psi1(0; q; q, q): the (q;q)_{-m} pole removes every negative
	// term, leaving the unilateral sum q^n/(q;q)_n.
	h := Bilateral{
		Upper:    []QMonomial{Constant(qr(0, 1))},
		Lower:    []QMonomial{QPower(1)},
		Argument: QPower(1),
	}
	f, err := EvalPsi(h, 25)
	if err != nil {
		t.Fatalf("EvalPsi: %v", err)
	}
	if !f.Equal(PartitionGF(25)) {
		t.Fatalf("1psi1 = %s, want the partition generating function", f)
	}
}

func TestEvalPsiTripleProduct(t *testing.T) {
	// 0psi1(-; 0; q, z) = sum_{n in Z} (-1)^n z^n q^{n(n-1)/2}, the
	// Jacobi triple product expansion.
	z := Constant(qr(2, 1))
	h := Bilateral{
		Lower:    []QMonomial{Constant(qr(0, 1))},
		Argument: z,
	}
	f, err := EvalPsi(h, 25)
	if err != nil {
		t.Fatalf("EvalPsi: %v", err)
	}
	if !f.Equal(Tripleprod(z, 25)) {
		t.Fatalf("0psi1 = %s, want the triple product at z=2", f)
	}
}
