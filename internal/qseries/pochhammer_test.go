package qseries

import (
	"errors"
	"math/big"
	"testing"

	"github.com/papapumpkin/qsq/internal/series"
)

func qr(n, d int64) *big.Rat { return big.NewRat(n, d) }

func checkCoeffs(t *testing.T, f *series.Series, want map[int64]*big.Rat) {
	t.Helper()
	for k := int64(0); k < f.Trunc(); k++ {
		expect, ok := want[k]
		if !ok {
			expect = new(big.Rat)
		}
		if got := f.Coeff(k); got.Cmp(expect) != 0 {
			t.Fatalf("coefficient of q^%d = %s, want %s", k, got.RatString(), expect.RatString())
		}
	}
}

func TestAqprodFinite(t *testing.T) {
	// (q;q)_3 = (1-q)(1-q^2)(1-q^3) = 1 - q - q^2 + q^4 + q^5 - q^6.
	f, err := Aqprod(QPower(1), 3, 10)
	if err != nil {
		t.Fatalf("Aqprod: %v", err)
	}
	checkCoeffs(t, f, map[int64]*big.Rat{
		0: qr(1, 1), 1: qr(-1, 1), 2: qr(-1, 1),
		4: qr(1, 1), 5: qr(1, 1), 6: qr(-1, 1),
	})
}

func TestAqprodZeroOrderAndZeroBase(t *testing.T) {
	f, err := Aqprod(QPower(1), 0, 10)
	if err != nil {
		t.Fatalf("Aqprod: %v", err)
	}
	if !f.Equal(series.One(10)) {
		t.Fatalf("(q;q)_0 = %s, want 1", f)
	}

	f, err = Aqprod(Constant(qr(0, 1)), 5, 10)
	if err != nil {
		t.Fatalf("Aqprod: %v", err)
	}
	if !f.Equal(series.One(10)) {
		t.Fatalf("(0;q)_5 = %s, want 1", f)
	}
}

func TestAqprodVanishing(t *testing.T) {
	// (q^{-1};q)_3 contains the factor (1 - q^0).
	f, err := Aqprod(QPower(-1), 3, 10)
	if err != nil {
		t.Fatalf("Aqprod: %v", err)
	}
	if !f.IsZero() {
		t.Fatalf("(q^{-1};q)_3 = %s, want 0", f)
	}
}

func TestAqprodNegativeOrder(t *testing.T) {
	// (q^2;q)_{-1} = 1/(q;q)_1 = 1/(1-q).
	f, err := Aqprod(QPower(2), -1, 8)
	if err != nil {
		t.Fatalf("Aqprod: %v", err)
	}
	for k := int64(0); k < 8; k++ {
		if f.Coeff(k).Cmp(qr(1, 1)) != 0 {
			t.Fatalf("coefficient of q^%d = %s, want 1", k, f.Coeff(k).RatString())
		}
	}

	// (q;q)_{-2} hits a vanishing denominator factor.
	if _, err := Aqprod(QPower(1), -2, 8); !errors.Is(err, series.ErrNonInvertibleDivision) {
		t.Fatalf("err = %v, want ErrNonInvertibleDivision", err)
	}
}

func TestAqprodInfMatchesEuler(t *testing.T) {
	f := AqprodInf(QPower(1), 30)
	if !f.Equal(series.Euler(30)) {
		t.Fatalf("(q;q)_inf = %s, want the Euler function", f)
	}
}

func TestQMonomialHelpers(t *testing.T) {
	m := QMonomial{Coeff: qr(2, 3), Power: 4}
	n := QMonomial{Coeff: qr(3, 1), Power: -1}

	p := m.Mul(n)
	if p.Coeff.Cmp(qr(2, 1)) != 0 || p.Power != 3 {
		t.Fatalf("Mul = %s*q^%d, want 2*q^3", p.Coeff.RatString(), p.Power)
	}
	d := m.Div(n)
	if d.Coeff.Cmp(qr(2, 9)) != 0 || d.Power != 5 {
		t.Fatalf("Div = %s*q^%d, want 2/9*q^5", d.Coeff.RatString(), d.Power)
	}

	if !QPower(0).IsOne() || QPower(1).IsOne() || Constant(qr(2, 1)).IsOne() {
		t.Fatal("IsOne misclassifies")
	}

	if n, ok := QPower(-5).IsQNegPower(); !ok || n != 5 {
		t.Fatalf("IsQNegPower(q^-5) = %d, %v", n, ok)
	}
	if _, ok := Constant(qr(2, 1)).IsQNegPower(); ok {
		t.Fatal("IsQNegPower(2) = true")
	}
}
