package qseries

import (
	"math/big"
	"testing"
)

func TestGeomInv(t *testing.T) {
	// 1/(1-q^2) = 1 + q^2 + q^4 + q^6.
	checkCoeffs(t, geomInv(2, 7), map[int64]*big.Rat{
		0: qr(1, 1), 2: qr(1, 1), 4: qr(1, 1), 6: qr(1, 1),
	})
	// 1/(1-q^{-2}) = -q^2/(1-q^2) = -q^2 - q^4 - q^6.
	checkCoeffs(t, geomInv(-2, 7), map[int64]*big.Rat{
		2: qr(-1, 1), 4: qr(-1, 1), 6: qr(-1, 1),
	})
}

func TestAppellLerchCollapses(t *testing.T) {
	// S(q, q, 1): the r = -1 term is skipped at its pole and the
	// remaining bilateral sum telescopes to 2q through q^8.
	checkCoeffs(t, AppellLerch(1, 0, 8), map[int64]*big.Rat{
		1: qr(2, 1),
	})

	// S(q^2, q, q) telescopes to 3q^3 through q^6.
	checkCoeffs(t, AppellLerch(2, 1, 6), map[int64]*big.Rat{
		3: qr(3, 1),
	})
}

func TestUniversalMockThetaG3(t *testing.T) {
	// g3(q^2, q) keeps only the n = 0 term: -q/((1-q)(1-q^2)).
	checkCoeffs(t, UniversalMockThetaG3(2, 8), map[int64]*big.Rat{
		1: qr(-1, 1), 2: qr(-1, 1), 3: qr(-2, 1), 4: qr(-2, 1),
		5: qr(-3, 1), 6: qr(-3, 1), 7: qr(-4, 1),
	})

	// Every term of g3(q, q) is degenerate.
	if !UniversalMockThetaG3(1, 10).IsZero() {
		t.Fatal("g3(q, q) is nonzero, want the zero series")
	}
}

func TestUniversalMockThetaG2(t *testing.T) {
	// g2(q^2, q) = -q^{-2} * (-q;q)_inf * q/((1-q)(1-q^2)) is a Laurent
	// series starting at q^{-1} with the requested order preserved.
	f := UniversalMockThetaG2(2, 6)
	if f.Trunc() != 6 {
		t.Fatalf("Trunc() = %d, want 6", f.Trunc())
	}
	if f.MinOrder() != -1 {
		t.Fatalf("MinOrder() = %d, want -1", f.MinOrder())
	}
	for k, want := range map[int64]*big.Rat{
		-1: qr(-1, 1), 0: qr(-2, 1), 1: qr(-4, 1), 2: qr(-7, 1),
	} {
		if got := f.Coeff(k); got.Cmp(want) != 0 {
			t.Fatalf("coefficient of q^%d = %s, want %s", k, got.RatString(), want.RatString())
		}
	}

	if !UniversalMockThetaG2(1, 10).IsZero() {
		t.Fatal("g2(q, q) is nonzero, want the zero series")
	}
}
