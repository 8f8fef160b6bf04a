package qseries

import (
	"math/big"
	"testing"

	"github.com/papapumpkin/qsq/internal/series"
)

func TestEtaqBaseCase(t *testing.T) {
	if !Etaq(1, 1, 25).Equal(series.Euler(25)) {
		t.Fatal("(q;q)_inf via Etaq does not match the Euler function")
	}
	if !Etaq(0, 3, 10).IsZero() {
		t.Fatal("Etaq with b <= 0 should vanish")
	}
}

func TestJacprodMatchesFactors(t *testing.T) {
	trunc := int64(20)
	want := Etaq(2, 5, trunc).Mul(Etaq(3, 5, trunc)).Mul(Etaq(5, 5, trunc))
	if !Jacprod(2, 5, trunc).Equal(want) {
		t.Fatal("Jacprod(2,5) does not match its defining factors")
	}
}

func TestTripleprodThetaExpansion(t *testing.T) {
	// By the triple product identity the expansion is
	// sum_{n in Z} (-1)^n z^n q^{n(n-1)/2}; at z = -1 the n and 1-n
	// terms coincide, giving 2*q^{n(n-1)/2} on the triangular numbers.
	f := Tripleprod(QMonomial{Coeff: qr(-1, 1), Power: 0}, 25)
	want := map[int64]bool{0: true, 1: true, 3: true, 6: true, 10: true, 15: true, 21: true}
	for k := int64(0); k < 25; k++ {
		expect := qr(0, 1)
		if want[k] {
			expect = qr(2, 1)
		}
		if f.Coeff(k).Cmp(expect) != 0 {
			t.Fatalf("coefficient of q^%d = %s, want %s", k, f.Coeff(k).RatString(), expect.RatString())
		}
	}
}

func TestTripleprodVanishingParameters(t *testing.T) {
	if !Tripleprod(QPower(0), 10).IsZero() {
		t.Fatal("Tripleprod(1) should vanish")
	}
	if !Tripleprod(QPower(1), 10).IsZero() {
		t.Fatal("Tripleprod(q) should vanish")
	}
}

func TestQuinprodExpansion(t *testing.T) {
	// At z = -1 the quintuple product collapses to
	// 2 * sum_{n in Z} (-1)^n q^{n(3n+1)/2}.
	f := Quinprod(QMonomial{Coeff: qr(-1, 1), Power: 0}, 20)
	want := map[int64]int64{0: 2, 1: -2, 2: -2, 5: 2, 7: 2, 12: -2, 15: -2}
	for k := int64(0); k < 20; k++ {
		expect := qr(want[k], 1)
		if f.Coeff(k).Cmp(expect) != 0 {
			t.Fatalf("coefficient of q^%d = %s, want %s", k, f.Coeff(k).RatString(), expect.RatString())
		}
	}
}

func TestWinquistDegenerateAndGeneric(t *testing.T) {
	if !Winquist(QPower(0), Constant(qr(2, 1)), 10).IsZero() {
		t.Fatal("Winquist with a = 1 should vanish")
	}

	// Generic constants: the q^0 term collects the four constant
	// factors (1-2)(1-3)(1-6)(1-2/3) = -10/3.
	f := Winquist(Constant(qr(2, 1)), Constant(qr(3, 1)), 10)
	if f.Coeff(0).Cmp(qr(-10, 3)) != 0 {
		t.Fatalf("constant term = %s, want -10/3", f.Coeff(0).RatString())
	}
}

func TestTheta3Coefficients(t *testing.T) {
	f := Theta3(17)
	squares := map[int64]bool{1: true, 4: true, 9: true, 16: true}
	for k := int64(0); k < 17; k++ {
		expect := qr(0, 1)
		switch {
		case k == 0:
			expect = qr(1, 1)
		case squares[k]:
			expect = qr(2, 1)
		}
		if f.Coeff(k).Cmp(expect) != 0 {
			t.Fatalf("theta3 coefficient of q^%d = %s, want %s", k, f.Coeff(k).RatString(), expect.RatString())
		}
	}
}

func TestTheta4Coefficients(t *testing.T) {
	f := Theta4(17)
	want := map[int64]int64{0: 1, 1: -2, 4: 2, 9: -2, 16: 2}
	for k := int64(0); k < 17; k++ {
		if f.Coeff(k).Cmp(qr(want[k], 1)) != 0 {
			t.Fatalf("theta4 coefficient of q^%d = %s, want %d", k, f.Coeff(k).RatString(), want[k])
		}
	}
}

func TestTheta2OddSquares(t *testing.T) {
	// In the X = q^{1/4} variable the coefficients sit at odd squares.
	f := Theta2(30)
	want := map[int64]int64{1: 2, 9: 2, 25: 2}
	for k := int64(0); k < 30; k++ {
		if f.Coeff(k).Cmp(qr(want[k], 1)) != 0 {
			t.Fatalf("theta2 coefficient of X^%d = %s, want %d", k, f.Coeff(k).RatString(), want[k])
		}
	}
}

func TestQbin(t *testing.T) {
	// [4 choose 2]_q = 1 + q + 2q^2 + q^3 + q^4.
	f := Qbin(4, 2, 10)
	checkCoeffs(t, f, map[int64]*big.Rat{
		0: qr(1, 1), 1: qr(1, 1), 2: qr(2, 1), 3: qr(1, 1), 4: qr(1, 1),
	})

	if !Qbin(5, 0, 10).Equal(series.One(10)) || !Qbin(5, 5, 10).Equal(series.One(10)) {
		t.Fatal("[n choose 0] and [n choose n] should be 1")
	}
	if !Qbin(3, 7, 10).IsZero() {
		t.Fatal("[3 choose 7] should vanish")
	}

	// Symmetry [n choose k] = [n choose n-k].
	if !Qbin(7, 2, 12).Equal(Qbin(7, 5, 12)) {
		t.Fatal("Gaussian binomial symmetry fails")
	}
}
