package qseries

import (
	"fmt"
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// The classical mock theta functions of Ramanujan, orders 3, 5 and 7,
// as explicit q-series with incrementally maintained Pochhammer
// denominators. Third order: f, phi, psi, chi, omega, nu, rho. Fifth
// order: f0, f1, F0, F1, phi0, phi1, psi0, psi1, chi0, chi1. Seventh
// order: F0, F1, F2.

// MockTheta returns the named classical mock theta function. Names
// follow the literature with the order appended: "f3", "phi3", "psi3",
// "chi3", "omega3", "nu3", "rho3", "f0_5", "f1_5", "F0_5", "F1_5",
// "phi0_5", "phi1_5", "psi0_5", "psi1_5", "chi0_5", "chi1_5", "F0_7",
// "F1_7", "F2_7".
func MockTheta(name string, trunc int64) (*series.Series, error) {
	switch name {
	case "f3":
		return MockThetaF3(trunc), nil
	case "phi3":
		return MockThetaPhi3(trunc), nil
	case "psi3":
		return MockThetaPsi3(trunc), nil
	case "chi3":
		return MockThetaChi3(trunc), nil
	case "omega3":
		return MockThetaOmega3(trunc), nil
	case "nu3":
		return MockThetaNu3(trunc), nil
	case "rho3":
		return MockThetaRho3(trunc), nil
	case "f0_5":
		return MockThetaF05(trunc), nil
	case "f1_5":
		return MockThetaF15(trunc), nil
	case "F0_5":
		return MockThetaCapF05(trunc), nil
	case "F1_5":
		return MockThetaCapF15(trunc), nil
	case "phi0_5":
		return MockThetaPhi05(trunc), nil
	case "phi1_5":
		return MockThetaPhi15(trunc), nil
	case "psi0_5":
		return MockThetaPsi05(trunc), nil
	case "psi1_5":
		return MockThetaPsi15(trunc), nil
	case "chi0_5":
		return MockThetaChi05(trunc), nil
	case "chi1_5":
		return MockThetaChi15(trunc), nil
	case "F0_7":
		return MockThetaCapF07(trunc), nil
	case "F1_7":
		return MockThetaCapF17(trunc), nil
	case "F2_7":
		return MockThetaCapF27(trunc), nil
	}
	return nil, fmt.Errorf("qseries: unknown mock theta function %q", name)
}

// onePlusQ builds the factor 1 + q^m.
func onePlusQ(m, trunc int64) *series.Series {
	return pochFactor(big.NewRat(-1, 1), m, trunc)
}

// negateQ substitutes q -> -q: coefficient k picks up the sign (-1)^k.
func negateQ(f *series.Series) *series.Series {
	out := series.New(f.Trunc())
	for _, k := range f.Exponents() {
		c := f.Coeff(k)
		if k%2 != 0 {
			c.Neg(c)
		}
		out.SetCoeff(k, c)
	}
	return out
}

// mustInvert inverts a denominator whose constant term is 1 by
// construction.
func mustInvert(f *series.Series) *series.Series {
	inv, err := f.Invert()
	if err != nil {
		panic(err)
	}
	return inv
}

// MockThetaF3 computes f(q) = sum_{n>=0} q^{n^2} / (-q;q)_n^2.
func MockThetaF3(trunc int64) *series.Series {
	result := series.New(trunc)
	denomSq := series.One(trunc)
	for n := int64(0); n*n < trunc; n++ {
		term := mustInvert(denomSq).Shift(n * n)
		result = result.Add(term)
		factor := onePlusQ(n+1, trunc)
		denomSq = denomSq.Mul(factor).Mul(factor)
	}
	return result
}

// MockThetaPhi3 computes phi(q) = sum_{n>=0} q^{n^2} / (-q^2;q^2)_n.
func MockThetaPhi3(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(0); n*n < trunc; n++ {
		result = result.Add(mustInvert(denom).Shift(n * n))
		denom = denom.Mul(onePlusQ(2*(n+1), trunc))
	}
	return result
}

// MockThetaPsi3 computes psi(q) = sum_{n>=1} q^{n^2} / (q;q^2)_n. The
// sum starts at n = 1, so the constant term is zero.
func MockThetaPsi3(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(1); n*n < trunc; n++ {
		denom = denom.Mul(pochFactor(big.NewRat(1, 1), 2*n-1, trunc))
		result = result.Add(mustInvert(denom).Shift(n * n))
	}
	return result
}

// MockThetaChi3 computes
// chi(q) = sum_{n>=0} q^{n^2} / prod_{k=1..n} (1 - q^k + q^{2k}).
func MockThetaChi3(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(0); n*n < trunc; n++ {
		if n > 0 {
			f := series.One(trunc)
			f.SetCoeff(n, big.NewRat(-1, 1))
			f.SetCoeff(2*n, big.NewRat(1, 1))
			denom = denom.Mul(f)
		}
		result = result.Add(mustInvert(denom).Shift(n * n))
	}
	return result
}

// MockThetaOmega3 computes
// omega(q) = sum_{n>=0} q^{2n(n+1)} / (q;q^2)_{n+1}^2.
func MockThetaOmega3(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(0); 2*n*(n+1) < trunc; n++ {
		denom = denom.Mul(pochFactor(big.NewRat(1, 1), 2*n+1, trunc))
		result = result.Add(mustInvert(denom.Mul(denom)).Shift(2 * n * (n + 1)))
	}
	return result
}

// MockThetaNu3 computes nu(q) = sum_{n>=0} q^{n(n+1)} / (-q;q^2)_{n+1}.
func MockThetaNu3(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(0); n*(n+1) < trunc; n++ {
		denom = denom.Mul(onePlusQ(2*n+1, trunc))
		result = result.Add(mustInvert(denom).Shift(n * (n + 1)))
	}
	return result
}

// MockThetaRho3 computes
// rho(q) = sum_{n>=0} q^{2n(n+1)} / prod_{k=0..n} (1 + q^{2k+1} + q^{4k+2}).
func MockThetaRho3(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(0); 2*n*(n+1) < trunc; n++ {
		f := series.One(trunc)
		f.SetCoeff(2*n+1, big.NewRat(1, 1))
		f.SetCoeff(4*n+2, big.NewRat(1, 1))
		denom = denom.Mul(f)
		result = result.Add(mustInvert(denom).Shift(2 * n * (n + 1)))
	}
	return result
}

// MockThetaF05 computes f0(q) = sum_{n>=0} q^{n^2} / (-q;q)_n.
func MockThetaF05(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(0); n*n < trunc; n++ {
		result = result.Add(mustInvert(denom).Shift(n * n))
		denom = denom.Mul(onePlusQ(n+1, trunc))
	}
	return result
}

// MockThetaF15 computes f1(q) = sum_{n>=0} q^{n^2+n} / (-q;q)_n.
func MockThetaF15(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(0); n*n+n < trunc; n++ {
		result = result.Add(mustInvert(denom).Shift(n*n + n))
		denom = denom.Mul(onePlusQ(n+1, trunc))
	}
	return result
}

// MockThetaCapF05 computes F0(q) = sum_{n>=0} q^{2n^2} / (q;q^2)_n.
func MockThetaCapF05(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(0); 2*n*n < trunc; n++ {
		result = result.Add(mustInvert(denom).Shift(2 * n * n))
		denom = denom.Mul(pochFactor(big.NewRat(1, 1), 2*n+1, trunc))
	}
	return result
}

// MockThetaCapF15 computes F1(q) = sum_{n>=0} q^{2n^2+2n} / (q;q^2)_{n+1}.
func MockThetaCapF15(trunc int64) *series.Series {
	result := series.New(trunc)
	denom := series.One(trunc)
	for n := int64(0); 2*n*n+2*n < trunc; n++ {
		denom = denom.Mul(pochFactor(big.NewRat(1, 1), 2*n+1, trunc))
		result = result.Add(mustInvert(denom).Shift(2*n*n + 2*n))
	}
	return result
}

// MockThetaPhi05 computes phi0(q) = sum_{n>=0} (-q;q^2)_n * q^{n^2}.
// The Pochhammer product multiplies the numerator here.
func MockThetaPhi05(trunc int64) *series.Series {
	result := series.New(trunc)
	prod := series.One(trunc)
	for n := int64(0); n*n < trunc; n++ {
		if n >= 1 {
			prod = prod.Mul(onePlusQ(2*n-1, trunc))
		}
		result = result.Add(prod.Shift(n * n).Truncate(trunc))
	}
	return result
}

// MockThetaPhi15 computes phi1(q) = sum_{n>=0} (-q;q^2)_n * q^{(n+1)^2}.
func MockThetaPhi15(trunc int64) *series.Series {
	result := series.New(trunc)
	prod := series.One(trunc)
	for n := int64(0); (n+1)*(n+1) < trunc; n++ {
		if n >= 1 {
			prod = prod.Mul(onePlusQ(2*n-1, trunc))
		}
		result = result.Add(prod.Shift((n + 1) * (n + 1)).Truncate(trunc))
	}
	return result
}

// MockThetaPsi05 computes psi0(q) = sum_{n>=0} (-1;q)_n * q^{n(n+1)/2}.
// The base factor (1 + q^0) = 2 makes every n >= 1 term even.
func MockThetaPsi05(trunc int64) *series.Series {
	result := series.New(trunc)
	prod := series.One(trunc)
	for n := int64(0); n*(n+1)/2 < trunc; n++ {
		if n >= 1 {
			prod = prod.Mul(onePlusQ(n-1, trunc))
		}
		result = result.Add(prod.Shift(n * (n + 1) / 2).Truncate(trunc))
	}
	return result
}

// MockThetaPsi15 computes psi1(q) = sum_{n>=0} (-q;q)_n * q^{n(n+1)/2}.
func MockThetaPsi15(trunc int64) *series.Series {
	result := series.New(trunc)
	prod := series.One(trunc)
	for n := int64(0); n*(n+1)/2 < trunc; n++ {
		if n >= 1 {
			prod = prod.Mul(onePlusQ(n, trunc))
		}
		result = result.Add(prod.Shift(n * (n + 1) / 2).Truncate(trunc))
	}
	return result
}

// MockThetaChi05 computes chi0(q) = 2*F0(q) - phi0(-q).
func MockThetaChi05(trunc int64) *series.Series {
	f0 := MockThetaCapF05(trunc).Scale(big.NewRat(2, 1))
	return f0.Sub(negateQ(MockThetaPhi05(trunc)))
}

// MockThetaChi15 computes chi1(q) = 2*F1(q) + q^{-1}*phi1(-q). Since
// phi1 starts at q, the shifted part stays an ordinary power series;
// phi1 is computed one order past trunc so the shift does not lose
// precision.
func MockThetaChi15(trunc int64) *series.Series {
	f1 := MockThetaCapF15(trunc).Scale(big.NewRat(2, 1))
	shifted := negateQ(MockThetaPhi15(trunc + 1)).Shift(-1)
	return f1.Add(shifted)
}

// MockThetaCapF07 computes F0(q) = sum_{n>=0} q^{n^2} / (q^{n+1};q)_n.
// The denominator base shifts with n, so each term rebuilds its
// Pochhammer product.
func MockThetaCapF07(trunc int64) *series.Series {
	result := series.New(trunc)
	for n := int64(0); n*n < trunc; n++ {
		denom, err := Aqprod(QPower(n+1), n, trunc)
		if err != nil {
			panic(err)
		}
		result = result.Add(mustInvert(denom).Shift(n * n))
	}
	return result
}

// MockThetaCapF17 computes F1(q) = sum_{n>=0} q^{n^2} / (q^n;q)_n.
func MockThetaCapF17(trunc int64) *series.Series {
	result := series.New(trunc)
	for n := int64(0); n*n < trunc; n++ {
		denom, err := Aqprod(QPower(n), n, trunc)
		if err != nil {
			panic(err)
		}
		result = result.Add(mustInvert(denom).Shift(n * n))
	}
	return result
}

// MockThetaCapF27 computes F2(q) = sum_{n>=0} q^{n^2+n} / (q^{n+1};q)_{n+1}.
func MockThetaCapF27(trunc int64) *series.Series {
	result := series.New(trunc)
	for n := int64(0); n*n+n < trunc; n++ {
		denom, err := Aqprod(QPower(n+1), n+1, trunc)
		if err != nil {
			panic(err)
		}
		result = result.Add(mustInvert(denom).Shift(n * n + n))
	}
	return result
}
