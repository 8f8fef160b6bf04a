package qseries

import (
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// Theta3 computes theta3(q) = (q^2;q^2)_inf * (-q;q^2)_inf^2, the
// Jacobi theta function sum_{n} q^{n^2} = 1 + 2q + 2q^4 + 2q^9 + ...
func Theta3(trunc int64) *series.Series {
	f1 := Etaq(2, 2, trunc)
	f2 := stepProduct(big.NewRat(-1, 1), 1, 2, trunc) // prod (1 + q^{2n+1})
	return f1.Mul(f2).Mul(f2)
}

// Theta4 computes theta4(q) = (q^2;q^2)_inf * (q;q^2)_inf^2 =
// sum_{n} (-1)^n q^{n^2}.
func Theta4(trunc int64) *series.Series {
	f1 := Etaq(2, 2, trunc)
	f2 := Etaq(1, 2, trunc)
	return f1.Mul(f2).Mul(f2)
}

// Theta2 computes theta2 as a series in X = q^{1/4}:
//
//	theta2 = 2*X * prod_{n>=1}(1 - X^{8n})(1 + X^{8n})^2
//
// Exponent e in the result reads as q^{e/4}; the nonzero coefficients
// sit at odd perfect squares and all equal 2.
func Theta2(trunc int64) *series.Series {
	f1 := stepProduct(big.NewRat(1, 1), 8, 8, trunc)
	f2 := stepProduct(big.NewRat(-1, 1), 8, 8, trunc)
	prod := f1.Mul(f2).Mul(f2)
	return prod.Mul(series.Monomial(big.NewRat(2, 1), 1, trunc))
}

// Qbin computes the Gaussian binomial coefficient [n choose k]_q via
// the product formula prod_{i=1..k} (1-q^{n-k+i})/(1-q^i). The result
// is a polynomial of degree k*(n-k).
func Qbin(n, k, trunc int64) *series.Series {
	if k < 0 || k > n {
		return series.New(trunc)
	}
	if k == 0 || k == n {
		return series.One(trunc)
	}
	numer := series.One(trunc)
	denom := series.One(trunc)
	minusOne := big.NewRat(-1, 1)
	for i := int64(1); i <= k; i++ {
		nf := series.One(trunc)
		nf.SetCoeff(n-k+i, minusOne)
		numer = numer.Mul(nf)

		df := series.One(trunc)
		df.SetCoeff(i, minusOne)
		denom = denom.Mul(df)
	}
	out, err := numer.Div(denom)
	if err != nil {
		// The denominator has constant term 1; this cannot happen.
		panic(err)
	}
	return out
}
