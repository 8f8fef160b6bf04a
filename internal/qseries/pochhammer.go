package qseries

import (
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// Aqprod computes the finite Pochhammer symbol (a;q)_n for a = c*q^m
// as a truncated series. Negative orders use the reflection
// (a;q)_{-k} = 1/(a*q^{-k};q)_k, which fails with
// ErrNonInvertibleDivision when a denominator factor vanishes.
func Aqprod(a QMonomial, n, trunc int64) (*series.Series, error) {
	one := big.NewRat(1, 1)
	switch {
	case n == 0:
		return series.One(trunc), nil

	case n > 0:
		if a.Coeff.Sign() == 0 {
			return series.One(trunc), nil
		}
		// (q^{-j};q)_n vanishes for 0 <= j < n: the j-th factor is zero.
		if a.Coeff.Cmp(one) == 0 && a.Power <= 0 && -a.Power < n {
			return series.New(trunc), nil
		}
		out := series.One(trunc)
		for k := int64(0); k < n; k++ {
			out = out.Mul(pochFactor(a.Coeff, a.Power+k, trunc))
		}
		return out, nil

	default:
		shifted := QMonomial{Coeff: a.Coeff, Power: a.Power + n}
		denom, err := Aqprod(shifted, -n, trunc)
		if err != nil {
			return nil, err
		}
		return series.One(trunc).Div(denom)
	}
}

// AqprodInf computes the infinite Pochhammer symbol
// (a;q)_inf = prod_{k>=0}(1 - c*q^{m+k}), truncated once the factor
// exponent clears the truncation order.
func AqprodInf(a QMonomial, trunc int64) *series.Series {
	if a.Coeff.Sign() == 0 {
		return series.One(trunc)
	}
	out := series.One(trunc)
	for k := int64(0); a.Power+k < trunc; k++ {
		out = out.Mul(pochFactor(a.Coeff, a.Power+k, trunc))
	}
	return out
}

// pochFactor builds the series (1 - c*q^e).
func pochFactor(c *big.Rat, e, trunc int64) *series.Series {
	f := series.One(trunc)
	if e == 0 {
		v := f.Coeff(0)
		v.Sub(v, c)
		f.SetCoeff(0, v)
		return f
	}
	f.SetCoeff(e, new(big.Rat).Neg(c))
	return f
}
