package qseries

import (
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// Etaq computes the generalized eta product
// (q^b; q^t)_inf = prod_{n>=0}(1 - q^{b+t*n}).
//
// For b <= 0 the leading factor vanishes (or carries a non-positive
// exponent) and the product is the zero series. The step t must be
// positive; that is a caller contract, not a data condition.
func Etaq(b, t, trunc int64) *series.Series {
	if t <= 0 {
		panic("qseries: etaq step must be positive")
	}
	if b <= 0 {
		return series.New(trunc)
	}
	return stepProduct(big.NewRat(1, 1), b, t, trunc)
}

// Jacprod computes the Jacobi triple product
// JAC(a,b) = (q^a;q^b)_inf * (q^{b-a};q^b)_inf * (q^b;q^b)_inf
// for 0 < a < b.
func Jacprod(a, b, trunc int64) *series.Series {
	if a <= 0 || a >= b {
		panic("qseries: jacprod requires 0 < a < b")
	}
	return Etaq(a, b, trunc).Mul(Etaq(b-a, b, trunc)).Mul(Etaq(b, b, trunc))
}

// Tripleprod computes the Jacobi triple product with monomial
// parameter z = c*q^m:
//
//	(q;q)_inf * prod_{n>=0}(1 - z*q^n) * prod_{n>=1}(1 - q^n/z)
//
// Parameter choices that put a vanishing factor in the product (z = 1
// or z = q) yield the zero series.
func Tripleprod(z QMonomial, trunc int64) *series.Series {
	if z.Coeff.Sign() == 0 {
		panic("qseries: tripleprod z coefficient must be nonzero")
	}
	one := big.NewRat(1, 1)
	if z.Coeff.Cmp(one) == 0 && (z.Power == 0 || z.Power == 1) {
		return series.New(trunc)
	}
	invC := new(big.Rat).Inv(z.Coeff)
	f2 := stepProduct(z.Coeff, z.Power, 1, trunc)
	f3 := stepProduct(invC, 1-z.Power, 1, trunc)
	return series.Euler(trunc).Mul(f2).Mul(f3)
}

// Quinprod computes the quintuple product for z = c*q^m:
//
//	prod_{n>=1}(1-q^n)(1-z*q^n)(1-q^{n-1}/z)(1-z^2*q^{2n-1})(1-z^{-2}*q^{2n-1})
func Quinprod(z QMonomial, trunc int64) *series.Series {
	if z.Coeff.Sign() == 0 {
		panic("qseries: quinprod z coefficient must be nonzero")
	}
	invC := new(big.Rat).Inv(z.Coeff)
	cSq := new(big.Rat).Mul(z.Coeff, z.Coeff)
	invCSq := new(big.Rat).Mul(invC, invC)

	f2 := stepProduct(z.Coeff, z.Power+1, 1, trunc)
	f3 := stepProduct(invC, -z.Power, 1, trunc)
	f4 := stepProduct(cSq, 2*z.Power+1, 2, trunc)
	f5 := stepProduct(invCSq, 1-2*z.Power, 2, trunc)
	return series.Euler(trunc).Mul(f2).Mul(f3).Mul(f4).Mul(f5)
}

// Winquist computes the product side of Winquist's identity for
// parameters a = a_c*q^{a_p}, b = b_c*q^{b_p}: the square of the Euler
// function times eight infinite Pochhammer factors. A parameter choice
// that makes any factor vanish yields the zero series.
func Winquist(a, b QMonomial, trunc int64) *series.Series {
	if a.Coeff.Sign() == 0 || b.Coeff.Sign() == 0 {
		panic("qseries: winquist coefficients must be nonzero")
	}
	one := big.NewRat(1, 1)
	invA := new(big.Rat).Inv(a.Coeff)
	invB := new(big.Rat).Inv(b.Coeff)

	factors := []QMonomial{
		{Coeff: a.Coeff, Power: a.Power},
		{Coeff: invA, Power: 1 - a.Power},
		{Coeff: b.Coeff, Power: b.Power},
		{Coeff: invB, Power: 1 - b.Power},
		{Coeff: new(big.Rat).Mul(a.Coeff, b.Coeff), Power: a.Power + b.Power},
		{Coeff: new(big.Rat).Mul(invA, invB), Power: 2 - a.Power - b.Power},
		{Coeff: new(big.Rat).Mul(a.Coeff, invB), Power: a.Power - b.Power},
		{Coeff: new(big.Rat).Mul(invA, b.Coeff), Power: 1 - a.Power + b.Power},
	}

	euler := series.Euler(trunc)
	result := euler.Mul(euler)
	for _, f := range factors {
		if f.Coeff.Cmp(one) == 0 && f.Power == 0 {
			return series.New(trunc)
		}
		result = result.Mul(stepProduct(f.Coeff, f.Power, 1, trunc))
	}
	return result
}

// stepProduct computes prod_{n>=0}(1 - c*q^{base+step*n}), skipping
// factors whose exponent falls outside [0, trunc).
func stepProduct(c *big.Rat, base, step, trunc int64) *series.Series {
	out := series.One(trunc)
	for n := int64(0); base+step*n < trunc; n++ {
		exp := base + step*n
		if exp < 0 {
			continue
		}
		f := series.One(trunc)
		if exp == 0 {
			v := f.Coeff(0)
			v.Sub(v, c)
			f.SetCoeff(0, v)
		} else {
			f.SetCoeff(exp, new(big.Rat).Neg(c))
		}
		out = out.Mul(f)
	}
	return out
}
