// Package qseries provides the classical q-series toolkit: Pochhammer
// products, named infinite products (eta, Jacobi triple, quintuple,
// Winquist), theta functions, partition generating functions, and the
// product-form recovery algorithms prodmake, etamake, jacprodmake and
// qfactor.
package qseries

import (
	"errors"
	"math/big"
)

// Failure kinds for product-form analysis. Callers match with errors.Is.
var (
	ErrNotAProduct     = errors.New("not a product: recovered exponents are not integral")
	ErrNoCanonicalForm = errors.New("no canonical form: exponent pattern does not fit the template")
	ErrDegenerateInput = errors.New("degenerate input")
)

// QMonomial is a coefficient times a power of q: c*q^m. It is the
// parameter currency for Pochhammer symbols and hypergeometric series.
type QMonomial struct {
	Coeff *big.Rat
	Power int64
}

// QPower returns the monomial q^m.
func QPower(m int64) QMonomial {
	return QMonomial{Coeff: big.NewRat(1, 1), Power: m}
}

// Constant returns the monomial c*q^0.
func Constant(c *big.Rat) QMonomial {
	return QMonomial{Coeff: new(big.Rat).Set(c), Power: 0}
}

// Mul returns the product of two q-monomials.
func (m QMonomial) Mul(n QMonomial) QMonomial {
	return QMonomial{
		Coeff: new(big.Rat).Mul(m.Coeff, n.Coeff),
		Power: m.Power + n.Power,
	}
}

// Div returns the quotient m/n. The divisor coefficient must be nonzero.
func (m QMonomial) Div(n QMonomial) QMonomial {
	return QMonomial{
		Coeff: new(big.Rat).Quo(m.Coeff, n.Coeff),
		Power: m.Power - n.Power,
	}
}

// IsOne reports whether the monomial is exactly 1.
func (m QMonomial) IsOne() bool {
	return m.Coeff != nil && m.Power == 0 && m.Coeff.Cmp(big.NewRat(1, 1)) == 0
}

// IsQNegPower reports whether the monomial is exactly q^{-n} for some
// n >= 0, returning n. Such parameters terminate hypergeometric series.
func (m QMonomial) IsQNegPower() (int64, bool) {
	if m.Coeff != nil && m.Coeff.Cmp(big.NewRat(1, 1)) == 0 && m.Power <= 0 {
		return -m.Power, true
	}
	return 0, false
}

// mobius computes the Möbius function by trial division.
func mobius(n int64) int64 {
	if n <= 0 {
		return 0
	}
	if n == 1 {
		return 1
	}
	primes := int64(0)
	for p := int64(2); p*p <= n; p++ {
		if n%p == 0 {
			n /= p
			if n%p == 0 {
				return 0 // squared prime factor
			}
			primes++
		}
	}
	if n > 1 {
		primes++
	}
	if primes%2 == 0 {
		return 1
	}
	return -1
}

// divisors returns the sorted positive divisors of n.
func divisors(n int64) []int64 {
	var small, large []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d == 0 {
			small = append(small, d)
			if q := n / d; q != d {
				large = append(large, q)
			}
		}
	}
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}
	return small
}

// gcd64 returns the non-negative greatest common divisor.
func gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
