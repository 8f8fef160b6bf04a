package qseries

import (
	"fmt"
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// QFactorization is the result of Qfactor:
// scalar * prod_i (1-q^i)^{m_i}, with IsExact reporting whether the
// remainder after all extractions was exactly 1.
type QFactorization struct {
	Factors map[int64]int64
	Scalar  *big.Rat
	IsExact bool
}

// Qfactor decomposes a finite q-polynomial into (1-q^i) factors.
//
// The constant term is divided out as the scalar prefactor, then
// (1-q^i) divisors are extracted for i from the degree DOWN to 1.
// Working downward matters: (1-q^2) = (1-q)(1+q), so extracting small
// factors first would steal divisibility that belongs to larger
// cyclotomic factors. The zero polynomial fails with
// ErrDegenerateInput; a vanishing constant term simply yields a
// non-exact result, since every (1-q^i) has constant term 1.
func Qfactor(f *series.Series) (QFactorization, error) {
	if f.IsZero() {
		return QFactorization{}, fmt.Errorf("qfactor: %w: zero polynomial", ErrDegenerateInput)
	}

	out := QFactorization{Factors: make(map[int64]int64), Scalar: big.NewRat(1, 1)}
	if f.MinOrder() >= f.Trunc() || f.MinOrder() < 0 {
		return out, nil
	}
	scalar := f.Coeff(0)
	if scalar.Sign() == 0 {
		return out, nil // IsExact stays false
	}
	out.Scalar = scalar

	current := f.Scale(new(big.Rat).Inv(scalar))
	deg := current.Degree()
	if deg <= 0 {
		out.IsExact = true
		return out, nil
	}

	for i := deg; i >= 1; {
		q, ok := divideByOneMinusQi(current, i)
		if !ok {
			i--
			continue
		}
		out.Factors[i]++
		current = q
		if d := current.Degree(); d < i {
			i = d
		}
		// Otherwise retry the same i: the factor may divide again.
	}

	out.IsExact = current.Equal(series.One(current.Trunc()))
	return out, nil
}

// divideByOneMinusQi performs exact polynomial division by (1-q^i):
// take the lowest remaining term c*q^k into the quotient and carry c
// to exponent k+i. A term landing beyond the quotient degree bound
// means the division is not exact.
func divideByOneMinusQi(f *series.Series, i int64) (*series.Series, bool) {
	deg := f.Degree()
	if deg < i {
		return nil, false
	}
	maxQuotientDeg := deg - i

	rem := f.Clone()
	quot := series.New(f.Trunc())
	for !rem.IsZero() {
		k := rem.MinOrder()
		c := rem.Coeff(k)
		if k > maxQuotientDeg {
			return nil, false
		}
		quot.SetCoeff(k, c)
		rem.SetCoeff(k, new(big.Rat))
		ki := k + i
		if ki < rem.Trunc() {
			carry := rem.Coeff(ki)
			carry.Add(carry, c)
			rem.SetCoeff(ki, carry)
		}
	}
	return quot, true
}
