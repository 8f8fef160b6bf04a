package series

import "math/big"

// ProductGenerator lazily expands an infinite product by multiplying
// one factor at a time, truncating at each step. After EnsureOrder(5),
// EnsureOrder(10) only multiplies in factors 6 through 10.
//
// Factor k of a product like prod_{k>=1}(1-q^k) only touches exponents
// k and above, so once k reaches the target order the remaining factors
// are 1 + O(q^order) and the partial product is final.
type ProductGenerator struct {
	partial  *Series
	included int64
	factor   func(k, trunc int64) *Series
}

// NewProductGenerator builds a generator starting from the given
// partial product. factor(k, trunc) must return the k-th factor as a
// series truncated to trunc; startIndex is the first factor index.
func NewProductGenerator(initial *Series, startIndex int64, factor func(k, trunc int64) *Series) *ProductGenerator {
	return &ProductGenerator{partial: initial, included: startIndex, factor: factor}
}

// EnsureOrder multiplies in enough factors for the partial product to
// be correct up to O(q^target).
func (pg *ProductGenerator) EnsureOrder(target int64) {
	for pg.included < target {
		pg.partial = pg.partial.Mul(pg.factor(pg.included, target))
		pg.included++
	}
}

// Series returns the current partial product.
func (pg *ProductGenerator) Series() *Series { return pg.partial }

// EulerGenerator expands the Euler function
// (q;q)_inf = prod_{k>=1}(1 - q^k) whose coefficients realize the
// pentagonal number theorem.
func EulerGenerator(trunc int64) *ProductGenerator {
	return NewProductGenerator(One(trunc), 1, func(k, t int64) *Series {
		f := One(t)
		f.SetCoeff(k, big.NewRat(-1, 1))
		return f
	})
}

// PochhammerInfGenerator expands (a*q^offset; q)_inf =
// prod_{k>=0}(1 - a*q^{offset+k}).
func PochhammerInfGenerator(a *big.Rat, offset, trunc int64) *ProductGenerator {
	coeff := new(big.Rat).Set(a)
	return NewProductGenerator(One(trunc), 0, func(k, t int64) *Series {
		f := One(t)
		f.SetCoeff(offset+k, new(big.Rat).Neg(coeff))
		return f
	})
}

// Euler returns (q;q)_inf truncated to the given order.
func Euler(trunc int64) *Series {
	pg := EulerGenerator(trunc)
	pg.EnsureOrder(trunc)
	return pg.Series()
}
