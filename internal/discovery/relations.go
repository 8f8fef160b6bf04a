package discovery

import (
	"fmt"
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// Findlincombo searches for rational coefficients x_i with
// f = sum x_i * basis_i up to the shared sampled window. The window
// starts at the smallest min-order among the candidates (capped at 0)
// and spans len(basis)+1+topshift rows, so the system is
// overdetermined by topshift extra equations. No relation in the
// window fails with ErrNoMatch.
func Findlincombo(f *series.Series, basis []*series.Series, topshift int64) ([]*big.Rat, error) {
	if len(basis) == 0 {
		return nil, fmt.Errorf("findlincombo: %w: empty basis", ErrInvalidArgument)
	}
	candidates := append([]*series.Series{f}, basis...)

	v, err := relationVector(candidates, topshift, true)
	if err != nil {
		return nil, err
	}
	// v[0]*f + sum v[i]*basis_{i-1} = 0, so f = sum (-v[i]/v[0])*basis_{i-1}.
	inv := new(big.Rat).Inv(v[0])
	out := make([]*big.Rat, len(basis))
	for i := range basis {
		out[i] = new(big.Rat).Mul(v[i+1], inv)
		out[i].Neg(out[i])
	}
	return out, nil
}

// relationVector finds a null-space vector for the candidate
// coefficient matrix. With requireLeading set, only vectors whose
// first component is nonzero qualify (needed when solving for the
// first candidate in terms of the rest).
func relationVector(candidates []*series.Series, topshift int64, requireLeading bool) ([]*big.Rat, error) {
	startOrder := int64(0)
	available := candidates[0].Trunc()
	for _, c := range candidates {
		if m := c.MinOrder(); m < startOrder {
			startOrder = m
		}
		if c.Trunc() < available {
			available = c.Trunc()
		}
	}
	numRows := int64(len(candidates)) + topshift
	if span := available - startOrder; numRows > span {
		numRows = span
	}
	if numRows < 1 {
		return nil, fmt.Errorf("relation search: %w: no sampled coefficients to work with", ErrInvalidArgument)
	}

	matrix := CoefficientMatrix(candidates, startOrder, int(numRows))
	// Modular sieve: a rational relation survives reduction mod p, so an
	// empty kernel over F_p rules one out without exact elimination.
	if mm, ok := modularMatrix(matrix, sievePrime); ok {
		if len(ModularNullSpace(mm, sievePrime)) == 0 {
			return nil, ErrNoMatch
		}
	}
	for _, v := range NullSpace(matrix) {
		if !requireLeading || v[0].Sign() != 0 {
			return v, nil
		}
	}
	return nil, ErrNoMatch
}

// Monomial is an exponent tuple: one exponent per input series.
type Monomial []int64

// HomRelation is a homogeneous polynomial relation among series:
// sum_i Coefficients[i] * prod_j f_j^{Monomials[i][j]} = 0.
type HomRelation struct {
	Monomials    []Monomial
	Coefficients []*big.Rat
}

// GenerateMonomials enumerates all k-tuples of non-negative exponents
// summing to degree, in lexicographic order.
func GenerateMonomials(k int, degree int64) []Monomial {
	if k == 0 {
		return nil
	}
	if k == 1 {
		return []Monomial{{degree}}
	}
	var out []Monomial
	for first := degree; first >= 0; first-- {
		for _, rest := range GenerateMonomials(k-1, degree-first) {
			m := make(Monomial, 0, k)
			m = append(m, first)
			m = append(m, rest...)
			out = append(out, m)
		}
	}
	return out
}

// monomialValue expands prod_j fs[j]^{m[j]}.
func monomialValue(fs []*series.Series, m Monomial, trunc int64) (*series.Series, error) {
	out := series.One(trunc)
	for j, e := range m {
		if e == 0 {
			continue
		}
		p, err := fs[j].Pow(e)
		if err != nil {
			return nil, err
		}
		out = out.Mul(p)
	}
	return out, nil
}

// Findhom searches for a homogeneous degree-d polynomial relation
// among the given series: a null combination of all degree-d monomial
// products. Fails with ErrNoMatch when the sampled window admits none.
func Findhom(fs []*series.Series, degree, topshift int64) (HomRelation, error) {
	if len(fs) < 2 || degree < 1 {
		return HomRelation{}, fmt.Errorf("findhom: %w: need at least two series and degree >= 1", ErrInvalidArgument)
	}
	trunc := fs[0].Trunc()
	for _, f := range fs {
		if f.Trunc() < trunc {
			trunc = f.Trunc()
		}
	}
	monomials := GenerateMonomials(len(fs), degree)
	candidates := make([]*series.Series, len(monomials))
	for i, m := range monomials {
		v, err := monomialValue(fs, m, trunc)
		if err != nil {
			return HomRelation{}, err
		}
		candidates[i] = v
	}

	v, err := relationVector(candidates, topshift, false)
	if err != nil {
		return HomRelation{}, err
	}
	return prunedRelation(monomials, v), nil
}

// Findnonhom searches for a polynomial relation of total degree up to
// d, including the constant term: monomials of every degree 0..d
// participate.
func Findnonhom(fs []*series.Series, degree, topshift int64) (HomRelation, error) {
	if len(fs) < 1 || degree < 1 {
		return HomRelation{}, fmt.Errorf("findnonhom: %w: need a series and degree >= 1", ErrInvalidArgument)
	}
	trunc := fs[0].Trunc()
	for _, f := range fs {
		if f.Trunc() < trunc {
			trunc = f.Trunc()
		}
	}
	var monomials []Monomial
	for d := int64(0); d <= degree; d++ {
		monomials = append(monomials, GenerateMonomials(len(fs), d)...)
	}
	candidates := make([]*series.Series, len(monomials))
	for i, m := range monomials {
		v, err := monomialValue(fs, m, trunc)
		if err != nil {
			return HomRelation{}, err
		}
		candidates[i] = v
	}

	v, err := relationVector(candidates, topshift, false)
	if err != nil {
		return HomRelation{}, err
	}
	return prunedRelation(monomials, v), nil
}

// Findhomcombo expresses f as a rational combination of the degree-d
// monomials in the given series, when the sampled window admits one.
func Findhomcombo(f *series.Series, fs []*series.Series, degree, topshift int64) (HomRelation, error) {
	if len(fs) < 1 || degree < 1 {
		return HomRelation{}, fmt.Errorf("findhomcombo: %w: need a series and degree >= 1", ErrInvalidArgument)
	}
	trunc := f.Trunc()
	for _, g := range fs {
		if g.Trunc() < trunc {
			trunc = g.Trunc()
		}
	}
	monomials := GenerateMonomials(len(fs), degree)
	basis := make([]*series.Series, len(monomials))
	for i, m := range monomials {
		v, err := monomialValue(fs, m, trunc)
		if err != nil {
			return HomRelation{}, err
		}
		basis[i] = v
	}
	coeffs, err := Findlincombo(f, basis, topshift)
	if err != nil {
		return HomRelation{}, err
	}
	return prunedRelation(monomials, append([]*big.Rat{}, coeffs...)), nil
}

// Findnonhomcombo expresses f as a rational combination of all
// monomials of degree 0..d in the given series, constant term
// included.
func Findnonhomcombo(f *series.Series, fs []*series.Series, degree, topshift int64) (HomRelation, error) {
	if len(fs) < 1 || degree < 1 {
		return HomRelation{}, fmt.Errorf("findnonhomcombo: %w: need a series and degree >= 1", ErrInvalidArgument)
	}
	trunc := f.Trunc()
	for _, g := range fs {
		if g.Trunc() < trunc {
			trunc = g.Trunc()
		}
	}
	var monomials []Monomial
	for d := int64(0); d <= degree; d++ {
		monomials = append(monomials, GenerateMonomials(len(fs), d)...)
	}
	basis := make([]*series.Series, len(monomials))
	for i, m := range monomials {
		v, err := monomialValue(fs, m, trunc)
		if err != nil {
			return HomRelation{}, err
		}
		basis[i] = v
	}
	coeffs, err := Findlincombo(f, basis, topshift)
	if err != nil {
		return HomRelation{}, err
	}
	return prunedRelation(monomials, append([]*big.Rat{}, coeffs...)), nil
}

// prunedRelation drops zero-coefficient monomials from a solution
// vector.
func prunedRelation(monomials []Monomial, v []*big.Rat) HomRelation {
	var rel HomRelation
	for i, c := range v {
		if c.Sign() == 0 {
			continue
		}
		rel.Monomials = append(rel.Monomials, monomials[i])
		rel.Coefficients = append(rel.Coefficients, c)
	}
	return rel
}

// PolyRelation is a bivariate polynomial relation P(x, y) = 0 with
// Coefficients[i][j] multiplying x^i * y^j.
type PolyRelation struct {
	Coefficients [][]*big.Rat
	DegX, DegY   int64
}

// Findpoly searches for a polynomial relation between two series over
// the x^i*y^j grid with 0 <= i <= degX, 0 <= j <= degY.
func Findpoly(x, y *series.Series, degX, degY, topshift int64) (PolyRelation, error) {
	if degX < 1 || degY < 1 {
		return PolyRelation{}, fmt.Errorf("findpoly: %w: degrees must be >= 1", ErrInvalidArgument)
	}
	trunc := x.Trunc()
	if y.Trunc() < trunc {
		trunc = y.Trunc()
	}

	xp := make([]*series.Series, degX+1)
	yp := make([]*series.Series, degY+1)
	xp[0], yp[0] = series.One(trunc), series.One(trunc)
	for i := int64(1); i <= degX; i++ {
		xp[i] = xp[i-1].Mul(x)
	}
	for j := int64(1); j <= degY; j++ {
		yp[j] = yp[j-1].Mul(y)
	}

	var candidates []*series.Series
	for i := int64(0); i <= degX; i++ {
		for j := int64(0); j <= degY; j++ {
			candidates = append(candidates, xp[i].Mul(yp[j]))
		}
	}

	v, err := relationVector(candidates, topshift, false)
	if err != nil {
		return PolyRelation{}, err
	}

	rel := PolyRelation{DegX: degX, DegY: degY}
	rel.Coefficients = make([][]*big.Rat, degX+1)
	idx := 0
	for i := int64(0); i <= degX; i++ {
		rel.Coefficients[i] = make([]*big.Rat, degY+1)
		for j := int64(0); j <= degY; j++ {
			rel.Coefficients[i][j] = v[idx]
			idx++
		}
	}
	return rel, nil
}
