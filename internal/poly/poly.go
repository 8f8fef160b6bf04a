// Package poly implements dense univariate polynomials and rational
// functions over arbitrary-precision rationals.
//
// Coefficients are stored in ascending degree order. The representation
// is canonical: the slice is empty for the zero polynomial and the last
// element is nonzero otherwise.
package poly

import (
	"fmt"
	"math/big"
	"strings"
)

// Poly is a dense univariate polynomial over big.Rat. The zero value is
// the zero polynomial.
type Poly struct {
	coeffs []*big.Rat
}

func normalize(coeffs []*big.Rat) *Poly {
	for len(coeffs) > 0 && coeffs[len(coeffs)-1].Sign() == 0 {
		coeffs = coeffs[:len(coeffs)-1]
	}
	return &Poly{coeffs: coeffs}
}

// Zero returns the zero polynomial.
func Zero() *Poly { return &Poly{} }

// One returns the constant polynomial 1.
func One() *Poly { return &Poly{coeffs: []*big.Rat{big.NewRat(1, 1)}} }

// Constant returns the constant polynomial c.
func Constant(c *big.Rat) *Poly {
	if c.Sign() == 0 {
		return Zero()
	}
	return &Poly{coeffs: []*big.Rat{new(big.Rat).Set(c)}}
}

// X returns the indeterminate x.
func X() *Poly {
	return &Poly{coeffs: []*big.Rat{new(big.Rat), big.NewRat(1, 1)}}
}

// Monomial returns c * x^deg.
func Monomial(c *big.Rat, deg int) *Poly {
	if c.Sign() == 0 {
		return Zero()
	}
	coeffs := make([]*big.Rat, deg+1)
	for i := range coeffs {
		coeffs[i] = new(big.Rat)
	}
	coeffs[deg].Set(c)
	return &Poly{coeffs: coeffs}
}

// Linear returns a + b*x.
func Linear(a, b *big.Rat) *Poly {
	return FromRats([]*big.Rat{a, b})
}

// FromRats builds a polynomial from coefficients in ascending degree
// order, copying each and stripping trailing zeros.
func FromRats(coeffs []*big.Rat) *Poly {
	cp := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		cp[i] = new(big.Rat).Set(c)
	}
	return normalize(cp)
}

// FromInt64s builds a polynomial from integer coefficients in ascending
// degree order.
func FromInt64s(coeffs []int64) *Poly {
	cp := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		cp[i] = big.NewRat(c, 1)
	}
	return normalize(cp)
}

// Degree returns the degree, or -1 for the zero polynomial.
func (p *Poly) Degree() int { return len(p.coeffs) - 1 }

// LeadingCoeff returns a copy of the leading coefficient, or nil for
// the zero polynomial.
func (p *Poly) LeadingCoeff() *big.Rat {
	if len(p.coeffs) == 0 {
		return nil
	}
	return new(big.Rat).Set(p.coeffs[len(p.coeffs)-1])
}

// Coeff returns a copy of the coefficient of x^i; zero beyond the
// degree.
func (p *Poly) Coeff(i int) *big.Rat {
	if i < 0 || i >= len(p.coeffs) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.coeffs[i])
}

func (p *Poly) IsZero() bool { return len(p.coeffs) == 0 }

// IsConstant reports whether the polynomial has degree <= 0.
func (p *Poly) IsConstant() bool { return len(p.coeffs) <= 1 }

func (p *Poly) IsOne() bool {
	return len(p.coeffs) == 1 && p.coeffs[0].Cmp(big.NewRat(1, 1)) == 0
}

// Content returns gcd(numerators)/lcm(denominators), or zero for the
// zero polynomial.
func (p *Poly) Content() *big.Rat {
	if len(p.coeffs) == 0 {
		return new(big.Rat)
	}
	numGCD := new(big.Int)
	denLCM := big.NewInt(1)
	tmp := new(big.Int)
	for _, c := range p.coeffs {
		numGCD.GCD(nil, nil, numGCD, tmp.Abs(c.Num()))
		// lcm(a,b) = a*b/gcd(a,b)
		g := new(big.Int).GCD(nil, nil, denLCM, c.Denom())
		denLCM.Div(denLCM.Mul(denLCM, c.Denom()), g)
	}
	return new(big.Rat).SetFrac(numGCD, denLCM)
}

// PrimitivePart returns p divided by its content.
func (p *Poly) PrimitivePart() *Poly {
	cont := p.Content()
	if cont.Sign() == 0 {
		return Zero()
	}
	return p.ScalarDiv(cont)
}

// Monic divides by the leading coefficient; zero stays zero.
func (p *Poly) Monic() *Poly {
	lc := p.LeadingCoeff()
	if lc == nil {
		return Zero()
	}
	return p.ScalarDiv(lc)
}

// ScalarMul multiplies every coefficient by c.
func (p *Poly) ScalarMul(c *big.Rat) *Poly {
	if c.Sign() == 0 {
		return Zero()
	}
	coeffs := make([]*big.Rat, len(p.coeffs))
	for i, ci := range p.coeffs {
		coeffs[i] = new(big.Rat).Mul(ci, c)
	}
	return normalize(coeffs)
}

// ScalarDiv divides every coefficient by c. Panics when c is zero.
func (p *Poly) ScalarDiv(c *big.Rat) *Poly {
	if c.Sign() == 0 {
		panic("poly: scalar division by zero")
	}
	inv := new(big.Rat).Inv(c)
	return p.ScalarMul(inv)
}

// Eval evaluates the polynomial at x by Horner's method.
func (p *Poly) Eval(x *big.Rat) *big.Rat {
	result := new(big.Rat)
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, p.coeffs[i])
	}
	return result
}

// QShift returns p(qv*x): coefficient c_i scaled by qv^i. Used
// throughout q-dispersion and the q-Gosper normal form.
func (p *Poly) QShift(qv *big.Rat) *Poly {
	if p.IsZero() {
		return Zero()
	}
	coeffs := make([]*big.Rat, len(p.coeffs))
	power := big.NewRat(1, 1)
	for i, c := range p.coeffs {
		coeffs[i] = new(big.Rat).Mul(c, power)
		power = new(big.Rat).Mul(power, qv)
	}
	return normalize(coeffs)
}

// QShiftN returns p(qv^j * x) for signed j. Panics when qv is zero and
// j is negative.
func (p *Poly) QShiftN(qv *big.Rat, j int64) *Poly {
	if j == 0 || p.IsZero() {
		return p.Clone()
	}
	return p.QShift(ratPow(qv, j))
}

func (p *Poly) Clone() *Poly {
	coeffs := make([]*big.Rat, len(p.coeffs))
	for i, c := range p.coeffs {
		coeffs[i] = new(big.Rat).Set(c)
	}
	return &Poly{coeffs: coeffs}
}

func (p *Poly) Add(g *Poly) *Poly {
	n := max(len(p.coeffs), len(g.coeffs))
	coeffs := make([]*big.Rat, n)
	for i := range coeffs {
		coeffs[i] = new(big.Rat).Add(p.Coeff(i), g.Coeff(i))
	}
	return normalize(coeffs)
}

func (p *Poly) Sub(g *Poly) *Poly {
	n := max(len(p.coeffs), len(g.coeffs))
	coeffs := make([]*big.Rat, n)
	for i := range coeffs {
		coeffs[i] = new(big.Rat).Sub(p.Coeff(i), g.Coeff(i))
	}
	return normalize(coeffs)
}

func (p *Poly) Neg() *Poly {
	coeffs := make([]*big.Rat, len(p.coeffs))
	for i, c := range p.coeffs {
		coeffs[i] = new(big.Rat).Neg(c)
	}
	return &Poly{coeffs: coeffs}
}

func (p *Poly) Mul(g *Poly) *Poly {
	if p.IsZero() || g.IsZero() {
		return Zero()
	}
	coeffs := make([]*big.Rat, len(p.coeffs)+len(g.coeffs)-1)
	for i := range coeffs {
		coeffs[i] = new(big.Rat)
	}
	term := new(big.Rat)
	for i, a := range p.coeffs {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range g.coeffs {
			if b.Sign() == 0 {
				continue
			}
			coeffs[i+j].Add(coeffs[i+j], term.Mul(a, b))
		}
	}
	return normalize(coeffs)
}

// Pow raises p to a non-negative power by repeated squaring.
func (p *Poly) Pow(k int) *Poly {
	if k < 0 {
		panic("poly: negative exponent")
	}
	result := One()
	base := p.Clone()
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		k >>= 1
		if k > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// DivRem performs Euclidean division: p = q*divisor + r with
// deg(r) < deg(divisor). Panics when divisor is zero.
func (p *Poly) DivRem(divisor *Poly) (q, r *Poly) {
	if divisor.IsZero() {
		panic("poly: division by zero polynomial")
	}
	dDeg := divisor.Degree()
	sDeg := p.Degree()
	if sDeg < 0 {
		return Zero(), Zero()
	}
	if sDeg < dDeg {
		return Zero(), p.Clone()
	}

	lc := divisor.coeffs[dDeg]
	rem := make([]*big.Rat, len(p.coeffs))
	for i, c := range p.coeffs {
		rem[i] = new(big.Rat).Set(c)
	}
	quot := make([]*big.Rat, sDeg-dDeg+1)
	for i := range quot {
		quot[i] = new(big.Rat)
	}
	term := new(big.Rat)
	for i := len(quot) - 1; i >= 0; i-- {
		qc := new(big.Rat).Quo(rem[i+dDeg], lc)
		if qc.Sign() == 0 {
			continue
		}
		quot[i] = qc
		for j, dj := range divisor.coeffs {
			rem[i+j].Sub(rem[i+j], term.Mul(dj, qc))
		}
	}
	return normalize(quot), normalize(rem)
}

// ExactDiv divides and panics on a nonzero remainder; callers use it
// only where divisibility is guaranteed.
func (p *Poly) ExactDiv(divisor *Poly) *Poly {
	q, r := p.DivRem(divisor)
	if !r.IsZero() {
		panic("poly: exact division has nonzero remainder")
	}
	return q
}

// pseudoRem computes lc(g)^delta * p mod g with
// delta = deg(p)-deg(g)+1, which keeps integer-coefficient remainder
// sequences fraction-free.
func (p *Poly) pseudoRem(g *Poly) *Poly {
	if p.IsZero() {
		return Zero()
	}
	sDeg, oDeg := p.Degree(), g.Degree()
	if oDeg < 0 {
		panic("poly: pseudo-remainder by zero polynomial")
	}
	if sDeg < oDeg {
		return p.Clone()
	}
	delta := sDeg - oDeg + 1
	scale := ratPow(g.LeadingCoeff(), int64(delta))
	_, r := p.ScalarMul(scale).DivRem(g)
	return r
}

// Equal reports coefficient-wise equality.
func (p *Poly) Equal(g *Poly) bool {
	if len(p.coeffs) != len(g.coeffs) {
		return false
	}
	for i, c := range p.coeffs {
		if c.Cmp(g.coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

// String renders the polynomial in descending degree order with "x" as
// the variable.
func (p *Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c.Sign() == 0 {
			continue
		}
		neg := c.Sign() < 0
		abs := new(big.Rat).Abs(c)
		unit := abs.Cmp(big.NewRat(1, 1)) == 0
		switch {
		case first && neg:
			b.WriteString("-")
		case !first && neg:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		first = false
		switch {
		case i == 0:
			b.WriteString(abs.RatString())
		case unit:
		default:
			fmt.Fprintf(&b, "%s*", abs.RatString())
		}
		if i == 1 {
			b.WriteString("x")
		} else if i >= 2 {
			fmt.Fprintf(&b, "x^%d", i)
		}
	}
	return b.String()
}

// ratPow raises base to a signed integer power by repeated squaring.
// Panics on a zero base with a negative exponent.
func ratPow(base *big.Rat, exp int64) *big.Rat {
	if exp == 0 {
		return big.NewRat(1, 1)
	}
	neg := exp < 0
	if neg {
		if base.Sign() == 0 {
			panic("poly: zero base with negative exponent")
		}
		exp = -exp
	}
	result := big.NewRat(1, 1)
	b := new(big.Rat).Set(base)
	for exp > 0 {
		if exp&1 == 1 {
			result.Mul(result, b)
		}
		exp >>= 1
		if exp > 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		result.Inv(result)
	}
	return result
}
