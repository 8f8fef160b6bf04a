package poly

import (
	"fmt"
	"math/big"
)

// RatFunc is a rational function in lowest terms with a monic, nonzero
// denominator. The canonical form makes structural equality meaningful.
type RatFunc struct {
	Numer *Poly
	Denom *Poly
}

// NewRatFunc reduces numer/denom to canonical form. Panics when denom
// is the zero polynomial.
func NewRatFunc(numer, denom *Poly) *RatFunc {
	if denom.IsZero() {
		panic("poly: rational function with zero denominator")
	}
	if numer.IsZero() {
		return &RatFunc{Numer: Zero(), Denom: One()}
	}
	g := Gcd(numer, denom)
	n := numer.ExactDiv(g)
	d := denom.ExactDiv(g)
	lc := d.LeadingCoeff()
	if lc.Cmp(big.NewRat(1, 1)) != 0 {
		n = n.ScalarDiv(lc)
		d = d.ScalarDiv(lc)
	}
	return &RatFunc{Numer: n, Denom: d}
}

// FromPoly wraps a polynomial as p/1.
func FromPoly(p *Poly) *RatFunc {
	return &RatFunc{Numer: p.Clone(), Denom: One()}
}

// FromRat wraps a constant as c/1.
func FromRat(c *big.Rat) *RatFunc {
	return &RatFunc{Numer: Constant(c), Denom: One()}
}

// RatFuncZero returns 0/1.
func RatFuncZero() *RatFunc { return &RatFunc{Numer: Zero(), Denom: One()} }

// RatFuncOne returns 1/1.
func RatFuncOne() *RatFunc { return &RatFunc{Numer: One(), Denom: One()} }

func (r *RatFunc) Add(s *RatFunc) *RatFunc {
	numer := r.Numer.Mul(s.Denom).Add(r.Denom.Mul(s.Numer))
	return NewRatFunc(numer, r.Denom.Mul(s.Denom))
}

func (r *RatFunc) Sub(s *RatFunc) *RatFunc {
	numer := r.Numer.Mul(s.Denom).Sub(r.Denom.Mul(s.Numer))
	return NewRatFunc(numer, r.Denom.Mul(s.Denom))
}

// Mul cross-cancels before multiplying to keep intermediate degrees
// down: (a/b)(c/d) with g1 = gcd(a,d), g2 = gcd(c,b).
func (r *RatFunc) Mul(s *RatFunc) *RatFunc {
	g1 := Gcd(r.Numer, s.Denom)
	g2 := Gcd(s.Numer, r.Denom)
	n1 := r.Numer.ExactDiv(g1)
	d2 := s.Denom.ExactDiv(g1)
	n2 := s.Numer.ExactDiv(g2)
	d1 := r.Denom.ExactDiv(g2)
	return NewRatFunc(n1.Mul(n2), d1.Mul(d2))
}

// Div divides two rational functions. Panics when s is zero.
func (r *RatFunc) Div(s *RatFunc) *RatFunc {
	if s.IsZero() {
		panic("poly: rational function division by zero")
	}
	return NewRatFunc(r.Numer.Mul(s.Denom), r.Denom.Mul(s.Numer))
}

// Neg flips the sign; canonical form is preserved without re-reducing.
func (r *RatFunc) Neg() *RatFunc {
	return &RatFunc{Numer: r.Numer.Neg(), Denom: r.Denom.Clone()}
}

func (r *RatFunc) IsZero() bool { return r.Numer.IsZero() }

// IsPolynomial reports whether the denominator is 1.
func (r *RatFunc) IsPolynomial() bool { return r.Denom.IsOne() }

// Eval evaluates at x, returning nil at a pole of the reduced form.
func (r *RatFunc) Eval(x *big.Rat) *big.Rat {
	d := r.Denom.Eval(x)
	if d.Sign() == 0 {
		return nil
	}
	return new(big.Rat).Quo(r.Numer.Eval(x), d)
}

// QShift returns r(qv*x).
func (r *RatFunc) QShift(qv *big.Rat) *RatFunc {
	return NewRatFunc(r.Numer.QShift(qv), r.Denom.QShift(qv))
}

// QShiftN returns r(qv^j * x) for signed j.
func (r *RatFunc) QShiftN(qv *big.Rat, j int64) *RatFunc {
	return NewRatFunc(r.Numer.QShiftN(qv, j), r.Denom.QShiftN(qv, j))
}

func (r *RatFunc) Equal(s *RatFunc) bool {
	return r.Numer.Equal(s.Numer) && r.Denom.Equal(s.Denom)
}

func (r *RatFunc) String() string {
	if r.Denom.IsOne() {
		return r.Numer.String()
	}
	return fmt.Sprintf("(%s) / (%s)", r.Numer, r.Denom)
}
