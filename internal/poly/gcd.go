package poly

import "math/big"

// Gcd computes the monic greatest common divisor using the
// subresultant polynomial remainder sequence, which keeps coefficient
// growth under control for the degree ranges the provers generate.
func Gcd(a, b *Poly) *Poly {
	if a.IsZero() {
		return b.Monic()
	}
	if b.IsZero() {
		return a.Monic()
	}
	if a.IsConstant() && b.IsConstant() {
		return One()
	}

	f, g := a, b
	if a.Degree() < b.Degree() {
		f, g = b, a
	}
	f = f.PrimitivePart()
	g = g.PrimitivePart()

	psi := big.NewRat(-1, 1)

	// First step uses beta = (-1)^(delta+1).
	delta := int64(f.Degree() - g.Degree())
	h := f.pseudoRem(g)
	if h.IsZero() {
		return g.PrimitivePart().Monic()
	}
	beta := big.NewRat(-1, 1)
	if (delta+1)%2 == 0 {
		beta = big.NewRat(1, 1)
	}
	h = h.ScalarDiv(beta)

	negLC := new(big.Rat).Neg(f.LeadingCoeff())
	if delta == 1 {
		psi = negLC
	} else if delta > 1 {
		psi = new(big.Rat).Quo(ratPow(negLC, delta), ratPow(psi, delta-1))
	}

	f, g = g, h
	for {
		if g.IsZero() {
			return f.PrimitivePart().Monic()
		}
		if g.IsConstant() {
			return One()
		}
		if f.Degree() < g.Degree() {
			return g.PrimitivePart().Monic()
		}
		delta = int64(f.Degree() - g.Degree())
		h = f.pseudoRem(g)
		if h.IsZero() {
			return g.PrimitivePart().Monic()
		}
		negLC = new(big.Rat).Neg(f.LeadingCoeff())
		beta = new(big.Rat).Mul(negLC, ratPow(psi, delta))
		h = h.ScalarDiv(beta)
		if delta == 1 {
			psi = negLC
		} else if delta > 1 {
			psi = new(big.Rat).Quo(ratPow(negLC, delta), ratPow(psi, delta-1))
		}
		f, g = g, h
	}
}

// Resultant computes the resultant of two polynomials via the
// Euclidean algorithm over Q[x]. It is zero exactly when the inputs
// share a root over the algebraic closure.
func Resultant(a, b *Poly) *big.Rat {
	if a.IsZero() || b.IsZero() {
		return new(big.Rat)
	}
	m, n := a.Degree(), b.Degree()
	if m == 0 {
		return ratPow(a.Coeff(0), int64(n))
	}
	if n == 0 {
		return ratPow(b.Coeff(0), int64(m))
	}

	_, r := a.DivRem(b)
	if r.IsZero() {
		return new(big.Rat)
	}
	k := r.Degree()

	// res(a, b) = (-1)^(m*n) * lc(b)^(m-k) * res(b, r)
	out := ratPow(b.LeadingCoeff(), int64(m-k))
	if (m*n)%2 == 1 {
		out.Neg(out)
	}
	return out.Mul(out, Resultant(b, r))
}
