package poly

import (
	"math/big"
	"sort"
)

// Factor is an irreducible factor with its multiplicity.
type Factor struct {
	Poly         *Poly
	Multiplicity int
}

// Factorization represents scalar * prod factor^multiplicity over Q[x].
type Factorization struct {
	Scalar  *big.Rat
	Factors []Factor
}

// FactorOverQ factors a polynomial by cyclotomic trial division:
// extract the content, force a positive leading coefficient, then
// trial-divide by Phi_n from high n down so primitive factors are
// claimed before the lower cyclotomics that divide the same x^n - 1.
// Whatever survives is kept monic as a single presumed-irreducible
// factor.
func FactorOverQ(p *Poly) Factorization {
	if p.IsZero() {
		return Factorization{Scalar: new(big.Rat)}
	}
	if p.IsConstant() {
		return Factorization{Scalar: p.Coeff(0)}
	}

	scalar := p.Content()
	prim := p.PrimitivePart()
	if prim.LeadingCoeff().Sign() < 0 {
		scalar.Neg(scalar)
		prim = prim.Neg()
	}

	remaining := prim
	var factors []Factor
	maxN := remaining.Degree()
	for n := maxN; n >= 1; n-- {
		phiDeg := eulerPhi(n)
		for !remaining.IsConstant() && phiDeg <= remaining.Degree() {
			phi := Cyclotomic(n)
			q, r := remaining.DivRem(phi)
			if !r.IsZero() {
				break
			}
			found := false
			for i := range factors {
				if factors[i].Poly.Equal(phi) {
					factors[i].Multiplicity++
					found = true
					break
				}
			}
			if !found {
				factors = append(factors, Factor{Poly: phi, Multiplicity: 1})
			}
			remaining = q
		}
		if remaining.IsConstant() {
			break
		}
	}

	if !remaining.IsConstant() {
		if lc := remaining.LeadingCoeff(); lc.Cmp(big.NewRat(1, 1)) != 0 {
			scalar.Mul(scalar, lc)
			remaining = remaining.Monic()
		}
		factors = append(factors, Factor{Poly: remaining, Multiplicity: 1})
	} else if !remaining.IsOne() {
		scalar.Mul(scalar, remaining.Coeff(0))
	}

	sort.Slice(factors, func(i, j int) bool {
		a, b := factors[i].Poly, factors[j].Poly
		if a.Degree() != b.Degree() {
			return a.Degree() < b.Degree()
		}
		for k := 0; k <= a.Degree(); k++ {
			if c := a.Coeff(k).Cmp(b.Coeff(k)); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return Factorization{Scalar: scalar, Factors: factors}
}

// Expand multiplies the factorization back out.
func (f Factorization) Expand() *Poly {
	out := Constant(f.Scalar)
	for _, fac := range f.Factors {
		out = out.Mul(fac.Poly.Pow(fac.Multiplicity))
	}
	return out
}
