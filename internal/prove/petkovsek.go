package prove

import (
	"math/big"
	"sort"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

// divisorTrialCap bounds trial division in positiveDivisors, and
// candidateCap bounds the rational-root candidate grid.
const (
	divisorTrialCap = 10000
	candidateCap    = 5000
)

// ClosedForm writes a q-hypergeometric solution as
//
//	scalar * q^{QPowerCoeff * n(n-1)/2}
//	       * prod_i (NumerFactors_i; q)_n / prod_j (DenomFactors_j; q)_n
//
// The n(n-1)/2 convention matches the natural normalization of
// q-Pochhammer products. Purely geometric behavior r^n is not covered
// here; it lives entirely in PetkovsekSolution.Ratio.
type ClosedForm struct {
	Scalar       *big.Rat
	QPowerCoeff  int64
	NumerFactors []qseries.QMonomial
	DenomFactors []qseries.QMonomial
}

// PetkovsekSolution is one q-hypergeometric solution of a
// constant-coefficient q-recurrence. Ratio always holds the exact
// solution ratio y(n+1)/y(n); Form is non-nil only when the ratio
// decomposes cleanly into Pochhammer factors.
type PetkovsekSolution struct {
	Ratio *big.Rat
	Form  *ClosedForm
}

// positiveDivisors returns the sorted positive divisors of |n|, empty
// for n = 0. Trial division stops at divisorTrialCap, so very large
// inputs may yield only the small divisors.
func positiveDivisors(n *big.Int) []*big.Int {
	if n.Sign() == 0 {
		return nil
	}
	abs := new(big.Int).Abs(n)
	one := big.NewInt(1)
	if abs.Cmp(one) == 0 {
		return []*big.Int{big.NewInt(1)}
	}

	sqrt := new(big.Int).Sqrt(abs)
	var divisors []*big.Int
	rem := new(big.Int)
	for i := big.NewInt(1); i.Cmp(sqrt) <= 0 && i.Int64() <= divisorTrialCap; i.Add(i, one) {
		quo, r := new(big.Int).QuoRem(abs, i, rem)
		if r.Sign() == 0 {
			divisors = append(divisors, new(big.Int).Set(i))
			if quo.Cmp(i) != 0 {
				divisors = append(divisors, quo)
			}
		}
	}
	sort.Slice(divisors, func(a, b int) bool { return divisors[a].Cmp(divisors[b]) < 0 })
	return divisors
}

func evalCharPoly(coefficients []*big.Rat, r *big.Rat) *big.Rat {
	d := len(coefficients) - 1
	result := new(big.Rat).Set(coefficients[d])
	for j := d - 1; j >= 0; j-- {
		result.Mul(result, r)
		result.Add(result, coefficients[j])
	}
	return result
}

// tryDecomposeRatio attempts to write the ratio as Pochhammer factor
// steps: first (1-q^a)/(1-q^b), then a product of two such ratios. A
// pure q-power ratio returns nil since geometric growth is already
// captured by the ratio itself.
func tryDecomposeRatio(ratio, qv *big.Rat) *ClosedForm {
	if ratio.Sign() == 0 {
		return nil
	}
	one := big.NewRat(1, 1)

	for m := int64(-20); m <= 20; m++ {
		if series.RatPow(qv, m).Cmp(ratio) == 0 {
			return nil
		}
	}

	oneMinusQ := func(e int64) *big.Rat {
		return new(big.Rat).Sub(one, series.RatPow(qv, e))
	}

	for a := int64(-10); a <= 10; a++ {
		if a == 0 {
			continue
		}
		numer := oneMinusQ(a)
		if numer.Sign() == 0 {
			continue
		}
		for b := int64(-10); b <= 10; b++ {
			if b == 0 {
				continue
			}
			denom := oneMinusQ(b)
			if denom.Sign() == 0 {
				continue
			}
			if new(big.Rat).Quo(numer, denom).Cmp(ratio) == 0 {
				return &ClosedForm{
					Scalar:       big.NewRat(1, 1),
					NumerFactors: []qseries.QMonomial{qseries.QPower(a)},
					DenomFactors: []qseries.QMonomial{qseries.QPower(b)},
				}
			}
		}
	}

	for a1 := int64(-6); a1 <= 6; a1++ {
		if a1 == 0 {
			continue
		}
		n1 := oneMinusQ(a1)
		if n1.Sign() == 0 {
			continue
		}
		for a2 := a1; a2 <= 6; a2++ {
			if a2 == 0 {
				continue
			}
			n2 := oneMinusQ(a2)
			if n2.Sign() == 0 {
				continue
			}
			numer := new(big.Rat).Mul(n1, n2)
			for b1 := int64(-6); b1 <= 6; b1++ {
				if b1 == 0 {
					continue
				}
				d1 := oneMinusQ(b1)
				if d1.Sign() == 0 {
					continue
				}
				for b2 := b1; b2 <= 6; b2++ {
					if b2 == 0 {
						continue
					}
					d2 := oneMinusQ(b2)
					if d2.Sign() == 0 {
						continue
					}
					denom := new(big.Rat).Mul(d1, d2)
					if new(big.Rat).Quo(numer, denom).Cmp(ratio) == 0 {
						return &ClosedForm{
							Scalar:       big.NewRat(1, 1),
							NumerFactors: []qseries.QMonomial{qseries.QPower(a1), qseries.QPower(a2)},
							DenomFactors: []qseries.QMonomial{qseries.QPower(b1), qseries.QPower(b2)},
						}
					}
				}
			}
		}
	}

	return nil
}

// QPetkovsek finds all q-hypergeometric solutions of the
// constant-coefficient recurrence c_0 S(n) + ... + c_d S(n+d) = 0. The
// solution ratio r = y(n+1)/y(n) must be a root of the characteristic
// polynomial c_0 + c_1 r + ... + c_d r^d, found here by the rational
// root theorem. Fewer than two coefficients or a zero leading
// coefficient gives ErrDegenerateInput; no rational root gives
// ErrNoHypergeometricSolution.
func QPetkovsek(coefficients []*big.Rat, qv *big.Rat) ([]PetkovsekSolution, error) {
	if len(coefficients) < 2 {
		return nil, ErrDegenerateInput
	}
	d := len(coefficients) - 1
	if coefficients[d].Sign() == 0 {
		return nil, ErrDegenerateInput
	}

	if d == 1 {
		ratio := new(big.Rat).Quo(coefficients[0], coefficients[1])
		ratio.Neg(ratio)
		return []PetkovsekSolution{{Ratio: ratio, Form: tryDecomposeRatio(ratio, qv)}}, nil
	}

	// Clear denominators so the rational root theorem applies.
	lcm := big.NewInt(1)
	for _, c := range coefficients {
		gcd := new(big.Int).GCD(nil, nil, lcm, c.Denom())
		lcm.Div(new(big.Int).Mul(lcm, c.Denom()), gcd)
	}
	intCoeffs := make([]*big.Int, len(coefficients))
	for i, c := range coefficients {
		scaled := new(big.Rat).Mul(c, new(big.Rat).SetInt(lcm))
		intCoeffs[i] = new(big.Int).Set(scaled.Num())
	}

	if intCoeffs[0].Sign() == 0 {
		// r = 0 is a root; peel it off and solve the reduced recurrence.
		results := []PetkovsekSolution{{Ratio: new(big.Rat)}}
		if d >= 2 {
			sub, err := QPetkovsek(coefficients[1:], qv)
			if err == nil {
				results = append(results, sub...)
			}
		}
		return results, nil
	}

	pDivisors := positiveDivisors(intCoeffs[0])
	sDivisors := positiveDivisors(intCoeffs[d])
	if len(pDivisors)*len(sDivisors) > candidateCap {
		return nil, ErrNoHypergeometricSolution
	}

	var candidates []*big.Rat
	for _, p := range pDivisors {
		for _, s := range sDivisors {
			pos := new(big.Rat).SetFrac(p, s)
			candidates = append(candidates, pos, new(big.Rat).Neg(pos))
		}
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].Cmp(candidates[b]) < 0 })

	var results []PetkovsekSolution
	var prev *big.Rat
	for _, candidate := range candidates {
		if prev != nil && prev.Cmp(candidate) == 0 {
			continue
		}
		prev = candidate
		if evalCharPoly(coefficients, candidate).Sign() == 0 {
			results = append(results, PetkovsekSolution{
				Ratio: candidate,
				Form:  tryDecomposeRatio(candidate, qv),
			})
		}
	}

	if len(results) == 0 {
		return nil, ErrNoHypergeometricSolution
	}
	return results, nil
}
