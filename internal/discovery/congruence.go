package discovery

import (
	"fmt"
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// Congruence records an arithmetic-progression divisibility pattern:
// every coefficient c(Modulus*k + Residue) sampled below the truncation
// order is divisible by CongMod.
type Congruence struct {
	Modulus int64
	Residue int64
	CongMod int64
}

func (c Congruence) String() string {
	return fmt.Sprintf("c(%dn+%d) == 0 mod %d", c.Modulus, c.Residue, c.CongMod)
}

// Findcong scans f for Ramanujan-style congruences. For each modulus m
// in moduli it checks, for every residue 0 <= r < m, whether all
// sampled coefficients c(m*k+r) are divisible by m. Only classes with
// at least two nonzero samples count; an all-zero progression is
// trivially divisible and reported separately by the caller if wanted.
// The result is ordered by moduli order, then by residue. This is a
// heuristic over the truncated window, not a proof.
func Findcong(f *series.Series, moduli []int64) []Congruence {
	var found []Congruence
	for _, m := range moduli {
		if m < 2 {
			continue
		}
		for r := int64(0); r < m; r++ {
			if progressionDivisible(f, m, r, m) {
				found = append(found, Congruence{Modulus: m, Residue: r, CongMod: m})
			}
		}
	}
	return found
}

// FindcongMod is Findcong with the congruence modulus decoupled from
// the progression modulus: it reports classes mod m whose coefficients
// all vanish mod c.
func FindcongMod(f *series.Series, moduli []int64, congMods []int64) []Congruence {
	var found []Congruence
	for _, m := range moduli {
		if m < 2 {
			continue
		}
		for _, c := range congMods {
			if c < 2 {
				continue
			}
			for r := int64(0); r < m; r++ {
				if progressionDivisible(f, m, r, c) {
					found = append(found, Congruence{Modulus: m, Residue: r, CongMod: c})
				}
			}
		}
	}
	return found
}

func progressionDivisible(f *series.Series, m, r, c int64) bool {
	mod := big.NewInt(c)
	rem := new(big.Int)
	nonzero := 0
	start := f.MinOrder()
	for k := start; k < f.Trunc(); k++ {
		if k < r || (k-r)%m != 0 {
			continue
		}
		coeff := f.Coeff(k)
		if !coeff.IsInt() {
			return false
		}
		if coeff.Sign() != 0 {
			nonzero++
		}
		if rem.Mod(coeff.Num(), mod).Sign() != 0 {
			return false
		}
	}
	return nonzero >= 2
}

// Checkmult tests whether the coefficients of f are multiplicative:
// c(m*n) == c(m)*c(n) for all coprime pairs m, n >= startIndex with
// m*n below the truncation order. Coefficient indexing starts at
// startIndex, i.e. c(n) means the coefficient of q^(startIndex+n-1)
// when startIndex > 0; pass 1 for plain q^n indexing. The check is
// heuristic over the truncated window.
func Checkmult(f *series.Series, startIndex int64) bool {
	if startIndex < 1 {
		startIndex = 1
	}
	offset := startIndex - 1
	limit := f.Trunc() - offset
	if limit < 2 {
		return false
	}
	at := func(n int64) *big.Rat { return f.Coeff(n + offset) }
	// c(1) must be 1 for a multiplicative normalization.
	if at(1).Cmp(big.NewRat(1, 1)) != 0 {
		return false
	}
	prod := new(big.Rat)
	for m := int64(2); m < limit; m++ {
		for n := m + 1; m*n < limit; n++ {
			if gcd64(m, n) != 1 {
				continue
			}
			prod.Mul(at(m), at(n))
			if at(m * n).Cmp(prod) != 0 {
				return false
			}
		}
	}
	return true
}

// Checkprod tests whether f agrees, up to order, with the finite
// product prod_{k=1..len(exps)} (1-q^k)^exps[k-1].
func Checkprod(f *series.Series, exps []int64, order int64) bool {
	if order > f.Trunc() {
		order = f.Trunc()
	}
	if order < 1 {
		return false
	}
	candidate, err := expandExponents(exps, order)
	if err != nil {
		return false
	}
	return f.Truncate(order).Equal(candidate)
}

// expandExponents builds prod (1-q^k)^exps[k-1] truncated to order.
func expandExponents(exps []int64, order int64) (*series.Series, error) {
	out := series.One(order)
	for i, e := range exps {
		if e == 0 {
			continue
		}
		k := int64(i + 1)
		factor := series.One(order)
		factor.SetCoeff(k, big.NewRat(-1, 1))
		powered, err := factor.Pow(e)
		if err != nil {
			return nil, err
		}
		out = out.Mul(powered)
	}
	return out, nil
}

// Findprod searches for an exponent vector e of length maxDeg with
// entries in [-maxExp, maxExp] such that f matches
// prod (1-q^k)^e_k to the given order. Vectors whose nonzero entries
// share a common factor are skipped, so any result is primitive. The
// enumeration is an odometer over the full grid in a fixed order, so
// the result is deterministic; exhausting the grid without a match
// returns ErrSearchExhausted.
func Findprod(f *series.Series, maxDeg, maxExp, order int64) ([]int64, error) {
	if maxDeg < 1 || maxExp < 1 {
		return nil, fmt.Errorf("findprod: degree and exponent bounds must be positive: %w", ErrInvalidArgument)
	}
	exps := make([]int64, maxDeg)
	for i := range exps {
		exps[i] = -maxExp
	}
	for {
		if isPrimitiveVector(exps) && Checkprod(f, exps, order) {
			out := make([]int64, len(exps))
			copy(out, exps)
			return out, nil
		}
		if !advanceOdometer(exps, maxExp) {
			return nil, fmt.Errorf("findprod: no exponent vector within bounds: %w", ErrSearchExhausted)
		}
	}
}

// isPrimitiveVector reports whether the gcd of the absolute values of
// the nonzero entries is 1. The zero vector is not primitive.
func isPrimitiveVector(v []int64) bool {
	g := int64(0)
	for _, e := range v {
		if e < 0 {
			e = -e
		}
		g = gcd64(g, e)
		if g == 1 {
			return true
		}
	}
	return false
}

func advanceOdometer(v []int64, maxExp int64) bool {
	for i := range v {
		if v[i] < maxExp {
			v[i]++
			return true
		}
		v[i] = -maxExp
	}
	return false
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
