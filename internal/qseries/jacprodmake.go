package qseries

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/papapumpkin/qsq/internal/series"
)

// JacFactor identifies one Jacobi triple product JAC(a,b) =
// (q^a;q^b)_inf * (q^{b-a};q^b)_inf * (q^b;q^b)_inf.
type JacFactor struct {
	A, B int64
}

// JacProductForm is the result of Jacprodmake: the input series as
// prod JAC(a,b)^e. IsExact reports whether every prodmake exponent was
// explained by the fitted period.
type JacProductForm struct {
	Factors map[JacFactor]int64
	Scalar  *big.Rat
	IsExact bool
}

// Jacprodmake expresses a series as a product of Jacobi triple
// products. It runs Prodmake, then searches candidate periods b,
// fitting residue classes r and b-r (which must share one common
// exponent value) against JAC(r,b) factors; the b/2 class absorbs a
// doubled contribution. The best-scoring period wins; if no period
// explains every exponent the fit fails with ErrNoCanonicalForm.
func Jacprodmake(f *series.Series, maxN int64) (JacProductForm, error) {
	return jacprodmake(f, maxN, 0)
}

// JacprodmakeWithPeriod restricts the period search to divisors of pp
// greater than 1.
func JacprodmakeWithPeriod(f *series.Series, maxN, pp int64) (JacProductForm, error) {
	return jacprodmake(f, maxN, pp)
}

func jacprodmake(f *series.Series, maxN, pp int64) (JacProductForm, error) {
	product, err := Prodmake(f, maxN)
	if err != nil {
		return JacProductForm{}, err
	}
	if len(product.Exponents) == 0 {
		return JacProductForm{Factors: map[JacFactor]int64{}, Scalar: big.NewRat(1, 1), IsExact: true}, nil
	}

	var candidates []int64
	if pp > 0 {
		for _, d := range divisors(pp) {
			if d > 1 && d <= product.TermsUsed {
				candidates = append(candidates, d)
			}
		}
	} else {
		for b := int64(1); b <= product.TermsUsed; b++ {
			candidates = append(candidates, b)
		}
	}

	total := int64(len(product.Exponents))
	var best periodFit
	for _, b := range candidates {
		fit := tryPeriod(product.Exponents, b, product.TermsUsed)
		if fit.explained >= best.explained {
			best = fit
		}
		if best.explained == total && best.residualZero {
			break
		}
	}

	if !best.residualZero || best.explained != total {
		return JacProductForm{}, fmt.Errorf("%w: no period explains the product exponents", ErrNoCanonicalForm)
	}
	return JacProductForm{Factors: best.factors, Scalar: big.NewRat(1, 1), IsExact: true}, nil
}

type periodFit struct {
	factors      map[JacFactor]int64
	explained    int64
	residualZero bool
}

// tryPeriod fits the prodmake exponents against JAC factors of period
// b. JAC(r,b)^e contributes -e to a_n on the residue classes r, b-r
// and 0 (mod b); the fit requires each class pair to carry one common
// value and peels explained classes off a residual copy.
func tryPeriod(a map[int64]int64, b, maxN int64) periodFit {
	residual := make(map[int64]int64, len(a))
	for k, v := range a {
		residual[k] = v
	}
	factors := make(map[JacFactor]int64)

	classValues := func(start int64) ([]int64, bool) {
		var vals []int64
		for n := start; n <= maxN; n += b {
			vals = append(vals, residual[n])
		}
		return vals, len(vals) > 0
	}
	allSame := func(vals []int64) bool {
		for _, v := range vals {
			if v != vals[0] {
				return false
			}
		}
		return true
	}

	for r := int64(1); r <= b/2; r++ {
		if r == b-r {
			continue // the b/2 class carries a doubled weight, handled below
		}
		vr, ok := classValues(r)
		if !ok {
			continue
		}
		vbr, okbr := classValues(b - r)
		first := vr[0]
		firstBR := first
		if okbr {
			firstBR = vbr[0]
		}
		if !allSame(vr) || !allSame(vbr) || first != firstBR || first == 0 {
			continue
		}
		factors[JacFactor{A: r, B: b}] = -first
		for n := r; n <= maxN; n += b {
			delete(residual, n)
		}
		for n := b - r; n <= maxN; n += b {
			delete(residual, n)
		}
		// Peel the (q^b;q^b)_inf contribution off residue class 0.
		for n := b; n <= maxN; n += b {
			if v := residual[n] - first; v != 0 {
				residual[n] = v
			} else {
				delete(residual, n)
			}
		}
	}

	if b%2 == 0 {
		r := b / 2
		if vals, ok := classValues(r); ok && allSame(vals) && vals[0] != 0 && vals[0]%2 == 0 {
			first := vals[0]
			factors[JacFactor{A: r, B: b}] = -first / 2
			for n := r; n <= maxN; n += b {
				delete(residual, n)
			}
			for n := b; n <= maxN; n += b {
				if v := residual[n] - first/2; v != 0 {
					residual[n] = v
				} else {
					delete(residual, n)
				}
			}
		}
	}

	explained := int64(len(a) - len(residual))
	residualZero := true
	for _, v := range residual {
		if v != 0 {
			residualZero = false
			break
		}
	}
	return periodFit{factors: factors, explained: explained, residualZero: residualZero}
}

// Expand reconstructs the fitted product as a series, for verifying a
// Jacprodmake result against its input.
func (j JacProductForm) Expand(trunc int64) *series.Series {
	// Deterministic factor order keeps expansion reproducible.
	keys := make([]JacFactor, 0, len(j.Factors))
	for k := range j.Factors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, k int) bool {
		if keys[i].B != keys[k].B {
			return keys[i].B < keys[k].B
		}
		return keys[i].A < keys[k].A
	})
	out := series.One(trunc)
	for _, k := range keys {
		base := Jacprod(k.A, k.B, trunc)
		pw, err := base.Pow(j.Factors[k])
		if err != nil {
			panic(err)
		}
		out = out.Mul(pw)
	}
	if j.Scalar != nil {
		out = out.Scale(j.Scalar)
	}
	return out
}
