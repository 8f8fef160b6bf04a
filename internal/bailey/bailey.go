// Package bailey implements Bailey pairs, the Bailey lemma, chain
// iteration, the weak Bailey lemma, and a catalog of known base pairs.
//
// A Bailey pair relative to the parameter a is a pair of sequences
// (alpha_n, beta_n) satisfying
//
//	beta_n = sum_{j=0}^{n} alpha_j / [(q;q)_{n-j} * (aq;q)_{n+j}]
//
// The Bailey lemma transforms one pair into another; iterating the
// transform (a Bailey chain) produces infinite families of q-series
// identities. The weak Bailey lemma states
//
//	sum_{n>=0} q^{n^2} a^n beta_n = 1/(aq;q)_inf * sum_{n>=0} q^{n^2} a^n alpha_n
//
// References: DLMF 17.12, Andrews (1984), Warnaar (2001).
package bailey

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

var (
	// ErrNoMatch is returned by Discover when no catalog pair
	// reproduces the input series.
	ErrNoMatch = errors.New("no catalog pair matches the series")

	// ErrDegenerateInput marks lemma parameters the transform cannot
	// handle, such as a zero b or c coefficient.
	ErrDegenerateInput = errors.New("degenerate input")
)

// Kind classifies how a pair's terms are produced.
type Kind string

const (
	// KindUnit is alpha_0 = 1, alpha_n = 0 for n > 0, with
	// beta_n = 1/[(q;q)_n * (aq;q)_n] forced by the pair relation.
	KindUnit Kind = "unit"

	// KindDelta is beta_0 = 1, beta_n = 0 for n > 0, with
	// alpha_n = (a;q)_n (1 - a q^{2n}) (-1)^n q^{n(n-1)/2} / [(q;q)_n (1-a)]
	// forced by inverting the pair relation. One limiting Bailey lemma
	// step carries it to the Rogers-Ramanujan pair.
	KindDelta Kind = "delta"

	// KindRogersRamanujan is the pair of DLMF 17.12.6:
	// alpha_n = (a;q)_n (1 - a q^{2n}) (-1)^n q^{n(3n-1)/2} a^n / [(q;q)_n (1-a)],
	// beta_n = 1/(q;q)_n.
	KindRogersRamanujan Kind = "rogers-ramanujan"

	// KindQBinomial has alpha_n = (-1)^n z^n q^{n(n-1)/2}; beta_n is
	// computed from the defining relation.
	KindQBinomial Kind = "q-binomial"

	// KindTabulated holds explicit term tables, the result of a lemma
	// application. Terms are full series since lemma weights carry
	// q-power contributions.
	KindTabulated Kind = "tabulated"
)

// Pair is a Bailey pair with metadata for catalog storage. For every
// kind except KindTabulated the parameter a is supplied at evaluation
// time, since the classical pairs hold for general a. Tabulated terms
// are frozen at the a used when the lemma was applied.
type Pair struct {
	Name string
	Kind Kind
	Tags []string

	// Z is the q-binomial parameter; nil for other kinds.
	Z *big.Rat

	// Alphas and Betas hold tabulated terms; nil for other kinds.
	Alphas []*series.Series
	Betas  []*series.Series
}

// Alpha evaluates the n-th alpha term as a truncated series.
func (p *Pair) Alpha(n int64, a qseries.QMonomial, trunc int64) (*series.Series, error) {
	switch p.Kind {
	case KindUnit:
		if n == 0 {
			return series.One(trunc), nil
		}
		return series.New(trunc), nil
	case KindDelta:
		return inversionAlpha(n, a, 0, trunc)
	case KindRogersRamanujan:
		return inversionAlpha(n, a, n, trunc)
	case KindQBinomial:
		return qbinomAlpha(n, p.Z, trunc), nil
	case KindTabulated:
		if idx := int(n); idx >= 0 && idx < len(p.Alphas) {
			return p.Alphas[idx].Clone(), nil
		}
		return series.New(trunc), nil
	}
	return nil, fmt.Errorf("%w: unknown pair kind %q", ErrDegenerateInput, p.Kind)
}

// Beta evaluates the n-th beta term as a truncated series.
func (p *Pair) Beta(n int64, a qseries.QMonomial, trunc int64) (*series.Series, error) {
	switch p.Kind {
	case KindUnit:
		return unitBeta(n, a, trunc)
	case KindDelta:
		if n == 0 {
			return series.One(trunc), nil
		}
		return series.New(trunc), nil
	case KindRogersRamanujan:
		qq, err := qseries.Aqprod(qseries.QPower(1), n, trunc)
		if err != nil {
			return nil, err
		}
		return series.One(trunc).Div(qq)
	case KindQBinomial:
		return relationBeta(p, n, a, trunc)
	case KindTabulated:
		if idx := int(n); idx >= 0 && idx < len(p.Betas) {
			return p.Betas[idx].Clone(), nil
		}
		return series.New(trunc), nil
	}
	return nil, fmt.Errorf("%w: unknown pair kind %q", ErrDegenerateInput, p.Kind)
}

// unitBeta computes 1/[(q;q)_n * (aq;q)_n].
func unitBeta(n int64, a qseries.QMonomial, trunc int64) (*series.Series, error) {
	qq, err := qseries.Aqprod(qseries.QPower(1), n, trunc)
	if err != nil {
		return nil, err
	}
	aq := a.Mul(qseries.QPower(1))
	aqq, err := qseries.Aqprod(aq, n, trunc)
	if err != nil {
		return nil, err
	}
	return series.One(trunc).Div(qq.Mul(aqq))
}

// inversionAlpha computes the alpha family obtained by inverting the
// pair relation against a delta beta and shifting by the limiting
// lemma weight a^n q^{n*extraQ}:
//
//	alpha_n = (a;q)_n (1 - a q^{2n}) (-1)^n q^{n(n-1)/2 + n*extraQ} a^extraA / [(q;q)_n (1-a)]
//
// extraQ = 0 gives the delta pair's alpha; extraQ = n folds in the
// a^n q^{n^2} weight and gives the Rogers-Ramanujan alpha with its
// q^{n(3n-1)/2} exponent.
//
// At a = 1 the formula has a removable singularity; the limit form is
// alpha_n = (1 + q^n) (-1)^n q^{n(n-1)/2 + n*extraQ} for n >= 1, since
// (a;q)_n / (1-a) -> (q;q)_{n-1} and (1-q^{2n})/(q;q)_n * (q;q)_{n-1}
// = 1 + q^n.
func inversionAlpha(n int64, a qseries.QMonomial, extraQ, trunc int64) (*series.Series, error) {
	if n == 0 {
		return series.One(trunc), nil
	}

	sign := big.NewRat(1, 1)
	if n%2 != 0 {
		sign.Neg(sign)
	}
	baseExp := n*(n-1)/2 + n*extraQ

	if a.IsOne() {
		t1 := series.Monomial(sign, baseExp, trunc)
		t2 := series.Monomial(sign, baseExp+n, trunc)
		return t1.Add(t2), nil
	}

	aPoch, err := qseries.Aqprod(a, n, trunc)
	if err != nil {
		return nil, err
	}
	oneMinusAQ2n := oneMinus(a.Mul(qseries.QPower(2*n)), trunc)

	// The a^n factor of the Rogers-Ramanujan weight: coefficient part
	// only when extraQ > 0, the q-power part already sits in baseExp.
	scalar := new(big.Rat).Set(sign)
	qExp := baseExp
	if extraQ > 0 {
		scalar.Mul(scalar, series.RatPow(a.Coeff, n))
		qExp += a.Power * n
	}
	weight := series.Monomial(scalar, qExp, trunc)

	qq, err := qseries.Aqprod(qseries.QPower(1), n, trunc)
	if err != nil {
		return nil, err
	}
	denom := qq.Mul(oneMinus(a, trunc))

	return aPoch.Mul(oneMinusAQ2n).Mul(weight).Div(denom)
}

// qbinomAlpha computes (-1)^n z^n q^{n(n-1)/2}.
func qbinomAlpha(n int64, z *big.Rat, trunc int64) *series.Series {
	c := series.RatPow(z, n)
	if n%2 != 0 {
		c.Neg(c)
	}
	return series.Monomial(c, n*(n-1)/2, trunc)
}

// relationBeta computes beta_n straight from the defining relation.
func relationBeta(p *Pair, n int64, a qseries.QMonomial, trunc int64) (*series.Series, error) {
	aq := a.Mul(qseries.QPower(1))
	out := series.New(trunc)
	for j := int64(0); j <= n; j++ {
		alpha, err := p.Alpha(j, a, trunc)
		if err != nil {
			return nil, err
		}
		qq, err := qseries.Aqprod(qseries.QPower(1), n-j, trunc)
		if err != nil {
			return nil, err
		}
		aqq, err := qseries.Aqprod(aq, n+j, trunc)
		if err != nil {
			return nil, err
		}
		term, err := alpha.Div(qq.Mul(aqq))
		if err != nil {
			return nil, err
		}
		out = out.Add(term)
	}
	return out, nil
}

// oneMinus builds the series 1 - c*q^m.
func oneMinus(m qseries.QMonomial, trunc int64) *series.Series {
	f := series.One(trunc)
	if m.Power == 0 {
		v := f.Coeff(0)
		v.Sub(v, m.Coeff)
		f.SetCoeff(0, v)
		return f
	}
	if m.Power < trunc {
		f.SetCoeff(m.Power, new(big.Rat).Neg(m.Coeff))
	}
	return f
}

// Verify checks the pair relation beta_n = sum_{j<=n} alpha_j /
// [(q;q)_{n-j} * (aq;q)_{n+j}] for n = 0..maxN, comparing truncated
// series. It reports false on the first index that fails.
func Verify(p *Pair, a qseries.QMonomial, maxN, trunc int64) (bool, error) {
	for n := int64(0); n <= maxN; n++ {
		beta, err := p.Beta(n, a, trunc)
		if err != nil {
			return false, err
		}
		sum, err := relationBeta(p, n, a, trunc)
		if err != nil {
			return false, err
		}
		if !beta.Equal(sum) {
			return false, nil
		}
	}
	return true, nil
}

// ApplyLemma transforms a pair relative to a into a new tabulated pair
// by the Bailey lemma with free parameters b and c:
//
//	alpha'_n = (b;q)_n (c;q)_n (aq/bc)^n / [(aq/b;q)_n (aq/c;q)_n] * alpha_n
//	beta'_n  = 1/[(aq/b;q)_n (aq/c;q)_n] * sum_{k<=n}
//	           (b;q)_k (c;q)_k (aq/bc;q)_{n-k} (aq/bc)^k / (q;q)_{n-k} * beta_k
//
// A nil b or c drives that parameter to infinity; each limit replaces
// its (p;q)_k (aq/bc)^k contribution with (-1)^k q^{k(k-1)/2} and drops
// the corresponding outer Pochhammer. With both limits taken the weight
// collapses to a^k q^{k^2}, the classical chain step.
func ApplyLemma(p *Pair, a qseries.QMonomial, b, c *qseries.QMonomial, maxN, trunc int64) (*Pair, error) {
	aq := a.Mul(qseries.QPower(1))

	// z collects the finite part of aq/(bc); limits counts parameters
	// driven to infinity, each contributing (-1)^k q^{k(k-1)/2}.
	z := aq
	limits := int64(0)
	for _, param := range []*qseries.QMonomial{b, c} {
		if param == nil {
			limits++
			continue
		}
		if param.Coeff == nil || param.Coeff.Sign() == 0 {
			return nil, fmt.Errorf("%w: lemma parameter must be nonzero", ErrDegenerateInput)
		}
		z = z.Div(*param)
	}

	weight := func(k int64) *series.Series {
		coeff := series.RatPow(z.Coeff, k)
		if limits%2 != 0 && k%2 != 0 {
			coeff.Neg(coeff)
		}
		exp := z.Power*k + limits*(k*(k-1)/2)
		return series.Monomial(coeff, exp, trunc)
	}

	// pochOrOne is (p;q)_k for a finite parameter, 1 under a limit.
	pochOrOne := func(param *qseries.QMonomial, k int64) (*series.Series, error) {
		if param == nil {
			return series.One(trunc), nil
		}
		return qseries.Aqprod(*param, k, trunc)
	}
	var aqOverB, aqOverC *qseries.QMonomial
	if b != nil {
		m := aq.Div(*b)
		aqOverB = &m
	}
	if c != nil {
		m := aq.Div(*c)
		aqOverC = &m
	}

	alphas := make([]*series.Series, 0, maxN+1)
	betas := make([]*series.Series, 0, maxN+1)

	for n := int64(0); n <= maxN; n++ {
		bPoch, err := pochOrOne(b, n)
		if err != nil {
			return nil, err
		}
		cPoch, err := pochOrOne(c, n)
		if err != nil {
			return nil, err
		}
		aqbPoch, err := pochOrOne(aqOverB, n)
		if err != nil {
			return nil, err
		}
		aqcPoch, err := pochOrOne(aqOverC, n)
		if err != nil {
			return nil, err
		}
		outerDenom := aqbPoch.Mul(aqcPoch)

		alpha, err := p.Alpha(n, a, trunc)
		if err != nil {
			return nil, err
		}
		alphaPrime, err := bPoch.Mul(cPoch).Mul(weight(n)).Mul(alpha).Div(outerDenom)
		if err != nil {
			return nil, err
		}
		alphas = append(alphas, alphaPrime)

		sum := series.New(trunc)
		for k := int64(0); k <= n; k++ {
			bPochK, err := pochOrOne(b, k)
			if err != nil {
				return nil, err
			}
			cPochK, err := pochOrOne(c, k)
			if err != nil {
				return nil, err
			}
			// (aq/bc;q)_{n-k} survives only with both parameters
			// finite; under any limit aq/bc -> 0 and the symbol is 1.
			zPoch := series.One(trunc)
			if limits == 0 {
				zPoch, err = qseries.Aqprod(z, n-k, trunc)
				if err != nil {
					return nil, err
				}
			}
			qq, err := qseries.Aqprod(qseries.QPower(1), n-k, trunc)
			if err != nil {
				return nil, err
			}
			beta, err := p.Beta(k, a, trunc)
			if err != nil {
				return nil, err
			}
			term, err := bPochK.Mul(cPochK).Mul(zPoch).Mul(weight(k)).Mul(beta).Div(qq)
			if err != nil {
				return nil, err
			}
			sum = sum.Add(term)
		}
		betaPrime, err := sum.Div(outerDenom)
		if err != nil {
			return nil, err
		}
		betas = append(betas, betaPrime)
	}

	return &Pair{
		Name:   fmt.Sprintf("lemma(%s)", p.Name),
		Kind:   KindTabulated,
		Tags:   []string{"derived"},
		Alphas: alphas,
		Betas:  betas,
	}, nil
}

// Chain applies the Bailey lemma depth times with the same parameters,
// threading each output pair as the next input. The returned slice has
// depth+1 entries starting with the input pair.
func Chain(p *Pair, a qseries.QMonomial, b, c *qseries.QMonomial, depth int, maxN, trunc int64) ([]*Pair, error) {
	chain := make([]*Pair, 0, depth+1)
	chain = append(chain, p)

	current := p
	for i := 0; i < depth; i++ {
		next, err := ApplyLemma(current, a, b, c, maxN, trunc)
		if err != nil {
			return nil, err
		}
		chain = append(chain, next)
		current = next
	}
	return chain, nil
}

// WeakLemma computes both sides of the weak Bailey lemma identity
//
//	LHS = sum_{n>=0} q^{n^2} a^n beta_n
//	RHS = 1/(aq;q)_inf * sum_{n>=0} q^{n^2} a^n alpha_n
//
// summed for n = 0..maxN, stopping early once the q^{n^2} weight
// clears the truncation order. The caller checks equality.
func WeakLemma(p *Pair, a qseries.QMonomial, maxN, trunc int64) (lhs, rhs *series.Series, err error) {
	lhs = series.New(trunc)
	alphaSum := series.New(trunc)

	for n := int64(0); n <= maxN; n++ {
		qExp := n*n + a.Power*n
		if qExp >= trunc {
			break
		}
		w := series.Monomial(series.RatPow(a.Coeff, n), qExp, trunc)

		beta, err := p.Beta(n, a, trunc)
		if err != nil {
			return nil, nil, err
		}
		lhs = lhs.Add(w.Mul(beta))

		alpha, err := p.Alpha(n, a, trunc)
		if err != nil {
			return nil, nil, err
		}
		alphaSum = alphaSum.Add(w.Mul(alpha))
	}

	aqInf := qseries.AqprodInf(a.Mul(qseries.QPower(1)), trunc)
	rhs, err = alphaSum.Div(aqInf)
	if err != nil {
		return nil, nil, err
	}
	return lhs, rhs, nil
}
