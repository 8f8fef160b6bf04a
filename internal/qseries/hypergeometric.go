package qseries

import (
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// Hypergeometric holds the parameters of a basic hypergeometric series
//
//	rphis(a_1..a_r; b_1..b_s; q, z) =
//	   sum_{n>=0} [(a_1;q)_n...(a_r;q)_n] / [(q;q)_n (b_1;q)_n...(b_s;q)_n]
//	                * [(-1)^n q^{n(n-1)/2}]^{1+s-r} * z^n
//
// with each parameter a coefficient times a power of q.
type Hypergeometric struct {
	Upper    []QMonomial
	Lower    []QMonomial
	Argument QMonomial
}

func (h Hypergeometric) R() int { return len(h.Upper) }
func (h Hypergeometric) S() int { return len(h.Lower) }

// TerminationOrder returns the smallest n for which an upper parameter
// equals q^{-n}, which makes the series a finite sum. The second result
// is false for non-terminating series.
func (h Hypergeometric) TerminationOrder() (int64, bool) {
	best := int64(-1)
	for _, a := range h.Upper {
		if n, ok := a.IsQNegPower(); ok && (best < 0 || n < best) {
			best = n
		}
	}
	return best, best >= 0
}

// Bilateral holds the parameters of a bilateral series
//
//	rpsis(a_1..a_r; b_1..b_s; q, z) =
//	   sum_{n=-inf}^{inf} [(a_1;q)_n...(a_r;q)_n] / [(b_1;q)_n...(b_s;q)_n]
//	                * [(-1)^n q^{n(n-1)/2}]^{s-r} * z^n
//
// There is no (q;q)_n denominator and the extra-factor exponent is s-r.
type Bilateral struct {
	Upper    []QMonomial
	Lower    []QMonomial
	Argument QMonomial
}

func (h Bilateral) R() int { return len(h.Upper) }
func (h Bilateral) S() int { return len(h.Lower) }

// oneMinusCQM builds the two-term series 1 - c*q^m. Exponents at or
// beyond the truncation order contribute nothing; negative exponents
// yield a Laurent factor.
func oneMinusCQM(c *big.Rat, m, trunc int64) *series.Series {
	f := series.One(trunc)
	if m == 0 {
		v := f.Coeff(0)
		v.Sub(v, c)
		f.SetCoeff(0, v)
	} else if m < trunc {
		f.SetCoeff(m, new(big.Rat).Neg(c))
	}
	return f
}

// finitePochParts splits (a;q)_n for a = c*q^p into
// scale * q^power * f with f an ordinary series: every factor with a
// negative exponent is reflected through
// 1 - c*q^e = -c*q^e * (1 - (1/c)*q^{-e}), so no precision is lost to
// Laurent arithmetic. Requires n >= 0.
func finitePochParts(a QMonomial, n, trunc int64) (*big.Rat, int64, *series.Series) {
	scale := big.NewRat(1, 1)
	f := series.One(trunc)
	if a.Coeff.Sign() == 0 {
		return scale, 0, f
	}
	power := int64(0)
	cInv := new(big.Rat).Inv(a.Coeff)
	for k := int64(0); k < n; k++ {
		e := a.Power + k
		if e < 0 {
			scale.Mul(scale, new(big.Rat).Neg(a.Coeff))
			power += e
			f = f.Mul(pochFactor(cInv, -e, trunc))
		} else {
			f = f.Mul(pochFactor(a.Coeff, e, trunc))
		}
	}
	return scale, power, f
}

// evalPhiTerminating sums the finite series term by term. Each term's
// Pochhammer symbols are computed exactly via finitePochParts, with the
// monomial prefactors accumulated as a scalar and a net q-power and
// applied in one final shift.
func evalPhiTerminating(h Hypergeometric, nTerm, trunc, extra int64) (*series.Series, error) {
	result := series.New(trunc)
	for n := int64(0); n <= nTerm; n++ {
		scale := big.NewRat(1, 1)
		power := int64(0)
		num := series.One(trunc)
		for _, a := range h.Upper {
			s, p, f := finitePochParts(a, n, trunc)
			scale.Mul(scale, s)
			power += p
			num = num.Mul(f)
		}
		if num.IsZero() {
			continue
		}

		den := series.One(trunc)
		denScale := big.NewRat(1, 1)
		for _, b := range append([]QMonomial{QPower(1)}, h.Lower...) {
			s, p, f := finitePochParts(b, n, trunc)
			denScale.Mul(denScale, s)
			power -= p
			den = den.Mul(f)
		}

		// [(-1)^n q^{n(n-1)/2}]^extra
		if extra%2 != 0 && n%2 != 0 {
			scale.Neg(scale)
		}
		power += extra * n * (n - 1) / 2

		// z^n
		scale.Mul(scale, series.RatPow(h.Argument.Coeff, n))
		power += n * h.Argument.Power

		ratio, err := num.Div(den)
		if err != nil {
			return nil, err
		}
		scale.Quo(scale, denScale)
		result = result.Add(ratio.Scale(scale).Shift(power))
	}
	return result, nil
}

// EvalPhi expands a phi series to the truncation order by term-ratio
// accumulation: term n+1 is term n times
//
//	prod_i (1 - a_i q^n) / [(1 - q^{n+1}) prod_j (1 - b_j q^n)]
//	   * [(-1)^extra * q^{n*extra}] * z,    extra = 1+s-r.
//
// Terminating series (an upper parameter q^{-N}) take the exact
// finite-sum path instead: their Pochhammer symbols carry negative
// powers of q that the ratio recurrence cannot track.
func EvalPhi(h Hypergeometric, trunc int64) (*series.Series, error) {
	extra := int64(1 + h.S() - h.R())

	if t, ok := h.TerminationOrder(); ok {
		return evalPhiTerminating(h, t, trunc, extra)
	}

	result := series.New(trunc)
	term := series.One(trunc)

	maxN := trunc
	for n := int64(0); n <= maxN; n++ {
		result = result.Add(term)
		if n == maxN {
			break
		}

		numer := series.One(trunc)
		for _, a := range h.Upper {
			numer = numer.Mul(oneMinusCQM(a.Coeff, a.Power+n, trunc))
		}
		denom := oneMinusCQM(big.NewRat(1, 1), n+1, trunc)
		for _, b := range h.Lower {
			denom = denom.Mul(oneMinusCQM(b.Coeff, b.Power+n, trunc))
		}
		ratio, err := numer.Div(denom)
		if err != nil {
			return nil, err
		}

		if extra != 0 {
			// Step ratio of the [(-1)^n q^{n(n-1)/2}]^extra factor.
			sign := big.NewRat(1, 1)
			if extra%2 != 0 {
				sign.Neg(sign)
			}
			shift := n * extra
			if shift >= trunc {
				break
			}
			ratio = ratio.Mul(series.Monomial(sign, shift, trunc))
		}

		ratio = ratio.Mul(series.Monomial(h.Argument.Coeff, h.Argument.Power, trunc))
		term = term.Mul(ratio)
		if term.IsZero() {
			break
		}
	}
	return result, nil
}

// hasNegativePochhammerPole reports whether (a;q)_{-m} is undefined:
// the reflected denominator (a*q^{-m};q)_m contains a vanishing factor
// exactly when a = q^p with 0 < p <= m.
func hasNegativePochhammerPole(a QMonomial, m int64) bool {
	return a.Coeff.Cmp(big.NewRat(1, 1)) == 0 && a.Power > 0 && a.Power <= m
}

// EvalPsi expands a bilateral psi series to the truncation order. The
// non-negative half runs like EvalPhi without the (q;q)_n denominator;
// each negative term n = -m is assembled directly from negative-order
// Pochhammer symbols. Terms where any parameter hits a Pochhammer pole
// are skipped: a numerator pole makes the term zero and a denominator
// pole makes it divergent, neither contributes a finite value.
func EvalPsi(h Bilateral, trunc int64) (*series.Series, error) {
	extra := int64(h.S() - h.R())

	result, err := evalPsiPositive(h, trunc, extra)
	if err != nil {
		return nil, err
	}
	negative, err := evalPsiNegative(h, trunc, extra)
	if err != nil {
		return nil, err
	}
	return result.Add(negative), nil
}

func evalPsiPositive(h Bilateral, trunc, extra int64) (*series.Series, error) {
	result := series.New(trunc)
	term := series.One(trunc)

	for n := int64(0); n <= trunc; n++ {
		result = result.Add(term)
		if n == trunc {
			break
		}

		numer := series.One(trunc)
		for _, a := range h.Upper {
			numer = numer.Mul(oneMinusCQM(a.Coeff, a.Power+n, trunc))
		}
		denom := series.One(trunc)
		for _, b := range h.Lower {
			denom = denom.Mul(oneMinusCQM(b.Coeff, b.Power+n, trunc))
		}
		ratio, err := numer.Div(denom)
		if err != nil {
			return nil, err
		}

		if extra != 0 {
			sign := big.NewRat(1, 1)
			if extra%2 != 0 {
				sign.Neg(sign)
			}
			ratio = ratio.Mul(series.Monomial(sign, n*extra, trunc))
		}

		ratio = ratio.Mul(series.Monomial(h.Argument.Coeff, h.Argument.Power, trunc))
		term = term.Mul(ratio)
		if term.IsZero() {
			break
		}
	}
	return result, nil
}

func evalPsiNegative(h Bilateral, trunc, extra int64) (*series.Series, error) {
	result := series.New(trunc)
	if h.Argument.Coeff.Sign() == 0 {
		return result, nil
	}
	zInv := new(big.Rat).Inv(h.Argument.Coeff)

	for m := int64(1); m <= trunc; m++ {
		pole := false
		for _, a := range h.Upper {
			if hasNegativePochhammerPole(a, m) {
				pole = true
				break
			}
		}
		for _, b := range h.Lower {
			if hasNegativePochhammerPole(b, m) {
				pole = true
				break
			}
		}
		if pole {
			continue
		}

		term := series.One(trunc)
		for _, a := range h.Upper {
			poch, err := Aqprod(a, -m, trunc)
			if err != nil {
				return nil, err
			}
			term = term.Mul(poch)
		}
		for _, b := range h.Lower {
			poch, err := Aqprod(b, -m, trunc)
			if err != nil {
				return nil, err
			}
			term, err = term.Div(poch)
			if err != nil {
				return nil, err
			}
		}

		// [(-1)^{-m} q^{(-m)(-m-1)/2}]^extra = (-1)^{m*extra} q^{extra*m(m+1)/2}
		if extra != 0 {
			sign := big.NewRat(1, 1)
			if extra%2 != 0 && m%2 != 0 {
				sign.Neg(sign)
			}
			term = term.Mul(series.Monomial(sign, extra*m*(m+1)/2, trunc))
		}

		// z^{-m}
		zc := new(big.Rat).Set(zInv)
		for i := int64(1); i < m; i++ {
			zc.Mul(zc, zInv)
		}
		term = term.Mul(series.Monomial(zc, -m*h.Argument.Power, trunc))

		if !term.IsZero() {
			result = result.Add(term)
		}
	}
	return result, nil
}
