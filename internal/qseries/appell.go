package qseries

import (
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// geomInv expands 1/(1 - q^k) as a geometric series. For k < 0 the
// identity 1/(1 - q^{-j}) = -q^j/(1 - q^j) keeps every exponent
// nonnegative. k = 0 is a pole and panics.
func geomInv(k, trunc int64) *series.Series {
	if k == 0 {
		panic("qseries: geometric expansion of 1/(1-q^0) is a pole")
	}
	out := series.New(trunc)
	if k > 0 {
		for e := int64(0); e < trunc; e += k {
			out.SetCoeff(e, big.NewRat(1, 1))
		}
		return out
	}
	for e := -k; e < trunc; e += -k {
		out.SetCoeff(e, big.NewRat(-1, 1))
	}
	return out
}

// AppellLerch computes the bilateral Appell-Lerch sum
//
//	S(q^a, q, q^z) = sum_{r in Z} (-1)^r * q^{r(r-1)/2 + z*r} / (1 - q^{a+r+z})
//
// skipping the r with a + r + z = 0 where the summand has a pole. This
// is the numerator of the Hickerson-Mortenson m(x, q, z): the Jacobi
// theta j(q^z; q) in the normalization vanishes for every integer z,
// so only the bilateral sum is available as a power series. It still
// suffices for identities where the theta factor cancels from both
// sides.
func AppellLerch(aPow, zPow, trunc int64) *series.Series {
	result := series.New(trunc)

	addTerm := func(qExp, denomPow int64, negative bool) {
		pad := trunc
		if qExp < 0 {
			pad = trunc - qExp
		}
		term := geomInv(denomPow, pad).Shift(qExp).Truncate(trunc)
		if negative {
			term = term.Neg()
		}
		result = result.Add(term)
	}

	for r := int64(0); ; r++ {
		qExp := r*(r-1)/2 + zPow*r
		if qExp >= trunc {
			break
		}
		if denomPow := aPow + r + zPow; denomPow != 0 {
			addTerm(qExp, denomPow, r%2 != 0)
		}
	}
	for m := int64(1); ; m++ {
		r := -m
		qExp := r*(r-1)/2 + zPow*r
		if qExp >= trunc {
			break
		}
		if denomPow := aPow + r + zPow; denomPow != 0 {
			addTerm(qExp, denomPow, m%2 != 0)
		}
	}
	return result
}

// g3MaxN bounds the summation index of the universal mock theta
// functions at x = q^a: the Pochhammer (q^{1-a};q)_{n+1} acquires a
// zero factor once n reaches a-1, so only n <= a-2 contribute. For
// a <= 1 every term is degenerate.
func g3MaxN(aPow int64) int64 {
	if aPow <= 1 {
		return -1
	}
	return aPow - 2
}

// UniversalMockThetaG3 computes the Gordon-McIntosh universal mock
// theta function
//
//	g3(x, q) = sum_{n>=0} q^{n(n+1)/2} / [(x;q)_{n+1} * (q/x;q)_{n+1}]
//
// at x = q^a. The negative-exponent factors of (q^{1-a};q)_{n+1} are
// folded into a sign and a power of q, leaving
//
//	term_n = (-1)^{n+1} * q^{(n+1)(a-1)} / [(q^a;q)_{n+1} * prod_{k=0}^{n} (1 - q^{a-1-k})]
//
// over the non-degenerate range n <= a-2. For a <= 1 the result is the
// zero series.
func UniversalMockThetaG3(aPow, trunc int64) *series.Series {
	result := series.New(trunc)
	maxN := g3MaxN(aPow)
	if maxN < 0 {
		return result
	}
	denomHigh := pochFactor(big.NewRat(1, 1), aPow, trunc)
	denomLow := pochFactor(big.NewRat(1, 1), aPow-1, trunc)
	for n := int64(0); n <= maxN; n++ {
		qExp := (n + 1) * (aPow - 1)
		if qExp >= trunc {
			break
		}
		term := mustInvert(denomHigh.Mul(denomLow)).Shift(qExp).Truncate(trunc)
		if (n+1)%2 != 0 {
			term = term.Neg()
		}
		result = result.Add(term)
		denomHigh = denomHigh.Mul(pochFactor(big.NewRat(1, 1), aPow+n+1, trunc))
		if e := aPow - 2 - n; e > 0 {
			denomLow = denomLow.Mul(pochFactor(big.NewRat(1, 1), e, trunc))
		}
	}
	return result
}

// UniversalMockThetaG2 computes the Gordon-McIntosh universal mock
// theta function
//
//	g2(x, q) = x^{-1} * (-q;q)_inf * sum_{n>=0} q^{n(n+1)/2} * (-q;q)_n / [(x;q)_{n+1} * (q/x;q)_{n+1}]
//
// at x = q^a, with the same denominator reflection as
// UniversalMockThetaG3. The x^{-1} prefactor makes the result a
// Laurent series starting at q^{-a}; the inner sum is computed a
// further a orders out so the final shift keeps the requested
// truncation order. For a <= 1 the result is the zero series.
func UniversalMockThetaG2(aPow, trunc int64) *series.Series {
	maxN := g3MaxN(aPow)
	if maxN < 0 {
		return series.New(trunc)
	}
	pad := trunc + aPow
	inner := series.New(pad)
	numerPoch := series.One(pad)
	denomHigh := pochFactor(big.NewRat(1, 1), aPow, pad)
	denomLow := pochFactor(big.NewRat(1, 1), aPow-1, pad)
	for n := int64(0); n <= maxN; n++ {
		qExp := (n + 1) * (aPow - 1)
		if qExp >= pad {
			break
		}
		term := numerPoch.Mul(mustInvert(denomHigh.Mul(denomLow))).Shift(qExp).Truncate(pad)
		if (n+1)%2 != 0 {
			term = term.Neg()
		}
		inner = inner.Add(term)
		numerPoch = numerPoch.Mul(onePlusQ(n+1, pad))
		denomHigh = denomHigh.Mul(pochFactor(big.NewRat(1, 1), aPow+n+1, pad))
		if e := aPow - 2 - n; e > 0 {
			denomLow = denomLow.Mul(pochFactor(big.NewRat(1, 1), e, pad))
		}
	}
	negQInf := AqprodInf(QMonomial{Coeff: big.NewRat(-1, 1), Power: 1}, pad)
	return negQInf.Mul(inner).Shift(-aPow)
}
