package qseries

import (
	"fmt"
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// ProductForm is the result of Prodmake: integer exponents a_n such
// that f(q) = prod_{n>=1} (1-q^n)^{-a_n} + O(q^T). Positive a_n puts
// (1-q^n) in the denominator. For the Euler function (q;q)_inf every
// a_n is -1. Only nonzero exponents are stored.
type ProductForm struct {
	Exponents map[int64]int64
	TermsUsed int64
}

// Expand reconstructs the product prod (1-q^n)^{-a_n} as a series.
func (p ProductForm) Expand(trunc int64) *series.Series {
	out := series.One(trunc)
	minusOne := big.NewRat(-1, 1)
	for n, a := range p.Exponents {
		f := series.One(trunc)
		f.SetCoeff(n, minusOne)
		pw, err := f.Pow(-a)
		if err != nil {
			panic(err) // (1-q^n) always has constant term 1
		}
		out = out.Mul(pw)
	}
	return out
}

// Prodmake runs Andrews' algorithm: given f(q) = sum b_n q^n, recover
// exponents a_n with f = prod (1-q^n)^{-a_n} + O(q^maxN).
//
// The series is normalized first: a q^k prefactor is stripped and the
// leading coefficient divided out, so the algorithm runs on a series
// with constant term 1. Step one recovers c_n (the coefficients of the
// logarithmic derivative q*f'/f) via
//
//	c_n = n*b_n - sum_{j=1}^{n-1} c_j * b_{n-j}
//
// and step two inverts the divisor sum with the Möbius function:
//
//	n*a_n = sum_{d|n} mu(n/d) * c_d
//
// The intermediate exponents are exact rationals; any non-integral a_n
// means the series is not an infinite product of this shape and fails
// with ErrNotAProduct. The zero series fails with
// ErrNonInvertibleDivision: there is no unit to normalize.
func Prodmake(f *series.Series, maxN int64) (ProductForm, error) {
	if f.IsZero() {
		return ProductForm{}, fmt.Errorf("prodmake: %w", series.ErrNonInvertibleDivision)
	}
	effectiveMax := min64(maxN, f.Trunc()-1)
	if effectiveMax < 1 {
		return ProductForm{Exponents: map[int64]int64{}}, nil
	}

	minOrd := f.MinOrder()
	invB0 := new(big.Rat).Inv(f.Coeff(minOrd))
	// Normalized coefficient b_n of the shifted, unit-leading series.
	b := func(n int64) *big.Rat {
		if minOrd+n >= f.Trunc() {
			return new(big.Rat)
		}
		return new(big.Rat).Mul(f.Coeff(minOrd+n), invB0)
	}

	c := make(map[int64]*big.Rat)
	for n := int64(1); n <= effectiveMax; n++ {
		val := new(big.Rat).Mul(big.NewRat(n, 1), b(n))
		for j := int64(1); j < n; j++ {
			cj, ok := c[j]
			if !ok {
				continue
			}
			val.Sub(val, new(big.Rat).Mul(cj, b(n-j)))
		}
		if val.Sign() != 0 {
			c[n] = val
		}
	}

	exps := make(map[int64]int64)
	for n := int64(1); n <= effectiveMax; n++ {
		sum := new(big.Rat)
		for _, d := range divisors(n) {
			cd, ok := c[d]
			if !ok {
				continue
			}
			if mu := mobius(n / d); mu != 0 {
				sum.Add(sum, new(big.Rat).Mul(big.NewRat(mu, 1), cd))
			}
		}
		if sum.Sign() == 0 {
			continue
		}
		sum.Quo(sum, big.NewRat(n, 1))
		if !sum.IsInt() {
			return ProductForm{}, fmt.Errorf("%w: exponent of (1-q^%d) is %s", ErrNotAProduct, n, sum.RatString())
		}
		exps[n] = sum.Num().Int64()
	}

	return ProductForm{Exponents: exps, TermsUsed: effectiveMax}, nil
}

// EtaQuotient expresses a series as prod eta(d*tau)^{r_d} with
// eta(d*tau) = q^{d/24} * (q^d;q^d)_inf. QShift is the prefactor
// exponent sum_d r_d*d/24.
type EtaQuotient struct {
	Factors map[int64]int64
	QShift  *big.Rat
}

// Etamake converts prodmake output into eta-quotient form. The
// exponent of (1-q^n) in prod eta(d*tau)^{r_d} is sum_{d|n} r_d, so
// with prodmake's sum_{d|n} r_d = -a_n the r_d fall out of a second
// Möbius inversion: r_n = sum_{d|n} mu(n/d) * (-a_d). A pattern that
// does not close into eta factors within the sampled range fails with
// ErrNoCanonicalForm.
func Etamake(f *series.Series, maxN int64) (EtaQuotient, error) {
	product, err := Prodmake(f, maxN)
	if err != nil {
		return EtaQuotient{}, err
	}

	factors := make(map[int64]int64)
	for n := int64(1); n <= product.TermsUsed; n++ {
		sum := int64(0)
		for _, d := range divisors(n) {
			if a, ok := product.Exponents[d]; ok {
				sum += mobius(n/d) * (-a)
			}
		}
		if sum != 0 {
			factors[n] = sum
		}
	}

	// A genuine eta-quotient has finitely many factors, all appearing
	// well inside the sampled range. Nonzero exponents still turning up
	// in the upper half mean the inversion is chasing noise rather than
	// converging on a template.
	for d, r := range factors {
		if r != 0 && d > product.TermsUsed/2 {
			return EtaQuotient{}, fmt.Errorf("%w: eta exponent at level %d does not stabilize", ErrNoCanonicalForm, d)
		}
	}

	qshift := new(big.Rat)
	for d, r := range factors {
		qshift.Add(qshift, big.NewRat(r*d, 24))
	}
	return EtaQuotient{Factors: factors, QShift: qshift}, nil
}

// Qetamake expresses a series as prod (q^d;q^d)_inf^{r_d}: the eta
// factors without their q^{d/24} prefactors.
func Qetamake(f *series.Series, maxN int64) (EtaQuotient, error) {
	eta, err := Etamake(f, maxN)
	if err != nil {
		return EtaQuotient{}, err
	}
	return EtaQuotient{Factors: eta.Factors, QShift: new(big.Rat)}, nil
}

// Mprodmake expresses a series as prod (1+q^n)^{m_n} using
// (1+q^n) = (1-q^{2n})/(1-q^n): sweep the prodmake exponents upward,
// take m_n = a_n, and carry m_n into a_{2n}.
func Mprodmake(f *series.Series, maxN int64) (map[int64]int64, error) {
	product, err := Prodmake(f, maxN)
	if err != nil {
		return nil, err
	}
	a := make(map[int64]int64, len(product.Exponents))
	for n, v := range product.Exponents {
		a[n] = v
	}
	out := make(map[int64]int64)
	for n := int64(1); n <= product.TermsUsed; n++ {
		m := a[n]
		if m == 0 {
			continue
		}
		out[n] = m
		delete(a, n)
		if 2*n <= product.TermsUsed {
			a[2*n] += m
			if a[2*n] == 0 {
				delete(a, 2*n)
			}
		}
	}
	return out, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
