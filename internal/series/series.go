// Package series implements truncated formal power series over exact
// rationals: the numeric substrate for every q-series algorithm in this
// repository.
//
// A Series holds sparse coefficients indexed by exponent (negative
// exponents are allowed, so Laurent-type objects work too) together
// with a truncation order T meaning "exact below q^T, unknown at and
// above it". All arithmetic truncates the result to the minimum of the
// operands' orders.
package series

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Failure kinds for series arithmetic. Callers match with errors.Is.
var (
	ErrDivisionByZero        = errors.New("division by zero")
	ErrNonInvertibleDivision = errors.New("non-invertible division: series has no invertible leading term")
	ErrInvalidArgument       = errors.New("invalid argument")
)

// Series is a truncated formal power series sum c_k q^k + O(q^T).
//
// Invariants: no zero coefficient is ever stored, and no stored
// exponent is >= Trunc. Both are maintained by every constructor and
// operation in this package.
type Series struct {
	coeffs map[int64]*big.Rat
	trunc  int64
}

// New returns the zero series with the given truncation order.
func New(trunc int64) *Series {
	return &Series{coeffs: make(map[int64]*big.Rat), trunc: trunc}
}

// One returns the constant series 1 + O(q^trunc).
func One(trunc int64) *Series {
	s := New(trunc)
	s.SetCoeff(0, big.NewRat(1, 1))
	return s
}

// Monomial returns c*q^m + O(q^trunc).
func Monomial(c *big.Rat, m, trunc int64) *Series {
	s := New(trunc)
	s.SetCoeff(m, c)
	return s
}

// Trunc reports the truncation order.
func (s *Series) Trunc() int64 { return s.trunc }

// Coeff returns the coefficient of q^k. Requesting a coefficient at or
// beyond the truncation order is a caller contract violation and
// panics: the value there is unknown, not zero.
func (s *Series) Coeff(k int64) *big.Rat {
	if k >= s.trunc {
		panic(fmt.Sprintf("series: coefficient %d requested at or beyond truncation order %d", k, s.trunc))
	}
	if c, ok := s.coeffs[k]; ok {
		return new(big.Rat).Set(c)
	}
	return new(big.Rat)
}

// SetCoeff sets the coefficient of q^k. Zero values remove the entry;
// exponents at or beyond the truncation order are silently dropped
// (they carry no information at this order).
func (s *Series) SetCoeff(k int64, c *big.Rat) {
	if k >= s.trunc {
		return
	}
	if c.Sign() == 0 {
		delete(s.coeffs, k)
		return
	}
	s.coeffs[k] = new(big.Rat).Set(c)
}

// IsZero reports whether every stored coefficient is zero.
func (s *Series) IsZero() bool { return len(s.coeffs) == 0 }

// MinOrder returns the smallest exponent with a nonzero coefficient, or
// the truncation order for the zero series.
func (s *Series) MinOrder() int64 {
	if len(s.coeffs) == 0 {
		return s.trunc
	}
	first := true
	var min int64
	for k := range s.coeffs {
		if first || k < min {
			min = k
			first = false
		}
	}
	return min
}

// Degree returns the largest exponent with a nonzero coefficient, or -1
// for the zero series. Meaningful for polynomial-like series whose
// support genuinely ends below the truncation order.
func (s *Series) Degree() int64 {
	if len(s.coeffs) == 0 {
		return -1
	}
	first := true
	var max int64
	for k := range s.coeffs {
		if first || k > max {
			max = k
			first = false
		}
	}
	return max
}

// Exponents returns the sorted exponents carrying nonzero coefficients.
func (s *Series) Exponents() []int64 {
	out := make([]int64, 0, len(s.coeffs))
	for k := range s.coeffs {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a deep copy.
func (s *Series) Clone() *Series {
	out := New(s.trunc)
	for k, c := range s.coeffs {
		out.coeffs[k] = new(big.Rat).Set(c)
	}
	return out
}

// Truncate returns a copy truncated to the given (smaller) order.
func (s *Series) Truncate(trunc int64) *Series {
	if trunc > s.trunc {
		trunc = s.trunc
	}
	out := New(trunc)
	for k, c := range s.coeffs {
		if k < trunc {
			out.coeffs[k] = new(big.Rat).Set(c)
		}
	}
	return out
}

// Add returns s+g truncated to the minimum of the two orders.
func (s *Series) Add(g *Series) *Series {
	out := s.Truncate(min64(s.trunc, g.trunc))
	for k, c := range g.coeffs {
		if k >= out.trunc {
			continue
		}
		sum := new(big.Rat).Add(out.Coeff(k), c)
		out.SetCoeff(k, sum)
	}
	return out
}

// Sub returns s-g truncated to the minimum of the two orders.
func (s *Series) Sub(g *Series) *Series {
	return s.Add(g.Neg())
}

// Neg returns -s.
func (s *Series) Neg() *Series {
	out := New(s.trunc)
	for k, c := range s.coeffs {
		out.coeffs[k] = new(big.Rat).Neg(c)
	}
	return out
}

// Scale returns c*s.
func (s *Series) Scale(c *big.Rat) *Series {
	out := New(s.trunc)
	if c.Sign() == 0 {
		return out
	}
	for k, v := range s.coeffs {
		out.coeffs[k] = new(big.Rat).Mul(v, c)
	}
	return out
}

// Shift returns q^m * s with the truncation order moved by m: the
// coefficients of q^m * s are known exactly below trunc+m and unknown
// from there on.
func (s *Series) Shift(m int64) *Series {
	out := New(s.trunc + m)
	for k, c := range s.coeffs {
		out.SetCoeff(k+m, c)
	}
	return out
}

// Subs returns s(q^k), the substitution q -> q^k for k >= 1. Every
// exponent scales by k. Exponents between scaled ones are known to be
// zero, so the result is exact below k*trunc.
func (s *Series) Subs(k int64) (*Series, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: substitution power must be >= 1, got %d", ErrInvalidArgument, k)
	}
	out := New(s.trunc * k)
	for n, c := range s.coeffs {
		out.SetCoeff(n*k, c)
	}
	return out, nil
}

// Mul returns s*g as a truncated convolution: coefficient n of the
// product is sum_{i+j=n} a_i b_j, computed only where every
// contribution is known. For ordinary operands that is the minimum of
// the two truncation orders; a Laurent operand with min order -m pulls
// the other operand's unknown tail down by m, so the product order
// shrinks accordingly. Dense integer operands above a size threshold
// take the Kronecker/FFT path; the result is identical.
func (s *Series) Mul(g *Series) *Series {
	trunc := min64(s.trunc, g.trunc)
	if m := s.MinOrder(); m < 0 {
		trunc = min64(trunc, g.trunc+m)
	}
	if m := g.MinOrder(); m < 0 {
		trunc = min64(trunc, s.trunc+m)
	}
	if out, ok := mulFFT(s, g, trunc); ok {
		return out
	}
	out := New(trunc)
	for i, a := range s.coeffs {
		for j, b := range g.coeffs {
			n := i + j
			if n >= trunc {
				continue
			}
			prod := new(big.Rat).Mul(a, b)
			if cur, ok := out.coeffs[n]; ok {
				cur.Add(cur, prod)
				if cur.Sign() == 0 {
					delete(out.coeffs, n)
				}
			} else if prod.Sign() != 0 {
				out.coeffs[n] = prod
			}
		}
	}
	return out
}

// Invert returns 1/s. The series must have a nonzero coefficient at
// its minimal order; the zero series fails with
// ErrNonInvertibleDivision. For f = q^m * g with g(0) != 0 the inverse
// is q^{-m} * g^{-1}, computed by the standard recurrence
// c_n = (-1/g_0) * sum_{k=1..n} g_k c_{n-k}. When m != 0 the result's
// truncation order drops by 2m: the unit part is only known below
// trunc-m, and the final q^{-m} shift costs another m.
func (s *Series) Invert() (*Series, error) {
	if s.IsZero() {
		return nil, ErrNonInvertibleDivision
	}
	m := s.MinOrder()
	// Normalize to a unit series g with g(0) != 0.
	g := s.Shift(-m)
	n := g.trunc
	g0 := g.Coeff(0)
	inv0 := new(big.Rat).Inv(g0)

	out := New(n)
	out.SetCoeff(0, inv0)
	for k := int64(1); k < n; k++ {
		acc := new(big.Rat)
		for j := int64(1); j <= k; j++ {
			gj, ok := g.coeffs[j]
			if !ok {
				continue
			}
			ck, ok := out.coeffs[k-j]
			if !ok {
				continue
			}
			acc.Add(acc, new(big.Rat).Mul(gj, ck))
		}
		acc.Neg(acc)
		acc.Mul(acc, inv0)
		out.SetCoeff(k, acc)
	}
	return out.Shift(-m), nil
}

// Div returns s/g. Fails with ErrNonInvertibleDivision when g has no
// invertible leading term.
func (s *Series) Div(g *Series) (*Series, error) {
	inv, err := g.Invert()
	if err != nil {
		return nil, err
	}
	return s.Mul(inv), nil
}

// Pow returns s^k by exponentiation by squaring. Negative exponents
// invert first and propagate ErrNonInvertibleDivision.
func (s *Series) Pow(k int64) (*Series, error) {
	if k < 0 {
		inv, err := s.Invert()
		if err != nil {
			return nil, err
		}
		return inv.Pow(-k)
	}
	result := One(s.trunc)
	base := s.Clone()
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		k >>= 1
		if k > 0 {
			base = base.Mul(base)
		}
	}
	return result, nil
}

// Equal reports componentwise rational equality over the shared defined
// range, i.e. below the minimum of the two truncation orders.
func (s *Series) Equal(g *Series) bool {
	trunc := min64(s.trunc, g.trunc)
	for k, c := range s.coeffs {
		if k >= trunc {
			continue
		}
		if gc, ok := g.coeffs[k]; !ok || c.Cmp(gc) != 0 {
			return false
		}
	}
	for k, c := range g.coeffs {
		if k >= trunc {
			continue
		}
		if sc, ok := s.coeffs[k]; !ok || c.Cmp(sc) != 0 {
			return false
		}
	}
	return true
}

// Sift extracts the arithmetic subsequence c_{m*n+j} as a new series
// re-indexed from 0 with truncation (T-j-1)/m + 1. Residues outside
// 0 <= j < m fail with ErrInvalidArgument.
func (s *Series) Sift(m, j int64) (*Series, error) {
	if m <= 0 || j < 0 || j >= m {
		return nil, fmt.Errorf("%w: sift requires 0 <= residue < modulus, got modulus %d residue %d", ErrInvalidArgument, m, j)
	}
	newTrunc := (s.trunc-j-1)/m + 1
	if newTrunc < 0 {
		newTrunc = 0
	}
	out := New(newTrunc)
	for k, c := range s.coeffs {
		if k < j || (k-j)%m != 0 {
			continue
		}
		out.SetCoeff((k-j)/m, c)
	}
	return out, nil
}

// String renders the series in ascending exponent order, ending with
// the O(q^T) marker. Intended for CLI output and test failure messages.
func (s *Series) String() string {
	var b strings.Builder
	for i, k := range s.Exponents() {
		c := s.coeffs[k]
		if i > 0 {
			if c.Sign() >= 0 {
				b.WriteString(" + ")
			} else {
				b.WriteString(" - ")
			}
		} else if c.Sign() < 0 {
			b.WriteString("-")
		}
		abs := new(big.Rat).Abs(c)
		switch {
		case k == 0:
			b.WriteString(abs.RatString())
		case abs.Cmp(big.NewRat(1, 1)) == 0:
			fmt.Fprintf(&b, "q^%d", k)
		default:
			fmt.Fprintf(&b, "%s*q^%d", abs.RatString(), k)
		}
	}
	if b.Len() > 0 {
		b.WriteString(" + ")
	}
	fmt.Fprintf(&b, "O(q^%d)", s.trunc)
	return b.String()
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
