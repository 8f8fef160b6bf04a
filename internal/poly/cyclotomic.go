package poly

import (
	"math/big"
	"sort"
)

// Cyclotomic computes the n-th cyclotomic polynomial by dividing
// x^n - 1 by every Phi_d with d a proper divisor of n. Panics when
// n < 1.
func Cyclotomic(n int) *Poly {
	if n < 1 {
		panic("poly: cyclotomic index must be positive")
	}
	if n == 1 {
		return FromInt64s([]int64{-1, 1})
	}
	result := xNMinus1(n)
	for _, d := range properDivisors(n) {
		result = result.ExactDiv(Cyclotomic(d))
	}
	return result
}

func xNMinus1(n int) *Poly {
	coeffs := make([]*big.Rat, n+1)
	for i := range coeffs {
		coeffs[i] = new(big.Rat)
	}
	coeffs[0] = big.NewRat(-1, 1)
	coeffs[n] = big.NewRat(1, 1)
	return normalize(coeffs)
}

func properDivisors(n int) []int {
	var divs []int
	for i := 1; i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		divs = append(divs, i)
		if j := n / i; j != i && j != n {
			divs = append(divs, j)
		}
	}
	sort.Ints(divs)
	return divs
}

// eulerPhi is Euler's totient, used to bound cyclotomic trial degrees.
func eulerPhi(n int) int {
	if n == 0 {
		return 0
	}
	result, m := n, n
	for p := 2; p*p <= m; p++ {
		if m%p == 0 {
			for m%p == 0 {
				m /= p
			}
			result -= result / p
		}
	}
	if m > 1 {
		result -= result / m
	}
	return result
}
