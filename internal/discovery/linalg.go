// Package discovery searches coefficient sequences and small
// integer-exponent spaces for structure: linear and polynomial
// relations among series, congruences, multiplicativity, and exact
// product representations.
//
// Every search here is a bounded, deterministic enumeration with
// caller-injected caps. Success on sampled coefficients is heuristic
// evidence, never proof: agreement up to a truncation order does not
// establish an infinite statement.
package discovery

import (
	"errors"
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// Failure kinds for discovery searches.
var (
	ErrSearchExhausted = errors.New("search exhausted: no candidate in the bounded space matched")
	ErrNoMatch         = errors.New("no match found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// NullSpace computes a basis of the rational null space of an m x n
// matrix by reduction to row echelon form. Free columns yield one
// basis vector each: v[free] = 1 and v[pivot] = -R[row][free] for each
// pivot row of the reduced matrix R.
func NullSpace(matrix [][]*big.Rat) [][]*big.Rat {
	rows := len(matrix)
	if rows == 0 {
		return nil
	}
	cols := len(matrix[0])

	// Work on a copy in reduced row echelon form.
	a := make([][]*big.Rat, rows)
	for i := range matrix {
		a[i] = make([]*big.Rat, cols)
		for j := range matrix[i] {
			a[i][j] = new(big.Rat).Set(matrix[i][j])
		}
	}

	pivotCols := make([]int, 0, cols)
	row := 0
	for col := 0; col < cols && row < rows; col++ {
		pivot := -1
		for r := row; r < rows; r++ {
			if a[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			continue
		}
		a[row], a[pivot] = a[pivot], a[row]

		inv := new(big.Rat).Inv(a[row][col])
		for j := col; j < cols; j++ {
			a[row][j].Mul(a[row][j], inv)
		}
		for r := 0; r < rows; r++ {
			if r == row || a[r][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(a[r][col])
			for j := col; j < cols; j++ {
				a[r][j].Sub(a[r][j], new(big.Rat).Mul(factor, a[row][j]))
			}
		}
		pivotCols = append(pivotCols, col)
		row++
	}

	isPivot := make([]bool, cols)
	for _, c := range pivotCols {
		isPivot[c] = true
	}

	var basis [][]*big.Rat
	for fc := 0; fc < cols; fc++ {
		if isPivot[fc] {
			continue
		}
		v := make([]*big.Rat, cols)
		for j := range v {
			v[j] = new(big.Rat)
		}
		v[fc].SetInt64(1)
		for r, pc := range pivotCols {
			v[pc] = new(big.Rat).Neg(a[r][fc])
		}
		basis = append(basis, v)
	}
	return basis
}

// CoefficientMatrix builds the numRows x len(candidates) matrix whose
// (i, j) entry is the coefficient of q^{startOrder+i} in candidate j.
// A null-space vector of this matrix is a linear relation among the
// candidates valid on the sampled coefficient window.
func CoefficientMatrix(candidates []*series.Series, startOrder int64, numRows int) [][]*big.Rat {
	m := make([][]*big.Rat, numRows)
	for i := range m {
		row := make([]*big.Rat, len(candidates))
		for j, f := range candidates {
			k := startOrder + int64(i)
			if k < f.Trunc() {
				row[j] = f.Coeff(k)
			} else {
				row[j] = new(big.Rat)
			}
		}
		m[i] = row
	}
	return m
}

// ModularNullSpace computes a null-space basis of a matrix over the
// prime field F_p, using Fermat inversion for pivots. Useful as a fast
// sieve before exact rational elimination.
func ModularNullSpace(matrix [][]int64, p int64) [][]int64 {
	rows := len(matrix)
	if rows == 0 {
		return nil
	}
	cols := len(matrix[0])

	a := make([][]int64, rows)
	for i := range matrix {
		a[i] = make([]int64, cols)
		for j, v := range matrix[i] {
			a[i][j] = ((v % p) + p) % p
		}
	}

	pivotCols := make([]int, 0, cols)
	row := 0
	for col := 0; col < cols && row < rows; col++ {
		pivot := -1
		for r := row; r < rows; r++ {
			if a[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			continue
		}
		a[row], a[pivot] = a[pivot], a[row]

		inv := modInv(a[row][col], p)
		for j := col; j < cols; j++ {
			a[row][j] = modMul(a[row][j], inv, p)
		}
		for r := 0; r < rows; r++ {
			if r == row || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for j := col; j < cols; j++ {
				a[r][j] = ((a[r][j] - modMul(factor, a[row][j], p)) % p + p) % p
			}
		}
		pivotCols = append(pivotCols, col)
		row++
	}

	isPivot := make([]bool, cols)
	for _, c := range pivotCols {
		isPivot[c] = true
	}
	var basis [][]int64
	for fc := 0; fc < cols; fc++ {
		if isPivot[fc] {
			continue
		}
		v := make([]int64, cols)
		v[fc] = 1
		for r, pc := range pivotCols {
			v[pc] = (p - a[r][fc]) % p
		}
		basis = append(basis, v)
	}
	return basis
}

// sievePrime is the modulus for the pre-pass in relationVector: a
// 31-bit prime, so modMul products fit in int64.
const sievePrime = 2147483629

// modularMatrix reduces a rational matrix mod p. ok is false when an
// entry's denominator vanishes mod p; the sieve does not apply then.
func modularMatrix(m [][]*big.Rat, p int64) ([][]int64, bool) {
	bp := big.NewInt(p)
	out := make([][]int64, len(m))
	for i, row := range m {
		out[i] = make([]int64, len(row))
		for j, r := range row {
			den := new(big.Int).Mod(r.Denom(), bp).Int64()
			if den == 0 {
				return nil, false
			}
			num := new(big.Int).Mod(r.Num(), bp).Int64()
			out[i][j] = modMul(num, modInv(den, p), p)
		}
	}
	return out, true
}

// modMul multiplies in F_p. Residues are reduced below p, and the
// primes used here fit in 31 bits, so the product fits in int64.
func modMul(a, b, p int64) int64 {
	return a * b % p
}

// modPow computes a^e mod p by repeated squaring.
func modPow(a, e, p int64) int64 {
	result := int64(1)
	base := ((a % p) + p) % p
	for e > 0 {
		if e&1 == 1 {
			result = modMul(result, base, p)
		}
		base = modMul(base, base, p)
		e >>= 1
	}
	return result
}

// modInv inverts a mod prime p via Fermat's little theorem.
func modInv(a, p int64) int64 {
	return modPow(a, p-2, p)
}
