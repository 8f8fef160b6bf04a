package qseries

import (
	"math/big"

	"github.com/papapumpkin/qsq/internal/series"
)

// PartitionCount computes p(0..n) by Euler's pentagonal number
// recurrence: p(n) = sum_k (-1)^{k+1} [p(n - k(3k-1)/2) + p(n - k(3k+1)/2)].
func PartitionCount(n int64) []*big.Int {
	counts := make([]*big.Int, n+1)
	counts[0] = big.NewInt(1)
	for m := int64(1); m <= n; m++ {
		acc := new(big.Int)
		for k := int64(1); ; k++ {
			p1 := k * (3*k - 1) / 2
			p2 := k * (3*k + 1) / 2
			if p1 > m && p2 > m {
				break
			}
			term := new(big.Int)
			if p1 <= m {
				term.Add(term, counts[m-p1])
			}
			if p2 <= m {
				term.Add(term, counts[m-p2])
			}
			if k%2 == 1 {
				acc.Add(acc, term)
			} else {
				acc.Sub(acc, term)
			}
		}
		counts[m] = acc
	}
	return counts
}

// PartitionGF computes the partition generating function
// 1/(q;q)_inf = sum p(n) q^n.
func PartitionGF(trunc int64) *series.Series {
	inv, err := series.Euler(trunc).Invert()
	if err != nil {
		panic(err) // Euler function has constant term 1
	}
	return inv
}

// DistinctPartsGF computes the generating function for partitions into
// distinct parts, (-q;q)_inf = prod_{n>=1}(1 + q^n).
func DistinctPartsGF(trunc int64) *series.Series {
	return stepProduct(big.NewRat(-1, 1), 1, 1, trunc)
}

// OddPartsGF computes the generating function for partitions into odd
// parts, 1/(q;q^2)_inf. By Euler's theorem it equals DistinctPartsGF.
func OddPartsGF(trunc int64) *series.Series {
	inv, err := Etaq(1, 2, trunc).Invert()
	if err != nil {
		panic(err)
	}
	return inv
}

// BoundedPartsGF computes the generating function for partitions into
// parts of size at most m: 1/((1-q)(1-q^2)...(1-q^m)).
func BoundedPartsGF(m, trunc int64) *series.Series {
	denom := series.One(trunc)
	minusOne := big.NewRat(-1, 1)
	for k := int64(1); k <= m; k++ {
		f := series.One(trunc)
		f.SetCoeff(k, minusOne)
		denom = denom.Mul(f)
	}
	inv, err := denom.Invert()
	if err != nil {
		panic(err)
	}
	return inv
}

// CrankGF computes the crank generating function
// C(z,q) = (q;q)_inf / [(zq;q)_inf * (q/z;q)_inf]. At z=1 the
// singularity is removable and the value is the partition generating
// function.
func CrankGF(z *big.Rat, trunc int64) *series.Series {
	if z.Cmp(big.NewRat(1, 1)) == 0 {
		return PartitionGF(trunc)
	}
	invZ := new(big.Rat).Inv(z)
	denom := stepProduct(z, 1, 1, trunc).Mul(stepProduct(invZ, 1, 1, trunc))
	out, err := series.Euler(trunc).Div(denom)
	if err != nil {
		panic(err)
	}
	return out
}

// RankGF computes the rank generating function
// R(z,q) = 1 + sum_{n>=1} q^{n^2} / [(zq;q)_n * (q/z;q)_n], with the
// same removable singularity at z=1.
func RankGF(z *big.Rat, trunc int64) *series.Series {
	if z.Cmp(big.NewRat(1, 1)) == 0 {
		return PartitionGF(trunc)
	}
	invZ := new(big.Rat).Inv(z)
	result := series.One(trunc)
	for n := int64(1); n*n < trunc; n++ {
		numer := series.Monomial(big.NewRat(1, 1), n*n, trunc)
		p1, err := Aqprod(QMonomial{Coeff: z, Power: 1}, n, trunc)
		if err != nil {
			panic(err)
		}
		p2, err := Aqprod(QMonomial{Coeff: invZ, Power: 1}, n, trunc)
		if err != nil {
			panic(err)
		}
		term, err := numer.Div(p1.Mul(p2))
		if err != nil {
			panic(err)
		}
		result = result.Add(term)
	}
	return result
}
