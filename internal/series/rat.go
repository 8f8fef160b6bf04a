package series

import "math/big"

// RatPow raises base to a signed integer power by repeated squaring.
// A zero base with a negative exponent panics: that is a programming
// error in the caller, not a data-dependent failure.
func RatPow(base *big.Rat, exp int64) *big.Rat {
	if exp == 0 {
		return big.NewRat(1, 1)
	}
	if exp < 0 {
		if base.Sign() == 0 {
			panic("series: zero base with negative exponent")
		}
		pos := RatPow(base, -exp)
		return pos.Inv(pos)
	}
	result := big.NewRat(1, 1)
	b := new(big.Rat).Set(base)
	for exp > 0 {
		if exp&1 == 1 {
			result.Mul(result, b)
		}
		exp >>= 1
		if exp > 0 {
			b.Mul(b, b)
		}
	}
	return result
}
