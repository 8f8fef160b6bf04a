package series

import (
	"math/big"
	"math/bits"

	"github.com/remyoudompheng/bigfft"
)

// fftThreshold is the truncation order above which dense
// integer-coefficient multiplications switch to the Kronecker/FFT
// path. Below it the direct convolution wins.
const fftThreshold = 512

// mulFFT multiplies two series by Kronecker substitution: pack each
// operand's coefficients into one huge integer (fixed-width bit
// blocks), multiply the integers with bigfft, and unpack the blocks of
// the product. Applicable only to integer-coefficient operands; the
// direct path handles everything else. Returns ok=false when the
// inputs do not qualify.
func mulFFT(s, g *Series, trunc int64) (*Series, bool) {
	if trunc < fftThreshold || s.IsZero() || g.IsZero() {
		return nil, false
	}
	// Sparse operands multiply faster directly.
	if int64(len(s.coeffs))*4 < trunc || int64(len(g.coeffs))*4 < trunc {
		return nil, false
	}
	ms, mg := s.MinOrder(), g.MinOrder()
	ls := s.Degree() - ms + 1
	lg := g.Degree() - mg + 1

	maxBits := 0
	for _, c := range s.coeffs {
		if !c.IsInt() {
			return nil, false
		}
		if b := c.Num().BitLen(); b > maxBits {
			maxBits = b
		}
	}
	for _, c := range g.coeffs {
		if !c.IsInt() {
			return nil, false
		}
		if b := c.Num().BitLen(); b > maxBits {
			maxBits = b
		}
	}

	// Block width: products of two maxBits values, summed over at most
	// min(ls, lg) terms, never overflow a block.
	width := uint(2*maxBits + bits.Len64(uint64(min64(ls, lg))) + 1)

	sp, sn := pack(s, ms, width)
	gp, gn := pack(g, mg, width)

	// (sp - sn)(gp - gn) = sp*gp + sn*gn - sp*gn - sn*gp
	pos := new(big.Int).Add(bigfft.Mul(sp, gp), bigfft.Mul(sn, gn))
	neg := new(big.Int).Add(bigfft.Mul(sp, gn), bigfft.Mul(sn, gp))

	out := New(trunc)
	base := ms + mg
	mask := new(big.Int).Lsh(big.NewInt(1), width)
	mask.Sub(mask, big.NewInt(1))
	for n := int64(0); n < ls+lg-1; n++ {
		if base+n >= trunc {
			break
		}
		c := new(big.Int).Sub(block(pos, n, width, mask), block(neg, n, width, mask))
		if c.Sign() != 0 {
			out.coeffs[base+n] = new(big.Rat).SetInt(c)
		}
	}
	return out, true
}

// pack splits a series into its positive and negative coefficient
// parts, each packed as sum |c_k| << (k*width) relative to min order m.
func pack(s *Series, m int64, width uint) (pos, neg *big.Int) {
	pos, neg = new(big.Int), new(big.Int)
	tmp := new(big.Int)
	for k, c := range s.coeffs {
		tmp.Abs(c.Num())
		tmp.Lsh(tmp, width*uint(k-m))
		if c.Sign() > 0 {
			pos.Add(pos, tmp)
		} else {
			neg.Add(neg, tmp)
		}
	}
	return pos, neg
}

// block extracts the n-th width-bit block of x.
func block(x *big.Int, n int64, width uint, mask *big.Int) *big.Int {
	out := new(big.Int).Rsh(x, width*uint(n))
	return out.And(out, mask)
}
