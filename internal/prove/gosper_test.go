package prove

import (
	"errors"
	"math/big"
	"testing"

	"github.com/papapumpkin/qsq/internal/poly"
	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

func qr(n, d int64) *big.Rat {
	return big.NewRat(n, d)
}

func TestExtractTermRatio2Phi1(t *testing.T) {
	// 2phi1(q^{-2}, q^2; q^3; q, q) at q=2: extra = 0, so the ratio is
	// 2(1 - x/4)(1 - 4x) / [(1 - 2x)(1 - 8x)].
	h := qseries.Hypergeometric{
		Upper:    []qseries.QMonomial{qseries.QPower(-2), qseries.QPower(2)},
		Lower:    []qseries.QMonomial{qseries.QPower(3)},
		Argument: qseries.QPower(1),
	}
	ratio := ExtractTermRatio(h, qr(2, 1))

	got := ratio.Eval(qr(1, 10))
	if got == nil || got.Cmp(qr(117, 16)) != 0 {
		t.Fatalf("ratio(1/10) = %v, want 117/16", got)
	}
	if ratio.Numer.Degree() != 2 || ratio.Denom.Degree() != 2 {
		t.Fatalf("degrees = (%d, %d), want (2, 2)", ratio.Numer.Degree(), ratio.Denom.Degree())
	}
}

func TestExtractTermRatio1Phi0(t *testing.T) {
	// 1phi0(q^{-3}; ; q, q) at q=3: numer = 3(1 - x/27), denom = 1 - 3x.
	h := qseries.Hypergeometric{
		Upper:    []qseries.QMonomial{qseries.QPower(-3)},
		Argument: qseries.QPower(1),
	}
	ratio := ExtractTermRatio(h, qr(3, 1))

	got := ratio.Eval(qr(1, 1))
	if got == nil || got.Cmp(qr(-13, 9)) != 0 {
		t.Fatalf("ratio(1) = %v, want -13/9", got)
	}
}

func TestQDispersionShiftMatch(t *testing.T) {
	// a = 1-2x, b = 1-x, q=2: b(q x) = 1-2x shares the root 1/2 with a,
	// so j=1 is in the dispersion and j=0 is not.
	a := poly.FromInt64s([]int64{1, -2})
	b := poly.FromInt64s([]int64{1, -1})
	disp := QDispersion(a, b, qr(2, 1))

	if len(disp) != 1 || disp[0] != 1 {
		t.Fatalf("dispersion = %v, want [1]", disp)
	}
}

func TestQDispersionMultipleShifts(t *testing.T) {
	// a = (1-x)(1-4x), b = 1-x, q=2: matches at j=0 and j=2 only.
	a := poly.FromInt64s([]int64{1, -1}).Mul(poly.FromInt64s([]int64{1, -4}))
	b := poly.FromInt64s([]int64{1, -1})
	disp := QDispersion(a, b, qr(2, 1))

	if len(disp) != 2 || disp[0] != 0 || disp[1] != 2 {
		t.Fatalf("dispersion = %v, want [0 2]", disp)
	}
}

func TestNormalFormPeelsShiftableFactors(t *testing.T) {
	// a = (1-x)(1-4x), b = (1-2x)(1-6x), q=2: gcd(a(x), b(2x)) = 1-4x,
	// so the decomposition must move a factor into c.
	a := poly.FromInt64s([]int64{1, -1}).Mul(poly.FromInt64s([]int64{1, -4}))
	b := poly.FromInt64s([]int64{1, -2}).Mul(poly.FromInt64s([]int64{1, -6}))
	qv := qr(2, 1)

	nf := NormalForm(a, b, qv)
	if nf.C.IsConstant() {
		t.Fatalf("c = %v should be non-constant", nf.C)
	}
	if disp := qDispersionPositive(nf.Sigma, nf.Tau, qv); len(disp) != 0 {
		t.Fatalf("sigma and tau should be q-coprime, dispersion = %v", disp)
	}

	// Reconstruction: sigma(x) c(qx) / (tau(x) c(x)) == a(x)/b(x).
	for _, x := range []*big.Rat{qr(1, 7), qr(3, 11), qr(5, 3)} {
		cx := nf.C.Eval(x)
		if cx.Sign() == 0 {
			continue
		}
		qx := new(big.Rat).Mul(qv, x)
		lhs := new(big.Rat).Quo(
			new(big.Rat).Mul(nf.Sigma.Eval(x), nf.C.Eval(qx)),
			new(big.Rat).Mul(nf.Tau.Eval(x), cx),
		)
		rhs := new(big.Rat).Quo(a.Eval(x), b.Eval(x))
		if lhs.Cmp(rhs) != 0 {
			t.Fatalf("normal form mismatch at x=%v: %v != %v", x, lhs, rhs)
		}
	}
}

func TestSolveKeyEquationKnownSolution(t *testing.T) {
	// f = x+1 solves x*f(2x) - f(x) = 2x^2 - 1 at q=2.
	sigma := poly.X()
	tau := poly.One()
	c := poly.FromInt64s([]int64{-1, 0, 2})
	qv := qr(2, 1)

	f, ok := SolveKeyEquation(sigma, tau, c, qv)
	if !ok {
		t.Fatal("expected a polynomial solution")
	}
	for _, x := range []*big.Rat{qr(2, 1), qr(3, 1), qr(-1, 2)} {
		qx := new(big.Rat).Mul(qv, x)
		lhs := new(big.Rat).Mul(sigma.Eval(x), f.Eval(qx))
		lhs.Sub(lhs, new(big.Rat).Mul(tau.Eval(x), f.Eval(x)))
		if lhs.Cmp(c.Eval(x)) != 0 {
			t.Fatalf("key equation fails at x=%v: %v != %v", x, lhs, c.Eval(x))
		}
	}
}

func TestQGosperPochhammerTelescopes(t *testing.T) {
	// t_k = -q^{k+1} (q;q)_k has antidifference G_k = (q;q)_k. Its term
	// ratio at q=2 is r(x) = 2(1-2x) = 2 - 4x.
	qv := qr(2, 1)
	ratio := poly.NewRatFunc(poly.FromInt64s([]int64{2, -4}), poly.One())

	cert, err := QGosper(ratio, qv)
	if err != nil {
		t.Fatalf("QGosper: %v", err)
	}

	// Telescoping check: y(q^{k+1}) t_{k+1} - y(q^k) t_k == t_k.
	term := big.NewRat(1, 1)
	for k := int64(0); k < 6; k++ {
		qk := series.RatPow(qv, k)
		qk1 := series.RatPow(qv, k+1)
		next := new(big.Rat).Mul(term, ratio.Eval(qk))

		yk := cert.Eval(qk)
		yk1 := cert.Eval(qk1)
		if yk == nil || yk1 == nil {
			t.Fatalf("certificate pole at k=%d", k)
		}
		diff := new(big.Rat).Mul(yk1, next)
		diff.Sub(diff, new(big.Rat).Mul(yk, term))
		if diff.Cmp(term) != 0 {
			t.Fatalf("telescoping fails at k=%d: %v != %v", k, diff, term)
		}
		term = next
	}
}

func TestQGosperGeometricTermRejected(t *testing.T) {
	qv := qr(2, 1)

	if _, err := QGosper(poly.FromRat(qr(2, 1)), qv); !errors.Is(err, ErrNoClosedForm) {
		t.Fatalf("constant ratio: err = %v, want ErrNoClosedForm", err)
	}
	if _, err := QGosper(poly.RatFuncZero(), qv); !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("zero ratio: err = %v, want ErrDegenerateInput", err)
	}
}
