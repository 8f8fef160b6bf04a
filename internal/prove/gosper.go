// Package prove implements the identity-proving engine: the q-Gosper
// algorithm for indefinite q-hypergeometric summation, q-Zeilberger
// creative telescoping, WZ certificate verification, and q-Petkovsek
// closed-form recurrence solving.
//
// The algorithms specialize q to a concrete rational value and work
// with univariate polynomials in x = q^k over the rationals, following
// Koornwinder (1993) and Paule-Riese (1997).
package prove

import (
	"errors"
	"math/big"

	"github.com/papapumpkin/qsq/internal/poly"
	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

var (
	// ErrNoClosedForm means no q-hypergeometric antidifference exists.
	ErrNoClosedForm = errors.New("prove: no closed form")
	// ErrNoCertificateFound means creative telescoping exhausted the
	// recurrence-order cap without finding a certified recurrence.
	ErrNoCertificateFound = errors.New("prove: no certificate found")
	// ErrNoHypergeometricSolution means a recurrence admits no
	// q-hypergeometric solution of the searched shapes.
	ErrNoHypergeometricSolution = errors.New("prove: no hypergeometric solution")
	// ErrCertificateInvalid means a claimed WZ pair fails verification.
	ErrCertificateInvalid = errors.New("prove: certificate invalid")
	// ErrDegenerateInput means the input term is trivial or malformed.
	ErrDegenerateInput = errors.New("prove: degenerate input")
)

// GosperNormalForm is the sigma/tau/c decomposition of a term ratio
// r(x) = sigma(x)/tau(x) * c(qx)/c(x) with gcd(sigma(x), tau(q^j x)) = 1
// for all j >= 1.
type GosperNormalForm struct {
	Sigma *poly.Poly
	Tau   *poly.Poly
	C     *poly.Poly
}

func evalQMonomial(m qseries.QMonomial, qv *big.Rat) *big.Rat {
	if m.Power == 0 {
		return new(big.Rat).Set(m.Coeff)
	}
	return new(big.Rat).Mul(m.Coeff, series.RatPow(qv, m.Power))
}

// ExtractTermRatio converts a hypergeometric series into its term ratio
// t_{k+1}/t_k as a rational function of x = q^k:
//
//	prod_i (1 - a_i x) / [(1 - q x) prod_j (1 - b_j x)]
//	    * (-1)^{1+s-r} x^{1+s-r} z
//
// with all parameters evaluated at the concrete q value qv.
func ExtractTermRatio(h qseries.Hypergeometric, qv *big.Rat) *poly.RatFunc {
	one := big.NewRat(1, 1)

	numer := poly.One()
	for _, a := range h.Upper {
		numer = numer.Mul(poly.Linear(one, new(big.Rat).Neg(evalQMonomial(a, qv))))
	}

	denom := poly.Linear(one, new(big.Rat).Neg(qv))
	for _, b := range h.Lower {
		denom = denom.Mul(poly.Linear(one, new(big.Rat).Neg(evalQMonomial(b, qv))))
	}

	extra := 1 + h.S() - h.R()
	coeff := evalQMonomial(h.Argument, qv)
	if extra%2 != 0 {
		coeff.Neg(coeff)
	}
	if extra >= 0 {
		numer = numer.Mul(poly.Monomial(coeff, extra))
	} else {
		denom = denom.Mul(poly.Monomial(one, -extra))
		numer = numer.ScalarMul(coeff)
	}

	return poly.NewRatFunc(numer, denom)
}

// QDispersion finds all non-negative integers j such that
// gcd(a(x), b(q^j x)) has degree at least 1, up to the resultant-theory
// bound deg(a)*deg(b).
func QDispersion(a, b *poly.Poly, qv *big.Rat) []int64 {
	return qDispersionRange(a, b, qv, 0)
}

func qDispersionPositive(a, b *poly.Poly, qv *big.Rat) []int64 {
	return qDispersionRange(a, b, qv, 1)
}

func qDispersionRange(a, b *poly.Poly, qv *big.Rat, start int64) []int64 {
	if a.Degree() < 1 || b.Degree() < 1 {
		return nil
	}
	jMax := int64(a.Degree() * b.Degree())
	var result []int64
	for j := start; j <= jMax; j++ {
		if poly.Gcd(a, b.QShiftN(qv, j)).Degree() >= 1 {
			result = append(result, j)
		}
	}
	return result
}

// NormalForm decomposes the term ratio numer(x)/denom(x) into Gosper
// normal form by repeatedly peeling the gcd at the largest positive
// dispersion value and pushing it into c.
func NormalForm(numer, denom *poly.Poly, qv *big.Rat) GosperNormalForm {
	sigma := numer.Clone()
	tau := denom.Clone()
	c := poly.One()

	for {
		disp := qDispersionPositive(sigma, tau, qv)
		if len(disp) == 0 {
			break
		}
		jMax := disp[len(disp)-1]

		g := poly.Gcd(sigma, tau.QShiftN(qv, jMax)).Monic()
		if g.IsConstant() {
			break
		}

		sigma = sigma.ExactDiv(g)
		tau = tau.ExactDiv(g.QShiftN(qv, -jMax))

		// c(qx)/c(x) must pick up g(x)/g(q^{-jMax} x), so c gains
		// g(q^{-i} x) for i = 1..jMax.
		for i := int64(1); i <= jMax; i++ {
			c = c.Mul(g.QShiftN(qv, -i))
		}
	}

	return GosperNormalForm{Sigma: sigma, Tau: tau, C: c}
}

// SolveKeyEquation finds a polynomial f satisfying
//
//	sigma(x) f(qx) - tau(x) f(x) = c(x)
//
// or reports that none exists. Candidate degree bounds for f come from
// comparing leading terms; each bound yields a linear system solved by
// Gaussian elimination over Q.
func SolveKeyEquation(sigma, tau, c *poly.Poly, qv *big.Rat) (*poly.Poly, bool) {
	if c.IsZero() {
		return poly.Zero(), true
	}

	dC := c.Degree()
	sigmaZero := sigma.IsZero()
	tauZero := tau.IsZero()

	if sigmaZero && tauZero {
		return nil, false
	}
	if sigmaZero {
		// -tau(x) f(x) = c(x)
		q, r := c.Neg().DivRem(tau)
		if r.IsZero() {
			return q, true
		}
		return nil, false
	}
	if tauZero {
		// sigma(x) f(qx) = c(x)
		if dC < sigma.Degree() {
			return nil, false
		}
		return trySolveWithDegree(sigma, tau, c, qv, dC-sigma.Degree())
	}

	for _, degF := range degreeCandidates(sigma, tau, qv, sigma.Degree(), tau.Degree(), dC) {
		if f, ok := trySolveWithDegree(sigma, tau, c, qv, degF); ok {
			return f, true
		}
	}
	return nil, false
}

func degreeCandidates(sigma, tau *poly.Poly, qv *big.Rat, dSigma, dTau, dC int) []int {
	var candidates []int
	push := func(d int) {
		for _, have := range candidates {
			if have == d {
				return
			}
		}
		candidates = append(candidates, d)
	}

	if dSigma != dTau {
		maxST := dSigma
		if dTau > maxST {
			maxST = dTau
		}
		if dC >= maxST {
			push(dC - maxST)
		}
		if dC+1 >= maxST {
			push(dC - maxST + 1)
		}
		return candidates
	}

	// Equal degrees: the leading terms of sigma(x)f(qx) and tau(x)f(x)
	// may cancel when q^{deg f} = lc(tau)/lc(sigma).
	ratio := new(big.Rat).Quo(tau.LeadingCoeff(), sigma.LeadingCoeff())
	found := false
	for d := 0; d <= dC; d++ {
		if series.RatPow(qv, int64(d)).Cmp(ratio) == 0 {
			push(d)
			found = true
			break
		}
	}
	if !found || dC >= dSigma {
		fallback := 0
		if dC >= dSigma {
			fallback = dC - dSigma
		}
		push(fallback)
	}
	for _, d := range append([]int(nil), candidates...) {
		push(d + 1)
	}
	return candidates
}

func trySolveWithDegree(sigma, tau, c *poly.Poly, qv *big.Rat, degF int) (*poly.Poly, bool) {
	dSigma := sigma.Degree()
	if dSigma < 0 {
		dSigma = 0
	}
	dTau := tau.Degree()
	if dTau < 0 {
		dTau = 0
	}
	maxD := dSigma
	if dTau > maxD {
		maxD = dTau
	}

	nUnknowns := degF + 1
	nEquations := maxD + degF
	if c.Degree() > nEquations {
		nEquations = c.Degree()
	}
	nEquations++

	qPowers := make([]*big.Rat, nUnknowns)
	for j := range qPowers {
		qPowers[j] = series.RatPow(qv, int64(j))
	}

	// A[k][j] = sigma.coeff(k-j) q^j - tau.coeff(k-j), b[k] = c.coeff(k)
	matrix := make([][]*big.Rat, nEquations)
	rhs := make([]*big.Rat, nEquations)
	for k := 0; k < nEquations; k++ {
		row := make([]*big.Rat, nUnknowns)
		for j := 0; j < nUnknowns; j++ {
			if k < j {
				row[j] = new(big.Rat)
				continue
			}
			v := new(big.Rat).Mul(sigma.Coeff(k-j), qPowers[j])
			row[j] = v.Sub(v, tau.Coeff(k-j))
		}
		matrix[k] = row
		rhs[k] = c.Coeff(k)
	}

	sol, ok := solveLinearSystem(matrix, rhs)
	if !ok {
		return nil, false
	}
	return poly.FromRats(sol), true
}

// solveLinearSystem reduces the augmented matrix [A | b] to reduced row
// echelon form over Q. Inconsistent systems return false; free
// variables are set to zero.
func solveLinearSystem(matrix [][]*big.Rat, rhs []*big.Rat) ([]*big.Rat, bool) {
	m := len(matrix)
	if m == 0 {
		return nil, true
	}
	n := len(matrix[0])
	if n == 0 {
		for _, r := range rhs {
			if r.Sign() != 0 {
				return nil, false
			}
		}
		return nil, true
	}

	aug := make([][]*big.Rat, m)
	for i := range aug {
		row := make([]*big.Rat, n+1)
		for j := 0; j < n; j++ {
			row[j] = new(big.Rat).Set(matrix[i][j])
		}
		row[n] = new(big.Rat).Set(rhs[i])
		aug[i] = row
	}

	pivotCols := make([]int, 0, n)
	pivotRow := 0
	for col := 0; col < n && pivotRow < m; col++ {
		found := -1
		for row := pivotRow; row < m; row++ {
			if aug[row][col].Sign() != 0 {
				found = row
				break
			}
		}
		if found < 0 {
			continue
		}
		aug[found], aug[pivotRow] = aug[pivotRow], aug[found]

		pivot := new(big.Rat).Set(aug[pivotRow][col])
		for j := 0; j <= n; j++ {
			aug[pivotRow][j].Quo(aug[pivotRow][j], pivot)
		}
		for row := 0; row < m; row++ {
			if row == pivotRow || aug[row][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(aug[row][col])
			for j := 0; j <= n; j++ {
				sub := new(big.Rat).Mul(factor, aug[pivotRow][j])
				aug[row][j].Sub(aug[row][j], sub)
			}
		}
		pivotCols = append(pivotCols, col)
		pivotRow++
	}

	for row := 0; row < m; row++ {
		allZero := true
		for j := 0; j < n; j++ {
			if aug[row][j].Sign() != 0 {
				allZero = false
				break
			}
		}
		if allZero && aug[row][n].Sign() != 0 {
			return nil, false
		}
	}

	solution := make([]*big.Rat, n)
	for i := range solution {
		solution[i] = new(big.Rat)
	}
	for row, col := range pivotCols {
		solution[col].Set(aug[row][n])
	}
	return solution, true
}

// QGosper decides whether a q-hypergeometric term with the given term
// ratio r(x) = t_{k+1}/t_k has a q-hypergeometric antidifference, and
// if so returns the rational certificate y(x) with G(k) = y(q^k) t_k
// and G(k+1) - G(k) = t_k.
//
// A zero or malformed ratio gives ErrDegenerateInput. A constant ratio
// describes a bare geometric term, which carries no q-shifted factorial
// structure to telescope, so it is rejected with ErrNoClosedForm along
// with every ratio whose key equation has no polynomial solution.
func QGosper(ratio *poly.RatFunc, qv *big.Rat) (*poly.RatFunc, error) {
	if ratio == nil || ratio.IsZero() || qv == nil || qv.Sign() == 0 {
		return nil, ErrDegenerateInput
	}
	if ratio.Numer.IsConstant() && ratio.Denom.IsConstant() {
		return nil, ErrNoClosedForm
	}

	nf := NormalForm(ratio.Numer, ratio.Denom, qv)

	// The telescoping identity y(qx) r(x) - y(x) = 1 with
	// r = sigma c(qx) / (tau c) closes for y = tauBack f / c where
	// tauBack(x) = tau(x/q) and sigma(x) f(qx) - tauBack(x) f(x) = c(x).
	//
	// The decomposition leaves a q-power ambiguity: x^m divides into c
	// as c(qx)/c(x) = q^m, trading a constant q^m out of sigma for a
	// monomial factor in c. Certificates with monomial denominators
	// only appear under that trade, so each absorption m is tried in
	// turn. Negative m needs no pass of its own, its solutions surface
	// at m = 0 with an extra x factor in f.
	tauBack := nf.Tau.QShiftN(qv, -1)
	one := big.NewRat(1, 1)
	mBound := nf.Sigma.Degree() + nf.Tau.Degree() + nf.C.Degree() + 2
	for m := 0; m <= mBound; m++ {
		sigma := nf.Sigma.ScalarMul(series.RatPow(qv, int64(-m)))
		c := nf.C.Mul(poly.Monomial(one, m))
		f, ok := SolveKeyEquation(sigma, tauBack, c, qv)
		if !ok || f.IsZero() {
			continue
		}
		return poly.NewRatFunc(tauBack.Mul(f), c), nil
	}
	return nil, ErrNoClosedForm
}
