// Package ui provides terminal output for qsq. Diagnostics go to
// stderr so that results on stdout stay pipeable.
package ui

import (
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

// ANSI color codes.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"
	cyan  = "\033[36m"
	red   = "\033[31m"
)

// Printer writes qsq terminal output.
type Printer struct {
	// Verbose enables Debug output.
	Verbose bool
}

// New creates a Printer.
func New(verbose bool) *Printer {
	return &Printer{Verbose: verbose}
}

// Info prints a dim status line to stderr.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(os.Stderr, dim+msg+reset)
}

// Debug prints a status line only in verbose mode.
func (p *Printer) Debug(msg string) {
	if p.Verbose {
		fmt.Fprintln(os.Stderr, dim+msg+reset)
	}
}

// Error prints an error line to stderr.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(os.Stderr, bold+red+"error: "+reset+msg)
}

// Result prints a computed value to stdout.
func (p *Printer) Result(msg string) {
	fmt.Fprintln(os.Stdout, msg)
}

// Section prints a highlighted heading to stderr.
func (p *Printer) Section(title string) {
	fmt.Fprintln(os.Stderr, bold+cyan+title+reset)
}

// FormatSeries renders a truncated series as a one-line polynomial.
// Series.String already carries the O(q^T) tail marker.
func FormatSeries(f *series.Series) string {
	return f.String()
}

// FormatProduct renders prodmake output as prod (1-q^n)^{-a_n} with
// factors in ascending n.
func FormatProduct(p qseries.ProductForm) string {
	if len(p.Exponents) == 0 {
		return "1"
	}
	var parts []string
	for _, n := range sortedKeys(p.Exponents) {
		parts = append(parts, fmt.Sprintf("(1-q^%d)^%d", n, -p.Exponents[n]))
	}
	return strings.Join(parts, " * ")
}

// FormatEta renders an eta quotient as q^s * prod eta(d*tau)^{r_d}.
func FormatEta(e qseries.EtaQuotient) string {
	var parts []string
	if e.QShift != nil && e.QShift.Sign() != 0 {
		parts = append(parts, fmt.Sprintf("q^(%s)", e.QShift.RatString()))
	}
	for _, d := range sortedKeys(e.Factors) {
		parts = append(parts, fmt.Sprintf("eta(%d*tau)^%d", d, e.Factors[d]))
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " * ")
}

// FormatJacProduct renders jacprodmake output as scalar * prod
// JAC(a,b)^e ordered by period then residue.
func FormatJacProduct(j qseries.JacProductForm) string {
	keys := make([]qseries.JacFactor, 0, len(j.Factors))
	for k := range j.Factors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, k int) bool {
		if keys[i].B != keys[k].B {
			return keys[i].B < keys[k].B
		}
		return keys[i].A < keys[k].A
	})
	var parts []string
	if j.Scalar != nil && j.Scalar.Cmp(big.NewRat(1, 1)) != 0 {
		parts = append(parts, j.Scalar.RatString())
	}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("JAC(%d,%d)^%d", k.A, k.B, j.Factors[k]))
	}
	if len(parts) == 0 {
		return "1"
	}
	out := strings.Join(parts, " * ")
	if !j.IsExact {
		out += "  [inexact]"
	}
	return out
}

// FormatFactorization renders qfactor output as scalar * prod
// (1-q^i)^{m_i}.
func FormatFactorization(f qseries.QFactorization) string {
	var parts []string
	if f.Scalar != nil && f.Scalar.Cmp(big.NewRat(1, 1)) != 0 {
		parts = append(parts, f.Scalar.RatString())
	}
	for _, i := range sortedKeys(f.Factors) {
		m := f.Factors[i]
		if m == 1 {
			parts = append(parts, fmt.Sprintf("(1-q^%d)", i))
		} else {
			parts = append(parts, fmt.Sprintf("(1-q^%d)^%d", i, m))
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	out := strings.Join(parts, " * ")
	if !f.IsExact {
		out += "  [inexact]"
	}
	return out
}

// FormatRecurrence renders a recurrence sum c_j S(n+j) = 0.
func FormatRecurrence(coefficients []*big.Rat) string {
	var parts []string
	for j, c := range coefficients {
		if c == nil || c.Sign() == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("(%s)*S(n+%d)", c.RatString(), j))
	}
	if len(parts) == 0 {
		return "0 = 0"
	}
	return strings.Join(parts, " + ") + " = 0"
}

func sortedKeys(m map[int64]int64) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
