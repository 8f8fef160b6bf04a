package cmd

import (
	"math/big"
	"testing"

	"github.com/papapumpkin/qsq/internal/arena"
	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

// evalString parses and expands an expression at the given order.
func evalString(t *testing.T, input string, order int64) *series.Series {
	t.Helper()
	a := arena.New()
	p := &exprParser{input: input, arena: a}
	ref, err := p.parseExpr()
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	f, err := a.Expand(ref, order)
	if err != nil {
		t.Fatalf("expand %q: %v", input, err)
	}
	return f
}

func TestEvalEulerProduct(t *testing.T) {
	got := evalString(t, "(q;q)_inf", 25)
	if !got.Equal(series.Euler(25)) {
		t.Fatalf("(q;q)_inf = %v", got)
	}
}

func TestEvalPartitionReciprocal(t *testing.T) {
	got := evalString(t, "1/(q;q)_inf", 25)
	if !got.Equal(qseries.PartitionGF(25)) {
		t.Fatalf("1/(q;q)_inf = %v", got)
	}
}

func TestEvalFinitePochhammer(t *testing.T) {
	got := evalString(t, "(q;q)_3", 10)
	want, err := qseries.Aqprod(qseries.QPower(1), 3, 10)
	if err != nil {
		t.Fatalf("Aqprod: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("(q;q)_3 = %v, want %v", got, want)
	}
}

func TestEvalArithmetic(t *testing.T) {
	got := evalString(t, "q^2 + 1/2 - 3*q", 10)
	want := series.New(10)
	want.SetCoeff(0, big.NewRat(1, 2))
	want.SetCoeff(1, big.NewRat(-3, 1))
	want.SetCoeff(2, big.NewRat(1, 1))
	if !got.Equal(want) {
		t.Fatalf("arithmetic = %v, want %v", got, want)
	}
}

func TestEvalParenGrouping(t *testing.T) {
	got := evalString(t, "(1 - q) * (1 + q)", 10)
	want := series.One(10)
	want.SetCoeff(2, big.NewRat(-1, 1))
	if !got.Equal(want) {
		t.Fatalf("grouping = %v, want %v", got, want)
	}
}

func TestEvalDistinctOddIdentity(t *testing.T) {
	// Euler: (-q;q)_inf = 1/(q;q^2)_inf. The parser has no negative
	// pochhammer base shorthand beyond the coefficient form.
	lhs := evalString(t, "(-1*q;q)_inf", 30)
	rhs := evalString(t, "1/(q;q^2)_inf", 30)
	if !lhs.Equal(rhs) {
		t.Fatalf("lhs = %v, rhs = %v", lhs, rhs)
	}
}

func TestEvalParseErrors(t *testing.T) {
	tests := []string{
		"",
		"(q;q)_",
		"(q;q",
		"q^",
		"1 +",
		"(q;2)_inf",
	}
	for _, input := range tests {
		a := arena.New()
		p := &exprParser{input: input, arena: a}
		if _, err := p.parseExpr(); err == nil {
			t.Errorf("parse %q: expected error", input)
		}
	}
}
