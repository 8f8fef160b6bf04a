package cmd

import (
	"math/big"
	"testing"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

func TestParseSeriesNamed(t *testing.T) {
	tests := []struct {
		spec string
		want *series.Series
	}{
		{"euler", series.Euler(20)},
		{"partitions", qseries.PartitionGF(20)},
		{"theta4", qseries.Theta4(20)},
		{"etaq(2,2)", qseries.Etaq(2, 2, 20)},
		{"jacprod(2,5)", qseries.Jacprod(2, 5, 20)},
		{"qbin(4,2)", qseries.Qbin(4, 2, 20)},
		{"mock(f3)", qseries.MockThetaF3(20)},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseSeries(tt.spec, 20)
			if err != nil {
				t.Fatalf("parseSeries(%q): %v", tt.spec, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("parseSeries(%q) = %v", tt.spec, got)
			}
		})
	}
}

func TestParseSeriesQuotient(t *testing.T) {
	got, err := parseSeries("euler/etaq(2,2)", 20)
	if err != nil {
		t.Fatalf("parseSeries: %v", err)
	}
	want, err := series.Euler(20).Div(qseries.Etaq(2, 2, 20))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("quotient spec = %v, want %v", got, want)
	}
}

func TestParseSeriesUnknown(t *testing.T) {
	if _, err := parseSeries("mystery", 20); err == nil {
		t.Fatal("expected error for unknown series")
	}
	if _, err := parseSeries("etaq(2)", 20); err == nil {
		t.Fatal("expected error for wrong arity")
	}
	if _, err := parseSeries("mock(f9)", 20); err == nil {
		t.Fatal("expected error for unknown mock theta name")
	}
}

func TestParseSeriesRejectsOutOfRangeArguments(t *testing.T) {
	// Out-of-contract arguments must come back as errors, not panics.
	for _, spec := range []string{"etaq(1,0)", "etaq(0,2)", "jacprod(3,2)", "jacprod(0,5)"} {
		if _, err := parseSeries(spec, 20); err == nil {
			t.Errorf("parseSeries(%q): expected error", spec)
		}
	}
}

func TestParseQMonomial(t *testing.T) {
	tests := []struct {
		in        string
		wantCoeff *big.Rat
		wantPower int64
	}{
		{"q", big.NewRat(1, 1), 1},
		{"q^3", big.NewRat(1, 1), 3},
		{"q^-2", big.NewRat(1, 1), -2},
		{"5", big.NewRat(5, 1), 0},
		{"1/2", big.NewRat(1, 2), 0},
		{"3*q^2", big.NewRat(3, 1), 2},
		{"-1/3*q^-1", big.NewRat(-1, 3), -1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseQMonomial(tt.in)
			if err != nil {
				t.Fatalf("parseQMonomial(%q): %v", tt.in, err)
			}
			if got.Coeff.Cmp(tt.wantCoeff) != 0 || got.Power != tt.wantPower {
				t.Fatalf("parseQMonomial(%q) = %s*q^%d", tt.in, got.Coeff.RatString(), got.Power)
			}
		})
	}

	if _, err := parseQMonomial("q^x"); err == nil {
		t.Fatal("expected error for bad power")
	}
}

func TestParseQMonomialList(t *testing.T) {
	got, err := parseQMonomialList("q^-5, q^2, 3")
	if err != nil {
		t.Fatalf("parseQMonomialList: %v", err)
	}
	if len(got) != 3 || got[0].Power != -5 || got[1].Power != 2 || got[2].Coeff.Cmp(big.NewRat(3, 1)) != 0 {
		t.Fatalf("parseQMonomialList = %+v", got)
	}

	empty, err := parseQMonomialList("")
	if err != nil || empty != nil {
		t.Fatalf("empty list = %+v, %v", empty, err)
	}
}

func TestParseInt64List(t *testing.T) {
	got, err := parseInt64List("5, 7, 11")
	if err != nil {
		t.Fatalf("parseInt64List: %v", err)
	}
	if len(got) != 3 || got[0] != 5 || got[2] != 11 {
		t.Fatalf("parseInt64List = %v", got)
	}
}
