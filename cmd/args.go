package cmd

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

// parseSeries turns a CLI series spec into a truncated series. The
// grammar covers the built-in generating functions plus a few
// parameterized forms:
//
//	euler | partitions | distinct | odd | theta2 | theta3 | theta4
//	etaq(b,t) | jacprod(a,b) | qbin(n,k) | bounded(m) | mock(name)
//
// Specs joined with "/" divide, so "euler/etaq(2,2)" is
// (q;q)_inf / (q^2;q^2)_inf.
func parseSeries(spec string, trunc int64) (*series.Series, error) {
	parts := strings.Split(spec, "/")
	out, err := parseSeriesAtom(strings.TrimSpace(parts[0]), trunc)
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		g, err := parseSeriesAtom(strings.TrimSpace(part), trunc)
		if err != nil {
			return nil, err
		}
		out, err = out.Div(g)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", spec, err)
		}
	}
	return out, nil
}

func parseSeriesAtom(spec string, trunc int64) (*series.Series, error) {
	switch spec {
	case "euler":
		return series.Euler(trunc), nil
	case "partitions":
		return qseries.PartitionGF(trunc), nil
	case "distinct":
		return qseries.DistinctPartsGF(trunc), nil
	case "odd":
		return qseries.OddPartsGF(trunc), nil
	case "theta2":
		return qseries.Theta2(trunc), nil
	case "theta3":
		return qseries.Theta3(trunc), nil
	case "theta4":
		return qseries.Theta4(trunc), nil
	}

	name, args, ok := splitCall(spec)
	if !ok {
		return nil, fmt.Errorf("unknown series %q", spec)
	}
	switch name {
	case "etaq":
		b, t, err := twoInts(args)
		if err != nil {
			return nil, fmt.Errorf("etaq: %w", err)
		}
		if b < 1 || t < 1 {
			return nil, fmt.Errorf("etaq(%d,%d): both arguments must be >= 1", b, t)
		}
		return qseries.Etaq(b, t, trunc), nil
	case "jacprod":
		a, b, err := twoInts(args)
		if err != nil {
			return nil, fmt.Errorf("jacprod: %w", err)
		}
		if a < 1 || a >= b {
			return nil, fmt.Errorf("jacprod(%d,%d): arguments must satisfy 0 < a < b", a, b)
		}
		return qseries.Jacprod(a, b, trunc), nil
	case "qbin":
		n, k, err := twoInts(args)
		if err != nil {
			return nil, fmt.Errorf("qbin: %w", err)
		}
		return qseries.Qbin(n, k, trunc), nil
	case "bounded":
		if len(args) != 1 {
			return nil, fmt.Errorf("bounded: want 1 argument, got %d", len(args))
		}
		m, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bounded: %w", err)
		}
		return qseries.BoundedPartsGF(m, trunc), nil
	case "mock":
		if len(args) != 1 {
			return nil, fmt.Errorf("mock: want 1 argument, got %d", len(args))
		}
		return qseries.MockTheta(args[0], trunc)
	}
	return nil, fmt.Errorf("unknown series %q", spec)
}

// splitCall parses "name(a,b,...)" into the name and raw arguments.
func splitCall(spec string) (name string, args []string, ok bool) {
	open := strings.IndexByte(spec, '(')
	if open < 1 || !strings.HasSuffix(spec, ")") {
		return "", nil, false
	}
	name = spec[:open]
	inner := spec[open+1 : len(spec)-1]
	for _, a := range strings.Split(inner, ",") {
		args = append(args, strings.TrimSpace(a))
	}
	return name, args, true
}

func twoInts(args []string) (int64, int64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("want 2 arguments, got %d", len(args))
	}
	a, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// parseSeriesList parses each spec at the same truncation order.
func parseSeriesList(specs []string, trunc int64) ([]*series.Series, error) {
	out := make([]*series.Series, 0, len(specs))
	for _, spec := range specs {
		f, err := parseSeries(spec, trunc)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// parseQMonomial parses a coefficient-times-q-power term. Accepted
// forms: "q", "q^3", "q^-2", "5", "1/2", "3*q^2", "-1/3*q^-1".
func parseQMonomial(s string) (qseries.QMonomial, error) {
	s = strings.TrimSpace(s)
	coeff := big.NewRat(1, 1)
	var power int64

	qPart := s
	if star := strings.IndexByte(s, '*'); star >= 0 {
		c, ok := new(big.Rat).SetString(s[:star])
		if !ok {
			return qseries.QMonomial{}, fmt.Errorf("bad coefficient in %q", s)
		}
		coeff = c
		qPart = s[star+1:]
	}

	switch {
	case qPart == "q":
		power = 1
	case strings.HasPrefix(qPart, "q^"):
		p, err := strconv.ParseInt(qPart[2:], 10, 64)
		if err != nil {
			return qseries.QMonomial{}, fmt.Errorf("bad q power in %q: %w", s, err)
		}
		power = p
	default:
		// No q part: the whole string is the coefficient.
		c, ok := new(big.Rat).SetString(qPart)
		if !ok {
			return qseries.QMonomial{}, fmt.Errorf("bad term %q", s)
		}
		coeff.Mul(coeff, c)
		power = 0
	}
	return qseries.QMonomial{Coeff: coeff, Power: power}, nil
}

// parseQMonomialList parses a comma-separated parameter list like
// "q^-5,q^2,3". An empty string yields an empty list.
func parseQMonomialList(s string) ([]qseries.QMonomial, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []qseries.QMonomial
	for _, part := range strings.Split(s, ",") {
		m, err := parseQMonomial(part)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// parseRat parses an exact rational like "1/3" or "2".
func parseRat(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("bad rational %q", s)
	}
	return r, nil
}

// parseInt64List parses a comma-separated list of integers.
func parseInt64List(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []int64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
