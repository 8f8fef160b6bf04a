package cmd

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/arena"
	"github.com/papapumpkin/qsq/internal/ui"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Expand a q-series expression",
	Long: "eval parses an expression built from rationals, q powers, and\n" +
		"Pochhammer symbols, and prints its q-expansion. Examples:\n\n" +
		"  qsq eval '1/(q;q)_inf'\n" +
		"  qsq eval '(q;q^2)_inf * (q^2;q^2)_inf'\n" +
		"  qsq eval '(2*q^3;q)_5 + q^2 - 1/2'",
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	a := arena.New()
	p := &exprParser{input: args[0], arena: a}
	ref, err := p.parseExpr()
	if err != nil {
		return err
	}
	if rest := strings.TrimSpace(p.input[p.pos:]); rest != "" {
		return fmt.Errorf("trailing input %q", rest)
	}

	f, err := a.Expand(ref, cfg.Trunc)
	if err != nil {
		return err
	}

	out := ui.FormatSeries(f)
	printer.Result(out)
	recordResult(cfg, printer, "eval", args[0], out)
	return nil
}

// exprParser is a recursive-descent parser over the eval grammar:
//
//	expr   := term (('+'|'-') term)*
//	term   := factor (('*'|'/') factor)*
//	factor := pochhammer | 'q' ['^' int] | rational | '(' expr ')'
//
// A Pochhammer symbol is written (c*q^b; q^t)_n with n an integer or
// "inf". Division is only supported by a Pochhammer or parenthesized
// factor through series inversion at expansion time, so 1/X is parsed
// as X with a reciprocal marker.
type exprParser struct {
	input string
	pos   int
	arena *arena.Arena
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (arena.Ref, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left = p.arena.Sum(left, right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left = p.arena.Sum(left, p.arena.Scale(big.NewRat(-1, 1), right))
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (arena.Ref, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '/' {
			right, err = p.arena.Reciprocal(right)
			if err != nil {
				return 0, err
			}
		}
		left = p.arena.Product(left, right)
	}
}

func (p *exprParser) parseFactor() (arena.Ref, error) {
	switch c := p.peek(); {
	case c == '(':
		return p.parseParenOrPochhammer()
	case c == 'q':
		return p.parseQPower()
	case c >= '0' && c <= '9':
		return p.parseRational()
	case c == 0:
		return 0, fmt.Errorf("unexpected end of expression")
	default:
		return 0, fmt.Errorf("unexpected %q at offset %d", string(c), p.pos)
	}
}

func (p *exprParser) parseQPower() (arena.Ref, error) {
	p.pos++ // consume 'q'
	power := int64(1)
	if p.pos < len(p.input) && p.input[p.pos] == '^' {
		p.pos++
		v, err := p.parseInt()
		if err != nil {
			return 0, err
		}
		power = v
	}
	return p.arena.Monomial(big.NewRat(1, 1), power), nil
}

func (p *exprParser) parseRational() (arena.Ref, error) {
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '/') {
		// A '/' is part of the rational only when followed by a digit;
		// otherwise it is the division operator.
		if p.input[p.pos] == '/' && (p.pos+1 >= len(p.input) || p.input[p.pos+1] < '0' || p.input[p.pos+1] > '9') {
			break
		}
		p.pos++
	}
	r, ok := new(big.Rat).SetString(p.input[start:p.pos])
	if !ok {
		return 0, fmt.Errorf("bad rational %q", p.input[start:p.pos])
	}
	return p.arena.Monomial(r, 0), nil
}

func (p *exprParser) parseInt() (int64, error) {
	start := p.pos
	if p.pos < len(p.input) && p.input[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	v, err := strconv.ParseInt(p.input[start:p.pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad integer at offset %d: %w", start, err)
	}
	return v, nil
}

// parseParenOrPochhammer disambiguates "(expr)" from "(a;q^t)_n" by
// looking for the ';' separator before the matching close paren.
func (p *exprParser) parseParenOrPochhammer() (arena.Ref, error) {
	p.skipSpace()
	open := p.pos
	depth := 0
	semicolon := -1
	close := -1
	for i := open; i < len(p.input); i++ {
		switch p.input[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				close = i
			}
		case ';':
			if depth == 1 && semicolon < 0 {
				semicolon = i
			}
		}
		if close >= 0 {
			break
		}
	}
	if close < 0 {
		return 0, fmt.Errorf("unbalanced parenthesis at offset %d", open)
	}

	if semicolon < 0 {
		p.pos++ // consume '('
		ref, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("expected ')' at offset %d", p.pos)
		}
		p.pos++
		return ref, nil
	}

	return p.parsePochhammer(open, semicolon, close)
}

func (p *exprParser) parsePochhammer(open, semicolon, close int) (arena.Ref, error) {
	base, err := parseQMonomial(p.input[open+1 : semicolon])
	if err != nil {
		return 0, fmt.Errorf("pochhammer base: %w", err)
	}

	stepSpec := strings.TrimSpace(p.input[semicolon+1 : close])
	step, err := parseQMonomial(stepSpec)
	if err != nil || step.Coeff.Cmp(big.NewRat(1, 1)) != 0 || step.Power < 1 {
		return 0, fmt.Errorf("pochhammer step must be a positive q power, got %q", stepSpec)
	}

	p.pos = close + 1
	if p.pos >= len(p.input) || p.input[p.pos] != '_' {
		return 0, fmt.Errorf("pochhammer symbol needs an order suffix, as in (q;q)_inf")
	}
	p.pos++

	var order arena.Order
	if strings.HasPrefix(p.input[p.pos:], "inf") {
		order = arena.Inf()
		p.pos += len("inf")
	} else {
		n, err := p.parseInt()
		if err != nil {
			return 0, err
		}
		order = arena.Finite(n)
	}

	return p.arena.Pochhammer(base.Coeff, base.Power, step.Power, order)
}
