// Package arena provides a session-scoped store of closed-form
// q-series expressions with hash-consing deduplication.
//
// Nodes are immutable and append-only; callers hold lightweight Ref
// indices. Structurally identical nodes are unified on insert, so
// repeated construction of the same sub-object costs one entry, and
// Ref comparison is O(1) structural equality. Expansion to a truncated
// power series is lazy and cached per (node, order) pair.
package arena

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/papapumpkin/qsq/internal/series"
)

// ErrInvalidSpec reports a malformed node specification, caught at
// construction time rather than at expansion.
var ErrInvalidSpec = errors.New("invalid expression spec")

// Ref is a non-owning index into an Arena.
type Ref uint32

// Order is the order of a Pochhammer symbol: a finite integer
// (possibly negative) or infinity.
type Order struct {
	N        int64
	Infinite bool
}

// Finite returns a finite Pochhammer order.
func Finite(n int64) Order { return Order{N: n} }

// Inf returns the infinite Pochhammer order.
func Inf() Order { return Order{Infinite: true} }

type kind uint8

const (
	kindMonomial kind = iota
	kindPochhammer
	kindScale
	kindSum
	kindProduct
	kindReciprocal
)

type node struct {
	kind kind

	// Monomial c*q^m and scalar multiples store the coefficient here.
	coeff *big.Rat
	power int64

	// Pochhammer (c*q^b; q^t)_n fields.
	base  *big.Rat
	shift int64
	step  int64
	order Order

	children []Ref
}

type cacheKey struct {
	ref   Ref
	order int64
}

// Arena owns all nodes created within one computation session.
type Arena struct {
	nodes []node
	dedup map[string]Ref
	cache map[cacheKey]*series.Series
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{
		dedup: make(map[string]Ref),
		cache: make(map[cacheKey]*series.Series),
	}
}

// Len reports the number of interned nodes.
func (a *Arena) Len() int { return len(a.nodes) }

func (a *Arena) insert(n node) Ref {
	key := fingerprint(&n)
	if ref, ok := a.dedup[key]; ok {
		return ref
	}
	ref := Ref(len(a.nodes))
	a.nodes = append(a.nodes, n)
	a.dedup[key] = ref
	return ref
}

// fingerprint produces the structural identity key used for
// deduplication. Two nodes share a key iff they are structurally
// identical after normalization.
func fingerprint(n *node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", n.kind)
	if n.coeff != nil {
		fmt.Fprintf(&b, "|c%s^%d", n.coeff.RatString(), n.power)
	}
	if n.base != nil {
		fmt.Fprintf(&b, "|p%s:%d:%d:%d:%t", n.base.RatString(), n.shift, n.step, n.order.N, n.order.Infinite)
	}
	for _, c := range n.children {
		fmt.Fprintf(&b, "|#%d", c)
	}
	return b.String()
}

// Monomial interns the node c*q^m.
func (a *Arena) Monomial(c *big.Rat, m int64) Ref {
	return a.insert(node{kind: kindMonomial, coeff: new(big.Rat).Set(c), power: m})
}

// Pochhammer interns the symbol (c*q^b; q^t)_n. A non-positive step t
// fails with ErrInvalidSpec: the factor exponents b, b+t, b+2t, ...
// must increase for truncated expansion to terminate.
func (a *Arena) Pochhammer(c *big.Rat, b, t int64, n Order) (Ref, error) {
	if t <= 0 {
		return 0, fmt.Errorf("%w: pochhammer step must be positive, got %d", ErrInvalidSpec, t)
	}
	return a.insert(node{
		kind:  kindPochhammer,
		base:  new(big.Rat).Set(c),
		shift: b,
		step:  t,
		order: n,
	}), nil
}

// Scale interns the scalar multiple c*child.
func (a *Arena) Scale(c *big.Rat, child Ref) Ref {
	return a.insert(node{kind: kindScale, coeff: new(big.Rat).Set(c), children: []Ref{child}})
}

// Sum interns the sum of the given nodes. Children are sorted so the
// same multiset of terms always interns to the same node.
func (a *Arena) Sum(children ...Ref) Ref {
	return a.insert(node{kind: kindSum, children: sortRefs(children)})
}

// Product interns the product of the given nodes, children sorted as
// for Sum.
func (a *Arena) Product(children ...Ref) Ref {
	return a.insert(node{kind: kindProduct, children: sortRefs(children)})
}

// Reciprocal interns the multiplicative inverse 1/child. Invertibility
// is only known at expansion time, so a child with zero constant term
// interns fine and fails on Expand.
func (a *Arena) Reciprocal(child Ref) (Ref, error) {
	if int(child) >= len(a.nodes) {
		return 0, fmt.Errorf("%w: unknown node %d", ErrInvalidSpec, child)
	}
	return a.insert(node{kind: kindReciprocal, children: []Ref{child}}), nil
}

func sortRefs(refs []Ref) []Ref {
	out := append([]Ref(nil), refs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Expand computes the truncated series expansion of a node. Results
// are cached per (node, order): identical requests recur constantly
// across the analysis algorithms, and cache entries are never evicted
// within a session.
func (a *Arena) Expand(ref Ref, order int64) (*series.Series, error) {
	if int(ref) >= len(a.nodes) {
		return nil, fmt.Errorf("%w: unknown node %d", ErrInvalidSpec, ref)
	}
	key := cacheKey{ref: ref, order: order}
	if s, ok := a.cache[key]; ok {
		return s.Clone(), nil
	}
	s, err := a.expand(&a.nodes[ref], order)
	if err != nil {
		return nil, err
	}
	a.cache[key] = s
	return s.Clone(), nil
}

func (a *Arena) expand(n *node, order int64) (*series.Series, error) {
	switch n.kind {
	case kindMonomial:
		return series.Monomial(n.coeff, n.power, order), nil

	case kindPochhammer:
		return expandPochhammer(n, order)

	case kindScale:
		child, err := a.Expand(n.children[0], order)
		if err != nil {
			return nil, err
		}
		return child.Scale(n.coeff), nil

	case kindSum:
		out := series.New(order)
		for _, c := range n.children {
			s, err := a.Expand(c, order)
			if err != nil {
				return nil, err
			}
			out = out.Add(s)
		}
		return out, nil

	case kindProduct:
		out := series.One(order)
		for _, c := range n.children {
			s, err := a.Expand(c, order)
			if err != nil {
				return nil, err
			}
			out = out.Mul(s)
		}
		return out, nil

	case kindReciprocal:
		child, err := a.Expand(n.children[0], order)
		if err != nil {
			return nil, err
		}
		return child.Invert()
	}
	return nil, fmt.Errorf("%w: unknown node kind %d", ErrInvalidSpec, n.kind)
}

// expandPochhammer expands (c*q^b; q^t)_n.
//
// Finite positive order multiplies n factors exactly. Finite negative
// order uses (x;q)_{-m} = 1/(x*q^{-mt};q^t)_m and can fail with
// ErrNonInvertibleDivision when a shifted factor vanishes identically.
// Infinite order multiplies factors until their exponent clears the
// truncation order.
func expandPochhammer(n *node, order int64) (*series.Series, error) {
	one := big.NewRat(1, 1)
	if n.base.Sign() == 0 {
		return series.One(order), nil
	}

	if n.order.Infinite {
		out := series.One(order)
		for k := int64(0); n.shift+k*n.step < order; k++ {
			out = out.Mul(pochFactor(n.base, n.shift+k*n.step, order))
		}
		return out, nil
	}

	m := n.order.N
	if m == 0 {
		return series.One(order), nil
	}
	if m > 0 {
		// (q^{-j}; q)_n vanishes when 0 <= j < n: the j-th factor is
		// exactly zero.
		if n.base.Cmp(one) == 0 && n.shift <= 0 && -n.shift < m*n.step && (-n.shift)%n.step == 0 {
			return series.New(order), nil
		}
		out := series.One(order)
		for k := int64(0); k < m; k++ {
			out = out.Mul(pochFactor(n.base, n.shift+k*n.step, order))
		}
		return out, nil
	}

	// Negative order: (x; q^t)_{-|m|} = 1 / (x*q^{-|m|t}; q^t)_{|m|}.
	abs := -m
	denom := series.One(order)
	for k := int64(0); k < abs; k++ {
		denom = denom.Mul(pochFactor(n.base, n.shift+(k-abs)*n.step, order))
	}
	return series.One(order).Div(denom)
}

// pochFactor builds (1 - c*q^e) as a series. Negative exponents yield
// Laurent factors, which downstream arithmetic handles.
func pochFactor(c *big.Rat, e, order int64) *series.Series {
	f := series.One(order)
	cur := f.Coeff(0)
	if e == 0 {
		cur.Sub(cur, c)
		f.SetCoeff(0, cur)
		return f
	}
	f.SetCoeff(e, new(big.Rat).Neg(c))
	return f
}
