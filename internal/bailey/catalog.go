package bailey

import (
	"fmt"
	"math/big"
	"strings"

	_ "embed"

	"github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/qsq/internal/qseries"
	"github.com/papapumpkin/qsq/internal/series"
)

//go:embed catalog.toml
var catalogTOML []byte

type catalogEntry struct {
	Name string   `toml:"name"`
	Kind string   `toml:"kind"`
	Z    string   `toml:"z"`
	Tags []string `toml:"tags"`
}

type catalogFile struct {
	Pairs []catalogEntry `toml:"pair"`
}

// Catalog is an ordered collection of Bailey pairs. Discovery scans it
// in insertion order, so the embedded canonical pairs are always tried
// first and results are deterministic.
type Catalog struct {
	pairs []*Pair
}

// LoadCatalog parses the embedded canonical pair catalog.
func LoadCatalog() (*Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(catalogTOML, &file); err != nil {
		return nil, fmt.Errorf("parse bailey catalog: %w", err)
	}

	cat := &Catalog{}
	for _, e := range file.Pairs {
		p := &Pair{
			Name: e.Name,
			Kind: Kind(e.Kind),
			Tags: e.Tags,
		}
		switch p.Kind {
		case KindUnit, KindDelta, KindRogersRamanujan:
		case KindQBinomial:
			z, ok := new(big.Rat).SetString(e.Z)
			if !ok {
				return nil, fmt.Errorf("parse bailey catalog: pair %q: bad z %q", e.Name, e.Z)
			}
			p.Z = z
		default:
			return nil, fmt.Errorf("parse bailey catalog: pair %q: unknown kind %q", e.Name, e.Kind)
		}
		cat.pairs = append(cat.pairs, p)
	}
	return cat, nil
}

// Add appends a pair, typically a derived tabulated one.
func (c *Catalog) Add(p *Pair) {
	c.pairs = append(c.pairs, p)
}

// Pairs returns all pairs in catalog order.
func (c *Catalog) Pairs() []*Pair {
	return c.pairs
}

// Len reports the number of pairs.
func (c *Catalog) Len() int {
	return len(c.pairs)
}

// ByTag returns pairs carrying the tag, case-insensitively.
func (c *Catalog) ByTag(tag string) []*Pair {
	var out []*Pair
	for _, p := range c.pairs {
		for _, t := range p.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ByName returns pairs whose name contains the query, case-insensitively.
func (c *Catalog) ByName(name string) []*Pair {
	query := strings.ToLower(name)
	var out []*Pair
	for _, p := range c.pairs {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}

// Discover matches a series against the catalog: each candidate pair
// is expanded through the weak Bailey lemma at a = 1 to the input's
// truncation order and compared coefficient by coefficient. The first
// match in catalog order wins; exhaustion reports ErrNoMatch.
func (c *Catalog) Discover(f *series.Series) (*Pair, error) {
	trunc := f.Trunc()
	a := qseries.Constant(big.NewRat(1, 1))

	// q^{n^2} weights vanish past n^2 >= trunc.
	maxN := int64(1)
	for maxN*maxN < trunc {
		maxN++
	}

	for _, p := range c.pairs {
		lhs, _, err := WeakLemma(p, a, maxN, trunc)
		if err != nil {
			continue
		}
		if lhs.Equal(f) {
			return p, nil
		}
	}
	return nil, ErrNoMatch
}
