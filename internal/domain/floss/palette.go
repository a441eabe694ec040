package floss

import (
	"math/rand/v2"

	"github.com/kailas-cloud/flossdex/internal/domain"
)

// Palette is the ordered, deduplicated set of base flosses. Immutable once built
// and safe to share between goroutines without synchronization.
type Palette struct {
	flosses []Floss
	byName  map[string]int
}

// NewPalette sorts flosses by name and drops later duplicates of a name.
func NewPalette(flosses []Floss) *Palette {
	unique := make([]Floss, 0, len(flosses))
	seen := make(map[string]struct{}, len(flosses))
	for _, f := range flosses {
		if _, dup := seen[f.name]; dup {
			continue
		}
		seen[f.name] = struct{}{}
		unique = append(unique, f)
	}

	sorted := Sorted(unique)
	byName := make(map[string]int, len(sorted))
	for i, f := range sorted {
		byName[f.name] = i
	}
	return &Palette{flosses: sorted, byName: byName}
}

// Len returns the number of flosses.
func (p *Palette) Len() int { return len(p.flosses) }

// All returns a copy of the flosses in palette order.
func (p *Palette) All() []Floss {
	out := make([]Floss, len(p.flosses))
	copy(out, p.flosses)
	return out
}

// Names returns all floss names in palette order.
func (p *Palette) Names() []string {
	names := make([]string, len(p.flosses))
	for i, f := range p.flosses {
		names[i] = f.name
	}
	return names
}

// Lookup finds a floss by exact name.
func (p *Palette) Lookup(name string) (Floss, error) {
	i, ok := p.byName[name]
	if !ok {
		return Floss{}, domain.NewUnknownColor(name)
	}
	return p.flosses[i], nil
}

// Resolve looks up names in the given order, dropping repeated names.
// Fails on the first name that is not in the palette.
func (p *Palette) Resolve(names []string) ([]Floss, error) {
	out := make([]Floss, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		f, err := p.Lookup(name)
		if err != nil {
			return nil, err
		}
		seen[name] = struct{}{}
		out = append(out, f)
	}
	return out, nil
}

// Filter returns flosses whose name or description contains text, in palette order.
// An empty text matches everything.
func (p *Palette) Filter(text string) []Floss {
	if text == "" {
		return p.All()
	}
	out := make([]Floss, 0)
	for _, f := range p.flosses {
		if f.MatchesFilter(text) {
			out = append(out, f)
		}
	}
	return out
}

// Random picks a floss uniformly. Returns false for an empty palette.
func (p *Palette) Random(r *rand.Rand) (Floss, bool) {
	if len(p.flosses) == 0 {
		return Floss{}, false
	}
	return p.flosses[r.IntN(len(p.flosses))], true
}
