package flossdex

import (
	"fmt"
	"math/rand/v2"

	"github.com/kailas-cloud/flossdex/internal/domain/floss"
)

// PaletteService browses the palette the client was created with.
type PaletteService struct {
	palette *floss.Palette
}

// Len returns the number of flosses.
func (s *PaletteService) Len() int { return s.palette.Len() }

// All returns every floss in palette order (non-numeric names first, then by number).
func (s *PaletteService) All() []Floss {
	return fromInternalFlosses(s.palette.All())
}

// Filter returns flosses whose name or description contains text, ignoring case.
func (s *PaletteService) Filter(text string) []Floss {
	return fromInternalFlosses(s.palette.Filter(text))
}

// Lookup returns a floss by name.
func (s *PaletteService) Lookup(name string) (Floss, error) {
	f, err := s.palette.Lookup(name)
	if err != nil {
		return Floss{}, fmt.Errorf("lookup floss: %w", err)
	}
	return fromInternalFloss(f), nil
}

// Random picks a floss uniformly. Returns false for an empty palette.
func (s *PaletteService) Random() (Floss, bool) {
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // not security sensitive
	f, ok := s.palette.Random(r)
	if !ok {
		return Floss{}, false
	}
	return fromInternalFloss(f), true
}

func fromInternalFlosses(ff []floss.Floss) []Floss {
	out := make([]Floss, len(ff))
	for i, f := range ff {
		out[i] = fromInternalFloss(f)
	}
	return out
}

func fromInternalFloss(f floss.Floss) Floss {
	return Floss{Name: f.Name(), Description: f.Description(), Hex: f.Hex()}
}
