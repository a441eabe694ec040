package search

import (
	"context"

	"github.com/kailas-cloud/flossdex/internal/domain/floss"
	"github.com/kailas-cloud/flossdex/internal/domain/search/result"
)

// PaletteReader resolves floss names against the base palette.
type PaletteReader interface {
	Lookup(name string) (floss.Floss, error)
	Resolve(names []string) ([]floss.Floss, error)
	All() []floss.Floss
}

// Engine ranks candidate blends for one request.
type Engine interface {
	Search(
		ctx context.Context, target floss.Floss, allowed []floss.Floss, maxSize, limit int,
	) ([]result.Group, error)
}
