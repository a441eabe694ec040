package nearest

import (
	"context"

	"github.com/kailas-cloud/flossdex/internal/domain/floss"
	"github.com/kailas-cloud/flossdex/internal/domain/search/request"
	"github.com/kailas-cloud/flossdex/internal/usecase/search"
)

// Submitter hands a validated request to the search channel.
type Submitter interface {
	Submit(ctx context.Context, req request.Request) (*search.Pending, error)
}

// CollectionReader lists the floss names of a stored collection.
type CollectionReader interface {
	AllowedNames(ctx context.Context, name string) ([]string, error)
}

// PaletteReader resolves names before the feasibility gate counts candidates.
type PaletteReader interface {
	Len() int
	Lookup(name string) (floss.Floss, error)
	Resolve(names []string) ([]floss.Floss, error)
}
