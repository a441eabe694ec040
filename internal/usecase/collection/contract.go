package collection

import (
	"context"

	domcol "github.com/kailas-cloud/flossdex/internal/domain/collection"
	"github.com/kailas-cloud/flossdex/internal/domain/floss"
)

// Repository defines the storage contract for collections.
type Repository interface {
	Create(ctx context.Context, col domcol.Collection) error
	Get(ctx context.Context, name string) (domcol.Collection, error)
	List(ctx context.Context) ([]domcol.Collection, error)
	Save(ctx context.Context, col domcol.Collection, expectedRevision int) error
	Rename(ctx context.Context, oldName string, renamed domcol.Collection) error
	Delete(ctx context.Context, name string) error
}

// PaletteReader validates floss names against the base palette.
type PaletteReader interface {
	Resolve(names []string) ([]floss.Floss, error)
}
