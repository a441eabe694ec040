package collection

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/flossdex/internal/domain"
	domcol "github.com/kailas-cloud/flossdex/internal/domain/collection"
)

// ShareSeparator joins floss names in a shareable collection string ("310+321+B5200").
const ShareSeparator = "+"

// Service handles collection CRUD operations.
type Service struct {
	repo    Repository
	palette PaletteReader
}

// New creates a collection service.
func New(repo Repository, palette PaletteReader) *Service {
	return &Service{repo: repo, palette: palette}
}

// Create validates and stores a new collection.
func (s *Service) Create(ctx context.Context, name string, flossNames []string) (domcol.Collection, error) {
	if err := s.validateFlosses(flossNames); err != nil {
		return domcol.Collection{}, err
	}

	col, err := domcol.New(name, flossNames)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("validate collection: %w: %w", domain.ErrInvalidSchema, err)
	}

	if err := s.repo.Create(ctx, col); err != nil {
		return domcol.Collection{}, fmt.Errorf("create collection: %w", err)
	}
	return col, nil
}

// Import creates a collection from a shared "a+b+c" floss list.
func (s *Service) Import(ctx context.Context, name, shared string) (domcol.Collection, error) {
	names := ParseShared(shared)
	if len(names) == 0 {
		return domcol.Collection{}, fmt.Errorf("%w: no floss names to import", domain.ErrInvalidSchema)
	}
	return s.Create(ctx, name, names)
}

// Export returns the collection's flosses as a shareable "a+b+c" string.
func (s *Service) Export(ctx context.Context, name string) (string, error) {
	col, err := s.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return strings.Join(col.FlossNames(), ShareSeparator), nil
}

// Get retrieves a collection by name.
func (s *Service) Get(ctx context.Context, name string) (domcol.Collection, error) {
	col, err := s.repo.Get(ctx, name)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	return col, nil
}

// List returns all collections.
func (s *Service) List(ctx context.Context) ([]domcol.Collection, error) {
	cols, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return cols, nil
}

// AllowedNames returns the floss names of a collection, for restricting a search.
func (s *Service) AllowedNames(ctx context.Context, name string) ([]string, error) {
	col, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return col.FlossNames(), nil
}

// Rename moves a collection to a new name.
func (s *Service) Rename(ctx context.Context, oldName, newName string) (domcol.Collection, error) {
	col, err := s.Get(ctx, oldName)
	if err != nil {
		return domcol.Collection{}, err
	}

	renamed, err := col.Renamed(newName)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("validate collection: %w: %w", domain.ErrInvalidSchema, err)
	}
	if renamed.Name() == col.Name() {
		return col, nil
	}

	if err := s.repo.Rename(ctx, oldName, renamed); err != nil {
		return domcol.Collection{}, fmt.Errorf("rename collection: %w", err)
	}
	return renamed, nil
}

// SetFlosses replaces the flosses of a collection. expectedRevision > 0 rejects the
// write with ErrRevisionConflict when the collection changed in between.
func (s *Service) SetFlosses(
	ctx context.Context, name string, flossNames []string, expectedRevision int,
) (domcol.Collection, error) {
	if err := s.validateFlosses(flossNames); err != nil {
		return domcol.Collection{}, err
	}
	return s.update(ctx, name, expectedRevision, func(domcol.Collection) ([]string, bool) {
		return flossNames, true
	})
}

// AddFloss adds one floss to a collection. Adding a present floss is a no-op
// and keeps the revision.
func (s *Service) AddFloss(ctx context.Context, name, flossName string) (domcol.Collection, error) {
	if err := s.validateFlosses([]string{flossName}); err != nil {
		return domcol.Collection{}, err
	}
	return s.update(ctx, name, 0, func(col domcol.Collection) ([]string, bool) {
		if col.Contains(flossName) {
			return nil, false
		}
		return append(col.FlossNames(), flossName), true
	})
}

// RemoveFloss removes one floss from a collection. Removing an absent floss is
// a no-op and keeps the revision.
func (s *Service) RemoveFloss(ctx context.Context, name, flossName string) (domcol.Collection, error) {
	return s.update(ctx, name, 0, func(col domcol.Collection) ([]string, bool) {
		if !col.Contains(flossName) {
			return nil, false
		}
		return slices.DeleteFunc(col.FlossNames(), func(n string) bool { return n == flossName }), true
	})
}

// Delete removes a collection.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

// update applies change to the stored collection and saves it with optimistic locking
// against expectedRevision (or the revision just read when zero). A change that
// reports false leaves the collection untouched.
func (s *Service) update(
	ctx context.Context, name string, expectedRevision int,
	change func(domcol.Collection) ([]string, bool),
) (domcol.Collection, error) {
	col, err := s.Get(ctx, name)
	if err != nil {
		return domcol.Collection{}, err
	}
	if expectedRevision > 0 && col.Revision() != expectedRevision {
		return domcol.Collection{}, domain.NewRevisionConflict(col.Revision())
	}

	names, changed := change(col)
	if !changed {
		return col, nil
	}
	updated := col.WithFlosses(names)
	if err := s.repo.Save(ctx, updated, col.Revision()); err != nil {
		return domcol.Collection{}, fmt.Errorf("save collection: %w", err)
	}
	return updated, nil
}

func (s *Service) validateFlosses(names []string) error {
	if _, err := s.palette.Resolve(names); err != nil {
		return fmt.Errorf("validate flosses: %w", err)
	}
	return nil
}

// ParseShared splits a shared "a+b+c" floss list, trimming blanks and dropping empties.
func ParseShared(shared string) []string {
	var names []string
	for _, part := range strings.Split(shared, ShareSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
