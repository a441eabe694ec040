package flossdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/flossdex/internal/domain"
	domcol "github.com/kailas-cloud/flossdex/internal/domain/collection"
)

// CollectionService manages floss collections.
type CollectionService struct {
	svc collectionUseCase
	obs *observer
}

// Create stores a new collection of palette flosses.
func (s *CollectionService) Create(
	ctx context.Context, name string, flossNames ...string,
) (_ CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.create", start, err) }()

	col, err := s.svc.Create(ctx, name, flossNames)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("create collection: %w", err)
	}
	return fromInternalCollection(col), nil
}

// Ensure creates a collection if it does not exist.
// If it already exists, returns it unchanged.
func (s *CollectionService) Ensure(
	ctx context.Context, name string, flossNames ...string,
) (_ CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.ensure", start, err) }()

	col, err := s.svc.Create(ctx, name, flossNames)
	if err == nil {
		return fromInternalCollection(col), nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return CollectionInfo{}, fmt.Errorf("ensure collection: %w", err)
	}

	existing, err := s.svc.Get(ctx, name)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("ensure collection: %w", err)
	}
	return fromInternalCollection(existing), nil
}

// Import creates a collection from a shared "310+321+B5200" list.
func (s *CollectionService) Import(
	ctx context.Context, name, shared string,
) (_ CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.import", start, err) }()

	col, err := s.svc.Import(ctx, name, shared)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("import collection: %w", err)
	}
	return fromInternalCollection(col), nil
}

// Export returns the shared "310+321+B5200" form of a collection.
func (s *CollectionService) Export(ctx context.Context, name string) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.export", start, err) }()

	shared, err := s.svc.Export(ctx, name)
	if err != nil {
		return "", fmt.Errorf("export collection: %w", err)
	}
	return shared, nil
}

// Get retrieves a collection by name.
func (s *CollectionService) Get(
	ctx context.Context, name string,
) (_ CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.get", start, err) }()

	col, err := s.svc.Get(ctx, name)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("get collection: %w", err)
	}
	return fromInternalCollection(col), nil
}

// List returns all collections sorted by name.
func (s *CollectionService) List(ctx context.Context) (_ []CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.list", start, err) }()

	cols, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	out := make([]CollectionInfo, len(cols))
	for i, c := range cols {
		out[i] = fromInternalCollection(c)
	}
	return out, nil
}

// Rename moves a collection to a new name.
func (s *CollectionService) Rename(
	ctx context.Context, oldName, newName string,
) (_ CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.rename", start, err) }()

	col, err := s.svc.Rename(ctx, oldName, newName)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("rename collection: %w", err)
	}
	return fromInternalCollection(col), nil
}

// SetFlosses replaces the flosses of a collection. A non-zero expectedRevision
// fails with ErrRevisionConflict if the collection changed since it was read.
func (s *CollectionService) SetFlosses(
	ctx context.Context, name string, expectedRevision int, flossNames ...string,
) (_ CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.set_flosses", start, err) }()

	col, err := s.svc.SetFlosses(ctx, name, flossNames, expectedRevision)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("set collection flosses: %w", err)
	}
	return fromInternalCollection(col), nil
}

// AddFloss adds a floss to a collection.
func (s *CollectionService) AddFloss(
	ctx context.Context, name, flossName string,
) (_ CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.add_floss", start, err) }()

	col, err := s.svc.AddFloss(ctx, name, flossName)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("add floss: %w", err)
	}
	return fromInternalCollection(col), nil
}

// RemoveFloss removes a floss from a collection.
func (s *CollectionService) RemoveFloss(
	ctx context.Context, name, flossName string,
) (_ CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.remove_floss", start, err) }()

	col, err := s.svc.RemoveFloss(ctx, name, flossName)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("remove floss: %w", err)
	}
	return fromInternalCollection(col), nil
}

// Delete removes a collection.
func (s *CollectionService) Delete(
	ctx context.Context, name string,
) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.delete", start, err) }()

	if err = s.svc.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

func fromInternalCollection(col domcol.Collection) CollectionInfo {
	return CollectionInfo{
		Name:       col.Name(),
		FlossNames: col.FlossNames(),
		Revision:   col.Revision(),
		CreatedAt:  col.CreatedAt(),
	}
}
