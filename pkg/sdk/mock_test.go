package flossdex

import (
	"context"

	domcol "github.com/kailas-cloud/flossdex/internal/domain/collection"
	"github.com/kailas-cloud/flossdex/internal/domain/search/result"
	nearestuc "github.com/kailas-cloud/flossdex/internal/usecase/nearest"
)

// --- collectionUseCase mock ---

type mockCollectionUC struct {
	createFn      func(ctx context.Context, name string, flossNames []string) (domcol.Collection, error)
	importFn      func(ctx context.Context, name, shared string) (domcol.Collection, error)
	exportFn      func(ctx context.Context, name string) (string, error)
	getFn         func(ctx context.Context, name string) (domcol.Collection, error)
	listFn        func(ctx context.Context) ([]domcol.Collection, error)
	renameFn      func(ctx context.Context, oldName, newName string) (domcol.Collection, error)
	setFlossesFn  func(ctx context.Context, name string, flossNames []string, rev int) (domcol.Collection, error)
	addFlossFn    func(ctx context.Context, name, flossName string) (domcol.Collection, error)
	removeFlossFn func(ctx context.Context, name, flossName string) (domcol.Collection, error)
	deleteFn      func(ctx context.Context, name string) error
}

func (m *mockCollectionUC) Create(ctx context.Context, name string, flossNames []string) (domcol.Collection, error) {
	return m.createFn(ctx, name, flossNames)
}

func (m *mockCollectionUC) Import(ctx context.Context, name, shared string) (domcol.Collection, error) {
	return m.importFn(ctx, name, shared)
}

func (m *mockCollectionUC) Export(ctx context.Context, name string) (string, error) {
	return m.exportFn(ctx, name)
}

func (m *mockCollectionUC) Get(ctx context.Context, name string) (domcol.Collection, error) {
	return m.getFn(ctx, name)
}

func (m *mockCollectionUC) List(ctx context.Context) ([]domcol.Collection, error) {
	return m.listFn(ctx)
}

func (m *mockCollectionUC) Rename(ctx context.Context, oldName, newName string) (domcol.Collection, error) {
	return m.renameFn(ctx, oldName, newName)
}

func (m *mockCollectionUC) SetFlosses(
	ctx context.Context, name string, flossNames []string, expectedRevision int,
) (domcol.Collection, error) {
	return m.setFlossesFn(ctx, name, flossNames, expectedRevision)
}

func (m *mockCollectionUC) AddFloss(ctx context.Context, name, flossName string) (domcol.Collection, error) {
	return m.addFlossFn(ctx, name, flossName)
}

func (m *mockCollectionUC) RemoveFloss(ctx context.Context, name, flossName string) (domcol.Collection, error) {
	return m.removeFlossFn(ctx, name, flossName)
}

func (m *mockCollectionUC) Delete(ctx context.Context, name string) error {
	return m.deleteFn(ctx, name)
}

// --- nearestUseCase mock ---

type mockNearestUC struct {
	findFn  func(ctx context.Context, q nearestuc.Query) (result.Response, error)
	countFn func(ctx context.Context, q nearestuc.Query) (uint64, error)
}

func (m *mockNearestUC) Find(ctx context.Context, q nearestuc.Query) (result.Response, error) {
	return m.findFn(ctx, q)
}

func (m *mockNearestUC) CandidateCount(ctx context.Context, q nearestuc.Query) (uint64, error) {
	return m.countFn(ctx, q)
}
