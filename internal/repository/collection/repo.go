package collection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/flossdex/internal/domain"
	domcol "github.com/kailas-cloud/flossdex/internal/domain/collection"
)

// store is the consumer interface for collections (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/collection.Repository on hash records.
type Repo struct {
	store  store
	prefix string
}

// New creates a collection repository. An empty keyPrefix uses domain.KeyPrefix.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: keyPrefix}
}

// Create stores a new collection.
func (r *Repo) Create(ctx context.Context, col domcol.Collection) error {
	key := r.metaKey(col.Name())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	hashData, err := collectionToHash(col)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, hashData); err != nil {
		return fmt.Errorf("hset collection %s: %w", col.Name(), err)
	}
	return nil
}

// Get retrieves a collection by name.
func (r *Repo) Get(ctx context.Context, name string) (domcol.Collection, error) {
	m, err := r.store.HGetAll(ctx, r.metaKey(name))
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("hgetall collection %s: %w", name, err)
	}
	if len(m) == 0 {
		return domcol.Collection{}, domain.ErrNotFound
	}
	return collectionFromHash(m)
}

// List returns all collections sorted by name.
func (r *Repo) List(ctx context.Context) ([]domcol.Collection, error) {
	keys, err := r.store.Scan(ctx, r.metaKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan collections: %w", err)
	}
	if len(keys) == 0 {
		return []domcol.Collection{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi collections: %w", err)
	}

	collections := make([]domcol.Collection, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		col, err := collectionFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse collection %s: %w", keys[i], err)
		}
		collections = append(collections, col)
	}

	slices.SortFunc(collections, func(a, b domcol.Collection) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return collections, nil
}

// Save overwrites an existing collection. expectedRevision > 0 enables optimistic
// locking: the stored revision must equal it.
func (r *Repo) Save(ctx context.Context, col domcol.Collection, expectedRevision int) error {
	current, err := r.Get(ctx, col.Name())
	if err != nil {
		return err
	}
	if expectedRevision > 0 && current.Revision() != expectedRevision {
		return domain.NewRevisionConflict(current.Revision())
	}

	hashData, err := collectionToHash(col)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, r.metaKey(col.Name()), hashData); err != nil {
		return fmt.Errorf("hset collection %s: %w", col.Name(), err)
	}
	return nil
}

// Rename moves a collection to renamed.Name(): HSET the new record, then DEL the old
// one. On DEL failure, rolls back the HSET.
func (r *Repo) Rename(ctx context.Context, oldName string, renamed domcol.Collection) error {
	oldKey := r.metaKey(oldName)
	newKey := r.metaKey(renamed.Name())

	exists, err := r.store.Exists(ctx, oldKey)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if oldKey == newKey {
		return nil
	}

	taken, err := r.store.Exists(ctx, newKey)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if taken {
		return domain.ErrAlreadyExists
	}

	hashData, err := collectionToHash(renamed)
	if err != nil {
		return err
	}

	// Step 1: HSET new record
	if err := r.store.HSet(ctx, newKey, hashData); err != nil {
		return fmt.Errorf("hset collection %s: %w", renamed.Name(), err)
	}

	// Step 2: DEL old record, roll back the HSET on error
	if err := r.store.Del(ctx, oldKey); err != nil {
		cleanupErr := r.store.Del(ctx, newKey)
		return errors.Join(fmt.Errorf("del collection %s: %w", oldName, err), cleanupErr)
	}
	return nil
}

// Delete removes a collection.
func (r *Repo) Delete(ctx context.Context, name string) error {
	key := r.metaKey(name)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del collection %s: %w", name, err)
	}
	return nil
}

// Key pattern: {prefix}collection:{name}

func (r *Repo) metaKey(name string) string {
	return fmt.Sprintf("%scollection:%s", r.prefix, name)
}
