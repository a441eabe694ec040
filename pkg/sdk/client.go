package flossdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/flossdex/internal/db"
	"github.com/kailas-cloud/flossdex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/flossdex/internal/db/redis"
	domcol "github.com/kailas-cloud/flossdex/internal/domain/collection"
	"github.com/kailas-cloud/flossdex/internal/domain/floss"
	"github.com/kailas-cloud/flossdex/internal/domain/search/result"
	"github.com/kailas-cloud/flossdex/internal/palette"
	collectionrepo "github.com/kailas-cloud/flossdex/internal/repository/collection"
	collectionuc "github.com/kailas-cloud/flossdex/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/flossdex/internal/usecase/health"
	nearestuc "github.com/kailas-cloud/flossdex/internal/usecase/nearest"
	"github.com/kailas-cloud/flossdex/internal/usecase/neighbor"
	searchuc "github.com/kailas-cloud/flossdex/internal/usecase/search"
)

const (
	driverMemory = "memory"
	driverValkey = "valkey"
	driverRedis  = "redis"

	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces, swapped for mocks in tests.
type collectionUseCase interface {
	Create(ctx context.Context, name string, flossNames []string) (domcol.Collection, error)
	Import(ctx context.Context, name, shared string) (domcol.Collection, error)
	Export(ctx context.Context, name string) (string, error)
	Get(ctx context.Context, name string) (domcol.Collection, error)
	List(ctx context.Context) ([]domcol.Collection, error)
	Rename(ctx context.Context, oldName, newName string) (domcol.Collection, error)
	SetFlosses(ctx context.Context, name string, flossNames []string, expectedRevision int) (domcol.Collection, error)
	AddFloss(ctx context.Context, name, flossName string) (domcol.Collection, error)
	RemoveFloss(ctx context.Context, name, flossName string) (domcol.Collection, error)
	Delete(ctx context.Context, name string) error
}

type nearestUseCase interface {
	Find(ctx context.Context, q nearestuc.Query) (result.Response, error)
	CandidateCount(ctx context.Context, q nearestuc.Query) (uint64, error)
}

// Client is the flossdex SDK entry point.
type Client struct {
	store      db.Store
	dispatcher *searchuc.Dispatcher
	palette    *floss.Palette
	collSvc    collectionUseCase
	nearestSvc nearestUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a flossdex Client: loads the palette, connects to the collection
// store and starts the search workers. The provided context is used for the
// initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:        driverMemory,
		workers:       searchuc.DefaultWorkers,
		queueSize:     searchuc.DefaultQueueSize,
		maxCandidates: nearestuc.DefaultMaxCandidates,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	pal, err := palette.Open(cfg.palettePath)
	if err != nil {
		return nil, fmt.Errorf("flossdex: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("flossdex: database not ready: %w", err)
	}

	return wireClient(store, pal, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverValkey, driverRedis:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, errors.New("flossdex: database address required (use WithValkey or WithRedis)")
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("flossdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("flossdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, pal *floss.Palette, cfg *clientConfig, obs *observer) *Client {
	// SDK logging goes through the observer; the engine and workers stay quiet.
	dispatcher := searchuc.NewDispatcher(pal, neighbor.NewEngine(nil), searchuc.Config{
		Workers:   cfg.workers,
		QueueSize: cfg.queueSize,
	}, nil)

	collSvc := collectionuc.New(collectionrepo.New(store, cfg.keyPrefix), pal)
	nearestSvc := nearestuc.New(dispatcher, collSvc, pal, nearestuc.Config{
		MaxCandidates: cfg.maxCandidates,
		Timeout:       cfg.timeout,
	})

	return &Client{
		store:      store,
		dispatcher: dispatcher,
		palette:    pal,
		collSvc:    collSvc,
		nearestSvc: nearestSvc,
		healthSvc:  healthuc.New(store, dispatcher),
		obs:        obs,
	}
}

// Close stops the search workers and releases the store. Searches still waiting
// return when their context ends.
func (c *Client) Close() {
	if c.dispatcher != nil {
		c.dispatcher.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Palette returns the palette browser.
func (c *Client) Palette() *PaletteService {
	return &PaletteService{palette: c.palette}
}

// Collections returns the collection management service.
func (c *Client) Collections() *CollectionService {
	return &CollectionService{svc: c.collSvc, obs: c.obs}
}
