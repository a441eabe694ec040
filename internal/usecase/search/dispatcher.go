// Package search runs nearest-blend searches off the caller's goroutine and routes
// each answer back to its request by correlation ID.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/flossdex/internal/domain"
	"github.com/kailas-cloud/flossdex/internal/domain/floss"
	"github.com/kailas-cloud/flossdex/internal/domain/search/request"
	"github.com/kailas-cloud/flossdex/internal/domain/search/result"
	"github.com/kailas-cloud/flossdex/internal/metrics"
)

// Defaults for Config fields left at zero.
const (
	DefaultWorkers   = 2
	DefaultQueueSize = 64
)

// Config sizes the worker pool and its queues.
type Config struct {
	Workers   int
	QueueSize int
}

type job struct {
	ctx     context.Context //nolint:containedctx // request-scoped, carried to the worker
	req     request.Request
	target  floss.Floss
	allowed []floss.Floss
}

type reply struct {
	id   uint64
	resp result.Response
	err  error
}

// Pending is a submitted search awaiting its response.
type Pending struct {
	id   uint64
	done chan reply
}

// ID returns the correlation ID assigned at submission.
func (p *Pending) ID() uint64 { return p.id }

// Wait blocks until the response for this request arrives or ctx is done.
func (p *Pending) Wait(ctx context.Context) (result.Response, error) {
	select {
	case r := <-p.done:
		return r.resp, r.err
	case <-ctx.Done():
		return result.Response{}, fmt.Errorf("wait for search %d: %w", p.id, ctx.Err())
	}
}

// Dispatcher is the asynchronous request channel in front of the search engine.
// Requests go to a pool of workers over a queue; answers come back over a second
// queue and a single demultiplexer hands each one to the pending request with the
// same ID.
type Dispatcher struct {
	palette PaletteReader
	engine  Engine
	logger  *zap.Logger

	jobs    chan job
	replies chan reply
	quit    chan struct{}

	nextID atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]*Pending

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewDispatcher starts the workers and the demultiplexer.
func NewDispatcher(palette PaletteReader, engine Engine, cfg Config, logger *zap.Logger) *Dispatcher {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		palette: palette,
		engine:  engine,
		logger:  logger,
		jobs:    make(chan job, cfg.QueueSize),
		replies: make(chan reply, cfg.QueueSize),
		quit:    make(chan struct{}),
		pending: make(map[uint64]*Pending),
	}

	d.wg.Add(cfg.Workers + 1)
	for range cfg.Workers {
		go d.work()
	}
	go d.demux()
	return d
}

// SubmitSearch validates the parameters and submits a search.
// allowedNames == nil searches the whole palette.
func (d *Dispatcher) SubmitSearch(
	ctx context.Context, targetName string, allowedNames []string, maxBlendSize, resultLimit int,
) (*Pending, error) {
	req, err := request.New(targetName, allowedNames, maxBlendSize, resultLimit)
	if err != nil {
		return nil, err //nolint:wrapcheck // domain validation error
	}
	return d.Submit(ctx, req)
}

// Submit resolves every name against the palette, assigns the next request ID and
// queues the request. Unknown names fail here without reaching a worker.
func (d *Dispatcher) Submit(ctx context.Context, req request.Request) (*Pending, error) {
	if d.isClosed() {
		return nil, domain.ErrChannelClosed
	}

	target, err := d.palette.Lookup(req.TargetName())
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}

	var allowed []floss.Floss
	if req.Restricted() {
		allowed, err = d.palette.Resolve(req.AllowedNames())
		if err != nil {
			return nil, fmt.Errorf("resolve allowed names: %w", err)
		}
	} else {
		allowed = d.palette.All()
	}

	id := d.nextID.Add(1)
	req = req.WithID(id)
	p := &Pending{id: id, done: make(chan reply, 1)}

	d.mu.Lock()
	d.pending[id] = p
	d.mu.Unlock()
	metrics.SearchInFlight.Inc()

	if err := d.enqueue(ctx, job{ctx: ctx, req: req, target: target, allowed: allowed}); err != nil {
		d.forget(id)
		return nil, err
	}
	return p, nil
}

// enqueue puts j on the request queue. A job that lands in the queue while the
// dispatcher is closing is reported as rejected, since no worker will take it.
func (d *Dispatcher) enqueue(ctx context.Context, j job) error {
	select {
	case d.jobs <- j:
	case <-ctx.Done():
		return fmt.Errorf("queue search %d: %w", j.req.ID(), ctx.Err())
	case <-d.quit:
		return domain.ErrChannelClosed
	}
	if d.isClosed() {
		return domain.ErrChannelClosed
	}
	return nil
}

// Close stops the workers and the demultiplexer. Requests still pending are never
// answered; their Wait returns when the caller's context ends.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.quit)
	})
	d.wg.Wait()
}

// InFlight returns the number of requests awaiting a response.
func (d *Dispatcher) InFlight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Ping reports whether the channel still accepts requests.
func (d *Dispatcher) Ping(_ context.Context) error {
	if d.isClosed() {
		return domain.ErrChannelClosed
	}
	return nil
}

func (d *Dispatcher) isClosed() bool {
	select {
	case <-d.quit:
		return true
	default:
		return false
	}
}

func (d *Dispatcher) forget(id uint64) {
	d.mu.Lock()
	_, ok := d.pending[id]
	delete(d.pending, id)
	d.mu.Unlock()
	if ok {
		metrics.SearchInFlight.Dec()
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for {
		select {
		case j := <-d.jobs:
			r := d.run(j)
			if d.isClosed() {
				return
			}
			select {
			case d.replies <- r:
			case <-d.quit:
				return
			}
		case <-d.quit:
			return
		}
	}
}

func (d *Dispatcher) run(j job) reply {
	id := j.req.ID()
	start := time.Now()

	groups, err := d.engine.Search(j.ctx, j.target, j.allowed, j.req.MaxBlendSize(), j.req.ResultLimit())
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		metrics.SearchRequestsTotal.WithLabelValues("canceled").Inc()
	default:
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		d.logger.Error("Search failed",
			zap.Uint64("request_id", id),
			zap.String("target", j.req.TargetName()),
			zap.Error(err),
		)
	}
	if err != nil {
		return reply{id: id, err: fmt.Errorf("search %d: %w", id, err)}
	}
	return reply{id: id, resp: result.NewResponse(id, j.req.TargetName(), groups)}
}

func (d *Dispatcher) demux() {
	defer d.wg.Done()
	for {
		select {
		case r := <-d.replies:
			if d.isClosed() {
				return
			}
			d.deliver(r)
		case <-d.quit:
			return
		}
	}
}

// deliver hands a reply to its pending request. A reply nobody waits for is
// logged and dropped.
func (d *Dispatcher) deliver(r reply) {
	d.mu.Lock()
	p, ok := d.pending[r.id]
	delete(d.pending, r.id)
	d.mu.Unlock()

	if !ok {
		metrics.SearchProtocolMismatchTotal.Inc()
		d.logger.Warn("Dropping search response",
			zap.Uint64("request_id", r.id),
			zap.Error(domain.ErrProtocolMismatch),
		)
		return
	}
	metrics.SearchInFlight.Dec()
	p.done <- r
}
