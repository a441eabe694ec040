// Package nearest is the caller side of the blend search: it turns a query into a
// request, applies the candidate ceiling and the per-request deadline, and waits
// for the answer.
package nearest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/flossdex/internal/domain"
	"github.com/kailas-cloud/flossdex/internal/domain/search/request"
	"github.com/kailas-cloud/flossdex/internal/domain/search/result"
	"github.com/kailas-cloud/flossdex/internal/logger"
	"github.com/kailas-cloud/flossdex/internal/metrics"
	"github.com/kailas-cloud/flossdex/internal/usecase/neighbor"
)

// DefaultMaxCandidates matches the original client-side ceiling.
const DefaultMaxCandidates = 2_000_000

// Config bounds the work a single query may request.
type Config struct {
	MaxCandidates uint64        // 0 disables the ceiling
	Timeout       time.Duration // 0 disables the deadline
}

// Query selects a target floss and the flosses it may be matched against.
// Collection and AllowedNames are mutually exclusive; with neither set the
// whole palette is searched.
type Query struct {
	Target       string
	Collection   string
	AllowedNames []string
	MaxBlendSize int
	ResultLimit  int
}

// Service runs nearest-blend queries.
type Service struct {
	searches Submitter
	colls    CollectionReader
	palette  PaletteReader
	cfg      Config
}

// New creates a nearest service. colls may be nil when collections are unavailable.
func New(searches Submitter, colls CollectionReader, palette PaletteReader, cfg Config) *Service {
	return &Service{searches: searches, colls: colls, palette: palette, cfg: cfg}
}

// Find resolves the query's candidate set, rejects it if it would generate more
// candidates than allowed, and runs the search.
func (s *Service) Find(ctx context.Context, q Query) (result.Response, error) {
	allowed, err := s.allowedNames(ctx, q)
	if err != nil {
		return result.Response{}, err
	}

	req, err := request.New(q.Target, allowed, q.MaxBlendSize, q.ResultLimit)
	if err != nil {
		return result.Response{}, err //nolint:wrapcheck // domain validation error
	}

	pool, err := s.poolSize(&req)
	if err != nil {
		return result.Response{}, err
	}
	if err := s.checkFeasible(pool, req.MaxBlendSize()); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("rejected").Inc()
		return result.Response{}, err
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	p, err := s.searches.Submit(ctx, req)
	if err != nil {
		return result.Response{}, fmt.Errorf("submit search: %w", err)
	}
	ctx = logger.With(ctx, zap.Uint64("search_id", p.ID()))
	logger.FromContext(ctx).Debug("Search submitted",
		zap.String("target", req.TargetName()),
		zap.String("collection", q.Collection),
	)

	resp, err := p.Wait(ctx)
	if err != nil {
		logger.FromContext(ctx).Debug("Search failed", zap.Error(err))
		return result.Response{}, err //nolint:wrapcheck // already tagged with the request ID
	}
	return resp, nil
}

// CandidateCount returns how many blends a query would score.
func (s *Service) CandidateCount(ctx context.Context, q Query) (uint64, error) {
	allowed, err := s.allowedNames(ctx, q)
	if err != nil {
		return 0, err
	}
	req, err := request.New(q.Target, allowed, q.MaxBlendSize, q.ResultLimit)
	if err != nil {
		return 0, err //nolint:wrapcheck // domain validation error
	}
	pool, err := s.poolSize(&req)
	if err != nil {
		return 0, err
	}
	return neighbor.CandidateCount(pool, req.MaxBlendSize()), nil
}

func (s *Service) allowedNames(ctx context.Context, q Query) ([]string, error) {
	collection := strings.TrimSpace(q.Collection)
	switch {
	case collection != "" && q.AllowedNames != nil:
		return nil, fmt.Errorf("%w: collection and allowed names are mutually exclusive",
			domain.ErrInvalidParameter)
	case collection != "":
		if s.colls == nil {
			return nil, fmt.Errorf("%w: collections are not available", domain.ErrInvalidParameter)
		}
		names, err := s.colls.AllowedNames(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", collection, err)
		}
		// An empty collection restricts the search to nothing rather than everything.
		if names == nil {
			names = []string{}
		}
		return names, nil
	default:
		return q.AllowedNames, nil
	}
}

// poolSize resolves the request's names against the palette and returns the
// number of distinct flosses the generator will combine. Unknown names fail
// here, before any candidate is counted.
func (s *Service) poolSize(req *request.Request) (int, error) {
	if _, err := s.palette.Lookup(req.TargetName()); err != nil {
		return 0, fmt.Errorf("resolve target: %w", err)
	}
	if !req.Restricted() {
		return s.palette.Len() - 1, nil
	}

	allowed, err := s.palette.Resolve(req.AllowedNames())
	if err != nil {
		return 0, fmt.Errorf("resolve allowed names: %w", err)
	}
	n := 0
	for _, f := range allowed {
		if f.Name() != req.TargetName() {
			n++
		}
	}
	return n, nil
}

func (s *Service) checkFeasible(pool, maxBlendSize int) error {
	if s.cfg.MaxCandidates == 0 {
		return nil
	}
	count := neighbor.CandidateCount(pool, maxBlendSize)
	if count > s.cfg.MaxCandidates {
		return &domain.CandidateLimitError{Candidates: count, Limit: s.cfg.MaxCandidates}
	}
	return nil
}
