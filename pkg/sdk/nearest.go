package flossdex

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/flossdex/internal/domain/floss"
	"github.com/kailas-cloud/flossdex/internal/domain/search/request"
	"github.com/kailas-cloud/flossdex/internal/domain/search/result"
	nearestuc "github.com/kailas-cloud/flossdex/internal/usecase/nearest"
)

// NearestOption narrows a Nearest search.
type NearestOption func(*nearestuc.Query)

// WithAllowed restricts the search to the named flosses. Passing no names
// restricts it to nothing.
func WithAllowed(names ...string) NearestOption {
	return func(q *nearestuc.Query) {
		q.AllowedNames = append([]string{}, names...)
	}
}

// InCollection restricts the search to the flosses of a stored collection.
func InCollection(name string) NearestOption {
	return func(q *nearestuc.Query) {
		q.Collection = name
	}
}

// MaxBlendSize sets the largest number of flosses combined in one blend. Default: 2.
func MaxBlendSize(n int) NearestOption {
	return func(q *nearestuc.Query) {
		q.MaxBlendSize = n
	}
}

// Limit sets how many blends are kept per blend size. Default: 12.
func Limit(n int) NearestOption {
	return func(q *nearestuc.Query) {
		q.ResultLimit = n
	}
}

func buildQuery(target string, opts []NearestOption) nearestuc.Query {
	q := nearestuc.Query{
		Target:       target,
		MaxBlendSize: request.DefaultMaxBlendSize,
		ResultLimit:  request.DefaultResultLimit,
	}
	for _, o := range opts {
		o(&q)
	}
	return q
}

// Nearest finds the flosses and blends closest to target. Errors wrap
// ErrUnknownColorName, ErrInvalidParameter, ErrTooManyCandidates or the context error.
func (c *Client) Nearest(
	ctx context.Context, target string, opts ...NearestOption,
) (_ NearestResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("nearest", start, err) }()

	resp, err := c.nearestSvc.Find(ctx, buildQuery(target, opts))
	if err != nil {
		return NearestResult{}, fmt.Errorf("nearest %s: %w", target, err)
	}
	return fromInternalResponse(&resp), nil
}

// CandidateCount returns how many blends Nearest would score for the same
// arguments, without running the search.
func (c *Client) CandidateCount(
	ctx context.Context, target string, opts ...NearestOption,
) (_ uint64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("nearest.count", start, err) }()

	n, err := c.nearestSvc.CandidateCount(ctx, buildQuery(target, opts))
	if err != nil {
		return 0, fmt.Errorf("count candidates %s: %w", target, err)
	}
	return n, nil
}

func fromInternalResponse(resp *result.Response) NearestResult {
	groups := make([]Group, 0, len(resp.Groups()))
	for _, g := range resp.Groups() {
		neighbors := make([]Neighbor, 0, len(g.Neighbors()))
		for _, n := range g.Neighbors() {
			neighbors = append(neighbors, Neighbor{
				FlossNames: n.FlossNames(),
				Name:       strings.Join(n.FlossNames(), floss.NameSeparator),
				Distance:   n.Distance(),
			})
		}
		groups = append(groups, Group{BlendSize: g.BlendSize(), Neighbors: neighbors})
	}
	return NearestResult{ID: resp.ID(), Target: resp.TargetName(), Groups: groups}
}
