package neighbor

import (
	"container/heap"
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/flossdex/internal/domain"
	"github.com/kailas-cloud/flossdex/internal/domain/colordist"
	"github.com/kailas-cloud/flossdex/internal/domain/floss"
	"github.com/kailas-cloud/flossdex/internal/domain/search/result"
	"github.com/kailas-cloud/flossdex/internal/metrics"
)

// Engine scores candidate blends against a target and keeps the closest per blend size.
// It computes whatever it is asked; bounding the candidate count is the caller's job.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a search engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Search ranks every blend of 1..maxSize flosses from allowed (target excluded) by
// CIEDE2000 distance to target. The result holds one group per blend size, from
// maxSize down to 1, each ascending by distance with ties in generation order and
// at most limit long. Groups with no candidates are present and empty.
func (e *Engine) Search(
	ctx context.Context, target floss.Floss, allowed []floss.Floss, maxSize, limit int,
) ([]result.Group, error) {
	if maxSize < 1 || limit < 1 {
		return nil, fmt.Errorf("%w: max blend size %d, result limit %d",
			domain.ErrInvalidParameter, maxSize, limit)
	}

	start := time.Now()
	tops := make([]*topK, maxSize+1)
	for s := 1; s <= maxSize; s++ {
		tops[s] = newTopK(limit)
	}

	var evaluated uint64
	targetColor := target.Color()
	for seq, b := range Candidates(ctx, allowed, target, maxSize) {
		tops[b.Size()].offer(scored{
			blend:    b,
			distance: colordist.Distance(b.Color(), targetColor),
			seq:      seq,
		})
		evaluated++
	}
	metrics.SearchCandidatesTotal.Add(float64(evaluated))

	if err := ctx.Err(); err != nil {
		e.logger.Debug("Search aborted",
			zap.String("target", target.Name()),
			zap.Uint64("evaluated", evaluated),
			zap.Error(err),
		)
		return nil, fmt.Errorf("search %s: %w", target.Name(), err)
	}

	groups := make([]result.Group, 0, maxSize)
	for s := maxSize; s >= 1; s-- {
		groups = append(groups, result.NewGroup(s, tops[s].ranked()))
	}

	e.logger.Debug("Search completed",
		zap.String("target", target.Name()),
		zap.Int("allowed", len(allowed)),
		zap.Int("max_blend_size", maxSize),
		zap.Uint64("evaluated", evaluated),
		zap.Duration("duration", time.Since(start)),
	)
	return groups, nil
}

type scored struct {
	blend    floss.Blend
	distance float64
	seq      int
}

// worse reports whether a ranks after b.
func (a scored) worse(b scored) bool {
	if a.distance != b.distance {
		return a.distance > b.distance
	}
	return a.seq > b.seq
}

// topK keeps the limit best entries in a max-heap with the worst kept entry on top.
type topK struct {
	limit   int
	entries maxHeap
}

func newTopK(limit int) *topK {
	return &topK{limit: limit, entries: make(maxHeap, 0, min(limit, 1024))}
}

func (t *topK) offer(s scored) {
	if len(t.entries) < t.limit {
		heap.Push(&t.entries, s)
		return
	}
	if t.entries[0].worse(s) {
		t.entries[0] = s
		heap.Fix(&t.entries, 0)
	}
}

func (t *topK) ranked() []result.Neighbor {
	sorted := slices.Clone(t.entries)
	slices.SortFunc(sorted, func(a, b scored) int {
		switch {
		case b.worse(a):
			return -1
		case a.worse(b):
			return 1
		default:
			return 0
		}
	})

	out := make([]result.Neighbor, len(sorted))
	for i, s := range sorted {
		out[i] = result.NewNeighbor(s.blend.MemberNames(), s.distance)
	}
	return out
}

type maxHeap []scored

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return h[i].worse(h[j]) }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *maxHeap) Push(x any) { *h = append(*h, x.(scored)) }

func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
