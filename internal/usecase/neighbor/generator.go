// Package neighbor enumerates candidate blends and ranks them by distance to a target floss.
package neighbor

import (
	"context"
	"iter"
	"math"
	"math/bits"

	"github.com/kailas-cloud/flossdex/internal/domain/floss"
)

// ctxCheckInterval is how many candidates are produced between cancellation checks.
const ctxCheckInterval = 1024

// Candidates lazily yields every combination of 1..maxSize distinct flosses from
// allowed, with the target (matched by name) left out. Each blend comes with its
// zero-based generation sequence number. Order: increasing size, then index order
// of the combination over allowed. Iteration stops early once ctx is done.
func Candidates(
	ctx context.Context, allowed []floss.Floss, target floss.Floss, maxSize int,
) iter.Seq2[int, floss.Blend] {
	pool := make([]floss.Floss, 0, len(allowed))
	for _, f := range allowed {
		if f.Name() != target.Name() {
			pool = append(pool, f)
		}
	}

	return func(yield func(int, floss.Blend) bool) {
		seq := 0
		members := make([]floss.Floss, 0, min(maxSize, len(pool)))
		for size := 1; size <= maxSize && size <= len(pool); size++ {
			idx := make([]int, size)
			for i := range idx {
				idx[i] = i
			}
			for {
				if seq%ctxCheckInterval == 0 && ctx.Err() != nil {
					return
				}

				members = members[:0]
				for _, i := range idx {
					members = append(members, pool[i])
				}
				b, err := floss.NewBlend(members...)
				if err != nil {
					return
				}
				if !yield(seq, b) {
					return
				}
				seq++

				if !nextCombination(idx, len(pool)) {
					break
				}
			}
		}
	}
}

// nextCombination advances idx to the next k-combination of [0, n) in lexicographic order.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	i := k - 1
	for i >= 0 && idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < k; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}

// CandidateCount returns Σ C(n, s) for s = 1..maxSize, saturating at math.MaxUint64.
func CandidateCount(n, maxSize int) uint64 {
	if n <= 0 || maxSize <= 0 {
		return 0
	}
	maxSize = min(maxSize, n)

	var total uint64
	c := uint64(1) // C(n, 0)
	for s := 1; s <= maxSize; s++ {
		// C(n, s) = C(n, s-1) * (n-s+1) / s, exact at every step.
		hi, lo := bits.Mul64(c, uint64(n-s+1))
		if hi >= uint64(s) {
			return math.MaxUint64
		}
		c, _ = bits.Div64(hi, lo, uint64(s))

		var carry uint64
		total, carry = bits.Add64(total, c, 0)
		if carry != 0 {
			return math.MaxUint64
		}
	}
	return total
}
