// Package order turns the post store's unordered contents into the display
// sequence. Pure functions only.
package order

import (
	"sort"

	"github.com/confessd-dev/confessd/shared/domain"
)

// Order returns posts sorted by mode. The input slice is not modified; the
// sort is stable, so ties keep their incoming relative order across calls.
//
//   - newest: created-at descending
//   - oldest: created-at ascending
//   - top:    total reaction count descending, ties broken newest-first
//
// Reaction totals are recomputed on every call; tallies mutate between
// renders, so a cached score would go stale immediately.
func Order(posts []domain.Post, mode domain.SortMode) []domain.Post {
	out := make([]domain.Post, len(posts))
	copy(out, posts)

	switch domain.ParseSortMode(mode) {
	case domain.SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case domain.SortTop:
		sort.SliceStable(out, func(i, j int) bool {
			si, sj := out[i].Reactions.Total(), out[j].Reactions.Total()
			if si != sj {
				return si > sj
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default: // newest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
