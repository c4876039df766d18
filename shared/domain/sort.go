package domain

// SortMode selects how the feed is ordered for display.
type SortMode = string

const (
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
	SortTop    SortMode = "top"
)

// ParseSortMode maps an arbitrary value onto a valid mode, defaulting to newest.
func ParseSortMode(mode string) SortMode {
	switch mode {
	case SortOldest, SortTop:
		return mode
	default:
		return SortNewest
	}
}
