package domain

// ReactionKind is one of the fixed emoji reactions a post can receive.
// Closed set, not user-extensible.
type ReactionKind = string

const (
	ReactionHeart     ReactionKind = "heart"
	ReactionSupport   ReactionKind = "support"
	ReactionHug       ReactionKind = "hug"
	ReactionRelatable ReactionKind = "relatable"
	ReactionSad       ReactionKind = "sad"
)

// ReactionKinds lists every known kind in display order.
var ReactionKinds = []ReactionKind{
	ReactionHeart,
	ReactionSupport,
	ReactionHug,
	ReactionRelatable,
	ReactionSad,
}

// ReactionGlyphs maps kind -> display glyph.
var ReactionGlyphs = map[ReactionKind]string{
	ReactionHeart:     "❤️",
	ReactionSupport:   "💪",
	ReactionHug:       "🫂",
	ReactionRelatable: "🙋",
	ReactionSad:       "😢",
}

// ReactionLabels maps kind -> display label.
var ReactionLabels = map[ReactionKind]string{
	ReactionHeart:     "Heart",
	ReactionSupport:   "Support",
	ReactionHug:       "Hug",
	ReactionRelatable: "Me too",
	ReactionSad:       "Sad",
}

// KnownReactionKind reports whether kind belongs to the closed set.
func KnownReactionKind(kind ReactionKind) bool {
	_, ok := ReactionGlyphs[kind]
	return ok
}

// Tally is a per-post mapping from reaction kind to cumulative count.
// Keys outside ReactionKinds may appear if the remote store carries kinds
// this client does not know; they are preserved but not displayed.
type Tally map[ReactionKind]int64

// ZeroTally returns a tally with an explicit zero for every known kind.
func ZeroTally() Tally {
	t := make(Tally, len(ReactionKinds))
	for _, kind := range ReactionKinds {
		t[kind] = 0
	}
	return t
}

// Normalize fills in a zero entry for every known kind missing from t.
// Unknown keys are left untouched.
func (t Tally) Normalize() Tally {
	if t == nil {
		return ZeroTally()
	}
	for _, kind := range ReactionKinds {
		if _, ok := t[kind]; !ok {
			t[kind] = 0
		}
	}
	return t
}

// Clone returns an independent copy of t.
func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	for kind, count := range t {
		out[kind] = count
	}
	return out
}

// Total is the sum across all kinds, known and unknown.
// Recomputed on every call; counts mutate between calls.
func (t Tally) Total() int64 {
	var sum int64
	for _, count := range t {
		sum += count
	}
	return sum
}

// Dominates reports whether t >= other element-wise for every known kind.
// Used during snapshot reconciliation: a locally advanced tally wins over a
// remote one only while it is ahead (or equal) on every dimension.
func (t Tally) Dominates(other Tally) bool {
	for _, kind := range ReactionKinds {
		if t[kind] < other[kind] {
			return false
		}
	}
	return true
}
