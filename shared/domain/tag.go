package domain

// Tag categorizes a confession. Closed set; unknown tags coming from the
// remote store fall back to TagGeneral at the mapping boundary.
type Tag = string

const (
	TagGeneral Tag = "general"
	TagLove    Tag = "love"
	TagFamily  Tag = "family"
	TagSchool  Tag = "school"
	TagWork    Tag = "work"
	TagMental  Tag = "mental"
	TagRandom  Tag = "random"
)

// Tags lists every tag in display order.
var Tags = []Tag{
	TagGeneral,
	TagLove,
	TagFamily,
	TagSchool,
	TagWork,
	TagMental,
	TagRandom,
}

// TagLabels maps tag -> display label.
var TagLabels = map[Tag]string{
	TagGeneral: "General",
	TagLove:    "Love",
	TagFamily:  "Family",
	TagSchool:  "School",
	TagWork:    "Work",
	TagMental:  "Mental Health",
	TagRandom:  "Random",
}

// KnownTag reports whether tag belongs to the closed set.
func KnownTag(tag Tag) bool {
	_, ok := TagLabels[tag]
	return ok
}

// NormalizeTag maps an arbitrary tag value onto the closed set,
// defaulting unknown values to TagGeneral.
func NormalizeTag(tag Tag) Tag {
	if KnownTag(tag) {
		return tag
	}
	return TagGeneral
}
