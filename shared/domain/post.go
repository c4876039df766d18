package domain

import (
	"strings"
	"time"

	"github.com/confessd-dev/confessd/shared/errors"
)

type (
	PostId   = string
	PostText = string
)

// Body length bounds, applied after trimming surrounding whitespace.
const (
	MinBodyLen = 5
	MaxBodyLen = 400
)

// Post is a single anonymous confession with its reaction tally.
// Author is a denormalized copy of the identity captured at creation time,
// not a live reference, so display survives the author going away.
type Post struct {
	Id        PostId    `json:"id"`
	Text      PostText  `json:"text"`
	Tag       Tag       `json:"tag"`
	TagLabel  string    `json:"tag_label"`
	CreatedAt time.Time `json:"created_at"`
	Reactions Tally     `json:"reactions"`
	Author    *Identity `json:"author,omitempty"`
}

// Clone returns a deep copy of p. Readers of the post store only ever see
// clones, so a renderer can never observe a half-applied mutation.
func (p Post) Clone() Post {
	out := p
	out.Reactions = p.Reactions.Clone()
	if p.Author != nil {
		author := *p.Author
		out.Author = &author
	}
	return out
}

// Snapshot is the complete post list as last retrieved from the remote store.
// It supersedes prior knowledge atomically on each successful poll.
type Snapshot []Post

// ValidateBody trims text and checks the length bounds. The trimmed body is
// returned so callers persist exactly what was validated. Violations are
// rejected before any network call is made.
func ValidateBody(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	n := len([]rune(trimmed))
	if n < MinBodyLen {
		return "", &errors.ErrorWithStatusCode{Message: "Confession is too short: minimum 5 characters", StatusCode: 400}
	}
	if n > MaxBodyLen {
		return "", &errors.ErrorWithStatusCode{Message: "Confession is too long: maximum 400 characters", StatusCode: 400}
	}
	return trimmed, nil
}
