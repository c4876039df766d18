// Package storage defines the boundary between the client core and the
// remote relational store that holds all confessions. The core reads the
// store via one bulk query and writes via insert/update calls; everything
// else about the store is someone else's problem.
package storage

import (
	"context"
	"time"

	"github.com/confessd-dev/confessd/shared/domain"
)

// Remote is the contract the client core needs from the external store.
// Implementations must be safe for concurrent use.
type Remote interface {
	// FetchAll returns every raw post record, created_at descending.
	// The caller re-sorts regardless; the ordering here is best effort.
	FetchAll(ctx context.Context) ([]RawPost, error)
	// Insert stores a new record and returns it with the server-assigned
	// id and created_at filled in.
	Insert(ctx context.Context, record RawPost) (RawPost, error)
	// UpdateReactions overwrites the entire reaction tally for one post.
	UpdateReactions(ctx context.Context, id domain.PostId, tally domain.Tally) error
}

// RawPost is the wire-shaped record as the remote store hands it over.
// Fields may be absent or carry values outside the client's closed enums;
// ToPost is the single place where that gets cleaned up.
type RawPost struct {
	Id             string           `json:"id"`
	Text           string           `json:"text"`
	Tag            string           `json:"tag"`
	TagLabel       string           `json:"tag_label"`
	CreatedAt      time.Time        `json:"created_at"`
	Reactions      map[string]int64 `json:"reactions"`
	AuthorId       string           `json:"author_id,omitempty"`
	AuthorNickname string           `json:"author_nickname,omitempty"`
	AuthorColor    string           `json:"author_color,omitempty"`
}

// ToPost maps a raw record into the typed domain entity, defaulting absent
// reaction entries to zero and unknown tags to general. Unknown reaction
// kinds are preserved so a later UpdateReactions round-trips them intact.
func (r RawPost) ToPost() domain.Post {
	tag := domain.NormalizeTag(r.Tag)
	label := r.TagLabel
	if label == "" || !domain.KnownTag(r.Tag) {
		label = domain.TagLabels[tag]
	}

	tally := domain.Tally(r.Reactions).Clone().Normalize()

	var author *domain.Identity
	if r.AuthorId != "" && r.AuthorNickname != "" && r.AuthorColor != "" {
		author = &domain.Identity{Id: r.AuthorId, Nickname: r.AuthorNickname, Color: r.AuthorColor}
	}

	return domain.Post{
		Id:        r.Id,
		Text:      r.Text,
		Tag:       tag,
		TagLabel:  label,
		CreatedAt: r.CreatedAt,
		Reactions: tally,
		Author:    author,
	}
}

// NewRawPost builds the record for an insert: no id or created_at (the
// server assigns those) and an all-zero initial tally.
func NewRawPost(text string, tag domain.Tag, author *domain.Identity) RawPost {
	tag = domain.NormalizeTag(tag)
	record := RawPost{
		Text:      text,
		Tag:       tag,
		TagLabel:  domain.TagLabels[tag],
		Reactions: domain.ZeroTally(),
	}
	if author != nil {
		record.AuthorId = author.Id
		record.AuthorNickname = author.Nickname
		record.AuthorColor = author.Color
	}
	return record
}

// MapSnapshot converts a batch of raw records into a domain snapshot.
func MapSnapshot(records []RawPost) domain.Snapshot {
	snap := make(domain.Snapshot, 0, len(records))
	for _, record := range records {
		snap = append(snap, record.ToPost())
	}
	return snap
}
