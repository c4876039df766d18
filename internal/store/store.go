// Package store holds the in-process view of all known confessions.
// It is the single shared resource of the client core: the poller replaces
// its contents wholesale, submissions and reaction clicks mutate it, and
// the render path reads deep copies out from under an RWMutex.
package store

import (
	"sync"

	"github.com/confessd-dev/confessd/shared/domain"
)

type PostStore struct {
	mu    sync.RWMutex
	posts map[domain.PostId]domain.Post
}

func New() *PostStore {
	return &PostStore{posts: make(map[domain.PostId]domain.Post)}
}

// ReplaceFromSnapshot overwrites the store with a freshly fetched snapshot.
// For any id present in both the old store and the new snapshot the old
// reaction tally is kept whenever it dominates the snapshot's (element-wise
// >= for every known kind). That protects a just-issued optimistic increment
// from a momentarily lagging server snapshot; once the server catches up the
// dominance check fails and the snapshot tally wins exactly.
//
// Unknown kinds are outside the dominance check and this client never
// increments them, so the snapshot stays authoritative for them even when
// the local tally is retained; a later write-through then carries them back
// to the server instead of erasing them.
//
// The replacement is atomic from a reader's perspective: the new map is
// built in full before it is swapped in.
func (s *PostStore) ReplaceFromSnapshot(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[domain.PostId]domain.Post, len(snap))
	for _, post := range snap {
		incoming := post.Clone()
		if known, ok := s.posts[post.Id]; ok && known.Reactions.Dominates(incoming.Reactions) {
			merged := known.Reactions.Clone()
			for kind, count := range incoming.Reactions {
				if !domain.KnownReactionKind(kind) {
					merged[kind] = count
				}
			}
			incoming.Reactions = merged
		}
		next[incoming.Id] = incoming
	}
	s.posts = next
}

// InsertLocal adds a post the server has confirmed (by insert) but which has
// not yet shown up in a poll, so the author sees their own confession
// immediately.
func (s *PostStore) InsertLocal(post domain.Post) {
	clone := post.Clone()
	clone.Reactions = clone.Reactions.Normalize()

	s.mu.Lock()
	s.posts[clone.Id] = clone
	s.mu.Unlock()
}

// IncrementReaction bumps exactly one counter by exactly one. Returns false
// when the id is unknown; the caller decides whether that miss is worth a
// log line.
func (s *PostStore) IncrementReaction(id domain.PostId, kind domain.ReactionKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return false
	}
	tally := post.Reactions.Clone()
	tally[kind]++
	post.Reactions = tally
	s.posts[id] = post
	return true
}

// Get returns a deep copy of one post.
func (s *PostStore) Get(id domain.PostId) (domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return domain.Post{}, false
	}
	return post.Clone(), true
}

// All returns deep copies of every known post in unspecified order.
// Ordering for display is the ordering engine's job.
func (s *PostStore) All() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Post, 0, len(s.posts))
	for _, post := range s.posts {
		out = append(out, post.Clone())
	}
	return out
}

func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}
