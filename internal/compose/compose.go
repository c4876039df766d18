// Package compose handles confession submission: client-side validation,
// the durable insert, and making the new post visible without waiting for
// the next poll.
package compose

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/confessd-dev/confessd/internal/storage"
	"github.com/confessd-dev/confessd/internal/store"
	"github.com/confessd-dev/confessd/shared/domain"
	internal_errors "github.com/confessd-dev/confessd/shared/errors"
	"github.com/confessd-dev/confessd/shared/logger"
)

// IdentityProvider supplies the author snapshot captured at creation time.
type IdentityProvider interface {
	GetOrCreate() domain.Identity
}

// Refresher lets a successful submit pull the authoritative snapshot early.
type Refresher interface {
	TriggerRefresh()
}

type Service struct {
	remote         storage.Remote
	posts          *store.PostStore
	identity       IdentityProvider
	refresher      Refresher
	requestTimeout time.Duration
	sanitizer      *bluemonday.Policy
}

func New(remote storage.Remote, posts *store.PostStore, identity IdentityProvider, refresher Refresher, requestTimeout time.Duration) *Service {
	return &Service{
		remote:         remote,
		posts:          posts,
		identity:       identity,
		refresher:      refresher,
		requestTimeout: requestTimeout,
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

// Submit validates and stores a new confession. Validation failures come
// back synchronously, before any network call. An insert failure comes back
// as an explicit error so the caller can keep the composed text for retry.
// On success the created post is inserted into the local store immediately
// and a feed refresh is triggered.
func (s *Service) Submit(ctx context.Context, text string, tag domain.Tag) (domain.Post, error) {
	trimmed, err := domain.ValidateBody(text)
	if err != nil {
		return domain.Post{}, err
	}

	// Strip any markup before it ever reaches the shared store.
	clean := s.sanitizer.Sanitize(trimmed)
	if clean != trimmed {
		// Sanitizing may have shortened the body below the minimum.
		if clean, err = domain.ValidateBody(clean); err != nil {
			return domain.Post{}, err
		}
	}

	author := s.identity.GetOrCreate()
	record := storage.NewRawPost(clean, tag, &author)

	insertCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	created, err := s.remote.Insert(insertCtx, record)
	if err != nil {
		logger.Log.Error("confession insert failed",
			"component", "compose",
			"error", err)
		return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Could not submit your confession, please try again", StatusCode: 502}
	}

	post := created.ToPost()
	s.posts.InsertLocal(post)
	if s.refresher != nil {
		s.refresher.TriggerRefresh()
	}

	logger.Log.Info("confession submitted",
		"component", "compose",
		"post_id", post.Id,
		"tag", post.Tag)
	return post, nil
}
