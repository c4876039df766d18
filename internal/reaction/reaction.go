// Package reaction applies emoji reactions: an immediate optimistic bump in
// the post store followed by an asynchronous write-through of the whole
// tally to the remote store.
package reaction

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/confessd-dev/confessd/internal/storage"
	"github.com/confessd-dev/confessd/internal/store"
	"github.com/confessd-dev/confessd/shared/domain"
	internal_errors "github.com/confessd-dev/confessd/shared/errors"
	"github.com/confessd-dev/confessd/shared/logger"
)

var (
	reactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "confessd_reactions_total",
		Help: "Total number of reactions applied locally",
	}, []string{"kind"})
	reactionWritesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confessd_reaction_writes_failed_total",
		Help: "Total number of failed durable reaction writes",
	})
)

type Aggregator struct {
	remote         storage.Remote
	posts          *store.PostStore
	requestTimeout time.Duration

	// wg tracks in-flight durable writes so tests (and shutdown) can wait
	// for them to settle.
	wg sync.WaitGroup
}

func New(remote storage.Remote, posts *store.PostStore, requestTimeout time.Duration) *Aggregator {
	return &Aggregator{remote: remote, posts: posts, requestTimeout: requestTimeout}
}

// React bumps kind's counter on one post by exactly one.
//
// The increment is applied to the local store first so the user sees the new
// count with no delay, then the entire new tally map (not a delta) is written
// to the remote store in the background. A failed write is logged but the
// local increment is NOT rolled back: local state is allowed to drift ahead
// of the server on transient failure, and the snapshot reconciliation rule
// decides the final value on the next successful poll. This is a deliberate
// eventual-consistency trade-off, not an oversight.
func (a *Aggregator) React(ctx context.Context, id domain.PostId, kind domain.ReactionKind) error {
	if !domain.KnownReactionKind(kind) {
		return &internal_errors.ErrorWithStatusCode{Message: "Unknown reaction kind", StatusCode: 400}
	}

	if ok := a.posts.IncrementReaction(id, kind); !ok {
		// The UI should make this unreachable; a miss must still not fault.
		logger.Log.Warn("reaction on unknown post ignored",
			"component", "reaction",
			"post_id", id,
			"kind", kind)
		return nil
	}
	reactionsTotal.WithLabelValues(kind).Inc()

	post, ok := a.posts.Get(id)
	if !ok {
		return nil
	}

	a.wg.Add(1)
	go func(tally domain.Tally) {
		defer a.wg.Done()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.requestTimeout)
		defer cancel()

		if err := a.remote.UpdateReactions(writeCtx, id, tally); err != nil {
			// ReactionWriteFailed: never surfaced to the user, logged only.
			reactionWritesFailed.Inc()
			logger.Log.Warn("durable reaction write failed, keeping optimistic count",
				"component", "reaction",
				"post_id", id,
				"kind", kind,
				"error", err)
		}
	}(post.Reactions)

	return nil
}

// Wait blocks until all in-flight durable writes have completed.
func (a *Aggregator) Wait() {
	a.wg.Wait()
}
