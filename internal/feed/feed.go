// Package feed keeps the post store reconciled against the remote store.
// It polls on a fixed cadence plus on explicit triggers (after a successful
// submission) and replaces the store contents with each fetched snapshot.
package feed

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/confessd-dev/confessd/internal/storage"
	"github.com/confessd-dev/confessd/internal/store"
	"github.com/confessd-dev/confessd/shared/domain"
	"github.com/confessd-dev/confessd/shared/logger"
)

var (
	pollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confessd_feed_polls_total",
		Help: "Total number of feed poll attempts",
	})
	pollsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confessd_feed_polls_failed_total",
		Help: "Total number of failed feed polls",
	})
	snapshotSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "confessd_feed_snapshot_posts",
		Help: "Number of posts in the last successfully applied snapshot",
	})
)

type Synchronizer struct {
	remote         storage.Remote
	posts          *store.PostStore
	requestTimeout time.Duration
	refresh        chan struct{}
}

func New(remote storage.Remote, posts *store.PostStore, requestTimeout time.Duration) *Synchronizer {
	return &Synchronizer{
		remote:         remote,
		posts:          posts,
		requestTimeout: requestTimeout,
		refresh:        make(chan struct{}, 1),
	}
}

// PollOnce fetches one snapshot and reconciles it into the post store.
// On fetch failure the store is left untouched: stale-but-available beats
// empty. The error is returned for logging; the caller's loop keeps going.
func (s *Synchronizer) PollOnce(ctx context.Context) (domain.Snapshot, error) {
	pollsTotal.Inc()

	fetchCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	records, err := s.remote.FetchAll(fetchCtx)
	if err != nil {
		pollsFailed.Inc()
		return nil, err
	}

	// A fetch that completes after teardown must be discarded, not applied.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	snap := storage.MapSnapshot(records)
	s.posts.ReplaceFromSnapshot(snap)
	snapshotSize.Set(float64(len(snap)))
	return snap, nil
}

// TriggerRefresh nudges the polling loop to fetch now instead of waiting
// for the next tick. Non-blocking; a nudge while one is already pending
// is dropped.
func (s *Synchronizer) TriggerRefresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Start launches the background polling loop. One failed tick never cancels
// subsequent ticks; ctx cancellation shuts the loop down.
func (s *Synchronizer) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	logger.Log.Info("started feed polling",
		"component", "feed_sync",
		"interval", interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.pollAndLog(ctx)
			case <-s.refresh:
				s.pollAndLog(ctx)
			case <-ctx.Done():
				logger.Log.Info("feed polling shutting down gracefully",
					"component", "feed_sync")
				return
			}
		}
	}()
}

func (s *Synchronizer) pollAndLog(ctx context.Context) {
	snap, err := s.PollOnce(ctx)
	if err != nil {
		// FetchFailed: keep stale data, next tick retries automatically.
		logger.Log.Warn("feed poll failed, keeping stale data",
			"component", "feed_sync",
			"error", err)
		return
	}
	logger.Log.Debug("feed poll applied",
		"component", "feed_sync",
		"posts", len(snap))
}
