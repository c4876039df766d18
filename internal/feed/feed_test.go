package feed

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confessd-dev/confessd/internal/storage"
	"github.com/confessd-dev/confessd/internal/store"
	"github.com/confessd-dev/confessd/shared/domain"
)

// Mock structs
type MockRemote struct {
	FetchAllFunc        func(ctx context.Context) ([]storage.RawPost, error)
	InsertFunc          func(ctx context.Context, record storage.RawPost) (storage.RawPost, error)
	UpdateReactionsFunc func(ctx context.Context, id domain.PostId, tally domain.Tally) error
}

func (m *MockRemote) FetchAll(ctx context.Context) ([]storage.RawPost, error) {
	if m.FetchAllFunc != nil {
		return m.FetchAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockRemote) Insert(ctx context.Context, record storage.RawPost) (storage.RawPost, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, record)
	}
	return record, nil
}

func (m *MockRemote) UpdateReactions(ctx context.Context, id domain.PostId, tally domain.Tally) error {
	if m.UpdateReactionsFunc != nil {
		return m.UpdateReactionsFunc(ctx, id, tally)
	}
	return nil
}

func rawPost(id string) storage.RawPost {
	return storage.RawPost{
		Id:        id,
		Text:      "fetched confession",
		Tag:       "general",
		TagLabel:  "General",
		CreatedAt: time.Now(),
	}
}

func TestPollOnce(t *testing.T) {
	t.Run("successful poll replaces store", func(t *testing.T) {
		remote := &MockRemote{
			FetchAllFunc: func(ctx context.Context) ([]storage.RawPost, error) {
				return []storage.RawPost{rawPost("a"), rawPost("b")}, nil
			},
		}
		posts := store.New()
		sync := New(remote, posts, time.Second)

		snap, err := sync.PollOnce(context.Background())
		require.NoError(t, err)
		assert.Len(t, snap, 2)
		assert.Equal(t, 2, posts.Len())
	})

	t.Run("failed poll leaves store untouched", func(t *testing.T) {
		posts := store.New()
		posts.InsertLocal(domain.Post{Id: "stale", Reactions: domain.ZeroTally()})

		remote := &MockRemote{
			FetchAllFunc: func(ctx context.Context) ([]storage.RawPost, error) {
				return nil, assert.AnError
			},
		}
		sync := New(remote, posts, time.Second)

		_, err := sync.PollOnce(context.Background())
		assert.Error(t, err)
		assert.Equal(t, 1, posts.Len(), "stale data is preferred over an empty store")
	})

	t.Run("result after cancellation is discarded", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		remote := &MockRemote{
			FetchAllFunc: func(fetchCtx context.Context) ([]storage.RawPost, error) {
				cancel() // teardown happens while the fetch is in flight
				return []storage.RawPost{rawPost("late")}, nil
			},
		}
		posts := store.New()
		sync := New(remote, posts, time.Second)

		_, err := sync.PollOnce(ctx)
		assert.Error(t, err)
		assert.Equal(t, 0, posts.Len(), "late result must not be applied")
	})

	t.Run("local dominating tally survives a lagging snapshot", func(t *testing.T) {
		record := rawPost("p")
		record.Reactions = map[string]int64{"heart": 1}
		remote := &MockRemote{
			FetchAllFunc: func(ctx context.Context) ([]storage.RawPost, error) {
				return []storage.RawPost{record}, nil
			},
		}
		posts := store.New()
		posts.InsertLocal(domain.Post{Id: "p", Reactions: domain.Tally{domain.ReactionHeart: 3}.Normalize()})

		sync := New(remote, posts, time.Second)
		_, err := sync.PollOnce(context.Background())
		require.NoError(t, err)

		post, ok := posts.Get("p")
		require.True(t, ok)
		assert.Equal(t, int64(3), post.Reactions[domain.ReactionHeart])
	})
}

func TestStartBackgroundPolling(t *testing.T) {
	var calls atomic.Int64
	remote := &MockRemote{
		FetchAllFunc: func(ctx context.Context) ([]storage.RawPost, error) {
			calls.Add(1)
			return []storage.RawPost{rawPost("a")}, nil
		},
	}
	posts := store.New()
	sync := New(remote, posts, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	sync.Start(ctx, 20*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Greater(t, calls.Load(), int64(1))
	assert.Equal(t, 1, posts.Len())

	cancel()
	time.Sleep(50 * time.Millisecond)
	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no polls after cancellation")
}

func TestFailedTickDoesNotStopLoop(t *testing.T) {
	var calls atomic.Int64
	remote := &MockRemote{
		FetchAllFunc: func(ctx context.Context) ([]storage.RawPost, error) {
			if calls.Add(1) == 1 {
				return nil, assert.AnError
			}
			return []storage.RawPost{rawPost("a")}, nil
		},
	}
	posts := store.New()
	sync := New(remote, posts, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sync.Start(ctx, 20*time.Millisecond)

	time.Sleep(120 * time.Millisecond)
	assert.Greater(t, calls.Load(), int64(1), "one failed tick must not cancel subsequent ticks")
	assert.Equal(t, 1, posts.Len())
}

func TestTriggerRefresh(t *testing.T) {
	var calls atomic.Int64
	remote := &MockRemote{
		FetchAllFunc: func(ctx context.Context) ([]storage.RawPost, error) {
			calls.Add(1)
			return nil, nil
		},
	}
	sync := New(remote, store.New(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Long interval: any poll observed below came from the trigger.
	sync.Start(ctx, time.Hour)

	sync.TriggerRefresh()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())

	// A second nudge while idle triggers again; duplicate pending nudges collapse.
	sync.TriggerRefresh()
	sync.TriggerRefresh()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), int64(3))
	assert.GreaterOrEqual(t, calls.Load(), int64(2))
}
