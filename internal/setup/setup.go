package setup

import (
	"context"

	"github.com/confessd-dev/confessd/internal/compose"
	"github.com/confessd-dev/confessd/internal/feed"
	"github.com/confessd-dev/confessd/internal/handler"
	"github.com/confessd-dev/confessd/internal/identity"
	"github.com/confessd-dev/confessd/internal/localstate"
	"github.com/confessd-dev/confessd/internal/reaction"
	"github.com/confessd-dev/confessd/internal/render"
	"github.com/confessd-dev/confessd/internal/storage/pg"
	"github.com/confessd-dev/confessd/internal/store"
	"github.com/confessd-dev/confessd/shared/config"
	"github.com/confessd-dev/confessd/shared/logger"
)

// Dependencies is the wired object graph of the client core. All shared
// state is injected here rather than reached through globals so the store
// and synchronizer stay testable in isolation.
type Dependencies struct {
	Config     *config.Config
	Handler    *handler.Handler
	Posts      *store.PostStore
	Feed       *feed.Synchronizer
	Storage    *pg.Storage
	LocalState localstate.Store
	CancelFunc context.CancelFunc
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	ctx, cancel := context.WithCancel(context.Background())

	remote, err := pg.New(cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	// PersistenceUnavailable is non-fatal: fall back to an in-memory store
	// so identity and theme still work for this process lifetime.
	var state localstate.Store
	state, err = localstate.OpenPebble(cfg.Public.DataDir)
	if err != nil {
		logger.Log.Warn("local state unavailable, falling back to in-memory",
			"data_dir", cfg.Public.DataDir,
			"error", err)
		state = localstate.NewMemory()
	}

	posts := store.New()
	ident := identity.New(state)
	ident.GetOrCreate() // identity is derived once at startup

	sync := feed.New(remote, posts, cfg.RequestTimeout())
	sync.Start(ctx, cfg.PollInterval())
	sync.TriggerRefresh() // first snapshot without waiting a full interval

	reactions := reaction.New(remote, posts, cfg.RequestTimeout())
	composeSvc := compose.New(remote, posts, ident, sync, cfg.RequestTimeout())
	processor := render.New()

	h := handler.New(posts, composeSvc, reactions, ident, state, processor)

	return &Dependencies{
		Config:     cfg,
		Handler:    h,
		Posts:      posts,
		Feed:       sync,
		Storage:    remote,
		LocalState: state,
		CancelFunc: cancel,
	}, nil
}

// Cleanup releases everything SetupDependencies acquired. The polling loop
// is cancelled first so an in-flight fetch cannot land on closed resources.
func (d *Dependencies) Cleanup() {
	d.CancelFunc()
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Warn("failed to close db connection", "error", err)
	}
	if err := d.LocalState.Close(); err != nil {
		logger.Log.Warn("failed to close local state", "error", err)
	}
}
