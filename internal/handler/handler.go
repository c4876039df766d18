package handler

import (
	"github.com/confessd-dev/confessd/internal/compose"
	"github.com/confessd-dev/confessd/internal/localstate"
	"github.com/confessd-dev/confessd/internal/reaction"
	"github.com/confessd-dev/confessd/internal/render"
	"github.com/confessd-dev/confessd/internal/store"
	"github.com/confessd-dev/confessd/shared/domain"
)

// IdentityProvider supplies the device identity for display.
type IdentityProvider interface {
	GetOrCreate() domain.Identity
}

// Handler exposes the client core to the presentation layer. It is a thin
// translation layer: ordering, reconciliation and the optimistic reaction
// policy all live in the packages it delegates to.
type Handler struct {
	posts     *store.PostStore
	compose   *compose.Service
	reactions *reaction.Aggregator
	identity  IdentityProvider
	state     localstate.Store
	processor *render.TextProcessor
}

func New(
	posts *store.PostStore,
	composeSvc *compose.Service,
	reactions *reaction.Aggregator,
	identity IdentityProvider,
	state localstate.Store,
	processor *render.TextProcessor,
) *Handler {
	return &Handler{posts, composeSvc, reactions, identity, state, processor}
}
