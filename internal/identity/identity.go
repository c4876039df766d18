// Package identity derives and persists the anonymous identity a device
// posts as. No accounts, no uniqueness guarantee; a collision just means
// two strangers share a nickname.
package identity

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/confessd-dev/confessd/internal/localstate"
	"github.com/confessd-dev/confessd/shared/domain"
	"github.com/confessd-dev/confessd/shared/logger"
)

// Closed lists; picked uniformly at random when a device first shows up.
var (
	Nicknames = []string{
		"Quiet Fox", "Night Owl", "Paper Crane", "Lost Sock", "Blue Kettle",
		"Soft Thunder", "Wandering Moth", "Spare Button", "Hidden Lake", "Late Train",
		"Folded Map", "Borrowed Pen", "Small Cloud", "Open Window", "Warm Static",
	}
	Colors = []string{
		"#e57373", "#64b5f6", "#81c784", "#ffb74d", "#ba68c8",
		"#4db6ac", "#f06292", "#a1887f", "#90a4ae", "#dce775",
	}
)

// Fallback identity used when persistence is unavailable. Fixed and neutral
// so the rest of the system keeps working; the failure is silent by design.
const (
	ephemeralNickname = "Anonymous"
	ephemeralColor    = "#9e9e9e"
)

// Provider loads or creates the device identity. GetOrCreate is memoized:
// every call within a process lifetime returns the identical triple.
type Provider struct {
	state localstate.Store
	rand  *rand.Rand

	once    sync.Once
	current domain.Identity
}

func New(state localstate.Store) *Provider {
	return &Provider{state: state, rand: rand.New(rand.NewSource(rand.Int63()))}
}

// GetOrCreate returns the persisted identity, generating and persisting a
// fresh one if any of the three keys is missing. Persistence failures fall
// back to an ephemeral in-memory identity; they never block posting.
func (p *Provider) GetOrCreate() domain.Identity {
	p.once.Do(func() {
		p.current = p.load()
	})
	return p.current
}

func (p *Provider) load() domain.Identity {
	stored, err := p.readStored()
	if err == nil && !stored.Zero() {
		return stored
	}
	if err != nil && !errors.Is(err, localstate.ErrNotFound) {
		logger.Log.Warn("identity storage unavailable, using ephemeral identity", "error", err)
		return domain.Identity{Id: uuid.NewString(), Nickname: ephemeralNickname, Color: ephemeralColor}
	}

	// Absence of any key regenerates all three together so a partial
	// identity never survives to the next load.
	fresh := domain.Identity{
		Id:       uuid.NewString(),
		Nickname: Nicknames[p.rand.Intn(len(Nicknames))],
		Color:    Colors[p.rand.Intn(len(Colors))],
	}
	if err := p.persist(fresh); err != nil {
		logger.Log.Warn("failed to persist identity, using ephemeral identity", "error", err)
		return domain.Identity{Id: fresh.Id, Nickname: ephemeralNickname, Color: ephemeralColor}
	}
	return fresh
}

func (p *Provider) readStored() (domain.Identity, error) {
	id, err := p.state.Get(localstate.KeyIdentityId)
	if err != nil {
		return domain.Identity{}, err
	}
	nickname, err := p.state.Get(localstate.KeyIdentityNickname)
	if err != nil {
		return domain.Identity{}, err
	}
	color, err := p.state.Get(localstate.KeyIdentityColor)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{Id: id, Nickname: nickname, Color: color}, nil
}

func (p *Provider) persist(identity domain.Identity) error {
	if err := p.state.Set(localstate.KeyIdentityId, identity.Id); err != nil {
		return err
	}
	if err := p.state.Set(localstate.KeyIdentityNickname, identity.Nickname); err != nil {
		return err
	}
	return p.state.Set(localstate.KeyIdentityColor, identity.Color)
}

// Reset discards the persisted identity so the next process generates a new
// one. Not exposed over the HTTP surface; kept for maintenance tooling.
func (p *Provider) Reset() error {
	if err := p.state.Set(localstate.KeyIdentityId, ""); err != nil {
		return err
	}
	if err := p.state.Set(localstate.KeyIdentityNickname, ""); err != nil {
		return err
	}
	return p.state.Set(localstate.KeyIdentityColor, "")
}
