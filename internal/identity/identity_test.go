package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confessd-dev/confessd/internal/localstate"
)

// failingStore simulates disabled or broken persistence.
type failingStore struct {
	err error
}

func (s *failingStore) Get(key string) (string, error) { return "", s.err }
func (s *failingStore) Set(key, value string) error    { return s.err }
func (s *failingStore) Close() error                   { return nil }

func TestGetOrCreate(t *testing.T) {
	t.Run("generates and persists a fresh identity", func(t *testing.T) {
		state := localstate.NewMemory()
		provider := New(state)

		identity := provider.GetOrCreate()
		assert.NotEmpty(t, identity.Id)
		assert.Contains(t, Nicknames, identity.Nickname)
		assert.Contains(t, Colors, identity.Color)

		// All three keys persisted together
		id, err := state.Get(localstate.KeyIdentityId)
		require.NoError(t, err)
		assert.Equal(t, identity.Id, id)
		nickname, err := state.Get(localstate.KeyIdentityNickname)
		require.NoError(t, err)
		assert.Equal(t, identity.Nickname, nickname)
		color, err := state.Get(localstate.KeyIdentityColor)
		require.NoError(t, err)
		assert.Equal(t, identity.Color, color)
	})

	t.Run("memoized within a process lifetime", func(t *testing.T) {
		provider := New(localstate.NewMemory())
		first := provider.GetOrCreate()
		second := provider.GetOrCreate()
		assert.Equal(t, first, second)
	})

	t.Run("loads a previously persisted identity", func(t *testing.T) {
		state := localstate.NewMemory()
		require.NoError(t, state.Set(localstate.KeyIdentityId, "stored-id"))
		require.NoError(t, state.Set(localstate.KeyIdentityNickname, "Night Owl"))
		require.NoError(t, state.Set(localstate.KeyIdentityColor, "#64b5f6"))

		identity := New(state).GetOrCreate()
		assert.Equal(t, "stored-id", identity.Id)
		assert.Equal(t, "Night Owl", identity.Nickname)
		assert.Equal(t, "#64b5f6", identity.Color)
	})

	t.Run("partial identity regenerates all three keys", func(t *testing.T) {
		state := localstate.NewMemory()
		require.NoError(t, state.Set(localstate.KeyIdentityId, "orphan-id"))

		identity := New(state).GetOrCreate()
		assert.NotEqual(t, "orphan-id", identity.Id)
		assert.False(t, identity.Zero())

		// The regenerated triple is fully persisted
		nickname, err := state.Get(localstate.KeyIdentityNickname)
		require.NoError(t, err)
		assert.NotEmpty(t, nickname)
	})

	t.Run("broken persistence falls back to ephemeral identity", func(t *testing.T) {
		provider := New(&failingStore{err: errors.New("disk gone")})

		identity := provider.GetOrCreate()
		assert.NotEmpty(t, identity.Id)
		assert.Equal(t, "Anonymous", identity.Nickname)

		// Still memoized; the system keeps functioning
		assert.Equal(t, identity, provider.GetOrCreate())
	})

	t.Run("two providers can disagree", func(t *testing.T) {
		// Separate devices get separate identities; collisions are merely
		// tolerated, not prevented.
		a := New(localstate.NewMemory()).GetOrCreate()
		b := New(localstate.NewMemory()).GetOrCreate()
		assert.NotEqual(t, a.Id, b.Id)
	})
}

func TestReset(t *testing.T) {
	state := localstate.NewMemory()
	first := New(state).GetOrCreate()
	require.False(t, first.Zero())

	require.NoError(t, New(state).Reset())

	// The next provider (next process) regenerates
	second := New(state).GetOrCreate()
	assert.NotEqual(t, first.Id, second.Id)
	assert.False(t, second.Zero())
}
