package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroTally(t *testing.T) {
	tally := ZeroTally()
	assert.Len(t, tally, len(ReactionKinds))
	for _, kind := range ReactionKinds {
		assert.Equal(t, int64(0), tally[kind])
	}
}

func TestTallyNormalize(t *testing.T) {
	t.Run("nil tally becomes zero tally", func(t *testing.T) {
		var tally Tally
		assert.Equal(t, ZeroTally(), tally.Normalize())
	})

	t.Run("missing known kinds are filled", func(t *testing.T) {
		tally := Tally{ReactionHeart: 3}.Normalize()
		assert.Equal(t, int64(3), tally[ReactionHeart])
		assert.Equal(t, int64(0), tally[ReactionSad])
		assert.Len(t, tally, len(ReactionKinds))
	})

	t.Run("unknown kinds are preserved", func(t *testing.T) {
		tally := Tally{"sparkle": 7}.Normalize()
		assert.Equal(t, int64(7), tally["sparkle"])
		assert.Len(t, tally, len(ReactionKinds)+1)
	})
}

func TestTallyTotal(t *testing.T) {
	assert.Equal(t, int64(0), ZeroTally().Total())
	assert.Equal(t, int64(6), Tally{ReactionHeart: 1, ReactionHug: 2, "sparkle": 3}.Total())
}

func TestTallyClone(t *testing.T) {
	original := Tally{ReactionHeart: 1}
	clone := original.Clone()
	clone[ReactionHeart] = 99
	assert.Equal(t, int64(1), original[ReactionHeart])
}

func TestTallyDominates(t *testing.T) {
	tests := []struct {
		name      string
		t1        Tally
		t2        Tally
		dominates bool
	}{
		{"equal tallies dominate", Tally{ReactionHeart: 2}.Normalize(), Tally{ReactionHeart: 2}.Normalize(), true},
		{"strictly greater dominates", Tally{ReactionHeart: 3}.Normalize(), Tally{ReactionHeart: 1}.Normalize(), true},
		{"one smaller dimension loses", Tally{ReactionHeart: 3, ReactionSad: 0}.Normalize(), Tally{ReactionHeart: 1, ReactionSad: 1}.Normalize(), false},
		{"zero vs zero dominates", ZeroTally(), ZeroTally(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dominates, tt.t1.Dominates(tt.t2))
		})
	}
}

// Property: Dominates agrees with an element-wise >= check over random vectors.
func TestTallyDominatesProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		t1, t2 := ZeroTally(), ZeroTally()
		for _, kind := range ReactionKinds {
			t1[kind] = int64(rng.Intn(5))
			t2[kind] = int64(rng.Intn(5))
		}

		expected := true
		for _, kind := range ReactionKinds {
			if t1[kind] < t2[kind] {
				expected = false
				break
			}
		}
		assert.Equal(t, expected, t1.Dominates(t2), "t1=%v t2=%v", t1, t2)
	}
}
