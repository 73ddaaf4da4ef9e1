package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

func TestParse_Forms(t *testing.T) {
	cases := []struct {
		in                             string
		count, sides, mod, keepHighest int
	}{
		{"d20", 1, 20, 0, 0},
		{"2d6", 2, 6, 0, 0},
		{"2d6+3", 2, 6, 3, 0},
		{"4d8-2", 4, 8, -2, 0},
		{"4d6kh3", 4, 6, 0, 3},
		{"1d16+84", 1, 16, 84, 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			e, err := dice.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.count, e.Count)
			assert.Equal(t, tc.sides, e.Sides)
			assert.Equal(t, tc.mod, e.Modifier)
			assert.Equal(t, tc.keepHighest, e.KeepHighest)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "6", "0d6", "2d1", "2dx", "4d6kh4", "4d6kh0", "2d6+x", "2d6+"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, in)
	}
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestSeededSource_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestProperty_SeededSource_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		n := rapid.IntRange(1, 1<<20).Draw(rt, "n")
		v := dice.NewSeededSource(seed).Intn(n)
		assert.GreaterOrEqual(rt, v, 0)
		assert.Less(rt, v, n)
	})
}

func TestRoller_RollExpr_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(dice.NewSeededSource(7), zap.New(core))
	res, err := r.RollExpr("2d6+3")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Total(), 5)
	assert.LessOrEqual(t, res.Total(), 15)
	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "2d6+3", entries[0].ContextMap()["expression"])
}

func TestRoller_Chance_Bounds(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(3), zap.NewNop())
	for i := 0; i < 50; i++ {
		assert.False(t, r.Chance(0))
		assert.False(t, r.Chance(-10))
		assert.True(t, r.Chance(100))
		assert.True(t, r.Chance(250))
	}
}

func TestProperty_Roller_KeepHighestKeepsLargest(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		res, err := dice.RollExpr("4d6kh3", dice.NewSeededSource(seed))
		require.NoError(rt, err)
		require.Len(rt, res.Dice, 3)
		for i := 1; i < len(res.Dice); i++ {
			assert.GreaterOrEqual(rt, res.Dice[i-1], res.Dice[i])
		}
	})
}
