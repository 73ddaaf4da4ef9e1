package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// firstMove always uses the first usable move on the first opponent.
var firstMove = battle.ChooserFunc(func(_ context.Context, _ ability.Pokemon, moves []*dex.Move, opps []ability.Pokemon) (*dex.Move, ability.Pokemon, error) {
	if len(moves) == 0 {
		return nil, nil, nil
	}
	var target ability.Pokemon
	if len(opps) > 0 {
		target = opps[0]
	}
	return moves[0], target, nil
})

func newSimulator(t testing.TB, cfg config.SimulatorConfig, player, enemy battle.Chooser) *simulator {
	t.Helper()
	custom, err := ability.LoadDefinitions("../../content/abilities", ability.DefaultCatalog())
	require.NoError(t, err)
	reg, err := ability.BuildRegistry(ability.Options{Custom: custom})
	require.NoError(t, err)
	roster, err := battle.LoadRoster("")
	require.NoError(t, err)
	items, err := dex.LoadItems()
	require.NoError(t, err)
	return &simulator{
		cfg:    cfg,
		engine: ability.NewEngine(reg, zap.NewNop()),
		roster: roster,
		moves:  dex.MustLoadMoves(),
		items:  items,
		player: player,
		enemy:  enemy,
		logger: zap.NewNop(),
	}
}

func seeded(battles int) config.SimulatorConfig {
	return config.SimulatorConfig{Battles: battles, Concurrency: 3, MaxTurns: 60, Seed: 7}
}

func TestSimulator_CountsEveryBattle(t *testing.T) {
	sim := newSimulator(t, seeded(6), firstMove, firstMove)
	sum, err := sim.run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, sum.Battles)
	assert.Equal(t, sum.Battles, sum.PlayerWins+sum.EnemyWins+sum.Draws)
	assert.Positive(t, sum.Turns)
	assert.LessOrEqual(t, sum.AverageTurns(), 60.0)
}

func TestSimulator_SameSeedSameSummary(t *testing.T) {
	play := func() summary {
		sum, err := newSimulator(t, seeded(4), firstMove, firstMove).run(context.Background())
		require.NoError(t, err)
		sum.Elapsed = 0
		return sum
	}
	assert.Equal(t, play(), play())
}

func TestSimulator_WithPlanners(t *testing.T) {
	reg, err := ai.LoadRegistry("../../content/ai", nil, zap.NewNop())
	require.NoError(t, err)
	sim := newSimulator(t, seeded(2), firstMove, firstMove)
	scorer := ai.NewScorer(sim.engine)
	for i, id := range []string{"aggressive", "tactician"} {
		p, ok := reg.PlannerFor(id)
		require.True(t, ok)
		c := ai.NewChooser(p, scorer, zap.NewNop())
		if i == 0 {
			sim.player = c
		} else {
			sim.enemy = c
		}
	}
	sim.cfg.Double = true

	sum, err := sim.run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Battles)
}

func TestSimulator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newSimulator(t, seeded(3), firstMove, firstMove).run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_ChooserErrorFailsRun(t *testing.T) {
	boom := battle.ChooserFunc(func(context.Context, ability.Pokemon, []*dex.Move, []ability.Pokemon) (*dex.Move, ability.Pokemon, error) {
		return nil, nil, assert.AnError
	})
	_, err := newSimulator(t, seeded(2), firstMove, boom).run(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSummary_AverageTurnsEmpty(t *testing.T) {
	assert.Zero(t, summary{}.AverageTurns())
}

func TestSummary_TopAbilities(t *testing.T) {
	s := summary{Activation: map[ability.ID]int{
		ability.Intimidate: 3,
		ability.Drizzle:    5,
		ability.SpeedBoost: 3,
		ability.Static:     1,
	}}
	top := s.TopAbilities(3)
	require.Len(t, top, 3)
	assert.Equal(t, ability.Drizzle, top[0])
	assert.ElementsMatch(t, []ability.ID{ability.SpeedBoost, ability.Intimidate}, top[1:])
	assert.Len(t, s.TopAbilities(10), 4)
}

// TestProperty_TopAbilitiesOrdered verifies counts never increase down the list.
func TestProperty_TopAbilitiesOrdered(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		act := rapid.MapOf(rapid.Custom(func(rt *rapid.T) ability.ID {
			return ability.ID(rapid.IntRange(1, int(ability.CustomBase)-1).Draw(rt, "id"))
		}), rapid.IntRange(1, 50)).Draw(rt, "activation")
		s := summary{Activation: act}
		top := s.TopAbilities(rapid.IntRange(0, len(act)+2).Draw(rt, "n"))
		for i := 1; i < len(top); i++ {
			if act[top[i]] > act[top[i-1]] {
				rt.Fatalf("position %d has %d activations after %d", i, act[top[i]], act[top[i-1]])
			}
		}
	})
}

func TestRecord_KeysAbilities(t *testing.T) {
	reg, err := ability.BuildRegistry(ability.Options{})
	require.NoError(t, err)
	cfg := seeded(3)
	cfg.PlayerAI, cfg.EnemyAI = "aggressive", "tactician"
	sum := summary{
		Battles:    3,
		EnemyWins:  3,
		Loot:       map[string]int{"oran_berry": 1},
		Activation: map[ability.ID]int{ability.Drizzle: 2, ability.CustomBase + 999: 1},
	}

	run := record(sum, cfg, time.Unix(0, 0), reg)
	assert.Equal(t, "tactician", run.EnemyAI)
	assert.Equal(t, uint64(7), run.Seed)
	assert.Equal(t, 3, run.EnemyWins)
	assert.Equal(t, 2, run.Activations["drizzle"])
	assert.Len(t, run.Activations, 2, "unregistered ids keep their numeric name")
	assert.Equal(t, sum.Loot, run.Loot)

	run.Loot["oran_berry"] = 9
	assert.Equal(t, 1, sum.Loot["oran_berry"], "loot is copied")
}

func TestReport_NamesAbilities(t *testing.T) {
	reg, err := ability.BuildRegistry(ability.Options{})
	require.NoError(t, err)
	sum := summary{
		Battles:    2,
		PlayerWins: 1,
		Draws:      1,
		Turns:      9,
		Loot:       map[string]int{},
		Activation: map[ability.ID]int{ability.Drizzle: 4},
	}
	var buf bytes.Buffer
	report(&buf, sum, reg, 5)
	out := buf.String()
	assert.Contains(t, out, "battles")
	assert.Contains(t, out, "4.5")
	assert.Contains(t, out, "ability Drizzle")
}
