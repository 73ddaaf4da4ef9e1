package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/scripting"
)

func newEngine(t testing.TB) *ability.Engine {
	t.Helper()
	reg, err := ability.BuildRegistry(ability.Options{})
	require.NoError(t, err)
	return ability.NewEngine(reg, zap.NewNop())
}

func roller(seed uint64) *dice.Roller {
	return dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
}

// chooserFor builds a Chooser over the shipped domain id.
func chooserFor(t testing.TB, e *ability.Engine, id string, eval ai.PredicateEvaluator) *ai.Chooser {
	t.Helper()
	reg, err := ai.LoadRegistry(shippedDomainsDir, eval, zap.NewNop())
	require.NoError(t, err)
	planner, ok := reg.PlannerFor(id)
	require.True(t, ok, "domain %q", id)
	return ai.NewChooser(planner, ai.NewScorer(e), zap.NewNop())
}

// bound places user and foe in an unstarted battle so their abilities can apply.
func bound(t testing.TB, e *ability.Engine, user, foe *battle.Pokemon) {
	t.Helper()
	_, err := battle.New(e, zap.NewNop(), roller(1), []*battle.Pokemon{user}, []*battle.Pokemon{foe})
	require.NoError(t, err)
}

func choose(t testing.TB, c *ai.Chooser, user *battle.Pokemon, foes ...*battle.Pokemon) (*dex.Move, ability.Pokemon) {
	t.Helper()
	var opps []ability.Pokemon
	for _, f := range foes {
		opps = append(opps, f)
	}
	m, target, err := c.ChooseMove(context.Background(), user, user.UsableMoves(), opps)
	require.NoError(t, err)
	return m, target
}

func TestChooser_PrefersSuperEffectiveMove(t *testing.T) {
	e := newEngine(t)
	user := newMon("Eevee", battle.WithMoves(moves(t, "tackle", "water_gun")...))
	foe := battle.NewPokemon("Charmander", 50, []dex.Type{dex.TypeFire}, baseStats)
	bound(t, e, user, foe)

	m, target := choose(t, chooserFor(t, e, "aggressive", nil), user, foe)
	require.NotNil(t, m)
	assert.Equal(t, "water_gun", m.ID)
	assert.Equal(t, ability.Pokemon(foe), target)
}

func TestChooser_AvoidsAbilityImmunity(t *testing.T) {
	e := newEngine(t)
	user := newMon("Eevee", battle.WithMoves(moves(t, "water_gun", "tackle")...))
	vaporeon := battle.NewPokemon("Vaporeon", 50, []dex.Type{dex.TypeFire}, baseStats, battle.WithAbility(ability.WaterAbsorb))
	bound(t, e, user, vaporeon)

	m, _ := choose(t, chooserFor(t, e, "aggressive", nil), user, vaporeon)
	require.NotNil(t, m)
	assert.Equal(t, "tackle", m.ID)
	assert.Equal(t, vaporeon.MaxHP(), vaporeon.HP(), "scoring must not trigger the heal")
}

func TestChooser_AggressiveFinishesWeakestOpponent(t *testing.T) {
	e := newEngine(t)
	user := newMon("Eevee", battle.WithMoves(moves(t, "tackle")...))
	healthy := newMon("Healthy")
	weak := newMon("Weak", battle.WithHP(5))
	_, err := battle.New(e, zap.NewNop(), roller(1), []*battle.Pokemon{user}, []*battle.Pokemon{healthy, weak}, battle.WithDouble(true))
	require.NoError(t, err)

	_, target := choose(t, chooserFor(t, e, "aggressive", nil), user, healthy, weak)
	assert.Equal(t, ability.Pokemon(weak), target)
}

func TestChooser_TacticianHealsWhenLow(t *testing.T) {
	e := newEngine(t)
	user := newMon("Chansey", battle.WithMoves(moves(t, "tackle", "recover")...), battle.WithHP(20))
	foe := newMon("Foe")
	bound(t, e, user, foe)

	m, _ := choose(t, chooserFor(t, e, "tactician", nil), user, foe)
	require.NotNil(t, m)
	assert.Equal(t, "recover", m.ID)
}

func TestChooser_TacticianAttacksWithoutScripts(t *testing.T) {
	e := newEngine(t)
	user := newMon("Gengar", battle.WithMoves(moves(t, "toxic", "tackle")...))
	foe := newMon("Foe")
	bound(t, e, user, foe)

	m, _ := choose(t, chooserFor(t, e, "tactician", nil), user, foe)
	require.NotNil(t, m)
	assert.Equal(t, "tackle", m.ID, "should_prepare is scripted and fails closed")
}

func TestChooser_TacticianStatusesThroughLua(t *testing.T) {
	e := newEngine(t)
	mgr := scripting.NewManager(roller(1), zap.NewNop())
	require.NoError(t, mgr.Load("../../../content/scripts", 0))
	t.Cleanup(mgr.Close)

	user := newMon("Gengar", battle.WithMoves(moves(t, "toxic", "tackle")...))
	foe := newMon("Foe")
	bound(t, e, user, foe)
	c := chooserFor(t, e, "tactician", mgr)

	m, target := choose(t, c, user, foe)
	require.NotNil(t, m)
	assert.Equal(t, "toxic", m.ID)
	assert.Equal(t, ability.Pokemon(foe), target)

	poisoned := newMon("Poisoned", battle.WithStatus(dex.StatusPoison))
	user2 := newMon("Gengar", battle.WithMoves(moves(t, "toxic", "tackle")...))
	bound(t, e, user2, poisoned)
	m, _ = choose(t, c, user2, poisoned)
	require.NotNil(t, m)
	assert.Equal(t, "tackle", m.ID, "an already statused opponent is not targeted again")
}

func TestChooser_NoMoves(t *testing.T) {
	e := newEngine(t)
	c := chooserFor(t, e, "aggressive", nil)
	m, target, err := c.ChooseMove(context.Background(), newMon("Empty"), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Nil(t, target)
}

func TestChooser_FallsBackToFirstMove(t *testing.T) {
	e := newEngine(t)
	user := newMon("Smeargle", battle.WithMoves(moves(t, "sunny_day", "growl")...))
	foe := newMon("Foe")
	bound(t, e, user, foe)

	m, _ := choose(t, chooserFor(t, e, "aggressive", nil), user, foe)
	require.NotNil(t, m)
	assert.Equal(t, "sunny_day", m.ID)
}

func TestScorer_StatusMovesScoreZero(t *testing.T) {
	e := newEngine(t)
	user, foe := newMon("A"), newMon("B")
	bound(t, e, user, foe)
	s := ai.NewScorer(e)

	score, err := s.Score(context.Background(), user, foe, moves(t, "toxic")[0])
	require.NoError(t, err)
	assert.Zero(t, score)

	stab, err := s.Score(context.Background(), user, foe, moves(t, "tackle")[0])
	require.NoError(t, err)
	plain, err := s.Score(context.Background(), user, foe, moves(t, "water_gun")[0])
	require.NoError(t, err)
	assert.InDelta(t, plain*1.5, stab, 0.001, "same-type moves score half again as much")
}

func TestChooser_DrivesFullBattle(t *testing.T) {
	custom, err := ability.LoadDefinitions("../../../content/abilities", ability.DefaultCatalog())
	require.NoError(t, err)
	reg, err := ability.BuildRegistry(ability.Options{Custom: custom})
	require.NoError(t, err)
	e := ability.NewEngine(reg, zap.NewNop())

	r, err := battle.LoadRoster("")
	require.NoError(t, err)
	items, err := dex.LoadItems()
	require.NoError(t, err)
	player, enemy, err := r.Build(reg, moveTable, items)
	require.NoError(t, err)

	b, err := battle.New(e, zap.NewNop(), roller(3), player, enemy, battle.WithMaxTurns(200))
	require.NoError(t, err)
	require.NoError(t, b.Start(context.Background()))
	res, err := b.Run(context.Background(), chooserFor(t, e, "aggressive", nil), chooserFor(t, e, "tactician", nil))
	require.NoError(t, err)
	assert.True(t, b.Over())
	assert.Positive(t, res.Turns)
}
