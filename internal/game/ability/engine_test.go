package ability_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

var stats = battle.BaseStats{HP: 80, Atk: 80, Def: 80, SpAtk: 80, SpDef: 80, Spd: 80}

type fakeHost struct {
	mu     sync.Mutex
	result bool
	err    error
	facts  []map[string]any
}

func (h *fakeHost) EvalPredicate(_ string, facts map[string]any) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.facts = append(h.facts, facts)
	return h.result, h.err
}

// bind places player and enemy in a new, unstarted battle so ability checks have a scene.
//
// Postcondition: Both Pokemon report a non-nil Scene.
func bind(t testing.TB, e *ability.Engine, player, enemy *battle.Pokemon) *battle.Battle {
	t.Helper()
	roller := dice.NewLoggedRoller(dice.NewSeededSource(1), zap.NewNop())
	b, err := battle.New(e, zap.NewNop(), roller, []*battle.Pokemon{player}, []*battle.Pokemon{enemy})
	require.NoError(t, err)
	return b
}

func pokemon(name string, opts ...battle.PokemonOption) *battle.Pokemon {
	return battle.NewPokemon(name, 50, []dex.Type{dex.TypeNormal}, stats, opts...)
}

func defaultEngine(t testing.TB, opts ...ability.EngineOption) *ability.Engine {
	t.Helper()
	return ability.NewEngine(standardRegistry(t), zap.NewNop(), opts...)
}

func TestEngine_AbilityOverrideReplacesPrimaryOnly(t *testing.T) {
	e := defaultEngine(t)
	p := pokemon("Ditto", battle.WithAbility(ability.Intimidate), battle.WithPassive(ability.Levitate))
	p.SummonData().Ability = ability.Sturdy

	assert.Equal(t, ability.Sturdy, e.Ability(p, false).ID())
	assert.Equal(t, ability.Levitate, e.Ability(p, true).ID())

	p.SummonData().Reset()
	assert.Equal(t, ability.Intimidate, e.Ability(p, false).ID())
}

func TestEngine_AbilityEmptySlot(t *testing.T) {
	e := defaultEngine(t)
	p := pokemon("Plain")
	assert.Nil(t, e.Ability(p, false))
	assert.Nil(t, e.Ability(p, true))
	assert.False(t, e.SlotCanApply(context.Background(), p, false))
}

func TestEngine_HasAbilityNeedsABattle(t *testing.T) {
	e := defaultEngine(t)
	p := pokemon("Gyarados", battle.WithAbility(ability.Intimidate))

	assert.False(t, e.HasAbility(context.Background(), p, ability.Intimidate))
	assert.True(t, e.HasAbilityIgnoringState(p, ability.Intimidate))

	bind(t, e, p, pokemon("Foe"))
	assert.True(t, e.HasAbility(context.Background(), p, ability.Intimidate))
	assert.True(t, e.HasAbilityWithAttr(context.Background(), p, ability.KindPostSummonStatChange))
}

func TestEngine_SlotCanApply_Fainted(t *testing.T) {
	e := defaultEngine(t)
	sturdy := pokemon("Geodude", battle.WithAbility(ability.Sturdy), battle.WithHP(0))
	roughSkin := pokemon("Carvanha", battle.WithAbility(ability.RoughSkin), battle.WithHP(0))
	roller := dice.NewLoggedRoller(dice.NewSeededSource(1), zap.NewNop())
	_, err := battle.New(e, zap.NewNop(), roller,
		[]*battle.Pokemon{pokemon("Lead"), sturdy},
		[]*battle.Pokemon{pokemon("Foe"), roughSkin})
	require.NoError(t, err)

	ctx := context.Background()
	assert.False(t, e.SlotCanApply(ctx, sturdy, false))
	assert.True(t, e.SlotCanApply(ctx, roughSkin, false), "rough skin bypasses faint")
}

func TestEngine_SlotCanApply_Suppressed(t *testing.T) {
	e := defaultEngine(t)
	p := pokemon("Gyarados", battle.WithAbility(ability.Intimidate))
	bind(t, e, p, pokemon("Foe"))

	p.SummonData().AbilitySuppressed = true
	assert.False(t, e.SlotCanApply(context.Background(), p, false))
	assert.True(t, e.HasAbilityIgnoringState(p, ability.Intimidate))
}

func TestEngine_PreDefend_SimulatedLeavesNoTrace(t *testing.T) {
	e := defaultEngine(t)
	waterGun, ok := dex.MustLoadMoves().Get("water_gun")
	require.True(t, ok)

	vaporeon := pokemon("Vaporeon", battle.WithAbility(ability.WaterAbsorb), battle.WithHP(60))
	attacker := pokemon("Squirtle")
	bind(t, e, vaporeon, attacker)

	d := ability.NewDefendArgs(attacker, waterGun)
	d.Simulated = true
	require.NoError(t, e.PreDefend(context.Background(), vaporeon, d))
	assert.Zero(t, d.TypeMultiplier)
	assert.False(t, vaporeon.SummonData().HasApplied(ability.WaterAbsorb))

	d = ability.NewDefendArgs(attacker, waterGun)
	require.NoError(t, e.PreDefend(context.Background(), vaporeon, d))
	assert.Zero(t, d.TypeMultiplier)
	assert.True(t, vaporeon.SummonData().HasApplied(ability.WaterAbsorb))
}

func TestEngine_PreDefend_CancelledContext(t *testing.T) {
	e := defaultEngine(t)
	waterGun, ok := dex.MustLoadMoves().Get("water_gun")
	require.True(t, ok)
	vaporeon := pokemon("Vaporeon", battle.WithAbility(ability.WaterAbsorb))
	attacker := pokemon("Squirtle")
	bind(t, e, vaporeon, attacker)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.PreDefend(ctx, vaporeon, ability.NewDefendArgs(attacker, waterGun))
	assert.ErrorIs(t, err, context.Canceled)
}

func scriptedRecord() *ability.Record {
	return ability.New(ability.CustomBase+40, 9).
		Named("Moonlit", "").
		Keyed("moonlit").
		Condition(ability.Scripted{Hook: "moonlit"}).
		Attr(ability.NewPostTurnStatChange([]dex.BattleStat{dex.BattleStatSpd}, 1)).
		Build()
}

func scriptedEngine(t testing.TB, opts ...ability.EngineOption) *ability.Engine {
	t.Helper()
	reg, err := ability.BuildRegistry(ability.Options{Custom: []*ability.Record{scriptedRecord()}})
	require.NoError(t, err)
	return ability.NewEngine(reg, zap.NewNop(), opts...)
}

func TestScripted_FailsClosedWithoutHost(t *testing.T) {
	e := scriptedEngine(t)
	p := pokemon("Lunatone", battle.WithAbility(ability.CustomBase+40))
	bind(t, e, p, pokemon("Foe"))
	assert.False(t, e.SlotCanApply(context.Background(), p, false))
}

func TestScripted_DelegatesToHost(t *testing.T) {
	host := &fakeHost{result: true}
	e := scriptedEngine(t, ability.WithScripts(host))
	p := pokemon("Lunatone", battle.WithAbility(ability.CustomBase+40))
	bind(t, e, p, pokemon("Foe"))

	assert.True(t, e.SlotCanApply(context.Background(), p, false))
	require.NotEmpty(t, host.facts)
	assert.Equal(t, "Lunatone", host.facts[0]["name"])
	assert.Equal(t, 50, host.facts[0]["level"])
	assert.Contains(t, host.facts[0], "weather")

	host.result = false
	assert.False(t, e.SlotCanApply(context.Background(), p, false))
}

func TestScripted_HostErrorFailsClosed(t *testing.T) {
	host := &fakeHost{result: true, err: errors.New("boom")}
	e := scriptedEngine(t, ability.WithScripts(host))
	p := pokemon("Lunatone", battle.WithAbility(ability.CustomBase+40))
	bind(t, e, p, pokemon("Foe"))
	assert.False(t, e.SlotCanApply(context.Background(), p, false))
}

func TestFacts_WithoutBattle(t *testing.T) {
	p := pokemon("Eevee", battle.WithHP(40))
	facts := ability.Facts(p)
	assert.Equal(t, "Eevee", facts["name"])
	assert.Equal(t, 40, facts["hp"])
	assert.Equal(t, []string{dex.TypeNormal.String()}, facts["types"])
	assert.NotContains(t, facts, "weather")
}
