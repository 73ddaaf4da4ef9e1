package battle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

var (
	average = battle.BaseStats{HP: 80, Atk: 80, Def: 80, SpAtk: 80, SpDef: 80, Spd: 80}
	bulky   = battle.BaseStats{HP: 200, Atk: 50, Def: 200, SpAtk: 50, SpDef: 200, Spd: 30}
	brute   = battle.BaseStats{HP: 100, Atk: 255, Def: 100, SpAtk: 255, SpDef: 100, Spd: 100}
	frail   = battle.BaseStats{HP: 10, Atk: 5, Def: 5, SpAtk: 5, SpDef: 5, Spd: 5}
)

func newEngine(t testing.TB) *ability.Engine {
	t.Helper()
	reg, err := ability.BuildRegistry(ability.Options{})
	require.NoError(t, err)
	return ability.NewEngine(reg, zap.NewNop())
}

func newRoller(seed uint64) *dice.Roller {
	return dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
}

var moveTable = dex.MustLoadMoves()

func move(t testing.TB, id string) *dex.Move {
	t.Helper()
	m, ok := moveTable.Get(id)
	require.True(t, ok, "move %q", id)
	return m
}

// mon builds a Normal-type Pokemon that knows Tackle unless opts replace its moves.
func mon(name string, level int, base battle.BaseStats, id ability.ID, opts ...battle.PokemonOption) *battle.Pokemon {
	tackle, _ := moveTable.Get("tackle")
	opts = append([]battle.PokemonOption{battle.WithAbility(id), battle.WithMoves(tackle)}, opts...)
	return battle.NewPokemon(name, level, []dex.Type{dex.TypeNormal}, base, opts...)
}

// startBattle creates and starts a battle with a fixed seed.
//
// Postcondition: The battle has started without error.
func startBattle(t testing.TB, e *ability.Engine, player, enemy []*battle.Pokemon, opts ...battle.Option) *battle.Battle {
	t.Helper()
	b, err := battle.New(e, zap.NewNop(), newRoller(1), player, enemy, opts...)
	require.NoError(t, err)
	require.NoError(t, b.Start(context.Background()))
	return b
}

func use(p *battle.Pokemon, m *dex.Move, target *battle.Pokemon) battle.Choice {
	return battle.Choice{Pokemon: p, Move: m, Target: target}
}

func TestNew_RejectsPartyWithoutHealthyPokemon(t *testing.T) {
	e := newEngine(t)
	fainted := mon("Husk", 50, average, ability.None, battle.WithHP(0))
	_, err := battle.New(e, zap.NewNop(), newRoller(1), []*battle.Pokemon{mon("A", 50, average, ability.None)}, []*battle.Pokemon{fainted})
	assert.ErrorIs(t, err, battle.ErrNoPokemon)
}

func TestTurn_RequiresStart(t *testing.T) {
	e := newEngine(t)
	b, err := battle.New(e, zap.NewNop(), newRoller(1),
		[]*battle.Pokemon{mon("A", 50, average, ability.None)},
		[]*battle.Pokemon{mon("B", 50, average, ability.None)})
	require.NoError(t, err)
	assert.ErrorIs(t, b.Turn(context.Background(), nil), battle.ErrNotStarted)
}

func TestStart_SendsOutLeads(t *testing.T) {
	e := newEngine(t)
	a, bench := mon("A", 50, average, ability.None), mon("Bench", 50, average, ability.None)
	foe := mon("Foe", 50, average, ability.None)
	b := startBattle(t, e, []*battle.Pokemon{a, bench}, []*battle.Pokemon{foe})

	assert.Equal(t, []*battle.Pokemon{a}, b.Active(battle.SidePlayer))
	assert.True(t, a.IsOnField())
	assert.False(t, bench.IsOnField())
	assert.Contains(t, b.Messages(), "Go! A!")
	assert.Contains(t, b.Messages(), "The opposing Foe appeared!")
}

func TestIntimidate_LowersOpposingAttackOnEntry(t *testing.T) {
	e := newEngine(t)
	gyarados := mon("Gyarados", 50, average, ability.Intimidate)
	foe := mon("Foe", 50, average, ability.None)
	b := startBattle(t, e, []*battle.Pokemon{gyarados}, []*battle.Pokemon{foe})

	assert.Equal(t, -1, foe.StatStage(dex.BattleStatAtk))
	assert.Equal(t, 0, gyarados.StatStage(dex.BattleStatAtk))
	assert.Contains(t, b.Messages(), "[Gyarados's Intimidate]")
}

func TestIntimidate_ClearBodyBlocksDrop(t *testing.T) {
	e := newEngine(t)
	gyarados := mon("Gyarados", 50, average, ability.Intimidate)
	metagross := mon("Metagross", 50, average, ability.ClearBody)
	startBattle(t, e, []*battle.Pokemon{gyarados}, []*battle.Pokemon{metagross})

	assert.Equal(t, 0, metagross.StatStage(dex.BattleStatAtk))
}

func TestWaterAbsorb_HealsInsteadOfTakingDamage(t *testing.T) {
	e := newEngine(t)
	attacker := mon("Squirtle", 50, average, ability.None)
	vaporeon := mon("Vaporeon", 50, bulky, ability.WaterAbsorb)
	half := vaporeon.MaxHP() / 2
	vaporeon = mon("Vaporeon", 50, bulky, ability.WaterAbsorb, battle.WithHP(half))
	b := startBattle(t, e, []*battle.Pokemon{attacker}, []*battle.Pokemon{vaporeon})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "water_gun"), vaporeon)}))

	assert.Equal(t, half+vaporeon.MaxHP()/4, vaporeon.HP())
	assert.Contains(t, b.Messages(), "It doesn't affect Vaporeon...")
}

func TestSturdy_SurvivesKnockoutFromFullHP(t *testing.T) {
	e := newEngine(t)
	attacker := mon("Machamp", 100, brute, ability.None)
	magnezone := mon("Magnezone", 5, frail, ability.Sturdy)
	b := startBattle(t, e, []*battle.Pokemon{attacker}, []*battle.Pokemon{magnezone})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "tackle"), magnezone)}))
	assert.Equal(t, 1, magnezone.HP())
	assert.False(t, b.Over())

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "tackle"), magnezone)}))
	assert.True(t, magnezone.IsFainted())
	assert.True(t, b.Over())
	winner, ok := b.Winner()
	assert.True(t, ok)
	assert.Equal(t, battle.SidePlayer, winner)
}

func TestMoldBreaker_IgnoresSturdy(t *testing.T) {
	e := newEngine(t)
	attacker := mon("Excadrill", 100, brute, ability.MoldBreaker)
	magnezone := mon("Magnezone", 5, frail, ability.Sturdy)
	b := startBattle(t, e, []*battle.Pokemon{attacker}, []*battle.Pokemon{magnezone})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "tackle"), magnezone)}))
	assert.True(t, magnezone.IsFainted())
	assert.False(t, b.IgnoreAbilities(), "the bypass ends with the move")
}

func TestSpeedBoost_RaisesSpeedEachTurn(t *testing.T) {
	e := newEngine(t)
	blaziken := mon("Blaziken", 50, average, ability.SpeedBoost)
	foe := mon("Foe", 50, average, ability.None)
	b := startBattle(t, e, []*battle.Pokemon{blaziken}, []*battle.Pokemon{foe})

	require.NoError(t, b.Turn(context.Background(), nil))
	assert.Equal(t, 1, blaziken.StatStage(dex.BattleStatSpd))
	require.NoError(t, b.Turn(context.Background(), nil))
	assert.Equal(t, 2, blaziken.StatStage(dex.BattleStatSpd))
}

func TestSpeedBoost_CapsAtStageLimit(t *testing.T) {
	e := newEngine(t)
	blaziken := mon("Blaziken", 50, average, ability.SpeedBoost)
	b := startBattle(t, e, []*battle.Pokemon{blaziken}, []*battle.Pokemon{mon("Foe", 50, average, ability.None)})

	for range 10 {
		require.NoError(t, b.Turn(context.Background(), nil))
	}
	assert.Equal(t, dex.StageLimit, blaziken.StatStage(dex.BattleStatSpd))
	assert.Contains(t, b.Messages(), "Blaziken's Speed won't go any higher!")
}

func TestDrizzle_SummonsRainAndSwiftSwimMovesFirst(t *testing.T) {
	e := newEngine(t)
	kingdra := mon("Kingdra", 50, battle.BaseStats{HP: 100, Atk: 50, Def: 100, SpAtk: 50, SpDef: 100, Spd: 30}, ability.SwiftSwim)
	politoed := mon("Politoed", 50, battle.BaseStats{HP: 100, Atk: 50, Def: 100, SpAtk: 50, SpDef: 100, Spd: 50}, ability.Drizzle)
	b := startBattle(t, e, []*battle.Pokemon{kingdra}, []*battle.Pokemon{politoed})
	require.Equal(t, dex.WeatherRain, b.Weather())

	growl := move(t, "growl")
	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(politoed, growl, kingdra), use(kingdra, growl, politoed)}))

	msgs := b.Messages()
	first := indexOf(msgs, "Kingdra used Growl!")
	second := indexOf(msgs, "Politoed used Growl!")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestWeather_ExpiresAfterDefaultDuration(t *testing.T) {
	e := newEngine(t)
	b := startBattle(t, e,
		[]*battle.Pokemon{mon("A", 50, bulky, ability.None)},
		[]*battle.Pokemon{mon("B", 50, bulky, ability.None)},
		battle.WithWeather(dex.WeatherRain))

	for range 5 {
		require.NoError(t, b.Turn(context.Background(), nil))
	}
	assert.Equal(t, dex.WeatherNone, b.Weather())
}

func TestLightningRod_RedirectsAndAbsorbsElectricMoves(t *testing.T) {
	e := newEngine(t)
	pikachu := mon("Pikachu", 50, average, ability.None)
	partner := mon("Partner", 50, bulky, ability.None)
	rod := mon("Raichu", 50, bulky, ability.LightningRod)
	b := startBattle(t, e, []*battle.Pokemon{pikachu}, []*battle.Pokemon{partner, rod}, battle.WithDouble(true))

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(pikachu, move(t, "thunderbolt"), partner)}))

	assert.Equal(t, partner.MaxHP(), partner.HP())
	assert.Equal(t, rod.MaxHP(), rod.HP())
	assert.Equal(t, 1, rod.StatStage(dex.BattleStatSpAtk))
	assert.Contains(t, b.Messages(), "Raichu took the attack!")
}

func TestRoughSkin_DamagesContactAttacker(t *testing.T) {
	e := newEngine(t)
	attacker := mon("Attacker", 50, average, ability.None)
	garchomp := mon("Garchomp", 50, bulky, ability.RoughSkin)
	b := startBattle(t, e, []*battle.Pokemon{attacker}, []*battle.Pokemon{garchomp})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "tackle"), garchomp)}))

	want := attacker.MaxHP() - (attacker.MaxHP()+7)/8
	assert.Equal(t, want, attacker.HP())
	assert.Less(t, garchomp.HP(), garchomp.MaxHP())
}

func TestRoughSkin_IgnoresNonContactMoves(t *testing.T) {
	e := newEngine(t)
	attacker := mon("Attacker", 50, average, ability.None)
	garchomp := mon("Garchomp", 50, bulky, ability.RoughSkin)
	b := startBattle(t, e, []*battle.Pokemon{attacker}, []*battle.Pokemon{garchomp})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "swift"), garchomp)}))
	assert.Equal(t, attacker.MaxHP(), attacker.HP())
}

func TestMagicGuard_BlocksRoughSkin(t *testing.T) {
	e := newEngine(t)
	clefable := mon("Clefable", 50, average, ability.MagicGuard)
	garchomp := mon("Garchomp", 50, bulky, ability.RoughSkin)
	b := startBattle(t, e, []*battle.Pokemon{clefable}, []*battle.Pokemon{garchomp})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(clefable, move(t, "tackle"), garchomp)}))
	assert.Equal(t, clefable.MaxHP(), clefable.HP())
}

func TestMagicGuard_BlocksStatusDamage(t *testing.T) {
	e := newEngine(t)
	clefable := mon("Clefable", 50, average, ability.MagicGuard, battle.WithStatus(dex.StatusBurn))
	plain := mon("Plain", 50, average, ability.None, battle.WithStatus(dex.StatusBurn))
	b := startBattle(t, e, []*battle.Pokemon{clefable}, []*battle.Pokemon{plain})

	require.NoError(t, b.Turn(context.Background(), nil))
	assert.Equal(t, clefable.MaxHP(), clefable.HP())
	assert.Equal(t, plain.MaxHP()-max(plain.MaxHP()/16, 1), plain.HP())
}

func TestLiquidOoze_HurtsDrainingAttacker(t *testing.T) {
	e := newEngine(t)
	attacker := mon("Venusaur", 50, average, ability.None)
	tentacruel := mon("Tentacruel", 50, bulky, ability.LiquidOoze)
	b := startBattle(t, e, []*battle.Pokemon{attacker}, []*battle.Pokemon{tentacruel})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "giga_drain"), tentacruel)}))
	assert.Less(t, attacker.HP(), attacker.MaxHP())
}

func TestDrain_HealsWithoutLiquidOoze(t *testing.T) {
	e := newEngine(t)
	attacker := mon("Venusaur", 50, average, ability.None)
	attacker = mon("Venusaur", 50, average, ability.None, battle.WithHP(attacker.MaxHP()/2))
	target := mon("Target", 50, bulky, ability.None)
	b := startBattle(t, e, []*battle.Pokemon{attacker}, []*battle.Pokemon{target})

	before := attacker.HP()
	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "giga_drain"), target)}))
	assert.Greater(t, attacker.HP(), before)
}

// TestInsomnia_AnnouncesBlockedStatusMove verifies that the pre-move status check shows the
// blocking ability, while the status itself is never set.
func TestInsomnia_AnnouncesBlockedStatusMove(t *testing.T) {
	e := newEngine(t)
	spore := move(t, "spore")
	user := mon("Breloom", 50, average, ability.None, battle.WithMoves(spore))
	hypno := mon("Hypno", 50, average, ability.Insomnia)
	b := startBattle(t, e, []*battle.Pokemon{user}, []*battle.Pokemon{hypno})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(user, spore, hypno)}))

	assert.Equal(t, dex.StatusNone, hypno.Status())
	assert.Contains(t, b.Messages(), "[Hypno's Insomnia]")
	assert.Contains(t, b.Messages(), "But it failed!")
	assert.True(t, hypno.BattleData().AbilityRevealed)
}

func TestDamp_PreventsExplosion(t *testing.T) {
	e := newEngine(t)
	electrode := mon("Electrode", 50, average, ability.None)
	quagsire := mon("Quagsire", 50, bulky, ability.Damp)
	b := startBattle(t, e, []*battle.Pokemon{electrode}, []*battle.Pokemon{quagsire})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(electrode, move(t, "explosion"), quagsire)}))
	assert.False(t, electrode.IsFainted())
	assert.Equal(t, quagsire.MaxHP(), quagsire.HP())
}

func TestPickup_ClaimsDroppedItemAfterWin(t *testing.T) {
	e := newEngine(t)
	items, err := dex.LoadItems()
	require.NoError(t, err)
	leftovers, ok := items.Get("leftovers")
	require.True(t, ok)

	zigzagoon := mon("Zigzagoon", 100, brute, ability.Pickup)
	foe := mon("Foe", 5, frail, ability.None, battle.WithItems(leftovers))
	b := startBattle(t, e, []*battle.Pokemon{zigzagoon}, []*battle.Pokemon{foe})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(zigzagoon, move(t, "tackle"), foe)}))
	require.True(t, b.Over())
	assert.True(t, zigzagoon.HasItem("leftovers"))
	assert.Empty(t, b.PostBattleLoot())
}

func TestHoneyGather_ScattersMoneyAfterWin(t *testing.T) {
	e := newEngine(t)
	combee := mon("Combee", 100, brute, ability.HoneyGather)
	b := startBattle(t, e, []*battle.Pokemon{combee}, []*battle.Pokemon{mon("Foe", 5, frail, ability.None)})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(combee, move(t, "tackle"), nil)}))
	require.True(t, b.Over())
	assert.InDelta(t, 0.2, b.Money(), 1e-9)
}

func TestSwitch_ShadowTagTraps(t *testing.T) {
	e := newEngine(t)
	lead, bench := mon("Lead", 50, average, ability.None), mon("Bench", 50, average, ability.None)
	wobbuffet := mon("Wobbuffet", 50, bulky, ability.ShadowTag)
	b := startBattle(t, e, []*battle.Pokemon{lead, bench}, []*battle.Pokemon{wobbuffet})

	switched, err := b.Switch(context.Background(), lead, bench)
	require.NoError(t, err)
	assert.False(t, switched)
	assert.True(t, lead.IsOnField())
}

func TestSwitch_ReplacesActivePokemon(t *testing.T) {
	e := newEngine(t)
	lead, bench := mon("Lead", 50, average, ability.None), mon("Bench", 50, average, ability.Intimidate)
	foe := mon("Foe", 50, bulky, ability.None)
	b := startBattle(t, e, []*battle.Pokemon{lead, bench}, []*battle.Pokemon{foe})

	switched, err := b.Switch(context.Background(), lead, bench)
	require.NoError(t, err)
	assert.True(t, switched)
	assert.False(t, lead.IsOnField())
	assert.Equal(t, []*battle.Pokemon{bench}, b.Active(battle.SidePlayer))
	assert.Equal(t, -1, foe.StatStage(dex.BattleStatAtk), "the incoming Pokemon's entry ability runs")
}

func TestTurn_FaintedLeadIsReplaced(t *testing.T) {
	e := newEngine(t)
	attacker := mon("Attacker", 100, brute, ability.None)
	weak, reserve := mon("Weak", 5, frail, ability.None), mon("Reserve", 50, bulky, ability.None)
	b := startBattle(t, e, []*battle.Pokemon{attacker}, []*battle.Pokemon{weak, reserve})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "tackle"), weak)}))
	assert.True(t, weak.IsFainted())
	assert.False(t, b.Over())
	assert.Equal(t, []*battle.Pokemon{reserve}, b.Active(battle.SideEnemy))
	assert.Equal(t, 1, b.Faints(false))
}

func TestTurn_AfterBattleOver(t *testing.T) {
	e := newEngine(t)
	attacker := mon("Attacker", 100, brute, ability.None)
	b := startBattle(t, e, []*battle.Pokemon{attacker}, []*battle.Pokemon{mon("Weak", 5, frail, ability.None)})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(attacker, move(t, "tackle"), nil)}))
	require.True(t, b.Over())
	assert.ErrorIs(t, b.Turn(context.Background(), nil), battle.ErrBattleOver)
}

func TestTurn_StruggleWithoutMoves(t *testing.T) {
	e := newEngine(t)
	user := mon("User", 50, average, ability.None, battle.WithMoves())
	foe := mon("Foe", 50, bulky, ability.None)
	b := startBattle(t, e, []*battle.Pokemon{user}, []*battle.Pokemon{foe})

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{{Pokemon: user, Target: foe}}))
	assert.Contains(t, b.Messages(), "User used Struggle!")
	assert.Equal(t, user.MaxHP()-max(user.MaxHP()/4, 1), user.HP())
}

func TestRun_MaxTurnsEndsInDraw(t *testing.T) {
	e := newEngine(t)
	growl := move(t, "growl")
	b := startBattle(t, e,
		[]*battle.Pokemon{mon("A", 50, bulky, ability.None, battle.WithMoves(growl))},
		[]*battle.Pokemon{mon("B", 50, bulky, ability.None, battle.WithMoves(growl))},
		battle.WithMaxTurns(3))

	idle := battle.ChooserFunc(func(context.Context, ability.Pokemon, []*dex.Move, []ability.Pokemon) (*dex.Move, ability.Pokemon, error) {
		return growl, nil, nil
	})
	res, err := b.Run(context.Background(), idle, idle)
	require.NoError(t, err)
	assert.True(t, res.Draw)
	assert.Equal(t, 3, res.Turns)
	assert.Equal(t, "draw after 3 turns", res.String())
}

func TestRun_HonoursCancelledContext(t *testing.T) {
	e := newEngine(t)
	b := startBattle(t, e,
		[]*battle.Pokemon{mon("A", 50, bulky, ability.None)},
		[]*battle.Pokemon{mon("B", 50, bulky, ability.None)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Run(ctx, strongest(), strongest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChangeBiome_DrizzleRestoresRain(t *testing.T) {
	e := newEngine(t)
	ninetales := mon("Ninetales", 50, bulky, ability.None, battle.WithMoves(move(t, "sunny_day")))
	politoed := mon("Politoed", 50, bulky, ability.Drizzle)
	b := startBattle(t, e, []*battle.Pokemon{ninetales}, []*battle.Pokemon{politoed})
	require.Equal(t, dex.WeatherRain, b.Weather())

	require.NoError(t, b.Turn(context.Background(), []battle.Choice{use(ninetales, move(t, "sunny_day"), nil)}))
	require.Equal(t, dex.WeatherSunny, b.Weather())

	require.NoError(t, b.ChangeBiome(context.Background(), dex.Biome("cave")))
	assert.Equal(t, dex.Biome("cave"), b.Biome())
	assert.Equal(t, dex.WeatherRain, b.Weather())
}

// strongest picks the highest-power move against the first opponent.
func strongest() battle.Chooser {
	return battle.ChooserFunc(func(_ context.Context, _ ability.Pokemon, moves []*dex.Move, opps []ability.Pokemon) (*dex.Move, ability.Pokemon, error) {
		var target ability.Pokemon
		if len(opps) > 0 {
			target = opps[0]
		}
		var best *dex.Move
		for _, m := range moves {
			if best == nil || m.Power > best.Power {
				best = m
			}
		}
		return best, target, nil
	})
}

func indexOf(msgs []string, s string) int {
	for i, m := range msgs {
		if m == s {
			return i
		}
	}
	return -1
}

// Property-based tests

func TestProperty_StagesAndHPStayInBounds(t *testing.T) {
	e := newEngine(t)
	pool := []ability.ID{ability.None, ability.Intimidate, ability.SpeedBoost, ability.RoughSkin, ability.Sturdy,
		ability.WaterAbsorb, ability.Drizzle, ability.SwiftSwim, ability.MagicGuard, ability.LiquidOoze, ability.Defiant, ability.Static}
	movePool := []string{"tackle", "growl", "swords_dance", "water_gun", "thunderbolt", "giga_drain", "double_edge", "fury_swipes", "recover", "toxic"}

	rapid.Check(t, func(rt *rapid.T) {
		build := func(label string) []*battle.Pokemon {
			n := rapid.IntRange(1, 3).Draw(rt, label+"_size")
			party := make([]*battle.Pokemon, n)
			for i := range party {
				var ms []*dex.Move
				for _, id := range rapid.SliceOfNDistinct(rapid.SampledFrom(movePool), 1, 4, rapid.ID[string]).Draw(rt, label+"_moves") {
					ms = append(ms, move(t, id))
				}
				party[i] = mon(label, rapid.IntRange(5, 100).Draw(rt, label+"_level"), average,
					rapid.SampledFrom(pool).Draw(rt, label+"_ability"), battle.WithMoves(ms...))
			}
			return party
		}
		player, enemy := build("p"), build("e")
		b, err := battle.New(e, zap.NewNop(), newRoller(rapid.Uint64().Draw(rt, "seed")), player, enemy, battle.WithMaxTurns(20))
		require.NoError(rt, err)
		require.NoError(rt, b.Start(context.Background()))

		for turn := 0; turn < 20 && !b.Over(); turn++ {
			var choices []battle.Choice
			for _, side := range []battle.Side{battle.SidePlayer, battle.SideEnemy} {
				for _, p := range b.Active(side) {
					if p == nil || p.IsFainted() {
						continue
					}
					var m *dex.Move
					if usable := p.UsableMoves(); len(usable) > 0 {
						m = rapid.SampledFrom(usable).Draw(rt, "move")
					}
					choices = append(choices, battle.Choice{Pokemon: p, Move: m})
				}
			}
			require.NoError(rt, b.Turn(context.Background(), choices))

			for _, side := range []battle.Side{battle.SidePlayer, battle.SideEnemy} {
				for _, p := range b.Party(side) {
					if p.HP() < 0 || p.HP() > p.MaxHP() {
						rt.Fatalf("%s HP %d outside [0, %d]", p.Name(), p.HP(), p.MaxHP())
					}
					for s := dex.BattleStat(0); s < dex.BattleStatCount; s++ {
						if st := p.StatStage(s); st < -dex.StageLimit || st > dex.StageLimit {
							rt.Fatalf("%s %s stage %d out of range", p.Name(), s, st)
						}
					}
				}
			}
		}
	})
}

func TestProperty_SameSeedSameBattle(t *testing.T) {
	e := newEngine(t)
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		play := func() []string {
			player := []*battle.Pokemon{mon("A", 50, average, ability.SpeedBoost, battle.WithMoves(move(t, "tackle"), move(t, "fury_swipes")))}
			enemy := []*battle.Pokemon{mon("B", 50, average, ability.RoughSkin, battle.WithMoves(move(t, "tackle")))}
			b, err := battle.New(e, zap.NewNop(), newRoller(seed), player, enemy, battle.WithMaxTurns(15))
			require.NoError(rt, err)
			require.NoError(rt, b.Start(context.Background()))
			_, err = b.Run(context.Background(), strongest(), strongest())
			require.NoError(rt, err)
			return b.Messages()
		}
		assert.Equal(rt, play(), play())
	})
}
