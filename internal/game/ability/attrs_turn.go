package ability

import (
	"context"
	"math"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

type postTurnResetStatus struct {
	attrBase
	allyTarget bool
}

func (a *postTurnResetStatus) ApplyPostTurn(_ context.Context, ev *Event) bool {
	target := ev.Pokemon
	if a.allyTarget {
		target = ev.Pokemon.Ally()
	}
	if target == nil || target.Status() == dex.StatusNone {
		return false
	}
	ev.Announce("statusHealed", target.Name(), target.Status().Noun())
	ev.Queue(CureStatus{Target: target})
	return true
}

// NewPostTurnResetStatus cures the holder's status, or its ally's with allyTarget, at the end of the turn.
func NewPostTurnResetStatus(allyTarget bool) Attr {
	return &postTurnResetStatus{attrBase: newBase(KindPostTurnResetStatus, true), allyTarget: allyTarget}
}

type postTurnStatChange struct {
	attrBase
	stats  []dex.BattleStat
	levels int
}

func (a *postTurnStatChange) ApplyPostTurn(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: a.stats, Levels: a.levels})
	return true
}

// NewPostTurnStatChange changes the holder's stats at the end of every turn.
func NewPostTurnStatChange(stats []dex.BattleStat, levels int) Attr {
	return &postTurnStatChange{attrBase: newBase(KindPostTurnStatChange, true), stats: stats, levels: levels}
}

type postTurnStatusHeal struct {
	attrBase
	effects []dex.StatusEffect
}

func (a *postTurnStatusHeal) ApplyPostTurn(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	if !dex.ContainsStatus(a.effects, p.Status()) || isFullHP(p) {
		return false
	}
	ev.heal(p, max(p.MaxHP()/8, 1), "poisonHeal")
	return true
}

// NewPostTurnStatusHeal heals an eighth of the holder's HP each turn while it has one of effects.
func NewPostTurnStatusHeal(effects ...dex.StatusEffect) Attr {
	return &postTurnStatusHeal{attrBase: newBase(KindPostTurnStatusHeal, false), effects: effects}
}

type postTurnFormChange struct {
	attrBase
	form FormFunc
}

func (a *postTurnFormChange) ApplyPostTurn(_ context.Context, ev *Event) bool {
	return ev.changeForm(a.form)
}

// NewPostTurnFormChange sets the holder's form at the end of every turn.
func NewPostTurnFormChange(form FormFunc) Attr {
	return &postTurnFormChange{attrBase: newBase(KindPostTurnFormChange, true), form: form}
}

type postTurnHurtIfSleeping struct{ attrBase }

func (a *postTurnHurtIfSleeping) ApplyPostTurn(ctx context.Context, ev *Event) bool {
	hurt := false
	for _, opp := range active(ev.Pokemon.Opponents()) {
		asleep := opp.Status() == dex.StatusSleep || ev.Engine.HasAbility(ctx, opp, Comatose)
		if !asleep || ev.Engine.HasAbilityWithAttr(ctx, opp, KindBlockNonDirectDamage) {
			continue
		}
		ev.Queue(Damage{Target: opp, Source: ev.Pokemon, Amount: max(1, opp.MaxHP()/8)})
		ev.Announce("badDreams", opp.Name())
		hurt = true
	}
	return hurt
}

// NewPostTurnHurtIfSleeping hurts every sleeping opponent by an eighth of its max HP each turn.
func NewPostTurnHurtIfSleeping() Attr {
	return &postTurnHurtIfSleeping{attrBase: newBase(KindPostTurnHurtIfSleeping, true)}
}

type postTurnHeal struct{ attrBase }

func (a *postTurnHeal) ApplyPostTurn(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	if isFullHP(p) {
		return false
	}
	ev.heal(p, max(p.MaxHP()/16, 1), "postTurnHeal")
	return true
}

// NewPostTurnHeal heals a sixteenth of the holder's HP each turn.
func NewPostTurnHeal() Attr { return &postTurnHeal{attrBase: newBase(KindPostTurnHeal, true)} }

// ProcFunc returns the probability, in [0, 1], that a per-turn effect happens for p.
type ProcFunc func(p Pokemon) float64

type postTurnLoot struct {
	attrBase
	chance ProcFunc
}

func (a *postTurnLoot) ApplyPostTurn(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	bd := p.BattleData()
	if bd == nil || len(bd.BerriesEaten) == 0 {
		return false
	}
	chance := math.Max(math.Min(a.chance(p), 1), 0)
	if chance < float64(ev.Rand(1000))/1000 {
		return false
	}
	i := ev.Rand(len(bd.BerriesEaten))
	berry := bd.BerriesEaten[i]
	if !ev.Simulated {
		bd.BerriesEaten = append(bd.BerriesEaten[:i], bd.BerriesEaten[i+1:]...)
	}
	ev.Queue(GiveItem{Target: p, Item: berry})
	ev.Announce("postTurnLootCreateEatenBerry", p.Name(), berry.Name)
	return true
}

// NewPostTurnLoot regrows a berry the holder ate this battle, with the probability chance computes.
func NewPostTurnLoot(chance ProcFunc) Attr {
	return &postTurnLoot{attrBase: newBase(KindPostTurnLoot, true), chance: chance}
}

type moody struct{ attrBase }

func (a *moody) ApplyPostTurn(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	var up, down []dex.BattleStat
	for _, s := range dex.MainBattleStats() {
		if p.StatStage(s) < dex.StageLimit {
			up = append(up, s)
		}
		if p.StatStage(s) > -dex.StageLimit {
			down = append(down, s)
		}
	}
	if len(up) > 0 {
		raised := up[ev.Rand(len(up))]
		ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: []dex.BattleStat{raised}, Levels: 2})
		kept := down[:0:0]
		for _, s := range down {
			if s != raised {
				kept = append(kept, s)
			}
		}
		down = kept
	}
	if len(down) > 0 {
		lowered := down[ev.Rand(len(down))]
		ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: []dex.BattleStat{lowered}, Levels: -1})
	}
	return true
}

// NewMoody sharply raises one of the holder's stats and lowers another at the end of every turn.
func NewMoody() Attr { return &moody{attrBase: newBase(KindMoody, true)} }

type fetchBall struct{ attrBase }

func (a *fetchBall) ApplyPostTurn(_ context.Context, ev *Event) bool {
	if ev.Simulated || !ev.Pokemon.IsPlayer() {
		return false
	}
	ball, ok := ev.Scene().FetchLastBall()
	if !ok {
		return false
	}
	ev.Announce("fetchBall", ev.Pokemon.Name(), ball)
	return true
}

// NewFetchBall recovers the last ball the player threw without a catch.
func NewFetchBall() Attr { return &fetchBall{attrBase: newBase(KindFetchBall, true)} }

type postWeatherLapseHeal struct {
	attrBase
	factor   int
	weathers []dex.WeatherType
}

func (a *postWeatherLapseHeal) ApplyPostWeatherLapse(_ context.Context, ev *Event, weather dex.WeatherType) bool {
	p := ev.Pokemon
	if !containsWeather(a.weathers, weather) || isFullHP(p) {
		return false
	}
	amount := int(math.Floor(float64(p.MaxHP()) / (16 / float64(a.factor))))
	ev.heal(p, max(amount, 1), "postWeatherLapseHeal")
	return true
}

// NewPostWeatherLapseHeal heals factor sixteenths of the holder's HP at the end of each turn of the listed weathers.
func NewPostWeatherLapseHeal(factor int, weathers ...dex.WeatherType) Attr {
	return &postWeatherLapseHeal{
		attrBase: withCond(newBase(KindPostWeatherLapseHeal, true), WeatherIs{Weathers: weathers}),
		factor:   factor,
		weathers: weathers,
	}
}

type postWeatherLapseDamage struct {
	attrBase
	factor   int
	weathers []dex.WeatherType
}

func (a *postWeatherLapseDamage) ApplyPostWeatherLapse(ctx context.Context, ev *Event, weather dex.WeatherType) bool {
	p := ev.Pokemon
	if !containsWeather(a.weathers, weather) || ev.Engine.HasAbilityWithAttr(ctx, p, KindBlockNonDirectDamage) {
		return false
	}
	ev.Announce("postWeatherLapseDamage", p.Name(), ev.AbilityName())
	amount := int(math.Ceil(float64(p.MaxHP()) / (16 / float64(a.factor))))
	ev.Queue(Damage{Target: p, Source: p, Amount: amount})
	return true
}

// NewPostWeatherLapseDamage hurts the holder by factor sixteenths of its HP at the end of each turn of the listed weathers.
func NewPostWeatherLapseDamage(factor int, weathers ...dex.WeatherType) Attr {
	return &postWeatherLapseDamage{
		attrBase: withCond(newBase(KindPostWeatherLapseDamage, true), WeatherIs{Weathers: weathers}),
		factor:   factor,
		weathers: weathers,
	}
}

type postWeatherChangeAddTag struct {
	attrBase
	tag      dex.BattlerTagType
	turns    int
	weathers []dex.WeatherType
}

func (a *postWeatherChangeAddTag) ApplyPostWeatherChange(_ context.Context, ev *Event, weather dex.WeatherType) bool {
	p := ev.Pokemon
	if !containsWeather(a.weathers, weather) || !p.CanAddTag(a.tag) {
		return false
	}
	ev.Queue(AddTag{Target: p, Source: p, Tag: a.tag, Turns: a.turns})
	return true
}

// NewPostWeatherChangeAddBattlerTag attaches tag to the holder when the weather becomes one of weathers.
func NewPostWeatherChangeAddBattlerTag(tag dex.BattlerTagType, turns int, weathers ...dex.WeatherType) Attr {
	return &postWeatherChangeAddTag{
		attrBase: newBase(KindPostWeatherChangeAddBattlerTag, true),
		tag:      tag,
		turns:    turns,
		weathers: weathers,
	}
}

type postTerrainChangeAddTag struct {
	attrBase
	tag      dex.BattlerTagType
	turns    int
	terrains []dex.TerrainType
}

func (a *postTerrainChangeAddTag) ApplyPostTerrainChange(_ context.Context, ev *Event, terrain dex.TerrainType) bool {
	p := ev.Pokemon
	found := false
	for _, t := range a.terrains {
		if t == terrain {
			found = true
			break
		}
	}
	if !found || !p.CanAddTag(a.tag) {
		return false
	}
	ev.Queue(AddTag{Target: p, Source: p, Tag: a.tag, Turns: a.turns})
	return true
}

// NewPostTerrainChangeAddBattlerTag attaches tag to the holder when the terrain becomes one of terrains.
func NewPostTerrainChangeAddBattlerTag(tag dex.BattlerTagType, turns int, terrains ...dex.TerrainType) Attr {
	return &postTerrainChangeAddTag{
		attrBase: newBase(KindPostTerrainChangeAddBattlerTag, true),
		tag:      tag,
		turns:    turns,
		terrains: terrains,
	}
}

type postBiomeChangeWeather struct {
	attrBase
	weather dex.WeatherType
}

func (a *postBiomeChangeWeather) ApplyPostBiomeChange(ctx context.Context, ev *Event) bool {
	if ev.Scene().Weather().IsImmutable() {
		return false
	}
	return ev.setWeather(ctx, a.weather)
}

// NewPostBiomeChangeWeatherChange sets the weather again when the battle moves to a new biome.
func NewPostBiomeChangeWeatherChange(w dex.WeatherType) Attr {
	return &postBiomeChangeWeather{attrBase: newBase(KindPostBiomeChangeWeatherChange, true), weather: w}
}

type postBiomeChangeTerrain struct {
	attrBase
	terrain dex.TerrainType
}

func (a *postBiomeChangeTerrain) ApplyPostBiomeChange(ctx context.Context, ev *Event) bool {
	return ev.setTerrain(ctx, a.terrain)
}

// NewPostBiomeChangeTerrainChange sets the terrain again when the battle moves to a new biome.
func NewPostBiomeChangeTerrainChange(t dex.TerrainType) Attr {
	return &postBiomeChangeTerrain{attrBase: newBase(KindPostBiomeChangeTerrainChange, true), terrain: t}
}

// TrapCondition decides whether holder's trapping ability reaches target.
type TrapCondition func(ctx context.Context, e *Engine, holder, target Pokemon) bool

// TrapAll reaches every target.
func TrapAll(context.Context, *Engine, Pokemon, Pokemon) bool { return true }

type arenaTrap struct {
	attrBase
	cond TrapCondition
}

func (a *arenaTrap) ApplyCheckTrapped(ctx context.Context, ev *Event, other Pokemon, trapped *bool) bool {
	if !a.cond(ctx, ev.Engine, ev.Pokemon, other) {
		*trapped = false
		return false
	}
	if hasType(other, dex.TypeGhost) || ev.Engine.HasAbility(ctx, other, RunAway) {
		*trapped = false
		return false
	}
	*trapped = true
	ev.say("arenaTrap")
	return true
}

// NewArenaTrap stops opponents that cond reaches from switching out or fleeing.
// Ghost types and Pokemon with Run Away always escape.
func NewArenaTrap(cond TrapCondition) Attr {
	return &arenaTrap{attrBase: newBase(KindArenaTrap, false), cond: cond}
}
