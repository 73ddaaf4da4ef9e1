package ability

import (
	"context"
	"math"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// StatFunc picks the battle stat a reaction changes for p.
type StatFunc func(p Pokemon) dex.BattleStat

// FixedStat always picks s.
func FixedStat(s dex.BattleStat) StatFunc {
	return func(Pokemon) dex.BattleStat { return s }
}

// HighestStat picks p's highest non-HP stat. Ties go to the earlier stat.
func HighestStat(p Pokemon) dex.BattleStat {
	best, bestVal := dex.BattleStatAtk, -1
	for _, bs := range dex.MainBattleStats() {
		s, _ := bs.Stat()
		if v := p.Stat(s); v > bestVal {
			best, bestVal = bs, v
		}
	}
	return best
}

type postVictoryStatChange struct {
	attrBase
	stat   StatFunc
	levels int
}

func (a *postVictoryStatChange) ApplyPostVictory(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: []dex.BattleStat{a.stat(p)}, Levels: a.levels})
	return true
}

// NewPostVictoryStatChange changes one of the holder's stats when its side wins a battle.
func NewPostVictoryStatChange(stat StatFunc, levels int) Attr {
	return &postVictoryStatChange{attrBase: newBase(KindPostVictoryStatChange, true), stat: stat, levels: levels}
}

type postVictoryFormChange struct {
	attrBase
	form FormFunc
}

func (a *postVictoryFormChange) ApplyPostVictory(_ context.Context, ev *Event) bool {
	return ev.changeForm(a.form)
}

// NewPostVictoryFormChange sets the holder's form after a won battle.
func NewPostVictoryFormChange(form FormFunc) Attr {
	return &postVictoryFormChange{attrBase: newBase(KindPostVictoryFormChange, true), form: form}
}

type postKnockOutStatChange struct {
	attrBase
	stat   StatFunc
	levels int
}

func (a *postKnockOutStatChange) ApplyPostKnockOut(_ context.Context, ev *Event, _ Pokemon) bool {
	p := ev.Pokemon
	ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: []dex.BattleStat{a.stat(p)}, Levels: a.levels})
	return true
}

// NewPostKnockOutStatChange changes one of the holder's stats whenever a Pokemon faints while it is on the field.
func NewPostKnockOutStatChange(stat StatFunc, levels int) Attr {
	return &postKnockOutStatChange{attrBase: newBase(KindPostKnockOutStatChange, true), stat: stat, levels: levels}
}

type copyFaintedAllyAbility struct{ attrBase }

func (a *copyFaintedAllyAbility) ApplyPostKnockOut(_ context.Context, ev *Event, knockedOut Pokemon) bool {
	p := ev.Pokemon
	if knockedOut == nil || knockedOut.IsPlayer() != p.IsPlayer() {
		return false
	}
	copied := ev.Engine.Ability(knockedOut, false)
	if copied == nil || copied.HasAttr(KindUncopiable) {
		return false
	}
	if !ev.Simulated {
		if sd := p.SummonData(); sd != nil {
			sd.Ability = copied.ID()
		}
	}
	ev.Announce("copyFaintedAllyAbility", knockedOut.Name(), copied.Name())
	return true
}

// NewCopyFaintedAllyAbility takes over the ability of an ally that faints.
func NewCopyFaintedAllyAbility() Attr {
	return &copyFaintedAllyAbility{attrBase: newBase(KindCopyFaintedAllyAbility, true)}
}

type postFaintContactDamage struct {
	attrBase
	ratio int
}

func (a *postFaintContactDamage) ApplyPostFaint(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	if attacker == nil || move == nil || !contact(ctx, ev, attacker, move) {
		return false
	}
	for _, q := range activeOnField(ev.Scene()) {
		if ev.Engine.HasAbilityWithAttr(ctx, q, KindFieldPreventExplosiveMoves) {
			return false
		}
	}
	if ev.Engine.HasAbilityWithAttr(ctx, attacker, KindBlockNonDirectDamage) {
		return false
	}
	ev.Queue(Damage{Target: attacker, Source: ev.Pokemon, Amount: int(math.Ceil(float64(attacker.MaxHP()) / float64(a.ratio)))})
	ev.say("postFaintContactDamage")
	return true
}

// NewPostFaintContactDamage hurts an attacker whose contact move knocked the holder out.
// A Pokemon on the field that prevents explosions also prevents this.
func NewPostFaintContactDamage(ratio int) Attr {
	return &postFaintContactDamage{attrBase: newBase(KindPostFaintContactDamage, true), ratio: ratio}
}

type postFaintHPDamage struct{ attrBase }

func (a *postFaintHPDamage) ApplyPostFaint(_ context.Context, ev *Event, attacker Pokemon, _ *dex.Move, _ dex.HitResult) bool {
	hit, ok := ev.Pokemon.LastHit()
	if attacker == nil || !ok || hit.Damage <= 0 {
		return false
	}
	ev.Queue(Damage{Target: attacker, Source: ev.Pokemon, Amount: hit.Damage})
	ev.say("postFaintHpDamage")
	return true
}

// NewPostFaintHPDamage deals the attacker as much damage as the final blow dealt the holder.
func NewPostFaintHPDamage() Attr {
	return &postFaintHPDamage{attrBase: newBase(KindPostFaintHPDamage, true)}
}

type postFaintClearWeather struct{ attrBase }

func (a *postFaintClearWeather) ApplyPostFaint(ctx context.Context, ev *Event, _ Pokemon, _ *dex.Move, _ dex.HitResult) bool {
	return clearPrimalWeather(ctx, ev, true)
}

// NewPostFaintClearWeather ends the holder's primal weather when it faints.
func NewPostFaintClearWeather() Attr {
	return &postFaintClearWeather{attrBase: newBase(KindPostFaintClearWeather, true)}
}

type postBattleLoot struct{ attrBase }

func (a *postBattleLoot) ApplyPostBattle(ctx context.Context, ev *Event) bool {
	loot := ev.Scene().PostBattleLoot()
	if len(loot) == 0 {
		return false
	}
	item := loot[ev.Rand(len(loot))]
	if ev.Simulated {
		return true
	}
	ok, awaited := await(ctx, ev, ev.Scene().ClaimLoot(ctx, ev.Pokemon, item))
	if !awaited || !ok {
		return false
	}
	ev.Announce("postBattleLoot", ev.Pokemon.Name(), item.Name)
	return true
}

// NewPostBattleLoot picks up one item dropped by a Pokemon knocked out this battle.
func NewPostBattleLoot() Attr { return &postBattleLoot{attrBase: newBase(KindPostBattleLoot, true)} }

// moneyMultiplier is the share of the wave's prize money scattered after a battle.
const moneyMultiplier = 0.2

type money struct{ attrBase }

func (a *money) ApplyPostBattle(_ context.Context, ev *Event) bool {
	if !ev.Simulated {
		ev.Scene().ScatterMoney(moneyMultiplier)
	}
	return true
}

// NewMoney scatters extra prize money after every battle the holder takes part in.
func NewMoney() Attr { return &money{attrBase: newBase(KindMoney, true)} }

type postDancingMove struct{ attrBase }

func (a *postDancingMove) ApplyPostMoveUsed(_ context.Context, ev *Event, move *dex.Move, source Pokemon, targets []Pokemon) bool {
	dancer := ev.Pokemon
	if move == nil || source == nil || samePokemon(source, dancer) || dancer.HasTag(dex.TagSemiInvulnerable) {
		return false
	}
	var to []Pokemon
	switch {
	case move.Target == dex.TargetUser || move.Target == dex.TargetUserSide:
		to = []Pokemon{dancer}
	case source.IsPlayer() == dancer.IsPlayer():
		to = targets
	default:
		to = []Pokemon{source}
	}
	ev.Queue(UseMove{User: dancer, Move: move, Targets: to})
	return true
}

// NewPostDancingMove makes the holder copy every dance move another Pokemon uses.
func NewPostDancingMove() Attr {
	return &postDancingMove{attrBase: newBase(KindPostDancingMove, true)}
}

type battleStatMultiplier struct {
	attrBase
	stat dex.BattleStat
	mult float64
	cond MoveCondition
}

func (a *battleStatMultiplier) ApplyBattleStat(ctx context.Context, ev *Event, stat dex.BattleStat, value *float64, move *dex.Move) bool {
	if stat != a.stat {
		return false
	}
	if a.cond != nil && (move == nil || !a.cond.Holds(ctx, ev.Engine, ev.Pokemon, nil, move)) {
		return false
	}
	*value *= a.mult
	return true
}

// NewBattleStatMultiplier multiplies the holder's stat, for moves matching cond when one is given.
// cond is checked with a nil defender.
func NewBattleStatMultiplier(stat dex.BattleStat, mult float64, cond MoveCondition) Attr {
	return &battleStatMultiplier{attrBase: newBase(KindBattleStatMultiplier, false), stat: stat, mult: mult, cond: cond}
}

type fieldMultiplyBattleStat struct {
	attrBase
	stat     dex.Stat
	mult     float64
	canStack bool
}

func (a *fieldMultiplyBattleStat) ApplyFieldBattleStat(_ context.Context, ev *Event, stat dex.Stat, value *float64, checked Pokemon, applied *bool) bool {
	if (!a.canStack && *applied) || stat != a.stat {
		return false
	}
	for _, passive := range []bool{false, true} {
		rec := ev.Engine.Ability(checked, passive)
		if rec == nil {
			continue
		}
		for _, other := range rec.AttrsOf(KindFieldMultiplyBattleStat) {
			if f, ok := other.(*fieldMultiplyBattleStat); ok && f.stat == stat {
				return false
			}
		}
	}
	*value *= a.mult
	*applied = true
	return true
}

// NewFieldMultiplyBattleStat multiplies a stat of every other Pokemon on the field that lacks the same effect.
// Without canStack only the first such ability applies to a given check.
func NewFieldMultiplyBattleStat(stat dex.Stat, mult float64, canStack bool) Attr {
	return &fieldMultiplyBattleStat{
		attrBase: newBase(KindFieldMultiplyBattleStat, false),
		stat:     stat,
		mult:     mult,
		canStack: canStack,
	}
}
