package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"go.uber.org/zap"
)

// policy controls how a dispatch presents successful applications.
type policy struct {
	// quiet suppresses ability indicators and trigger messages.
	quiet bool
	// instant shows the ability indicator ahead of queued actions.
	instant bool
	// simulated forbids side effects and bookkeeping.
	simulated bool
	// oncePerSummon skips an ability whose PostSummon attributes already applied
	// since its owner entered the field.
	oncePerSummon bool
}

// dispatch applies every matching attribute of p's primary then passive ability.
//
// Precondition: apply asserts the category interface of c.
// Postcondition: Returns a non-nil error only when ctx ended while an attribute awaited a side effect,
// or when ctx was already done before an attribute ran.
func (e *Engine) dispatch(ctx context.Context, p Pokemon, c Category, kinds []Kind, pol policy, apply func(ev *Event, a Attr) bool) error {
	for _, passive := range [...]bool{false, true} {
		rec := e.Ability(p, passive)
		if rec == nil {
			continue
		}
		attrs := rec.match(c, kinds)
		if len(attrs) == 0 {
			continue
		}
		if pol.oncePerSummon {
			if sd := p.SummonData(); sd != nil && sd.HasPostSummoned(rec.ID()) {
				continue
			}
		}
		if !p.CanApplyAbility(ctx, passive) {
			continue
		}
		for _, a := range attrs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if cond := a.Condition(); cond != nil && !cond.Holds(ctx, e, p) {
				continue
			}
			ev := &Event{
				Engine:    e,
				Pokemon:   p,
				Passive:   passive,
				Simulated: pol.simulated,
				Record:    rec,
				Category:  c,
				attr:      a,
				quiet:     pol.quiet,
				instant:   pol.instant,
			}
			ok := apply(ev, a)
			if ev.err != nil {
				e.logger.Warn("ability: dispatch aborted",
					zap.String("ability", rec.ID().String()),
					zap.String("category", c.String()),
					zap.String("pokemon", p.Name()),
					zap.Error(ev.err),
				)
				return ev.err
			}
			if !ok {
				continue
			}
			if !pol.simulated {
				e.record(p, rec, pol.oncePerSummon)
			}
			if !pol.quiet {
				ev.announceAbility()
				if msg := ev.Message(); msg != "" {
					p.Scene().Queue(Message{Text: msg})
				}
			}
			e.logger.Debug("ability applied",
				zap.String("ability", rec.ID().String()),
				zap.String("attr", a.Kind().String()),
				zap.String("category", c.String()),
				zap.String("pokemon", p.Name()),
				zap.Bool("passive", passive),
				zap.Bool("simulated", pol.simulated),
			)
		}
	}
	return nil
}

// record notes that rec applied for p this summon and this battle.
// postSummon also marks rec as done for the current summon's PostSummon dispatch.
func (e *Engine) record(p Pokemon, rec *Record, postSummon bool) {
	if sd := p.SummonData(); sd != nil {
		sd.AbilitiesApplied = appendUnique(sd.AbilitiesApplied, rec.ID())
		if postSummon {
			sd.PostSummoned = appendUnique(sd.PostSummoned, rec.ID())
		}
	}
	if bd := p.BattleData(); bd != nil {
		bd.AbilitiesApplied = appendUnique(bd.AbilitiesApplied, rec.ID())
		bd.AbilityRevealed = true
	}
}

// Apply runs Generic attributes against q.
func (e *Engine) Apply(ctx context.Context, p Pokemon, q *Query, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryGeneric, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(GenericAttr).Apply(ctx, ev, q)
	})
}

// ApplySimulated runs Generic attributes against q without side effects or bookkeeping.
func (e *Engine) ApplySimulated(ctx context.Context, p Pokemon, q *Query, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryGeneric, kinds, policy{quiet: true, simulated: true}, func(ev *Event, a Attr) bool {
		return a.(GenericAttr).Apply(ctx, ev, q)
	})
}

// PostBattleInit runs once per Pokemon when a battle starts.
func (e *Engine) PostBattleInit(ctx context.Context, p Pokemon, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostBattleInit, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostBattleInitAttr).ApplyPostBattleInit(ctx, ev)
	})
}

// PostSummon runs when p enters the field. An ability that already applied since
// p entered the field is skipped, so repeated calls without a new summon do nothing.
func (e *Engine) PostSummon(ctx context.Context, p Pokemon, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostSummon, kinds, policy{oncePerSummon: true}, func(ev *Event, a Attr) bool {
		return a.(PostSummonAttr).ApplyPostSummon(ctx, ev)
	})
}

// PreSwitchOut runs before p leaves the field.
func (e *Engine) PreSwitchOut(ctx context.Context, p Pokemon, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPreSwitchOut, kinds, policy{instant: true}, func(ev *Event, a Attr) bool {
		return a.(PreSwitchOutAttr).ApplyPreSwitchOut(ctx, ev)
	})
}

// PreDefend runs on the defender before a move resolves against it. A simulated
// dispatch is quiet and changes nothing but d.
func (e *Engine) PreDefend(ctx context.Context, p Pokemon, d *DefendArgs, kinds ...Kind) error {
	pol := policy{quiet: d.Simulated, simulated: d.Simulated}
	return e.dispatch(ctx, p, CategoryPreDefend, kinds, pol, func(ev *Event, a Attr) bool {
		return a.(PreDefendAttr).ApplyPreDefend(ctx, ev, d)
	})
}

// PostDefend runs on the defender after a move hit it.
func (e *Engine) PostDefend(ctx context.Context, p, attacker Pokemon, move *dex.Move, result dex.HitResult, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostDefend, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostDefendAttr).ApplyPostDefend(ctx, ev, attacker, move, result)
	})
}

// PreAttack runs on the attacker before damage is calculated.
func (e *Engine) PreAttack(ctx context.Context, p Pokemon, args *AttackArgs, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPreAttack, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PreAttackAttr).ApplyPreAttack(ctx, ev, args)
	})
}

// PostAttack runs on the attacker after its move resolved against one target.
func (e *Engine) PostAttack(ctx context.Context, p Pokemon, s StrikeArgs, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostAttack, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostAttackAttr).ApplyPostAttack(ctx, ev, s)
	})
}

// PreStatChange runs before a stat of p is lowered by another Pokemon.
func (e *Engine) PreStatChange(ctx context.Context, p Pokemon, stat dex.BattleStat, cancelled *bool, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPreStatChange, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PreStatChangeAttr).ApplyPreStatChange(ctx, ev, stat, cancelled)
	})
}

// PostStatChange runs after p's stat stages changed.
func (e *Engine) PostStatChange(ctx context.Context, p Pokemon, stats []dex.BattleStat, levels int, selfTarget bool, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostStatChange, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostStatChangeAttr).ApplyPostStatChange(ctx, ev, stats, levels, selfTarget)
	})
}

// PreSetStatus runs before a status is inflicted on p. The immunity is only announced
// when simulated is set: the scheduler checks with simulated set when a status move is
// about to fail, and applies secondary effects quietly. Bookkeeping happens either way.
func (e *Engine) PreSetStatus(ctx context.Context, p Pokemon, effect dex.StatusEffect, simulated bool, cancelled *bool, kinds ...Kind) error {
	pol := policy{quiet: !simulated}
	return e.dispatch(ctx, p, CategoryPreSetStatus, kinds, pol, func(ev *Event, a Attr) bool {
		return a.(PreSetStatusAttr).ApplyPreSetStatus(ctx, ev, effect, cancelled)
	})
}

// PreApplyBattlerTag runs before a volatile tag is attached to p.
func (e *Engine) PreApplyBattlerTag(ctx context.Context, p Pokemon, tag dex.BattlerTagType, cancelled *bool, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPreApplyBattlerTag, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PreApplyBattlerTagAttr).ApplyPreApplyBattlerTag(ctx, ev, tag, cancelled)
	})
}

// PreWeatherEffect runs before weather affects p.
func (e *Engine) PreWeatherEffect(ctx context.Context, p Pokemon, weather dex.WeatherType, cancelled *bool, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPreWeatherEffect, kinds, policy{instant: true}, func(ev *Event, a Attr) bool {
		return a.(PreWeatherEffectAttr).ApplyPreWeatherEffect(ctx, ev, weather, cancelled)
	})
}

// PostTurn runs at the end of every turn p is on the field.
func (e *Engine) PostTurn(ctx context.Context, p Pokemon, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostTurn, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostTurnAttr).ApplyPostTurn(ctx, ev)
	})
}

// PostWeatherLapse runs at the end of a turn with active weather.
func (e *Engine) PostWeatherLapse(ctx context.Context, p Pokemon, weather dex.WeatherType, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostWeatherLapse, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostWeatherLapseAttr).ApplyPostWeatherLapse(ctx, ev, weather)
	})
}

// PostWeatherChange runs after the weather changed.
func (e *Engine) PostWeatherChange(ctx context.Context, p Pokemon, weather dex.WeatherType, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostWeatherChange, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostWeatherChangeAttr).ApplyPostWeatherChange(ctx, ev, weather)
	})
}

// PostTerrainChange runs after the terrain changed.
func (e *Engine) PostTerrainChange(ctx context.Context, p Pokemon, terrain dex.TerrainType, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostTerrainChange, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostTerrainChangeAttr).ApplyPostTerrainChange(ctx, ev, terrain)
	})
}

// PostBiomeChange runs after the battle moved to a new biome.
func (e *Engine) PostBiomeChange(ctx context.Context, p Pokemon, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostBiomeChange, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostBiomeChangeAttr).ApplyPostBiomeChange(ctx, ev)
	})
}

// CheckTrapped runs on each opponent of other to decide whether other may switch out.
func (e *Engine) CheckTrapped(ctx context.Context, p, other Pokemon, trapped *bool, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryCheckTrapped, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(CheckTrappedAttr).ApplyCheckTrapped(ctx, ev, other, trapped)
	})
}

// PostVictory runs on the Pokemon whose attack knocked out an opponent.
func (e *Engine) PostVictory(ctx context.Context, p Pokemon, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostVictory, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostVictoryAttr).ApplyPostVictory(ctx, ev)
	})
}

// PostKnockOut runs on every other active Pokemon when knockedOut faints.
func (e *Engine) PostKnockOut(ctx context.Context, p, knockedOut Pokemon, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostKnockOut, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostKnockOutAttr).ApplyPostKnockOut(ctx, ev, knockedOut)
	})
}

// PostFaint runs on p right after it fainted. Only BypassFaint abilities are eligible.
func (e *Engine) PostFaint(ctx context.Context, p, attacker Pokemon, move *dex.Move, result dex.HitResult, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostFaint, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostFaintAttr).ApplyPostFaint(ctx, ev, attacker, move, result)
	})
}

// PostBattle runs on each player Pokemon after a won battle.
func (e *Engine) PostBattle(ctx context.Context, p Pokemon, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostBattle, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostBattleAttr).ApplyPostBattle(ctx, ev)
	})
}

// PostMoveUsed runs on every other active Pokemon after source used move.
func (e *Engine) PostMoveUsed(ctx context.Context, p Pokemon, move *dex.Move, source Pokemon, targets []Pokemon, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryPostMoveUsed, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(PostMoveUsedAttr).ApplyPostMoveUsed(ctx, ev, move, source, targets)
	})
}

// BattleStatMultiplier scales one of p's battle stats while it is calculated.
func (e *Engine) BattleStatMultiplier(ctx context.Context, p Pokemon, stat dex.BattleStat, value *float64, move *dex.Move, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryBattleStatMultiplier, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(BattleStatMultiplierAttr).ApplyBattleStat(ctx, ev, stat, value, move)
	})
}

// FieldBattleStatMultiplier lets p's ability scale a stat of checked, another Pokemon on the field.
// applied accumulates across the field so non-stacking effects apply once.
func (e *Engine) FieldBattleStatMultiplier(ctx context.Context, p Pokemon, stat dex.Stat, value *float64, checked Pokemon, applied *bool, kinds ...Kind) error {
	return e.dispatch(ctx, p, CategoryFieldBattleStatMultiplier, kinds, policy{}, func(ev *Event, a Attr) bool {
		return a.(FieldBattleStatMultiplierAttr).ApplyFieldBattleStat(ctx, ev, stat, value, checked, applied)
	})
}
