package ability

import (
	"context"
	"math"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// cancelAttr sets Query.Cancelled unconditionally. The scheduler reads Cancelled as
// "the effect this kind guards against does not happen".
type cancelAttr struct {
	attrBase
	key string
}

func (a *cancelAttr) Apply(_ context.Context, ev *Event, q *Query) bool {
	q.Cancelled = true
	if a.key != "" {
		ev.say(a.key)
	}
	return true
}

func newCancel(k Kind, show bool, key string) *cancelAttr {
	return &cancelAttr{attrBase: newBase(k, show), key: key}
}

// NewBlockRecoilDamage prevents recoil damage from the holder's moves.
func NewBlockRecoilDamage() Attr { return newCancel(KindBlockRecoilDamage, true, "blockRecoilDamage") }

// NewBlockCrit prevents critical hits against the holder.
func NewBlockCrit() Attr { return newCancel(KindBlockCrit, true, "") }

// NewBlockNonDirectDamage prevents damage that does not come from a move hitting the holder.
func NewBlockNonDirectDamage() Attr { return newCancel(KindBlockNonDirectDamage, true, "") }

// NewBlockOneHitKO makes one-hit KO moves fail against the holder.
func NewBlockOneHitKO() Attr { return newCancel(KindBlockOneHitKO, true, "") }

// NewIntimidateImmunity makes the holder ignore intimidation.
func NewIntimidateImmunity() Attr {
	return newCancel(KindIntimidateImmunity, false, "intimidateImmunity")
}

// NewBlockItemTheft protects the holder's items.
func NewBlockItemTheft() Attr { return newCancel(KindBlockItemTheft, true, "blockItemTheft") }

// NewForceSwitchOutImmunity stops moves from forcing the holder out.
func NewForceSwitchOutImmunity() Attr { return newCancel(KindForceSwitchOutImmunity, true, "") }

// NewBypassBurnDamageReduction keeps a burned holder's physical damage whole.
func NewBypassBurnDamageReduction() Attr { return newCancel(KindBypassBurnDamageReduction, false, "") }

// NewPreventBerryUse stops the holder's opponents from eating berries.
func NewPreventBerryUse() Attr { return newCancel(KindPreventBerryUse, true, "") }

// NewFieldPreventExplosiveMoves makes explosive moves fail while the holder is on the field.
func NewFieldPreventExplosiveMoves() Attr { return newCancel(KindFieldPreventExplosiveMoves, true, "") }

// flagAttr sets Query.Flag.
type flagAttr struct {
	attrBase
}

func (a *flagAttr) Apply(_ context.Context, _ *Event, q *Query) bool {
	q.Flag = true
	return true
}

// NewBonusCrit raises the holder's critical-hit stage by one. The scheduler reads Flag.
func NewBonusCrit() Attr { return &flagAttr{attrBase: newBase(KindBonusCrit, true)} }

// NewSyncEncounterNature makes wild encounters share the holder's nature.
func NewSyncEncounterNature() Attr {
	return &flagAttr{attrBase: newBase(KindSyncEncounterNature, false)}
}

// doubleBattleChance halves the odds denominator of meeting a double battle.
type doubleBattleChance struct{ attrBase }

func (a *doubleBattleChance) Apply(_ context.Context, _ *Event, q *Query) bool {
	q.Amount = max(q.Amount/2, 1)
	return true
}

// NewDoubleBattleChance makes double battles more likely. Amount is the one-in-N chance.
func NewDoubleBattleChance() Attr {
	return &doubleBattleChance{attrBase: newBase(KindDoubleBattleChance, false)}
}

type incrementMovePriority struct {
	attrBase
	cond MoveCondition
	inc  int
}

func (a *incrementMovePriority) Apply(ctx context.Context, ev *Event, q *Query) bool {
	if q.Move == nil || !a.cond.Holds(ctx, ev.Engine, ev.Pokemon, nil, q.Move) {
		return false
	}
	q.Amount += a.inc
	return true
}

// NewIncrementMovePriority raises the priority of the holder's moves that satisfy cond.
// Query.Move is the move and Amount its priority.
func NewIncrementMovePriority(cond MoveCondition, inc int) Attr {
	return &incrementMovePriority{attrBase: newBase(KindIncrementMovePriority, true), cond: cond, inc: inc}
}

// zeroStage makes the holder ignore a stat stage. Amount is the stage.
type zeroStage struct{ attrBase }

func (a *zeroStage) Apply(_ context.Context, _ *Event, q *Query) bool {
	q.Amount = 0
	return true
}

// NewIgnoreOpponentStatChanges makes the holder ignore its opponents' stat stages.
func NewIgnoreOpponentStatChanges() Attr {
	return &zeroStage{attrBase: newBase(KindIgnoreOpponentStatChanges, false)}
}

// NewIgnoreOpponentEvasion makes the holder ignore its targets' evasion stage.
func NewIgnoreOpponentEvasion() Attr {
	return &zeroStage{attrBase: newBase(KindIgnoreOpponentEvasion, false)}
}

type multCrit struct {
	attrBase
	mult float64
}

func (a *multCrit) Apply(_ context.Context, _ *Event, q *Query) bool {
	if q.Value <= 1 {
		return false
	}
	q.Value *= a.mult
	return true
}

// NewMultCrit scales the critical-hit damage multiplier held in Value.
func NewMultCrit(mult float64) Attr {
	return &multCrit{attrBase: newBase(KindMultCrit, true), mult: mult}
}

type conditionalCrit struct {
	attrBase
	cond MoveCondition
}

func (a *conditionalCrit) Apply(ctx context.Context, ev *Event, q *Query) bool {
	if q.Move == nil || !a.cond.Holds(ctx, ev.Engine, ev.Pokemon, q.Opponent, q.Move) {
		return false
	}
	q.Flag = true
	return true
}

// NewConditionalCrit guarantees a critical hit when cond holds for the holder's move against Opponent.
func NewConditionalCrit(cond MoveCondition) Attr {
	return &conditionalCrit{attrBase: newBase(KindConditionalCrit, true), cond: cond}
}

type redirectTypeMove struct {
	attrBase
	moveType dex.Type
}

func (a *redirectTypeMove) Apply(_ context.Context, ev *Event, q *Query) bool {
	if q.Move == nil || q.Move.Target != dex.TargetNearOther || q.Move.Type != a.moveType {
		return false
	}
	if q.Target != nil && q.Target.ID() == ev.Pokemon.ID() {
		return false
	}
	q.Target = ev.Pokemon
	return true
}

// NewRedirectTypeMove draws single-target moves of moveType to the holder. Target holds the chosen target.
func NewRedirectTypeMove(moveType dex.Type) Attr {
	return &redirectTypeMove{attrBase: newBase(KindRedirectTypeMove, true), moveType: moveType}
}

type reduceStatusDuration struct {
	attrBase
	effect dex.StatusEffect
}

func (a *reduceStatusDuration) Apply(_ context.Context, _ *Event, q *Query) bool {
	if q.Status != a.effect {
		return false
	}
	q.Amount /= 2
	return true
}

// NewReduceStatusEffectDuration halves the remaining turns of effect. Amount holds the turn count.
func NewReduceStatusEffectDuration(effect dex.StatusEffect) Attr {
	return &reduceStatusDuration{attrBase: newBase(KindReduceStatusEffectDuration, true), effect: effect}
}

// selfStatChange queues a stat change on the holder.
type selfStatChange struct {
	attrBase
	stats  []dex.BattleStat
	levels int
}

func (a *selfStatChange) Apply(_ context.Context, ev *Event, _ *Query) bool {
	ev.Queue(StatStageChange{Target: ev.Pokemon, Source: ev.Pokemon, SelfTarget: true, Stats: a.stats, Levels: a.levels})
	return true
}

// NewFlinchStatChange changes the holder's stats when it flinches.
func NewFlinchStatChange(stats []dex.BattleStat, levels int) Attr {
	return &selfStatChange{attrBase: newBase(KindFlinchStatChange, true), stats: stats, levels: levels}
}

// scaleValue multiplies Query.Value.
type scaleValue struct {
	attrBase
	mult float64
}

func (a *scaleValue) Apply(_ context.Context, _ *Event, q *Query) bool {
	q.Value *= a.mult
	return true
}

// NewWeightMultiplier scales the holder's weight, held in Value.
func NewWeightMultiplier(mult float64) Attr {
	return &scaleValue{attrBase: newBase(KindWeightMultiplier, true), mult: mult}
}

// NewDoubleBerryEffect doubles the strength of berries the holder eats, held in Value.
func NewDoubleBerryEffect() Attr {
	return &scaleValue{attrBase: newBase(KindDoubleBerryEffect, true), mult: 2}
}

type runSuccess struct{ attrBase }

func (a *runSuccess) Apply(_ context.Context, _ *Event, q *Query) bool {
	q.Amount = 256
	return true
}

// NewRunSuccess guarantees escape. Amount is the escape score out of 256.
func NewRunSuccess() Attr { return &runSuccess{attrBase: newBase(KindRunSuccess, true)} }

type statChangeMultiplier struct {
	attrBase
	mult int
}

func (a *statChangeMultiplier) Apply(_ context.Context, _ *Event, q *Query) bool {
	q.Levels *= a.mult
	return true
}

// NewStatChangeMultiplier scales every stage change the holder receives. Levels holds the change.
func NewStatChangeMultiplier(mult int) Attr {
	return &statChangeMultiplier{attrBase: newBase(KindStatChangeMultiplier, true), mult: mult}
}

type statChangeCopy struct{ attrBase }

func (a *statChangeCopy) Apply(_ context.Context, ev *Event, q *Query) bool {
	if len(q.Stats) == 0 || q.Levels == 0 {
		return false
	}
	ev.Queue(StatStageChange{
		Target:     ev.Pokemon,
		Source:     ev.Pokemon,
		SelfTarget: true,
		Stats:      q.Stats,
		Levels:     q.Levels,
		Uncopyable: true,
	})
	return true
}

// NewStatChangeCopy makes the holder copy stat raises its opponents give themselves.
// Stats and Levels describe the change being copied.
func NewStatChangeCopy() Attr { return &statChangeCopy{attrBase: newBase(KindStatChangeCopy, true)} }

type moveAbilityBypass struct {
	attrBase
	cond MoveCondition
}

func (a *moveAbilityBypass) Apply(ctx context.Context, ev *Event, q *Query) bool {
	if a.cond != nil && (q.Move == nil || !a.cond.Holds(ctx, ev.Engine, ev.Pokemon, nil, q.Move)) {
		return false
	}
	q.Flag = true
	return true
}

// NewMoveAbilityBypass lets the holder's moves ignore ignorable abilities. A nil cond applies to every move.
func NewMoveAbilityBypass(cond MoveCondition) Attr {
	return &moveAbilityBypass{attrBase: newBase(KindMoveAbilityBypass, false), cond: cond}
}

type suppressFieldAbilities struct{ attrBase }

func (a *suppressFieldAbilities) Apply(_ context.Context, _ *Event, q *Query) bool {
	if q.Ability == nil || q.Ability.HasAttr(KindUnsuppressable) || q.Ability.HasAttr(KindSuppressFieldAbilities) {
		return false
	}
	q.Cancelled = true
	return true
}

// NewSuppressFieldAbilities disables every other ability on the field. Query.Ability is the ability being checked.
func NewSuppressFieldAbilities() Attr {
	return &suppressFieldAbilities{attrBase: newBase(KindSuppressFieldAbilities, false)}
}

type ignoreTypeImmunity struct {
	attrBase
	defenderType dex.Type
	moveTypes    []dex.Type
}

func (a *ignoreTypeImmunity) Apply(_ context.Context, _ *Event, q *Query) bool {
	if q.DefenderType != a.defenderType || !dex.ContainsType(a.moveTypes, q.Type) {
		return false
	}
	q.Cancelled = true
	return true
}

// NewIgnoreTypeImmunity lets moves of moveTypes hit defenders of defenderType. Type is the move type.
func NewIgnoreTypeImmunity(defenderType dex.Type, moveTypes ...dex.Type) Attr {
	return &ignoreTypeImmunity{attrBase: newBase(KindIgnoreTypeImmunity, true), defenderType: defenderType, moveTypes: moveTypes}
}

type ignoreTypeStatusImmunity struct {
	attrBase
	effects       []dex.StatusEffect
	defenderTypes []dex.Type
}

func (a *ignoreTypeStatusImmunity) Apply(_ context.Context, _ *Event, q *Query) bool {
	if !dex.ContainsStatus(a.effects, q.Status) || !dex.ContainsType(a.defenderTypes, q.DefenderType) {
		return false
	}
	q.Cancelled = true
	return true
}

// NewIgnoreTypeStatusEffectImmunity lets the holder inflict effects on defenders whose type would resist them.
func NewIgnoreTypeStatusEffectImmunity(effects []dex.StatusEffect, defenderTypes []dex.Type) Attr {
	return &ignoreTypeStatusImmunity{
		attrBase:      newBase(KindIgnoreTypeStatusEffectImmunity, true),
		effects:       effects,
		defenderTypes: defenderTypes,
	}
}

type blockStatusDamage struct {
	attrBase
	effects []dex.StatusEffect
}

func (a *blockStatusDamage) Apply(_ context.Context, ev *Event, q *Query) bool {
	if !dex.ContainsStatus(a.effects, ev.Pokemon.Status()) {
		return false
	}
	q.Cancelled = true
	return true
}

// NewBlockStatusDamage prevents end-of-turn damage from the listed statuses.
func NewBlockStatusDamage(effects ...dex.StatusEffect) Attr {
	return &blockStatusDamage{attrBase: newBase(KindBlockStatusDamage, false), effects: effects}
}

type postIntimidateStatChange struct {
	attrBase
	stats      []dex.BattleStat
	levels     int
	overwrites bool
}

func (a *postIntimidateStatChange) Apply(_ context.Context, ev *Event, q *Query) bool {
	ev.Queue(StatStageChange{Target: ev.Pokemon, Source: ev.Pokemon, Stats: a.stats, Levels: a.levels})
	q.Cancelled = a.overwrites
	return true
}

// NewPostIntimidateStatChange changes the holder's stats when it is intimidated.
// With overwrites set the intimidation itself is cancelled.
func NewPostIntimidateStatChange(stats []dex.BattleStat, levels int, overwrites bool) Attr {
	return &postIntimidateStatChange{
		attrBase:   newBase(KindPostIntimidateStatChange, true),
		stats:      stats,
		levels:     levels,
		overwrites: overwrites,
	}
}

type stabBoost struct{ attrBase }

func (a *stabBoost) Apply(_ context.Context, _ *Event, q *Query) bool {
	if q.Value <= 1 {
		return false
	}
	q.Value += 0.5
	return true
}

// NewStabBoost strengthens the same-type bonus held in Value.
func NewStabBoost() Attr { return &stabBoost{attrBase: newBase(KindStabBoost, true)} }

type maxMultiHit struct{ attrBase }

func (a *maxMultiHit) Apply(_ context.Context, _ *Event, q *Query) bool {
	hits := 5
	if q.Move != nil && q.Move.MaxHits > 1 {
		hits = q.Move.MaxHits
	}
	q.Amount = hits
	return true
}

// NewMaxMultiHit makes the holder's multi-strike moves hit the maximum number of times. Amount holds the count.
func NewMaxMultiHit() Attr { return &maxMultiHit{attrBase: newBase(KindMaxMultiHit, true)} }

type reduceBerryUseThreshold struct{ attrBase }

func (a *reduceBerryUseThreshold) Apply(_ context.Context, ev *Event, q *Query) bool {
	ratio := hpRatio(ev.Pokemon)
	if q.Value >= ratio {
		return false
	}
	q.Value *= 2
	return q.Value >= ratio
}

// NewReduceBerryUseThreshold lets the holder eat pinch berries earlier. Value holds the HP ratio threshold.
func NewReduceBerryUseThreshold() Attr {
	return &reduceBerryUseThreshold{attrBase: newBase(KindReduceBerryUseThreshold, true)}
}

type healFromBerryUse struct {
	attrBase
	percent float64
}

func (a *healFromBerryUse) Apply(_ context.Context, ev *Event, _ *Query) bool {
	p := ev.Pokemon
	amount := max(int(math.Floor(float64(p.MaxHP())*a.percent)), 1)
	ev.heal(p, amount, "healFromBerryUse")
	return true
}

// NewHealFromBerryUse heals the holder by a fraction of its max HP whenever it eats a berry.
func NewHealFromBerryUse(percent float64) Attr {
	return &healFromBerryUse{attrBase: newBase(KindHealFromBerryUse, true), percent: min(max(percent, 0), 1)}
}

type bypassSpeedChance struct {
	attrBase
	chance int
}

func (a *bypassSpeedChance) Apply(_ context.Context, ev *Event, q *Query) bool {
	if q.Flag || q.Move == nil || !q.Move.IsDamaging() {
		return false
	}
	if !ev.Roll(a.chance) {
		return false
	}
	q.Flag = true
	ev.Say("quickDraw", ev.Pokemon.Name())
	return true
}

// NewBypassSpeedChance gives the holder's damaging moves a chance to go first in their priority bracket.
// Move is the selected move and Flag is set when the chance succeeds.
func NewBypassSpeedChance(chance int) Attr {
	return &bypassSpeedChance{attrBase: newBase(KindBypassSpeedChance, true), chance: chance}
}

type moveEffectChanceMultiplier struct {
	attrBase
	mult float64
}

func (a *moveEffectChanceMultiplier) Apply(_ context.Context, _ *Event, q *Query) bool {
	if q.Value <= 0 {
		return false
	}
	q.Value = min(q.Value*a.mult, 100)
	return true
}

// NewMoveEffectChanceMultiplier scales the secondary-effect chance of the holder's moves, held in Value.
// A multiplier of zero removes secondary effects.
func NewMoveEffectChanceMultiplier(mult float64) Attr {
	return &moveEffectChanceMultiplier{attrBase: newBase(KindMoveEffectChanceMultiplier, true), mult: mult}
}
