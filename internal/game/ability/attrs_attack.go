package ability

import (
	"context"
	"math"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// PreAttack attributes

// user returns the Pokemon using the move, defaulting to the holder.
func (a *AttackArgs) user(ev *Event) Pokemon {
	if a.User != nil {
		return a.User
	}
	return ev.Pokemon
}

type movePowerBoost struct {
	attrBase
	cond MoveCondition
	mult float64
}

func (a *movePowerBoost) ApplyPreAttack(ctx context.Context, ev *Event, args *AttackArgs) bool {
	if !samePokemon(args.user(ev), ev.Pokemon) {
		return false
	}
	if !a.cond.Holds(ctx, ev.Engine, ev.Pokemon, args.Defender, args.EffectiveMove()) {
		return false
	}
	args.Power *= a.mult
	return true
}

// NewMovePowerBoost multiplies the power of the holder's moves that satisfy cond.
func NewMovePowerBoost(cond MoveCondition, mult float64, show bool) Attr {
	return &movePowerBoost{attrBase: newBase(KindMovePowerBoost, show), cond: cond, mult: mult}
}

// NewMoveTypePowerBoost multiplies the power of the holder's moves of type t. A zero mult means 1.5.
func NewMoveTypePowerBoost(t dex.Type, mult float64) Attr {
	if mult == 0 {
		mult = 1.5
	}
	return &movePowerBoost{attrBase: newBase(KindMoveTypePowerBoost, true), cond: MoveTypeIs{Type: t}, mult: mult}
}

// NewLowHpMoveTypePowerBoost boosts the holder's moves of type t by half while it is at a third of its HP or less.
func NewLowHpMoveTypePowerBoost(t dex.Type) Attr {
	return &movePowerBoost{
		attrBase: withCond(newBase(KindLowHpMoveTypePowerBoost, true), HPRatioAtMost{Ratio: 0.33}),
		cond:     MoveTypeIs{Type: t},
		mult:     1.5,
	}
}

// PowerFunc computes a power multiplier for a move. 1 means no change.
type PowerFunc func(user, target Pokemon, move *dex.Move) float64

type variablePowerBoost struct {
	attrBase
	mult PowerFunc
}

func (a *variablePowerBoost) ApplyPreAttack(_ context.Context, ev *Event, args *AttackArgs) bool {
	if !samePokemon(args.user(ev), ev.Pokemon) {
		return false
	}
	m := a.mult(ev.Pokemon, args.Defender, args.EffectiveMove())
	if m == 1 {
		return false
	}
	args.Power *= m
	return true
}

// NewVariableMovePowerBoost multiplies the power of the holder's moves by what mult computes.
func NewVariableMovePowerBoost(mult PowerFunc, show bool) Attr {
	return &variablePowerBoost{attrBase: newBase(KindVariableMovePowerBoost, show), mult: mult}
}

// fieldScope is which users a field power boost reaches, relative to the holder.
type fieldScope int

const (
	scopeField fieldScope = iota
	scopeUserSide
	scopeAllies
)

type fieldPowerBoost struct {
	attrBase
	cond  MoveCondition
	mult  float64
	scope fieldScope
}

func (a *fieldPowerBoost) ApplyPreAttack(ctx context.Context, ev *Event, args *AttackArgs) bool {
	user := args.user(ev)
	holder := ev.Pokemon
	switch a.scope {
	case scopeUserSide:
		if user.IsPlayer() != holder.IsPlayer() {
			return false
		}
	case scopeAllies:
		if user.IsPlayer() != holder.IsPlayer() || samePokemon(user, holder) {
			return false
		}
	}
	if !a.cond.Holds(ctx, ev.Engine, user, args.Defender, args.EffectiveMove()) {
		return false
	}
	args.Power *= a.mult
	return true
}

// NewFieldMovePowerBoost multiplies the power of any active Pokemon's moves that satisfy cond.
func NewFieldMovePowerBoost(cond MoveCondition, mult float64) Attr {
	return &fieldPowerBoost{attrBase: newBase(KindFieldMovePowerBoost, false), cond: cond, mult: mult}
}

// NewFieldMoveTypePowerBoost multiplies the power of any active Pokemon's moves of type t. A zero mult means 1.5.
func NewFieldMoveTypePowerBoost(t dex.Type, mult float64) Attr {
	if mult == 0 {
		mult = 1.5
	}
	return &fieldPowerBoost{attrBase: newBase(KindFieldMoveTypePowerBoost, false), cond: MoveTypeIs{Type: t}, mult: mult}
}

// NewUserFieldMoveTypePowerBoost multiplies the power of moves of type t used from the holder's side.
func NewUserFieldMoveTypePowerBoost(t dex.Type, mult float64) Attr {
	if mult == 0 {
		mult = 1.5
	}
	return &fieldPowerBoost{
		attrBase: newBase(KindUserFieldMoveTypePowerBoost, false),
		cond:     MoveTypeIs{Type: t},
		mult:     mult,
		scope:    scopeUserSide,
	}
}

// NewAllyMoveCategoryPowerBoost multiplies the power of the holder's allies' moves in one of cats.
func NewAllyMoveCategoryPowerBoost(cats []dex.MoveCategory, mult float64) Attr {
	return &fieldPowerBoost{
		attrBase: newBase(KindAllyMoveCategoryPowerBoost, false),
		cond:     MoveCategoryIs{Categories: cats},
		mult:     mult,
		scope:    scopeAllies,
	}
}

type moveTypeChange struct {
	attrBase
	newType dex.Type
	mult    float64
	cond    MoveCondition
}

func (a *moveTypeChange) ApplyPreAttack(ctx context.Context, ev *Event, args *AttackArgs) bool {
	if !samePokemon(args.user(ev), ev.Pokemon) {
		return false
	}
	if a.cond == nil || !a.cond.Holds(ctx, ev.Engine, ev.Pokemon, args.Defender, args.EffectiveMove()) {
		return false
	}
	args.Type = a.newType
	args.Power *= a.mult
	return true
}

// NewMoveTypeChange turns the holder's moves that satisfy cond into newType and multiplies their power.
func NewMoveTypeChange(newType dex.Type, mult float64, cond MoveCondition) Attr {
	return &moveTypeChange{attrBase: newBase(KindMoveTypeChange, true), newType: newType, mult: mult, cond: cond}
}

type pokemonTypeChange struct{ attrBase }

func (a *pokemonTypeChange) ApplyPreAttack(_ context.Context, ev *Event, args *AttackArgs) bool {
	p := ev.Pokemon
	if !samePokemon(args.user(ev), p) || args.Move.ID == "struggle" {
		return false
	}
	types := p.Types()
	if len(types) == 1 && types[0] == args.Type {
		return false
	}
	ev.Queue(TypeChange{Target: p, Types: []dex.Type{args.Type}})
	ev.Say("pokemonTypeChange", p.Name(), args.Type.String())
	return true
}

// NewPokemonTypeChange changes the holder's type to that of the move it is about to use.
func NewPokemonTypeChange() Attr {
	return &pokemonTypeChange{attrBase: newBase(KindPokemonTypeChange, true)}
}

// secondStrikeExcluded lists moves that never gain a second strike.
var secondStrikeExcluded = []string{"fling", "uproar", "rollout", "ice_ball", "endeavor"}

type addSecondStrike struct {
	attrBase
	mult float64
}

func (a *addSecondStrike) ApplyPreAttack(_ context.Context, ev *Event, args *AttackArgs) bool {
	m := args.Move
	if !samePokemon(args.user(ev), ev.Pokemon) || args.Targets != 1 || !m.IsDamaging() {
		return false
	}
	if m.IsMultiHit() || m.HasFlag(dex.FlagExplosive) {
		return false
	}
	for _, id := range secondStrikeExcluded {
		if m.ID == id {
			return false
		}
	}
	if args.Hits > 0 {
		args.Hits *= 2
		ev.SetShowAbility(true)
	}
	args.StrikeMultiplier *= a.mult
	return true
}

// NewAddSecondStrike makes the holder's single-target, single-hit attacks strike twice.
// Added strikes deal mult times the damage.
func NewAddSecondStrike(mult float64) Attr {
	return &addSecondStrike{attrBase: newBase(KindAddSecondStrike, false), mult: mult}
}

type damageBoost struct {
	attrBase
	mult float64
	cond MoveCondition
}

func (a *damageBoost) ApplyPreAttack(ctx context.Context, ev *Event, args *AttackArgs) bool {
	if args.Damage <= 0 || !samePokemon(args.user(ev), ev.Pokemon) {
		return false
	}
	if !a.cond.Holds(ctx, ev.Engine, ev.Pokemon, args.Defender, args.EffectiveMove()) {
		return false
	}
	args.Damage = math.Floor(args.Damage * a.mult)
	return true
}

// NewDamageBoost multiplies the final damage of the holder's moves that satisfy cond.
func NewDamageBoost(mult float64, cond MoveCondition) Attr {
	return &damageBoost{attrBase: newBase(KindDamageBoost, true), mult: mult, cond: cond}
}

// PostAttack attributes

type postAttackStealHeldItem struct {
	attrBase
	cond MoveCondition
}

func (a *postAttackStealHeldItem) ApplyPostAttack(ctx context.Context, ev *Event, s StrikeArgs) bool {
	if ev.Simulated || !s.Move.IsDamaging() || !s.Result.Damaged() || s.Defender == nil {
		return false
	}
	if a.cond != nil && !a.cond.Holds(ctx, ev.Engine, ev.Pokemon, s.Defender, s.Move) {
		return false
	}
	return stealItem(ctx, ev, s.Defender, ev.Pokemon)
}

// NewPostAttackStealHeldItem takes an item from the target of the holder's damaging move. A nil cond always holds.
func NewPostAttackStealHeldItem(cond MoveCondition) Attr {
	return &postAttackStealHeldItem{attrBase: newBase(KindPostAttackStealHeldItem, true), cond: cond}
}

// secondaryEffectReaches reports whether a secondary effect of the holder's move may affect the defender.
func secondaryEffectReaches(ctx context.Context, ev *Event, s StrikeArgs, contactRequired bool) bool {
	d := s.Defender
	if d == nil || samePokemon(d, ev.Pokemon) || !s.Move.IsDamaging() {
		return false
	}
	if ev.Engine.HasAbilityWithAttr(ctx, d, KindIgnoreMoveEffects) {
		return false
	}
	return !contactRequired || Contact{}.Holds(ctx, ev.Engine, ev.Pokemon, d, s.Move)
}

type postAttackApplyStatus struct {
	attrBase
	contactRequired bool
	chance          int
	effects         []dex.StatusEffect
}

func (a *postAttackApplyStatus) ApplyPostAttack(ctx context.Context, ev *Event, s StrikeArgs) bool {
	if !secondaryEffectReaches(ctx, ev, s, a.contactRequired) || s.Defender.Status() != dex.StatusNone {
		return false
	}
	if !ev.Roll(a.chance) {
		return false
	}
	effect := a.effects[ev.Rand(len(a.effects))]
	if !s.Defender.CanSetStatus(ctx, effect, ev.Pokemon) {
		return false
	}
	ev.Queue(SetStatus{Target: s.Defender, Source: ev.Pokemon, Effect: effect})
	return true
}

// NewPostAttackApplyStatusEffect inflicts one of effects on the target of the holder's damaging move
// with the given percent chance.
func NewPostAttackApplyStatusEffect(contactRequired bool, chance int, effects ...dex.StatusEffect) Attr {
	return &postAttackApplyStatus{
		attrBase:        newBase(KindPostAttackApplyStatusEffect, true),
		contactRequired: contactRequired,
		chance:          chance,
		effects:         effects,
	}
}

// NewPostAttackContactApplyStatusEffect is NewPostAttackApplyStatusEffect restricted to contact moves.
func NewPostAttackContactApplyStatusEffect(chance int, effects ...dex.StatusEffect) Attr {
	return &postAttackApplyStatus{
		attrBase:        newBase(KindPostAttackContactApplyStatusEffect, true),
		contactRequired: true,
		chance:          chance,
		effects:         effects,
	}
}

// ChanceFunc computes a percent chance for an effect of move.
type ChanceFunc func(user, target Pokemon, move *dex.Move) int

type postAttackApplyTag struct {
	attrBase
	contactRequired bool
	chance          ChanceFunc
	tags            []dex.BattlerTagType
}

func (a *postAttackApplyTag) ApplyPostAttack(ctx context.Context, ev *Event, s StrikeArgs) bool {
	if !secondaryEffectReaches(ctx, ev, s, a.contactRequired) {
		return false
	}
	if !ev.Roll(a.chance(ev.Pokemon, s.Defender, s.Move)) {
		return false
	}
	tag := a.tags[ev.Rand(len(a.tags))]
	if !s.Defender.CanAddTag(tag) {
		return false
	}
	ev.Queue(AddTag{Target: s.Defender, Source: ev.Pokemon, Tag: tag})
	return true
}

// NewPostAttackApplyBattlerTag attaches one of tags to the target of the holder's damaging move,
// with the chance computed per move.
func NewPostAttackApplyBattlerTag(contactRequired bool, chance ChanceFunc, tags ...dex.BattlerTagType) Attr {
	return &postAttackApplyTag{
		attrBase:        newBase(KindPostAttackApplyBattlerTag, true),
		contactRequired: contactRequired,
		chance:          chance,
		tags:            tags,
	}
}

type confusionOnStatus struct {
	attrBase
	effects []dex.StatusEffect
}

func (a *confusionOnStatus) ApplyPostAttack(_ context.Context, ev *Event, s StrikeArgs) bool {
	d := s.Defender
	if d == nil || d.IsFainted() || !dex.ContainsStatus(a.effects, s.Inflicted) || !d.CanAddTag(dex.TagConfused) {
		return false
	}
	ev.Queue(AddTag{Target: d, Source: ev.Pokemon, Tag: dex.TagConfused, Turns: 2 + ev.Rand(3)})
	return true
}

// NewConfusionOnStatusEffect confuses targets the holder's move just inflicted one of effects on.
func NewConfusionOnStatusEffect(effects ...dex.StatusEffect) Attr {
	return &confusionOnStatus{attrBase: newBase(KindConfusionOnStatusEffect, true), effects: effects}
}
