package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Attr is one atomic behavior attached to an ability.
// Every Attr also implements exactly one category interface below, matching Kind().Category().
// Attrs are immutable once their record is built.
type Attr interface {
	Kind() Kind
	// ShowsAbility reports whether a successful application reveals the ability by default.
	ShowsAbility() bool
	// Condition returns the extra gate attached by the builder, or nil.
	Condition() Condition
	base() *attrBase
}

type attrBase struct {
	kind Kind
	show bool
	cond Condition
}

func newBase(kind Kind, show bool) attrBase {
	return attrBase{kind: kind, show: show}
}

func (a *attrBase) Kind() Kind           { return a.kind }
func (a *attrBase) ShowsAbility() bool   { return a.show }
func (a *attrBase) Condition() Condition { return a.cond }
func (a *attrBase) base() *attrBase      { return a }

// GenericAttr handles one-shot queries made through Engine.Apply.
type GenericAttr interface {
	Attr
	Apply(ctx context.Context, ev *Event, q *Query) bool
}

// PostBattleInitAttr runs once for every party member when a battle starts, before the leads enter.
type PostBattleInitAttr interface {
	Attr
	ApplyPostBattleInit(ctx context.Context, ev *Event) bool
}

// PostSummonAttr runs when the holder enters the field, at most once per ability per summon.
type PostSummonAttr interface {
	Attr
	ApplyPostSummon(ctx context.Context, ev *Event) bool
}

// PreSwitchOutAttr runs just before the holder leaves the field by switching.
type PreSwitchOutAttr interface {
	Attr
	ApplyPreSwitchOut(ctx context.Context, ev *Event) bool
}

// PreDefendAttr runs on the defender before a move resolves and may rewrite the DefendArgs holders.
type PreDefendAttr interface {
	Attr
	ApplyPreDefend(ctx context.Context, ev *Event, d *DefendArgs) bool
}

// PostDefendAttr runs on the defender after a move hit it.
type PostDefendAttr interface {
	Attr
	ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, result dex.HitResult) bool
}

// PreAttackAttr runs on the attacker before damage is calculated and may rewrite the AttackArgs holders.
type PreAttackAttr interface {
	Attr
	ApplyPreAttack(ctx context.Context, ev *Event, a *AttackArgs) bool
}

// PostAttackAttr runs on the attacker after each target it struck.
type PostAttackAttr interface {
	Attr
	ApplyPostAttack(ctx context.Context, ev *Event, s StrikeArgs) bool
}

// PreStatChangeAttr runs before another Pokemon lowers one of the holder's stats. Setting *cancelled blocks the drop.
type PreStatChangeAttr interface {
	Attr
	ApplyPreStatChange(ctx context.Context, ev *Event, stat dex.BattleStat, cancelled *bool) bool
}

// PostStatChangeAttr runs after the holder's stat stages changed.
type PostStatChangeAttr interface {
	Attr
	ApplyPostStatChange(ctx context.Context, ev *Event, stats []dex.BattleStat, levels int, selfTarget bool) bool
}

// PreSetStatusAttr runs before a status is inflicted on the holder. Setting *cancelled blocks it.
type PreSetStatusAttr interface {
	Attr
	ApplyPreSetStatus(ctx context.Context, ev *Event, effect dex.StatusEffect, cancelled *bool) bool
}

// PreApplyBattlerTagAttr runs before a battler tag is added to the holder. Setting *cancelled blocks it.
type PreApplyBattlerTagAttr interface {
	Attr
	ApplyPreApplyBattlerTag(ctx context.Context, ev *Event, tag dex.BattlerTagType, cancelled *bool) bool
}

// PreWeatherEffectAttr runs before weather damages the holder. Setting *cancelled spares it.
type PreWeatherEffectAttr interface {
	Attr
	ApplyPreWeatherEffect(ctx context.Context, ev *Event, weather dex.WeatherType, cancelled *bool) bool
}

// PostTurnAttr runs for every active Pokemon at the end of each turn.
type PostTurnAttr interface {
	Attr
	ApplyPostTurn(ctx context.Context, ev *Event) bool
}

// PostWeatherLapseAttr runs at the end of a turn while weather is active.
type PostWeatherLapseAttr interface {
	Attr
	ApplyPostWeatherLapse(ctx context.Context, ev *Event, weather dex.WeatherType) bool
}

// PostWeatherChangeAttr runs for every active Pokemon after the weather changed.
type PostWeatherChangeAttr interface {
	Attr
	ApplyPostWeatherChange(ctx context.Context, ev *Event, weather dex.WeatherType) bool
}

// PostTerrainChangeAttr runs for every active Pokemon after the terrain changed.
type PostTerrainChangeAttr interface {
	Attr
	ApplyPostTerrainChange(ctx context.Context, ev *Event, terrain dex.TerrainType) bool
}

// PostBiomeChangeAttr runs for every active Pokemon when the battle moves to another biome.
type PostBiomeChangeAttr interface {
	Attr
	ApplyPostBiomeChange(ctx context.Context, ev *Event) bool
}

// CheckTrappedAttr decides whether the holder keeps other from switching out.
type CheckTrappedAttr interface {
	Attr
	ApplyCheckTrapped(ctx context.Context, ev *Event, other Pokemon, trapped *bool) bool
}

// PostVictoryAttr runs on a Pokemon whose move just knocked out another.
type PostVictoryAttr interface {
	Attr
	ApplyPostVictory(ctx context.Context, ev *Event) bool
}

// PostKnockOutAttr runs on every active Pokemon after another one fainted.
type PostKnockOutAttr interface {
	Attr
	ApplyPostKnockOut(ctx context.Context, ev *Event, knockedOut Pokemon) bool
}

// PostFaintAttr runs on the holder after it fainted. attacker and move are nil for indirect faints.
type PostFaintAttr interface {
	Attr
	ApplyPostFaint(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, result dex.HitResult) bool
}

// PostBattleAttr runs on the player's healthy Pokemon after the battle ends.
type PostBattleAttr interface {
	Attr
	ApplyPostBattle(ctx context.Context, ev *Event) bool
}

// PostMoveUsedAttr runs on the other active Pokemon after a move was used.
type PostMoveUsedAttr interface {
	Attr
	ApplyPostMoveUsed(ctx context.Context, ev *Event, move *dex.Move, source Pokemon, targets []Pokemon) bool
}

// BattleStatMultiplierAttr scales one of the holder's battle stats through value.
type BattleStatMultiplierAttr interface {
	Attr
	ApplyBattleStat(ctx context.Context, ev *Event, stat dex.BattleStat, value *float64, move *dex.Move) bool
}

// FieldBattleStatMultiplierAttr scales a stat of checked, another Pokemon on the field, through value.
type FieldBattleStatMultiplierAttr interface {
	Attr
	ApplyFieldBattleStat(ctx context.Context, ev *Event, stat dex.Stat, value *float64, checked Pokemon, applied *bool) bool
}

// implementsCategory reports whether a carries the apply method of category c.
func implementsCategory(a Attr, c Category) bool {
	var ok bool
	switch c {
	case CategoryGeneric:
		_, ok = a.(GenericAttr)
	case CategoryPostBattleInit:
		_, ok = a.(PostBattleInitAttr)
	case CategoryPostSummon:
		_, ok = a.(PostSummonAttr)
	case CategoryPreSwitchOut:
		_, ok = a.(PreSwitchOutAttr)
	case CategoryPreDefend:
		_, ok = a.(PreDefendAttr)
	case CategoryPostDefend:
		_, ok = a.(PostDefendAttr)
	case CategoryPreAttack:
		_, ok = a.(PreAttackAttr)
	case CategoryPostAttack:
		_, ok = a.(PostAttackAttr)
	case CategoryPreStatChange:
		_, ok = a.(PreStatChangeAttr)
	case CategoryPostStatChange:
		_, ok = a.(PostStatChangeAttr)
	case CategoryPreSetStatus:
		_, ok = a.(PreSetStatusAttr)
	case CategoryPreApplyBattlerTag:
		_, ok = a.(PreApplyBattlerTagAttr)
	case CategoryPreWeatherEffect:
		_, ok = a.(PreWeatherEffectAttr)
	case CategoryPostTurn:
		_, ok = a.(PostTurnAttr)
	case CategoryPostWeatherLapse:
		_, ok = a.(PostWeatherLapseAttr)
	case CategoryPostWeatherChange:
		_, ok = a.(PostWeatherChangeAttr)
	case CategoryPostTerrainChange:
		_, ok = a.(PostTerrainChangeAttr)
	case CategoryPostBiomeChange:
		_, ok = a.(PostBiomeChangeAttr)
	case CategoryCheckTrapped:
		_, ok = a.(CheckTrappedAttr)
	case CategoryPostVictory:
		_, ok = a.(PostVictoryAttr)
	case CategoryPostKnockOut:
		_, ok = a.(PostKnockOutAttr)
	case CategoryPostFaint:
		_, ok = a.(PostFaintAttr)
	case CategoryPostBattle:
		_, ok = a.(PostBattleAttr)
	case CategoryPostMoveUsed:
		_, ok = a.(PostMoveUsedAttr)
	case CategoryBattleStatMultiplier:
		_, ok = a.(BattleStatMultiplierAttr)
	case CategoryFieldBattleStatMultiplier:
		_, ok = a.(FieldBattleStatMultiplierAttr)
	}
	return ok
}

// marker is an attribute with no behavior of its own. Other attributes and the
// scheduler look for it with Record.HasAttr.
type marker struct {
	attrBase
}

func (m *marker) Apply(context.Context, *Event, *Query) bool { return false }

func newMarker(k Kind, show bool) *marker { return &marker{attrBase: newBase(k, show)} }

// NewUncopiable marks an ability that copy effects cannot take.
func NewUncopiable() Attr { return newMarker(KindUncopiable, false) }

// NewUnsuppressable marks an ability that suppression effects cannot disable.
func NewUnsuppressable() Attr { return newMarker(KindUnsuppressable, false) }

// NewUnswappable marks an ability that swap and give effects cannot move.
func NewUnswappable() Attr { return newMarker(KindUnswappable, false) }

// NewNoTransform marks an ability a transforming Pokemon does not take on.
func NewNoTransform() Attr { return newMarker(KindNoTransform, false) }

// NewNoFusion marks an ability that cannot be fused.
func NewNoFusion() Attr { return newMarker(KindNoFusion, false) }

// NewBlockRedirect lets the holder's moves ignore redirection.
func NewBlockRedirect() Attr { return newMarker(KindBlockRedirect, true) }

// NewAlwaysHit makes every move the holder uses or receives skip the accuracy check.
func NewAlwaysHit() Attr { return newMarker(KindAlwaysHit, true) }

// NewIgnoreContact stops the holder's moves from counting as contact.
func NewIgnoreContact() Attr { return newMarker(KindIgnoreContact, true) }

// NewIgnoreProtectOnContact lets the holder's contact moves pass through protection.
func NewIgnoreProtectOnContact() Attr { return newMarker(KindIgnoreProtectOnContact, true) }

// NewIncreasePP makes the holder's opponents spend an extra PP per move.
func NewIncreasePP() Attr { return newMarker(KindIncreasePP, true) }
