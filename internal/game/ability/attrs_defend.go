package ability

import (
	"context"
	"math"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// PreDefend attributes

type preDefendFullHPEndure struct{ attrBase }

func (a *preDefendFullHPEndure) ApplyPreDefend(_ context.Context, ev *Event, d *DefendArgs) bool {
	p := ev.Pokemon
	if !isFullHP(p) || p.MaxHP() <= 1 || d.Damage < p.HP() {
		return false
	}
	d.Damage = p.HP() - 1
	if !d.Simulated {
		ev.say("sturdy")
	}
	return true
}

// NewPreDefendFullHpEndure leaves the holder at 1 HP when a hit at full HP would knock it out.
// DefendArgs.Damage is rewritten.
func NewPreDefendFullHpEndure() Attr {
	return &preDefendFullHPEndure{attrBase: newBase(KindPreDefendFullHpEndure, true)}
}

type typeImmunity struct {
	attrBase
	immuneType dex.Type
}

// immune zeroes the type multiplier when the move is of the immune type.
func (a *typeImmunity) immune(ev *Event, d *DefendArgs) bool {
	if d.Move.Target.IsFieldTarget() || samePokemon(d.Attacker, ev.Pokemon) || d.Type != a.immuneType {
		return false
	}
	d.TypeMultiplier = 0
	return true
}

func (a *typeImmunity) ApplyPreDefend(_ context.Context, ev *Event, d *DefendArgs) bool {
	return a.immune(ev, d)
}

func withCond(b attrBase, cond Condition) attrBase {
	b.cond = cond
	return b
}

// NewTypeImmunity makes the holder immune to moves of type t while cond holds. A nil cond always holds.
func NewTypeImmunity(t dex.Type, cond Condition) Attr {
	return &typeImmunity{attrBase: withCond(newBase(KindTypeImmunity, true), cond), immuneType: t}
}

type typeImmunityHeal struct{ typeImmunity }

func (a *typeImmunityHeal) ApplyPreDefend(_ context.Context, ev *Event, d *DefendArgs) bool {
	if !a.immune(ev, d) {
		return false
	}
	p := ev.Pokemon
	if !isFullHP(p) && !d.Simulated {
		ev.heal(p, max(p.MaxHP()/4, 1), "typeImmunityHeal")
	}
	return true
}

// NewTypeImmunityHeal makes the holder immune to moves of type t and heals a quarter of its HP instead.
func NewTypeImmunityHeal(t dex.Type) Attr {
	return &typeImmunityHeal{typeImmunity{attrBase: newBase(KindTypeImmunityHeal, true), immuneType: t}}
}

type typeImmunityStatChange struct {
	typeImmunity
	stat   dex.BattleStat
	levels int
}

func (a *typeImmunityStatChange) ApplyPreDefend(_ context.Context, ev *Event, d *DefendArgs) bool {
	if !a.immune(ev, d) {
		return false
	}
	d.Cancelled = true
	p := ev.Pokemon
	ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: []dex.BattleStat{a.stat}, Levels: a.levels})
	return true
}

// NewTypeImmunityStatChange makes the holder immune to moves of type t and changes one of its stats instead.
func NewTypeImmunityStatChange(t dex.Type, stat dex.BattleStat, levels int, cond Condition) Attr {
	return &typeImmunityStatChange{
		typeImmunity: typeImmunity{attrBase: withCond(newBase(KindTypeImmunityStatChange, true), cond), immuneType: t},
		stat:         stat,
		levels:       levels,
	}
}

type typeImmunityAddTag struct {
	typeImmunity
	tag   dex.BattlerTagType
	turns int
}

func (a *typeImmunityAddTag) ApplyPreDefend(_ context.Context, ev *Event, d *DefendArgs) bool {
	if !a.immune(ev, d) {
		return false
	}
	d.Cancelled = true
	p := ev.Pokemon
	ev.Queue(AddTag{Target: p, Source: p, Tag: a.tag, Turns: a.turns})
	return true
}

// NewTypeImmunityAddBattlerTag makes the holder immune to moves of type t and attaches tag to it instead.
func NewTypeImmunityAddBattlerTag(t dex.Type, tag dex.BattlerTagType, turns int, cond Condition) Attr {
	return &typeImmunityAddTag{
		typeImmunity: typeImmunity{attrBase: withCond(newBase(KindTypeImmunityAddBattlerTag, true), cond), immuneType: t},
		tag:          tag,
		turns:        turns,
	}
}

type nonSuperEffectiveImmunity struct{ attrBase }

func (a *nonSuperEffectiveImmunity) ApplyPreDefend(_ context.Context, ev *Event, d *DefendArgs) bool {
	if !d.Move.IsDamaging() || ev.Pokemon.Effectiveness(d.Type) >= 2 {
		return false
	}
	d.Cancelled = true
	d.TypeMultiplier = 0
	ev.say("nonSuperEffectiveImmunity")
	return true
}

// NewNonSuperEffectiveImmunity makes the holder immune to damaging moves that are not super effective.
func NewNonSuperEffectiveImmunity() Attr {
	return &nonSuperEffectiveImmunity{attrBase: newBase(KindNonSuperEffectiveImmunity, true)}
}

type moveImmunity struct {
	attrBase
	cond MoveCondition
}

func (a *moveImmunity) immune(ctx context.Context, ev *Event, d *DefendArgs) bool {
	if !a.cond.Holds(ctx, ev.Engine, d.Attacker, ev.Pokemon, d.EffectiveMove()) {
		return false
	}
	d.Cancelled = true
	ev.Say("moveImmunity", ev.Pokemon.Name())
	return true
}

func (a *moveImmunity) ApplyPreDefend(ctx context.Context, ev *Event, d *DefendArgs) bool {
	return a.immune(ctx, ev, d)
}

// NewMoveImmunity cancels moves satisfying cond against the holder.
func NewMoveImmunity(cond MoveCondition) Attr {
	return &moveImmunity{attrBase: newBase(KindMoveImmunity, true), cond: cond}
}

type moveImmunityStatChange struct {
	moveImmunity
	stat   dex.BattleStat
	levels int
}

func (a *moveImmunityStatChange) ApplyPreDefend(ctx context.Context, ev *Event, d *DefendArgs) bool {
	if !a.immune(ctx, ev, d) {
		return false
	}
	p := ev.Pokemon
	ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: []dex.BattleStat{a.stat}, Levels: a.levels})
	return true
}

// NewMoveImmunityStatChange cancels moves satisfying cond and changes one of the holder's stats.
func NewMoveImmunityStatChange(cond MoveCondition, stat dex.BattleStat, levels int) Attr {
	return &moveImmunityStatChange{
		moveImmunity: moveImmunity{attrBase: newBase(KindMoveImmunityStatChange, true), cond: cond},
		stat:         stat,
		levels:       levels,
	}
}

type receivedDamageMultiplier struct {
	attrBase
	cond MoveCondition
	mult float64
}

func (a *receivedDamageMultiplier) ApplyPreDefend(ctx context.Context, ev *Event, d *DefendArgs) bool {
	if !a.cond.Holds(ctx, ev.Engine, d.Attacker, ev.Pokemon, d.EffectiveMove()) {
		return false
	}
	d.Damage = int(math.Floor(float64(d.Damage) * a.mult))
	return true
}

// NewReceivedMoveDamageMultiplier scales the damage of moves satisfying cond against the holder.
func NewReceivedMoveDamageMultiplier(cond MoveCondition, mult float64) Attr {
	return &receivedDamageMultiplier{attrBase: newBase(KindReceivedMoveDamageMultiplier, true), cond: cond, mult: mult}
}

// NewReceivedTypeDamageMultiplier scales the damage of moves of type t against the holder.
func NewReceivedTypeDamageMultiplier(t dex.Type, mult float64) Attr {
	return &receivedDamageMultiplier{
		attrBase: newBase(KindReceivedTypeDamageMultiplier, true),
		cond:     MoveTypeIs{Type: t},
		mult:     mult,
	}
}

type damageToOne struct {
	attrBase
	cond MoveCondition
}

func (a *damageToOne) ApplyPreDefend(ctx context.Context, ev *Event, d *DefendArgs) bool {
	if !a.cond.Holds(ctx, ev.Engine, d.Attacker, ev.Pokemon, d.EffectiveMove()) {
		return false
	}
	d.Damage = ev.Pokemon.MaxHP() / 8
	return true
}

// NewPreDefendMoveDamageToOne caps the damage of moves satisfying cond at an eighth of the holder's max HP.
func NewPreDefendMoveDamageToOne(cond MoveCondition) Attr {
	return &damageToOne{attrBase: newBase(KindPreDefendMoveDamageToOne, true), cond: cond}
}

type iceFaceBlockPhysical struct {
	attrBase
	cond MoveCondition
	mult float64
}

func (a *iceFaceBlockPhysical) ApplyPreDefend(ctx context.Context, ev *Event, d *DefendArgs) bool {
	if !a.cond.Holds(ctx, ev.Engine, d.Attacker, ev.Pokemon, d.EffectiveMove()) {
		return false
	}
	d.Damage = int(math.Floor(float64(d.Damage) * a.mult))
	ev.Queue(RemoveTag{Target: ev.Pokemon, Tag: dex.TagIceFace})
	ev.Say("iceFaceAvoidedDamage", ev.Pokemon.Name(), ev.AbilityName())
	return true
}

// NewIceFaceBlockPhysical scales the damage of moves satisfying cond and breaks the ice face.
func NewIceFaceBlockPhysical(cond MoveCondition, mult float64) Attr {
	return &iceFaceBlockPhysical{attrBase: newBase(KindIceFaceBlockPhysical, true), cond: cond, mult: mult}
}

type fieldPriorityMoveImmunity struct{ attrBase }

func (a *fieldPriorityMoveImmunity) ApplyPreDefend(ctx context.Context, ev *Event, d *DefendArgs) bool {
	m := d.Move
	if m.Target == dex.TargetUser || m.Target == dex.TargetAlly || isMultiTarget(m.Target) {
		return false
	}
	q := &Query{Move: m, Amount: m.Priority}
	if d.Attacker != nil {
		if err := ev.Engine.ApplySimulated(ctx, d.Attacker, q, KindIncrementMovePriority); err != nil {
			ev.err = err
			return false
		}
	}
	if q.Amount <= 0 {
		return false
	}
	d.Cancelled = true
	return true
}

func isMultiTarget(t dex.MoveTarget) bool {
	switch t {
	case dex.TargetAllNearEnemies, dex.TargetAllNearOthers, dex.TargetUserSide, dex.TargetEnemySide, dex.TargetBothSides:
		return true
	}
	return false
}

// NewFieldPriorityMoveImmunity cancels single-target moves with raised priority against the holder.
func NewFieldPriorityMoveImmunity() Attr {
	return &fieldPriorityMoveImmunity{attrBase: newBase(KindFieldPriorityMoveImmunity, true)}
}

type wonderSkin struct{ attrBase }

func (a *wonderSkin) ApplyPreDefend(_ context.Context, _ *Event, d *DefendArgs) bool {
	if d.Move.Category != dex.CategoryStatus || d.Accuracy < 50 {
		return false
	}
	d.Accuracy = 50
	return true
}

// NewWonderSkin lowers the accuracy of status moves used on the holder to 50.
func NewWonderSkin() Attr { return &wonderSkin{attrBase: newBase(KindWonderSkin, true)} }

type ignoreMoveEffects struct{ attrBase }

func (a *ignoreMoveEffects) ApplyPreDefend(_ context.Context, _ *Event, d *DefendArgs) bool {
	if d.EffectChance <= 0 {
		return false
	}
	d.EffectChance = 0
	return true
}

// NewIgnoreMoveEffects blocks the secondary effects of moves used on the holder.
func NewIgnoreMoveEffects() Attr {
	return &ignoreMoveEffects{attrBase: newBase(KindIgnoreMoveEffects, true)}
}

type preDefendFormChange struct {
	attrBase
	form FormFunc
}

func (a *preDefendFormChange) ApplyPreDefend(_ context.Context, ev *Event, _ *DefendArgs) bool {
	return ev.changeForm(a.form)
}

// NewPreDefendFormChange sets the holder's form before a move resolves against it.
func NewPreDefendFormChange(form FormFunc) Attr {
	return &preDefendFormChange{attrBase: newBase(KindPreDefendFormChange, true), form: form}
}

// PostDefend attributes

type postDefendDisguise struct{ attrBase }

func (a *postDefendDisguise) ApplyPostDefend(_ context.Context, ev *Event, _ Pokemon, move *dex.Move, _ dex.HitResult) bool {
	p := ev.Pokemon
	bd := p.BattleData()
	if p.FormIndex() != 0 || bd == nil || bd.HitCount == 0 || !move.IsDamaging() {
		return false
	}
	dealt := 0
	if hit, ok := p.LastHit(); ok {
		dealt = hit.Damage
	}
	recoil := int(math.Ceil(float64(p.MaxHP())/8 - float64(dealt)))
	if recoil <= 0 {
		return false
	}
	ev.Queue(Damage{Target: p, Source: p, Amount: recoil})
	ev.Announce("postDefendDisguise", p.Name())
	return true
}

// NewPostDefendDisguise costs the holder a share of its HP when its disguise takes a hit.
func NewPostDefendDisguise() Attr {
	return &postDefendDisguise{attrBase: newBase(KindPostDefendDisguise, true)}
}

type postDefendFormChange struct {
	attrBase
	form FormFunc
}

func (a *postDefendFormChange) ApplyPostDefend(_ context.Context, ev *Event, _ Pokemon, _ *dex.Move, _ dex.HitResult) bool {
	return ev.changeForm(a.form)
}

// NewPostDefendFormChange sets the holder's form after a move hit it.
func NewPostDefendFormChange(form FormFunc) Attr {
	return &postDefendFormChange{attrBase: newBase(KindPostDefendFormChange, true), form: form}
}

func contact(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move) bool {
	return Contact{}.Holds(ctx, ev.Engine, attacker, ev.Pokemon, move)
}

type postDefendContactDamage struct {
	attrBase
	ratio int
}

func (a *postDefendContactDamage) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	if !contact(ctx, ev, attacker, move) || ev.Engine.HasAbilityWithAttr(ctx, attacker, KindBlockNonDirectDamage) {
		return false
	}
	ev.Queue(Damage{Target: attacker, Source: ev.Pokemon, Amount: int(math.Ceil(float64(attacker.MaxHP()) / float64(a.ratio)))})
	ev.say("postDefendContactDamage")
	return true
}

// NewPostDefendContactDamage hurts attackers that make contact by 1/ratio of their max HP.
func NewPostDefendContactDamage(ratio int) Attr {
	return &postDefendContactDamage{attrBase: newBase(KindPostDefendContactDamage, true), ratio: ratio}
}

type postDefendPerishSong struct {
	attrBase
	turns int
}

func (a *postDefendPerishSong) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	p := ev.Pokemon
	if !contact(ctx, ev, attacker, move) || p.HasTag(dex.TagPerishSong) || attacker.HasTag(dex.TagPerishSong) {
		return false
	}
	ev.Queue(AddTag{Target: attacker, Source: p, Tag: dex.TagPerishSong, Turns: a.turns})
	ev.Queue(AddTag{Target: p, Source: p, Tag: dex.TagPerishSong, Turns: a.turns})
	ev.say("perishBody")
	return true
}

// NewPostDefendPerishSong starts a perish count on both the holder and an attacker that made contact.
func NewPostDefendPerishSong(turns int) Attr {
	return &postDefendPerishSong{attrBase: newBase(KindPostDefendPerishSong, true), turns: turns}
}

type postDefendWeatherChange struct {
	attrBase
	weather dex.WeatherType
	cond    MoveCondition
}

func (a *postDefendWeatherChange) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	if a.cond != nil && !a.cond.Holds(ctx, ev.Engine, attacker, ev.Pokemon, move) {
		return false
	}
	if ev.Scene().Weather().IsImmutable() {
		return false
	}
	return ev.setWeather(ctx, a.weather)
}

// NewPostDefendWeatherChange sets the weather after a move satisfying cond hit the holder. A nil cond always holds.
func NewPostDefendWeatherChange(w dex.WeatherType, cond MoveCondition) Attr {
	return &postDefendWeatherChange{attrBase: newBase(KindPostDefendWeatherChange, true), weather: w, cond: cond}
}

type postDefendAbilitySwap struct{ attrBase }

func (a *postDefendAbilitySwap) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	if !contact(ctx, ev, attacker, move) {
		return false
	}
	theirs := ev.Engine.Ability(attacker, false)
	if theirs == nil || theirs.HasAttr(KindUnswappable) {
		return false
	}
	ours, their := ev.Pokemon.SummonData(), attacker.SummonData()
	if ours == nil || their == nil {
		return false
	}
	mine := ev.Record.ID()
	their.Ability = mine
	ours.Ability = theirs.ID()
	ev.Say("postDefendAbilitySwap", ev.Pokemon.Name())
	return true
}

// NewPostDefendAbilitySwap swaps abilities with an attacker that made contact.
func NewPostDefendAbilitySwap() Attr {
	return &postDefendAbilitySwap{attrBase: newBase(KindPostDefendAbilitySwap, true)}
}

type postDefendAbilityGive struct{ attrBase }

func (a *postDefendAbilityGive) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	if !contact(ctx, ev, attacker, move) {
		return false
	}
	theirs := ev.Engine.Ability(attacker, false)
	if theirs != nil && (theirs.HasAttr(KindUnsuppressable) || theirs.HasAttr(KindPostDefendAbilityGive)) {
		return false
	}
	sd := attacker.SummonData()
	if sd == nil {
		return false
	}
	sd.Ability = ev.Record.ID()
	ev.say("postDefendAbilityGive")
	return true
}

// NewPostDefendAbilityGive replaces the ability of an attacker that made contact with the holder's own.
func NewPostDefendAbilityGive() Attr {
	return &postDefendAbilityGive{attrBase: newBase(KindPostDefendAbilityGive, true)}
}

type postDefendMoveDisable struct {
	attrBase
	chance int
}

func (a *postDefendMoveDisable) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	if attacker.HasTag(dex.TagDisabled) || !contact(ctx, ev, attacker, move) {
		return false
	}
	if a.chance >= 0 && !ev.Roll(a.chance) {
		return false
	}
	ev.Queue(DisableMove{Target: attacker, Move: move, Turns: 4})
	ev.Say("postDefendMoveDisable", attacker.Name(), move.Name)
	return true
}

// NewPostDefendMoveDisable disables the contact move that hit the holder, with the given percent chance.
// A negative chance always succeeds.
func NewPostDefendMoveDisable(chance int) Attr {
	return &postDefendMoveDisable{attrBase: newBase(KindPostDefendMoveDisable, true), chance: chance}
}

type postDefendStatChange struct {
	attrBase
	cond       MoveCondition
	stat       dex.BattleStat
	levels     int
	selfTarget bool
	allOthers  bool
}

func (a *postDefendStatChange) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	p := ev.Pokemon
	if !a.cond.Holds(ctx, ev.Engine, attacker, p, move) {
		return false
	}
	stats := []dex.BattleStat{a.stat}
	if a.allOthers {
		others := p.Opponents()
		if ally := p.Ally(); ally != nil {
			others = append(others, ally)
		}
		for _, o := range active(others) {
			ev.Queue(StatStageChange{Target: o, Source: p, Stats: stats, Levels: a.levels})
		}
		return true
	}
	target := attacker
	if a.selfTarget {
		target = p
	}
	ev.Queue(StatStageChange{Target: target, Source: p, SelfTarget: a.selfTarget, Stats: stats, Levels: a.levels})
	return true
}

// NewPostDefendStatChange changes a stat after a move satisfying cond hit the holder.
// The holder's stat changes with selfTarget, every other active Pokemon's with allOthers, the attacker's otherwise.
func NewPostDefendStatChange(cond MoveCondition, stat dex.BattleStat, levels int, selfTarget, allOthers bool) Attr {
	return &postDefendStatChange{
		attrBase:   newBase(KindPostDefendStatChange, true),
		cond:       cond,
		stat:       stat,
		levels:     levels,
		selfTarget: selfTarget,
		allOthers:  allOthers,
	}
}

type postDefendHPGatedStatChange struct {
	attrBase
	cond   MoveCondition
	gate   float64
	stats  []dex.BattleStat
	levels int
}

func (a *postDefendHPGatedStatChange) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	p := ev.Pokemon
	gate := int(math.Ceil(float64(p.MaxHP()) * a.gate))
	received := 0
	if hit, ok := p.LastHit(); ok {
		received = hit.Damage
	}
	if !a.cond.Holds(ctx, ev.Engine, attacker, p, move) || p.HP() > gate || p.HP()+received <= gate {
		return false
	}
	ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: a.stats, Levels: a.levels})
	return true
}

// NewPostDefendHpGatedStatChange changes the holder's stats when a hit drops its HP across gate, a max-HP ratio.
func NewPostDefendHpGatedStatChange(cond MoveCondition, gate float64, stats []dex.BattleStat, levels int) Attr {
	return &postDefendHPGatedStatChange{
		attrBase: newBase(KindPostDefendHpGatedStatChange, true),
		cond:     cond,
		gate:     gate,
		stats:    stats,
		levels:   levels,
	}
}

type postDefendArenaTrapTag struct {
	attrBase
	cond MoveCondition
	tag  dex.ArenaTagType
}

func (a *postDefendArenaTrapTag) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	p := ev.Pokemon
	if !a.cond.Holds(ctx, ev.Engine, attacker, p, move) {
		return false
	}
	ev.Queue(AddArenaTag{Tag: a.tag, Source: p, PlayerSide: !p.IsPlayer()})
	return true
}

// NewPostDefendApplyArenaTrapTag lays an entry hazard on the opposing side after a move satisfying cond hit the holder.
// The scheduler ignores the request once the hazard has all its layers.
func NewPostDefendApplyArenaTrapTag(cond MoveCondition, tag dex.ArenaTagType) Attr {
	return &postDefendArenaTrapTag{attrBase: newBase(KindPostDefendApplyArenaTrapTag, true), cond: cond, tag: tag}
}

type postDefendBattlerTag struct {
	attrBase
	cond MoveCondition
	tag  dex.BattlerTagType
}

func (a *postDefendBattlerTag) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	p := ev.Pokemon
	if !a.cond.Holds(ctx, ev.Engine, attacker, p, move) {
		return false
	}
	if !p.HasTag(a.tag) {
		ev.Queue(AddTag{Target: p, Source: p, Tag: a.tag})
		ev.Announce("windPowerCharged", p.Name(), move.Name)
	}
	return true
}

// NewPostDefendApplyBattlerTag attaches tag to the holder after a move satisfying cond hit it.
func NewPostDefendApplyBattlerTag(cond MoveCondition, tag dex.BattlerTagType) Attr {
	return &postDefendBattlerTag{attrBase: newBase(KindPostDefendApplyBattlerTag, true), cond: cond, tag: tag}
}

type postDefendTypeChange struct{ attrBase }

func (a *postDefendTypeChange) ApplyPostDefend(_ context.Context, ev *Event, _ Pokemon, move *dex.Move, result dex.HitResult) bool {
	if !result.Damaged() {
		return false
	}
	types := ev.Pokemon.Types()
	if len(types) == 1 && types[0] == move.Type {
		return false
	}
	ev.Queue(TypeChange{Target: ev.Pokemon, Types: []dex.Type{move.Type}})
	ev.say("postDefendTypeChange", move.Type.String())
	return true
}

// NewPostDefendTypeChange changes the holder's type to that of the move that damaged it.
func NewPostDefendTypeChange() Attr {
	return &postDefendTypeChange{attrBase: newBase(KindPostDefendTypeChange, true)}
}

type postDefendTerrainChange struct {
	attrBase
	terrain dex.TerrainType
}

func (a *postDefendTerrainChange) ApplyPostDefend(ctx context.Context, ev *Event, _ Pokemon, _ *dex.Move, result dex.HitResult) bool {
	if !result.Damaged() {
		return false
	}
	return ev.setTerrain(ctx, a.terrain)
}

// NewPostDefendTerrainChange sets the terrain after a move damaged the holder.
func NewPostDefendTerrainChange(t dex.TerrainType) Attr {
	return &postDefendTerrainChange{attrBase: newBase(KindPostDefendTerrainChange, true), terrain: t}
}

type postDefendContactStatus struct {
	attrBase
	chance  int
	effects []dex.StatusEffect
	// sporeImmune skips attackers with Overcoat or the Grass type.
	sporeImmune bool
}

func (a *postDefendContactStatus) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	if a.sporeImmune && (ev.Engine.HasAbility(ctx, attacker, Overcoat) || hasType(attacker, dex.TypeGrass)) {
		return false
	}
	if !contact(ctx, ev, attacker, move) || attacker.Status() != dex.StatusNone {
		return false
	}
	if a.chance >= 0 && !ev.Roll(a.chance) {
		return false
	}
	effect := a.effects[ev.Rand(len(a.effects))]
	if !attacker.CanSetStatus(ctx, effect, ev.Pokemon) {
		return false
	}
	ev.Queue(SetStatus{Target: attacker, Source: ev.Pokemon, Effect: effect})
	return true
}

// NewPostDefendContactApplyStatusEffect inflicts one of effects on an attacker that made contact, with the given
// percent chance. A negative chance always succeeds.
func NewPostDefendContactApplyStatusEffect(chance int, effects ...dex.StatusEffect) Attr {
	return &postDefendContactStatus{
		attrBase: newBase(KindPostDefendContactApplyStatusEffect, true),
		chance:   chance,
		effects:  effects,
	}
}

// NewEffectSpore poisons, paralyzes or sleeps contact attackers 10% of the time, sparing powder-immune ones.
func NewEffectSpore() Attr {
	return &postDefendContactStatus{
		attrBase:    newBase(KindEffectSpore, true),
		chance:      10,
		effects:     []dex.StatusEffect{dex.StatusPoison, dex.StatusParalysis, dex.StatusSleep},
		sporeImmune: true,
	}
}

type postDefendContactTag struct {
	attrBase
	chance int
	tag    dex.BattlerTagType
	turns  int
}

func (a *postDefendContactTag) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	if !contact(ctx, ev, attacker, move) || !ev.Roll(a.chance) || !attacker.CanAddTag(a.tag) {
		return false
	}
	ev.Queue(AddTag{Target: attacker, Source: attacker, Tag: a.tag, Turns: a.turns})
	return true
}

// NewPostDefendContactApplyTagChance attaches tag to a contact attacker with the given percent chance.
func NewPostDefendContactApplyTagChance(chance int, tag dex.BattlerTagType, turns int) Attr {
	return &postDefendContactTag{attrBase: newBase(KindPostDefendContactApplyTagChance, true), chance: chance, tag: tag, turns: turns}
}

type postDefendCritStatChange struct {
	attrBase
	stat   dex.BattleStat
	levels int
}

func (a *postDefendCritStatChange) ApplyPostDefend(_ context.Context, ev *Event, _ Pokemon, _ *dex.Move, _ dex.HitResult) bool {
	p := ev.Pokemon
	if hit, ok := p.LastHit(); !ok || !hit.Critical {
		return false
	}
	ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: []dex.BattleStat{a.stat}, Levels: a.levels})
	return true
}

// NewPostDefendCritStatChange changes one of the holder's stats after it took a critical hit.
func NewPostDefendCritStatChange(stat dex.BattleStat, levels int) Attr {
	return &postDefendCritStatChange{attrBase: newBase(KindPostDefendCritStatChange, true), stat: stat, levels: levels}
}

type postDefendStealHeldItem struct {
	attrBase
	cond MoveCondition
}

func (a *postDefendStealHeldItem) ApplyPostDefend(ctx context.Context, ev *Event, attacker Pokemon, move *dex.Move, result dex.HitResult) bool {
	p := ev.Pokemon
	if ev.Simulated || !result.Damaged() || attacker.IsPlayer() == p.IsPlayer() {
		return false
	}
	if a.cond != nil && !a.cond.Holds(ctx, ev.Engine, attacker, p, move) {
		return false
	}
	return stealItem(ctx, ev, attacker, p)
}

// stealItem moves a random transferable item from victim to thief unless the victim's ability blocks theft.
func stealItem(ctx context.Context, ev *Event, victim, thief Pokemon) bool {
	var items []dex.Item
	for _, it := range victim.HeldItems() {
		if it.Transferable {
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return false
	}
	q := &Query{}
	if err := ev.Engine.Apply(ctx, victim, q, KindBlockItemTheft); err != nil {
		ev.err = err
		return false
	}
	if q.Cancelled {
		return false
	}
	item := items[ev.Rand(len(items))]
	ok, awaited := await(ctx, ev, ev.Scene().TransferItem(ctx, victim, thief, item))
	if !awaited || !ok {
		return false
	}
	ev.Announce("stealHeldItem", thief.Name(), victim.Name(), item.Name)
	return true
}

// NewPostDefendStealHeldItem takes an item from an attacker whose move satisfying cond damaged the holder.
// A nil cond always holds.
func NewPostDefendStealHeldItem(cond MoveCondition) Attr {
	return &postDefendStealHeldItem{attrBase: newBase(KindPostDefendStealHeldItem, true), cond: cond}
}

type reverseDrain struct{ attrBase }

func (a *reverseDrain) ApplyPostDefend(_ context.Context, ev *Event, attacker Pokemon, move *dex.Move, _ dex.HitResult) bool {
	if move.Drain <= 0 {
		return false
	}
	ev.Announce("reverseDrain", attacker.Name())
	return true
}

// NewReverseDrain turns the healing of draining moves used on the holder into damage.
// The scheduler reads the successful application and inverts the drain.
func NewReverseDrain() Attr { return &reverseDrain{attrBase: newBase(KindReverseDrain, true)} }
