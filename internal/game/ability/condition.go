package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"go.uber.org/zap"
)

// Condition gates an attribute or a whole ability on the state of the acting Pokemon.
// Holds must not change battle state; it may be evaluated speculatively.
type Condition interface {
	Holds(ctx context.Context, e *Engine, p Pokemon) bool
}

// MoveCondition gates an attribute on a move in flight.
// attacker used move against defender; either side may be the ability holder.
// defender is nil for checks made before a target is known.
type MoveCondition interface {
	Holds(ctx context.Context, e *Engine, attacker, defender Pokemon, move *dex.Move) bool
}

// ConditionFunc adapts a function to Condition.
type ConditionFunc func(ctx context.Context, e *Engine, p Pokemon) bool

func (f ConditionFunc) Holds(ctx context.Context, e *Engine, p Pokemon) bool { return f(ctx, e, p) }

// MoveConditionFunc adapts a function to MoveCondition.
type MoveConditionFunc func(ctx context.Context, e *Engine, attacker, defender Pokemon, move *dex.Move) bool

func (f MoveConditionFunc) Holds(ctx context.Context, e *Engine, attacker, defender Pokemon, move *dex.Move) bool {
	return f(ctx, e, attacker, defender, move)
}

// WeatherIs holds while one of Weathers is active and not suppressed.
type WeatherIs struct {
	Weathers []dex.WeatherType
}

func (c WeatherIs) Holds(_ context.Context, _ *Engine, p Pokemon) bool {
	s := p.Scene()
	if s == nil || s.WeatherSuppressed() {
		return false
	}
	w := s.Weather()
	if w == dex.WeatherNone {
		return false
	}
	for _, want := range c.Weathers {
		if w == want {
			return true
		}
	}
	return false
}

// TerrainIs holds while one of Terrains is active.
type TerrainIs struct {
	Terrains []dex.TerrainType
}

func (c TerrainIs) Holds(_ context.Context, _ *Engine, p Pokemon) bool {
	s := p.Scene()
	if s == nil {
		return false
	}
	t := s.Terrain()
	for _, want := range c.Terrains {
		if t != dex.TerrainNone && t == want {
			return true
		}
	}
	return false
}

// OncePerBattle holds until Ability has applied for p in the current battle.
// Switching out does not reset it; a new battle does.
type OncePerBattle struct {
	Ability ID
}

func (c OncePerBattle) Holds(_ context.Context, _ *Engine, p Pokemon) bool {
	bd := p.BattleData()
	return bd == nil || !bd.HasApplied(c.Ability)
}

// NotHitBySheerForce holds unless the last attack p received came from an opponent
// whose Sheer Force removed the move's secondary effect.
type NotHitBySheerForce struct{}

func (NotHitBySheerForce) Holds(ctx context.Context, e *Engine, p Pokemon) bool {
	hit, ok := p.LastHit()
	if !ok || hit.Source == nil || hit.Move == nil {
		return true
	}
	if hit.Source.IsPlayer() == p.IsPlayer() {
		return true
	}
	return !(hit.Move.Chance >= 0 && e.HasAbility(ctx, hit.Source, SheerForce))
}

// OpponentThreatens holds when an opponent knows a super-effective damaging move or a one-hit KO move.
type OpponentThreatens struct{}

func (OpponentThreatens) Holds(_ context.Context, _ *Engine, p Pokemon) bool {
	for _, opp := range p.Opponents() {
		for _, m := range opp.Moves() {
			if m.OHKO {
				return true
			}
			if m.IsDamaging() && p.Effectiveness(m.Type) >= 2 {
				return true
			}
		}
	}
	return false
}

// HPRatioAtMost holds while p's HP is at or below Ratio of its maximum.
type HPRatioAtMost struct {
	Ratio float64
}

func (c HPRatioAtMost) Holds(_ context.Context, _ *Engine, p Pokemon) bool {
	return hpRatio(p) <= c.Ratio
}

// HasStatus holds while p has one of Effects.
type HasStatus struct {
	Effects []dex.StatusEffect
}

func (c HasStatus) Holds(_ context.Context, _ *Engine, p Pokemon) bool {
	return dex.ContainsStatus(c.Effects, p.Status())
}

// HasAnyStatus holds while p has any non-volatile status.
type HasAnyStatus struct{}

func (HasAnyStatus) Holds(_ context.Context, _ *Engine, p Pokemon) bool {
	return p.Status() != dex.StatusNone
}

// HasTag holds while p carries Tag.
type HasTag struct {
	Tag dex.BattlerTagType
}

func (c HasTag) Holds(_ context.Context, _ *Engine, p Pokemon) bool { return p.HasTag(c.Tag) }

// FormIs holds while p is in Form.
type FormIs struct {
	Form int
}

func (c FormIs) Holds(_ context.Context, _ *Engine, p Pokemon) bool { return p.FormIndex() == c.Form }

// AllyHasAbility holds while p's ally has one of Abilities and can apply it.
type AllyHasAbility struct {
	Abilities []ID
}

func (c AllyHasAbility) Holds(ctx context.Context, e *Engine, p Pokemon) bool {
	ally := p.Ally()
	if ally == nil || ally.IsFainted() {
		return false
	}
	for _, id := range c.Abilities {
		if e.HasAbility(ctx, ally, id) {
			return true
		}
	}
	return false
}

// Chance holds with probability Percent. It consumes one roll of the battle's seeded source.
type Chance struct {
	Percent int
}

func (c Chance) Holds(_ context.Context, _ *Engine, p Pokemon) bool {
	if c.Percent >= 100 {
		return true
	}
	if c.Percent <= 0 {
		return false
	}
	return p.Scene().RandInt(100) < c.Percent
}

// Scripted delegates to a Lua predicate named Hook. It fails closed when no
// script host is configured or the script errors.
type Scripted struct {
	Hook string
}

func (c Scripted) Holds(ctx context.Context, e *Engine, p Pokemon) bool {
	if e.scripts == nil {
		return false
	}
	ok, err := e.scripts.EvalPredicate(c.Hook, Facts(p))
	if err != nil {
		e.logger.Warn("ability: script predicate failed",
			zap.String("hook", c.Hook),
			zap.String("pokemon", p.Name()),
			zap.Error(err),
		)
		return false
	}
	return ok
}

// Not inverts C.
type Not struct {
	C Condition
}

func (c Not) Holds(ctx context.Context, e *Engine, p Pokemon) bool { return !c.C.Holds(ctx, e, p) }

// All holds when every condition holds. An empty All holds.
type All []Condition

func (c All) Holds(ctx context.Context, e *Engine, p Pokemon) bool {
	for _, cond := range c {
		if !cond.Holds(ctx, e, p) {
			return false
		}
	}
	return true
}

// Any holds when at least one condition holds.
type Any []Condition

func (c Any) Holds(ctx context.Context, e *Engine, p Pokemon) bool {
	for _, cond := range c {
		if cond.Holds(ctx, e, p) {
			return true
		}
	}
	return false
}

// Facts is the snapshot of p handed to script predicates.
func Facts(p Pokemon) map[string]any {
	types := make([]string, 0, len(p.Types()))
	for _, t := range p.Types() {
		types = append(types, t.String())
	}
	facts := map[string]any{
		"id":        p.ID(),
		"name":      p.Name(),
		"level":     p.Level(),
		"hp":        p.HP(),
		"max_hp":    p.MaxHP(),
		"hp_ratio":  hpRatio(p),
		"status":    p.Status().String(),
		"types":     types,
		"form":      p.FormIndex(),
		"is_player": p.IsPlayer(),
	}
	if s := p.Scene(); s != nil {
		facts["weather"] = s.Weather().String()
		facts["terrain"] = s.Terrain().String()
		facts["turn"] = s.TurnNumber()
		facts["double"] = s.Double()
	}
	return facts
}

// MoveCategoryIs holds for moves in one of Categories.
type MoveCategoryIs struct {
	Categories []dex.MoveCategory
}

func (c MoveCategoryIs) Holds(_ context.Context, _ *Engine, _, _ Pokemon, m *dex.Move) bool {
	for _, cat := range c.Categories {
		if m.Category == cat {
			return true
		}
	}
	return false
}

// MoveHasFlag holds for moves carrying Flag.
type MoveHasFlag struct {
	Flag dex.MoveFlags
}

func (c MoveHasFlag) Holds(_ context.Context, _ *Engine, _, _ Pokemon, m *dex.Move) bool {
	return m.HasFlag(c.Flag)
}

// MoveTypeIs holds for moves of Type.
type MoveTypeIs struct {
	Type dex.Type
}

func (c MoveTypeIs) Holds(_ context.Context, _ *Engine, _, _ Pokemon, m *dex.Move) bool {
	return m.Type == c.Type
}

// MoveIs holds for the listed move ids.
type MoveIs struct {
	IDs []string
}

func (c MoveIs) Holds(_ context.Context, _ *Engine, _, _ Pokemon, m *dex.Move) bool {
	for _, id := range c.IDs {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Damaging holds for physical and special moves.
type Damaging struct{}

func (Damaging) Holds(_ context.Context, _ *Engine, _, _ Pokemon, m *dex.Move) bool {
	return m.IsDamaging()
}

// Contact holds for contact moves unless the attacker's ability stops them making contact.
type Contact struct{}

func (Contact) Holds(ctx context.Context, e *Engine, attacker, _ Pokemon, m *dex.Move) bool {
	if !m.HasFlag(dex.FlagMakesContact) {
		return false
	}
	return attacker == nil || !e.HasAbilityWithAttr(ctx, attacker, KindIgnoreContact)
}

// TargetAtFullHP holds while the defender is at full HP.
type TargetAtFullHP struct{}

func (TargetAtFullHP) Holds(_ context.Context, _ *Engine, _, defender Pokemon, _ *dex.Move) bool {
	return defender != nil && isFullHP(defender)
}

// UserAtFullHP holds while the attacker is at full HP.
type UserAtFullHP struct{}

func (UserAtFullHP) Holds(_ context.Context, _ *Engine, attacker, _ Pokemon, _ *dex.Move) bool {
	return attacker != nil && isFullHP(attacker)
}

// SuperEffective holds when the move is super effective against the defender.
type SuperEffective struct{}

func (SuperEffective) Holds(_ context.Context, _ *Engine, _, defender Pokemon, m *dex.Move) bool {
	return defender != nil && defender.Effectiveness(m.Type) >= 2
}

// NotVeryEffective holds when the move is resisted by the defender.
type NotVeryEffective struct{}

func (NotVeryEffective) Holds(_ context.Context, _ *Engine, _, defender Pokemon, m *dex.Move) bool {
	if defender == nil {
		return false
	}
	eff := defender.Effectiveness(m.Type)
	return eff > 0 && eff < 1
}

// SameGender holds when both sides have the same known gender.
type SameGender struct{}

func (SameGender) Holds(_ context.Context, _ *Engine, attacker, defender Pokemon, _ *dex.Move) bool {
	if attacker == nil || defender == nil {
		return false
	}
	ga, gd := attacker.Gender(), defender.Gender()
	return ga != dex.GenderGenderless && ga == gd
}

// OppositeGender holds when both sides have known, different genders.
type OppositeGender struct{}

func (OppositeGender) Holds(_ context.Context, _ *Engine, attacker, defender Pokemon, _ *dex.Move) bool {
	if attacker == nil || defender == nil {
		return false
	}
	ga, gd := attacker.Gender(), defender.Gender()
	return ga != dex.GenderGenderless && gd != dex.GenderGenderless && ga != gd
}

// UserStatusIs holds while the attacker has one of Effects.
type UserStatusIs struct {
	Effects []dex.StatusEffect
}

func (c UserStatusIs) Holds(_ context.Context, _ *Engine, attacker, _ Pokemon, _ *dex.Move) bool {
	return attacker != nil && dex.ContainsStatus(c.Effects, attacker.Status())
}

// TargetStatusIs holds while the defender has one of Effects.
type TargetStatusIs struct {
	Effects []dex.StatusEffect
}

func (c TargetStatusIs) Holds(_ context.Context, _ *Engine, _, defender Pokemon, _ *dex.Move) bool {
	return defender != nil && dex.ContainsStatus(c.Effects, defender.Status())
}

// TargetSwitchedIn holds when the defender entered the field this turn.
type TargetSwitchedIn struct{}

func (TargetSwitchedIn) Holds(_ context.Context, _ *Engine, _, defender Pokemon, _ *dex.Move) bool {
	return defender != nil && defender.SwitchedIn()
}

// PowerAtMost holds for damaging moves whose base power does not exceed Power.
type PowerAtMost struct {
	Power int
}

func (c PowerAtMost) Holds(_ context.Context, _ *Engine, _, _ Pokemon, m *dex.Move) bool {
	return m.IsDamaging() && m.Power > 0 && m.Power <= c.Power
}

// HasSecondaryEffect holds for moves with a chance-based secondary effect.
type HasSecondaryEffect struct{}

func (HasSecondaryEffect) Holds(_ context.Context, _ *Engine, _, _ Pokemon, m *dex.Move) bool {
	return m.HasSecondaryEffect()
}

// Recoil holds for moves that hurt their user or carry the reckless flag.
type Recoil struct{}

func (Recoil) Holds(_ context.Context, _ *Engine, _, _ Pokemon, m *dex.Move) bool {
	return m.Recoil > 0 || m.HasFlag(dex.FlagReckless)
}

// MovesAll holds when every condition holds.
type MovesAll []MoveCondition

func (c MovesAll) Holds(ctx context.Context, e *Engine, attacker, defender Pokemon, m *dex.Move) bool {
	for _, cond := range c {
		if !cond.Holds(ctx, e, attacker, defender, m) {
			return false
		}
	}
	return true
}

// MovesAny holds when at least one condition holds.
type MovesAny []MoveCondition

func (c MovesAny) Holds(ctx context.Context, e *Engine, attacker, defender Pokemon, m *dex.Move) bool {
	for _, cond := range c {
		if cond.Holds(ctx, e, attacker, defender, m) {
			return true
		}
	}
	return false
}

// MoveNot inverts C.
type MoveNot struct {
	C MoveCondition
}

func (c MoveNot) Holds(ctx context.Context, e *Engine, attacker, defender Pokemon, m *dex.Move) bool {
	return !c.C.Holds(ctx, e, attacker, defender, m)
}

// FromOther holds when the attacker is not the defender itself.
type FromOther struct{}

func (FromOther) Holds(_ context.Context, _ *Engine, attacker, defender Pokemon, _ *dex.Move) bool {
	return !samePokemon(attacker, defender)
}

// FromAlly holds when the attacker is the defender's ally.
type FromAlly struct{}

func (FromAlly) Holds(_ context.Context, _ *Engine, attacker, defender Pokemon, _ *dex.Move) bool {
	if attacker == nil || defender == nil {
		return false
	}
	ally := defender.Ally()
	return ally != nil && samePokemon(ally, attacker)
}
