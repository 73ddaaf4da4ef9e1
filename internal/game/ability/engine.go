package ability

import (
	"context"

	"go.uber.org/zap"
)

// ScriptHost evaluates named predicate hooks written in a scripting language.
type ScriptHost interface {
	EvalPredicate(hook string, facts map[string]any) (bool, error)
}

// Engine resolves and dispatches abilities. It holds no per-battle state and is
// safe for concurrent use by any number of battles.
type Engine struct {
	registry *Registry
	catalog  *Catalog
	logger   *zap.Logger
	scripts  ScriptHost
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCatalog sets the catalog used for trigger messages.
func WithCatalog(c *Catalog) EngineOption {
	return func(e *Engine) { e.catalog = c }
}

// WithScripts sets the host that evaluates Scripted conditions.
func WithScripts(h ScriptHost) EngineOption {
	return func(e *Engine) { e.scripts = h }
}

// NewEngine creates an Engine over reg.
//
// Precondition: reg is non-nil.
// Postcondition: A nil logger is replaced by a no-op logger; the catalog defaults to DefaultCatalog.
func NewEngine(reg *Registry, logger *zap.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{registry: reg, logger: logger}
	for _, o := range opts {
		o(e)
	}
	if e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	return e
}

// Registry returns the registry the engine resolves ids against.
func (e *Engine) Registry() *Registry { return e.registry }

// Catalog returns the engine's message catalog.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Ability returns the record in p's primary or passive slot.
// An override in SummonData replaces the primary slot only.
//
// Postcondition: Returns nil when the slot is empty or the id is not registered.
func (e *Engine) Ability(p Pokemon, passive bool) *Record {
	id := p.InnateAbility(passive)
	if !passive {
		if sd := p.SummonData(); sd != nil && sd.Ability != None {
			id = sd.Ability
		}
	}
	if id == None {
		return nil
	}
	rec, _ := e.registry.Get(id)
	return rec
}

// SlotCanApply is the standard eligibility predicate for one ability slot.
// Pokemon implementations delegate CanApplyAbility to it.
//
// Postcondition: Returns false when the slot is empty, the ability is bypassed by an
// active ignore-abilities effect, suppressed on this Pokemon or by a field suppressor,
// its owner has fainted without BypassFaint, or a record condition fails.
func (e *Engine) SlotCanApply(ctx context.Context, p Pokemon, passive bool) bool {
	rec := e.Ability(p, passive)
	if rec == nil {
		return false
	}
	if s := p.Scene(); s != nil && s.IgnoreAbilities() && rec.Ignorable() {
		return false
	}
	if sd := p.SummonData(); sd != nil && sd.AbilitySuppressed && !rec.HasAttr(KindUnsuppressable) {
		return false
	}
	if p.IsOnField() && !rec.HasAttr(KindSuppressFieldAbilities) && e.suppressedByField(ctx, p, rec) {
		return false
	}
	if p.HP() <= 0 && !rec.BypassesFaint() {
		return false
	}
	for _, c := range rec.Conditions() {
		if !c.Holds(ctx, e, p) {
			return false
		}
	}
	return true
}

// suppressedByField reports whether another active Pokemon's ability cancels rec.
// The suppressor's attributes are applied directly so no bookkeeping or messages result.
func (e *Engine) suppressedByField(ctx context.Context, p Pokemon, rec *Record) bool {
	s := p.Scene()
	if s == nil {
		return false
	}
	for _, other := range activeOnField(s) {
		if other.ID() == p.ID() {
			continue
		}
		for _, passive := range [...]bool{false, true} {
			srec := e.Ability(other, passive)
			if srec == nil || !srec.HasAttr(KindSuppressFieldAbilities) {
				continue
			}
			if !other.CanApplyAbility(ctx, passive) {
				continue
			}
			q := &Query{Ability: rec}
			ev := &Event{Engine: e, Pokemon: other, Passive: passive, Simulated: true, Record: srec, Category: CategoryGeneric}
			for _, a := range srec.AttrsOf(KindSuppressFieldAbilities) {
				if ga, ok := a.(GenericAttr); ok {
					ga.Apply(ctx, ev, q)
				}
			}
			if q.Cancelled {
				return true
			}
		}
	}
	return false
}

// HasAbility reports whether p has id in either slot and can apply it.
func (e *Engine) HasAbility(ctx context.Context, p Pokemon, id ID) bool {
	for _, passive := range [...]bool{false, true} {
		rec := e.Ability(p, passive)
		if rec != nil && rec.ID() == id && p.CanApplyAbility(ctx, passive) {
			return true
		}
	}
	return false
}

// HasAbilityWithAttr reports whether p can apply an ability carrying an attribute of kind.
func (e *Engine) HasAbilityWithAttr(ctx context.Context, p Pokemon, kind Kind) bool {
	for _, passive := range [...]bool{false, true} {
		rec := e.Ability(p, passive)
		if rec != nil && rec.HasAttr(kind) && p.CanApplyAbility(ctx, passive) {
			return true
		}
	}
	return false
}

// HasAbilityIgnoringState reports whether p carries id in either slot, eligible or not.
func (e *Engine) HasAbilityIgnoringState(p Pokemon, id ID) bool {
	for _, passive := range [...]bool{false, true} {
		if rec := e.Ability(p, passive); rec != nil && rec.ID() == id {
			return true
		}
	}
	return false
}
