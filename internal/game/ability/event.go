package ability

import (
	"context"
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Event is the scratch state of one attribute application.
// A fresh Event is created for every attribute the dispatcher applies, so nested
// dispatches never share one.
type Event struct {
	Engine    *Engine
	Pokemon   Pokemon
	Passive   bool
	Simulated bool
	Record    *Record
	Category  Category

	message string
	show    int8
	err     error

	attr    Attr
	quiet   bool
	instant bool
	shown   bool
}

// NewEvent returns an Event for applying an attribute of p's ability outside a dispatch.
//
// Precondition: p is non-nil.
func (e *Engine) NewEvent(p Pokemon, passive, simulated bool) *Event {
	return &Event{Engine: e, Pokemon: p, Passive: passive, Simulated: simulated, Record: e.Ability(p, passive)}
}

// Scene returns the acting Pokemon's scene.
func (ev *Event) Scene() Scene { return ev.Pokemon.Scene() }

// AbilityName returns the display name of the ability being applied.
func (ev *Event) AbilityName() string {
	if ev.Record == nil {
		return ""
	}
	return ev.Record.Name()
}

// Say sets the trigger message from a catalog key.
func (ev *Event) Say(key string, args ...any) {
	ev.message = ev.Engine.catalog.Sprintf(key, args...)
}

// Message returns the trigger message set by the attribute, if any.
func (ev *Event) Message() string { return ev.message }

// Announce queues a line of text right away, independent of the trigger message.
func (ev *Event) Announce(key string, args ...any) {
	ev.Queue(Message{Text: ev.Engine.catalog.Sprintf(key, args...)})
}

// Queue forwards a to the scene, preceded by the ability indicator the first time
// the application queues anything. Simulated events queue nothing.
func (ev *Event) Queue(a Action) {
	if ev.Simulated {
		return
	}
	ev.announceAbility()
	ev.Scene().Queue(a)
}

// Reveal queues the ability indicator now, even for an attribute that hides it by default.
func (ev *Event) Reveal() {
	ev.SetShowAbility(true)
	ev.announceAbility()
}

// announceAbility queues the indicator at most once per application.
func (ev *Event) announceAbility() {
	if ev.shown || ev.Simulated || ev.quiet || ev.attr == nil || ev.Record == nil {
		return
	}
	if !ev.showsAbility(ev.attr) {
		return
	}
	ev.shown = true
	ev.Scene().Queue(ShowAbility{Pokemon: ev.Pokemon, Passive: ev.Passive, Ability: ev.Record.ID(), Instant: ev.instant})
}

// Rand returns a value in [0, n) from the scene's seeded source.
func (ev *Event) Rand(n int) int {
	if n <= 1 {
		return 0
	}
	return ev.Scene().RandInt(n)
}

// Roll reports whether a percentage roll succeeds.
func (ev *Event) Roll(percent int) bool {
	return ev.Rand(100) < percent
}

// SetShowAbility overrides the attribute's show-ability default for this application.
func (ev *Event) SetShowAbility(show bool) {
	if show {
		ev.show = 1
	} else {
		ev.show = -1
	}
}

func (ev *Event) showsAbility(a Attr) bool {
	switch ev.show {
	case 1:
		return true
	case -1:
		return false
	default:
		return a.ShowsAbility()
	}
}

// Err returns the error that aborted the application, if any.
func (ev *Event) Err() error { return ev.err }

// await blocks on f. A context error is recorded on ev and reported as a failed application.
func await[T any](ctx context.Context, ev *Event, f Future[T]) (T, bool) {
	v, err := f.Await(ctx)
	if err != nil {
		ev.err = fmt.Errorf("awaiting %s side effect: %w", ev.Category, err)
		var zero T
		return zero, false
	}
	return v, true
}

// DefendArgs carries the holders a PreDefend dispatch may change.
type DefendArgs struct {
	Attacker Pokemon
	Move     *dex.Move
	// Type is the move's effective type, after the attacker's type-changing abilities.
	Type      dex.Type
	Simulated bool

	// Cancelled stops the move from affecting the defender.
	Cancelled bool
	// TypeMultiplier scales damage; zero makes the defender immune.
	TypeMultiplier float64
	// Damage is the damage about to be dealt. Some attributes rewrite it.
	Damage       int
	Accuracy     int
	EffectChance int
}

// EffectiveMove returns the move with its type replaced by the effective type.
func (d *DefendArgs) EffectiveMove() *dex.Move { return retype(d.Move, d.Type) }

func retype(m *dex.Move, t dex.Type) *dex.Move {
	if m == nil || m.Type == t {
		return m
	}
	cp := *m
	cp.Type = t
	return &cp
}

// NewDefendArgs returns holders initialised from move.
//
// Precondition: move is non-nil.
func NewDefendArgs(attacker Pokemon, move *dex.Move) *DefendArgs {
	return &DefendArgs{
		Attacker:       attacker,
		Move:           move,
		Type:           move.Type,
		TypeMultiplier: 1,
		Accuracy:       move.Accuracy,
		EffectChance:   move.Chance,
	}
}

// AttackArgs carries the holders a PreAttack dispatch may change.
type AttackArgs struct {
	// User is the Pokemon using the move. It differs from the dispatched Pokemon
	// when another active Pokemon's field boost is applied.
	User     Pokemon
	Defender Pokemon
	Move     *dex.Move
	// Type is the move's effective type for this use.
	Type  dex.Type
	Power float64
	// Targets is the number of Pokemon the move hits.
	Targets int
	Hits    int
	// StrikeMultiplier scales the damage of strikes added by abilities.
	StrikeMultiplier float64
	// Damage is the calculated damage when the scheduler dispatches KindDamageBoost, zero otherwise.
	Damage float64
}

// EffectiveMove returns the move with its type replaced by the effective type.
func (a *AttackArgs) EffectiveMove() *dex.Move { return retype(a.Move, a.Type) }

// NewAttackArgs returns holders initialised from move.
//
// Precondition: move is non-nil.
func NewAttackArgs(user, defender Pokemon, move *dex.Move, targets int) *AttackArgs {
	return &AttackArgs{
		User:             user,
		Defender:         defender,
		Move:             move,
		Type:             move.Type,
		Power:            float64(move.Power),
		Targets:          targets,
		Hits:             move.MinHits,
		StrikeMultiplier: 1,
	}
}

// StrikeArgs describes a move the acting Pokemon just used on Defender.
type StrikeArgs struct {
	Defender Pokemon
	Move     *dex.Move
	Result   dex.HitResult
	// Inflicted is the status the move just applied, if any.
	Inflicted dex.StatusEffect
}

// Query is the holder bag of a Generic dispatch. Each kind documents the fields it reads and writes.
type Query struct {
	Cancelled bool

	Move         *dex.Move
	Opponent     Pokemon
	Type         dex.Type
	DefenderType dex.Type
	Status       dex.StatusEffect
	Stats        []dex.BattleStat
	Levels       int
	Ability      *Record

	// Flag is a yes/no holder such as "critical hit guaranteed".
	Flag bool
	// Value is a multiplier or ratio holder.
	Value float64
	// Amount is an integer holder such as priority or hit count.
	Amount int
	// Target is a Pokemon holder, for redirection.
	Target Pokemon
}

// FormFunc picks the form a Pokemon should be in.
type FormFunc func(p Pokemon) int

// changeForm queues a form change when f picks a form other than the current one.
func (ev *Event) changeForm(f FormFunc) bool {
	form := f(ev.Pokemon)
	if form == ev.Pokemon.FormIndex() {
		return false
	}
	ev.Queue(FormChange{Target: ev.Pokemon, Form: form})
	return true
}

// setWeather asks the scene for new weather. A simulated event only checks that it would change.
// The indicator is queued ahead of the scene's WeatherChanged action.
func (ev *Event) setWeather(ctx context.Context, w dex.WeatherType) bool {
	if !ev.Scene().CanSetWeather(w) {
		return false
	}
	if ev.Simulated {
		return true
	}
	ev.announceAbility()
	return ev.Scene().TrySetWeather(ctx, w, ev.Pokemon)
}

// setTerrain asks the scene for new terrain. A simulated event only checks that it would change.
func (ev *Event) setTerrain(ctx context.Context, t dex.TerrainType) bool {
	if !ev.Scene().CanSetTerrain(t) {
		return false
	}
	if ev.Simulated {
		return true
	}
	ev.announceAbility()
	return ev.Scene().TrySetTerrain(ctx, t, ev.Pokemon)
}

// reveal marks p's ability as known to the other side.
func (ev *Event) reveal(p Pokemon) {
	if ev.Simulated {
		return
	}
	if bd := p.BattleData(); bd != nil {
		bd.AbilityRevealed = true
	}
}

// say sets the trigger message with the holder's name and ability name as the first two arguments.
func (ev *Event) say(key string, args ...any) {
	ev.Say(key, append([]any{ev.Pokemon.Name(), ev.AbilityName()}, args...)...)
}

// heal queues a heal on target with a catalog message formatted with target's name and the ability name.
func (ev *Event) heal(target Pokemon, amount int, key string) {
	ev.Queue(Heal{Target: target, Amount: amount, Message: ev.Engine.catalog.Sprintf(key, target.Name(), ev.AbilityName())})
}

// active returns the Pokemon in ps that are on the field and have not fainted.
func active(ps []Pokemon) []Pokemon {
	var out []Pokemon
	for _, p := range ps {
		if p != nil && p.IsOnField() && !p.IsFainted() {
			out = append(out, p)
		}
	}
	return out
}

func samePokemon(a, b Pokemon) bool {
	return a != nil && b != nil && a.ID() == b.ID()
}
