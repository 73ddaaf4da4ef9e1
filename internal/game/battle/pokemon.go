package battle

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// BaseStats are the species values permanent stats are derived from.
type BaseStats struct {
	HP    int `yaml:"hp"`
	Atk   int `yaml:"atk"`
	Def   int `yaml:"def"`
	SpAtk int `yaml:"spatk"`
	SpDef int `yaml:"spdef"`
	Spd   int `yaml:"spd"`
}

func (b BaseStats) of(s dex.Stat) int {
	switch s {
	case dex.StatHP:
		return b.HP
	case dex.StatAtk:
		return b.Atk
	case dex.StatDef:
		return b.Def
	case dex.StatSpAtk:
		return b.SpAtk
	case dex.StatSpDef:
		return b.SpDef
	default:
		return b.Spd
	}
}

// tagIndefinite marks a tag that only ends when it is removed or its holder leaves the field.
const tagIndefinite = -1

// Pokemon is one party member. It implements ability.Pokemon.
//
// A Pokemon belongs to at most one Battle and is not safe for concurrent use.
type Pokemon struct {
	id      string
	name    string
	player  bool
	level   int
	stats   [6]int
	hp      int
	types   []dex.Type
	gender  dex.Gender
	form    int
	primary ability.ID
	passive ability.ID
	moves   []*dex.Move
	items   []dex.Item

	status      dex.StatusEffect
	statusTurns int
	stages      [dex.BattleStatCount]int
	tags        map[dex.BattlerTagType]int
	tagSources  map[dex.BattlerTagType]*Pokemon
	disabled    map[string]int
	override    []dex.Type
	transformed *[6]int
	loafing     bool

	onField    bool
	switchedIn bool
	lastHit    *ability.HitRecord

	summon     ability.SummonData
	battleData ability.BattleData
	battle     *Battle
}

// PokemonOption configures a Pokemon built by NewPokemon.
type PokemonOption func(*Pokemon)

// WithAbility sets the primary ability slot.
func WithAbility(id ability.ID) PokemonOption { return func(p *Pokemon) { p.primary = id } }

// WithPassive sets the passive ability slot.
func WithPassive(id ability.ID) PokemonOption { return func(p *Pokemon) { p.passive = id } }

// WithMoves sets the move list.
func WithMoves(moves ...*dex.Move) PokemonOption {
	return func(p *Pokemon) { p.moves = append([]*dex.Move(nil), moves...) }
}

// WithItems sets the held items.
func WithItems(items ...dex.Item) PokemonOption {
	return func(p *Pokemon) { p.items = append([]dex.Item(nil), items...) }
}

// WithGender sets the gender.
func WithGender(g dex.Gender) PokemonOption { return func(p *Pokemon) { p.gender = g } }

// WithForm sets the starting form index.
func WithForm(form int) PokemonOption { return func(p *Pokemon) { p.form = form } }

// WithStatus starts the Pokemon with a non-volatile status.
func WithStatus(s dex.StatusEffect) PokemonOption {
	return func(p *Pokemon) {
		p.status = s
		if s == dex.StatusSleep {
			p.statusTurns = 3
		}
	}
}

// WithHP starts the Pokemon below full health. Values are clamped to [0, MaxHP].
func WithHP(hp int) PokemonOption {
	return func(p *Pokemon) { p.hp = min(max(hp, 0), p.stats[dex.StatHP]) }
}

// NewPokemon builds a Pokemon at full health from base stats.
//
// Precondition: level >= 1 and len(types) >= 1.
// Postcondition: HP == MaxHP unless WithHP lowered it; the Pokemon has a fresh uuid.
func NewPokemon(name string, level int, types []dex.Type, base BaseStats, opts ...PokemonOption) *Pokemon {
	p := &Pokemon{
		id:         uuid.NewString(),
		name:       name,
		level:      max(level, 1),
		types:      slices.Clone(types),
		tags:       make(map[dex.BattlerTagType]int),
		tagSources: make(map[dex.BattlerTagType]*Pokemon),
		disabled:   make(map[string]int),
	}
	for s := dex.StatHP; s <= dex.StatSpd; s++ {
		p.stats[s] = calcStat(s, base.of(s), p.level)
	}
	p.hp = p.stats[dex.StatHP]
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func calcStat(s dex.Stat, base, level int) int {
	v := 2 * base * level / 100
	if s == dex.StatHP {
		return v + level + 10
	}
	return v + 5
}

func (p *Pokemon) ID() string         { return p.id }
func (p *Pokemon) Name() string       { return p.name }
func (p *Pokemon) IsPlayer() bool     { return p.player }
func (p *Pokemon) IsOnField() bool    { return p.onField }
func (p *Pokemon) Level() int         { return p.level }
func (p *Pokemon) HP() int            { return p.hp }
func (p *Pokemon) MaxHP() int         { return p.stats[dex.StatHP] }
func (p *Pokemon) IsFainted() bool    { return p.hp <= 0 }
func (p *Pokemon) Gender() dex.Gender { return p.gender }
func (p *Pokemon) FormIndex() int     { return p.form }
func (p *Pokemon) SwitchedIn() bool   { return p.switchedIn }

// Types returns the current types, including any override applied this summon.
func (p *Pokemon) Types() []dex.Type {
	if len(p.override) > 0 {
		return p.override
	}
	return p.types
}

// Stat returns the permanent stat, or the copied one while transformed. HP is never copied.
func (p *Pokemon) Stat(s dex.Stat) int {
	if p.transformed != nil && s != dex.StatHP {
		return p.transformed[s]
	}
	return p.stats[s]
}

func (p *Pokemon) StatStage(s dex.BattleStat) int {
	if s < 0 || int(s) >= dex.BattleStatCount {
		return 0
	}
	return p.stages[s]
}

func (p *Pokemon) Status() dex.StatusEffect { return p.status }

func (p *Pokemon) HasTag(t dex.BattlerTagType) bool {
	_, ok := p.tags[t]
	return ok
}

func (p *Pokemon) Moves() []*dex.Move    { return p.moves }
func (p *Pokemon) HeldItems() []dex.Item { return p.items }

// IsGrounded reports whether ground moves and terrain reach the Pokemon.
// Levitate is an ability immunity and is not considered here.
func (p *Pokemon) IsGrounded() bool {
	if p.HasTag(dex.TagGrounded) {
		return true
	}
	if p.battle != nil && p.battle.HasArenaTag(dex.ArenaTagGravity, p.player) {
		return true
	}
	return !dex.ContainsType(p.Types(), dex.TypeFlying)
}

// Ally returns the other active Pokemon on p's side in a double battle.
func (p *Pokemon) Ally() ability.Pokemon {
	if p.battle == nil || !p.battle.double {
		return nil
	}
	for _, q := range p.battle.active[sideOf(p.player)] {
		if q != nil && q != p {
			return q
		}
	}
	return nil
}

// Opponents returns the active Pokemon on the other side.
func (p *Pokemon) Opponents() []ability.Pokemon {
	if p.battle == nil {
		return nil
	}
	var out []ability.Pokemon
	for _, q := range p.battle.active[sideOf(!p.player)] {
		if q != nil {
			out = append(out, q)
		}
	}
	return out
}

func (p *Pokemon) InnateAbility(passive bool) ability.ID {
	if passive {
		return p.passive
	}
	return p.primary
}

func (p *Pokemon) CanApplyAbility(ctx context.Context, passive bool) bool {
	if p.battle == nil {
		return false
	}
	return p.battle.engine.SlotCanApply(ctx, p, passive)
}

func (p *Pokemon) SummonData() *ability.SummonData { return &p.summon }
func (p *Pokemon) BattleData() *ability.BattleData { return &p.battleData }

// Scene returns the battle the Pokemon is taking part in, or nil.
func (p *Pokemon) Scene() ability.Scene {
	if p.battle == nil {
		return nil
	}
	return p.battle
}

// CanSetStatus reports whether effect could be inflicted by source right now.
// Ability immunities are consulted without side effects.
func (p *Pokemon) CanSetStatus(ctx context.Context, effect dex.StatusEffect, source ability.Pokemon) bool {
	if !p.canSetStatusIgnoringAbilities(ctx, effect, source) {
		return false
	}
	cancelled := false
	if err := p.battle.engine.PreSetStatus(ctx, p, effect, true, &cancelled); err != nil {
		return false
	}
	return !cancelled
}

func (p *Pokemon) canSetStatusIgnoringAbilities(ctx context.Context, effect dex.StatusEffect, source ability.Pokemon) bool {
	if p.battle == nil || p.IsFainted() || effect == dex.StatusNone || effect == dex.StatusFaint {
		return false
	}
	if p.status != dex.StatusNone {
		return false
	}
	for _, t := range p.Types() {
		if !statusTypeImmune(effect, t) {
			continue
		}
		if source != nil {
			q := &ability.Query{Status: effect, DefenderType: t}
			if err := p.battle.engine.ApplySimulated(ctx, source, q, ability.KindIgnoreTypeStatusEffectImmunity); err == nil && q.Cancelled {
				continue
			}
		}
		return false
	}
	if p.IsGrounded() && p.battle.terrain == dex.TerrainMisty {
		return false
	}
	if p.battle.HasArenaTag(dex.ArenaTagSafeguard, p.player) && (source == nil || source.ID() != p.id) {
		return false
	}
	return true
}

func statusTypeImmune(effect dex.StatusEffect, t dex.Type) bool {
	switch effect {
	case dex.StatusPoison, dex.StatusToxic:
		return t == dex.TypePoison || t == dex.TypeSteel
	case dex.StatusBurn:
		return t == dex.TypeFire
	case dex.StatusFreeze:
		return t == dex.TypeIce
	case dex.StatusParalysis:
		return t == dex.TypeElectric
	}
	return false
}

func (p *Pokemon) CanAddTag(t dex.BattlerTagType) bool {
	return !p.IsFainted() && !p.HasTag(t)
}

func (p *Pokemon) Effectiveness(attack dex.Type) float64 {
	return dex.Effectiveness(attack, p.Types()...)
}

func (p *Pokemon) LastHit() (ability.HitRecord, bool) {
	if p.lastHit == nil {
		return ability.HitRecord{}, false
	}
	return *p.lastHit, true
}

// HasItem reports whether the Pokemon holds an item with the given id.
func (p *Pokemon) HasItem(id string) bool {
	return slices.ContainsFunc(p.items, func(it dex.Item) bool { return it.ID == id })
}

func (p *Pokemon) removeItem(id string) (dex.Item, bool) {
	i := slices.IndexFunc(p.items, func(it dex.Item) bool { return it.ID == id })
	if i < 0 {
		return dex.Item{}, false
	}
	it := p.items[i]
	p.items = slices.Delete(p.items, i, i+1)
	return it, true
}

// leaveField clears everything that only lasts while the Pokemon is active.
func (p *Pokemon) leaveField() {
	p.onField = false
	p.switchedIn = false
	p.lastHit = nil
	p.stages = [dex.BattleStatCount]int{}
	clear(p.tags)
	clear(p.tagSources)
	clear(p.disabled)
	p.override = nil
	p.transformed = nil
	p.loafing = false
	p.summon.Reset()
	if p.status == dex.StatusToxic {
		p.statusTurns = 0
	}
}

// hpFraction returns max(MaxHP/div, 1).
func (p *Pokemon) hpFraction(div int) int {
	return max(p.MaxHP()/div, 1)
}

// canMove reports whether the Pokemon knows move and may select it now.
func (p *Pokemon) canMove(m *dex.Move) bool {
	if m == nil {
		return false
	}
	if _, off := p.disabled[m.ID]; off {
		return false
	}
	if p.HasTag(dex.TagTaunt) && m.Category == dex.CategoryStatus {
		return false
	}
	return true
}

// UsableMoves returns the moves the Pokemon may select this turn.
func (p *Pokemon) UsableMoves() []*dex.Move {
	var out []*dex.Move
	for _, m := range p.moves {
		if p.canMove(m) {
			out = append(out, m)
		}
	}
	return out
}

// String returns the display name.
func (p *Pokemon) String() string { return p.name }
