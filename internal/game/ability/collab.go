package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Pokemon is the view of one battler the engine reads and mutates.
// Implementations live with the battle scheduler; the engine never constructs them.
//
// Ally must return a nil interface, not a typed nil pointer, when there is no ally.
type Pokemon interface {
	ID() string
	Name() string
	IsPlayer() bool
	IsOnField() bool
	Level() int
	HP() int
	MaxHP() int
	IsFainted() bool
	Types() []dex.Type
	Gender() dex.Gender
	FormIndex() int
	Stat(s dex.Stat) int
	StatStage(s dex.BattleStat) int
	Status() dex.StatusEffect
	HasTag(t dex.BattlerTagType) bool
	Moves() []*dex.Move
	HeldItems() []dex.Item
	IsGrounded() bool
	Ally() Pokemon
	Opponents() []Pokemon

	// InnateAbility returns the ability the Pokemon was built with for the given slot,
	// ignoring any override in SummonData. None means the slot is empty.
	InnateAbility(passive bool) ID
	// CanApplyAbility reports whether the slot may apply right now.
	// Implementations normally delegate to Engine.SlotCanApply.
	CanApplyAbility(ctx context.Context, passive bool) bool
	SummonData() *SummonData
	BattleData() *BattleData
	Scene() Scene

	CanSetStatus(ctx context.Context, effect dex.StatusEffect, source Pokemon) bool
	CanAddTag(t dex.BattlerTagType) bool
	// Effectiveness returns the type multiplier an attack of the given type has against this Pokemon.
	Effectiveness(attack dex.Type) float64
	// LastHit returns the most recent attack received this turn.
	LastHit() (HitRecord, bool)
	// SwitchedIn reports whether the Pokemon entered the field this turn.
	SwitchedIn() bool
}

// HitRecord describes one attack a Pokemon received.
type HitRecord struct {
	Source   Pokemon
	Move     *dex.Move
	Damage   int
	Result   dex.HitResult
	Critical bool
}

// Scene is the battle-wide state shared by every Pokemon on the field.
type Scene interface {
	Weather() dex.WeatherType
	// WeatherSuppressed reports whether an ability on the field is cancelling weather effects.
	WeatherSuppressed() bool
	Terrain() dex.TerrainType
	HasArenaTag(t dex.ArenaTagType, playerSide bool) bool
	// IgnoreAbilities reports whether a move in progress bypasses ignorable abilities.
	IgnoreAbilities() bool
	Double() bool
	TurnNumber() int
	// Field returns every active Pokemon, player side first.
	Field() []Pokemon
	// Faints returns how many Pokemon on the given side have fainted this battle.
	Faints(playerSide bool) int
	// RandInt returns a value in [0, n) from the battle's seeded source.
	RandInt(n int) int
	Queue(a Action)

	// CanSetWeather reports whether TrySetWeather(w) would change the weather.
	CanSetWeather(w dex.WeatherType) bool
	// CanSetTerrain reports whether TrySetTerrain(t) would change the terrain.
	CanSetTerrain(t dex.TerrainType) bool
	// TrySetWeather reports whether the weather changed. The announcement and the
	// field's reactions are queued as a WeatherChanged action.
	TrySetWeather(ctx context.Context, w dex.WeatherType, source Pokemon) bool
	// TrySetTerrain reports whether the terrain changed. The announcement and the
	// field's reactions are queued as a TerrainChanged action.
	TrySetTerrain(ctx context.Context, t dex.TerrainType, source Pokemon) bool
	// TransferItem moves item from one Pokemon to another once presentation acknowledges it.
	TransferItem(ctx context.Context, from, to Pokemon, item dex.Item) Future[bool]
	// PostBattleLoot returns items dropped by Pokemon knocked out this battle.
	PostBattleLoot() []dex.Item
	// ClaimLoot hands one dropped item to a Pokemon.
	ClaimLoot(ctx context.Context, to Pokemon, item dex.Item) Future[bool]
	ScatterMoney(multiplier float64)
	// FetchLastBall returns the last ball thrown without a catch and forgets it.
	FetchLastBall() (ball string, ok bool)
}

// SummonData is the per-Pokemon state that lives only while the Pokemon stays on the field.
type SummonData struct {
	// Ability overrides the innate primary ability while set.
	Ability          ID
	AbilitiesApplied []ID
	// PostSummoned lists the abilities whose PostSummon attributes applied since the last summon.
	PostSummoned []ID
	// AbilitySuppressed is set by effects that suppress this Pokemon's ability.
	AbilitySuppressed bool
}

// Reset clears the data at switch-out or faint.
//
// Postcondition: Ability is None, AbilitiesApplied and PostSummoned are empty.
func (d *SummonData) Reset() {
	*d = SummonData{}
}

// HasApplied reports whether id applied since the last summon.
func (d *SummonData) HasApplied(id ID) bool {
	return containsID(d.AbilitiesApplied, id)
}

// HasPostSummoned reports whether id's PostSummon attributes applied since the last summon.
func (d *SummonData) HasPostSummoned(id ID) bool {
	return containsID(d.PostSummoned, id)
}

// BattleData is the per-Pokemon state that lives for one battle, across switches.
type BattleData struct {
	AbilitiesApplied []ID
	// AbilityRevealed is set the first time any ability of the Pokemon fires.
	AbilityRevealed bool
	HitCount        int
	BerriesEaten    []dex.Item
}

// Reset clears the data when a new battle starts.
func (d *BattleData) Reset() {
	*d = BattleData{}
}

// HasApplied reports whether id applied at least once this battle.
func (d *BattleData) HasApplied(id ID) bool {
	return containsID(d.AbilitiesApplied, id)
}

func containsID(ids []ID, id ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendUnique(ids []ID, id ID) []ID {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

func hpRatio(p Pokemon) float64 {
	if p.MaxHP() <= 0 {
		return 0
	}
	return float64(p.HP()) / float64(p.MaxHP())
}

func isFullHP(p Pokemon) bool { return p.HP() >= p.MaxHP() }

func hasType(p Pokemon, t dex.Type) bool { return dex.ContainsType(p.Types(), t) }

// activeOnField returns the on-field, non-fainted Pokemon.
func activeOnField(s Scene) []Pokemon {
	var out []Pokemon
	for _, q := range s.Field() {
		if q != nil && q.IsOnField() && !q.IsFainted() {
			out = append(out, q)
		}
	}
	return out
}

// sideField returns the active Pokemon on p's side, p included.
func sideField(p Pokemon) []Pokemon {
	var out []Pokemon
	for _, q := range activeOnField(p.Scene()) {
		if q.IsPlayer() == p.IsPlayer() {
			out = append(out, q)
		}
	}
	return out
}
