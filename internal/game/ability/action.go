package ability

import "github.com/cory-johannsen/monbattle/internal/game/dex"

// Action is a state change the engine asks the scheduler to perform.
// Actions are queued in the order attributes request them.
type Action interface {
	isAction()
}

// StatStageChange raises or lowers stat stages.
type StatStageChange struct {
	Target Pokemon
	Source Pokemon
	// SelfTarget is true when the change originates from Target itself.
	SelfTarget bool
	Stats      []dex.BattleStat
	Levels     int
	// Uncopyable marks changes that abilities copying stat changes must ignore.
	Uncopyable bool
}

// Heal restores HP.
type Heal struct {
	Target  Pokemon
	Amount  int
	Message string
}

// Damage removes HP outside of a move's own damage.
type Damage struct {
	Target Pokemon
	Source Pokemon
	Amount int
}

// SetStatus inflicts a non-volatile status.
type SetStatus struct {
	Target Pokemon
	Source Pokemon
	Effect dex.StatusEffect
}

// CureStatus clears Target's non-volatile status.
type CureStatus struct {
	Target Pokemon
}

// AddTag attaches a volatile tag. Turns of zero uses the tag's default duration.
type AddTag struct {
	Target Pokemon
	Source Pokemon
	Tag    dex.BattlerTagType
	Turns  int
}

// RemoveTag detaches a volatile tag.
type RemoveTag struct {
	Target Pokemon
	Tag    dex.BattlerTagType
}

// AddArenaTag attaches a field effect to one side.
type AddArenaTag struct {
	Tag        dex.ArenaTagType
	Turns      int
	Source     Pokemon
	PlayerSide bool
}

// RemoveArenaTag removes field effects from both sides.
type RemoveArenaTag struct {
	Tags []dex.ArenaTagType
}

// FormChange switches Target to another form.
type FormChange struct {
	Target Pokemon
	Form   int
}

// TypeChange replaces Target's types until it leaves the field.
type TypeChange struct {
	Target Pokemon
	Types  []dex.Type
}

// Transform copies Into's types, stats, stages and moves onto Target.
type Transform struct {
	Target Pokemon
	Into   Pokemon
}

// DisableMove prevents Target from selecting Move.
type DisableMove struct {
	Target Pokemon
	Move   *dex.Move
	Turns  int
}

// UseMove makes User execute Move immediately, outside the normal turn order.
type UseMove struct {
	User    Pokemon
	Move    *dex.Move
	Targets []Pokemon
}

// ResetStats zeroes every stat stage of Target.
type ResetStats struct {
	Target Pokemon
}

// CopyStats copies From's stat stages onto Target.
type CopyStats struct {
	Target Pokemon
	From   Pokemon
}

// GiveItem adds a held item to Target.
type GiveItem struct {
	Target Pokemon
	Item   dex.Item
}

// Message is a line of battle text.
type Message struct {
	Text string
}

// WeatherChanged announces new weather and lets the field react to it.
type WeatherChanged struct {
	Weather  dex.WeatherType
	Previous dex.WeatherType
}

// TerrainChanged announces new terrain and lets the field react to it.
type TerrainChanged struct {
	Terrain  dex.TerrainType
	Previous dex.TerrainType
}

// ShowAbility reveals which ability fired. Instant indicators are shown before queued actions run.
type ShowAbility struct {
	Pokemon Pokemon
	Passive bool
	Ability ID
	Instant bool
}

func (WeatherChanged) isAction()  {}
func (TerrainChanged) isAction()  {}
func (StatStageChange) isAction() {}
func (Heal) isAction()            {}
func (Damage) isAction()          {}
func (SetStatus) isAction()       {}
func (CureStatus) isAction()      {}
func (AddTag) isAction()          {}
func (RemoveTag) isAction()       {}
func (AddArenaTag) isAction()     {}
func (RemoveArenaTag) isAction()  {}
func (FormChange) isAction()      {}
func (TypeChange) isAction()      {}
func (Transform) isAction()       {}
func (DisableMove) isAction()     {}
func (UseMove) isAction()         {}
func (ResetStats) isAction()      {}
func (CopyStats) isAction()       {}
func (GiveItem) isAction()        {}
func (Message) isAction()         {}
func (ShowAbility) isAction()     {}
