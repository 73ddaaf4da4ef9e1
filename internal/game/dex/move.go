package dex

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MoveCategory classifies how a move deals damage.
type MoveCategory int

const (
	CategoryPhysical MoveCategory = iota
	CategorySpecial
	CategoryStatus
)

// String returns the lowercase category name.
func (c MoveCategory) String() string {
	switch c {
	case CategoryPhysical:
		return "physical"
	case CategorySpecial:
		return "special"
	case CategoryStatus:
		return "status"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *MoveCategory) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "physical":
		*c = CategoryPhysical
	case "special":
		*c = CategorySpecial
	case "status":
		*c = CategoryStatus
	default:
		return fmt.Errorf("dex: unknown move category %q", string(b))
	}
	return nil
}

// MoveFlags is a bit set of move properties abilities react to.
type MoveFlags uint32

const (
	FlagMakesContact MoveFlags = 1 << iota
	FlagSoundBased
	FlagPunching
	FlagBiting
	FlagPulse
	FlagBallBomb
	FlagPowder
	FlagSlicing
	FlagWind
	FlagDance
	FlagTriage
	FlagReckless
	FlagIgnoreProtect
	FlagExplosive
)

var flagNames = map[string]MoveFlags{
	"contact":        FlagMakesContact,
	"sound":          FlagSoundBased,
	"punch":          FlagPunching,
	"bite":           FlagBiting,
	"pulse":          FlagPulse,
	"ballbomb":       FlagBallBomb,
	"powder":         FlagPowder,
	"slicing":        FlagSlicing,
	"wind":           FlagWind,
	"dance":          FlagDance,
	"triage":         FlagTriage,
	"reckless":       FlagReckless,
	"ignore_protect": FlagIgnoreProtect,
	"explosive":      FlagExplosive,
}

// ParseMoveFlag resolves one flag name.
func ParseMoveFlag(s string) (MoveFlags, error) {
	f, ok := flagNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("dex: unknown move flag %q", s)
	}
	return f, nil
}

// UnmarshalYAML decodes a sequence of flag names into the bit set.
func (f *MoveFlags) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err != nil {
		return fmt.Errorf("dex: move flags: %w", err)
	}
	var out MoveFlags
	for _, n := range names {
		flag, err := ParseMoveFlag(n)
		if err != nil {
			return err
		}
		out |= flag
	}
	*f = out
	return nil
}

// MoveTarget describes who a move affects.
type MoveTarget int

const (
	TargetNearOther MoveTarget = iota
	TargetUser
	TargetNearEnemy
	TargetAllNearEnemies
	TargetAllNearOthers
	TargetRandomNearEnemy
	TargetAlly
	TargetUserSide
	TargetEnemySide
	TargetBothSides
)

var targetNames = [...]string{"near_other", "user", "near_enemy", "all_near_enemies", "all_near_others", "random_near_enemy", "ally", "user_side", "enemy_side", "both_sides"}

// String returns the snake-case target name.
func (t MoveTarget) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		return fmt.Sprintf("target(%d)", int(t))
	}
	return targetNames[t]
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *MoveTarget) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range targetNames {
		if n == name {
			*t = MoveTarget(i)
			return nil
		}
	}
	return fmt.Errorf("dex: unknown move target %q", string(b))
}

// IsFieldTarget reports whether the move targets a side of the field rather than a Pokemon.
func (t MoveTarget) IsFieldTarget() bool {
	return t == TargetUserSide || t == TargetEnemySide || t == TargetBothSides
}

// HitResult is the outcome of a move against one target.
// Values below HitNoEffect mean the target took damage.
type HitResult int

const (
	HitEffective HitResult = iota
	HitSuperEffective
	HitNotVeryEffective
	HitOneHitKO
	HitNoEffect
	HitStatus
	HitHeal
	HitFail
	HitMiss
	HitOther
	HitImmune
)

// Damaged reports whether the hit dealt damage.
func (h HitResult) Damaged() bool { return h < HitNoEffect }

// StatChange is a stage change a move applies as a secondary effect.
type StatChange struct {
	Stat   BattleStat `yaml:"stat"`
	Levels int        `yaml:"levels"`
	Self   bool       `yaml:"self"`
}

// Move is the static definition of one move.
type Move struct {
	ID       string
	Name     string
	Type     Type
	Category MoveCategory
	Power    int
	// Accuracy is a percentage; -1 never misses.
	Accuracy int
	PP       int
	Priority int
	// Chance is the secondary-effect chance in percent; -1 when the move has none.
	Chance      int
	Target      MoveTarget
	Flags       MoveFlags
	MinHits     int
	MaxHits     int
	Status      StatusEffect
	Tag         BattlerTagType
	Flinch      bool
	StatChanges []StatChange
	Recoil      float64
	Drain       float64
	Heal        float64
	OHKO        bool
}

// HasFlag reports whether every bit of f is set on the move.
func (m *Move) HasFlag(f MoveFlags) bool { return m.Flags&f == f }

// IsDamaging reports whether the move deals direct damage.
func (m *Move) IsDamaging() bool { return m.Category != CategoryStatus }

// IsMultiHit reports whether the move strikes more than once.
func (m *Move) IsMultiHit() bool { return m.MaxHits > 1 }

// HasSecondaryEffect reports whether the move has a chance-based secondary effect.
func (m *Move) HasSecondaryEffect() bool { return m.Chance >= 1 }

// String returns the move name.
func (m *Move) String() string { return m.Name }
