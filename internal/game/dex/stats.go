package dex

import (
	"fmt"
	"strings"
)

// Stat is a permanent stat.
type Stat int

const (
	StatHP Stat = iota
	StatAtk
	StatDef
	StatSpAtk
	StatSpDef
	StatSpd
)

var statNames = [...]string{"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed"}

// String returns the display name of the stat.
func (s Stat) String() string {
	if s < 0 || int(s) >= len(statNames) {
		return fmt.Sprintf("stat(%d)", int(s))
	}
	return statNames[s]
}

// BattleStat is a stat that can be raised or lowered in stages during battle.
type BattleStat int

const (
	BattleStatAtk BattleStat = iota
	BattleStatDef
	BattleStatSpAtk
	BattleStatSpDef
	BattleStatSpd
	BattleStatAcc
	BattleStatEva
)

// BattleStatCount is the number of BattleStat values.
const BattleStatCount = 7

// StageLimit bounds every stat stage in both directions.
const StageLimit = 6

var battleStatNames = [...]string{"Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed", "Accuracy", "Evasiveness"}
var battleStatKeys = [...]string{"atk", "def", "spatk", "spdef", "spd", "acc", "eva"}

// String returns the display name of the battle stat.
func (s BattleStat) String() string {
	if s < 0 || int(s) >= len(battleStatNames) {
		return fmt.Sprintf("battlestat(%d)", int(s))
	}
	return battleStatNames[s]
}

// AllBattleStats returns every battle stat in declaration order.
func AllBattleStats() []BattleStat {
	out := make([]BattleStat, BattleStatCount)
	for i := range out {
		out[i] = BattleStat(i)
	}
	return out
}

// MainBattleStats returns the five battle stats that map onto permanent stats.
func MainBattleStats() []BattleStat {
	return []BattleStat{BattleStatAtk, BattleStatDef, BattleStatSpAtk, BattleStatSpDef, BattleStatSpd}
}

// Stat maps a battle stat to its permanent stat. Accuracy and evasion have none.
func (s BattleStat) Stat() (Stat, bool) {
	if s < BattleStatAtk || s > BattleStatSpd {
		return StatHP, false
	}
	return Stat(int(s) + 1), true
}

// ParseBattleStat resolves a short key such as "atk" or "spd".
//
// Postcondition: Returns the matching BattleStat or a non-nil error.
func ParseBattleStat(s string) (BattleStat, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, k := range battleStatKeys {
		if k == key {
			return BattleStat(i), nil
		}
	}
	return 0, fmt.Errorf("dex: unknown battle stat %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *BattleStat) UnmarshalText(b []byte) error {
	v, err := ParseBattleStat(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// StageMultiplier converts a stage into the multiplier applied to a main stat.
//
// Precondition: stage is within [-StageLimit, StageLimit].
func StageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

// AccuracyStageMultiplier converts an accuracy or evasion stage into a multiplier.
func AccuracyStageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(3+stage) / 3
	}
	return 3 / float64(3-stage)
}

// Gender of a Pokemon.
type Gender int

const (
	GenderGenderless Gender = iota
	GenderMale
	GenderFemale
)

// String returns the lowercase gender name.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "genderless"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gender) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "male", "m":
		*g = GenderMale
	case "female", "f":
		*g = GenderFemale
	case "", "genderless", "none":
		*g = GenderGenderless
	default:
		return fmt.Errorf("dex: unknown gender %q", string(b))
	}
	return nil
}
