// Package dex holds the read-only reference data the battle engine consults:
// elemental types and their matchups, stats, status effects, field effects,
// battler and arena tags, moves and held items.
package dex

import (
	"fmt"
	"strings"
)

// Type is an elemental type.
type Type int

const (
	TypeUnknown Type = iota
	TypeNormal
	TypeFighting
	TypeFlying
	TypePoison
	TypeGround
	TypeRock
	TypeBug
	TypeGhost
	TypeSteel
	TypeFire
	TypeWater
	TypeGrass
	TypeElectric
	TypePsychic
	TypeIce
	TypeDragon
	TypeDark
	TypeFairy
	TypeStellar
)

var typeNames = [...]string{
	TypeUnknown:  "unknown",
	TypeNormal:   "normal",
	TypeFighting: "fighting",
	TypeFlying:   "flying",
	TypePoison:   "poison",
	TypeGround:   "ground",
	TypeRock:     "rock",
	TypeBug:      "bug",
	TypeGhost:    "ghost",
	TypeSteel:    "steel",
	TypeFire:     "fire",
	TypeWater:    "water",
	TypeGrass:    "grass",
	TypeElectric: "electric",
	TypePsychic:  "psychic",
	TypeIce:      "ice",
	TypeDragon:   "dragon",
	TypeDark:     "dark",
	TypeFairy:    "fairy",
	TypeStellar:  "stellar",
}

// String returns the lowercase type name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType resolves a lowercase type name.
//
// Postcondition: Returns the matching Type or a non-nil error.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return TypeUnknown, fmt.Errorf("dex: unknown type %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so types can be named in YAML.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// chart lists every non-neutral matchup: chart[attack][defend].
var chart = map[Type]map[Type]float64{
	TypeNormal:   {TypeRock: 0.5, TypeGhost: 0, TypeSteel: 0.5},
	TypeFighting: {TypeNormal: 2, TypeFlying: 0.5, TypePoison: 0.5, TypeRock: 2, TypeBug: 0.5, TypeGhost: 0, TypeSteel: 2, TypePsychic: 0.5, TypeIce: 2, TypeDark: 2, TypeFairy: 0.5},
	TypeFlying:   {TypeFighting: 2, TypeRock: 0.5, TypeBug: 2, TypeSteel: 0.5, TypeGrass: 2, TypeElectric: 0.5},
	TypePoison:   {TypePoison: 0.5, TypeGround: 0.5, TypeRock: 0.5, TypeGhost: 0.5, TypeSteel: 0, TypeGrass: 2, TypeFairy: 2},
	TypeGround:   {TypeFlying: 0, TypePoison: 2, TypeRock: 2, TypeBug: 0.5, TypeSteel: 2, TypeFire: 2, TypeGrass: 0.5, TypeElectric: 2},
	TypeRock:     {TypeFighting: 0.5, TypeFlying: 2, TypeGround: 0.5, TypeBug: 2, TypeSteel: 0.5, TypeFire: 2, TypeIce: 2},
	TypeBug:      {TypeFighting: 0.5, TypeFlying: 0.5, TypePoison: 0.5, TypeGhost: 0.5, TypeSteel: 0.5, TypeFire: 0.5, TypeGrass: 2, TypePsychic: 2, TypeDark: 2, TypeFairy: 0.5},
	TypeGhost:    {TypeNormal: 0, TypeGhost: 2, TypePsychic: 2, TypeDark: 0.5},
	TypeSteel:    {TypeRock: 2, TypeSteel: 0.5, TypeFire: 0.5, TypeWater: 0.5, TypeElectric: 0.5, TypeIce: 2, TypeFairy: 2},
	TypeFire:     {TypeRock: 0.5, TypeBug: 2, TypeSteel: 2, TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 2, TypeDragon: 0.5},
	TypeWater:    {TypeGround: 2, TypeRock: 2, TypeFire: 2, TypeWater: 0.5, TypeGrass: 0.5, TypeDragon: 0.5},
	TypeGrass:    {TypeFlying: 0.5, TypePoison: 0.5, TypeGround: 2, TypeRock: 2, TypeBug: 0.5, TypeSteel: 0.5, TypeFire: 0.5, TypeWater: 2, TypeGrass: 0.5, TypeDragon: 0.5},
	TypeElectric: {TypeFlying: 2, TypeGround: 0, TypeWater: 2, TypeGrass: 0.5, TypeElectric: 0.5, TypeDragon: 0.5},
	TypePsychic:  {TypeFighting: 2, TypePoison: 2, TypeSteel: 0.5, TypePsychic: 0.5, TypeDark: 0},
	TypeIce:      {TypeFlying: 2, TypeGround: 2, TypeSteel: 0.5, TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 0.5, TypeDragon: 2},
	TypeDragon:   {TypeSteel: 0.5, TypeDragon: 2, TypeFairy: 0},
	TypeDark:     {TypeFighting: 0.5, TypeGhost: 2, TypePsychic: 2, TypeDark: 0.5, TypeFairy: 0.5},
	TypeFairy:    {TypeFighting: 2, TypePoison: 0.5, TypeSteel: 0.5, TypeFire: 0.5, TypeDragon: 2, TypeDark: 2},
}

// Matchup returns the multiplier of one attacking type against one defending type.
func Matchup(attack, defend Type) float64 {
	if row, ok := chart[attack]; ok {
		if m, ok := row[defend]; ok {
			return m
		}
	}
	return 1
}

// Effectiveness returns the combined multiplier of attack against every defending type.
//
// Postcondition: Returns one of 0, 0.25, 0.5, 1, 2, 4 for valid inputs.
func Effectiveness(attack Type, defend ...Type) float64 {
	m := 1.0
	for _, d := range defend {
		m *= Matchup(attack, d)
	}
	return m
}

// ContainsType reports whether t is one of types.
func ContainsType(types []Type, t Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
