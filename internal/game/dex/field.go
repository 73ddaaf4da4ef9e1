package dex

import (
	"fmt"
	"strings"
)

// WeatherType is the weather active on the field.
type WeatherType int

const (
	WeatherNone WeatherType = iota
	WeatherSunny
	WeatherRain
	WeatherSandstorm
	WeatherHail
	WeatherSnow
	WeatherFog
	WeatherHeavyRain
	WeatherHarshSun
	WeatherStrongWinds
)

var weatherNames = [...]string{"none", "sunny", "rain", "sandstorm", "hail", "snow", "fog", "heavy_rain", "harsh_sun", "strong_winds"}

// String returns the snake-case weather name.
func (w WeatherType) String() string {
	if w < 0 || int(w) >= len(weatherNames) {
		return fmt.Sprintf("weather(%d)", int(w))
	}
	return weatherNames[w]
}

// ParseWeather resolves a snake-case weather name.
func ParseWeather(s string) (WeatherType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weatherNames {
		if n == name {
			return WeatherType(i), nil
		}
	}
	return WeatherNone, fmt.Errorf("dex: unknown weather %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *WeatherType) UnmarshalText(b []byte) error {
	v, err := ParseWeather(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// IsImmutable reports whether only another immutable weather may replace w.
func (w WeatherType) IsImmutable() bool {
	return w == WeatherHeavyRain || w == WeatherHarshSun || w == WeatherStrongWinds
}

// IsDamaging reports whether w deals chip damage at the end of each turn.
func (w WeatherType) IsDamaging() bool {
	return w == WeatherSandstorm || w == WeatherHail
}

// DamageImmune reports whether a Pokemon of the given types ignores chip damage from w.
func (w WeatherType) DamageImmune(types []Type) bool {
	switch w {
	case WeatherSandstorm:
		return ContainsType(types, TypeRock) || ContainsType(types, TypeGround) || ContainsType(types, TypeSteel)
	case WeatherHail:
		return ContainsType(types, TypeIce)
	default:
		return true
	}
}

// StartMessage is the line announced when w begins.
func (w WeatherType) StartMessage() string {
	switch w {
	case WeatherSunny:
		return "The sunlight got bright!"
	case WeatherRain:
		return "A heavy rain began to fall!"
	case WeatherSandstorm:
		return "A sandstorm brewed!"
	case WeatherHail:
		return "It started to hail!"
	case WeatherSnow:
		return "It started to snow!"
	case WeatherFog:
		return "A thick fog emerged!"
	case WeatherHeavyRain:
		return "A heavy downpour started!"
	case WeatherHarshSun:
		return "The sunlight got hot!"
	case WeatherStrongWinds:
		return "A heavy wind began!"
	default:
		return ""
	}
}

// ClearMessage is the line announced when w ends.
func (w WeatherType) ClearMessage() string {
	switch w {
	case WeatherSunny, WeatherHarshSun:
		return "The sunlight faded."
	case WeatherRain, WeatherHeavyRain:
		return "The rain stopped."
	case WeatherSandstorm:
		return "The sandstorm subsided."
	case WeatherHail:
		return "The hail stopped."
	case WeatherSnow:
		return "The snow stopped."
	case WeatherFog:
		return "The fog disappeared."
	case WeatherStrongWinds:
		return "The heavy wind stopped."
	default:
		return ""
	}
}

// TerrainType is the terrain active on the field.
type TerrainType int

const (
	TerrainNone TerrainType = iota
	TerrainMisty
	TerrainElectric
	TerrainGrassy
	TerrainPsychic
)

var terrainNames = [...]string{"none", "misty", "electric", "grassy", "psychic"}

// String returns the lowercase terrain name.
func (t TerrainType) String() string {
	if t < 0 || int(t) >= len(terrainNames) {
		return fmt.Sprintf("terrain(%d)", int(t))
	}
	return terrainNames[t]
}

// ParseTerrain resolves a lowercase terrain name.
func ParseTerrain(s string) (TerrainType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range terrainNames {
		if n == name {
			return TerrainType(i), nil
		}
	}
	return TerrainNone, fmt.Errorf("dex: unknown terrain %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TerrainType) UnmarshalText(b []byte) error {
	v, err := ParseTerrain(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// BattlerTagType is a volatile condition attached to one Pokemon.
type BattlerTagType int

const (
	TagNone BattlerTagType = iota
	TagFlinched
	TagConfused
	TagInfatuated
	TagDrowsy
	TagTruant
	TagSlowStart
	TagCharged
	TagIceFace
	TagProtosynthesis
	TagQuarkDrive
	TagPerishSong
	TagFireBoost
	TagDisabled
	TagProtected
	TagTrapped
	TagGrounded
	TagSeeded
	TagTaunt
	// TagSemiInvulnerable covers the two-turn moves that take the user off the field.
	TagSemiInvulnerable
)

var tagNames = [...]string{
	"none", "flinched", "confused", "infatuated", "drowsy", "truant", "slow_start", "charged", "ice_face",
	"protosynthesis", "quark_drive", "perish_song", "fire_boost", "disabled", "protected", "trapped",
	"grounded", "seeded", "taunt", "semi_invulnerable",
}

// String returns the snake-case tag name.
func (t BattlerTagType) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return fmt.Sprintf("tag(%d)", int(t))
	}
	return tagNames[t]
}

// ParseBattlerTag resolves a snake-case tag name.
func ParseBattlerTag(s string) (BattlerTagType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tagNames {
		if n == name {
			return BattlerTagType(i), nil
		}
	}
	return TagNone, fmt.Errorf("dex: unknown battler tag %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *BattlerTagType) UnmarshalText(b []byte) error {
	v, err := ParseBattlerTag(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ArenaTagType is an effect attached to one side of the field, or to both.
type ArenaTagType int

const (
	ArenaTagNone ArenaTagType = iota
	ArenaTagReflect
	ArenaTagLightScreen
	ArenaTagAuroraVeil
	ArenaTagTailwind
	ArenaTagSpikes
	ArenaTagToxicSpikes
	ArenaTagStealthRock
	ArenaTagGravity
	ArenaTagSafeguard
)

var arenaTagNames = [...]string{"none", "reflect", "light_screen", "aurora_veil", "tailwind", "spikes", "toxic_spikes", "stealth_rock", "gravity", "safeguard"}

// String returns the snake-case arena tag name.
func (t ArenaTagType) String() string {
	if t < 0 || int(t) >= len(arenaTagNames) {
		return fmt.Sprintf("arenatag(%d)", int(t))
	}
	return arenaTagNames[t]
}

// ParseArenaTag resolves a snake-case arena tag name.
func ParseArenaTag(s string) (ArenaTagType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range arenaTagNames {
		if n == name {
			return ArenaTagType(i), nil
		}
	}
	return ArenaTagNone, fmt.Errorf("dex: unknown arena tag %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ArenaTagType) UnmarshalText(b []byte) error {
	v, err := ParseArenaTag(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Biome is the backdrop a battle takes place in. Biome changes can reset weather.
type Biome string
