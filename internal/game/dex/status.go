package dex

import (
	"fmt"
	"strings"
)

// StatusEffect is a non-volatile status condition.
type StatusEffect int

const (
	StatusNone StatusEffect = iota
	StatusPoison
	StatusToxic
	StatusParalysis
	StatusSleep
	StatusFreeze
	StatusBurn
	StatusFaint
)

var statusNames = [...]string{"none", "poison", "toxic", "paralysis", "sleep", "freeze", "burn", "faint"}

// String returns the lowercase status name.
func (s StatusEffect) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// Noun returns the phrase used in battle messages, e.g. "paralysis" or "sleep".
func (s StatusEffect) Noun() string {
	switch s {
	case StatusToxic:
		return "bad poison"
	default:
		return s.String()
	}
}

// ParseStatusEffect resolves a lowercase status name.
func ParseStatusEffect(s string) (StatusEffect, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range statusNames {
		if n == name {
			return StatusEffect(i), nil
		}
	}
	return StatusNone, fmt.Errorf("dex: unknown status effect %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StatusEffect) UnmarshalText(b []byte) error {
	v, err := ParseStatusEffect(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// NonVolatileStatusEffects returns every status a Pokemon can be afflicted with.
func NonVolatileStatusEffects() []StatusEffect {
	return []StatusEffect{StatusPoison, StatusToxic, StatusParalysis, StatusSleep, StatusFreeze, StatusBurn}
}

// ContainsStatus reports whether s is one of effects.
func ContainsStatus(effects []StatusEffect, s StatusEffect) bool {
	for _, e := range effects {
		if e == s {
			return true
		}
	}
	return false
}
