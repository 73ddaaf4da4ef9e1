// Package dice provides the randomness abstraction and roll-result types used
// by battles and scripts. Every random decision in a battle flows through a Source.
package dice

import (
	"fmt"
	"strings"
)

// RollResult records one evaluated Expression.
//
// Invariant: Total() == Sum() + Modifier.
type RollResult struct {
	Expression string
	Dice       []int // kept dice, highest first when the expression keeps a subset
	Modifier   int
}

// Sum returns the total of the kept dice.
func (r RollResult) Sum() int {
	sum := 0
	for _, d := range r.Dice {
		sum += d
	}
	return sum
}

// Total returns the kept dice plus the modifier.
func (r RollResult) Total() int { return r.Sum() + r.Modifier }

// String renders the roll for battle logs, e.g. "1d16+84: 13+84 = 97".
func (r RollResult) String() string {
	parts := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		parts[i] = fmt.Sprint(d)
	}
	s := r.Expression + ": " + strings.Join(parts, "+")
	if r.Modifier != 0 {
		s += fmt.Sprintf("%+d", r.Modifier)
	}
	return fmt.Sprintf("%s = %d", s, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
