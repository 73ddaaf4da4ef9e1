package ai

import (
	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// CombatantState captures one Pokemon's battle-relevant state at planning time.
type CombatantState struct {
	Pokemon ability.Pokemon
	Name    string
	HP      int
	MaxHP   int
	Status  dex.StatusEffect
	Fainted bool
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (c *CombatantState) HPPercent() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP) * 100
}

// WorldState is the snapshot passed to the planner for one Pokemon's decision.
//
// Invariant: Self must not be nil.
type WorldState struct {
	Self      *CombatantState
	Moves     []*dex.Move
	Opponents []*CombatantState
	Weather   dex.WeatherType
	Turn      int
}

// LivingOpponents returns the opponents that have not fainted, in field order.
func (ws *WorldState) LivingOpponents() []*CombatantState {
	var out []*CombatantState
	for _, c := range ws.Opponents {
		if !c.Fainted {
			out = append(out, c)
		}
	}
	return out
}

// FirstOpponent returns the first living opponent, or nil.
func (ws *WorldState) FirstOpponent() *CombatantState {
	if opps := ws.LivingOpponents(); len(opps) > 0 {
		return opps[0]
	}
	return nil
}

// WeakestOpponent returns the living opponent with the lowest HP percentage, or nil.
//
// Postcondition: ties broken by field order.
func (ws *WorldState) WeakestOpponent() *CombatantState {
	opps := ws.LivingOpponents()
	if len(opps) == 0 {
		return nil
	}
	weakest := opps[0]
	for _, c := range opps[1:] {
		if c.HPPercent() < weakest.HPPercent() {
			weakest = c
		}
	}
	return weakest
}

// ResolveTargets maps a target token to the opponents an operator may aim at.
//
// Postcondition: TargetSelf and unknown tokens yield nil; TargetBest yields every living opponent.
func (ws *WorldState) ResolveTargets(token string) []*CombatantState {
	switch token {
	case TargetWeakest:
		if c := ws.WeakestOpponent(); c != nil {
			return []*CombatantState{c}
		}
	case TargetFirst:
		if c := ws.FirstOpponent(); c != nil {
			return []*CombatantState{c}
		}
	case TargetBest, "":
		return ws.LivingOpponents()
	}
	return nil
}

// MovesFor returns the known moves of the given action class, in move-slot order.
func (ws *WorldState) MovesFor(action string) []*dex.Move {
	var out []*dex.Move
	for _, m := range ws.Moves {
		if action == ActionAny || ClassOf(m) == action {
			out = append(out, m)
		}
	}
	return out
}

// Facts returns the fact table handed to scripted predicates: the Pokemon's own facts
// plus a summary of the decision at hand.
func (ws *WorldState) Facts() map[string]any {
	facts := ability.Facts(ws.Self.Pokemon)
	facts["opponents"] = len(ws.LivingOpponents())
	if w := ws.WeakestOpponent(); w != nil {
		facts["weakest_opponent_hp_ratio"] = w.HPPercent() / 100
		facts["weakest_opponent_status"] = w.Status.String()
	}
	for _, action := range []string{ActionAttack, ActionStatus, ActionSetup, ActionHeal} {
		facts["has_"+action+"_move"] = len(ws.MovesFor(action)) > 0
	}
	return facts
}

// ClassOf sorts a move into the operator action that would select it.
func ClassOf(m *dex.Move) string {
	switch {
	case m.IsDamaging():
		return ActionAttack
	case m.Heal > 0:
		return ActionHeal
	case isSetup(m):
		return ActionSetup
	default:
		return ActionStatus
	}
}

// isSetup reports whether m only raises the user's own stats.
func isSetup(m *dex.Move) bool {
	if len(m.StatChanges) == 0 || m.Status != dex.StatusNone {
		return false
	}
	for _, sc := range m.StatChanges {
		if !sc.Self || sc.Levels <= 0 {
			return false
		}
	}
	return true
}
