package ai

import (
	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// BuildWorldState constructs a WorldState snapshot for user choosing among moves.
//
// Precondition: user must not be nil.
// Postcondition: ws.Self.Pokemon == user; nil opponents are skipped.
func BuildWorldState(user ability.Pokemon, moves []*dex.Move, opponents []ability.Pokemon) *WorldState {
	ws := &WorldState{
		Self:  snapshot(user),
		Moves: moves,
	}
	if s := user.Scene(); s != nil {
		ws.Weather = s.Weather()
		ws.Turn = s.TurnNumber()
	}
	for _, o := range opponents {
		if o == nil {
			continue
		}
		ws.Opponents = append(ws.Opponents, snapshot(o))
	}
	return ws
}

func snapshot(p ability.Pokemon) *CombatantState {
	return &CombatantState{
		Pokemon: p,
		Name:    p.Name(),
		HP:      p.HP(),
		MaxHP:   p.MaxHP(),
		Status:  p.Status(),
		Fainted: p.IsFainted(),
	}
}
