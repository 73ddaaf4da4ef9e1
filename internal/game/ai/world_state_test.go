package ai_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

var moveTable = dex.MustLoadMoves()

func moves(t testing.TB, ids ...string) []*dex.Move {
	t.Helper()
	out := make([]*dex.Move, 0, len(ids))
	for _, id := range ids {
		m, ok := moveTable.Get(id)
		if !ok {
			t.Fatalf("move %q not found", id)
		}
		out = append(out, m)
	}
	return out
}

func TestClassOf(t *testing.T) {
	cases := map[string]string{
		"tackle":       ai.ActionAttack,
		"giga_drain":   ai.ActionAttack,
		"recover":      ai.ActionHeal,
		"swords_dance": ai.ActionSetup,
		"dragon_dance": ai.ActionSetup,
		"toxic":        ai.ActionStatus,
		"growl":        ai.ActionStatus,
		"sunny_day":    ai.ActionStatus,
	}
	for id, want := range cases {
		if got := ai.ClassOf(moves(t, id)[0]); got != want {
			t.Errorf("ClassOf(%s) = %q, want %q", id, got, want)
		}
	}
}

func TestWorldState_LivingOpponentsExcludesFainted(t *testing.T) {
	ws := &ai.WorldState{
		Self: &ai.CombatantState{Name: "Self", HP: 10, MaxHP: 10},
		Opponents: []*ai.CombatantState{
			{Name: "Down", HP: 0, MaxHP: 20, Fainted: true},
			{Name: "Up", HP: 20, MaxHP: 20},
		},
	}
	living := ws.LivingOpponents()
	if len(living) != 1 || living[0].Name != "Up" {
		t.Fatalf("expected only Up, got %v", living)
	}
	if ws.FirstOpponent().Name != "Up" {
		t.Fatal("first opponent must skip fainted")
	}
}

func TestWorldState_WeakestOpponent(t *testing.T) {
	ws := &ai.WorldState{
		Self: &ai.CombatantState{Name: "Self"},
		Opponents: []*ai.CombatantState{
			{Name: "A", HP: 50, MaxHP: 100},
			{Name: "B", HP: 10, MaxHP: 20},
			{Name: "C", HP: 30, MaxHP: 100},
		},
	}
	if w := ws.WeakestOpponent(); w == nil || w.Name != "C" {
		t.Fatalf("expected C, got %v", w)
	}
}

func TestWorldState_WeakestOpponent_NoneLeft(t *testing.T) {
	ws := &ai.WorldState{Self: &ai.CombatantState{Name: "Self"}}
	if ws.WeakestOpponent() != nil || ws.FirstOpponent() != nil {
		t.Fatal("expected nil with no opponents")
	}
}

func TestWorldState_ResolveTargets(t *testing.T) {
	ws := &ai.WorldState{
		Self: &ai.CombatantState{Name: "Self"},
		Opponents: []*ai.CombatantState{
			{Name: "A", HP: 50, MaxHP: 100},
			{Name: "B", HP: 10, MaxHP: 100},
		},
	}
	if got := ws.ResolveTargets(ai.TargetBest); len(got) != 2 {
		t.Fatalf("best_target should consider every opponent, got %d", len(got))
	}
	if got := ws.ResolveTargets(ai.TargetWeakest); len(got) != 1 || got[0].Name != "B" {
		t.Fatalf("expected B, got %v", got)
	}
	if got := ws.ResolveTargets(ai.TargetFirst); len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("expected A, got %v", got)
	}
	if got := ws.ResolveTargets(ai.TargetSelf); got != nil {
		t.Fatalf("self resolves to no opponent, got %v", got)
	}
}

func TestWorldState_MovesForKeepsSlotOrder(t *testing.T) {
	ws := &ai.WorldState{
		Self:  &ai.CombatantState{Name: "Self"},
		Moves: moves(t, "swords_dance", "tackle", "toxic", "body_slam"),
	}
	got := ws.MovesFor(ai.ActionAttack)
	if len(got) != 2 || got[0].ID != "tackle" || got[1].ID != "body_slam" {
		t.Fatalf("unexpected attack moves %v", got)
	}
	if len(ws.MovesFor(ai.ActionAny)) != 4 {
		t.Fatal("any must return every move")
	}
	if len(ws.MovesFor(ai.ActionHeal)) != 0 {
		t.Fatal("no heal moves expected")
	}
}

func TestBuildWorldState_Snapshots(t *testing.T) {
	self := newMon("Snorlax", battle.WithMoves(moves(t, "body_slam", "recover")...), battle.WithStatus(dex.StatusBurn))
	foe := newMon("Foe", battle.WithHP(0))
	ws := stateFor(self, foe)

	if ws.Self.Pokemon != self || ws.Self.Status != dex.StatusBurn {
		t.Fatalf("unexpected self snapshot %+v", ws.Self)
	}
	if len(ws.Opponents) != 1 || !ws.Opponents[0].Fainted {
		t.Fatalf("expected one fainted opponent, got %+v", ws.Opponents)
	}
	facts := ws.Facts()
	if facts["has_heal_move"] != true || facts["has_setup_move"] != false {
		t.Fatalf("unexpected move facts %v", facts)
	}
	if facts["opponents"] != 0 {
		t.Fatalf("fainted opponents must not count, got %v", facts["opponents"])
	}
}

func TestProperty_WeakestOpponent_HasMinimumHP(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(rt, "n")
		ws := &ai.WorldState{Self: &ai.CombatantState{Name: "Self"}}
		for i := 0; i < n; i++ {
			maxHP := rapid.IntRange(1, 500).Draw(rt, "max_hp")
			ws.Opponents = append(ws.Opponents, &ai.CombatantState{
				Name:  string(rune('A' + i)),
				HP:    rapid.IntRange(0, maxHP).Draw(rt, "hp"),
				MaxHP: maxHP,
			})
		}
		w := ws.WeakestOpponent()
		if w == nil {
			rt.Fatal("expected a weakest opponent")
		}
		for _, c := range ws.LivingOpponents() {
			if c.HPPercent() < w.HPPercent() {
				rt.Fatalf("%s (%.1f%%) is weaker than chosen %s (%.1f%%)", c.Name, c.HPPercent(), w.Name, w.HPPercent())
			}
		}
	})
}
