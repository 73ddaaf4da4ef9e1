package ai_test

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// stubEvaluator returns result for every predicate and records the hooks it was asked about.
type stubEvaluator struct {
	result bool
	err    error
	hooks  []string
	facts  map[string]any
}

func (s *stubEvaluator) EvalPredicate(hook string, facts map[string]any) (bool, error) {
	s.hooks = append(s.hooks, hook)
	s.facts = facts
	return s.result, s.err
}

var baseStats = battle.BaseStats{HP: 80, Atk: 80, Def: 80, SpAtk: 80, SpDef: 80, Spd: 80}

func newMon(name string, opts ...battle.PokemonOption) *battle.Pokemon {
	return battle.NewPokemon(name, 50, []dex.Type{dex.TypeNormal}, baseStats, opts...)
}

// stateFor builds a world state for self against opponents without a battle.
func stateFor(self *battle.Pokemon, opponents ...*battle.Pokemon) *ai.WorldState {
	var opps []ability.Pokemon
	for _, o := range opponents {
		opps = append(opps, o)
	}
	return ai.BuildWorldState(self, self.Moves(), opps)
}

func brawlerDomain() *ai.Domain {
	return &ai.Domain{
		ID: "brawler",
		Tasks: []*ai.Task{
			{ID: ai.RootTask},
			{ID: "fight"},
		},
		Methods: []*ai.Method{
			{TaskID: ai.RootTask, ID: "scripted", Precondition: "feeling_lucky", Subtasks: []string{"gamble"}},
			{TaskID: ai.RootTask, ID: "patch_up", Precondition: "low_hp", Subtasks: []string{"heal_self", "fight"}},
			{TaskID: ai.RootTask, ID: "default", Subtasks: []string{"fight"}},
			{TaskID: "fight", ID: "finish", Precondition: "opponent_low_hp", Subtasks: []string{"hit_weakest"}},
			{TaskID: "fight", ID: "hit", Precondition: "!opponent_low_hp", Subtasks: []string{"hit_best"}},
		},
		Operators: []*ai.Operator{
			{ID: "gamble", Action: ai.ActionAny},
			{ID: "heal_self", Action: ai.ActionHeal, Target: ai.TargetSelf},
			{ID: "hit_weakest", Action: ai.ActionAttack, Target: ai.TargetWeakest},
			{ID: "hit_best", Action: ai.ActionAttack, Target: ai.TargetBest},
		},
	}
}

func operators(plan []ai.PlannedAction) []string {
	out := make([]string, len(plan))
	for i, a := range plan {
		out[i] = a.Operator
	}
	return out
}

func TestPlanner_Plan_DefaultWithoutEvaluator(t *testing.T) {
	planner := ai.NewPlanner(brawlerDomain(), nil, nil)
	plan, err := planner.Plan(stateFor(newMon("Machop"), newMon("Foe")))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if got := operators(plan); len(got) != 1 || got[0] != "hit_best" {
		t.Fatalf("expected [hit_best], got %v", got)
	}
}

func TestPlanner_Plan_ScriptedPreconditionTrue(t *testing.T) {
	eval := &stubEvaluator{result: true}
	planner := ai.NewPlanner(brawlerDomain(), eval, nil)
	plan, err := planner.Plan(stateFor(newMon("Machop"), newMon("Foe")))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if got := operators(plan); len(got) != 1 || got[0] != "gamble" {
		t.Fatalf("expected [gamble], got %v", got)
	}
	if len(eval.hooks) != 1 || eval.hooks[0] != "feeling_lucky" {
		t.Fatalf("builtins must not reach the evaluator, got %v", eval.hooks)
	}
	if eval.facts["name"] != "Machop" || eval.facts["opponents"] != 1 {
		t.Fatalf("unexpected facts %v", eval.facts)
	}
}

func TestPlanner_Plan_EvaluatorErrorIsFalse(t *testing.T) {
	eval := &stubEvaluator{result: true, err: errors.New("budget exceeded")}
	planner := ai.NewPlanner(brawlerDomain(), eval, nil)
	plan, err := planner.Plan(stateFor(newMon("Machop"), newMon("Foe")))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if got := operators(plan); len(got) != 1 || got[0] != "hit_best" {
		t.Fatalf("expected [hit_best], got %v", got)
	}
}

func TestPlanner_Plan_BuiltinsAndNegation(t *testing.T) {
	planner := ai.NewPlanner(brawlerDomain(), nil, nil)
	hurt := newMon("Machop", battle.WithHP(10))
	weak := newMon("Foe", battle.WithHP(5))
	plan, err := planner.Plan(stateFor(hurt, weak))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	got := operators(plan)
	if len(got) != 2 || got[0] != "heal_self" || got[1] != "hit_weakest" {
		t.Fatalf("expected [heal_self hit_weakest], got %v", got)
	}
}

func TestPlanner_Plan_NilState(t *testing.T) {
	planner := ai.NewPlanner(brawlerDomain(), nil, nil)
	if _, err := planner.Plan(nil); err == nil {
		t.Fatal("expected error for nil state")
	}
}

func TestPlanner_Plan_RecursiveDomainIsBounded(t *testing.T) {
	d := &ai.Domain{
		ID:      "loop",
		Tasks:   []*ai.Task{{ID: ai.RootTask}},
		Methods: []*ai.Method{{TaskID: ai.RootTask, ID: "again", Subtasks: []string{ai.RootTask}}},
	}
	planner := ai.NewPlanner(d, nil, nil)
	if _, err := planner.Plan(stateFor(newMon("A"), newMon("B"))); err == nil {
		t.Fatal("expected error for a domain that never terminates")
	}
}

func TestNewPlanner_NilDomainPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	ai.NewPlanner(nil, nil, nil)
}

func TestBuiltinPredicates_Sorted(t *testing.T) {
	names := ai.BuiltinPredicates()
	if len(names) == 0 {
		t.Fatal("expected builtin predicates")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("not sorted: %v", names)
		}
	}
}

func TestProperty_Planner_NeverReturnsNilSlice(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		eval := &stubEvaluator{result: rapid.Bool().Draw(rt, "scripted")}
		planner := ai.NewPlanner(brawlerDomain(), eval, nil)
		self := newMon("Self", battle.WithHP(rapid.IntRange(1, 140).Draw(rt, "hp")))
		foe := newMon("Foe", battle.WithHP(rapid.IntRange(1, 140).Draw(rt, "foe_hp")))
		plan, err := planner.Plan(stateFor(self, foe))
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if plan == nil {
			rt.Fatal("Plan must return non-nil slice")
		}
		if len(plan) == 0 {
			rt.Fatal("brawler always plans at least one action")
		}
	})
}
