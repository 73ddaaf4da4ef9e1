package ai

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// PredicateEvaluator evaluates named script predicates against a fact table.
// *scripting.Manager satisfies it.
type PredicateEvaluator interface {
	EvalPredicate(hook string, facts map[string]any) (bool, error)
}

// PlannedAction is one primitive action produced by the planner.
type PlannedAction struct {
	Operator string
	Action   string
	Target   string
}

// Predicate is a precondition evaluated in Go.
type Predicate func(ws *WorldState) bool

// Builtin predicates, available to every domain without a script host.
var builtinPredicates = map[string]Predicate{
	"low_hp":              func(ws *WorldState) bool { return ws.Self.HPPercent() <= 35 },
	"healthy":             func(ws *WorldState) bool { return ws.Self.HPPercent() >= 75 },
	"first_turn_on_field": func(ws *WorldState) bool { return ws.Self.Pokemon.SwitchedIn() },
	"has_attack_move":     func(ws *WorldState) bool { return len(ws.MovesFor(ActionAttack)) > 0 },
	"has_status_move":     func(ws *WorldState) bool { return len(ws.MovesFor(ActionStatus)) > 0 },
	"has_setup_move":      func(ws *WorldState) bool { return len(ws.MovesFor(ActionSetup)) > 0 },
	"has_heal_move":       func(ws *WorldState) bool { return len(ws.MovesFor(ActionHeal)) > 0 },
	"opponent_low_hp": func(ws *WorldState) bool {
		w := ws.WeakestOpponent()
		return w != nil && w.HPPercent() <= 25
	},
	"opponent_unstatused": func(ws *WorldState) bool {
		for _, c := range ws.LivingOpponents() {
			if c.Status == dex.StatusNone {
				return true
			}
		}
		return false
	},
	"can_setup": func(ws *WorldState) bool {
		for _, m := range ws.MovesFor(ActionSetup) {
			for _, sc := range m.StatChanges {
				if ws.Self.Pokemon.StatStage(sc.Stat) < setupCeiling {
					return true
				}
			}
		}
		return false
	},
}

// BuiltinPredicates returns the sorted names of the predicates the planner evaluates in Go.
func BuiltinPredicates() []string {
	return slices.Sorted(maps.Keys(builtinPredicates))
}

// Planner evaluates an HTN domain for one Pokemon and produces an ordered list of
// candidate actions. The first action that yields a usable move is taken.
//
// Invariant: domain must not be nil.
type Planner struct {
	domain *Domain
	eval   PredicateEvaluator
	logger *zap.Logger
}

// NewPlanner constructs a Planner. eval may be nil, in which case only builtin
// predicates hold and every scripted precondition fails.
//
// Precondition: domain must not be nil.
func NewPlanner(domain *Domain, eval PredicateEvaluator, logger *zap.Logger) *Planner {
	if domain == nil {
		panic("ai.NewPlanner: domain must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{domain: domain, eval: eval, logger: logger}
}

// Domain returns the planner's domain.
func (p *Planner) Domain() *Domain { return p.domain }

// Plan evaluates the HTN domain against state and returns an ordered plan.
//
// Precondition: state and state.Self must not be nil.
// Postcondition: returns non-nil slice (may be empty); predicate failures are treated as false.
func (p *Planner) Plan(state *WorldState) ([]PlannedAction, error) {
	if state == nil || state.Self == nil {
		return nil, errors.New("ai.Planner.Plan: state and state.Self must not be nil")
	}

	taskQueue := []string{RootTask}
	result := []PlannedAction{}

	const maxSteps = 64
	steps := 0
	var facts map[string]any

	for len(taskQueue) > 0 {
		if steps++; steps > maxSteps {
			return result, fmt.Errorf("ai.Planner.Plan: domain %q exceeded %d decomposition steps", p.domain.ID, maxSteps)
		}
		current := taskQueue[0]
		taskQueue = taskQueue[1:]

		if op, ok := p.domain.OperatorByID(current); ok {
			result = append(result, PlannedAction{Operator: op.ID, Action: op.Action, Target: op.Target})
			continue
		}

		method := p.findApplicableMethod(current, state, &facts)
		if method == nil {
			continue
		}
		taskQueue = append(append([]string(nil), method.Subtasks...), taskQueue...)
	}
	return result, nil
}

// findApplicableMethod returns the first Method for taskID whose precondition passes,
// or nil if none applies. facts is built lazily on the first scripted predicate.
func (p *Planner) findApplicableMethod(taskID string, state *WorldState, facts *map[string]any) *Method {
	for _, m := range p.domain.MethodsForTask(taskID) {
		if p.holds(m.Precondition, state, facts) {
			return m
		}
	}
	return nil
}

func (p *Planner) holds(precondition string, state *WorldState, facts *map[string]any) bool {
	if precondition == "" {
		return true
	}
	name, negate := strings.CutPrefix(precondition, "!")
	if pred, ok := builtinPredicates[name]; ok {
		return pred(state) != negate
	}
	if p.eval == nil {
		return false
	}
	if *facts == nil {
		*facts = state.Facts()
	}
	ok, err := p.eval.EvalPredicate(name, *facts)
	if err != nil {
		p.logger.Debug("ai: predicate failed",
			zap.String("domain", p.domain.ID),
			zap.String("predicate", name),
			zap.Error(err),
		)
		return false
	}
	return ok != negate
}
