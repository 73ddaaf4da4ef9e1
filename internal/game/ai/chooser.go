package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

const (
	// spreadFactor scales the damage of moves that hit every opponent.
	spreadFactor = 0.75
	// setupCeiling is the stage at which setup moves stop being worth using.
	setupCeiling = 2
)

// Chooser picks moves by planning over an HTN domain and scoring the candidates the
// plan allows. It implements battle.Chooser and holds no per-battle state.
type Chooser struct {
	planner *Planner
	scorer  *Scorer
	logger  *zap.Logger
}

// NewChooser returns a Chooser.
//
// Precondition: planner and scorer must not be nil.
func NewChooser(planner *Planner, scorer *Scorer, logger *zap.Logger) *Chooser {
	if planner == nil || scorer == nil {
		panic("ai.NewChooser: planner and scorer must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chooser{planner: planner, scorer: scorer, logger: logger}
}

// ChooseMove picks a move and a target for user.
//
// Postcondition: Returns (nil, nil, nil) when moves is empty. Otherwise returns one of
// moves; the first plan step that yields a usable move wins, then the highest-scoring
// attack, then the first move.
func (c *Chooser) ChooseMove(ctx context.Context, user ability.Pokemon, moves []*dex.Move, opponents []ability.Pokemon) (*dex.Move, ability.Pokemon, error) {
	if len(moves) == 0 {
		return nil, nil, nil
	}
	ws := BuildWorldState(user, moves, opponents)
	plan, err := c.planner.Plan(ws)
	if err != nil {
		return nil, nil, err
	}
	plan = append(plan, PlannedAction{Operator: "fallback", Action: ActionAttack, Target: TargetBest})
	for _, step := range plan {
		m, target, err := c.pick(ctx, ws, step)
		if err != nil {
			return nil, nil, fmt.Errorf("ai: %s for %s: %w", step.Operator, user.Name(), err)
		}
		if m != nil {
			c.logger.Debug("ai: move chosen",
				zap.String("domain", c.planner.Domain().ID),
				zap.String("pokemon", user.Name()),
				zap.String("operator", step.Operator),
				zap.String("move", m.ID),
			)
			return m, target, nil
		}
	}
	var target ability.Pokemon
	if first := ws.FirstOpponent(); first != nil {
		target = first.Pokemon
	}
	return moves[0], target, nil
}

func (c *Chooser) pick(ctx context.Context, ws *WorldState, step PlannedAction) (*dex.Move, ability.Pokemon, error) {
	candidates := ws.MovesFor(step.Action)
	if len(candidates) == 0 {
		return nil, nil, nil
	}
	targets := ws.ResolveTargets(step.Target)
	switch step.Action {
	case ActionAttack, ActionAny:
		return c.bestAttack(ctx, ws.Self.Pokemon, candidates, targets)
	case ActionStatus:
		return c.firstStatus(ctx, ws.Self.Pokemon, candidates, targets)
	case ActionSetup:
		return firstSetup(ws.Self.Pokemon, candidates), nil, nil
	case ActionHeal:
		if ws.Self.HP >= ws.Self.MaxHP {
			return nil, nil, nil
		}
		return candidates[0], nil, nil
	}
	return nil, nil, nil
}

// bestAttack returns the highest-scoring damaging move. Ties keep the earlier move and target.
func (c *Chooser) bestAttack(ctx context.Context, user ability.Pokemon, moves []*dex.Move, targets []*CombatantState) (*dex.Move, ability.Pokemon, error) {
	var (
		best       *dex.Move
		bestTarget ability.Pokemon
		bestScore  float64
	)
	for _, m := range moves {
		if !m.IsDamaging() {
			continue
		}
		if spread(m) {
			total := 0.0
			for _, t := range targets {
				s, err := c.scorer.Score(ctx, user, t.Pokemon, m)
				if err != nil {
					return nil, nil, err
				}
				total += s
			}
			if len(targets) > 1 {
				total *= spreadFactor
			}
			if total > bestScore {
				best, bestTarget, bestScore = m, pokemonOf(targets), total
			}
			continue
		}
		for _, t := range targets {
			s, err := c.scorer.Score(ctx, user, t.Pokemon, m)
			if err != nil {
				return nil, nil, err
			}
			if s > bestScore {
				best, bestTarget, bestScore = m, t.Pokemon, s
			}
		}
	}
	return best, bestTarget, nil
}

// firstStatus returns the first status move that can affect one of targets, and that target.
// Moves that neither inflict a status nor add a tag are skipped.
func (c *Chooser) firstStatus(ctx context.Context, user ability.Pokemon, moves []*dex.Move, targets []*CombatantState) (*dex.Move, ability.Pokemon, error) {
	for _, m := range moves {
		for _, t := range targets {
			switch {
			case m.Status != dex.StatusNone:
				if t.Pokemon.CanSetStatus(ctx, m.Status, user) {
					return m, t.Pokemon, nil
				}
			case m.Tag != dex.TagNone:
				if !t.Pokemon.HasTag(m.Tag) && t.Pokemon.CanAddTag(m.Tag) {
					return m, t.Pokemon, nil
				}
			}
		}
	}
	return nil, nil, nil
}

// firstSetup returns the first setup move that still raises a stat below setupCeiling.
func firstSetup(user ability.Pokemon, moves []*dex.Move) *dex.Move {
	for _, m := range moves {
		for _, sc := range m.StatChanges {
			if user.StatStage(sc.Stat) < setupCeiling {
				return m
			}
		}
	}
	return nil
}

func spread(m *dex.Move) bool {
	return m.Target == dex.TargetAllNearEnemies || m.Target == dex.TargetAllNearOthers
}

func pokemonOf(targets []*CombatantState) ability.Pokemon {
	if len(targets) == 0 {
		return nil
	}
	return targets[0].Pokemon
}
