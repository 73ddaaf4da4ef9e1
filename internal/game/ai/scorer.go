package ai

import (
	"context"
	"slices"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Scorer estimates how much damage a move would do without changing battle state.
// Defender abilities are consulted through a simulated PreDefend dispatch, so immunities
// such as Water Absorb or Levitate score zero.
type Scorer struct {
	engine *ability.Engine
}

// NewScorer returns a Scorer backed by engine.
//
// Precondition: engine must not be nil.
func NewScorer(engine *ability.Engine) *Scorer {
	if engine == nil {
		panic("ai.NewScorer: engine must not be nil")
	}
	return &Scorer{engine: engine}
}

// Score returns the expected relative damage of user using m on target.
//
// Postcondition: status moves and moves the target is immune to score 0.
func (s *Scorer) Score(ctx context.Context, user, target ability.Pokemon, m *dex.Move) (float64, error) {
	if !m.IsDamaging() || target == nil || target.IsFainted() {
		return 0, nil
	}
	d := ability.NewDefendArgs(user, m)
	d.Simulated = true
	d.TypeMultiplier = target.Effectiveness(m.Type)
	if err := s.engine.PreDefend(ctx, target, d); err != nil {
		return 0, err
	}
	if d.Cancelled || d.TypeMultiplier <= 0 {
		return 0, nil
	}

	power := float64(m.Power)
	if m.OHKO {
		power = 150
	} else if power <= 0 {
		power = 40
	}
	score := power * d.TypeMultiplier
	if slices.Contains(user.Types(), m.Type) {
		score *= 1.5
	}
	if m.IsMultiHit() {
		score *= float64(m.MinHits+m.MaxHits) / 2
	}
	if d.Accuracy >= 0 {
		score *= float64(min(d.Accuracy, 100)) / 100
	}

	atk, def := dex.BattleStatAtk, dex.BattleStatDef
	if m.Category == dex.CategorySpecial {
		atk, def = dex.BattleStatSpAtk, dex.BattleStatSpDef
	}
	score *= effective(user, atk) / max(effective(target, def), 1)
	if m.Drain > 0 {
		score *= 1 + m.Drain/4
	}
	if m.Recoil > 0 {
		score *= 1 - m.Recoil/2
	}
	return score, nil
}

func effective(p ability.Pokemon, bs dex.BattleStat) float64 {
	st, _ := bs.Stat()
	return float64(p.Stat(st)) * dex.StageMultiplier(p.StatStage(bs))
}
