package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/storage/postgres"
)

// simulator runs a batch of independent battles over one shared engine.
type simulator struct {
	cfg    config.SimulatorConfig
	engine *ability.Engine
	roster *battle.Roster
	moves  *dex.MoveTable
	items  *dex.ItemTable
	player battle.Chooser
	enemy  battle.Chooser
	logger *zap.Logger
}

// outcome is the result of one battle.
type outcome struct {
	result    battle.Result
	abilities []ability.ID
}

// summary aggregates every battle in a run.
type summary struct {
	Battles    int
	PlayerWins int
	EnemyWins  int
	Draws      int
	Turns      int
	Money      float64
	Loot       map[string]int
	Activation map[ability.ID]int
	Elapsed    time.Duration
}

// AverageTurns returns the mean battle length.
func (s summary) AverageTurns() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Battles)
}

// TopAbilities returns up to n abilities ordered by activation count, then id.
func (s summary) TopAbilities(n int) []ability.ID {
	ids := slices.Collect(maps.Keys(s.Activation))
	slices.SortFunc(ids, func(a, b ability.ID) int {
		if d := s.Activation[b] - s.Activation[a]; d != 0 {
			return d
		}
		return int(a) - int(b)
	})
	return ids[:min(n, len(ids))]
}

// source returns the randomness for battle i. A zero seed draws from crypto/rand.
func (s *simulator) source(i int) dice.Source {
	if s.cfg.Seed == 0 {
		return dice.NewCryptoSource()
	}
	return dice.NewSeededSource(s.cfg.Seed + uint64(i))
}

// run plays cfg.Battles battles with at most cfg.Concurrency in flight.
//
// Postcondition: On success every battle finished; the first error cancels the rest.
func (s *simulator) run(ctx context.Context) (summary, error) {
	start := time.Now()
	outcomes := make([]outcome, s.cfg.Battles)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range outcomes {
		g.Go(func() error {
			o, err := s.one(ctx, i)
			if err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}

	sum := summary{
		Battles:    len(outcomes),
		Loot:       make(map[string]int),
		Activation: make(map[ability.ID]int),
		Elapsed:    time.Since(start),
	}
	for _, o := range outcomes {
		switch {
		case o.result.Draw:
			sum.Draws++
		case o.result.Winner == battle.SidePlayer:
			sum.PlayerWins++
		default:
			sum.EnemyWins++
		}
		sum.Turns += o.result.Turns
		sum.Money += o.result.Money
		for _, item := range o.result.Loot {
			sum.Loot[item.ID]++
		}
		for _, id := range o.abilities {
			sum.Activation[id]++
		}
	}
	return sum, nil
}

func (s *simulator) one(ctx context.Context, i int) (outcome, error) {
	if s.cfg.BattleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.BattleTimeout)
		defer cancel()
	}
	player, enemy, err := s.roster.Build(s.engine.Registry(), s.moves, s.items)
	if err != nil {
		return outcome{}, err
	}
	roller := dice.NewLoggedRoller(s.source(i), s.logger)
	b, err := battle.New(s.engine, s.logger, roller, player, enemy,
		battle.WithDouble(s.cfg.Double),
		battle.WithMaxTurns(s.cfg.MaxTurns),
	)
	if err != nil {
		return outcome{}, err
	}
	if err := b.Start(ctx); err != nil {
		return outcome{}, err
	}
	res, err := b.Run(ctx, s.player, s.enemy)
	if err != nil {
		return outcome{}, err
	}
	s.logger.Debug("battle finished",
		zap.String("battle_id", b.ID()),
		zap.Int("index", i),
		zap.Stringer("result", res),
	)

	var applied []ability.ID
	for _, side := range []battle.Side{battle.SidePlayer, battle.SideEnemy} {
		for _, p := range b.Party(side) {
			applied = append(applied, p.BattleData().AbilitiesApplied...)
		}
	}
	return outcome{result: res, abilities: applied}, nil
}

// record converts sum into a storable run. Abilities are stored under their lookup keys.
func record(sum summary, cfg config.SimulatorConfig, started time.Time, reg *ability.Registry) postgres.Run {
	run := postgres.Run{
		StartedAt:   started,
		PlayerAI:    cfg.PlayerAI,
		EnemyAI:     cfg.EnemyAI,
		Seed:        cfg.Seed,
		Double:      cfg.Double,
		Battles:     sum.Battles,
		PlayerWins:  sum.PlayerWins,
		EnemyWins:   sum.EnemyWins,
		Draws:       sum.Draws,
		Turns:       sum.Turns,
		Money:       sum.Money,
		Elapsed:     sum.Elapsed,
		Activations: make(map[string]int, len(sum.Activation)),
		Loot:        maps.Clone(sum.Loot),
	}
	for id, n := range sum.Activation {
		key := id.String()
		if rec, ok := reg.Get(id); ok {
			key = rec.Key()
		}
		run.Activations[key] += n
	}
	return run
}
