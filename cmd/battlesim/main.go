// Package main provides the battle simulator binary: it loads abilities, rosters and
// planner domains, then runs a batch of AI-driven battles and prints a summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/observability"
	"github.com/cory-johannsen/monbattle/internal/scripting"
	"github.com/cory-johannsen/monbattle/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/battlesim.yaml", "path to configuration file")
	battles := flag.Int("battles", 0, "number of battles; 0 = use the config value")
	seed := flag.Uint64("seed", 0, "base seed; 0 = use the config value")
	top := flag.Int("top", 10, "number of most-activated abilities to report")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *battles > 0 {
		cfg.Simulator.Battles = *battles
	}
	if *seed != 0 {
		cfg.Simulator.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging, "battlesim")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := ability.LoadCatalog(cfg.Content.Locale)
	if err != nil {
		logger.Fatal("loading catalog", zap.String("locale", cfg.Content.Locale), zap.Error(err))
	}

	abilityStart := time.Now()
	var custom []*ability.Record
	if cfg.Content.AbilitiesDir != "" {
		custom, err = ability.LoadDefinitions(cfg.Content.AbilitiesDir, catalog)
		if err != nil {
			logger.Fatal("loading ability definitions", zap.Error(err))
		}
	}
	reg, err := ability.BuildRegistry(ability.Options{Catalog: catalog, Custom: custom})
	if err != nil {
		logger.Fatal("building ability registry", zap.Error(err))
	}
	logger.Info("abilities loaded",
		zap.Int("count", reg.Len()),
		zap.Int("custom", len(custom)),
		zap.Duration("elapsed", time.Since(abilityStart)),
	)

	engineOpts := []ability.EngineOption{ability.WithCatalog(catalog)}
	var eval ai.PredicateEvaluator
	if cfg.Scripting.Dir != "" {
		scriptMgr := scripting.NewManager(dice.NewLoggedRoller(dice.NewCryptoSource(), logger), logger)
		if err := scriptMgr.Load(cfg.Scripting.Dir, cfg.Scripting.InstructionLimit); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		defer scriptMgr.Close()
		engineOpts = append(engineOpts, ability.WithScripts(scriptMgr))
		eval = scriptMgr
	}
	engine := ability.NewEngine(reg, logger, engineOpts...)

	roster, err := battle.LoadRoster(cfg.Content.RosterFile)
	if err != nil {
		logger.Fatal("loading roster", zap.Error(err))
	}
	moves, err := dex.LoadMoves()
	if err != nil {
		logger.Fatal("loading moves", zap.Error(err))
	}
	items, err := dex.LoadItems()
	if err != nil {
		logger.Fatal("loading items", zap.Error(err))
	}

	planners, err := ai.LoadRegistry(cfg.Content.AIDir, eval, logger)
	if err != nil {
		logger.Fatal("loading ai domains", zap.Error(err))
	}
	scorer := ai.NewScorer(engine)
	chooser := func(id string) battle.Chooser {
		p, ok := planners.PlannerFor(id)
		if !ok {
			logger.Fatal("unknown ai domain", zap.String("domain", id), zap.Strings("available", planners.IDs()))
		}
		return ai.NewChooser(p, scorer, logger)
	}

	sim := &simulator{
		cfg:    cfg.Simulator,
		engine: engine,
		roster: roster,
		moves:  moves,
		items:  items,
		player: chooser(cfg.Simulator.PlayerAI),
		enemy:  chooser(cfg.Simulator.EnemyAI),
		logger: logger,
	}
	logger.Info("starting simulation",
		zap.Int("battles", cfg.Simulator.Battles),
		zap.Int("concurrency", cfg.Simulator.Concurrency),
		zap.Uint64("seed", cfg.Simulator.Seed),
		zap.Bool("double", cfg.Simulator.Double),
		zap.Duration("startup", time.Since(start)),
	)

	started := time.Now()
	sum, err := sim.run(ctx)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
	logger.Info("simulation complete",
		zap.Int("battles", sum.Battles),
		zap.Duration("elapsed", sum.Elapsed),
	)

	if cfg.Database.Enabled {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		id, err := pool.Runs().Save(ctx, record(sum, cfg.Simulator, started, reg))
		if err != nil {
			logger.Fatal("saving run", zap.Error(err))
		}
		logger.Info("run saved",
			zap.Stringer("run_id", id),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
	}
	report(os.Stdout, sum, reg, *top)
}

// report writes a human-readable summary of sum.
func report(w io.Writer, sum summary, reg *ability.Registry, top int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "battles\t%d\n", sum.Battles)
	fmt.Fprintf(tw, "player wins\t%d\n", sum.PlayerWins)
	fmt.Fprintf(tw, "enemy wins\t%d\n", sum.EnemyWins)
	fmt.Fprintf(tw, "draws\t%d\n", sum.Draws)
	fmt.Fprintf(tw, "average turns\t%.1f\n", sum.AverageTurns())
	fmt.Fprintf(tw, "money scattered\t%.0f\n", sum.Money)
	for id, n := range sum.Loot {
		fmt.Fprintf(tw, "loot %s\t%d\n", id, n)
	}
	for _, id := range sum.TopAbilities(top) {
		name := id.String()
		if rec, ok := reg.Get(id); ok {
			name = rec.Name()
		}
		fmt.Fprintf(tw, "ability %s\t%d\n", name, sum.Activation[id])
	}
	tw.Flush()
}
