package postgres

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrRunNotFound is returned when a run lookup yields no results.
var ErrRunNotFound = errors.New("simulation run not found")

// ErrRunExists is returned when saving a run whose ID is already stored.
var ErrRunExists = errors.New("simulation run already exists")

// Run is one stored batch of simulated battles.
type Run struct {
	ID         uuid.UUID
	StartedAt  time.Time
	PlayerAI   string
	EnemyAI    string
	Seed       uint64
	Double     bool
	Battles    int
	PlayerWins int
	EnemyWins  int
	Draws      int
	Turns      int
	Money      float64
	Elapsed    time.Duration
	// Activations counts, per ability key, the battles in which the ability applied.
	Activations map[string]int
	// Loot counts dropped items by item ID.
	Loot map[string]int
}

// RunRepository provides simulation run persistence operations.
type RunRepository struct {
	db *pgxpool.Pool
}

// NewRunRepository creates a RunRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewRunRepository(db *pgxpool.Pool) *RunRepository {
	return &RunRepository{db: db}
}

// Save stores run and its per-ability and per-item counts in one transaction.
// A zero ID is replaced with a new random UUID.
//
// Postcondition: Returns the stored run's ID, or ErrRunExists on a duplicate ID.
func (r *RunRepository) Save(ctx context.Context, run Run) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO simulation_runs
				(id, started_at, player_ai, enemy_ai, seed, double_battle,
				 battles, player_wins, enemy_wins, draws, turns, money, elapsed_ms)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			run.ID, run.StartedAt, run.PlayerAI, run.EnemyAI, int64(run.Seed), run.Double,
			run.Battles, run.PlayerWins, run.EnemyWins, run.Draws, run.Turns, run.Money,
			run.Elapsed.Milliseconds(),
		)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, key := range slices.Sorted(maps.Keys(run.Activations)) {
			if n := run.Activations[key]; n > 0 {
				batch.Queue(`INSERT INTO run_abilities (run_id, ability_key, activations) VALUES ($1,$2,$3)`, run.ID, key, n)
			}
		}
		for _, item := range slices.Sorted(maps.Keys(run.Loot)) {
			if n := run.Loot[item]; n > 0 {
				batch.Queue(`INSERT INTO run_loot (run_id, item_id, count) VALUES ($1,$2,$3)`, run.ID, item, n)
			}
		}
		if batch.Len() == 0 {
			return nil
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return uuid.Nil, ErrRunExists
		}
		return uuid.Nil, fmt.Errorf("saving run: %w", err)
	}
	return run.ID, nil
}

// Get retrieves the run with the given ID, including its detail counts.
//
// Postcondition: Returns the Run or ErrRunNotFound.
func (r *RunRepository) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	var (
		run       Run
		seed      int64
		elapsedMS int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, started_at, player_ai, enemy_ai, seed, double_battle,
		       battles, player_wins, enemy_wins, draws, turns, money, elapsed_ms
		FROM simulation_runs WHERE id = $1`,
		id,
	).Scan(
		&run.ID, &run.StartedAt, &run.PlayerAI, &run.EnemyAI, &seed, &run.Double,
		&run.Battles, &run.PlayerWins, &run.EnemyWins, &run.Draws, &run.Turns, &run.Money, &elapsedMS,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Run{}, ErrRunNotFound
		}
		return Run{}, fmt.Errorf("querying run: %w", err)
	}
	run.Seed = uint64(seed)
	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond

	if run.Activations, err = r.counts(ctx, `SELECT ability_key, activations FROM run_abilities WHERE run_id = $1`, id); err != nil {
		return Run{}, fmt.Errorf("querying run abilities: %w", err)
	}
	if run.Loot, err = r.counts(ctx, `SELECT item_id, count FROM run_loot WHERE run_id = $1`, id); err != nil {
		return Run{}, fmt.Errorf("querying run loot: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first, without detail counts.
//
// Precondition: limit must be positive.
func (r *RunRepository) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, started_at, player_ai, enemy_ai, seed, double_battle,
		       battles, player_wins, enemy_wins, draws, turns, money, elapsed_ms
		FROM simulation_runs ORDER BY started_at DESC, id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Run, error) {
		var (
			run       Run
			seed      int64
			elapsedMS int64
		)
		err := row.Scan(
			&run.ID, &run.StartedAt, &run.PlayerAI, &run.EnemyAI, &seed, &run.Double,
			&run.Battles, &run.PlayerWins, &run.EnemyWins, &run.Draws, &run.Turns, &run.Money, &elapsedMS,
		)
		run.Seed = uint64(seed)
		run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		return run, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning runs: %w", err)
	}
	return runs, nil
}

func (r *RunRepository) counts(ctx context.Context, query string, id uuid.UUID) (map[string]int, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
