// Package battle is the reference scheduler that drives the ability engine.
//
// Battle implements ability.Scene and Pokemon implements ability.Pokemon. A battle
// owns the queue of actions the engine requests and executes them in order, so
// every dispatch entry point of the engine is exercised through ordinary play.
package battle

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/observability"
)

var (
	// ErrNoPokemon is returned when a side has no Pokemon able to battle.
	ErrNoPokemon = errors.New("battle: side has no usable pokemon")
	// ErrBattleOver is returned when a turn is requested after the battle ended.
	ErrBattleOver = errors.New("battle: battle is over")
	// ErrNotStarted is returned when a turn is requested before Start.
	ErrNotStarted = errors.New("battle: battle not started")
	// ErrActionOverflow is returned when queued actions keep producing more actions.
	ErrActionOverflow = errors.New("battle: action queue did not drain")
)

// maxActionsPerFlush bounds how many queued actions one flush may execute.
const maxActionsPerFlush = 4096

const defaultFieldTurns = 5

// Side identifies one half of the field.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "enemy"
}

func sideOf(player bool) Side {
	if player {
		return SidePlayer
	}
	return SideEnemy
}

// Option configures a Battle.
type Option func(*Battle)

// WithDouble makes the battle a double battle with two active Pokemon per side.
func WithDouble(double bool) Option { return func(b *Battle) { b.double = double } }

// WithMaxTurns ends the battle in a draw after n turns. Zero means no limit.
func WithMaxTurns(n int) Option { return func(b *Battle) { b.maxTurns = n } }

// WithBiome sets the starting biome.
func WithBiome(biome dex.Biome) Option { return func(b *Battle) { b.biome = biome } }

// WithWeather starts the battle under w for the default duration.
func WithWeather(w dex.WeatherType) Option {
	return func(b *Battle) {
		b.weather = w
		b.weatherTurns = fieldTurns(w != dex.WeatherNone && !w.IsImmutable())
	}
}

func fieldTurns(limited bool) int {
	if limited {
		return defaultFieldTurns
	}
	return 0
}

// Battle is one battle between the player side and the enemy side.
//
// A Battle is driven by a single goroutine. The engine it uses is shared and may
// serve any number of battles concurrently.
type Battle struct {
	id       string
	engine   *ability.Engine
	logger   *zap.Logger
	roller   *dice.Roller
	double   bool
	maxTurns int
	biome    dex.Biome

	turn         int
	weather      dex.WeatherType
	weatherTurns int
	terrain      dex.TerrainType
	terrainTurns int
	arena        [2]map[dex.ArenaTagType]int

	parties [2][]*Pokemon
	active  [2][]*Pokemon
	faints  [2]int

	pending  []ability.Action
	flushing bool
	messages []string

	ignoreAbilities bool
	loot            []dex.Item
	money           float64
	lastBall        string

	started bool
	over    bool
	winner  Side
	draw    bool
	err     error
}

// New creates a battle between two parties.
//
// Precondition: engine, logger and roller are non-nil.
// Postcondition: Returns ErrNoPokemon if either party has no Pokemon with HP left.
// Every Pokemon is bound to the new battle.
func New(engine *ability.Engine, logger *zap.Logger, roller *dice.Roller, player, enemy []*Pokemon, opts ...Option) (*Battle, error) {
	if engine == nil {
		panic("battle.New: engine must not be nil")
	}
	if logger == nil {
		panic("battle.New: logger must not be nil")
	}
	if roller == nil {
		panic("battle.New: roller must not be nil")
	}
	b := &Battle{
		id:      uuid.NewString(),
		engine:  engine,
		roller:  roller,
		parties: [2][]*Pokemon{player, enemy},
		arena:   [2]map[dex.ArenaTagType]int{{}, {}},
	}
	b.logger = observability.BattleLogger(logger, b.id)
	for _, opt := range opts {
		opt(b)
	}
	for side, party := range b.parties {
		if !slices.ContainsFunc(party, func(p *Pokemon) bool { return p != nil && !p.IsFainted() }) {
			return nil, fmt.Errorf("%w: %s", ErrNoPokemon, Side(side))
		}
		for _, p := range party {
			p.battle = b
			p.player = Side(side) == SidePlayer
		}
	}
	return b, nil
}

// ID returns the battle's uuid.
func (b *Battle) ID() string { return b.id }

// Engine returns the ability engine driving the battle.
func (b *Battle) Engine() *ability.Engine { return b.engine }

// Messages returns a copy of the battle log.
func (b *Battle) Messages() []string { return slices.Clone(b.messages) }

// Party returns the Pokemon on side s.
func (b *Battle) Party(s Side) []*Pokemon { return b.parties[s] }

// Active returns the Pokemon currently on the field for side s.
func (b *Battle) Active(s Side) []*Pokemon {
	var out []*Pokemon
	for _, p := range b.active[s] {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Over reports whether the battle has ended.
func (b *Battle) Over() bool { return b.over }

// Winner returns the winning side. ok is false while the battle runs or after a draw.
func (b *Battle) Winner() (s Side, ok bool) {
	if !b.over || b.draw {
		return 0, false
	}
	return b.winner, true
}

// Money returns the prize money multiplier accumulated by abilities.
func (b *Battle) Money() float64 { return b.money }

// Biome returns the current biome.
func (b *Battle) Biome() dex.Biome { return b.biome }

// RecordMissedBall remembers the last ball thrown without a catch.
func (b *Battle) RecordMissedBall(ball string) { b.lastBall = ball }

// Scene implementation.

func (b *Battle) Weather() dex.WeatherType { return b.weather }
func (b *Battle) Terrain() dex.TerrainType { return b.terrain }
func (b *Battle) IgnoreAbilities() bool    { return b.ignoreAbilities }
func (b *Battle) Double() bool             { return b.double }
func (b *Battle) TurnNumber() int          { return b.turn }

// WeatherSuppressed reports whether an active Pokemon cancels weather effects.
func (b *Battle) WeatherSuppressed() bool {
	if b.weather == dex.WeatherNone {
		return false
	}
	ctx := context.Background()
	for _, p := range b.field() {
		if b.engine.HasAbilityWithAttr(ctx, p, ability.KindSuppressWeatherEffect) {
			return true
		}
	}
	return false
}

func (b *Battle) HasArenaTag(t dex.ArenaTagType, playerSide bool) bool {
	_, ok := b.arena[sideOf(playerSide)][t]
	return ok
}

// Field returns every active Pokemon, player side first.
func (b *Battle) Field() []ability.Pokemon {
	var out []ability.Pokemon
	for _, p := range b.field() {
		out = append(out, p)
	}
	return out
}

// field returns the active, non-fainted Pokemon, player side first.
func (b *Battle) field() []*Pokemon {
	var out []*Pokemon
	for _, side := range b.active {
		for _, p := range side {
			if p != nil && p.onField && !p.IsFainted() {
				out = append(out, p)
			}
		}
	}
	return out
}

func (b *Battle) Faints(playerSide bool) int { return b.faints[sideOf(playerSide)] }

func (b *Battle) RandInt(n int) int {
	if n <= 1 {
		return 0
	}
	return b.roller.Intn(n)
}

// Queue appends a to the pending actions. They run at the next flush.
func (b *Battle) Queue(a ability.Action) { b.pending = append(b.pending, a) }

// CanSetWeather reports whether w would replace the current weather.
func (b *Battle) CanSetWeather(w dex.WeatherType) bool {
	if b.weather == w {
		return false
	}
	return !b.weather.IsImmutable() || w.IsImmutable() || w == dex.WeatherNone
}

// CanSetTerrain reports whether t would replace the current terrain.
func (b *Battle) CanSetTerrain(t dex.TerrainType) bool { return b.terrain != t }

// TrySetWeather replaces the weather unless it is already w or primal weather blocks it.
// The announcement and the field's reactions run when the queue is next flushed.
func (b *Battle) TrySetWeather(_ context.Context, w dex.WeatherType, _ ability.Pokemon) bool {
	if !b.CanSetWeather(w) {
		return false
	}
	prev := b.weather
	b.weather = w
	b.weatherTurns = fieldTurns(w != dex.WeatherNone && !w.IsImmutable())
	b.logger.Debug("weather changed", zap.Stringer("from", prev), zap.Stringer("to", w))
	b.Queue(ability.WeatherChanged{Weather: w, Previous: prev})
	return true
}

// TrySetTerrain replaces the terrain unless it is already t.
func (b *Battle) TrySetTerrain(_ context.Context, t dex.TerrainType, _ ability.Pokemon) bool {
	if !b.CanSetTerrain(t) {
		return false
	}
	prev := b.terrain
	b.terrain = t
	b.terrainTurns = fieldTurns(t != dex.TerrainNone)
	b.Queue(ability.TerrainChanged{Terrain: t, Previous: prev})
	return true
}

// TransferItem moves item between two Pokemon of this battle. Untransferable items stay put.
func (b *Battle) TransferItem(_ context.Context, from, to ability.Pokemon, item dex.Item) ability.Future[bool] {
	src, dst := b.lookup(from), b.lookup(to)
	if src == nil || dst == nil || !item.Transferable {
		return ability.Resolved(false)
	}
	it, ok := src.removeItem(item.ID)
	if !ok {
		return ability.Resolved(false)
	}
	dst.items = append(dst.items, it)
	return ability.Resolved(true)
}

// PostBattleLoot returns the items dropped by enemies knocked out this battle.
func (b *Battle) PostBattleLoot() []dex.Item { return slices.Clone(b.loot) }

// ClaimLoot gives one dropped item to a Pokemon.
func (b *Battle) ClaimLoot(_ context.Context, to ability.Pokemon, item dex.Item) ability.Future[bool] {
	dst := b.lookup(to)
	i := slices.IndexFunc(b.loot, func(it dex.Item) bool { return it.ID == item.ID })
	if dst == nil || i < 0 {
		return ability.Resolved(false)
	}
	b.loot = slices.Delete(b.loot, i, i+1)
	dst.items = append(dst.items, item)
	return ability.Resolved(true)
}

func (b *Battle) ScatterMoney(multiplier float64) {
	b.money += multiplier
	b.say("Coins were scattered everywhere!")
}

func (b *Battle) FetchLastBall() (string, bool) {
	if b.lastBall == "" {
		return "", false
	}
	ball := b.lastBall
	b.lastBall = ""
	return ball, true
}

// lookup maps an engine-side Pokemon back to one of this battle's Pokemon.
func (b *Battle) lookup(p ability.Pokemon) *Pokemon {
	if p == nil {
		return nil
	}
	if q, ok := p.(*Pokemon); ok && q.battle == b {
		return q
	}
	for _, party := range b.parties {
		for _, q := range party {
			if q.id == p.ID() {
				return q
			}
		}
	}
	return nil
}

// say appends a line to the battle log. Empty lines are dropped.
func (b *Battle) say(msg string) {
	if msg == "" {
		return
	}
	b.messages = append(b.messages, msg)
}

func (b *Battle) sayf(format string, args ...any) {
	b.say(fmt.Sprintf(format, args...))
}

// fail records the first dispatch error raised where it cannot be returned.
func (b *Battle) fail(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// takeErr returns and clears the recorded dispatch error.
func (b *Battle) takeErr() error {
	err := b.err
	b.err = nil
	return err
}

// flush executes pending actions in order, including those they queue in turn.
// A nested call returns at once; the outer flush drains everything.
//
// Postcondition: On success the queue is empty.
func (b *Battle) flush(ctx context.Context) error {
	if b.flushing {
		return nil
	}
	b.flushing = true
	defer func() { b.flushing = false }()
	for n := 0; len(b.pending) > 0; n++ {
		if n >= maxActionsPerFlush {
			b.pending = nil
			return ErrActionOverflow
		}
		a := b.pending[0]
		b.pending = b.pending[1:]
		if err := b.execute(ctx, a); err != nil {
			return err
		}
	}
	return b.takeErr()
}
