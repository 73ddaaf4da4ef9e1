package battle

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Choice is what one active Pokemon does this turn: use Move on Target, or switch to SwitchTo.
type Choice struct {
	Pokemon  *Pokemon
	Move     *dex.Move
	Target   *Pokemon
	SwitchTo *Pokemon
}

// Chooser selects a move for an active Pokemon.
// target may be nil for moves that do not aim at a single Pokemon.
type Chooser interface {
	ChooseMove(ctx context.Context, user ability.Pokemon, moves []*dex.Move, opponents []ability.Pokemon) (move *dex.Move, target ability.Pokemon, err error)
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(ctx context.Context, user ability.Pokemon, moves []*dex.Move, opponents []ability.Pokemon) (*dex.Move, ability.Pokemon, error)

func (f ChooserFunc) ChooseMove(ctx context.Context, user ability.Pokemon, moves []*dex.Move, opponents []ability.Pokemon) (*dex.Move, ability.Pokemon, error) {
	return f(ctx, user, moves, opponents)
}

// Result summarises a finished battle.
type Result struct {
	Winner Side
	Draw   bool
	Turns  int
	Money  float64
	Loot   []dex.Item
}

func (r Result) String() string {
	if r.Draw {
		return fmt.Sprintf("draw after %d turns", r.Turns)
	}
	return fmt.Sprintf("%s won in %d turns", r.Winner, r.Turns)
}

func (b *Battle) slots() int {
	if b.double {
		return 2
	}
	return 1
}

// Start sends out the leads and runs battle-start and summon abilities in speed order.
//
// Postcondition: Each side has up to one active Pokemon per slot, and every
// Pokemon's battle and summon data is fresh.
func (b *Battle) Start(ctx context.Context) error {
	if b.started {
		return nil
	}
	b.started = true
	for _, party := range b.parties {
		for _, p := range party {
			p.battleData.Reset()
			p.summon.Reset()
		}
	}
	for _, party := range b.parties {
		for _, p := range party {
			if err := b.engine.PostBattleInit(ctx, p); err != nil {
				return err
			}
		}
	}
	if err := b.flush(ctx); err != nil {
		return err
	}
	for side, party := range b.parties {
		b.active[side] = make([]*Pokemon, b.slots())
		i := 0
		for _, p := range party {
			if i == len(b.active[side]) {
				break
			}
			if p.IsFainted() {
				continue
			}
			b.enter(p, Side(side), i)
			i++
		}
	}
	b.logger.Info("battle started", zap.Bool("double", b.double), zap.Int("player_party", len(b.parties[SidePlayer])), zap.Int("enemy_party", len(b.parties[SideEnemy])))
	for _, p := range b.speedOrder(ctx, b.field()) {
		if err := b.postSummon(ctx, p); err != nil {
			return err
		}
	}
	b.checkOver(ctx)
	return b.takeErr()
}

// enter puts p in slot i of side without running abilities.
func (b *Battle) enter(p *Pokemon, side Side, i int) {
	p.onField = true
	p.switchedIn = true
	b.active[side][i] = p
	if side == SidePlayer {
		b.sayf("Go! %s!", p.name)
	} else {
		b.sayf("The opposing %s appeared!", p.name)
	}
}

func (b *Battle) postSummon(ctx context.Context, p *Pokemon) error {
	if p.IsFainted() || !p.onField {
		return nil
	}
	if b.HasArenaTag(dex.ArenaTagStealthRock, p.player) {
		dmg := max(int(float64(p.MaxHP())*p.Effectiveness(dex.TypeRock)/8), 1)
		b.sayf("Pointed stones dug into %s!", p.name)
		if err := b.indirectDamage(ctx, p, nil, dmg); err != nil {
			return err
		}
		if p.IsFainted() {
			return nil
		}
	}
	if err := b.engine.PostSummon(ctx, p); err != nil {
		return err
	}
	return b.flush(ctx)
}

// speedOrder sorts ps fastest first. Ties are broken randomly.
func (b *Battle) speedOrder(ctx context.Context, ps []*Pokemon) []*Pokemon {
	type entry struct {
		p    *Pokemon
		spd  float64
		tieb int
	}
	entries := make([]entry, len(ps))
	for i, p := range ps {
		entries[i] = entry{p: p, spd: b.speed(ctx, p), tieb: b.RandInt(1 << 16)}
	}
	slices.SortStableFunc(entries, func(x, y entry) int {
		if c := cmp.Compare(y.spd, x.spd); c != 0 {
			return c
		}
		return cmp.Compare(x.tieb, y.tieb)
	})
	out := make([]*Pokemon, len(entries))
	for i, e := range entries {
		out[i] = e.p
	}
	return out
}

// Switch replaces out with in unless an opposing ability traps out.
//
// Precondition: out is active and in belongs to the same party, is not fainted and is not active.
// Postcondition: Returns false when out was trapped.
func (b *Battle) Switch(ctx context.Context, out, in *Pokemon) (bool, error) {
	if in == nil || in.IsFainted() || in.onField || in.player != out.player {
		return false, fmt.Errorf("battle: %s cannot switch in", in)
	}
	trapped := false
	for _, opp := range b.foes(out) {
		if err := b.engine.CheckTrapped(ctx, opp, out, &trapped); err != nil {
			return false, err
		}
	}
	if err := b.flush(ctx); err != nil {
		return false, err
	}
	if trapped {
		b.sayf("%s can't escape!", out.name)
		return false, nil
	}
	if err := b.engine.PreSwitchOut(ctx, out); err != nil {
		return false, err
	}
	if err := b.flush(ctx); err != nil {
		return false, err
	}
	side := sideOf(out.player)
	i := slices.Index(b.active[side], out)
	if i < 0 {
		return false, fmt.Errorf("battle: %s is not active", out)
	}
	b.sayf("%s, come back!", out.name)
	out.leaveField()
	b.enter(in, side, i)
	return true, b.postSummon(ctx, in)
}

type queuedMove struct {
	c        Choice
	priority int
	quick    bool
	spd      float64
	tieb     int
}

// orderMoves sorts move choices by priority, then speed-bypass effects, then speed.
func (b *Battle) orderMoves(ctx context.Context, choices []Choice) ([]Choice, error) {
	qs := make([]queuedMove, 0, len(choices))
	for _, c := range choices {
		q := &ability.Query{Move: c.Move, Amount: c.Move.Priority}
		if err := b.engine.Apply(ctx, c.Pokemon, q, ability.KindIncrementMovePriority); err != nil {
			return nil, err
		}
		quick := &ability.Query{Move: c.Move}
		if err := b.engine.Apply(ctx, c.Pokemon, quick, ability.KindBypassSpeedChance); err != nil {
			return nil, err
		}
		qs = append(qs, queuedMove{c: c, priority: q.Amount, quick: quick.Flag, spd: b.speed(ctx, c.Pokemon), tieb: b.RandInt(1 << 16)})
	}
	slices.SortStableFunc(qs, func(x, y queuedMove) int {
		if c := cmp.Compare(y.priority, x.priority); c != 0 {
			return c
		}
		if x.quick != y.quick {
			if x.quick {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(y.spd, x.spd); c != 0 {
			return c
		}
		return cmp.Compare(x.tieb, y.tieb)
	})
	out := make([]Choice, len(qs))
	for i, q := range qs {
		out[i] = q.c
	}
	return out, b.flush(ctx)
}

// Turn plays one turn: switches first, then moves in order, then end-of-turn effects.
func (b *Battle) Turn(ctx context.Context, choices []Choice) error {
	if !b.started {
		return ErrNotStarted
	}
	if b.over {
		return ErrBattleOver
	}
	b.turn++
	b.logger.Debug("turn started", zap.Int("turn", b.turn))
	var moves []Choice
	for _, c := range choices {
		if c.Pokemon == nil || c.Pokemon.battle != b {
			continue
		}
		if c.SwitchTo != nil {
			if _, err := b.Switch(ctx, c.Pokemon, c.SwitchTo); err != nil {
				return err
			}
			continue
		}
		if len(c.Pokemon.UsableMoves()) == 0 || c.Move == nil {
			c.Move = Struggle
		}
		moves = append(moves, c)
	}
	ordered, err := b.orderMoves(ctx, moves)
	if err != nil {
		return err
	}
	for _, c := range ordered {
		p := c.Pokemon
		if p.IsFainted() || !p.onField {
			continue
		}
		ok, err := b.canAct(ctx, p, c.Move)
		if err != nil {
			return err
		}
		if ok {
			var chosen []*Pokemon
			if c.Target != nil {
				chosen = []*Pokemon{c.Target}
			}
			if err := b.useMove(ctx, p, c.Move, chosen, false); err != nil {
				return err
			}
		}
		if b.checkOver(ctx) {
			return b.takeErr()
		}
	}
	if err := b.endTurn(ctx); err != nil {
		return err
	}
	b.checkOver(ctx)
	return b.takeErr()
}

// endTurn runs weather, abilities, statuses and countdowns in that order.
func (b *Battle) endTurn(ctx context.Context) error {
	if err := b.weatherLapse(ctx); err != nil {
		return err
	}
	for _, p := range b.field() {
		if err := b.engine.PostTurn(ctx, p); err != nil {
			return err
		}
		if err := b.flush(ctx); err != nil {
			return err
		}
	}
	for _, p := range b.field() {
		if err := b.statusDamage(ctx, p); err != nil {
			return err
		}
	}
	for _, p := range b.field() {
		if err := b.lapseTags(ctx, p); err != nil {
			return err
		}
	}
	if err := b.lapseField(ctx); err != nil {
		return err
	}
	for _, party := range b.parties {
		for _, p := range party {
			p.switchedIn = false
			p.lastHit = nil
		}
	}
	if err := b.refill(ctx); err != nil {
		return err
	}
	return b.flush(ctx)
}

func (b *Battle) weatherLapse(ctx context.Context) error {
	w := b.weather
	if w == dex.WeatherNone {
		return nil
	}
	if w.IsDamaging() && !b.WeatherSuppressed() {
		for _, p := range b.field() {
			cancelled := false
			if err := b.engine.PreWeatherEffect(ctx, p, w, &cancelled); err != nil {
				return err
			}
			if cancelled || w.DamageImmune(p.Types()) {
				continue
			}
			b.sayf("%s is buffeted by the %s!", p.name, w)
			if err := b.indirectDamage(ctx, p, nil, p.hpFraction(16)); err != nil {
				return err
			}
		}
	}
	for _, p := range b.field() {
		if err := b.engine.PostWeatherLapse(ctx, p, w); err != nil {
			return err
		}
	}
	if err := b.flush(ctx); err != nil {
		return err
	}
	if b.weatherTurns > 0 {
		b.weatherTurns--
		if b.weatherTurns == 0 {
			b.TrySetWeather(ctx, dex.WeatherNone, nil)
		}
	}
	return b.flush(ctx)
}

func (b *Battle) statusDamage(ctx context.Context, p *Pokemon) error {
	var dmg int
	switch p.status {
	case dex.StatusPoison:
		dmg = p.hpFraction(8)
	case dex.StatusToxic:
		p.statusTurns++
		dmg = max(p.MaxHP()*p.statusTurns/16, 1)
	case dex.StatusBurn:
		dmg = p.hpFraction(16)
	default:
		return nil
	}
	q := &ability.Query{}
	if err := b.engine.Apply(ctx, p, q, ability.KindBlockStatusDamage); err != nil {
		return err
	}
	if err := b.flush(ctx); err != nil {
		return err
	}
	if q.Cancelled || p.IsFainted() {
		return nil
	}
	b.sayf("%s is hurt by its %s!", p.name, p.status.Noun())
	return b.indirectDamage(ctx, p, nil, dmg)
}

// lapseTags counts down p's volatile tags and applies the effects of those that expire.
func (b *Battle) lapseTags(ctx context.Context, p *Pokemon) error {
	if p.IsFainted() {
		return nil
	}
	if src := p.tagSources[dex.TagSeeded]; p.HasTag(dex.TagSeeded) && src != nil && src.onField && !src.IsFainted() {
		amount := p.hpFraction(8)
		if err := b.indirectDamage(ctx, p, src, amount); err != nil {
			return err
		}
		b.heal(src, amount, fmt.Sprintf("%s's health is sapped by Leech Seed!", p.name))
	}
	var expired []dex.BattlerTagType
	for t, n := range p.tags {
		if n == tagIndefinite {
			continue
		}
		n--
		if n <= 0 {
			expired = append(expired, t)
			continue
		}
		p.tags[t] = n
		if t == dex.TagPerishSong {
			b.sayf("%s's perish count fell to %d.", p.name, n)
		}
	}
	slices.Sort(expired)
	for _, t := range expired {
		delete(p.tags, t)
		delete(p.tagSources, t)
		switch t {
		case dex.TagDrowsy:
			if _, err := b.trySetStatus(ctx, p, dex.StatusSleep, nil); err != nil {
				return err
			}
		case dex.TagPerishSong:
			if !p.IsFainted() {
				b.sayf("%s's perish count fell to 0.", p.name)
				p.hp = 0
				if err := b.faint(ctx, p, nil, nil, dex.HitOther); err != nil {
					return err
				}
			}
		case dex.TagConfused:
			b.sayf("%s snapped out of its confusion!", p.name)
		case dex.TagSlowStart:
			b.sayf("%s finally got its act together!", p.name)
		}
	}
	for id, n := range p.disabled {
		if n--; n <= 0 {
			delete(p.disabled, id)
		} else {
			p.disabled[id] = n
		}
	}
	return b.flush(ctx)
}

// lapseField counts down the terrain and arena tags.
func (b *Battle) lapseField(ctx context.Context) error {
	if b.terrainTurns > 0 {
		b.terrainTurns--
		if b.terrainTurns == 0 {
			b.TrySetTerrain(ctx, dex.TerrainNone, nil)
			if err := b.flush(ctx); err != nil {
				return err
			}
		}
	}
	for side := range b.arena {
		var expired []dex.ArenaTagType
		for t, n := range b.arena[side] {
			if n == tagIndefinite {
				continue
			}
			if n--; n <= 0 {
				expired = append(expired, t)
			} else {
				b.arena[side][t] = n
			}
		}
		slices.Sort(expired)
		for _, t := range expired {
			delete(b.arena[side], t)
			b.sayf("The %s side's %s wore off!", Side(side), t)
		}
	}
	return nil
}

// refill sends in the next healthy party member for every fainted slot.
func (b *Battle) refill(ctx context.Context) error {
	for side := range b.active {
		for i, p := range b.active[side] {
			if p != nil && !p.IsFainted() && p.onField {
				continue
			}
			next := b.bench(Side(side))
			if next == nil {
				continue
			}
			if p != nil {
				p.leaveField()
			}
			b.enter(next, Side(side), i)
			if err := b.postSummon(ctx, next); err != nil {
				return err
			}
		}
	}
	return nil
}

// bench returns the first healthy party member of side that is not active.
func (b *Battle) bench(side Side) *Pokemon {
	for _, p := range b.parties[side] {
		if !p.IsFainted() && !p.onField {
			return p
		}
	}
	return nil
}

// faint knocks p out and runs every ability that reacts to it.
func (b *Battle) faint(ctx context.Context, p, attacker *Pokemon, m *dex.Move, result dex.HitResult) error {
	if p.status == dex.StatusFaint {
		return nil
	}
	p.hp = 0
	p.status = dex.StatusFaint
	p.statusTurns = 0
	b.faints[sideOf(p.player)]++
	b.sayf("%s fainted!", p.name)
	b.logger.Debug("pokemon fainted", zap.String("pokemon", p.name), zap.Bool("player", p.player))
	var atk ability.Pokemon
	if attacker != nil {
		atk = attacker
	}
	if err := b.engine.PostFaint(ctx, p, atk, m, result); err != nil {
		return err
	}
	if attacker != nil && attacker != p && !attacker.IsFainted() && attacker.onField {
		if err := b.engine.PostVictory(ctx, attacker); err != nil {
			return err
		}
	}
	for _, q := range b.others(p) {
		if err := b.engine.PostKnockOut(ctx, q, p); err != nil {
			return err
		}
	}
	if !p.player {
		var kept []dex.Item
		for _, it := range p.items {
			if it.Transferable {
				b.loot = append(b.loot, it)
			} else {
				kept = append(kept, it)
			}
		}
		p.items = kept
	}
	err := b.flush(ctx)
	p.leaveField()
	return err
}

// checkOver ends the battle once a side has no Pokemon left.
func (b *Battle) checkOver(ctx context.Context) bool {
	if b.over {
		return true
	}
	playerLeft := b.remaining(SidePlayer) > 0
	enemyLeft := b.remaining(SideEnemy) > 0
	switch {
	case playerLeft && enemyLeft:
		return false
	case !playerLeft && !enemyLeft:
		b.draw = true
	case playerLeft:
		b.winner = SidePlayer
	default:
		b.winner = SideEnemy
	}
	b.finish(ctx)
	return true
}

func (b *Battle) remaining(side Side) int {
	n := 0
	for _, p := range b.parties[side] {
		if !p.IsFainted() {
			n++
		}
	}
	return n
}

// finish closes the battle and runs after-battle abilities for a player win.
func (b *Battle) finish(ctx context.Context) {
	b.over = true
	b.logger.Info("battle over", zap.Int("turns", b.turn), zap.Bool("draw", b.draw), zap.Stringer("winner", b.winner))
	if b.draw || b.winner != SidePlayer {
		return
	}
	b.say("You won the battle!")
	for _, p := range b.parties[SidePlayer] {
		if p.IsFainted() {
			continue
		}
		b.fail(b.engine.PostBattle(ctx, p))
		b.fail(b.flush(ctx))
	}
}

// ChangeBiome moves the battle to a new biome and notifies every active Pokemon.
func (b *Battle) ChangeBiome(ctx context.Context, biome dex.Biome) error {
	if b.biome == biome {
		return nil
	}
	b.biome = biome
	for _, p := range b.field() {
		if err := b.engine.PostBiomeChange(ctx, p); err != nil {
			return err
		}
		if err := b.flush(ctx); err != nil {
			return err
		}
	}
	return b.takeErr()
}

// Run plays turns with moves picked by the two choosers until the battle ends.
//
// Precondition: Start has been called.
// Postcondition: Returns the result once a side is out of Pokemon or the turn limit is reached.
func (b *Battle) Run(ctx context.Context, player, enemy Chooser) (Result, error) {
	choosers := [2]Chooser{player, enemy}
	for !b.over {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if b.maxTurns > 0 && b.turn >= b.maxTurns {
			b.over = true
			b.draw = true
			b.say("The battle ended in a draw.")
			break
		}
		var choices []Choice
		for _, p := range b.field() {
			var opps []ability.Pokemon
			for _, q := range b.foes(p) {
				opps = append(opps, q)
			}
			m, target, err := choosers[sideOf(p.player)].ChooseMove(ctx, p, p.UsableMoves(), opps)
			if err != nil {
				return Result{}, fmt.Errorf("choosing move for %s: %w", p.name, err)
			}
			c := Choice{Pokemon: p, Move: m}
			if t := b.lookup(target); t != nil {
				c.Target = t
			}
			choices = append(choices, c)
		}
		if err := b.Turn(ctx, choices); err != nil {
			return Result{}, err
		}
	}
	return Result{Winner: b.winner, Draw: b.draw, Turns: b.turn, Money: b.money, Loot: b.PostBattleLoot()}, nil
}
