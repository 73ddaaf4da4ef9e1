package battle

import (
	"context"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// damageRoll is the random factor of every damage calculation, in percent.
var damageRoll = dice.MustParse("1d16+84")

// Struggle is used when a Pokemon has no move it may select.
var Struggle = &dex.Move{
	ID:       "struggle",
	Name:     "Struggle",
	Type:     dex.TypeNormal,
	Category: dex.CategoryPhysical,
	Power:    50,
	Accuracy: -1,
	Chance:   -1,
	Flags:    dex.FlagMakesContact,
	MinHits:  1,
	MaxHits:  1,
	Recoil:   0.25,
}

// others returns the active Pokemon other than p.
func (b *Battle) others(p *Pokemon) []*Pokemon {
	var out []*Pokemon
	for _, q := range b.field() {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}

// foes returns the active, non-fainted opponents of p.
func (b *Battle) foes(p *Pokemon) []*Pokemon {
	var out []*Pokemon
	for _, q := range b.active[sideOf(!p.player)] {
		if q != nil && q.onField && !q.IsFainted() {
			out = append(out, q)
		}
	}
	return out
}

func (b *Battle) ally(p *Pokemon) *Pokemon {
	if a, ok := p.Ally().(*Pokemon); ok && a.onField && !a.IsFainted() {
		return a
	}
	return nil
}

func (b *Battle) randomFoe(p *Pokemon) *Pokemon {
	foes := b.foes(p)
	if len(foes) == 0 {
		return nil
	}
	return foes[b.RandInt(len(foes))]
}

// resolveTargets picks who a move hits, starting from the chosen target.
func (b *Battle) resolveTargets(user *Pokemon, m *dex.Move, chosen *Pokemon) []*Pokemon {
	switch m.Target {
	case dex.TargetUser, dex.TargetUserSide:
		return []*Pokemon{user}
	case dex.TargetEnemySide, dex.TargetBothSides:
		return nil
	case dex.TargetAllNearEnemies:
		return b.foes(user)
	case dex.TargetAllNearOthers:
		out := b.foes(user)
		if a := b.ally(user); a != nil {
			out = append(out, a)
		}
		return out
	case dex.TargetAlly:
		if a := b.ally(user); a != nil {
			return []*Pokemon{a}
		}
		return nil
	case dex.TargetRandomNearEnemy:
		if f := b.randomFoe(user); f != nil {
			return []*Pokemon{f}
		}
		return nil
	}
	if chosen != nil && chosen != user && chosen.onField && !chosen.IsFainted() {
		return []*Pokemon{chosen}
	}
	if f := b.randomFoe(user); f != nil {
		return []*Pokemon{f}
	}
	return nil
}

func singleTarget(m *dex.Move) bool {
	switch m.Target {
	case dex.TargetNearOther, dex.TargetNearEnemy, dex.TargetRandomNearEnemy:
		return true
	}
	return false
}

// canAct runs the checks that may stop p from moving this turn.
func (b *Battle) canAct(ctx context.Context, p *Pokemon, m *dex.Move) (bool, error) {
	if p.HasTag(dex.TagTruant) {
		if p.loafing {
			p.loafing = false
			b.sayf("%s is loafing around!", p.name)
			return false, nil
		}
		p.loafing = true
	}
	switch p.status {
	case dex.StatusSleep:
		p.statusTurns--
		if p.statusTurns > 0 {
			b.sayf("%s is fast asleep.", p.name)
			return false, nil
		}
		p.status = dex.StatusNone
		b.sayf("%s woke up!", p.name)
	case dex.StatusFreeze:
		if b.RandInt(5) != 0 {
			b.sayf("%s is frozen solid!", p.name)
			return false, nil
		}
		p.status = dex.StatusNone
		b.sayf("%s thawed out!", p.name)
	}
	if p.HasTag(dex.TagFlinched) {
		delete(p.tags, dex.TagFlinched)
		b.sayf("%s flinched and couldn't move!", p.name)
		if err := b.engine.Apply(ctx, p, &ability.Query{}, ability.KindFlinchEffect); err != nil {
			return false, err
		}
		return false, b.flush(ctx)
	}
	if p.HasTag(dex.TagConfused) && b.RandInt(3) == 0 {
		b.sayf("%s hurt itself in its confusion!", p.name)
		dmg := b.confusionDamage(ctx, p)
		p.hp -= min(dmg, p.hp)
		if p.IsFainted() {
			return false, b.faint(ctx, p, nil, nil, dex.HitOther)
		}
		return false, nil
	}
	if p.HasTag(dex.TagInfatuated) && b.RandInt(2) == 0 {
		b.sayf("%s is immobilized by love!", p.name)
		return false, nil
	}
	if p.status == dex.StatusParalysis && b.RandInt(4) == 0 {
		b.sayf("%s is paralyzed! It can't move!", p.name)
		return false, nil
	}
	if m != Struggle && !p.canMove(m) {
		b.sayf("%s can't use %s!", p.name, m.Name)
		return false, nil
	}
	return true, nil
}

func (b *Battle) confusionDamage(ctx context.Context, p *Pokemon) int {
	atk := b.effectiveStat(ctx, p, dex.BattleStatAtk, nil, nil, false, true)
	def := b.effectiveStat(ctx, p, dex.BattleStatDef, nil, nil, false, false)
	return damageFormula(p.level, 40, atk, def)
}

func damageFormula(level int, power, atk, def float64) int {
	base := math.Floor(2*float64(level)/5 + 2)
	return int(math.Floor(math.Floor(base*power*atk/max(def, 1))/50)) + 2
}

// useMove executes m. followUp moves are triggered by abilities and do not notify other Pokemon.
func (b *Battle) useMove(ctx context.Context, user *Pokemon, m *dex.Move, chosen []*Pokemon, followUp bool) error {
	if user.IsFainted() || !user.onField {
		return nil
	}
	b.sayf("%s used %s!", user.name, m.Name)
	b.logger.Debug("move used", zap.String("pokemon", user.name), zap.String("move", m.ID), zap.Bool("follow_up", followUp))

	bypass := &ability.Query{Move: m}
	if err := b.engine.Apply(ctx, user, bypass, ability.KindMoveAbilityBypass); err != nil {
		return err
	}
	b.ignoreAbilities = bypass.Flag
	defer func() { b.ignoreAbilities = false }()

	if m.HasFlag(dex.FlagExplosive) {
		for _, q := range b.others(user) {
			damp := &ability.Query{Move: m}
			if err := b.engine.Apply(ctx, q, damp, ability.KindFieldPreventExplosiveMoves); err != nil {
				return err
			}
			if damp.Cancelled {
				b.sayf("%s cannot use %s!", user.name, m.Name)
				return b.flush(ctx)
			}
		}
	}

	var first *Pokemon
	if len(chosen) > 0 {
		first = chosen[0]
	}
	targets := b.resolveTargets(user, m, first)

	var hit []ability.Pokemon
	var err error
	switch {
	case m.Category == dex.CategoryStatus:
		hit, err = b.useStatusMove(ctx, user, m, targets)
	default:
		hit, err = b.useDamagingMove(ctx, user, m, targets)
	}
	if err != nil {
		return err
	}
	if err := b.flush(ctx); err != nil {
		return err
	}
	if followUp {
		return nil
	}
	for _, q := range b.others(user) {
		if err := b.engine.PostMoveUsed(ctx, q, m, user, hit); err != nil {
			return err
		}
	}
	return b.flush(ctx)
}

// redirect lets abilities on the field pull a single-target move onto their holder.
func (b *Battle) redirect(ctx context.Context, user *Pokemon, m *dex.Move, target *Pokemon) (*Pokemon, error) {
	if !singleTarget(m) || b.engine.HasAbilityWithAttr(ctx, user, ability.KindBlockRedirect) {
		return target, nil
	}
	for _, q := range b.others(user) {
		rq := &ability.Query{Move: m, Target: target}
		if err := b.engine.Apply(ctx, q, rq, ability.KindRedirectMove); err != nil {
			return nil, err
		}
		if t := b.lookup(rq.Target); t != nil && t != target {
			b.sayf("%s took the attack!", t.name)
			target = t
		}
	}
	return target, nil
}

// blockedByProtect reports whether target's protection stops m.
func (b *Battle) blockedByProtect(ctx context.Context, user, target *Pokemon, m *dex.Move) bool {
	if target == user || !target.HasTag(dex.TagProtected) || m.HasFlag(dex.FlagIgnoreProtect) {
		return false
	}
	if m.HasFlag(dex.FlagMakesContact) && b.engine.HasAbilityWithAttr(ctx, user, ability.KindIgnoreProtectOnContact) {
		return false
	}
	b.sayf("%s protected itself!", target.name)
	return true
}

// accuracyCheck rolls whether m hits target.
func (b *Battle) accuracyCheck(ctx context.Context, user, target *Pokemon, m *dex.Move, t dex.Type) (bool, error) {
	if b.engine.HasAbilityWithAttr(ctx, user, ability.KindAlwaysHit) || b.engine.HasAbilityWithAttr(ctx, target, ability.KindAlwaysHit) {
		return true, nil
	}
	if target.HasTag(dex.TagSemiInvulnerable) {
		return false, nil
	}
	if m.Accuracy < 0 || target == user {
		return true, nil
	}
	d := ability.NewDefendArgs(user, m)
	d.Type = t
	d.Simulated = true
	if err := b.engine.PreDefend(ctx, target, d, ability.KindWonderSkin); err != nil {
		return false, err
	}
	accStage := user.stages[dex.BattleStatAcc]
	ignore := &ability.Query{Amount: accStage}
	if err := b.engine.Apply(ctx, target, ignore, ability.KindIgnoreOpponentStatChanges); err != nil {
		return false, err
	}
	accStage = ignore.Amount
	evaStage := target.stages[dex.BattleStatEva]
	ignore = &ability.Query{Amount: evaStage}
	if err := b.engine.Apply(ctx, user, ignore, ability.KindIgnoreOpponentEvasion); err != nil {
		return false, err
	}
	if ignore.Amount != 0 {
		ignore = &ability.Query{Amount: ignore.Amount}
		if err := b.engine.Apply(ctx, user, ignore, ability.KindIgnoreOpponentStatChanges); err != nil {
			return false, err
		}
	}
	evaStage = ignore.Amount
	stage := min(max(accStage-evaStage, -dex.StageLimit), dex.StageLimit)
	acc := float64(d.Accuracy) * dex.AccuracyStageMultiplier(stage)
	accMult, evaMult := 1.0, 1.0
	if err := b.engine.BattleStatMultiplier(ctx, user, dex.BattleStatAcc, &accMult, m); err != nil {
		return false, err
	}
	if err := b.engine.BattleStatMultiplier(ctx, target, dex.BattleStatEva, &evaMult, m); err != nil {
		return false, err
	}
	acc = acc * accMult / max(evaMult, 0.01)
	return float64(b.RandInt(100)) < acc, nil
}

// strikeCount returns how many times m hits before abilities add strikes.
func (b *Battle) strikeCount(ctx context.Context, user *Pokemon, m *dex.Move) (int, error) {
	if !m.IsMultiHit() {
		return max(m.MinHits, 1), nil
	}
	q := &ability.Query{Move: m}
	if err := b.engine.Apply(ctx, user, q, ability.KindMaxMultiHit); err != nil {
		return 0, err
	}
	if q.Amount > 0 {
		return q.Amount, nil
	}
	if m.MinHits == 2 && m.MaxHits == 5 {
		switch r := b.RandInt(20); {
		case r < 7:
			return 2, nil
		case r < 14:
			return 3, nil
		case r < 17:
			return 4, nil
		default:
			return 5, nil
		}
	}
	return m.MinHits + b.RandInt(m.MaxHits-m.MinHits+1), nil
}

// critical rolls for a critical hit with every ability that changes the odds.
func (b *Battle) critical(ctx context.Context, user, target *Pokemon, m *dex.Move) (bool, error) {
	block := &ability.Query{}
	if err := b.engine.Apply(ctx, target, block, ability.KindBlockCrit); err != nil {
		return false, err
	}
	if block.Cancelled {
		return false, nil
	}
	cond := &ability.Query{Move: m, Opponent: target}
	if err := b.engine.Apply(ctx, user, cond, ability.KindConditionalCrit); err != nil {
		return false, err
	}
	if cond.Flag {
		return true, nil
	}
	bonus := &ability.Query{}
	if err := b.engine.Apply(ctx, user, bonus, ability.KindBonusCrit); err != nil {
		return false, err
	}
	odds := 24
	if bonus.Flag {
		odds = 8
	}
	return b.RandInt(odds) == 0, nil
}

// typeMultiplier is the effectiveness of an attack of type t, after abilities that lift immunities.
func (b *Battle) typeMultiplier(ctx context.Context, user, target *Pokemon, t dex.Type) (float64, error) {
	eff := 1.0
	for _, dt := range target.Types() {
		mu := dex.Matchup(t, dt)
		if mu == 0 {
			switch {
			case t == dex.TypeGround && dt == dex.TypeFlying && target.IsGrounded():
				mu = 1
			default:
				q := &ability.Query{Type: t, DefenderType: dt}
				if err := b.engine.Apply(ctx, user, q, ability.KindIgnoreTypeImmunity); err != nil {
					return 0, err
				}
				if q.Cancelled {
					mu = 1
				}
			}
		}
		eff *= mu
	}
	return eff, nil
}

func hitResult(eff float64) dex.HitResult {
	switch {
	case eff == 0:
		return dex.HitNoEffect
	case eff > 1:
		return dex.HitSuperEffective
	case eff < 1:
		return dex.HitNotVeryEffective
	default:
		return dex.HitEffective
	}
}

// effectiveStat is a battle stat after stages and every ability that scales it.
// attacking selects which stages a critical hit ignores.
func (b *Battle) effectiveStat(ctx context.Context, p *Pokemon, s dex.BattleStat, opponent *Pokemon, m *dex.Move, crit, attacking bool) float64 {
	stat, ok := s.Stat()
	if !ok {
		return 1
	}
	v := float64(p.Stat(stat))
	stage := p.stages[s]
	if opponent != nil && stage != 0 {
		q := &ability.Query{Amount: stage}
		b.fail(b.engine.Apply(ctx, opponent, q, ability.KindIgnoreOpponentStatChanges))
		stage = q.Amount
	}
	if crit && ((attacking && stage < 0) || (!attacking && stage > 0)) {
		stage = 0
	}
	v *= dex.StageMultiplier(stage)
	mult := 1.0
	b.fail(b.engine.BattleStatMultiplier(ctx, p, s, &mult, m))
	applied := false
	for _, q := range b.others(p) {
		b.fail(b.engine.FieldBattleStatMultiplier(ctx, q, stat, &mult, p, &applied))
	}
	if p.HasTag(dex.TagSlowStart) && (stat == dex.StatAtk || stat == dex.StatSpd) {
		mult *= 0.5
	}
	if (p.HasTag(dex.TagProtosynthesis) || p.HasTag(dex.TagQuarkDrive)) && p.highestStat() == stat {
		if stat == dex.StatSpd {
			mult *= 1.5
		} else {
			mult *= 1.3
		}
	}
	return v * mult
}

// highestStat returns the stat boosted by Protosynthesis and Quark Drive.
func (p *Pokemon) highestStat() dex.Stat {
	best := dex.StatAtk
	for s := dex.StatAtk; s <= dex.StatSpd; s++ {
		if p.Stat(s) > p.Stat(best) {
			best = s
		}
	}
	return best
}

// speed is p's effective speed for turn order.
func (b *Battle) speed(ctx context.Context, p *Pokemon) float64 {
	v := b.effectiveStat(ctx, p, dex.BattleStatSpd, nil, nil, false, true)
	if p.status == dex.StatusParalysis {
		v *= 0.5
	}
	if b.HasArenaTag(dex.ArenaTagTailwind, p.player) {
		v *= 2
	}
	return v
}

func (b *Battle) weatherMultiplier(t dex.Type) float64 {
	if b.WeatherSuppressed() {
		return 1
	}
	switch b.weather {
	case dex.WeatherSunny, dex.WeatherHarshSun:
		switch t {
		case dex.TypeFire:
			return 1.5
		case dex.TypeWater:
			if b.weather == dex.WeatherHarshSun {
				return 0
			}
			return 0.5
		}
	case dex.WeatherRain, dex.WeatherHeavyRain:
		switch t {
		case dex.TypeWater:
			return 1.5
		case dex.TypeFire:
			if b.weather == dex.WeatherHeavyRain {
				return 0
			}
			return 0.5
		}
	}
	return 1
}

// calcDamage computes the damage of one strike before the defender's abilities see it.
func (b *Battle) calcDamage(ctx context.Context, user, target *Pokemon, args *ability.AttackArgs, eff float64, crit bool) (int, error) {
	m := args.EffectiveMove()
	if args.Power <= 0 || eff == 0 {
		return 0, nil
	}
	atkStat, defStat := dex.BattleStatAtk, dex.BattleStatDef
	if m.Category == dex.CategorySpecial {
		atkStat, defStat = dex.BattleStatSpAtk, dex.BattleStatSpDef
	}
	atk := b.effectiveStat(ctx, user, atkStat, target, m, crit, true)
	def := b.effectiveStat(ctx, target, defStat, user, m, crit, false)
	dmg := float64(damageFormula(user.level, args.Power, atk, def))

	mult := 1.0
	if args.Targets > 1 {
		mult *= 0.75
	}
	mult *= b.weatherMultiplier(args.Type)
	if crit {
		q := &ability.Query{Value: 1.5}
		if err := b.engine.Apply(ctx, user, q, ability.KindMultCrit); err != nil {
			return 0, err
		}
		mult *= q.Value
	}
	mult *= float64(b.roller.Roll(damageRoll).Total()) / 100
	if dex.ContainsType(user.Types(), args.Type) {
		q := &ability.Query{Value: 1.5}
		if err := b.engine.Apply(ctx, user, q, ability.KindStabBoost); err != nil {
			return 0, err
		}
		mult *= q.Value
	}
	mult *= eff
	if user.status == dex.StatusBurn && m.Category == dex.CategoryPhysical {
		q := &ability.Query{}
		if err := b.engine.Apply(ctx, user, q, ability.KindBypassBurnDamageReduction); err != nil {
			return 0, err
		}
		if !q.Cancelled {
			mult *= 0.5
		}
	}
	if !crit && b.screened(target, m) {
		mult *= 0.5
	}
	if args.Type == dex.TypeElectric && user.HasTag(dex.TagCharged) {
		mult *= 2
	}
	if args.Type == dex.TypeFire && user.HasTag(dex.TagFireBoost) {
		mult *= 1.5
	}
	args.Damage = max(math.Floor(dmg*mult), 1)
	if err := b.engine.PreAttack(ctx, user, args, ability.KindDamageBoost); err != nil {
		return 0, err
	}
	dmgOut := int(args.Damage)
	args.Damage = 0
	return max(dmgOut, 1), nil
}

func (b *Battle) screened(target *Pokemon, m *dex.Move) bool {
	if b.HasArenaTag(dex.ArenaTagAuroraVeil, target.player) {
		return true
	}
	if m.Category == dex.CategoryPhysical {
		return b.HasArenaTag(dex.ArenaTagReflect, target.player)
	}
	return b.HasArenaTag(dex.ArenaTagLightScreen, target.player)
}

// prepareAttack runs the attacker's and the field's PreAttack abilities for one target.
func (b *Battle) prepareAttack(ctx context.Context, user, target *Pokemon, m *dex.Move, targets int) (*ability.AttackArgs, error) {
	var def ability.Pokemon
	if target != nil {
		def = target
	}
	args := ability.NewAttackArgs(user, def, m, targets)
	hits, err := b.strikeCount(ctx, user, m)
	if err != nil {
		return nil, err
	}
	args.Hits = hits
	if err := b.engine.PreAttack(ctx, user, args, ability.KindMoveTypeChange, ability.KindPokemonTypeChange); err != nil {
		return nil, err
	}
	if err := b.engine.PreAttack(ctx, user, args, ability.KindMovePowerBoost, ability.KindVariableMovePowerBoost, ability.KindFieldMovePowerBoost); err != nil {
		return nil, err
	}
	for _, q := range b.others(user) {
		if err := b.engine.PreAttack(ctx, q, args, ability.KindFieldMovePowerBoost); err != nil {
			return nil, err
		}
	}
	if err := b.engine.PreAttack(ctx, user, args, ability.KindAddSecondStrike); err != nil {
		return nil, err
	}
	return args, b.flush(ctx)
}

// useDamagingMove resolves an attack against every target. It returns the Pokemon it reached.
func (b *Battle) useDamagingMove(ctx context.Context, user *Pokemon, m *dex.Move, targets []*Pokemon) ([]ability.Pokemon, error) {
	if len(targets) == 0 {
		b.say("But there was no target...")
		return nil, nil
	}
	if singleTarget(m) {
		t, err := b.redirect(ctx, user, m, targets[0])
		if err != nil {
			return nil, err
		}
		targets = []*Pokemon{t}
	}
	var reached []ability.Pokemon
	var dealt int
	for _, target := range targets {
		if target.IsFainted() || user.IsFainted() {
			continue
		}
		args, err := b.prepareAttack(ctx, user, target, m, len(targets))
		if err != nil {
			return nil, err
		}
		if b.blockedByProtect(ctx, user, target, m) {
			continue
		}
		ok, err := b.accuracyCheck(ctx, user, target, m, args.Type)
		if err != nil {
			return nil, err
		}
		if !ok {
			b.sayf("%s avoided the attack!", target.name)
			continue
		}
		if m.OHKO {
			n, err := b.oneHitKO(ctx, user, target, args)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				reached = append(reached, target)
				dealt += n
			}
			continue
		}
		n, err := b.strike(ctx, user, target, args)
		if err != nil {
			return nil, err
		}
		if n >= 0 {
			reached = append(reached, target)
			dealt += n
		}
	}
	return reached, b.afterAttack(ctx, user, m, targets, dealt)
}

// strike resolves every hit of one attack against target.
// It returns the damage dealt, or -1 when the target was unaffected.
func (b *Battle) strike(ctx context.Context, user, target *Pokemon, args *ability.AttackArgs) (int, error) {
	m := args.Move
	eff, err := b.typeMultiplier(ctx, user, target, args.Type)
	if err != nil {
		return 0, err
	}
	baseHits := args.Hits
	if args.StrikeMultiplier != 1 && baseHits > 1 {
		baseHits /= 2
	}
	total, landed := 0, 0
	var inflicted dex.StatusEffect
	for i := 0; i < args.Hits; i++ {
		if target.IsFainted() || user.IsFainted() {
			break
		}
		crit, err := b.critical(ctx, user, target, m)
		if err != nil {
			return 0, err
		}
		dmg, err := b.calcDamage(ctx, user, target, args, eff, crit)
		if err != nil {
			return 0, err
		}
		if i >= baseHits {
			dmg = max(int(float64(dmg)*args.StrikeMultiplier), 1)
		}
		d := ability.NewDefendArgs(user, m)
		d.Type = args.Type
		d.TypeMultiplier = eff
		d.Damage = dmg
		if err := b.engine.PreDefend(ctx, target, d); err != nil {
			return 0, err
		}
		if err := b.flush(ctx); err != nil {
			return 0, err
		}
		if d.Cancelled || d.TypeMultiplier == 0 {
			if i == 0 {
				b.sayf("It doesn't affect %s...", target.name)
				return -1, nil
			}
			break
		}
		dmg = min(max(d.Damage, 0), target.hp)
		target.hp -= dmg
		total += dmg
		landed++
		result := hitResult(d.TypeMultiplier)
		target.battleData.HitCount++
		target.lastHit = &ability.HitRecord{Source: user, Move: m, Damage: dmg, Result: result, Critical: crit}
		if crit {
			b.say("A critical hit!")
		}
		if i == 0 {
			switch result {
			case dex.HitSuperEffective:
				b.say("It's super effective!")
			case dex.HitNotVeryEffective:
				b.say("It's not very effective...")
			}
			if !target.IsFainted() {
				inflicted, err = b.secondaryEffects(ctx, user, target, m, d.EffectChance)
				if err != nil {
					return 0, err
				}
			}
		}
		if err := b.engine.PostDefend(ctx, target, user, m, result); err != nil {
			return 0, err
		}
		if err := b.engine.PostAttack(ctx, user, ability.StrikeArgs{Defender: target, Move: m, Result: result, Inflicted: inflicted}); err != nil {
			return 0, err
		}
		if err := b.flush(ctx); err != nil {
			return 0, err
		}
		if target.IsFainted() {
			if err := b.faint(ctx, target, user, m, result); err != nil {
				return 0, err
			}
		}
	}
	if landed > 1 {
		b.sayf("Hit %d time(s)!", landed)
	}
	return total, nil
}

// secondaryEffects applies the chance-based effects of m on its first hit.
func (b *Battle) secondaryEffects(ctx context.Context, user, target *Pokemon, m *dex.Move, chance int) (dex.StatusEffect, error) {
	if chance <= 0 {
		return dex.StatusNone, nil
	}
	q := &ability.Query{Value: float64(chance)}
	if err := b.engine.Apply(ctx, user, q, ability.KindMoveEffectChanceMultiplier); err != nil {
		return dex.StatusNone, err
	}
	if q.Value <= 0 || float64(b.RandInt(100)) >= q.Value {
		return dex.StatusNone, nil
	}
	var inflicted dex.StatusEffect
	if m.Status != dex.StatusNone {
		ok, err := b.trySetStatus(ctx, target, m.Status, user)
		if err != nil {
			return dex.StatusNone, err
		}
		if ok {
			inflicted = m.Status
		}
	}
	if m.Flinch {
		if _, err := b.tryAddTag(ctx, target, user, dex.TagFlinched, 0); err != nil {
			return inflicted, err
		}
	}
	if m.Tag != dex.TagNone {
		if _, err := b.tryAddTag(ctx, target, user, m.Tag, 0); err != nil {
			return inflicted, err
		}
	}
	for _, sc := range m.StatChanges {
		if sc.Self {
			continue
		}
		b.Queue(ability.StatStageChange{Target: target, Source: user, Stats: []dex.BattleStat{sc.Stat}, Levels: sc.Levels})
	}
	return inflicted, b.flush(ctx)
}

func (b *Battle) oneHitKO(ctx context.Context, user, target *Pokemon, args *ability.AttackArgs) (int, error) {
	q := &ability.Query{}
	if err := b.engine.Apply(ctx, target, q, ability.KindBlockOneHitKO); err != nil {
		return 0, err
	}
	if err := b.flush(ctx); err != nil {
		return 0, err
	}
	if q.Cancelled || target.level > user.level {
		b.sayf("It doesn't affect %s...", target.name)
		return 0, nil
	}
	eff, err := b.typeMultiplier(ctx, user, target, args.Type)
	if err != nil || eff == 0 {
		if err == nil {
			b.sayf("It doesn't affect %s...", target.name)
		}
		return 0, err
	}
	if b.RandInt(100) >= 30+user.level-target.level {
		b.sayf("%s avoided the attack!", target.name)
		return 0, nil
	}
	dmg := target.hp
	target.hp = 0
	target.lastHit = &ability.HitRecord{Source: user, Move: args.Move, Damage: dmg, Result: dex.HitOneHitKO}
	b.say("It's a one-hit KO!")
	if err := b.engine.PostDefend(ctx, target, user, args.Move, dex.HitOneHitKO); err != nil {
		return 0, err
	}
	if err := b.flush(ctx); err != nil {
		return 0, err
	}
	return dmg, b.faint(ctx, target, user, args.Move, dex.HitOneHitKO)
}

// afterAttack applies drain, recoil and the user's own stat changes.
func (b *Battle) afterAttack(ctx context.Context, user *Pokemon, m *dex.Move, targets []*Pokemon, dealt int) error {
	if dealt > 0 && m.Drain > 0 && !user.IsFainted() {
		amount := max(int(float64(dealt)*m.Drain), 1)
		oozed := slices.ContainsFunc(targets, func(t *Pokemon) bool {
			return b.engine.HasAbilityWithAttr(ctx, t, ability.KindReverseDrain)
		})
		if oozed {
			if err := b.indirectDamage(ctx, user, nil, amount); err != nil {
				return err
			}
		} else {
			b.heal(user, amount, user.name+" had its energy drained!")
		}
	}
	if dealt > 0 && m.Recoil > 0 && !user.IsFainted() {
		q := &ability.Query{}
		if err := b.engine.Apply(ctx, user, q, ability.KindBlockRecoilDamage); err != nil {
			return err
		}
		if !q.Cancelled {
			amount := max(int(float64(dealt)*m.Recoil), 1)
			if m == Struggle {
				amount = user.hpFraction(4)
			}
			b.sayf("%s is damaged by recoil!", user.name)
			if err := b.indirectDamage(ctx, user, user, amount); err != nil {
				return err
			}
		}
	}
	if dealt > 0 {
		for _, sc := range m.StatChanges {
			if sc.Self {
				b.Queue(ability.StatStageChange{Target: user, Source: user, SelfTarget: true, Stats: []dex.BattleStat{sc.Stat}, Levels: sc.Levels})
			}
		}
	}
	if m.HasFlag(dex.FlagExplosive) && !user.IsFainted() {
		user.hp = 0
		if err := b.faint(ctx, user, nil, nil, dex.HitOther); err != nil {
			return err
		}
	}
	return b.flush(ctx)
}

// useStatusMove resolves a non-damaging move. It returns the Pokemon it reached.
func (b *Battle) useStatusMove(ctx context.Context, user *Pokemon, m *dex.Move, targets []*Pokemon) ([]ability.Pokemon, error) {
	switch m.ID {
	case "sunny_day":
		if !b.TrySetWeather(ctx, dex.WeatherSunny, user) {
			b.say("But it failed!")
		}
		return nil, b.takeErr()
	case "rain_dance":
		if !b.TrySetWeather(ctx, dex.WeatherRain, user) {
			b.say("But it failed!")
		}
		return nil, b.takeErr()
	case "stealth_rock":
		b.Queue(ability.AddArenaTag{Tag: dex.ArenaTagStealthRock, Source: user, PlayerSide: !user.player, Turns: tagIndefinite})
		return nil, nil
	}
	if m.Target == dex.TargetUser || m.Target == dex.TargetUserSide {
		return []ability.Pokemon{user}, b.selfMove(ctx, user, m)
	}
	if singleTarget(m) && len(targets) > 0 {
		t, err := b.redirect(ctx, user, m, targets[0])
		if err != nil {
			return nil, err
		}
		targets = []*Pokemon{t}
	}
	var reached []ability.Pokemon
	for _, target := range targets {
		if target.IsFainted() {
			continue
		}
		if b.blockedByProtect(ctx, user, target, m) {
			continue
		}
		ok, err := b.accuracyCheck(ctx, user, target, m, m.Type)
		if err != nil {
			return nil, err
		}
		if !ok {
			b.sayf("%s avoided the attack!", target.name)
			continue
		}
		d := ability.NewDefendArgs(user, m)
		if err := b.engine.PreDefend(ctx, target, d); err != nil {
			return nil, err
		}
		if err := b.flush(ctx); err != nil {
			return nil, err
		}
		if d.Cancelled {
			continue
		}
		reached = append(reached, target)
		var inflicted dex.StatusEffect
		affected := false
		if m.Status != dex.StatusNone {
			if !target.CanSetStatus(ctx, m.Status, user) {
				b.say("But it failed!")
			} else if ok, err := b.trySetStatus(ctx, target, m.Status, user); err != nil {
				return nil, err
			} else if ok {
				inflicted = m.Status
				affected = true
			}
		}
		if m.Tag != dex.TagNone {
			ok, err := b.tryAddTag(ctx, target, user, m.Tag, 0)
			if err != nil {
				return nil, err
			}
			if !ok {
				b.say("But it failed!")
			}
			affected = affected || ok
		}
		for _, sc := range m.StatChanges {
			b.Queue(ability.StatStageChange{Target: target, Source: user, Stats: []dex.BattleStat{sc.Stat}, Levels: sc.Levels})
			affected = true
		}
		if err := b.flush(ctx); err != nil {
			return nil, err
		}
		if !affected {
			continue
		}
		if err := b.engine.PostDefend(ctx, target, user, m, dex.HitStatus); err != nil {
			return nil, err
		}
		if err := b.engine.PostAttack(ctx, user, ability.StrikeArgs{Defender: target, Move: m, Result: dex.HitStatus, Inflicted: inflicted}); err != nil {
			return nil, err
		}
	}
	return reached, nil
}

func (b *Battle) selfMove(ctx context.Context, user *Pokemon, m *dex.Move) error {
	acted := false
	if m.Heal > 0 {
		if user.hp >= user.MaxHP() {
			b.sayf("%s's HP is full!", user.name)
		} else {
			b.heal(user, max(int(float64(user.MaxHP())*m.Heal), 1), user.name+" restored HP.")
		}
		acted = true
	}
	if m.Tag != dex.TagNone {
		ok, err := b.tryAddTag(ctx, user, user, m.Tag, 0)
		if err != nil {
			return err
		}
		if !ok {
			b.say("But it failed!")
		}
		acted = true
	}
	for _, sc := range m.StatChanges {
		b.Queue(ability.StatStageChange{Target: user, Source: user, SelfTarget: true, Stats: []dex.BattleStat{sc.Stat}, Levels: sc.Levels})
		acted = true
	}
	if !acted {
		b.say("But nothing happened!")
	}
	return b.flush(ctx)
}
