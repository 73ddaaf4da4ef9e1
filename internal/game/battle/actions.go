package battle

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// execute performs one queued action.
func (b *Battle) execute(ctx context.Context, a ability.Action) error {
	switch a := a.(type) {
	case ability.WeatherChanged:
		if a.Weather == dex.WeatherNone {
			b.say(a.Previous.ClearMessage())
		} else {
			b.say(a.Weather.StartMessage())
		}
		for _, p := range b.field() {
			if err := b.engine.PostWeatherChange(ctx, p, a.Weather); err != nil {
				return err
			}
		}
	case ability.TerrainChanged:
		if a.Terrain == dex.TerrainNone {
			b.sayf("The %s terrain faded.", a.Previous)
		} else {
			b.sayf("The battlefield became %s terrain!", a.Terrain)
		}
		for _, p := range b.field() {
			if err := b.engine.PostTerrainChange(ctx, p, a.Terrain); err != nil {
				return err
			}
		}
	case ability.StatStageChange:
		return b.changeStats(ctx, a)
	case ability.Heal:
		if p := b.lookup(a.Target); p != nil {
			b.heal(p, a.Amount, a.Message)
		}
	case ability.Damage:
		if p := b.lookup(a.Target); p != nil {
			return b.indirectDamage(ctx, p, b.lookup(a.Source), a.Amount)
		}
	case ability.SetStatus:
		if p := b.lookup(a.Target); p != nil {
			_, err := b.trySetStatus(ctx, p, a.Effect, a.Source)
			return err
		}
	case ability.CureStatus:
		if p := b.lookup(a.Target); p != nil && p.status != dex.StatusNone {
			b.sayf("%s's %s was cured!", p.name, p.status.Noun())
			p.status = dex.StatusNone
			p.statusTurns = 0
		}
	case ability.AddTag:
		if p := b.lookup(a.Target); p != nil {
			_, err := b.tryAddTag(ctx, p, b.lookup(a.Source), a.Tag, a.Turns)
			return err
		}
	case ability.RemoveTag:
		if p := b.lookup(a.Target); p != nil {
			delete(p.tags, a.Tag)
			delete(p.tagSources, a.Tag)
		}
	case ability.AddArenaTag:
		turns := a.Turns
		if turns == 0 {
			turns = defaultFieldTurns
		}
		b.arena[sideOf(a.PlayerSide)][a.Tag] = turns
		b.sayf("%s was set up on the %s side!", a.Tag, sideOf(a.PlayerSide))
	case ability.RemoveArenaTag:
		for _, t := range a.Tags {
			for side := range b.arena {
				delete(b.arena[side], t)
			}
		}
	case ability.FormChange:
		if p := b.lookup(a.Target); p != nil && p.form != a.Form {
			p.form = a.Form
			b.sayf("%s changed form!", p.name)
		}
	case ability.TypeChange:
		if p := b.lookup(a.Target); p != nil {
			p.override = slices.Clone(a.Types)
			b.sayf("%s's type changed!", p.name)
		}
	case ability.Transform:
		if p, into := b.lookup(a.Target), b.lookup(a.Into); p != nil && into != nil {
			b.transform(p, into)
		}
	case ability.DisableMove:
		if p := b.lookup(a.Target); p != nil && a.Move != nil {
			turns := a.Turns
			if turns == 0 {
				turns = 4
			}
			p.disabled[a.Move.ID] = turns
			b.sayf("%s's %s was disabled!", p.name, a.Move.Name)
		}
	case ability.UseMove:
		user := b.lookup(a.User)
		if user == nil || a.Move == nil {
			return nil
		}
		var targets []*Pokemon
		for _, t := range a.Targets {
			if q := b.lookup(t); q != nil {
				targets = append(targets, q)
			}
		}
		return b.useMove(ctx, user, a.Move, targets, true)
	case ability.ResetStats:
		if p := b.lookup(a.Target); p != nil {
			p.stages = [dex.BattleStatCount]int{}
			b.sayf("%s's stat changes were removed!", p.name)
		}
	case ability.CopyStats:
		if p, from := b.lookup(a.Target), b.lookup(a.From); p != nil && from != nil {
			p.stages = from.stages
		}
	case ability.GiveItem:
		if p := b.lookup(a.Target); p != nil {
			p.items = append(p.items, a.Item)
		}
	case ability.Message:
		b.say(a.Text)
	case ability.ShowAbility:
		if p := b.lookup(a.Pokemon); p != nil {
			b.sayf("[%s's %s]", p.name, b.abilityName(a.Ability))
		}
	default:
		b.logger.Warn("unhandled action", zap.String("type", fmt.Sprintf("%T", a)))
	}
	return nil
}

func (b *Battle) abilityName(id ability.ID) string {
	if rec, ok := b.engine.Registry().Get(id); ok {
		return rec.BaseName()
	}
	return id.String()
}

func (b *Battle) heal(p *Pokemon, amount int, msg string) {
	if p.IsFainted() || amount <= 0 || p.hp >= p.MaxHP() {
		return
	}
	p.hp = min(p.hp+amount, p.MaxHP())
	if msg == "" {
		msg = fmt.Sprintf("%s restored HP.", p.name)
	}
	b.say(msg)
}

// indirectDamage removes HP outside of a move hitting p. Abilities blocking indirect damage stop it.
func (b *Battle) indirectDamage(ctx context.Context, p, source *Pokemon, amount int) error {
	if p.IsFainted() || amount <= 0 {
		return nil
	}
	if source != p {
		q := &ability.Query{}
		if err := b.engine.Apply(ctx, p, q, ability.KindBlockNonDirectDamage); err != nil {
			return err
		}
		if q.Cancelled {
			return nil
		}
	}
	p.hp -= min(amount, p.hp)
	b.sayf("%s lost some HP!", p.name)
	if p.IsFainted() {
		return b.faint(ctx, p, source, nil, dex.HitOther)
	}
	return nil
}

// changeStats applies a stat stage change with every ability that reacts to one.
func (b *Battle) changeStats(ctx context.Context, a ability.StatStageChange) error {
	p := b.lookup(a.Target)
	if p == nil || p.IsFainted() || !p.onField || a.Levels == 0 {
		return nil
	}
	q := &ability.Query{Stats: a.Stats, Levels: a.Levels}
	if err := b.engine.Apply(ctx, p, q, ability.KindStatChangeMultiplier); err != nil {
		return err
	}
	levels := q.Levels
	var changed []dex.BattleStat
	for _, s := range a.Stats {
		if !a.SelfTarget && levels < 0 {
			cancelled := false
			if err := b.engine.PreStatChange(ctx, p, s, &cancelled); err != nil {
				return err
			}
			if cancelled {
				continue
			}
		}
		cur := p.stages[s]
		next := min(max(cur+levels, -dex.StageLimit), dex.StageLimit)
		if next == cur {
			if levels > 0 {
				b.sayf("%s's %s won't go any higher!", p.name, s)
			} else {
				b.sayf("%s's %s won't go any lower!", p.name, s)
			}
			continue
		}
		p.stages[s] = next
		b.say(stageMessage(p.name, s, next-cur))
		changed = append(changed, s)
	}
	if len(changed) == 0 {
		return nil
	}
	if err := b.engine.PostStatChange(ctx, p, changed, levels, a.SelfTarget); err != nil {
		return err
	}
	if a.SelfTarget && levels > 0 && !a.Uncopyable {
		for _, opp := range p.Opponents() {
			cq := &ability.Query{Stats: changed, Levels: levels}
			if err := b.engine.Apply(ctx, opp, cq, ability.KindStatChangeCopy); err != nil {
				return err
			}
		}
	}
	return nil
}

func stageMessage(name string, s dex.BattleStat, delta int) string {
	var verb string
	switch {
	case delta >= 3:
		verb = "rose drastically"
	case delta == 2:
		verb = "rose sharply"
	case delta == 1:
		verb = "rose"
	case delta == -1:
		verb = "fell"
	case delta == -2:
		verb = "harshly fell"
	default:
		verb = "severely fell"
	}
	return fmt.Sprintf("%s's %s %s!", name, s, verb)
}

// trySetStatus inflicts effect on p unless an ability or the field prevents it.
func (b *Battle) trySetStatus(ctx context.Context, p *Pokemon, effect dex.StatusEffect, source ability.Pokemon) (bool, error) {
	if p.IsFainted() || p.status != dex.StatusNone {
		return false, nil
	}
	cancelled := false
	if err := b.engine.PreSetStatus(ctx, p, effect, false, &cancelled); err != nil {
		return false, err
	}
	if cancelled || !p.canSetStatusIgnoringAbilities(ctx, effect, source) {
		return false, nil
	}
	p.status = effect
	p.statusTurns = 0
	if effect == dex.StatusSleep {
		q := &ability.Query{Status: effect, Amount: 2 + b.RandInt(3)}
		if err := b.engine.Apply(ctx, p, q, ability.KindReduceStatusEffectDuration); err != nil {
			return false, err
		}
		p.statusTurns = max(q.Amount, 1)
	}
	b.sayf("%s was %s!", p.name, statusVerb(effect))
	return true, nil
}

func statusVerb(s dex.StatusEffect) string {
	switch s {
	case dex.StatusPoison:
		return "poisoned"
	case dex.StatusToxic:
		return "badly poisoned"
	case dex.StatusParalysis:
		return "paralyzed"
	case dex.StatusSleep:
		return "put to sleep"
	case dex.StatusFreeze:
		return "frozen solid"
	case dex.StatusBurn:
		return "burned"
	default:
		return s.String()
	}
}

// tagTurns returns the default duration of a volatile tag.
func (b *Battle) tagTurns(t dex.BattlerTagType) int {
	switch t {
	case dex.TagFlinched, dex.TagProtected, dex.TagSemiInvulnerable:
		return 1
	case dex.TagConfused:
		return 2 + b.RandInt(4)
	case dex.TagDrowsy, dex.TagCharged:
		return 2
	case dex.TagTaunt:
		return 3
	case dex.TagPerishSong, dex.TagDisabled:
		return 4
	case dex.TagSlowStart:
		return 5
	default:
		return tagIndefinite
	}
}

// tryAddTag attaches a volatile tag unless p already has it or an ability blocks it.
func (b *Battle) tryAddTag(ctx context.Context, p, source *Pokemon, t dex.BattlerTagType, turns int) (bool, error) {
	if !p.CanAddTag(t) {
		return false, nil
	}
	cancelled := false
	if err := b.engine.PreApplyBattlerTag(ctx, p, t, &cancelled); err != nil {
		return false, err
	}
	if cancelled {
		return false, nil
	}
	if turns == 0 {
		turns = b.tagTurns(t)
	}
	p.tags[t] = turns
	if source != nil {
		p.tagSources[t] = source
	}
	switch t {
	case dex.TagConfused:
		b.sayf("%s became confused!", p.name)
	case dex.TagProtected:
		b.sayf("%s protected itself!", p.name)
	case dex.TagTaunt:
		b.sayf("%s fell for the taunt!", p.name)
	case dex.TagFlinched:
	default:
		b.sayf("%s is affected by %s.", p.name, t)
	}
	return true, nil
}

// transform copies into's battle profile onto p.
func (b *Battle) transform(p, into *Pokemon) {
	stats := into.stats
	if into.transformed != nil {
		stats = *into.transformed
	}
	p.transformed = &stats
	p.override = slices.Clone(into.Types())
	p.stages = into.stages
	p.moves = slices.Clone(into.moves)
	p.summon.Ability = into.InnateAbility(false)
	if into.summon.Ability != ability.None {
		p.summon.Ability = into.summon.Ability
	}
	b.sayf("%s transformed into %s!", p.name, into.name)
}
