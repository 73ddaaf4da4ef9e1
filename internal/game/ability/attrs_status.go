package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

type protectStat struct {
	attrBase
	stats []dex.BattleStat
}

func (a *protectStat) ApplyPreStatChange(_ context.Context, ev *Event, stat dex.BattleStat, cancelled *bool) bool {
	if len(a.stats) > 0 && !containsStat(a.stats, stat) {
		return false
	}
	*cancelled = true
	name := "stats"
	if len(a.stats) > 0 {
		name = stat.String()
	}
	ev.say("protectStat", name)
	return true
}

func containsStat(stats []dex.BattleStat, s dex.BattleStat) bool {
	for _, v := range stats {
		if v == s {
			return true
		}
	}
	return false
}

// NewProtectStat stops other Pokemon lowering the listed stats of the holder. No stats protects every stat.
func NewProtectStat(stats ...dex.BattleStat) Attr {
	return &protectStat{attrBase: newBase(KindProtectStat, true), stats: stats}
}

// StatChangeCondition decides whether a stat change p just received triggers a reaction.
type StatChangeCondition func(p Pokemon, stats []dex.BattleStat, levels int) bool

// StatsLowered holds for a stat change that lowered at least one stat.
func StatsLowered(_ Pokemon, _ []dex.BattleStat, levels int) bool { return levels < 0 }

type postStatChangeStatChange struct {
	attrBase
	cond   StatChangeCondition
	stats  []dex.BattleStat
	levels int
}

func (a *postStatChangeStatChange) ApplyPostStatChange(_ context.Context, ev *Event, stats []dex.BattleStat, levels int, selfTarget bool) bool {
	p := ev.Pokemon
	if selfTarget || !a.cond(p, stats, levels) {
		return false
	}
	ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: a.stats, Levels: a.levels})
	return true
}

// NewPostStatChangeStatChange changes the holder's stats in reaction to a change another Pokemon caused.
func NewPostStatChangeStatChange(cond StatChangeCondition, stats []dex.BattleStat, levels int) Attr {
	return &postStatChangeStatChange{
		attrBase: newBase(KindPostStatChangeStatChange, true),
		cond:     cond,
		stats:    stats,
		levels:   levels,
	}
}

type statusImmunity struct {
	attrBase
	effects []dex.StatusEffect
}

func (a *statusImmunity) ApplyPreSetStatus(_ context.Context, ev *Event, effect dex.StatusEffect, cancelled *bool) bool {
	if len(a.effects) > 0 && !dex.ContainsStatus(a.effects, effect) {
		return false
	}
	*cancelled = true
	if len(a.effects) > 0 {
		ev.say("statusEffectImmunityWithName", effect.Noun())
	} else {
		ev.say("statusEffectImmunity")
	}
	return true
}

// NewStatusEffectImmunity prevents the listed statuses on the holder. No effects prevents every status.
func NewStatusEffectImmunity(effects ...dex.StatusEffect) Attr {
	return &statusImmunity{attrBase: newBase(KindStatusEffectImmunity, true), effects: effects}
}

// NewUserFieldStatusEffectImmunity prevents the listed statuses on the holder's side.
// The scheduler dispatches it on the target's allies as well as on the target.
func NewUserFieldStatusEffectImmunity(effects ...dex.StatusEffect) Attr {
	return &statusImmunity{attrBase: newBase(KindUserFieldStatusEffectImmunity, true), effects: effects}
}

type tagImmunity struct {
	attrBase
	tags []dex.BattlerTagType
}

func (a *tagImmunity) ApplyPreApplyBattlerTag(_ context.Context, ev *Event, tag dex.BattlerTagType, cancelled *bool) bool {
	for _, t := range a.tags {
		if t == tag {
			*cancelled = true
			ev.say("battlerTagImmunity", tag.String())
			return true
		}
	}
	return false
}

// NewBattlerTagImmunity prevents the listed tags from attaching to the holder.
func NewBattlerTagImmunity(tags ...dex.BattlerTagType) Attr {
	return &tagImmunity{attrBase: newBase(KindBattlerTagImmunity, true), tags: tags}
}

// NewUserFieldBattlerTagImmunity prevents the listed tags from attaching to the holder's side.
// The scheduler dispatches it on the target's allies as well as on the target.
func NewUserFieldBattlerTagImmunity(tags ...dex.BattlerTagType) Attr {
	return &tagImmunity{attrBase: newBase(KindUserFieldBattlerTagImmunity, true), tags: tags}
}

type suppressWeatherEffect struct {
	attrBase
	affectsImmutable bool
}

func (a *suppressWeatherEffect) ApplyPreWeatherEffect(_ context.Context, _ *Event, weather dex.WeatherType, cancelled *bool) bool {
	if weather.IsImmutable() && !a.affectsImmutable {
		return false
	}
	*cancelled = true
	return true
}

// NewSuppressWeatherEffect cancels the effects of weather while the holder is on the field.
// Primal weather is only cancelled with affectsImmutable.
func NewSuppressWeatherEffect(affectsImmutable bool) Attr {
	return &suppressWeatherEffect{attrBase: newBase(KindSuppressWeatherEffect, true), affectsImmutable: affectsImmutable}
}

type blockWeatherDamage struct {
	attrBase
	weathers []dex.WeatherType
}

func (a *blockWeatherDamage) ApplyPreWeatherEffect(_ context.Context, _ *Event, weather dex.WeatherType, cancelled *bool) bool {
	if len(a.weathers) > 0 && !containsWeather(a.weathers, weather) {
		return false
	}
	*cancelled = true
	return true
}

func containsWeather(ws []dex.WeatherType, w dex.WeatherType) bool {
	for _, v := range ws {
		if v == w {
			return true
		}
	}
	return false
}

// NewBlockWeatherDamage prevents chip damage from the listed weathers. No weathers blocks them all.
func NewBlockWeatherDamage(weathers ...dex.WeatherType) Attr {
	return &blockWeatherDamage{attrBase: newBase(KindBlockWeatherDamage, true), weathers: weathers}
}
