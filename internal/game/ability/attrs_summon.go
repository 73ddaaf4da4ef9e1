package ability

import (
	"context"
	"math"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

type postBattleInitFormChange struct {
	attrBase
	form FormFunc
}

func (a *postBattleInitFormChange) ApplyPostBattleInit(_ context.Context, ev *Event) bool {
	return ev.changeForm(a.form)
}

// NewPostBattleInitFormChange sets the holder's form when the battle starts.
func NewPostBattleInitFormChange(form FormFunc) Attr {
	return &postBattleInitFormChange{attrBase: newBase(KindPostBattleInitFormChange, true), form: form}
}

type postBattleInitStatChange struct {
	attrBase
	stats      []dex.BattleStat
	levels     int
	selfTarget bool
}

func (a *postBattleInitStatChange) ApplyPostBattleInit(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	if a.selfTarget {
		ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: a.stats, Levels: a.levels})
		return true
	}
	for _, opp := range active(p.Opponents()) {
		ev.Queue(StatStageChange{Target: opp, Source: p, Stats: a.stats, Levels: a.levels})
	}
	return true
}

// NewPostBattleInitStatChange changes the holder's stats, or its opponents', when the battle starts.
func NewPostBattleInitStatChange(stats []dex.BattleStat, levels int, selfTarget bool) Attr {
	return &postBattleInitStatChange{
		attrBase:   newBase(KindPostBattleInitStatChange, true),
		stats:      stats,
		levels:     levels,
		selfTarget: selfTarget,
	}
}

type postSummonMessage struct {
	attrBase
	key string
}

func (a *postSummonMessage) ApplyPostSummon(_ context.Context, ev *Event) bool {
	ev.Announce(a.key, ev.Pokemon.Name())
	return true
}

// NewPostSummonMessage announces a catalog message, formatted with the holder's name, on entry.
func NewPostSummonMessage(key string) Attr {
	return &postSummonMessage{attrBase: newBase(KindPostSummonMessage, true), key: key}
}

type postSummonUnnamedMessage struct {
	attrBase
	key string
}

func (a *postSummonUnnamedMessage) ApplyPostSummon(_ context.Context, ev *Event) bool {
	ev.Announce(a.key)
	return true
}

// NewPostSummonUnnamedMessage announces a catalog message that names no Pokemon on entry.
func NewPostSummonUnnamedMessage(key string) Attr {
	return &postSummonUnnamedMessage{attrBase: newBase(KindPostSummonUnnamedMessage, true), key: key}
}

type postSummonAddBattlerTag struct {
	attrBase
	tag   dex.BattlerTagType
	turns int
}

func (a *postSummonAddBattlerTag) ApplyPostSummon(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	if !p.CanAddTag(a.tag) {
		return false
	}
	ev.Queue(AddTag{Target: p, Source: p, Tag: a.tag, Turns: a.turns})
	return true
}

// NewPostSummonAddBattlerTag attaches tag to the holder on entry.
func NewPostSummonAddBattlerTag(tag dex.BattlerTagType, turns int, show bool) Attr {
	return &postSummonAddBattlerTag{attrBase: newBase(KindPostSummonAddBattlerTag, show), tag: tag, turns: turns}
}

type postSummonStatChange struct {
	attrBase
	stats      []dex.BattleStat
	levels     int
	selfTarget bool
	intimidate bool
	// arenaTag, when set, must be on the holder's side.
	arenaTag dex.ArenaTagType
}

func (a *postSummonStatChange) ApplyPostSummon(ctx context.Context, ev *Event) bool {
	p := ev.Pokemon
	if a.arenaTag != dex.ArenaTagNone && !p.Scene().HasArenaTag(a.arenaTag, p.IsPlayer()) {
		return false
	}
	// The indicator precedes the opponents' intimidation responses.
	ev.Reveal()
	if a.selfTarget {
		ev.Queue(StatStageChange{Target: p, Source: p, SelfTarget: true, Stats: a.stats, Levels: a.levels})
		return true
	}
	for _, opp := range active(p.Opponents()) {
		q := &Query{}
		if a.intimidate {
			apply := ev.Engine.Apply
			if ev.Simulated {
				apply = ev.Engine.ApplySimulated
			}
			if err := apply(ctx, opp, q, KindIntimidateImmunity); err != nil {
				ev.err = err
				return false
			}
			if err := apply(ctx, opp, q, KindPostIntimidateStatChange); err != nil {
				ev.err = err
				return false
			}
		}
		if !q.Cancelled {
			ev.Queue(StatStageChange{Target: opp, Source: p, Stats: a.stats, Levels: a.levels})
		}
	}
	return true
}

// NewPostSummonStatChange changes the holder's stats, or every opponent's, on entry.
// With intimidate set, each opponent's intimidation responses run first and may cancel its change.
func NewPostSummonStatChange(stats []dex.BattleStat, levels int, selfTarget, intimidate bool) Attr {
	return &postSummonStatChange{
		attrBase:   newBase(KindPostSummonStatChange, false),
		stats:      stats,
		levels:     levels,
		selfTarget: selfTarget,
		intimidate: intimidate,
	}
}

// NewPostSummonStatChangeOnArena raises the holder's Attack on entry while tag is on its side.
func NewPostSummonStatChangeOnArena(tag dex.ArenaTagType) Attr {
	return &postSummonStatChange{
		attrBase:   newBase(KindPostSummonStatChangeOnArena, false),
		stats:      []dex.BattleStat{dex.BattleStatAtk},
		levels:     1,
		selfTarget: true,
		arenaTag:   tag,
	}
}

type postSummonAllyHeal struct {
	attrBase
	ratio int
}

func (a *postSummonAllyHeal) ApplyPostSummon(_ context.Context, ev *Event) bool {
	ally := ev.Pokemon.Ally()
	if ally == nil || !ally.IsOnField() || ally.IsFainted() {
		return false
	}
	amount := max(ev.Pokemon.MaxHP()/a.ratio, 1)
	ev.Queue(Heal{
		Target:  ally,
		Amount:  amount,
		Message: ev.Engine.catalog.Sprintf("postSummonAllyHeal", ally.Name(), ev.Pokemon.Name()),
	})
	return true
}

// NewPostSummonAllyHeal heals the holder's ally by 1/ratio of the holder's max HP on entry.
// A ratio of zero or less means 4.
func NewPostSummonAllyHeal(ratio int) Attr {
	if ratio <= 0 {
		ratio = 4
	}
	return &postSummonAllyHeal{attrBase: newBase(KindPostSummonAllyHeal, true), ratio: ratio}
}

type postSummonClearAllyStats struct{ attrBase }

func (a *postSummonClearAllyStats) ApplyPostSummon(_ context.Context, ev *Event) bool {
	ally := ev.Pokemon.Ally()
	if ally == nil || !ally.IsOnField() || ally.IsFainted() {
		return false
	}
	ev.Queue(ResetStats{Target: ally})
	ev.Announce("postSummonClearAllyStats", ally.Name())
	return true
}

// NewPostSummonClearAllyStats resets every stat stage of the holder's ally on entry.
func NewPostSummonClearAllyStats() Attr {
	return &postSummonClearAllyStats{attrBase: newBase(KindPostSummonClearAllyStats, true)}
}

type postSummonTransform struct{ attrBase }

func (a *postSummonTransform) ApplyPostSummon(_ context.Context, ev *Event) bool {
	targets := active(ev.Pokemon.Opponents())
	if len(targets) == 0 {
		return false
	}
	target := targets[ev.Rand(len(targets))]
	ev.Queue(Transform{Target: ev.Pokemon, Into: target})
	ev.Announce("postSummonTransform", ev.Pokemon.Name(), target.Name())
	return true
}

// NewPostSummonTransform transforms the holder into a random opponent on entry.
func NewPostSummonTransform() Attr {
	return &postSummonTransform{attrBase: newBase(KindPostSummonTransform, true)}
}

type postSummonWeatherChange struct {
	attrBase
	weather dex.WeatherType
}

func (a *postSummonWeatherChange) ApplyPostSummon(ctx context.Context, ev *Event) bool {
	if !a.weather.IsImmutable() && ev.Scene().Weather().IsImmutable() {
		return false
	}
	return ev.setWeather(ctx, a.weather)
}

// NewPostSummonWeatherChange sets the weather on entry. Only an immutable weather replaces an immutable one.
func NewPostSummonWeatherChange(w dex.WeatherType) Attr {
	return &postSummonWeatherChange{attrBase: newBase(KindPostSummonWeatherChange, true), weather: w}
}

type postSummonTerrainChange struct {
	attrBase
	terrain dex.TerrainType
}

func (a *postSummonTerrainChange) ApplyPostSummon(ctx context.Context, ev *Event) bool {
	return ev.setTerrain(ctx, a.terrain)
}

// NewPostSummonTerrainChange sets the terrain on entry.
func NewPostSummonTerrainChange(t dex.TerrainType) Attr {
	return &postSummonTerrainChange{attrBase: newBase(KindPostSummonTerrainChange, true), terrain: t}
}

type postSummonFormChange struct {
	attrBase
	form FormFunc
}

func (a *postSummonFormChange) ApplyPostSummon(_ context.Context, ev *Event) bool {
	return ev.changeForm(a.form)
}

// NewPostSummonFormChange sets the holder's form on entry.
func NewPostSummonFormChange(form FormFunc) Attr {
	return &postSummonFormChange{attrBase: newBase(KindPostSummonFormChange, true), form: form}
}

type postSummonCopyAbility struct{ attrBase }

func (a *postSummonCopyAbility) ApplyPostSummon(ctx context.Context, ev *Event) bool {
	p := ev.Pokemon
	targets := active(p.Opponents())
	if len(targets) == 0 {
		return false
	}
	target := targets[ev.Rand(len(targets))]
	copied := ev.Engine.Ability(target, false)
	if copied == nil {
		return false
	}
	// Trace may copy Wonder Guard even though it is otherwise uncopiable.
	if copied.HasAttr(KindUncopiable) && !(copied.ID() == WonderGuard && ev.Engine.HasAbility(ctx, p, Trace)) {
		return false
	}
	if !ev.Simulated {
		if sd := p.SummonData(); sd != nil {
			sd.Ability = copied.ID()
		}
	}
	ev.reveal(target)
	ev.Say("trace", p.Name(), target.Name(), copied.Name())
	return true
}

// NewPostSummonCopyAbility copies a random opponent's ability over the holder's own on entry.
func NewPostSummonCopyAbility() Attr {
	return &postSummonCopyAbility{attrBase: newBase(KindPostSummonCopyAbility, true)}
}

type postSummonUserFieldRemoveStatus struct {
	attrBase
	effects []dex.StatusEffect
}

func (a *postSummonUserFieldRemoveStatus) ApplyPostSummon(_ context.Context, ev *Event) bool {
	side := sideField(ev.Pokemon)
	if len(side) == 0 {
		return false
	}
	for _, q := range side {
		if s := q.Status(); dex.ContainsStatus(a.effects, s) {
			ev.Announce("statusHealed", q.Name(), s.Noun())
			ev.Queue(CureStatus{Target: q})
		}
	}
	return true
}

// NewPostSummonUserFieldRemoveStatusEffect cures the listed statuses on the holder's side on entry.
func NewPostSummonUserFieldRemoveStatusEffect(effects ...dex.StatusEffect) Attr {
	return &postSummonUserFieldRemoveStatus{
		attrBase: newBase(KindPostSummonUserFieldRemoveStatusEffect, false),
		effects:  effects,
	}
}

type postSummonCopyAllyStats struct{ attrBase }

func (a *postSummonCopyAllyStats) ApplyPostSummon(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	if !p.Scene().Double() {
		return false
	}
	ally := p.Ally()
	if ally == nil {
		return false
	}
	changed := false
	for _, s := range dex.AllBattleStats() {
		if ally.StatStage(s) != 0 {
			changed = true
			break
		}
	}
	if !changed {
		return false
	}
	ev.Queue(CopyStats{Target: p, From: ally})
	ev.Say("costar", p.Name(), ally.Name())
	return true
}

// NewPostSummonCopyAllyStats copies the ally's stat stages onto the holder on entry in a double battle.
func NewPostSummonCopyAllyStats() Attr {
	return &postSummonCopyAllyStats{attrBase: newBase(KindPostSummonCopyAllyStats, true)}
}

type postSummonRemoveArenaTag struct {
	attrBase
	tags []dex.ArenaTagType
}

func (a *postSummonRemoveArenaTag) ApplyPostSummon(_ context.Context, ev *Event) bool {
	ev.Queue(RemoveArenaTag{Tags: a.tags})
	return true
}

// NewPostSummonRemoveArenaTag removes the listed field effects on entry.
func NewPostSummonRemoveArenaTag(tags ...dex.ArenaTagType) Attr {
	return &postSummonRemoveArenaTag{attrBase: newBase(KindPostSummonRemoveArenaTag, true), tags: tags}
}

type download struct{ attrBase }

func (a *download) ApplyPostSummon(_ context.Context, ev *Event) bool {
	opps := active(ev.Pokemon.Opponents())
	if len(opps) == 0 {
		return false
	}
	var def, spdef float64
	for _, opp := range opps {
		def += float64(opp.Stat(dex.StatDef))
		spdef += float64(opp.Stat(dex.StatSpDef))
	}
	def = math.Round(def / float64(len(opps)))
	spdef = math.Round(spdef / float64(len(opps)))
	if def <= 0 || spdef <= 0 {
		return false
	}
	stat := dex.BattleStatSpAtk
	if def < spdef {
		stat = dex.BattleStatAtk
	}
	ev.Queue(StatStageChange{Target: ev.Pokemon, Source: ev.Pokemon, Stats: []dex.BattleStat{stat}, Levels: 1})
	return true
}

// NewDownload raises Attack or Sp. Atk on entry, whichever targets the opponents' weaker defense.
func NewDownload() Attr { return &download{attrBase: newBase(KindDownload, true)} }

type frisk struct{ attrBase }

func (a *frisk) ApplyPostSummon(_ context.Context, ev *Event) bool {
	for _, opp := range active(ev.Pokemon.Opponents()) {
		rec := ev.Engine.Ability(opp, false)
		if rec == nil {
			continue
		}
		ev.Announce("frisk", ev.Pokemon.Name(), opp.Name(), rec.Name())
		ev.reveal(opp)
	}
	return true
}

// NewFrisk reveals every opponent's ability on entry.
func NewFrisk() Attr { return &frisk{attrBase: newBase(KindFrisk, true)} }

type forewarn struct{ attrBase }

func (a *forewarn) ApplyPostSummon(_ context.Context, ev *Event) bool {
	best := 0
	var names []string
	for _, opp := range active(ev.Pokemon.Opponents()) {
		for _, m := range opp.Moves() {
			power := forewarnPower(m)
			switch {
			case power > best:
				best = power
				names = []string{m.Name}
			case power == best && best > 0:
				names = append(names, m.Name)
			}
		}
	}
	if len(names) == 0 {
		return false
	}
	ev.Announce("forewarn", ev.Pokemon.Name(), names[ev.Rand(len(names))])
	return true
}

func forewarnPower(m *dex.Move) int {
	switch {
	case m.OHKO:
		return 150
	case m.Category == dex.CategoryStatus:
		return 1
	default:
		return m.Power
	}
}

// NewForewarn reveals the opponents' most powerful move on entry.
func NewForewarn() Attr { return &forewarn{attrBase: newBase(KindForewarn, true)} }

type preSwitchOutResetStatus struct{ attrBase }

func (a *preSwitchOutResetStatus) ApplyPreSwitchOut(_ context.Context, ev *Event) bool {
	if ev.Pokemon.Status() == dex.StatusNone {
		return false
	}
	ev.Queue(CureStatus{Target: ev.Pokemon})
	return true
}

// NewPreSwitchOutResetStatus cures the holder's status when it switches out.
func NewPreSwitchOutResetStatus() Attr {
	return &preSwitchOutResetStatus{attrBase: newBase(KindPreSwitchOutResetStatus, true)}
}

type preSwitchOutClearWeather struct{ attrBase }

func (a *preSwitchOutClearWeather) ApplyPreSwitchOut(ctx context.Context, ev *Event) bool {
	return clearPrimalWeather(ctx, ev, true)
}

// primalSources pairs each primal weather with the ability that sustains it.
var primalSources = map[dex.WeatherType]ID{
	dex.WeatherHarshSun:    DesolateLand,
	dex.WeatherHeavyRain:   PrimordialSea,
	dex.WeatherStrongWinds: DeltaStream,
}

// clearPrimalWeather clears the primal weather the holder sustains when no other active
// Pokemon carries the same ability. leaving excludes the holder itself from the check.
func clearPrimalWeather(ctx context.Context, ev *Event, leaving bool) bool {
	p := ev.Pokemon
	src, ok := primalSources[ev.Scene().Weather()]
	if !ok || !ev.Engine.HasAbility(ctx, p, src) {
		return false
	}
	for _, other := range activeOnField(ev.Scene()) {
		if leaving && samePokemon(other, p) {
			continue
		}
		if ev.Engine.HasAbility(ctx, other, src) {
			return false
		}
	}
	ev.setWeather(ctx, dex.WeatherNone)
	return true
}

// NewPreSwitchOutClearWeather ends the holder's primal weather when it switches out.
func NewPreSwitchOutClearWeather() Attr {
	return &preSwitchOutClearWeather{attrBase: newBase(KindPreSwitchOutClearWeather, true)}
}

type preSwitchOutHeal struct{ attrBase }

func (a *preSwitchOutHeal) ApplyPreSwitchOut(_ context.Context, ev *Event) bool {
	p := ev.Pokemon
	if isFullHP(p) {
		return false
	}
	ev.Queue(Heal{Target: p, Amount: int(math.Floor(float64(p.MaxHP()) * 0.33))})
	return true
}

// NewPreSwitchOutHeal restores a third of the holder's max HP when it switches out.
func NewPreSwitchOutHeal() Attr {
	return &preSwitchOutHeal{attrBase: newBase(KindPreSwitchOutHeal, true)}
}

type preSwitchOutFormChange struct {
	attrBase
	form FormFunc
}

func (a *preSwitchOutFormChange) ApplyPreSwitchOut(_ context.Context, ev *Event) bool {
	return ev.changeForm(a.form)
}

// NewPreSwitchOutFormChange sets the holder's form when it switches out.
func NewPreSwitchOutFormChange(form FormFunc) Attr {
	return &preSwitchOutFormChange{attrBase: newBase(KindPreSwitchOutFormChange, true), form: form}
}
