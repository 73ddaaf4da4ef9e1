package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// table builds the records of one generation.
type table struct {
	c   *Catalog
	gen int
}

func (t table) ab(id ID) *Builder { return New(id, t.gen).WithCatalog(t.c) }

func stats(s ...dex.BattleStat) []dex.BattleStat { return s }

func weather(ws ...dex.WeatherType) Condition { return WeatherIs{Weathers: ws} }

func terrain(ts ...dex.TerrainType) Condition { return TerrainIs{Terrains: ts} }

func category(cs ...dex.MoveCategory) MoveCondition { return MoveCategoryIs{Categories: cs} }

func flag(f dex.MoveFlags) MoveCondition { return MoveHasFlag{Flag: f} }

var (
	sunny    = []dex.WeatherType{dex.WeatherSunny, dex.WeatherHarshSun}
	rainy    = []dex.WeatherType{dex.WeatherRain, dex.WeatherHeavyRain}
	snowy    = []dex.WeatherType{dex.WeatherHail, dex.WeatherSnow}
	poisoned = []dex.StatusEffect{dex.StatusPoison, dex.StatusToxic}
)

// statused holds while p has a status, or acts as if it had one.
var statused = ConditionFunc(func(ctx context.Context, e *Engine, p Pokemon) bool {
	return p.Status() != dex.StatusNone || e.HasAbility(ctx, p, Comatose)
})

// fieldHasArenaTag reports whether either side carries t.
func fieldHasArenaTag(s Scene, t dex.ArenaTagType) bool {
	return s.HasArenaTag(t, true) || s.HasArenaTag(t, false)
}

// hpForm picks form 1 at or below half HP and form 0 above it.
func hpForm(p Pokemon) int {
	if hpRatio(p) <= 0.5 {
		return 1
	}
	return 0
}

func baseForm(Pokemon) int { return 0 }

// unchangeable marks the form abilities that copy, swap, suppression and fusion never touch.
func unchangeable() []Attr {
	return []Attr{NewUncopiable(), NewUnswappable(), NewUnsuppressable(), NewNoFusion()}
}
