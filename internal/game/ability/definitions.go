package ability

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Definition is a data-defined ability loaded from YAML.
type Definition struct {
	// Offset is added to CustomBase to form the ability id.
	Offset      int    `yaml:"offset"`
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Generation  int    `yaml:"generation"`
	Ignorable   bool   `yaml:"ignorable"`
	BypassFaint bool   `yaml:"bypass_faint"`
	Partial     bool   `yaml:"partial"`
	// LuaCondition names a global Lua predicate gating the whole ability.
	LuaCondition string    `yaml:"lua_condition"`
	Attrs        []AttrDef `yaml:"attrs"`
}

// AttrDef configures one attribute from the factory table. Each factory reads only the fields it needs.
type AttrDef struct {
	Kind       string               `yaml:"kind"`
	Stats      []dex.BattleStat     `yaml:"stats"`
	Levels     int                  `yaml:"levels"`
	SelfTarget bool                 `yaml:"self_target"`
	Element    dex.Type             `yaml:"element"`
	Statuses   []dex.StatusEffect   `yaml:"statuses"`
	Tags       []dex.BattlerTagType `yaml:"tags"`
	Weathers   []dex.WeatherType    `yaml:"weathers"`
	Terrain    dex.TerrainType      `yaml:"terrain"`
	Categories []dex.MoveCategory   `yaml:"categories"`
	Flags      dex.MoveFlags        `yaml:"flags"`
	Ratio      int                  `yaml:"ratio"`
	Chance     int                  `yaml:"chance"`
	Multiplier float64              `yaml:"multiplier"`
	// LuaCondition names a global Lua predicate gating this attribute only.
	LuaCondition string `yaml:"lua_condition"`
}

// ID returns the ability id the definition registers under.
func (d *Definition) ID() ID { return CustomBase + ID(d.Offset) }

type attrFactory func(d AttrDef) (Attr, error)

// moveCond builds the move filter shared by the power and damage factories.
func (d AttrDef) moveCond() MoveCondition {
	var all MovesAll
	if len(d.Categories) > 0 {
		all = append(all, MoveCategoryIs{Categories: d.Categories})
	}
	if d.Flags != 0 {
		all = append(all, MoveHasFlag{Flag: d.Flags})
	}
	if d.Element != dex.TypeUnknown {
		all = append(all, MoveTypeIs{Type: d.Element})
	}
	if len(all) == 0 {
		return Damaging{}
	}
	return all
}

func (d AttrDef) stat() (dex.BattleStat, error) {
	if len(d.Stats) != 1 {
		return 0, fmt.Errorf("%s needs exactly one stat", d.Kind)
	}
	return d.Stats[0], nil
}

var attrFactories = map[string]attrFactory{
	"post_summon_stat_change": func(d AttrDef) (Attr, error) {
		if len(d.Stats) == 0 || d.Levels == 0 {
			return nil, fmt.Errorf("post_summon_stat_change needs stats and levels")
		}
		return NewPostSummonStatChange(d.Stats, d.Levels, d.SelfTarget, !d.SelfTarget && d.Levels < 0), nil
	},
	"post_summon_weather_change": func(d AttrDef) (Attr, error) {
		if len(d.Weathers) != 1 {
			return nil, fmt.Errorf("post_summon_weather_change needs one weather")
		}
		return NewPostSummonWeatherChange(d.Weathers[0]), nil
	},
	"post_summon_terrain_change": func(d AttrDef) (Attr, error) {
		return NewPostSummonTerrainChange(d.Terrain), nil
	},
	"type_immunity_heal": func(d AttrDef) (Attr, error) {
		return NewTypeImmunityHeal(d.Element), nil
	},
	"type_immunity_stat_change": func(d AttrDef) (Attr, error) {
		s, err := d.stat()
		if err != nil {
			return nil, err
		}
		return NewTypeImmunityStatChange(d.Element, s, d.Levels, nil), nil
	},
	"battle_stat_multiplier": func(d AttrDef) (Attr, error) {
		s, err := d.stat()
		if err != nil {
			return nil, err
		}
		if d.Multiplier <= 0 {
			return nil, fmt.Errorf("battle_stat_multiplier needs a positive multiplier")
		}
		return NewBattleStatMultiplier(s, d.Multiplier, nil), nil
	},
	"status_immunity": func(d AttrDef) (Attr, error) {
		return NewStatusEffectImmunity(d.Statuses...), nil
	},
	"battler_tag_immunity": func(d AttrDef) (Attr, error) {
		if len(d.Tags) == 0 {
			return nil, fmt.Errorf("battler_tag_immunity needs tags")
		}
		return NewBattlerTagImmunity(d.Tags...), nil
	},
	"protect_stat": func(d AttrDef) (Attr, error) {
		return NewProtectStat(d.Stats...), nil
	},
	"post_defend_contact_damage": func(d AttrDef) (Attr, error) {
		if d.Ratio <= 0 {
			return nil, fmt.Errorf("post_defend_contact_damage needs a positive ratio")
		}
		return NewPostDefendContactDamage(d.Ratio), nil
	},
	"post_defend_contact_apply_status": func(d AttrDef) (Attr, error) {
		if len(d.Statuses) == 0 {
			return nil, fmt.Errorf("post_defend_contact_apply_status needs statuses")
		}
		return NewPostDefendContactApplyStatusEffect(d.Chance, d.Statuses...), nil
	},
	"post_defend_stat_change": func(d AttrDef) (Attr, error) {
		s, err := d.stat()
		if err != nil {
			return nil, err
		}
		return NewPostDefendStatChange(d.moveCond(), s, d.Levels, d.SelfTarget, false), nil
	},
	"post_turn_heal": func(AttrDef) (Attr, error) {
		return NewPostTurnHeal(), nil
	},
	"post_turn_stat_change": func(d AttrDef) (Attr, error) {
		if len(d.Stats) == 0 {
			return nil, fmt.Errorf("post_turn_stat_change needs stats")
		}
		return NewPostTurnStatChange(d.Stats, d.Levels), nil
	},
	"post_weather_lapse_heal": func(d AttrDef) (Attr, error) {
		if len(d.Weathers) == 0 {
			return nil, fmt.Errorf("post_weather_lapse_heal needs weathers")
		}
		return NewPostWeatherLapseHeal(max(d.Ratio, 1), d.Weathers...), nil
	},
	"block_weather_damage": func(d AttrDef) (Attr, error) {
		return NewBlockWeatherDamage(d.Weathers...), nil
	},
	"move_power_boost": func(d AttrDef) (Attr, error) {
		if d.Multiplier <= 0 {
			return nil, fmt.Errorf("move_power_boost needs a positive multiplier")
		}
		return NewMovePowerBoost(d.moveCond(), d.Multiplier, true), nil
	},
	"move_type_power_boost": func(d AttrDef) (Attr, error) {
		return NewMoveTypePowerBoost(d.Element, d.Multiplier), nil
	},
	"received_type_damage_multiplier": func(d AttrDef) (Attr, error) {
		return NewReceivedTypeDamageMultiplier(d.Element, d.Multiplier), nil
	},
	"received_move_damage_multiplier": func(d AttrDef) (Attr, error) {
		return NewReceivedMoveDamageMultiplier(d.moveCond(), d.Multiplier), nil
	},
	"post_victory_stat_change": func(d AttrDef) (Attr, error) {
		s, err := d.stat()
		if err != nil {
			return nil, err
		}
		return NewPostVictoryStatChange(FixedStat(s), d.Levels), nil
	},
}

// AttrKinds returns the names accepted in an AttrDef kind field, sorted.
func AttrKinds() []string {
	out := make([]string, 0, len(attrFactories))
	for k := range attrFactories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build turns the definition into a record.
//
// Postcondition: Returns a record with one attribute per AttrDef, or an error wrapping ErrUnknownAttr.
func (d *Definition) Build(c *Catalog) (*Record, error) {
	if d.Offset < 0 {
		return nil, fmt.Errorf("ability %q: offset must not be negative", d.Key)
	}
	if strings.TrimSpace(d.Name) == "" {
		return nil, fmt.Errorf("ability %q: name is required", d.Key)
	}
	gen := d.Generation
	if gen == 0 {
		gen = 9
	}
	b := New(d.ID(), gen).WithCatalog(c).Named(d.Name, d.Description)
	if d.Key != "" {
		b.Keyed(d.Key)
	}
	for i, ad := range d.Attrs {
		f, ok := attrFactories[ad.Kind]
		if !ok {
			return nil, fmt.Errorf("ability %q attr %d: %w: %q", d.Name, i, ErrUnknownAttr, ad.Kind)
		}
		a, err := f(ad)
		if err != nil {
			return nil, fmt.Errorf("ability %q attr %d: %w", d.Name, i, err)
		}
		if ad.LuaCondition != "" {
			b.ConditionalAttr(Scripted{Hook: ad.LuaCondition}, a)
		} else {
			b.Attr(a)
		}
	}
	if d.LuaCondition != "" {
		b.Condition(Scripted{Hook: d.LuaCondition})
	}
	if d.Ignorable {
		b.Ignorable()
	}
	if d.BypassFaint {
		b.BypassFaint()
	}
	if d.Partial {
		b.Partial()
	}
	return b.Build(), nil
}

// ParseDefinitions decodes a YAML sequence of definitions.
//
// Precondition: data is a YAML document whose root is a sequence.
// Postcondition: Returns the decoded definitions, or an error naming the offending field.
func ParseDefinitions(data []byte) ([]*Definition, error) {
	var defs []*Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil {
		return nil, fmt.Errorf("decoding ability definitions: %w", err)
	}
	return defs, nil
}

// LoadDefinitions reads every *.yaml file in dir and builds a record per definition.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the records in file then document order, or the first error encountered.
func LoadDefinitions(dir string, c *Catalog) ([]*Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ability dir %q: %w", dir, err)
	}
	var out []*Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		defs, err := ParseDefinitions(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		for _, d := range defs {
			rec, err := d.Build(c)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			out = append(out, rec)
		}
	}
	return out, nil
}
