package ability_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
)

func writeDefs(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
	return dir
}

func TestParseDefinitions_DecodesEnums(t *testing.T) {
	defs, err := ability.ParseDefinitions([]byte(`
- offset: 7
  key: bog_skin
  name: Bog Skin
  attrs:
    - kind: post_summon_stat_change
      stats: [atk, spd]
      levels: -1
    - kind: received_move_damage_multiplier
      categories: [special]
      flags: [sound, pulse]
      multiplier: 0.5
`))
	require.NoError(t, err)
	require.Len(t, defs, 1)
	d := defs[0]
	assert.Equal(t, ability.CustomBase+7, d.ID())
	require.Len(t, d.Attrs, 2)
	assert.Len(t, d.Attrs[0].Stats, 2)
	assert.NotZero(t, d.Attrs[1].Flags)
}

func TestParseDefinitions_RejectsUnknownField(t *testing.T) {
	_, err := ability.ParseDefinitions([]byte(`
- offset: 1
  name: Typo
  ignoreable: true
`))
	assert.Error(t, err)
}

func TestParseDefinitions_RejectsUnknownEnum(t *testing.T) {
	_, err := ability.ParseDefinitions([]byte(`
- offset: 1
  name: Bad Type
  attrs:
    - kind: type_immunity_heal
      element: plasma
`))
	assert.Error(t, err)
}

func TestDefinition_Build_UnknownKind(t *testing.T) {
	d := &ability.Definition{Offset: 1, Name: "Nope", Attrs: []ability.AttrDef{{Kind: "teleport_everything"}}}
	_, err := d.Build(nil)
	assert.ErrorIs(t, err, ability.ErrUnknownAttr)
}

func TestDefinition_Build_RequiresName(t *testing.T) {
	d := &ability.Definition{Offset: 1}
	_, err := d.Build(nil)
	assert.Error(t, err)
}

func TestDefinition_Build_FlagsAndConditions(t *testing.T) {
	d := &ability.Definition{
		Offset:       3,
		Key:          "custom_gate",
		Name:         "Custom Gate",
		Description:  "Gated by a script.",
		Ignorable:    true,
		Partial:      true,
		LuaCondition: "gate_open",
		Attrs: []ability.AttrDef{
			{Kind: "post_turn_heal"},
			{Kind: "post_turn_heal", LuaCondition: "second_gate"},
		},
	}
	rec, err := d.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, "Custom Gate (P)", rec.Name())
	assert.Equal(t, "Custom Gate", rec.BaseName())
	assert.Equal(t, "custom_gate", rec.Key())
	assert.True(t, rec.Ignorable())
	assert.Equal(t, 9, rec.Generation())
	require.Len(t, rec.Conditions(), 1)
	assert.Equal(t, ability.Scripted{Hook: "gate_open"}, rec.Conditions()[0])
	require.Len(t, rec.Attrs(), 2)
	assert.Nil(t, rec.Attrs()[0].Condition())
	assert.Equal(t, ability.Scripted{Hook: "second_gate"}, rec.Attrs()[1].Condition())
}

func TestDefinition_Build_FactoryValidation(t *testing.T) {
	bad := []ability.AttrDef{
		{Kind: "post_summon_stat_change"},
		{Kind: "battle_stat_multiplier"},
		{Kind: "post_defend_contact_damage"},
		{Kind: "post_weather_lapse_heal"},
		{Kind: "battler_tag_immunity"},
		{Kind: "move_power_boost"},
	}
	for _, ad := range bad {
		d := &ability.Definition{Offset: 1, Name: "Bad", Attrs: []ability.AttrDef{ad}}
		_, err := d.Build(nil)
		assert.Error(t, err, ad.Kind)
	}
}

func TestLoadDefinitions_SkipsNonYAML(t *testing.T) {
	dir := writeDefs(t, "a.yaml", `
- offset: 1
  key: one
  name: One
  attrs:
    - kind: post_turn_heal
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	recs, err := ability.LoadDefinitions(dir, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, ability.CustomBase+1, recs[0].ID())
}

func TestLoadDefinitions_MissingDir(t *testing.T) {
	_, err := ability.LoadDefinitions(filepath.Join(t.TempDir(), "absent"), nil)
	assert.Error(t, err)
}

func TestLoadDefinitions_ShippedContent(t *testing.T) {
	recs, err := ability.LoadDefinitions(filepath.Join("..", "..", "..", "content", "abilities"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	reg, err := ability.BuildRegistry(ability.Options{Custom: recs})
	require.NoError(t, err)
	rec, ok := reg.Lookup("ember_heart")
	require.True(t, ok)
	assert.Equal(t, "Ember Heart", rec.BaseName())
	assert.False(t, rec.ID().IsStandard())
}

func TestRegistry_Lookup(t *testing.T) {
	reg, err := ability.BuildRegistry(ability.Options{})
	require.NoError(t, err)
	for _, key := range []string{"water_absorb", "Water Absorb", "Dragon's Maw", "dragons_maw", "  SPEED BOOST "} {
		_, ok := reg.Lookup(key)
		assert.True(t, ok, key)
	}
	_, ok := reg.Lookup("definitely not an ability")
	assert.False(t, ok)
}

func TestRegistry_DuplicateCustomID(t *testing.T) {
	a, err := (&ability.Definition{Offset: 1, Name: "A"}).Build(nil)
	require.NoError(t, err)
	b, err := (&ability.Definition{Offset: 1, Name: "B"}).Build(nil)
	require.NoError(t, err)
	_, err = ability.BuildRegistry(ability.Options{Custom: []*ability.Record{a, b}})
	assert.ErrorIs(t, err, ability.ErrDuplicateAbility)
}

func TestAttrKinds_SortedAndBuildable(t *testing.T) {
	kinds := ability.AttrKinds()
	require.NotEmpty(t, kinds)
	assert.IsIncreasing(t, kinds)
}

func TestProperty_NormalizeKey_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[A-Za-z' .-]{0,24}`).Draw(rt, "name")
		once := ability.NormalizeKey(s)
		assert.Equal(rt, once, ability.NormalizeKey(once))
		assert.Regexp(rt, `^([a-z0-9]+(_[a-z0-9]+)*)?$`, once)
	})
}
