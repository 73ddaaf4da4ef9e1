package ability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
)

func TestLoadCatalog_DefaultLocale(t *testing.T) {
	for _, locale := range []string{"", "en"} {
		c, err := ability.LoadCatalog(locale)
		require.NoError(t, err)
		assert.Same(t, ability.DefaultCatalog(), c, "locale %q", locale)
	}
}

func TestLoadCatalog_Unknown(t *testing.T) {
	_, err := ability.LoadCatalog("xx")
	assert.Error(t, err)
}

func TestLoadCatalog_French(t *testing.T) {
	c, err := ability.LoadCatalog("fr")
	require.NoError(t, err)
	assert.Equal(t, language.French, c.Tag())
	assert.Equal(t, "Absorb Eau", c.AbilityName(ability.WaterAbsorb))
	assert.Equal(t, "Serene Grace", c.AbilityName(ability.SereneGrace), "untranslated names derive from the key")
	assert.Equal(t, "Absorb Eau de Vaporeon lui rend des PV !",
		c.Sprintf("typeImmunityHeal", "Vaporeon", "Absorb Eau"), "arguments may be reordered")
	assert.Empty(t, c.AbilityDescription(ability.WaterAbsorb))
}

func TestBuildRegistry_UsesCatalogNames(t *testing.T) {
	c, err := ability.LoadCatalog("fr")
	require.NoError(t, err)
	reg, err := ability.BuildRegistry(ability.Options{Catalog: c})
	require.NoError(t, err)
	assert.Equal(t, "Absorb Eau (P)", reg.MustGet(ability.WaterAbsorb).Name())
	assert.Equal(t, "Fermeté", reg.MustGet(ability.Sturdy).Name())
}

func TestCatalog_EnglishMessages(t *testing.T) {
	c := ability.DefaultCatalog()
	assert.True(t, c.HasMessage("sturdy"))
	assert.False(t, c.HasMessage("no_such_message"))
	assert.Equal(t, "Onix endured the hit!", c.Sprintf("sturdy", "Onix"))
	assert.Equal(t, "Water Absorb", c.AbilityName(ability.WaterAbsorb))
}

func TestCatalog_EveryRecordHasAName(t *testing.T) {
	reg := standardRegistry(t)
	c := ability.DefaultCatalog()
	for _, rec := range reg.All() {
		assert.NotEmpty(t, c.AbilityName(rec.ID()), "%s", rec.ID())
	}
}

func TestNewCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing locale": "names: {}\n",
		"bad tag":        "locale: \"not a tag!\"\n",
		"unknown field":  "locale: en\nnicknames: {}\n",
		"blank key":      "locale: en\nmessages:\n  \" \": hi\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ability.NewCatalog([]byte(src))
			assert.Error(t, err)
		})
	}
}
