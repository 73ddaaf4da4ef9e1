package dex_test

import (
	"testing"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"
)

// TestEffectiveness_DualType verifies multipliers of both defending types are multiplied together.
func TestEffectiveness_DualType(t *testing.T) {
	assert.Equal(t, 4.0, dex.Effectiveness(dex.TypeIce, dex.TypeDragon, dex.TypeFlying))
	assert.Equal(t, 0.0, dex.Effectiveness(dex.TypeElectric, dex.TypeWater, dex.TypeGround))
	assert.Equal(t, 0.25, dex.Effectiveness(dex.TypeFire, dex.TypeWater, dex.TypeRock))
	assert.Equal(t, 1.0, dex.Effectiveness(dex.TypeNormal, dex.TypeFire))
}

// TestParseType_RoundTrip verifies every named type parses back from its String form.
func TestParseType_RoundTrip(t *testing.T) {
	for ty := dex.TypeNormal; ty <= dex.TypeStellar; ty++ {
		got, err := dex.ParseType(ty.String())
		require.NoError(t, err)
		assert.Equal(t, ty, got)
	}
	_, err := dex.ParseType("plasma")
	assert.Error(t, err)
}

// TestProperty_StageMultiplier_Symmetric verifies a raised and a lowered stage of the same size are reciprocal.
func TestProperty_StageMultiplier_Symmetric(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		stage := rapid.IntRange(0, dex.StageLimit).Draw(rt, "stage")
		assert.InDelta(rt, 1.0, dex.StageMultiplier(stage)*dex.StageMultiplier(-stage), 1e-9)
		assert.InDelta(rt, 1.0, dex.AccuracyStageMultiplier(stage)*dex.AccuracyStageMultiplier(-stage), 1e-9)
	})
}

// TestBattleStat_Stat verifies only the five main battle stats map onto permanent stats.
func TestBattleStat_Stat(t *testing.T) {
	s, ok := dex.BattleStatAtk.Stat()
	require.True(t, ok)
	assert.Equal(t, dex.StatAtk, s)
	s, ok = dex.BattleStatSpd.Stat()
	require.True(t, ok)
	assert.Equal(t, dex.StatSpd, s)
	_, ok = dex.BattleStatAcc.Stat()
	assert.False(t, ok)
	assert.Len(t, dex.MainBattleStats(), 5)
	assert.Len(t, dex.AllBattleStats(), dex.BattleStatCount)
}

// TestWeather_DamageImmune verifies sandstorm spares rock, ground and steel types.
func TestWeather_DamageImmune(t *testing.T) {
	assert.True(t, dex.WeatherSandstorm.DamageImmune([]dex.Type{dex.TypeSteel}))
	assert.False(t, dex.WeatherSandstorm.DamageImmune([]dex.Type{dex.TypeWater}))
	assert.True(t, dex.WeatherHail.DamageImmune([]dex.Type{dex.TypeIce, dex.TypeWater}))
	assert.True(t, dex.WeatherRain.DamageImmune(nil), "non-damaging weather never hurts")
	assert.True(t, dex.WeatherHarshSun.IsImmutable())
	assert.False(t, dex.WeatherSunny.IsImmutable())
}

// TestLoadMoves verifies the embedded move table decodes with defaults applied.
func TestLoadMoves(t *testing.T) {
	moves, err := dex.LoadMoves()
	require.NoError(t, err)
	require.Greater(t, moves.Len(), 50)

	tackle, ok := moves.Get("tackle")
	require.True(t, ok)
	assert.Equal(t, dex.TypeNormal, tackle.Type)
	assert.Equal(t, -1, tackle.Chance, "a move without chance has no secondary effect")
	assert.True(t, tackle.HasFlag(dex.FlagMakesContact))
	assert.Equal(t, 1, tackle.MaxHits)

	fury, ok := moves.Get("fury_swipes")
	require.True(t, ok)
	assert.Equal(t, 2, fury.MinHits)
	assert.Equal(t, 5, fury.MaxHits)
	assert.True(t, fury.IsMultiHit())

	bolt, ok := moves.Get("thunderbolt")
	require.True(t, ok)
	assert.True(t, bolt.HasSecondaryEffect())
	assert.Equal(t, dex.StatusParalysis, bolt.Status)

	all := moves.All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID, "All() must be sorted by id")
	}
}

// TestParseMoves_RejectsUnknownField verifies strict decoding of move definitions.
func TestParseMoves_RejectsUnknownField(t *testing.T) {
	_, err := dex.ParseMoves([]byte("- id: x\n  type: fire\n  bogus: 1\n"))
	assert.Error(t, err)
	_, err = dex.ParseMoves([]byte("- id: x\n  flags: [laser]\n"))
	assert.Error(t, err)
	_, err = dex.ParseMoves([]byte("- id: x\n- id: x\n"))
	assert.Error(t, err)
}

// TestMoveFlags_UnmarshalYAML verifies flag lists combine into one bit set.
func TestMoveFlags_UnmarshalYAML(t *testing.T) {
	var f dex.MoveFlags
	require.NoError(t, yaml.Unmarshal([]byte("[contact, punch]"), &f))
	assert.Equal(t, dex.FlagMakesContact|dex.FlagPunching, f)
}

// TestLoadItems verifies berries and untransferable items are flagged.
func TestLoadItems(t *testing.T) {
	items, err := dex.LoadItems()
	require.NoError(t, err)
	berry, ok := items.Get("sitrus_berry")
	require.True(t, ok)
	assert.True(t, berry.Berry)
	stone, ok := items.Get("mega_stone")
	require.True(t, ok)
	assert.False(t, stone.Transferable)
}

// TestHitResult_Damaged verifies only damaging outcomes report damage.
func TestHitResult_Damaged(t *testing.T) {
	assert.True(t, dex.HitSuperEffective.Damaged())
	assert.True(t, dex.HitOneHitKO.Damaged())
	assert.False(t, dex.HitNoEffect.Damaged())
	assert.False(t, dex.HitMiss.Damaged())
}
