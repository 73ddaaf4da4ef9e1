package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// onField holds while any active Pokemon can apply id.
func onField(id ID) Condition {
	return ConditionFunc(func(ctx context.Context, e *Engine, p Pokemon) bool {
		for _, q := range activeOnField(p.Scene()) {
			if e.HasAbility(ctx, q, id) {
				return true
			}
		}
		return false
	})
}

// primal builds the attributes shared by the three primal weather abilities.
func primal(w dex.WeatherType) []Attr {
	return []Attr{
		NewPostSummonWeatherChange(w),
		NewPostBiomeChangeWeatherChange(w),
		NewPreSwitchOutClearWeather(),
		NewPostFaintClearWeather(),
	}
}

func gen6(c *Catalog) []*Record {
	t := table{c: c, gen: 6}
	normal := MoveTypeIs{Type: dex.TypeNormal}
	return []*Record{
		t.ab(AromaVeil).Ignorable().Unimplemented().Build(),
		t.ab(FlowerVeil).Ignorable().Unimplemented().Build(),
		t.ab(CheekPouch).Attr(NewHealFromBerryUse(1.0 / 3)).Partial().Build(),
		t.ab(Protean).Attr(NewPokemonTypeChange()).Build(),
		t.ab(FurCoat).Attr(NewReceivedMoveDamageMultiplier(category(dex.CategoryPhysical), 0.5)).Ignorable().Build(),
		t.ab(Magician).Attr(NewPostAttackStealHeldItem(nil)).Build(),
		t.ab(Bulletproof).
			Attr(NewMoveImmunity(MovesAll{FromOther{}, flag(dex.FlagBallBomb)})).
			Ignorable().
			Build(),
		t.ab(Competitive).Attr(NewPostStatChangeStatChange(StatsLowered, stats(dex.BattleStatSpAtk), 2)).Build(),
		t.ab(StrongJaw).Attr(NewMovePowerBoost(flag(dex.FlagBiting), 1.5, true)).Build(),
		t.ab(Refrigerate).Attr(NewMoveTypeChange(dex.TypeIce, 1.2, normal)).Build(),
		// An ally whose moves ignore abilities is still protected.
		t.ab(SweetVeil).
			Attrs(NewUserFieldStatusEffectImmunity(dex.StatusSleep), NewUserFieldBattlerTagImmunity(dex.TagDrowsy)).
			Ignorable().
			Partial().
			Build(),
		t.ab(StanceChange).Attrs(unchangeable()...).Build(),
		t.ab(GaleWings).
			Attr(NewIncrementMovePriority(MovesAll{UserAtFullHP{}, MoveTypeIs{Type: dex.TypeFlying}}, 1)).
			Build(),
		t.ab(MegaLauncher).Attr(NewMovePowerBoost(flag(dex.FlagPulse), 1.5, true)).Build(),
		t.ab(GrassPelt).
			ConditionalAttr(terrain(dex.TerrainGrassy), NewBattleStatMultiplier(dex.BattleStatDef, 1.5, nil)).
			Ignorable().
			Build(),
		t.ab(Symbiosis).Unimplemented().Build(),
		t.ab(ToughClaws).Attr(NewMovePowerBoost(flag(dex.FlagMakesContact), 1.3, true)).Build(),
		t.ab(Pixilate).Attr(NewMoveTypeChange(dex.TypeFairy, 1.2, normal)).Build(),
		t.ab(Gooey).Attr(NewPostDefendStatChange(Contact{}, dex.BattleStatSpd, -1, false, false)).Build(),
		t.ab(Aerilate).Attr(NewMoveTypeChange(dex.TypeFlying, 1.2, normal)).Build(),
		t.ab(ParentalBond).Attr(NewAddSecondStrike(0.25)).Build(),
		t.ab(DarkAura).
			Attrs(NewPostSummonMessage("postSummonDarkAura"), NewFieldMoveTypePowerBoost(dex.TypeDark, 4.0/3)).
			Build(),
		t.ab(FairyAura).
			Attrs(NewPostSummonMessage("postSummonFairyAura"), NewFieldMoveTypePowerBoost(dex.TypeFairy, 4.0/3)).
			Build(),
		t.ab(AuraBreak).
			Ignorable().
			ConditionalAttr(onField(DarkAura), NewFieldMoveTypePowerBoost(dex.TypeDark, 9.0/16)).
			ConditionalAttr(onField(FairyAura), NewFieldMoveTypePowerBoost(dex.TypeFairy, 9.0/16)).
			Build(),
		t.ab(PrimordialSea).Attrs(primal(dex.WeatherHeavyRain)...).BypassFaint().Build(),
		t.ab(DesolateLand).Attrs(primal(dex.WeatherHarshSun)...).BypassFaint().Build(),
		t.ab(DeltaStream).Attrs(primal(dex.WeatherStrongWinds)...).BypassFaint().Build(),
	}
}
