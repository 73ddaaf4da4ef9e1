package ability

import "github.com/cory-johannsen/monbattle/internal/game/dex"

func gen4(c *Catalog) []*Record {
	t := table{c: c, gen: 4}
	sun := weather(sunny...)
	return []*Record{
		t.ab(TangledFeet).
			ConditionalAttr(HasTag{Tag: dex.TagConfused}, NewBattleStatMultiplier(dex.BattleStatEva, 2, nil)).
			Ignorable().
			Build(),
		t.ab(MotorDrive).Attr(NewTypeImmunityStatChange(dex.TypeElectric, dex.BattleStatSpd, 1, nil)).Ignorable().Build(),
		t.ab(Rivalry).
			Attrs(
				NewMovePowerBoost(SameGender{}, 1.25, true),
				NewMovePowerBoost(OppositeGender{}, 0.75, true),
			).
			Build(),
		t.ab(Steadfast).Attr(NewFlinchStatChange(stats(dex.BattleStatSpd), 1)).Build(),
		t.ab(SnowCloak).
			Attrs(NewBattleStatMultiplier(dex.BattleStatEva, 1.2, nil), NewBlockWeatherDamage(dex.WeatherHail)).
			Condition(weather(snowy...)).
			Ignorable().
			Build(),
		t.ab(Gluttony).Attr(NewReduceBerryUseThreshold()).Build(),
		t.ab(AngerPoint).Attr(NewPostDefendCritStatChange(dex.BattleStatAtk, 6)).Build(),
		t.ab(Unburden).Unimplemented().Build(),
		t.ab(Heatproof).Attr(NewReceivedTypeDamageMultiplier(dex.TypeFire, 0.5)).Ignorable().Build(),
		t.ab(Simple).Attr(NewStatChangeMultiplier(2)).Ignorable().Build(),
		t.ab(DrySkin).
			Attrs(
				NewPostWeatherLapseDamage(2, sunny...),
				NewPostWeatherLapseHeal(2, rainy...),
				NewReceivedTypeDamageMultiplier(dex.TypeFire, 1.25),
				NewTypeImmunityHeal(dex.TypeWater),
			).
			Partial().
			Ignorable().
			Build(),
		t.ab(Download).Attr(NewDownload()).Build(),
		t.ab(IronFist).Attr(NewMovePowerBoost(flag(dex.FlagPunching), 1.2, true)).Build(),
		t.ab(PoisonHeal).
			Attrs(NewPostTurnStatusHeal(poisoned...), NewBlockStatusDamage(poisoned...)).
			Build(),
		t.ab(Adaptability).Attr(NewStabBoost()).Build(),
		t.ab(SkillLink).Attr(NewMaxMultiHit()).Build(),
		t.ab(Hydration).Attr(NewPostTurnResetStatus(false)).Condition(weather(rainy...)).Build(),
		t.ab(SolarPower).
			Attrs(NewPostWeatherLapseDamage(2, sunny...), NewBattleStatMultiplier(dex.BattleStatSpAtk, 1.5, nil)).
			Condition(sun).
			Build(),
		// Paralysis halves speed before the doubling applies.
		t.ab(QuickFeet).
			ConditionalAttr(HasStatus{Effects: []dex.StatusEffect{dex.StatusParalysis}}, NewBattleStatMultiplier(dex.BattleStatSpd, 2, nil)).
			ConditionalAttr(statused, NewBattleStatMultiplier(dex.BattleStatSpd, 1.5, nil)).
			Build(),
		t.ab(Normalize).
			Attr(NewMoveTypeChange(dex.TypeNormal, 1.2, MoveNot{C: MoveIs{IDs: []string{
				"hidden_power", "weather_ball", "natural_gift", "judgment", "techno_blast",
			}}})).
			Build(),
		t.ab(Sniper).Attr(NewMultCrit(1.5)).Build(),
		t.ab(MagicGuard).Attr(NewBlockNonDirectDamage()).Build(),
		t.ab(NoGuard).Attrs(NewAlwaysHit(), NewDoubleBattleChance()).Build(),
		t.ab(Stall).Unimplemented().Build(),
		t.ab(Technician).Attr(NewMovePowerBoost(PowerAtMost{Power: 60}, 1.5, true)).Build(),
		t.ab(LeafGuard).Attr(NewStatusEffectImmunity()).Condition(sun).Ignorable().Build(),
		t.ab(Klutz).Unimplemented().Build(),
		t.ab(MoldBreaker).
			Attrs(NewPostSummonMessage("postSummonMoldBreaker"), NewMoveAbilityBypass(nil)).
			Build(),
		t.ab(SuperLuck).Attr(NewBonusCrit()).Partial().Build(),
		t.ab(Aftermath).Attr(NewPostFaintContactDamage(4)).BypassFaint().Build(),
		t.ab(Anticipation).
			ConditionalAttr(OpponentThreatens{}, NewPostSummonMessage("postSummonAnticipation")).
			Build(),
		t.ab(Forewarn).Attr(NewForewarn()).Build(),
		t.ab(Unaware).Attr(NewIgnoreOpponentStatChanges()).Ignorable().Build(),
		t.ab(TintedLens).Attr(NewDamageBoost(2, NotVeryEffective{})).Build(),
		t.ab(Filter).Attr(NewReceivedMoveDamageMultiplier(SuperEffective{}, 0.75)).Ignorable().Build(),
		t.ab(SlowStart).Attr(NewPostSummonAddBattlerTag(dex.TagSlowStart, 5, true)).Build(),
		t.ab(Scrappy).
			Attrs(NewIgnoreTypeImmunity(dex.TypeGhost, dex.TypeNormal, dex.TypeFighting), NewIntimidateImmunity()).
			Build(),
		t.ab(StormDrain).
			Attrs(NewRedirectTypeMove(dex.TypeWater), NewTypeImmunityStatChange(dex.TypeWater, dex.BattleStatSpAtk, 1, nil)).
			Ignorable().
			Build(),
		t.ab(IceBody).
			Attrs(NewBlockWeatherDamage(dex.WeatherHail), NewPostWeatherLapseHeal(1, snowy...)).
			Partial().
			Build(),
		t.ab(SolidRock).Attr(NewReceivedMoveDamageMultiplier(SuperEffective{}, 0.75)).Ignorable().Build(),
		t.ab(SnowWarning).
			Attrs(NewPostSummonWeatherChange(dex.WeatherSnow), NewPostBiomeChangeWeatherChange(dex.WeatherSnow)).
			Build(),
		t.ab(HoneyGather).Attr(NewMoney()).Build(),
		t.ab(Frisk).Attr(NewFrisk()).Build(),
		t.ab(Reckless).Attr(NewMovePowerBoost(Recoil{}, 1.2, true)).Build(),
		t.ab(Multitype).Attrs(unchangeable()...).Build(),
		t.ab(FlowerGift).
			ConditionalAttr(sun, NewBattleStatMultiplier(dex.BattleStatAtk, 1.5, nil)).
			ConditionalAttr(sun, NewBattleStatMultiplier(dex.BattleStatSpDef, 1.5, nil)).
			Attrs(NewUncopiable(), NewNoFusion()).
			Ignorable().
			Partial().
			Build(),
		t.ab(BadDreams).Attr(NewPostTurnHurtIfSleeping()).Build(),
	}
}
