package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

func gen3(c *Catalog) []*Record {
	t := table{c: c, gen: 3}
	plusMinus := All{
		ConditionFunc(func(_ context.Context, _ *Engine, p Pokemon) bool { return p.Scene().Double() }),
		AllyHasAbility{Abilities: []ID{Plus, Minus}},
	}
	return []*Record{
		t.ab(Stench).
			Attr(NewPostAttackApplyBattlerTag(false, func(_, _ Pokemon, m *dex.Move) int {
				if m.Flinch {
					return 0
				}
				return 10
			}, dex.TagFlinched)).
			Build(),
		t.ab(Drizzle).
			Attrs(NewPostSummonWeatherChange(dex.WeatherRain), NewPostBiomeChangeWeatherChange(dex.WeatherRain)).
			Build(),
		t.ab(SpeedBoost).Attr(NewPostTurnStatChange(stats(dex.BattleStatSpd), 1)).Build(),
		t.ab(BattleArmor).Attr(NewBlockCrit()).Ignorable().Build(),
		t.ab(Sturdy).Attrs(NewPreDefendFullHpEndure(), NewBlockOneHitKO()).Ignorable().Build(),
		t.ab(Damp).Attr(NewFieldPreventExplosiveMoves()).Ignorable().Build(),
		t.ab(Limber).Attr(NewStatusEffectImmunity(dex.StatusParalysis)).Ignorable().Build(),
		t.ab(SandVeil).
			Attrs(NewBattleStatMultiplier(dex.BattleStatEva, 1.2, nil), NewBlockWeatherDamage(dex.WeatherSandstorm)).
			Condition(weather(dex.WeatherSandstorm)).
			Ignorable().
			Build(),
		t.ab(Static).Attr(NewPostDefendContactApplyStatusEffect(30, dex.StatusParalysis)).BypassFaint().Build(),
		// Heal Block does not stop the healing.
		t.ab(VoltAbsorb).Attr(NewTypeImmunityHeal(dex.TypeElectric)).Partial().Ignorable().Build(),
		t.ab(WaterAbsorb).Attr(NewTypeImmunityHeal(dex.TypeWater)).Partial().Ignorable().Build(),
		t.ab(Oblivious).
			Attrs(NewBattlerTagImmunity(dex.TagInfatuated), NewIntimidateImmunity()).
			Ignorable().
			Build(),
		t.ab(CloudNine).
			Attrs(NewSuppressWeatherEffect(true), NewPostSummonUnnamedMessage("weatherEffectDisappeared")).
			Build(),
		t.ab(CompoundEyes).Attr(NewBattleStatMultiplier(dex.BattleStatAcc, 1.3, nil)).Build(),
		t.ab(Insomnia).
			Attrs(NewStatusEffectImmunity(dex.StatusSleep), NewBattlerTagImmunity(dex.TagDrowsy)).
			Ignorable().
			Build(),
		t.ab(ColorChange).Attr(NewPostDefendTypeChange()).Condition(NotHitBySheerForce{}).Build(),
		t.ab(Immunity).Attr(NewStatusEffectImmunity(poisoned...)).Ignorable().Build(),
		t.ab(FlashFire).
			Attr(NewTypeImmunityAddBattlerTag(dex.TypeFire, dex.TagFireBoost, 1, Not{C: HasStatus{Effects: []dex.StatusEffect{dex.StatusFreeze}}})).
			Ignorable().
			Build(),
		t.ab(ShieldDust).Attr(NewIgnoreMoveEffects()).Partial().Build(),
		t.ab(OwnTempo).
			Attrs(NewBattlerTagImmunity(dex.TagConfused), NewIntimidateImmunity()).
			Ignorable().
			Build(),
		t.ab(SuctionCups).Attr(NewForceSwitchOutImmunity()).Ignorable().Build(),
		t.ab(Intimidate).Attr(NewPostSummonStatChange(stats(dex.BattleStatAtk), -1, false, true)).Build(),
		t.ab(ShadowTag).
			Attr(NewArenaTrap(func(ctx context.Context, e *Engine, _, target Pokemon) bool {
				return !e.HasAbility(ctx, target, ShadowTag)
			})).
			Build(),
		t.ab(RoughSkin).Attr(NewPostDefendContactDamage(8)).BypassFaint().Build(),
		t.ab(WonderGuard).
			Attrs(NewNonSuperEffectiveImmunity(), NewUncopiable(), NewUnswappable()).
			Ignorable().
			Build(),
		t.ab(Levitate).
			Attr(NewTypeImmunity(dex.TypeGround, ConditionFunc(func(_ context.Context, _ *Engine, p Pokemon) bool {
				return !p.HasTag(dex.TagGrounded) && !fieldHasArenaTag(p.Scene(), dex.ArenaTagGravity)
			}))).
			Ignorable().
			Build(),
		t.ab(EffectSpore).Attr(NewEffectSpore()).Build(),
		t.ab(Synchronize).Attr(NewSyncEncounterNature()).Unimplemented().Build(),
		t.ab(ClearBody).Attr(NewProtectStat()).Ignorable().Build(),
		t.ab(NaturalCure).Attr(NewPreSwitchOutResetStatus()).Build(),
		t.ab(LightningRod).
			Attrs(NewRedirectTypeMove(dex.TypeElectric), NewTypeImmunityStatChange(dex.TypeElectric, dex.BattleStatSpAtk, 1, nil)).
			Ignorable().
			Build(),
		t.ab(SereneGrace).Attr(NewMoveEffectChanceMultiplier(2)).Partial().Build(),
		t.ab(SwiftSwim).
			Attr(NewBattleStatMultiplier(dex.BattleStatSpd, 2, nil)).
			Condition(weather(rainy...)).
			Build(),
		t.ab(Chlorophyll).
			Attr(NewBattleStatMultiplier(dex.BattleStatSpd, 2, nil)).
			Condition(weather(sunny...)).
			Build(),
		t.ab(Illuminate).
			Attrs(NewProtectStat(dex.BattleStatAcc), NewDoubleBattleChance()).
			Ignorable().
			Build(),
		t.ab(Trace).Attrs(NewPostSummonCopyAbility(), NewUncopiable()).Build(),
		t.ab(HugePower).Attr(NewBattleStatMultiplier(dex.BattleStatAtk, 2, nil)).Build(),
		t.ab(PoisonPoint).Attr(NewPostDefendContactApplyStatusEffect(30, dex.StatusPoison)).BypassFaint().Build(),
		t.ab(InnerFocus).
			Attrs(NewBattlerTagImmunity(dex.TagFlinched), NewIntimidateImmunity()).
			Ignorable().
			Build(),
		t.ab(MagmaArmor).Attr(NewStatusEffectImmunity(dex.StatusFreeze)).Ignorable().Build(),
		t.ab(WaterVeil).Attr(NewStatusEffectImmunity(dex.StatusBurn)).Ignorable().Build(),
		t.ab(MagnetPull).
			Attr(NewArenaTrap(func(_ context.Context, _ *Engine, _, target Pokemon) bool {
				return hasType(target, dex.TypeSteel)
			})).
			Build(),
		t.ab(Soundproof).
			Attr(NewMoveImmunity(MovesAll{FromOther{}, flag(dex.FlagSoundBased)})).
			Ignorable().
			Build(),
		t.ab(RainDish).Attr(NewPostWeatherLapseHeal(1, rainy...)).Partial().Build(),
		t.ab(SandStream).
			Attrs(NewPostSummonWeatherChange(dex.WeatherSandstorm), NewPostBiomeChangeWeatherChange(dex.WeatherSandstorm)).
			Build(),
		t.ab(Pressure).Attrs(NewIncreasePP(), NewPostSummonMessage("postSummonPressure")).Build(),
		t.ab(ThickFat).
			Attrs(NewReceivedTypeDamageMultiplier(dex.TypeFire, 0.5), NewReceivedTypeDamageMultiplier(dex.TypeIce, 0.5)).
			Ignorable().
			Build(),
		t.ab(EarlyBird).Attr(NewReduceStatusEffectDuration(dex.StatusSleep)).Build(),
		t.ab(FlameBody).Attr(NewPostDefendContactApplyStatusEffect(30, dex.StatusBurn)).BypassFaint().Build(),
		t.ab(RunAway).Attr(NewRunSuccess()).Build(),
		t.ab(KeenEye).Attr(NewProtectStat(dex.BattleStatAcc)).Ignorable().Build(),
		t.ab(HyperCutter).Attr(NewProtectStat(dex.BattleStatAtk)).Ignorable().Build(),
		t.ab(Pickup).Attr(NewPostBattleLoot()).Build(),
		t.ab(Truant).Attr(NewPostSummonAddBattlerTag(dex.TagTruant, 1, false)).Build(),
		t.ab(Hustle).
			Attrs(
				NewBattleStatMultiplier(dex.BattleStatAtk, 1.5, nil),
				NewBattleStatMultiplier(dex.BattleStatAcc, 0.8, category(dex.CategoryPhysical)),
			).
			Build(),
		t.ab(CuteCharm).Attr(NewPostDefendContactApplyTagChance(30, dex.TagInfatuated, 0)).Build(),
		t.ab(Plus).
			ConditionalAttr(plusMinus, NewBattleStatMultiplier(dex.BattleStatSpAtk, 1.5, nil)).
			Ignorable().
			Build(),
		t.ab(Minus).
			ConditionalAttr(plusMinus, NewBattleStatMultiplier(dex.BattleStatSpAtk, 1.5, nil)).
			Ignorable().
			Build(),
		t.ab(Forecast).Attrs(NewUncopiable(), NewNoFusion()).Unimplemented().Build(),
		t.ab(StickyHold).Attr(NewBlockItemTheft()).BypassFaint().Ignorable().Build(),
		t.ab(ShedSkin).
			ConditionalAttr(ConditionFunc(func(_ context.Context, _ *Engine, p Pokemon) bool {
				return p.Scene().RandInt(3) == 0
			}), NewPostTurnResetStatus(false)).
			Build(),
		t.ab(Guts).
			Attr(NewBypassBurnDamageReduction()).
			ConditionalAttr(statused, NewBattleStatMultiplier(dex.BattleStatAtk, 1.5, nil)).
			Build(),
		t.ab(MarvelScale).
			ConditionalAttr(statused, NewBattleStatMultiplier(dex.BattleStatDef, 1.5, nil)).
			Ignorable().
			Build(),
		t.ab(LiquidOoze).Attr(NewReverseDrain()).Build(),
		t.ab(Overgrow).Attr(NewLowHpMoveTypePowerBoost(dex.TypeGrass)).Build(),
		t.ab(Blaze).Attr(NewLowHpMoveTypePowerBoost(dex.TypeFire)).Build(),
		t.ab(Torrent).Attr(NewLowHpMoveTypePowerBoost(dex.TypeWater)).Build(),
		t.ab(Swarm).Attr(NewLowHpMoveTypePowerBoost(dex.TypeBug)).Build(),
		t.ab(RockHead).Attr(NewBlockRecoilDamage()).Build(),
		t.ab(Drought).
			Attrs(NewPostSummonWeatherChange(dex.WeatherSunny), NewPostBiomeChangeWeatherChange(dex.WeatherSunny)).
			Build(),
		t.ab(ArenaTrap).
			Attrs(
				NewArenaTrap(func(_ context.Context, _ *Engine, _, target Pokemon) bool { return target.IsGrounded() }),
				NewDoubleBattleChance(),
			).
			Build(),
		t.ab(VitalSpirit).
			Attrs(NewStatusEffectImmunity(dex.StatusSleep), NewBattlerTagImmunity(dex.TagDrowsy)).
			Ignorable().
			Build(),
		t.ab(WhiteSmoke).Attr(NewProtectStat()).Ignorable().Build(),
		t.ab(PurePower).Attr(NewBattleStatMultiplier(dex.BattleStatAtk, 2, nil)).Build(),
		t.ab(ShellArmor).Attr(NewBlockCrit()).Ignorable().Build(),
		t.ab(AirLock).
			Attrs(NewSuppressWeatherEffect(true), NewPostSummonUnnamedMessage("weatherEffectDisappeared")).
			Build(),
	}
}
