package ability

import (
	"context"
	"strings"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// ruin lowers stat for every other active Pokemon.
func ruin(t table, id ID, key string, stat dex.Stat) *Record {
	return t.ab(id).
		Attrs(NewFieldMultiplyBattleStat(stat, 0.75, false), NewPostSummonMessage(key)).
		Ignorable().
		Build()
}

// aspect raises one stat when the Ogerpon mask is worn.
func aspect(t table, id ID, s dex.BattleStat) *Record {
	return t.ab(id).
		Attrs(NewPostBattleInitStatChange(stats(s), 1, true), NewUncopiable(), NewUnswappable(), NewNoTransform()).
		Partial().
		Build()
}

func gen9(c *Catalog) []*Record {
	t := table{c: c, gen: 9}
	sun := weather(sunny...)
	electric := terrain(dex.TerrainElectric)
	damagingType := func(tt dex.Type) MoveCondition { return MovesAll{MoveTypeIs{Type: tt}, Damaging{}} }
	pecharunt := ConditionFunc(func(_ context.Context, _ *Engine, p Pokemon) bool {
		return strings.EqualFold(p.Name(), "pecharunt")
	})
	return []*Record{
		t.ab(LingeringAroma).Attr(NewPostDefendAbilityGive()).BypassFaint().Build(),
		t.ab(SeedSower).Attr(NewPostDefendTerrainChange(dex.TerrainGrassy)).Build(),
		t.ab(ThermalExchange).
			Attrs(
				NewPostDefendStatChange(damagingType(dex.TypeFire), dex.BattleStatAtk, 1, true, false),
				NewStatusEffectImmunity(dex.StatusBurn),
			).
			Ignorable().
			Build(),
		t.ab(AngerShell).
			Attrs(
				NewPostDefendHpGatedStatChange(Damaging{}, 0.5, stats(dex.BattleStatAtk, dex.BattleStatSpAtk, dex.BattleStatSpd), 1),
				NewPostDefendHpGatedStatChange(Damaging{}, 0.5, stats(dex.BattleStatDef, dex.BattleStatSpDef), -1),
			).
			Condition(NotHitBySheerForce{}).
			Build(),
		t.ab(PurifyingSalt).
			Attrs(NewStatusEffectImmunity(), NewReceivedTypeDamageMultiplier(dex.TypeGhost, 0.5)).
			Ignorable().
			Build(),
		t.ab(WellBakedBody).Attr(NewTypeImmunityStatChange(dex.TypeFire, dex.BattleStatDef, 2, nil)).Ignorable().Build(),
		t.ab(WindRider).
			Attrs(
				NewMoveImmunityStatChange(MovesAll{FromOther{}, flag(dex.FlagWind), Damaging{}}, dex.BattleStatAtk, 1),
				NewPostSummonStatChangeOnArena(dex.ArenaTagTailwind),
			).
			Ignorable().
			Build(),
		t.ab(GuardDog).
			Attrs(NewPostIntimidateStatChange(stats(dex.BattleStatAtk), 1, true), NewForceSwitchOutImmunity()).
			Ignorable().
			Build(),
		t.ab(RockyPayload).Attr(NewMoveTypePowerBoost(dex.TypeRock, 0)).Build(),
		t.ab(WindPower).Attr(NewPostDefendApplyBattlerTag(flag(dex.FlagWind), dex.TagCharged)).Build(),
		t.ab(ZeroToHero).
			Attrs(unchangeable()...).
			Attrs(
				NewNoTransform(),
				NewPostBattleInitFormChange(baseForm),
				NewPreSwitchOutFormChange(func(Pokemon) int { return 1 }),
			).
			BypassFaint().
			Build(),
		t.ab(Commander).Attrs(NewUncopiable(), NewUnswappable()).Unimplemented().Build(),
		t.ab(Electromorphosis).Attr(NewPostDefendApplyBattlerTag(Damaging{}, dex.TagCharged)).Build(),
		t.ab(Protosynthesis).
			ConditionalAttr(sun, NewPostSummonAddBattlerTag(dex.TagProtosynthesis, 0, true)).
			Attrs(
				NewPostWeatherChangeAddBattlerTag(dex.TagProtosynthesis, 0, sunny...),
				NewUncopiable(),
				NewUnswappable(),
				NewNoTransform(),
			).
			Partial().
			Build(),
		t.ab(QuarkDrive).
			ConditionalAttr(electric, NewPostSummonAddBattlerTag(dex.TagQuarkDrive, 0, true)).
			Attrs(
				NewPostTerrainChangeAddBattlerTag(dex.TagQuarkDrive, 0, dex.TerrainElectric),
				NewUncopiable(),
				NewUnswappable(),
				NewNoTransform(),
			).
			Partial().
			Build(),
		t.ab(GoodAsGold).
			Attr(NewMoveImmunity(MovesAll{FromOther{}, category(dex.CategoryStatus)})).
			Ignorable().
			Partial().
			Build(),
		ruin(t, VesselOfRuin, "postSummonVesselOfRuin", dex.StatSpAtk),
		ruin(t, SwordOfRuin, "postSummonSwordOfRuin", dex.StatDef),
		ruin(t, TabletsOfRuin, "postSummonTabletsOfRuin", dex.StatAtk),
		ruin(t, BeadsOfRuin, "postSummonBeadsOfRuin", dex.StatSpDef),
		t.ab(OrichalcumPulse).
			Attrs(NewPostSummonWeatherChange(dex.WeatherSunny), NewPostBiomeChangeWeatherChange(dex.WeatherSunny)).
			ConditionalAttr(sun, NewBattleStatMultiplier(dex.BattleStatAtk, 4.0/3, nil)).
			Build(),
		t.ab(HadronEngine).
			Attrs(NewPostSummonTerrainChange(dex.TerrainElectric), NewPostBiomeChangeTerrainChange(dex.TerrainElectric)).
			ConditionalAttr(electric, NewBattleStatMultiplier(dex.BattleStatSpAtk, 4.0/3, nil)).
			Build(),
		t.ab(Opportunist).Attr(NewStatChangeCopy()).Build(),
		t.ab(CudChew).Unimplemented().Build(),
		t.ab(Sharpness).Attr(NewMovePowerBoost(flag(dex.FlagSlicing), 1.5, true)).Build(),
		// Each fainted teammate adds a tenth, up to five.
		t.ab(SupremeOverlord).
			Attr(NewVariableMovePowerBoost(func(user, _ Pokemon, _ *dex.Move) float64 {
				return 1 + 0.1*float64(min(user.Scene().Faints(user.IsPlayer()), 5))
			}, true)).
			Partial().
			Build(),
		t.ab(Costar).Attr(NewPostSummonCopyAllyStats()).Build(),
		t.ab(ToxicDebris).
			Attr(NewPostDefendApplyArenaTrapTag(category(dex.CategoryPhysical), dex.ArenaTagToxicSpikes)).
			BypassFaint().
			Build(),
		t.ab(ArmorTail).Attr(NewFieldPriorityMoveImmunity()).Ignorable().Build(),
		t.ab(EarthEater).Attr(NewTypeImmunityHeal(dex.TypeGround)).Partial().Ignorable().Build(),
		t.ab(MyceliumMight).Attr(NewMoveAbilityBypass(category(dex.CategoryStatus))).Partial().Build(),
		t.ab(MindsEye).
			Attrs(
				NewIgnoreTypeImmunity(dex.TypeGhost, dex.TypeNormal, dex.TypeFighting),
				NewProtectStat(dex.BattleStatAcc),
				NewIgnoreOpponentEvasion(),
			).
			Ignorable().
			Build(),
		t.ab(SupersweetSyrup).
			Attr(NewPostSummonStatChange(stats(dex.BattleStatEva), -1, false, false)).
			Condition(OncePerBattle{Ability: SupersweetSyrup}).
			Build(),
		t.ab(Hospitality).Attr(NewPostSummonAllyHeal(4)).Partial().Build(),
		t.ab(ToxicChain).Attr(NewPostAttackApplyStatusEffect(false, 30, dex.StatusToxic)).Build(),
		aspect(t, EmbodyAspectTeal, dex.BattleStatSpd),
		aspect(t, EmbodyAspectWellspring, dex.BattleStatSpDef),
		aspect(t, EmbodyAspectHearthflame, dex.BattleStatAtk),
		aspect(t, EmbodyAspectCornerstone, dex.BattleStatDef),
		t.ab(TeraShift).
			Attr(NewPostSummonFormChange(func(p Pokemon) int {
				if p.FormIndex() == 0 {
					return 1
				}
				return p.FormIndex()
			})).
			Attrs(unchangeable()...).
			Attr(NewNoTransform()).
			Build(),
		t.ab(TeraShell).Attrs(NewUncopiable(), NewUnswappable()).Ignorable().Unimplemented().Build(),
		t.ab(TeraformZero).Attrs(NewUncopiable(), NewUnswappable()).Unimplemented().Build(),
		t.ab(PoisonPuppeteer).
			Attrs(NewUncopiable(), NewUnswappable()).
			ConditionalAttr(pecharunt, NewConfusionOnStatusEffect(poisoned...)).
			Build(),
	}
}
