package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

func gen5(c *Catalog) []*Record {
	t := table{c: c, gen: 5}
	sandstorm := weather(dex.WeatherSandstorm)
	hasAlly := ConditionFunc(func(_ context.Context, _ *Engine, p Pokemon) bool { return p.Ally() != nil })
	return []*Record{
		t.ab(Pickpocket).
			Attr(NewPostDefendStealHeldItem(Contact{})).
			Condition(NotHitBySheerForce{}).
			Build(),
		t.ab(SheerForce).
			Attrs(NewMovePowerBoost(HasSecondaryEffect{}, 5461.0/4096, true), NewMoveEffectChanceMultiplier(0)).
			Partial().
			Build(),
		t.ab(Contrary).Attr(NewStatChangeMultiplier(-1)).Ignorable().Build(),
		t.ab(Unnerve).Attr(NewPreventBerryUse()).Build(),
		t.ab(Defiant).Attr(NewPostStatChangeStatChange(StatsLowered, stats(dex.BattleStatAtk), 2)).Build(),
		t.ab(Defeatist).
			Attrs(
				NewBattleStatMultiplier(dex.BattleStatAtk, 0.5, nil),
				NewBattleStatMultiplier(dex.BattleStatSpAtk, 0.5, nil),
			).
			Condition(HPRatioAtMost{Ratio: 0.5}).
			Build(),
		t.ab(CursedBody).Attr(NewPostDefendMoveDisable(30)).BypassFaint().Build(),
		t.ab(Healer).ConditionalAttr(All{hasAlly, Chance{Percent: 30}}, NewPostTurnResetStatus(true)).Build(),
		t.ab(FriendGuard).Ignorable().Unimplemented().Build(),
		t.ab(WeakArmor).
			Attrs(
				NewPostDefendStatChange(category(dex.CategoryPhysical), dex.BattleStatDef, -1, true, false),
				NewPostDefendStatChange(category(dex.CategoryPhysical), dex.BattleStatSpd, 2, true, false),
			).
			Build(),
		t.ab(HeavyMetal).Attr(NewWeightMultiplier(2)).Ignorable().Build(),
		t.ab(LightMetal).Attr(NewWeightMultiplier(0.5)).Ignorable().Build(),
		t.ab(Multiscale).Attr(NewReceivedMoveDamageMultiplier(TargetAtFullHP{}, 0.5)).Ignorable().Build(),
		t.ab(ToxicBoost).
			Attr(NewMovePowerBoost(MovesAll{category(dex.CategoryPhysical), UserStatusIs{Effects: poisoned}}, 1.5, true)).
			Build(),
		t.ab(FlareBoost).
			Attr(NewMovePowerBoost(MovesAll{
				category(dex.CategorySpecial),
				UserStatusIs{Effects: []dex.StatusEffect{dex.StatusBurn}},
			}, 1.5, true)).
			Build(),
		// The regrowth chance doubles in harsh sunlight.
		t.ab(Harvest).
			Attr(NewPostTurnLoot(func(p Pokemon) float64 {
				s := p.Scene()
				if !s.WeatherSuppressed() && containsWeather(sunny, s.Weather()) {
					return 1
				}
				return 0.5
			})).
			Partial().
			Build(),
		t.ab(Telepathy).Attr(NewMoveImmunity(MovesAll{FromAlly{}, Damaging{}})).Ignorable().Build(),
		t.ab(Moody).Attr(NewMoody()).Build(),
		t.ab(Overcoat).
			Attrs(NewBlockWeatherDamage(), NewMoveImmunity(MovesAll{FromOther{}, flag(dex.FlagPowder)})).
			Ignorable().
			Build(),
		t.ab(PoisonTouch).Attr(NewPostAttackContactApplyStatusEffect(30, dex.StatusPoison)).Build(),
		t.ab(Regenerator).Attr(NewPreSwitchOutHeal()).Build(),
		t.ab(BigPecks).Attr(NewProtectStat(dex.BattleStatDef)).Ignorable().Build(),
		t.ab(SandRush).
			Attrs(NewBattleStatMultiplier(dex.BattleStatSpd, 2, nil), NewBlockWeatherDamage(dex.WeatherSandstorm)).
			Condition(sandstorm).
			Build(),
		t.ab(WonderSkin).Attr(NewWonderSkin()).Ignorable().Build(),
		// Only a target that switched in counts as having moved first.
		t.ab(Analytic).Attr(NewMovePowerBoost(TargetSwitchedIn{}, 1.3, true)).Partial().Build(),
		t.ab(Illusion).Attrs(NewUncopiable(), NewUnswappable()).Unimplemented().Build(),
		t.ab(Imposter).Attrs(NewPostSummonTransform(), NewUncopiable()).Build(),
		t.ab(Infiltrator).Unimplemented().Build(),
		t.ab(Mummy).Attr(NewPostDefendAbilityGive()).BypassFaint().Build(),
		t.ab(Moxie).Attr(NewPostVictoryStatChange(FixedStat(dex.BattleStatAtk), 1)).Build(),
		t.ab(Justified).
			Attr(NewPostDefendStatChange(MovesAll{MoveTypeIs{Type: dex.TypeDark}, Damaging{}}, dex.BattleStatAtk, 1, true, false)).
			Build(),
		t.ab(Rattled).
			Attrs(
				NewPostDefendStatChange(MovesAll{Damaging{}, MovesAny{
					MoveTypeIs{Type: dex.TypeDark}, MoveTypeIs{Type: dex.TypeBug}, MoveTypeIs{Type: dex.TypeGhost},
				}}, dex.BattleStatSpd, 1, true, false),
				NewPostIntimidateStatChange(stats(dex.BattleStatSpd), 1, false),
			).
			Build(),
		t.ab(MagicBounce).Ignorable().Unimplemented().Build(),
		t.ab(SapSipper).Attr(NewTypeImmunityStatChange(dex.TypeGrass, dex.BattleStatAtk, 1, nil)).Ignorable().Build(),
		t.ab(Prankster).Attr(NewIncrementMovePriority(category(dex.CategoryStatus), 1)).Build(),
		t.ab(SandForce).
			Attrs(
				NewMoveTypePowerBoost(dex.TypeRock, 1.3),
				NewMoveTypePowerBoost(dex.TypeGround, 1.3),
				NewMoveTypePowerBoost(dex.TypeSteel, 1.3),
				NewBlockWeatherDamage(dex.WeatherSandstorm),
			).
			Condition(sandstorm).
			Build(),
		t.ab(IronBarbs).Attr(NewPostDefendContactDamage(8)).BypassFaint().Build(),
		t.ab(ZenMode).
			Attrs(NewPostBattleInitFormChange(baseForm), NewPostSummonFormChange(hpForm), NewPostTurnFormChange(hpForm)).
			Attrs(unchangeable()...).
			BypassFaint().
			Build(),
		t.ab(VictoryStar).Attr(NewBattleStatMultiplier(dex.BattleStatAcc, 1.1, nil)).Partial().Build(),
		t.ab(Turboblaze).
			Attrs(NewPostSummonMessage("postSummonTurboblaze"), NewMoveAbilityBypass(nil)).
			Build(),
		t.ab(Teravolt).
			Attrs(NewPostSummonMessage("postSummonTeravolt"), NewMoveAbilityBypass(nil)).
			Build(),
	}
}
