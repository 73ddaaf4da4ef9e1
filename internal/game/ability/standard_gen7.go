package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// shieldsDownForm keeps the core color and flips to the core form at or below half HP.
func shieldsDownForm(p Pokemon) int {
	f := p.FormIndex() % 7
	if hpRatio(p) <= 0.5 {
		return f + 7
	}
	return f
}

func schoolingForm(p Pokemon) int {
	if p.Level() < 20 || hpRatio(p) <= 0.25 {
		return 0
	}
	return 1
}

// disguiseForm busts the disguise once the holder has been hit.
func disguiseForm(p Pokemon) int {
	if bd := p.BattleData(); bd != nil && bd.HitCount > 0 {
		return 1
	}
	return 0
}

func powerConstructForm(p Pokemon) int {
	if p.FormIndex() == 4 || hpRatio(p) <= 0.5 {
		return 4
	}
	return 2
}

func surge(t table, id ID, tt dex.TerrainType) *Record {
	return t.ab(id).Attrs(NewPostSummonTerrainChange(tt), NewPostBiomeChangeTerrainChange(tt)).Build()
}

func gen7(c *Catalog) []*Record {
	t := table{c: c, gen: 7}
	disguised := MoveConditionFunc(func(_ context.Context, _ *Engine, _, defender Pokemon, m *dex.Move) bool {
		return defender.FormIndex() == 0 && defender.Effectiveness(m.Type) > 0
	})
	return []*Record{
		t.ab(Stamina).Attr(NewPostDefendStatChange(Damaging{}, dex.BattleStatDef, 1, true, false)).Build(),
		t.ab(WimpOut).Condition(NotHitBySheerForce{}).Unimplemented().Build(),
		t.ab(EmergencyExit).Condition(NotHitBySheerForce{}).Unimplemented().Build(),
		t.ab(WaterCompaction).
			Attr(NewPostDefendStatChange(MovesAll{MoveTypeIs{Type: dex.TypeWater}, Damaging{}}, dex.BattleStatDef, 2, true, false)).
			Build(),
		t.ab(Merciless).Attr(NewConditionalCrit(TargetStatusIs{Effects: poisoned})).Build(),
		t.ab(ShieldsDown).
			Attrs(
				NewPostBattleInitFormChange(baseForm),
				NewPostSummonFormChange(shieldsDownForm),
				NewPostTurnFormChange(shieldsDownForm),
			).
			Attrs(unchangeable()...).
			BypassFaint().
			Partial().
			Build(),
		t.ab(Stakeout).Attr(NewMovePowerBoost(TargetSwitchedIn{}, 2, true)).Build(),
		t.ab(WaterBubble).
			Attrs(
				NewReceivedTypeDamageMultiplier(dex.TypeFire, 0.5),
				NewMoveTypePowerBoost(dex.TypeWater, 2),
				NewStatusEffectImmunity(dex.StatusBurn),
			).
			Ignorable().
			Build(),
		t.ab(Steelworker).Attr(NewMoveTypePowerBoost(dex.TypeSteel, 0)).Build(),
		t.ab(Berserk).
			Attr(NewPostDefendHpGatedStatChange(Damaging{}, 0.5, stats(dex.BattleStatSpAtk), 1)).
			Condition(NotHitBySheerForce{}).
			Build(),
		t.ab(SlushRush).
			Attr(NewBattleStatMultiplier(dex.BattleStatSpd, 2, nil)).
			Condition(weather(snowy...)).
			Build(),
		t.ab(LongReach).Attr(NewIgnoreContact()).Build(),
		t.ab(LiquidVoice).Attr(NewMoveTypeChange(dex.TypeWater, 1, flag(dex.FlagSoundBased))).Build(),
		t.ab(Triage).Attr(NewIncrementMovePriority(flag(dex.FlagTriage), 3)).Build(),
		t.ab(Galvanize).Attr(NewMoveTypeChange(dex.TypeElectric, 1.2, MoveTypeIs{Type: dex.TypeNormal})).Build(),
		t.ab(SurgeSurfer).
			ConditionalAttr(terrain(dex.TerrainElectric), NewBattleStatMultiplier(dex.BattleStatSpd, 2, nil)).
			Build(),
		t.ab(Schooling).
			Attrs(
				NewPostBattleInitFormChange(baseForm),
				NewPostSummonFormChange(schoolingForm),
				NewPostTurnFormChange(schoolingForm),
			).
			Attrs(unchangeable()...).
			BypassFaint().
			Build(),
		t.ab(Disguise).
			Attrs(
				NewPreDefendMoveDamageToOne(disguised),
				NewPostSummonFormChange(disguiseForm),
				NewPostBattleInitFormChange(baseForm),
				NewPostDefendFormChange(disguiseForm),
				NewPreDefendFormChange(disguiseForm),
				NewPostDefendDisguise(),
			).
			Attrs(unchangeable()...).
			Attr(NewNoTransform()).
			BypassFaint().
			Ignorable().
			Partial().
			Build(),
		t.ab(BattleBond).
			Attrs(
				NewPostVictoryFormChange(func(Pokemon) int { return 2 }),
				NewPostBattleInitFormChange(func(Pokemon) int { return 1 }),
			).
			Attrs(unchangeable()...).
			BypassFaint().
			Build(),
		t.ab(PowerConstruct).
			Attrs(
				NewPostBattleInitFormChange(func(Pokemon) int { return 2 }),
				NewPostSummonFormChange(powerConstructForm),
				NewPostTurnFormChange(powerConstructForm),
			).
			Attrs(unchangeable()...).
			BypassFaint().
			Partial().
			Build(),
		t.ab(Corrosion).
			Attr(NewIgnoreTypeStatusEffectImmunity(poisoned, []dex.Type{dex.TypeSteel, dex.TypePoison})).
			Partial().
			Build(),
		t.ab(Comatose).
			Attrs(
				NewUncopiable(),
				NewUnswappable(),
				NewUnsuppressable(),
				NewStatusEffectImmunity(dex.NonVolatileStatusEffects()...),
				NewBattlerTagImmunity(dex.TagDrowsy),
			).
			Build(),
		t.ab(QueenlyMajesty).Attr(NewFieldPriorityMoveImmunity()).Ignorable().Build(),
		t.ab(InnardsOut).Attr(NewPostFaintHPDamage()).BypassFaint().Build(),
		t.ab(Dancer).Attr(NewPostDancingMove()).Build(),
		t.ab(Battery).Attr(NewAllyMoveCategoryPowerBoost([]dex.MoveCategory{dex.CategorySpecial}, 1.3)).Build(),
		t.ab(Fluffy).
			Attrs(
				NewReceivedMoveDamageMultiplier(Contact{}, 0.5),
				NewReceivedMoveDamageMultiplier(MoveTypeIs{Type: dex.TypeFire}, 2),
			).
			Ignorable().
			Build(),
		t.ab(Dazzling).Attr(NewFieldPriorityMoveImmunity()).Ignorable().Build(),
		t.ab(SoulHeart).Attr(NewPostKnockOutStatChange(FixedStat(dex.BattleStatSpAtk), 1)).Build(),
		t.ab(TanglingHair).Attr(NewPostDefendStatChange(Contact{}, dex.BattleStatSpd, -1, false, false)).Build(),
		t.ab(Receiver).Attrs(NewCopyFaintedAllyAbility(), NewUncopiable()).Build(),
		t.ab(PowerOfAlchemy).Attrs(NewCopyFaintedAllyAbility(), NewUncopiable()).Build(),
		t.ab(BeastBoost).Attr(NewPostVictoryStatChange(HighestStat, 1)).Build(),
		t.ab(RksSystem).Attrs(unchangeable()...).Build(),
		surge(t, ElectricSurge, dex.TerrainElectric),
		surge(t, PsychicSurge, dex.TerrainPsychic),
		surge(t, MistySurge, dex.TerrainMisty),
		surge(t, GrassySurge, dex.TerrainGrassy),
		t.ab(FullMetalBody).Attr(NewProtectStat()).Build(),
		t.ab(ShadowShield).Attr(NewReceivedMoveDamageMultiplier(TargetAtFullHP{}, 0.5)).Build(),
		t.ab(PrismArmor).Attr(NewReceivedMoveDamageMultiplier(SuperEffective{}, 0.75)).Build(),
		t.ab(Neuroforce).Attr(NewMovePowerBoost(SuperEffective{}, 1.25, true)).Build(),
	}
}
