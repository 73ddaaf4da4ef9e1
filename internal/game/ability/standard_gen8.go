package ability

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// asOne builds the Calyrex rider abilities: Unnerve plus a Neigh boost.
func asOne(t table, id ID, key string, s dex.BattleStat) *Record {
	return t.ab(id).
		Attrs(
			NewPostSummonMessage(key),
			NewPreventBerryUse(),
			NewPostVictoryStatChange(FixedStat(s), 1),
			NewUncopiable(),
			NewUnswappable(),
			NewUnsuppressable(),
		).
		Build()
}

func gen8(c *Catalog) []*Record {
	t := table{c: c, gen: 8}
	snow := weather(snowy...)
	iceFaced := MoveConditionFunc(func(_ context.Context, _ *Engine, _, defender Pokemon, m *dex.Move) bool {
		return m.Category == dex.CategoryPhysical && defender.HasTag(dex.TagIceFace)
	})
	hungerSwitch := func(p Pokemon) int { return 1 - p.FormIndex()%2 }
	return []*Record{
		t.ab(IntrepidSword).
			Attr(NewPostSummonStatChange(stats(dex.BattleStatAtk), 1, true, false)).
			Condition(OncePerBattle{Ability: IntrepidSword}).
			Build(),
		t.ab(DauntlessShield).
			Attr(NewPostSummonStatChange(stats(dex.BattleStatDef), 1, true, false)).
			Condition(OncePerBattle{Ability: DauntlessShield}).
			Build(),
		t.ab(Libero).Attr(NewPokemonTypeChange()).Build(),
		t.ab(BallFetch).Attr(NewFetchBall()).Condition(OncePerBattle{Ability: BallFetch}).Build(),
		t.ab(CottonDown).Attr(NewPostDefendStatChange(Damaging{}, dex.BattleStatSpd, -1, false, true)).BypassFaint().Build(),
		t.ab(PropellerTail).Attr(NewBlockRedirect()).Build(),
		t.ab(MirrorArmor).Ignorable().Unimplemented().Build(),
		t.ab(GulpMissile).Attrs(NewUnsuppressable(), NewNoTransform(), NewNoFusion()).Unimplemented().Build(),
		t.ab(Stalwart).Attr(NewBlockRedirect()).Build(),
		t.ab(SteamEngine).
			Attr(NewPostDefendStatChange(MovesAll{
				Damaging{},
				MovesAny{MoveTypeIs{Type: dex.TypeFire}, MoveTypeIs{Type: dex.TypeWater}},
			}, dex.BattleStatSpd, 6, true, false)).
			Build(),
		t.ab(PunkRock).
			Attrs(
				NewMovePowerBoost(flag(dex.FlagSoundBased), 1.3, true),
				NewReceivedMoveDamageMultiplier(flag(dex.FlagSoundBased), 0.5),
			).
			Ignorable().
			Build(),
		t.ab(SandSpit).Attr(NewPostDefendWeatherChange(dex.WeatherSandstorm, nil)).Build(),
		t.ab(IceScales).Attr(NewReceivedMoveDamageMultiplier(category(dex.CategorySpecial), 0.5)).Ignorable().Build(),
		t.ab(Ripen).Attr(NewDoubleBerryEffect()).Build(),
		t.ab(IceFace).
			Attrs(unchangeable()...).
			Attr(NewNoTransform()).
			ConditionalAttr(FormIs{Form: 0}, NewPostSummonAddBattlerTag(dex.TagIceFace, 0, false)).
			ConditionalAttr(snow, NewPostSummonAddBattlerTag(dex.TagIceFace, 0, true)).
			Attrs(
				NewPostWeatherChangeAddBattlerTag(dex.TagIceFace, 0, snowy...),
				NewIceFaceBlockPhysical(iceFaced, 0),
			).
			Ignorable().
			Build(),
		t.ab(PowerSpot).
			Attr(NewAllyMoveCategoryPowerBoost([]dex.MoveCategory{dex.CategorySpecial, dex.CategoryPhysical}, 1.3)).
			Build(),
		t.ab(Mimicry).Unimplemented().Build(),
		t.ab(ScreenCleaner).
			Attr(NewPostSummonRemoveArenaTag(dex.ArenaTagAuroraVeil, dex.ArenaTagLightScreen, dex.ArenaTagReflect)).
			Build(),
		t.ab(SteelySpirit).Attr(NewUserFieldMoveTypePowerBoost(dex.TypeSteel, 1.5)).Build(),
		t.ab(PerishBody).Attr(NewPostDefendPerishSong(4)).Build(),
		t.ab(WanderingSpirit).Attr(NewPostDefendAbilitySwap()).BypassFaint().Partial().Build(),
		t.ab(GorillaTactics).Unimplemented().Build(),
		t.ab(NeutralizingGas).
			Attrs(
				NewSuppressFieldAbilities(),
				NewUncopiable(),
				NewUnswappable(),
				NewNoTransform(),
				NewPostSummonMessage("postSummonNeutralizingGas"),
			).
			Partial().
			Build(),
		t.ab(PastelVeil).
			Attrs(
				NewPostSummonUserFieldRemoveStatusEffect(poisoned...),
				NewUserFieldStatusEffectImmunity(poisoned...),
			).
			Ignorable().
			Build(),
		// Alternates between Full Belly and Hangry at the end of every turn.
		t.ab(HungerSwitch).
			Attr(NewPostTurnFormChange(hungerSwitch)).
			Attrs(NewUncopiable(), NewUnswappable(), NewNoTransform(), NewNoFusion()).
			Build(),
		t.ab(QuickDraw).Attr(NewBypassSpeedChance(30)).Build(),
		t.ab(UnseenFist).Attr(NewIgnoreProtectOnContact()).Build(),
		t.ab(CuriousMedicine).Attr(NewPostSummonClearAllyStats()).Build(),
		t.ab(Transistor).Attr(NewMoveTypePowerBoost(dex.TypeElectric, 0)).Build(),
		t.ab(DragonsMaw).Attr(NewMoveTypePowerBoost(dex.TypeDragon, 0)).Build(),
		t.ab(ChillingNeigh).Attr(NewPostVictoryStatChange(FixedStat(dex.BattleStatAtk), 1)).Build(),
		t.ab(GrimNeigh).Attr(NewPostVictoryStatChange(FixedStat(dex.BattleStatSpAtk), 1)).Build(),
		asOne(t, AsOneGlastrier, "postSummonAsOneGlastrier", dex.BattleStatAtk),
		asOne(t, AsOneSpectrier, "postSummonAsOneSpectrier", dex.BattleStatSpAtk),
	}
}
