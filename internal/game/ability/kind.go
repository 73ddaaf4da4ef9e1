package ability

import "fmt"

// Kind is the discriminant of a concrete attribute behavior.
// A kind may refine a parent kind; filters on the parent also match the child.
type Kind int

const (
	KindNone Kind = iota
	KindBlockRecoilDamage
	KindDoubleBattleChance
	KindIncrementMovePriority
	KindIgnoreOpponentStatChanges
	KindIgnoreOpponentEvasion
	KindBlockCrit
	KindBonusCrit
	KindMultCrit
	KindConditionalCrit
	KindRedirectMove
	KindRedirectTypeMove
	KindBlockRedirect
	KindReduceStatusEffectDuration
	KindFlinchEffect
	KindFlinchStatChange
	KindWeightMultiplier
	KindRunSuccess
	KindStatChangeMultiplier
	KindStatChangeCopy
	KindMoveAbilityBypass
	KindSuppressFieldAbilities
	KindUncopiable
	KindUnsuppressable
	KindUnswappable
	KindNoTransform
	KindNoFusion
	KindIgnoreTypeImmunity
	KindIgnoreTypeStatusEffectImmunity
	KindBlockNonDirectDamage
	KindBlockStatusDamage
	KindBlockOneHitKO
	KindAlwaysHit
	KindIntimidateImmunity
	KindPostIntimidateStatChange
	KindBlockItemTheft
	KindForceSwitchOutImmunity
	KindIgnoreContact
	KindIgnoreProtectOnContact
	KindBypassBurnDamageReduction
	KindStabBoost
	KindMaxMultiHit
	KindReduceBerryUseThreshold
	KindPreventBerryUse
	KindDoubleBerryEffect
	KindHealFromBerryUse
	KindIncreasePP
	KindBypassSpeedChance
	KindMoveEffectChanceMultiplier
	KindFieldPreventExplosiveMoves
	KindSyncEncounterNature
	KindPostBattleInitFormChange
	KindPostBattleInitStatChange
	KindPostSummonMessage
	KindPostSummonUnnamedMessage
	KindPostSummonAddBattlerTag
	KindPostSummonStatChange
	KindPostSummonStatChangeOnArena
	KindPostSummonAllyHeal
	KindPostSummonClearAllyStats
	KindPostSummonTransform
	KindPostSummonWeatherChange
	KindPostSummonTerrainChange
	KindPostSummonFormChange
	KindPostSummonCopyAbility
	KindPostSummonUserFieldRemoveStatusEffect
	KindPostSummonCopyAllyStats
	KindPostSummonRemoveArenaTag
	KindDownload
	KindFrisk
	KindForewarn
	KindPreSwitchOutResetStatus
	KindPreSwitchOutClearWeather
	KindPreSwitchOutHeal
	KindPreSwitchOutFormChange
	KindPreDefendFullHpEndure
	KindTypeImmunity
	KindTypeImmunityHeal
	KindTypeImmunityStatChange
	KindTypeImmunityAddBattlerTag
	KindNonSuperEffectiveImmunity
	KindMoveImmunity
	KindMoveImmunityStatChange
	KindReceivedMoveDamageMultiplier
	KindReceivedTypeDamageMultiplier
	KindPreDefendMoveDamageToOne
	KindIceFaceBlockPhysical
	KindFieldPriorityMoveImmunity
	KindWonderSkin
	KindIgnoreMoveEffects
	KindPreDefendFormChange
	KindPostDefendDisguise
	KindPostDefendFormChange
	KindPostDefendContactDamage
	KindPostDefendPerishSong
	KindPostDefendWeatherChange
	KindPostDefendAbilitySwap
	KindPostDefendAbilityGive
	KindPostDefendMoveDisable
	KindPostDefendStatChange
	KindPostDefendHpGatedStatChange
	KindPostDefendApplyArenaTrapTag
	KindPostDefendApplyBattlerTag
	KindPostDefendTypeChange
	KindPostDefendTerrainChange
	KindPostDefendContactApplyStatusEffect
	KindEffectSpore
	KindPostDefendContactApplyTagChance
	KindPostDefendCritStatChange
	KindPostDefendStealHeldItem
	KindReverseDrain
	KindMovePowerBoost
	KindMoveTypePowerBoost
	KindLowHpMoveTypePowerBoost
	KindVariableMovePowerBoost
	KindFieldMovePowerBoost
	KindFieldMoveTypePowerBoost
	KindUserFieldMoveTypePowerBoost
	KindAllyMoveCategoryPowerBoost
	KindMoveTypeChange
	KindPokemonTypeChange
	KindAddSecondStrike
	KindDamageBoost
	KindPostAttackStealHeldItem
	KindPostAttackApplyStatusEffect
	KindPostAttackContactApplyStatusEffect
	KindPostAttackApplyBattlerTag
	KindConfusionOnStatusEffect
	KindProtectStat
	KindPostStatChangeStatChange
	KindStatusEffectImmunity
	KindUserFieldStatusEffectImmunity
	KindBattlerTagImmunity
	KindUserFieldBattlerTagImmunity
	KindSuppressWeatherEffect
	KindBlockWeatherDamage
	KindPostTurnResetStatus
	KindPostTurnStatChange
	KindPostTurnStatusHeal
	KindPostTurnFormChange
	KindPostTurnHurtIfSleeping
	KindPostTurnHeal
	KindPostTurnLoot
	KindMoody
	KindFetchBall
	KindPostWeatherLapseHeal
	KindPostWeatherLapseDamage
	KindPostWeatherChangeAddBattlerTag
	KindPostTerrainChangeAddBattlerTag
	KindPostBiomeChangeWeatherChange
	KindPostBiomeChangeTerrainChange
	KindArenaTrap
	KindPostVictoryStatChange
	KindPostVictoryFormChange
	KindPostKnockOutStatChange
	KindCopyFaintedAllyAbility
	KindPostFaintContactDamage
	KindPostFaintHPDamage
	KindPostFaintClearWeather
	KindPostBattleLoot
	KindMoney
	KindPostDancingMove
	KindBattleStatMultiplier
	KindFieldMultiplyBattleStat
	kindCount
)

type kindSpec struct {
	name     string
	category Category
	parent   Kind
}

var kindSpecs = [kindCount]kindSpec{
	KindNone:                                  {name: "none"},
	KindBlockRecoilDamage:                     {name: "block_recoil_damage", category: CategoryGeneric},
	KindDoubleBattleChance:                    {name: "double_battle_chance", category: CategoryGeneric},
	KindIncrementMovePriority:                 {name: "increment_move_priority", category: CategoryGeneric},
	KindIgnoreOpponentStatChanges:             {name: "ignore_opponent_stat_changes", category: CategoryGeneric},
	KindIgnoreOpponentEvasion:                 {name: "ignore_opponent_evasion", category: CategoryGeneric},
	KindBlockCrit:                             {name: "block_crit", category: CategoryGeneric},
	KindBonusCrit:                             {name: "bonus_crit", category: CategoryGeneric},
	KindMultCrit:                              {name: "mult_crit", category: CategoryGeneric},
	KindConditionalCrit:                       {name: "conditional_crit", category: CategoryGeneric},
	KindRedirectMove:                          {name: "redirect_move", category: CategoryGeneric},
	KindRedirectTypeMove:                      {name: "redirect_type_move", category: CategoryGeneric, parent: KindRedirectMove},
	KindBlockRedirect:                         {name: "block_redirect", category: CategoryGeneric},
	KindReduceStatusEffectDuration:            {name: "reduce_status_effect_duration", category: CategoryGeneric},
	KindFlinchEffect:                          {name: "flinch_effect", category: CategoryGeneric},
	KindFlinchStatChange:                      {name: "flinch_stat_change", category: CategoryGeneric, parent: KindFlinchEffect},
	KindWeightMultiplier:                      {name: "weight_multiplier", category: CategoryGeneric},
	KindRunSuccess:                            {name: "run_success", category: CategoryGeneric},
	KindStatChangeMultiplier:                  {name: "stat_change_multiplier", category: CategoryGeneric},
	KindStatChangeCopy:                        {name: "stat_change_copy", category: CategoryGeneric},
	KindMoveAbilityBypass:                     {name: "move_ability_bypass", category: CategoryGeneric},
	KindSuppressFieldAbilities:                {name: "suppress_field_abilities", category: CategoryGeneric},
	KindUncopiable:                            {name: "uncopiable", category: CategoryGeneric},
	KindUnsuppressable:                        {name: "unsuppressable", category: CategoryGeneric},
	KindUnswappable:                           {name: "unswappable", category: CategoryGeneric},
	KindNoTransform:                           {name: "no_transform", category: CategoryGeneric},
	KindNoFusion:                              {name: "no_fusion", category: CategoryGeneric},
	KindIgnoreTypeImmunity:                    {name: "ignore_type_immunity", category: CategoryGeneric},
	KindIgnoreTypeStatusEffectImmunity:        {name: "ignore_type_status_effect_immunity", category: CategoryGeneric},
	KindBlockNonDirectDamage:                  {name: "block_non_direct_damage", category: CategoryGeneric},
	KindBlockStatusDamage:                     {name: "block_status_damage", category: CategoryGeneric},
	KindBlockOneHitKO:                         {name: "block_one_hit_ko", category: CategoryGeneric},
	KindAlwaysHit:                             {name: "always_hit", category: CategoryGeneric},
	KindIntimidateImmunity:                    {name: "intimidate_immunity", category: CategoryGeneric},
	KindPostIntimidateStatChange:              {name: "post_intimidate_stat_change", category: CategoryGeneric},
	KindBlockItemTheft:                        {name: "block_item_theft", category: CategoryGeneric},
	KindForceSwitchOutImmunity:                {name: "force_switch_out_immunity", category: CategoryGeneric},
	KindIgnoreContact:                         {name: "ignore_contact", category: CategoryGeneric},
	KindIgnoreProtectOnContact:                {name: "ignore_protect_on_contact", category: CategoryGeneric},
	KindBypassBurnDamageReduction:             {name: "bypass_burn_damage_reduction", category: CategoryGeneric},
	KindStabBoost:                             {name: "stab_boost", category: CategoryGeneric},
	KindMaxMultiHit:                           {name: "max_multi_hit", category: CategoryGeneric},
	KindReduceBerryUseThreshold:               {name: "reduce_berry_use_threshold", category: CategoryGeneric},
	KindPreventBerryUse:                       {name: "prevent_berry_use", category: CategoryGeneric},
	KindDoubleBerryEffect:                     {name: "double_berry_effect", category: CategoryGeneric},
	KindHealFromBerryUse:                      {name: "heal_from_berry_use", category: CategoryGeneric},
	KindIncreasePP:                            {name: "increase_pp", category: CategoryGeneric},
	KindBypassSpeedChance:                     {name: "bypass_speed_chance", category: CategoryGeneric},
	KindMoveEffectChanceMultiplier:            {name: "move_effect_chance_multiplier", category: CategoryGeneric},
	KindFieldPreventExplosiveMoves:            {name: "field_prevent_explosive_moves", category: CategoryGeneric},
	KindSyncEncounterNature:                   {name: "sync_encounter_nature", category: CategoryGeneric},
	KindPostBattleInitFormChange:              {name: "post_battle_init_form_change", category: CategoryPostBattleInit},
	KindPostBattleInitStatChange:              {name: "post_battle_init_stat_change", category: CategoryPostBattleInit},
	KindPostSummonMessage:                     {name: "post_summon_message", category: CategoryPostSummon},
	KindPostSummonUnnamedMessage:              {name: "post_summon_unnamed_message", category: CategoryPostSummon},
	KindPostSummonAddBattlerTag:               {name: "post_summon_add_battler_tag", category: CategoryPostSummon},
	KindPostSummonStatChange:                  {name: "post_summon_stat_change", category: CategoryPostSummon},
	KindPostSummonStatChangeOnArena:           {name: "post_summon_stat_change_on_arena", category: CategoryPostSummon, parent: KindPostSummonStatChange},
	KindPostSummonAllyHeal:                    {name: "post_summon_ally_heal", category: CategoryPostSummon},
	KindPostSummonClearAllyStats:              {name: "post_summon_clear_ally_stats", category: CategoryPostSummon},
	KindPostSummonTransform:                   {name: "post_summon_transform", category: CategoryPostSummon},
	KindPostSummonWeatherChange:               {name: "post_summon_weather_change", category: CategoryPostSummon},
	KindPostSummonTerrainChange:               {name: "post_summon_terrain_change", category: CategoryPostSummon},
	KindPostSummonFormChange:                  {name: "post_summon_form_change", category: CategoryPostSummon},
	KindPostSummonCopyAbility:                 {name: "post_summon_copy_ability", category: CategoryPostSummon},
	KindPostSummonUserFieldRemoveStatusEffect: {name: "post_summon_user_field_remove_status_effect", category: CategoryPostSummon},
	KindPostSummonCopyAllyStats:               {name: "post_summon_copy_ally_stats", category: CategoryPostSummon},
	KindPostSummonRemoveArenaTag:              {name: "post_summon_remove_arena_tag", category: CategoryPostSummon},
	KindDownload:                              {name: "download", category: CategoryPostSummon},
	KindFrisk:                                 {name: "frisk", category: CategoryPostSummon},
	KindForewarn:                              {name: "forewarn", category: CategoryPostSummon},
	KindPreSwitchOutResetStatus:               {name: "pre_switch_out_reset_status", category: CategoryPreSwitchOut},
	KindPreSwitchOutClearWeather:              {name: "pre_switch_out_clear_weather", category: CategoryPreSwitchOut},
	KindPreSwitchOutHeal:                      {name: "pre_switch_out_heal", category: CategoryPreSwitchOut},
	KindPreSwitchOutFormChange:                {name: "pre_switch_out_form_change", category: CategoryPreSwitchOut},
	KindPreDefendFullHpEndure:                 {name: "pre_defend_full_hp_endure", category: CategoryPreDefend},
	KindTypeImmunity:                          {name: "type_immunity", category: CategoryPreDefend},
	KindTypeImmunityHeal:                      {name: "type_immunity_heal", category: CategoryPreDefend, parent: KindTypeImmunity},
	KindTypeImmunityStatChange:                {name: "type_immunity_stat_change", category: CategoryPreDefend, parent: KindTypeImmunity},
	KindTypeImmunityAddBattlerTag:             {name: "type_immunity_add_battler_tag", category: CategoryPreDefend, parent: KindTypeImmunity},
	KindNonSuperEffectiveImmunity:             {name: "non_super_effective_immunity", category: CategoryPreDefend, parent: KindTypeImmunity},
	KindMoveImmunity:                          {name: "move_immunity", category: CategoryPreDefend},
	KindMoveImmunityStatChange:                {name: "move_immunity_stat_change", category: CategoryPreDefend, parent: KindMoveImmunity},
	KindReceivedMoveDamageMultiplier:          {name: "received_move_damage_multiplier", category: CategoryPreDefend},
	KindReceivedTypeDamageMultiplier:          {name: "received_type_damage_multiplier", category: CategoryPreDefend, parent: KindReceivedMoveDamageMultiplier},
	KindPreDefendMoveDamageToOne:              {name: "pre_defend_move_damage_to_one", category: CategoryPreDefend, parent: KindReceivedMoveDamageMultiplier},
	KindIceFaceBlockPhysical:                  {name: "ice_face_block_physical", category: CategoryPreDefend, parent: KindReceivedMoveDamageMultiplier},
	KindFieldPriorityMoveImmunity:             {name: "field_priority_move_immunity", category: CategoryPreDefend},
	KindWonderSkin:                            {name: "wonder_skin", category: CategoryPreDefend},
	KindIgnoreMoveEffects:                     {name: "ignore_move_effects", category: CategoryPreDefend},
	KindPreDefendFormChange:                   {name: "pre_defend_form_change", category: CategoryPreDefend},
	KindPostDefendDisguise:                    {name: "post_defend_disguise", category: CategoryPostDefend},
	KindPostDefendFormChange:                  {name: "post_defend_form_change", category: CategoryPostDefend},
	KindPostDefendContactDamage:               {name: "post_defend_contact_damage", category: CategoryPostDefend},
	KindPostDefendPerishSong:                  {name: "post_defend_perish_song", category: CategoryPostDefend},
	KindPostDefendWeatherChange:               {name: "post_defend_weather_change", category: CategoryPostDefend},
	KindPostDefendAbilitySwap:                 {name: "post_defend_ability_swap", category: CategoryPostDefend},
	KindPostDefendAbilityGive:                 {name: "post_defend_ability_give", category: CategoryPostDefend},
	KindPostDefendMoveDisable:                 {name: "post_defend_move_disable", category: CategoryPostDefend},
	KindPostDefendStatChange:                  {name: "post_defend_stat_change", category: CategoryPostDefend},
	KindPostDefendHpGatedStatChange:           {name: "post_defend_hp_gated_stat_change", category: CategoryPostDefend},
	KindPostDefendApplyArenaTrapTag:           {name: "post_defend_apply_arena_trap_tag", category: CategoryPostDefend},
	KindPostDefendApplyBattlerTag:             {name: "post_defend_apply_battler_tag", category: CategoryPostDefend},
	KindPostDefendTypeChange:                  {name: "post_defend_type_change", category: CategoryPostDefend},
	KindPostDefendTerrainChange:               {name: "post_defend_terrain_change", category: CategoryPostDefend},
	KindPostDefendContactApplyStatusEffect:    {name: "post_defend_contact_apply_status_effect", category: CategoryPostDefend},
	KindEffectSpore:                           {name: "effect_spore", category: CategoryPostDefend, parent: KindPostDefendContactApplyStatusEffect},
	KindPostDefendContactApplyTagChance:       {name: "post_defend_contact_apply_tag_chance", category: CategoryPostDefend},
	KindPostDefendCritStatChange:              {name: "post_defend_crit_stat_change", category: CategoryPostDefend},
	KindPostDefendStealHeldItem:               {name: "post_defend_steal_held_item", category: CategoryPostDefend},
	KindReverseDrain:                          {name: "reverse_drain", category: CategoryPostDefend},
	KindMovePowerBoost:                        {name: "move_power_boost", category: CategoryPreAttack},
	KindMoveTypePowerBoost:                    {name: "move_type_power_boost", category: CategoryPreAttack, parent: KindMovePowerBoost},
	KindLowHpMoveTypePowerBoost:               {name: "low_hp_move_type_power_boost", category: CategoryPreAttack, parent: KindMoveTypePowerBoost},
	KindVariableMovePowerBoost:                {name: "variable_move_power_boost", category: CategoryPreAttack},
	KindFieldMovePowerBoost:                   {name: "field_move_power_boost", category: CategoryPreAttack},
	KindFieldMoveTypePowerBoost:               {name: "field_move_type_power_boost", category: CategoryPreAttack, parent: KindFieldMovePowerBoost},
	KindUserFieldMoveTypePowerBoost:           {name: "user_field_move_type_power_boost", category: CategoryPreAttack, parent: KindFieldMoveTypePowerBoost},
	KindAllyMoveCategoryPowerBoost:            {name: "ally_move_category_power_boost", category: CategoryPreAttack, parent: KindFieldMovePowerBoost},
	KindMoveTypeChange:                        {name: "move_type_change", category: CategoryPreAttack},
	KindPokemonTypeChange:                     {name: "pokemon_type_change", category: CategoryPreAttack},
	KindAddSecondStrike:                       {name: "add_second_strike", category: CategoryPreAttack},
	KindDamageBoost:                           {name: "damage_boost", category: CategoryPreAttack},
	KindPostAttackStealHeldItem:               {name: "post_attack_steal_held_item", category: CategoryPostAttack},
	KindPostAttackApplyStatusEffect:           {name: "post_attack_apply_status_effect", category: CategoryPostAttack},
	KindPostAttackContactApplyStatusEffect:    {name: "post_attack_contact_apply_status_effect", category: CategoryPostAttack, parent: KindPostAttackApplyStatusEffect},
	KindPostAttackApplyBattlerTag:             {name: "post_attack_apply_battler_tag", category: CategoryPostAttack},
	KindConfusionOnStatusEffect:               {name: "confusion_on_status_effect", category: CategoryPostAttack},
	KindProtectStat:                           {name: "protect_stat", category: CategoryPreStatChange},
	KindPostStatChangeStatChange:              {name: "post_stat_change_stat_change", category: CategoryPostStatChange},
	KindStatusEffectImmunity:                  {name: "status_effect_immunity", category: CategoryPreSetStatus},
	KindUserFieldStatusEffectImmunity:         {name: "user_field_status_effect_immunity", category: CategoryPreSetStatus, parent: KindStatusEffectImmunity},
	KindBattlerTagImmunity:                    {name: "battler_tag_immunity", category: CategoryPreApplyBattlerTag},
	KindUserFieldBattlerTagImmunity:           {name: "user_field_battler_tag_immunity", category: CategoryPreApplyBattlerTag, parent: KindBattlerTagImmunity},
	KindSuppressWeatherEffect:                 {name: "suppress_weather_effect", category: CategoryPreWeatherEffect},
	KindBlockWeatherDamage:                    {name: "block_weather_damage", category: CategoryPreWeatherEffect},
	KindPostTurnResetStatus:                   {name: "post_turn_reset_status", category: CategoryPostTurn},
	KindPostTurnStatChange:                    {name: "post_turn_stat_change", category: CategoryPostTurn},
	KindPostTurnStatusHeal:                    {name: "post_turn_status_heal", category: CategoryPostTurn},
	KindPostTurnFormChange:                    {name: "post_turn_form_change", category: CategoryPostTurn},
	KindPostTurnHurtIfSleeping:                {name: "post_turn_hurt_if_sleeping", category: CategoryPostTurn},
	KindPostTurnHeal:                          {name: "post_turn_heal", category: CategoryPostTurn},
	KindPostTurnLoot:                          {name: "post_turn_loot", category: CategoryPostTurn},
	KindMoody:                                 {name: "moody", category: CategoryPostTurn},
	KindFetchBall:                             {name: "fetch_ball", category: CategoryPostTurn},
	KindPostWeatherLapseHeal:                  {name: "post_weather_lapse_heal", category: CategoryPostWeatherLapse},
	KindPostWeatherLapseDamage:                {name: "post_weather_lapse_damage", category: CategoryPostWeatherLapse},
	KindPostWeatherChangeAddBattlerTag:        {name: "post_weather_change_add_battler_tag", category: CategoryPostWeatherChange},
	KindPostTerrainChangeAddBattlerTag:        {name: "post_terrain_change_add_battler_tag", category: CategoryPostTerrainChange},
	KindPostBiomeChangeWeatherChange:          {name: "post_biome_change_weather_change", category: CategoryPostBiomeChange},
	KindPostBiomeChangeTerrainChange:          {name: "post_biome_change_terrain_change", category: CategoryPostBiomeChange},
	KindArenaTrap:                             {name: "arena_trap", category: CategoryCheckTrapped},
	KindPostVictoryStatChange:                 {name: "post_victory_stat_change", category: CategoryPostVictory},
	KindPostVictoryFormChange:                 {name: "post_victory_form_change", category: CategoryPostVictory},
	KindPostKnockOutStatChange:                {name: "post_knock_out_stat_change", category: CategoryPostKnockOut},
	KindCopyFaintedAllyAbility:                {name: "copy_fainted_ally_ability", category: CategoryPostKnockOut},
	KindPostFaintContactDamage:                {name: "post_faint_contact_damage", category: CategoryPostFaint},
	KindPostFaintHPDamage:                     {name: "post_faint_hp_damage", category: CategoryPostFaint},
	KindPostFaintClearWeather:                 {name: "post_faint_clear_weather", category: CategoryPostFaint},
	KindPostBattleLoot:                        {name: "post_battle_loot", category: CategoryPostBattle},
	KindMoney:                                 {name: "money", category: CategoryPostBattle},
	KindPostDancingMove:                       {name: "post_dancing_move", category: CategoryPostMoveUsed},
	KindBattleStatMultiplier:                  {name: "battle_stat_multiplier", category: CategoryBattleStatMultiplier},
	KindFieldMultiplyBattleStat:               {name: "field_multiply_battle_stat", category: CategoryFieldBattleStatMultiplier},
}

// String returns the snake-case kind name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindSpecs[k].name
}

// Category returns the hook category the kind is dispatched under.
func (k Kind) Category() Category {
	if k <= KindNone || k >= kindCount {
		return CategoryGeneric
	}
	return kindSpecs[k].category
}

// Parent returns the kind k refines, or KindNone.
func (k Kind) Parent() Kind {
	if k <= KindNone || k >= kindCount {
		return KindNone
	}
	return kindSpecs[k].parent
}

// Is reports whether k is target or refines it, directly or transitively.
func (k Kind) Is(target Kind) bool {
	for cur := k; cur != KindNone; cur = cur.Parent() {
		if cur == target {
			return true
		}
	}
	return false
}

// matchesAny reports whether k refines one of kinds. An empty filter matches every kind.
func (k Kind) matchesAny(kinds []Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, t := range kinds {
		if k.Is(t) {
			return true
		}
	}
	return false
}

// ParseKind resolves a snake-case kind name.
func ParseKind(s string) (Kind, error) {
	for k := KindNone + 1; k < kindCount; k++ {
		if kindSpecs[k].name == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("ability: unknown attribute kind %q", s)
}

// Kinds returns every kind dispatched under c, in declaration order.
func Kinds(c Category) []Kind {
	var out []Kind
	for k := KindNone + 1; k < kindCount; k++ {
		if kindSpecs[k].category == c {
			out = append(out, k)
		}
	}
	return out
}
