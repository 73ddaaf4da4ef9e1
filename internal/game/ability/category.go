package ability

import "fmt"

// Category is a point in battle resolution at which abilities are consulted.
// Every attribute belongs to exactly one category.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryPostBattleInit
	CategoryPostSummon
	CategoryPreSwitchOut
	CategoryPreDefend
	CategoryPostDefend
	CategoryPreAttack
	CategoryPostAttack
	CategoryPreStatChange
	CategoryPostStatChange
	CategoryPreSetStatus
	CategoryPreApplyBattlerTag
	CategoryPreWeatherEffect
	CategoryPostTurn
	CategoryPostWeatherLapse
	CategoryPostWeatherChange
	CategoryPostTerrainChange
	CategoryPostBiomeChange
	CategoryCheckTrapped
	CategoryPostVictory
	CategoryPostKnockOut
	CategoryPostFaint
	CategoryPostBattle
	CategoryPostMoveUsed
	CategoryBattleStatMultiplier
	CategoryFieldBattleStatMultiplier
	categoryCount
)

var categoryNames = [categoryCount]string{
	"generic",
	"post_battle_init",
	"post_summon",
	"pre_switch_out",
	"pre_defend",
	"post_defend",
	"pre_attack",
	"post_attack",
	"pre_stat_change",
	"post_stat_change",
	"pre_set_status",
	"pre_apply_battler_tag",
	"pre_weather_effect",
	"post_turn",
	"post_weather_lapse",
	"post_weather_change",
	"post_terrain_change",
	"post_biome_change",
	"check_trapped",
	"post_victory",
	"post_knock_out",
	"post_faint",
	"post_battle",
	"post_move_used",
	"battle_stat_multiplier",
	"field_battle_stat_multiplier",
}

// String returns the snake-case category name.
func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, categoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}
