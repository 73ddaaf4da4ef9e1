package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

func TestRollResult_String(t *testing.T) {
	cases := map[string]dice.RollResult{
		"1d16+84: 13+84 = 97":  {Expression: "1d16+84", Dice: []int{13}, Modifier: 84},
		"4d8-2: 1+2+3+4-2 = 8": {Expression: "4d8-2", Dice: []int{1, 2, 3, 4}, Modifier: -2},
		"d20: 20 = 20":         {Expression: "d20", Dice: []int{20}},
	}
	for want, r := range cases {
		assert.Equal(t, want, r.String())
	}
}

func TestExpression_Bounds(t *testing.T) {
	damage := dice.MustParse("1d16+84")
	assert.Equal(t, 85, damage.Min())
	assert.Equal(t, 100, damage.Max())

	kh := dice.MustParse("4d6kh3-1")
	assert.Equal(t, 2, kh.Min())
	assert.Equal(t, 17, kh.Max())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("d") })
}

// Property: every roll lands within the expression's bounds and Total is Sum plus Modifier.
func TestProperty_RollWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 8).Draw(rt, "count")
		e := dice.Expression{
			Raw:      "generated",
			Count:    count,
			Sides:    rapid.IntRange(2, 100).Draw(rt, "sides"),
			Modifier: rapid.IntRange(-50, 50).Draw(rt, "modifier"),
		}
		if count > 1 {
			e.KeepHighest = rapid.IntRange(0, count-1).Draw(rt, "keep")
		}
		res := dice.Roll(e, dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")))
		if res.Total() < e.Min() || res.Total() > e.Max() {
			rt.Fatalf("total %d outside [%d, %d]", res.Total(), e.Min(), e.Max())
		}
		if res.Total() != res.Sum()+res.Modifier {
			rt.Fatalf("total %d != sum %d + modifier %d", res.Total(), res.Sum(), res.Modifier)
		}
	})
}

func TestCryptoSource_Intn(t *testing.T) {
	src := dice.NewCryptoSource()
	for range 500 {
		v := src.Intn(16)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 16)
	}
	assert.Panics(t, func() { src.Intn(0) })
}
