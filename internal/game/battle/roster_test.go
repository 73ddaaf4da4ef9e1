package battle_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

const customAbilitiesDir = "../../../content/abilities"

// contentEngine returns an engine whose registry includes the data-defined abilities.
func contentEngine(t testing.TB) *ability.Engine {
	t.Helper()
	custom, err := ability.LoadDefinitions(customAbilitiesDir, ability.DefaultCatalog())
	require.NoError(t, err)
	reg, err := ability.BuildRegistry(ability.Options{Custom: custom})
	require.NoError(t, err)
	return ability.NewEngine(reg, zap.NewNop())
}

func buildDefault(t testing.TB, e *ability.Engine) (player, enemy []*battle.Pokemon) {
	t.Helper()
	r, err := battle.LoadRoster("")
	require.NoError(t, err)
	items, err := dex.LoadItems()
	require.NoError(t, err)
	player, enemy, err = r.Build(e.Registry(), moveTable, items)
	require.NoError(t, err)
	return player, enemy
}

func TestLoadRoster_Default(t *testing.T) {
	r, err := battle.LoadRoster("")
	require.NoError(t, err)
	assert.Len(t, r.Player, 4)
	assert.Len(t, r.Enemy, 4)
	assert.Equal(t, "Gyarados", r.Player[0].Species)
	assert.Equal(t, "ember_heart", r.Player[3].Passive)
}

func TestLoadRoster_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
player:
  - species: Eevee
    types: [normal]
    base_stats: {hp: 55, atk: 55, def: 50, spatk: 45, spdef: 65, spd: 55}
    moves: [tackle]
enemy:
  - species: Rattata
    level: 10
    types: [normal]
    base_stats: {hp: 30, atk: 56, def: 35, spatk: 25, spdef: 35, spd: 72}
    ability: guts
    moves: [quick_attack]
`), 0644))

	r, err := battle.LoadRoster(path)
	require.NoError(t, err)
	player, enemy, err := r.Build(newEngine(t).Registry(), moveTable, mustItems(t))
	require.NoError(t, err)
	assert.Equal(t, 50, player[0].Level(), "level defaults to 50")
	assert.Equal(t, 10, enemy[0].Level())
	assert.Equal(t, ability.Guts, enemy[0].InnateAbility(false))
}

func TestLoadRoster_MissingFile(t *testing.T) {
	_, err := battle.LoadRoster("/nonexistent/roster.yaml")
	assert.Error(t, err)
}

func TestParseRoster_RejectsUnknownField(t *testing.T) {
	_, err := battle.ParseRoster([]byte(`
player:
  - species: Eevee
    types: [normal]
    nickname: Vee
enemy:
  - species: Eevee
    types: [normal]
`))
	assert.Error(t, err)
}

func TestParseRoster_RequiresBothParties(t *testing.T) {
	_, err := battle.ParseRoster([]byte(`
player:
  - species: Eevee
    types: [normal]
`))
	assert.Error(t, err)
}

func TestRosterBuild_UnknownReferences(t *testing.T) {
	cases := map[string]string{
		"ability": "ability: not_an_ability",
		"passive": "passive: not_an_ability",
		"move":    "moves: [not_a_move]",
		"item":    "items: [not_an_item]",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := battle.ParseRoster([]byte(fmt.Sprintf(`
player:
  - species: Eevee
    types: [normal]
    %s
enemy:
  - species: Eevee
    types: [normal]
`, line)))
			require.NoError(t, err)
			_, _, err = r.Build(newEngine(t).Registry(), moveTable, mustItems(t))
			assert.ErrorContains(t, err, "not_a")
		})
	}
}

func TestRosterBuild_NeedsCustomAbilities(t *testing.T) {
	r, err := battle.LoadRoster("")
	require.NoError(t, err)
	_, _, err = r.Build(newEngine(t).Registry(), moveTable, mustItems(t))
	assert.ErrorContains(t, err, "ember_heart")
}

func TestRosterBuild_Default(t *testing.T) {
	player, enemy := buildDefault(t, contentEngine(t))
	require.Len(t, player, 4)
	require.Len(t, enemy, 4)
	assert.Equal(t, ability.Intimidate, player[0].InnateAbility(false))
	assert.Equal(t, ability.CustomBase+1, player[3].InnateAbility(true))
	assert.True(t, player[0].HasItem("leftovers"))
}

func TestRun_DefaultRosterFinishes(t *testing.T) {
	e := contentEngine(t)
	player, enemy := buildDefault(t, e)
	b, err := battle.New(e, zap.NewNop(), newRoller(7), player, enemy, battle.WithMaxTurns(150))
	require.NoError(t, err)
	require.NoError(t, b.Start(context.Background()))
	assert.Equal(t, dex.WeatherRain, b.Weather(), "the enemy lead summons rain")

	res, err := b.Run(context.Background(), strongest(), strongest())
	require.NoError(t, err)
	assert.True(t, b.Over())
	assert.LessOrEqual(t, res.Turns, 150)
	if !res.Draw {
		loser := battle.SideEnemy
		if res.Winner == battle.SideEnemy {
			loser = battle.SidePlayer
		}
		for _, p := range b.Party(loser) {
			assert.True(t, p.IsFainted(), "%s should have fainted", p.Name())
		}
	}
}

func TestRun_ConcurrentBattlesShareOneEngine(t *testing.T) {
	e := contentEngine(t)
	r, err := battle.LoadRoster("")
	require.NoError(t, err)
	items := mustItems(t)

	var g errgroup.Group
	g.SetLimit(4)
	results := make([]battle.Result, 8)
	for i := range results {
		g.Go(func() error {
			player, enemy, err := r.Build(e.Registry(), moveTable, items)
			if err != nil {
				return err
			}
			b, err := battle.New(e, zap.NewNop(), newRoller(uint64(i+1)), player, enemy, battle.WithMaxTurns(100))
			if err != nil {
				return err
			}
			if err := b.Start(context.Background()); err != nil {
				return err
			}
			results[i], err = b.Run(context.Background(), strongest(), strongest())
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, res := range results {
		assert.Positive(t, res.Turns)
	}
}

func mustItems(t testing.TB) *dex.ItemTable {
	t.Helper()
	items, err := dex.LoadItems()
	require.NoError(t, err)
	return items
}
