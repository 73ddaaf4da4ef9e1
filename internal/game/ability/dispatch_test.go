package ability_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// recordingScene forwards to a battle and logs every queued action by type.
// When release is set, item transfers complete only after it is closed.
type recordingScene struct {
	ability.Scene
	release chan struct{}

	mu  sync.Mutex
	log []string
}

func (s *recordingScene) note(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, entry)
}

func (s *recordingScene) entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.log...)
}

func (s *recordingScene) count(entry string) int {
	n := 0
	for _, e := range s.entries() {
		if e == entry {
			n++
		}
	}
	return n
}

func (s *recordingScene) Queue(a ability.Action) {
	s.note(fmt.Sprintf("%T", a))
	s.Scene.Queue(a)
}

func (s *recordingScene) TransferItem(ctx context.Context, from, to ability.Pokemon, item dex.Item) ability.Future[bool] {
	if s.release == nil {
		return s.Scene.TransferItem(ctx, from, to, item)
	}
	return ability.Async(func() bool {
		select {
		case <-s.release:
		case <-ctx.Done():
			return false
		}
		ok, _ := s.Scene.TransferItem(ctx, from, to, item).Await(ctx)
		s.note("transfer")
		return ok
	})
}

// staged is a battle Pokemon whose scene is replaced by a recordingScene.
type staged struct {
	*battle.Pokemon
	scene *recordingScene
}

func (p staged) Scene() ability.Scene { return p.scene }

// stage starts a battle between player and enemy and wraps player with a recording scene.
//
// Postcondition: Both Pokemon are on the field and the start-up log is not recorded.
func stage(t testing.TB, e *ability.Engine, player, enemy *battle.Pokemon) staged {
	t.Helper()
	b := bind(t, e, player, enemy)
	require.NoError(t, b.Start(context.Background()))
	return staged{Pokemon: player, scene: &recordingScene{Scene: b}}
}

func TestPostSummon_RunsAfterPostBattleInitOfSameAbility(t *testing.T) {
	e := defaultEngine(t)
	zygarde := staged{Pokemon: pokemon("Zygarde", battle.WithAbility(ability.PowerConstruct))}
	zygarde.scene = &recordingScene{Scene: bind(t, e, zygarde.Pokemon, pokemon("Foe"))}
	ctx := context.Background()

	require.NoError(t, e.PostBattleInit(ctx, zygarde))
	require.True(t, zygarde.SummonData().HasApplied(ability.PowerConstruct))
	require.Equal(t, 1, zygarde.scene.count("ability.FormChange"))

	require.NoError(t, e.PostSummon(ctx, zygarde))
	assert.Equal(t, 2, zygarde.scene.count("ability.FormChange"), "battle-start bookkeeping must not block the summon trigger")
	assert.True(t, zygarde.SummonData().HasPostSummoned(ability.PowerConstruct))
}

func TestPostSummon_RepeatedCallQueuesNothing(t *testing.T) {
	e := defaultEngine(t)
	gyarados := stage(t, e, pokemon("Gyarados", battle.WithAbility(ability.Intimidate)), pokemon("Foe"))
	ctx := context.Background()

	gyarados.SummonData().Reset()
	require.NoError(t, e.PostSummon(ctx, gyarados))
	first := gyarados.scene.entries()
	require.NotEmpty(t, first)

	require.NoError(t, e.PostSummon(ctx, gyarados))
	assert.Equal(t, first, gyarados.scene.entries())

	gyarados.SummonData().Reset()
	require.NoError(t, e.PostSummon(ctx, gyarados))
	assert.Len(t, gyarados.scene.entries(), 2*len(first), "a new summon triggers again")
}

func TestDispatch_IndicatorPrecedesQueuedActions(t *testing.T) {
	e := defaultEngine(t)
	gyarados := stage(t, e, pokemon("Gyarados", battle.WithAbility(ability.Intimidate)), pokemon("Foe"))
	gyarados.SummonData().Reset()

	require.NoError(t, e.PostSummon(context.Background(), gyarados))
	assert.Equal(t, []string{"ability.ShowAbility", "ability.StatStageChange"}, gyarados.scene.entries())
}

func TestDispatch_SimulatedQueuesNothing(t *testing.T) {
	e := defaultEngine(t)
	vaporeon := stage(t, e, pokemon("Vaporeon", battle.WithAbility(ability.WaterAbsorb), battle.WithHP(60)), pokemon("Squirtle"))
	waterGun, ok := dex.MustLoadMoves().Get("water_gun")
	require.True(t, ok)
	attacker := vaporeon.Opponents()[0]
	ctx := context.Background()

	d := ability.NewDefendArgs(attacker, waterGun)
	d.Simulated = true
	require.NoError(t, e.PreDefend(ctx, vaporeon, d))
	assert.Zero(t, d.TypeMultiplier)
	assert.Empty(t, vaporeon.scene.entries())

	require.NoError(t, e.PreDefend(ctx, vaporeon, ability.NewDefendArgs(attacker, waterGun)))
	assert.Equal(t, []string{"ability.ShowAbility", "ability.Heal"}, vaporeon.scene.entries())
}

func TestTypeImmunityHeal_SkipsHealAtFullHP(t *testing.T) {
	e := defaultEngine(t)
	vaporeon := stage(t, e, pokemon("Vaporeon", battle.WithAbility(ability.WaterAbsorb)), pokemon("Squirtle"))
	waterGun, ok := dex.MustLoadMoves().Get("water_gun")
	require.True(t, ok)

	d := ability.NewDefendArgs(vaporeon.Opponents()[0], waterGun)
	require.NoError(t, e.PreDefend(context.Background(), vaporeon, d))
	assert.Zero(t, d.TypeMultiplier)
	assert.Equal(t, []string{"ability.ShowAbility"}, vaporeon.scene.entries())
}

func TestPostAttack_LaterAttributeWaitsForItemTransfer(t *testing.T) {
	thief := ability.New(ability.CustomBase+41, 9).
		Named("Cinder Fingers", "").
		Attrs(
			ability.NewPostAttackStealHeldItem(nil),
			ability.NewPostAttackApplyStatusEffect(false, 100, dex.StatusBurn),
		).
		Build()
	reg, err := ability.BuildRegistry(ability.Options{Custom: []*ability.Record{thief}})
	require.NoError(t, err)
	e := ability.NewEngine(reg, zap.NewNop())

	leftovers := dex.Item{ID: "leftovers", Name: "Leftovers", Transferable: true}
	victim := pokemon("Snorlax", battle.WithItems(leftovers))
	user := stage(t, e, pokemon("Sneasel", battle.WithAbility(thief.ID())), victim)
	user.scene.release = make(chan struct{})
	time.AfterFunc(20*time.Millisecond, func() { close(user.scene.release) })

	tackle, ok := dex.MustLoadMoves().Get("tackle")
	require.True(t, ok)
	strike := ability.StrikeArgs{Defender: victim, Move: tackle, Result: dex.HitEffective}
	require.NoError(t, e.PostAttack(context.Background(), user, strike))

	assert.Equal(t, []string{
		"transfer",
		"ability.ShowAbility",
		"ability.Message",
		"ability.ShowAbility",
		"ability.SetStatus",
	}, user.scene.entries())
	assert.True(t, user.HasItem("leftovers"))
	assert.False(t, victim.HasItem("leftovers"))
}

func TestPostAttack_CancelledWhileAwaitingTransfer(t *testing.T) {
	thief := ability.New(ability.CustomBase+42, 9).
		Named("Cinder Fingers", "").
		Attrs(
			ability.NewPostAttackStealHeldItem(nil),
			ability.NewPostAttackApplyStatusEffect(false, 100, dex.StatusBurn),
		).
		Build()
	reg, err := ability.BuildRegistry(ability.Options{Custom: []*ability.Record{thief}})
	require.NoError(t, err)
	e := ability.NewEngine(reg, zap.NewNop())

	victim := pokemon("Snorlax", battle.WithItems(dex.Item{ID: "leftovers", Name: "Leftovers", Transferable: true}))
	user := stage(t, e, pokemon("Sneasel", battle.WithAbility(thief.ID())), victim)
	user.scene.release = make(chan struct{})
	t.Cleanup(func() { close(user.scene.release) })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	tackle, ok := dex.MustLoadMoves().Get("tackle")
	require.True(t, ok)
	err = e.PostAttack(ctx, user, ability.StrikeArgs{Defender: victim, Move: tackle, Result: dex.HitEffective})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, user.scene.entries(), "nothing after the pending transfer runs")
	assert.True(t, victim.HasItem("leftovers"))
	assert.False(t, user.BattleData().HasApplied(thief.ID()))
}

func TestProperty_AppliedSetRecordsOnceEveryApplicationAnnounces(t *testing.T) {
	e := defaultEngine(t)
	tackle, ok := dex.MustLoadMoves().Get("tackle")
	require.True(t, ok)

	rapid.Check(t, func(rt *rapid.T) {
		hits := rapid.IntRange(1, 5).Draw(rt, "hits")
		skarmory := stage(t, e, pokemon("Skarmory", battle.WithAbility(ability.WeakArmor)), pokemon("Foe"))
		attacker := skarmory.Opponents()[0]

		for range hits {
			require.NoError(rt, e.PostDefend(context.Background(), skarmory, attacker, tackle, dex.HitEffective))
		}

		count := func(ids []ability.ID) int {
			n := 0
			for _, id := range ids {
				if id == ability.WeakArmor {
					n++
				}
			}
			return n
		}
		assert.Equal(rt, 1, count(skarmory.SummonData().AbilitiesApplied))
		assert.Equal(rt, 1, count(skarmory.BattleData().AbilitiesApplied))
		assert.True(rt, skarmory.BattleData().AbilityRevealed)
		assert.Equal(rt, 2*hits, skarmory.scene.count("ability.StatStageChange"))
		assert.Equal(rt, 2*hits, skarmory.scene.count("ability.ShowAbility"))
	})
}
