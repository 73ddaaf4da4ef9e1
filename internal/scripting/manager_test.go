package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(dice.NewSeededSource(1), logger)
	return scripting.NewManager(roller, logger), logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func loadScript(t testing.TB, mgr *scripting.Manager, src string) {
	t.Helper()
	require.NoError(t, mgr.Load(writeTempLua(t, "test.lua", src), 0))
}

func TestManager_Load_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `
		function test_hook(a, b)
			return a + b
		end
	`)
	ret, err := mgr.CallHook("test_hook", lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `-- no functions`)
	ret, err := mgr.CallHook("nonexistent_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_NothingLoaded_ReturnsNil(t *testing.T) {
	mgr, _ := newTestManager(t)
	ret, err := mgr.CallHook("some_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	loadScript(t, mgr, `
		function bad_hook()
			error("intentional error")
		end
	`)
	ret, err := mgr.CallHook("bad_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len(), "expected Warn log for Lua runtime error")
}

func TestManager_Load_EmptyDir_NoError(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(t.TempDir(), 0))
	ret, err := mgr.CallHook("anything")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_Load_InvalidLua_KeepsPreviousVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `function still_here() return 1 end`)
	err := mgr.Load(writeTempLua(t, "bad.lua", `this is not valid lua @@@@`), 0)
	assert.Error(t, err)
	ret, err := mgr.CallHook("still_here")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), ret)
}

func TestManager_Load_MissingDir_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.Load(filepath.Join(t.TempDir(), "absent"), 0))
}

func TestManager_Load_MultipleFiles_OrderedByName(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`base_val = 10`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function get_val() return base_val end
	`), 0644))
	require.NoError(t, mgr.Load(dir, 0))
	ret, err := mgr.CallHook("get_val")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(10), ret)
}

// TestManager_InstructionBudget_IsPerCall verifies that a hook can run many
// times even when the total opcodes across calls exceed the limit.
func TestManager_InstructionBudget_IsPerCall(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "loop.lua", `
		function small_loop()
			local n = 0
			for i = 1, 50 do n = n + i end
			return n
		end
		function forever()
			while true do end
		end
	`)
	require.NoError(t, mgr.Load(dir, 1000))
	for i := 0; i < 100; i++ {
		ret, err := mgr.CallHook("small_loop")
		require.NoError(t, err)
		require.Equal(t, lua.LNumber(1275), ret)
	}
	_, err := mgr.EvalPredicate("forever", nil)
	assert.Error(t, err)
	ret, err := mgr.CallHook("small_loop")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1275), ret, "VM must stay usable after a budget overrun")
}

func TestManager_EvalPredicate_ReadsFacts(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `
		function low_hp_fire(f)
			local fire = false
			for _, t in ipairs(f.types) do
				if t == "fire" then fire = true end
			end
			return fire and f.hp_ratio <= 0.5 and f.weather == "sunny"
		end
	`)
	facts := map[string]any{
		"hp_ratio": 0.4,
		"types":    []string{"fire", "flying"},
		"weather":  "sunny",
	}
	ok, err := mgr.EvalPredicate("low_hp_fire", facts)
	require.NoError(t, err)
	assert.True(t, ok)

	facts["hp_ratio"] = 0.9
	ok, err = mgr.EvalPredicate("low_hp_fire", facts)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_EvalPredicate_UndefinedHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `not_a_function = 3`)
	_, err := mgr.EvalPredicate("not_a_function", nil)
	assert.ErrorIs(t, err, scripting.ErrNoHook)
	_, err = mgr.EvalPredicate("missing", nil)
	assert.ErrorIs(t, err, scripting.ErrNoHook)
}

func TestManager_EvalPredicate_Truthiness(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `
		function returns_nil() return nil end
		function returns_zero() return 0 end
		function returns_false() return false end
	`)
	for hook, want := range map[string]bool{"returns_nil": false, "returns_zero": true, "returns_false": false} {
		got, err := mgr.EvalPredicate(hook, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, want, got, hook)
	}
}

func TestProperty_CallHookUnknownHookNeverPanics(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `function known() return true end`)
	rapid.Check(t, func(rt *rapid.T) {
		hook := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "hook")
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		for i := 0; i < count; i++ {
			mgr.CallHook(hook) //nolint:errcheck
		}
	})
}

func TestProperty_EvalPredicateMatchesGo(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `
		function above(f) return f.hp > f.threshold end
	`)
	rapid.Check(t, func(rt *rapid.T) {
		hp := rapid.IntRange(0, 500).Draw(rt, "hp")
		threshold := rapid.IntRange(0, 500).Draw(rt, "threshold")
		got, err := mgr.EvalPredicate("above", map[string]any{"hp": hp, "threshold": threshold})
		require.NoError(rt, err)
		assert.Equal(rt, hp > threshold, got)
	})
}

func TestProperty_CallHookConcurrent_NoRace(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `
		function concurrent_hook(a, b)
			return a + b
		end
	`)

	const goroutines = 10
	const callsEach = 5
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				ret, err := mgr.CallHook("concurrent_hook", lua.LNumber(1), lua.LNumber(2))
				assert.NoError(t, err)
				assert.Equal(t, lua.LNumber(3), ret)
				_, err = mgr.EvalPredicate("concurrent_hook", map[string]any{})
				assert.Error(t, err, "adding a table to nil must fail")
			}
		}()
	}
	wg.Wait()
}

func TestNewManager_PanicsOnNilRoller(t *testing.T) {
	assert.Panics(t, func() {
		scripting.NewManager(nil, zap.NewNop())
	})
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop())
	assert.Panics(t, func() {
		scripting.NewManager(roller, nil)
	})
}

func TestManager_Close_ReleasesVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadScript(t, mgr, `function get_x() return 1 end`)
	mgr.Close()
	ret, err := mgr.CallHook("get_x")
	assert.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}
