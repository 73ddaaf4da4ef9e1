package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/scripting"
)

func sandbox(t testing.TB, limit int) *lua.LState {
	t.Helper()
	L := scripting.NewSandboxedState(limit)
	require.NotNil(t, L)
	t.Cleanup(L.Close)
	return L
}

func TestNewSandboxedState_StripsHostAccess(t *testing.T) {
	L := sandbox(t, 0)
	for _, name := range []string{"os", "io", "debug", "dofile", "loadfile", "load", "loadstring", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "%s must not be reachable from predicates", name)
	}
}

func TestNewSandboxedState_PredicateHelpersAvailable(t *testing.T) {
	L := sandbox(t, 0)
	err := L.DoString(`
		local f = {hp = 37, max_hp = 120, types = {"water", "ground"}}
		assert(math.floor(f.hp * 100 / f.max_hp) == 30)
		assert(string.format("%s/%s", f.types[1], f.types[2]) == "water/ground")
		table.insert(f.types, "ice")
		assert(#f.types == 3)
	`)
	assert.NoError(t, err)
}

func TestNewSandboxedState_LoadingIsBudgeted(t *testing.T) {
	L := sandbox(t, 10)
	assert.Error(t, L.DoString(`while true do end`))
}

// Property: any finite budget stops a runaway script.
func TestProperty_BudgetStopsRunawayScripts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(1, 200).Draw(rt, "limit")
		L := scripting.NewSandboxedState(limit)
		defer L.Close()
		if err := L.DoString(`local n = 0 while true do n = n + 1 end`); err == nil {
			rt.Fatalf("limit %d did not stop the loop", limit)
		}
	})
}
