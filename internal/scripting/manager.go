package scripting

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// ErrNoHook is returned by EvalPredicate when the named global is not a Lua function.
var ErrNoHook = errors.New("scripting: hook not defined")

// Manager owns one sandboxed LState and exposes hook dispatch.
//
// An LState is single-threaded, so every call holds mu for its whole
// duration. Manager is safe for concurrent use by any number of battles.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager; hooks resolve to nothing until Load succeeds.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{roller: roller, logger: logger}
}

// Load creates a fresh sandboxed VM, registers the engine.* modules, then
// executes every *.lua file under scriptDir, subdirectories included, in
// lexicographic path order. A successful Load replaces the previous VM.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: The new VM is installed; on error the previous VM is kept.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	var luaFiles []string
	err := filepath.WalkDir(scriptDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".lua" {
			luaFiles = append(luaFiles, path)
		}
		return nil
	})
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	L.RemoveContext()

	m.mu.Lock()
	old := m.state
	m.state = L
	m.instLimit = instLimit
	m.mu.Unlock()
	if old != nil {
		old.Close()
	}
	m.logger.Info("scripting: scripts loaded",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// Close releases the VM. Later calls behave as if nothing was loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}

// call runs hook under a fresh instruction budget and returns its first result.
//
// Precondition: m.mu is held.
func (m *Manager) call(hook string, args ...lua.LValue) (lua.LValue, error) {
	L := m.state
	if L == nil {
		return lua.LNil, fmt.Errorf("%w: %q (no scripts loaded)", ErrNoHook, hook)
	}
	fn, ok := L.GetGlobal(hook).(*lua.LFunction)
	if !ok {
		return lua.LNil, fmt.Errorf("%w: %q", ErrNoHook, hook)
	}
	release := withBudget(L, m.instLimit)
	defer release()
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		return lua.LNil, fmt.Errorf("scripting: hook %q: %w", hook, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the
// hook is not defined or nothing is loaded. Lua runtime errors are logged at
// Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret, err := m.call(hook, args...)
	switch {
	case errors.Is(err, ErrNoHook):
		m.logger.Debug("scripting: hook not defined", zap.String("hook", hook))
		return lua.LNil, nil
	case err != nil:
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}
	return ret, nil
}

// EvalPredicate calls hook with facts converted to a Lua table and reports
// the truthiness of its first result.
//
// Postcondition: Returns an error wrapping ErrNoHook when hook is undefined,
// or the Lua error when the hook fails or exceeds its instruction budget.
func (m *Manager) EvalPredicate(hook string, facts map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var arg lua.LValue = lua.LNil
	if m.state != nil {
		arg = ToLua(m.state, facts)
	}
	ret, err := m.call(hook, arg)
	if err != nil {
		return false, err
	}
	return lua.LVAsBool(ret), nil
}

// ToLua converts a Go value built from maps, slices and scalars into a Lua value.
// Unsupported values are rendered with fmt.Sprint.
func ToLua(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return x
	case bool:
		return lua.LBool(x)
	case string:
		return lua.LString(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case []string:
		t := L.CreateTable(len(x), 0)
		for _, s := range x {
			t.Append(lua.LString(s))
		}
		return t
	case []any:
		t := L.CreateTable(len(x), 0)
		for _, e := range x {
			t.Append(ToLua(L, e))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(x))
		for k, e := range x {
			t.RawSetString(k, ToLua(L, e))
		}
		return t
	case fmt.Stringer:
		return lua.LString(x.String())
	default:
		return lua.LString(fmt.Sprint(x))
	}
}
