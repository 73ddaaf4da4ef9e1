// Package scripting provides a sandboxed GopherLua environment for data-defined
// ability predicates. It has no dependency on battle packages; callers pass
// plain fact tables and read back Lua values.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget per hook call when none is configured.
const DefaultInstructionLimit = 100_000

// safeLibs are the only standard libraries predicates can reach.
var safeLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// blockedGlobals are base library functions that load code or touch the host.
var blockedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require"}

// budget is a context that cancels itself once Done has been polled more than
// its opcode allowance. The VM polls Done once per instruction.
type budget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *budget) Done() <-chan struct{} {
	if b.left.Add(-1) < 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// newBudget returns a budget of limit opcodes; limit <= 0 selects DefaultInstructionLimit.
func newBudget(limit int) *budget {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &budget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	return b
}

// withBudget installs a fresh opcode budget on L and returns its release func.
func withBudget(L *lua.LState, limit int) func() {
	b := newBudget(limit)
	L.SetContext(b)
	return func() {
		L.RemoveContext()
		b.cancel()
	}
}

// NewSandboxedState creates an LState exposing only base, table, string and
// math, without the loaders in blockedGlobals. Loading runs under one budget of
// instLimit opcodes; Manager installs a fresh budget for every hook call.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: The caller owns the LState and must Close it.
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range safeLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetContext(newBudget(instLimit))
	return L
}
