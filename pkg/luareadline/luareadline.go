// Package luareadline exposes the line-editing binding to embedded Lua code
// as a gopher-lua module.
//
// The module mirrors the classic C binding surface:
//
//	local rl = require("readline")
//	local line = rl.readline("> ", generator)  -- generator optional
//	rl.addhistory(line)
//	rl.setname("myapp")
//	local name = rl.getname()
//
// The generator argument may be a function (called once per word prefix, must
// return an iterator function yielding candidate strings), a table of
// candidate strings (filtered to the typed prefix), or nil for no completion.
// readline returns the entered line, or nil on end of input or interruption.
package luareadline

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/motoprogger/lua-readline/internal/bridge"
	"github.com/motoprogger/lua-readline/internal/session"
)

// ModuleName is the name the module is preloaded under.
const ModuleName = "readline"

// Module binds one session to one Lua state. Like the session underneath it,
// it is not reentrant: calling readline from inside a completion generator
// raises an error in the generator rather than nesting reads.
type Module struct {
	s *session.Session
}

// New creates the Lua module around a session.
func New(s *session.Session) *Module {
	return &Module{s: s}
}

// Preload registers the module so Lua code can require("readline").
func (m *Module) Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, m.Loader)
}

// Loader builds the module table. Usable directly with PreloadModule.
func (m *Module) Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"readline":   m.readline,
		"addhistory": m.addHistory,
		"getname":    m.getName,
		"setname":    m.setName,
	})
	L.Push(mod)
	return 1
}

// readline performs one prompted read. Returns the line, or nothing on end
// of input or interruption.
func (m *Module) readline(L *lua.LState) int {
	prompt := L.OptString(1, "")
	src := sourceFrom(L, L.Get(2))

	line, outcome, err := m.s.ReadLine(prompt, src)
	if err != nil {
		L.RaiseError("readline: %v", err)
		return 0
	}
	if outcome != session.OutcomeLine {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(line))
	return 1
}

func (m *Module) addHistory(L *lua.LState) int {
	line := L.CheckString(1)
	if err := m.s.AppendHistory(line); err != nil {
		L.RaiseError("addhistory: %v", err)
	}
	return 0
}

func (m *Module) getName(L *lua.LState) int {
	L.Push(lua.LString(m.s.Name()))
	return 1
}

func (m *Module) setName(L *lua.LState) int {
	name := L.CheckString(1)
	if err := m.s.SetName(name); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// sourceFrom resolves the Lua completion argument into a bridge source.
func sourceFrom(L *lua.LState, v lua.LValue) bridge.Source {
	switch g := v.(type) {
	case *lua.LFunction:
		return bridge.Callable(callableGenerator(L, g))
	case *lua.LTable:
		return bridge.Static(tableItems(g))
	default:
		return bridge.Absent()
	}
}

// callableGenerator adapts a Lua generator function. The function is pcalled
// once per generation with the prefix and must return an iterator function;
// the iterator is pcalled once per candidate until it returns nil. Errors
// raised on the Lua side terminate the generation and surface through the
// generation's error channel.
func callableGenerator(L *lua.LState, fn *lua.LFunction) bridge.GeneratorFunc {
	return func(prefix string) (bridge.Iterator, error) {
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(prefix)); err != nil {
			return nil, err
		}
		ret := L.Get(-1)
		L.Pop(1)

		iter, ok := ret.(*lua.LFunction)
		if !ok {
			// nil (or anything uncallable) means no candidates.
			return nil, nil
		}

		return func() (string, bool, error) {
			if err := L.CallByParam(lua.P{Fn: iter, NRet: 1, Protect: true}); err != nil {
				return "", false, err
			}
			rv := L.Get(-1)
			L.Pop(1)
			if rv == lua.LNil {
				return "", false, nil
			}
			if !lua.LVCanConvToString(rv) {
				// Not a string-like candidate; treat as exhaustion.
				return "", false, nil
			}
			return lua.LVAsString(rv), true, nil
		}, nil
	}
}

// tableItems snapshots the array part of a table the way ipairs would walk
// it: integer keys from 1 up to the first nil.
func tableItems(tbl *lua.LTable) []string {
	var items []string
	for i := 1; ; i++ {
		v := tbl.RawGetInt(i)
		if v == lua.LNil {
			break
		}
		if lua.LVCanConvToString(v) {
			items = append(items, lua.LVAsString(v))
		}
	}
	return items
}
