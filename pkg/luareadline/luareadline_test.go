package luareadline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/motoprogger/lua-readline/internal/editor"
	"github.com/motoprogger/lua-readline/internal/rerrors"
	"github.com/motoprogger/lua-readline/internal/session"
)

func newState(t *testing.T, ed editor.Editor, opts ...session.Option) *lua.LState {
	t.Helper()
	L := lua.NewState()
	t.Cleanup(L.Close)
	New(session.New(ed, opts...)).Preload(L)
	return L
}

func TestReadlineReturnsLine(t *testing.T) {
	ed := editor.NewScripted("hello world")
	L := newState(t, ed)

	err := L.DoString(`
		local rl = require("readline")
		result = rl.readline("> ")
	`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", lua.LVAsString(L.GetGlobal("result")))
	assert.Equal(t, []string{"> "}, ed.Prompts)
}

func TestReadlineNilOnEOF(t *testing.T) {
	L := newState(t, editor.NewScripted())

	err := L.DoString(`
		local rl = require("readline")
		result = rl.readline("> ")
		gotnil = (result == nil)
	`)
	require.NoError(t, err)
	assert.Equal(t, lua.LTrue, L.GetGlobal("gotnil"))
}

func TestReadlineTableCompletion(t *testing.T) {
	ed := editor.NewScripted("line")
	ed.CompleteRequests = []string{"pr"}
	L := newState(t, ed)

	err := L.DoString(`
		local rl = require("readline")
		rl.readline("> ", {"print", "pairs", "prompt", 42, "type"})
	`)
	require.NoError(t, err)
	require.Len(t, ed.Completions, 1)
	assert.Equal(t, []string{"print", "prompt"}, ed.Completions[0])
}

func TestReadlineGeneratorCompletion(t *testing.T) {
	ed := editor.NewScripted("line")
	ed.CompleteRequests = []string{"fo"}
	L := newState(t, ed)

	err := L.DoString(`
		local rl = require("readline")
		local function generator(prefix)
			seen_prefix = prefix
			local values = {"foo", "forty"}
			local i = 0
			return function()
				i = i + 1
				return values[i]
			end
		end
		rl.readline("> ", generator)
	`)
	require.NoError(t, err)
	assert.Equal(t, "fo", lua.LVAsString(L.GetGlobal("seen_prefix")))
	require.Len(t, ed.Completions, 1)
	assert.Equal(t, []string{"foo", "forty"}, ed.Completions[0])
}

func TestReadlineGeneratorReturningNilMeansNoCandidates(t *testing.T) {
	ed := editor.NewScripted("line")
	ed.CompleteRequests = []string{"x"}
	L := newState(t, ed)

	err := L.DoString(`
		local rl = require("readline")
		rl.readline("> ", function(prefix) return nil end)
	`)
	require.NoError(t, err)
	require.Len(t, ed.Completions, 1)
	assert.Empty(t, ed.Completions[0])
}

func TestReadlineGeneratorErrorDoesNotAbortRead(t *testing.T) {
	ed := editor.NewScripted("survived")
	ed.CompleteRequests = []string{"x"}

	var seen []error
	L := newState(t, ed, session.WithCompletionErrorHandler(func(err error) {
		seen = append(seen, err)
	}))

	err := L.DoString(`
		local rl = require("readline")
		result = rl.readline("> ", function(prefix) error("generator exploded") end)
	`)
	require.NoError(t, err)
	assert.Equal(t, "survived", lua.LVAsString(L.GetGlobal("result")))
	require.Len(t, seen, 1)
	assert.Contains(t, seen[0].Error(), "generator exploded")
}

func TestAddHistory(t *testing.T) {
	ed := editor.NewScripted()
	L := newState(t, ed)

	err := L.DoString(`
		local rl = require("readline")
		rl.addhistory("foo")
		rl.addhistory("")
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", ""}, ed.History)
}

func TestNameAccessors(t *testing.T) {
	ed := editor.NewScripted()
	L := newState(t, ed)

	err := L.DoString(`
		local rl = require("readline")
		default_name = rl.getname()
		rl.setname("repl")
		first = rl.getname()
		rl.setname("other")
		second = rl.getname()
	`)
	require.NoError(t, err)
	assert.Equal(t, "", lua.LVAsString(L.GetGlobal("default_name")))
	assert.Equal(t, "repl", lua.LVAsString(L.GetGlobal("first")))
	assert.Equal(t, "other", lua.LVAsString(L.GetGlobal("second")))
	assert.Equal(t, "other", ed.Name())
}

func TestSetNameStorageFailureRaises(t *testing.T) {
	ed := editor.NewScripted()
	ed.SetNameErr = rerrors.NewOutOfMemoryError("name storage failed", nil)
	L := newState(t, ed)

	err := L.DoString(`
		local rl = require("readline")
		rl.setname("repl")
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name storage failed")
	assert.Equal(t, "", ed.Name())
}

func TestSetNameRequiresString(t *testing.T) {
	L := newState(t, editor.NewScripted())

	err := L.DoString(`
		local rl = require("readline")
		rl.setname(nil)
	`)
	require.Error(t, err)
}
