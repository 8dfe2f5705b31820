package cli

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func drain(t *testing.T, it func() (string, bool, error)) []string {
	t.Helper()
	var out []string
	for {
		cand, ok, err := it()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, cand)
	}
}

func TestReplCompletions_GlobalsKeywordsAndWords(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	L.SetGlobal("prettyname", lua.LNumber(1))

	gen := replCompletions(L, []string{"probe", "unrelated"})

	it, err := gen("pr")
	require.NoError(t, err)
	got := drain(t, it)

	assert.Contains(t, got, "print")
	assert.Contains(t, got, "prettyname")
	assert.Contains(t, got, "probe")
	assert.NotContains(t, got, "unrelated")
	assert.NotContains(t, got, "pcall")
}

func TestReplCompletions_SortedAndDeduplicated(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	// "print" is both a global and a configured word; it must appear once.
	gen := replCompletions(L, []string{"print"})

	it, err := gen("print")
	require.NoError(t, err)
	got := drain(t, it)

	count := 0
	for _, c := range got {
		if c == "print" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.True(t, sort.StringsAreSorted(got))
}

func TestReplCompletions_KeywordPrefix(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	gen := replCompletions(L, nil)
	it, err := gen("wh")
	require.NoError(t, err)

	assert.Equal(t, []string{"while"}, drain(t, it))
}

func TestLoadChunk_ExpressionEchoes(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	fn, err := loadChunk(L, "1 + 2")
	require.NoError(t, err)
	require.NotNil(t, fn)

	L.Push(fn)
	require.NoError(t, L.PCall(0, lua.MultRet, nil))
	require.Equal(t, 1, L.GetTop())
	assert.Equal(t, "3", L.Get(1).String())
}

func TestLoadChunk_Statement(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	fn, err := loadChunk(L, "x = 42")
	require.NoError(t, err)
	require.NotNil(t, fn)

	L.Push(fn)
	require.NoError(t, L.PCall(0, lua.MultRet, nil))
	L.SetTop(0)
	assert.Equal(t, "42", L.GetGlobal("x").String())
}

func TestIsIncomplete(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tests := []struct {
		name       string
		chunk      string
		incomplete bool
	}{
		{name: "open if", chunk: "if true then", incomplete: true},
		{name: "open function", chunk: "function f()", incomplete: true},
		{name: "dangling operator", chunk: "x = 1 +", incomplete: true},
		{name: "complete statement", chunk: "x = 1", incomplete: false},
		{name: "hard syntax error", chunk: "x = = 1", incomplete: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := loadChunk(L, tt.chunk)
			if fn != nil {
				assert.False(t, tt.incomplete)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.incomplete, isIncomplete(err))
		})
	}
}

func TestSchema_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.json")

	err := Schema(SchemaParams{Output: out})
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "$schema")
	assert.Contains(t, string(content), "history_limit")
}

func TestValidate_ExplicitValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".luareadline.yml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"lua> \"\nlog_level: debug\n"), 0644))

	assert.NoError(t, Validate(ValidateParams{ConfigPath: path}))
}

func TestValidate_ExplicitInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".luareadline.yml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0644))

	assert.Error(t, Validate(ValidateParams{ConfigPath: path}))
}

func TestValidate_MissingExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yml")
	assert.Error(t, Validate(ValidateParams{ConfigPath: path}))
}

func TestRun_MissingScript(t *testing.T) {
	assert.Error(t, Run(RunParams{Path: filepath.Join(t.TempDir(), "nope.lua")}))
	assert.Error(t, Run(RunParams{}))
}
