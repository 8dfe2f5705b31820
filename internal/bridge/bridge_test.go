package bridge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoprogger/lua-readline/internal/rerrors"
)

func drain(g *Generation) []string {
	var out []string
	for {
		cand, ok := g.Next()
		if !ok {
			return out
		}
		out = append(out, cand)
	}
}

func TestStaticFiltersInOrder(t *testing.T) {
	tests := []struct {
		name   string
		items  []string
		prefix string
		want   []string
	}{
		{
			name:   "subsequence matching prefix",
			items:  []string{"print", "pairs", "ipairs", "pcall", "type"},
			prefix: "p",
			want:   []string{"print", "pairs", "pcall"},
		},
		{
			name:   "empty prefix matches everything",
			items:  []string{"b", "a"},
			prefix: "",
			want:   []string{"b", "a"},
		},
		{
			name:   "no matches",
			items:  []string{"print", "pairs"},
			prefix: "z",
			want:   nil,
		},
		{
			name:   "case sensitive",
			items:  []string{"Print", "print"},
			prefix: "pr",
			want:   []string{"print"},
		},
		{
			name:   "prefix longer than candidate",
			items:  []string{"pr"},
			prefix: "print",
			want:   nil,
		},
		{
			name:   "empty collection",
			items:  nil,
			prefix: "p",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Begin(Static(tt.items), tt.prefix)
			assert.Equal(t, tt.want, drain(g))
			assert.NoError(t, g.Err())
		})
	}
}

func TestStaticCursorSurvivesPulls(t *testing.T) {
	g := Begin(Static([]string{"aa", "bb", "ab", "ac"}), "a")

	first, ok := g.Next()
	require.True(t, ok)
	second, ok := g.Next()
	require.True(t, ok)
	third, ok := g.Next()
	require.True(t, ok)
	_, ok = g.Next()
	require.False(t, ok)

	assert.Equal(t, []string{"aa", "ab", "ac"}, []string{first, second, third})
}

func TestCallableYieldsUntilNil(t *testing.T) {
	calls := 0
	gen := func(prefix string) (Iterator, error) {
		assert.Equal(t, "fo", prefix)
		values := []string{"a", "b"}
		return func() (string, bool, error) {
			calls++
			if len(values) == 0 {
				return "", false, nil
			}
			v := values[0]
			values = values[1:]
			return v, true, nil
		}, nil
	}

	g := Begin(Callable(gen), "fo")
	assert.Equal(t, []string{"a", "b"}, drain(g))
	assert.Equal(t, 3, calls)

	// Exhaustion latches: further pulls never reach the host again.
	_, ok := g.Next()
	assert.False(t, ok)
	_, ok = g.Next()
	assert.False(t, ok)
	assert.Equal(t, 3, calls)
	assert.NoError(t, g.Err())
}

func TestCallableOutputNotRefiltered(t *testing.T) {
	gen := func(string) (Iterator, error) {
		done := false
		return func() (string, bool, error) {
			if done {
				return "", false, nil
			}
			done = true
			return "unrelated", true, nil
		}, nil
	}

	g := Begin(Callable(gen), "xyz")
	assert.Equal(t, []string{"unrelated"}, drain(g))
}

func TestCallableInvokedOncePerGeneration(t *testing.T) {
	genCalls := 0
	gen := func(string) (Iterator, error) {
		genCalls++
		return func() (string, bool, error) { return "", false, nil }, nil
	}
	src := Callable(gen)

	drain(Begin(src, "a"))
	drain(Begin(src, "b"))

	assert.Equal(t, 2, genCalls)
}

func TestCallableNilIteratorIsExhausted(t *testing.T) {
	g := Begin(Callable(func(string) (Iterator, error) { return nil, nil }), "x")
	_, ok := g.Next()
	assert.False(t, ok)
	assert.NoError(t, g.Err())
}

func TestAbsentExhaustedWithZeroHostCalls(t *testing.T) {
	g := Begin(Absent(), "pre")
	_, ok := g.Next()
	assert.False(t, ok)
	assert.NoError(t, g.Err())

	// Zero value of Source behaves the same.
	g = Begin(Source{}, "pre")
	_, ok = g.Next()
	assert.False(t, ok)

	// A nil generator callable degrades to the absent source.
	g = Begin(Callable(nil), "pre")
	_, ok = g.Next()
	assert.False(t, ok)
}

func TestGeneratorErrorIsTerminal(t *testing.T) {
	gen := func(string) (Iterator, error) {
		return nil, fmt.Errorf("boom")
	}

	g := Begin(Callable(gen), "pre")
	_, ok := g.Next()
	assert.False(t, ok)

	err := g.Err()
	require.Error(t, err)
	var cbErr *rerrors.CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.Equal(t, "pre", cbErr.Prefix)
	assert.Contains(t, err.Error(), "boom")
}

func TestIteratorErrorTerminatesGeneration(t *testing.T) {
	iterCalls := 0
	gen := func(string) (Iterator, error) {
		return func() (string, bool, error) {
			iterCalls++
			if iterCalls == 1 {
				return "first", true, nil
			}
			return "", false, fmt.Errorf("host failure")
		}, nil
	}

	g := Begin(Callable(gen), "f")
	cand, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, "first", cand)

	_, ok = g.Next()
	assert.False(t, ok)
	assert.Error(t, g.Err())

	// The iterator is not called again after the error.
	_, ok = g.Next()
	assert.False(t, ok)
	assert.Equal(t, 2, iterCalls)
}

func TestBeginReplacesGeneration(t *testing.T) {
	src := Static([]string{"alpha", "beta"})

	g := Begin(src, "a")
	cand, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, "alpha", cand)

	// A fresh prefix restarts generation from the top of the collection.
	g = Begin(src, "b")
	cand, ok = g.Next()
	require.True(t, ok)
	assert.Equal(t, "beta", cand)
}
