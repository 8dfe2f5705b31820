package editor

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordPrefix(t *testing.T) {
	tests := []struct {
		name string
		line string
		pos  int
		want string
	}{
		{name: "single word", line: "pri", pos: 3, want: "pri"},
		{name: "second word", line: "local pr", pos: 8, want: "pr"},
		{name: "cursor mid-line", line: "print x", pos: 3, want: "pri"},
		{name: "after space", line: "print ", pos: 6, want: ""},
		{name: "empty line", line: "", pos: 0, want: ""},
		{name: "tab separated", line: "a\tbc", pos: 4, want: "bc"},
		{name: "pos beyond line", line: "ab", pos: 10, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordPrefix([]rune(tt.line), tt.pos))
		})
	}
}

func TestCompleterAdapterSplicesSuffixes(t *testing.T) {
	le := New(Config{})
	le.SetCompleter(func(prefix string) []string {
		assert.Equal(t, "pr", prefix)
		return []string{"print", "pretty", "unrelated"}
	})

	c := &completer{le: le}
	out, length := c.Do([]rune("x = pr"), 6)

	require.Len(t, out, 2)
	assert.Equal(t, "int", string(out[0]))
	assert.Equal(t, "etty", string(out[1]))
	assert.Equal(t, 2, length)
}

func TestCompleterAdapterMultibytePrefix(t *testing.T) {
	le := New(Config{})
	le.SetCompleter(func(prefix string) []string {
		assert.Equal(t, "é", prefix)
		return []string{"état", "élan"}
	})

	c := &completer{le: le}
	line := []rune("é")
	out, length := c.Do(line, len(line))

	require.Len(t, out, 2)
	assert.Equal(t, "tat", string(out[0]))
	assert.Equal(t, "lan", string(out[1]))
	// The offset counts runes, not bytes; exceeding the typed rune count
	// makes the terminal layer slice out of range during redraw.
	assert.Equal(t, 1, length)
	assert.LessOrEqual(t, length, len(line))
}

func TestCompleterAdapterMultibyteMidLine(t *testing.T) {
	le := New(Config{})
	le.SetCompleter(func(prefix string) []string {
		return []string{"añadir"}
	})

	c := &completer{le: le}
	line := []rune("local añ")
	out, length := c.Do(line, len(line))

	require.Len(t, out, 1)
	assert.Equal(t, "adir", string(out[0]))
	assert.Equal(t, 2, length)
}

func TestCompleterAdapterNoSource(t *testing.T) {
	le := New(Config{})
	c := &completer{le: le}

	out, length := c.Do([]rune("pr"), 2)
	assert.Nil(t, out)
	assert.Equal(t, 0, length)
}

func TestScriptedReplaysLinesThenEOF(t *testing.T) {
	s := NewScripted("one", "two")

	line, err := s.Readline("> ")
	require.NoError(t, err)
	assert.Equal(t, "one", line)
	assert.False(t, s.AtEOF())

	line, err = s.Readline("> ")
	require.NoError(t, err)
	assert.Equal(t, "two", line)

	_, err = s.Readline("> ")
	assert.Equal(t, io.EOF, err)
	assert.True(t, s.AtEOF())
	assert.Equal(t, []string{"> ", "> ", "> "}, s.Prompts)
}

func TestScriptedBlockedReadUnwindsOnInterrupt(t *testing.T) {
	s := NewScripted("never delivered")
	s.BlockNextRead()

	errc := make(chan error, 1)
	go func() {
		_, err := s.Readline("> ")
		errc <- err
	}()

	s.Interrupt()
	assert.Equal(t, ErrInterrupted, <-errc)
}

func TestScriptedNameRoundTrip(t *testing.T) {
	s := NewScripted()
	assert.Equal(t, "", s.Name())

	require.NoError(t, s.SetName("repl"))
	assert.Equal(t, "repl", s.Name())

	require.NoError(t, s.SetName("lua"))
	assert.Equal(t, "lua", s.Name())
}

func TestScriptedHistory(t *testing.T) {
	s := NewScripted()
	require.NoError(t, s.AppendHistory("foo"))
	require.NoError(t, s.AppendHistory(""))
	assert.Equal(t, []string{"foo", ""}, s.History)
}
