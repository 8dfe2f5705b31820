// Package editor defines the native line-editing collaborator consumed by the
// binding. The hard parts, terminal control, key binding, redisplay, history
// persistence, live behind the Editor interface; the production implementation
// wraps chzyer/readline.
package editor

import (
	"errors"
	"unicode"
)

// ErrInterrupted is returned by Readline when the pending read was abandoned,
// either by a Ctrl-C keypress or because Interrupt was called.
var ErrInterrupted = errors.New("read interrupted")

// CompleteFunc supplies completion candidates for the word prefix the user
// has typed. Registered once per read via SetCompleter.
type CompleteFunc func(prefix string) []string

// Editor is the line-editing collaborator. Implementations are not required
// to be safe for concurrent reads; the session layer guarantees at most one
// blocking read at a time. Interrupt, DiscardLine and CleanupAfterSignal may
// be called from another goroutine while a read is in flight.
type Editor interface {
	// Readline performs one blocking prompted read. It returns the entered
	// line, io.EOF at end of input, or ErrInterrupted.
	Readline(prompt string) (string, error)

	// SetCompleter registers the completion source trampoline for
	// subsequent reads. A nil function disables completion.
	SetCompleter(complete CompleteFunc)

	// Interrupt unwinds a blocking Readline call, if one is in flight.
	Interrupt()

	// DiscardLine drops any partially entered line state.
	DiscardLine()

	// CleanupAfterSignal restores the terminal after an interrupt.
	CleanupAfterSignal()

	// AppendHistory appends a line to the editor's history list as-is;
	// empty lines are accepted.
	AppendHistory(line string) error

	// Name returns the identifying application name, empty by default.
	Name() string

	// SetName replaces the identifying application name. Storage failure
	// surfaces as an out-of-memory error.
	SetName(name string) error

	// AtEOF reports whether the underlying input stream has ended.
	AtEOF() bool

	// Close releases the editor's resources.
	Close() error
}

// wordPrefix extracts the word being completed: the run of non-space
// characters immediately before the cursor.
func wordPrefix(line []rune, pos int) string {
	if pos > len(line) {
		pos = len(line)
	}
	start := pos
	for start > 0 && !unicode.IsSpace(line[start-1]) {
		start--
	}
	return string(line[start:pos])
}
