package editor

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/chzyer/readline"

	"github.com/motoprogger/lua-readline/internal/rerrors"
)

// Config holds the tunable parts of the terminal editor.
type Config struct {
	// Name is the initial identifying application name.
	Name string
	// HistoryFile, when non-empty, enables persistent history.
	HistoryFile string
	// HistoryLimit caps the in-memory history list. Zero means the
	// underlying library default.
	HistoryLimit int
	// Stdin, Stdout and Stderr override the process streams when non-nil.
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// LineEditor is the chzyer/readline-backed Editor. The underlying instance is
// opened lazily and reopened after an interrupt tears it down, so a session
// can keep reading after a cancelled line.
type LineEditor struct {
	mu          sync.Mutex
	cfg         readline.Config
	inst        *readline.Instance
	complete    CompleteFunc
	name        string
	eof         bool
	interrupted bool
}

var _ Editor = (*LineEditor)(nil)

// New builds a terminal-backed line editor. No terminal state is touched
// until the first read.
func New(cfg Config) *LineEditor {
	le := &LineEditor{name: cfg.Name}
	le.cfg = readline.Config{
		HistoryFile:     cfg.HistoryFile,
		HistoryLimit:    cfg.HistoryLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
		AutoComplete:    &completer{le: le},
		Stdin:           cfg.Stdin,
		Stdout:          cfg.Stdout,
		Stderr:          cfg.Stderr,
	}
	return le
}

func (le *LineEditor) instance() (*readline.Instance, error) {
	le.mu.Lock()
	defer le.mu.Unlock()
	if le.inst == nil {
		inst, err := readline.NewEx(&le.cfg)
		if err != nil {
			return nil, rerrors.NewEditorError("open", "failed to open line editor", err)
		}
		le.inst = inst
	}
	return le.inst, nil
}

// Readline performs one blocking prompted read.
func (le *LineEditor) Readline(prompt string) (string, error) {
	inst, err := le.instance()
	if err != nil {
		return "", err
	}
	inst.SetPrompt(prompt)

	line, err := inst.Readline()
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupted
	case errors.Is(err, io.EOF):
		// Close from Interrupt also surfaces as EOF on the pending read;
		// only a genuine end of input marks the stream exhausted.
		if le.takeInterrupted() {
			return "", ErrInterrupted
		}
		le.mu.Lock()
		le.eof = true
		le.mu.Unlock()
		return "", io.EOF
	default:
		if le.takeInterrupted() {
			return "", ErrInterrupted
		}
		return "", rerrors.NewEditorError("readline", "blocking read failed", err)
	}
}

func (le *LineEditor) takeInterrupted() bool {
	le.mu.Lock()
	defer le.mu.Unlock()
	was := le.interrupted
	le.interrupted = false
	return was
}

// SetCompleter registers the completion trampoline for subsequent reads.
func (le *LineEditor) SetCompleter(complete CompleteFunc) {
	le.mu.Lock()
	le.complete = complete
	le.mu.Unlock()
}

func (le *LineEditor) completeFunc() CompleteFunc {
	le.mu.Lock()
	defer le.mu.Unlock()
	return le.complete
}

// Interrupt unwinds a blocking Readline call by tearing the instance down.
// The next read reopens a fresh one.
func (le *LineEditor) Interrupt() {
	le.mu.Lock()
	inst := le.inst
	le.inst = nil
	le.interrupted = true
	le.mu.Unlock()
	if inst != nil {
		_ = inst.Close()
	}
}

// DiscardLine drops the partially entered line from the display.
func (le *LineEditor) DiscardLine() {
	le.mu.Lock()
	inst := le.inst
	le.mu.Unlock()
	if inst != nil {
		inst.Clean()
	}
}

// CleanupAfterSignal restores the terminal to its cooked state.
func (le *LineEditor) CleanupAfterSignal() {
	le.mu.Lock()
	inst := le.inst
	le.inst = nil
	le.mu.Unlock()
	if inst != nil {
		_ = inst.Close()
	}
}

// AppendHistory appends a line to the history list (and file, if configured).
func (le *LineEditor) AppendHistory(line string) error {
	inst, err := le.instance()
	if err != nil {
		return err
	}
	if err := inst.SaveHistory(line); err != nil {
		return rerrors.NewEditorError("addhistory", "failed to append history", err)
	}
	return nil
}

// Name returns the identifying application name.
func (le *LineEditor) Name() string {
	le.mu.Lock()
	defer le.mu.Unlock()
	return le.name
}

// SetName replaces the identifying application name.
func (le *LineEditor) SetName(name string) error {
	le.mu.Lock()
	le.name = name
	le.mu.Unlock()
	return nil
}

// AtEOF reports whether the input stream has ended.
func (le *LineEditor) AtEOF() bool {
	le.mu.Lock()
	defer le.mu.Unlock()
	return le.eof
}

// Close releases the underlying instance.
func (le *LineEditor) Close() error {
	le.mu.Lock()
	inst := le.inst
	le.inst = nil
	le.mu.Unlock()
	if inst != nil {
		return inst.Close()
	}
	return nil
}

// completer adapts the registered CompleteFunc to readline's AutoCompleter.
// It extracts the word prefix at the cursor, asks the trampoline for
// candidates, and hands back the suffixes readline splices after the cursor.
type completer struct {
	le *LineEditor
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	complete := c.le.completeFunc()
	if complete == nil {
		return nil, 0
	}
	prefix := wordPrefix(line, pos)

	var out [][]rune
	for _, cand := range complete(prefix) {
		// The terminal layer can only splice candidates that extend the
		// typed word; anything else has no cursor-relative suffix.
		if !strings.HasPrefix(cand, prefix) {
			continue
		}
		out = append(out, []rune(cand[len(prefix):]))
	}
	// readline consumes the offset as a rune count when it re-slices the
	// typed line, so byte length would overrun on multibyte prefixes.
	return out, utf8.RuneCountInString(prefix)
}
