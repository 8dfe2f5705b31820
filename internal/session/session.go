// Package session implements the interruptible prompted-read state machine on
// top of the line-editor collaborator and the completion bridge.
//
// A Session performs exactly one blocking read at a time. The binding is not
// reentrant: invoking ReadLine while another read is outstanding (for example
// from inside a completion callback) fails fast instead of corrupting the
// process-wide editor and signal state.
package session

import (
	"errors"
	"io"
	"os"
	"sync/atomic"

	"github.com/motoprogger/lua-readline/internal/bridge"
	"github.com/motoprogger/lua-readline/internal/editor"
	"github.com/motoprogger/lua-readline/internal/interrupt"
	"github.com/motoprogger/lua-readline/internal/logger"
	"github.com/motoprogger/lua-readline/internal/rerrors"
)

// Outcome classifies how a read ended.
type Outcome int

const (
	// OutcomeLine means a line of text was entered.
	OutcomeLine Outcome = iota
	// OutcomeEOF means the input stream has no more data.
	OutcomeEOF
	// OutcomeInterrupted means the interrupt signal aborted the read.
	OutcomeInterrupted
)

// ForwardFunc re-dispatches the interrupt signal to the host's previously
// installed handler after the read has been unwound and the signal
// disposition restored. With no forwarder configured the signal is consumed,
// matching the original binding when no prior handler was installed.
type ForwardFunc func(sig os.Signal)

// Session glues the editor, the completion bridge and the interrupt bracket
// together for one host.
type Session struct {
	ed       editor.Editor
	log      *logger.Logger
	sig      os.Signal
	notifier interrupt.Notifier
	forward  ForwardFunc
	onCBErr  func(error)

	// src and gen are written only inside the ReadLine bracket.
	src bridge.Source
	gen *bridge.Generation
}

// current is the process-wide current-session slot. The editor's completion
// trampoline and the signal watcher reach their execution context through the
// Session closure, but the slot is what enforces the one-read-at-a-time
// invariant across all sessions in the process.
var current atomic.Pointer[Session]

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for forwarded completion errors.
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithSignal overrides the interrupt signal, os.Interrupt by default.
func WithSignal(sig os.Signal) Option {
	return func(s *Session) { s.sig = sig }
}

// WithNotifier overrides the signal registration mechanism, used by tests.
func WithNotifier(n interrupt.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithForward installs the prior-handler forwarder invoked after an
// interrupted read.
func WithForward(f ForwardFunc) Option {
	return func(s *Session) { s.forward = f }
}

// WithCompletionErrorHandler overrides where host completion-callable errors
// are forwarded. The default logs them as warnings.
func WithCompletionErrorHandler(f func(error)) Option {
	return func(s *Session) { s.onCBErr = f }
}

// New creates a session around the given editor.
func New(ed editor.Editor, opts ...Option) *Session {
	s := &Session{
		ed:  ed,
		sig: os.Interrupt,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.New("warn", os.Stderr)
	}
	if s.onCBErr == nil {
		s.onCBErr = func(err error) {
			s.log.Warn().Err(err).Msg("Completion callback failed")
		}
	}
	return s
}

// ReadLine performs exactly one blocking prompted read with the given
// completion source. The source lives for this call only.
//
// The returned outcome distinguishes a line, end of input, and interruption;
// the latter two both map to "no input" at the host boundary. err is non-nil
// only for hard failures (editor errors, re-entrancy).
func (s *Session) ReadLine(prompt string, src bridge.Source) (string, Outcome, error) {
	if !current.CompareAndSwap(nil, s) {
		return "", OutcomeEOF, rerrors.NewSessionBusyError("a prompted read is already in progress")
	}
	defer current.Store(nil)

	s.src = src
	s.ed.SetCompleter(s.complete)
	defer func() {
		s.ed.SetCompleter(nil)
		s.src = bridge.Absent()
		s.gen = nil
	}()

	ictx, err := interrupt.Enter(interrupt.Options{
		Signal:   s.sig,
		Notifier: s.notifier,
		OnFire:   s.onInterrupt,
	})
	if err != nil {
		return "", OutcomeEOF, err
	}

	line, rdErr := s.ed.Readline(prompt)

	// Restore the prior signal disposition on every exit path before
	// anything else happens, including forwarding.
	ictx.Exit()

	if sig, fired := ictx.Fired(); fired {
		if s.forward != nil {
			s.forward(sig)
		}
		return "", OutcomeInterrupted, nil
	}

	switch {
	case rdErr == nil:
		return line, OutcomeLine, nil
	case errors.Is(rdErr, editor.ErrInterrupted):
		// Ctrl-C typed at the keyboard takes the same protocol as a
		// delivered signal: discard, cleanup, forward.
		s.ed.DiscardLine()
		s.ed.CleanupAfterSignal()
		if s.forward != nil {
			s.forward(s.sig)
		}
		return "", OutcomeInterrupted, nil
	case errors.Is(rdErr, io.EOF):
		if !s.ed.AtEOF() {
			// No data but the stream is still open; should not happen,
			// fall back to the no-input shape.
			s.log.Debug().Msg("Editor returned no data without stream EOF")
		}
		return "", OutcomeEOF, nil
	default:
		return "", OutcomeEOF, rdErr
	}
}

// onInterrupt runs on the interrupt watcher goroutine while the blocking read
// is in flight. Order matters: drop the partial line, clean the terminal up,
// then unwind the blocked call.
func (s *Session) onInterrupt(os.Signal) {
	s.ed.DiscardLine()
	s.ed.CleanupAfterSignal()
	s.ed.Interrupt()
}

// complete is the trampoline the editor invokes per completion request. Each
// request begins a fresh generation for its prefix, replacing the previous
// one, and pulls it to exhaustion. A host callable error terminates the
// generation and is forwarded to the error handler; the read continues.
func (s *Session) complete(prefix string) []string {
	s.gen = bridge.Begin(s.src, prefix)

	var out []string
	for {
		cand, ok := s.gen.Next()
		if !ok {
			break
		}
		out = append(out, cand)
	}
	if err := s.gen.Err(); err != nil {
		s.onCBErr(err)
	}
	return out
}

// AppendHistory appends a line to the editor's history list. The line is not
// validated; empty strings are accepted as-is.
func (s *Session) AppendHistory(line string) error {
	return s.ed.AppendHistory(line)
}

// Name returns the editor's identifying application name.
func (s *Session) Name() string {
	return s.ed.Name()
}

// SetName replaces the editor's identifying application name.
func (s *Session) SetName(name string) error {
	return s.ed.SetName(name)
}

// Close releases the underlying editor.
func (s *Session) Close() error {
	return s.ed.Close()
}
