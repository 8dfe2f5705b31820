package editor

import (
	"io"
	"sync"
)

// Scripted is an in-memory Editor that replays a fixed sequence of lines.
// It backs non-interactive embedding and the test suites of the packages
// built on top of the Editor interface. Every collaborator call is recorded
// so tests can assert on the interrupt protocol.
type Scripted struct {
	mu sync.Mutex

	lines []string
	name  string
	eof   bool

	complete CompleteFunc

	// CompleteRequests lists prefixes to push through the completion
	// trampoline during the next read, simulating tab presses mid-read.
	CompleteRequests []string
	// Completions collects the candidate lists produced for
	// CompleteRequests, in order.
	Completions [][]string

	// blockOnRead makes the next read block until Interrupt.
	blockOnRead bool
	unblock     chan struct{}

	// SetNameErr, when non-nil, is returned by SetName without storing the
	// name, exercising the name-storage failure contract.
	SetNameErr error

	// Call counters.
	DiscardCalls int
	CleanupCalls int
	History      []string
	Prompts      []string
}

var _ Editor = (*Scripted)(nil)

// NewScripted builds a scripted editor that yields the given lines in order
// and then reports end of input.
func NewScripted(lines ...string) *Scripted {
	return &Scripted{lines: lines, unblock: make(chan struct{}, 1)}
}

// BlockNextRead makes the next Readline call block until Interrupt fires.
func (s *Scripted) BlockNextRead() {
	s.mu.Lock()
	s.blockOnRead = true
	s.mu.Unlock()
}

// Readline replays the next scripted line.
func (s *Scripted) Readline(prompt string) (string, error) {
	s.mu.Lock()
	s.Prompts = append(s.Prompts, prompt)
	block := s.blockOnRead
	s.blockOnRead = false
	requests := s.CompleteRequests
	s.CompleteRequests = nil
	complete := s.complete
	s.mu.Unlock()

	for _, prefix := range requests {
		var cands []string
		if complete != nil {
			cands = complete(prefix)
		}
		s.mu.Lock()
		s.Completions = append(s.Completions, cands)
		s.mu.Unlock()
	}

	if block {
		<-s.unblock
		return "", ErrInterrupted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		s.eof = true
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// SetCompleter registers the completion trampoline.
func (s *Scripted) SetCompleter(complete CompleteFunc) {
	s.mu.Lock()
	s.complete = complete
	s.mu.Unlock()
}

// Interrupt releases a blocked read.
func (s *Scripted) Interrupt() {
	select {
	case s.unblock <- struct{}{}:
	default:
	}
}

// DiscardLine records the partial-state discard.
func (s *Scripted) DiscardLine() {
	s.mu.Lock()
	s.DiscardCalls++
	s.mu.Unlock()
}

// CleanupAfterSignal records the post-signal cleanup.
func (s *Scripted) CleanupAfterSignal() {
	s.mu.Lock()
	s.CleanupCalls++
	s.mu.Unlock()
}

// AppendHistory records the appended line.
func (s *Scripted) AppendHistory(line string) error {
	s.mu.Lock()
	s.History = append(s.History, line)
	s.mu.Unlock()
	return nil
}

// Name returns the identifying name.
func (s *Scripted) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetName replaces the identifying name, or fails with SetNameErr.
func (s *Scripted) SetName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetNameErr != nil {
		return s.SetNameErr
	}
	s.name = name
	return nil
}

// AtEOF reports whether the scripted lines ran out.
func (s *Scripted) AtEOF() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eof
}

// Close is a no-op for the scripted editor.
func (s *Scripted) Close() error {
	return nil
}
