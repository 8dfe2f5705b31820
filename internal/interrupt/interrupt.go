// Package interrupt brackets a blocking read with interrupt-signal handling.
//
// A Context is installed immediately before the blocking read and torn down
// immediately after it returns. Exactly one Context may be live in the
// process; entering a second one fails fast rather than corrupting the shared
// signal state. Teardown restores the prior signal disposition on every exit
// path, normal or interrupted.
package interrupt

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/motoprogger/lua-readline/internal/rerrors"
)

// Notifier abstracts signal registration so tests can inject signals
// deterministically. The production implementation delegates to os/signal.
type Notifier interface {
	Notify(ch chan<- os.Signal, sig ...os.Signal)
	Stop(ch chan<- os.Signal)
}

type osNotifier struct{}

func (osNotifier) Notify(ch chan<- os.Signal, sig ...os.Signal) { signal.Notify(ch, sig...) }
func (osNotifier) Stop(ch chan<- os.Signal)                     { signal.Stop(ch) }

// Handler runs on the watcher goroutine when the interrupt signal fires,
// while the blocking read is still in flight. It must unwind the read.
type Handler func(os.Signal)

// Options configure a Context.
type Options struct {
	// Signal to trap. Defaults to os.Interrupt.
	Signal os.Signal
	// Notifier to register with. Defaults to the os/signal mechanism.
	Notifier Notifier
	// OnFire is invoked once if the signal is delivered while the Context
	// is live.
	OnFire Handler
}

// Context is the process-wide interrupt bracket.
type Context struct {
	notifier Notifier
	sig      os.Signal
	onFire   Handler

	ch      chan os.Signal
	done    chan struct{}
	stopped chan struct{}

	mu    sync.Mutex
	fired os.Signal
}

// live enforces the at-most-one-Context invariant.
var live atomic.Bool

// Enter installs the interrupt bracket. It fails fast with a session-busy
// error if another Context is already live.
func Enter(opts Options) (*Context, error) {
	if !live.CompareAndSwap(false, true) {
		return nil, rerrors.NewSessionBusyError("an interrupt context is already installed")
	}
	if opts.Signal == nil {
		opts.Signal = os.Interrupt
	}
	if opts.Notifier == nil {
		opts.Notifier = osNotifier{}
	}

	c := &Context{
		notifier: opts.Notifier,
		sig:      opts.Signal,
		onFire:   opts.OnFire,
		ch:       make(chan os.Signal, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	c.notifier.Notify(c.ch, c.sig)
	go c.watch()
	return c, nil
}

func (c *Context) watch() {
	defer close(c.stopped)
	select {
	case sig := <-c.ch:
		c.mu.Lock()
		c.fired = sig
		c.mu.Unlock()
		if c.onFire != nil {
			c.onFire(sig)
		}
	case <-c.done:
	}
}

// Exit tears the bracket down: the prior signal disposition is restored and
// the watcher goroutine is reaped. Must be called exactly once.
func (c *Context) Exit() {
	c.notifier.Stop(c.ch)
	close(c.done)
	<-c.stopped
	live.Store(false)
}

// Fired reports whether the interrupt signal was delivered while the Context
// was live, and which signal it was.
func (c *Context) Fired() (os.Signal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fired, c.fired != nil
}
