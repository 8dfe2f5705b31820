package cli

import (
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/motoprogger/lua-readline/internal/bridge"
	"github.com/motoprogger/lua-readline/internal/session"
	"github.com/motoprogger/lua-readline/internal/timing"
	"github.com/motoprogger/lua-readline/pkg/version"
)

// ReplParams contains parameters for the Repl command
type ReplParams struct {
	LogLevel string
}

// Repl runs the interactive Lua read-eval-print loop.
func Repl(params ReplParams) error {
	comp, err := initializeComponents(params.LogLevel)
	if err != nil {
		return err
	}
	defer comp.close()

	L := comp.newLuaState()
	defer L.Close()

	if comp.cfg.Greeting {
		fmt.Printf("lua-readline %s (gopher-lua, Lua 5.1)\n", version.Version)
		fmt.Println("Use tab for completion, Ctrl-D to exit.")
	}

	return runLoop(L, comp)
}

// runLoop reads chunks until EOF. Incomplete chunks accumulate continuation
// lines under the secondary prompt; an interrupt abandons the chunk in
// progress and starts over.
func runLoop(L *lua.LState, comp *components) error {
	src := bridge.Callable(replCompletions(L, comp.cfg.Words))

	for {
		line, outcome, err := comp.session.ReadLine(comp.cfg.ExpandPrompt(), src)
		if err != nil {
			return err
		}
		switch outcome {
		case session.OutcomeEOF:
			return nil
		case session.OutcomeInterrupted:
			comp.log.Debug().Msg("Read interrupted, starting a new chunk")
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		_ = comp.session.AppendHistory(line)

		chunk := line
		for {
			timer := timing.NewTimer()
			fn, compErr := loadChunk(L, chunk)
			timer.Mark("compile")

			if fn != nil {
				evalChunk(L, fn, comp)
				timer.Mark("eval")
				comp.log.Debug().Str("timing", timer.Summary()).Msg("Chunk executed")
				break
			}
			if !isIncomplete(compErr) {
				fmt.Fprintln(os.Stderr, compErr)
				break
			}

			more, outcome, err := comp.session.ReadLine(comp.cfg.ExpandContPrompt(), src)
			if err != nil {
				return err
			}
			if outcome != session.OutcomeLine {
				// EOF or interrupt mid-chunk abandons the chunk.
				break
			}
			_ = comp.session.AppendHistory(more)
			chunk = chunk + "\n" + more
		}
	}
}

// loadChunk compiles a chunk, trying it as an expression first so that bare
// expressions echo their value.
func loadChunk(L *lua.LState, chunk string) (*lua.LFunction, error) {
	if fn, err := L.LoadString("return " + chunk); err == nil {
		return fn, nil
	}
	fn, err := L.LoadString(chunk)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// isIncomplete reports whether a compile error means the chunk ended early
// and a continuation line should be read.
func isIncomplete(err error) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := err.(*lua.ApiError); ok {
		if pErr, ok := apiErr.Cause.(*parse.Error); ok {
			return pErr.Pos.Line == parse.EOF
		}
	}
	return false
}

// evalChunk runs a compiled chunk and prints its results, one call per chunk.
func evalChunk(L *lua.LState, fn *lua.LFunction, comp *components) {
	base := L.GetTop()
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	top := L.GetTop()
	if top > base {
		parts := make([]string, 0, top-base)
		for i := base + 1; i <= top; i++ {
			parts = append(parts, L.Get(i).String())
		}
		fmt.Println(strings.Join(parts, "\t"))
	}
	L.SetTop(base)
}
