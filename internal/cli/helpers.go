// Package cli implements the lua-readline CLI commands.
package cli

import (
	"os"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/motoprogger/lua-readline/internal/bridge"
	"github.com/motoprogger/lua-readline/internal/config"
	"github.com/motoprogger/lua-readline/internal/editor"
	"github.com/motoprogger/lua-readline/internal/logger"
	"github.com/motoprogger/lua-readline/internal/session"
	"github.com/motoprogger/lua-readline/pkg/luareadline"
)

// components holds the initialized pieces shared by the interactive commands
type components struct {
	cfg     *config.Config
	files   []string
	log     *logger.Logger
	editor  *editor.LineEditor
	session *session.Session
}

// initializeComponents loads the config stack and builds the editor-backed
// session. logLevel, when non-empty, overrides the configured level.
func initializeComponents(logLevel string) (*components, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	loader := config.New()
	cfg, files, err := loader.LoadStack(cwd)
	if err != nil {
		return nil, err
	}

	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	log := logger.New(level, os.Stderr)
	log.Debug().Int("config_files", len(files)).Msg("Configuration loaded")

	ed := editor.New(editor.Config{
		Name:         cfg.AppName,
		HistoryFile:  cfg.HistoryFile,
		HistoryLimit: cfg.HistoryLimit,
	})
	sess := session.New(ed, session.WithLogger(log))
	if err := sess.SetName(cfg.AppName); err != nil {
		return nil, err
	}

	return &components{
		cfg:     cfg,
		files:   files,
		log:     log,
		editor:  ed,
		session: sess,
	}, nil
}

// newLuaState creates a Lua state with the readline module preloaded.
func (c *components) newLuaState() *lua.LState {
	L := lua.NewState()
	luareadline.New(c.session).Preload(L)
	return L
}

func (c *components) close() {
	_ = c.editor.Close()
}

// luaKeywords are offered as completion candidates alongside globals.
var luaKeywords = []string{
	"and", "break", "do", "else", "elseif", "end", "false", "for",
	"function", "if", "in", "local", "nil", "not", "or", "repeat",
	"return", "then", "true", "until", "while",
}

// replCompletions builds the REPL's completion generator: Lua keywords, the
// configured word list, and the names in the state's global table, filtered
// to the typed prefix and sorted.
func replCompletions(L *lua.LState, words []string) bridge.GeneratorFunc {
	return func(prefix string) (bridge.Iterator, error) {
		seen := make(map[string]bool)
		var cands []string
		add := func(s string) {
			if s != "" && strings.HasPrefix(s, prefix) && !seen[s] {
				seen[s] = true
				cands = append(cands, s)
			}
		}

		for _, kw := range luaKeywords {
			add(kw)
		}
		for _, w := range words {
			add(w)
		}
		L.G.Global.ForEach(func(k, _ lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				add(string(ks))
			}
		})

		sort.Strings(cands)
		i := 0
		return func() (string, bool, error) {
			if i >= len(cands) {
				return "", false, nil
			}
			c := cands[i]
			i++
			return c, true, nil
		}, nil
	}
}
