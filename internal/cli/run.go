package cli

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// RunParams contains parameters for the Run command
type RunParams struct {
	LogLevel string
	Path     string
	Args     []string
}

// Run executes a Lua script file with the readline module preloaded.
func Run(params RunParams) error {
	if params.Path == "" {
		return fmt.Errorf("no script path given")
	}
	if _, err := os.Stat(params.Path); err != nil {
		return fmt.Errorf("cannot read script: %w", err)
	}

	comp, err := initializeComponents(params.LogLevel)
	if err != nil {
		return err
	}
	defer comp.close()

	L := comp.newLuaState()
	defer L.Close()

	// Scripts see their arguments the usual Lua way, in the global arg table.
	argTbl := L.NewTable()
	argTbl.RawSetInt(0, lua.LString(params.Path))
	for i, a := range params.Args {
		argTbl.RawSetInt(i+1, lua.LString(a))
	}
	L.SetGlobal("arg", argTbl)

	comp.log.Debug().Str("path", params.Path).Msg("Running script")
	if err := L.DoFile(params.Path); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}
	return nil
}
