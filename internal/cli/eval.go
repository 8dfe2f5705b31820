package cli

import (
	"fmt"
)

// EvalParams contains parameters for the Eval command
type EvalParams struct {
	LogLevel string
	Code     string
}

// Eval executes an inline Lua chunk with the readline module preloaded.
func Eval(params EvalParams) error {
	if params.Code == "" {
		return fmt.Errorf("no code given")
	}

	comp, err := initializeComponents(params.LogLevel)
	if err != nil {
		return err
	}
	defer comp.close()

	L := comp.newLuaState()
	defer L.Close()

	if err := L.DoString(params.Code); err != nil {
		return fmt.Errorf("eval failed: %w", err)
	}
	return nil
}
