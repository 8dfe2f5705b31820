package cli

import (
	"fmt"
	"os"

	"github.com/motoprogger/lua-readline/internal/config"
)

// SchemaParams contains parameters for the Schema command
type SchemaParams struct {
	Output string
}

// Schema outputs the configuration JSON Schema to stdout or a file.
func Schema(params SchemaParams) error {
	schema := config.GetSchemaJSON()

	if params.Output != "" {
		if err := os.WriteFile(params.Output, []byte(schema), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", params.Output, err)
		}
		fmt.Printf("Schema written to: %s\n", params.Output)
		return nil
	}

	fmt.Println(schema)
	return nil
}
