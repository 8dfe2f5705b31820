package cli

import (
	"fmt"

	"github.com/motoprogger/lua-readline/internal/status"
)

// Status shows the effective configuration and history state for the current
// directory.
func Status() error {
	data, err := status.CollectAll()
	if err != nil {
		return fmt.Errorf("failed to collect status: %w", err)
	}

	fmt.Print(status.Render(data))
	return nil
}
