package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/motoprogger/lua-readline/internal/config"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	ConfigPath string
}

// Validate validates a configuration file and prints the result. With no
// explicit path it validates every config file discovered in the current
// directory plus the global one.
func Validate(params ValidateParams) error {
	paths, err := validationTargets(params.ConfigPath)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No configuration files found, defaults apply.")
		return nil
	}

	failed := false
	for _, path := range paths {
		fmt.Printf("Validating: %s\n", path)

		result, err := config.Validate(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		if result.Valid {
			fmt.Println("✅ Configuration is valid!")
		} else {
			failed = true
			fmt.Println("❌ Configuration validation failed:")
			for i, e := range result.Errors {
				fmt.Printf("  %d. [%s] %s\n", i+1, e.Field, e.Message)
			}
		}
		fmt.Println()
	}

	if failed {
		return fmt.Errorf("one or more configuration files are invalid")
	}
	return nil
}

// validationTargets resolves which files to validate. An explicit path wins;
// otherwise the global config and any local config in the working directory.
func validationTargets(explicit string) ([]string, error) {
	if explicit != "" {
		return []string{explicit}, nil
	}

	var paths []string
	if globalPath, err := config.GetGlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			paths = append(paths, globalPath)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	for _, name := range config.SupportedConfigNames {
		candidate := filepath.Join(cwd, name)
		if _, err := os.Stat(candidate); err == nil {
			paths = append(paths, candidate)
		}
	}
	return paths, nil
}
