package config

import (
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate validates a config file: syntax, schema, and semantic checks.
func Validate(path string) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	loader := New()
	cfg, err := loader.Load(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Failed to parse config: %v", err),
		})
		return result, nil
	}

	checkSemantics(cfg, result)
	return result, nil
}

func checkSemantics(cfg *Config, result *ValidationResult) {
	if cfg.HistoryLimit < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "history_limit",
			Message: "history_limit must not be negative",
		})
	}

	if cfg.LogLevel != "" && !validLogLevels[cfg.LogLevel] {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown log level %q (expected debug, info, warn or error)", cfg.LogLevel),
		})
	}

	for field, tmpl := range map[string]string{
		"prompt":      cfg.Prompt,
		"cont_prompt": cfg.ContPrompt,
	} {
		if _, err := template.New(field).Funcs(sprig.FuncMap()).Parse(tmpl); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid prompt template: %v", err),
			})
		}
	}
}
