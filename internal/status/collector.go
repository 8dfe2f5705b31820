// Package status provides status information collection and display for the
// lua-readline CLI.
package status

import (
	"fmt"
	"os"

	"github.com/motoprogger/lua-readline/internal/config"
	"github.com/motoprogger/lua-readline/pkg/version"
)

// CollectAll gathers all status information for the current directory
func CollectAll() (*Data, error) {
	data := &Data{
		Version:     version.Version,
		ConfigValid: true,
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	data.CurrentDir = currentDir

	if globalPath, err := config.GetGlobalConfigPath(); err == nil {
		data.GlobalConfigPath = globalPath
		if _, err := os.Stat(globalPath); err == nil {
			data.GlobalConfigExists = true
		}
	}

	loader := config.New()
	cfg, files, err := loader.LoadStack(currentDir)
	if err != nil {
		data.ConfigValid = false
		data.ConfigErrors = append(data.ConfigErrors, err.Error())
		cfg = config.Default()
	}
	data.ConfigFiles = files

	for _, path := range files {
		result, err := config.Validate(path)
		if err != nil {
			continue
		}
		if !result.Valid {
			data.ConfigValid = false
			for _, e := range result.Errors {
				data.ConfigErrors = append(data.ConfigErrors, fmt.Sprintf("%s: %s: %s", path, e.Field, e.Message))
			}
		}
	}

	data.Prompt = cfg.Prompt
	data.ContPrompt = cfg.ContPrompt
	data.AppName = cfg.AppName
	data.LogLevel = cfg.LogLevel
	data.Words = len(cfg.Words)
	data.Greeting = cfg.Greeting
	data.HistoryFile = cfg.HistoryFile
	data.HistoryLimit = cfg.HistoryLimit

	if cfg.HistoryFile != "" {
		if info, err := os.Stat(cfg.HistoryFile); err == nil {
			data.HistoryExists = true
			data.HistorySize = info.Size()
		}
	}

	return data, nil
}
