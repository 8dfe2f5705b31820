// Package config handles loading and parsing of lua-readline configuration
// files for the REPL frontend.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/motoprogger/lua-readline/internal/rerrors"
)

// SupportedConfigNames contains supported configuration file names (in order
// of preference)
var SupportedConfigNames = []string{
	".luareadline.yml",
	".luareadline.yaml",
	".luareadline.toml",
	".luareadline.json",
}

const (
	// GlobalConfigName is the name of the global config file
	GlobalConfigName = "global.yml"
	// appDirName is the directory under XDG paths holding app files
	appDirName = "lua-readline"
)

// Config holds the REPL settings.
type Config struct {
	// Prompt and ContPrompt are sprig-enabled templates, see template.go.
	Prompt     string `koanf:"prompt"`
	ContPrompt string `koanf:"cont_prompt"`
	// HistoryFile enables persistent history when non-empty.
	HistoryFile string `koanf:"history_file"`
	// HistoryLimit caps the in-memory history list.
	HistoryLimit int `koanf:"history_limit"`
	// AppName seeds the binding's identifying name.
	AppName string `koanf:"app_name"`
	// LogLevel is the default log level, overridable from the CLI.
	LogLevel string `koanf:"log_level"`
	// Words is a static completion word list offered alongside Lua
	// globals in the REPL.
	Words []string `koanf:"words"`
	// Greeting controls the REPL banner.
	Greeting bool `koanf:"greeting"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Prompt:       "> ",
		ContPrompt:   ">> ",
		HistoryFile:  defaultHistoryFile(),
		HistoryLimit: 500,
		AppName:      "lua-readline",
		LogLevel:     "warn",
		Greeting:     true,
	}
}

func defaultHistoryFile() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDirName, "history")
}

// GetGlobalConfigPath returns the path to the global config file
func GetGlobalConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appDirName, GlobalConfigName), nil
}

// FindLocalConfig returns the path of the local config file in dir, or the
// empty string if none exists.
func FindLocalConfig(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Loader handles loading and parsing configuration files
type Loader struct{}

// New creates a new config loader
func New() *Loader {
	return &Loader{}
}

func parserFor(ext string) (koanf.Parser, error) {
	switch strings.ToLower(ext) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Load reads and parses a single configuration file over the defaults.
func (l *Loader) Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := l.loadInto(k, path); err != nil {
		return nil, err
	}
	return unmarshal(k, path)
}

// LoadBytes parses configuration from raw bytes in the given format ("yml",
// "toml" or "json"). Used when reading config from stdin.
func (l *Loader) LoadBytes(data []byte, format string) (*Config, error) {
	parser, err := parserFor("." + strings.TrimPrefix(format, "."))
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, rerrors.NewConfigurationError("", "failed to parse config", err)
	}
	return unmarshal(k, "")
}

// LoadStack merges the global config (if present) and the local config for
// dir (if present) over the defaults, later layers winning per key. It
// returns the merged config and the list of files that contributed.
func (l *Loader) LoadStack(dir string) (*Config, []string, error) {
	k := koanf.New(".")
	var files []string

	if globalPath, err := GetGlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			if err := l.loadInto(k, globalPath); err != nil {
				return nil, nil, err
			}
			files = append(files, globalPath)
		}
	}

	if localPath := FindLocalConfig(dir); localPath != "" {
		if err := l.loadInto(k, localPath); err != nil {
			return nil, files, err
		}
		files = append(files, localPath)
	}

	cfg, err := unmarshal(k, "")
	if err != nil {
		return nil, files, err
	}
	return cfg, files, nil
}

func (l *Loader) loadInto(k *koanf.Koanf, path string) error {
	parser, err := parserFor(filepath.Ext(path))
	if err != nil {
		return rerrors.NewConfigurationError(path, "unsupported config file", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return rerrors.NewConfigurationError(path, "failed to read config", err)
	}
	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return rerrors.NewConfigurationError(path, "failed to parse config", err)
	}
	return nil
}

func unmarshal(k *koanf.Koanf, path string) (*Config, error) {
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, rerrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}
	return cfg, nil
}
