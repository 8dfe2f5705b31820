package config

import (
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/motoprogger/lua-readline/pkg/version"
)

// PromptData is the data available to prompt templates.
type PromptData struct {
	// Cwd is the current working directory.
	Cwd string
	// Dir is the base name of Cwd.
	Dir string
	// Home is the user's home directory.
	Home string
	// AppName is the binding's identifying name.
	AppName string
	// Version is the lua-readline version.
	Version string
}

func promptData(appName string) PromptData {
	cwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return PromptData{
		Cwd:     cwd,
		Dir:     filepath.Base(cwd),
		Home:    home,
		AppName: appName,
		Version: version.Version,
	}
}

// ExpandPrompt renders the main prompt template with sprig functions.
// Templates that fail to parse or execute fall back to the literal string.
func (c *Config) ExpandPrompt() string {
	return expandTemplate(c.Prompt, promptData(c.AppName))
}

// ExpandContPrompt renders the continuation prompt template.
func (c *Config) ExpandContPrompt() string {
	return expandTemplate(c.ContPrompt, promptData(c.AppName))
}

func expandTemplate(tmpl string, data PromptData) string {
	if !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	t, err := template.New("prompt").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return tmpl
	}
	return b.String()
}
