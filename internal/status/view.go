package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n")

	b.WriteString(renderConfigFiles(data))
	b.WriteString("\n")

	b.WriteString(renderSettings(data))
	b.WriteString("\n")

	b.WriteString(renderHistory(data))
	b.WriteString("\n")

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("Version: ") + valueStyle.Render(data.Version) + "\n")
	return b.String()
}

func renderConfigFiles(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Configuration:") + "\n")

	if data.GlobalConfigPath != "" {
		if data.GlobalConfigExists {
			b.WriteString("   " + keyStyle.Render("Global: ") + valueStyle.Render(data.GlobalConfigPath) + "\n")
		} else {
			b.WriteString("   " + keyStyle.Render("Global: ") + subtleStyle.Render(data.GlobalConfigPath+" (not present)") + "\n")
		}
	}

	if len(data.ConfigFiles) == 0 {
		b.WriteString("   " + subtleStyle.Render("No configuration files loaded, using defaults") + "\n")
	} else {
		for _, path := range data.ConfigFiles {
			b.WriteString("   " + keyStyle.Render("Loaded: ") + valueStyle.Render(path) + "\n")
		}
	}

	if data.ConfigValid {
		b.WriteString("   " + successStyle.Render("✓ Valid") + "\n")
	} else {
		b.WriteString("   " + errorStyle.Render("✗ Invalid") + "\n")
		for _, msg := range data.ConfigErrors {
			b.WriteString("   " + errorStyle.Render(msg) + "\n")
		}
	}

	return b.String()
}

func renderSettings(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Settings:") + "\n")
	b.WriteString("   " + keyStyle.Render("Prompt: ") + valueStyle.Render(data.Prompt) + "\n")
	b.WriteString("   " + keyStyle.Render("Continuation: ") + valueStyle.Render(data.ContPrompt) + "\n")
	b.WriteString("   " + keyStyle.Render("App name: ") + valueStyle.Render(data.AppName) + "\n")
	b.WriteString("   " + keyStyle.Render("Log level: ") + valueStyle.Render(data.LogLevel) + "\n")
	b.WriteString("   " + keyStyle.Render("Completion words: ") + valueStyle.Render(fmt.Sprintf("%d", data.Words)) + "\n")
	return b.String()
}

func renderHistory(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("History:") + "\n")

	if data.HistoryFile == "" {
		b.WriteString("   " + subtleStyle.Render("Persistence disabled") + "\n")
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("File: ") + valueStyle.Render(data.HistoryFile) + "\n")
	if data.HistoryExists {
		b.WriteString("   " + keyStyle.Render("Size: ") + valueStyle.Render(fmt.Sprintf("%d bytes", data.HistorySize)) + "\n")
	} else {
		b.WriteString("   " + subtleStyle.Render("Not created yet") + "\n")
	}
	b.WriteString("   " + keyStyle.Render("Limit: ") + valueStyle.Render(fmt.Sprintf("%d entries", data.HistoryLimit)) + "\n")

	return b.String()
}
