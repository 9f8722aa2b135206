package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/orac/internal/core"
)

var (
	// TitleStyle uses ANSI 6 (cyan), readable on light and dark terminals
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle is dimmed so descriptions sit behind names
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Palette shared by the dashboard and the installer.
var (
	Accent  = lipgloss.Color("39")
	Success = lipgloss.Color("42")
	Danger  = lipgloss.Color("196")
	Muted   = lipgloss.Color("244")
	Warning = lipgloss.Color("214")
)

var modeColors = map[core.Mode]lipgloss.Color{
	core.ModeAssistant:  lipgloss.Color("33"),
	core.ModeStrategist: lipgloss.Color("35"),
	core.ModeAnalyst:    lipgloss.Color("135"),
}

// ModeColor is blue for assistant, green for strategist, purple for analyst.
func ModeColor(m core.Mode) lipgloss.Color {
	if c, ok := modeColors[m]; ok {
		return c
	}
	return Accent
}

func ModeIcon(m core.Mode) string {
	switch m {
	case core.ModeStrategist:
		return "🎯"
	case core.ModeAnalyst:
		return "📊"
	default:
		return "🤖"
	}
}
