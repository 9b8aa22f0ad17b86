// Package ui holds the terminal prompt and colour styles used by wgtools.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Adaptive colours keep text readable on light terminals.
var (
	accent = lipgloss.AdaptiveColor{Light: "#88171A", Dark: "#E04B4F"} // WireGuard red
	muted  = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9A9A9A"}
	amber  = lipgloss.AdaptiveColor{Light: "#A86A00", Dark: "#FFB52E"}
	red    = lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF6B6B"}
	green  = lipgloss.AdaptiveColor{Light: "#1B7F3B", Dark: "#5FD787"}
)

var (
	// TitleStyle renders prompt titles and the doctor header.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	// SelectedStyle marks the highlighted confirm option; CursorStyle is
	// the marker drawn before it.
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	CursorStyle   = SelectedStyle

	UnselectedStyle = lipgloss.NewStyle().Foreground(muted)
	HelpStyle       = lipgloss.NewStyle().Italic(true).Foreground(muted)

	// Doctor check results.
	SuccessStyle = lipgloss.NewStyle().Foreground(green)
	WarningStyle = lipgloss.NewStyle().Foreground(amber)
	ErrorStyle   = lipgloss.NewStyle().Foreground(red)
)
