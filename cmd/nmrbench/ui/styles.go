// Package ui provides the visual styling and reusable components for the
// nmrbench interactive terminal interface, with light/dark mode support.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light mode colors (default)
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#1c2733")
	LightPrimary    = lipgloss.Color("#00695c") // teal
	LightAccent     = lipgloss.Color("#8e24aa") // purple
	LightSecondary  = lipgloss.Color("#e1e4e8")
	LightMuted      = lipgloss.Color("#8a939e")
	LightBorder     = lipgloss.Color("#dce0e5")

	// Dark mode colors
	DarkBackground = lipgloss.Color("#14191f")
	DarkForeground = lipgloss.Color("#e8eaec")
	DarkPrimary    = lipgloss.Color("#4db6ac")
	DarkAccent     = lipgloss.Color("#ce93d8")
	DarkSecondary  = lipgloss.Color("#232b34")
	DarkMuted      = lipgloss.Color("#5c6670")
	DarkBorder     = lipgloss.Color("#2a3440")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	Header lipgloss.Style
	Footer lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Bold   lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style

	// Table cells
	Cell      lipgloss.Style
	Highlight lipgloss.Style // shift cells matched by the active filter
	Selected  lipgloss.Style // cursor row / focused cell

	// Input
	Prompt lipgloss.Style
	Label  lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Border),
		Footer: lipgloss.NewStyle().Foreground(theme.Muted),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Body:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Bold:   lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground),
		Muted:  lipgloss.NewStyle().Foreground(theme.Muted),
		Error:  lipgloss.NewStyle().Foreground(Destructive),

		Cell:      lipgloss.NewStyle().Foreground(theme.Foreground),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Selected:  lipgloss.NewStyle().Foreground(theme.Background).Background(theme.Primary),

		Prompt: lipgloss.NewStyle().Foreground(theme.Primary),
		Label:  lipgloss.NewStyle().Foreground(theme.Muted),
	}
}

// DefaultStyles returns the light mode style set.
func DefaultStyles() Styles {
	return NewStyles(LightTheme())
}
