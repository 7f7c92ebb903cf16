package tui

import (
	"github.com/bamsammich/covidspark/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette. Mutable so config can override it.
var (
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorBlue   = lipgloss.Color("#89b4fa")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorMauve  = lipgloss.Color("#cba6f7")
	ColorMuted  = lipgloss.Color("#5a6278")
	ColorDim    = lipgloss.Color("#3a4055")
	ColorBright = lipgloss.Color("#cdd6f4")
)

// Pre-built styles, rebuilt by rebuildStyles() after color changes.
var (
	styleHeader       lipgloss.Style
	styleHeaderLabel  lipgloss.Style
	styleDivider      lipgloss.Style
	styleReady        lipgloss.Style
	styleLoading      lipgloss.Style
	styleFailed       lipgloss.Style
	styleKeybindKey   lipgloss.Style
	styleKeybindLabel lipgloss.Style
	styleBigNumber    lipgloss.Style
	styleDate         lipgloss.Style
	styleSparkline    lipgloss.Style
	styleSparkMark    lipgloss.Style
	styleAxis         lipgloss.Style
	styleChoice       lipgloss.Style
	styleChoiceActive lipgloss.Style
	styleCursor       lipgloss.Style
	styleStatus       lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles reconstructs all lipgloss styles from the current color vars.
func rebuildStyles() {
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	styleHeaderLabel = lipgloss.NewStyle().Bold(true).Foreground(ColorMauve)
	styleDivider = lipgloss.NewStyle().Foreground(ColorDim)
	styleReady = lipgloss.NewStyle().Foreground(ColorGreen)
	styleLoading = lipgloss.NewStyle().Foreground(ColorBlue)
	styleFailed = lipgloss.NewStyle().Foreground(ColorRed)
	styleKeybindKey = lipgloss.NewStyle().Foreground(ColorMauve).Bold(true)
	styleKeybindLabel = lipgloss.NewStyle().Foreground(ColorMuted)
	styleBigNumber = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	styleDate = lipgloss.NewStyle().Foreground(ColorBright)
	styleSparkline = lipgloss.NewStyle().Foreground(ColorBlue)
	styleSparkMark = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	styleAxis = lipgloss.NewStyle().Foreground(ColorMuted)
	styleChoice = lipgloss.NewStyle().Foreground(ColorMuted)
	styleChoiceActive = lipgloss.NewStyle().Foreground(ColorMauve).Bold(true).Underline(true)
	styleCursor = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	styleStatus = lipgloss.NewStyle().Foreground(ColorYellow).Italic(true)
}

// ApplyTheme overrides colors from a config ThemeConfig and rebuilds all styles.
func ApplyTheme(tc config.ThemeConfig) {
	if tc.Green != nil {
		ColorGreen = lipgloss.Color(*tc.Green)
	}
	if tc.Blue != nil {
		ColorBlue = lipgloss.Color(*tc.Blue)
	}
	if tc.Yellow != nil {
		ColorYellow = lipgloss.Color(*tc.Yellow)
	}
	if tc.Red != nil {
		ColorRed = lipgloss.Color(*tc.Red)
	}
	if tc.Mauve != nil {
		ColorMauve = lipgloss.Color(*tc.Mauve)
	}
	if tc.Muted != nil {
		ColorMuted = lipgloss.Color(*tc.Muted)
	}
	if tc.Dim != nil {
		ColorDim = lipgloss.Color(*tc.Dim)
	}
	if tc.Bright != nil {
		ColorBright = lipgloss.Color(*tc.Bright)
	}
	rebuildStyles()
}
