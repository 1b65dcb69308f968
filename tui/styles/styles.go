// Package styles provides Lipgloss styles using the Ciapre colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	DeepPurple    = lipgloss.Color("#191C27")
	Purple        = lipgloss.Color("#5C4F4B")
	BrightPurple  = lipgloss.Color("#724D7C")
	Lavender      = lipgloss.Color("#AEA47A")
	LightLavender = lipgloss.Color("#F3DBB2")
	Pink          = lipgloss.Color("#D33061")
	Cyan          = lipgloss.Color("#3097C6")
	Amber         = lipgloss.Color("#CC8B3F")
	Red           = lipgloss.Color("#AC3835")
	Green         = lipgloss.Color("#A6A75D")
)

// Header is used for table headings and section titles
var Header = lipgloss.NewStyle().
	Foreground(Pink).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Warning is the style for warning and error messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
