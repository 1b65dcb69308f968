package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/ytcut/tui/styles"
)

// Theme returns a huh theme matching the ytcut palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)
	t.Focused.Title = lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(styles.Lavender)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Pink)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(styles.Cyan)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(styles.Purple)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Cyan)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(styles.LightLavender)

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(styles.Lavender)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(styles.Purple)
	t.Blurred.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Pink)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Purple)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(styles.Lavender)

	return t
}
