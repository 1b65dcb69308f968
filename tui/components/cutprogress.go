package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/user/ytcut/tui/styles"
)

// CutProgressState holds what the progress box shows.
type CutProgressState struct {
	Phase   string
	Title   string
	Written int64
	Total   int64
	// Range is the trim window, already formatted.
	Range string
}

// CutProgress renders a bordered box with the download bar, byte counts and
// the current phase.
func CutProgress(state CutProgressState, width int) string {
	if width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	// border = 2, plus 1 space padding each side
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	var lines []string
	if state.Title != "" {
		lines = append(lines, " "+textStyle.Render(Truncate(state.Title, innerW)))
	}

	if state.Total > 0 {
		pct := int(state.Written * 100 / state.Total)
		if pct > 100 {
			pct = 100
		}
		// " XXX%" label
		barWidth := innerW - 6
		if barWidth < 4 {
			barWidth = 4
		}
		filled := barWidth * pct / 100
		bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", barWidth-filled))
		lines = append(lines, " "+bar+textStyle.Render(fmt.Sprintf(" %3d%%", pct)))
		lines = append(lines, " "+dimStyle.Render(fmt.Sprintf("%s / %s",
			humanize.Bytes(uint64(state.Written)), humanize.Bytes(uint64(state.Total)))))
	} else if state.Written > 0 {
		lines = append(lines, " "+dimStyle.Render(humanize.Bytes(uint64(state.Written))))
	}

	if state.Range != "" {
		lines = append(lines, " "+dimStyle.Render("Range "+state.Range))
	}
	if state.Phase != "" {
		lines = append(lines, " "+amberStyle.Render(state.Phase))
	}

	return RenderInfoBox("ytcut", lines, width)
}
