package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderInfoBoxWidth(t *testing.T) {
	box := RenderInfoBox("Title", []string{"hello", strings.Repeat("x", 100)}, 30)
	lines := strings.Split(box, "\n")

	assert.Len(t, lines, 4)
	for _, l := range lines {
		assert.Equal(t, 30, lipgloss.Width(l), "line %q", l)
	}
	assert.Contains(t, lines[0], "Title")
	assert.Contains(t, lines[1], "hello")
}

func TestRenderInfoBoxTooNarrow(t *testing.T) {
	assert.Empty(t, RenderInfoBox("x", nil, 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, 5, lipgloss.Width(Truncate("a long title", 5)))
	assert.Empty(t, Truncate("x", 0))
}

func TestCutProgress(t *testing.T) {
	out := CutProgress(CutProgressState{
		Phase:   "Downloading",
		Title:   "Some video",
		Written: 512 * 1000,
		Total:   1024 * 1000,
		Range:   "0:00:10 - 0:00:20",
	}, 50)

	assert.Contains(t, out, "Some video")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "512 kB / 1.0 MB")
	assert.Contains(t, out, "0:00:10 - 0:00:20")
	assert.Contains(t, out, "Downloading")
}

func TestCutProgressUnknownTotal(t *testing.T) {
	out := CutProgress(CutProgressState{Written: 2000}, 40)
	assert.Contains(t, out, "2.0 kB")
	assert.NotContains(t, out, "%")
}
