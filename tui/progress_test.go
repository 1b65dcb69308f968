package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/user/ytcut/cutter"
)

func TestProgressAppliesEvents(t *testing.T) {
	m := NewProgress(nil)

	m.Update(EventMsg{Kind: cutter.EventFetchProgress, Written: 10, Total: 100})
	assert.Equal(t, "Downloading...", m.State().Phase)
	assert.Equal(t, int64(10), m.State().Written)

	m.Update(EventMsg{Kind: cutter.EventFetchDone, Video: &cutter.Video{Title: "Clip", Size: 100}})
	assert.Equal(t, "Clip", m.State().Title)
	assert.Equal(t, int64(100), m.State().Written)

	m.Update(EventMsg{Kind: cutter.EventTrimStarted, Range: cutter.Range{Start: 10, End: 20}})
	assert.Equal(t, "Trimming...", m.State().Phase)
	assert.Equal(t, "0:00:10 - 0:00:20", m.State().Range)
	assert.Contains(t, m.View(), "Clip")
}

func TestProgressCtrlCCancels(t *testing.T) {
	cancelled := false
	m := NewProgress(func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, cancelled)
	assert.Nil(t, cmd)
	assert.Equal(t, "Cancelling...", m.State().Phase)
}

func TestProgressQuitsOnDone(t *testing.T) {
	m := NewProgress(nil)
	_, cmd := m.Update(DoneMsg{})
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestProgressFetchDoneUnknownSize(t *testing.T) {
	m := NewProgress(nil)
	m.Update(EventMsg{Kind: cutter.EventFetchDone, Video: &cutter.Video{Size: 42}})
	assert.Equal(t, int64(42), m.State().Total)
}
