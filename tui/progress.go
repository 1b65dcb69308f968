// Package tui renders the live progress view while a cut runs.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/ytcut/cutter"
	"github.com/user/ytcut/pkg/timeutil"
	"github.com/user/ytcut/tui/components"
	"github.com/user/ytcut/tui/styles"
)

const defaultWidth = 60

// EventMsg carries a pipeline event into the program.
type EventMsg cutter.Event

// DoneMsg is sent once the pipeline has returned.
type DoneMsg struct{}

// Progress is a bubbletea model showing download and trim progress.
type Progress struct {
	spinner spinner.Model
	state   components.CutProgressState
	width   int
	done    bool
	// cancel aborts the running pipeline on Ctrl+C.
	cancel context.CancelFunc
}

// NewProgress creates the progress model. cancel may be nil.
func NewProgress(cancel context.CancelFunc) *Progress {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Cyan)
	return &Progress{
		spinner: s,
		width:   defaultWidth,
		cancel:  cancel,
		state:   components.CutProgressState{Phase: "Resolving video..."},
	}
}

func (m *Progress) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 80)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.cancel != nil {
			// keep rendering until the pipeline reports back
			m.cancel()
			m.state.Phase = "Cancelling..."
		}
		return m, nil

	case EventMsg:
		m.apply(cutter.Event(msg))
		return m, nil

	case DoneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Progress) apply(e cutter.Event) {
	switch e.Kind {
	case cutter.EventFetchStarted:
		m.state.Phase = "Resolving video..."
	case cutter.EventFetchProgress:
		m.state.Phase = "Downloading..."
		m.state.Written = e.Written
		m.state.Total = e.Total
	case cutter.EventFetchDone:
		if e.Video != nil {
			m.state.Title = e.Video.Title
			m.state.Written = e.Video.Size
			if m.state.Total == 0 {
				m.state.Total = e.Video.Size
			}
		}
	case cutter.EventTrimStarted:
		m.state.Phase = "Trimming..."
		m.state.Range = fmt.Sprintf("%s - %s", timeutil.FormatTime(e.Range.Start), timeutil.FormatTime(e.Range.End))
	case cutter.EventDone:
		m.state.Phase = "Done"
	}
}

func (m *Progress) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + styles.SecondaryText.Render(m.state.Phase) + "\n" +
		components.CutProgress(m.state, m.width) + "\n"
}

// State returns a copy of the rendered state.
func (m *Progress) State() components.CutProgressState {
	return m.state
}

// RunFunc runs the pipeline, reporting events to obs.
type RunFunc func(ctx context.Context, obs cutter.Observer) (*cutter.Result, error)

// RunWithProgress runs fn while rendering the progress view to out. The
// returned values are fn's.
func RunWithProgress(ctx context.Context, out io.Writer, fn RunFunc) (*cutter.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewProgress(cancel)
	p := tea.NewProgram(model, tea.WithOutput(out))

	type outcome struct {
		res *cutter.Result
		err error
	}
	results := make(chan outcome, 1)
	go func() {
		res, err := fn(ctx, cutter.ObserverFunc(func(e cutter.Event) {
			p.Send(EventMsg(e))
		}))
		results <- outcome{res, err}
		p.Send(DoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		// The program stopped early (e.g. no TTY); the pipeline still owns the files.
		cancel()
	}
	o := <-results
	return o.res, o.err
}
