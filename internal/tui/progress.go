package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/handiism/yt2mp3/internal/fetch"
	"github.com/handiism/yt2mp3/internal/pipeline"
	"github.com/handiism/yt2mp3/internal/transcode"
)

const maxLogs = 8

// Message types
type (
	stateMsg     pipeline.State
	eventMsg     pipeline.ProgressEvent
	fetchMsg     fetch.Event
	transcodeMsg transcode.Progress
)

// Model is the Bubble Tea model of the fetch and transcode stages.
type Model struct {
	state    pipeline.State
	title    string
	spinner  spinner.Model
	progress progress.Model
	logs     []pipeline.ProgressEvent
	verbose  bool
	cancel   context.CancelFunc

	// Fetch progress
	received int64
	total    int64
	rate     float64

	// Transcode progress
	percent int
	kbps    float64
}

// NewModel creates the progress model. cancel is called on ctrl+c.
func NewModel(cancel context.CancelFunc, verbose bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return Model{
		state:    pipeline.StateIdle,
		spinner:  sp,
		progress: prog,
		verbose:  verbose,
		cancel:   cancel,
		total:    -1,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateMsg:
		m.state = pipeline.State(msg)

	case eventMsg:
		if msg.Level == pipeline.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, pipeline.ProgressEvent(msg))
		// Keep only the most recent lines
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case fetchMsg:
		switch msg.Kind {
		case fetch.EventMetadataReady:
			m.title = msg.Video.Title
		case fetch.EventResponseStarted:
			m.total = msg.Total
			m.received = 0
		case fetch.EventChunkReceived:
			m.received = msg.Received
			m.rate = msg.Rate
		}

	case transcodeMsg:
		m.percent = min(m.percent+msg.Delta, 100)
		if msg.Kbps > 0 {
			m.kbps = msg.Kbps
		}
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("yt2mp3"))
	if m.title != "" {
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render(m.title))
	}
	b.WriteString("\n\n")

	switch m.state {
	case pipeline.StateFetching:
		b.WriteString(m.viewFetching())
	case pipeline.StateTranscoding:
		b.WriteString(m.viewTranscoding())
	}

	for _, e := range m.logs {
		b.WriteString(RenderEvent(e))
		b.WriteString("\n")
	}

	if !m.state.Terminal() && m.state != pipeline.StateTaggingMetadata {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("ctrl+c: cancel"))
	}
	return b.String()
}

func (m Model) viewFetching() string {
	if m.total <= 0 {
		// Size unknown: no bar, just bytes and rate
		return fmt.Sprintf("%s %s\n\n", m.spinner.View(), infoStyle.Render(fmt.Sprintf(
			"Downloading %s • %s/s",
			humanize.Bytes(uint64(m.received)),
			humanize.Bytes(uint64(m.rate)),
		)))
	}

	percent := float64(m.received) / float64(m.total)
	return fmt.Sprintf("%s\n%s\n\n", m.progress.ViewAs(min(percent, 1)), infoStyle.Render(fmt.Sprintf(
		"Downloading %s / %s • %s/s",
		humanize.Bytes(uint64(m.received)),
		humanize.Bytes(uint64(m.total)),
		humanize.Bytes(uint64(m.rate)),
	)))
}

func (m Model) viewTranscoding() string {
	status := fmt.Sprintf("Converting %d%%", m.percent)
	if m.kbps > 0 {
		status += fmt.Sprintf(" • %.0f kbps", m.kbps)
	}
	return fmt.Sprintf("%s\n%s\n\n", m.progress.ViewAs(float64(m.percent)/100), infoStyle.Render(status))
}

// Progress runs the progress Model in its own Bubble Tea program and
// forwards pipeline hooks to it. Once the program has exited, events are
// written to out as plain lines instead.
type Progress struct {
	program *tea.Program
	out     io.Writer
	verbose bool
	done    chan struct{}
	err     error
	once    sync.Once
	mu      sync.Mutex
}

// NewProgress creates a Progress drawing to out. Call Start before Run on
// the pipeline.
func NewProgress(cancel context.CancelFunc, verbose bool, out io.Writer, opts ...tea.ProgramOption) *Progress {
	opts = append([]tea.ProgramOption{tea.WithOutput(out)}, opts...)
	return &Progress{
		program: tea.NewProgram(NewModel(cancel, verbose), opts...),
		out:     out,
		verbose: verbose,
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background.
func (p *Progress) Start() {
	go func() {
		defer close(p.done)
		_, p.err = p.program.Run()
	}()
}

// Stop quits the program and waits for the terminal to be restored. It is
// safe to call more than once.
func (p *Progress) Stop() error {
	p.once.Do(func() {
		p.program.Quit()
		<-p.done
	})
	return p.err
}

func (p *Progress) stopped() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *Progress) event(e pipeline.ProgressEvent) {
	if !p.stopped() {
		p.program.Send(eventMsg(e))
		return
	}
	if e.Level == pipeline.LevelVerbose && !p.verbose {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, RenderEvent(e))
}

// Hooks returns pipeline hooks feeding this view. Progress events that
// arrive after Stop are printed to out; the other hooks are dropped.
func (p *Progress) Hooks() pipeline.Hooks {
	return pipeline.Hooks{
		OnState:     func(s pipeline.State) { p.program.Send(stateMsg(s)) },
		OnProgress:  p.event,
		OnFetch:     func(e fetch.Event) { p.program.Send(fetchMsg(e)) },
		OnTranscode: func(pr transcode.Progress) { p.program.Send(transcodeMsg(pr)) },
	}
}
