package tui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/yt2mp3/internal/fetch"
	"github.com/handiism/yt2mp3/internal/metadata"
	"github.com/handiism/yt2mp3/internal/model"
	"github.com/handiism/yt2mp3/internal/pipeline"
	"github.com/handiism/yt2mp3/internal/transcode"
)

func update(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPromptModelAnswer(t *testing.T) {
	m := update(t, newPromptModel(metadata.FieldAlbum, ""), typeText("Homework"), tea.KeyMsg{Type: tea.KeyEnter})

	pm := m.(promptModel)
	if !pm.done || pm.answer != "Homework" || pm.err != nil {
		t.Errorf("got done=%v answer=%q err=%v", pm.done, pm.answer, pm.err)
	}
	if !strings.Contains(pm.View(), "Homework") {
		t.Errorf("final view %q lacks answer", pm.View())
	}
}

func TestPromptModelDefault(t *testing.T) {
	m := update(t, newPromptModel(metadata.FieldTitle, "Song"), tea.KeyMsg{Type: tea.KeyEnter})

	pm := m.(promptModel)
	if pm.answer != "" {
		t.Errorf("answer = %q, want empty so the default applies", pm.answer)
	}
	if !strings.Contains(pm.View(), "Title*:") || !strings.Contains(pm.View(), "Song") {
		t.Errorf("view = %q", pm.View())
	}
}

func TestPromptModelTabEditsDefault(t *testing.T) {
	m := update(t, newPromptModel(metadata.FieldTitle, "Song"),
		tea.KeyMsg{Type: tea.KeyTab},
		typeText(" (Live)"),
		tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.(promptModel).answer; got != "Song (Live)" {
		t.Errorf("answer = %q, want %q", got, "Song (Live)")
	}
}

func TestPromptModelKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyType
		want error
	}{
		{"ctrl+c interrupts", tea.KeyCtrlC, ErrInterrupted},
		{"ctrl+d ends input", tea.KeyCtrlD, io.EOF},
		{"esc ends input", tea.KeyEsc, io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := update(t, newPromptModel(metadata.FieldGenre, ""), tea.KeyMsg{Type: tt.key})
			if err := m.(promptModel).err; err != tt.want {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestModelFetchKnownSize(t *testing.T) {
	video := &model.Video{Title: "Band - Song"}
	m := update(t, NewModel(nil, false),
		stateMsg(pipeline.StateFetching),
		fetchMsg{Kind: fetch.EventMetadataReady, Video: video},
		fetchMsg{Kind: fetch.EventResponseStarted, Total: 2000000},
		fetchMsg{Kind: fetch.EventChunkReceived, Chunk: 1000000, Received: 1000000, Rate: 500000},
	)

	view := m.View()
	for _, want := range []string{"Band - Song", "1.0 MB / 2.0 MB", "500 kB/s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestModelFetchUnknownSize(t *testing.T) {
	m := update(t, NewModel(nil, false),
		stateMsg(pipeline.StateFetching),
		fetchMsg{Kind: fetch.EventResponseStarted, Total: -1},
		fetchMsg{Kind: fetch.EventChunkReceived, Chunk: 4096, Received: 4096, Rate: 4096},
	)

	view := m.View()
	if !strings.Contains(view, "Downloading 4.1 kB •") {
		t.Errorf("view = %q", view)
	}
	if strings.Contains(view, " / ") {
		t.Errorf("unknown size rendered a total: %q", view)
	}
}

func TestModelTranscodePercent(t *testing.T) {
	m := NewModel(nil, false)
	var tm tea.Model = m
	tm = update(t, tm, stateMsg(pipeline.StateTranscoding))
	for _, delta := range []int{0, 5, 0, 7, 0, 0, 88} {
		tm = update(t, tm, transcodeMsg(transcode.Progress{Delta: delta, Kbps: 192}))
	}

	got := tm.(Model)
	if got.percent != 100 {
		t.Errorf("percent = %d, want 100", got.percent)
	}
	if !strings.Contains(got.View(), "Converting 100% • 192 kbps") {
		t.Errorf("view = %q", got.View())
	}
}

func TestModelFiltersVerbose(t *testing.T) {
	quiet := update(t, NewModel(nil, false),
		eventMsg{Message: "debug detail", Level: pipeline.LevelVerbose},
		eventMsg{Message: "Found video", Level: pipeline.LevelInfo},
	).(Model)
	if len(quiet.logs) != 1 {
		t.Errorf("logs = %d, want 1", len(quiet.logs))
	}

	loud := update(t, NewModel(nil, true),
		eventMsg{Message: "debug detail", Level: pipeline.LevelVerbose},
	).(Model)
	if len(loud.logs) != 1 {
		t.Errorf("verbose logs = %d, want 1", len(loud.logs))
	}
}

func TestModelKeepsRecentLogs(t *testing.T) {
	var m tea.Model = NewModel(nil, false)
	for i := 0; i < maxLogs+3; i++ {
		m = update(t, m, eventMsg{Message: "line", Level: pipeline.LevelInfo})
	}
	if n := len(m.(Model).logs); n != maxLogs {
		t.Errorf("logs = %d, want %d", n, maxLogs)
	}
}

func TestModelCtrlCCancels(t *testing.T) {
	cancelled := false
	m := NewModel(func() { cancelled = true }, false)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !cancelled {
		t.Error("cancel not called")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestRenderEvent(t *testing.T) {
	out := RenderEvent(pipeline.ProgressEvent{Message: "disk full", Level: pipeline.LevelWarning})
	if !strings.Contains(out, "! disk full") {
		t.Errorf("RenderEvent() = %q", out)
	}
}

func TestProgressPrintsEventsAfterStop(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(nil, false, &out, tea.WithInput(nil))
	p.Start()
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}

	hooks := p.Hooks()
	hooks.OnState(pipeline.StateTaggingMetadata)
	hooks.OnProgress(pipeline.ProgressEvent{Message: "cover art unavailable", Level: pipeline.LevelWarning})
	hooks.OnProgress(pipeline.ProgressEvent{Message: "tag frames", Level: pipeline.LevelVerbose})
	hooks.OnProgress(pipeline.ProgressEvent{Message: "metadata written", Level: pipeline.LevelSuccess})

	got := out.String()
	for _, want := range []string{"! cover art unavailable", "✓ metadata written"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q lacks %q", got, want)
		}
	}
	if strings.Contains(got, "tag frames") {
		t.Errorf("verbose event printed without verbose: %q", got)
	}
}
