package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/yt2mp3/internal/metadata"
)

// ErrInterrupted is returned when the user presses ctrl+c at a prompt.
var ErrInterrupted = errors.New("interrupted")

// promptModel asks for a single tag field.
type promptModel struct {
	field  metadata.Field
	def    string
	input  textinput.Model
	answer string
	err    error
	done   bool
}

func newPromptModel(field metadata.Field, def string) promptModel {
	ti := textinput.New()
	ti.Placeholder = def
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60
	return promptModel{field: field, def: def, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.answer = m.input.Value()
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.err = ErrInterrupted
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlD, tea.KeyEsc:
			m.err = io.EOF
			m.done = true
			return m, tea.Quit
		case tea.KeyTab:
			// Copy the default in for editing
			if m.input.Value() == "" && m.def != "" {
				m.input.SetValue(m.def)
				m.input.CursorEnd()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) label() string {
	label := m.field.Label()
	if m.field.Required() {
		label += "*"
	}
	return label
}

func (m promptModel) View() string {
	if m.done {
		value := m.answer
		if value == "" {
			value = m.def
		}
		return fmt.Sprintf("%s %s\n", subtitleStyle.Render(m.label()+":"), value)
	}
	help := "enter: accept • tab: edit default • esc: skip remaining"
	return fmt.Sprintf("%s %s\n%s\n", subtitleStyle.Render(m.label()+":"), m.input.View(), dimStyle.Render(help))
}

// Prompter implements metadata.Prompter with one Bubble Tea text input per
// field. The default is shown as the placeholder.
type Prompter struct {
	cancel context.CancelFunc
	opts   []tea.ProgramOption
}

// NewPrompter creates a Prompter. cancel, if not nil, is called when the
// user interrupts a prompt.
func NewPrompter(cancel context.CancelFunc, opts ...tea.ProgramOption) *Prompter {
	return &Prompter{cancel: cancel, opts: opts}
}

// Prompt runs one input program for field.
func (p *Prompter) Prompt(field metadata.Field, def string) (string, error) {
	final, err := tea.NewProgram(newPromptModel(field, def), p.opts...).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("unexpected model %T", final)
	}
	if errors.Is(m.err, ErrInterrupted) && p.cancel != nil {
		p.cancel()
	}
	return m.answer, m.err
}
