package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/abook/internal/command"
)

// exchange is one submitted line and what it produced.
type exchange struct {
	input string
	text  string
	isErr bool
	fatal bool
}

// Model is the Bubble Tea model for the interactive prompt.
type Model struct {
	dispatcher *command.Dispatcher
	input      textinput.Model
	help       help.Model
	keys       keyMap
	prompt     string

	transcript []exchange
	history    []string
	histIdx    int // len(history) when not browsing.

	width  int
	height int
	done   bool
	err    error
}

// NewModel creates a Model that runs submitted lines through d.
func NewModel(d *command.Dispatcher, prompt string) Model {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputStyle
	ti.Placeholder = "type a command, e.g. help"
	ti.Focus()

	return Model{
		dispatcher: d,
		input:      ti,
		help:       help.New(),
		keys:       defaultKeyMap(),
		prompt:     prompt,
	}
}

// Err returns the unexpected error that ended the session, if any.
func (m Model) Err() error { return m.err }

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.prompt)-1, 0)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Prev):
			m.browse(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.browse(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit executes the current input line.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) != "" {
		m.history = append(m.history, line)
	}
	m.histIdx = len(m.history)

	text, isErr, exit, err := step(m.dispatcher, line)
	if err != nil {
		m.err = err
		m.transcript = append(m.transcript, exchange{input: line, text: err.Error(), isErr: true, fatal: true})
		m.done = true
		return m, tea.Quit
	}
	m.transcript = append(m.transcript, exchange{input: line, text: text, isErr: isErr})
	if exit {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// browse moves through input history by delta.
func (m *Model) browse(delta int) {
	if len(m.history) == 0 {
		return
	}
	m.histIdx = min(max(m.histIdx+delta, 0), len(m.history))
	if m.histIdx == len(m.history) {
		m.input.Reset()
		return
	}
	m.input.SetValue(m.history[m.histIdx])
	m.input.CursorEnd()
}

// View renders the transcript, the prompt and the help bar.
func (m Model) View() string {
	var lines []string
	for _, ex := range m.transcript {
		lines = append(lines, promptStyle.Render(m.prompt)+inputStyle.Render(ex.input))
		if ex.text == "" {
			continue
		}
		for _, l := range strings.Split(ex.text, "\n") {
			lines = append(lines, renderReplyLine(l, ex))
		}
	}

	// Keep the newest lines when the window is too short for the transcript.
	if m.height > 0 {
		room := max(m.height-3, 1)
		if len(lines) > room {
			lines = lines[len(lines)-room:]
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if m.done {
		return b.String()
	}
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderReplyLine(line string, ex exchange) string {
	switch {
	case ex.fatal:
		return fatalStyle.Render(line)
	case ex.isErr:
		return errorStyle.Render(line)
	case strings.HasPrefix(line, "Page #"):
		return pageHeaderStyle.Render(line)
	}
	return replyStyle.Render(line)
}
