// Package session provides the interactive terminal view over a REPL session.
package session

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/forkline/internal/log"
	"github.com/zjrosen/forkline/internal/repl"
	"github.com/zjrosen/forkline/internal/ui/styles"
)

//go:embed help.md
var helpText string

const defaultHint = "enter run · ctrl+e editor · f1 help · ctrl+c quit"

// Config configures the session view.
type Config struct {
	RootData  string
	Prompt    string // defaults to "> "
	HelpStyle string // glamour standard style, defaults to "dark"
	Clipboard Clipboard
	Options   []repl.Option
}

// Model is the bubbletea model for an interactive session.
type Model struct {
	session   *repl.Session
	lines     *transcript
	prompt    string
	input     textinput.Model
	viewport  viewport.Model
	clipboard Clipboard
	helpStyle string
	help      string
	showHelp  bool
	history   []string
	histPos   int
	status    string
	width     int
	height    int
}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	lines int
	err   error
}

// New starts a session seeded with cfg.RootData.
func New(cfg Config) Model {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.HelpStyle == "" {
		cfg.HelpStyle = "dark"
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = SystemClipboard{}
	}

	lines := &transcript{}
	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.Placeholder = "new commit 'data' master"
	ti.Focus()

	m := Model{
		session:   repl.NewSession(cfg.RootData, lines, cfg.Options...),
		lines:     lines,
		prompt:    cfg.Prompt,
		input:     ti,
		viewport:  viewport.New(1, 1),
		clipboard: cfg.Clipboard,
		helpStyle: cfg.HelpStyle,
	}
	m.refresh()
	return m
}

// Session returns the underlying REPL session.
func (m Model) Session() *repl.Session {
	return m.session
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case copiedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "Clipboard copy failed", msg.err)
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("copied %d lines", msg.lines)
		}
		return m, nil

	case editorExecMsg:
		return m, msg.run()

	case scriptEditedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "Editor failed", msg.err)
			m.status = "editor failed: " + msg.err.Error()
			return m, nil
		}
		for _, line := range msg.lines {
			m.run(line)
		}
		m.input.Reset()
		m.status = fmt.Sprintf("ran %d lines", len(msg.lines))
		m.showHelp = false
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "f1":
			m.showHelp = !m.showHelp
			m.refresh()
			return m, nil
		case "ctrl+l":
			m.lines.clear()
			m.status = ""
			m.refresh()
			return m, nil
		case "ctrl+y":
			return m, m.copyTranscript()
		case "ctrl+e":
			return m, openEditor(m.input.Value())
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "up":
			m.historyBack()
			return m, nil
		case "down":
			m.historyForward()
			return m, nil
		case "enter":
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current input line through the session.
func (m *Model) submit() {
	m.run(m.input.Value())
	m.input.Reset()
	m.status = ""
	m.showHelp = false
	m.refresh()
}

// run echoes line into the transcript, executes it and records it in the
// input history.
func (m *Model) run(line string) {
	m.lines.echo(line)
	m.session.Execute(context.Background(), line)
	if strings.TrimSpace(line) != "" {
		m.history = append(m.history, line)
	}
	m.histPos = len(m.history)
}

func (m *Model) historyBack() {
	if m.histPos == 0 {
		return
	}
	m.histPos--
	m.input.SetValue(m.history[m.histPos])
	m.input.CursorEnd()
}

func (m *Model) historyForward() {
	if m.histPos >= len(m.history) {
		return
	}
	m.histPos++
	if m.histPos == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.histPos])
	m.input.CursorEnd()
}

func (m Model) copyTranscript() tea.Cmd {
	text := m.lines.plain(m.prompt)
	n := m.lines.len()
	clip := m.clipboard
	return func() tea.Msg {
		return copiedMsg{lines: n, err: clip.Copy(text)}
	}
}

// refresh reloads the viewport from the transcript or the help page.
func (m *Model) refresh() {
	if m.showHelp {
		if m.help == "" {
			m.help = m.renderHelp()
		}
		m.viewport.SetContent(m.help)
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetContent(m.lines.styled(m.prompt))
	m.viewport.GotoBottom()
}

func (m Model) renderHelp() string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.helpStyle),
		glamour.WithWordWrap(max(m.viewport.Width-2, 20)),
	)
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to create help renderer", err, "style", m.helpStyle)
		return helpText
	}
	out, err := r.Render(helpText)
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to render help", err)
		return helpText
	}
	return out
}

// View renders the transcript pane, the input line and the hint line.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title, right := "forkline", m.summary()
	if m.showHelp {
		title, right = "help", "f1 to close"
	}
	pane := styles.RenderPane(m.viewport.View(), title, right, m.width, max(m.height-2, 3), true)

	hint := m.status
	if hint == "" {
		hint = defaultHint
	}
	return pane + "\n" + m.input.View() + "\n" + styles.HintStyle.Render(hint)
}

func (m Model) summary() string {
	st := m.session.Store()
	return fmt.Sprintf("branches %d · live %d", len(st.Branches()), st.Live())
}

// SetSize updates the view dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-2, 1)
	m.viewport.Height = max(height-4, 1)
	m.input.Width = max(width-len(m.prompt)-1, 1)
	m.help = ""
	m.refresh()
	return m
}
