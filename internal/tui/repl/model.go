// ============================================================================
// Quill - embeddable expression language
// ============================================================================
//
// Package:     repl
// Description: Bubble Tea model for the interactive Quill session: a
//              scrolling transcript, a single line prompt with history and
//              colon commands
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package repl

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/quill"
	"github.com/msto63/quill/internal/tui"
	"github.com/msto63/quill/pkg/core/version"
)

// DefaultPrompt is shown when Config.Prompt is empty
const DefaultPrompt = "quill> "

const helpText = `Commands:
  :help         show this help
  :env          show the global bindings
  :reset        discard all bindings and run the prelude again
  :clear        clear the transcript
  :quit, :q     leave the session

Keys: enter evaluate, up/down history, pgup/pgdown scroll,
      ctrl+c cancel a running evaluation or quit`

// Config configures a REPL session
type Config struct {
	Engine *quill.Engine

	// Output must be the writer the engine's print builtins write to.
	// It is drained after every evaluation. Nil means print output goes
	// elsewhere.
	Output *bytes.Buffer

	Prompt  string
	History *History
	Logger  *qlog.Logger
}

type entryKind int

const (
	entryInput entryKind = iota
	entryValue
	entryOutput
	entryError
	entrySystem
)

type entry struct {
	kind entryKind
	text string
	err  error
}

// evalDoneMsg is sent when an evaluation started from the prompt finishes
type evalDoneMsg struct {
	result *quill.Result
	output string
	err    error
}

// resetDoneMsg is sent when :reset finishes
type resetDoneMsg struct {
	output string
	err    error
}

// Model is the REPL state
type Model struct {
	engine  *quill.Engine
	output  *bytes.Buffer
	history *History
	logger  *qlog.Logger
	prompt  string

	input    textinput.Model
	viewport viewport.Model
	entries  []entry

	width  int
	height int
	ready  bool

	running  bool
	cancel   context.CancelFunc
	quitting bool
}

// New creates a REPL model
func New(cfg Config) (Model, error) {
	if cfg.Engine == nil {
		return Model{}, qerror.New("REPL needs an engine").WithCode(qerror.CodeInvalidInput)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.History == nil {
		cfg.History = NewHistory("", DefaultHistorySize)
	}
	if cfg.Logger == nil {
		cfg.Logger = qlog.GetDefault()
	}

	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.PromptStyle = tui.PromptStyle
	ti.Placeholder = "expression or :help"
	ti.Focus()

	m := Model{
		engine:   cfg.Engine,
		output:   cfg.Output,
		history:  cfg.History,
		logger:   cfg.Logger.WithField("component", "quill-repl"),
		prompt:   cfg.Prompt,
		input:    ti,
		viewport: viewport.New(80, 20),
	}
	m.addEntry(entry{kind: entrySystem, text: fmt.Sprintf("Quill %s, type :help for commands", version.Release)})
	if out := drain(m.output); out != "" {
		m.addEntry(entry{kind: entryOutput, text: strings.TrimRight(out, "\n")})
	}
	return m, nil
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Title + blank line
		footerHeight := 4 // Box border + input + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		m.viewport.Width = msg.Width - 4
		m.viewport.Height = viewportHeight
		m.viewport.YPosition = headerHeight
		m.input.Width = msg.Width - len(m.prompt) - 2
		m.ready = true
		m.updateViewportContent()

	case evalDoneMsg:
		m.finish()
		if msg.output != "" {
			m.addEntry(entry{kind: entryOutput, text: strings.TrimRight(msg.output, "\n")})
		}
		switch {
		case msg.err != nil:
			m.addEntry(entry{kind: entryError, text: tui.DescribeError(msg.err), err: msg.err})
		case msg.result != nil && msg.result.HasValue():
			m.addEntry(entry{kind: entryValue, text: msg.result.String()})
		}
		return m, nil

	case resetDoneMsg:
		m.finish()
		if msg.output != "" {
			m.addEntry(entry{kind: entryOutput, text: strings.TrimRight(msg.output, "\n")})
		}
		if msg.err != nil {
			m.addEntry(entry{kind: entryError, text: tui.DescribeError(msg.err), err: msg.err})
		} else {
			m.addEntry(entry{kind: entrySystem, text: "Environment reset"})
		}
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m.quit()

	case tea.KeyCtrlD:
		if m.input.Value() == "" && !m.running {
			return m.quit()
		}

	case tea.KeyUp:
		if entry, ok := m.history.Previous(m.input.Value()); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if entry, ok := m.history.Next(); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		line := strings.TrimSpace(m.input.Value())
		if line == "" {
			return m, nil
		}
		m.input.Reset()
		m.history.Add(line)
		if strings.HasPrefix(line, ":") {
			return m.command(line)
		}
		m.addEntry(entry{kind: entryInput, text: m.prompt + line})
		return m.evaluate(line)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) command(line string) (tea.Model, tea.Cmd) {
	m.addEntry(entry{kind: entryInput, text: m.prompt + line})

	switch strings.Fields(line)[0] {
	case ":quit", ":q", ":exit":
		return m.quit()

	case ":help":
		m.addEntry(entry{kind: entrySystem, text: helpText})

	case ":env":
		m.addEntry(entry{kind: entrySystem, text: strings.Join(m.engine.Root().Dump(), "\n")})

	case ":clear":
		m.entries = nil
		m.updateViewportContent()

	case ":reset":
		engine, out := m.engine, m.output
		m.start()
		return m, func() tea.Msg {
			err := engine.Reset(context.Background())
			return resetDoneMsg{output: drain(out), err: err}
		}

	default:
		m.addEntry(entry{kind: entryError, text: fmt.Sprintf("Unknown command %s (try :help)", line)})
	}
	return m, nil
}

// evaluate runs source on the engine off the UI goroutine
func (m Model) evaluate(source string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.start()
	m.cancel = cancel

	engine, out := m.engine, m.output
	return m, func() tea.Msg {
		defer cancel()
		result, err := engine.Execute(ctx, source)
		return evalDoneMsg{result: result, output: drain(out), err: err}
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if err := m.history.Save(); err != nil {
		m.logger.Warn("Saving history failed", qlog.Fields{"error": err.Error()})
	}
	return m, tea.Quit
}

func (m *Model) start() {
	m.running = true
	m.input.PromptStyle = tui.BusyPromptStyle
}

func (m *Model) finish() {
	m.running = false
	m.cancel = nil
	m.input.PromptStyle = tui.PromptStyle
}

func (m *Model) addEntry(e entry) {
	m.entries = append(m.entries, e)
	m.updateViewportContent()
}

func (m *Model) updateViewportContent() {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, renderEntry(e))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func renderEntry(e entry) string {
	switch e.kind {
	case entryInput:
		return tui.InputEchoStyle.Render(e.text)
	case entryValue:
		return tui.ValueStyle.Render(e.text)
	case entryOutput:
		return tui.OutputStyle.Render(e.text)
	case entryError:
		if e.err == nil {
			return tui.ErrorMessageStyle.Render(e.text)
		}
		return tui.RenderError(e.err)
	default:
		return tui.SystemMessageStyle.Render(e.text)
	}
}

// View renders the session
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(tui.RenderTitle("Quill") + " " + tui.SubtitleStyle.Render(version.Release))
	b.WriteString("\n\n")
	b.WriteString(tui.TranscriptBoxStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.running {
		b.WriteString(tui.RenderHelp("evaluating... ctrl+c cancels"))
	} else {
		b.WriteString(tui.RenderHelp(":help commands • ↑/↓ history • ctrl+c quit"))
	}
	return b.String()
}

// Transcript returns the session transcript without styling
func (m Model) Transcript() string {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, e.text)
	}
	return strings.Join(lines, "\n")
}

// Running reports whether an evaluation is in progress
func (m Model) Running() bool {
	return m.running
}

// Run starts an interactive session on the terminal
func Run(cfg Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func drain(out *bytes.Buffer) string {
	if out == nil {
		return ""
	}
	s := out.String()
	out.Reset()
	return s
}
