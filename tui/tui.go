// Package tui provides a Bubble Tea terminal UI for epicquest.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/epicquest/cli"
	"github.com/nathoo/epicquest/engine"
	"github.com/nathoo/epicquest/engine/parser"
	"github.com/nathoo/epicquest/engine/snapshot"
	"github.com/nathoo/epicquest/types"
)

// Starter creates the session once the hero has a name.
type Starter func(name string) (*engine.Engine, error)

// Options configures the TUI.
type Options struct {
	Name         string // skip the naming prompt when set
	FightDelay   time.Duration
	ExploreDelay time.Duration
}

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the epicquest TUI.
type Model struct {
	start  Starter
	engine *engine.Engine // nil until the hero is named
	opts   Options

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width     int
	height    int
	ready     bool
	trace     bool
	quitting  bool
	busy      bool // an action has begun and awaits its tick
	busyLabel string
	lastCmd   string
}

// gameOutputMsg carries output into the Update loop.
type gameOutputMsg struct {
	input    string        // echoed player input (empty for intro)
	events   []types.Event // engine output
	lines    []string      // extra plain lines (system or trace)
	isSystem bool          // true for meta-command output
}

// resolveMsg fires when an action's delay has elapsed.
type resolveMsg struct{}

// New creates a TUI model. The session is created by start, either right
// away when opts.Name is set or after the player types a name.
func New(start Starter, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "Hero name: "
	ti.Placeholder = "Brave Adventurer"
	ti.Focus()
	ti.CharLimit = 40
	ti.PromptStyle = styleInputPrompt

	return Model{
		start:   start,
		opts:    opts,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(start Starter, opts Options) error {
	m := New(start, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command: either the naming prompt or, with a
// preset name, the started session's intro.
func (m Model) Init() tea.Cmd {
	if m.opts.Name != "" {
		name := m.opts.Name
		return tea.Batch(textinput.Blink, func() tea.Msg { return nameMsg(name) })
	}
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return gameOutputMsg{lines: []string{"What is your name, hero? (Enter for the default)"}}
	})
}

// nameMsg delivers a preset hero name.
type nameMsg string

// Update handles messages (key presses, window resize, game output, ticks).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if m.engine != nil {
				if prev, ok := m.history.Prev(m.input.Value()); ok {
					m.input.SetValue(prev)
					m.input.CursorEnd()
				}
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case nameMsg:
		return m.startSession(string(msg))

	case resolveMsg:
		return m.resolve(), nil

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if m.engine == nil {
		return m.startSession(input)
	}
	if input == "" {
		return m, nil
	}

	m.history.Push(input)

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m.play(input)
}

// startSession creates the engine for name and shows the intro and board.
func (m Model) startSession(name string) (tea.Model, tea.Cmd) {
	eng, err := m.start(name)
	if err != nil {
		m = m.appendOutput(gameOutputMsg{lines: []string{fmt.Sprintf("Could not start: %v", err)}, isSystem: true})
		return m, nil
	}
	m.engine = eng
	m.input.Prompt = "> "
	m.input.Placeholder = "fight, explore, offers, accept <n>, quests"
	m.input.CharLimit = 256

	intro := eng.Intro()
	offers := eng.Offers()
	m = m.appendOutput(gameOutputMsg{events: append(intro.Events, offers.Events...)})
	return m, nil
}

// play runs a game command. Fight and explore begin at once and resolve
// after their delay; the player cannot start another action meanwhile.
func (m Model) play(input string) (tea.Model, tea.Cmd) {
	var begin func() (types.Result, error)
	var delay time.Duration

	switch parser.Parse(input).Verb {
	case parser.VerbFight:
		begin, delay = m.engine.BeginFight, m.opts.FightDelay
		m.busyLabel = "Fighting..."
	case parser.VerbExplore:
		begin, delay = m.engine.BeginExplore, m.opts.ExploreDelay
		m.busyLabel = "Exploring..."
	}

	if begin == nil {
		result := m.engine.Step(input)
		m = m.appendOutput(gameOutputMsg{input: input, events: result.Events, lines: m.traceLines(result)})
		return m, nil
	}

	if m.busy {
		m = m.appendOutput(gameOutputMsg{input: input, lines: []string{"You are busy. Wait for the current action to finish."}, isSystem: true})
		return m, nil
	}

	result, err := begin()
	if err != nil {
		m = m.appendOutput(gameOutputMsg{input: input, lines: []string{err.Error()}, isSystem: true})
		return m, nil
	}
	m.busy = true
	m = m.appendOutput(gameOutputMsg{input: input, events: result.Events})
	return m, tea.Tick(delay, func(time.Time) tea.Msg { return resolveMsg{} })
}

// resolve applies the pending action once its delay is over.
func (m Model) resolve() Model {
	m.busy = false
	if m.engine == nil {
		return m
	}
	result, err := m.engine.Resolve()
	if err != nil {
		return m.appendOutput(gameOutputMsg{lines: []string{err.Error()}, isSystem: true})
	}
	return m.appendOutput(gameOutputMsg{events: result.Events, lines: m.traceLines(result)})
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, ev := range msg.events {
		m.rawLines = append(m.rawLines, rawLine{text: ev.Text, kind: kindForCategory(ev.Category)})
	}
	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordwrap.String(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Farewell, " + m.engine.State.Player.Name + "."}, true

	case "/help":
		help := append([]string(nil), cli.HelpLines...)
		return append(help, "", "Navigation: PgUp/PgDn to scroll, Up/Down for command history"), false

	case "/state":
		data, err := snapshot.Marshal(m.engine.Snapshot())
		if err != nil {
			return []string{fmt.Sprintf("State dump failed: %v", err)}, false
		}
		return strings.Split(string(data), "\n"), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) traceLines(result types.Result) []string {
	if !m.trace {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d, turn %d", len(result.Events), result.Snapshot.Turn)}
	for _, ev := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   %s", ev.Category))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
