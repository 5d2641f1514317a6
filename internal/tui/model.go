// Package tui provides the Bubble Tea-based terminal for PurbayanOS.
//
// The screen has three parts:
//   - A title bar with the theme name and flag progress
//   - A scrollback viewport holding every prompt and command output
//   - A single-line prompt (textinput) at the bottom
//
// Typing `snake` swaps the scrollback for the Snake board until the player
// quits. The engine ticks on its own goroutine and reports frames through a
// channel that Update drains, the same way device events reach the model.
package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PPRAMANIK62/purbayanos/internal/logging"
	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/snake"
	"github.com/PPRAMANIK62/purbayanos/internal/terminal"
	"github.com/PPRAMANIK62/purbayanos/internal/ui/theme"
)

// chromeHeight is the number of rows outside the viewport: title bar, prompt
// and status bar.
const chromeHeight = 3

// Options configures the terminal program.
type Options struct {
	Width, Height int  // initial size, replaced by the first WindowSizeMsg
	StartSnake    bool // open straight into a game
	ExitWithGame  bool // quit the program when the player leaves Snake
	AutoSave      bool // persist state after every command

	Bell   io.Writer              // receives "\a" when sound is on; nil disables
	OpenFn func(url string) error // opens links; nil uses the platform opener
}

// row is one line of scrollback. Echoed input rows carry the prompt they were
// typed at so they can be restyled when the theme changes.
type row struct {
	prompt string
	line   shell.Line
}

// Model is the Bubble Tea model for the terminal.
type Model struct {
	session *terminal.Session
	opts    Options
	theme   theme.Theme

	input    textinput.Model
	viewport viewport.Model
	rows     []row

	// History navigation: histPos == len(history) means editing a new line.
	histPos int
	draft   string

	// Snake mode
	engine     *snake.Engine
	inSnake    bool
	board      []string
	notices    []shell.Line // flag announcements shown under the board
	events     chan tea.Msg
	eventsDone chan struct{}

	width    int
	height   int
	quitting bool
}

// snakeFrameMsg carries a rendered board from the engine goroutine.
type snakeFrameMsg []string

// snakeNoticeMsg carries lines the session produced during a game.
type snakeNoticeMsg []shell.Line

// NewModel creates the terminal model for a session.
func NewModel(session *terminal.Session, opts Options) Model {
	th := theme.Get(session.Store().Theme())

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Focus()

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	m := Model{
		session:    session,
		opts:       opts,
		theme:      th,
		input:      ti,
		viewport:   viewport.New(width, max(height-chromeHeight, 1)),
		histPos:    len(session.Store().History()),
		events:     make(chan tea.Msg, 16),
		eventsDone: make(chan struct{}),
		width:      width,
		height:     height,
	}
	m.applyTheme()
	m.appendLines(session.Welcome())
	m.refresh()

	if opts.StartSnake {
		m = m.startSnake()
	}
	return m
}

// Init starts the cursor blink and begins listening for engine events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		listenForEvents(m.events, m.eventsDone),
	)
}

// Update handles incoming messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inSnake {
			return m.handleSnakeKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.input.Width = max(msg.Width-len(m.session.Prompt())-1, 1)
		m.refresh()
		return m, nil

	case snakeFrameMsg:
		m.board = msg
		return m, listenForEvents(m.events, m.eventsDone)

	case snakeNoticeMsg:
		m.notices = append(m.notices, msg...)
		m.ring()
		return m, listenForEvents(m.events, m.eventsDone)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input at the prompt.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()

	case "ctrl+c":
		if m.input.Value() == "" {
			return m.quit()
		}
		// Abandon the line like bash does
		m.echo(m.input.Value() + "^C")
		m.input.SetValue("")
		m.histPos = len(m.session.Store().History())
		m.refresh()
		return m, nil

	case "ctrl+d":
		if m.input.Value() == "" {
			return m.quit()
		}
		return m, nil

	case "ctrl+l":
		m.rows = nil
		m.refresh()
		return m, nil

	case "up":
		m.historyPrev()
		return m, nil

	case "down":
		m.historyNext()
		return m, nil

	case "tab":
		m.complete()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current line and applies the Result's side effects.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")
	m.echo(line)

	before := len(m.session.Store().FoundFlags())
	res := m.session.Execute(line)
	m.histPos = len(m.session.Store().History())
	m.draft = ""

	if res.ClearScreen {
		m.rows = nil
	}
	m.appendLines(res.Lines)
	m.applyTheme()

	if len(m.session.Store().FoundFlags()) > before || res.HasError() {
		m.ring()
	}
	if m.opts.AutoSave {
		_ = m.session.Save()
	}

	if res.OpenURL != "" {
		m.open(res.OpenURL)
	}
	if res.Exit {
		return m.quit()
	}
	if res.StartGame == shell.GameSnake {
		m = m.startSnake()
	}
	m.refresh()
	return m, nil
}

// handleSnakeKey routes keys to the engine while a game is on screen.
func (m Model) handleSnakeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.engine.HandleKey(msg.String()) != snake.KeyQuit {
		return m, nil
	}

	m.inSnake = false
	// A game abandoned mid-run never reaches OnGameOver.
	m.session.Store().UpdateHighScore(m.engine.HighScore())
	m.appendLines([]shell.Line{
		shell.Muted(fmt.Sprintf("Snake: score %d, high score %d", m.engine.Score(), m.engine.HighScore())),
	})
	m.appendLines(m.notices)
	m.notices = nil
	m.board = nil
	if m.opts.ExitWithGame {
		return m.quit()
	}
	if m.opts.AutoSave {
		_ = m.session.Save()
	}
	m.refresh()
	return m, nil
}

// startSnake switches to the board and starts a fresh game. The engine is
// created once per model and reused for later games.
func (m Model) startSnake() Model {
	if m.engine == nil {
		events, done := m.events, m.eventsDone
		m.engine = m.session.NewSnake(terminal.SnakeHost{
			Frame: func(rows []string) {
				// Frames are disposable; drop one rather than stall the ticker.
				select {
				case events <- snakeFrameMsg(rows):
				default:
				}
			},
			Notice: func(lines []shell.Line) {
				select {
				case events <- snakeNoticeMsg(lines):
				case <-done:
				}
			},
		})
	}
	m.inSnake = true
	m.notices = nil
	m.engine.Start()
	m.board = m.engine.Frame()
	return m
}

// quit stops any running game, persists state and exits the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.engine != nil {
		m.engine.Stop()
	}
	if !m.quitting {
		close(m.eventsDone)
	}
	m.quitting = true
	if err := m.session.Save(); err != nil {
		logging.Warn("state not saved on exit", logging.Err(err))
	}
	return m, tea.Quit
}

// historyPrev recalls the previous history entry, keeping the unsent line as
// a draft.
func (m *Model) historyPrev() {
	history := m.session.Store().History()
	if m.histPos > len(history) {
		m.histPos = len(history)
	}
	if m.histPos == 0 {
		return
	}
	if m.histPos == len(history) {
		m.draft = m.input.Value()
	}
	m.histPos--
	m.input.SetValue(history[m.histPos])
	m.input.CursorEnd()
}

// historyNext moves toward the newest entry and finally back to the draft.
func (m *Model) historyNext() {
	history := m.session.Store().History()
	if m.histPos >= len(history) {
		return
	}
	m.histPos++
	if m.histPos == len(history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(history[m.histPos])
	}
	m.input.CursorEnd()
}

// complete applies tab completion. A single match replaces the word; several
// matches extend it to their common prefix, or list them when the prefix adds
// nothing.
func (m *Model) complete() {
	line := m.input.Value()
	c := m.session.Complete(line)
	if len(c.Matches) == 0 {
		return
	}

	base := line[:len(line)-len(c.Word)]
	switch {
	case len(c.Matches) == 1:
		match := c.Matches[0]
		if !strings.HasSuffix(match, "/") {
			match += " "
		}
		m.input.SetValue(base + match)
	case c.Common != c.Word:
		m.input.SetValue(base + c.Common)
	default:
		m.echo(line)
		m.appendLines([]shell.Line{shell.Muted(strings.Join(c.Matches, "  "))})
		m.refresh()
	}
	m.input.CursorEnd()
}

// open hands a URL to the platform opener. Failure is reported in the
// scrollback, since the link is still useful to copy.
func (m *Model) open(url string) {
	fn := m.opts.OpenFn
	if fn == nil {
		fn = openBrowser
	}
	if err := fn(url); err != nil {
		logging.Warn("open url failed", logging.String("url", url), logging.Err(err))
		m.appendLines([]shell.Line{shell.Muted("Open " + url + " in your browser.")})
	}
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start opener: %w", err)
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}

// ring sounds the terminal bell when sound is enabled.
func (m *Model) ring() {
	if m.opts.Bell != nil && m.session.Store().SoundEnabled() {
		fmt.Fprint(m.opts.Bell, "\a")
	}
}

// applyTheme restyles the prompt after a possible `theme` change.
func (m *Model) applyTheme() {
	m.theme = theme.Get(m.session.Store().Theme())
	m.input.TextStyle = m.theme.Style(shell.ColorDefault)
	m.input.Cursor.Style = m.theme.Prompt
}

func (m *Model) echo(input string) {
	m.rows = append(m.rows, row{prompt: m.session.Prompt(), line: shell.Plain(input)})
}

func (m *Model) appendLines(lines []shell.Line) {
	for _, l := range lines {
		m.rows = append(m.rows, row{line: l})
	}
}

// refresh re-renders the scrollback and pins it to the bottom.
func (m *Model) refresh() {
	rendered := make([]string, len(m.rows))
	for i, r := range m.rows {
		if r.prompt != "" {
			rendered[i] = m.theme.Prompt.Render(r.prompt) + m.theme.Line(r.line)
			continue
		}
		rendered[i] = m.theme.Line(r.line)
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	m.viewport.GotoBottom()
}

// listenForEvents returns a command that waits for the next engine event.
func listenForEvents(events <-chan tea.Msg, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-done:
			return nil
		}
	}
}

// Run runs the terminal until the user exits.
func Run(session *terminal.Session, opts Options) error {
	if opts.Bell == nil {
		opts.Bell = os.Stderr
	}
	m := NewModel(session, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.engine != nil {
		fm.engine.Stop()
	}
	return nil
}
