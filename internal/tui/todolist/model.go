// Package todolist is the interactive to-do screen. Every colour it draws
// comes from the theme provider, and it restyles itself on every change.
package todolist

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/todos/internal/logger"
	"github.com/alexisbeaulieu97/todos/internal/theme"
	"github.com/alexisbeaulieu97/todos/internal/todo"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxTodoLength         = 280
)

// Options configures a Model.
type Options struct {
	Provider       *theme.Provider
	Backend        todo.Backend
	Logger         *logger.Logger
	PollInterval   time.Duration
	RequestTimeout time.Duration
	UseUnicode     bool
}

// Model is the to-do list screen
type Model struct {
	// Dependencies
	provider *theme.Provider
	backend  todo.Backend
	log      *logger.Logger
	sub      *themeSubscription

	// Theme state
	isDarkMode  bool
	themeLoaded bool
	styles      styles

	// Core data
	todos  []todo.Todo
	loaded bool

	// UI state
	cursor   int
	editing  bool
	showHelp bool
	pending  int

	// Component state
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// Error state
	showError bool
	errorMsg  string

	// Dimensions
	width  int
	height int

	// Configuration
	pollInterval   time.Duration
	requestTimeout time.Duration
	useUnicode     bool
}

// NewModel creates the screen and subscribes it to the provider. Call Close
// when the program exits.
func NewModel(opts Options) Model {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	state := opts.Provider.State()

	s := spinner.New()
	s.Spinner = spinner.Dot
	if !opts.UseUnicode {
		s.Spinner = spinner.Line
	}

	in := textinput.New()
	in.Placeholder = "What needs to be done?"
	in.CharLimit = maxTodoLength
	in.Prompt = "+ "

	m := Model{
		provider:       opts.Provider,
		backend:        opts.Backend,
		log:            opts.Logger.WithField("component", "tui"),
		sub:            subscribe(opts.Provider),
		isDarkMode:     state.IsDarkMode,
		input:          in,
		spinner:        s,
		help:           help.New(),
		keys:           defaultKeyMap(),
		width:          80,
		height:         24,
		pollInterval:   opts.PollInterval,
		requestTimeout: timeout,
		useUnicode:     opts.UseUnicode,
	}
	m.applyScheme(state.Colors)

	return m
}

// Init starts the list query, the theme listeners and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadTodosCmd(m.backend, m.requestTimeout),
		waitForThemeCmd(m.sub),
		waitForReadyCmd(m.sub),
		pollCmd(m.pollInterval),
	)
}

// Close detaches the model from the provider.
func (m Model) Close() {
	if m.sub != nil {
		m.sub.close()
	}
}

// applyScheme rebuilds every style from scheme.
func (m *Model) applyScheme(scheme theme.ColorScheme) {
	m.styles = buildStyles(scheme)
	m.spinner.Style = m.styles.spinner
	m.input.TextStyle = m.styles.text
	m.input.PlaceholderStyle = m.styles.muted
	m.input.PromptStyle = m.styles.title.UnsetPadding()
	m.input.Cursor.Style = m.styles.title.UnsetPadding()
	m.help.Styles.ShortKey = m.styles.text.Bold(true)
	m.help.Styles.ShortDesc = m.styles.muted
	m.help.Styles.FullKey = m.styles.text.Bold(true)
	m.help.Styles.FullDesc = m.styles.muted
	m.help.Styles.ShortSeparator = m.styles.muted
	m.help.Styles.FullSeparator = m.styles.muted
}

// IsDarkMode reports the mode the screen is currently drawn in.
func (m Model) IsDarkMode() bool {
	return m.isDarkMode
}

// Scheme returns the scheme the screen is currently drawn with.
func (m Model) Scheme() theme.ColorScheme {
	return m.styles.scheme
}

// Todos returns the list as last received.
func (m Model) Todos() []todo.Todo {
	return m.todos
}

// SelectedTodo returns the to-do under the cursor
func (m Model) SelectedTodo() (todo.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return todo.Todo{}, false
	}
	return m.todos[m.cursor], true
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	if len(m.todos) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.todos) - 1
	}
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	if len(m.todos) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.todos) {
		m.cursor = 0
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// IsEditing reports whether the add input has focus.
func (m Model) IsEditing() bool {
	return m.editing
}

// ErrorMessage returns the banner text, empty when no error is shown.
func (m Model) ErrorMessage() string {
	if !m.showError {
		return ""
	}
	return m.errorMsg
}

func (m *Model) setError(msg string) {
	m.showError = true
	m.errorMsg = msg
}

func (m *Model) clearError() {
	m.showError = false
	m.errorMsg = ""
}
