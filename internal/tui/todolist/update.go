package todolist

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/todos/internal/todo"
	apperrors "github.com/alexisbeaulieu97/todos/pkg/errors"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// System messages
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-12, 10)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditingKeys(msg)
		}
		return m.handleListKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// Theme messages
	case ThemeChangedMsg:
		m.isDarkMode = msg.State.IsDarkMode
		m.applyScheme(msg.State.Colors)
		return m, waitForThemeCmd(m.sub)

	case ThemeReadyMsg:
		m.themeLoaded = true
		m.isDarkMode = msg.State.IsDarkMode
		m.applyScheme(msg.State.Colors)
		return m, nil

	case ThemeSaveErrorMsg:
		m.log.Warn(msg.Err, "theme preference not saved")
		m.setError(fmt.Sprintf("Theme changed but could not be saved: %s", describeError(msg.Err)))
		return m, nil

	// Todo messages
	case TodosLoadedMsg:
		m.loaded = true
		m.todos = msg.Todos
		m.clampCursor()
		return m, nil

	case TodosErrorMsg:
		m.loaded = true
		m.log.Warn(msg.Err, "failed to load todos")
		m.setError(fmt.Sprintf("Couldn't load todos: %s", describeError(msg.Err)))
		return m, nil

	case MutationDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		if msg.Err != nil {
			m.log.WithField("op", msg.Op).Warn(msg.Err, "todo mutation failed")
			m.setError(fmt.Sprintf("Couldn't %s todo: %s", msg.Op, describeError(msg.Err)))
		}
		// Reload either way so optimistic edits are confirmed or undone.
		return m, loadTodosCmd(m.backend, m.requestTimeout)

	case PollTickMsg:
		cmds := []tea.Cmd{pollCmd(m.pollInterval)}
		if m.pending == 0 {
			cmds = append(cmds, loadTodosCmd(m.backend, m.requestTimeout))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// handleListKeys handles keys while browsing the list
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.DismissErr):
		if m.showError {
			m.clearError()
		} else if m.showHelp {
			m.showHelp = false
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		return m, toggleThemeCmd(m.provider, m.requestTimeout)

	case key.Matches(msg, m.keys.Up):
		m.MoveCursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.MoveCursorDown()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.editing = true
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Complete):
		selected, ok := m.SelectedTodo()
		if !ok {
			return m, nil
		}
		// Flip locally so the row updates before the backend answers.
		m.todos[m.cursor].IsCompleted = !selected.IsCompleted
		m.pending++
		return m, toggleTodoCmd(m.backend, selected.ID, m.requestTimeout)

	case key.Matches(msg, m.keys.Delete):
		selected, ok := m.SelectedTodo()
		if !ok {
			return m, nil
		}
		m.todos = append(m.todos[:m.cursor:m.cursor], m.todos[m.cursor+1:]...)
		m.clampCursor()
		m.pending++
		return m, deleteTodoCmd(m.backend, selected.ID, m.requestTimeout)

	case key.Matches(msg, m.keys.Refresh):
		return m, loadTodosCmd(m.backend, m.requestTimeout)
	}

	return m, nil
}

// handleEditingKeys handles keys while the add input has focus
func (m Model) handleEditingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		text, err := todo.NormalizeText(m.input.Value())
		if err != nil {
			// Nothing to add; keep the input open.
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		m.input.Reset()
		m.pending++
		return m, addTodoCmd(m.backend, text, m.requestTimeout)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// describeError produces a one-line banner message for err.
func describeError(err error) string {
	var remoteErr *apperrors.RemoteError
	var storageErr *apperrors.StorageError
	switch {
	case errors.As(err, &remoteErr):
		if remoteErr.Message != "" {
			return remoteErr.Message
		}
		return remoteErr.Error()
	case errors.As(err, &storageErr):
		return fmt.Sprintf("%s store: %v", storageErr.Driver, storageErr.Err)
	case errors.Is(err, todo.ErrNotFound):
		return "it no longer exists"
	default:
		return err.Error()
	}
}
