package todolist

import (
	"github.com/alexisbeaulieu97/todos/internal/theme"
	"github.com/alexisbeaulieu97/todos/internal/todo"
)

// Theme messages

// ThemeChangedMsg carries the provider state after a change.
type ThemeChangedMsg struct {
	State theme.State
}

// ThemeReadyMsg is sent once the stored preference has been loaded.
type ThemeReadyMsg struct {
	State theme.State
}

// ThemeSaveErrorMsg reports a preference that could not be written. The
// in-memory theme has already changed.
type ThemeSaveErrorMsg struct {
	Err error
}

// Todo list messages

// TodosLoadedMsg carries a fresh list from the backend.
type TodosLoadedMsg struct {
	Todos []todo.Todo
}

// TodosErrorMsg reports a failed list query.
type TodosErrorMsg struct {
	Err error
}

// MutationDoneMsg reports a finished add, toggle or delete. The list is
// re-queried afterwards.
type MutationDoneMsg struct {
	Op  string
	ID  string
	Err error
}

// PollTickMsg triggers a periodic refresh.
type PollTickMsg struct{}
