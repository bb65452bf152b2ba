package todolist

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/todos/internal/theme"
	"github.com/alexisbeaulieu97/todos/internal/todo"
)

// themeSubscription bridges provider listeners into the tea event loop.
// Notifications are coalesced; the reader always fetches the latest state.
type themeSubscription struct {
	provider    *theme.Provider
	events      chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

func subscribe(p *theme.Provider) *themeSubscription {
	sub := &themeSubscription{
		provider: p,
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	sub.unsubscribe = p.Subscribe(func(theme.State) {
		select {
		case sub.events <- struct{}{}:
		default:
		}
	})
	return sub
}

func (s *themeSubscription) close() {
	s.closeOnce.Do(func() {
		s.unsubscribe()
		close(s.done)
	})
}

// waitForThemeCmd blocks until the provider reports a change.
func waitForThemeCmd(sub *themeSubscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-sub.events:
			return ThemeChangedMsg{State: sub.provider.State()}
		case <-sub.done:
			return nil
		}
	}
}

// waitForReadyCmd resolves once the provider finished loading.
func waitForReadyCmd(sub *themeSubscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-sub.provider.Ready():
			return ThemeReadyMsg{State: sub.provider.State()}
		case <-sub.done:
			return nil
		}
	}
}

// toggleThemeCmd flips the preference. Subscribers see the change before
// the write finishes; only a failed write produces a message.
func toggleThemeCmd(p *theme.Provider, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := p.ToggleDarkMode(ctx); err != nil {
			return ThemeSaveErrorMsg{Err: err}
		}
		return nil
	}
}

// loadTodosCmd queries the backend for the list
func loadTodosCmd(b todo.Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		todos, err := b.List(ctx)
		if err != nil {
			return TodosErrorMsg{Err: err}
		}
		return TodosLoadedMsg{Todos: todos}
	}
}

// addTodoCmd creates a to-do
func addTodoCmd(b todo.Backend, text string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		id, err := b.Add(ctx, text)
		return MutationDoneMsg{Op: "add", ID: id, Err: err}
	}
}

// toggleTodoCmd flips completion of a to-do
func toggleTodoCmd(b todo.Backend, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return MutationDoneMsg{Op: "toggle", ID: id, Err: b.Toggle(ctx, id)}
	}
}

// deleteTodoCmd removes a to-do
func deleteTodoCmd(b todo.Backend, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return MutationDoneMsg{Op: "delete", ID: id, Err: b.Delete(ctx, id)}
	}
}

// pollCmd schedules the next refresh; zero disables polling.
func pollCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PollTickMsg{}
	})
}
