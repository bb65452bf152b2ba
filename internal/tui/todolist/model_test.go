package todolist

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/todos/internal/kvstore"
	"github.com/alexisbeaulieu97/todos/internal/logger"
	"github.com/alexisbeaulieu97/todos/internal/theme"
	"github.com/alexisbeaulieu97/todos/internal/todo"
	apperrors "github.com/alexisbeaulieu97/todos/pkg/errors"
)

type failingStore struct {
	kvstore.Store
}

func (failingStore) Set(context.Context, string, string) error {
	return apperrors.NewStorageError("file", "write", theme.PreferenceKey, errors.New("disk full"))
}

func newTestModel(t *testing.T, store kvstore.Store, todos ...todo.Todo) (Model, *theme.Provider, *todo.MemoryBackend) {
	t.Helper()
	if store == nil {
		store = kvstore.NewMemoryStore()
	}
	provider := theme.NewProvider(store, logger.Nop())
	backend := todo.NewMemoryBackend(todos...)
	m := NewModel(Options{
		Provider:       provider,
		Backend:        backend,
		Logger:         logger.Nop(),
		RequestTimeout: time.Second,
		UseUnicode:     true,
	})
	t.Cleanup(m.Close)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), provider, backend
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadList(t *testing.T, m Model) Model {
	t.Helper()
	msg := loadTodosCmd(m.backend, time.Second)()
	m, _ = update(t, m, msg)
	return m
}

func TestNewModelStartsInLightMode(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	assert.False(t, m.IsDarkMode())
	assert.Equal(t, theme.Light(), m.Scheme())
}

func TestInitReturnsCommands(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	assert.NotNil(t, m.Init())
}

func TestThemeChangedMsgRestyles(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	m, cmd := update(t, m, ThemeChangedMsg{State: theme.State{IsDarkMode: true, Colors: theme.Dark()}})

	assert.True(t, m.IsDarkMode())
	assert.Equal(t, theme.Dark(), m.Scheme())
	assert.NotNil(t, cmd, "should keep listening for changes")
}

func TestToggleKeyFlipsProviderAndNotifiesModel(t *testing.T) {
	m, provider, _ := newTestModel(t, nil)

	m, cmd := update(t, m, runes("t"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd(), "a successful save produces no message")
	assert.True(t, provider.IsDarkMode())

	msg := waitForThemeCmd(m.sub)()
	changed, ok := msg.(ThemeChangedMsg)
	require.True(t, ok)
	assert.True(t, changed.State.IsDarkMode)

	m, _ = update(t, m, changed)
	assert.Equal(t, theme.Dark(), m.Scheme())
}

func TestToggleSaveFailureShowsBannerAndKeepsTheme(t *testing.T) {
	m, provider, _ := newTestModel(t, failingStore{Store: kvstore.NewMemoryStore()})

	_, cmd := update(t, m, runes("t"))
	require.NotNil(t, cmd)
	msg := cmd()
	saveErr, ok := msg.(ThemeSaveErrorMsg)
	require.True(t, ok)
	assert.True(t, provider.IsDarkMode(), "in-memory change stands")

	m, _ = update(t, m, saveErr)
	assert.Contains(t, m.ErrorMessage(), "could not be saved")
	assert.Contains(t, m.ErrorMessage(), "disk full")

	m, _ = update(t, m, runes("x"))
	assert.Empty(t, m.ErrorMessage())
}

func TestThemeReadyMsgAppliesLoadedPreference(t *testing.T) {
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), theme.PreferenceKey, "true"))
	m, provider, _ := newTestModel(t, store)

	require.NoError(t, provider.Init(context.Background()))
	msg := waitForReadyCmd(m.sub)()
	ready, ok := msg.(ThemeReadyMsg)
	require.True(t, ok)

	m, _ = update(t, m, ready)
	assert.True(t, m.IsDarkMode())
	assert.NotContains(t, m.View(), "dark...")
}

func TestCloseStopsThemeListener(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m.Close()
	m.Close()

	assert.Nil(t, waitForThemeCmd(m.sub)())
}

func TestLoadingAndEmptyStates(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	assert.Contains(t, m.View(), "Loading todos")

	m = loadList(t, m)
	assert.Contains(t, m.View(), "No todos yet")
}

func TestTodosLoadedRendersItems(t *testing.T) {
	m, _, _ := newTestModel(t, nil,
		todo.Todo{Text: "write tests"},
		todo.Todo{Text: "ship it", IsCompleted: true},
	)
	m = loadList(t, m)

	require.Len(t, m.Todos(), 2)
	view := m.View()
	assert.Contains(t, view, "write tests")
	assert.Contains(t, view, "ship it")
	assert.Contains(t, view, "2 items")
	assert.Contains(t, view, "1 done")
}

func TestAddFlow(t *testing.T) {
	m, _, backend := newTestModel(t, nil)
	m = loadList(t, m)

	m, _ = update(t, m, runes("a"))
	require.True(t, m.IsEditing())

	m, _ = update(t, m, runes("buy milk"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.IsEditing())

	done, ok := cmd().(MutationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, "add", done.Op)

	m, reload := update(t, m, done)
	require.NotNil(t, reload)
	m, _ = update(t, m, reload())

	require.Len(t, m.Todos(), 1)
	assert.Equal(t, "buy milk", m.Todos()[0].Text)

	stored, err := backend.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAddWithBlankTextKeepsEditing(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	m, _ = update(t, m, runes("a"))
	m, _ = update(t, m, runes("   "))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, m.IsEditing())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.IsEditing())
}

func TestToggleTodoIsOptimistic(t *testing.T) {
	m, _, backend := newTestModel(t, nil, todo.Todo{Text: "water plants"})
	m = loadList(t, m)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.NotNil(t, cmd)
	assert.True(t, m.Todos()[0].IsCompleted)

	done := cmd().(MutationDoneMsg)
	require.NoError(t, done.Err)

	stored, _ := backend.List(context.Background())
	assert.True(t, stored[0].IsCompleted)
}

func TestDeleteTodo(t *testing.T) {
	m, _, backend := newTestModel(t, nil, todo.Todo{Text: "one"}, todo.Todo{Text: "two"})
	m = loadList(t, m)

	m, _ = update(t, m, runes("j"))
	m, cmd := update(t, m, runes("d"))
	require.NotNil(t, cmd)
	assert.Len(t, m.Todos(), 1)

	done := cmd().(MutationDoneMsg)
	require.NoError(t, done.Err)
	stored, _ := backend.List(context.Background())
	assert.Len(t, stored, 1)
}

func TestMutationErrorShowsBanner(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	m, cmd := update(t, m, MutationDoneMsg{Op: "delete", ID: "gone", Err: todo.ErrNotFound})
	assert.NotNil(t, cmd, "list reloads after a failure")
	assert.Contains(t, m.ErrorMessage(), "Couldn't delete todo")
	assert.Contains(t, m.ErrorMessage(), "no longer exists")
}

func TestRemoteErrorMessageIsShown(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	err := apperrors.NewRemoteError(todo.FuncGetTodos, errors.New("deployment paused"))
	m, _ = update(t, m, TodosErrorMsg{Err: err})

	assert.Contains(t, m.ErrorMessage(), "deployment paused")
	assert.Contains(t, m.View(), "deployment paused")
}

func TestCursorWraps(t *testing.T) {
	m, _, _ := newTestModel(t, nil, todo.Todo{Text: "a"}, todo.Todo{Text: "b"})
	m = loadList(t, m)

	m, _ = update(t, m, runes("k"))
	selected, ok := m.SelectedTodo()
	require.True(t, ok)
	assert.Equal(t, m.Todos()[1].ID, selected.ID)

	m, _ = update(t, m, runes("j"))
	selected, _ = m.SelectedTodo()
	assert.Equal(t, m.Todos()[0].ID, selected.ID)
}

func TestPollTickDisabledByDefault(t *testing.T) {
	assert.Nil(t, pollCmd(0))
	assert.NotNil(t, pollCmd(time.Second))
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewWithoutUnicode(t *testing.T) {
	provider := theme.NewProvider(kvstore.NewMemoryStore(), logger.Nop())
	m := NewModel(Options{Provider: provider, Backend: todo.NewMemoryBackend(todo.Todo{Text: "plain", IsCompleted: true})})
	t.Cleanup(m.Close)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = loadList(t, m)

	view := m.View()
	assert.Contains(t, view, "[x]")
	assert.NotContains(t, view, "✓")
}
