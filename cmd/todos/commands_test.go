package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeHomeConfig(t *testing.T, home, contents string) {
	t.Helper()
	dir := filepath.Join(home, ".todos")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o644))
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

type fakeDeployment struct {
	mu    sync.Mutex
	paths []string
	args  []map[string]any
}

func newFakeDeployment(t *testing.T, handle func(path string, args map[string]any) map[string]any) (*httptest.Server, *fakeDeployment) {
	t.Helper()
	fake := &fakeDeployment{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req struct {
			Path string         `json:"path"`
			Args map[string]any `json:"args"`
		}
		require.NoError(t, json.Unmarshal(data, &req))

		fake.mu.Lock()
		fake.paths = append(fake.paths, req.Path)
		fake.args = append(fake.args, req.Args)
		fake.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(handle(req.Path, req.Args))
	}))
	t.Cleanup(srv.Close)
	return srv, fake
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2026-10-03"

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "abcdef1")
	assert.Contains(t, stdout, "2026-10-03")
}

func TestThemeShowDefaultsToLight(t *testing.T) {
	setupHome(t)

	stdout, _, err := execute(t, "theme", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Theme: light")
	assert.Contains(t, stdout, "#FFF8F3")
}

func TestThemeSetPersistsAcrossInvocations(t *testing.T) {
	home := setupHome(t)

	stdout, _, err := execute(t, "theme", "set", "dark")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Theme set to dark")
	assert.FileExists(t, filepath.Join(home, ".todos", "preferences.json"))

	stdout, _, err = execute(t, "theme", "show", "--json")
	require.NoError(t, err)
	var payload themeJSONPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.True(t, payload.DarkMode)
	assert.Equal(t, "dark", payload.Scheme)
	assert.Equal(t, "light", payload.Status)
	assert.Equal(t, "#1C1B19", payload.Colors["background"])
}

func TestThemeToggleTwiceReturnsToLight(t *testing.T) {
	setupHome(t)

	stdout, _, err := execute(t, "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dark")

	stdout, _, err = execute(t, "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, stdout, "light")
}

func TestThemeSetRejectsUnknownMode(t *testing.T) {
	setupHome(t)

	_, _, err := execute(t, "theme", "set", "sepia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestThemeShowWarnsOnMalformedPreference(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, ".todos")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	doc := `{"version":"1.0","values":{"darkMode":"maybe"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preferences.json"), []byte(doc), 0o644))

	stdout, stderr, err := execute(t, "theme", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Theme: light")
	assert.Contains(t, stderr, "using light mode")
}

func TestThemeUsesSQLiteDriver(t *testing.T) {
	home := setupHome(t)
	writeHomeConfig(t, home, "storage:\n  driver: sqlite\n")

	_, _, err := execute(t, "theme", "set", "dark")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, ".todos", "preferences.db"))

	stdout, _, err := execute(t, "theme", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Theme: dark")
}

func TestInvalidConfigIsReported(t *testing.T) {
	home := setupHome(t)
	writeHomeConfig(t, home, "storage:\n  driver: redis\n")

	_, _, err := execute(t, "theme", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
	assert.Contains(t, err.Error(), "Suggestion:")
}

func TestConfigFlagOverridesDefaultPath(t *testing.T) {
	setupHome(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0o644))

	stdout, _, err := execute(t, "--config", path, "theme", "set", "dark")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dark")

	// The memory driver forgets between invocations.
	stdout, _, err = execute(t, "--config", path, "theme", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Theme: light")
}

func TestListWithoutBackendExplainsConfiguration(t *testing.T) {
	setupHome(t)

	_, _, err := execute(t, "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoBackend)
	assert.Contains(t, err.Error(), "backend.url")
}

func TestListTableOutput(t *testing.T) {
	home := setupHome(t)
	srv, _ := newFakeDeployment(t, func(string, map[string]any) map[string]any {
		return map[string]any{"status": "success", "value": []map[string]any{
			{"_id": "k1", "_creationTime": 1.7e12, "text": "feed the cat", "isCompleted": true},
			{"_id": "k2", "_creationTime": 1.7e12, "text": "water plants", "isCompleted": false},
		}}
	})
	writeHomeConfig(t, home, "backend:\n  url: "+srv.URL+"\n")

	stdout, _, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ID")
	assert.Contains(t, stdout, "feed the cat")
	// Buffers are not terminals, so ASCII glyphs are used.
	assert.Contains(t, stdout, "[x]")
	assert.Contains(t, stdout, "[ ]")
}

func TestListJSONOutput(t *testing.T) {
	home := setupHome(t)
	srv, _ := newFakeDeployment(t, func(string, map[string]any) map[string]any {
		return map[string]any{"status": "success", "value": []map[string]any{
			{"_id": "k1", "_creationTime": 1.7e12, "text": "feed the cat", "isCompleted": true},
		}}
	})
	writeHomeConfig(t, home, "backend:\n  url: "+srv.URL+"\n")

	stdout, _, err := execute(t, "list", "--json")
	require.NoError(t, err)

	var payload listJSONPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, 1, payload.Count)
	assert.Equal(t, 1, payload.Completed)
	assert.Equal(t, "k1", payload.Todos[0].ID)
}

func TestListEmpty(t *testing.T) {
	home := setupHome(t)
	srv, _ := newFakeDeployment(t, func(string, map[string]any) map[string]any {
		return map[string]any{"status": "success", "value": []any{}}
	})
	writeHomeConfig(t, home, "backend:\n  url: "+srv.URL+"\n")

	stdout, _, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No todos yet")
}

func TestAddDoneRemove(t *testing.T) {
	home := setupHome(t)
	srv, fake := newFakeDeployment(t, func(path string, _ map[string]any) map[string]any {
		if path == "todos:addTodo" {
			return map[string]any{"status": "success", "value": "new-id"}
		}
		return map[string]any{"status": "success", "value": nil}
	})
	writeHomeConfig(t, home, "backend:\n  url: "+srv.URL+"\n")

	stdout, _, err := execute(t, "add", "buy", "milk")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Added new-id")

	stdout, _, err = execute(t, "done", "new-id")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Toggled new-id")

	stdout, _, err = execute(t, "remove", "new-id")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed new-id")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []string{"todos:addTodo", "todos:toggleTodo", "todos:deleteTodo"}, fake.paths)
	assert.Equal(t, "buy milk", fake.args[0]["text"])
	assert.Equal(t, "new-id", fake.args[2]["id"])
}

func TestAddRejectsBlankText(t *testing.T) {
	setupHome(t)

	_, _, err := execute(t, "add", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestRemoteFailureIsWrapped(t *testing.T) {
	home := setupHome(t)
	srv, _ := newFakeDeployment(t, func(string, map[string]any) map[string]any {
		return map[string]any{"status": "error", "errorMessage": "Todo not found"}
	})
	writeHomeConfig(t, home, "backend:\n  url: "+srv.URL+"\n")

	_, _, err := execute(t, "remove", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to remove todo")
	assert.Contains(t, err.Error(), "Todo not found")
}

func TestFormatRelativeTime(t *testing.T) {
	assert.Equal(t, "unknown", formatRelativeTime(time.Time{}))
	assert.Equal(t, "just now", formatRelativeTime(time.Now()))
}
