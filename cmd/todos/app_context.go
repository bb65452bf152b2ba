package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/todos/internal/config"
	"github.com/alexisbeaulieu97/todos/internal/kvstore"
	"github.com/alexisbeaulieu97/todos/internal/logger"
	"github.com/alexisbeaulieu97/todos/internal/theme"
	"github.com/alexisbeaulieu97/todos/internal/todo"
)

var errNoBackend = errors.New("no backend url configured")

// appContext bundles the long-lived services one command invocation uses.
type appContext struct {
	cfg      *config.Config
	log      *logger.Logger
	store    kvstore.Store
	provider *theme.Provider
	backend  todo.Backend
	remote   bool

	closers []io.Closer
}

type appOptions struct {
	// logToFile sends logs to the log file; the TUI owns the terminal.
	logToFile bool
	// allowLocalBackend falls back to an in-memory list without a URL.
	allowLocalBackend bool
}

func newAppContext(cmd *cobra.Command, flags *rootFlags, opts appOptions) (*appContext, error) {
	cfgPath := flags.configPath
	if cfgPath == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return nil, newCommandError("start", "determining config path", err, "Ensure your HOME directory is set correctly.")
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, newCommandError("start", "loading "+cfgPath, err, "Fix the configuration file or pass --config.")
	}

	app := &appContext{cfg: cfg}

	log, err := app.openLogger(cmd, flags, opts)
	if err != nil {
		return nil, newCommandError("start", "opening log output", err, "Check log.file in your configuration.")
	}
	app.log = log

	storePath := cfg.Storage.Path
	if storePath == "" {
		storePath, err = defaultStorePath(cfg.Storage.Driver)
		if err != nil {
			app.Close()
			return nil, newCommandError("start", "determining preference store path", err, "Ensure your HOME directory is set correctly.")
		}
	}
	store, err := kvstore.Open(cfg.Storage.Driver, storePath)
	if err != nil {
		app.Close()
		return nil, newCommandError("start", "opening preference store", err, "Check storage.driver and storage.path in your configuration.")
	}
	app.store = store
	app.closers = append(app.closers, store)
	app.provider = theme.NewProvider(store, log)

	switch {
	case cfg.Backend.URL != "":
		backend, err := todo.NewHTTPBackend(cfg.Backend.URL,
			todo.WithTimeout(cfg.Backend.RequestTimeout()),
			todo.WithLogger(log),
		)
		if err != nil {
			app.Close()
			return nil, newCommandError("start", "configuring backend", err, "Check backend.url in your configuration.")
		}
		app.backend = backend
		app.remote = true
	case opts.allowLocalBackend:
		log.Info("no backend url configured, using a local in-memory list")
		app.backend = todo.NewMemoryBackend()
	}

	log.WithFields(map[string]any{
		"config":  cfgPath,
		"driver":  cfg.Storage.Driver,
		"remote":  app.remote,
		"command": cmd.Name(),
	}).Debug("application context ready")

	return app, nil
}

func (a *appContext) openLogger(cmd *cobra.Command, flags *rootFlags, opts appOptions) (*logger.Logger, error) {
	level := a.cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}

	if !opts.logToFile {
		return logger.New(logger.Options{Level: level, HumanReadable: true, Writer: cmd.ErrOrStderr()})
	}

	path := a.cfg.Log.File
	if path == "" {
		p, err := defaultLogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	a.closers = append(a.closers, file)

	return logger.New(logger.Options{Level: level, Writer: file})
}

// requireBackend returns the backend or a command error explaining how to
// configure one.
func (a *appContext) requireBackend(operation string) (todo.Backend, error) {
	if a.backend == nil {
		return nil, newCommandError(operation, "contacting the todo backend", errNoBackend,
			"Set backend.url in ~/.todos/config.yaml to your deployment URL.")
	}
	return a.backend, nil
}

// Close releases the store and log file.
func (a *appContext) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}
