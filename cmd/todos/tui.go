package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/todos/internal/theme"
	"github.com/alexisbeaulieu97/todos/internal/tui/todolist"
)

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	app, err := newAppContext(cmd, flags, appOptions{logToFile: true, allowLocalBackend: true})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	ctx = theme.WithProvider(ctx, app.provider)

	// The screen draws in light mode until the stored preference arrives.
	app.provider.Start(ctx)

	m := todolist.NewModel(todolist.Options{
		Provider:       theme.MustFromContext(ctx),
		Backend:        app.backend,
		Logger:         app.log,
		PollInterval:   app.cfg.Backend.Poll(),
		RequestTimeout: app.cfg.Backend.RequestTimeout(),
		UseUnicode:     supportsUnicode(cmd.OutOrStdout()),
	})
	defer m.Close()

	app.log.Info("launching todo list")

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		app.log.Error(err, "todo list execution failed")
		return fmt.Errorf("failed to run todo list: %w", err)
	}

	app.log.Info("todo list closed")
	return nil
}
