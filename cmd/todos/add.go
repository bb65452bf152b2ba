package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/todos/internal/todo"
)

func newAddCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a to-do",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, rootFlags, strings.Join(args, " "))
		},
	}

	return cmd
}

func runAdd(cmd *cobra.Command, flags *rootFlags, text string) error {
	if _, err := todo.NormalizeText(text); err != nil {
		return newCommandError("add todo", "validating text", err, "Provide some text, e.g. todos add \"buy milk\".")
	}

	app, err := newAppContext(cmd, flags, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	backend, err := app.requireBackend("add todo")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), app.cfg.Backend.RequestTimeout())
	defer cancel()

	id, err := backend.Add(ctx, text)
	if err != nil {
		return newCommandError("add todo", "calling the backend", err, "Check backend.url and your network connection.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", id)
	return nil
}

// mutateByID runs a single-ID mutation and maps not-found to a helpful error.
func mutateByID(cmd *cobra.Command, flags *rootFlags, operation, id string, fn func(context.Context, todo.Backend, string) error) error {
	app, err := newAppContext(cmd, flags, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	backend, err := app.requireBackend(operation)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), app.cfg.Backend.RequestTimeout())
	defer cancel()

	if err := fn(ctx, backend, id); err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			return newCommandError(operation, fmt.Sprintf("looking up %q", id), err, "Run 'todos list' to see valid IDs.")
		}
		return newCommandError(operation, "calling the backend", err, "Check backend.url and your network connection.")
	}
	return nil
}
