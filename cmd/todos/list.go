package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/todos/internal/todo"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List to-dos from the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, flags *rootFlags, opts *listOptions) error {
	app, err := newAppContext(cmd, flags, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	backend, err := app.requireBackend("list todos")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), app.cfg.Backend.RequestTimeout())
	defer cancel()

	todos, err := backend.List(ctx)
	if err != nil {
		return newCommandError("list todos", "querying the backend", err, "Check backend.url and your network connection.")
	}

	if opts.jsonOutput {
		return renderListJSON(cmd, todos)
	}
	if len(todos) == 0 {
		return renderEmptyList(cmd)
	}
	return renderListTable(cmd, todos)
}

func renderEmptyList(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.OutOrStdout(), "No todos yet.")
	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'todos add <text>' to add your first one.")
	return nil
}

func renderListTable(cmd *cobra.Command, todos []todo.Todo) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tDONE\tCREATED\tTEXT")

	useUnicode := supportsUnicode(cmd.OutOrStdout())

	for _, t := range todos {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			t.ID,
			formatDone(t.IsCompleted, useUnicode),
			formatRelativeTime(t.CreatedAt()),
			t.Text,
		)
	}

	return writer.Flush()
}

type listJSONTodo struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type listJSONPayload struct {
	Version   string         `json:"version"`
	Count     int            `json:"count"`
	Completed int            `json:"completed"`
	Todos     []listJSONTodo `json:"todos"`
}

func renderListJSON(cmd *cobra.Command, todos []todo.Todo) error {
	total, completed := todo.Counts(todos)
	payload := listJSONPayload{
		Version:   "1.0",
		Count:     total,
		Completed: completed,
		Todos:     make([]listJSONTodo, len(todos)),
	}

	for i, t := range todos {
		payload.Todos[i] = listJSONTodo{
			ID:          t.ID,
			Text:        t.Text,
			IsCompleted: t.IsCompleted,
			CreatedAt:   t.CreatedAt().UTC(),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func formatDone(done bool, useUnicode bool) string {
	switch {
	case done && useUnicode:
		return "✓"
	case done:
		return "[x]"
	case useUnicode:
		return "○"
	default:
		return "[ ]"
	}
}

func formatRelativeTime(ts time.Time) string {
	if ts.IsZero() {
		return "unknown"
	}

	delta := time.Since(ts)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}

	return fmt.Sprintf("%d days ago", int(delta.Hours()/24))
}
