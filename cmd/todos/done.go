package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/todos/internal/todo"
)

func newDoneCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle completion of a to-do",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := mutateByID(cmd, rootFlags, "toggle todo", args[0], func(ctx context.Context, b todo.Backend, id string) error {
				return b.Toggle(ctx, id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Toggled %s\n", args[0])
			return nil
		},
	}

	return cmd
}
