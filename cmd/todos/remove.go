package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/todos/internal/todo"
)

func newRemoveCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a to-do",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := mutateByID(cmd, rootFlags, "remove todo", args[0], func(ctx context.Context, b todo.Backend, id string) error {
				return b.Delete(ctx, id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}

	return cmd
}
