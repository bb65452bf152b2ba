package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "todos",
		Short:         "A themed to-do list for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config file (default ~/.todos/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newAddCmd(flags))
	cmd.AddCommand(newDoneCmd(flags))
	cmd.AddCommand(newRemoveCmd(flags))
	cmd.AddCommand(newThemeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
