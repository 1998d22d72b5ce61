package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set by ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tasks-api",
		Short: "Task prioritization API",
		Long: `tasks-api keeps an in-memory list of tasks and ranks them.

Each task gets a priority tier and an advisory note computed from its
deadline, estimated effort, and whether it is project related or personal.
Use "serve" to run the HTTP API or "score" to rank a single task offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newScoreCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tasks-api %s\ncommit: %s\n", version, commit)
		},
	}
}
