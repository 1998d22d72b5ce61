package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// now is the clock used by the score command.
var now = time.Now

type scoreOptions struct {
	name     string
	deadline string
	effort   string
	project  bool
	personal bool
	timezone string
	output   string
}

func newScoreCmd() *cobra.Command {
	var opts scoreOptions

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single task without starting the server",
		Example: `  tasks-api score --deadline 2025-03-14 --effort 3 --personal
  tasks-api score --name "Ship release" --deadline 2025-04-01 --effort 8 --project --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "yaml" && opts.output != "json" {
				return fmt.Errorf("unsupported output format %q (want yaml or json)", opts.output)
			}

			effort, err := domain.ParseEffort(opts.effort)
			if err != nil {
				return err
			}
			deadline, err := domain.ParseDeadline(opts.deadline)
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(opts.timezone)
			if err != nil {
				return fmt.Errorf("invalid timezone %q: %w", opts.timezone, err)
			}

			task, err := domain.NewTask(opts.name, deadline, opts.project, opts.personal, effort, now().In(loc))
			if err != nil {
				return err
			}

			return writeTask(cmd.OutOrStdout(), task, opts.output)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "task", "task name")
	flags.StringVar(&opts.deadline, "deadline", "", "deadline as YYYY-MM-DD")
	flags.StringVar(&opts.effort, "effort", "", "estimated effort as a non-negative integer")
	flags.BoolVar(&opts.project, "project", false, "task is project related")
	flags.BoolVar(&opts.personal, "personal", false, "task is personal")
	flags.StringVar(&opts.timezone, "timezone", "Local", "IANA time zone used to interpret the deadline")
	flags.StringVarP(&opts.output, "output", "o", "yaml", "output format (yaml or json)")
	_ = cmd.MarkFlagRequired("deadline")
	_ = cmd.MarkFlagRequired("effort")

	return cmd
}

func writeTask(w io.Writer, task *domain.Task, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(task)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(task); err != nil {
			return err
		}
		return enc.Close()
	}
}
