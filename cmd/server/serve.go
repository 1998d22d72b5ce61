package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	v := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until SIGINT or SIGTERM.

Configuration comes from flags, TASKS_* environment variables, and an
optional config.yaml (in the working directory or $HOME/.tasks-api, or the
file given with --config), in that order of precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(v, configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}

			log.Info("Server configuration loaded",
				slog.Int("port", cfg.Server.Port),
				slog.String("log_level", cfg.Server.LogLevel),
				slog.String("timezone", cfg.Scoring.Timezone),
				slog.Any("allowed_origins", cfg.CORS.AllowedOrigins))

			app, err := newApplication(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to a config file (default: search ./config.yaml and $HOME/.tasks-api)")
	flags.Int("port", 5000, "port to listen on")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("timezone", "Local", "IANA time zone used to interpret deadlines")

	// Lookup cannot fail for flags defined just above.
	_ = v.BindPFlag("server.port", flags.Lookup("port"))
	_ = v.BindPFlag("server.log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("scoring.timezone", flags.Lookup("timezone"))

	return cmd
}
