package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Harrybandukda/gochat-server/internal/app"
	"github.com/Harrybandukda/gochat-server/internal/config"
	"github.com/Harrybandukda/gochat-server/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := config.Default()
	var configPath string

	cmd := &cobra.Command{
		Use:           "gochat-server",
		Short:         "Realtime chat backend with rooms, history and presence",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.New(flags.LogLevel)

			cfg, path, err := config.Load(logger, configPath)
			if err != nil {
				return err
			}

			// Flags take precedence over config file and env.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = flags.Addr
			}
			if cmd.Flags().Changed("db") {
				cfg.DatabasePath = flags.DatabasePath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = flags.LogLevel
			}
			if cmd.Flags().Changed("read-header-timeout") {
				cfg.ReadHeaderTimeout = flags.ReadHeaderTimeout
			}
			if cmd.Flags().Changed("shutdown-timeout") {
				cfg.ShutdownTimeout = flags.ShutdownTimeout
			}

			logger = log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting gochat server")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(&cfg, logger)
			if err != nil {
				return err
			}

			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&flags.Addr, "addr", flags.Addr, "HTTP listen address")
	cmd.Flags().StringVar(&flags.DatabasePath, "db", flags.DatabasePath, "path to the SQLite database file")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().DurationVar(&flags.ReadHeaderTimeout, "read-header-timeout", flags.ReadHeaderTimeout, "HTTP read header timeout")
	cmd.Flags().DurationVar(&flags.ShutdownTimeout, "shutdown-timeout", flags.ShutdownTimeout, "graceful shutdown timeout")

	return cmd
}
