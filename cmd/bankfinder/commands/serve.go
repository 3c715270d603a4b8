package commands

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bankfinder/internal/app"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
)

func serveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		log.Error("failed to start", logger.Error(err))
		return err
	}
	return a.Run()
}
