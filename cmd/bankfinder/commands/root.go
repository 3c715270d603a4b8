package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bankfinder/internal/app"
	"github.com/MrSnakeDoc/bankfinder/internal/config"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
	"github.com/MrSnakeDoc/bankfinder/internal/startup"
	"github.com/MrSnakeDoc/bankfinder/internal/version"
)

type options struct {
	dataFile string
	storage  string
	sqlite   string
	logLevel string
	asJSON   bool
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "bankfinder",
		Short:         "Browse Nigerian banks and branches, keep favorites, export branch lists",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags win over the environment and .env.
			overrides := map[string]string{
				"BANKFINDER_DATA_FILE":   opts.dataFile,
				"BANKFINDER_STORAGE":     opts.storage,
				"BANKFINDER_SQLITE_PATH": opts.sqlite,
			}
			for key, v := range overrides {
				if v == "" {
					continue
				}
				if err := os.Setenv(key, v); err != nil {
					return fmt.Errorf("set %s: %w", key, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.dataFile, "data", "", "bank/branch dataset, JSON or YAML (default $BANKFINDER_DATA_FILE)")
	root.PersistentFlags().StringVar(&opts.storage, "storage", "", "storage backend: sqlite, redis or memory (default $BANKFINDER_STORAGE)")
	root.PersistentFlags().StringVar(&opts.sqlite, "sqlite", "", "sqlite file for favorites and theme (default $BANKFINDER_SQLITE_PATH)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level for CLI commands (default warn; serve uses $BANKFINDER_LOG_LEVEL)")

	root.AddCommand(
		serveCmd(opts),
		banksCmd(opts),
		branchesCmd(opts),
		exportCmd(opts),
		favoritesCmd(opts),
		themeCmd(opts),
	)
	return root
}

// loadConfig turns the fail-fast panics of config.Load into an error.
func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("configuration: %v", r)
		}
	}()
	return config.Load(), nil
}

// withCore boots the stores for a one-shot command. Directory failures are
// fatal only when the command reads banks or branches.
func withCore(cmd *cobra.Command, opts *options, needDirectory bool, fn func(ctx context.Context, core *app.Core) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := opts.logLevel
	if level == "" {
		level = "warn"
	}
	log := logger.New(level, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	core, err := app.NewCore(ctx, cfg, log, startup.Options{ReadyTimeout: cfg.ReadyTimeout})
	if err != nil {
		return err
	}
	defer core.Close()

	if err := core.Boot(ctx); err != nil && needDirectory {
		return fmt.Errorf("%s: %w", core.Directory.Error(), err)
	}
	return fn(ctx, core)
}
