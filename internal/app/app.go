package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/config"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
	"github.com/MrSnakeDoc/bankfinder/internal/scheduler"
	"github.com/MrSnakeDoc/bankfinder/internal/startup"
	"github.com/MrSnakeDoc/bankfinder/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	core     *Core
	server   *httpserver.Server
	reloader *scheduler.DirectoryReloader
	watcher  *scheduler.DataWatcher
}

// New wires the HTTP server. Storage is opened here so a missing backend
// fails fast.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	core, err := NewCore(ctx, cfg, loggerClient, startup.Options{
		SplashDelay:  cfg.SplashDelay,
		ReadyTimeout: cfg.ReadyTimeout,
	})
	if err != nil {
		return nil, err
	}

	reloader := scheduler.NewDirectoryReloader(core.Directory, loggerClient, cfg.ReloadInterval)

	var watcher *scheduler.DataWatcher
	if cfg.WatchData {
		watcher, err = scheduler.NewDataWatcher(cfg.DataFile, reloader.Trigger, 500*time.Millisecond, loggerClient)
		if err != nil {
			loggerClient.Warn("dataset watch disabled", logger.Error(err))
			watcher = nil
		}
	}

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		RateLimitBurst: cfg.RateLimitBurst,
		RateLimitRPM:   cfg.RateLimitRPM,
		Directory:      core.Directory,
		Favorites:      core.Favorites,
		Preference:     core.Preference,
		Persistence:    core.Persistence,
		Startup:        core.Startup,
		Reloader:       reloader,
		StorageBackend: cfg.Storage,
		DataFile:       cfg.DataFile,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		core:     core,
		server:   httpserver.New(cfg, loggerClient, d),
		reloader: reloader,
		watcher:  watcher,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting bankfinder v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("bankfinder %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads run in the background; /readyz answers 503 until the gate opens.
	a.core.Startup.Start(ctx)
	a.reloader.Start(ctx)
	a.logger.Info("directory reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))
	if a.watcher != nil {
		a.watcher.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.stopBackground()
		a.core.Close()
		return err
	}

	a.stopBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.core.Close()
	a.logger.Info("✅ bankfinder stopped cleanly")
	return nil
}

func (a *App) stopBackground() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.reloader.Stop()
}
