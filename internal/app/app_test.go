package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/config"
	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
	"github.com/MrSnakeDoc/bankfinder/internal/startup"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	return &config.Config{
		ListenPort:      ":0",
		ShutdownTimeout: time.Second,
		DataFile:        "../../data/banks.yaml",
		Storage:         backend,
		SQLitePath:      filepath.Join(t.TempDir(), "state", "bankfinder.db"),
		LockTTL:         time.Second,
	}
}

func TestCoreBoot(t *testing.T) {
	ctx := context.Background()
	core, err := NewCore(ctx, testConfig(t, config.BackendMemory), logger.New("error", false), startup.Options{})
	if err != nil {
		t.Fatalf("NewCore() error = %v", err)
	}
	defer core.Close()

	if err := core.Boot(ctx); err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	if c := core.Directory.Counts(); c.Banks == 0 || c.Branches == 0 {
		t.Errorf("directory counts after boot = %+v", c)
	}
	if core.Preference.Mode() != domain.ThemeLight {
		t.Errorf("theme = %q, want light on empty storage", core.Preference.Mode())
	}
}

func TestCoreBootMissingDataFile(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendMemory)
	cfg.DataFile = filepath.Join(t.TempDir(), "missing.json")

	core, err := NewCore(ctx, cfg, logger.New("error", false), startup.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := core.Boot(ctx); err == nil {
		t.Error("Boot() should report the failed load")
	}
	if core.Directory.Error() == "" {
		t.Error("directory error should be set")
	}
}

func TestSQLiteStatePersistsAcrossCores(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendSQLite)
	log := logger.New("error", false)

	first, err := NewCore(ctx, cfg, log, startup.Options{})
	if err != nil {
		t.Fatalf("NewCore() error = %v", err)
	}
	if err := first.Boot(ctx); err != nil {
		t.Fatal(err)
	}
	bank := first.Directory.Banks()[0]
	first.Favorites.ToggleBank(ctx, bank)
	first.Preference.Toggle(ctx)
	first.Close()

	second, err := NewCore(ctx, cfg, log, startup.Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if err := second.Boot(ctx); err != nil {
		t.Fatal(err)
	}
	if !second.Favorites.IsFavorite(domain.FavoriteBank, bank.ID) {
		t.Error("favorite did not survive a restart")
	}
	if second.Preference.Mode() != domain.ThemeDark {
		t.Error("theme did not survive a restart")
	}
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewCore(context.Background(), testConfig(t, "etcd"), logger.New("error", false), startup.Options{})
	if err == nil {
		t.Error("NewCore() should reject an unknown backend")
	}
}
