package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantPanic bool
	}{
		{name: "variable set", key: "BF_TEST_VAR", value: "test_value"},
		{name: "variable not set", key: "BF_TEST_VAR_MISSING", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BF_TEST_DURATION", tt.value)
			if got := mustDuration("BF_TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BF_TEST_BOOL", tt.value)
			if got := mustBool("BF_TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(` a , "b",, 'c' `)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitAndTrim() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitAndTrim()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitAndTrim("") != nil {
		t.Error("splitAndTrim(\"\") should be nil")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BANKFINDER_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("BANKFINDER_DATA_FILE", "/data/banks.json")
	t.Setenv("BANKFINDER_STORAGE", "memory")

	cfg := Load()

	if cfg.DataFile != "/data/banks.json" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.Storage != BackendMemory {
		t.Errorf("Storage = %q, want memory", cfg.Storage)
	}
	if cfg.SplashDelay != time.Second {
		t.Errorf("SplashDelay = %v, want 1s", cfg.SplashDelay)
	}
	if cfg.ReloadInterval != 0 {
		t.Errorf("ReloadInterval = %v, want 0 (manual only)", cfg.ReloadInterval)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("redis settings should not be read for memory storage, got addr %q", cfg.RedisAddr)
	}
}

func TestLoadUnknownStoragePanics(t *testing.T) {
	t.Setenv("BANKFINDER_ENV_FILE", "")
	t.Setenv("BANKFINDER_DATA_FILE", "/data/banks.json")
	t.Setenv("BANKFINDER_STORAGE", "floppy")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic on unknown storage backend")
		}
	}()
	Load()
}

func TestLoadRedisRequiresAddr(t *testing.T) {
	t.Setenv("BANKFINDER_ENV_FILE", "")
	t.Setenv("BANKFINDER_DATA_FILE", "/data/banks.json")
	t.Setenv("BANKFINDER_STORAGE", "redis")
	t.Setenv("BANKFINDER_REDIS_ADDR", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic when redis storage has no address")
		}
	}()
	Load()
}

func TestLoadReadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "BANKFINDER_DATA_FILE=/from/dotenv.json\nBANKFINDER_STORAGE=memory\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("BANKFINDER_ENV_FILE", envFile)
	// Registered only so t restores the previous (unset) state after godotenv sets them.
	t.Setenv("BANKFINDER_DATA_FILE", "")
	t.Setenv("BANKFINDER_STORAGE", "")
	if err := os.Unsetenv("BANKFINDER_DATA_FILE"); err != nil {
		t.Fatal(err)
	}
	if err := os.Unsetenv("BANKFINDER_STORAGE"); err != nil {
		t.Fatal(err)
	}

	cfg := Load()
	if cfg.DataFile != "/from/dotenv.json" {
		t.Errorf("DataFile = %q, want value from env file", cfg.DataFile)
	}
}
