package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted by BANKFINDER_STORAGE.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataFile       string        // bank/branch dataset (JSON or YAML)
	ReloadInterval time.Duration // periodic directory refresh, 0 = manual reload only
	WatchData      bool          // reload the directory when DataFile changes on disk
	SplashDelay    time.Duration // delay between loads settling and readiness
	ReadyTimeout   time.Duration // readiness fires after this even if loads hang

	Storage    string        // "sqlite" | "redis" | "memory"
	SQLitePath string        // path of the sqlite kv file
	LockTTL    time.Duration // ttl of the favorites write lock

	// Redis (only read when Storage == "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, doubles each attempt
	RedisMaxWait        time.Duration // cap on the wait between retries
	RedisPingTimeout    time.Duration // timeout of each ping attempt
	RedisWarnThreshold  int           // warn for this many attempts, then log errors

	AllowedHosts   []string // optional Host header allow list (supports *.example.com)
	AllowedCIDRS   []string // optional allow list for /reload and /infra
	TrustProxy     bool     // resolve client IP from proxy headers
	RateLimitBurst int      // burst of mutating requests per client IP
	RateLimitRPM   int      // refill of mutating requests per client IP per minute
}

// Load reads configuration from the environment. A .env file in the working
// directory (or the file named by BANKFINDER_ENV_FILE) is loaded first when
// present; variables already set in the environment win.
func Load() *Config {
	loadDotEnv(getenv("BANKFINDER_ENV_FILE", ".env"))

	cfg := &Config{
		ListenPort:      getenv("BANKFINDER_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("BANKFINDER_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("BANKFINDER_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BANKFINDER_PRETTY_LOG", true),

		DataFile:       requireEnv("BANKFINDER_DATA_FILE"),
		ReloadInterval: mustDuration("BANKFINDER_RELOAD_INTERVAL", 0),
		WatchData:      mustBool("BANKFINDER_WATCH_DATA", false),
		SplashDelay:    mustDuration("BANKFINDER_SPLASH_DELAY", time.Second),
		ReadyTimeout:   mustDuration("BANKFINDER_READY_TIMEOUT", 10*time.Second),

		Storage:    strings.ToLower(getenv("BANKFINDER_STORAGE", BackendSQLite)),
		SQLitePath: getenv("BANKFINDER_SQLITE_PATH", "bankfinder.db"),
		LockTTL:    mustDuration("BANKFINDER_LOCK_TTL", 5*time.Second),

		AllowedHosts:   splitAndTrim(getenv("BANKFINDER_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   parseAllowedIPs(getenv("BANKFINDER_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("BANKFINDER_TRUST_PROXY", false),
		RateLimitBurst: getenvInt("BANKFINDER_RATE_LIMIT_BURST", 20),
		RateLimitRPM:   getenvInt("BANKFINDER_RATE_LIMIT_RPM", 60),
	}

	switch cfg.Storage {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		loadRedis(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: unknown BANKFINDER_STORAGE %q (want sqlite, redis or memory)", cfg.Storage))
	}

	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("BANKFINDER_REDIS_ADDR")
	cfg.RedisUser = getenv("BANKFINDER_REDIS_USERNAME", "")
	cfg.RedisPassword = getenv("BANKFINDER_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("BANKFINDER_REDIS_DB", 0)
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)
}

func loadDotEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] ignoring env file %s: %v", path, err)
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	return splitAndTrim(allowed)
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
