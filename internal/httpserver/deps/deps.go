package deps

import (
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/directory"
	"github.com/MrSnakeDoc/bankfinder/internal/favorites"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
	"github.com/MrSnakeDoc/bankfinder/internal/preference"
	"github.com/MrSnakeDoc/bankfinder/internal/scheduler"
	"github.com/MrSnakeDoc/bankfinder/internal/startup"
	"github.com/MrSnakeDoc/bankfinder/internal/store"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time // for testing, defaults to time.Now
	AllowedHosts   []string         // Host headers allowed to access the server
	AllowedCIDRS   []string         // IPs allowed to access infra and reload endpoints
	TrustProxy     bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitBurst int              // burst of mutating requests per client IP
	RateLimitRPM   int              // refill of mutating requests per client IP per minute

	Directory   *directory.Store
	Favorites   *favorites.Store
	Preference  *preference.Store
	Persistence *store.Persistence // favorites and theme storage, pinged by /infra
	Startup     *startup.Sequence  // readiness gate
	Reloader    *scheduler.DirectoryReloader

	StorageBackend string // "sqlite" | "redis" | "memory"
	DataFile       string // dataset the directory loads from
}

// Now returns d.TimeNow() or time.Now() when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
