package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/response"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Backend    string `json:"backend,omitempty"`
	Banks      *int   `json:"banks,omitempty"`
	Branches   *int   `json:"branches,omitempty"`
	Favorites  *int   `json:"favorites,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Runs       *int   `json:"runs,omitempty"`
	Interval   string `json:"interval,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
	DataFile   string `json:"data_file,omitempty"`
	Theme      string `json:"theme,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of every component, pinging the storage backend.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"storage":   checkStorage(r.Context(), d),
			"directory": directoryStatus(d),
			"reloader":  reloaderStatus(d),
			"startup":   startupStatus(d),
		}
		favCount := d.Favorites.Counts().Total
		components["favorites"] = componentStatus{
			OK:        true,
			Favorites: &favCount,
			Theme:     string(d.Preference.Mode()),
		}

		response.JSON(w, d.Logger, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func overallStatus(components map[string]componentStatus) string {
	// No banks means nothing to browse.
	if dir, ok := components["directory"]; ok && !dir.OK {
		return "critical"
	}
	// Storage down keeps browsing alive but favorites and theme are not kept.
	if st, ok := components["storage"]; ok && !st.OK {
		return "degraded"
	}
	return "ok"
}

func checkStorage(ctx context.Context, d deps.Deps) componentStatus {
	st := componentStatus{Backend: d.StorageBackend}
	if d.Persistence == nil {
		st.Error = "storage not initialized"
		st.Impact = "favorites-and-theme-not-persisted"
		return st
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := d.Persistence.Ping(ctx); err != nil {
		st.Error = err.Error()
		st.Impact = "favorites-and-theme-not-persisted"
		return st
	}
	st.OK = true
	return st
}

func directoryStatus(d deps.Deps) componentStatus {
	status := d.Directory.Status()
	banks, branches := status.Counts.Banks, status.Counts.Branches

	st := componentStatus{
		OK:         status.Error == "" && banks > 0,
		Banks:      &banks,
		Branches:   &branches,
		LastReload: formatTime(d.Directory.LastLoad()),
		Error:      status.Error,
		DataFile:   d.DataFile,
	}
	if status.Loading {
		st.Reason = "loading"
	}
	return st
}

func reloaderStatus(d deps.Deps) componentStatus {
	if d.Reloader == nil {
		return componentStatus{OK: true, Reason: "disabled"}
	}
	stats := d.Reloader.Stats()
	runs := stats.Runs
	st := componentStatus{
		OK:         stats.LastError == "",
		Runs:       &runs,
		LastReload: formatTime(stats.LastRun),
		Error:      stats.LastError,
		Interval:   "manual",
	}
	if stats.Interval > 0 {
		st.Interval = stats.Interval.String()
	}
	if stats.InProgress {
		st.Reason = "in-progress"
	}
	return st
}

func startupStatus(d deps.Deps) componentStatus {
	if d.Startup == nil {
		return componentStatus{OK: true}
	}
	st := componentStatus{OK: d.Startup.IsReady(), Reason: d.Startup.Reason()}
	if err := d.Startup.Err(); err != nil {
		st.Error = err.Error()
	}
	return st
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}
