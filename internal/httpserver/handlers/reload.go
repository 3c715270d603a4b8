package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
)

// Reload queues a reload of banks and branches, the retry of a failed load.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Reloader.Trigger() {
			d.Logger.Info("manual directory reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Reload triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
			return
		}

		d.Logger.Warn("directory reload already queued",
			logger.String("remote_ip", r.RemoteAddr))
		w.WriteHeader(http.StatusTooManyRequests)
		if _, err := w.Write([]byte("⏳ Reload already in progress, please wait\n")); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
