package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/response"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Readyz answers 503 until the startup gate opens. A failed initial load
// still counts as ready; its error is reported alongside.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Startup == nil {
			response.JSON(w, d.Logger, http.StatusOK, readyzResponse{Ready: true})
			return
		}
		if !d.Startup.IsReady() {
			response.JSON(w, d.Logger, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}

		resp := readyzResponse{Ready: true, Reason: d.Startup.Reason()}
		if err := d.Startup.Err(); err != nil {
			resp.Error = err.Error()
		}
		response.JSON(w, d.Logger, http.StatusOK, resp)
	}
}
