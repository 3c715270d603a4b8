package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/response"
)

type themeResponse struct {
	Mode domain.ThemeMode `json:"mode"`
	Dark bool             `json:"dark"`
}

func GetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := d.Preference.Mode()
		response.JSON(w, d.Logger, http.StatusOK, themeResponse{Mode: mode, Dark: mode.IsDark()})
	}
}

// ToggleTheme switches between light and dark and persists the result.
func ToggleTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := d.Preference.Toggle(r.Context())
		response.JSON(w, d.Logger, http.StatusOK, themeResponse{Mode: mode, Dark: mode.IsDark()})
	}
}
