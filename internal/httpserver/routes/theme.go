package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/handlers"
)

func init() { Register(registerTheme) }

func registerTheme(r chi.Router, d deps.Deps) {
	r.Get("/api/theme", handlers.GetTheme(d))
	r.With(writeLimit(d)).Post("/api/theme/toggle", handlers.ToggleTheme(d))
}
