package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/handlers"
)

func init() { Register(registerFavorites) }

func registerFavorites(r chi.Router, d deps.Deps) {
	r.Get("/api/favorites", handlers.ListFavorites(d))

	w := r.With(writeLimit(d))
	w.Post("/api/favorites", handlers.AddFavorite(d))
	w.Delete("/api/favorites/{type}/{id}", handlers.RemoveFavorite(d))
	w.Post("/api/favorites/{type}/{id}/toggle", handlers.ToggleFavorite(d))
}
