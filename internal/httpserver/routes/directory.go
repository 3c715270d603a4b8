package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/handlers"
)

func init() { Register(registerDirectory) }

func registerDirectory(r chi.Router, d deps.Deps) {
	r.Get("/api/banks", handlers.ListBanks(d))
	r.Get("/api/banks/{id}", handlers.GetBank(d))
	r.Get("/api/banks/{id}/export", handlers.ExportBank(d))
	r.Get("/api/banks/{id}/share", handlers.ShareBank(d))

	r.Get("/api/branches", handlers.ListBranches(d))
	r.Get("/api/branches/{id}", handlers.GetBranch(d))
	r.Get("/api/states", handlers.States(d))

	r.Get("/api/stats", handlers.Stats(d))
	r.Get("/api/directory/status", handlers.DirectoryStatus(d))
}
