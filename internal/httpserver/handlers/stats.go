package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/bankfinder/internal/favorites"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/response"
)

type statsResponse struct {
	Banks     int              `json:"banks"`
	Branches  int              `json:"branches"`
	Favorites favorites.Counts `json:"favorites"`
}

// Stats serves the counts shown on the settings screen.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := d.Directory.Counts()
		response.JSON(w, d.Logger, http.StatusOK, statsResponse{
			Banks:     c.Banks,
			Branches:  c.Branches,
			Favorites: d.Favorites.Counts(),
		})
	}
}

// DirectoryStatus is polled by clients while the directory loads.
func DirectoryStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, d.Logger, http.StatusOK, d.Directory.Status())
	}
}
