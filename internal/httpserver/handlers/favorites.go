package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/favorites"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/response"
)

const maxFavoriteBody = 64 << 10

type favoriteListResponse struct {
	Favorites []domain.FavoriteItem `json:"favorites"`
	Counts    favorites.Counts      `json:"counts"`
}

// ListFavorites serves the favorites screen. ?type= narrows to banks or branches.
func ListFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var typ domain.FavoriteType
		if raw := r.URL.Query().Get("type"); raw != "" {
			t, err := domain.ParseFavoriteType(raw)
			if err != nil {
				response.Error(w, r, d.Logger, response.NewValidationError(err.Error()))
				return
			}
			typ = t
		}

		response.JSON(w, d.Logger, http.StatusOK, favoriteListResponse{
			Favorites: d.Favorites.ByType(typ),
			Counts:    d.Favorites.Counts(),
		})
	}
}

type favoriteStateResponse struct {
	Type       domain.FavoriteType `json:"type"`
	ID         string              `json:"id"`
	IsFavorite bool                `json:"isFavorite"`
}

// AddFavorite stores a fully populated item. Adding an existing favorite
// succeeds without changing it.
func AddFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item domain.FavoriteItem
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFavoriteBody))
		if err := dec.Decode(&item); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Error(w, r, d.Logger, response.NewValidationError("request body too large"))
				return
			}
			response.Error(w, r, d.Logger, response.NewValidationError("invalid favorite: "+err.Error()))
			return
		}
		if item.Timestamp == 0 {
			item.Timestamp = d.Now().UnixMilli()
		}

		if err := d.Favorites.Add(r.Context(), item); err != nil {
			response.Error(w, r, d.Logger, response.NewValidationError(err.Error()))
			return
		}
		response.JSON(w, d.Logger, http.StatusOK, favoriteStateResponse{Type: item.Type, ID: item.ID, IsFavorite: true})
	}
}

// RemoveFavorite drops a favorite. Removing an absent one is not an error.
func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ, err := domain.ParseFavoriteType(chi.URLParam(r, "type"))
		if err != nil {
			response.Error(w, r, d.Logger, response.NewValidationError(err.Error()))
			return
		}
		d.Favorites.Remove(r.Context(), typ, chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleFavorite flips a bank or branch using the loaded directory entry as
// the snapshot. A favorite whose entity left the directory can still be
// toggled off.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ, err := domain.ParseFavoriteType(chi.URLParam(r, "type"))
		if err != nil {
			response.Error(w, r, d.Logger, response.NewValidationError(err.Error()))
			return
		}
		id := chi.URLParam(r, "id")
		ctx := r.Context()

		var on bool
		switch typ {
		case domain.FavoriteBank:
			bank, err := lookupBank(d, id)
			if err != nil {
				on, err = toggleOffOrphan(d, r, typ, id, err)
				if err != nil {
					response.Error(w, r, d.Logger, err)
					return
				}
				break
			}
			on = d.Favorites.ToggleBank(ctx, bank)
		case domain.FavoriteBranch:
			branch, err := lookupBranch(d, id)
			if err != nil {
				on, err = toggleOffOrphan(d, r, typ, id, err)
				if err != nil {
					response.Error(w, r, d.Logger, err)
					return
				}
				break
			}
			on = d.Favorites.ToggleBranch(ctx, branch)
		}

		response.JSON(w, d.Logger, http.StatusOK, favoriteStateResponse{Type: typ, ID: id, IsFavorite: on})
	}
}

func toggleOffOrphan(d deps.Deps, r *http.Request, typ domain.FavoriteType, id string, lookupErr error) (bool, error) {
	if !d.Favorites.IsFavorite(typ, id) {
		return false, lookupErr
	}
	d.Favorites.Remove(r.Context(), typ, id)
	return false, nil
}
