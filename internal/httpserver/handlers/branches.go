package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/response"
)

type branchListResponse struct {
	Branches []domain.Branch `json:"branches"`
	Total    int             `json:"total"`
	Loading  bool            `json:"loading"`
	Error    string          `json:"error,omitempty"`
}

// ListBranches filters every loaded branch by ?q=, ?state= and ?bank= (bank code).
func ListBranches(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		branches := domain.FilterBranches(d.Directory.Branches(), domain.BranchFilter{
			Query:    q.Get("q"),
			State:    q.Get("state"),
			BankCode: q.Get("bank"),
		})
		response.JSON(w, d.Logger, http.StatusOK, branchListResponse{
			Branches: branches,
			Total:    len(branches),
			Loading:  d.Directory.Loading(),
			Error:    d.Directory.Error(),
		})
	}
}

type branchDetailResponse struct {
	Branch     domain.Branch `json:"branch"`
	IsFavorite bool          `json:"isFavorite"`
}

func GetBranch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branch, err := lookupBranch(d, chi.URLParam(r, "id"))
		if err != nil {
			response.Error(w, r, d.Logger, err)
			return
		}
		response.JSON(w, d.Logger, http.StatusOK, branchDetailResponse{
			Branch:     branch,
			IsFavorite: d.Favorites.IsFavorite(domain.FavoriteBranch, branch.ID),
		})
	}
}

type statesResponse struct {
	States    []string `json:"states"`
	Available []string `json:"available"`
}

// States lists the state filter values: the fixed list of Nigerian states
// and the states that actually have branches.
func States(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, d.Logger, http.StatusOK, statesResponse{
			States:    domain.States(),
			Available: domain.AvailableStates(d.Directory.Branches()),
		})
	}
}
