package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/export"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/response"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
)

type bankListResponse struct {
	Banks   []domain.Bank `json:"banks"`
	Total   int           `json:"total"`
	Loading bool          `json:"loading"`
	Error   string        `json:"error,omitempty"`
}

// ListBanks serves the bank list screen, filtered by ?q=.
func ListBanks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banks := domain.FilterBanks(d.Directory.Banks(), r.URL.Query().Get("q"))
		response.JSON(w, d.Logger, http.StatusOK, bankListResponse{
			Banks:   banks,
			Total:   len(banks),
			Loading: d.Directory.Loading(),
			Error:   d.Directory.Error(),
		})
	}
}

type bankDetailResponse struct {
	Bank            domain.Bank     `json:"bank"`
	Branches        []domain.Branch `json:"branches"`
	Total           int             `json:"total"`
	AvailableStates []string        `json:"availableStates"`
	IsFavorite      bool            `json:"isFavorite"`
}

// GetBank serves the bank details screen. ?q= and ?state= filter the
// branches; availableStates always covers every branch of the bank.
func GetBank(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bank, err := lookupBank(d, chi.URLParam(r, "id"))
		if err != nil {
			response.Error(w, r, d.Logger, err)
			return
		}

		q := r.URL.Query()
		all, filtered := bankBranches(d, bank, q.Get("q"), q.Get("state"))
		response.JSON(w, d.Logger, http.StatusOK, bankDetailResponse{
			Bank:            bank,
			Branches:        filtered,
			Total:           len(filtered),
			AvailableStates: domain.AvailableStates(all),
			IsFavorite:      d.Favorites.IsFavorite(domain.FavoriteBank, bank.ID),
		})
	}
}

// ExportBank downloads the filtered branch list of a bank as csv, text or xlsx.
func ExportBank(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		format, err := export.ParseFormat(q.Get("format"))
		if err != nil {
			response.Error(w, r, d.Logger, response.NewValidationError(err.Error()))
			return
		}

		bank, err := lookupBank(d, chi.URLParam(r, "id"))
		if err != nil {
			response.Error(w, r, d.Logger, err)
			return
		}
		_, branches := bankBranches(d, bank, q.Get("q"), q.Get("state"))

		var buf bytes.Buffer
		if err := export.Write(&buf, format, bank, branches, d.Now()); err != nil {
			response.Error(w, r, d.Logger, fmt.Errorf("export %s as %s: %w", bank.ID, format, err))
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(bank)))
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

type shareResponse struct {
	Mailto string `json:"mailto"`
	Text   string `json:"text"`
}

// ShareBank returns the text export of a bank and a mailto link carrying it.
func ShareBank(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bank, err := lookupBank(d, chi.URLParam(r, "id"))
		if err != nil {
			response.Error(w, r, d.Logger, err)
			return
		}

		q := r.URL.Query()
		_, branches := bankBranches(d, bank, q.Get("q"), q.Get("state"))
		body := export.Text(bank.Name, branches, d.Now())
		response.JSON(w, d.Logger, http.StatusOK, shareResponse{
			Mailto: export.MailtoURL(bank.Name, body),
			Text:   body,
		})
	}
}
