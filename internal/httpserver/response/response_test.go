package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/bankfinder/internal/logger"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", NewNotFoundError("bank not found"), http.StatusNotFound, "not_found", "bank not found"},
		{"wrapped validation", fmt.Errorf("parse: %w", NewValidationError("bad type")), http.StatusBadRequest, "invalid_input", "bad type"},
		{"unavailable", NewUnavailableError("loading"), http.StatusServiceUnavailable, "unavailable", "loading"},
		{"untyped", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/banks/x", nil)
			Error(rec, req, logger.NewNop(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tt.wantCode || body.Message != tt.wantMsg {
				t.Errorf("body = %+v, want {%s %s}", body, tt.wantCode, tt.wantMsg)
			}
		})
	}
}
