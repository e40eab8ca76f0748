package api

import (
	"errors"
	"net/http"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/analytics"
)

type categoriesRequest struct {
	AccountID string `json:"accountId"`
}

// categoriesHandler accepts an empty body as "all accounts".
func (s *APIServer) categoriesHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		req := categoriesRequest{AccountID: analytics.AllAccounts}
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errMissingFields) {
			s.fail(w, r, err)
			return
		}

		report, err := s.analytics.Categories(r.Context(), ownerFrom(r.Context()), req.AccountID)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
