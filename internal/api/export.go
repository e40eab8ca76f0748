package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/export"
	"github.com/google/uuid"
)

type archiveRequest struct {
	Format    string `json:"format"`
	AccountID string `json:"accountId"`
}

func parseAccountFilter(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

func (s *APIServer) exportHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		format, err := export.ParseFormat(query.Get("format"))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		accountID, err := parseAccountFilter(query.Get("accountId"))
		if err != nil {
			s.fail(w, r, err)
			return
		}

		statement, err := s.export.Render(r.Context(), ownerFrom(r.Context()), format, accountID)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", statement.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(statement.Body)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(statement.Body)
	}
}

func (s *APIServer) archiveHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req archiveRequest
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		format, err := export.ParseFormat(req.Format)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		accountID, err := parseAccountFilter(req.AccountID)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		archived, err := s.export.Archive(r.Context(), ownerFrom(r.Context()), format, accountID)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, archived)
	}
}
