package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/analytics"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/budgets"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/export"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/identity"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/ledger"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const (
	msgServerError    = "server error. please try again"
	msgRecordNotFound = "record not found"
)

var (
	errFieldCount    = errors.New("incorrect numbers of fields")
	errMissingFields = errors.New("missing required fields")
	errInvalidBody   = errors.New("invalid request body")
	errInvalidID     = errors.New("invalid id")
)

// Amounts go over the wire as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// envelope is the body of every non-resource response.
type envelope struct {
	Status  int              `json:"status"`
	Success string           `json:"success,omitempty"`
	Error   string           `json:"error,omitempty"`
	ID      string           `json:"id,omitempty"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Status: status, Error: message})
}

func respondSuccess(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Status: status, Success: message})
}

// errorRule maps a sentinel to a status. With detail set the wrapped message is
// returned to the client, otherwise only the sentinel text.
type errorRule struct {
	target error
	status int
	detail bool
}

var errorRules = []errorRule{
	{errFieldCount, http.StatusBadRequest, false},
	{errMissingFields, http.StatusBadRequest, false},
	{errInvalidBody, http.StatusBadRequest, false},
	{errInvalidID, http.StatusBadRequest, false},

	{storage.ErrNotFound, http.StatusNotFound, false},
	{storage.ErrEmailTaken, http.StatusBadRequest, false},
	{storage.ErrAccountNumberTaken, http.StatusBadRequest, false},
	{storage.ErrBudgetExists, http.StatusBadRequest, false},

	{ledger.ErrInvalidInput, http.StatusBadRequest, true},
	{ledger.ErrNoFields, http.StatusBadRequest, false},
	{ledger.ErrInvalidCategory, http.StatusBadRequest, true},
	{analytics.ErrInvalidAccount, http.StatusBadRequest, true},
	{budgets.ErrInvalidInput, http.StatusBadRequest, true},
	{budgets.ErrInvalidCategory, http.StatusBadRequest, true},
	{export.ErrInvalidFormat, http.StatusBadRequest, true},
	{export.ErrArchiveDisabled, http.StatusServiceUnavailable, false},

	{identity.ErrInvalidInput, http.StatusBadRequest, true},
	{identity.ErrNoFields, http.StatusBadRequest, false},
	{identity.ErrInvalidCredentials, http.StatusUnauthorized, false},
	{identity.ErrNotVerified, http.StatusUnauthorized, false},
	{identity.ErrAlreadyVerified, http.StatusBadRequest, false},
	{identity.ErrVerificationPending, http.StatusBadRequest, false},
	{identity.ErrUnknownEmail, http.StatusBadRequest, false},
	{identity.ErrTokenExpired, http.StatusBadRequest, false},
	{identity.ErrInvalidToken, http.StatusBadRequest, false},
}

// statusFor reports the status and client message for err. Unknown errors are 500.
func statusFor(err error) (int, string) {
	for _, rule := range errorRules {
		if !errors.Is(err, rule.target) {
			continue
		}
		if rule.target == storage.ErrNotFound {
			return rule.status, msgRecordNotFound
		}
		if rule.detail {
			return rule.status, err.Error()
		}
		return rule.status, rule.target.Error()
	}
	return http.StatusInternalServerError, msgServerError
}

func (s *APIServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		s.serverError(w, r, err)
		return
	}
	respondError(w, status, message)
}

func (s *APIServer) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("Request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	respondError(w, http.StatusInternalServerError, msgServerError)
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return errMissingFields
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			return errFieldCount
		default:
			return fmt.Errorf("%w: %v", errInvalidBody, err)
		}
	}

	if dec.More() {
		return errInvalidBody
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}
