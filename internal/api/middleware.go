package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/identity"
	"github.com/google/uuid"
)

type ctxKey int

const ownerKey ctxKey = iota

func withOwner(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey, id)
}

// ownerFrom returns the caller set by authenticate.
func ownerFrom(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(ownerKey).(uuid.UUID)
	return id
}

func (s *APIServer) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			respondError(w, http.StatusUnauthorized, "missing token")
			return
		}

		parts := strings.Split(tokenHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "invalid token format")
			return
		}

		owner, err := s.identity.Authenticate(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrTokenExpired):
				respondError(w, http.StatusUnauthorized, "token expired")
			case errors.Is(err, identity.ErrInvalidToken):
				respondError(w, http.StatusUnauthorized, "invalid token")
			case errors.Is(err, identity.ErrNotVerified):
				respondError(w, http.StatusUnauthorized, identity.ErrNotVerified.Error())
			default:
				s.serverError(w, r, err)
			}
			return
		}

		next(w, r.WithContext(withOwner(r.Context(), owner)))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *APIServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("Request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func (s *APIServer) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.config.CORSOrigin)
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		next.ServeHTTP(w, r)
	})
}
