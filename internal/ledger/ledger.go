// Package ledger manages accounts and the transactions that move their balances.
//
// A transaction create applies +amount to its account and a delete applies -amount.
// Both writes happen inside one storage.Atomic unit with the account row locked, so
// the stored balance never diverges from the recorded transactions through a partial
// failure or a concurrent request.
package ledger

import (
	"errors"
	"log/slog"
	"time"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNoFields        = errors.New("no fields to update")
	ErrInvalidCategory = errors.New("invalid category")
)

type Service struct {
	storage storage.Storage
	logger  *slog.Logger
	now     func() time.Time
}

func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}
