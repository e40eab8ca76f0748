package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
)

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Service) Info(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.storage.UserByID(ctx, id)
}

// UpdateInfo applies the non-nil fields of patch. Changing the email puts the user
// back into the pending state and sends a verification link to the new address;
// nothing is saved if that mail cannot be sent.
func (s *Service) UpdateInfo(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	if patch.Empty() {
		return nil, ErrNoFields
	}

	var email string
	if patch.Email != nil {
		normalized, err := normalizeEmail(*patch.Email)
		if err != nil {
			return nil, err
		}
		email = normalized
	}
	for _, name := range []*string{patch.FirstName, patch.LastName} {
		if name != nil && strings.TrimSpace(*name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
	}

	var updated *models.User
	err := s.storage.Atomic(ctx, func(ctx context.Context, q storage.Querier) error {
		user, err := q.UserByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.FirstName != nil {
			user.FirstName = strings.TrimSpace(*patch.FirstName)
		}
		if patch.LastName != nil {
			user.LastName = strings.TrimSpace(*patch.LastName)
		}
		if patch.Phone != nil {
			user.Phone = strings.TrimSpace(*patch.Phone)
		}

		emailChanged := email != "" && email != user.Email
		if emailChanged {
			user.Email = email
			user.Status = models.StatusPending
		}

		if err := q.UpdateUser(ctx, user); err != nil {
			return err
		}

		if emailChanged {
			if err := s.sendVerification(ctx, user, false); err != nil {
				return err
			}
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, in PasswordChange) error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return fmt.Errorf("%w: currentPassword and newPassword are required", ErrInvalidInput)
	}

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := checkPassword(user, in.CurrentPassword); err != nil {
		return err
	}

	hash, err := s.hashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return s.storage.UpdateUser(ctx, user)
}

// DeleteProfile removes the user with all of their accounts, transactions and
// budgets after the password has been confirmed.
func (s *Service) DeleteProfile(ctx context.Context, id uuid.UUID, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := checkPassword(user, password); err != nil {
		return err
	}

	err = s.storage.Atomic(ctx, func(ctx context.Context, q storage.Querier) error {
		if err := q.DeleteTransactions(ctx, id); err != nil {
			return err
		}
		if err := q.DeleteBudgets(ctx, id); err != nil {
			return err
		}
		if err := q.DeleteAccounts(ctx, id); err != nil {
			return err
		}
		return q.DeleteUser(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("identity.DeleteProfile: %w", err)
	}

	s.logger.Info("User deleted", slog.String("user", id.String()))

	return nil
}
