package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/lib/jwt"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
)

type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// Credentials accepts the address as either "email" or "login".
type Credentials struct {
	Email    string `json:"email"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Register creates a pending user and mails a verification link. The user is kept
// when delivery fails so the link can be requested again.
func (s *Service) Register(ctx context.Context, in Registration) (*models.User, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: firstName, lastName, email and password are required", ErrInvalidInput)
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.storage.UserByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Status == models.StatusPending {
			return nil, ErrVerificationPending
		}
		return nil, storage.ErrEmailTaken
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Status:       models.StatusPending,
		CreatedAt:    s.now(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Register new user", slog.String("user", user.ID.String()))

	if err := s.sendVerification(ctx, user, false); err != nil {
		return nil, err
	}

	return user, nil
}

// Login returns a session token. The password is checked before the verification
// status so an unverified account is only revealed to its owner.
func (s *Service) Login(ctx context.Context, in Credentials) (string, error) {
	login := in.Email
	if login == "" {
		login = in.Login
	}
	if strings.TrimSpace(login) == "" || in.Password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.storage.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(login)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := checkPassword(user, in.Password); err != nil {
		return "", err
	}
	if user.Status != models.StatusConfirmed {
		return "", ErrNotVerified
	}

	return jwt.NewToken(user.ID, "", jwt.PurposeSession, s.cfg.Secret, s.cfg.SessionTTL)
}

// VerifyEmail confirms the address a verification token was issued for. A token
// minted before an email change no longer matches and is rejected.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	id, claims, err := jwt.ParseFor(token, s.cfg.Secret, jwt.PurposeVerify)
	if err != nil {
		return tokenError(err)
	}

	return s.storage.Atomic(ctx, func(ctx context.Context, q storage.Querier) error {
		user, err := q.UserByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrInvalidToken
			}
			return err
		}
		if user.Email != claims.Email {
			return ErrInvalidToken
		}
		if user.Status == models.StatusConfirmed {
			return ErrAlreadyVerified
		}

		user.Status = models.StatusConfirmed
		return q.UpdateUser(ctx, user)
	})
}

func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Status == models.StatusConfirmed {
		return ErrAlreadyVerified
	}

	return s.sendVerification(ctx, user, true)
}

// ForgotPassword mails a single-purpose reset link to a registered address.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}

	return s.sendReset(ctx, user)
}

// ResetPassword sets a new password with a mailed reset token. A token works once:
// after the password changes its stamp no longer matches.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	id, claims, err := jwt.ParseFor(token, s.cfg.Secret, jwt.PurposeReset)
	if err != nil {
		return tokenError(err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}

	return s.storage.Atomic(ctx, func(ctx context.Context, q storage.Querier) error {
		user, err := q.UserByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrInvalidToken
			}
			return err
		}
		if user.Email != claims.Email || claims.Stamp != credentialStamp(user) {
			return ErrInvalidToken
		}

		user.PasswordHash = hash
		return q.UpdateUser(ctx, user)
	})
}

func (s *Service) userByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.UserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}
	return user, nil
}
