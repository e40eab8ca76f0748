// Package identity implements registration, e-mail verification, sessions and
// self-service profile management.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/lib/jwt"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordLen = 72
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoFields            = errors.New("no fields to update")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotVerified         = errors.New("email is not verified")
	ErrAlreadyVerified     = errors.New("already verified")
	ErrVerificationPending = errors.New("verification email already sent")
	ErrUnknownEmail        = errors.New("no user with this email")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidToken        = errors.New("invalid token")
)

// Mailer delivers an HTML message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

type Config struct {
	Secret      string
	SessionTTL  time.Duration
	VerifyTTL   time.Duration
	ResetTTL    time.Duration
	FrontendURL string
	// BcryptCost defaults to bcrypt.DefaultCost when zero.
	BcryptCost int
}

type Service struct {
	storage storage.Storage
	mailer  Mailer
	cfg     Config
	logger  *slog.Logger
	cost    int
	now     func() time.Time
}

func New(storage storage.Storage, mailer Mailer, cfg Config, logger *slog.Logger) *Service {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &Service{
		storage: storage,
		mailer:  mailer,
		cfg:     cfg,
		logger:  logger,
		cost:    cost,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q is not a valid email", ErrInvalidInput, email)
	}
	return email, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return "", fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("identity.hashPassword: %w", err)
	}
	return string(hash), nil
}

func checkPassword(user *models.User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// credentialStamp fingerprints the current password hash. A reset token carries
// it and is refused once the password has changed.
func credentialStamp(user *models.User) string {
	sum := sha256.Sum256([]byte(user.PasswordHash))
	return hex.EncodeToString(sum[:8])
}

// tokenError converts jwt failures into the package's errors.
func tokenError(err error) error {
	if errors.Is(err, jwt.ErrExpired) {
		return ErrTokenExpired
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}

// Authenticate resolves a session token to its user id. Tokens of users that no
// longer exist are rejected, and so are tokens of users whose email is pending
// verification again.
func (s *Service) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	id, _, err := jwt.ParseFor(token, s.cfg.Secret, jwt.PurposeSession)
	if err != nil {
		return uuid.Nil, tokenError(err)
	}

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return uuid.Nil, ErrInvalidToken
		}
		return uuid.Nil, err
	}
	if user.Status != models.StatusConfirmed {
		return uuid.Nil, ErrNotVerified
	}

	return id, nil
}
