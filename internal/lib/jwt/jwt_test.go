package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewAndParse_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tok, err := NewToken(id, "", PurposeSession, "super-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	got, claims, err := ParseFor(tok, "super-secret", PurposeSession)
	if err != nil {
		t.Fatalf("ParseFor error: %v", err)
	}
	if got != id {
		t.Fatalf("user id mismatch: got %s want %s", got, id)
	}
	if claims.Email != "" {
		t.Fatalf("session token must not carry email, got %q", claims.Email)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	tok, err := NewToken(uuid.New(), "a@b.c", PurposeVerify, "secret", -time.Second)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	_, err = ParseToken(tok, "secret")
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewToken(uuid.New(), "", PurposeSession, "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	_, err = ParseToken(tok, "wrong-secret")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken("not.a.jwt", "k"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for malformed token, got %v", err)
	}
}

func TestParseFor_WrongPurpose(t *testing.T) {
	t.Parallel()

	tok, err := NewToken(uuid.New(), "a@b.c", PurposeVerify, "k", time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	if _, _, err := ParseFor(tok, "k", PurposeSession); !errors.Is(err, ErrWrongPurpose) {
		t.Fatalf("expected ErrWrongPurpose, got %v", err)
	}
}

func TestNewStampedToken_CarriesStamp(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tok, err := NewStampedToken(id, "a@b.c", "abc123", PurposeReset, "k", time.Hour)
	if err != nil {
		t.Fatalf("NewStampedToken error: %v", err)
	}

	got, claims, err := ParseFor(tok, "k", PurposeReset)
	if err != nil {
		t.Fatalf("ParseFor error: %v", err)
	}
	if got != id || claims.Email != "a@b.c" || claims.Stamp != "abc123" {
		t.Fatalf("unexpected claims: id=%v email=%q stamp=%q", got, claims.Email, claims.Stamp)
	}
}
