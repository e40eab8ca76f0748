package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type Purpose string

const (
	PurposeSession Purpose = "session"
	PurposeVerify  Purpose = "verify"
	PurposeReset   Purpose = "reset"
)

var (
	ErrExpired      = errors.New("token expired")
	ErrInvalid      = errors.New("invalid token")
	ErrWrongPurpose = errors.New("token issued for another purpose")
)

type Claims struct {
	jwt.RegisteredClaims
	UserID  string  `json:"uid"`
	Email   string  `json:"email,omitempty"`
	Stamp   string  `json:"stamp,omitempty"`
	Purpose Purpose `json:"purpose"`
}

// NewToken signs an HS256 token for userID. Verify and reset tokens embed the
// address they were mailed to, so they stop working once that address changes.
// Session tokens carry no email.
func NewToken(userID uuid.UUID, email string, purpose Purpose, jwtSecret string, duration time.Duration) (string, error) {
	return NewStampedToken(userID, email, "", purpose, jwtSecret, duration)
}

// NewStampedToken is NewToken with a stamp of the credential the token may
// replace. The caller compares it on use to make the token single-use.
func NewStampedToken(userID uuid.UUID, email, stamp string, purpose Purpose, jwtSecret string, duration time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:  userID.String(),
		Email:   email,
		Stamp:   stamp,
		Purpose: purpose,
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if !token.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}

// ParseFor parses the token and checks it was issued for purpose.
func ParseFor(tokenString string, secret string, purpose Purpose) (uuid.UUID, *Claims, error) {
	claims, err := ParseToken(tokenString, secret)
	if err != nil {
		return uuid.Nil, nil, err
	}

	if claims.Purpose != purpose {
		return uuid.Nil, nil, ErrWrongPurpose
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: bad subject", ErrInvalid)
	}

	return id, claims, nil
}
