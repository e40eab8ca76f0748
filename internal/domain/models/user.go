package models

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	StatusPending   UserStatus = "Pending"
	StatusConfirmed UserStatus = "Confirmed"
)

type User struct {
	ID           uuid.UUID  `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Status       UserStatus `json:"-"`
	CreatedAt    time.Time  `json:"-"`
}

// Name is used as the greeting in outgoing e-mails.
func (u *User) Name() string {
	if u.FirstName == "" {
		return u.Email
	}
	return u.FirstName
}

// UserPatch carries the profile fields a caller may change; nil means untouched.
type UserPatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil
}
