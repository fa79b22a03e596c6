package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	GoogleId     *string
	// Otp holds the current one-time passcode. Non-nil means an outstanding
	// signup-verification or login challenge; nil means none.
	Otp          *string
	OtpExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) HasGoogle() bool {
	return u.GoogleId != nil && *u.GoogleId != ""
}

// AuthAccount is the typed value the session middleware attaches to the
// request context. Handlers consume this instead of raw token claims.
type AuthAccount struct {
	Id    uuid.UUID
	Email string
}
