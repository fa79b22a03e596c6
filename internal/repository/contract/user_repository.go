package contract

import (
	"context"
	"errors"
	"time"

	"notes-app-be/internal/entity"

	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned by Create when the unique email index
// rejects the document. Concurrent signups for the same address are resolved
// by the store, not by application-level locking.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByEmailAndOtp matches the (email, otp) pair in one query, the way
	// verification and login challenges are looked up.
	FindByEmailAndOtp(ctx context.Context, email, otp string) (*entity.User, error)

	// SetOtp overwrites the account's passcode and its expiry, invalidating
	// any previously issued code.
	SetOtp(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error
	// ClearOtp removes the outstanding challenge.
	ClearOtp(ctx context.Context, id uuid.UUID) error
	// LinkGoogle binds a Google subject identifier to an existing account.
	LinkGoogle(ctx context.Context, id uuid.UUID, googleId string) error
}
