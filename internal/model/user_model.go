package model

import (
	"time"
)

// User is the document stored in the "users" collection. The _id is the
// uuid string so entities and documents share the same identifier space.
type User struct {
	Id           string     `bson:"_id"`
	Email        string     `bson:"email"`
	PasswordHash *string    `bson:"password_hash,omitempty"`
	GoogleId     *string    `bson:"google_id,omitempty"`
	Otp          *string    `bson:"otp,omitempty"`
	OtpExpiresAt *time.Time `bson:"otp_expires_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

func (User) CollectionName() string {
	return "users"
}
