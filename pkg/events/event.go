package events

import "time"

const AccountVerifiedTopic = "ACCOUNT_VERIFIED"

// AccountVerified is published when an account completes email verification.
// The welcome-mail worker consumes it; delivery is best effort.
type AccountVerified struct {
	UserId     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
