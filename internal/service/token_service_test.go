package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 5*time.Minute)

	id := uuid.New()
	token, err := svc.Issue(id, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	account, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id, account.Id)
	assert.Equal(t, "alice@example.com", account.Email)
}

func TestValidateRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 5*time.Minute)
	other := NewTokenService("other-secret", time.Hour, 5*time.Minute)

	forged, err := other.Issue(uuid.New(), "mallory@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong signature", forged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, 5*time.Minute)

	token, err := svc.Issue(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGeneratePasscodeRange(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 5*time.Minute)

	for i := 0; i < 200; i++ {
		code, err := svc.GeneratePasscode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGeneratePasscodeDeterministic(t *testing.T) {
	// A zeroed reader pins rand.Int to its smallest sample.
	svc := &tokenService{
		secret:    []byte("test-secret"),
		jwtExpiry: time.Hour,
		otpExpiry: 5 * time.Minute,
		random:    zeroReader{},
	}

	code, err := svc.GeneratePasscode()
	require.NoError(t, err)
	assert.Equal(t, "100000", code)
}

func TestPasscodeExpiryWindow(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 5*time.Minute)

	before := time.Now().Add(5 * time.Minute)
	deadline := svc.PasscodeExpiry()
	after := time.Now().Add(5 * time.Minute)

	assert.False(t, deadline.Before(before))
	assert.False(t, deadline.After(after))
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
