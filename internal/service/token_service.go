package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"notes-app-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type ITokenService interface {
	// Issue signs a session token embedding the account id and email.
	Issue(accountId uuid.UUID, email string) (string, error)
	// Validate verifies signature and expiry and returns the decoded pair.
	// Every failure mode (bad signature, malformed, expired) collapses into
	// ErrInvalidToken.
	Validate(token string) (*entity.AuthAccount, error)
	// GeneratePasscode samples a 6-digit code from 100000-999999 inclusive.
	GeneratePasscode() (string, error)
	// PasscodeExpiry is the deadline a passcode issued now is valid until.
	PasscodeExpiry() time.Time
}

type tokenService struct {
	secret    []byte
	jwtExpiry time.Duration
	otpExpiry time.Duration
	random    io.Reader
}

func NewTokenService(secret string, jwtExpiry, otpExpiry time.Duration) ITokenService {
	return &tokenService{
		secret:    []byte(secret),
		jwtExpiry: jwtExpiry,
		otpExpiry: otpExpiry,
		random:    rand.Reader,
	}
}

func (s *tokenService) Issue(accountId uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": accountId.String(),
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.jwtExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) Validate(tokenStr string) (*entity.AuthAccount, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	idStr, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil || email == "" {
		return nil, ErrInvalidToken
	}
	return &entity.AuthAccount{Id: id, Email: email}, nil
}

func (s *tokenService) GeneratePasscode() (string, error) {
	n, err := rand.Int(s.random, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *tokenService) PasscodeExpiry() time.Time {
	return time.Now().Add(s.otpExpiry)
}
