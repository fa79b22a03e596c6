package googletoken

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "test-client.apps.googleusercontent.com"

type signer struct {
	key *rsa.PrivateKey
	kid string
}

func newSigner(t *testing.T) *signer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return &signer{key: key, kid: "test-kid-1"}
}

func (s *signer) jwksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pub := s.key.Public().(*rsa.PublicKey)
		e := big.NewInt(int64(pub.E))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": s.kid,
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(e.Bytes()),
			}},
		})
	}
}

func (s *signer) sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.kid
	signed, err := token.SignedString(s.key)
	require.NoError(t, err)
	return signed
}

func googleClaims(email, sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":            "https://accounts.google.com",
		"aud":            testClientID,
		"sub":            sub,
		"email":          email,
		"email_verified": true,
		"iat":            time.Now().Unix(),
		"exp":            time.Now().Add(time.Hour).Unix(),
	}
}

func newTestVerifier(srv *httptest.Server) *Verifier {
	return &Verifier{
		clientID: testClientID,
		jwksURL:  srv.URL,
		keys:     gocache.New(time.Hour, 10*time.Minute),
		http:     srv.Client(),
	}
}

func TestVerifyAcceptsValidToken(t *testing.T) {
	s := newSigner(t)
	srv := httptest.NewServer(s.jwksHandler())
	defer srv.Close()

	v := newTestVerifier(srv)
	token := s.sign(t, googleClaims("alice@example.com", "google-sub-1"))

	claims, err := v.Verify(context.Background(), token, "alice@example.com", "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "google-sub-1", claims.Subject)
}

func TestVerifyRejections(t *testing.T) {
	s := newSigner(t)
	srv := httptest.NewServer(s.jwksHandler())
	defer srv.Close()

	wrongKey := newSigner(t)
	wrongKey.kid = s.kid // same kid so the lookup succeeds, signature fails

	expired := googleClaims("alice@example.com", "google-sub-1")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	badIssuer := googleClaims("alice@example.com", "google-sub-1")
	badIssuer["iss"] = "https://evil.example.com"

	badAudience := googleClaims("alice@example.com", "google-sub-1")
	badAudience["aud"] = "someone-else.apps.googleusercontent.com"

	tests := []struct {
		name    string
		token   string
		email   string
		sub     string
		wantErr error
	}{
		{
			name:    "garbage token",
			token:   "not.a.token",
			email:   "alice@example.com",
			sub:     "google-sub-1",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong signing key",
			token:   wrongKey.sign(t, googleClaims("alice@example.com", "google-sub-1")),
			email:   "alice@example.com",
			sub:     "google-sub-1",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "expired",
			token:   s.sign(t, expired),
			email:   "alice@example.com",
			sub:     "google-sub-1",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong issuer",
			token:   s.sign(t, badIssuer),
			email:   "alice@example.com",
			sub:     "google-sub-1",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong audience",
			token:   s.sign(t, badAudience),
			email:   "alice@example.com",
			sub:     "google-sub-1",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "email does not match",
			token:   s.sign(t, googleClaims("alice@example.com", "google-sub-1")),
			email:   "mallory@example.com",
			sub:     "google-sub-1",
			wantErr: ErrClaimMismatch,
		},
		{
			name:    "subject does not match",
			token:   s.sign(t, googleClaims("alice@example.com", "google-sub-1")),
			email:   "alice@example.com",
			sub:     "google-sub-2",
			wantErr: ErrClaimMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVerifier(srv)
			_, err := v.Verify(context.Background(), tt.token, tt.email, tt.sub)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyCachesKeys(t *testing.T) {
	s := newSigner(t)
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		s.jwksHandler()(w, r)
	}))
	defer srv.Close()

	v := newTestVerifier(srv)
	token := s.sign(t, googleClaims("alice@example.com", "google-sub-1"))

	for i := 0; i < 3; i++ {
		_, err := v.Verify(context.Background(), token, "alice@example.com", "google-sub-1")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, fetches)
}
