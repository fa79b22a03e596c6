package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"notes-app-be/internal/entity"
	"notes-app-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	account *entity.AuthAccount
	err     error
}

func (s *stubValidator) Validate(token string) (*entity.AuthAccount, error) {
	return s.account, s.err
}

type stubResolver struct {
	user *entity.User
	err  error
}

func (s *stubResolver) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.user, s.err
}

func newTestApp(tokens SessionValidator, users AccountResolver) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Use(NewAuthMiddleware(tokens, users))
	app.Get("/me", func(ctx *fiber.Ctx) error {
		account, err := AuthAccountFromCtx(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", account.Email))
	})
	return app
}

func decodeEnvelope(t *testing.T, body io.Reader) BaseResponse[json.RawMessage] {
	t.Helper()
	var res BaseResponse[json.RawMessage]
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestAuthMiddleware(t *testing.T) {
	accountId := uuid.New()
	account := &entity.AuthAccount{Id: accountId, Email: "alice@example.com"}
	user := &entity.User{Id: accountId, Email: "alice@example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	tests := []struct {
		name       string
		header     string
		validator  *stubValidator
		resolver   *stubResolver
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			validator:  &stubValidator{account: account},
			resolver:   &stubResolver{user: user},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc123",
			validator:  &stubValidator{account: account},
			resolver:   &stubResolver{user: user},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			validator:  &stubValidator{err: errors.New("invalid")},
			resolver:   &stubResolver{user: user},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "account deleted after token issued",
			header:     "Bearer good",
			validator:  &stubValidator{account: account},
			resolver:   &stubResolver{user: nil},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     "Bearer good",
			validator:  &stubValidator{account: account},
			resolver:   &stubResolver{user: user},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.validator, tt.resolver)

			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			envelope := decodeEnvelope(t, resp.Body)
			assert.Equal(t, tt.wantStatus == fiber.StatusOK, envelope.Success)
		})
	}
}

func TestErrorHandlerEnvelope(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/api-error", func(ctx *fiber.Ctx) error {
		return NewNotFound("Note not found")
	})
	app.Get("/unexpected", func(ctx *fiber.Ctx) error {
		return errors.New("mongo: connection reset")
	})

	t.Run("api error keeps status and message", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api-error", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		envelope := decodeEnvelope(t, resp.Body)
		assert.False(t, envelope.Success)
		assert.Equal(t, "Note not found", envelope.Message)
	})

	t.Run("unexpected error never leaks", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/unexpected", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		envelope := decodeEnvelope(t, resp.Body)
		assert.False(t, envelope.Success)
		assert.Equal(t, "Internal server error", envelope.Message)
	})
}
