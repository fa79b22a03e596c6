package serverutils

import (
	"context"
	"strings"

	"notes-app-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const authAccountKey = "auth_account"

// SessionValidator is the slice of the token service the middleware needs.
type SessionValidator interface {
	Validate(token string) (*entity.AuthAccount, error)
}

// AccountResolver resolves the token's account against the store so a token
// for a deleted account stops working immediately.
type AccountResolver interface {
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// NewAuthMiddleware validates the bearer token on every request (no caching
// of results) and attaches the typed account to the request locals.
func NewAuthMiddleware(tokens SessionValidator, users AccountResolver) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return NewUnauthorized("Access token required")
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		account, err := tokens.Validate(tokenStr)
		if err != nil {
			return NewUnauthorized("Invalid or expired token")
		}

		user, err := users.FindById(ctx.Context(), account.Id)
		if err != nil {
			return err
		}
		if user == nil {
			return NewUnauthorized("Invalid token")
		}

		ctx.Locals(authAccountKey, &entity.AuthAccount{Id: user.Id, Email: user.Email})
		return ctx.Next()
	}
}

// AuthAccountFromCtx returns the account the middleware attached. A handler
// reached without the middleware reports unauthorized rather than panicking.
func AuthAccountFromCtx(ctx *fiber.Ctx) (*entity.AuthAccount, error) {
	account, ok := ctx.Locals(authAccountKey).(*entity.AuthAccount)
	if !ok {
		return nil, NewUnauthorized("Access token required")
	}
	return account, nil
}
