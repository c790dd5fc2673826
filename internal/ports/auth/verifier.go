package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma tokens nuevos y permite revocarlos (logout).
type TokenIssuer interface {
	Issue(ctx context.Context, userID, email string) (string, Claims, error)
	Revoke(ctx context.Context, c Claims) error
}
