package ports

import (
	"context"

	"github.com/projectmanager/auth-service/internal/core/domain"
)

// AuthResult is what every successful authentication path returns: the public
// view of the resolved user plus a fresh bearer token.
type AuthResult struct {
	User  domain.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// AuthService drives the credential lifecycle. All failures are sentinel
// errors from the domain package; the HTTP layer maps them to status codes.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	LoginGoogle(ctx context.Context, idToken string) (*AuthResult, error)

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyResetToken(ctx context.Context, token string) bool
}
