package ports

import (
	"context"
	"time"

	"github.com/projectmanager/auth-service/internal/core/domain"
)

// UserRepository is the persistence boundary for user records. Lookups return
// domain.ErrUserNotFound when no row matches; Create returns
// domain.ErrEmailTaken when the unique email constraint fires.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error)

	// FindByResetTokenDigest matches a stored reset-token digest whose expiry
	// is strictly after now. Dead and missing tokens are indistinguishable:
	// both return domain.ErrUserNotFound.
	FindByResetTokenDigest(ctx context.Context, digest string, now time.Time) (*domain.User, error)

	Create(ctx context.Context, user *domain.User) error

	UpdateGoogleProfile(ctx context.Context, id uint, googleID string, avatarPath *string) error
	UpdateProfile(ctx context.Context, id uint, email, fullName string, avatarPath *string) error

	// SetResetToken overwrites any previous reset-token state on the user;
	// only one pending token exists per user at a time.
	SetResetToken(ctx context.Context, id uint, digest string, expiresAt time.Time) error

	// ConsumeResetToken replaces the password hash and clears both reset-token
	// columns in a single update, so the token can never validate again once
	// the password has changed.
	ConsumeResetToken(ctx context.Context, id uint, newPasswordHash string) error
}
