package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/projectmanager/auth-service/internal/core/domain"
)

// UserRepository is the gorm implementation of ports.UserRepository. All
// store-level errors are translated to domain sentinels at this boundary;
// callers never see gorm errors.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.findOne(ctx, "google_id = ?", googleID)
}

// FindByResetTokenDigest resolves a reset token whose expiry is still in the
// future. The expiry predicate lives in the query so a dead token behaves
// exactly like a missing one.
func (r *UserRepository) FindByResetTokenDigest(ctx context.Context, digest string, now time.Time) (*domain.User, error) {
	return r.findOne(ctx, "reset_token_digest = ? AND reset_token_expires_at > ?", digest, now)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateGoogleProfile(ctx context.Context, id uint, googleID string, avatarPath *string) error {
	return r.update(ctx, id, map[string]any{
		"google_id":   googleID,
		"avatar_path": avatarPath,
	})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, email, fullName string, avatarPath *string) error {
	return r.update(ctx, id, map[string]any{
		"email":       email,
		"full_name":   fullName,
		"avatar_path": avatarPath,
	})
}

func (r *UserRepository) SetResetToken(ctx context.Context, id uint, digest string, expiresAt time.Time) error {
	return r.update(ctx, id, map[string]any{
		"reset_token_digest":     digest,
		"reset_token_expires_at": expiresAt,
	})
}

// ConsumeResetToken is a single UPDATE: the password swap and the token
// clearing are never observable separately.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, id uint, newPasswordHash string) error {
	return r.update(ctx, id, map[string]any{
		"password_hash":          newPasswordHash,
		"reset_token_digest":     nil,
		"reset_token_expires_at": nil,
	})
}

func (r *UserRepository) update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
