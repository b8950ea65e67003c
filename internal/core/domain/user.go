package domain

import (
	"errors"
	"time"
)

// Role classifies a user's position in the organisation. It lives on the user
// record only; bearer tokens never carry it, so a role change takes effect on
// the next request.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleDirector Role = "Director"
	RoleEmployee Role = "Employee"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDirector, RoleEmployee:
		return true
	}
	return false
}

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidResetToken  = errors.New("reset link is invalid or has expired")
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrMailDelivery       = errors.New("failed to send email")
)

// User models an account in the directory. PasswordHash is always a bcrypt
// hash — accounts created through Google login get a random unusable one,
// since the schema requires a credential on every row.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName     string    `json:"full_name" gorm:"not null"`
	Role         Role      `json:"role" gorm:"type:varchar(16);not null;default:Employee"`
	PasswordHash string    `json:"-" gorm:"not null"`
	AvatarPath   *string   `json:"avatar_path" gorm:"default:null"`
	GoogleID     *string   `json:"-" gorm:"uniqueIndex;default:null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Reset-token state. Only the sha256 digest of the token is ever stored;
	// a database leak must not hand out working reset links.
	ResetTokenDigest    *string    `json:"-" gorm:"index;default:null"`
	ResetTokenExpiresAt *time.Time `json:"-" gorm:"default:null"`
}

// PublicUser is the view of a user that leaves the service: no credential,
// no reset-token state.
type PublicUser struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Role       Role    `json:"role"`
	AvatarPath *string `json:"avatar_path"`
}

// Public projects the user onto its external view.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		AvatarPath: u.AvatarPath,
	}
}

// HasLiveResetToken reports whether the record holds a reset token that is
// still usable at instant now.
func (u *User) HasLiveResetToken(now time.Time) bool {
	return u.ResetTokenDigest != nil &&
		u.ResetTokenExpiresAt != nil &&
		u.ResetTokenExpiresAt.After(now)
}
