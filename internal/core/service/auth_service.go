package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/projectmanager/auth-service/internal/core/domain"
	"github.com/projectmanager/auth-service/internal/core/password"
	"github.com/projectmanager/auth-service/internal/core/ports"
	"github.com/projectmanager/auth-service/internal/core/token"
)

// AuthService implements ports.AuthService on top of the user repository,
// the credential hasher, the bearer-token issuer, the Google verifier, and
// the mailer. It owns the use-case logic only; persistence, transport, and
// delivery live behind their ports.
type AuthService struct {
	repo     ports.UserRepository
	hasher   *password.Hasher
	issuer   *token.Issuer
	google   ports.IdentityVerifier
	mailer   ports.Mailer
	resetTTL time.Duration

	// resetBaseURL is the frontend origin the reset link points at, e.g.
	// "https://app.example.com". The plaintext token rides in the URL path.
	resetBaseURL string

	logger zerolog.Logger
	now    func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	hasher *password.Hasher,
	issuer *token.Issuer,
	google ports.IdentityVerifier,
	mailer ports.Mailer,
	resetTTL time.Duration,
	resetBaseURL string,
	logger zerolog.Logger,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = token.DefaultResetTTL
	}
	return &AuthService{
		repo:         repo,
		hasher:       hasher,
		issuer:       issuer,
		google:       google,
		mailer:       mailer,
		resetTTL:     resetTTL,
		resetBaseURL: resetBaseURL,
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates a self-service account with role Employee and returns it
// with a fresh bearer token.
func (s *AuthService) Register(ctx context.Context, email, pass, fullName string) (*ports.AuthResult, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		FullName:     fullName,
		Role:         domain.RoleEmployee,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index is the real arbiter: a concurrent registration
		// with the same email loses here, not at the lookup above.
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user registered")
	return s.authResult(user)
}

// Login verifies the password for email. Unknown email and wrong password
// produce the same error so callers cannot probe which addresses exist.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.authResult(user)
}

// LoginGoogle verifies a Google ID token and resolves it to an account:
// by email first (linking an existing password account to the Google
// identity), then by Google id (a returning Google-first account whose email
// may have changed), and finally by creating a new Employee account with a
// random unusable password.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string) (*ports.AuthResult, error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	avatar := optional(identity.PictureURL)

	user, err := s.repo.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		if err := s.repo.UpdateGoogleProfile(ctx, user.ID, identity.Subject, avatar); err != nil {
			return nil, err
		}
		if user, err = s.repo.FindByID(ctx, user.ID); err != nil {
			return nil, err
		}

	case errors.Is(err, domain.ErrUserNotFound):
		user, err = s.repo.FindByGoogleID(ctx, identity.Subject)
		switch {
		case err == nil:
			if err := s.repo.UpdateProfile(ctx, user.ID, identity.Email, identity.Name, avatar); err != nil {
				return nil, err
			}
			if user, err = s.repo.FindByID(ctx, user.ID); err != nil {
				return nil, err
			}

		case errors.Is(err, domain.ErrUserNotFound):
			if user, err = s.createGoogleUser(ctx, identity, avatar); err != nil {
				return nil, err
			}
			s.logger.Info().Uint("user_id", user.ID).Msg("user created via google login")

		default:
			return nil, err
		}

	default:
		return nil, err
	}

	return s.authResult(user)
}

func (s *AuthService) createGoogleUser(ctx context.Context, identity *ports.GoogleIdentity, avatar *string) (*domain.User, error) {
	// The schema requires a credential on every row, so the account gets a
	// random password nobody was ever told. Password login stays possible
	// only after a reset through the owner's mailbox.
	placeholder, err := randomPassword()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(placeholder)
	if err != nil {
		return nil, err
	}

	googleID := identity.Subject
	user := &domain.User{
		Email:        identity.Email,
		FullName:     identity.Name,
		Role:         domain.RoleEmployee,
		PasswordHash: hash,
		AvatarPath:   avatar,
		GoogleID:     &googleID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword issues a fresh reset token for email, persists its digest
// and expiry, and emails the plaintext token inside a reset link. A previous
// pending token is silently overwritten. The token is persisted before the
// send: a delivery failure leaves it valid, so a retry means requesting a
// new email, never re-validating state.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	plain, digest, expiresAt, err := token.NewResetToken(s.resetTTL)
	if err != nil {
		return err
	}
	if err := s.repo.SetResetToken(ctx, user.ID, digest, expiresAt); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.resetBaseURL, plain)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("reset email delivery failed")
		return domain.ErrMailDelivery
	}

	s.logger.Info().Uint("user_id", user.ID).Time("expires_at", expiresAt).Msg("reset token issued")
	return nil
}

// ResetPassword redeems a reset token exactly once: it validates the digest
// against a live expiry, then swaps the password hash and clears the token
// state in a single repository update.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword string) error {
	user, err := s.lookupResetToken(ctx, plainToken)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.ConsumeResetToken(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("password reset")
	return nil
}

// VerifyResetToken reports whether a reset link is still redeemable, without
// consuming it. The frontend calls this before rendering the reset form.
func (s *AuthService) VerifyResetToken(ctx context.Context, plainToken string) bool {
	_, err := s.lookupResetToken(ctx, plainToken)
	return err == nil
}

func (s *AuthService) lookupResetToken(ctx context.Context, plainToken string) (*domain.User, error) {
	user, err := s.repo.FindByResetTokenDigest(ctx, token.ResetTokenDigest(plainToken), s.now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Not-found and expired are deliberately indistinguishable.
			return nil, domain.ErrInvalidResetToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) authResult(user *domain.User) (*ports.AuthResult, error) {
	signed, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("failed to issue token")
		return nil, err
	}
	return &ports.AuthResult{User: user.Public(), Token: signed}, nil
}

// randomPassword returns 32 bytes of entropy as hex, used as the unusable
// credential on Google-created accounts.
func randomPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("password entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
