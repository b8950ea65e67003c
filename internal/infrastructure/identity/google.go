// Package identity validates third-party ID tokens.
package identity

import (
	"context"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/projectmanager/auth-service/internal/core/domain"
	"github.com/projectmanager/auth-service/internal/core/ports"
)

// verifyTimeout bounds the certificate fetch behind Google's validation;
// it is one of only two third-party network calls in the service.
const verifyTimeout = 10 * time.Second

// GoogleVerifier checks Google ID tokens against the configured OAuth client
// id. One instance lives for the whole process.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify validates signature and audience and extracts the identity claims.
// Missing email, name, or subject makes the token unusable regardless of a
// valid signature.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*ports.GoogleIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, domain.ErrInvalidGoogleToken
	}

	identity := &ports.GoogleIdentity{
		Email:      stringClaim(payload.Claims, "email"),
		Name:       stringClaim(payload.Claims, "name"),
		PictureURL: stringClaim(payload.Claims, "picture"),
		Subject:    payload.Subject,
	}
	if identity.Email == "" || identity.Name == "" || identity.Subject == "" {
		return nil, domain.ErrInvalidGoogleToken
	}
	return identity, nil
}

func stringClaim(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}
