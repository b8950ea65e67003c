package ports

import "context"

// GoogleIdentity carries the verified claims of a Google ID token. Subject is
// Google's stable account identifier ("sub").
type GoogleIdentity struct {
	Email      string
	Name       string
	PictureURL string
	Subject    string
}

// IdentityVerifier validates a third-party ID token against the configured
// audience and extracts its identity claims. Unverified claims never cross
// this boundary; any signature, audience, or missing-claim problem surfaces
// as domain.ErrInvalidGoogleToken.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}
