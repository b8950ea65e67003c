package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// resetTokenBytes is the entropy of a reset token before hex encoding.
const resetTokenBytes = 20

// DefaultResetTTL is the window during which a freshly issued reset token can
// be redeemed.
const DefaultResetTTL = 15 * time.Minute

// NewResetToken generates a single-use password-reset token. The plain value
// goes to the user out-of-band and is never stored; only the digest is
// persisted alongside its expiry.
func NewResetToken(ttl time.Duration) (plain, digest string, expiresAt time.Time, err error) {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}

	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("reset token entropy: %w", err)
	}

	plain = hex.EncodeToString(buf)
	return plain, ResetTokenDigest(plain), time.Now().Add(ttl), nil
}

// ResetTokenDigest maps a plaintext reset token to its stored form. Lookups
// hash the presented token and search by digest, mirroring the password
// argument: a leaked row does not yield a working reset link.
func ResetTokenDigest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
