// Package password wraps bcrypt hashing behind the minimum-length policy.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/projectmanager/auth-service/internal/core/domain"
)

// MinLength is the shortest password accepted anywhere in the service.
const MinLength = 8

// Hasher produces and checks bcrypt credential hashes. The cost factor is a
// deliberate latency/brute-force trade-off; bcrypt salts every call, so equal
// inputs never produce equal hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plain, or domain.ErrWeakPassword when the
// input is shorter than MinLength.
func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", domain.ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hash. Mismatches and malformed hashes
// both report false; this never errors to the caller.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
