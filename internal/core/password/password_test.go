package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/projectmanager/auth-service/internal/core/domain"
)

func TestHasher_Hash_TooShort(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	if _, err := h.Hash("seven77"); err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := h.Hash(""); err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword for empty input, got %v", err)
	}
}

func TestHasher_Hash_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "password1" {
		t.Fatalf("hash equals plaintext")
	}
	if !h.Verify("password1", hash) {
		t.Fatalf("Verify rejected the original password")
	}
	if h.Verify("password2", hash) {
		t.Fatalf("Verify accepted the wrong password")
	}
}

func TestHasher_Hash_SaltedPerCall(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same input are identical")
	}
}

func TestHasher_Verify_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	if h.Verify("password1", "not-a-bcrypt-hash") {
		t.Fatalf("Verify accepted a malformed hash")
	}
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	h := NewHasher(100)

	hash, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost returned error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", cost)
	}
}
