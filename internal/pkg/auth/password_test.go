package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasherCost(t *testing.T) {
	if got := NewBcryptHasher(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewBcryptHasher(bcrypt.MinCost).cost; got != bcrypt.MinCost {
		t.Fatalf("expected min cost, got %d", got)
	}
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	digest, err := hasher.Hash("testpass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "" || digest == "testpass123" {
		t.Fatalf("unexpected digest %q", digest)
	}
	if err := hasher.Compare(digest, "testpass123"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(digest, "testpass124"); !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

func TestBcryptHasherRejectsLongPasswords(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	long := strings.Repeat("p", maxPasswordBytes+1)
	if _, err := hasher.Hash(long); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}

	digest, err := hasher.Hash(long[:maxPasswordBytes])
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := hasher.Compare(digest, long); err == nil {
		t.Fatal("over-long candidates must never match")
	}
}

func TestBcryptHasherInvalidCost(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MaxCost + 1}
	if _, err := hasher.Hash("password"); err == nil {
		t.Fatal("expected hash error for invalid cost")
	}
}
