package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned for passwords bcrypt would reject.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// PasswordHasher hashes account passwords and verifies login attempts.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher stores passwords as bcrypt digests.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher; a zero cost selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare reports a mismatch as bcrypt.ErrMismatchedHashAndPassword.
func (h *BcryptHasher) Compare(hash string, password string) error {
	if len(password) > maxPasswordBytes {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
