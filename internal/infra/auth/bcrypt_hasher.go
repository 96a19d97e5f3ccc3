// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"roster/config"
	"roster/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher. The work factor comes
// from configuration; hashing holds no shared state, so concurrent calls
// never serialize on anything but CPU.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	return NewBcryptHasherWithCost(cfg.BcryptCost())
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost factor.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt generates a fresh salt per call and embeds algorithm, cost and salt
// in the output, so the cost can be tuned without breaking Check.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash. A mismatch is
// (false, nil); any other bcrypt error (malformed or truncated hash) is a
// mechanism failure and is returned as-is. The comparison itself is
// constant-time inside bcrypt.
func (h *bcryptHasher) Check(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, err
}
