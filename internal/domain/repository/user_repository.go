// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"roster/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Callers must pass already-normalized emails; the repository does not
// normalize. The backing store enforces a unique index on the email column,
// which is the authoritative duplicate-detection mechanism under concurrent
// registrations.
type UserRepository interface {
	// FindByEmail retrieves a single user by their normalized email address.
	// Returns ErrUserNotFound when no such account exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage and fills in the
	// generated ID and timestamps. A unique-index violation surfaces as an
	// email-conflict domain error.
	Create(ctx context.Context, user *entity.User) error
}
