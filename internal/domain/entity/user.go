// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Email always holds the normalized
// (trimmed, lowercased) form and is the uniqueness key across all accounts.
// PasswordHash is a bcrypt hash; plaintext passwords are never stored.
type User struct {
	ID           uuid.UUID // Unique identifier, assigned by the storage layer at creation.
	Email        string    // Normalized email used as the login identifier.
	PasswordHash string    // Salted bcrypt hash of the account password.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
