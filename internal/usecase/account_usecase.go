// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// SanitizedUser is the account view that crosses the service boundary.
// It deliberately has no slot for the password hash: success responses are
// built from this struct and nothing else.
type SanitizedUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountUsecase defines the interface for account registration and login.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account for a not-yet-registered email.
	// Exactly one storage write on success, none on any failure path.
	Register(ctx context.Context, input *RegisterInput) (*SanitizedUser, error)

	// Login verifies credentials and returns the account's sanitized view.
	// Read-only; it issues no session or token.
	Login(ctx context.Context, input *LoginInput) (*SanitizedUser, error)
}
