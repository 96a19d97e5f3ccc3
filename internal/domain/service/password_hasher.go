// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Repeated calls
	// with the same input produce different outputs (fresh salt per call);
	// the work factor is embedded in the hash string itself.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash. A plain mismatch is
	// (false, nil); a non-nil error means the verification mechanism itself
	// failed (e.g. the stored hash is malformed), not that the password was
	// wrong.
	Check(password, hash string) (bool, error)
}
