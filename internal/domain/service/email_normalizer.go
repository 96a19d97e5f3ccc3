package service

// EmailNormalizer canonicalizes email addresses into the form used as the
// account uniqueness key. The same normalization must run before every
// lookup, insert and comparison so that case and whitespace variants of one
// address resolve to the same identity.
type EmailNormalizer interface {
	// Normalize trims and lowercases raw and validates its basic shape.
	// Returns an invalid-input domain error when raw is empty or does not
	// look like an email address after normalization. Idempotent.
	Normalize(raw string) (string, error)
}
