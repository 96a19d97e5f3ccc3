package auth

import (
	"regexp"
	"strings"

	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/service"
)

// emailShape is a deliberately loose shape check: one "@", non-whitespace
// local part, a "." somewhere in the domain, no internal whitespace.
// Deliverability is not the normalizer's problem.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// emailNormalizer canonicalizes emails into the account uniqueness key.
type emailNormalizer struct{}

// NewEmailNormalizer is the constructor for emailNormalizer.
func NewEmailNormalizer() service.EmailNormalizer {
	return &emailNormalizer{}
}

// Normalize trims and lowercases raw, then validates its shape.
// trim(lower(x)) is idempotent, so Normalize(Normalize(x)) == Normalize(x).
func (n *emailNormalizer) Normalize(raw string) (string, error) {
	if raw == "" {
		return "", domainerrors.ErrEmailRequired.WrapMessage("empty email")
	}

	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !emailShape.MatchString(normalized) {
		return "", domainerrors.ErrEmailFormat.WrapMessage("email failed shape check")
	}

	return normalized, nil
}
