package postgres

import (
	"context"
	"database/sql/driver"
	"net"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether err is a unique-index violation.
// GORM translates driver duplicate-key errors to ErrDuplicatedKey when error
// translation is enabled; the message patterns cover drivers that surface the
// raw PostgreSQL error instead (SQLSTATE 23505).
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505")
}

// isConnectivityError reports whether err stems from the database being
// unreachable or unresponsive rather than from the statement itself. These
// failures are transient and map to StorageUnavailable, which transports may
// retry with backoff.
func isConnectivityError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "no such host") ||
		strings.Contains(errMsg, "server closed") ||
		strings.Contains(errMsg, "bad connection")
}
