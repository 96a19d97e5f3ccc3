// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). The unique index on email is the sole source of truth
// for duplicate detection under concurrent registrations; the column stores
// the already-normalized (lowercased, trimmed) address.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
