package models

import "time"

// User is the database representation of a staff user.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	AuthProvider string `db:"auth_provider"`
	ProviderID   string `db:"provider_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
