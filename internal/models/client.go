package models

import "time"

// Client is the database representation of a firm client.
type Client struct {
	ClientID       string `db:"client_id"`
	UserID         string `db:"user_id"`
	Name           string `db:"name"`
	CompanyName    string `db:"company_name"`
	Email          string `db:"email"`
	Phone          string `db:"phone"`
	AccessCodeHash string `db:"access_code_hash"`
	PortalEnabled  bool   `db:"portal_enabled"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Matter is the database representation of a legal matter.
type Matter struct {
	MatterID    string    `db:"matter_id"`
	UserID      string    `db:"user_id"`
	ClientID    string    `db:"client_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	OpenedAt    time.Time `db:"opened_at"`
	AuditFields
}
