package models

import "time"

// Party is the database representation of a conflicts-database entry.
type Party struct {
	PartyID      string `db:"party_id"`
	UserID       string `db:"user_id"`
	PartyType    string `db:"party_type"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	CompanyName  string `db:"company_name"`
	MatterID     string `db:"matter_id"`
	ClientID     string `db:"client_id"`
	Relationship string `db:"relationship"`
	Notes        string `db:"notes"`
	AuditFields
}

// ConflictCheck is the database representation of one screening run.
// SearchNames, SearchFirms and Matches are stored as JSONB.
type ConflictCheck struct {
	CheckID       string   `db:"check_id"`
	UserID        string   `db:"user_id"`
	CheckType     string   `db:"check_type"`
	SearchNames   []string `db:"search_names"`
	SearchFirms   []string `db:"search_firms"`
	Status        string   `db:"status"`
	ConflictCount int      `db:"conflict_count"`
	Matches       []byte   `db:"matches"`
	PerformedBy   string   `db:"performed_by"`
	MatterID      string   `db:"matter_id"`
	ClientID      string   `db:"client_id"`
	AuditFields
}

// ConflictWaiver is the database representation of a recorded waiver.
type ConflictWaiver struct {
	WaiverID     string    `db:"waiver_id"`
	CheckID      string    `db:"check_id"`
	WaiverType   string    `db:"waiver_type"`
	Parties      []string  `db:"parties"`
	WaiverText   string    `db:"waiver_text"`
	ObtainedFrom string    `db:"obtained_from"`
	ObtainedDate time.Time `db:"obtained_date"`
	AuditFields
}
