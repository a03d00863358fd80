package domain

import "time"

// ConflictCheckType identifies what triggered a screening run.
type ConflictCheckType string

const (
	CheckNewClient ConflictCheckType = "NEW_CLIENT"
	CheckNewMatter ConflictCheckType = "NEW_MATTER"
)

// ConflictCheckStatus is the disposition of a screening run.
//
// Legal transitions: PENDING -> CLEAR | CONFLICT_FOUND (set synchronously at
// creation), CONFLICT_FOUND -> WAIVED (via waiver creation). Nothing else.
type ConflictCheckStatus string

const (
	CheckPending       ConflictCheckStatus = "PENDING"
	CheckClear         ConflictCheckStatus = "CLEAR"
	CheckConflictFound ConflictCheckStatus = "CONFLICT_FOUND"
	CheckWaived        ConflictCheckStatus = "WAIVED"
)

// ConflictMatch describes one matched entity from a screening run.
type ConflictMatch struct {
	EntityID   string `json:"entityID"`   // PartyID or ClientID
	EntityKind string `json:"entityKind"` // "party" or "client"
	Name       string `json:"name"`
	Company    string `json:"company,omitempty"`
	Candidate  string `json:"candidate"` // The search term that hit
}

// ConflictCheck is one immutable screening run. Re-running the same search
// creates a new row; checks are historical audit records and never mutate,
// except for the CONFLICT_FOUND -> WAIVED status transition.
type ConflictCheck struct {
	CheckID       string              `json:"checkID"` // Primary Key (UUID)
	UserID        string              `json:"userID"`  // Owning staff user
	CheckType     ConflictCheckType   `json:"checkType"`
	SearchNames   []string            `json:"searchNames"`
	SearchFirms   []string            `json:"searchFirms,omitempty"`
	Status        ConflictCheckStatus `json:"status"`
	ConflictCount int                 `json:"conflictCount"`
	Matches       []ConflictMatch     `json:"matches,omitempty"`
	PerformedBy   string              `json:"performedBy"`
	MatterID      string              `json:"matterID,omitempty"` // Record-keeping scope only
	ClientID      string              `json:"clientID,omitempty"` // Record-keeping scope only
	AuditFields
}

// ConflictWaiverType classifies how consent was obtained.
type ConflictWaiverType string

const (
	WaiverInformedConsent ConflictWaiverType = "INFORMED_CONSENT"
	WaiverAdvance         ConflictWaiverType = "ADVANCE_WAIVER"
)

// ConflictWaiver is a recorded informed-consent waiver tied to exactly one
// ConflictCheck. Its creation is what moves the parent check to WAIVED.
type ConflictWaiver struct {
	WaiverID     string             `json:"waiverID"` // Primary Key (UUID)
	CheckID      string             `json:"checkID"`  // FK -> conflict_checks
	WaiverType   ConflictWaiverType `json:"waiverType"`
	Parties      []string           `json:"parties"`
	WaiverText   string             `json:"waiverText"`
	ObtainedFrom string             `json:"obtainedFrom"`
	ObtainedDate time.Time          `json:"obtainedDate"`
	AuditFields
}
