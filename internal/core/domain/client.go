package domain

import "time"

// Client represents a client of the firm. Clients are both CRM records and
// identities for the client portal (login via email + access code).
type Client struct {
	ClientID       string `json:"clientID"` // Primary Key (UUID)
	UserID         string `json:"userID"`   // Owning attorney/staff user
	Name           string `json:"name"`
	CompanyName    string `json:"companyName,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	AccessCodeHash string `json:"-"` // bcrypt hash of portal access code, empty if portal disabled
	PortalEnabled  bool   `json:"portalEnabled"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// MatterStatus indicates the state of a matter.
type MatterStatus string

const (
	MatterOpen    MatterStatus = "OPEN"
	MatterClosed  MatterStatus = "CLOSED"
	MatterPending MatterStatus = "PENDING"
)

// Matter represents a legal matter (case) handled for a client.
type Matter struct {
	MatterID    string       `json:"matterID"` // Primary Key (UUID)
	UserID      string       `json:"userID"`   // Responsible attorney
	ClientID    string       `json:"clientID"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      MatterStatus `json:"status"`
	OpenedAt    time.Time    `json:"openedAt"`
	AuditFields
}
