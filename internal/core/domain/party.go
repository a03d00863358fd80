package domain

// PartyType classifies a party in the conflicts database.
type PartyType string

const (
	PartyIndividual   PartyType = "INDIVIDUAL"
	PartyBusiness     PartyType = "BUSINESS"
	PartyOpposing     PartyType = "OPPOSING_PARTY"
	PartyWitness      PartyType = "WITNESS"
	PartyRelatedParty PartyType = "RELATED_PARTY"
)

// Party is a natural person or organization recorded for conflict screening.
// Identity is immutable once a party has been matched against; rows are only
// removed by explicit staff action.
type Party struct {
	PartyID      string    `json:"partyID"` // Primary Key (UUID)
	UserID       string    `json:"userID"`  // Owning staff user
	PartyType    PartyType `json:"partyType"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CompanyName  string    `json:"companyName,omitempty"`
	MatterID     string    `json:"matterID,omitempty"` // Nullable FK
	ClientID     string    `json:"clientID,omitempty"` // Nullable FK
	Relationship string    `json:"relationship,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	AuditFields
}
