package dto

import (
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
)

// CreatePartyRequest defines the data needed to add a conflicts-database entry.
type CreatePartyRequest struct {
	PartyType    domain.PartyType `json:"partyType" binding:"required,oneof=INDIVIDUAL BUSINESS OPPOSING_PARTY WITNESS RELATED_PARTY"`
	Name         string           `json:"name" binding:"required"`
	Email        string           `json:"email" binding:"omitempty,email"`
	Phone        string           `json:"phone"`
	CompanyName  string           `json:"companyName"`
	MatterID     string           `json:"matterID" binding:"omitempty,uuid"`
	ClientID     string           `json:"clientID" binding:"omitempty,uuid"`
	Relationship string           `json:"relationship"`
	Notes        string           `json:"notes"`
}

// PartyResponse defines the data returned for a conflicts-database entry.
type PartyResponse struct {
	PartyID      string           `json:"partyID"`
	PartyType    domain.PartyType `json:"partyType"`
	Name         string           `json:"name"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	CompanyName  string           `json:"companyName,omitempty"`
	MatterID     string           `json:"matterID,omitempty"`
	ClientID     string           `json:"clientID,omitempty"`
	Relationship string           `json:"relationship,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// ToPartyResponse converts a domain.Party to a PartyResponse DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:      p.PartyID,
		PartyType:    p.PartyType,
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		CompanyName:  p.CompanyName,
		MatterID:     p.MatterID,
		ClientID:     p.ClientID,
		Relationship: p.Relationship,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
}

// ToListPartyResponse converts a slice of domain.Party to DTOs.
func ToListPartyResponse(parties []domain.Party) []PartyResponse {
	res := make([]PartyResponse, len(parties))
	for i := range parties {
		res[i] = ToPartyResponse(&parties[i])
	}
	return res
}

// RunConflictCheckRequest defines the inputs of one screening run.
type RunConflictCheckRequest struct {
	CheckType domain.ConflictCheckType `json:"checkType" binding:"required,oneof=NEW_CLIENT NEW_MATTER"`
	Names     []string                 `json:"names" binding:"required"`
	Companies []string                 `json:"companies"`
	MatterID  string                   `json:"matterID" binding:"omitempty,uuid"`
	ClientID  string                   `json:"clientID" binding:"omitempty,uuid"`
}

// ConflictCheckResponse defines the data returned for a screening run.
type ConflictCheckResponse struct {
	CheckID       string                     `json:"checkID"`
	CheckType     domain.ConflictCheckType   `json:"checkType"`
	SearchNames   []string                   `json:"searchNames"`
	SearchFirms   []string                   `json:"searchFirms,omitempty"`
	Status        domain.ConflictCheckStatus `json:"status"`
	ConflictCount int                        `json:"conflictCount"`
	Matches       []domain.ConflictMatch     `json:"matches,omitempty"`
	PerformedBy   string                     `json:"performedBy"`
	MatterID      string                     `json:"matterID,omitempty"`
	ClientID      string                     `json:"clientID,omitempty"`
	CreatedAt     time.Time                  `json:"createdAt"`
}

// ToConflictCheckResponse converts a domain.ConflictCheck to a DTO.
func ToConflictCheckResponse(ck *domain.ConflictCheck) ConflictCheckResponse {
	return ConflictCheckResponse{
		CheckID:       ck.CheckID,
		CheckType:     ck.CheckType,
		SearchNames:   ck.SearchNames,
		SearchFirms:   ck.SearchFirms,
		Status:        ck.Status,
		ConflictCount: ck.ConflictCount,
		Matches:       ck.Matches,
		PerformedBy:   ck.PerformedBy,
		MatterID:      ck.MatterID,
		ClientID:      ck.ClientID,
		CreatedAt:     ck.CreatedAt,
	}
}

// ToListConflictCheckResponse converts a slice of checks to DTOs.
func ToListConflictCheckResponse(checks []domain.ConflictCheck) []ConflictCheckResponse {
	res := make([]ConflictCheckResponse, len(checks))
	for i := range checks {
		res[i] = ToConflictCheckResponse(&checks[i])
	}
	return res
}

// CreateWaiverRequest defines the data needed to record a conflict waiver.
type CreateWaiverRequest struct {
	WaiverType   domain.ConflictWaiverType `json:"waiverType" binding:"required,oneof=INFORMED_CONSENT ADVANCE_WAIVER"`
	Parties      []string                  `json:"parties" binding:"required,min=1"`
	WaiverText   string                    `json:"waiverText" binding:"required"`
	ObtainedFrom string                    `json:"obtainedFrom" binding:"required"`
	ObtainedDate time.Time                 `json:"obtainedDate" binding:"required"`
}

// WaiverResponse defines the data returned for a recorded waiver.
type WaiverResponse struct {
	WaiverID     string                    `json:"waiverID"`
	CheckID      string                    `json:"checkID"`
	WaiverType   domain.ConflictWaiverType `json:"waiverType"`
	Parties      []string                  `json:"parties"`
	WaiverText   string                    `json:"waiverText"`
	ObtainedFrom string                    `json:"obtainedFrom"`
	ObtainedDate time.Time                 `json:"obtainedDate"`
	CreatedAt    time.Time                 `json:"createdAt"`
}

// ToWaiverResponse converts a domain.ConflictWaiver to a DTO.
func ToWaiverResponse(w *domain.ConflictWaiver) WaiverResponse {
	return WaiverResponse{
		WaiverID:     w.WaiverID,
		CheckID:      w.CheckID,
		WaiverType:   w.WaiverType,
		Parties:      w.Parties,
		WaiverText:   w.WaiverText,
		ObtainedFrom: w.ObtainedFrom,
		ObtainedDate: w.ObtainedDate,
		CreatedAt:    w.CreatedAt,
	}
}
