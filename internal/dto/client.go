package dto

import (
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a client.
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string    `json:"clientID"`
	Name          string    `json:"name"`
	CompanyName   string    `json:"companyName,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	PortalEnabled bool      `json:"portalEnabled"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToClientResponse converts a domain.Client to a ClientResponse DTO.
func ToClientResponse(cl *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      cl.ClientID,
		Name:          cl.Name,
		CompanyName:   cl.CompanyName,
		Email:         cl.Email,
		Phone:         cl.Phone,
		PortalEnabled: cl.PortalEnabled,
		CreatedAt:     cl.CreatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to DTOs.
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}

// EnablePortalResponse returns the one-time access code generated for a
// client. Only the bcrypt hash is stored; the code cannot be recovered later.
type EnablePortalResponse struct {
	ClientID   string `json:"clientID"`
	AccessCode string `json:"accessCode"`
}

// CreateMatterRequest defines the data needed to open a matter.
type CreateMatterRequest struct {
	ClientID    string `json:"clientID" binding:"required,uuid"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// MatterResponse defines the data returned for a matter.
type MatterResponse struct {
	MatterID    string              `json:"matterID"`
	ClientID    string              `json:"clientID"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      domain.MatterStatus `json:"status"`
	OpenedAt    time.Time           `json:"openedAt"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ToMatterResponse converts a domain.Matter to a MatterResponse DTO.
func ToMatterResponse(m *domain.Matter) MatterResponse {
	return MatterResponse{
		MatterID:    m.MatterID,
		ClientID:    m.ClientID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		OpenedAt:    m.OpenedAt,
		CreatedAt:   m.CreatedAt,
	}
}

// ToListMatterResponse converts a slice of domain.Matter to DTOs.
func ToListMatterResponse(matters []domain.Matter) []MatterResponse {
	res := make([]MatterResponse, len(matters))
	for i := range matters {
		res[i] = ToMatterResponse(&matters[i])
	}
	return res
}

// ListParams defines shared limit/offset query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}
