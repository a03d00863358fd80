package services

import (
	"context"

	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
)

// ClientSvcFacade defines operations on firm clients.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string, requestingUserID string) (*domain.Client, error)
	ListClients(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.Client, error)
	// EnablePortalAccess generates a fresh access code for the client,
	// stores only its hash, and returns the plaintext code exactly once.
	EnablePortalAccess(ctx context.Context, clientID string, requestingUserID string) (string, error)
}

// MatterSvcFacade defines operations on legal matters.
type MatterSvcFacade interface {
	CreateMatter(ctx context.Context, req dto.CreateMatterRequest, creatorUserID string) (*domain.Matter, error)
	GetMatterByID(ctx context.Context, matterID string, requestingUserID string) (*domain.Matter, error)
	ListMatters(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.Matter, error)
}

// PartySvcFacade defines operations on the conflicts database.
type PartySvcFacade interface {
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error)
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.Party, error)
	DeleteParty(ctx context.Context, partyID string, requestingUserID string) error
}

// PortalSvcFacade defines the client-portal session operations.
type PortalSvcFacade interface {
	// AuthenticatePortalClient validates a client email + access code pair.
	AuthenticatePortalClient(ctx context.Context, email string, accessCode string) (*domain.Client, error)
	GetPortalProfile(ctx context.Context, clientID string) (*domain.Client, error)
	ListPortalMatters(ctx context.Context, clientID string) ([]domain.Matter, error)
	ListPortalLedgers(ctx context.Context, clientID string) ([]domain.ClientTrustLedger, error)
}
