package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	portsrepo "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/middleware"
	"github.com/atticuslegal/practice_mgmt_app/internal/utils"
)

// portalService implements client-portal sessions and the reads a portal
// client is allowed: their own profile, matters and trust ledgers.
type portalService struct {
	clientRepo portsrepo.ClientRepository
	matterRepo portsrepo.MatterRepository
	trustRepo  portsrepo.TrustRepository
}

// NewPortalService creates a new portal service.
func NewPortalService(clientRepo portsrepo.ClientRepository, matterRepo portsrepo.MatterRepository, trustRepo portsrepo.TrustRepository) portssvc.PortalSvcFacade {
	return &portalService{clientRepo: clientRepo, matterRepo: matterRepo, trustRepo: trustRepo}
}

var _ portssvc.PortalSvcFacade = (*portalService)(nil)

// AuthenticatePortalClient validates a client email + access code pair.
func (s *portalService) AuthenticatePortalClient(ctx context.Context, email string, accessCode string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find client by email: %w", err)
	}
	if !client.PortalEnabled || client.AccessCodeHash == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckSecretHash(accessCode, client.AccessCodeHash) {
		return nil, apperrors.ErrUnauthorized
	}

	// Best effort: a failed audit write must not lock the client out.
	if err := s.clientRepo.RecordPortalActivity(ctx, client.ClientID, "LOGIN", time.Now()); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record portal login activity",
			slog.String("client_id", client.ClientID), slog.String("error", err.Error()))
	}

	return client, nil
}

// GetPortalProfile retrieves the logged-in client's own record.
func (s *portalService) GetPortalProfile(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	return client, nil
}

// ListPortalMatters retrieves the logged-in client's matters.
func (s *portalService) ListPortalMatters(ctx context.Context, clientID string) ([]domain.Matter, error) {
	matters, err := s.matterRepo.ListMattersByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matters for client %s: %w", clientID, err)
	}
	return matters, nil
}

// ListPortalLedgers retrieves the logged-in client's trust ledgers.
func (s *portalService) ListPortalLedgers(ctx context.Context, clientID string) ([]domain.ClientTrustLedger, error) {
	ledgers, err := s.trustRepo.ListLedgersByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers for client %s: %w", clientID, err)
	}
	return ledgers, nil
}
