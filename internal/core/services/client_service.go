package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	portsrepo "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
	"github.com/atticuslegal/practice_mgmt_app/internal/middleware"
	"github.com/atticuslegal/practice_mgmt_app/internal/utils"
)

// clientService implements client management.
type clientService struct {
	clientRepo portsrepo.ClientRepository
}

// NewClientService creates a new client service.
func NewClientService(clientRepo portsrepo.ClientRepository) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient creates a client record owned by the creating user.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:    uuid.NewString(),
		UserID:      creatorUserID,
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

// GetClientByID retrieves a client owned by the requesting user.
func (s *clientService) GetClientByID(ctx context.Context, clientID string, requestingUserID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	if client.UserID != requestingUserID {
		return nil, apperrors.ErrNotFound
	}
	return client, nil
}

// ListClients retrieves the requesting user's clients.
func (s *clientService) ListClients(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	clients, err := s.clientRepo.ListClientsByUser(ctx, requestingUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// EnablePortalAccess generates a fresh portal access code, stores its hash,
// and returns the plaintext exactly once.
func (s *clientService) EnablePortalAccess(ctx context.Context, clientID string, requestingUserID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.GetClientByID(ctx, clientID, requestingUserID)
	if err != nil {
		return "", err
	}
	if client.Email == "" {
		return "", fmt.Errorf("%w: client has no email address for portal login", apperrors.ErrValidation)
	}

	accessCode, err := utils.GenerateSecureRandomString(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate access code: %w", err)
	}
	hash, err := utils.HashSecret(accessCode)
	if err != nil {
		return "", fmt.Errorf("failed to hash access code: %w", err)
	}

	now := time.Now().UTC()
	if err := s.clientRepo.UpdateClientPortalAccess(ctx, clientID, hash, true, requestingUserID, now); err != nil {
		logger.Error("Failed to enable portal access", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return "", fmt.Errorf("failed to enable portal access: %w", err)
	}

	logger.Info("Portal access enabled", slog.String("client_id", clientID))
	return accessCode, nil
}
