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
)

// matterService implements matter management.
type matterService struct {
	matterRepo portsrepo.MatterRepository
	clientRepo portsrepo.ClientRepository
}

// NewMatterService creates a new matter service.
func NewMatterService(matterRepo portsrepo.MatterRepository, clientRepo portsrepo.ClientRepository) portssvc.MatterSvcFacade {
	return &matterService{matterRepo: matterRepo, clientRepo: clientRepo}
}

var _ portssvc.MatterSvcFacade = (*matterService)(nil)

// CreateMatter opens a matter for an existing client.
func (s *matterService) CreateMatter(ctx context.Context, req dto.CreateMatterRequest, creatorUserID string) (*domain.Matter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", req.ClientID, err)
	}

	now := time.Now().UTC()
	matter := domain.Matter{
		MatterID:    uuid.NewString(),
		UserID:      creatorUserID,
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.MatterOpen,
		OpenedAt:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.matterRepo.SaveMatter(ctx, matter); err != nil {
		logger.Error("Failed to save matter", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save matter: %w", err)
	}

	logger.Info("Matter opened", slog.String("matter_id", matter.MatterID), slog.String("client_id", matter.ClientID))
	return &matter, nil
}

// GetMatterByID retrieves a matter owned by the requesting user.
func (s *matterService) GetMatterByID(ctx context.Context, matterID string, requestingUserID string) (*domain.Matter, error) {
	matter, err := s.matterRepo.FindMatterByID(ctx, matterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find matter %s: %w", matterID, err)
	}
	if matter.UserID != requestingUserID {
		return nil, apperrors.ErrNotFound
	}
	return matter, nil
}

// ListMatters retrieves the requesting user's matters.
func (s *matterService) ListMatters(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.Matter, error) {
	if limit <= 0 {
		limit = 20
	}
	matters, err := s.matterRepo.ListMattersByUser(ctx, requestingUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matters: %w", err)
	}
	return matters, nil
}
