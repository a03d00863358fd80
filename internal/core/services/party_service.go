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

// partyService implements conflicts-database management.
type partyService struct {
	partyRepo portsrepo.PartyRepository
}

// NewPartyService creates a new party service.
func NewPartyService(partyRepo portsrepo.PartyRepository) portssvc.PartySvcFacade {
	return &partyService{partyRepo: partyRepo}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateParty adds an entry to the conflicts database.
func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	party := domain.Party{
		PartyID:      uuid.NewString(),
		UserID:       creatorUserID,
		PartyType:    req.PartyType,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		CompanyName:  req.CompanyName,
		MatterID:     req.MatterID,
		ClientID:     req.ClientID,
		Relationship: req.Relationship,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save party: %w", err)
	}

	logger.Info("Conflict party added", slog.String("party_id", party.PartyID), slog.String("party_type", string(party.PartyType)))
	return &party, nil
}

// GetPartyByID retrieves one conflicts-database entry.
func (s *partyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	return party, nil
}

// ListParties retrieves the requesting user's conflicts-database entries.
func (s *partyService) ListParties(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.Party, error) {
	if limit <= 0 {
		limit = 20
	}
	parties, err := s.partyRepo.ListPartiesByUser(ctx, requestingUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}

// DeleteParty removes a conflicts-database entry by explicit staff action.
func (s *partyService) DeleteParty(ctx context.Context, partyID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	if party.UserID != requestingUserID {
		return apperrors.ErrForbidden
	}

	if err := s.partyRepo.DeleteParty(ctx, partyID); err != nil {
		logger.Error("Failed to delete party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return fmt.Errorf("failed to delete party %s: %w", partyID, err)
	}

	logger.Info("Conflict party deleted", slog.String("party_id", partyID))
	return nil
}
