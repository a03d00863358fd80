package services

import (
	"context"

	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
)

// ConflictSvcFacade defines the conflict screening operations.
type ConflictSvcFacade interface {
	// RunConflictCheck normalizes the candidate terms, searches the party
	// and client records firm-wide, and persists one immutable check row
	// with its disposition. Every invocation writes a new row; re-runs are
	// new audit records, never updates.
	RunConflictCheck(ctx context.Context, req dto.RunConflictCheckRequest, performedBy string) (*domain.ConflictCheck, error)
	GetConflictCheck(ctx context.Context, checkID string) (*domain.ConflictCheck, error)
	ListConflictChecks(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.ConflictCheck, error)
	// CreateWaiver records an informed-consent waiver against a check whose
	// status is CONFLICT_FOUND and atomically transitions the check to
	// WAIVED. Any other parent status fails with ErrInvalidState.
	CreateWaiver(ctx context.Context, checkID string, req dto.CreateWaiverRequest, creatorUserID string) (*domain.ConflictWaiver, error)
	ListWaivers(ctx context.Context, checkID string) ([]domain.ConflictWaiver, error)
}
