package services

import (
	"context"
	"errors"
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
	"github.com/atticuslegal/practice_mgmt_app/internal/utils/matching"
)

var (
	ErrNoSearchTerms = errors.New("conflict check requires at least one non-empty name")
)

// conflictService implements conflict screening and waiver recording.
type conflictService struct {
	conflictRepo portsrepo.ConflictRepository
	partyRepo    portsrepo.PartyRepository
	clientRepo   portsrepo.ClientRepository
	matterRepo   portsrepo.MatterRepository
}

// NewConflictService creates a new conflict screening service.
func NewConflictService(conflictRepo portsrepo.ConflictRepository, partyRepo portsrepo.PartyRepository, clientRepo portsrepo.ClientRepository, matterRepo portsrepo.MatterRepository) portssvc.ConflictSvcFacade {
	return &conflictService{
		conflictRepo: conflictRepo,
		partyRepo:    partyRepo,
		clientRepo:   clientRepo,
		matterRepo:   matterRepo,
	}
}

var _ portssvc.ConflictSvcFacade = (*conflictService)(nil)

// RunConflictCheck performs one screening run and persists it.
func (s *conflictService) RunConflictCheck(ctx context.Context, req dto.RunConflictCheckRequest, performedBy string) (*domain.ConflictCheck, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	names := matching.NormalizeAll(req.Names)
	firms := matching.NormalizeAll(req.Companies)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoSearchTerms)
	}

	// The scope is record-keeping only; it must exist but never narrows the
	// search. A real conflict check is always firm-wide.
	if req.ClientID != "" {
		if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
			return nil, fmt.Errorf("client scope %s: %w", req.ClientID, err)
		}
	}
	if req.MatterID != "" {
		if _, err := s.matterRepo.FindMatterByID(ctx, req.MatterID); err != nil {
			return nil, fmt.Errorf("matter scope %s: %w", req.MatterID, err)
		}
	}

	terms := make([]string, 0, len(names)+len(firms))
	terms = append(terms, names...)
	terms = append(terms, firms...)

	matches, err := s.collectMatches(ctx, terms)
	if err != nil {
		logger.Error("Conflict search failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to search conflict records: %w", err)
	}

	status := domain.CheckClear
	if len(matches) > 0 {
		status = domain.CheckConflictFound
	}

	now := time.Now().UTC()
	check := domain.ConflictCheck{
		CheckID:       uuid.NewString(),
		UserID:        performedBy,
		CheckType:     req.CheckType,
		SearchNames:   names,
		SearchFirms:   firms,
		Status:        status,
		ConflictCount: len(matches),
		Matches:       matches,
		PerformedBy:   performedBy,
		MatterID:      req.MatterID,
		ClientID:      req.ClientID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     performedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: performedBy,
		},
	}

	if err := s.conflictRepo.SaveConflictCheck(ctx, check); err != nil {
		logger.Error("Failed to save conflict check", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save conflict check: %w", err)
	}

	logger.Info("Conflict check completed",
		slog.String("check_id", check.CheckID),
		slog.String("status", string(check.Status)),
		slog.Int("conflict_count", check.ConflictCount))
	return &check, nil
}

// collectMatches searches parties and clients and returns one match per
// distinct entity. The repositories over-fetch with a loose SQL pattern; the
// matching util is the authoritative filter (it also handles whitespace
// collapsing the database comparison cannot).
func (s *conflictService) collectMatches(ctx context.Context, terms []string) ([]domain.ConflictMatch, error) {
	var matches []domain.ConflictMatch
	seen := make(map[string]bool)

	parties, err := s.partyRepo.FindPartiesMatchingTerms(ctx, terms)
	if err != nil {
		return nil, err
	}
	for i := range parties {
		p := &parties[i]
		candidate, ok := matching.MatchAny(matching.Normalize(p.Name), terms)
		if !ok {
			candidate, ok = matching.MatchAny(matching.Normalize(p.CompanyName), terms)
		}
		if !ok || seen["party:"+p.PartyID] {
			continue
		}
		seen["party:"+p.PartyID] = true
		matches = append(matches, domain.ConflictMatch{
			EntityID:   p.PartyID,
			EntityKind: "party",
			Name:       p.Name,
			Company:    p.CompanyName,
			Candidate:  candidate,
		})
	}

	clients, err := s.clientRepo.FindClientsMatchingTerms(ctx, terms)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		cl := &clients[i]
		candidate, ok := matching.MatchAny(matching.Normalize(cl.Name), terms)
		if !ok {
			candidate, ok = matching.MatchAny(matching.Normalize(cl.CompanyName), terms)
		}
		if !ok || seen["client:"+cl.ClientID] {
			continue
		}
		seen["client:"+cl.ClientID] = true
		matches = append(matches, domain.ConflictMatch{
			EntityID:   cl.ClientID,
			EntityKind: "client",
			Name:       cl.Name,
			Company:    cl.CompanyName,
			Candidate:  candidate,
		})
	}

	return matches, nil
}

// GetConflictCheck retrieves a single screening run.
func (s *conflictService) GetConflictCheck(ctx context.Context, checkID string) (*domain.ConflictCheck, error) {
	check, err := s.conflictRepo.FindConflictCheckByID(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to find conflict check %s: %w", checkID, err)
	}
	return check, nil
}

// ListConflictChecks retrieves the requesting user's screening history.
func (s *conflictService) ListConflictChecks(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.ConflictCheck, error) {
	if limit <= 0 {
		limit = 20
	}
	checks, err := s.conflictRepo.ListConflictChecksByUser(ctx, requestingUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflict checks: %w", err)
	}
	return checks, nil
}

// CreateWaiver records an informed-consent waiver and transitions the parent
// check from CONFLICT_FOUND to WAIVED.
func (s *conflictService) CreateWaiver(ctx context.Context, checkID string, req dto.CreateWaiverRequest, creatorUserID string) (*domain.ConflictWaiver, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	check, err := s.conflictRepo.FindConflictCheckByID(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to find conflict check %s: %w", checkID, err)
	}
	if check.Status != domain.CheckConflictFound {
		return nil, fmt.Errorf("%w: cannot waive a check with status %s", apperrors.ErrInvalidState, check.Status)
	}

	now := time.Now().UTC()
	waiver := domain.ConflictWaiver{
		WaiverID:     uuid.NewString(),
		CheckID:      checkID,
		WaiverType:   req.WaiverType,
		Parties:      req.Parties,
		WaiverText:   req.WaiverText,
		ObtainedFrom: req.ObtainedFrom,
		ObtainedDate: req.ObtainedDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// The repository performs the insert and the status flip in one database
	// transaction, re-checking the status under the write so two concurrent
	// waivers cannot both succeed.
	if err := s.conflictRepo.SaveWaiver(ctx, waiver); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to save waiver", slog.String("error", err.Error()), slog.String("check_id", checkID))
		}
		return nil, fmt.Errorf("failed to save waiver for check %s: %w", checkID, err)
	}

	logger.Info("Conflict waiver recorded", slog.String("waiver_id", waiver.WaiverID), slog.String("check_id", checkID))
	return &waiver, nil
}

// ListWaivers retrieves the waivers recorded against a check.
func (s *conflictService) ListWaivers(ctx context.Context, checkID string) ([]domain.ConflictWaiver, error) {
	waivers, err := s.conflictRepo.FindWaiversByCheckID(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list waivers for check %s: %w", checkID, err)
	}
	return waivers, nil
}
