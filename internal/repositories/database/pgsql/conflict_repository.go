package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	portsrepo "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/repositories"
	"github.com/atticuslegal/practice_mgmt_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxConflictRepository struct {
	BaseRepository
}

func newPgxConflictRepository(pool *pgxpool.Pool) portsrepo.ConflictRepository {
	return &PgxConflictRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ConflictRepository = (*PgxConflictRepository)(nil)

func toModelConflictCheck(d domain.ConflictCheck) (models.ConflictCheck, error) {
	var matches []byte
	if len(d.Matches) > 0 {
		b, err := json.Marshal(d.Matches)
		if err != nil {
			return models.ConflictCheck{}, fmt.Errorf("failed to marshal matches: %w", err)
		}
		matches = b
	}
	return models.ConflictCheck{
		CheckID:       d.CheckID,
		UserID:        d.UserID,
		CheckType:     string(d.CheckType),
		SearchNames:   d.SearchNames,
		SearchFirms:   d.SearchFirms,
		Status:        string(d.Status),
		ConflictCount: d.ConflictCount,
		Matches:       matches,
		PerformedBy:   d.PerformedBy,
		MatterID:      d.MatterID,
		ClientID:      d.ClientID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

func toDomainConflictCheck(m models.ConflictCheck) (domain.ConflictCheck, error) {
	var matches []domain.ConflictMatch
	if len(m.Matches) > 0 {
		if err := json.Unmarshal(m.Matches, &matches); err != nil {
			return domain.ConflictCheck{}, fmt.Errorf("failed to unmarshal matches: %w", err)
		}
	}
	return domain.ConflictCheck{
		CheckID:       m.CheckID,
		UserID:        m.UserID,
		CheckType:     domain.ConflictCheckType(m.CheckType),
		SearchNames:   m.SearchNames,
		SearchFirms:   m.SearchFirms,
		Status:        domain.ConflictCheckStatus(m.Status),
		ConflictCount: m.ConflictCount,
		Matches:       matches,
		PerformedBy:   m.PerformedBy,
		MatterID:      m.MatterID,
		ClientID:      m.ClientID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

const checkColumns = `check_id, user_id, check_type, search_names, search_firms, status, conflict_count, matches, performed_by, COALESCE(matter_id::text, ''), COALESCE(client_id::text, ''), created_at, created_by, last_updated_at, last_updated_by`

func scanConflictCheck(row pgx.Row) (*domain.ConflictCheck, error) {
	var m models.ConflictCheck
	err := row.Scan(
		&m.CheckID,
		&m.UserID,
		&m.CheckType,
		&m.SearchNames,
		&m.SearchFirms,
		&m.Status,
		&m.ConflictCount,
		&m.Matches,
		&m.PerformedBy,
		&m.MatterID,
		&m.ClientID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan conflict check: %w", err)
	}
	d, err := toDomainConflictCheck(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxConflictRepository) SaveConflictCheck(ctx context.Context, check domain.ConflictCheck) error {
	m, err := toModelConflictCheck(check)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO conflict_checks (check_id, user_id, check_type, search_names, search_firms, status, conflict_count, matches, performed_by, matter_id, client_id, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err = r.Pool.Exec(ctx, query,
		m.CheckID, m.UserID, m.CheckType, m.SearchNames, m.SearchFirms, m.Status, m.ConflictCount, m.Matches,
		m.PerformedBy, nullIfEmpty(m.MatterID), nullIfEmpty(m.ClientID),
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save conflict check: %w", err)
	}
	return nil
}

func (r *PgxConflictRepository) FindConflictCheckByID(ctx context.Context, checkID string) (*domain.ConflictCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM conflict_checks WHERE check_id = $1;`
	return scanConflictCheck(r.Pool.QueryRow(ctx, query, checkID))
}

func (r *PgxConflictRepository) ListConflictChecksByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.ConflictCheck, error) {
	query := `
        SELECT ` + checkColumns + ` FROM conflict_checks
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflict checks: %w", err)
	}
	defer rows.Close()

	var checks []domain.ConflictCheck
	for rows.Next() {
		var m models.ConflictCheck
		err := rows.Scan(
			&m.CheckID,
			&m.UserID,
			&m.CheckType,
			&m.SearchNames,
			&m.SearchFirms,
			&m.Status,
			&m.ConflictCount,
			&m.Matches,
			&m.PerformedBy,
			&m.MatterID,
			&m.ClientID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conflict check row: %w", err)
		}
		d, err := toDomainConflictCheck(m)
		if err != nil {
			return nil, err
		}
		checks = append(checks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conflict check rows: %w", err)
	}
	return checks, nil
}

// SaveWaiver inserts the waiver and flips the parent check to WAIVED in one
// transaction. The guarded UPDATE enforces the state machine: if the check is
// not currently CONFLICT_FOUND, zero rows are affected and the whole
// transaction rolls back with ErrInvalidState.
func (r *PgxConflictRepository) SaveWaiver(ctx context.Context, waiver domain.ConflictWaiver) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
        UPDATE conflict_checks SET status = $2, last_updated_at = $3, last_updated_by = $4
        WHERE check_id = $1 AND status = $5;
    `
	tag, err := tx.Exec(ctx, updateQuery,
		waiver.CheckID, string(domain.CheckWaived), waiver.CreatedAt, waiver.CreatedBy, string(domain.CheckConflictFound),
	)
	if err != nil {
		return fmt.Errorf("failed to transition conflict check: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}

	insertQuery := `
        INSERT INTO conflict_waivers (waiver_id, check_id, waiver_type, parties, waiver_text, obtained_from, obtained_date, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err = tx.Exec(ctx, insertQuery,
		waiver.WaiverID, waiver.CheckID, string(waiver.WaiverType), waiver.Parties, waiver.WaiverText,
		waiver.ObtainedFrom, waiver.ObtainedDate,
		waiver.CreatedAt, waiver.CreatedBy, waiver.LastUpdatedAt, waiver.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save waiver: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxConflictRepository) FindWaiversByCheckID(ctx context.Context, checkID string) ([]domain.ConflictWaiver, error) {
	query := `
        SELECT waiver_id, check_id, waiver_type, parties, waiver_text, obtained_from, obtained_date, created_at, created_by, last_updated_at, last_updated_by
        FROM conflict_waivers
        WHERE check_id = $1
        ORDER BY created_at ASC;
    `
	rows, err := r.Pool.Query(ctx, query, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list waivers: %w", err)
	}
	defer rows.Close()

	var waivers []domain.ConflictWaiver
	for rows.Next() {
		var m models.ConflictWaiver
		err := rows.Scan(
			&m.WaiverID,
			&m.CheckID,
			&m.WaiverType,
			&m.Parties,
			&m.WaiverText,
			&m.ObtainedFrom,
			&m.ObtainedDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan waiver row: %w", err)
		}
		waivers = append(waivers, domain.ConflictWaiver{
			WaiverID:     m.WaiverID,
			CheckID:      m.CheckID,
			WaiverType:   domain.ConflictWaiverType(m.WaiverType),
			Parties:      m.Parties,
			WaiverText:   m.WaiverText,
			ObtainedFrom: m.ObtainedFrom,
			ObtainedDate: m.ObtainedDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating waiver rows: %w", err)
	}
	return waivers, nil
}
