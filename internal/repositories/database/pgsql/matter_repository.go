package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	portsrepo "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/repositories"
	"github.com/atticuslegal/practice_mgmt_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMatterRepository struct {
	db *pgxpool.Pool
}

func newPgxMatterRepository(db *pgxpool.Pool) portsrepo.MatterRepository {
	return &PgxMatterRepository{db: db}
}

var _ portsrepo.MatterRepository = (*PgxMatterRepository)(nil)

func toModelMatter(d domain.Matter) models.Matter {
	return models.Matter{
		MatterID:    d.MatterID,
		UserID:      d.UserID,
		ClientID:    d.ClientID,
		Title:       d.Title,
		Description: d.Description,
		Status:      string(d.Status),
		OpenedAt:    d.OpenedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainMatter(m models.Matter) domain.Matter {
	return domain.Matter{
		MatterID:    m.MatterID,
		UserID:      m.UserID,
		ClientID:    m.ClientID,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.MatterStatus(m.Status),
		OpenedAt:    m.OpenedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const matterColumns = `matter_id, user_id, client_id, title, description, status, opened_at, created_at, created_by, last_updated_at, last_updated_by`

func scanMatterRows(rows pgx.Rows) ([]domain.Matter, error) {
	defer rows.Close()
	var matters []domain.Matter
	for rows.Next() {
		var m models.Matter
		err := rows.Scan(
			&m.MatterID,
			&m.UserID,
			&m.ClientID,
			&m.Title,
			&m.Description,
			&m.Status,
			&m.OpenedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan matter row: %w", err)
		}
		matters = append(matters, toDomainMatter(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matter rows: %w", err)
	}
	return matters, nil
}

func (r *PgxMatterRepository) SaveMatter(ctx context.Context, matter domain.Matter) error {
	m := toModelMatter(matter)
	query := `
        INSERT INTO matters (matter_id, user_id, client_id, title, description, status, opened_at, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (matter_id) DO UPDATE SET
            title = EXCLUDED.title,
            description = EXCLUDED.description,
            status = EXCLUDED.status,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.db.Exec(ctx, query,
		m.MatterID, m.UserID, m.ClientID, m.Title, m.Description, m.Status, m.OpenedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save matter: %w", err)
	}
	return nil
}

func (r *PgxMatterRepository) FindMatterByID(ctx context.Context, matterID string) (*domain.Matter, error) {
	query := `SELECT ` + matterColumns + ` FROM matters WHERE matter_id = $1;`
	var m models.Matter
	err := r.db.QueryRow(ctx, query, matterID).Scan(
		&m.MatterID,
		&m.UserID,
		&m.ClientID,
		&m.Title,
		&m.Description,
		&m.Status,
		&m.OpenedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find matter: %w", err)
	}
	d := toDomainMatter(m)
	return &d, nil
}

func (r *PgxMatterRepository) ListMattersByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Matter, error) {
	query := `
        SELECT ` + matterColumns + ` FROM matters
        WHERE user_id = $1
        ORDER BY opened_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matters: %w", err)
	}
	return scanMatterRows(rows)
}

func (r *PgxMatterRepository) ListMattersByClient(ctx context.Context, clientID string) ([]domain.Matter, error) {
	query := `
        SELECT ` + matterColumns + ` FROM matters
        WHERE client_id = $1
        ORDER BY opened_at DESC;
    `
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matters by client: %w", err)
	}
	return scanMatterRows(rows)
}
