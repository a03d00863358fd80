package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	portsrepo "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/repositories"
	"github.com/atticuslegal/practice_mgmt_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	db *pgxpool.Pool
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepository {
	return &PgxClientRepository{db: db}
}

var _ portsrepo.ClientRepository = (*PgxClientRepository)(nil)

func toModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:       d.ClientID,
		UserID:         d.UserID,
		Name:           d.Name,
		CompanyName:    d.CompanyName,
		Email:          d.Email,
		Phone:          d.Phone,
		AccessCodeHash: d.AccessCodeHash,
		PortalEnabled:  d.PortalEnabled,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		DeletedAt: d.DeletedAt,
	}
}

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:       m.ClientID,
		UserID:         m.UserID,
		Name:           m.Name,
		CompanyName:    m.CompanyName,
		Email:          m.Email,
		Phone:          m.Phone,
		AccessCodeHash: m.AccessCodeHash,
		PortalEnabled:  m.PortalEnabled,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
}

const clientColumns = `client_id, user_id, name, company_name, email, phone, access_code_hash, portal_enabled, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanClient(row pgx.Row) (*domain.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.UserID,
		&m.Name,
		&m.CompanyName,
		&m.Email,
		&m.Phone,
		&m.AccessCodeHash,
		&m.PortalEnabled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}
	c := toDomainClient(m)
	return &c, nil
}

func scanClientRows(rows pgx.Rows) ([]domain.Client, error) {
	defer rows.Close()
	var clients []domain.Client
	for rows.Next() {
		var m models.Client
		err := rows.Scan(
			&m.ClientID,
			&m.UserID,
			&m.Name,
			&m.CompanyName,
			&m.Email,
			&m.Phone,
			&m.AccessCodeHash,
			&m.PortalEnabled,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, toDomainClient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	query := `
        INSERT INTO clients (client_id, user_id, name, company_name, email, phone, access_code_hash, portal_enabled, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        ON CONFLICT (client_id) DO UPDATE SET
            name = EXCLUDED.name,
            company_name = EXCLUDED.company_name,
            email = EXCLUDED.email,
            phone = EXCLUDED.phone,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.db.Exec(ctx, query,
		m.ClientID, m.UserID, m.Name, m.CompanyName, m.Email, m.Phone, m.AccessCodeHash, m.PortalEnabled,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1 AND deleted_at IS NULL;`
	return scanClient(r.db.QueryRow(ctx, query, clientID))
}

func (r *PgxClientRepository) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE lower(email) = lower($1) AND deleted_at IS NULL;`
	return scanClient(r.db.QueryRow(ctx, query, email))
}

func (r *PgxClientRepository) ListClientsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Client, error) {
	query := `
        SELECT ` + clientColumns + ` FROM clients
        WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return scanClientRows(rows)
}

// FindClientsMatchingTerms over-fetches with ILIKE; the caller applies the
// authoritative matching rules on the result set.
func (r *PgxClientRepository) FindClientsMatchingTerms(ctx context.Context, terms []string) ([]domain.Client, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	query := `
        SELECT ` + clientColumns + ` FROM clients
        WHERE deleted_at IS NULL
          AND EXISTS (
            SELECT 1 FROM unnest($1::text[]) AS term
            WHERE clients.name ILIKE '%' || term || '%'
               OR term ILIKE '%' || clients.name || '%'
               OR (clients.company_name <> '' AND (
                    clients.company_name ILIKE '%' || term || '%'
                 OR term ILIKE '%' || clients.company_name || '%'))
          );
    `
	rows, err := r.db.Query(ctx, query, terms)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	return scanClientRows(rows)
}

func (r *PgxClientRepository) UpdateClientPortalAccess(ctx context.Context, clientID string, accessCodeHash string, enabled bool, updatedBy string, now time.Time) error {
	query := `
        UPDATE clients SET access_code_hash = $2, portal_enabled = $3, last_updated_at = $4, last_updated_by = $5
        WHERE client_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query, clientID, accessCodeHash, enabled, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update portal access: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) RecordPortalActivity(ctx context.Context, clientID string, action string, at time.Time) error {
	query := `
        INSERT INTO portal_activity_log (activity_id, client_id, action, occurred_at)
        VALUES (gen_random_uuid(), $1, $2, $3);
    `
	if _, err := r.db.Exec(ctx, query, clientID, action, at); err != nil {
		return fmt.Errorf("failed to record portal activity: %w", err)
	}
	return nil
}
