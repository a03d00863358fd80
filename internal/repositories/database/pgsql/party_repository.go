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

type PgxPartyRepository struct {
	db *pgxpool.Pool
}

func newPgxPartyRepository(db *pgxpool.Pool) portsrepo.PartyRepository {
	return &PgxPartyRepository{db: db}
}

var _ portsrepo.PartyRepository = (*PgxPartyRepository)(nil)

func toModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:      d.PartyID,
		UserID:       d.UserID,
		PartyType:    string(d.PartyType),
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		CompanyName:  d.CompanyName,
		MatterID:     d.MatterID,
		ClientID:     d.ClientID,
		Relationship: d.Relationship,
		Notes:        d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:      m.PartyID,
		UserID:       m.UserID,
		PartyType:    domain.PartyType(m.PartyType),
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		CompanyName:  m.CompanyName,
		MatterID:     m.MatterID,
		ClientID:     m.ClientID,
		Relationship: m.Relationship,
		Notes:        m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const partyColumns = `party_id, user_id, party_type, name, email, phone, company_name, matter_id, client_id, relationship, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPartyRows(rows pgx.Rows) ([]domain.Party, error) {
	defer rows.Close()
	var parties []domain.Party
	for rows.Next() {
		var m models.Party
		err := rows.Scan(
			&m.PartyID,
			&m.UserID,
			&m.PartyType,
			&m.Name,
			&m.Email,
			&m.Phone,
			&m.CompanyName,
			&m.MatterID,
			&m.ClientID,
			&m.Relationship,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, toDomainParty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", err)
	}
	return parties, nil
}

func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := toModelParty(party)
	query := `
        INSERT INTO conflict_parties (party_id, user_id, party_type, name, email, phone, company_name, matter_id, client_id, relationship, notes, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        ON CONFLICT (party_id) DO UPDATE SET
            party_type = EXCLUDED.party_type,
            email = EXCLUDED.email,
            phone = EXCLUDED.phone,
            relationship = EXCLUDED.relationship,
            notes = EXCLUDED.notes,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.db.Exec(ctx, query,
		m.PartyID, m.UserID, m.PartyType, m.Name, m.Email, m.Phone, m.CompanyName,
		nullIfEmpty(m.MatterID), nullIfEmpty(m.ClientID), m.Relationship, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save party: %w", err)
	}
	return nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumnsCoalesced + ` FROM conflict_parties WHERE party_id = $1;`
	var m models.Party
	err := r.db.QueryRow(ctx, query, partyID).Scan(
		&m.PartyID,
		&m.UserID,
		&m.PartyType,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.CompanyName,
		&m.MatterID,
		&m.ClientID,
		&m.Relationship,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party: %w", err)
	}
	d := toDomainParty(m)
	return &d, nil
}

// matter_id and client_id are nullable uuid columns; coalesce to text so the
// model's plain string fields scan cleanly.
const partyColumnsCoalesced = `party_id, user_id, party_type, name, email, phone, company_name, COALESCE(matter_id::text, ''), COALESCE(client_id::text, ''), relationship, notes, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxPartyRepository) ListPartiesByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Party, error) {
	query := `
        SELECT ` + partyColumnsCoalesced + ` FROM conflict_parties
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return scanPartyRows(rows)
}

// FindPartiesMatchingTerms over-fetches with ILIKE across the whole firm's
// conflicts database; the caller applies the authoritative matching rules.
func (r *PgxPartyRepository) FindPartiesMatchingTerms(ctx context.Context, terms []string) ([]domain.Party, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	query := `
        SELECT ` + partyColumnsCoalesced + ` FROM conflict_parties
        WHERE EXISTS (
            SELECT 1 FROM unnest($1::text[]) AS term
            WHERE conflict_parties.name ILIKE '%' || term || '%'
               OR term ILIKE '%' || conflict_parties.name || '%'
               OR (conflict_parties.company_name <> '' AND (
                    conflict_parties.company_name ILIKE '%' || term || '%'
                 OR term ILIKE '%' || conflict_parties.company_name || '%'))
        );
    `
	rows, err := r.db.Query(ctx, query, terms)
	if err != nil {
		return nil, fmt.Errorf("failed to search parties: %w", err)
	}
	return scanPartyRows(rows)
}

func (r *PgxPartyRepository) DeleteParty(ctx context.Context, partyID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM conflict_parties WHERE party_id = $1;`, partyID)
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
