package pgsql

import (
	portsrepo "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates all pgsql-backed repositories sharing one
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(pool),
		ClientRepo:   newPgxClientRepository(pool),
		MatterRepo:   newPgxMatterRepository(pool),
		PartyRepo:    newPgxPartyRepository(pool),
		ConflictRepo: newPgxConflictRepository(pool),
		TrustRepo:    newPgxTrustRepository(pool),
	}
}
