package repositories

import (
	"context"
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Context is included on every method for cancellation/timeouts; a request
// that times out must not leave partial writes, so multi-row operations are
// implemented inside a single database transaction by the adapter.

// UserRepository defines persistence operations for staff users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByProviderID(ctx context.Context, provider string, providerID string) (*domain.User, error)
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	FindClientByEmail(ctx context.Context, email string) (*domain.Client, error)
	ListClientsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Client, error)
	// FindClientsMatchingTerms returns clients whose name or company name
	// loosely matches any of the (already normalized) search terms.
	FindClientsMatchingTerms(ctx context.Context, terms []string) ([]domain.Client, error)
	UpdateClientPortalAccess(ctx context.Context, clientID string, accessCodeHash string, enabled bool, updatedBy string, now time.Time) error
	// RecordPortalActivity appends one row to the portal activity audit log.
	RecordPortalActivity(ctx context.Context, clientID string, action string, at time.Time) error
}

// MatterRepository defines persistence operations for matters.
type MatterRepository interface {
	SaveMatter(ctx context.Context, matter domain.Matter) error
	FindMatterByID(ctx context.Context, matterID string) (*domain.Matter, error)
	ListMattersByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Matter, error)
	ListMattersByClient(ctx context.Context, clientID string) ([]domain.Matter, error)
}

// PartyRepository defines persistence operations for the conflicts database.
type PartyRepository interface {
	SaveParty(ctx context.Context, party domain.Party) error
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	ListPartiesByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Party, error)
	// FindPartiesMatchingTerms returns parties whose name or company name
	// loosely matches any of the (already normalized) search terms. The
	// search is firm-wide: it is never scoped to the requesting user.
	FindPartiesMatchingTerms(ctx context.Context, terms []string) ([]domain.Party, error)
	DeleteParty(ctx context.Context, partyID string) error
}

// ConflictRepository defines persistence operations for screening runs and
// waivers. Checks are immutable historical records; the only permitted update
// is the CONFLICT_FOUND -> WAIVED status flip performed by SaveWaiver.
type ConflictRepository interface {
	SaveConflictCheck(ctx context.Context, check domain.ConflictCheck) error
	FindConflictCheckByID(ctx context.Context, checkID string) (*domain.ConflictCheck, error)
	ListConflictChecksByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.ConflictCheck, error)
	// SaveWaiver inserts the waiver row and transitions the parent check to
	// WAIVED in one database transaction. It fails with ErrInvalidState if
	// the check is not currently CONFLICT_FOUND.
	SaveWaiver(ctx context.Context, waiver domain.ConflictWaiver) error
	FindWaiversByCheckID(ctx context.Context, checkID string) ([]domain.ConflictWaiver, error)
}

// TrustRepository defines persistence operations for trust accounting.
type TrustRepository interface {
	SaveTrustAccount(ctx context.Context, account domain.TrustAccount) error
	FindTrustAccountByID(ctx context.Context, accountID string) (*domain.TrustAccount, error)
	ListTrustAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.TrustAccount, error)

	SaveClientLedger(ctx context.Context, ledger domain.ClientTrustLedger) error
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.ClientTrustLedger, error)
	ListLedgersByAccount(ctx context.Context, accountID string) ([]domain.ClientTrustLedger, error)
	ListLedgersByClient(ctx context.Context, clientID string) ([]domain.ClientTrustLedger, error)

	// SaveTrustTransaction applies one signed balance delta inside a single
	// database transaction: it locks the ledger row (SELECT ... FOR UPDATE),
	// rejects the write with ErrInsufficientFunds if the resulting balance
	// would be negative, inserts the transaction row with its balance_after
	// snapshot, and moves the ledger and parent account balances by the same
	// delta. All writes commit together or not at all. The stored transaction
	// (with BalanceAfter populated) is returned.
	SaveTrustTransaction(ctx context.Context, txn domain.TrustTransaction, signedDelta decimal.Decimal) (*domain.TrustTransaction, error)
	ListTransactionsByLedger(ctx context.Context, ledgerID string, limit int, offset int) ([]domain.TrustTransaction, error)
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.TrustTransaction, error)

	SaveReconciliation(ctx context.Context, rec domain.TrustReconciliation) error
	ListReconciliationsByAccount(ctx context.Context, accountID string) ([]domain.TrustReconciliation, error)
}

// RepositoryProvider bundles all repositories for dependency injection.
type RepositoryProvider struct {
	UserRepo     UserRepository
	ClientRepo   ClientRepository
	MatterRepo   MatterRepository
	PartyRepo    PartyRepository
	ConflictRepo ConflictRepository
	TrustRepo    TrustRepository
}
