package services

import (
	"context"

	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
)

// TrustSvcFacade defines the trust accounting operations.
type TrustSvcFacade interface {
	CreateTrustAccount(ctx context.Context, req dto.CreateTrustAccountRequest, creatorUserID string) (*domain.TrustAccount, error)
	GetTrustAccount(ctx context.Context, accountID string, requestingUserID string) (*domain.TrustAccount, error)
	ListTrustAccounts(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.TrustAccount, error)

	CreateLedger(ctx context.Context, accountID string, req dto.CreateLedgerRequest, creatorUserID string) (*domain.ClientTrustLedger, error)
	ListLedgers(ctx context.Context, accountID string) ([]domain.ClientTrustLedger, error)

	// RecordTransaction validates the amount and type, applies the signed
	// delta to the client ledger under a store-level row lock, and appends
	// one immutable transaction row. A withdrawal that would overdraw the
	// ledger fails with ErrInsufficientFunds and writes nothing.
	RecordTransaction(ctx context.Context, accountID string, req dto.RecordTransactionRequest, creatorUserID string) (*domain.TrustTransaction, error)
	ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.TrustTransaction, error)
	ListLedgerTransactions(ctx context.Context, ledgerID string, limit int, offset int) ([]domain.TrustTransaction, error)

	// Reconcile compares the account's book balance against an external
	// bank statement and records the outcome. It never mutates balances.
	Reconcile(ctx context.Context, accountID string, req dto.ReconcileRequest, creatorUserID string) (*domain.TrustReconciliation, error)
	ListReconciliations(ctx context.Context, accountID string) ([]domain.TrustReconciliation, error)
}
