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
	"github.com/atticuslegal/practice_mgmt_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// trustService implements trust accounting on top of the trust repository.
// Balances are never cached in process; every read goes to the store.
type trustService struct {
	trustRepo  portsrepo.TrustRepository
	clientRepo portsrepo.ClientRepository
}

// NewTrustService creates a new trust accounting service.
func NewTrustService(trustRepo portsrepo.TrustRepository, clientRepo portsrepo.ClientRepository) portssvc.TrustSvcFacade {
	return &trustService{trustRepo: trustRepo, clientRepo: clientRepo}
}

var _ portssvc.TrustSvcFacade = (*trustService)(nil)

// CreateTrustAccount registers a new trust account with a zero balance.
func (s *trustService) CreateTrustAccount(ctx context.Context, req dto.CreateTrustAccountRequest, creatorUserID string) (*domain.TrustAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.TrustAccount{
		AccountID:      uuid.NewString(),
		UserID:         creatorUserID,
		AccountName:    req.AccountName,
		BankName:       req.BankName,
		AccountLast4:   req.AccountLast4,
		RoutingLast4:   req.RoutingLast4,
		AccountType:    req.AccountType,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.trustRepo.SaveTrustAccount(ctx, account); err != nil {
		logger.Error("Failed to save trust account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save trust account: %w", err)
	}

	logger.Info("Trust account created", slog.String("account_id", account.AccountID), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetTrustAccount retrieves a trust account owned by the requesting user.
func (s *trustService) GetTrustAccount(ctx context.Context, accountID string, requestingUserID string) (*domain.TrustAccount, error) {
	account, err := s.trustRepo.FindTrustAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trust account %s: %w", accountID, err)
	}
	if account.UserID != requestingUserID {
		// Obscure existence of other users' accounts
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListTrustAccounts retrieves the requesting user's trust accounts.
func (s *trustService) ListTrustAccounts(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.TrustAccount, error) {
	if limit <= 0 {
		limit = 20
	}
	accounts, err := s.trustRepo.ListTrustAccountsByUser(ctx, requestingUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list trust accounts: %w", err)
	}
	return accounts, nil
}

// CreateLedger opens a client sub-ledger within a trust account.
func (s *trustService) CreateLedger(ctx context.Context, accountID string, req dto.CreateLedgerRequest, creatorUserID string) (*domain.ClientTrustLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.trustRepo.FindTrustAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find trust account %s: %w", accountID, err)
	}
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", req.ClientID, err)
	}

	now := time.Now().UTC()
	ledger := domain.ClientTrustLedger{
		LedgerID:       uuid.NewString(),
		AccountID:      accountID,
		ClientID:       req.ClientID,
		MatterID:       req.MatterID,
		CurrentBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.trustRepo.SaveClientLedger(ctx, ledger); err != nil {
		logger.Error("Failed to save client ledger", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save client ledger: %w", err)
	}

	logger.Info("Client trust ledger opened", slog.String("ledger_id", ledger.LedgerID), slog.String("client_id", req.ClientID))
	return &ledger, nil
}

// ListLedgers retrieves the client sub-ledgers of an account.
func (s *trustService) ListLedgers(ctx context.Context, accountID string) ([]domain.ClientTrustLedger, error) {
	ledgers, err := s.trustRepo.ListLedgersByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers for account %s: %w", accountID, err)
	}
	return ledgers, nil
}

// RecordTransaction appends one immutable ledger entry. The balance check and
// all three writes (transaction, ledger balance, account balance) execute in
// a single database transaction under a row lock, so concurrent withdrawals
// against the same ledger serialize and the non-negative invariant holds.
func (s *trustService) RecordTransaction(ctx context.Context, accountID string, req dto.RecordTransactionRequest, creatorUserID string) (*domain.TrustTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := accounting.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	signedDelta, err := accounting.SignedAmount(req.TransactionType, req.Amount, req.TransferIn)
	if err != nil {
		return nil, err
	}

	ledger, err := s.trustRepo.FindLedgerByID(ctx, req.LedgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger %s: %w", req.LedgerID, err)
	}
	if ledger.AccountID != accountID {
		return nil, fmt.Errorf("%w: ledger %s does not belong to account %s", apperrors.ErrNotFound, req.LedgerID, accountID)
	}

	now := time.Now().UTC()
	txnDate := now
	if req.TransactionDate != nil {
		txnDate = *req.TransactionDate
	}

	txn := domain.TrustTransaction{
		TransactionID:   uuid.NewString(),
		AccountID:       accountID,
		LedgerID:        req.LedgerID,
		TransactionType: req.TransactionType,
		Amount:          signedDelta,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		Payee:           req.Payee,
		TransactionDate: txnDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
		// BalanceAfter is computed by the repository under the row lock; the
		// pre-read balance above is informational only.
	}

	saved, err := s.trustRepo.SaveTrustTransaction(ctx, txn, signedDelta)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Trust withdrawal rejected",
				slog.String("ledger_id", req.LedgerID),
				slog.String("requested", req.Amount.String()))
			return nil, err
		}
		logger.Error("Failed to save trust transaction", slog.String("error", err.Error()), slog.String("ledger_id", req.LedgerID))
		return nil, fmt.Errorf("failed to save trust transaction: %w", err)
	}

	logger.Info("Trust transaction recorded",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("type", string(saved.TransactionType)),
		slog.String("balance_after", saved.BalanceAfter.String()))
	return saved, nil
}

// ListTransactions retrieves an account's transaction history.
func (s *trustService) ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.TrustTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	txns, err := s.trustRepo.ListTransactionsByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	return txns, nil
}

// ListLedgerTransactions retrieves one ledger's transaction history.
func (s *trustService) ListLedgerTransactions(ctx context.Context, ledgerID string, limit int, offset int) ([]domain.TrustTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	txns, err := s.trustRepo.ListTransactionsByLedger(ctx, ledgerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for ledger %s: %w", ledgerID, err)
	}
	return txns, nil
}

// Reconcile records a comparison of the account's book balance against an
// externally supplied bank statement balance. Discrepancies are surfaced for
// manual follow-up, never auto-corrected.
func (s *trustService) Reconcile(ctx context.Context, accountID string, req dto.ReconcileRequest, creatorUserID string) (*domain.TrustReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.trustRepo.FindTrustAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trust account %s: %w", accountID, err)
	}

	bookBalance := account.CurrentBalance
	now := time.Now().UTC()
	rec := domain.TrustReconciliation{
		ReconciliationID: uuid.NewString(),
		AccountID:        accountID,
		StatementBalance: req.StatementBalance,
		BookBalance:      bookBalance,
		AdjustedBalance:  req.StatementBalance.Sub(bookBalance),
		IsBalanced:       req.StatementBalance.Equal(bookBalance),
		StatementDate:    req.StatementDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.trustRepo.SaveReconciliation(ctx, rec); err != nil {
		logger.Error("Failed to save reconciliation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	if !rec.IsBalanced {
		logger.Warn("Trust account reconciliation discrepancy",
			slog.String("account_id", accountID),
			slog.String("book_balance", bookBalance.String()),
			slog.String("statement_balance", req.StatementBalance.String()))
	}
	return &rec, nil
}

// ListReconciliations retrieves an account's reconciliation history.
func (s *trustService) ListReconciliations(ctx context.Context, accountID string) ([]domain.TrustReconciliation, error) {
	recs, err := s.trustRepo.ListReconciliationsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations for account %s: %w", accountID, err)
	}
	return recs, nil
}
