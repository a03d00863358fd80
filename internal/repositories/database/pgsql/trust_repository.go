package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	portsrepo "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/repositories"
	"github.com/atticuslegal/practice_mgmt_app/internal/models"
	"github.com/atticuslegal/practice_mgmt_app/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTrustRepository struct {
	BaseRepository
}

func newPgxTrustRepository(pool *pgxpool.Pool) portsrepo.TrustRepository {
	return &PgxTrustRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TrustRepository = (*PgxTrustRepository)(nil)

func toDomainTrustAccount(m models.TrustAccount) domain.TrustAccount {
	return domain.TrustAccount{
		AccountID:      m.AccountID,
		UserID:         m.UserID,
		AccountName:    m.AccountName,
		BankName:       m.BankName,
		AccountLast4:   m.AccountLast4,
		RoutingLast4:   m.RoutingLast4,
		AccountType:    domain.TrustAccountType(m.AccountType),
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainLedger(m models.ClientTrustLedger) domain.ClientTrustLedger {
	return domain.ClientTrustLedger{
		LedgerID:       m.LedgerID,
		AccountID:      m.AccountID,
		ClientID:       m.ClientID,
		MatterID:       m.MatterID,
		CurrentBalance: m.CurrentBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainTrustTransaction(m models.TrustTransaction) domain.TrustTransaction {
	return domain.TrustTransaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		LedgerID:        m.LedgerID,
		TransactionType: domain.TrustTransactionType(m.TransactionType),
		Amount:          m.Amount,
		BalanceAfter:    m.BalanceAfter,
		Description:     m.Description,
		ReferenceNumber: m.ReferenceNumber,
		Payee:           m.Payee,
		TransactionDate: m.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const trustAccountColumns = `account_id, user_id, account_name, bank_name, account_last4, routing_last4, account_type, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxTrustRepository) SaveTrustAccount(ctx context.Context, account domain.TrustAccount) error {
	query := `
        INSERT INTO trust_accounts (account_id, user_id, account_name, bank_name, account_last4, routing_last4, account_type, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (account_id) DO UPDATE SET
            account_name = EXCLUDED.account_name,
            bank_name = EXCLUDED.bank_name,
            is_active = EXCLUDED.is_active,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.UserID, account.AccountName, account.BankName,
		account.AccountLast4, account.RoutingLast4, string(account.AccountType),
		account.CurrentBalance, account.IsActive,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save trust account: %w", err)
	}
	return nil
}

func (r *PgxTrustRepository) FindTrustAccountByID(ctx context.Context, accountID string) (*domain.TrustAccount, error) {
	query := `SELECT ` + trustAccountColumns + ` FROM trust_accounts WHERE account_id = $1;`
	var m models.TrustAccount
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID, &m.UserID, &m.AccountName, &m.BankName,
		&m.AccountLast4, &m.RoutingLast4, &m.AccountType, &m.CurrentBalance, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trust account: %w", err)
	}
	d := toDomainTrustAccount(m)
	return &d, nil
}

func (r *PgxTrustRepository) ListTrustAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.TrustAccount, error) {
	query := `
        SELECT ` + trustAccountColumns + ` FROM trust_accounts
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list trust accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.TrustAccount
	for rows.Next() {
		var m models.TrustAccount
		err := rows.Scan(
			&m.AccountID, &m.UserID, &m.AccountName, &m.BankName,
			&m.AccountLast4, &m.RoutingLast4, &m.AccountType, &m.CurrentBalance, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trust account row: %w", err)
		}
		accounts = append(accounts, toDomainTrustAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trust account rows: %w", err)
	}
	return accounts, nil
}

const ledgerColumns = `ledger_id, account_id, client_id, COALESCE(matter_id::text, ''), current_balance, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxTrustRepository) SaveClientLedger(ctx context.Context, ledger domain.ClientTrustLedger) error {
	query := `
        INSERT INTO client_trust_ledgers (ledger_id, account_id, client_id, matter_id, current_balance, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		ledger.LedgerID, ledger.AccountID, ledger.ClientID, nullIfEmpty(ledger.MatterID),
		ledger.CurrentBalance,
		ledger.CreatedAt, ledger.CreatedBy, ledger.LastUpdatedAt, ledger.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client ledger: %w", err)
	}
	return nil
}

func (r *PgxTrustRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.ClientTrustLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM client_trust_ledgers WHERE ledger_id = $1;`
	var m models.ClientTrustLedger
	err := r.Pool.QueryRow(ctx, query, ledgerID).Scan(
		&m.LedgerID, &m.AccountID, &m.ClientID, &m.MatterID, &m.CurrentBalance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger: %w", err)
	}
	d := toDomainLedger(m)
	return &d, nil
}

func (r *PgxTrustRepository) listLedgers(ctx context.Context, query string, arg any) ([]domain.ClientTrustLedger, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	defer rows.Close()

	var ledgers []domain.ClientTrustLedger
	for rows.Next() {
		var m models.ClientTrustLedger
		err := rows.Scan(
			&m.LedgerID, &m.AccountID, &m.ClientID, &m.MatterID, &m.CurrentBalance,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		ledgers = append(ledgers, toDomainLedger(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return ledgers, nil
}

func (r *PgxTrustRepository) ListLedgersByAccount(ctx context.Context, accountID string) ([]domain.ClientTrustLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM client_trust_ledgers WHERE account_id = $1 ORDER BY created_at ASC;`
	return r.listLedgers(ctx, query, accountID)
}

func (r *PgxTrustRepository) ListLedgersByClient(ctx context.Context, clientID string) ([]domain.ClientTrustLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM client_trust_ledgers WHERE client_id = $1 ORDER BY created_at ASC;`
	return r.listLedgers(ctx, query, clientID)
}

// SaveTrustTransaction applies one signed delta atomically. The ledger row is
// locked for the duration of the transaction, so concurrent writes against the
// same ledger serialize and each sees the balance left by the previous one.
func (r *PgxTrustRepository) SaveTrustTransaction(ctx context.Context, txn domain.TrustTransaction, signedDelta decimal.Decimal) (*domain.TrustTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var current decimal.Decimal
	lockQuery := `SELECT current_balance FROM client_trust_ledgers WHERE ledger_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, txn.LedgerID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock ledger: %w", err)
	}

	next, err := accounting.NextBalance(current, signedDelta)
	if err != nil {
		return nil, err
	}

	txn.Amount = signedDelta
	txn.BalanceAfter = next

	insertQuery := `
        INSERT INTO trust_transactions (transaction_id, account_id, ledger_id, transaction_type, amount, balance_after, description, reference_number, payee, transaction_date, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err = tx.Exec(ctx, insertQuery,
		txn.TransactionID, txn.AccountID, txn.LedgerID, string(txn.TransactionType),
		txn.Amount, txn.BalanceAfter, txn.Description, txn.ReferenceNumber, txn.Payee, txn.TransactionDate,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert trust transaction: %w", err)
	}

	ledgerQuery := `
        UPDATE client_trust_ledgers SET current_balance = $2, last_updated_at = $3, last_updated_by = $4
        WHERE ledger_id = $1;
    `
	if _, err := tx.Exec(ctx, ledgerQuery, txn.LedgerID, next, txn.LastUpdatedAt, txn.LastUpdatedBy); err != nil {
		return nil, fmt.Errorf("failed to update ledger balance: %w", err)
	}

	accountQuery := `
        UPDATE trust_accounts SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
        WHERE account_id = $1;
    `
	if _, err := tx.Exec(ctx, accountQuery, txn.AccountID, signedDelta, txn.LastUpdatedAt, txn.LastUpdatedBy); err != nil {
		return nil, fmt.Errorf("failed to update account balance: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

const txnColumns = `transaction_id, account_id, ledger_id, transaction_type, amount, balance_after, description, reference_number, payee, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxTrustRepository) listTransactions(ctx context.Context, query string, args ...any) ([]domain.TrustTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trust transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.TrustTransaction
	for rows.Next() {
		var m models.TrustTransaction
		err := rows.Scan(
			&m.TransactionID, &m.AccountID, &m.LedgerID, &m.TransactionType,
			&m.Amount, &m.BalanceAfter, &m.Description, &m.ReferenceNumber, &m.Payee, &m.TransactionDate,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trust transaction row: %w", err)
		}
		txns = append(txns, toDomainTrustTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trust transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxTrustRepository) ListTransactionsByLedger(ctx context.Context, ledgerID string, limit int, offset int) ([]domain.TrustTransaction, error) {
	query := `
        SELECT ` + txnColumns + ` FROM trust_transactions
        WHERE ledger_id = $1
        ORDER BY transaction_date DESC, created_at DESC
        LIMIT $2 OFFSET $3;
    `
	return r.listTransactions(ctx, query, ledgerID, limit, offset)
}

func (r *PgxTrustRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.TrustTransaction, error) {
	query := `
        SELECT ` + txnColumns + ` FROM trust_transactions
        WHERE account_id = $1
        ORDER BY transaction_date DESC, created_at DESC
        LIMIT $2 OFFSET $3;
    `
	return r.listTransactions(ctx, query, accountID, limit, offset)
}

func (r *PgxTrustRepository) SaveReconciliation(ctx context.Context, rec domain.TrustReconciliation) error {
	query := `
        INSERT INTO trust_reconciliations (reconciliation_id, account_id, statement_balance, book_balance, adjusted_balance, is_balanced, statement_date, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		rec.ReconciliationID, rec.AccountID, rec.StatementBalance, rec.BookBalance,
		rec.AdjustedBalance, rec.IsBalanced, rec.StatementDate,
		rec.CreatedAt, rec.CreatedBy, rec.LastUpdatedAt, rec.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reconciliation: %w", err)
	}
	return nil
}

func (r *PgxTrustRepository) ListReconciliationsByAccount(ctx context.Context, accountID string) ([]domain.TrustReconciliation, error) {
	query := `
        SELECT reconciliation_id, account_id, statement_balance, book_balance, adjusted_balance, is_balanced, statement_date, created_at, created_by, last_updated_at, last_updated_by
        FROM trust_reconciliations
        WHERE account_id = $1
        ORDER BY statement_date DESC;
    `
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	defer rows.Close()

	var recs []domain.TrustReconciliation
	for rows.Next() {
		var m models.TrustReconciliation
		err := rows.Scan(
			&m.ReconciliationID, &m.AccountID, &m.StatementBalance, &m.BookBalance,
			&m.AdjustedBalance, &m.IsBalanced, &m.StatementDate,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation row: %w", err)
		}
		recs = append(recs, domain.TrustReconciliation{
			ReconciliationID: m.ReconciliationID,
			AccountID:        m.AccountID,
			StatementBalance: m.StatementBalance,
			BookBalance:      m.BookBalance,
			AdjustedBalance:  m.AdjustedBalance,
			IsBalanced:       m.IsBalanced,
			StatementDate:    m.StatementDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reconciliation rows: %w", err)
	}
	return recs, nil
}
