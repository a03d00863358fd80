package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrustAccount is the database representation of a firm trust account.
type TrustAccount struct {
	AccountID      string          `db:"account_id"`
	UserID         string          `db:"user_id"`
	AccountName    string          `db:"account_name"`
	BankName       string          `db:"bank_name"`
	AccountLast4   string          `db:"account_last4"`
	RoutingLast4   string          `db:"routing_last4"`
	AccountType    string          `db:"account_type"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// ClientTrustLedger is the database representation of a client sub-ledger.
type ClientTrustLedger struct {
	LedgerID       string          `db:"ledger_id"`
	AccountID      string          `db:"account_id"`
	ClientID       string          `db:"client_id"`
	MatterID       string          `db:"matter_id"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	AuditFields
}

// TrustTransaction is the database representation of one ledger entry.
type TrustTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	LedgerID        string          `db:"ledger_id"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	Description     string          `db:"description"`
	ReferenceNumber string          `db:"reference_number"`
	Payee           string          `db:"payee"`
	TransactionDate time.Time       `db:"transaction_date"`
	AuditFields
}

// TrustReconciliation is the database representation of a reconciliation run.
type TrustReconciliation struct {
	ReconciliationID string          `db:"reconciliation_id"`
	AccountID        string          `db:"account_id"`
	StatementBalance decimal.Decimal `db:"statement_balance"`
	BookBalance      decimal.Decimal `db:"book_balance"`
	AdjustedBalance  decimal.Decimal `db:"adjusted_balance"`
	IsBalanced       bool            `db:"is_balanced"`
	StatementDate    time.Time       `db:"statement_date"`
	AuditFields
}
