package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrustAccountType is the regulatory classification of a trust bank account.
type TrustAccountType string

const (
	AccountIOLTA       TrustAccountType = "IOLTA"
	AccountClientTrust TrustAccountType = "CLIENT_TRUST"
	AccountOperating   TrustAccountType = "OPERATING"
)

// TrustAccount is a bank account held in the firm's name. CurrentBalance is
// derived and must equal the sum of the account's client ledger balances at
// all times. Full account/routing numbers are never stored, only the last 4.
type TrustAccount struct {
	AccountID      string           `json:"accountID"` // Primary Key (UUID)
	UserID         string           `json:"userID"`    // Owning staff user
	AccountName    string           `json:"accountName"`
	BankName       string           `json:"bankName"`
	AccountLast4   string           `json:"accountLast4"`
	RoutingLast4   string           `json:"routingLast4"`
	AccountType    TrustAccountType `json:"accountType"`
	CurrentBalance decimal.Decimal  `json:"currentBalance"`
	IsActive       bool             `json:"isActive"`
	AuditFields
}

// ClientTrustLedger is a client's sub-balance within a TrustAccount.
// CurrentBalance >= 0 at all times; a withdrawal that would overdraw the
// ledger is rejected before any row is written.
type ClientTrustLedger struct {
	LedgerID       string          `json:"ledgerID"` // Primary Key (UUID)
	AccountID      string          `json:"accountID"`
	ClientID       string          `json:"clientID"`
	MatterID       string          `json:"matterID,omitempty"` // Nullable FK
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// TrustTransactionType classifies a ledger entry.
type TrustTransactionType string

const (
	TrustDeposit    TrustTransactionType = "DEPOSIT"
	TrustWithdrawal TrustTransactionType = "WITHDRAWAL"
	TrustTransfer   TrustTransactionType = "TRANSFER"
	TrustFee        TrustTransactionType = "FEE"
)

// TrustTransaction is an immutable, append-only ledger entry. Exactly one row
// is written per financial event; rows are never updated or deleted. Each
// creation is the sole mutator of its ledger's balance and, transitively, of
// the parent account's balance.
type TrustTransaction struct {
	TransactionID   string               `json:"transactionID"` // Primary Key (UUID)
	AccountID       string               `json:"accountID"`
	LedgerID        string               `json:"ledgerID"`
	TransactionType TrustTransactionType `json:"transactionType"`
	Amount          decimal.Decimal      `json:"amount"` // Signed by type
	BalanceAfter    decimal.Decimal      `json:"balanceAfter"`
	Description     string               `json:"description,omitempty"`
	ReferenceNumber string               `json:"referenceNumber,omitempty"`
	Payee           string               `json:"payee,omitempty"`
	TransactionDate time.Time            `json:"transactionDate"`
	AuditFields
}

// TrustReconciliation records a comparison of an account's book balance
// against an external bank statement. It never mutates balances;
// discrepancies are surfaced for manual follow-up.
type TrustReconciliation struct {
	ReconciliationID string          `json:"reconciliationID"` // Primary Key (UUID)
	AccountID        string          `json:"accountID"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	BookBalance      decimal.Decimal `json:"bookBalance"`
	AdjustedBalance  decimal.Decimal `json:"adjustedBalance"` // statement - book
	IsBalanced       bool            `json:"isBalanced"`
	StatementDate    time.Time       `json:"statementDate"`
	AuditFields
}
