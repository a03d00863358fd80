package dto

import (
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTrustAccountRequest defines the data needed to register a trust
// account. Full account/routing numbers are never accepted, only the last 4.
type CreateTrustAccountRequest struct {
	AccountName  string                  `json:"accountName" binding:"required"`
	BankName     string                  `json:"bankName" binding:"required"`
	AccountLast4 string                  `json:"accountLast4" binding:"required,len=4,numeric"`
	RoutingLast4 string                  `json:"routingLast4" binding:"required,len=4,numeric"`
	AccountType  domain.TrustAccountType `json:"accountType" binding:"required,oneof=IOLTA CLIENT_TRUST OPERATING"`
}

// TrustAccountResponse defines the data returned for a trust account.
type TrustAccountResponse struct {
	AccountID      string                  `json:"accountID"`
	AccountName    string                  `json:"accountName"`
	BankName       string                  `json:"bankName"`
	AccountLast4   string                  `json:"accountLast4"`
	RoutingLast4   string                  `json:"routingLast4"`
	AccountType    domain.TrustAccountType `json:"accountType"`
	CurrentBalance decimal.Decimal         `json:"currentBalance"`
	IsActive       bool                    `json:"isActive"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ToTrustAccountResponse converts a domain.TrustAccount to a DTO.
func ToTrustAccountResponse(a *domain.TrustAccount) TrustAccountResponse {
	return TrustAccountResponse{
		AccountID:      a.AccountID,
		AccountName:    a.AccountName,
		BankName:       a.BankName,
		AccountLast4:   a.AccountLast4,
		RoutingLast4:   a.RoutingLast4,
		AccountType:    a.AccountType,
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
	}
}

// ToListTrustAccountResponse converts a slice of accounts to DTOs.
func ToListTrustAccountResponse(accounts []domain.TrustAccount) []TrustAccountResponse {
	res := make([]TrustAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToTrustAccountResponse(&accounts[i])
	}
	return res
}

// CreateLedgerRequest defines the data needed to open a client sub-ledger.
type CreateLedgerRequest struct {
	ClientID string `json:"clientID" binding:"required,uuid"`
	MatterID string `json:"matterID" binding:"omitempty,uuid"`
}

// LedgerResponse defines the data returned for a client sub-ledger.
type LedgerResponse struct {
	LedgerID       string          `json:"ledgerID"`
	AccountID      string          `json:"accountID"`
	ClientID       string          `json:"clientID"`
	MatterID       string          `json:"matterID,omitempty"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToLedgerResponse converts a domain.ClientTrustLedger to a DTO.
func ToLedgerResponse(l *domain.ClientTrustLedger) LedgerResponse {
	return LedgerResponse{
		LedgerID:       l.LedgerID,
		AccountID:      l.AccountID,
		ClientID:       l.ClientID,
		MatterID:       l.MatterID,
		CurrentBalance: l.CurrentBalance,
		CreatedAt:      l.CreatedAt,
	}
}

// ToListLedgerResponse converts a slice of ledgers to DTOs.
func ToListLedgerResponse(ledgers []domain.ClientTrustLedger) []LedgerResponse {
	res := make([]LedgerResponse, len(ledgers))
	for i := range ledgers {
		res[i] = ToLedgerResponse(&ledgers[i])
	}
	return res
}

// RecordTransactionRequest defines the inputs of one trust ledger entry.
// Amount is always positive; the transaction type determines the sign.
type RecordTransactionRequest struct {
	LedgerID        string                      `json:"ledgerID" binding:"required,uuid"`
	TransactionType domain.TrustTransactionType `json:"transactionType" binding:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER FEE"`
	Amount          decimal.Decimal             `json:"amount" binding:"required"`
	Description     string                      `json:"description"`
	ReferenceNumber string                      `json:"referenceNumber"`
	Payee           string                      `json:"payee"`
	TransactionDate *time.Time                  `json:"transactionDate"`
	// TransferIn marks an incoming transfer; TRANSFER debits the ledger
	// unless this is set.
	TransferIn bool `json:"transferIn"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID   string                      `json:"transactionID"`
	AccountID       string                      `json:"accountID"`
	LedgerID        string                      `json:"ledgerID"`
	TransactionType domain.TrustTransactionType `json:"transactionType"`
	Amount          decimal.Decimal             `json:"amount"`
	BalanceAfter    decimal.Decimal             `json:"balanceAfter"`
	Description     string                      `json:"description,omitempty"`
	ReferenceNumber string                      `json:"referenceNumber,omitempty"`
	Payee           string                      `json:"payee,omitempty"`
	TransactionDate time.Time                   `json:"transactionDate"`
	CreatedAt       time.Time                   `json:"createdAt"`
}

// ToTransactionResponse converts a domain.TrustTransaction to a DTO.
func ToTransactionResponse(t *domain.TrustTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		AccountID:       t.AccountID,
		LedgerID:        t.LedgerID,
		TransactionType: t.TransactionType,
		Amount:          t.Amount,
		BalanceAfter:    t.BalanceAfter,
		Description:     t.Description,
		ReferenceNumber: t.ReferenceNumber,
		Payee:           t.Payee,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions to DTOs.
func ToListTransactionResponse(txns []domain.TrustTransaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ReconcileRequest defines the inputs of one reconciliation run against an
// external bank statement.
type ReconcileRequest struct {
	StatementBalance decimal.Decimal `json:"statementBalance" binding:"required"`
	StatementDate    time.Time       `json:"statementDate" binding:"required"`
}

// ReconciliationResponse defines the data returned for a reconciliation.
type ReconciliationResponse struct {
	ReconciliationID string          `json:"reconciliationID"`
	AccountID        string          `json:"accountID"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	BookBalance      decimal.Decimal `json:"bookBalance"`
	AdjustedBalance  decimal.Decimal `json:"adjustedBalance"`
	IsBalanced       bool            `json:"isBalanced"`
	StatementDate    time.Time       `json:"statementDate"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToReconciliationResponse converts a domain.TrustReconciliation to a DTO.
func ToReconciliationResponse(r *domain.TrustReconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID: r.ReconciliationID,
		AccountID:        r.AccountID,
		StatementBalance: r.StatementBalance,
		BookBalance:      r.BookBalance,
		AdjustedBalance:  r.AdjustedBalance,
		IsBalanced:       r.IsBalanced,
		StatementDate:    r.StatementDate,
		CreatedAt:        r.CreatedAt,
	}
}

// ToListReconciliationResponse converts a slice of reconciliations to DTOs.
func ToListReconciliationResponse(recs []domain.TrustReconciliation) []ReconciliationResponse {
	res := make([]ReconciliationResponse, len(recs))
	for i := range recs {
		res[i] = ToReconciliationResponse(&recs[i])
	}
	return res
}
