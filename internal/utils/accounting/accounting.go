// Package accounting holds the trust-ledger arithmetic shared by services and
// repositories so the balance rules are applied identically at validation
// time and under the row lock.
package accounting

import (
	"fmt"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateAmount checks that a currency amount is positive with at most two
// fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	if amount.Exponent() < -2 {
		return fmt.Errorf("%w: amount must have at most 2 decimal places, got %s", apperrors.ErrValidation, amount.String())
	}
	return nil
}

// SignedAmount applies the correct sign to a transaction amount based on its
// type. DEPOSIT and incoming TRANSFER credit the ledger; WITHDRAWAL, FEE and
// outgoing TRANSFER debit it.
func SignedAmount(txnType domain.TrustTransactionType, amount decimal.Decimal, transferIn bool) (decimal.Decimal, error) {
	switch txnType {
	case domain.TrustDeposit:
		return amount, nil
	case domain.TrustWithdrawal, domain.TrustFee:
		return amount.Neg(), nil
	case domain.TrustTransfer:
		if transferIn {
			return amount, nil
		}
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txnType)
	}
}

// NextBalance computes the ledger balance after applying a signed delta and
// enforces the core trust invariant: a client sub-ledger may never go
// negative, even transiently.
func NextBalance(current decimal.Decimal, signedDelta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(signedDelta)
	if next.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: available %s, requested %s",
			apperrors.ErrInsufficientFunds, current.String(), signedDelta.Neg().String())
	}
	return next, nil
}
