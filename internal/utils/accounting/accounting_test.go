package accounting_test

import (
	"testing"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	"github.com/atticuslegal/practice_mgmt_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, accounting.ValidateAmount(decimal.NewFromFloat(100.50)))
	assert.NoError(t, accounting.ValidateAmount(decimal.NewFromInt(1)))

	err := accounting.ValidateAmount(decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = accounting.ValidateAmount(decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = accounting.ValidateAmount(decimal.RequireFromString("10.001"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name       string
		txnType    domain.TrustTransactionType
		transferIn bool
		expected   decimal.Decimal
	}{
		{"deposit credits", domain.TrustDeposit, false, amount},
		{"withdrawal debits", domain.TrustWithdrawal, false, amount.Neg()},
		{"fee debits", domain.TrustFee, false, amount.Neg()},
		{"transfer out debits", domain.TrustTransfer, false, amount.Neg()},
		{"transfer in credits", domain.TrustTransfer, true, amount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.txnType, amount, tt.transferIn)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got))
		})
	}

	_, err := accounting.SignedAmount("BOGUS", amount, false)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNextBalance(t *testing.T) {
	next, err := accounting.NextBalance(decimal.NewFromInt(5000), decimal.NewFromInt(-2000))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3000).Equal(next))

	// Overdraw rejected
	_, err = accounting.NextBalance(decimal.NewFromInt(3000), decimal.NewFromInt(-4000))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	// Draining to exactly zero is fine
	next, err = accounting.NextBalance(decimal.NewFromInt(3000), decimal.NewFromInt(-3000))
	require.NoError(t, err)
	assert.True(t, next.IsZero())
}
