package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TrustServiceTestSuite struct {
	suite.Suite
	mockTrustRepo  *MockTrustRepository
	mockClientRepo *MockClientRepository
	service        portssvc.TrustSvcFacade
}

func (suite *TrustServiceTestSuite) SetupTest() {
	suite.mockTrustRepo = new(MockTrustRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewTrustService(suite.mockTrustRepo, suite.mockClientRepo)
}

func (suite *TrustServiceTestSuite) TestCreateTrustAccount_StartsAtZero() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateTrustAccountRequest{
		AccountName:  "Firm IOLTA",
		BankName:     "First National",
		AccountLast4: "1234",
		RoutingLast4: "5678",
		AccountType:  domain.AccountIOLTA,
	}

	suite.mockTrustRepo.On("SaveTrustAccount", ctx, mock.AnythingOfType("domain.TrustAccount")).Return(nil).Once()

	account, err := suite.service.CreateTrustAccount(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(account.CurrentBalance.IsZero())
	suite.True(account.IsActive)
	suite.Equal(domain.AccountIOLTA, account.AccountType)
}

func (suite *TrustServiceTestSuite) TestGetTrustAccount_OtherUserObscured() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockTrustRepo.On("FindTrustAccountByID", ctx, accountID).Return(&domain.TrustAccount{
		AccountID: accountID,
		UserID:    uuid.NewString(),
	}, nil).Once()

	_, err := suite.service.GetTrustAccount(ctx, accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// recordTransaction drives one RecordTransaction call against a ledger with
// the given balance and returns the outcome. The mock repository applies the
// same balance rule the live one enforces under its row lock.
func (suite *TrustServiceTestSuite) recordTransaction(ctx context.Context, accountID, ledgerID string, balance decimal.Decimal, req dto.RecordTransactionRequest) (*domain.TrustTransaction, error) {
	suite.mockTrustRepo.On("FindLedgerByID", ctx, ledgerID).Return(&domain.ClientTrustLedger{
		LedgerID:       ledgerID,
		AccountID:      accountID,
		CurrentBalance: balance,
	}, nil).Once()

	call := suite.mockTrustRepo.On("SaveTrustTransaction", ctx, mock.AnythingOfType("domain.TrustTransaction"), mock.AnythingOfType("decimal.Decimal"))
	call.Run(func(args mock.Arguments) {
		txn := args.Get(1).(domain.TrustTransaction)
		delta := args.Get(2).(decimal.Decimal)
		next := balance.Add(delta)
		if next.IsNegative() {
			call.ReturnArguments = mock.Arguments{nil, apperrors.ErrInsufficientFunds}
			return
		}
		txn.BalanceAfter = next
		call.ReturnArguments = mock.Arguments{&txn, nil}
	}).Once()

	return suite.service.RecordTransaction(ctx, accountID, req, uuid.NewString())
}

func (suite *TrustServiceTestSuite) TestRecordTransaction_DepositThenWithdraw() {
	ctx := context.Background()
	accountID := uuid.NewString()
	ledgerID := uuid.NewString()

	deposit, err := suite.recordTransaction(ctx, accountID, ledgerID, decimal.Zero, dto.RecordTransactionRequest{
		LedgerID:        ledgerID,
		TransactionType: domain.TrustDeposit,
		Amount:          decimal.NewFromInt(5000),
		Description:     "Retainer received",
	})
	suite.Require().NoError(err)
	suite.Equal("5000", deposit.BalanceAfter.String())
	suite.Equal("5000", deposit.Amount.String())

	withdrawal, err := suite.recordTransaction(ctx, accountID, ledgerID, decimal.NewFromInt(5000), dto.RecordTransactionRequest{
		LedgerID:        ledgerID,
		TransactionType: domain.TrustWithdrawal,
		Amount:          decimal.NewFromInt(2000),
		Payee:           "Court clerk",
	})
	suite.Require().NoError(err)
	suite.Equal("3000", withdrawal.BalanceAfter.String())
	// Withdrawals are stored with a negative signed amount.
	suite.Equal("-2000", withdrawal.Amount.String())
}

func (suite *TrustServiceTestSuite) TestRecordTransaction_OverdrawRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	ledgerID := uuid.NewString()

	// Balance 3000, withdrawal 4000: rejected, nothing written.
	_, err := suite.recordTransaction(ctx, accountID, ledgerID, decimal.NewFromInt(3000), dto.RecordTransactionRequest{
		LedgerID:        ledgerID,
		TransactionType: domain.TrustWithdrawal,
		Amount:          decimal.NewFromInt(4000),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (suite *TrustServiceTestSuite) TestRecordTransaction_NonPositiveAmount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	_, err := suite.service.RecordTransaction(ctx, accountID, dto.RecordTransactionRequest{
		LedgerID:        uuid.NewString(),
		TransactionType: domain.TrustDeposit,
		Amount:          decimal.NewFromInt(-100),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTrustRepo.AssertNotCalled(suite.T(), "SaveTrustTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TrustServiceTestSuite) TestRecordTransaction_TooManyDecimalPlaces() {
	ctx := context.Background()

	_, err := suite.service.RecordTransaction(ctx, uuid.NewString(), dto.RecordTransactionRequest{
		LedgerID:        uuid.NewString(),
		TransactionType: domain.TrustDeposit,
		Amount:          decimal.RequireFromString("10.999"),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TrustServiceTestSuite) TestRecordTransaction_LedgerAccountMismatch() {
	ctx := context.Background()
	accountID := uuid.NewString()
	ledgerID := uuid.NewString()

	suite.mockTrustRepo.On("FindLedgerByID", ctx, ledgerID).Return(&domain.ClientTrustLedger{
		LedgerID:  ledgerID,
		AccountID: uuid.NewString(),
	}, nil).Once()

	_, err := suite.service.RecordTransaction(ctx, accountID, dto.RecordTransactionRequest{
		LedgerID:        ledgerID,
		TransactionType: domain.TrustDeposit,
		Amount:          decimal.NewFromInt(100),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTrustRepo.AssertNotCalled(suite.T(), "SaveTrustTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TrustServiceTestSuite) TestRecordTransaction_FeeDebits() {
	ctx := context.Background()
	accountID := uuid.NewString()
	ledgerID := uuid.NewString()

	fee, err := suite.recordTransaction(ctx, accountID, ledgerID, decimal.NewFromInt(250), dto.RecordTransactionRequest{
		LedgerID:        ledgerID,
		TransactionType: domain.TrustFee,
		Amount:          decimal.NewFromInt(50),
		Description:     "Earned fee transfer",
	})

	suite.Require().NoError(err)
	suite.Equal("-50", fee.Amount.String())
	suite.Equal("200", fee.BalanceAfter.String())
}

func (suite *TrustServiceTestSuite) TestRecordTransaction_IncomingTransferCredits() {
	ctx := context.Background()
	accountID := uuid.NewString()
	ledgerID := uuid.NewString()

	txn, err := suite.recordTransaction(ctx, accountID, ledgerID, decimal.NewFromInt(100), dto.RecordTransactionRequest{
		LedgerID:        ledgerID,
		TransactionType: domain.TrustTransfer,
		Amount:          decimal.NewFromInt(25),
		TransferIn:      true,
	})

	suite.Require().NoError(err)
	suite.Equal("25", txn.Amount.String())
	suite.Equal("125", txn.BalanceAfter.String())
}

func (suite *TrustServiceTestSuite) TestReconcile_Balanced() {
	ctx := context.Background()
	accountID := uuid.NewString()
	book := decimal.RequireFromString("1500.25")

	suite.mockTrustRepo.On("FindTrustAccountByID", ctx, accountID).Return(&domain.TrustAccount{
		AccountID:      accountID,
		CurrentBalance: book,
	}, nil).Once()
	suite.mockTrustRepo.On("SaveReconciliation", ctx, mock.AnythingOfType("domain.TrustReconciliation")).Return(nil).Once()

	rec, err := suite.service.Reconcile(ctx, accountID, dto.ReconcileRequest{
		StatementBalance: book,
		StatementDate:    time.Now().UTC(),
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(rec.IsBalanced)
	suite.True(rec.AdjustedBalance.IsZero())
	suite.Equal(book.String(), rec.BookBalance.String())
}

func (suite *TrustServiceTestSuite) TestReconcile_Discrepancy() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockTrustRepo.On("FindTrustAccountByID", ctx, accountID).Return(&domain.TrustAccount{
		AccountID:      accountID,
		CurrentBalance: decimal.NewFromInt(1000),
	}, nil).Once()
	suite.mockTrustRepo.On("SaveReconciliation", ctx, mock.AnythingOfType("domain.TrustReconciliation")).Return(nil).Once()

	rec, err := suite.service.Reconcile(ctx, accountID, dto.ReconcileRequest{
		StatementBalance: decimal.NewFromInt(900),
		StatementDate:    time.Now().UTC(),
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.False(rec.IsBalanced)
	// adjusted = statement - book
	suite.Equal("-100", rec.AdjustedBalance.String())
}

func (suite *TrustServiceTestSuite) TestCreateLedger_UnknownClient() {
	ctx := context.Background()
	accountID := uuid.NewString()
	clientID := uuid.NewString()

	suite.mockTrustRepo.On("FindTrustAccountByID", ctx, accountID).Return(&domain.TrustAccount{AccountID: accountID}, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateLedger(ctx, accountID, dto.CreateLedgerRequest{ClientID: clientID}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTrustRepo.AssertNotCalled(suite.T(), "SaveClientLedger", mock.Anything, mock.Anything)
}

func TestTrustServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TrustServiceTestSuite))
}
