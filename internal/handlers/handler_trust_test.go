package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/apperrors"
	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
	"github.com/atticuslegal/practice_mgmt_app/internal/handlers"
	"github.com/atticuslegal/practice_mgmt_app/internal/middleware"
	"github.com/atticuslegal/practice_mgmt_app/internal/platform/config"
	"github.com/atticuslegal/practice_mgmt_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TrustSvcFacade ---

type MockTrustService struct {
	mock.Mock
}

func (m *MockTrustService) CreateTrustAccount(ctx context.Context, req dto.CreateTrustAccountRequest, creatorUserID string) (*domain.TrustAccount, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustAccount), args.Error(1)
}

func (m *MockTrustService) GetTrustAccount(ctx context.Context, accountID string, requestingUserID string) (*domain.TrustAccount, error) {
	args := m.Called(ctx, accountID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustAccount), args.Error(1)
}

func (m *MockTrustService) ListTrustAccounts(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.TrustAccount, error) {
	args := m.Called(ctx, requestingUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustAccount), args.Error(1)
}

func (m *MockTrustService) CreateLedger(ctx context.Context, accountID string, req dto.CreateLedgerRequest, creatorUserID string) (*domain.ClientTrustLedger, error) {
	args := m.Called(ctx, accountID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientTrustLedger), args.Error(1)
}

func (m *MockTrustService) ListLedgers(ctx context.Context, accountID string) ([]domain.ClientTrustLedger, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientTrustLedger), args.Error(1)
}

func (m *MockTrustService) RecordTransaction(ctx context.Context, accountID string, req dto.RecordTransactionRequest, creatorUserID string) (*domain.TrustTransaction, error) {
	args := m.Called(ctx, accountID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustTransaction), args.Error(1)
}

func (m *MockTrustService) ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.TrustTransaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustTransaction), args.Error(1)
}

func (m *MockTrustService) ListLedgerTransactions(ctx context.Context, ledgerID string, limit int, offset int) ([]domain.TrustTransaction, error) {
	args := m.Called(ctx, ledgerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustTransaction), args.Error(1)
}

func (m *MockTrustService) Reconcile(ctx context.Context, accountID string, req dto.ReconcileRequest, creatorUserID string) (*domain.TrustReconciliation, error) {
	args := m.Called(ctx, accountID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustReconciliation), args.Error(1)
}

func (m *MockTrustService) ListReconciliations(ctx context.Context, accountID string) ([]domain.TrustReconciliation, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustReconciliation), args.Error(1)
}

// --- Test Suite Setup ---

const testJWTSecret = "test-secret"

type TrustHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockTrustService *MockTrustService
	userID           string
	authHeader       string
}

func (suite *TrustHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockTrustService = new(MockTrustService)
	suite.userID = uuid.NewString()

	cfg := &config.Config{
		JWTSecret:       testJWTSecret,
		PortalJWTSecret: "test-portal-secret",
		JWTIssuer:       "test-issuer",
		IsProduction:    true, // no swagger in tests
	}

	token, err := utils.GenerateJWT(suite.userID, middleware.StaffAudience, cfg.JWTSecret, time.Minute, cfg.JWTIssuer)
	suite.Require().NoError(err)
	suite.authHeader = "Bearer " + token

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Trust: suite.mockTrustService,
	})
}

func (suite *TrustHandlerTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", suite.authHeader)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TrustHandlerTestSuite) TestRecordTransaction_Created() {
	accountID := uuid.NewString()
	ledgerID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockTrustService.On("RecordTransaction", mock.Anything, accountID, mock.AnythingOfType("dto.RecordTransactionRequest"), suite.userID).
		Return(&domain.TrustTransaction{
			TransactionID:   txnID,
			AccountID:       accountID,
			LedgerID:        ledgerID,
			TransactionType: domain.TrustDeposit,
			Amount:          decimal.NewFromInt(5000),
			BalanceAfter:    decimal.NewFromInt(5000),
			TransactionDate: time.Now().UTC(),
		}, nil).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/trust-accounts/%s/transactions", accountID), gin.H{
		"ledgerID":        ledgerID,
		"transactionType": "DEPOSIT",
		"amount":          "5000",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txnID, resp.TransactionID)
	suite.Equal("5000", resp.BalanceAfter.String())
	suite.mockTrustService.AssertExpectations(suite.T())
}

func (suite *TrustHandlerTestSuite) TestRecordTransaction_InsufficientFundsConflict() {
	accountID := uuid.NewString()

	suite.mockTrustService.On("RecordTransaction", mock.Anything, accountID, mock.AnythingOfType("dto.RecordTransactionRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: available 3000, requested 4000", apperrors.ErrInsufficientFunds)).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/trust-accounts/%s/transactions", accountID), gin.H{
		"ledgerID":        uuid.NewString(),
		"transactionType": "WITHDRAWAL",
		"amount":          "4000",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TrustHandlerTestSuite) TestRecordTransaction_BadType() {
	accountID := uuid.NewString()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/trust-accounts/%s/transactions", accountID), gin.H{
		"ledgerID":        uuid.NewString(),
		"transactionType": "BANK_ERROR",
		"amount":          "10",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTrustService.AssertNotCalled(suite.T(), "RecordTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TrustHandlerTestSuite) TestRecordTransaction_NoToken() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trust-accounts/"+uuid.NewString()+"/transactions", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TrustHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()

	suite.mockTrustService.On("GetTrustAccount", mock.Anything, accountID, suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/trust-accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TrustHandlerTestSuite) TestListAccounts_DefaultPagination() {
	suite.mockTrustService.On("ListTrustAccounts", mock.Anything, suite.userID, 20, 0).
		Return([]domain.TrustAccount{}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/trust-accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTrustService.AssertExpectations(suite.T())
}

func TestTrustHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrustHandlerTestSuite))
}
