package services_test

import (
	"context"
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Hand-written repository mocks shared by the service test suites.

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClientsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientsMatchingTerms(ctx context.Context, terms []string) ([]domain.Client, error) {
	args := m.Called(ctx, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClientPortalAccess(ctx context.Context, clientID string, accessCodeHash string, enabled bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, clientID, accessCodeHash, enabled, updatedBy, now)
	return args.Error(0)
}

func (m *MockClientRepository) RecordPortalActivity(ctx context.Context, clientID string, action string, at time.Time) error {
	args := m.Called(ctx, clientID, action, at)
	return args.Error(0)
}

type MockMatterRepository struct {
	mock.Mock
}

func (m *MockMatterRepository) SaveMatter(ctx context.Context, matter domain.Matter) error {
	args := m.Called(ctx, matter)
	return args.Error(0)
}

func (m *MockMatterRepository) FindMatterByID(ctx context.Context, matterID string) (*domain.Matter, error) {
	args := m.Called(ctx, matterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Matter), args.Error(1)
}

func (m *MockMatterRepository) ListMattersByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Matter, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Matter), args.Error(1)
}

func (m *MockMatterRepository) ListMattersByClient(ctx context.Context, clientID string) ([]domain.Matter, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Matter), args.Error(1)
}

type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListPartiesByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Party, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) FindPartiesMatchingTerms(ctx context.Context, terms []string) ([]domain.Party, error) {
	args := m.Called(ctx, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) DeleteParty(ctx context.Context, partyID string) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}

type MockConflictRepository struct {
	mock.Mock
}

func (m *MockConflictRepository) SaveConflictCheck(ctx context.Context, check domain.ConflictCheck) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockConflictRepository) FindConflictCheckByID(ctx context.Context, checkID string) (*domain.ConflictCheck, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConflictCheck), args.Error(1)
}

func (m *MockConflictRepository) ListConflictChecksByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.ConflictCheck, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConflictCheck), args.Error(1)
}

func (m *MockConflictRepository) SaveWaiver(ctx context.Context, waiver domain.ConflictWaiver) error {
	args := m.Called(ctx, waiver)
	return args.Error(0)
}

func (m *MockConflictRepository) FindWaiversByCheckID(ctx context.Context, checkID string) ([]domain.ConflictWaiver, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConflictWaiver), args.Error(1)
}

type MockTrustRepository struct {
	mock.Mock
}

func (m *MockTrustRepository) SaveTrustAccount(ctx context.Context, account domain.TrustAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockTrustRepository) FindTrustAccountByID(ctx context.Context, accountID string) (*domain.TrustAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustAccount), args.Error(1)
}

func (m *MockTrustRepository) ListTrustAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.TrustAccount, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustAccount), args.Error(1)
}

func (m *MockTrustRepository) SaveClientLedger(ctx context.Context, ledger domain.ClientTrustLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockTrustRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.ClientTrustLedger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientTrustLedger), args.Error(1)
}

func (m *MockTrustRepository) ListLedgersByAccount(ctx context.Context, accountID string) ([]domain.ClientTrustLedger, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientTrustLedger), args.Error(1)
}

func (m *MockTrustRepository) ListLedgersByClient(ctx context.Context, clientID string) ([]domain.ClientTrustLedger, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientTrustLedger), args.Error(1)
}

func (m *MockTrustRepository) SaveTrustTransaction(ctx context.Context, txn domain.TrustTransaction, signedDelta decimal.Decimal) (*domain.TrustTransaction, error) {
	args := m.Called(ctx, txn, signedDelta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustTransaction), args.Error(1)
}

func (m *MockTrustRepository) ListTransactionsByLedger(ctx context.Context, ledgerID string, limit int, offset int) ([]domain.TrustTransaction, error) {
	args := m.Called(ctx, ledgerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustTransaction), args.Error(1)
}

func (m *MockTrustRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.TrustTransaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustTransaction), args.Error(1)
}

func (m *MockTrustRepository) SaveReconciliation(ctx context.Context, rec domain.TrustReconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockTrustRepository) ListReconciliationsByAccount(ctx context.Context, accountID string) ([]domain.TrustReconciliation, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustReconciliation), args.Error(1)
}
