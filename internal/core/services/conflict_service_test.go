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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConflictServiceTestSuite struct {
	suite.Suite
	mockConflictRepo *MockConflictRepository
	mockPartyRepo    *MockPartyRepository
	mockClientRepo   *MockClientRepository
	mockMatterRepo   *MockMatterRepository
	service          portssvc.ConflictSvcFacade
}

func (suite *ConflictServiceTestSuite) SetupTest() {
	suite.mockConflictRepo = new(MockConflictRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockMatterRepo = new(MockMatterRepository)
	suite.service = services.NewConflictService(suite.mockConflictRepo, suite.mockPartyRepo, suite.mockClientRepo, suite.mockMatterRepo)
}

func (suite *ConflictServiceTestSuite) TestRunConflictCheck_Clear() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.RunConflictCheckRequest{
		CheckType: domain.CheckNewClient,
		Names:     []string{"  John   Smith "},
	}

	suite.mockPartyRepo.On("FindPartiesMatchingTerms", ctx, []string{"john smith"}).Return([]domain.Party{}, nil).Once()
	suite.mockClientRepo.On("FindClientsMatchingTerms", ctx, []string{"john smith"}).Return([]domain.Client{}, nil).Once()
	suite.mockConflictRepo.On("SaveConflictCheck", ctx, mock.AnythingOfType("domain.ConflictCheck")).Return(nil).Once()

	check, err := suite.service.RunConflictCheck(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(check)
	suite.Equal(domain.CheckClear, check.Status)
	suite.Equal(0, check.ConflictCount)
	suite.Empty(check.Matches)
	// Search terms are stored normalized.
	suite.Equal([]string{"john smith"}, check.SearchNames)
	suite.mockConflictRepo.AssertExpectations(suite.T())
}

func (suite *ConflictServiceTestSuite) TestRunConflictCheck_ConflictFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	partyID := uuid.NewString()
	clientID := uuid.NewString()
	req := dto.RunConflictCheckRequest{
		CheckType: domain.CheckNewMatter,
		Names:     []string{"John Smith"},
		Companies: []string{"Acme Corp"},
	}
	terms := []string{"john smith", "acme corp"}

	parties := []domain.Party{
		{PartyID: partyID, Name: "John Smith Jr", PartyType: domain.PartyOpposing},
	}
	clients := []domain.Client{
		{ClientID: clientID, Name: "Jane Doe", CompanyName: "Acme Corp Holdings"},
	}
	suite.mockPartyRepo.On("FindPartiesMatchingTerms", ctx, terms).Return(parties, nil).Once()
	suite.mockClientRepo.On("FindClientsMatchingTerms", ctx, terms).Return(clients, nil).Once()

	var saved domain.ConflictCheck
	suite.mockConflictRepo.On("SaveConflictCheck", ctx, mock.AnythingOfType("domain.ConflictCheck")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.ConflictCheck)
		}).Return(nil).Once()

	check, err := suite.service.RunConflictCheck(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CheckConflictFound, check.Status)
	suite.Equal(2, check.ConflictCount)
	suite.Len(check.Matches, 2)
	suite.Equal(partyID, check.Matches[0].EntityID)
	suite.Equal("party", check.Matches[0].EntityKind)
	suite.Equal("john smith", check.Matches[0].Candidate)
	suite.Equal(clientID, check.Matches[1].EntityID)
	suite.Equal("client", check.Matches[1].EntityKind)
	// The persisted row carries the full disposition.
	suite.Equal(check.CheckID, saved.CheckID)
	suite.Equal(domain.CheckConflictFound, saved.Status)
}

func (suite *ConflictServiceTestSuite) TestRunConflictCheck_DistinctEntityCount() {
	ctx := context.Background()
	userID := uuid.NewString()
	partyID := uuid.NewString()
	req := dto.RunConflictCheckRequest{
		CheckType: domain.CheckNewClient,
		Names:     []string{"John Smith", "Smith"},
	}
	terms := []string{"john smith", "smith"}

	// One party hit by both terms counts once.
	parties := []domain.Party{
		{PartyID: partyID, Name: "John Smith"},
		{PartyID: partyID, Name: "John Smith"},
	}
	suite.mockPartyRepo.On("FindPartiesMatchingTerms", ctx, terms).Return(parties, nil).Once()
	suite.mockClientRepo.On("FindClientsMatchingTerms", ctx, terms).Return([]domain.Client{}, nil).Once()
	suite.mockConflictRepo.On("SaveConflictCheck", ctx, mock.AnythingOfType("domain.ConflictCheck")).Return(nil).Once()

	check, err := suite.service.RunConflictCheck(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal(1, check.ConflictCount)
	suite.Len(check.Matches, 1)
}

func (suite *ConflictServiceTestSuite) TestRunConflictCheck_EmptyNames() {
	ctx := context.Background()

	_, err := suite.service.RunConflictCheck(ctx, dto.RunConflictCheckRequest{
		CheckType: domain.CheckNewClient,
		Names:     []string{"   ", ""},
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "FindPartiesMatchingTerms", mock.Anything, mock.Anything)
	suite.mockConflictRepo.AssertNotCalled(suite.T(), "SaveConflictCheck", mock.Anything, mock.Anything)
}

func (suite *ConflictServiceTestSuite) TestRunConflictCheck_UnknownClientScope() {
	ctx := context.Background()
	clientID := uuid.NewString()

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RunConflictCheck(ctx, dto.RunConflictCheckRequest{
		CheckType: domain.CheckNewClient,
		Names:     []string{"John Smith"},
		ClientID:  clientID,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockConflictRepo.AssertNotCalled(suite.T(), "SaveConflictCheck", mock.Anything, mock.Anything)
}

func (suite *ConflictServiceTestSuite) TestRunConflictCheck_RerunWritesNewRow() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.RunConflictCheckRequest{
		CheckType: domain.CheckNewClient,
		Names:     []string{"John Smith"},
	}

	suite.mockPartyRepo.On("FindPartiesMatchingTerms", ctx, []string{"john smith"}).Return([]domain.Party{}, nil).Twice()
	suite.mockClientRepo.On("FindClientsMatchingTerms", ctx, []string{"john smith"}).Return([]domain.Client{}, nil).Twice()
	suite.mockConflictRepo.On("SaveConflictCheck", ctx, mock.AnythingOfType("domain.ConflictCheck")).Return(nil).Twice()

	first, err := suite.service.RunConflictCheck(ctx, req, userID)
	suite.Require().NoError(err)
	second, err := suite.service.RunConflictCheck(ctx, req, userID)
	suite.Require().NoError(err)

	// Each run is its own immutable audit record.
	suite.NotEqual(first.CheckID, second.CheckID)
	suite.mockConflictRepo.AssertNumberOfCalls(suite.T(), "SaveConflictCheck", 2)
}

func (suite *ConflictServiceTestSuite) TestCreateWaiver_Success() {
	ctx := context.Background()
	checkID := uuid.NewString()
	userID := uuid.NewString()
	req := dto.CreateWaiverRequest{
		WaiverType:   domain.WaiverInformedConsent,
		Parties:      []string{"John Smith"},
		WaiverText:   "Informed consent obtained in writing.",
		ObtainedFrom: "John Smith",
		ObtainedDate: time.Now().UTC(),
	}

	suite.mockConflictRepo.On("FindConflictCheckByID", ctx, checkID).Return(&domain.ConflictCheck{
		CheckID: checkID,
		Status:  domain.CheckConflictFound,
	}, nil).Once()
	suite.mockConflictRepo.On("SaveWaiver", ctx, mock.AnythingOfType("domain.ConflictWaiver")).Return(nil).Once()

	waiver, err := suite.service.CreateWaiver(ctx, checkID, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(waiver)
	suite.NotEmpty(waiver.WaiverID)
	suite.Equal(checkID, waiver.CheckID)
	suite.Equal(domain.WaiverInformedConsent, waiver.WaiverType)
	suite.mockConflictRepo.AssertExpectations(suite.T())
}

func (suite *ConflictServiceTestSuite) TestCreateWaiver_ClearCheckRejected() {
	ctx := context.Background()
	checkID := uuid.NewString()

	suite.mockConflictRepo.On("FindConflictCheckByID", ctx, checkID).Return(&domain.ConflictCheck{
		CheckID: checkID,
		Status:  domain.CheckClear,
	}, nil).Once()

	_, err := suite.service.CreateWaiver(ctx, checkID, dto.CreateWaiverRequest{
		WaiverType:   domain.WaiverInformedConsent,
		Parties:      []string{"John Smith"},
		WaiverText:   "text",
		ObtainedFrom: "John Smith",
		ObtainedDate: time.Now().UTC(),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockConflictRepo.AssertNotCalled(suite.T(), "SaveWaiver", mock.Anything, mock.Anything)
}

func (suite *ConflictServiceTestSuite) TestCreateWaiver_AlreadyWaivedRejected() {
	ctx := context.Background()
	checkID := uuid.NewString()

	suite.mockConflictRepo.On("FindConflictCheckByID", ctx, checkID).Return(&domain.ConflictCheck{
		CheckID: checkID,
		Status:  domain.CheckWaived,
	}, nil).Once()

	_, err := suite.service.CreateWaiver(ctx, checkID, dto.CreateWaiverRequest{
		WaiverType:   domain.WaiverAdvance,
		Parties:      []string{"Acme Corp"},
		WaiverText:   "text",
		ObtainedFrom: "Acme Corp",
		ObtainedDate: time.Now().UTC(),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *ConflictServiceTestSuite) TestCreateWaiver_RepoRaceSurfacesInvalidState() {
	ctx := context.Background()
	checkID := uuid.NewString()

	// The check reads as CONFLICT_FOUND but another waiver lands first; the
	// repository's guarded update reports the lost race.
	suite.mockConflictRepo.On("FindConflictCheckByID", ctx, checkID).Return(&domain.ConflictCheck{
		CheckID: checkID,
		Status:  domain.CheckConflictFound,
	}, nil).Once()
	suite.mockConflictRepo.On("SaveWaiver", ctx, mock.AnythingOfType("domain.ConflictWaiver")).Return(apperrors.ErrInvalidState).Once()

	_, err := suite.service.CreateWaiver(ctx, checkID, dto.CreateWaiverRequest{
		WaiverType:   domain.WaiverInformedConsent,
		Parties:      []string{"John Smith"},
		WaiverText:   "text",
		ObtainedFrom: "John Smith",
		ObtainedDate: time.Now().UTC(),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *ConflictServiceTestSuite) TestGetConflictCheck_NotFound() {
	ctx := context.Background()
	checkID := uuid.NewString()

	suite.mockConflictRepo.On("FindConflictCheckByID", ctx, checkID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetConflictCheck(ctx, checkID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestConflictServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConflictServiceTestSuite))
}
