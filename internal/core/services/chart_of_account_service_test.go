package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/core/services"
	"github.com/propfolio/realty_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountGroupRepository ---
type MockAccountGroupRepository struct {
	mock.Mock
}

var _ portsrepo.AccountGroupRepositoryFacade = (*MockAccountGroupRepository)(nil)

func (m *MockAccountGroupRepository) FindAccountGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}

func (m *MockAccountGroupRepository) ListAccountGroups(ctx context.Context, organizationID string, accountType *domain.AccountType) ([]domain.AccountGroup, error) {
	args := m.Called(ctx, organizationID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}

func (m *MockAccountGroupRepository) SaveAccountGroup(ctx context.Context, group domain.AccountGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockAccountGroupRepository) RenameAccountGroup(ctx context.Context, groupID string, name string, userID string, now time.Time) error {
	args := m.Called(ctx, groupID, name, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ChartOfAccountServiceTestSuite struct {
	suite.Suite
	mockChartRepo      *MockChartAccountRepository
	mockGroupRepo      *MockAccountGroupRepository
	mockOrgAccountRepo *MockOrgAccountRepository
	service            portssvc.ChartOfAccountSvcFacade
	organizationID     string
	userID             string
	group              domain.AccountGroup
}

func (suite *ChartOfAccountServiceTestSuite) SetupTest() {
	suite.mockChartRepo = new(MockChartAccountRepository)
	suite.mockGroupRepo = new(MockAccountGroupRepository)
	suite.mockOrgAccountRepo = new(MockOrgAccountRepository)
	suite.service = services.NewChartOfAccountService(suite.mockChartRepo, suite.mockGroupRepo, suite.mockOrgAccountRepo)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.group = domain.AccountGroup{
		GroupID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		Name:           "Income",
		AccountType:    domain.Income,
	}
}

func (suite *ChartOfAccountServiceTestSuite) TestCreateAccount_Success() {
	req := dto.CreateChartAccountRequest{
		Code:           "RENT-4B",
		Name:           "Rent Unit 4B",
		AccountGroupID: suite.group.GroupID,
	}

	suite.mockGroupRepo.On("FindAccountGroupByID", mock.Anything, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockChartRepo.On("SaveChartAccount", mock.Anything, mock.MatchedBy(func(a domain.ChartOfAccount) bool {
		return a.OrganizationID == suite.organizationID &&
			a.Code == "RENT-4B" &&
			a.Status == domain.StatusActive &&
			!a.IsSystemGenerated
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(context.Background(), suite.organizationID, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), account)
	assert.Equal(suite.T(), "RENT-4B", account.Code)
	suite.mockChartRepo.AssertExpectations(suite.T())
}

func (suite *ChartOfAccountServiceTestSuite) TestCreateAccount_BlankCode() {
	req := dto.CreateChartAccountRequest{
		Code:           "   ",
		Name:           "No Code",
		AccountGroupID: suite.group.GroupID,
	}

	account, err := suite.service.CreateAccount(context.Background(), suite.organizationID, req, suite.userID)

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockChartRepo.AssertNotCalled(suite.T(), "SaveChartAccount", mock.Anything, mock.Anything)
}

func (suite *ChartOfAccountServiceTestSuite) TestCreateAccount_GroupFromOtherOrganization() {
	foreignGroup := suite.group
	foreignGroup.OrganizationID = uuid.NewString()
	req := dto.CreateChartAccountRequest{
		Code:           "MISC-1",
		Name:           "Misc",
		AccountGroupID: foreignGroup.GroupID,
	}

	suite.mockGroupRepo.On("FindAccountGroupByID", mock.Anything, foreignGroup.GroupID).Return(&foreignGroup, nil).Once()

	account, err := suite.service.CreateAccount(context.Background(), suite.organizationID, req, suite.userID)

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *ChartOfAccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	req := dto.CreateChartAccountRequest{
		Code:           "RENT-4B",
		Name:           "Rent Unit 4B",
		AccountGroupID: suite.group.GroupID,
	}

	suite.mockGroupRepo.On("FindAccountGroupByID", mock.Anything, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockChartRepo.On("SaveChartAccount", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(context.Background(), suite.organizationID, req, suite.userID)

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
}

func (suite *ChartOfAccountServiceTestSuite) TestListAccounts_InvalidSortField() {
	params := dto.ListChartAccountsParams{SortBy: "balance", SortDir: "asc"}

	accounts, err := suite.service.ListAccounts(context.Background(), suite.organizationID, params)

	assert.Nil(suite.T(), accounts)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockChartRepo.AssertNotCalled(suite.T(), "ListChartAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChartOfAccountServiceTestSuite) TestListAccounts_MapsSortFieldAndDirection() {
	params := dto.ListChartAccountsParams{SortBy: "createdDate", SortDir: "desc", Limit: 10}

	suite.mockChartRepo.On("ListChartAccounts", mock.Anything, suite.organizationID, mock.MatchedBy(func(f portsrepo.ListChartAccountsFilter) bool {
		return f.SortBy == "created_at" && f.SortDesc && f.Limit == 10
	})).Return([]domain.ChartOfAccount{}, nil).Once()

	accounts, err := suite.service.ListAccounts(context.Background(), suite.organizationID, params)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), accounts)
	suite.mockChartRepo.AssertExpectations(suite.T())
}

func (suite *ChartOfAccountServiceTestSuite) TestDeactivateAccount_SystemAccountRejected() {
	system := domain.ChartOfAccount{
		AccountID:         uuid.NewString(),
		OrganizationID:    suite.organizationID,
		Code:              "SYS-ASSET",
		IsSystemGenerated: true,
		Status:            domain.StatusActive,
	}

	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, system.AccountID).Return(&system, nil).Once()

	err := suite.service.DeactivateAccount(context.Background(), suite.organizationID, system.AccountID, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrImmutableAccount)
	suite.mockChartRepo.AssertNotCalled(suite.T(), "DeactivateChartAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChartOfAccountServiceTestSuite) TestDeactivateAccount_Success() {
	account := domain.ChartOfAccount{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "OLD-1",
		Status:         domain.StatusActive,
	}

	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()
	suite.mockChartRepo.On("DeactivateChartAccount", mock.Anything, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(context.Background(), suite.organizationID, account.AccountID, suite.userID)

	assert.NoError(suite.T(), err)
	suite.mockChartRepo.AssertExpectations(suite.T())
}

func TestChartOfAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartOfAccountServiceTestSuite))
}
