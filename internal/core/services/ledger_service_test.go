package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/realty_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/core/services"
	"github.com/propfolio/realty_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransferPair(ctx context.Context, debit domain.Transaction, credit domain.Transaction) error {
	args := m.Called(ctx, debit, credit)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction, originalID string) error {
	args := m.Called(ctx, reversal, originalID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByTransferID(ctx context.Context, transferID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByChartAccount(ctx context.Context, organizationID string, chartOfAccountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, organizationID, chartOfAccountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedToken, args.Error(2)
}

// --- Mock ChartOfAccountRepository ---
type MockChartAccountRepository struct {
	mock.Mock
}

var _ portsrepo.ChartOfAccountRepositoryFacade = (*MockChartAccountRepository)(nil)

func (m *MockChartAccountRepository) FindChartAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockChartAccountRepository) FindChartAccountByCode(ctx context.Context, organizationID string, code string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockChartAccountRepository) ListChartAccounts(ctx context.Context, organizationID string, filter portsrepo.ListChartAccountsFilter) ([]domain.ChartOfAccount, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccount), args.Error(1)
}

func (m *MockChartAccountRepository) SaveChartAccount(ctx context.Context, account domain.ChartOfAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartAccountRepository) DeactivateChartAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock OrgAccountRepository ---
type MockOrgAccountRepository struct {
	mock.Mock
}

var _ portsrepo.OrgAccountRepositoryFacade = (*MockOrgAccountRepository)(nil)

func (m *MockOrgAccountRepository) FindOrgAccountByID(ctx context.Context, orgAccountID string) (*domain.OrganizationAccount, error) {
	args := m.Called(ctx, orgAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationAccount), args.Error(1)
}

func (m *MockOrgAccountRepository) ListOrgAccounts(ctx context.Context, organizationID string) ([]domain.OrganizationAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrganizationAccount), args.Error(1)
}

func (m *MockOrgAccountRepository) SaveOrgAccount(ctx context.Context, account domain.OrganizationAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockOrgAccountRepository) FindOrgAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, orgAccountIDs []string) (map[string]domain.OrganizationAccount, error) {
	args := m.Called(ctx, tx, orgAccountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.OrganizationAccount), args.Error(1)
}

func (m *MockOrgAccountRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, orgAccountID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, orgAccountID, delta, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo        *MockTransactionRepository
	mockChartRepo      *MockChartAccountRepository
	mockOrgAccountRepo *MockOrgAccountRepository
	service            portssvc.LedgerSvcFacade
	organizationID     string
	userID             string
	chartAccount       domain.ChartOfAccount
	orgAccountID       string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockChartRepo = new(MockChartAccountRepository)
	suite.mockOrgAccountRepo = new(MockOrgAccountRepository)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockChartRepo, suite.mockOrgAccountRepo)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.orgAccountID = uuid.NewString()
	suite.chartAccount = domain.ChartOfAccount{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "RENT-001",
		Name:           "Rental Income",
		Status:         domain.StatusActive,
	}
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_Success() {
	req := dto.PostTransactionRequest{
		ChartOfAccountID: suite.chartAccount.AccountID,
		Type:             "INCOME",
		Amount:           decimal.NewFromInt(1500),
		OrgAccountID:     &suite.orgAccountID,
		Comments:         "August rent unit 4B",
	}

	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, suite.chartAccount.AccountID).Return(&suite.chartAccount, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.OrganizationID == suite.organizationID &&
			txn.Type == domain.TxnIncome &&
			txn.Amount.Equal(decimal.NewFromInt(1500)) &&
			txn.Status == domain.TxnPosted &&
			txn.OrgAccountID != nil && *txn.OrgAccountID == suite.orgAccountID
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, mock.AnythingOfType("string")).Return(&domain.Transaction{
		OrganizationID: suite.organizationID,
		Type:           domain.TxnIncome,
		Amount:         decimal.NewFromInt(1500),
		Status:         domain.TxnPosted,
	}, nil).Once()

	txn, err := suite.service.PostTransaction(context.Background(), suite.organizationID, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), txn)
	assert.Equal(suite.T(), domain.TxnIncome, txn.Type)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockChartRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_NonPositiveAmount() {
	req := dto.PostTransactionRequest{
		ChartOfAccountID: suite.chartAccount.AccountID,
		Type:             "EXPENSE",
		Amount:           decimal.Zero,
	}

	txn, err := suite.service.PostTransaction(context.Background(), suite.organizationID, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_TransferTypeRejected() {
	req := dto.PostTransactionRequest{
		ChartOfAccountID: suite.chartAccount.AccountID,
		Type:             "TRANSFER_OUT",
		Amount:           decimal.NewFromInt(100),
	}

	txn, err := suite.service.PostTransaction(context.Background(), suite.organizationID, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_InactiveAccount() {
	inactive := suite.chartAccount
	inactive.Status = domain.StatusInactive
	req := dto.PostTransactionRequest{
		ChartOfAccountID: inactive.AccountID,
		Type:             "EXPENSE",
		Amount:           decimal.NewFromInt(50),
	}

	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, inactive.AccountID).Return(&inactive, nil).Once()

	txn, err := suite.service.PostTransaction(context.Background(), suite.organizationID, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAccountInactive)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_AccountFromOtherOrganization() {
	foreign := suite.chartAccount
	foreign.OrganizationID = uuid.NewString()
	req := dto.PostTransactionRequest{
		ChartOfAccountID: foreign.AccountID,
		Type:             "INCOME",
		Amount:           decimal.NewFromInt(200),
	}

	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, foreign.AccountID).Return(&foreign, nil).Once()

	txn, err := suite.service.PostTransaction(context.Background(), suite.organizationID, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_InsufficientFundsPropagated() {
	req := dto.PostTransactionRequest{
		ChartOfAccountID: suite.chartAccount.AccountID,
		Type:             "EXPENSE",
		Amount:           decimal.NewFromInt(9999),
		OrgAccountID:     &suite.orgAccountID,
	}

	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, suite.chartAccount.AccountID).Return(&suite.chartAccount, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.Anything).Return(apperrors.ErrInsufficientFunds).Once()

	txn, err := suite.service.PostTransaction(context.Background(), suite.organizationID, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_Success() {
	originalID := uuid.NewString()
	original := domain.Transaction{
		TransactionID:    originalID,
		OrganizationID:   suite.organizationID,
		ChartOfAccountID: suite.chartAccount.AccountID,
		OrgAccountID:     &suite.orgAccountID,
		Type:             domain.TxnIncome,
		Amount:           decimal.NewFromInt(1500),
		Status:           domain.TxnPosted,
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, originalID).Return(&original, nil).Once()
	suite.mockTxnRepo.On("SaveReversal", mock.Anything, mock.MatchedBy(func(rev domain.Transaction) bool {
		return rev.Type == domain.TxnAdjustmentDebit &&
			rev.Amount.Equal(original.Amount) &&
			rev.OriginalTransactionID != nil && *rev.OriginalTransactionID == originalID
	}), originalID).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, mock.AnythingOfType("string")).Return(&domain.Transaction{
		OrganizationID:        suite.organizationID,
		Type:                  domain.TxnAdjustmentDebit,
		Amount:                decimal.NewFromInt(1500),
		OriginalTransactionID: &originalID,
	}, nil).Once()

	rev, err := suite.service.ReverseTransaction(context.Background(), suite.organizationID, originalID, dto.ReverseTransactionRequest{Reason: "duplicate entry"}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), rev)
	assert.Equal(suite.T(), domain.TxnAdjustmentDebit, rev.Type)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_AlreadyReversed() {
	originalID := uuid.NewString()
	reversingID := uuid.NewString()
	original := domain.Transaction{
		TransactionID:          originalID,
		OrganizationID:         suite.organizationID,
		Type:                   domain.TxnExpense,
		Amount:                 decimal.NewFromInt(75),
		Status:                 domain.TxnReversed,
		ReversingTransactionID: &reversingID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, originalID).Return(&original, nil).Once()

	rev, err := suite.service.ReverseTransaction(context.Background(), suite.organizationID, originalID, dto.ReverseTransactionRequest{Reason: "oops"}, suite.userID)

	assert.Nil(suite.T(), rev)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_OfAReversal() {
	originalID := uuid.NewString()
	someEarlierID := uuid.NewString()
	original := domain.Transaction{
		TransactionID:         originalID,
		OrganizationID:        suite.organizationID,
		Type:                  domain.TxnAdjustmentDebit,
		Amount:                decimal.NewFromInt(75),
		Status:                domain.TxnPosted,
		OriginalTransactionID: &someEarlierID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, originalID).Return(&original, nil).Once()

	rev, err := suite.service.ReverseTransaction(context.Background(), suite.organizationID, originalID, dto.ReverseTransactionRequest{Reason: "no"}, suite.userID)

	assert.Nil(suite.T(), rev)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestGetTransactionByID_OtherOrganization() {
	txnID := uuid.NewString()
	txn := domain.Transaction{
		TransactionID:  txnID,
		OrganizationID: uuid.NewString(),
		Type:           domain.TxnIncome,
		Amount:         decimal.NewFromInt(10),
	}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txnID).Return(&txn, nil).Once()

	got, err := suite.service.GetTransactionByID(context.Background(), suite.organizationID, txnID)

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestListAccountTransactions_Success() {
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), OrganizationID: suite.organizationID, Type: domain.TxnIncome, Amount: decimal.NewFromInt(100)},
		{TransactionID: uuid.NewString(), OrganizationID: suite.organizationID, Type: domain.TxnExpense, Amount: decimal.NewFromInt(40)},
	}

	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, suite.chartAccount.AccountID).Return(&suite.chartAccount, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByChartAccount", mock.Anything, suite.organizationID, suite.chartAccount.AccountID, 20, (*string)(nil)).Return(txns, "next-page-token", nil).Once()

	resp, err := suite.service.ListAccountTransactions(context.Background(), suite.organizationID, suite.chartAccount.AccountID, dto.ListTransactionsParams{})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Transactions, 2)
	assert.NotNil(suite.T(), resp.NextToken)
	assert.Equal(suite.T(), "next-page-token", *resp.NextToken)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
