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

	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/dto"
	"github.com/propfolio/realty_ledger/internal/handlers"
	"github.com/propfolio/realty_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

// --- Mock AccountGroupService ---
type MockAccountGroupService struct {
	mock.Mock
}

func (m *MockAccountGroupService) CreateGroup(ctx context.Context, organizationID string, req dto.CreateAccountGroupRequest, creatorUserID string) (*domain.AccountGroup, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}
func (m *MockAccountGroupService) RenameGroup(ctx context.Context, organizationID string, groupID string, req dto.RenameAccountGroupRequest, userID string) (*domain.AccountGroup, error) {
	args := m.Called(ctx, organizationID, groupID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}
func (m *MockAccountGroupService) ListGroups(ctx context.Context, organizationID string, params dto.ListAccountGroupsParams) ([]domain.AccountGroup, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}

var _ portssvc.AccountGroupSvcFacade = (*MockAccountGroupService)(nil)

// --- Mock ChartAccountService ---
type MockChartAccountService struct {
	mock.Mock
}

func (m *MockChartAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateChartAccountRequest, creatorUserID string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}
func (m *MockChartAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}
func (m *MockChartAccountService) ListAccounts(ctx context.Context, organizationID string, params dto.ListChartAccountsParams) ([]domain.ChartOfAccount, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccount), args.Error(1)
}
func (m *MockChartAccountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}

var _ portssvc.ChartOfAccountSvcFacade = (*MockChartAccountService)(nil)

// --- Mock OrgAccountService ---
type MockOrgAccountService struct {
	mock.Mock
}

func (m *MockOrgAccountService) CreateOrgAccount(ctx context.Context, organizationID string, req dto.CreateOrgAccountRequest, creatorUserID string) (*domain.OrganizationAccount, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationAccount), args.Error(1)
}
func (m *MockOrgAccountService) GetBalance(ctx context.Context, organizationID string, orgAccountID string) (*dto.BalanceResponse, error) {
	args := m.Called(ctx, organizationID, orgAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BalanceResponse), args.Error(1)
}
func (m *MockOrgAccountService) ListOrgAccounts(ctx context.Context, organizationID string) ([]domain.OrganizationAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrganizationAccount), args.Error(1)
}

var _ portssvc.OrgAccountSvcFacade = (*MockOrgAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) PostTransaction(ctx context.Context, organizationID string, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ReverseTransaction(ctx context.Context, organizationID string, transactionID string, req dto.ReverseTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) GetTransactionByID(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListAccountTransactions(ctx context.Context, organizationID string, chartOfAccountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, organizationID, chartOfAccountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) TransferFunds(ctx context.Context, organizationID string, req dto.TransferFundsRequest, userID string) (*dto.TransferResponse, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransferResponse), args.Error(1)
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) QueryByDateRange(ctx context.Context, organizationID string, params dto.QueryByDateRangeParams) (*dto.QueryByDateRangeResponse, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QueryByDateRangeResponse), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
	orgID             string
	userID            string
}

// generateTestToken creates a signed JWT carrying the acting user and org claims.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID, orgID string) string {
	claims := struct {
		jwt.RegisteredClaims
		OrganizationID string `json:"orgID"`
	}{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "realty-ledger-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		OrganizationID: orgID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockLedgerService = new(MockLedgerService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}
	services := &portssvc.ServiceContainer{
		Organization: new(MockOrganizationService),
		AccountGroup: new(MockAccountGroupService),
		ChartAccount: new(MockChartAccountService),
		OrgAccount:   new(MockOrgAccountService),
		Ledger:       suite.mockLedgerService,
		Transfer:     new(MockTransferService),
		Reporting:    new(MockReportingService),
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *TransactionHandlerTestSuite) performRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestPostTransaction_Success() {
	chartAccountID := uuid.NewString()
	orgAccountID := uuid.NewString()
	reqBody := dto.PostTransactionRequest{
		ChartOfAccountID: chartAccountID,
		Type:             "EXPENSE",
		Amount:           decimal.NewFromInt(250),
		OrgAccountID:     &orgAccountID,
		Comments:         "Plumbing repair",
	}
	running := decimal.NewFromInt(750)
	expected := &domain.Transaction{
		TransactionID:    uuid.NewString(),
		OrganizationID:   suite.orgID,
		ChartOfAccountID: chartAccountID,
		OrgAccountID:     &orgAccountID,
		Type:             domain.TxnExpense,
		Amount:           decimal.NewFromInt(250),
		Comments:         "Plumbing repair",
		Status:           domain.TxnPosted,
		TransactionDate:  time.Now().UTC(),
		RunningBalance:   &running,
	}

	suite.mockLedgerService.On("PostTransaction", mock.Anything, suite.orgID, reqBody, suite.userID).
		Return(expected, nil).Once()

	token := suite.generateTestToken(suite.userID, suite.orgID)
	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/transactions", suite.orgID), reqBody, token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.Equal(domain.TxnExpense, resp.Type)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(250)))
	suite.Require().NotNil(resp.RunningBalance)
	suite.True(resp.RunningBalance.Equal(running))
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_InsufficientFunds() {
	orgAccountID := uuid.NewString()
	reqBody := dto.PostTransactionRequest{
		ChartOfAccountID: uuid.NewString(),
		Type:             "EXPENSE",
		Amount:           decimal.NewFromInt(10000),
		OrgAccountID:     &orgAccountID,
	}

	suite.mockLedgerService.On("PostTransaction", mock.Anything, suite.orgID, reqBody, suite.userID).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	token := suite.generateTestToken(suite.userID, suite.orgID)
	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/transactions", suite.orgID), reqBody, token)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_Contention() {
	reqBody := dto.PostTransactionRequest{
		ChartOfAccountID: uuid.NewString(),
		Type:             "INCOME",
		Amount:           decimal.NewFromInt(100),
	}

	suite.mockLedgerService.On("PostTransaction", mock.Anything, suite.orgID, reqBody, suite.userID).
		Return(nil, apperrors.ErrContention).Once()

	token := suite.generateTestToken(suite.userID, suite.orgID)
	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/transactions", suite.orgID), reqBody, token)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_InvalidType_FailsBinding() {
	reqBody := map[string]any{
		"chartOfAccountID": uuid.NewString(),
		"type":             "NOT_A_TYPE",
		"amount":           "100",
	}

	token := suite.generateTestToken(suite.userID, suite.orgID)
	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/transactions", suite.orgID), reqBody, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "PostTransaction")
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_NoToken_Unauthorized() {
	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/transactions", suite.orgID), nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "PostTransaction")
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_ForeignOrgPath_Forbidden() {
	reqBody := dto.PostTransactionRequest{
		ChartOfAccountID: uuid.NewString(),
		Type:             "INCOME",
		Amount:           decimal.NewFromInt(100),
	}

	token := suite.generateTestToken(suite.userID, suite.orgID)
	otherOrgID := uuid.NewString()
	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/transactions", otherOrgID), reqBody, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "PostTransaction")
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	transactionID := uuid.NewString()
	suite.mockLedgerService.On("GetTransactionByID", mock.Anything, suite.orgID, transactionID).
		Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(suite.userID, suite.orgID)
	w := suite.performRequest(http.MethodGet, fmt.Sprintf("/api/v1/organizations/%s/transactions/%s", suite.orgID, transactionID), nil, token)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestReverseTransaction_Success() {
	originalID := uuid.NewString()
	reqBody := dto.ReverseTransactionRequest{Reason: "duplicate entry"}
	reversal := &domain.Transaction{
		TransactionID:         uuid.NewString(),
		OrganizationID:        suite.orgID,
		ChartOfAccountID:      uuid.NewString(),
		Type:                  domain.TxnAdjustmentDebit,
		Amount:                decimal.NewFromInt(250),
		Status:                domain.TxnPosted,
		OriginalTransactionID: &originalID,
	}

	suite.mockLedgerService.On("ReverseTransaction", mock.Anything, suite.orgID, originalID, reqBody, suite.userID).
		Return(reversal, nil).Once()

	token := suite.generateTestToken(suite.userID, suite.orgID)
	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/transactions/%s/reverse", suite.orgID, originalID), reqBody, token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.OriginalTransactionID)
	suite.Equal(originalID, *resp.OriginalTransactionID)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestReverseTransaction_AlreadyReversed() {
	originalID := uuid.NewString()
	reqBody := dto.ReverseTransactionRequest{Reason: "second attempt"}

	suite.mockLedgerService.On("ReverseTransaction", mock.Anything, suite.orgID, originalID, reqBody, suite.userID).
		Return(nil, fmt.Errorf("transaction %s already reversed: %w", originalID, apperrors.ErrConflict)).Once()

	token := suite.generateTestToken(suite.userID, suite.orgID)
	w := suite.performRequest(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/transactions/%s/reverse", suite.orgID, originalID), reqBody, token)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
