package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"
)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) ApplyAdminAction(ctx context.Context, req dto.UpdateWalletRequest, requestingUserID string) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Error(1)
}

func (m *MockWalletService) UpdatePermissions(ctx context.Context, req dto.WalletPermissionsRequest, requestingUserID string) error {
	args := m.Called(ctx, req, requestingUserID)
	return args.Error(0)
}

func (m *MockWalletService) GetWallet(ctx context.Context, clientID string, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, clientID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockWalletService) ListTransactions(ctx context.Context, clientID string, params dto.ListWalletTransactionsParams, requestingUserID string) (*dto.ListWalletTransactionsResponse, error) {
	args := m.Called(ctx, clientID, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListWalletTransactionsResponse), args.Error(1)
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

// --- Test Suite ---
type WalletHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockWalletService *MockWalletService
	jwtSecret         string
}

func (suite *WalletHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "billing-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockWalletService = new(MockWalletService)

	v1 := suite.router.Group("/api/v1")
	registerWalletRoutes(v1, suite.mockWalletService)
}

func (suite *WalletHandlerTestSuite) TestUpdateWallet_Success() {
	adminID := uuid.NewString()
	clientID := uuid.NewString()
	amount := decimal.NewFromInt(500)

	expectedTxn := &domain.WalletTransaction{
		TransactionID:  uuid.NewString(),
		UserID:         clientID,
		Type:           domain.TxnAdminCredit,
		AmountDeducted: amount.Neg(),
		CreatedBy:      adminID,
	}
	suite.mockWalletService.On("ApplyAdminAction", mock.Anything, mock.MatchedBy(func(req dto.UpdateWalletRequest) bool {
		return req.ClientID == clientID && req.Action == "add" && req.Amount != nil && req.Amount.Equal(amount)
	}), adminID).Return(expectedTxn, nil).Once()

	body, _ := json.Marshal(dto.UpdateWalletRequest{
		ClientID: clientID,
		Action:   "add",
		Amount:   &amount,
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/wallets/update", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.Bytes())
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestUpdateWallet_InvalidActionRejectedByBinding() {
	adminID := uuid.NewString()

	body := []byte(`{"clientId":"` + uuid.NewString() + `","action":"transfer"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/wallets/update", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWalletService.AssertNotCalled(suite.T(), "ApplyAdminAction")
}

func (suite *WalletHandlerTestSuite) TestUpdateWallet_ForbiddenForNonAdmin() {
	employeeID := uuid.NewString()
	amount := decimal.NewFromInt(10)

	suite.mockWalletService.On("ApplyAdminAction", mock.Anything, mock.Anything, employeeID).
		Return(nil, apperrors.ErrForbidden).Once()

	body, _ := json.Marshal(dto.UpdateWalletRequest{
		ClientID: uuid.NewString(),
		Action:   "deduct",
		Amount:   &amount,
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/wallets/update", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(employeeID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *WalletHandlerTestSuite) TestUpdatePermissions_NoContent() {
	adminID := uuid.NewString()
	clientID := uuid.NewString()

	suite.mockWalletService.On("UpdatePermissions", mock.Anything, mock.MatchedBy(func(req dto.WalletPermissionsRequest) bool {
		return req.ClientID == clientID && req.Allow
	}), adminID).Return(nil).Once()

	body, _ := json.Marshal(dto.WalletPermissionsRequest{ClientID: clientID, Allow: true})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/wallets/permissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestGetWallet_Success() {
	clientID := uuid.NewString()

	client := &domain.User{
		UserID:        clientID,
		Role:          domain.RoleClient,
		WalletBalance: decimal.NewFromInt(3350),
	}
	suite.mockWalletService.On("GetWallet", mock.Anything, clientID, clientID).Return(client, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/"+clientID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(clientID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(clientID, resp.UserID)
	suite.True(resp.WalletBalance.Equal(decimal.NewFromInt(3350)))
}

func (suite *WalletHandlerTestSuite) TestGetWallet_Unauthenticated() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/"+uuid.NewString(), nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *WalletHandlerTestSuite) TestListTransactions_Success() {
	adminID := uuid.NewString()
	clientID := uuid.NewString()

	resp := &dto.ListWalletTransactionsResponse{
		Transactions: []dto.WalletTransactionResponse{
			{TransactionID: uuid.NewString(), UserID: clientID, Type: "RECEIPT_DEDUCTION", AmountDeducted: decimal.NewFromInt(1650)},
		},
	}
	suite.mockWalletService.On("ListTransactions", mock.Anything, clientID, mock.AnythingOfType("dto.ListWalletTransactionsParams"), adminID).
		Return(resp, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/"+clientID+"/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var got dto.ListWalletTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got.Transactions, 1)
}

func TestWalletHandler(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}
