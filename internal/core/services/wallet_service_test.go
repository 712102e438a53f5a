package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/core/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.WalletSvcFacade

	adminID  string
	clientID string
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewWalletService(suite.mockWalletRepo, suite.mockUserRepo)

	suite.adminID = uuid.NewString()
	suite.clientID = uuid.NewString()
}

func (suite *WalletServiceTestSuite) admin() *domain.User {
	return &domain.User{UserID: suite.adminID, Role: domain.RoleAdmin}
}

func (suite *WalletServiceTestSuite) client(balance decimal.Decimal) *domain.User {
	return &domain.User{UserID: suite.clientID, Role: domain.RoleClient, WalletBalance: balance}
}

func (suite *WalletServiceTestSuite) TestApplyAdminAction_AddCreditsWallet() {
	ctx := context.Background()
	amount := decimal.NewFromInt(500)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(suite.client(decimal.NewFromInt(100)), nil).Once()

	expectedTxn := &domain.WalletTransaction{
		TransactionID:  uuid.NewString(),
		UserID:         suite.clientID,
		Type:           domain.TxnAdminCredit,
		AmountDeducted: amount.Neg(),
	}
	suite.mockWalletRepo.On("ApplyAdminAction", ctx, suite.clientID, domain.WalletActionAdd, amount, "topup", suite.adminID, mock.AnythingOfType("time.Time")).
		Return(expectedTxn, nil).Once()

	txn, err := suite.service.ApplyAdminAction(ctx, dto.UpdateWalletRequest{
		ClientID: suite.clientID,
		Action:   "add",
		Amount:   &amount,
		Notes:    "topup",
	}, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnAdminCredit, txn.Type)
	suite.True(txn.AmountDeducted.Equal(decimal.NewFromInt(-500)))
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestApplyAdminAction_SettleIgnoresSubmittedAmount() {
	ctx := context.Background()
	// Settle clears whatever is owed; the repository computes the amount from
	// the locked balance, so the service must pass zero.
	submitted := decimal.NewFromInt(99999)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(suite.client(decimal.NewFromInt(-450)), nil).Once()

	expectedTxn := &domain.WalletTransaction{
		TransactionID:  uuid.NewString(),
		UserID:         suite.clientID,
		Type:           domain.TxnSettlement,
		AmountDeducted: decimal.NewFromInt(-450),
	}
	suite.mockWalletRepo.On("ApplyAdminAction", ctx, suite.clientID, domain.WalletActionSettle, decimal.Zero, "", suite.adminID, mock.AnythingOfType("time.Time")).
		Return(expectedTxn, nil).Once()

	txn, err := suite.service.ApplyAdminAction(ctx, dto.UpdateWalletRequest{
		ClientID: suite.clientID,
		Action:   "settle",
		Amount:   &submitted,
	}, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnSettlement, txn.Type)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestApplyAdminAction_NonAdminForbidden() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).
		Return(&domain.User{UserID: employeeID, Role: domain.RoleGeneralEmployee}, nil).Once()

	amount := decimal.NewFromInt(10)
	txn, err := suite.service.ApplyAdminAction(ctx, dto.UpdateWalletRequest{
		ClientID: suite.clientID,
		Action:   "add",
		Amount:   &amount,
	}, employeeID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(txn)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ApplyAdminAction")
}

func (suite *WalletServiceTestSuite) TestApplyAdminAction_UnknownActionRejected() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()

	txn, err := suite.service.ApplyAdminAction(ctx, dto.UpdateWalletRequest{
		ClientID: suite.clientID,
		Action:   "transfer",
	}, suite.adminID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
}

func (suite *WalletServiceTestSuite) TestApplyAdminAction_DeductRequiresPositiveAmount() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(suite.client(decimal.NewFromInt(100)), nil).Once()

	negative := decimal.NewFromInt(-5)
	txn, err := suite.service.ApplyAdminAction(ctx, dto.UpdateWalletRequest{
		ClientID: suite.clientID,
		Action:   "deduct",
		Amount:   &negative,
	}, suite.adminID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ApplyAdminAction")
}

func (suite *WalletServiceTestSuite) TestApplyAdminAction_DeductBeyondBalanceRejected() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(suite.client(decimal.NewFromInt(100)), nil).Once()

	amount := decimal.NewFromInt(500)
	txn, err := suite.service.ApplyAdminAction(ctx, dto.UpdateWalletRequest{
		ClientID: suite.clientID,
		Action:   "deduct",
		Amount:   &amount,
	}, suite.adminID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ApplyAdminAction")
}

func (suite *WalletServiceTestSuite) TestApplyAdminAction_DeductOverdraftAllowedByPermission() {
	ctx := context.Background()
	client := suite.client(decimal.NewFromInt(100))
	client.AllowNegativeBalance = true

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(client, nil).Once()

	amount := decimal.NewFromInt(500)
	expectedTxn := &domain.WalletTransaction{
		TransactionID:  uuid.NewString(),
		UserID:         suite.clientID,
		Type:           domain.TxnAdminDebit,
		AmountDeducted: amount,
	}
	suite.mockWalletRepo.On("ApplyAdminAction", ctx, suite.clientID, domain.WalletActionDeduct, amount, "", suite.adminID, mock.AnythingOfType("time.Time")).
		Return(expectedTxn, nil).Once()

	txn, err := suite.service.ApplyAdminAction(ctx, dto.UpdateWalletRequest{
		ClientID: suite.clientID,
		Action:   "deduct",
		Amount:   &amount,
	}, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnAdminDebit, txn.Type)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestApplyAdminAction_DeductExpiredPermissionRejected() {
	ctx := context.Background()
	expired := time.Now().UTC().Add(-24 * time.Hour)
	client := suite.client(decimal.NewFromInt(100))
	client.AllowNegativeBalance = true
	client.NegativeBalanceAllowedUntil = &expired

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(client, nil).Once()

	amount := decimal.NewFromInt(500)
	txn, err := suite.service.ApplyAdminAction(ctx, dto.UpdateWalletRequest{
		ClientID: suite.clientID,
		Action:   "deduct",
		Amount:   &amount,
	}, suite.adminID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "ApplyAdminAction")
}

func (suite *WalletServiceTestSuite) TestApplyAdminAction_TargetMustBeClient() {
	ctx := context.Background()
	staffID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, staffID).
		Return(&domain.User{UserID: staffID, Role: domain.RoleGeneralEmployee}, nil).Once()

	amount := decimal.NewFromInt(10)
	txn, err := suite.service.ApplyAdminAction(ctx, dto.UpdateWalletRequest{
		ClientID: staffID,
		Action:   "add",
		Amount:   &amount,
	}, suite.adminID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
}

func (suite *WalletServiceTestSuite) TestUpdatePermissions_Success() {
	ctx := context.Background()
	until := time.Now().UTC().Add(30 * 24 * time.Hour)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(suite.client(decimal.Zero), nil).Once()
	suite.mockWalletRepo.On("UpdateWalletPermissions", ctx, suite.clientID, true, &until, suite.adminID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.UpdatePermissions(ctx, dto.WalletPermissionsRequest{
		ClientID: suite.clientID,
		Allow:    true,
		Until:    &until,
	}, suite.adminID)

	suite.Require().NoError(err)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestUpdatePermissions_RevokeWithDeadlineRejected() {
	ctx := context.Background()
	until := time.Now().UTC().Add(time.Hour)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(suite.client(decimal.Zero), nil).Once()

	err := suite.service.UpdatePermissions(ctx, dto.WalletPermissionsRequest{
		ClientID: suite.clientID,
		Allow:    false,
		Until:    &until,
	}, suite.adminID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "UpdateWalletPermissions")
}

func (suite *WalletServiceTestSuite) TestGetWallet_ClientReadsOwnWallet() {
	ctx := context.Background()
	client := suite.client(decimal.NewFromInt(3350))

	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(client, nil).Twice()

	got, err := suite.service.GetWallet(ctx, suite.clientID, suite.clientID)

	suite.Require().NoError(err)
	suite.True(got.WalletBalance.Equal(decimal.NewFromInt(3350)))
}

func (suite *WalletServiceTestSuite) TestGetWallet_ClientCannotReadOthers() {
	ctx := context.Background()
	otherClientID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(suite.client(decimal.Zero), nil).Once()

	got, err := suite.service.GetWallet(ctx, otherClientID, suite.clientID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

func (suite *WalletServiceTestSuite) TestListTransactions_DefaultsLimit() {
	ctx := context.Background()
	client := suite.client(decimal.Zero)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(suite.admin(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).Return(client, nil).Once()

	txns := []domain.WalletTransaction{
		{TransactionID: uuid.NewString(), UserID: suite.clientID, Type: domain.TxnReceiptDeduction, AmountDeducted: decimal.NewFromInt(1650)},
	}
	suite.mockWalletRepo.On("ListTransactionsByUserID", ctx, suite.clientID, 20, (*string)(nil)).
		Return(txns, nil, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.clientID, dto.ListWalletTransactionsParams{}, suite.adminID)

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Equal("RECEIPT_DEDUCTION", resp.Transactions[0].Type)
	suite.Nil(resp.NextToken)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
