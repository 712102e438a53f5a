package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockUserRepo      *MockUserRepository
	service           portssvc.ReportingSvcFacade

	adminID  string
	clientID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockUserRepo)

	suite.adminID = uuid.NewString()
	suite.clientID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestGetBranchDailySummaries_AdminOnly() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).
		Return(&domain.User{UserID: employeeID, Role: domain.RoleGeneralEmployee}, nil).Once()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	summaries, err := suite.service.GetBranchDailySummaries(ctx, uuid.NewString(), from, to, employeeID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(summaries)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetBranchDailySummaries")
}

func (suite *ReportingServiceTestSuite) TestGetBranchDailySummaries_InvertedRangeRejected() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).
		Return(&domain.User{UserID: suite.adminID, Role: domain.RoleAdmin}, nil).Once()

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -3)
	_, err := suite.service.GetBranchDailySummaries(ctx, uuid.NewString(), from, to, suite.adminID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestGetWalletStatement_DerivesBalancesFromLedger() {
	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 31)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).
		Return(&domain.User{UserID: suite.adminID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.clientID).
		Return(&domain.User{UserID: suite.clientID, Role: domain.RoleClient}, nil).Once()

	// Net -5000 deducted before the window means 5000 was credited on balance.
	suite.mockReportingRepo.On("SumWalletDeductionsBefore", ctx, suite.clientID, from).
		Return(decimal.NewFromInt(-5000), nil).Once()

	txns := []domain.WalletTransaction{
		{Type: domain.TxnReceiptDeduction, AmountDeducted: decimal.NewFromInt(1650)},
		{Type: domain.TxnAdminCredit, AmountDeducted: decimal.NewFromInt(-1000)},
	}
	suite.mockReportingRepo.On("FindWalletTransactionsInRange", ctx, suite.clientID, from, to).
		Return(txns, nil).Once()

	statement, err := suite.service.GetWalletStatement(ctx, suite.clientID, from, to, suite.adminID)

	suite.Require().NoError(err)
	suite.True(statement.OpeningBalance.Equal(decimal.NewFromInt(5000)))
	suite.True(statement.ClosingBalance.Equal(decimal.NewFromInt(4350)))
	suite.Len(statement.Transactions, 2)
}

func (suite *ReportingServiceTestSuite) TestGetWalletStatement_TargetMustBeClient() {
	ctx := context.Background()
	staffID := uuid.NewString()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).
		Return(&domain.User{UserID: suite.adminID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, staffID).
		Return(&domain.User{UserID: staffID, Role: domain.RoleGeneralEmployee}, nil).Once()

	statement, err := suite.service.GetWalletStatement(ctx, staffID, from, to, suite.adminID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(statement)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
