package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/core/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/platform/config"
)

type EstimateServiceTestSuite struct {
	suite.Suite
	mockEstimateRepo *MockEstimateRepository
	mockUserRepo     *MockUserRepository
	mockBranchRepo   *MockBranchRepository
	service          portssvc.EstimateSvcFacade

	branchID string
}

func (suite *EstimateServiceTestSuite) SetupTest() {
	suite.mockEstimateRepo = new(MockEstimateRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	cfg := &config.Config{DefaultBranchTimezone: "UTC"}
	suite.service = services.NewEstimateService(suite.mockEstimateRepo, suite.mockUserRepo, suite.mockBranchRepo, cfg)

	suite.branchID = uuid.NewString()
}

func (suite *EstimateServiceTestSuite) TestCreateEstimate_Success() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	employee := &domain.User{UserID: employeeID, Role: domain.RoleGeneralEmployee, BranchID: suite.branchID}

	req := dto.CreateEstimateRequest{
		CustomerData: dto.CustomerData{Name: "Prospective Patient"},
		Items: []dto.DocumentItemRequest{
			{Name: "MRI Brain", MRP: decimal.NewFromInt(6500), Discount: decimal.NewFromInt(15)},
			{Name: "Vitamin D", MRP: decimal.NewFromInt(1400)},
		},
		TotalMRP:            decimal.NewFromInt(7900),
		AmountAfterDiscount: decimal.NewFromInt(6925),
		AmountFinal:         decimal.NewFromInt(6925),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).Return(employee, nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branchID).
		Return(&domain.Branch{BranchID: suite.branchID, Timezone: "UTC"}, nil).Once()

	suite.mockEstimateRepo.On("SaveEstimate", ctx,
		mock.MatchedBy(func(e domain.Estimate) bool {
			return e.BranchID == suite.branchID && e.CreatedBy == employeeID
		}),
		mock.MatchedBy(func(items []domain.EstimateItem) bool {
			return len(items) == 2 && items[0].Position == 1 && items[1].Position == 2
		}),
		mock.AnythingOfType("domain.CustomerInput"),
	).Return(&domain.Estimate{EstimateID: uuid.NewString(), EstimateNumber: 88, BranchID: suite.branchID}, nil).Once()

	estimate, err := suite.service.CreateEstimate(ctx, req, employeeID)

	suite.Require().NoError(err)
	suite.Equal(int64(88), estimate.EstimateNumber)
	suite.mockEstimateRepo.AssertExpectations(suite.T())
}

func (suite *EstimateServiceTestSuite) TestCreateEstimate_MissingCustomerNameRejected() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	employee := &domain.User{UserID: employeeID, Role: domain.RoleGeneralEmployee, BranchID: suite.branchID}

	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).Return(employee, nil).Once()

	_, err := suite.service.CreateEstimate(ctx, dto.CreateEstimateRequest{
		Items: []dto.DocumentItemRequest{{Name: "X-Ray Chest", MRP: decimal.NewFromInt(400)}},
	}, employeeID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockEstimateRepo.AssertNotCalled(suite.T(), "SaveEstimate")
}

func (suite *EstimateServiceTestSuite) TestGetEstimateByID_ClientSeesOwn() {
	ctx := context.Background()
	clientID := uuid.NewString()
	client := &domain.User{UserID: clientID, Role: domain.RoleClient}
	estimateID := uuid.NewString()

	own := &domain.Estimate{
		EstimateID: estimateID,
		BranchID:   suite.branchID,
		AuditFields: domain.AuditFields{
			CreatedBy: clientID,
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, clientID).Return(client, nil).Once()
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, estimateID).Return(own, nil).Once()
	suite.mockEstimateRepo.On("FindItemsByEstimateID", ctx, estimateID).
		Return([]domain.EstimateItem{{ItemID: uuid.NewString(), EstimateID: estimateID, Position: 1}}, nil).Once()

	estimate, err := suite.service.GetEstimateByID(ctx, estimateID, clientID)

	suite.Require().NoError(err)
	suite.Len(estimate.Items, 1)
}

func (suite *EstimateServiceTestSuite) TestGetEstimateByID_EmployeeOtherBranchHidden() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	employee := &domain.User{UserID: employeeID, Role: domain.RoleGeneralEmployee, BranchID: suite.branchID}
	estimateID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).Return(employee, nil).Once()
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, estimateID).
		Return(&domain.Estimate{EstimateID: estimateID, BranchID: uuid.NewString()}, nil).Once()

	estimate, err := suite.service.GetEstimateByID(ctx, estimateID, employeeID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(estimate)
}

func TestEstimateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EstimateServiceTestSuite))
}
