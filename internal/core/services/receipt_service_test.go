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
	"github.com/medibill/diagnostics_billing_app/internal/platform/config"
)

type ReceiptServiceTestSuite struct {
	suite.Suite
	mockReceiptRepo *MockReceiptRepository
	mockUserRepo    *MockUserRepository
	mockBranchRepo  *MockBranchRepository
	mockCatalogRepo *MockCatalogRepository
	service         portssvc.ReceiptSvcFacade

	branchID      string
	packageListID string
}

func (suite *ReceiptServiceTestSuite) SetupTest() {
	suite.mockReceiptRepo = new(MockReceiptRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.mockCatalogRepo = new(MockCatalogRepository)
	cfg := &config.Config{DefaultBranchTimezone: "UTC"}
	suite.service = services.NewReceiptService(suite.mockReceiptRepo, suite.mockUserRepo, suite.mockBranchRepo, suite.mockCatalogRepo, cfg)

	suite.branchID = uuid.NewString()
	suite.packageListID = uuid.NewString()
}

func (suite *ReceiptServiceTestSuite) branch() *domain.Branch {
	return &domain.Branch{BranchID: suite.branchID, Name: "Central", Timezone: "UTC"}
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func clientBillingRequest() dto.CreateReceiptRequest {
	return dto.CreateReceiptRequest{
		CustomerData: dto.CustomerData{Name: "Asha Rao"},
		Items: []dto.DocumentItemRequest{
			{Name: "CBC", MRP: decimal.NewFromInt(800), B2BPrice: decPtr(450)},
			{Name: "Thyroid Profile", MRP: decimal.NewFromInt(1500), B2BPrice: decPtr(1200)},
		},
		TotalMRP:            decimal.NewFromInt(2300),
		AmountAfterDiscount: decimal.NewFromInt(2300),
		AmountFinal:         decimal.NewFromInt(2300),
		AmountReceived:      decimal.NewFromInt(2300),
	}
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_ClientDebitsB2BTotal() {
	ctx := context.Background()
	clientID := uuid.NewString()
	client := &domain.User{
		UserID:        clientID,
		Role:          domain.RoleClient,
		BranchID:      suite.branchID,
		WalletBalance: decimal.NewFromInt(5000),
	}

	req := clientBillingRequest()
	req.PackageListID = suite.packageListID

	suite.mockUserRepo.On("FindUserByID", ctx, clientID).Return(client, nil).Once()
	suite.mockCatalogRepo.On("ListPackageListIDsForUser", ctx, clientID).Return([]string{suite.packageListID}, nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branchID).Return(suite.branch(), nil).Once()

	savedReceipt := &domain.Receipt{ReceiptID: uuid.NewString(), ReceiptNumber: 1042, BranchID: suite.branchID}
	updatedClient := &domain.User{UserID: clientID, Role: domain.RoleClient, WalletBalance: decimal.NewFromInt(3350)}

	suite.mockReceiptRepo.On("SaveReceipt", ctx,
		mock.AnythingOfType("domain.Receipt"),
		mock.AnythingOfType("[]domain.ReceiptItem"),
		mock.AnythingOfType("domain.CustomerInput"),
		mock.MatchedBy(func(debit *domain.WalletDebit) bool {
			return debit != nil &&
				debit.UserID == clientID &&
				debit.Amount.Equal(decimal.NewFromInt(1650)) &&
				debit.Notes == "B2B billing deduction"
		}),
	).Return(savedReceipt, updatedClient, nil).Once()

	receipt, updatedUser, err := suite.service.CreateReceipt(ctx, req, clientID)

	suite.Require().NoError(err)
	suite.Equal(int64(1042), receipt.ReceiptNumber)
	suite.Require().NotNil(updatedUser)
	suite.True(updatedUser.WalletBalance.Equal(decimal.NewFromInt(3350)))
	suite.mockReceiptRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_InsufficientBalanceRejected() {
	ctx := context.Background()
	clientID := uuid.NewString()
	client := &domain.User{
		UserID:        clientID,
		Role:          domain.RoleClient,
		BranchID:      suite.branchID,
		WalletBalance: decimal.NewFromInt(1000),
	}

	req := clientBillingRequest()
	req.PackageListID = suite.packageListID

	suite.mockUserRepo.On("FindUserByID", ctx, clientID).Return(client, nil).Once()
	suite.mockCatalogRepo.On("ListPackageListIDsForUser", ctx, clientID).Return([]string{suite.packageListID}, nil).Once()

	receipt, updatedUser, err := suite.service.CreateReceipt(ctx, req, clientID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(receipt)
	suite.Nil(updatedUser)
	suite.mockReceiptRepo.AssertNotCalled(suite.T(), "SaveReceipt")
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_NegativePermissionAllowsOverdraft() {
	ctx := context.Background()
	clientID := uuid.NewString()
	client := &domain.User{
		UserID:               clientID,
		Role:                 domain.RoleClient,
		BranchID:             suite.branchID,
		WalletBalance:        decimal.NewFromInt(1000),
		AllowNegativeBalance: true,
	}

	req := clientBillingRequest()
	req.PackageListID = suite.packageListID

	suite.mockUserRepo.On("FindUserByID", ctx, clientID).Return(client, nil).Once()
	suite.mockCatalogRepo.On("ListPackageListIDsForUser", ctx, clientID).Return([]string{suite.packageListID}, nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branchID).Return(suite.branch(), nil).Once()

	savedReceipt := &domain.Receipt{ReceiptID: uuid.NewString(), ReceiptNumber: 1043, BranchID: suite.branchID}
	overdrawn := &domain.User{UserID: clientID, Role: domain.RoleClient, WalletBalance: decimal.NewFromInt(-650)}
	suite.mockReceiptRepo.On("SaveReceipt", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(savedReceipt, overdrawn, nil).Once()

	_, updatedUser, err := suite.service.CreateReceipt(ctx, req, clientID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updatedUser)
	suite.True(updatedUser.WalletBalance.IsNegative())
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_ExpiredNegativePermissionRejected() {
	ctx := context.Background()
	clientID := uuid.NewString()
	past := time.Now().UTC().Add(-time.Hour)
	client := &domain.User{
		UserID:                      clientID,
		Role:                        domain.RoleClient,
		BranchID:                    suite.branchID,
		WalletBalance:               decimal.NewFromInt(1000),
		AllowNegativeBalance:        true,
		NegativeBalanceAllowedUntil: &past,
	}

	req := clientBillingRequest()
	req.PackageListID = suite.packageListID

	suite.mockUserRepo.On("FindUserByID", ctx, clientID).Return(client, nil).Once()
	suite.mockCatalogRepo.On("ListPackageListIDsForUser", ctx, clientID).Return([]string{suite.packageListID}, nil).Once()

	_, _, err := suite.service.CreateReceipt(ctx, req, clientID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockReceiptRepo.AssertNotCalled(suite.T(), "SaveReceipt")
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_UngrantedPackageListForbidden() {
	ctx := context.Background()
	clientID := uuid.NewString()
	client := &domain.User{
		UserID:        clientID,
		Role:          domain.RoleClient,
		BranchID:      suite.branchID,
		WalletBalance: decimal.NewFromInt(5000),
	}

	req := clientBillingRequest()
	req.PackageListID = uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, clientID).Return(client, nil).Once()
	suite.mockCatalogRepo.On("ListPackageListIDsForUser", ctx, clientID).Return([]string{suite.packageListID}, nil).Once()

	_, _, err := suite.service.CreateReceipt(ctx, req, clientID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReceiptRepo.AssertNotCalled(suite.T(), "SaveReceipt")
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_StaffReceiptSkipsWallet() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	employee := &domain.User{UserID: employeeID, Role: domain.RoleGeneralEmployee, BranchID: suite.branchID}

	req := dto.CreateReceiptRequest{
		CustomerData: dto.CustomerData{Name: "Walk-in Patient"},
		Items: []dto.DocumentItemRequest{
			{Name: "Lipid Profile", MRP: decimal.NewFromInt(1200), Discount: decimal.NewFromInt(10)},
			{Name: "HbA1c", MRP: decimal.NewFromInt(600)},
		},
		TotalMRP:            decimal.NewFromInt(1800),
		AmountAfterDiscount: decimal.NewFromInt(1680),
		AmountFinal:         decimal.NewFromInt(1680),
		AmountReceived:      decimal.NewFromInt(1000),
		// Submitted due is ignored; the service recomputes it.
		AmountDue: decimal.NewFromInt(7),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).Return(employee, nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.branchID).Return(suite.branch(), nil).Once()

	suite.mockReceiptRepo.On("SaveReceipt", ctx,
		mock.MatchedBy(func(r domain.Receipt) bool {
			return r.BranchID == suite.branchID &&
				r.AmountDue.Equal(decimal.NewFromInt(680)) &&
				r.CreatedBy == employeeID
		}),
		mock.MatchedBy(func(items []domain.ReceiptItem) bool {
			return len(items) == 2 &&
				items[0].Position == 1 && items[0].PackageName == "Lipid Profile" &&
				items[1].Position == 2 && items[1].B2BPrice.IsZero()
		}),
		mock.AnythingOfType("domain.CustomerInput"),
		(*domain.WalletDebit)(nil),
	).Return(&domain.Receipt{ReceiptID: uuid.NewString(), ReceiptNumber: 7}, nil, nil).Once()

	receipt, updatedUser, err := suite.service.CreateReceipt(ctx, req, employeeID)

	suite.Require().NoError(err)
	suite.NotNil(receipt)
	suite.Nil(updatedUser)
	suite.mockReceiptRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_NoItemsRejected() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	employee := &domain.User{UserID: employeeID, Role: domain.RoleGeneralEmployee, BranchID: suite.branchID}

	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).Return(employee, nil).Once()

	_, _, err := suite.service.CreateReceipt(ctx, dto.CreateReceiptRequest{
		CustomerData: dto.CustomerData{Name: "Someone"},
	}, employeeID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReceiptServiceTestSuite) TestGetReceiptByID_ClientCannotSeeOthers() {
	ctx := context.Background()
	clientID := uuid.NewString()
	client := &domain.User{UserID: clientID, Role: domain.RoleClient}
	receiptID := uuid.NewString()

	foreign := &domain.Receipt{
		ReceiptID: receiptID,
		BranchID:  suite.branchID,
		AuditFields: domain.AuditFields{
			CreatedBy: uuid.NewString(),
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, clientID).Return(client, nil).Once()
	suite.mockReceiptRepo.On("FindReceiptByID", ctx, receiptID).Return(foreign, nil).Once()

	receipt, err := suite.service.GetReceiptByID(ctx, receiptID, clientID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(receipt)
	suite.mockReceiptRepo.AssertNotCalled(suite.T(), "FindItemsByReceiptID")
}

func (suite *ReceiptServiceTestSuite) TestGetReceiptByID_EmployeeScopedToBranch() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	employee := &domain.User{UserID: employeeID, Role: domain.RoleGeneralEmployee, BranchID: suite.branchID}
	receiptID := uuid.NewString()

	otherBranch := &domain.Receipt{ReceiptID: receiptID, BranchID: uuid.NewString()}

	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).Return(employee, nil).Once()
	suite.mockReceiptRepo.On("FindReceiptByID", ctx, receiptID).Return(otherBranch, nil).Once()

	receipt, err := suite.service.GetReceiptByID(ctx, receiptID, employeeID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(receipt)
}

func (suite *ReceiptServiceTestSuite) TestListReceipts_ClientListsOwnOnly() {
	ctx := context.Background()
	clientID := uuid.NewString()
	client := &domain.User{UserID: clientID, Role: domain.RoleClient, BranchID: suite.branchID}

	suite.mockUserRepo.On("FindUserByID", ctx, clientID).Return(client, nil).Once()
	suite.mockReceiptRepo.On("ListReceiptsByCreator", ctx, clientID, 20, (*string)(nil)).
		Return([]domain.Receipt{{ReceiptID: uuid.NewString()}}, nil, nil).Once()

	resp, err := suite.service.ListReceipts(ctx, dto.ListReceiptsParams{}, clientID)

	suite.Require().NoError(err)
	suite.Len(resp.Receipts, 1)
	suite.mockReceiptRepo.AssertNotCalled(suite.T(), "ListReceiptsByBranch")
}

func TestReceiptServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptServiceTestSuite))
}
