package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/medibill/diagnostics_billing_app/internal/apperrors"
	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/core/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewCustomerService(suite.mockCustomerRepo)
}

func strPtr(s string) *string {
	return &s
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	actorID := uuid.NewString()

	existing := &domain.Customer{CustomerID: customerID, Name: "R. Sharma"}
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByMobile", ctx, "9876543210").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCustomerRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == customerID &&
			c.Name == "Rakesh Sharma" &&
			c.Mobile != nil && *c.Mobile == "9876543210" &&
			c.LastUpdatedBy == actorID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{
		Name:   strPtr("Rakesh Sharma"),
		Mobile: strPtr("9876543210"),
	}, actorID)

	suite.Require().NoError(err)
	suite.Equal("Rakesh Sharma", updated.Name)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_MobileOwnedByAnotherRejected() {
	ctx := context.Background()
	customerID := uuid.NewString()

	existing := &domain.Customer{CustomerID: customerID, Name: "R. Sharma"}
	owner := &domain.Customer{CustomerID: uuid.NewString(), Name: "Someone Else", Mobile: strPtr("9876543210")}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByMobile", ctx, "9876543210").Return(owner, nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{
		Mobile: strPtr("9876543210"),
	}, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), owner.CustomerID)
	suite.Nil(updated)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "UpdateCustomer")
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_ClearMobile() {
	ctx := context.Background()
	customerID := uuid.NewString()

	existing := &domain.Customer{CustomerID: customerID, Name: "R. Sharma", Mobile: strPtr("9876543210")}
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockCustomerRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Mobile == nil
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{
		Mobile: strPtr(""),
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Nil(updated.Mobile)
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_EmptyNameRejected() {
	ctx := context.Background()
	customerID := uuid.NewString()

	existing := &domain.Customer{CustomerID: customerID, Name: "R. Sharma"}
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{
		Name: strPtr(""),
	}, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(updated)
}

func (suite *CustomerServiceTestSuite) TestSearchCustomers_DefaultsLimit() {
	ctx := context.Background()
	results := []domain.Customer{{CustomerID: uuid.NewString(), Name: "Asha Rao"}}

	suite.mockCustomerRepo.On("SearchCustomers", ctx, "asha", 20, 0).Return(results, nil).Once()

	customers, err := suite.service.SearchCustomers(ctx, "asha", 0, 0)

	suite.Require().NoError(err)
	suite.Len(customers, 1)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
