package services

import (
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, repos.CatalogRepo)
	container.Branch = NewBranchService(repos.BranchRepo, repos.UserRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Catalog = NewCatalogService(repos.CatalogRepo, repos.UserRepo)
	container.Receipt = NewReceiptService(repos.ReceiptRepo, repos.UserRepo, repos.BranchRepo, repos.CatalogRepo, cfg)
	container.Estimate = NewEstimateService(repos.EstimateRepo, repos.UserRepo, repos.BranchRepo, cfg)
	container.Wallet = NewWalletService(repos.WalletRepo, repos.UserRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.UserRepo)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
