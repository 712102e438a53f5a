package pgsql

import (
	portsrepo "github.com/medibill/diagnostics_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	branchRepo := newPgxBranchRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	catalogRepo := newPgxCatalogRepository(dbPool)
	walletRepo := newPgxWalletRepository(dbPool)
	receiptRepo := newPgxReceiptRepository(dbPool, customerRepo, walletRepo)
	estimateRepo := newPgxEstimateRepository(dbPool, customerRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:      userRepo,
		BranchRepo:    branchRepo,
		CustomerRepo:  customerRepo,
		CatalogRepo:   catalogRepo,
		ReceiptRepo:   receiptRepo,
		EstimateRepo:  estimateRepo,
		WalletRepo:    walletRepo,
		ReportingRepo: reportingRepo,
	}
}
