package repositories

// RepositoryProvider bundles all repository facades for dependency injection.
type RepositoryProvider struct {
	UserRepo      UserRepositoryFacade
	BranchRepo    BranchRepositoryFacade
	CustomerRepo  CustomerRepositoryFacade
	CatalogRepo   CatalogRepositoryFacade
	ReceiptRepo   ReceiptRepositoryFacade
	EstimateRepo  EstimateRepositoryFacade
	WalletRepo    WalletRepositoryFacade
	ReportingRepo ReportingRepositoryFacade
}
