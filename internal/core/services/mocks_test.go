package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/medibill/diagnostics_billing_app/internal/core/domain"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock BranchRepository ---

type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	var branch *domain.Branch
	if args.Get(0) != nil {
		branch = args.Get(0).(*domain.Branch)
	}
	return branch, args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	var branches []domain.Branch
	if args.Get(0) != nil {
		branches = args.Get(0).([]domain.Branch)
	}
	return branches, args.Error(1)
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	var customer *domain.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*domain.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	args := m.Called(ctx, mobile)
	var customer *domain.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*domain.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) SearchCustomers(ctx context.Context, query string, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, query, limit, offset)
	var customers []domain.Customer
	if args.Get(0) != nil {
		customers = args.Get(0).([]domain.Customer)
	}
	return customers, args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) ResolveCustomerInTx(ctx context.Context, tx pgx.Tx, input domain.CustomerInput, actorUserID string, now time.Time) (string, error) {
	args := m.Called(ctx, tx, input, actorUserID, now)
	return args.String(0), args.Error(1)
}

// --- Mock CatalogRepository ---

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) SaveLab(ctx context.Context, lab domain.Lab) error {
	args := m.Called(ctx, lab)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindLabByID(ctx context.Context, labID string) (*domain.Lab, error) {
	args := m.Called(ctx, labID)
	var lab *domain.Lab
	if args.Get(0) != nil {
		lab = args.Get(0).(*domain.Lab)
	}
	return lab, args.Error(1)
}

func (m *MockCatalogRepository) ListLabs(ctx context.Context) ([]domain.Lab, error) {
	args := m.Called(ctx)
	var labs []domain.Lab
	if args.Get(0) != nil {
		labs = args.Get(0).([]domain.Lab)
	}
	return labs, args.Error(1)
}

func (m *MockCatalogRepository) UpdateLab(ctx context.Context, lab domain.Lab) error {
	args := m.Called(ctx, lab)
	return args.Error(0)
}

func (m *MockCatalogRepository) SavePackageList(ctx context.Context, list domain.PackageList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindPackageListByID(ctx context.Context, packageListID string) (*domain.PackageList, error) {
	args := m.Called(ctx, packageListID)
	var list *domain.PackageList
	if args.Get(0) != nil {
		list = args.Get(0).(*domain.PackageList)
	}
	return list, args.Error(1)
}

func (m *MockCatalogRepository) ListPackageLists(ctx context.Context) ([]domain.PackageList, error) {
	args := m.Called(ctx)
	var lists []domain.PackageList
	if args.Get(0) != nil {
		lists = args.Get(0).([]domain.PackageList)
	}
	return lists, args.Error(1)
}

func (m *MockCatalogRepository) ListPackageListsByLabID(ctx context.Context, labID string) ([]domain.PackageList, error) {
	args := m.Called(ctx, labID)
	var lists []domain.PackageList
	if args.Get(0) != nil {
		lists = args.Get(0).([]domain.PackageList)
	}
	return lists, args.Error(1)
}

func (m *MockCatalogRepository) UpdatePackageList(ctx context.Context, list domain.PackageList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockCatalogRepository) LinkLabPackageList(ctx context.Context, labID string, packageListID string) error {
	args := m.Called(ctx, labID, packageListID)
	return args.Error(0)
}

func (m *MockCatalogRepository) UnlinkLabPackageList(ctx context.Context, labID string, packageListID string) error {
	args := m.Called(ctx, labID, packageListID)
	return args.Error(0)
}

func (m *MockCatalogRepository) ReplaceUserPackageLists(ctx context.Context, userID string, packageListIDs []string) error {
	args := m.Called(ctx, userID, packageListIDs)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListPackageListIDsForUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	var ids []string
	if args.Get(0) != nil {
		ids = args.Get(0).([]string)
	}
	return ids, args.Error(1)
}

func (m *MockCatalogRepository) ListPackageListsForUser(ctx context.Context, userID string) ([]domain.PackageList, error) {
	args := m.Called(ctx, userID)
	var lists []domain.PackageList
	if args.Get(0) != nil {
		lists = args.Get(0).([]domain.PackageList)
	}
	return lists, args.Error(1)
}

func (m *MockCatalogRepository) SavePackage(ctx context.Context, pkg domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindPackageByID(ctx context.Context, packageID string) (*domain.Package, error) {
	args := m.Called(ctx, packageID)
	var pkg *domain.Package
	if args.Get(0) != nil {
		pkg = args.Get(0).(*domain.Package)
	}
	return pkg, args.Error(1)
}

func (m *MockCatalogRepository) ListPackagesByListID(ctx context.Context, packageListID string) ([]domain.Package, error) {
	args := m.Called(ctx, packageListID)
	var pkgs []domain.Package
	if args.Get(0) != nil {
		pkgs = args.Get(0).([]domain.Package)
	}
	return pkgs, args.Error(1)
}

func (m *MockCatalogRepository) UpdatePackage(ctx context.Context, pkg domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

// --- Mock ReceiptRepository ---

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt, items []domain.ReceiptItem, customer domain.CustomerInput, debit *domain.WalletDebit) (*domain.Receipt, *domain.User, error) {
	args := m.Called(ctx, receipt, items, customer, debit)
	var saved *domain.Receipt
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Receipt)
	}
	var user *domain.User
	if args.Get(1) != nil {
		user = args.Get(1).(*domain.User)
	}
	return saved, user, args.Error(2)
}

func (m *MockReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID)
	var receipt *domain.Receipt
	if args.Get(0) != nil {
		receipt = args.Get(0).(*domain.Receipt)
	}
	return receipt, args.Error(1)
}

func (m *MockReceiptRepository) FindItemsByReceiptID(ctx context.Context, receiptID string) ([]domain.ReceiptItem, error) {
	args := m.Called(ctx, receiptID)
	var items []domain.ReceiptItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.ReceiptItem)
	}
	return items, args.Error(1)
}

func (m *MockReceiptRepository) ListReceiptsByBranch(ctx context.Context, branchID string, limit int, nextToken *string, from *time.Time, to *time.Time) ([]domain.Receipt, *string, error) {
	args := m.Called(ctx, branchID, limit, nextToken, from, to)
	var receipts []domain.Receipt
	if args.Get(0) != nil {
		receipts = args.Get(0).([]domain.Receipt)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return receipts, token, args.Error(2)
}

func (m *MockReceiptRepository) ListReceiptsByCreator(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Receipt, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var receipts []domain.Receipt
	if args.Get(0) != nil {
		receipts = args.Get(0).([]domain.Receipt)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return receipts, token, args.Error(2)
}

// --- Mock EstimateRepository ---

type MockEstimateRepository struct {
	mock.Mock
}

func (m *MockEstimateRepository) SaveEstimate(ctx context.Context, estimate domain.Estimate, items []domain.EstimateItem, customer domain.CustomerInput) (*domain.Estimate, error) {
	args := m.Called(ctx, estimate, items, customer)
	var saved *domain.Estimate
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Estimate)
	}
	return saved, args.Error(1)
}

func (m *MockEstimateRepository) FindEstimateByID(ctx context.Context, estimateID string) (*domain.Estimate, error) {
	args := m.Called(ctx, estimateID)
	var estimate *domain.Estimate
	if args.Get(0) != nil {
		estimate = args.Get(0).(*domain.Estimate)
	}
	return estimate, args.Error(1)
}

func (m *MockEstimateRepository) FindItemsByEstimateID(ctx context.Context, estimateID string) ([]domain.EstimateItem, error) {
	args := m.Called(ctx, estimateID)
	var items []domain.EstimateItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.EstimateItem)
	}
	return items, args.Error(1)
}

func (m *MockEstimateRepository) ListEstimatesByBranch(ctx context.Context, branchID string, limit int, nextToken *string, from *time.Time, to *time.Time) ([]domain.Estimate, *string, error) {
	args := m.Called(ctx, branchID, limit, nextToken, from, to)
	var estimates []domain.Estimate
	if args.Get(0) != nil {
		estimates = args.Get(0).([]domain.Estimate)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return estimates, token, args.Error(2)
}

func (m *MockEstimateRepository) ListEstimatesByCreator(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Estimate, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var estimates []domain.Estimate
	if args.Get(0) != nil {
		estimates = args.Get(0).([]domain.Estimate)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return estimates, token, args.Error(2)
}

// --- Mock WalletRepository ---

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) ApplyAdminAction(ctx context.Context, clientID string, action domain.WalletAction, amount decimal.Decimal, notes string, actorUserID string, now time.Time) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, clientID, action, amount, notes, actorUserID, now)
	var txn *domain.WalletTransaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.WalletTransaction)
	}
	return txn, args.Error(1)
}

func (m *MockWalletRepository) DebitForReceiptInTx(ctx context.Context, tx pgx.Tx, debit domain.WalletDebit, receiptID string, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, tx, debit, receiptID, now)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockWalletRepository) UpdateWalletPermissions(ctx context.Context, clientID string, allow bool, until *time.Time, actorUserID string, now time.Time) error {
	args := m.Called(ctx, clientID, allow, until, actorUserID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) ListTransactionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var txns []domain.WalletTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.WalletTransaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetBranchDailySummaries(ctx context.Context, branchID string, from time.Time, to time.Time) ([]domain.BranchDailySummary, error) {
	args := m.Called(ctx, branchID, from, to)
	var summaries []domain.BranchDailySummary
	if args.Get(0) != nil {
		summaries = args.Get(0).([]domain.BranchDailySummary)
	}
	return summaries, args.Error(1)
}

func (m *MockReportingRepository) SumWalletDeductionsBefore(ctx context.Context, userID string, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) FindWalletTransactionsInRange(ctx context.Context, userID string, from time.Time, to time.Time) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, userID, from, to)
	var txns []domain.WalletTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.WalletTransaction)
	}
	return txns, args.Error(1)
}
