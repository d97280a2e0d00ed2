package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"finwallet/internal/balance"
	"finwallet/internal/models"
	"finwallet/internal/pagination"
)

// UserServicer defines the contract for user lookups and login bookkeeping.
type UserServicer interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	RecordLogin(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID string, name, email *string) (*models.User, error)
}

// WalletServicer defines the ownership-scoped wallet store, the balance
// aggregation over a user's wallets and the currency-change propagation.
type WalletServicer interface {
	ListWallets(ctx context.Context, userID string) (*balance.Summary, error)
	CreateWallet(ctx context.Context, userID, name string, initialBalance decimal.Decimal, currency string) (*models.Wallet, *balance.Summary, error)
	GetWallet(ctx context.Context, userID, walletID string) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, userID, walletID, name, currency string) (*models.Wallet, error)
	DeleteWallet(ctx context.Context, userID, walletID string) (*balance.Summary, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, userID, name string) (*models.Category, error)
	GetUserCategories(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(ctx context.Context, userID, categoryID string) (*models.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID, walletID string, categoryID *string, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	GetWalletTransactions(ctx context.Context, userID, walletID string, page pagination.PageRequest) (*pagination.PageResponse[balance.TransactionView], error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// RateInput is one exchange rate pushed by the rate pipeline.
type RateInput struct {
	Currency string
	Rate     decimal.Decimal
	AsOf     time.Time
}

// RateServicer defines the contract for exchange-rate ingestion and listing.
type RateServicer interface {
	UpsertRates(ctx context.Context, rates []RateInput) (int, error)
	ListRates(ctx context.Context) ([]models.ExchangeRate, error)
}

// AuditServicer records mutations and lists a user's own audit trail.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	ListUserEvents(ctx context.Context, userID string, filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
