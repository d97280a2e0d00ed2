package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finwallet/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     "Test User",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestWallet creates a wallet with a unique name.
func CreateTestWallet(t *testing.T, db *gorm.DB, userID, currency, balance string) *models.Wallet {
	t.Helper()
	return CreateTestWalletNamed(t, db, userID, fmt.Sprintf("Test Wallet %d", nextID()), currency, balance)
}

// CreateTestWalletNamed creates a wallet with the given name, currency and balance.
func CreateTestWalletNamed(t *testing.T, db *gorm.DB, userID, name, currency, balance string) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{
		UserID:   userID,
		Name:     name,
		Balance:  decimal.RequireFromString(balance),
		Currency: currency,
	}
	if err := db.Create(wallet).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return wallet
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction records amount against wallet in the wallet's currency.
// categoryID may be nil.
func CreateTestTransaction(t *testing.T, db *gorm.DB, wallet *models.Wallet, categoryID *string, amount string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		WalletID:    wallet.ID,
		CategoryID:  categoryID,
		Amount:      decimal.RequireFromString(amount),
		Currency:    wallet.Currency,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Date:        time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestExchangeRate stores a reporting-currency rate for code.
func CreateTestExchangeRate(t *testing.T, db *gorm.DB, code, rate string) *models.ExchangeRate {
	t.Helper()

	r := &models.ExchangeRate{
		Currency: code,
		Rate:     decimal.RequireFromString(rate),
		AsOf:     time.Now(),
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to create test exchange rate: %v", err)
	}
	return r
}
