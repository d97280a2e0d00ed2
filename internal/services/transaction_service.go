package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finwallet/internal/balance"
	apperrors "finwallet/internal/errors"
	"finwallet/internal/models"
	"finwallet/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
	}
}

// CreateTransaction records an amount against one of the user's wallets. The
// transaction's currency is always the wallet's current currency.
func (s *transactionService) CreateTransaction(
	ctx context.Context,
	userID string,
	walletID string,
	categoryID *string,
	amount decimal.Decimal,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if amount.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidationFailed, "amount must not be zero")
	}
	description = strings.TrimSpace(description)
	if len([]rune(description)) > 255 {
		return nil, apperrors.WithMessage(apperrors.ErrValidationFailed, "description may not be greater than 255 characters")
	}
	if date.IsZero() {
		date = time.Now()
	}

	wallet, err := findOwnedWallet(ctx, s.db.WithContext(ctx), userID, walletID)
	if err != nil {
		return nil, err
	}

	var category *models.Category
	if categoryID != nil && *categoryID != "" {
		category, err = s.categoryService.GetCategoryByID(ctx, userID, *categoryID)
		if err != nil {
			return nil, err
		}
	} else {
		categoryID = nil
	}

	transaction := &models.Transaction{
		WalletID:    wallet.ID,
		CategoryID:  categoryID,
		Amount:      amount,
		Currency:    wallet.Currency,
		Description: description,
		Date:        date,
	}
	if err := s.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	transaction.Category = category

	return transaction, nil
}

// GetWalletTransactions retrieves a paginated list of a wallet's transactions, newest first.
func (s *transactionService) GetWalletTransactions(ctx context.Context, userID, walletID string, page pagination.PageRequest) (*pagination.PageResponse[balance.TransactionView], error) {
	if _, err := findOwnedWallet(ctx, s.db.WithContext(ctx), userID, walletID); err != nil {
		return nil, err
	}

	result, err := pagination.Find[models.Transaction](
		s.db.WithContext(ctx).Where("wallet_id = ?", walletID),
		page,
		pagination.OrderBy("date DESC, id DESC"),
		func(db *gorm.DB) *gorm.DB { return db.Preload("Category") },
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := pagination.Map(result, balance.NewTransactionView)
	return &views, nil
}

// DeleteTransaction deletes a transaction of one of the user's wallets.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	var transaction models.Transaction
	if err := s.db.WithContext(ctx).First(&transaction, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Ownership is transitive through the wallet.
	if _, err := findOwnedWallet(ctx, s.db.WithContext(ctx), userID, transaction.WalletID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
