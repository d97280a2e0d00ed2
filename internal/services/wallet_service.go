package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finwallet/internal/balance"
	"finwallet/internal/currency"
	apperrors "finwallet/internal/errors"
	"finwallet/internal/logger"
	"finwallet/internal/models"
)

// WalletConfig carries the deployment-wide aggregation settings.
type WalletConfig struct {
	ReportingCurrency string
	Policy            balance.Policy
}

// walletService handles wallet CRUD, aggregation and currency propagation.
type walletService struct {
	db        *gorm.DB
	converter currency.Converter
	reporting string
	policy    balance.Policy
}

// NewWalletService creates a new WalletServicer.
func NewWalletService(db *gorm.DB, converter currency.Converter, cfg WalletConfig) WalletServicer {
	policy := cfg.Policy
	if policy == "" {
		policy = balance.FailOnUnknown
	}
	return &walletService{
		db:        db,
		converter: converter,
		reporting: currency.Normalize(cfg.ReportingCurrency),
		policy:    policy,
	}
}

// withTransactions preloads wallet transactions, oldest first, with their categories.
func withTransactions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, id ASC")
		}).
		Preload("Transactions.Category")
}

// ListWallets aggregates all of the user's wallets into the reporting currency.
func (s *walletService) ListWallets(ctx context.Context, userID string) (*balance.Summary, error) {
	wallets, err := s.loadWallets(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, err := balance.Aggregate(ctx, s.converter, wallets, s.reporting, s.policy)
	if err != nil {
		return nil, conversionError(err)
	}
	return summary, nil
}

func (s *walletService) loadWallets(ctx context.Context, userID string) ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := s.db.WithContext(ctx).
		Scopes(withTransactions).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&wallets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return wallets, nil
}

// summaryAfterWrite reports the wallets once a create or delete has committed.
// A conversion failure at this point does not fail the request; the summary
// comes back with its total marked unavailable.
func (s *walletService) summaryAfterWrite(ctx context.Context, userID string) (*balance.Summary, error) {
	wallets, err := s.loadWallets(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, err := balance.Aggregate(ctx, s.converter, wallets, s.reporting, s.policy)
	if err != nil {
		logger.FromContext(ctx).Warnw("total unavailable after wallet write",
			"user_id", userID,
			"error", err,
		)
		return balance.Unaggregated(wallets, s.reporting), nil
	}
	return summary, nil
}

// CreateWallet stores a new wallet and returns it with the refreshed aggregate.
func (s *walletService) CreateWallet(ctx context.Context, userID, name string, initialBalance decimal.Decimal, code string) (*models.Wallet, *balance.Summary, error) {
	name = strings.TrimSpace(name)
	code = currency.Normalize(code)
	if err := validateWalletFields(name, code); err != nil {
		return nil, nil, err
	}
	if err := s.checkConvertible(ctx, code); err != nil {
		return nil, nil, err
	}

	wallet := &models.Wallet{
		UserID:   userID,
		Name:     name,
		Balance:  initialBalance,
		Currency: code,
	}
	if err := s.db.WithContext(ctx).Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apperrors.ErrDuplicateWalletName
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	wallet.Transactions = []models.Transaction{}

	summary, err := s.summaryAfterWrite(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return wallet, summary, nil
}

// GetWallet returns one of the user's wallets with its transactions.
func (s *walletService) GetWallet(ctx context.Context, userID, walletID string) (*models.Wallet, error) {
	return findOwnedWallet(ctx, s.db.WithContext(ctx).Scopes(withTransactions), userID, walletID)
}

// UpdateWallet renames the wallet and sets its currency. Ownership is checked
// before the fields are validated. When the currency
// changes every transaction of the wallet is relabeled to the new code; amounts
// are left as they are. Both writes commit or roll back together.
func (s *walletService) UpdateWallet(ctx context.Context, userID, walletID, name, code string) (*models.Wallet, error) {
	wallet, err := findOwnedWallet(ctx, s.db.WithContext(ctx), userID, walletID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	code = currency.Normalize(code)
	if err := validateWalletFields(name, code); err != nil {
		return nil, err
	}

	oldCurrency := wallet.Currency
	if code != oldCurrency {
		if err := s.checkConvertible(ctx, code); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(wallet).Updates(map[string]interface{}{
			"name":     name,
			"currency": code,
		}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateWalletName
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if oldCurrency == code {
			return nil
		}
		res := tx.Model(&models.Transaction{}).
			Where("wallet_id = ?", wallet.ID).
			Update("currency", code)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		logger.FromContext(ctx).Infow("relabeled wallet transactions",
			"wallet_id", wallet.ID,
			"from", oldCurrency,
			"to", code,
			"count", res.RowsAffected,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetWallet(ctx, userID, walletID)
}

// DeleteWallet removes the wallet and its transactions, then returns the
// aggregate over the remaining wallets.
func (s *walletService) DeleteWallet(ctx context.Context, userID, walletID string) (*balance.Summary, error) {
	wallet, err := findOwnedWallet(ctx, s.db.WithContext(ctx), userID, walletID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("wallet_id = ?", wallet.ID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Unscoped().Delete(wallet).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.summaryAfterWrite(ctx, userID)
}

// findOwnedWallet loads a wallet through db: missing is ErrWalletNotFound,
// foreign is ErrUnauthorized.
func findOwnedWallet(ctx context.Context, db *gorm.DB, userID, walletID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.First(&wallet, "id = ?", walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := authorizeOwner(&wallet, userID); err != nil {
		logger.FromContext(ctx).Warnw("wallet access denied", "wallet_id", walletID, "user_id", userID)
		return nil, err
	}
	return &wallet, nil
}

// checkConvertible rejects currencies that could never be aggregated when the
// deployment fails on unknown rates.
func (s *walletService) checkConvertible(ctx context.Context, code string) error {
	if s.policy == balance.SkipUnknown {
		return nil
	}
	if _, err := s.converter.Convert(ctx, decimal.NewFromInt(1), code, s.reporting); err != nil {
		return conversionError(err)
	}
	return nil
}

// validateWalletFields enforces a non-empty name of at most 255 characters and
// a three-letter currency code.
func validateWalletFields(name, code string) error {
	if name == "" {
		return apperrors.WithMessage(apperrors.ErrValidationFailed, "name is required")
	}
	if len([]rune(name)) > 255 {
		return apperrors.WithMessage(apperrors.ErrValidationFailed, "name may not be greater than 255 characters")
	}
	if !currency.IsCode(code) {
		return apperrors.WithMessage(apperrors.ErrValidationFailed, "currency must be exactly 3 letters")
	}
	return nil
}
