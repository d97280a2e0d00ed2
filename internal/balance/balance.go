// Package balance sums wallet balances into a single reporting-currency total
// and builds the per-wallet views returned by the API.
package balance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"finwallet/internal/currency"
	"finwallet/internal/logger"
	"finwallet/internal/metrics"
	"finwallet/internal/models"
)

// NoCategory is shown for transactions without a (live) category.
const NoCategory = "No Category"

// Policy decides what happens when a wallet balance cannot be converted.
type Policy string

const (
	// FailOnUnknown aborts the whole aggregation on the first conversion error.
	FailOnUnknown Policy = "fail"
	// SkipUnknown leaves the wallet out of the total and logs a warning.
	SkipUnknown Policy = "skip"
)

// TransactionView is the flattened transaction shown under a wallet.
type TransactionView struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category_name"`
}

// WalletView is a wallet with its original, unconverted balance.
type WalletView struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Balance      decimal.Decimal   `json:"balance"`
	Currency     string            `json:"currency"`
	Transactions []TransactionView `json:"transactions"`
}

// Summary is the result of an aggregation.
type Summary struct {
	Wallets  []WalletView
	Total    decimal.Decimal
	Currency string
	// Skipped lists wallets left out of Total under SkipUnknown.
	Skipped []string
	// TotalUnavailable marks a summary whose Total could not be computed.
	TotalUnavailable bool
}

// FormattedTotal renders Total with exactly two decimal digits.
func (s *Summary) FormattedTotal() string {
	return s.Total.StringFixed(2)
}

// MarshalJSON renders the summary as {wallets, total_balance, currency}.
// total_balance is null when the total is unavailable.
func (s *Summary) MarshalJSON() ([]byte, error) {
	var total *string
	if !s.TotalUnavailable {
		formatted := s.FormattedTotal()
		total = &formatted
	}
	return json.Marshal(struct {
		Wallets     []WalletView `json:"wallets"`
		Total       *string      `json:"total_balance"`
		Currency    string       `json:"currency"`
		Skipped     []string     `json:"skipped_wallets,omitempty"`
		Unavailable bool         `json:"total_unavailable,omitempty"`
	}{
		Wallets:     s.Wallets,
		Total:       total,
		Currency:    s.Currency,
		Skipped:     s.Skipped,
		Unavailable: s.TotalUnavailable,
	})
}

// Unaggregated lists wallets without a total, for when conversion failed.
func Unaggregated(wallets []models.Wallet, reporting string) *Summary {
	summary := &Summary{
		Wallets:          make([]WalletView, 0, len(wallets)),
		Total:            decimal.Zero,
		Currency:         currency.Normalize(reporting),
		TotalUnavailable: true,
	}
	for i := range wallets {
		summary.Wallets = append(summary.Wallets, NewWalletView(&wallets[i]))
	}
	return summary
}

// Aggregate converts every wallet balance to reporting and sums the results.
// The per-wallet views keep the original balances; only Total is converted.
func Aggregate(ctx context.Context, conv currency.Converter, wallets []models.Wallet, reporting string, policy Policy) (*Summary, error) {
	reporting = currency.Normalize(reporting)
	summary := &Summary{
		Wallets:  make([]WalletView, 0, len(wallets)),
		Total:    decimal.Zero,
		Currency: reporting,
	}

	for i := range wallets {
		w := &wallets[i]
		summary.Wallets = append(summary.Wallets, NewWalletView(w))

		converted, err := conv.Convert(ctx, w.Balance, w.Currency, reporting)
		if err != nil {
			if policy != SkipUnknown {
				metrics.Aggregations.WithLabelValues("failed").Inc()
				return nil, err
			}
			logger.FromContext(ctx).Warnw("skipping wallet in total",
				"wallet_id", w.ID,
				"currency", w.Currency,
				"reporting_currency", reporting,
				"error", err,
			)
			summary.Skipped = append(summary.Skipped, w.ID)
			continue
		}
		summary.Total = summary.Total.Add(converted)
	}

	if len(summary.Skipped) > 0 {
		metrics.Aggregations.WithLabelValues("skipped").Inc()
	} else {
		metrics.Aggregations.WithLabelValues("ok").Inc()
	}
	return summary, nil
}

// NewWalletView builds the display view of w and its loaded transactions.
func NewWalletView(w *models.Wallet) WalletView {
	view := WalletView{
		ID:           w.ID,
		Name:         w.Name,
		Balance:      w.Balance,
		Currency:     w.Currency,
		Transactions: make([]TransactionView, 0, len(w.Transactions)),
	}
	for i := range w.Transactions {
		view.Transactions = append(view.Transactions, NewTransactionView(&w.Transactions[i]))
	}
	return view
}

// NewTransactionView flattens t, naming its category or NoCategory.
func NewTransactionView(t *models.Transaction) TransactionView {
	name := NoCategory
	if t.Category != nil {
		name = t.Category.Name
	}
	return TransactionView{
		ID:          t.ID,
		Amount:      t.Amount,
		Currency:    t.Currency,
		Description: t.Description,
		Date:        t.Date,
		Category:    name,
	}
}
