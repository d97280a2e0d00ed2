package services

import (
	"errors"

	"finwallet/internal/currency"
	apperrors "finwallet/internal/errors"
)

// owned is any record scoped to a single user.
type owned interface {
	OwnerID() string
}

// authorizeOwner rejects access to a loaded record that belongs to another
// user. It runs before any data is returned or mutated.
func authorizeOwner(record owned, userID string) error {
	if record.OwnerID() != userID {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// conversionError maps a converter failure onto the API taxonomy.
func conversionError(err error) error {
	if errors.Is(err, currency.ErrUnknownCurrency) {
		msg := apperrors.ErrUnknownCurrency.Message
		var uc *currency.UnknownCurrencyError
		if errors.As(err, &uc) {
			msg = "No exchange rate is known for currency " + uc.Code
		}
		appErr := apperrors.WithMessage(apperrors.ErrUnknownCurrency, msg)
		appErr.Internal = err
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrRateUnavailable, err)
}
