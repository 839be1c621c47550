package httpinterface

import (
	"errors"
	"net/http"

	"github.com/G4F0334/gamemarket/internal/core/application"
	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/internal/core/ports"
	"github.com/G4F0334/gamemarket/pkg/mathutil"
)

var errInvalidBody = errors.New("invalid request body")

var (
	conflictErrors = []error{
		domain.ErrAlreadyInitialized,
		domain.ErrCatalogAlreadyRegistered,
		domain.ErrListingAlreadyActive,
		domain.ErrListingNotActive,
	}
	unprocessableErrors = []error{
		domain.ErrAssetOwnershipMismatch,
		domain.ErrListingPriceChanged,
		domain.ErrListingReplaced,
		domain.ErrInvalidFeeRecipient,
		domain.ErrVolumeOverflow,
		domain.ErrArithmeticOverflow,
		mathutil.ErrOverflow,
	}
	badRequestErrors = []error{
		errInvalidBody,
		domain.ErrInvalidFee,
		domain.ErrInvalidAuthority,
		domain.ErrInvalidPrice,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidCatalogName,
		domain.ErrInvalidCatalogSymbol,
		domain.ErrInvalidCatalogDescription,
		domain.ErrInvalidItemName,
		domain.ErrInvalidItemURI,
		domain.ErrInvalidPubkey,
		application.ErrInvalidAirdropAmount,
		application.ErrInvalidTopic,
		ports.ErrInvalidSubscription,
	}
)

// httpStatus maps an application error to the response status code.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, application.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, application.ErrFaucetDisabled):
		return http.StatusForbidden
	case errors.Is(err, application.ErrWebhookManagerNotInitialized),
		errors.Is(err, ports.ErrTooManyConflicts):
		return http.StatusServiceUnavailable
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, unprocessableErrors):
		return http.StatusUnprocessableEntity
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
