package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every not found error of the package.
	ErrNotFound = errors.New("not found")
	// ErrMarketplaceNotFound ...
	ErrMarketplaceNotFound = fmt.Errorf("marketplace %w", ErrNotFound)
	// ErrCatalogNotFound ...
	ErrCatalogNotFound = fmt.Errorf("catalog %w", ErrNotFound)
	// ErrListingNotFound ...
	ErrListingNotFound = fmt.Errorf("listing %w", ErrNotFound)
	// ErrAssetNotFound ...
	ErrAssetNotFound = fmt.Errorf("asset %w", ErrNotFound)

	// ErrAlreadyInitialized is returned when creating the marketplace ledger
	// more than once.
	ErrAlreadyInitialized = errors.New("marketplace is already initialized")
	// ErrInvalidFee is returned for fee rates out of [0, 10000] basis points.
	ErrInvalidFee = errors.New("fee basis points must be in range [0, 10000]")
	// ErrInvalidAuthority ...
	ErrInvalidAuthority = errors.New("authority must not be empty")
	// ErrInvalidFeeRecipient is returned when the fee recipient of a
	// settlement is not the marketplace authority.
	ErrInvalidFeeRecipient = errors.New("fee recipient does not match marketplace authority")
	// ErrVolumeOverflow is returned when recording a sale would overflow the
	// marketplace counters.
	ErrVolumeOverflow = errors.New("marketplace volume overflow")

	// ErrInvalidPrice ...
	ErrInvalidPrice = errors.New("listing price must be greater than zero")
	// ErrListingAlreadyActive is returned when listing an asset that has an
	// active listing already.
	ErrListingAlreadyActive = errors.New("asset already has an active listing")
	// ErrListingNotActive is returned when settling a listing that has been
	// sold already.
	ErrListingNotActive = errors.New("listing is not active")
	// ErrListingPriceChanged is returned when the price agreed by the buyer
	// differs from the listing one.
	ErrListingPriceChanged = errors.New("listing price does not match the requested one")
	// ErrListingReplaced is returned when a buyer agreed on a previous listing
	// of the same asset.
	ErrListingReplaced = errors.New("listing has been replaced by a newer one")

	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAssetOwnershipMismatch is returned when the sender of an asset does
	// not hold enough units of it.
	ErrAssetOwnershipMismatch = errors.New("asset is not owned by sender")
	// ErrArithmeticOverflow ...
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrInvalidQuantity ...
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrCatalogAlreadyRegistered ...
	ErrCatalogAlreadyRegistered = errors.New("catalog is already registered for authority")
	// ErrInvalidCatalogName ...
	ErrInvalidCatalogName = fmt.Errorf(
		"catalog name must be valid utf-8 of length [1, %d]", MaxCatalogNameLength,
	)
	// ErrInvalidCatalogSymbol ...
	ErrInvalidCatalogSymbol = fmt.Errorf(
		"catalog symbol must be valid utf-8 of length [1, %d]", MaxCatalogSymbolLength,
	)
	// ErrInvalidCatalogDescription ...
	ErrInvalidCatalogDescription = fmt.Errorf(
		"catalog description must be valid utf-8 of length [0, %d]",
		MaxCatalogDescriptionLength,
	)
	// ErrInvalidItemName ...
	ErrInvalidItemName = fmt.Errorf(
		"item name must be valid utf-8 of length [1, %d]", MaxItemNameLength,
	)
	// ErrInvalidItemURI ...
	ErrInvalidItemURI = fmt.Errorf(
		"item uri must be valid utf-8 of length [0, %d]", MaxItemURILength,
	)

	// ErrInvalidPubkey ...
	ErrInvalidPubkey = errors.New("public key must be 32 bytes")
)
