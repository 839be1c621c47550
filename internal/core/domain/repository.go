package domain

import "context"

// MarketplaceRepository is the abstraction for any kind of database intended
// to persist the marketplace ledger.
type MarketplaceRepository interface {
	// AddMarketplace persists the singleton ledger. It returns
	// ErrAlreadyInitialized if it exists already.
	AddMarketplace(ctx context.Context, marketplace *Marketplace) error
	// GetMarketplace returns the ledger or ErrMarketplaceNotFound.
	GetMarketplace(ctx context.Context) (*Marketplace, error)
	// UpdateMarketplace updates the ledger. The closure function let's to
	// commit multiple changes in a transactional way.
	UpdateMarketplace(
		ctx context.Context,
		updateFn func(m *Marketplace) (*Marketplace, error),
	) error
}

// CatalogRepository persists catalogs, one per publisher.
type CatalogRepository interface {
	// AddCatalog returns ErrCatalogAlreadyRegistered if the authority has one
	// already.
	AddCatalog(ctx context.Context, catalog *Catalog) error
	GetCatalog(ctx context.Context, authority Pubkey) (*Catalog, error)
	GetAllCatalogs(ctx context.Context) ([]Catalog, error)
	UpdateCatalog(
		ctx context.Context,
		authority Pubkey, updateFn func(c *Catalog) (*Catalog, error),
	) error
}

// ListingRepository persists listings, one record per asset.
type ListingRepository interface {
	// AddListing stores the listing at the address derived from its asset.
	// An existing settled listing is overwritten, an active one makes the
	// call fail with ErrListingAlreadyActive.
	AddListing(ctx context.Context, listing *Listing) error
	GetListing(ctx context.Context, assetID Pubkey) (*Listing, error)
	// GetActiveListings returns the listings open for sale, oldest first.
	GetActiveListings(ctx context.Context) ([]Listing, error)
	GetListingsBySeller(ctx context.Context, seller Pubkey) ([]Listing, error)
	UpdateListing(
		ctx context.Context,
		assetID Pubkey, updateFn func(l *Listing) (*Listing, error),
	) error
}

// AccountRepository persists balances and moves value between them.
type AccountRepository interface {
	// GetAccount returns an empty account if none is stored for owner.
	GetAccount(ctx context.Context, owner Pubkey) (*Account, error)
	UpdateAccount(
		ctx context.Context,
		owner Pubkey, updateFn func(a *Account) (*Account, error),
	) error
	// TransferValue moves amount from one account to another. It fails with
	// ErrInsufficientFunds without changing any balance if the sender cannot
	// afford it.
	TransferValue(ctx context.Context, from, to Pubkey, amount uint64) error
}

// AssetRepository is the asset ledger: issued assets and who holds them.
type AssetRepository interface {
	// AddAsset stores a newly issued asset with its whole supply held by
	// owner.
	AddAsset(ctx context.Context, asset *Asset, owner Pubkey) error
	GetAsset(ctx context.Context, assetID Pubkey) (*Asset, error)
	// GetAssetsByCatalog returns the assets issued by the given catalog
	// authority, oldest first.
	GetAssetsByCatalog(ctx context.Context, authority Pubkey) ([]Asset, error)
	// GetHolding returns an empty holding if owner holds no unit of the
	// asset.
	GetHolding(ctx context.Context, assetID, owner Pubkey) (*Holding, error)
	// TransferAsset moves qty units of an asset. It fails with
	// ErrAssetNotFound for unknown assets and ErrAssetOwnershipMismatch if
	// the sender holds less than qty units.
	TransferAsset(
		ctx context.Context, assetID, from, to Pubkey, qty uint64,
	) error
}
