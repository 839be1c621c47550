package ports

import (
	"context"

	"github.com/G4F0334/gamemarket/internal/core/domain"
)

// RepoManager holds the repositories of the account store. Every repository
// shares the same underlying store so that RunTransaction can commit changes
// to records of different kinds atomically.
type RepoManager interface {
	MarketplaceRepository() domain.MarketplaceRepository
	CatalogRepository() domain.CatalogRepository
	ListingRepository() domain.ListingRepository
	AccountRepository() domain.AccountRepository
	AssetRepository() domain.AssetRepository

	// RunTransaction runs handler within a single store transaction: either
	// every write made through the repositories with the given context is
	// committed, or none is. On write conflicts with a concurrent
	// transaction the handler is run again from scratch, thus it must not
	// have side effects other than the repository calls.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}
