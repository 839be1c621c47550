package dbbadger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/internal/core/ports"
	"github.com/G4F0334/gamemarket/pkg/stats"
	"github.com/dgraph-io/badger/v3"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const (
	marketDir = "market"

	// DefaultMaxTxAttempts is the number of times a transaction is run
	// before giving up because of write conflicts.
	DefaultMaxTxAttempts = 100
)

// ErrTooManyConflicts is returned when a transaction keeps conflicting with
// concurrent ones.
var ErrTooManyConflicts = ports.ErrTooManyConflicts

type repoManager struct {
	store         store
	maxTxAttempts int

	marketplaceRepository domain.MarketplaceRepository
	catalogRepository     domain.CatalogRepository
	listingRepository     domain.ListingRepository
	accountRepository     domain.AccountRepository
	assetRepository       domain.AssetRepository
}

// NewRepoManager opens the market store in baseDbDir, or in memory if
// baseDbDir is empty. The logger is optional.
func NewRepoManager(
	baseDbDir string, maxTxAttempts int, logger badger.Logger,
) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, marketDir)
	}

	db, err := OpenStore(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening market db: %w", err)
	}

	return newRepoManager(db, maxTxAttempts), nil
}

func newRepoManager(db *badgerhold.Store, maxTxAttempts int) *repoManager {
	if maxTxAttempts <= 0 {
		maxTxAttempts = DefaultMaxTxAttempts
	}

	return &repoManager{
		store:                 store{db},
		maxTxAttempts:         maxTxAttempts,
		marketplaceRepository: NewMarketplaceRepositoryImpl(db),
		catalogRepository:     NewCatalogRepositoryImpl(db),
		listingRepository:     NewListingRepositoryImpl(db),
		accountRepository:     NewAccountRepositoryImpl(db),
		assetRepository:       NewAssetRepositoryImpl(db),
	}
}

func (r *repoManager) MarketplaceRepository() domain.MarketplaceRepository {
	return r.marketplaceRepository
}

func (r *repoManager) CatalogRepository() domain.CatalogRepository {
	return r.catalogRepository
}

func (r *repoManager) ListingRepository() domain.ListingRepository {
	return r.listingRepository
}

func (r *repoManager) AccountRepository() domain.AccountRepository {
	return r.accountRepository
}

func (r *repoManager) AssetRepository() domain.AssetRepository {
	return r.assetRepository
}

func (r *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	for attempt := 1; attempt <= r.maxTxAttempts; attempt++ {
		res, err := r.runTransaction(ctx, readOnly, handler)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, badger.ErrConflict) {
			return nil, err
		}

		stats.TxConflictsTotal.Inc()
		log.Debugf("store transaction conflict, attempt %d", attempt)
	}

	return nil, ErrTooManyConflicts
}

func (r *repoManager) runTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := r.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(contextWithTx(ctx, tx))
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (r *repoManager) Close() {
	if err := r.store.Close(); err != nil {
		log.WithError(err).Warn("error while closing market db")
	}
}
