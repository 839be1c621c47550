package dbbadger

import (
	"context"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type listingRepositoryImpl struct {
	store store
}

func NewListingRepositoryImpl(db *badgerhold.Store) domain.ListingRepository {
	return listingRepositoryImpl{store{db}}
}

func (l listingRepositoryImpl) AddListing(
	ctx context.Context, listing *domain.Listing,
) error {
	return l.store.withTx(ctx, func(ctx context.Context) error {
		current, err := l.getListing(ctx, listing.AssetID)
		if err != nil && err != domain.ErrListingNotFound {
			return err
		}
		if current != nil {
			if !current.CanBeReplaced() {
				return domain.ErrListingAlreadyActive
			}
			if listing.CreatedAt <= current.CreatedAt {
				listing.CreatedAt = current.CreatedAt + 1
			}
		}

		return l.store.upsert(ctx, listing.Address().String(), *listing)
	})
}

func (l listingRepositoryImpl) GetListing(
	ctx context.Context, assetID domain.Pubkey,
) (*domain.Listing, error) {
	return l.getListing(ctx, assetID)
}

func (l listingRepositoryImpl) GetActiveListings(
	ctx context.Context,
) ([]domain.Listing, error) {
	query := badgerhold.Where("IsActive").Eq(true).SortBy("CreatedAt")
	return l.findListings(ctx, query)
}

func (l listingRepositoryImpl) GetListingsBySeller(
	ctx context.Context, seller domain.Pubkey,
) ([]domain.Listing, error) {
	query := badgerhold.Where("Seller").Eq(seller).SortBy("CreatedAt")
	return l.findListings(ctx, query)
}

func (l listingRepositoryImpl) UpdateListing(
	ctx context.Context,
	assetID domain.Pubkey,
	updateFn func(l *domain.Listing) (*domain.Listing, error),
) error {
	return l.store.withTx(ctx, func(ctx context.Context) error {
		listing, err := l.getListing(ctx, assetID)
		if err != nil {
			return err
		}

		updated, err := updateFn(listing)
		if err != nil {
			return err
		}

		return l.store.upsert(ctx, updated.Address().String(), *updated)
	})
}

func (l listingRepositoryImpl) getListing(
	ctx context.Context, assetID domain.Pubkey,
) (*domain.Listing, error) {
	var listing domain.Listing
	key := domain.ListingAddress(assetID).String()
	if err := l.store.get(ctx, key, &listing); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (l listingRepositoryImpl) findListings(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := l.store.find(ctx, &listings, query); err != nil {
		return nil, err
	}
	return listings, nil
}
