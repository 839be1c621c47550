package dbbadger

import (
	"context"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type marketplaceRepositoryImpl struct {
	store store
}

func NewMarketplaceRepositoryImpl(
	db *badgerhold.Store,
) domain.MarketplaceRepository {
	return marketplaceRepositoryImpl{store{db}}
}

func (m marketplaceRepositoryImpl) AddMarketplace(
	ctx context.Context, marketplace *domain.Marketplace,
) error {
	key := marketplace.Address().String()
	if err := m.store.insert(ctx, key, *marketplace); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAlreadyInitialized
		}
		return err
	}
	return nil
}

func (m marketplaceRepositoryImpl) GetMarketplace(
	ctx context.Context,
) (*domain.Marketplace, error) {
	return m.getMarketplace(ctx)
}

func (m marketplaceRepositoryImpl) UpdateMarketplace(
	ctx context.Context,
	updateFn func(m *domain.Marketplace) (*domain.Marketplace, error),
) error {
	return m.store.withTx(ctx, func(ctx context.Context) error {
		marketplace, err := m.getMarketplace(ctx)
		if err != nil {
			return err
		}

		updated, err := updateFn(marketplace)
		if err != nil {
			return err
		}

		return m.store.upsert(ctx, updated.Address().String(), *updated)
	})
}

func (m marketplaceRepositoryImpl) getMarketplace(
	ctx context.Context,
) (*domain.Marketplace, error) {
	var marketplace domain.Marketplace
	key := domain.MarketplaceAddress().String()
	if err := m.store.get(ctx, key, &marketplace); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrMarketplaceNotFound
		}
		return nil, err
	}
	return &marketplace, nil
}
