package dbbadger

import (
	"context"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type catalogRepositoryImpl struct {
	store store
}

func NewCatalogRepositoryImpl(db *badgerhold.Store) domain.CatalogRepository {
	return catalogRepositoryImpl{store{db}}
}

func (c catalogRepositoryImpl) AddCatalog(
	ctx context.Context, catalog *domain.Catalog,
) error {
	key := catalog.Address().String()
	if err := c.store.insert(ctx, key, *catalog); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrCatalogAlreadyRegistered
		}
		return err
	}
	return nil
}

func (c catalogRepositoryImpl) GetCatalog(
	ctx context.Context, authority domain.Pubkey,
) (*domain.Catalog, error) {
	return c.getCatalog(ctx, authority)
}

func (c catalogRepositoryImpl) GetAllCatalogs(
	ctx context.Context,
) ([]domain.Catalog, error) {
	var catalogs []domain.Catalog
	if err := c.store.find(ctx, &catalogs, nil); err != nil {
		return nil, err
	}
	return catalogs, nil
}

func (c catalogRepositoryImpl) UpdateCatalog(
	ctx context.Context,
	authority domain.Pubkey,
	updateFn func(c *domain.Catalog) (*domain.Catalog, error),
) error {
	return c.store.withTx(ctx, func(ctx context.Context) error {
		catalog, err := c.getCatalog(ctx, authority)
		if err != nil {
			return err
		}

		updated, err := updateFn(catalog)
		if err != nil {
			return err
		}

		return c.store.upsert(ctx, updated.Address().String(), *updated)
	})
}

func (c catalogRepositoryImpl) getCatalog(
	ctx context.Context, authority domain.Pubkey,
) (*domain.Catalog, error) {
	var catalog domain.Catalog
	key := domain.CatalogAddress(authority).String()
	if err := c.store.get(ctx, key, &catalog); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrCatalogNotFound
		}
		return nil, err
	}
	return &catalog, nil
}
