package dbbadger

import (
	"context"
	"fmt"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type assetRepositoryImpl struct {
	store store
}

func NewAssetRepositoryImpl(db *badgerhold.Store) domain.AssetRepository {
	return assetRepositoryImpl{store{db}}
}

func (a assetRepositoryImpl) AddAsset(
	ctx context.Context, asset *domain.Asset, owner domain.Pubkey,
) error {
	return a.store.withTx(ctx, func(ctx context.Context) error {
		key := asset.Address().String()
		if err := a.store.insert(ctx, key, *asset); err != nil {
			if err == badgerhold.ErrKeyExists {
				return fmt.Errorf("asset %s already issued", asset.ID)
			}
			return err
		}

		holding := domain.NewHolding(asset.ID, owner)
		if err := holding.Deposit(asset.Supply); err != nil {
			return err
		}
		return a.store.upsert(ctx, holding.Address().String(), *holding)
	})
}

func (a assetRepositoryImpl) GetAsset(
	ctx context.Context, assetID domain.Pubkey,
) (*domain.Asset, error) {
	return a.getAsset(ctx, assetID)
}

func (a assetRepositoryImpl) GetAssetsByCatalog(
	ctx context.Context, authority domain.Pubkey,
) ([]domain.Asset, error) {
	query := badgerhold.Where("Catalog").Eq(authority).SortBy("CreatedAt")

	var assets []domain.Asset
	if err := a.store.find(ctx, &assets, query); err != nil {
		return nil, err
	}
	return assets, nil
}

func (a assetRepositoryImpl) GetHolding(
	ctx context.Context, assetID, owner domain.Pubkey,
) (*domain.Holding, error) {
	return a.getHolding(ctx, assetID, owner)
}

func (a assetRepositoryImpl) TransferAsset(
	ctx context.Context, assetID, from, to domain.Pubkey, qty uint64,
) error {
	return a.store.withTx(ctx, func(ctx context.Context) error {
		if _, err := a.getAsset(ctx, assetID); err != nil {
			return err
		}

		sender, err := a.getHolding(ctx, assetID, from)
		if err != nil {
			return err
		}
		if err := sender.Withdraw(qty); err != nil {
			return err
		}

		if from == to {
			return nil
		}

		receiver, err := a.getHolding(ctx, assetID, to)
		if err != nil {
			return err
		}
		if err := receiver.Deposit(qty); err != nil {
			return err
		}

		if err := a.writeHolding(ctx, sender); err != nil {
			return err
		}
		return a.writeHolding(ctx, receiver)
	})
}

func (a assetRepositoryImpl) getAsset(
	ctx context.Context, assetID domain.Pubkey,
) (*domain.Asset, error) {
	var asset domain.Asset
	key := domain.AssetAddress(assetID).String()
	if err := a.store.get(ctx, key, &asset); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (a assetRepositoryImpl) getHolding(
	ctx context.Context, assetID, owner domain.Pubkey,
) (*domain.Holding, error) {
	var holding domain.Holding
	key := domain.HoldingAddress(assetID, owner).String()
	if err := a.store.get(ctx, key, &holding); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.NewHolding(assetID, owner), nil
		}
		return nil, err
	}
	return &holding, nil
}

// writeHolding drops empty holdings from the store.
func (a assetRepositoryImpl) writeHolding(
	ctx context.Context, holding *domain.Holding,
) error {
	key := holding.Address().String()
	if holding.IsEmpty() {
		err := a.store.delete(ctx, key, domain.Holding{})
		if err != nil && err != badgerhold.ErrNotFound {
			return err
		}
		return nil
	}
	return a.store.upsert(ctx, key, *holding)
}
