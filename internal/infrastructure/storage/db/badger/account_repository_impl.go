package dbbadger

import (
	"context"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type accountRepositoryImpl struct {
	store store
}

func NewAccountRepositoryImpl(db *badgerhold.Store) domain.AccountRepository {
	return accountRepositoryImpl{store{db}}
}

func (a accountRepositoryImpl) GetAccount(
	ctx context.Context, owner domain.Pubkey,
) (*domain.Account, error) {
	return a.getAccount(ctx, owner)
}

func (a accountRepositoryImpl) UpdateAccount(
	ctx context.Context,
	owner domain.Pubkey,
	updateFn func(a *domain.Account) (*domain.Account, error),
) error {
	return a.store.withTx(ctx, func(ctx context.Context) error {
		account, err := a.getAccount(ctx, owner)
		if err != nil {
			return err
		}

		updated, err := updateFn(account)
		if err != nil {
			return err
		}

		return a.store.upsert(ctx, updated.Address().String(), *updated)
	})
}

func (a accountRepositoryImpl) TransferValue(
	ctx context.Context, from, to domain.Pubkey, amount uint64,
) error {
	if amount == 0 {
		return nil
	}

	return a.store.withTx(ctx, func(ctx context.Context) error {
		sender, err := a.getAccount(ctx, from)
		if err != nil {
			return err
		}
		if err := sender.Debit(amount); err != nil {
			return err
		}

		if from == to {
			return nil
		}

		receiver, err := a.getAccount(ctx, to)
		if err != nil {
			return err
		}
		if err := receiver.Credit(amount); err != nil {
			return err
		}

		if err := a.store.upsert(
			ctx, sender.Address().String(), *sender,
		); err != nil {
			return err
		}
		return a.store.upsert(ctx, receiver.Address().String(), *receiver)
	})
}

func (a accountRepositoryImpl) getAccount(
	ctx context.Context, owner domain.Pubkey,
) (*domain.Account, error) {
	var account domain.Account
	key := domain.AccountAddress(owner).String()
	if err := a.store.get(ctx, key, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.NewAccount(owner), nil
		}
		return nil, err
	}
	return &account, nil
}
