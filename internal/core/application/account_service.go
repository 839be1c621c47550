package application

import (
	"context"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

type AccountService interface {
	GetAccount(ctx context.Context, owner domain.Pubkey) (*domain.Account, error)
	// Airdrop credits the account with amount out of thin air, if the faucet
	// is enabled.
	Airdrop(
		ctx context.Context, owner domain.Pubkey, amount uint64,
	) (*domain.Account, error)
	GetAsset(ctx context.Context, assetID domain.Pubkey) (*domain.Asset, error)
	GetHolding(
		ctx context.Context, assetID, owner domain.Pubkey,
	) (*domain.Holding, error)
}

type accountService struct {
	repoManager     ports.RepoManager
	faucetEnabled   bool
	faucetMaxAmount uint64
}

func NewAccountService(
	repoManager ports.RepoManager, faucetEnabled bool, faucetMaxAmount uint64,
) AccountService {
	return &accountService{repoManager, faucetEnabled, faucetMaxAmount}
}

func (s *accountService) GetAccount(
	ctx context.Context, owner domain.Pubkey,
) (*domain.Account, error) {
	return s.repoManager.AccountRepository().GetAccount(ctx, owner)
}

func (s *accountService) Airdrop(
	ctx context.Context, owner domain.Pubkey, amount uint64,
) (*domain.Account, error) {
	if !s.faucetEnabled {
		return nil, ErrFaucetDisabled
	}
	if amount == 0 || amount > s.faucetMaxAmount {
		return nil, ErrInvalidAirdropAmount
	}
	if owner.IsZero() {
		return nil, domain.ErrInvalidAuthority
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			var account *domain.Account
			if err := s.repoManager.AccountRepository().UpdateAccount(
				ctx, owner, func(a *domain.Account) (*domain.Account, error) {
					if err := a.Credit(amount); err != nil {
						return nil, err
					}
					account = a
					return a, nil
				},
			); err != nil {
				return nil, err
			}
			return account, nil
		},
	)
	if err != nil {
		return nil, err
	}

	log.Debugf("airdropped %d to %s", amount, owner)
	return res.(*domain.Account), nil
}

func (s *accountService) GetAsset(
	ctx context.Context, assetID domain.Pubkey,
) (*domain.Asset, error) {
	return s.repoManager.AssetRepository().GetAsset(ctx, assetID)
}

func (s *accountService) GetHolding(
	ctx context.Context, assetID, owner domain.Pubkey,
) (*domain.Holding, error) {
	if _, err := s.repoManager.AssetRepository().GetAsset(ctx, assetID); err != nil {
		return nil, err
	}
	return s.repoManager.AssetRepository().GetHolding(ctx, assetID, owner)
}
