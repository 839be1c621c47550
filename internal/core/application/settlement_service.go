package application

import (
	"context"
	"errors"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/internal/core/ports"
	"github.com/G4F0334/gamemarket/pkg/stats"
	log "github.com/sirupsen/logrus"
)

type SettlementService interface {
	// Buy settles an active listing: the buyer pays the price, split between
	// seller and marketplace authority, and receives the asset. Either every
	// change is committed or none is.
	Buy(ctx context.Context, req BuyRequest) (*domain.Settlement, error)
}

type settlementService struct {
	repoManager ports.RepoManager
	authorizer  authorizer
	events      eventPublisher
}

func NewSettlementService(
	repoManager ports.RepoManager, pubsub ports.PubSub,
	signatureValidity time.Duration,
) SettlementService {
	return newSettlementService(
		repoManager, eventPublisher{pubsub}, newAuthorizer(signatureValidity),
	)
}

func newSettlementService(
	repoManager ports.RepoManager, events eventPublisher, authorizer authorizer,
) *settlementService {
	return &settlementService{repoManager, authorizer, events}
}

type settlementResult struct {
	settlement  *domain.Settlement
	marketplace *domain.Marketplace
}

func (s *settlementService) Buy(
	ctx context.Context, req BuyRequest,
) (*domain.Settlement, error) {
	if err := s.authorizer.authorize(req, req.Buyer); err != nil {
		return nil, err
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return s.settle(ctx, req)
		},
	)
	if err != nil {
		stats.RecordSettlement(settlementResultLabel(err), 0)
		log.WithError(err).Debugf("settlement of asset %s failed", req.AssetID)
		return nil, err
	}

	result := res.(settlementResult)
	settlement := result.settlement

	stats.RecordSettlement(stats.ResultSettled, settlement.Price)
	log.Infof(
		"asset %s sold by %s to %s for %d (fee %d)",
		settlement.AssetID, settlement.Seller, settlement.Buyer,
		settlement.Price, settlement.Fee,
	)
	s.events.publishSaleSettled(*settlement, *result.marketplace)

	return settlement, nil
}

// settle runs within a store transaction, thus any error discards every
// change made so far.
func (s *settlementService) settle(
	ctx context.Context, req BuyRequest,
) (settlementResult, error) {
	listingRepo := s.repoManager.ListingRepository()
	marketplaceRepo := s.repoManager.MarketplaceRepository()
	accountRepo := s.repoManager.AccountRepository()
	assetRepo := s.repoManager.AssetRepository()

	listing, err := listingRepo.GetListing(ctx, req.AssetID)
	if err != nil {
		return settlementResult{}, err
	}
	marketplace, err := marketplaceRepo.GetMarketplace(ctx)
	if err != nil {
		return settlementResult{}, err
	}

	settlement, err := domain.NewSettlement(
		listing, marketplace, req.Buyer, req.FeeRecipient, req.Price,
	)
	if err != nil {
		return settlementResult{}, err
	}
	if listing.CreatedAt != req.ListedAt {
		return settlementResult{}, domain.ErrListingReplaced
	}

	buyer, err := accountRepo.GetAccount(ctx, req.Buyer)
	if err != nil {
		return settlementResult{}, err
	}
	if err := settlement.CheckBuyerFunds(buyer); err != nil {
		return settlementResult{}, err
	}

	sellerHolding, err := assetRepo.GetHolding(ctx, listing.AssetID, listing.Seller)
	if err != nil {
		return settlementResult{}, err
	}
	if err := settlement.CheckSellerOwnership(sellerHolding); err != nil {
		return settlementResult{}, err
	}

	if err := accountRepo.TransferValue(
		ctx, settlement.Buyer, settlement.Seller, settlement.SellerAmount,
	); err != nil {
		return settlementResult{}, err
	}
	if err := accountRepo.TransferValue(
		ctx, settlement.Buyer, settlement.FeeRecipient, settlement.Fee,
	); err != nil {
		return settlementResult{}, err
	}
	if err := assetRepo.TransferAsset(
		ctx, settlement.AssetID, settlement.Seller, settlement.Buyer,
		domain.AssetUnit,
	); err != nil {
		return settlementResult{}, err
	}

	if err := settlement.Finalize(listing, marketplace); err != nil {
		return settlementResult{}, err
	}

	if err := listingRepo.UpdateListing(
		ctx, listing.AssetID,
		func(_ *domain.Listing) (*domain.Listing, error) {
			return listing, nil
		},
	); err != nil {
		return settlementResult{}, err
	}
	if err := marketplaceRepo.UpdateMarketplace(
		ctx, func(_ *domain.Marketplace) (*domain.Marketplace, error) {
			return marketplace, nil
		},
	); err != nil {
		return settlementResult{}, err
	}

	return settlementResult{settlement, marketplace}, nil
}

func settlementResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrListingNotActive):
		return stats.ResultNotActive
	case errors.Is(err, domain.ErrInsufficientFunds):
		return stats.ResultInsufficientFunds
	case errors.Is(err, domain.ErrAssetOwnershipMismatch):
		return stats.ResultOwnership
	default:
		return stats.ResultOther
	}
}
