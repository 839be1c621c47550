package application

import (
	"context"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/internal/core/ports"
	"github.com/G4F0334/gamemarket/pkg/stats"
	log "github.com/sirupsen/logrus"
)

type ListingService interface {
	// CreateListing puts one unit of an asset owned by the seller on sale.
	CreateListing(
		ctx context.Context, req CreateListingRequest,
	) (*domain.Listing, error)
	GetListing(ctx context.Context, assetID domain.Pubkey) (*domain.Listing, error)
	ListActiveListings(ctx context.Context) ([]domain.Listing, error)
	ListListingsBySeller(
		ctx context.Context, seller domain.Pubkey,
	) ([]domain.Listing, error)
}

type listingService struct {
	repoManager ports.RepoManager
	authorizer  authorizer
	events      eventPublisher
}

func NewListingService(
	repoManager ports.RepoManager, pubsub ports.PubSub,
	signatureValidity time.Duration,
) ListingService {
	return newListingService(
		repoManager, eventPublisher{pubsub}, newAuthorizer(signatureValidity),
	)
}

func newListingService(
	repoManager ports.RepoManager, events eventPublisher, authorizer authorizer,
) *listingService {
	return &listingService{repoManager, authorizer, events}
}

func (s *listingService) CreateListing(
	ctx context.Context, req CreateListingRequest,
) (*domain.Listing, error) {
	if err := s.authorizer.authorize(req, req.Seller); err != nil {
		return nil, err
	}

	listing, err := domain.NewListing(req.Seller, req.AssetID, req.Price)
	if err != nil {
		return nil, err
	}

	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			assetRepo := s.repoManager.AssetRepository()
			if _, err := assetRepo.GetAsset(ctx, listing.AssetID); err != nil {
				return nil, err
			}
			holding, err := assetRepo.GetHolding(ctx, listing.AssetID, listing.Seller)
			if err != nil {
				return nil, err
			}
			if !holding.Owns(domain.AssetUnit) {
				return nil, domain.ErrAssetOwnershipMismatch
			}

			return nil, s.repoManager.ListingRepository().AddListing(ctx, listing)
		},
	); err != nil {
		return nil, err
	}

	stats.ListingsCreatedTotal.Inc()
	log.Infof(
		"listing created for asset %s at price %d", listing.AssetID, listing.Price,
	)
	s.events.publishListingCreated(*listing)

	return listing, nil
}

func (s *listingService) GetListing(
	ctx context.Context, assetID domain.Pubkey,
) (*domain.Listing, error) {
	return s.repoManager.ListingRepository().GetListing(ctx, assetID)
}

func (s *listingService) ListActiveListings(
	ctx context.Context,
) ([]domain.Listing, error) {
	return s.repoManager.ListingRepository().GetActiveListings(ctx)
}

func (s *listingService) ListListingsBySeller(
	ctx context.Context, seller domain.Pubkey,
) ([]domain.Listing, error) {
	return s.repoManager.ListingRepository().GetListingsBySeller(ctx, seller)
}
