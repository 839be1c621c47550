package application

import (
	"context"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

type MarketplaceService interface {
	// Initialize creates the marketplace ledger, once.
	Initialize(
		ctx context.Context, req InitializeRequest,
	) (*domain.Marketplace, error)
	GetMarketplace(ctx context.Context) (*domain.Marketplace, error)
	// VerifyCatalog marks a catalog as verified, on behalf of the
	// marketplace authority.
	VerifyCatalog(
		ctx context.Context, req VerifyCatalogRequest,
	) (*domain.Catalog, error)
}

type marketplaceService struct {
	repoManager ports.RepoManager
	authorizer  authorizer
}

func NewMarketplaceService(
	repoManager ports.RepoManager, signatureValidity time.Duration,
) MarketplaceService {
	return newMarketplaceService(repoManager, newAuthorizer(signatureValidity))
}

func newMarketplaceService(
	repoManager ports.RepoManager, authorizer authorizer,
) *marketplaceService {
	return &marketplaceService{repoManager, authorizer}
}

func (s *marketplaceService) Initialize(
	ctx context.Context, req InitializeRequest,
) (*domain.Marketplace, error) {
	if err := s.authorizer.authorize(req, req.Authority); err != nil {
		return nil, err
	}

	marketplace, err := domain.NewMarketplace(req.Authority, req.FeeBasisPoints)
	if err != nil {
		return nil, err
	}

	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.MarketplaceRepository().AddMarketplace(
				ctx, marketplace,
			)
		},
	); err != nil {
		return nil, err
	}

	log.Infof(
		"marketplace initialized with authority %s and fee %s%%",
		marketplace.Authority, marketplace.FeePercentage(),
	)
	return marketplace, nil
}

func (s *marketplaceService) GetMarketplace(
	ctx context.Context,
) (*domain.Marketplace, error) {
	return s.repoManager.MarketplaceRepository().GetMarketplace(ctx)
}

func (s *marketplaceService) VerifyCatalog(
	ctx context.Context, req VerifyCatalogRequest,
) (*domain.Catalog, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			marketplace, err := s.repoManager.MarketplaceRepository().
				GetMarketplace(ctx)
			if err != nil {
				return nil, err
			}
			if err := s.authorizer.authorize(
				req, marketplace.Authority,
			); err != nil {
				return nil, err
			}

			var catalog *domain.Catalog
			if err := s.repoManager.CatalogRepository().UpdateCatalog(
				ctx, req.Catalog,
				func(c *domain.Catalog) (*domain.Catalog, error) {
					c.Verify()
					catalog = c
					return c, nil
				},
			); err != nil {
				return nil, err
			}
			return catalog, nil
		},
	)
	if err != nil {
		return nil, err
	}

	log.Infof("catalog %s verified", req.Catalog)
	return res.(*domain.Catalog), nil
}
