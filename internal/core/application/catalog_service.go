package application

import (
	"context"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

type CatalogService interface {
	RegisterCatalog(
		ctx context.Context, req RegisterCatalogRequest,
	) (*domain.Catalog, error)
	GetCatalog(ctx context.Context, authority domain.Pubkey) (*domain.Catalog, error)
	ListCatalogs(ctx context.Context) ([]domain.Catalog, error)
	// IssueItem mints a new unique asset of the catalog, held by the
	// requested owner.
	IssueItem(ctx context.Context, req IssueItemRequest) (*domain.Asset, error)
	// ListItems returns the assets issued by the catalog, oldest first.
	ListItems(ctx context.Context, authority domain.Pubkey) ([]domain.Asset, error)
}

type catalogService struct {
	repoManager ports.RepoManager
	authorizer  authorizer
}

func NewCatalogService(
	repoManager ports.RepoManager, signatureValidity time.Duration,
) CatalogService {
	return newCatalogService(repoManager, newAuthorizer(signatureValidity))
}

func newCatalogService(
	repoManager ports.RepoManager, authorizer authorizer,
) *catalogService {
	return &catalogService{repoManager, authorizer}
}

func (s *catalogService) RegisterCatalog(
	ctx context.Context, req RegisterCatalogRequest,
) (*domain.Catalog, error) {
	if err := s.authorizer.authorize(req, req.Authority); err != nil {
		return nil, err
	}

	catalog, err := domain.NewCatalog(
		req.Authority, req.Name, req.Symbol, req.Description,
	)
	if err != nil {
		return nil, err
	}

	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.CatalogRepository().AddCatalog(ctx, catalog)
		},
	); err != nil {
		return nil, err
	}

	log.Infof("registered catalog %s (%s)", catalog.Name, catalog.Authority)
	return catalog, nil
}

func (s *catalogService) GetCatalog(
	ctx context.Context, authority domain.Pubkey,
) (*domain.Catalog, error) {
	return s.repoManager.CatalogRepository().GetCatalog(ctx, authority)
}

func (s *catalogService) ListCatalogs(
	ctx context.Context,
) ([]domain.Catalog, error) {
	return s.repoManager.CatalogRepository().GetAllCatalogs(ctx)
}

func (s *catalogService) IssueItem(
	ctx context.Context, req IssueItemRequest,
) (*domain.Asset, error) {
	if err := s.authorizer.authorize(req, req.Catalog); err != nil {
		return nil, err
	}
	if req.Owner.IsZero() {
		return nil, domain.ErrInvalidAuthority
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			var asset *domain.Asset
			if err := s.repoManager.CatalogRepository().UpdateCatalog(
				ctx, req.Catalog,
				func(c *domain.Catalog) (*domain.Catalog, error) {
					id, err := c.NextItemID()
					if err != nil {
						return nil, err
					}
					asset, err = domain.NewAsset(id, c.Authority, req.Name, req.URI)
					if err != nil {
						return nil, err
					}
					return c, nil
				},
			); err != nil {
				return nil, err
			}

			if err := s.repoManager.AssetRepository().AddAsset(
				ctx, asset, req.Owner,
			); err != nil {
				return nil, err
			}
			return asset, nil
		},
	)
	if err != nil {
		return nil, err
	}

	asset := res.(*domain.Asset)
	log.Debugf("issued item %s of catalog %s to %s", asset.ID, req.Catalog, req.Owner)
	return asset, nil
}

func (s *catalogService) ListItems(
	ctx context.Context, authority domain.Pubkey,
) ([]domain.Asset, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			if _, err := s.repoManager.CatalogRepository().GetCatalog(
				ctx, authority,
			); err != nil {
				return nil, err
			}
			return s.repoManager.AssetRepository().GetAssetsByCatalog(ctx, authority)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]domain.Asset), nil
}
