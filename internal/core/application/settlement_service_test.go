package application_test

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/G4F0334/gamemarket/internal/core/application"
	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestBuy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		feeBasisPoints       uint16
		price                uint64
		expectedFee          uint64
		expectedSellerAmount uint64
	}{
		{250, 1000, 25, 975},
		{333, 100, 3, 97},
		{0, 500, 0, 500},
		{10000, 500, 500, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("", func(t *testing.T) {
			t.Parallel()
			pubsub := &mockPubSub{}
			messages := pubsub.expectPublish(application.TopicSaleSettled)
			cfg := newTestConfigWithPubSub(t, pubsub)
			authority := initMarketplace(t, cfg, tt.feeBasisPoints)
			publisher := registerCatalog(t, cfg)
			seller, buyer := newIdentity(t), newIdentity(t)
			assetID := issueItem(t, cfg, publisher, seller.pubkey)
			createListing(t, cfg, seller, assetID, tt.price)
			fund(t, cfg, buyer.pubkey, 10000)

			settlement, err := cfg.SettlementService().Buy(
				ctx, buyRequest(t, cfg, buyer, assetID, tt.price, authority.pubkey),
			)
			require.NoError(t, err)
			require.Equal(t, tt.expectedFee, settlement.Fee)
			require.Equal(t, tt.expectedSellerAmount, settlement.SellerAmount)
			require.Equal(t, tt.price, settlement.Fee+settlement.SellerAmount)
			require.NotZero(t, settlement.SettledAt)

			require.Equal(t, 10000-tt.price, balanceOf(t, cfg, buyer.pubkey))
			require.Equal(t, tt.expectedSellerAmount, balanceOf(t, cfg, seller.pubkey))
			require.Equal(t, tt.expectedFee, balanceOf(t, cfg, authority.pubkey))
			require.True(t, holds(t, cfg, assetID, buyer.pubkey))
			require.False(t, holds(t, cfg, assetID, seller.pubkey))

			listing, err := cfg.ListingService().GetListing(ctx, assetID)
			require.NoError(t, err)
			require.False(t, listing.IsActive)

			marketplace, err := cfg.MarketplaceService().GetMarketplace(ctx)
			require.NoError(t, err)
			require.Equal(t, tt.price, marketplace.TotalVolume)
			require.Equal(t, uint64(1), marketplace.TotalSales)

			message := nextMessage(t, messages)
			pubsub.AssertCalled(t, "Publish", application.TopicSaleSettled, message)

			payload := map[string]interface{}{}
			require.NoError(t, json.Unmarshal([]byte(message), &payload))
			require.Equal(t, buyer.pubkey.String(), payload["buyer"])
			require.Equal(t, float64(tt.expectedFee), payload["fee"])
		})
	}
}

func TestBuySettledListing(t *testing.T) {
	t.Parallel()
	cfg, _ := newTestConfig(t)
	authority := initMarketplace(t, cfg, 250)
	publisher := registerCatalog(t, cfg)
	seller, buyer, other := newIdentity(t), newIdentity(t), newIdentity(t)
	assetID := issueItem(t, cfg, publisher, seller.pubkey)
	createListing(t, cfg, seller, assetID, 1000)
	fund(t, cfg, buyer.pubkey, 1000)
	fund(t, cfg, other.pubkey, 1000)

	_, err := cfg.SettlementService().Buy(
		ctx, buyRequest(t, cfg, buyer, assetID, 1000, authority.pubkey),
	)
	require.NoError(t, err)

	_, err = cfg.SettlementService().Buy(
		ctx, buyRequest(t, cfg, other, assetID, 1000, authority.pubkey),
	)
	require.ErrorIs(t, err, domain.ErrListingNotActive)

	require.Equal(t, uint64(1000), balanceOf(t, cfg, other.pubkey))
	require.Equal(t, uint64(975), balanceOf(t, cfg, seller.pubkey))
	require.Equal(t, uint64(25), balanceOf(t, cfg, authority.pubkey))
	marketplace, err := cfg.MarketplaceService().GetMarketplace(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), marketplace.TotalVolume)
	require.Equal(t, uint64(1), marketplace.TotalSales)

	// The new owner can list the asset again, overwriting the settled listing.
	createListing(t, cfg, buyer, assetID, 3000)
	listing, err := cfg.ListingService().GetListing(ctx, assetID)
	require.NoError(t, err)
	require.True(t, listing.IsActive)
	require.Equal(t, buyer.pubkey, listing.Seller)

	// The former owner cannot.
	req := application.CreateListingRequest{
		Seller: seller.pubkey, AssetID: assetID, Price: 10,
	}
	req.Auth = seller.sign(t, req)
	_, err = cfg.ListingService().CreateListing(ctx, req)
	require.ErrorIs(t, err, domain.ErrAssetOwnershipMismatch)
}

func TestFailingBuy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		// buy returns the request to send, after optionally changing the state.
		buy         func(t *testing.T, s *scenario) application.BuyRequest
		expectedErr error
	}{
		{
			name: "insufficient funds",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				poor := newIdentity(t)
				fund(t, s.cfg, poor.pubkey, s.price-1)
				return buyRequest(t, s.cfg, poor, s.assetID, s.price, s.authority.pubkey)
			},
			expectedErr: domain.ErrInsufficientFunds,
		},
		{
			name: "price changed",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				return buyRequest(t, s.cfg, s.buyer, s.assetID, s.price-1, s.authority.pubkey)
			},
			expectedErr: domain.ErrListingPriceChanged,
		},
		{
			name: "fee diversion",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				return buyRequest(t, s.cfg, s.buyer, s.assetID, s.price, s.buyer.pubkey)
			},
			expectedErr: domain.ErrInvalidFeeRecipient,
		},
		{
			name: "seller does not own the asset anymore",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				err := s.cfg.RepoManager.AssetRepository().TransferAsset(
					ctx, s.assetID, s.seller.pubkey, newIdentity(t).pubkey, 1,
				)
				require.NoError(t, err)
				return buyRequest(t, s.cfg, s.buyer, s.assetID, s.price, s.authority.pubkey)
			},
			expectedErr: domain.ErrAssetOwnershipMismatch,
		},
		{
			name: "listing replaced",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				req := buyRequest(t, s.cfg, s.buyer, s.assetID, s.price, s.authority.pubkey)
				req.ListedAt--
				req.Auth = s.buyer.sign(t, req)
				return req
			},
			expectedErr: domain.ErrListingReplaced,
		},
		{
			name: "seller balance overflows",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				setBalance(t, s.cfg, s.seller.pubkey, math.MaxUint64-10)
				return buyRequest(t, s.cfg, s.buyer, s.assetID, s.price, s.authority.pubkey)
			},
			expectedErr: domain.ErrArithmeticOverflow,
		},
		{
			name: "fee recipient balance overflows",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				setBalance(t, s.cfg, s.authority.pubkey, math.MaxUint64-10)
				return buyRequest(t, s.cfg, s.buyer, s.assetID, s.price, s.authority.pubkey)
			},
			expectedErr: domain.ErrArithmeticOverflow,
		},
		{
			name: "marketplace volume overflows",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				err := s.cfg.RepoManager.MarketplaceRepository().UpdateMarketplace(
					ctx, func(m *domain.Marketplace) (*domain.Marketplace, error) {
						m.TotalVolume = math.MaxUint64 - 10
						return m, nil
					},
				)
				require.NoError(t, err)
				return buyRequest(t, s.cfg, s.buyer, s.assetID, s.price, s.authority.pubkey)
			},
			expectedErr: domain.ErrVolumeOverflow,
		},
		{
			name: "listing not found",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				return buyRequest(t, s.cfg, s.buyer, newIdentity(t).pubkey, s.price, s.authority.pubkey)
			},
			expectedErr: domain.ErrListingNotFound,
		},
		{
			name: "not signed by buyer",
			buy: func(t *testing.T, s *scenario) application.BuyRequest {
				req := buyRequest(t, s.cfg, s.seller, s.assetID, s.price, s.authority.pubkey)
				req.Buyer = s.buyer.pubkey
				return req
			},
			expectedErr: application.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newScenario(t, 250, 1000)
			req := tt.buy(t, s)

			buyerBalance := balanceOf(t, s.cfg, req.Buyer)
			sellerBalance := balanceOf(t, s.cfg, s.seller.pubkey)
			authorityBalance := balanceOf(t, s.cfg, s.authority.pubkey)
			sellerHolds := holds(t, s.cfg, s.assetID, s.seller.pubkey)
			marketplace, err := s.cfg.MarketplaceService().GetMarketplace(ctx)
			require.NoError(t, err)

			_, err = s.cfg.SettlementService().Buy(ctx, req)
			require.ErrorIs(t, err, tt.expectedErr)

			require.Equal(t, buyerBalance, balanceOf(t, s.cfg, req.Buyer))
			require.Equal(t, sellerBalance, balanceOf(t, s.cfg, s.seller.pubkey))
			require.Equal(t, authorityBalance, balanceOf(t, s.cfg, s.authority.pubkey))
			require.Equal(t, sellerHolds, holds(t, s.cfg, s.assetID, s.seller.pubkey))
			require.False(t, holds(t, s.cfg, s.assetID, req.Buyer))

			listing, err := s.cfg.ListingService().GetListing(ctx, s.assetID)
			require.NoError(t, err)
			require.True(t, listing.IsActive)

			current, err := s.cfg.MarketplaceService().GetMarketplace(ctx)
			require.NoError(t, err)
			require.Equal(t, marketplace.TotalVolume, current.TotalVolume)
			require.Equal(t, marketplace.TotalSales, current.TotalSales)
		})
	}
}

func TestBuyAfterRelisting(t *testing.T) {
	t.Parallel()
	s := newScenario(t, 250, 1000)
	other := newIdentity(t)
	fund(t, s.cfg, other.pubkey, s.price)

	req := buyRequest(t, s.cfg, s.buyer, s.assetID, s.price, s.authority.pubkey)
	_, err := s.cfg.SettlementService().Buy(ctx, req)
	require.NoError(t, err)

	// The new owner relists the asset at the same price.
	fund(t, s.cfg, s.buyer.pubkey, s.price)
	createListing(t, s.cfg, s.buyer, s.assetID, s.price)
	listing, err := s.cfg.ListingService().GetListing(ctx, s.assetID)
	require.NoError(t, err)
	require.Greater(t, listing.CreatedAt, req.ListedAt)

	// The request signed for the previous listing cannot be submitted again.
	_, err = s.cfg.SettlementService().Buy(ctx, req)
	require.ErrorIs(t, err, domain.ErrListingReplaced)
	require.Equal(t, s.price, balanceOf(t, s.cfg, s.buyer.pubkey))
	require.Equal(t, uint64(25), balanceOf(t, s.cfg, s.authority.pubkey))

	listing, err = s.cfg.ListingService().GetListing(ctx, s.assetID)
	require.NoError(t, err)
	require.True(t, listing.IsActive)

	_, err = s.cfg.SettlementService().Buy(ctx, buyRequest(
		t, s.cfg, other, s.assetID, s.price, s.authority.pubkey,
	))
	require.NoError(t, err)
	require.True(t, holds(t, s.cfg, s.assetID, other.pubkey))
	require.Equal(t, 2*s.price-25, balanceOf(t, s.cfg, s.buyer.pubkey))
}

func TestConcurrentBuySameListing(t *testing.T) {
	t.Parallel()
	s := newScenario(t, 250, 1000)
	numOfBuyers := 10

	buyers := make([]identity, 0, numOfBuyers)
	for i := 0; i < numOfBuyers; i++ {
		buyer := newIdentity(t)
		fund(t, s.cfg, buyer.pubkey, s.price)
		buyers = append(buyers, buyer)
	}

	wg := &sync.WaitGroup{}
	wg.Add(numOfBuyers)
	errs := make(chan error, numOfBuyers)
	for _, buyer := range buyers {
		req := buyRequest(t, s.cfg, buyer, s.assetID, s.price, s.authority.pubkey)
		go func() {
			defer wg.Done()
			_, err := s.cfg.SettlementService().Buy(ctx, req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, errors.Is(err, domain.ErrListingNotActive), err.Error())
	}
	require.Equal(t, 1, succeeded)

	owners := 0
	for _, buyer := range buyers {
		if holds(t, s.cfg, s.assetID, buyer.pubkey) {
			owners++
			require.Zero(t, balanceOf(t, s.cfg, buyer.pubkey))
		} else {
			require.Equal(t, s.price, balanceOf(t, s.cfg, buyer.pubkey))
		}
	}
	require.Equal(t, 1, owners)

	marketplace, err := s.cfg.MarketplaceService().GetMarketplace(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), marketplace.TotalSales)
	require.Equal(t, s.price, marketplace.TotalVolume)
	require.Equal(t, uint64(975), balanceOf(t, s.cfg, s.seller.pubkey))
}

func TestConcurrentSales(t *testing.T) {
	t.Parallel()
	cfg, _ := newTestConfig(t)
	authority := initMarketplace(t, cfg, 250)
	publisher := registerCatalog(t, cfg)
	numOfSales := 10

	reqs := make([]application.BuyRequest, 0, numOfSales)
	expectedVolume := uint64(0)
	for i := 0; i < numOfSales; i++ {
		seller, buyer := newIdentity(t), newIdentity(t)
		price := uint64(100 * (i + 1))
		assetID := issueItem(t, cfg, publisher, seller.pubkey)
		createListing(t, cfg, seller, assetID, price)
		fund(t, cfg, buyer.pubkey, price)

		reqs = append(reqs, buyRequest(t, cfg, buyer, assetID, price, authority.pubkey))
		expectedVolume += price
	}

	wg := &sync.WaitGroup{}
	wg.Add(numOfSales)
	errs := make(chan error, numOfSales)
	for _, req := range reqs {
		req := req
		go func() {
			defer wg.Done()
			_, err := cfg.SettlementService().Buy(ctx, req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	marketplace, err := cfg.MarketplaceService().GetMarketplace(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(numOfSales), marketplace.TotalSales)
	require.Equal(t, expectedVolume, marketplace.TotalVolume)

	listings, err := cfg.ListingService().ListActiveListings(ctx)
	require.NoError(t, err)
	require.Empty(t, listings)

	expectedFees := uint64(0)
	for _, req := range reqs {
		expectedFees += req.Price * 250 / 10000
		require.True(t, holds(t, cfg, req.AssetID, req.Buyer))
	}
	require.Equal(t, expectedFees, balanceOf(t, cfg, authority.pubkey))
}

type scenario struct {
	cfg       *application.Config
	authority identity
	seller    identity
	buyer     identity
	assetID   domain.Pubkey
	price     uint64
}

// newScenario sets up an active listing and a buyer funded with its price.
func newScenario(t *testing.T, feeBasisPoints uint16, price uint64) *scenario {
	cfg, _ := newTestConfig(t)
	authority := initMarketplace(t, cfg, feeBasisPoints)
	publisher := registerCatalog(t, cfg)
	seller, buyer := newIdentity(t), newIdentity(t)
	assetID := issueItem(t, cfg, publisher, seller.pubkey)
	createListing(t, cfg, seller, assetID, price)
	fund(t, cfg, buyer.pubkey, price)

	return &scenario{cfg, authority, seller, buyer, assetID, price}
}

func setBalance(
	t *testing.T, cfg *application.Config, owner domain.Pubkey, balance uint64,
) {
	err := cfg.RepoManager.AccountRepository().UpdateAccount(
		ctx, owner, func(a *domain.Account) (*domain.Account, error) {
			a.Balance = balance
			return a, nil
		},
	)
	require.NoError(t, err)
}
