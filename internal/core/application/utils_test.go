package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/application"
	"github.com/G4F0334/gamemarket/internal/core/domain"
	dbbadger "github.com/G4F0334/gamemarket/internal/infrastructure/storage/db/badger"
	"github.com/G4F0334/gamemarket/pkg/auth"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const faucetMaxAmount = uint64(1_000_000)

var ctx = context.Background()

type identity struct {
	key    *btcec.PrivateKey
	pubkey domain.Pubkey
}

func newIdentity(t *testing.T) identity {
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pubkey, err := domain.NewPubkey(auth.XOnlyPubkey(key))
	require.NoError(t, err)
	return identity{key, pubkey}
}

func (i identity) sign(
	t *testing.T, req application.SignedRequest,
) application.Authorization {
	return i.signWithExpiry(t, req, time.Now().Add(time.Minute).Unix())
}

func (i identity) signWithExpiry(
	t *testing.T, req application.SignedRequest, expiry int64,
) application.Authorization {
	reqAuth, err := application.SignRequest(i.key, req, expiry)
	require.NoError(t, err)
	return reqAuth
}

func newTestConfig(t *testing.T) (*application.Config, *mockPubSub) {
	pubsub := &mockPubSub{}
	return newTestConfigWithPubSub(t, pubsub), pubsub
}

// newTestConfigWithPubSub makes pubsub accept any event published by the
// services, on top of the expectations set so far.
func newTestConfigWithPubSub(
	t *testing.T, pubsub *mockPubSub,
) *application.Config {
	repoManager, err := dbbadger.NewRepoManager("", 0, nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	pubsub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	cfg := &application.Config{
		RepoManager:     repoManager,
		PubSub:          pubsub,
		FaucetEnabled:   true,
		FaucetMaxAmount: faucetMaxAmount,
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

// initMarketplace initializes the marketplace and returns its authority.
func initMarketplace(
	t *testing.T, cfg *application.Config, feeBasisPoints uint16,
) identity {
	authority := newIdentity(t)
	req := application.InitializeRequest{
		Authority:      authority.pubkey,
		FeeBasisPoints: feeBasisPoints,
	}
	req.Auth = authority.sign(t, req)

	_, err := cfg.MarketplaceService().Initialize(ctx, req)
	require.NoError(t, err)
	return authority
}

// registerCatalog registers a new catalog and returns its authority.
func registerCatalog(t *testing.T, cfg *application.Config) identity {
	publisher := newIdentity(t)
	req := application.RegisterCatalogRequest{
		Authority: publisher.pubkey,
		Name:      "Dungeon Loot",
		Symbol:    "LOOT",
	}
	req.Auth = publisher.sign(t, req)

	_, err := cfg.CatalogService().RegisterCatalog(ctx, req)
	require.NoError(t, err)
	return publisher
}

func issueItem(
	t *testing.T, cfg *application.Config, publisher identity,
	owner domain.Pubkey,
) domain.Pubkey {
	req := application.IssueItemRequest{
		Catalog: publisher.pubkey,
		Owner:   owner,
		Name:    "Sword of Dawn",
		URI:     "https://assets.example.com/sword.json",
	}
	req.Auth = publisher.sign(t, req)

	asset, err := cfg.CatalogService().IssueItem(ctx, req)
	require.NoError(t, err)
	return asset.ID
}

func createListing(
	t *testing.T, cfg *application.Config, seller identity,
	assetID domain.Pubkey, price uint64,
) {
	req := application.CreateListingRequest{
		Seller:  seller.pubkey,
		AssetID: assetID,
		Price:   price,
	}
	req.Auth = seller.sign(t, req)

	_, err := cfg.ListingService().CreateListing(ctx, req)
	require.NoError(t, err)
}

// buyRequest returns a request for the current listing of the asset, if
// any.
func buyRequest(
	t *testing.T, cfg *application.Config, buyer identity,
	assetID domain.Pubkey, price uint64, feeRecipient domain.Pubkey,
) application.BuyRequest {
	req := application.BuyRequest{
		Buyer:        buyer.pubkey,
		AssetID:      assetID,
		Price:        price,
		FeeRecipient: feeRecipient,
	}
	if listing, err := cfg.ListingService().GetListing(ctx, assetID); err == nil {
		req.ListedAt = listing.CreatedAt
	}
	req.Auth = buyer.sign(t, req)
	return req
}

func fund(
	t *testing.T, cfg *application.Config, owner domain.Pubkey, amount uint64,
) {
	_, err := cfg.AccountService().Airdrop(ctx, owner, amount)
	require.NoError(t, err)
}

func balanceOf(
	t *testing.T, cfg *application.Config, owner domain.Pubkey,
) uint64 {
	account, err := cfg.AccountService().GetAccount(ctx, owner)
	require.NoError(t, err)
	return account.Balance
}

func holds(
	t *testing.T, cfg *application.Config, assetID, owner domain.Pubkey,
) bool {
	holding, err := cfg.AccountService().GetHolding(ctx, assetID, owner)
	require.NoError(t, err)
	return holding.Owns(domain.AssetUnit)
}

// nextMessage waits for the next message sent on the channel.
func nextMessage(t *testing.T, messages <-chan string) string {
	var message string
	require.Eventually(t, func() bool {
		select {
		case message = <-messages:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	return message
}
