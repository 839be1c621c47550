package domain_test

import (
	"testing"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestNewListing(t *testing.T) {
	seller, assetID := randomPubkey(), randomPubkey()

	listing, err := domain.NewListing(seller, assetID, 1000)
	require.NoError(t, err)
	require.True(t, listing.IsActive)
	require.False(t, listing.IsSettled())
	require.False(t, listing.CanBeReplaced())
	require.NotZero(t, listing.CreatedAt)
	require.Equal(t, domain.ListingAddress(assetID), listing.Address())

	_, err = domain.NewListing(seller, assetID, 0)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = domain.NewListing(domain.Pubkey{}, assetID, 10)
	require.ErrorIs(t, err, domain.ErrInvalidAuthority)
}

func TestListingDeactivate(t *testing.T) {
	listing, err := domain.NewListing(randomPubkey(), randomPubkey(), 1000)
	require.NoError(t, err)
	createdAt := listing.CreatedAt

	require.NoError(t, listing.Deactivate())
	require.False(t, listing.IsActive)
	require.True(t, listing.IsSettled())
	require.True(t, listing.CanBeReplaced())
	require.Equal(t, createdAt, listing.CreatedAt)

	err = listing.Deactivate()
	require.ErrorIs(t, err, domain.ErrListingNotActive)
}
