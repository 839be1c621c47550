package domain

import "time"

// Listing is an offer to sell one unit of an asset at a fixed price. Its
// address is derived from the asset id, hence there is at most one listing
// record per asset.
type Listing struct {
	Seller  Pubkey
	AssetID Pubkey
	// Price in the smallest unit of the settlement currency.
	Price uint64
	// True on creation, false once settled. A settled listing never becomes
	// active again.
	IsActive bool
	// Unix time in nanoseconds. Strictly increasing across the listings of
	// the same asset, buyers sign it to pin the listing they agreed on.
	CreatedAt int64
}

// NewListing returns an active listing.
func NewListing(seller, assetID Pubkey, price uint64) (*Listing, error) {
	if price == 0 {
		return nil, ErrInvalidPrice
	}
	if seller.IsZero() {
		return nil, ErrInvalidAuthority
	}
	return &Listing{
		Seller:    seller,
		AssetID:   assetID,
		Price:     price,
		IsActive:  true,
		CreatedAt: time.Now().UnixNano(),
	}, nil
}

func (l *Listing) Address() Address {
	return ListingAddress(l.AssetID)
}

// IsSettled returns whether the listing has been sold.
func (l *Listing) IsSettled() bool {
	return !l.IsActive
}

// CanBeReplaced returns whether a new listing for the same asset may
// overwrite this record.
func (l *Listing) CanBeReplaced() bool {
	return l.IsSettled()
}

// Deactivate moves the listing to its terminal settled state.
func (l *Listing) Deactivate() error {
	if !l.IsActive {
		return ErrListingNotActive
	}
	l.IsActive = false
	return nil
}
