package domain

import "time"

// AssetUnit is the quantity of an asset moved by a settlement.
const AssetUnit = uint64(1)

// Settlement describes the value and asset movements of a purchase:
// SellerAmount goes from buyer to seller, Fee from buyer to the marketplace
// authority and one unit of the asset from seller to buyer.
type Settlement struct {
	AssetID      Pubkey
	Seller       Pubkey
	Buyer        Pubkey
	FeeRecipient Pubkey
	Price        uint64
	Fee          uint64
	SellerAmount uint64
	SettledAt    int64
}

// NewSettlement validates the purchase of a listing at the agreed price and
// computes the price split.
func NewSettlement(
	listing *Listing, marketplace *Marketplace,
	buyer, feeRecipient Pubkey, agreedPrice uint64,
) (*Settlement, error) {
	if !listing.IsActive {
		return nil, ErrListingNotActive
	}
	if listing.Price != agreedPrice {
		return nil, ErrListingPriceChanged
	}
	if !marketplace.IsFeeRecipient(feeRecipient) {
		return nil, ErrInvalidFeeRecipient
	}

	fee, sellerAmount, err := marketplace.SplitPrice(listing.Price)
	if err != nil {
		return nil, err
	}

	return &Settlement{
		AssetID:      listing.AssetID,
		Seller:       listing.Seller,
		Buyer:        buyer,
		FeeRecipient: feeRecipient,
		Price:        listing.Price,
		Fee:          fee,
		SellerAmount: sellerAmount,
	}, nil
}

// CheckBuyerFunds makes sure the buyer can pay the full price.
func (s *Settlement) CheckBuyerFunds(buyer *Account) error {
	if buyer.Balance < s.Price {
		return ErrInsufficientFunds
	}
	return nil
}

// CheckSellerOwnership makes sure the seller still owns the asset.
func (s *Settlement) CheckSellerOwnership(seller *Holding) error {
	if seller.Owner != s.Seller || seller.AssetID != s.AssetID ||
		!seller.Owns(AssetUnit) {
		return ErrAssetOwnershipMismatch
	}
	return nil
}

// Finalize deactivates the listing and records the sale on the marketplace.
// If any of the two fails, neither is modified.
func (s *Settlement) Finalize(listing *Listing, marketplace *Marketplace) error {
	if !listing.IsActive {
		return ErrListingNotActive
	}

	updated := *marketplace
	if err := updated.RecordSale(s.Price); err != nil {
		return err
	}
	if err := listing.Deactivate(); err != nil {
		return err
	}

	*marketplace = updated
	s.SettledAt = time.Now().Unix()
	return nil
}
