package domain

import (
	"fmt"

	"github.com/G4F0334/gamemarket/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// MaxFeeBasisPoints is 100%.
const MaxFeeBasisPoints = 10000

// Marketplace is the singleton ledger holding the platform authority, the fee
// rate and the cumulative sale statistics.
type Marketplace struct {
	// Platform operator, receiver of every fee.
	Authority Pubkey
	// Fee rate in hundredths of a percent.
	FeeBasisPoints uint16
	// Sum of the gross price of every settled sale.
	TotalVolume uint64
	// Number of settled sales.
	TotalSales uint64
}

// NewMarketplace returns a marketplace with zeroed counters.
func NewMarketplace(authority Pubkey, feeBasisPoints uint16) (*Marketplace, error) {
	if authority.IsZero() {
		return nil, ErrInvalidAuthority
	}
	if !isValidFeeBasisPoints(feeBasisPoints) {
		return nil, ErrInvalidFee
	}
	return &Marketplace{
		Authority:      authority,
		FeeBasisPoints: feeBasisPoints,
	}, nil
}

// Address returns the storage address of the marketplace.
func (m *Marketplace) Address() Address {
	return MarketplaceAddress()
}

// IsFeeRecipient returns whether the given identity is allowed to receive
// the marketplace fee.
func (m *Marketplace) IsFeeRecipient(recipient Pubkey) bool {
	return m.Authority == recipient
}

// SplitPrice splits a price into the marketplace fee and the seller proceeds.
// The fee is floor(price * feeBasisPoints / 10000) and the division
// remainder stays with the seller.
func (m *Marketplace) SplitPrice(price uint64) (fee, sellerAmount uint64, err error) {
	sellerAmount, fee, err = mathutil.LessFee(price, uint64(m.FeeBasisPoints))
	if err != nil {
		return 0, 0, fmt.Errorf(
			"%w: fee of %d at %d basis points",
			ErrArithmeticOverflow, price, m.FeeBasisPoints,
		)
	}
	return fee, sellerAmount, nil
}

// RecordSale adds a settled sale to the statistics. Both counters are left
// untouched if any of them would overflow.
func (m *Marketplace) RecordSale(grossPrice uint64) error {
	totalVolume, err := mathutil.CheckedAdd(m.TotalVolume, grossPrice)
	if err != nil {
		return ErrVolumeOverflow
	}
	totalSales, err := mathutil.CheckedAdd(m.TotalSales, 1)
	if err != nil {
		return ErrVolumeOverflow
	}

	m.TotalVolume = totalVolume
	m.TotalSales = totalSales
	return nil
}

// FeePercentage returns the fee rate as percentage, ie. 250 bps is 2.5.
func (m *Marketplace) FeePercentage() decimal.Decimal {
	return mathutil.BasisPointsToPercentage(uint64(m.FeeBasisPoints))
}

func isValidFeeBasisPoints(fee uint16) bool {
	return fee <= MaxFeeBasisPoints
}
