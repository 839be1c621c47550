package domain

import (
	"time"

	"github.com/G4F0334/gamemarket/pkg/mathutil"
)

const (
	MaxItemNameLength = 64
	MaxItemURILength  = 200
)

// Asset is a tradable item issued by a catalog.
type Asset struct {
	ID Pubkey
	// Authority of the issuing catalog.
	Catalog   Pubkey
	Name      string
	URI       string
	Supply    uint64
	CreatedAt int64
}

// NewAsset returns a unique item, ie. with supply 1.
func NewAsset(id, catalog Pubkey, name, uri string) (*Asset, error) {
	if !isValidText(name, 1, MaxItemNameLength) {
		return nil, ErrInvalidItemName
	}
	if !isValidText(uri, 0, MaxItemURILength) {
		return nil, ErrInvalidItemURI
	}
	return &Asset{
		ID:        id,
		Catalog:   catalog,
		Name:      name,
		URI:       uri,
		Supply:    1,
		CreatedAt: time.Now().Unix(),
	}, nil
}

func (a *Asset) Address() Address {
	return AssetAddress(a.ID)
}

// Holding is the amount of an asset owned by an identity.
type Holding struct {
	AssetID Pubkey
	Owner   Pubkey
	Amount  uint64
}

// NewHolding returns an empty holding.
func NewHolding(assetID, owner Pubkey) *Holding {
	return &Holding{AssetID: assetID, Owner: owner}
}

func (h *Holding) Address() Address {
	return HoldingAddress(h.AssetID, h.Owner)
}

// Owns returns whether the holder owns at least qty units.
func (h *Holding) Owns(qty uint64) bool {
	return h.Amount >= qty
}

func (h *Holding) IsEmpty() bool {
	return h.Amount == 0
}

// Withdraw removes qty units from the holding.
func (h *Holding) Withdraw(qty uint64) error {
	if qty == 0 {
		return ErrInvalidQuantity
	}
	amount, err := mathutil.CheckedSub(h.Amount, qty)
	if err != nil {
		return ErrAssetOwnershipMismatch
	}
	h.Amount = amount
	return nil
}

// Deposit adds qty units to the holding.
func (h *Holding) Deposit(qty uint64) error {
	if qty == 0 {
		return ErrInvalidQuantity
	}
	amount, err := mathutil.CheckedAdd(h.Amount, qty)
	if err != nil {
		return ErrArithmeticOverflow
	}
	h.Amount = amount
	return nil
}
