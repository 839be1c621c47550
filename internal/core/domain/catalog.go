package domain

import (
	"unicode/utf8"

	"github.com/G4F0334/gamemarket/pkg/mathutil"
)

const (
	MaxCatalogNameLength        = 64
	MaxCatalogSymbolLength      = 10
	MaxCatalogDescriptionLength = 256
)

// Catalog is the collection of tradable items of a publisher (ie. a game).
type Catalog struct {
	Authority   Pubkey
	Name        string
	Symbol      string
	Description string
	TotalItems  uint64
	// Set by the marketplace authority only.
	Verified bool
}

// NewCatalog validates the given text fields and returns an unverified
// catalog with no items.
func NewCatalog(authority Pubkey, name, symbol, description string) (*Catalog, error) {
	if authority.IsZero() {
		return nil, ErrInvalidAuthority
	}
	if !isValidText(name, 1, MaxCatalogNameLength) {
		return nil, ErrInvalidCatalogName
	}
	if !isValidText(symbol, 1, MaxCatalogSymbolLength) {
		return nil, ErrInvalidCatalogSymbol
	}
	if !isValidText(description, 0, MaxCatalogDescriptionLength) {
		return nil, ErrInvalidCatalogDescription
	}

	return &Catalog{
		Authority:   authority,
		Name:        name,
		Symbol:      symbol,
		Description: description,
	}, nil
}

func (c *Catalog) Address() Address {
	return CatalogAddress(c.Authority)
}

// NextItemID returns the id for a new item and bumps TotalItems.
func (c *Catalog) NextItemID() (Pubkey, error) {
	totalItems, err := mathutil.CheckedAdd(c.TotalItems, 1)
	if err != nil {
		return Pubkey{}, ErrArithmeticOverflow
	}
	id := ItemID(c.Authority, c.TotalItems)
	c.TotalItems = totalItems
	return id, nil
}

// Verify marks the catalog as verified.
func (c *Catalog) Verify() {
	c.Verified = true
}

// bounds are in bytes.
func isValidText(s string, minLen, maxLen int) bool {
	return utf8.ValidString(s) && len(s) >= minLen && len(s) <= maxLen
}
