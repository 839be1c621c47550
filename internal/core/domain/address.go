package domain

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const addressTagPrefix = "marketd/address/"

// Namespaces of derived addresses.
const (
	MarketplaceNamespace = "marketplace"
	CatalogNamespace     = "catalog"
	ListingNamespace     = "listing"
	AccountNamespace     = "account"
	AssetNamespace       = "asset"
	HoldingNamespace     = "holding"
	ItemNamespace        = "item"
)

// Address is the storage slot of a record.
type Address [32]byte

// DeriveAddress returns the address for the given namespace and key parts.
// The namespace is the tag of a BIP-340 tagged hash and each part is length
// prefixed, so distinct (namespace, parts) pairs never share a preimage.
func DeriveAddress(namespace string, keyParts ...[]byte) Address {
	msgs := make([][]byte, 0, len(keyParts))
	for _, part := range keyParts {
		buf := make([]byte, 4+len(part))
		binary.BigEndian.PutUint32(buf, uint32(len(part)))
		copy(buf[4:], part)
		msgs = append(msgs, buf)
	}
	hash := chainhash.TaggedHash([]byte(addressTagPrefix+namespace), msgs...)
	return Address(*hash)
}

// MarketplaceAddress is the address of the singleton marketplace ledger.
func MarketplaceAddress() Address {
	return DeriveAddress(MarketplaceNamespace)
}

func CatalogAddress(authority Pubkey) Address {
	return DeriveAddress(CatalogNamespace, authority[:])
}

func ListingAddress(assetID Pubkey) Address {
	return DeriveAddress(ListingNamespace, assetID[:])
}

func AccountAddress(owner Pubkey) Address {
	return DeriveAddress(AccountNamespace, owner[:])
}

func AssetAddress(assetID Pubkey) Address {
	return DeriveAddress(AssetNamespace, assetID[:])
}

func HoldingAddress(assetID, owner Pubkey) Address {
	return DeriveAddress(HoldingNamespace, assetID[:], owner[:])
}

// ItemID returns the id of the index-th item issued by a catalog.
func ItemID(catalogAuthority Pubkey, index uint64) Pubkey {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, index)
	return Pubkey(DeriveAddress(ItemNamespace, catalogAuthority[:], buf))
}

func (a Address) String() string {
	return base58.Encode(a[:])
}
