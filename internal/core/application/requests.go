package application

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/pkg/auth"
	"github.com/btcsuite/btcd/btcec/v2"
)

// Signed operations, each one is a distinct signature domain.
const (
	OpInitialize      = "initialize"
	OpRegisterCatalog = "register_catalog"
	OpVerifyCatalog   = "verify_catalog"
	OpIssueItem       = "issue_item"
	OpCreateListing   = "create_listing"
	OpBuy             = "buy"
	OpAddWebhook      = "add_webhook"
	OpRemoveWebhook   = "remove_webhook"
)

// Authorization proves control of Signer over a request until Expiry.
type Authorization struct {
	Signer domain.Pubkey `json:"signer"`
	// Unix seconds.
	Expiry int64 `json:"expiry"`
	// Hex encoded 64-byte schnorr signature.
	Signature string `json:"signature"`
}

// SignedRequest is any request carrying an Authorization.
type SignedRequest interface {
	Operation() string
	SignedFields() [][]byte
	GetAuthorization() Authorization
}

// SignRequest returns the Authorization of the given key for req.
func SignRequest(
	key *btcec.PrivateKey, req SignedRequest, expiry int64,
) (Authorization, error) {
	sig, err := auth.Sign(key, req.Operation(), expiry, req.SignedFields()...)
	if err != nil {
		return Authorization{}, err
	}
	signer, err := domain.NewPubkey(auth.XOnlyPubkey(key))
	if err != nil {
		return Authorization{}, err
	}
	return Authorization{
		Signer:    signer,
		Expiry:    expiry,
		Signature: hex.EncodeToString(sig),
	}, nil
}

type InitializeRequest struct {
	Authority      domain.Pubkey `json:"authority"`
	FeeBasisPoints uint16        `json:"feeBasisPoints"`
	Auth           Authorization `json:"auth"`
}

func (r InitializeRequest) Operation() string { return OpInitialize }
func (r InitializeRequest) SignedFields() [][]byte {
	return [][]byte{r.Authority.Bytes(), uint16Bytes(r.FeeBasisPoints)}
}
func (r InitializeRequest) GetAuthorization() Authorization { return r.Auth }

type RegisterCatalogRequest struct {
	Authority   domain.Pubkey `json:"authority"`
	Name        string        `json:"name"`
	Symbol      string        `json:"symbol"`
	Description string        `json:"description"`
	Auth        Authorization `json:"auth"`
}

func (r RegisterCatalogRequest) Operation() string { return OpRegisterCatalog }
func (r RegisterCatalogRequest) SignedFields() [][]byte {
	return [][]byte{
		r.Authority.Bytes(),
		[]byte(r.Name), []byte(r.Symbol), []byte(r.Description),
	}
}
func (r RegisterCatalogRequest) GetAuthorization() Authorization { return r.Auth }

type VerifyCatalogRequest struct {
	Catalog domain.Pubkey `json:"catalog"`
	Auth    Authorization `json:"auth"`
}

func (r VerifyCatalogRequest) Operation() string { return OpVerifyCatalog }
func (r VerifyCatalogRequest) SignedFields() [][]byte {
	return [][]byte{r.Catalog.Bytes()}
}
func (r VerifyCatalogRequest) GetAuthorization() Authorization { return r.Auth }

type IssueItemRequest struct {
	Catalog domain.Pubkey `json:"catalog"`
	Owner   domain.Pubkey `json:"owner"`
	Name    string        `json:"name"`
	URI     string        `json:"uri"`
	Auth    Authorization `json:"auth"`
}

func (r IssueItemRequest) Operation() string { return OpIssueItem }
func (r IssueItemRequest) SignedFields() [][]byte {
	return [][]byte{
		r.Catalog.Bytes(), r.Owner.Bytes(), []byte(r.Name), []byte(r.URI),
	}
}
func (r IssueItemRequest) GetAuthorization() Authorization { return r.Auth }

type CreateListingRequest struct {
	Seller  domain.Pubkey `json:"seller"`
	AssetID domain.Pubkey `json:"assetId"`
	Price   uint64        `json:"price"`
	Auth    Authorization `json:"auth"`
}

func (r CreateListingRequest) Operation() string { return OpCreateListing }
func (r CreateListingRequest) SignedFields() [][]byte {
	return [][]byte{r.Seller.Bytes(), r.AssetID.Bytes(), uint64Bytes(r.Price)}
}
func (r CreateListingRequest) GetAuthorization() Authorization { return r.Auth }

// BuyRequest carries the listing the buyer agreed on, identified by its
// creation time, the price and the fee recipient the buyer expects. All of
// them are checked against the stored state.
type BuyRequest struct {
	Buyer        domain.Pubkey `json:"buyer"`
	AssetID      domain.Pubkey `json:"assetId"`
	ListedAt     int64         `json:"listedAt"`
	Price        uint64        `json:"price"`
	FeeRecipient domain.Pubkey `json:"feeRecipient"`
	Auth         Authorization `json:"auth"`
}

func (r BuyRequest) Operation() string { return OpBuy }
func (r BuyRequest) SignedFields() [][]byte {
	return [][]byte{
		r.Buyer.Bytes(), r.AssetID.Bytes(), uint64Bytes(uint64(r.ListedAt)),
		uint64Bytes(r.Price), r.FeeRecipient.Bytes(),
	}
}
func (r BuyRequest) GetAuthorization() Authorization { return r.Auth }

type AddWebhookRequest struct {
	Topic    string        `json:"topic"`
	Endpoint string        `json:"endpoint"`
	Secret   string        `json:"secret"`
	Auth     Authorization `json:"auth"`
}

func (r AddWebhookRequest) Operation() string { return OpAddWebhook }
func (r AddWebhookRequest) SignedFields() [][]byte {
	return [][]byte{[]byte(r.Topic), []byte(r.Endpoint), []byte(r.Secret)}
}
func (r AddWebhookRequest) GetAuthorization() Authorization { return r.Auth }

type RemoveWebhookRequest struct {
	ID   string        `json:"id"`
	Auth Authorization `json:"auth"`
}

func (r RemoveWebhookRequest) Operation() string { return OpRemoveWebhook }
func (r RemoveWebhookRequest) SignedFields() [][]byte {
	return [][]byte{[]byte(r.ID)}
}
func (r RemoveWebhookRequest) GetAuthorization() Authorization { return r.Auth }

func uint16Bytes(n uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, n)
	return b
}

func uint64Bytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
