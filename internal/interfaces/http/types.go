package httpinterface

import (
	"github.com/G4F0334/gamemarket/internal/core/domain"
)

type marketplaceInfo struct {
	Address        string        `json:"address"`
	Authority      domain.Pubkey `json:"authority"`
	FeeBasisPoints uint16        `json:"feeBasisPoints"`
	FeePercentage  string        `json:"feePercentage"`
	TotalVolume    uint64        `json:"totalVolume"`
	TotalSales     uint64        `json:"totalSales"`
}

func newMarketplaceInfo(m *domain.Marketplace) marketplaceInfo {
	return marketplaceInfo{
		Address:        m.Address().String(),
		Authority:      m.Authority,
		FeeBasisPoints: m.FeeBasisPoints,
		FeePercentage:  m.FeePercentage().String(),
		TotalVolume:    m.TotalVolume,
		TotalSales:     m.TotalSales,
	}
}

type catalogInfo struct {
	Address     string        `json:"address"`
	Authority   domain.Pubkey `json:"authority"`
	Name        string        `json:"name"`
	Symbol      string        `json:"symbol"`
	Description string        `json:"description"`
	TotalItems  uint64        `json:"totalItems"`
	Verified    bool          `json:"verified"`
}

func newCatalogInfo(c *domain.Catalog) catalogInfo {
	return catalogInfo{
		Address:     c.Address().String(),
		Authority:   c.Authority,
		Name:        c.Name,
		Symbol:      c.Symbol,
		Description: c.Description,
		TotalItems:  c.TotalItems,
		Verified:    c.Verified,
	}
}

type catalogList []domain.Catalog

func (l catalogList) toInfoList() []catalogInfo {
	list := make([]catalogInfo, 0, len(l))
	for i := range l {
		list = append(list, newCatalogInfo(&l[i]))
	}
	return list
}

type listingInfo struct {
	Address   string        `json:"address"`
	Seller    domain.Pubkey `json:"seller"`
	AssetID   domain.Pubkey `json:"assetId"`
	Price     uint64        `json:"price"`
	IsActive  bool          `json:"isActive"`
	CreatedAt int64         `json:"createdAt"`
}

func newListingInfo(l *domain.Listing) listingInfo {
	return listingInfo{
		Address:   l.Address().String(),
		Seller:    l.Seller,
		AssetID:   l.AssetID,
		Price:     l.Price,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
	}
}

type listingList []domain.Listing

func (l listingList) toInfoList() []listingInfo {
	list := make([]listingInfo, 0, len(l))
	for i := range l {
		list = append(list, newListingInfo(&l[i]))
	}
	return list
}

type settlementInfo struct {
	AssetID      domain.Pubkey `json:"assetId"`
	Seller       domain.Pubkey `json:"seller"`
	Buyer        domain.Pubkey `json:"buyer"`
	FeeRecipient domain.Pubkey `json:"feeRecipient"`
	Price        uint64        `json:"price"`
	Fee          uint64        `json:"fee"`
	SellerAmount uint64        `json:"sellerAmount"`
	SettledAt    int64         `json:"settledAt"`
}

func newSettlementInfo(s *domain.Settlement) settlementInfo {
	return settlementInfo{
		AssetID:      s.AssetID,
		Seller:       s.Seller,
		Buyer:        s.Buyer,
		FeeRecipient: s.FeeRecipient,
		Price:        s.Price,
		Fee:          s.Fee,
		SellerAmount: s.SellerAmount,
		SettledAt:    s.SettledAt,
	}
}

type accountInfo struct {
	Address string        `json:"address"`
	Owner   domain.Pubkey `json:"owner"`
	Balance uint64        `json:"balance"`
}

func newAccountInfo(a *domain.Account) accountInfo {
	return accountInfo{
		Address: a.Address().String(),
		Owner:   a.Owner,
		Balance: a.Balance,
	}
}

type assetInfo struct {
	Address   string        `json:"address"`
	ID        domain.Pubkey `json:"id"`
	Catalog   domain.Pubkey `json:"catalog"`
	Name      string        `json:"name"`
	URI       string        `json:"uri"`
	Supply    uint64        `json:"supply"`
	CreatedAt int64         `json:"createdAt"`
}

func newAssetInfo(a *domain.Asset) assetInfo {
	return assetInfo{
		Address:   a.Address().String(),
		ID:        a.ID,
		Catalog:   a.Catalog,
		Name:      a.Name,
		URI:       a.URI,
		Supply:    a.Supply,
		CreatedAt: a.CreatedAt,
	}
}

type assetList []domain.Asset

func (l assetList) toInfoList() []assetInfo {
	list := make([]assetInfo, 0, len(l))
	for i := range l {
		list = append(list, newAssetInfo(&l[i]))
	}
	return list
}

type holdingInfo struct {
	Address string        `json:"address"`
	AssetID domain.Pubkey `json:"assetId"`
	Owner   domain.Pubkey `json:"owner"`
	Amount  uint64        `json:"amount"`
}

func newHoldingInfo(h *domain.Holding) holdingInfo {
	return holdingInfo{
		Address: h.Address().String(),
		AssetID: h.AssetID,
		Owner:   h.Owner,
		Amount:  h.Amount,
	}
}

type airdropRequest struct {
	Amount uint64 `json:"amount"`
}

type addWebhookResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}
