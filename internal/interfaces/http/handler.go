package httpinterface

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/G4F0334/gamemarket/internal/core/application"
	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/pkg/stats"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type handler struct {
	marketplaceSvc application.MarketplaceService
	catalogSvc     application.CatalogService
	listingSvc     application.ListingService
	settlementSvc  application.SettlementService
	accountSvc     application.AccountService
	webhookSvc     application.WebhookService
}

// NewRouter returns the router exposing the application services of cfg.
func NewRouter(cfg *application.Config) *mux.Router {
	h := &handler{
		marketplaceSvc: cfg.MarketplaceService(),
		catalogSvc:     cfg.CatalogService(),
		listingSvc:     cfg.ListingService(),
		settlementSvc:  cfg.SettlementService(),
		accountSvc:     cfg.AccountService(),
		webhookSvc:     cfg.WebhookService(),
	}

	r := mux.NewRouter()
	r.Use(logger)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(
		stats.Registry, promhttp.HandlerOpts{},
	)).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/marketplace", h.initialize).Methods(http.MethodPost)
	v1.HandleFunc("/marketplace", h.getMarketplace).Methods(http.MethodGet)

	v1.HandleFunc("/catalogs", h.registerCatalog).Methods(http.MethodPost)
	v1.HandleFunc("/catalogs", h.listCatalogs).Methods(http.MethodGet)
	v1.HandleFunc("/catalogs/{authority}", h.getCatalog).Methods(http.MethodGet)
	v1.HandleFunc("/catalogs/{authority}/verify", h.verifyCatalog).
		Methods(http.MethodPost)
	v1.HandleFunc("/catalogs/{authority}/items", h.issueItem).
		Methods(http.MethodPost)
	v1.HandleFunc("/catalogs/{authority}/items", h.listItems).
		Methods(http.MethodGet)

	v1.HandleFunc("/listings", h.createListing).Methods(http.MethodPost)
	v1.HandleFunc("/listings", h.listListings).Methods(http.MethodGet)
	v1.HandleFunc("/listings/{asset}", h.getListing).Methods(http.MethodGet)
	v1.HandleFunc("/listings/{asset}/buy", h.buy).Methods(http.MethodPost)

	v1.HandleFunc("/accounts/{owner}", h.getAccount).Methods(http.MethodGet)
	v1.HandleFunc("/accounts/{owner}/airdrop", h.airdrop).
		Methods(http.MethodPost)

	v1.HandleFunc("/assets/{asset}", h.getAsset).Methods(http.MethodGet)
	v1.HandleFunc("/assets/{asset}/holders/{owner}", h.getHolding).
		Methods(http.MethodGet)

	v1.HandleFunc("/webhooks", h.addWebhook).Methods(http.MethodPost)
	v1.HandleFunc("/webhooks", h.listWebhooks).Methods(http.MethodGet)
	v1.HandleFunc("/webhooks/{id}", h.removeWebhook).Methods(http.MethodDelete)

	return r
}

func logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) initialize(w http.ResponseWriter, r *http.Request) {
	var req application.InitializeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	marketplace, err := h.marketplaceSvc.Initialize(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMarketplaceInfo(marketplace))
}

func (h *handler) getMarketplace(w http.ResponseWriter, r *http.Request) {
	marketplace, err := h.marketplaceSvc.GetMarketplace(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newMarketplaceInfo(marketplace))
}

func (h *handler) registerCatalog(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterCatalogRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	catalog, err := h.catalogSvc.RegisterCatalog(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCatalogInfo(catalog))
}

func (h *handler) listCatalogs(w http.ResponseWriter, r *http.Request) {
	catalogs, err := h.catalogSvc.ListCatalogs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogList(catalogs).toInfoList())
}

func (h *handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	authority, err := pathPubkey(r, "authority")
	if err != nil {
		writeError(w, err)
		return
	}
	catalog, err := h.catalogSvc.GetCatalog(r.Context(), authority)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCatalogInfo(catalog))
}

func (h *handler) verifyCatalog(w http.ResponseWriter, r *http.Request) {
	var req application.VerifyCatalogRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	authority, err := pathPubkey(r, "authority")
	if err != nil {
		writeError(w, err)
		return
	}
	req.Catalog = authority

	catalog, err := h.marketplaceSvc.VerifyCatalog(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCatalogInfo(catalog))
}

func (h *handler) issueItem(w http.ResponseWriter, r *http.Request) {
	var req application.IssueItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	authority, err := pathPubkey(r, "authority")
	if err != nil {
		writeError(w, err)
		return
	}
	req.Catalog = authority

	asset, err := h.catalogSvc.IssueItem(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newAssetInfo(asset))
}

func (h *handler) listItems(w http.ResponseWriter, r *http.Request) {
	authority, err := pathPubkey(r, "authority")
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := h.catalogSvc.ListItems(r.Context(), authority)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assetList(items).toInfoList())
}

func (h *handler) createListing(w http.ResponseWriter, r *http.Request) {
	var req application.CreateListingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	listing, err := h.listingSvc.CreateListing(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newListingInfo(listing))
}

// listListings returns the active listings, or all the listings of a seller
// if the seller query param is set.
func (h *handler) listListings(w http.ResponseWriter, r *http.Request) {
	var (
		listings []domain.Listing
		err      error
	)
	if s := r.URL.Query().Get("seller"); s != "" {
		seller, perr := domain.ParsePubkey(s)
		if perr != nil {
			writeError(w, perr)
			return
		}
		listings, err = h.listingSvc.ListListingsBySeller(r.Context(), seller)
	} else {
		listings, err = h.listingSvc.ListActiveListings(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listingList(listings).toInfoList())
}

func (h *handler) getListing(w http.ResponseWriter, r *http.Request) {
	assetID, err := pathPubkey(r, "asset")
	if err != nil {
		writeError(w, err)
		return
	}
	listing, err := h.listingSvc.GetListing(r.Context(), assetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newListingInfo(listing))
}

func (h *handler) buy(w http.ResponseWriter, r *http.Request) {
	var req application.BuyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	assetID, err := pathPubkey(r, "asset")
	if err != nil {
		writeError(w, err)
		return
	}
	req.AssetID = assetID

	settlement, err := h.settlementSvc.Buy(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSettlementInfo(settlement))
}

func (h *handler) getAccount(w http.ResponseWriter, r *http.Request) {
	owner, err := pathPubkey(r, "owner")
	if err != nil {
		writeError(w, err)
		return
	}
	account, err := h.accountSvc.GetAccount(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAccountInfo(account))
}

func (h *handler) airdrop(w http.ResponseWriter, r *http.Request) {
	var req airdropRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	owner, err := pathPubkey(r, "owner")
	if err != nil {
		writeError(w, err)
		return
	}
	account, err := h.accountSvc.Airdrop(r.Context(), owner, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAccountInfo(account))
}

func (h *handler) getAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := pathPubkey(r, "asset")
	if err != nil {
		writeError(w, err)
		return
	}
	asset, err := h.accountSvc.GetAsset(r.Context(), assetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAssetInfo(asset))
}

func (h *handler) getHolding(w http.ResponseWriter, r *http.Request) {
	assetID, err := pathPubkey(r, "asset")
	if err != nil {
		writeError(w, err)
		return
	}
	owner, err := pathPubkey(r, "owner")
	if err != nil {
		writeError(w, err)
		return
	}
	holding, err := h.accountSvc.GetHolding(r.Context(), assetID, owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newHoldingInfo(holding))
}

func (h *handler) addWebhook(w http.ResponseWriter, r *http.Request) {
	var req application.AddWebhookRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	id, err := h.webhookSvc.AddWebhook(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addWebhookResponse{id})
}

func (h *handler) listWebhooks(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	webhooks, err := h.webhookSvc.ListWebhooks(r.Context(), topic)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, webhooks)
}

func (h *handler) removeWebhook(w http.ResponseWriter, r *http.Request) {
	var req application.RemoveWebhookRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ID = mux.Vars(r)["id"]

	if err := h.webhookSvc.RemoveWebhook(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathPubkey(r *http.Request, name string) (domain.Pubkey, error) {
	return domain.ParsePubkey(mux.Vars(r)[name])
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s", errInvalidBody, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("internal error")
	}
	writeJSON(w, status, errorResponse{err.Error()})
}
