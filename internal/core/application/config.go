package application

import (
	"fmt"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/ports"
)

type Config struct {
	RepoManager       ports.RepoManager
	PubSub            ports.PubSub
	SignatureValidity time.Duration
	FaucetEnabled     bool
	FaucetMaxAmount   uint64

	marketplace MarketplaceService
	catalog     CatalogService
	listing     ListingService
	settlement  SettlementService
	account     AccountService
	webhook     WebhookService
}

func (c *Config) Validate() error {
	if c.RepoManager == nil {
		return fmt.Errorf("missing repo manager")
	}
	if c.SignatureValidity < 0 {
		return fmt.Errorf("signature validity must not be negative")
	}
	if c.FaucetEnabled && c.FaucetMaxAmount == 0 {
		return fmt.Errorf("faucet max amount must be greater than zero")
	}
	return nil
}

func (c *Config) MarketplaceService() MarketplaceService {
	if c.marketplace == nil {
		c.marketplace = NewMarketplaceService(c.RepoManager, c.SignatureValidity)
	}
	return c.marketplace
}

func (c *Config) CatalogService() CatalogService {
	if c.catalog == nil {
		c.catalog = NewCatalogService(c.RepoManager, c.SignatureValidity)
	}
	return c.catalog
}

func (c *Config) ListingService() ListingService {
	if c.listing == nil {
		c.listing = NewListingService(
			c.RepoManager, c.PubSub, c.SignatureValidity,
		)
	}
	return c.listing
}

func (c *Config) SettlementService() SettlementService {
	if c.settlement == nil {
		c.settlement = NewSettlementService(
			c.RepoManager, c.PubSub, c.SignatureValidity,
		)
	}
	return c.settlement
}

func (c *Config) AccountService() AccountService {
	if c.account == nil {
		c.account = NewAccountService(
			c.RepoManager, c.FaucetEnabled, c.FaucetMaxAmount,
		)
	}
	return c.account
}

func (c *Config) WebhookService() WebhookService {
	if c.webhook == nil {
		c.webhook = NewWebhookService(
			c.RepoManager, c.PubSub, c.SignatureValidity,
		)
	}
	return c.webhook
}
