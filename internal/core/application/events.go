package application

import (
	"encoding/json"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/internal/core/ports"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	TopicListingCreated = "ListingCreated"
	TopicSaleSettled    = "SaleSettled"
)

var supportedTopics = map[string]struct{}{
	TopicListingCreated: {},
	TopicSaleSettled:    {},
	ports.AnyTopic:      {},
}

// eventPublisher notifies subscribers once a change has been committed.
// Delivery is asynchronous and its failures are only logged.
type eventPublisher struct {
	pubsub ports.PubSub
}

func (p eventPublisher) publishListingCreated(listing domain.Listing) {
	p.publish(TopicListingCreated, map[string]interface{}{
		"seller":    listing.Seller,
		"assetId":   listing.AssetID,
		"price":     listing.Price,
		"createdAt": listing.CreatedAt,
	})
}

func (p eventPublisher) publishSaleSettled(
	settlement domain.Settlement, marketplace domain.Marketplace,
) {
	p.publish(TopicSaleSettled, map[string]interface{}{
		"assetId":      settlement.AssetID,
		"seller":       settlement.Seller,
		"buyer":        settlement.Buyer,
		"feeRecipient": settlement.FeeRecipient,
		"price":        settlement.Price,
		"fee":          settlement.Fee,
		"sellerAmount": settlement.SellerAmount,
		"settledAt":    settlement.SettledAt,
		"settlementDate": time.Unix(settlement.SettledAt, 0).
			UTC().Format(time.RFC3339),
		"marketplace": map[string]interface{}{
			"totalVolume": marketplace.TotalVolume,
			"totalSales":  marketplace.TotalSales,
		},
	})
}

func (p eventPublisher) publish(topic string, payload map[string]interface{}) {
	if p.pubsub == nil {
		return
	}

	payload["event"] = topic
	payload["id"] = uuid.New().String()
	message, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Warnf("failed to serialize %s event", topic)
		return
	}

	go func() {
		if err := p.pubsub.Publish(topic, string(message)); err != nil {
			log.WithError(err).Warnf("failed to publish %s event", topic)
		}
	}()
}
