package application

import (
	"context"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// WebhookInfo is a subscription without its secret.
type WebhookInfo struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"isSecured"`
}

type WebhookService interface {
	AddWebhook(ctx context.Context, req AddWebhookRequest) (string, error)
	RemoveWebhook(ctx context.Context, req RemoveWebhookRequest) error
	// ListWebhooks returns the webhooks for topic, all of them if empty.
	ListWebhooks(ctx context.Context, topic string) ([]WebhookInfo, error)
}

type webhookService struct {
	repoManager ports.RepoManager
	pubsub      ports.PubSub
	authorizer  authorizer
}

func NewWebhookService(
	repoManager ports.RepoManager, pubsub ports.PubSub,
	signatureValidity time.Duration,
) WebhookService {
	return &webhookService{
		repoManager, pubsub, newAuthorizer(signatureValidity),
	}
}

func (s *webhookService) AddWebhook(
	ctx context.Context, req AddWebhookRequest,
) (string, error) {
	if s.pubsub == nil {
		return "", ErrWebhookManagerNotInitialized
	}
	if _, ok := supportedTopics[req.Topic]; !ok {
		return "", ErrInvalidTopic
	}
	if err := s.authorizeByMarketplace(ctx, req); err != nil {
		return "", err
	}

	id, err := s.pubsub.Subscribe(req.Topic, req.Endpoint, req.Secret)
	if err != nil {
		return "", err
	}

	log.Infof("added webhook %s for topic %s", id, req.Topic)
	return id, nil
}

func (s *webhookService) RemoveWebhook(
	ctx context.Context, req RemoveWebhookRequest,
) error {
	if s.pubsub == nil {
		return ErrWebhookManagerNotInitialized
	}
	if err := s.authorizeByMarketplace(ctx, req); err != nil {
		return err
	}

	if err := s.pubsub.Unsubscribe(req.ID); err != nil {
		return err
	}

	log.Infof("removed webhook %s", req.ID)
	return nil
}

func (s *webhookService) ListWebhooks(
	_ context.Context, topic string,
) ([]WebhookInfo, error) {
	if s.pubsub == nil {
		return nil, ErrWebhookManagerNotInitialized
	}
	if topic != ports.UnspecifiedTopic {
		if _, ok := supportedTopics[topic]; !ok {
			return nil, ErrInvalidTopic
		}
	}

	subs, err := s.pubsub.ListSubscriptionsForTopic(topic)
	if err != nil {
		return nil, err
	}

	webhooks := make([]WebhookInfo, 0, len(subs))
	for _, sub := range subs {
		webhooks = append(webhooks, WebhookInfo{
			ID:        sub.Id(),
			Topic:     sub.Topic(),
			Endpoint:  sub.NotifyAt(),
			IsSecured: sub.IsSecured(),
		})
	}
	return webhooks, nil
}

// authorizeByMarketplace makes sure the request is signed by the marketplace
// authority.
func (s *webhookService) authorizeByMarketplace(
	ctx context.Context, req SignedRequest,
) error {
	marketplace, err := s.repoManager.MarketplaceRepository().GetMarketplace(ctx)
	if err != nil {
		return err
	}
	return s.authorizer.authorize(req, marketplace.Authority)
}
