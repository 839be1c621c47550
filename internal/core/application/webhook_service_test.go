package application_test

import (
	"testing"

	"github.com/G4F0334/gamemarket/internal/core/application"
	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/internal/core/ports"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWebhooks(t *testing.T) {
	t.Parallel()
	cfg, pubsub := newTestConfig(t)
	svc := cfg.WebhookService()

	salesHook := mockSubscription{
		"sales-hook", application.TopicSaleSettled, "http://localhost:8080/sales", true,
	}
	anyHook := mockSubscription{
		"any-hook", ports.AnyTopic, "http://localhost:8080/all", false,
	}
	pubsub.On("Subscribe", salesHook.topic, salesHook.endpoint, "secret").
		Return(salesHook.id, nil)
	pubsub.On("Subscribe", anyHook.topic, anyHook.endpoint, "").
		Return(anyHook.id, nil)
	pubsub.On("ListSubscriptionsForTopic", application.TopicSaleSettled).
		Return([]ports.Subscription{salesHook, anyHook}, nil)
	pubsub.On("ListSubscriptionsForTopic", application.TopicListingCreated).
		Return([]ports.Subscription{anyHook}, nil)
	pubsub.On("Unsubscribe", salesHook.id).Return(nil)
	pubsub.On("Unsubscribe", "unknown").Return(ports.ErrSubscriptionNotFound)

	addReq := application.AddWebhookRequest{
		Topic:    salesHook.topic,
		Endpoint: salesHook.endpoint,
		Secret:   "secret",
	}

	// Webhooks are managed by the marketplace authority only.
	someone := newIdentity(t)
	addReq.Auth = someone.sign(t, addReq)
	_, err := svc.AddWebhook(ctx, addReq)
	require.ErrorIs(t, err, domain.ErrMarketplaceNotFound)

	authority := initMarketplace(t, cfg, 250)
	_, err = svc.AddWebhook(ctx, addReq)
	require.ErrorIs(t, err, application.ErrUnauthorized)
	pubsub.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything, mock.Anything)

	addReq.Auth = authority.sign(t, addReq)
	id, err := svc.AddWebhook(ctx, addReq)
	require.NoError(t, err)
	require.Equal(t, salesHook.id, id)

	anyReq := application.AddWebhookRequest{
		Topic:    anyHook.topic,
		Endpoint: anyHook.endpoint,
	}
	anyReq.Auth = authority.sign(t, anyReq)
	_, err = svc.AddWebhook(ctx, anyReq)
	require.NoError(t, err)

	badReq := application.AddWebhookRequest{
		Topic:    "TradeSettled",
		Endpoint: "http://localhost:8080/all",
	}
	badReq.Auth = authority.sign(t, badReq)
	_, err = svc.AddWebhook(ctx, badReq)
	require.ErrorIs(t, err, application.ErrInvalidTopic)
	pubsub.AssertNumberOfCalls(t, "Subscribe", 2)

	webhooks, err := svc.ListWebhooks(ctx, application.TopicSaleSettled)
	require.NoError(t, err)
	require.Len(t, webhooks, 2)
	require.True(t, webhooks[0].IsSecured)
	require.Equal(t, salesHook.endpoint, webhooks[0].Endpoint)

	webhooks, err = svc.ListWebhooks(ctx, application.TopicListingCreated)
	require.NoError(t, err)
	require.Len(t, webhooks, 1)
	require.False(t, webhooks[0].IsSecured)
	require.Equal(t, ports.AnyTopic, webhooks[0].Topic)

	_, err = svc.ListWebhooks(ctx, "TradeSettled")
	require.ErrorIs(t, err, application.ErrInvalidTopic)
	pubsub.AssertNotCalled(t, "ListSubscriptionsForTopic", "TradeSettled")

	removeReq := application.RemoveWebhookRequest{ID: id}
	removeReq.Auth = someone.sign(t, removeReq)
	require.ErrorIs(
		t, svc.RemoveWebhook(ctx, removeReq), application.ErrUnauthorized,
	)
	pubsub.AssertNotCalled(t, "Unsubscribe", id)

	removeReq.Auth = authority.sign(t, removeReq)
	require.NoError(t, svc.RemoveWebhook(ctx, removeReq))
	pubsub.AssertCalled(t, "Unsubscribe", id)

	removeReq = application.RemoveWebhookRequest{ID: "unknown"}
	removeReq.Auth = authority.sign(t, removeReq)
	require.ErrorIs(
		t, svc.RemoveWebhook(ctx, removeReq), ports.ErrSubscriptionNotFound,
	)
}

func TestWebhooksWithoutPubSub(t *testing.T) {
	t.Parallel()
	cfg, _ := newTestConfig(t)
	svc := application.NewWebhookService(cfg.RepoManager, nil, 0)

	_, err := svc.ListWebhooks(ctx, ports.UnspecifiedTopic)
	require.ErrorIs(t, err, application.ErrWebhookManagerNotInitialized)
}
