package pubsub

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/ports"
	dbbadger "github.com/G4F0334/gamemarket/internal/infrastructure/storage/db/badger"
	"github.com/G4F0334/gamemarket/pkg/circuitbreaker"
	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	"github.com/sony/gobreaker"
	"github.com/timshannon/badgerhold/v4"
	"golang.org/x/sync/errgroup"
)

const (
	pubsubDir = "pubsub"

	DefaultRequestTimeout = 15 * time.Second
)

type service struct {
	store      *badgerhold.Store
	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewService returns a pubsub notifying webhooks with http POST requests.
// Subscriptions are persisted in baseDbDir, or kept in memory if empty.
func NewService(
	baseDbDir string, requestTimeout time.Duration, logger badger.Logger,
) (ports.PubSub, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, pubsubDir)
	}
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	store, err := dbbadger.OpenStore(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening pubsub db: %w", err)
	}

	return &service{
		store:      store,
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhooks"),
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	if err := ws.store.Insert(sub.ID, *sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) Unsubscribe(id string) error {
	if err := ws.store.Delete(id, Subscription{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}

func (ws *service) ListSubscriptionsForTopic(
	topic string,
) ([]ports.Subscription, error) {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		return nil, err
	}
	return subs.toPortable(), nil
}

func (ws *service) Publish(topic string, message string) error {
	subs, err := ws.listSubscriptionsForTopic(topic)
	if err != nil {
		return err
	}

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, topic, message) })
	}
	return eg.Wait()
}

func (ws *service) Close() error {
	return ws.store.Close()
}

func (ws *service) listSubscriptionsForTopic(topic string) (subscriptions, error) {
	if topic == ports.UnspecifiedTopic {
		return ws.findSubscriptions(nil)
	}

	subs, err := ws.findSubscriptions(badgerhold.Where("Event").Eq(topic))
	if err != nil {
		return nil, err
	}
	if topic != ports.AnyTopic {
		subsForAnyTopic, err := ws.findSubscriptions(
			badgerhold.Where("Event").Eq(ports.AnyTopic),
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, subsForAnyTopic...)
	}
	return subs, nil
}

func (ws *service) findSubscriptions(
	query *badgerhold.Query,
) (subscriptions, error) {
	if query == nil {
		query = &badgerhold.Query{}
	}

	var subs subscriptions
	if err := ws.store.Find(&subs, query.SortBy("CreatedAt")); err != nil {
		return nil, err
	}
	return subs, nil
}

func (ws *service) doRequest(sub Subscription, topic, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
			"X-Topic":      topic,
		}
		if sub.IsSecured() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
				Subject:  topic,
				IssuedAt: time.Now().Unix(),
			})
			tokenString, err := token.SignedString([]byte(sub.Secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(sub.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return nil, fmt.Errorf(
				"webhook %s replied with status %d: %s", sub.ID, status, resp,
			)
		}
		return nil, nil
	})

	return err
}
