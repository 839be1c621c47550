package pubsub

import (
	"fmt"
	"net/url"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/ports"
	"github.com/google/uuid"
)

type Subscription struct {
	ID        string
	Event     string
	Endpoint  string
	Secret    string
	CreatedAt int64
}

type subscriptions []Subscription

func (s subscriptions) toPortable() []ports.Subscription {
	subs := make([]ports.Subscription, 0, len(s))
	for i := range s {
		sub := s[i]
		subs = append(subs, &sub)
	}
	return subs
}

func NewSubscription(event, endpoint, secret string) (*Subscription, error) {
	if len(event) <= 0 {
		return nil, ErrMissingTopic
	}
	u, err := url.ParseRequestURI(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEndpoint, endpoint)
	}

	return &Subscription{
		ID:        uuid.New().String(),
		Event:     event,
		Endpoint:  endpoint,
		Secret:    secret,
		CreatedAt: time.Now().UnixNano(),
	}, nil
}

func (h *Subscription) Topic() string {
	return h.Event
}

func (h *Subscription) Id() string {
	return h.ID
}

func (h *Subscription) NotifyAt() string {
	return h.Endpoint
}

func (h *Subscription) IsSecured() bool {
	return len(h.Secret) > 0
}
