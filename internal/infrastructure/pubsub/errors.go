package pubsub

import (
	"fmt"

	"github.com/G4F0334/gamemarket/internal/core/ports"
)

var (
	// ErrMissingTopic is returned when subscribing without a topic.
	ErrMissingTopic = fmt.Errorf("%w: missing topic", ports.ErrInvalidSubscription)
	// ErrInvalidEndpoint is returned if the endpoint is not an http(s) URL.
	ErrInvalidEndpoint = fmt.Errorf(
		"%w: webhook endpoint must be a valid http(s) URL",
		ports.ErrInvalidSubscription,
	)
	// ErrSubscriptionNotFound is returned when unsubscribing an unknown id.
	ErrSubscriptionNotFound = ports.ErrSubscriptionNotFound
)
