package ports

const (
	AnyTopic         = "*"
	UnspecifiedTopic = ""
)

type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// PubSub defines the methods of a service notifying external endpoints about
// marketplace events.
type PubSub interface {
	// Subscribe adds a new subscription for the requested topic.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id.
	Unsubscribe(id string) error
	// ListSubscriptionsForTopic returns all subscriptions for a topic, those
	// for AnyTopic included.
	ListSubscriptionsForTopic(topic string) ([]Subscription, error)
	// Publish sends the message to every subscription for the topic.
	Publish(topic string, message string) error
	Close() error
}
