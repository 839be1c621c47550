package application_test

import (
	"github.com/G4F0334/gamemarket/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// **** PubSub ****

type mockPubSub struct {
	mock.Mock
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

func (m *mockPubSub) Unsubscribe(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockPubSub) ListSubscriptionsForTopic(
	topic string,
) ([]ports.Subscription, error) {
	args := m.Called(topic)

	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res, args.Error(1)
}

func (m *mockPubSub) Publish(topic, message string) error {
	args := m.Called(topic, message)
	return args.Error(0)
}

func (m *mockPubSub) Close() error {
	args := m.Called()
	return args.Error(0)
}

// expectPublish returns the channel where the messages published for topic
// are sent. It must be called before any other Publish expectation.
func (m *mockPubSub) expectPublish(topic string) <-chan string {
	messages := make(chan string, 10)
	m.On("Publish", topic, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			messages <- args.String(1)
		}).
		Return(nil)
	return messages
}

type mockSubscription struct {
	id, topic, endpoint string
	secured             bool
}

func (s mockSubscription) Topic() string    { return s.topic }
func (s mockSubscription) Id() string       { return s.id }
func (s mockSubscription) IsSecured() bool  { return s.secured }
func (s mockSubscription) NotifyAt() string { return s.endpoint }
