package application

import "errors"

var (
	// ErrUnauthorized is returned when the request authorization does not
	// prove control of the identity being written.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrFaucetDisabled ...
	ErrFaucetDisabled = errors.New("faucet is disabled")
	// ErrInvalidAirdropAmount is returned for airdrops of zero or above the
	// faucet cap.
	ErrInvalidAirdropAmount = errors.New("invalid airdrop amount")
	// ErrInvalidTopic is returned when adding a webhook for an unknown event.
	ErrInvalidTopic = errors.New("unknown webhook topic")
	// ErrWebhookManagerNotInitialized is returned when managing webhooks
	// without a pubsub service.
	ErrWebhookManagerNotInitialized = errors.New("webhook manager is not initialized")
)
