package ports

import (
	"errors"
	"fmt"

	"github.com/G4F0334/gamemarket/internal/core/domain"
)

var (
	// ErrInvalidSubscription is wrapped by the errors returned when
	// subscribing with invalid arguments.
	ErrInvalidSubscription = errors.New("invalid subscription")
	// ErrSubscriptionNotFound ...
	ErrSubscriptionNotFound = fmt.Errorf("webhook %w", domain.ErrNotFound)
	// ErrTooManyConflicts is returned by RunTransaction when the handler keeps
	// conflicting with concurrent transactions after every retry.
	ErrTooManyConflicts = errors.New(
		"transaction aborted after too many write conflicts",
	)
)
