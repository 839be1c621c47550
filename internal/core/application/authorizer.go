package application

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/G4F0334/gamemarket/internal/core/domain"
	"github.com/G4F0334/gamemarket/pkg/auth"
)

// DefaultSignatureValidity is the max distance of a request expiry from now.
const DefaultSignatureValidity = 5 * time.Minute

type authorizer struct {
	validity time.Duration
	now      func() time.Time
}

func newAuthorizer(validity time.Duration) authorizer {
	if validity <= 0 {
		validity = DefaultSignatureValidity
	}
	return authorizer{validity, time.Now}
}

// authorize makes sure the request is signed by identity and not expired.
func (a authorizer) authorize(req SignedRequest, identity domain.Pubkey) error {
	reqAuth := req.GetAuthorization()
	if reqAuth.Signer != identity {
		return fmt.Errorf(
			"%w: request for %s signed by %s",
			ErrUnauthorized, identity, reqAuth.Signer,
		)
	}

	now := a.now()
	expiry := time.Unix(reqAuth.Expiry, 0)
	if expiry.Before(now) {
		return fmt.Errorf("%w: request expired", ErrUnauthorized)
	}
	if expiry.After(now.Add(a.validity)) {
		return fmt.Errorf(
			"%w: request expiry must be within %s", ErrUnauthorized, a.validity,
		)
	}

	sig, err := hex.DecodeString(reqAuth.Signature)
	if err != nil {
		return fmt.Errorf("%w: malformed signature", ErrUnauthorized)
	}
	if err := auth.Verify(
		identity.Bytes(), sig, req.Operation(), reqAuth.Expiry,
		req.SignedFields()...,
	); err != nil {
		return fmt.Errorf("%w: %s", ErrUnauthorized, err)
	}
	return nil
}
