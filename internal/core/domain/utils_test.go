package domain_test

import (
	"crypto/rand"

	"github.com/G4F0334/gamemarket/internal/core/domain"
)

func randomPubkey() domain.Pubkey {
	var p domain.Pubkey
	//nolint
	rand.Read(p[:])
	return p
}
