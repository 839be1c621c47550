// Package auth signs and verifies operation requests with BIP-340 schnorr
// signatures. Identities are 32-byte x-only public keys.
package auth

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const tagPrefix = "marketd/"

var (
	// ErrInvalidPubkey ...
	ErrInvalidPubkey = errors.New("invalid x-only public key")
	// ErrInvalidSignature ...
	ErrInvalidSignature = errors.New("invalid signature")
)

// Digest returns the message signed for the given operation. Every field is
// length-prefixed so that distinct field lists never produce the same
// preimage.
func Digest(operation string, expiry int64, fields ...[]byte) []byte {
	msgs := make([][]byte, 0, len(fields)+1)

	expiryBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(expiryBytes, uint64(expiry))
	msgs = append(msgs, expiryBytes)

	for _, f := range fields {
		buf := make([]byte, 4+len(f))
		binary.BigEndian.PutUint32(buf, uint32(len(f)))
		copy(buf[4:], f)
		msgs = append(msgs, buf)
	}

	return chainhash.TaggedHash([]byte(tagPrefix+operation), msgs...).CloneBytes()
}

// Sign returns the 64-byte schnorr signature of the request digest.
func Sign(
	key *btcec.PrivateKey, operation string, expiry int64, fields ...[]byte,
) ([]byte, error) {
	sig, err := schnorr.Sign(key, Digest(operation, expiry, fields...))
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

// Verify checks the signature of the request digest against the given x-only
// public key.
func Verify(
	pubkey, signature []byte, operation string, expiry int64, fields ...[]byte,
) error {
	key, err := schnorr.ParsePubKey(pubkey)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPubkey, err)
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}
	if !sig.Verify(Digest(operation, expiry, fields...), key) {
		return ErrInvalidSignature
	}
	return nil
}

// XOnlyPubkey returns the 32-byte identity of the given key.
func XOnlyPubkey(key *btcec.PrivateKey) []byte {
	return schnorr.SerializePubKey(key.PubKey())
}
