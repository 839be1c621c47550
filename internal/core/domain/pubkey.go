package domain

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Pubkey is a 32-byte identity. It identifies both parties (sellers, buyers,
// authorities) and assets.
type Pubkey [32]byte

// NewPubkey returns the Pubkey for the given 32 bytes.
func NewPubkey(b []byte) (Pubkey, error) {
	var p Pubkey
	if len(b) != len(p) {
		return p, ErrInvalidPubkey
	}
	copy(p[:], b)
	return p, nil
}

// ParsePubkey parses the base58 representation of a Pubkey.
func ParsePubkey(s string) (Pubkey, error) {
	p, err := NewPubkey(base58.Decode(s))
	if err != nil {
		return p, fmt.Errorf("%w: %q", err, s)
	}
	return p, nil
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) Bytes() []byte {
	return p[:]
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Compare makes Pubkey usable in store queries.
func (p Pubkey) Compare(other interface{}) (int, error) {
	switch o := other.(type) {
	case Pubkey:
		return bytes.Compare(p[:], o[:]), nil
	case *Pubkey:
		return bytes.Compare(p[:], o[:]), nil
	default:
		return 0, fmt.Errorf("cannot compare pubkey with %T", other)
	}
}
