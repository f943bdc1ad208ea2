package weavetest

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a fresh ed25519 key.
func NewCondition() quorum.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a fresh ed25519 key.
func NewAddress() quorum.Address {
	return NewCondition().Address()
}
