package multisig

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
)

// Namespace separates the keys derived by this extension from keys
// derived by any other.
const Namespace = "multisig"

var proposalSeedPrefix = []byte("transaction_nonce")

func proposalSeeds(nonce uint64) [][]byte {
	le := make([]byte, 8)
	binary.LittleEndian.PutUint64(le, nonce)
	return [][]byte{proposalSeedPrefix, le}
}

// DeriveSigner returns the signer key of the group stored at group and
// its canonical bump.
func DeriveSigner(group quorum.Address) (crypto.DerivedKey, uint8, error) {
	return crypto.FindDerivedKey(Namespace, group)
}

// DeriveProposal returns the key a proposal created with nonce is stored
// under and its canonical bump.
func DeriveProposal(nonce uint64) (crypto.DerivedKey, uint8, error) {
	return crypto.FindDerivedKey(Namespace, proposalSeeds(nonce)...)
}

// verifySigner recomputes the signer of g from its stored bump. When want
// is given the derived address must be equal to it.
func verifySigner(g *Group, want quorum.Address) (crypto.DerivedKey, error) {
	return crypto.VerifyDerivedKey(Namespace, uint8(g.SignerBump), want, g.Address)
}

// verifyProposal recomputes the address of p from its nonce and bump.
func verifyProposal(p *Proposal, want quorum.Address) (crypto.DerivedKey, error) {
	return crypto.VerifyDerivedKey(Namespace, uint8(p.Bump), want, proposalSeeds(p.Nonce)...)
}
