package multisig

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x"
)

type contextKey int // local to the multisig module

const (
	contextKeySigners contextKey = iota
)

// withSigner grants cond for the rest of the call. Only executed
// proposals may do this.
func withSigner(ctx quorum.Context, cond quorum.Condition) quorum.Context {
	prev, _ := ctx.Value(contextKeySigners).([]quorum.Condition)
	signers := append(append([]quorum.Condition{}, prev...), cond)
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reveals the group signers granted by executed proposals.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the granted group signers. May be empty.
func (a Authenticate) GetConditions(ctx quorum.Context) []quorum.Condition {
	val, _ := ctx.Value(contextKeySigners).([]quorum.Condition)
	return val
}

// HasAddress returns true if addr is a granted group signer.
func (a Authenticate) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
