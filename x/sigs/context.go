package sigs

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx quorum.Context, signers []quorum.Condition) quorum.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reveals the conditions of all verified signatures.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx quorum.Context) []quorum.Condition {
	val, _ := ctx.Value(contextKeySigners).([]quorum.Condition)
	return val
}

// HasAddress returns true if the address signed the current Context.
func (a Authenticate) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
