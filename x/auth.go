package x

import (
	"context"

	"github.com/iov-one/quorum"
)

// Authenticator reports which conditions authorized the current call.
// Handlers receive one in their constructor, so the signature checking
// tx authentication and the multisig group signer can be combined.
type Authenticator interface {
	GetConditions(quorum.Context) []quorum.Condition
	HasAddress(quorum.Context, quorum.Address) bool
}

type contextKey int

const contextKeyScope contextKey = iota

// WithScope limits what a MultiAuth authenticates for the rest of the
// call to the given addresses. A nested scope replaces the outer one, so
// every address passed in must already be authenticated or be granted
// together with the scope.
func WithScope(ctx quorum.Context, allowed []quorum.Address) quorum.Context {
	scope := make([]quorum.Address, len(allowed))
	copy(scope, allowed)
	return context.WithValue(ctx, contextKeyScope, scope)
}

// inScope is true when ctx has no scope or addr is part of it.
func inScope(ctx quorum.Context, addr quorum.Address) bool {
	scope, ok := ctx.Value(contextKeyScope).([]quorum.Address)
	if !ok {
		return true
	}
	for _, a := range scope {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// MultiAuth authenticates everything any of its members does, limited
// to the scope of ctx if one is set.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions lists each authenticated condition once, in the order
// of the authenticators.
func (m MultiAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	var res []quorum.Condition
	for _, impl := range m {
	next:
		for _, c := range impl.GetConditions(ctx) {
			if !inScope(ctx, c.Address()) {
				continue
			}
			for _, have := range res {
				if have.Equals(c) {
					continue next
				}
			}
			res = append(res, c)
		}
	}
	return res
}

func (m MultiAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	if !inScope(ctx, addr) {
		return false
	}
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// HasAllAddresses reports whether every one of required is
// authenticated.
func HasAllAddresses(ctx quorum.Context, auth Authenticator, required []quorum.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
