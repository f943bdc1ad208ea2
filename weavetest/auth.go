package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/quorum"
)

// Auth authenticates a fixed set of conditions: Signer, if set, and
// every one of Signers.
type Auth struct {
	Signer  quorum.Condition
	Signers []quorum.Condition
}

func (a *Auth) GetConditions(quorum.Context) []quorum.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	all := make([]quorum.Condition, 0, len(a.Signers)+1)
	return append(append(all, a.Signers...), a.Signer)
}

func (a *Auth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key,
// which lets a test grant different signers per call.
type CtxAuth struct {
	Key string
}

// SetConditions returns ctx authenticating exactly conds.
func (a *CtxAuth) SetConditions(ctx quorum.Context, conds ...quorum.Condition) quorum.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []quorum.Condition:
		return v
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []quorum.Condition, addr quorum.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
