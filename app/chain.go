package app

import (
	"reflect"

	"github.com/iov-one/quorum"
)

// Decorators is an ordered decorator stack waiting for its final handler.
// The first decorator sees every tx first.
//
//	app.ChainDecorators(
//	    utils.NewLogging(),
//	    utils.NewRecovery(),
//	    sigs.NewDecorator(),
//	    batch.NewDecorator(codec),
//	    utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators struct {
	chain []quorum.Decorator
}

func ChainDecorators(ds ...quorum.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a new stack with ds appended. Nil decorators, typed nil
// pointers included, are skipped so optional decorators can be passed
// unconditionally. The receiver is never modified.
func (d Decorators) Chain(ds ...quorum.Decorator) Decorators {
	chain := make([]quorum.Decorator, len(d.chain), len(d.chain)+len(ds))
	copy(chain, d.chain)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			chain = append(chain, dec)
		}
	}
	return Decorators{chain: chain}
}

func isNilDecorator(d quorum.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack over h.
func (d Decorators) WithHandler(h quorum.Handler) quorum.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{dec: d.chain[i], next: h}
	}
	return h
}

type step struct {
	dec  quorum.Decorator
	next quorum.Handler
}

func (s step) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return s.dec.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return s.dec.Deliver(ctx, db, tx, s.next)
}
