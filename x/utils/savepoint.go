package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ quorum.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	cstore, ok := store.(quorum.CacheableKVStore)
	if !s.onCheck || !ok {
		return next.Check(ctx, store, tx)
	}

	var res *quorum.CheckResult
	err := Atomic(cstore, func(db quorum.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	cstore, ok := store.(quorum.CacheableKVStore)
	if !s.onDeliver || !ok {
		return next.Deliver(ctx, store, tx)
	}

	var res *quorum.DeliverResult
	err := Atomic(cstore, func(db quorum.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Atomic runs fn on a cache wrap of db. The writes of fn reach db only if
// fn returns no error.
func Atomic(db quorum.CacheableKVStore, fn func(quorum.KVStore) error) error {
	cache := db.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write savepoint")
	}
	return nil
}
