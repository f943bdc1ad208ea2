package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Recovery converts a panic anywhere below it into an ErrPanic error
// and logs it, so a broken handler fails the tx instead of the node.
type Recovery struct{}

var _ quorum.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (_ *quorum.CheckResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (_ *quorum.DeliverResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

func logPanic(ctx quorum.Context, err *error) {
	if errors.ErrPanic.Is(*err) {
		quorum.GetLogger(ctx).Error("Recovered from panic", "err", *err)
	}
}
