package weavetest

import "github.com/iov-one/quorum"

// Decorator counts the calls passing through it. A set CheckErr or
// DeliverErr is returned instead of calling the next handler.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks, delivers int
}

var _ quorum.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checks }
func (d *Decorator) DeliverCallCount() int { return d.delivers }
func (d *Decorator) CallCount() int        { return d.checks + d.delivers }

// Decorate returns h wrapped by d.
func Decorate(h quorum.Handler, d quorum.Decorator) quorum.Handler {
	return decorated{next: h, dec: d}
}

type decorated struct {
	next quorum.Handler
	dec  quorum.Decorator
}

func (d decorated) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
