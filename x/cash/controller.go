package cash

import (
	"math"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Controller is the functionality needed by cash.Handler and
// other extensions that need to move funds.
type Controller interface {
	Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (uint64, error)
	MoveCoins(db quorum.KVStore, src, dest quorum.Address, amount uint64) error
	MoveAll(db quorum.KVStore, src, dest quorum.Address) (uint64, error)
	IssueCoins(db quorum.KVStore, dest quorum.Address, amount uint64) error
}

// BaseController is the default implementation of Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by addr.
func (c BaseController) Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (uint64, error) {
	return c.bucket.Balance(db, addr)
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db quorum.KVStore, src, dest quorum.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	have, err := c.bucket.Balance(db, src)
	if err != nil {
		return err
	}
	if have == 0 {
		return errors.Wrapf(ErrEmptyAccount, "%s", src)
	}
	if have < amount {
		return errors.Wrapf(ErrInsufficientFunds, "have %d, need %d", have, amount)
	}
	if src.Equals(dest) {
		return nil
	}

	recv, err := c.bucket.Balance(db, dest)
	if err != nil {
		return err
	}
	if recv > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	if err := c.bucket.Save(db, src, have-amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recv+amount)
}

// MoveAll sweeps the whole balance of src to dest and returns the moved
// amount. An empty source is not an error.
func (c BaseController) MoveAll(db quorum.KVStore, src, dest quorum.Address) (uint64, error) {
	have, err := c.bucket.Balance(db, src)
	if err != nil {
		return 0, err
	}
	if have == 0 {
		return 0, nil
	}
	if err := c.MoveCoins(db, src, dest, have); err != nil {
		return 0, err
	}
	return have, nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db quorum.KVStore, dest quorum.Address, amount uint64) error {
	have, err := c.bucket.Balance(db, dest)
	if err != nil {
		return err
	}
	if have > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "wallet balance")
	}
	return c.bucket.Save(db, dest, have+amount)
}
