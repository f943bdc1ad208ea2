package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single account.
type Wallet struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

var _ orm.Model = (*Wallet)(nil)

// Validate rejects empty wallets. An account without funds is not stored.
func (m *Wallet) Validate() error {
	if m.Balance == 0 {
		return errors.Wrap(errors.ErrEmpty, "balance")
	}
	return nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// Balance returns the balance of addr. A missing wallet has a zero balance.
func (b Bucket) Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (uint64, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return w.Balance, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Save stores the balance of addr. A zero balance removes the wallet.
func (b Bucket) Save(db quorum.KVStore, addr quorum.Address, balance uint64) error {
	if balance == 0 {
		err := b.Delete(db, addr)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return b.Put(db, addr, &Wallet{Balance: balance})
}
