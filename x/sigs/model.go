package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is the greatest sequence a javascript client can
// represent without loss (2^53 - 1).
const maxSequenceValue = (1 << 53) - 1

// UserData is the state kept for every key that signed a transaction.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

var _ orm.Model = (*UserData)(nil)

// Validate requires a public key and a non negative sequence.
func (m *UserData) Validate() error {
	var errs error
	if m.Pubkey == nil {
		errs = errors.AppendField(errs, "Pubkey", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Pubkey", m.Pubkey.Validate())
	}
	if m.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (m *UserData) CheckAndIncrementSequence(expected int64) error {
	if m.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", m.Sequence, expected)
	}
	next := m.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	m.Sequence = next
	return nil
}

// StdSignature carries one signature of a transaction.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

// Validate ensures the StdSignature meets basic standards
func (m *StdSignature) Validate() error {
	if m.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if m.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if m.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// Bucket stores UserData by the address of its public key.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// GetOrCreate loads the user of given key or initializes a fresh one.
func (b Bucket) GetOrCreate(db quorum.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	err := b.One(db, pubkey.Address(), &user)
	switch {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr quorum.QueryRouter) {
	NewBucket().Register("auth", qr)
}
