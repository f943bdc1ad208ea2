package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves Amount from Source to Destination.
type SendMsg struct {
	Source      quorum.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination quorum.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string         `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

var _ quorum.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.ErrInput)
	}
	return errs
}
