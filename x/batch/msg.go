package batch

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	PathExecuteBatchMsg = "batch/execute"

	// MaxBatchMessages is the maximum number of messages in a batch.
	MaxBatchMessages = 10
)

// Envelope carries a single serialized message of a batch.
type Envelope struct {
	Path string `protobuf:"bytes,1,opt,name=path,proto3" json:"path"`
	Data []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *Envelope) Reset()         { *m = Envelope{} }
func (m *Envelope) String() string { return proto.CompactTextString(m) }
func (*Envelope) ProtoMessage()    {}

// NewEnvelope serializes msg into an envelope.
func NewEnvelope(msg quorum.Msg) (*Envelope, error) {
	data, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s", msg.Path())
	}
	return &Envelope{Path: msg.Path(), Data: data}, nil
}

// ExecuteBatchMsg runs all Messages in order.
type ExecuteBatchMsg struct {
	Messages []*Envelope `protobuf:"bytes,1,rep,name=messages,proto3" json:"messages"`
}

func (m *ExecuteBatchMsg) Reset()         { *m = ExecuteBatchMsg{} }
func (m *ExecuteBatchMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteBatchMsg) ProtoMessage()    {}

var _ quorum.Msg = (*ExecuteBatchMsg)(nil)

func (*ExecuteBatchMsg) Path() string {
	return PathExecuteBatchMsg
}

// Validate checks the envelopes only. Every message is validated by its
// handler when it is loaded.
func (m *ExecuteBatchMsg) Validate() error {
	switch n := len(m.Messages); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "messages")
	case n > MaxBatchMessages:
		return errors.Wrapf(errors.ErrInput, "%d messages, at most %d allowed", n, MaxBatchMessages)
	}
	for i, e := range m.Messages {
		switch {
		case e == nil || e.Path == "":
			return errors.Wrapf(errors.ErrEmpty, "message #%d path", i)
		case e.Path == PathExecuteBatchMsg:
			return errors.Wrapf(errors.ErrInput, "message #%d: nested batch", i)
		}
	}
	return nil
}
