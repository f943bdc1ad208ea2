package app

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/wire"
	"github.com/iov-one/quorum/x/sigs"
)

// Codec knows every message type the application routes and can restore
// a message from its path and serialized form.
type Codec struct {
	msgs map[string]func() quorum.Msg
}

var _ quorum.MsgDecoder = (*Codec)(nil)

// NewCodec returns a codec with no messages registered.
func NewCodec() *Codec {
	return &Codec{msgs: make(map[string]func() quorum.Msg)}
}

// Register adds message constructors to the codec. Every call of a
// constructor must return a new, empty message. The path of that message
// selects the constructor on decoding. Registering a path twice panics.
func (c *Codec) Register(constructors ...func() quorum.Msg) {
	for _, fn := range constructors {
		path := fn().Path()
		if !isPath(path) {
			panic(fmt.Sprintf("invalid path: %s", path))
		}
		if _, ok := c.msgs[path]; ok {
			panic(fmt.Sprintf("message %q already registered", path))
		}
		c.msgs[path] = fn
	}
}

// DecodeMsg returns a new, not validated message of the type registered
// for the path.
func (c *Codec) DecodeMsg(path string, data []byte) (quorum.Msg, error) {
	fn, ok := c.msgs[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "message %q", path)
	}
	msg := fn()
	if err := msg.Unmarshal(data); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "decode %q: %s", path, err)
	}
	return msg, nil
}

// TxDecoder returns a decoder for transactions carrying any of the
// registered messages.
func (c *Codec) TxDecoder() quorum.TxDecoder {
	return func(raw []byte) (quorum.Tx, error) {
		var tx Tx
		if err := tx.Unmarshal(raw); err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		msg, err := c.DecodeMsg(tx.Path, tx.Data)
		if err != nil {
			return nil, err
		}
		return &decodedTx{Tx: &tx, msg: msg}, nil
	}
}

// Tx is the transaction format. It carries a single serialized message
// routed by its path and the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Path       string               `protobuf:"bytes,2,opt,name=path,proto3" json:"path"`
	Data       []byte               `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

func (m *Tx) Size() int {
	var n int
	for _, sig := range m.Signatures {
		if sig != nil {
			n += wire.SizeMessage(1, sig)
		}
	}
	return n + wire.SizeText(2, m.Path) + wire.SizeBytes(3, m.Data)
}

func (m *Tx) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *Tx) MarshalTo(dst []byte) (int, error) {
	b := dst[:0]
	for i, sig := range m.Signatures {
		if sig == nil {
			return 0, errors.Wrapf(errors.ErrEmpty, "signature #%d", i)
		}
		var err error
		if b, err = wire.AppendMessage(b, 1, sig); err != nil {
			return 0, err
		}
	}
	b = wire.AppendText(b, 2, m.Path)
	b = wire.AppendBytes(b, 3, m.Data)
	return wire.Done(dst, b)
}

func (m *Tx) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			var sig sigs.StdSignature
			r.Message(&sig)
			m.Signatures = append(m.Signatures, &sig)
		case 2:
			m.Path = r.Text()
		case 3:
			m.Data = r.Bytes()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

// NewTx wraps msg into an unsigned transaction.
func NewTx(msg quorum.Msg) (*Tx, error) {
	data, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s", msg.Path())
	}
	return &Tx{Path: msg.Path(), Data: data}, nil
}

var _ sigs.SignedTx = (*Tx)(nil)

// GetSignBytes returns the transaction serialized without signatures.
func (m *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *m
	unsigned.Signatures = nil
	return unsigned.Marshal()
}

func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// Sign appends a signature of the signer for given chain and sequence.
func (m *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, m, chainID, seq)
	if err != nil {
		return err
	}
	m.Signatures = append(m.Signatures, sig)
	return nil
}

// decodedTx binds a transaction to its already decoded message.
type decodedTx struct {
	*Tx
	msg quorum.Msg
}

var _ quorum.Tx = (*decodedTx)(nil)

func (tx *decodedTx) GetMsg() (quorum.Msg, error) {
	return tx.msg, nil
}
