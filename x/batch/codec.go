package batch

import (
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/wire"
)

func (m *Envelope) Size() int {
	return wire.SizeText(1, m.Path) + wire.SizeBytes(2, m.Data)
}

func (m *Envelope) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *Envelope) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendText(dst[:0], 1, m.Path)
	b = wire.AppendBytes(b, 2, m.Data)
	return wire.Done(dst, b)
}

func (m *Envelope) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Path = r.Text()
		case 2:
			m.Data = r.Bytes()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *ExecuteBatchMsg) Size() int {
	var n int
	for _, e := range m.Messages {
		if e != nil {
			n += wire.SizeMessage(1, e)
		}
	}
	return n
}

func (m *ExecuteBatchMsg) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *ExecuteBatchMsg) MarshalTo(dst []byte) (int, error) {
	b := dst[:0]
	for i, e := range m.Messages {
		if e == nil {
			return 0, errors.Wrapf(errors.ErrEmpty, "message #%d", i)
		}
		var err error
		if b, err = wire.AppendMessage(b, 1, e); err != nil {
			return 0, err
		}
	}
	return wire.Done(dst, b)
}

func (m *ExecuteBatchMsg) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			var e Envelope
			r.Message(&e)
			m.Messages = append(m.Messages, &e)
		default:
			r.Skip()
		}
	}
	return r.Err()
}
