package sigs

import (
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/wire"
)

func (m *UserData) Size() int {
	n := wire.SizeInt(2, m.Sequence)
	if m.Pubkey != nil {
		n += wire.SizeMessage(1, m.Pubkey)
	}
	return n
}

func (m *UserData) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *UserData) MarshalTo(dst []byte) (int, error) {
	b := dst[:0]
	if m.Pubkey != nil {
		var err error
		if b, err = wire.AppendMessage(b, 1, m.Pubkey); err != nil {
			return 0, err
		}
	}
	b = wire.AppendInt(b, 2, m.Sequence)
	return wire.Done(dst, b)
}

func (m *UserData) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			if m.Pubkey == nil {
				m.Pubkey = &crypto.PublicKey{}
			}
			r.Message(m.Pubkey)
		case 2:
			m.Sequence = r.Int()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *StdSignature) Size() int {
	n := wire.SizeInt(1, m.Sequence)
	if m.Pubkey != nil {
		n += wire.SizeMessage(2, m.Pubkey)
	}
	if m.Signature != nil {
		n += wire.SizeMessage(3, m.Signature)
	}
	return n
}

func (m *StdSignature) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *StdSignature) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendInt(dst[:0], 1, m.Sequence)
	var err error
	if m.Pubkey != nil {
		if b, err = wire.AppendMessage(b, 2, m.Pubkey); err != nil {
			return 0, err
		}
	}
	if m.Signature != nil {
		if b, err = wire.AppendMessage(b, 3, m.Signature); err != nil {
			return 0, err
		}
	}
	return wire.Done(dst, b)
}

func (m *StdSignature) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Sequence = r.Int()
		case 2:
			if m.Pubkey == nil {
				m.Pubkey = &crypto.PublicKey{}
			}
			r.Message(m.Pubkey)
		case 3:
			if m.Signature == nil {
				m.Signature = &crypto.Signature{}
			}
			r.Message(m.Signature)
		default:
			r.Skip()
		}
	}
	return r.Err()
}
