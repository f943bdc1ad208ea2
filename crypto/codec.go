package crypto

import "github.com/iov-one/quorum/wire"

// Codecs of the messages in codec.proto. All three carry a single
// ed25519 bytes field.

func (m *PublicKey) Size() int                       { return wire.SizeBytes(1, m.Ed25519) }
func (m *PublicKey) Marshal() ([]byte, error)        { return wire.Marshal(m) }
func (m *PublicKey) MarshalTo(b []byte) (int, error) { return marshalKey(b, m.Ed25519) }
func (m *PublicKey) Unmarshal(b []byte) error        { return unmarshalKey(b, &m.Ed25519) }

func (m *PrivateKey) Size() int                       { return wire.SizeBytes(1, m.Ed25519) }
func (m *PrivateKey) Marshal() ([]byte, error)        { return wire.Marshal(m) }
func (m *PrivateKey) MarshalTo(b []byte) (int, error) { return marshalKey(b, m.Ed25519) }
func (m *PrivateKey) Unmarshal(b []byte) error        { return unmarshalKey(b, &m.Ed25519) }

func (m *Signature) Size() int                       { return wire.SizeBytes(1, m.Ed25519) }
func (m *Signature) Marshal() ([]byte, error)        { return wire.Marshal(m) }
func (m *Signature) MarshalTo(b []byte) (int, error) { return marshalKey(b, m.Ed25519) }
func (m *Signature) Unmarshal(b []byte) error        { return unmarshalKey(b, &m.Ed25519) }

func marshalKey(dst []byte, raw []byte) (int, error) {
	return wire.Done(dst, wire.AppendBytes(dst[:0], 1, raw))
}

func unmarshalKey(data []byte, raw *[]byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			*raw = r.Bytes()
		default:
			r.Skip()
		}
	}
	return r.Err()
}
