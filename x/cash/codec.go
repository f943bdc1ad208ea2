package cash

import "github.com/iov-one/quorum/wire"

func (m *Wallet) Size() int {
	return wire.SizeUint(1, m.Balance)
}

func (m *Wallet) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *Wallet) MarshalTo(dst []byte) (int, error) {
	return wire.Done(dst, wire.AppendUint(dst[:0], 1, m.Balance))
}

func (m *Wallet) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Balance = r.Uint()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *SendMsg) Size() int {
	return wire.SizeBytes(1, m.Source) +
		wire.SizeBytes(2, m.Destination) +
		wire.SizeUint(3, m.Amount) +
		wire.SizeText(4, m.Memo)
}

func (m *SendMsg) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *SendMsg) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Source)
	b = wire.AppendBytes(b, 2, m.Destination)
	b = wire.AppendUint(b, 3, m.Amount)
	b = wire.AppendText(b, 4, m.Memo)
	return wire.Done(dst, b)
}

func (m *SendMsg) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Source = r.Bytes()
		case 2:
			m.Destination = r.Bytes()
		case 3:
			m.Amount = r.Uint()
		case 4:
			m.Memo = r.Text()
		default:
			r.Skip()
		}
	}
	return r.Err()
}
