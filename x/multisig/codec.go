package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/wire"
)

// Codecs of the messages in codec.proto.

func sizeAddresses(field int, addrs []quorum.Address) int {
	var n int
	for _, a := range addrs {
		n += wire.SizeElem(field, a)
	}
	return n
}

func appendAddresses(b []byte, field int, addrs []quorum.Address) []byte {
	for _, a := range addrs {
		b = wire.AppendElem(b, field, a)
	}
	return b
}

func sizeInstructions(field int, ins []*Instruction) int {
	var n int
	for _, in := range ins {
		if in != nil {
			n += wire.SizeMessage(field, in)
		}
	}
	return n
}

func appendInstructions(b []byte, field int, ins []*Instruction) ([]byte, error) {
	for i, in := range ins {
		if in == nil {
			return nil, errors.Wrapf(errors.ErrEmpty, "instruction #%d", i)
		}
		var err error
		if b, err = wire.AppendMessage(b, field, in); err != nil {
			return nil, errors.Wrapf(err, "instruction #%d", i)
		}
	}
	return b, nil
}

func readInstruction(r *wire.Reader) *Instruction {
	var in Instruction
	r.Message(&in)
	return &in
}

func (m *Group) Size() int {
	return wire.SizeBytes(1, m.Address) +
		wire.SizeUint(2, uint64(m.SignerBump)) +
		sizeAddresses(3, m.Owners) +
		wire.SizeUint(4, m.Threshold) +
		wire.SizeUint(5, uint64(m.OwnerSetVersion))
}

func (m *Group) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *Group) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Address)
	b = wire.AppendUint(b, 2, uint64(m.SignerBump))
	b = appendAddresses(b, 3, m.Owners)
	b = wire.AppendUint(b, 4, m.Threshold)
	b = wire.AppendUint(b, 5, uint64(m.OwnerSetVersion))
	return wire.Done(dst, b)
}

func (m *Group) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Address = r.Bytes()
		case 2:
			m.SignerBump = r.Uint32()
		case 3:
			m.Owners = append(m.Owners, r.Bytes())
		case 4:
			m.Threshold = r.Uint()
		case 5:
			m.OwnerSetVersion = r.Uint32()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *AccountMeta) Size() int {
	return wire.SizeBytes(1, m.Address) + wire.SizeBool(2, m.IsSigner) + wire.SizeBool(3, m.IsWritable)
}

func (m *AccountMeta) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *AccountMeta) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Address)
	b = wire.AppendBool(b, 2, m.IsSigner)
	b = wire.AppendBool(b, 3, m.IsWritable)
	return wire.Done(dst, b)
}

func (m *AccountMeta) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Address = r.Bytes()
		case 2:
			m.IsSigner = r.Bool()
		case 3:
			m.IsWritable = r.Bool()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *Instruction) Size() int {
	n := wire.SizeText(1, m.Path)
	for _, a := range m.Accounts {
		if a != nil {
			n += wire.SizeMessage(2, a)
		}
	}
	return n + wire.SizeBytes(3, m.Data)
}

func (m *Instruction) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *Instruction) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendText(dst[:0], 1, m.Path)
	for i, a := range m.Accounts {
		if a == nil {
			return 0, errors.Wrapf(errors.ErrEmpty, "account #%d", i)
		}
		var err error
		if b, err = wire.AppendMessage(b, 2, a); err != nil {
			return 0, err
		}
	}
	b = wire.AppendBytes(b, 3, m.Data)
	return wire.Done(dst, b)
}

func (m *Instruction) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Path = r.Text()
		case 2:
			var a AccountMeta
			r.Message(&a)
			m.Accounts = append(m.Accounts, &a)
		case 3:
			m.Data = r.Bytes()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *Proposal) Size() int {
	return wire.SizeBytes(1, m.Address) +
		wire.SizeBytes(2, m.Group) +
		wire.SizeUint(3, m.Nonce) +
		wire.SizeUint(4, uint64(m.Bump)) +
		sizeInstructions(5, m.Instructions) +
		wire.SizeUint(6, uint64(m.OwnerSetVersion)) +
		sizeAddresses(7, m.Approvals) +
		wire.SizeBool(8, m.DidExecute)
}

func (m *Proposal) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *Proposal) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Address)
	b = wire.AppendBytes(b, 2, m.Group)
	b = wire.AppendUint(b, 3, m.Nonce)
	b = wire.AppendUint(b, 4, uint64(m.Bump))
	b, err := appendInstructions(b, 5, m.Instructions)
	if err != nil {
		return 0, err
	}
	b = wire.AppendUint(b, 6, uint64(m.OwnerSetVersion))
	b = appendAddresses(b, 7, m.Approvals)
	b = wire.AppendBool(b, 8, m.DidExecute)
	return wire.Done(dst, b)
}

func (m *Proposal) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Address = r.Bytes()
		case 2:
			m.Group = r.Bytes()
		case 3:
			m.Nonce = r.Uint()
		case 4:
			m.Bump = r.Uint32()
		case 5:
			m.Instructions = append(m.Instructions, readInstruction(r))
		case 6:
			m.OwnerSetVersion = r.Uint32()
		case 7:
			m.Approvals = append(m.Approvals, r.Bytes())
		case 8:
			m.DidExecute = r.Bool()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *ExecutionReceipt) Size() int {
	return wire.SizeBytes(1, m.Proposal) + wire.SizeUint(2, m.Refunded) + wire.SizeBytes(3, m.Results)
}

func (m *ExecutionReceipt) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *ExecutionReceipt) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Proposal)
	b = wire.AppendUint(b, 2, m.Refunded)
	b = wire.AppendBytes(b, 3, m.Results)
	return wire.Done(dst, b)
}

func (m *ExecutionReceipt) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Proposal = r.Bytes()
		case 2:
			m.Refunded = r.Uint()
		case 3:
			m.Results = r.Bytes()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *Configuration) Size() int {
	return wire.SizeUint(1, uint64(m.MaxOwners)) + wire.SizeUint(2, uint64(m.MaxInstructions))
}

func (m *Configuration) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *Configuration) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendUint(dst[:0], 1, uint64(m.MaxOwners))
	b = wire.AppendUint(b, 2, uint64(m.MaxInstructions))
	return wire.Done(dst, b)
}

func (m *Configuration) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.MaxOwners = r.Uint32()
		case 2:
			m.MaxInstructions = r.Uint32()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *CreateGroupMsg) Size() int {
	return wire.SizeBytes(1, m.Group) +
		sizeAddresses(2, m.Owners) +
		wire.SizeUint(3, m.Threshold) +
		wire.SizeUint(4, uint64(m.SignerBump))
}

func (m *CreateGroupMsg) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *CreateGroupMsg) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Group)
	b = appendAddresses(b, 2, m.Owners)
	b = wire.AppendUint(b, 3, m.Threshold)
	b = wire.AppendUint(b, 4, uint64(m.SignerBump))
	return wire.Done(dst, b)
}

func (m *CreateGroupMsg) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Group = r.Bytes()
		case 2:
			m.Owners = append(m.Owners, r.Bytes())
		case 3:
			m.Threshold = r.Uint()
		case 4:
			m.SignerBump = r.Uint32()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *ProposeMsg) Size() int {
	return wire.SizeBytes(1, m.Group) +
		wire.SizeBytes(2, m.Proposal) +
		wire.SizeBytes(3, m.Proposer) +
		wire.SizeUint(4, m.Nonce) +
		sizeInstructions(5, m.Instructions)
}

func (m *ProposeMsg) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *ProposeMsg) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Group)
	b = wire.AppendBytes(b, 2, m.Proposal)
	b = wire.AppendBytes(b, 3, m.Proposer)
	b = wire.AppendUint(b, 4, m.Nonce)
	b, err := appendInstructions(b, 5, m.Instructions)
	if err != nil {
		return 0, err
	}
	return wire.Done(dst, b)
}

func (m *ProposeMsg) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Group = r.Bytes()
		case 2:
			m.Proposal = r.Bytes()
		case 3:
			m.Proposer = r.Bytes()
		case 4:
			m.Nonce = r.Uint()
		case 5:
			m.Instructions = append(m.Instructions, readInstruction(r))
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *ApproveMsg) Size() int {
	return wire.SizeBytes(1, m.Group) + wire.SizeBytes(2, m.Proposal) + wire.SizeBytes(3, m.Owner)
}

func (m *ApproveMsg) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *ApproveMsg) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Group)
	b = wire.AppendBytes(b, 2, m.Proposal)
	b = wire.AppendBytes(b, 3, m.Owner)
	return wire.Done(dst, b)
}

func (m *ApproveMsg) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Group = r.Bytes()
		case 2:
			m.Proposal = r.Bytes()
		case 3:
			m.Owner = r.Bytes()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *ExecuteMsg) Size() int {
	return wire.SizeBytes(1, m.Group) +
		wire.SizeBytes(2, m.Signer) +
		wire.SizeBytes(3, m.Proposal) +
		wire.SizeBytes(4, m.Executor) +
		wire.SizeBytes(5, m.Refundee) +
		sizeInstructions(6, m.Instructions)
}

func (m *ExecuteMsg) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *ExecuteMsg) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Group)
	b = wire.AppendBytes(b, 2, m.Signer)
	b = wire.AppendBytes(b, 3, m.Proposal)
	b = wire.AppendBytes(b, 4, m.Executor)
	b = wire.AppendBytes(b, 5, m.Refundee)
	b, err := appendInstructions(b, 6, m.Instructions)
	if err != nil {
		return 0, err
	}
	return wire.Done(dst, b)
}

func (m *ExecuteMsg) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Group = r.Bytes()
		case 2:
			m.Signer = r.Bytes()
		case 3:
			m.Proposal = r.Bytes()
		case 4:
			m.Executor = r.Bytes()
		case 5:
			m.Refundee = r.Bytes()
		case 6:
			m.Instructions = append(m.Instructions, readInstruction(r))
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *CancelMsg) Size() int {
	return wire.SizeBytes(1, m.Group) +
		wire.SizeBytes(2, m.Proposal) +
		wire.SizeBytes(3, m.Canceller) +
		wire.SizeBytes(4, m.Refundee)
}

func (m *CancelMsg) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *CancelMsg) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Group)
	b = wire.AppendBytes(b, 2, m.Proposal)
	b = wire.AppendBytes(b, 3, m.Canceller)
	b = wire.AppendBytes(b, 4, m.Refundee)
	return wire.Done(dst, b)
}

func (m *CancelMsg) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Group = r.Bytes()
		case 2:
			m.Proposal = r.Bytes()
		case 3:
			m.Canceller = r.Bytes()
		case 4:
			m.Refundee = r.Bytes()
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *SetOwnersMsg) Size() int {
	return wire.SizeBytes(1, m.Group) + wire.SizeBytes(2, m.Signer) + sizeAddresses(3, m.Owners)
}

func (m *SetOwnersMsg) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *SetOwnersMsg) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Group)
	b = wire.AppendBytes(b, 2, m.Signer)
	b = appendAddresses(b, 3, m.Owners)
	return wire.Done(dst, b)
}

func (m *SetOwnersMsg) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Group = r.Bytes()
		case 2:
			m.Signer = r.Bytes()
		case 3:
			m.Owners = append(m.Owners, r.Bytes())
		default:
			r.Skip()
		}
	}
	return r.Err()
}

func (m *ChangeThresholdMsg) Size() int {
	return wire.SizeBytes(1, m.Group) + wire.SizeBytes(2, m.Signer) + wire.SizeUint(3, m.Threshold)
}

func (m *ChangeThresholdMsg) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *ChangeThresholdMsg) MarshalTo(dst []byte) (int, error) {
	b := wire.AppendBytes(dst[:0], 1, m.Group)
	b = wire.AppendBytes(b, 2, m.Signer)
	b = wire.AppendUint(b, 3, m.Threshold)
	return wire.Done(dst, b)
}

func (m *ChangeThresholdMsg) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Group = r.Bytes()
		case 2:
			m.Signer = r.Bytes()
		case 3:
			m.Threshold = r.Uint()
		default:
			r.Skip()
		}
	}
	return r.Err()
}
