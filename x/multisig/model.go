package multisig

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

const maxBump = 255

// Group is the owner set registry entry of a single multisig.
type Group struct {
	Address         quorum.Address   `protobuf:"bytes,1,opt,name=address,proto3" json:"address"`
	SignerBump      uint32           `protobuf:"varint,2,opt,name=signer_bump,json=signerBump,proto3" json:"signer_bump"`
	Owners          []quorum.Address `protobuf:"bytes,3,rep,name=owners,proto3" json:"owners"`
	Threshold       uint64           `protobuf:"varint,4,opt,name=threshold,proto3" json:"threshold"`
	OwnerSetVersion uint32           `protobuf:"varint,5,opt,name=owner_set_version,json=ownerSetVersion,proto3" json:"owner_set_version"`
}

func (m *Group) Reset()         { *m = Group{} }
func (m *Group) String() string { return proto.CompactTextString(m) }
func (*Group) ProtoMessage()    {}

var _ orm.Model = (*Group)(nil)

// Validate ensures the group holds at least one unique owner and a
// threshold that the owners can reach.
func (m *Group) Validate() error {
	if err := m.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if m.SignerBump > maxBump {
		return errors.Wrap(errors.ErrInput, "signer bump")
	}
	return validateOwnerSet(m.Owners, m.Threshold)
}

// IsOwner returns true if addr is part of the current owner set.
func (m *Group) IsOwner(addr quorum.Address) bool {
	return indexOf(m.Owners, addr) >= 0
}

// ReplaceOwners installs owners as the new owner set. The set may not
// grow. The threshold is lowered to the number of owners when needed.
// Every successful replacement bumps the owner set version.
func (m *Group) ReplaceOwners(owners []quorum.Address) error {
	if len(owners) == 0 {
		return ErrNotEnoughOwners
	}
	if err := validateUnique(owners); err != nil {
		return err
	}
	if len(owners) > len(m.Owners) {
		return errors.Wrapf(ErrTooManyOwners, "%d owners, currently %d", len(owners), len(m.Owners))
	}
	m.Owners = owners
	if m.Threshold > uint64(len(owners)) {
		m.Threshold = uint64(len(owners))
	}
	m.OwnerSetVersion++
	return nil
}

// validateOwnerSet checks owners and threshold in the order the
// errors are reported on group creation.
func validateOwnerSet(owners []quorum.Address, threshold uint64) error {
	if err := validateUnique(owners); err != nil {
		return err
	}
	if threshold < 1 {
		return errors.Wrap(ErrInvalidThreshold, "zero threshold")
	}
	if len(owners) == 0 {
		return ErrNotEnoughOwners
	}
	if threshold > uint64(len(owners)) {
		return errors.Wrapf(ErrInvalidThreshold, "%d of %d", threshold, len(owners))
	}
	return nil
}

func validateUnique(owners []quorum.Address) error {
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(err, "owner #%d", i)
		}
		if indexOf(owners[:i], o) >= 0 {
			return errors.Wrapf(ErrUniqueOwners, "duplicate %s", o)
		}
	}
	return nil
}

func indexOf(set []quorum.Address, addr quorum.Address) int {
	for i, a := range set {
		if a.Equals(addr) {
			return i
		}
	}
	return -1
}

// AccountMeta is a reference to an account used by an instruction.
type AccountMeta struct {
	Address    quorum.Address `protobuf:"bytes,1,opt,name=address,proto3" json:"address"`
	IsSigner   bool           `protobuf:"varint,2,opt,name=is_signer,json=isSigner,proto3" json:"is_signer,omitempty"`
	IsWritable bool           `protobuf:"varint,3,opt,name=is_writable,json=isWritable,proto3" json:"is_writable,omitempty"`
}

func (m *AccountMeta) Reset()         { *m = AccountMeta{} }
func (m *AccountMeta) String() string { return proto.CompactTextString(m) }
func (*AccountMeta) ProtoMessage()    {}

// Instruction is a single message a proposal executes. Path selects the
// handler and Data is the serialized message.
type Instruction struct {
	Path     string         `protobuf:"bytes,1,opt,name=path,proto3" json:"path"`
	Accounts []*AccountMeta `protobuf:"bytes,2,rep,name=accounts,proto3" json:"accounts,omitempty"`
	Data     []byte         `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *Instruction) Reset()         { *m = Instruction{} }
func (m *Instruction) String() string { return proto.CompactTextString(m) }
func (*Instruction) ProtoMessage()    {}

// NewInstruction serializes msg into an instruction.
func NewInstruction(msg quorum.Msg, accounts ...*AccountMeta) (*Instruction, error) {
	data, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal instruction")
	}
	return &Instruction{Path: msg.Path(), Accounts: accounts, Data: data}, nil
}

// Validate checks the instruction is routable and its accounts are valid.
func (m *Instruction) Validate() error {
	if m.Path == "" {
		return errors.Wrap(errors.ErrEmpty, "path")
	}
	for i, a := range m.Accounts {
		if a == nil {
			return errors.Wrapf(errors.ErrEmpty, "account #%d", i)
		}
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}

// Equals compares two instructions field by field.
func (m *Instruction) Equals(o *Instruction) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Path != o.Path || !bytes.Equal(m.Data, o.Data) || len(m.Accounts) != len(o.Accounts) {
		return false
	}
	for i, a := range m.Accounts {
		b := o.Accounts[i]
		if a == nil || b == nil {
			if a != b {
				return false
			}
			continue
		}
		if !a.Address.Equals(b.Address) || a.IsSigner != b.IsSigner || a.IsWritable != b.IsWritable {
			return false
		}
	}
	return true
}

func instructionsEqual(a, b []*Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func validateInstructions(ins []*Instruction) error {
	if len(ins) == 0 {
		return errors.Wrap(errors.ErrEmpty, "instructions")
	}
	for i, in := range ins {
		if in == nil {
			return errors.Wrapf(errors.ErrEmpty, "instruction #%d", i)
		}
		if err := in.Validate(); err != nil {
			return errors.Wrapf(err, "instruction #%d", i)
		}
	}
	return nil
}

// Proposal is a pending list of instructions of a group.
type Proposal struct {
	Address         quorum.Address   `protobuf:"bytes,1,opt,name=address,proto3" json:"address"`
	Group           quorum.Address   `protobuf:"bytes,2,opt,name=group,proto3" json:"group"`
	Nonce           uint64           `protobuf:"varint,3,opt,name=nonce,proto3" json:"nonce"`
	Bump            uint32           `protobuf:"varint,4,opt,name=bump,proto3" json:"bump"`
	Instructions    []*Instruction   `protobuf:"bytes,5,rep,name=instructions,proto3" json:"instructions"`
	OwnerSetVersion uint32           `protobuf:"varint,6,opt,name=owner_set_version,json=ownerSetVersion,proto3" json:"owner_set_version"`
	Approvals       []quorum.Address `protobuf:"bytes,7,rep,name=approvals,proto3" json:"approvals,omitempty"`
	DidExecute      bool             `protobuf:"varint,8,opt,name=did_execute,json=didExecute,proto3" json:"did_execute,omitempty"`
}

func (m *Proposal) Reset()         { *m = Proposal{} }
func (m *Proposal) String() string { return proto.CompactTextString(m) }
func (*Proposal) ProtoMessage()    {}

var _ orm.Model = (*Proposal)(nil)

// Validate checks the proposal is well formed. It does not check it
// against the state of its group.
func (m *Proposal) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	errs = errors.AppendField(errs, "Group", m.Group.Validate())
	if m.Bump > maxBump {
		errs = errors.AppendField(errs, "Bump", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Instructions", validateInstructions(m.Instructions))
	errs = errors.AppendField(errs, "Approvals", validateUnique(m.Approvals))
	return errs
}

// Approve records owner as an approver. Approving twice is a no-op.
func (m *Proposal) Approve(owner quorum.Address) {
	if indexOf(m.Approvals, owner) < 0 {
		m.Approvals = append(m.Approvals, owner)
	}
}

// CountApprovals returns the number of approvals given by owners. Approvals
// of addresses that are no longer owners are not counted.
func (m *Proposal) CountApprovals(owners []quorum.Address) uint64 {
	var n uint64
	for _, a := range m.Approvals {
		if indexOf(owners, a) >= 0 {
			n++
		}
	}
	return n
}

// IsStale returns true when the owner set of g changed after the proposal
// was created.
func (m *Proposal) IsStale(g *Group) bool {
	return m.OwnerSetVersion != g.OwnerSetVersion
}

// ExecutionReceipt is returned as the data of an executed proposal.
type ExecutionReceipt struct {
	Proposal quorum.Address `protobuf:"bytes,1,opt,name=proposal,proto3" json:"proposal"`
	Refunded uint64         `protobuf:"varint,2,opt,name=refunded,proto3" json:"refunded,omitempty"`
	// Results holds the data returned by every instruction, encoded as a
	// length prefixed list.
	Results []byte `protobuf:"bytes,3,opt,name=results,proto3" json:"results,omitempty"`
}

func (m *ExecutionReceipt) Reset()         { *m = ExecutionReceipt{} }
func (m *ExecutionReceipt) String() string { return proto.CompactTextString(m) }
func (*ExecutionReceipt) ProtoMessage()    {}

// GroupBucket stores groups by their address.
type GroupBucket struct {
	orm.ModelBucket
}

// NewGroupBucket returns a bucket for multisig groups.
func NewGroupBucket() GroupBucket {
	return GroupBucket{ModelBucket: orm.NewModelBucket("msig_groups")}
}

// GetGroup loads the group stored at addr.
func (b GroupBucket) GetGroup(db quorum.ReadOnlyKVStore, addr quorum.Address) (*Group, error) {
	var g Group
	if err := b.One(db, addr, &g); err != nil {
		return nil, errors.Wrapf(err, "group %s", addr)
	}
	return &g, nil
}

// ProposalBucket stores proposals by their derived address.
type ProposalBucket struct {
	orm.ModelBucket
}

// NewProposalBucket returns a bucket for multisig proposals.
func NewProposalBucket() ProposalBucket {
	return ProposalBucket{ModelBucket: orm.NewModelBucket("msig_proposals")}
}

// GetProposal loads the proposal stored at addr.
func (b ProposalBucket) GetProposal(db quorum.ReadOnlyKVStore, addr quorum.Address) (*Proposal, error) {
	var p Proposal
	if err := b.One(db, addr, &p); err != nil {
		return nil, errors.Wrapf(err, "proposal %s", addr)
	}
	return &p, nil
}
