package multisig

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathCreateGroupMsg     = "multisig/create_group"
	pathProposeMsg         = "multisig/propose"
	pathApproveMsg         = "multisig/approve"
	pathExecuteMsg         = "multisig/execute"
	pathCancelMsg          = "multisig/cancel"
	pathSetOwnersMsg       = "multisig/set_owners"
	pathChangeThresholdMsg = "multisig/change_threshold"
)

var (
	_ quorum.Msg = (*CreateGroupMsg)(nil)
	_ quorum.Msg = (*ProposeMsg)(nil)
	_ quorum.Msg = (*ApproveMsg)(nil)
	_ quorum.Msg = (*ExecuteMsg)(nil)
	_ quorum.Msg = (*CancelMsg)(nil)
	_ quorum.Msg = (*SetOwnersMsg)(nil)
	_ quorum.Msg = (*ChangeThresholdMsg)(nil)
)

// CreateGroupMsg registers a new group at Group. The transaction must be
// signed by the key Group is the address of.
type CreateGroupMsg struct {
	Group      quorum.Address   `protobuf:"bytes,1,opt,name=group,proto3" json:"group"`
	Owners     []quorum.Address `protobuf:"bytes,2,rep,name=owners,proto3" json:"owners"`
	Threshold  uint64           `protobuf:"varint,3,opt,name=threshold,proto3" json:"threshold"`
	SignerBump uint32           `protobuf:"varint,4,opt,name=signer_bump,json=signerBump,proto3" json:"signer_bump"`
}

func (m *CreateGroupMsg) Reset()         { *m = CreateGroupMsg{} }
func (m *CreateGroupMsg) String() string { return proto.CompactTextString(m) }
func (*CreateGroupMsg) ProtoMessage()    {}

func (CreateGroupMsg) Path() string { return pathCreateGroupMsg }

// Validate checks the owner set before any state is read.
func (m *CreateGroupMsg) Validate() error {
	if err := m.Group.Validate(); err != nil {
		return errors.Wrap(err, "group")
	}
	if m.SignerBump > maxBump {
		return errors.Wrap(errors.ErrConstraintSeeds, "bump out of range")
	}
	return validateOwnerSet(m.Owners, m.Threshold)
}

// ProposeMsg stores Instructions under the address derived from Nonce.
type ProposeMsg struct {
	Group        quorum.Address `protobuf:"bytes,1,opt,name=group,proto3" json:"group"`
	Proposal     quorum.Address `protobuf:"bytes,2,opt,name=proposal,proto3" json:"proposal"`
	Proposer     quorum.Address `protobuf:"bytes,3,opt,name=proposer,proto3" json:"proposer"`
	Nonce        uint64         `protobuf:"varint,4,opt,name=nonce,proto3" json:"nonce"`
	Instructions []*Instruction `protobuf:"bytes,5,rep,name=instructions,proto3" json:"instructions"`
}

func (m *ProposeMsg) Reset()         { *m = ProposeMsg{} }
func (m *ProposeMsg) String() string { return proto.CompactTextString(m) }
func (*ProposeMsg) ProtoMessage()    {}

func (ProposeMsg) Path() string { return pathProposeMsg }

func (m *ProposeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Group", m.Group.Validate())
	errs = errors.AppendField(errs, "Proposal", m.Proposal.Validate())
	errs = errors.AppendField(errs, "Proposer", m.Proposer.Validate())
	errs = errors.AppendField(errs, "Instructions", validateInstructions(m.Instructions))
	return errs
}

// ApproveMsg records the approval of Owner.
type ApproveMsg struct {
	Group    quorum.Address `protobuf:"bytes,1,opt,name=group,proto3" json:"group"`
	Proposal quorum.Address `protobuf:"bytes,2,opt,name=proposal,proto3" json:"proposal"`
	Owner    quorum.Address `protobuf:"bytes,3,opt,name=owner,proto3" json:"owner"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

func (ApproveMsg) Path() string { return pathApproveMsg }

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Group", m.Group.Validate())
	errs = errors.AppendField(errs, "Proposal", m.Proposal.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

// ExecuteMsg runs an approved proposal. Signer is the derived signer of
// the group and Instructions must repeat the proposal instructions.
// Refundee receives the balance held by the proposal account.
type ExecuteMsg struct {
	Group        quorum.Address `protobuf:"bytes,1,opt,name=group,proto3" json:"group"`
	Signer       quorum.Address `protobuf:"bytes,2,opt,name=signer,proto3" json:"signer"`
	Proposal     quorum.Address `protobuf:"bytes,3,opt,name=proposal,proto3" json:"proposal"`
	Executor     quorum.Address `protobuf:"bytes,4,opt,name=executor,proto3" json:"executor"`
	Refundee     quorum.Address `protobuf:"bytes,5,opt,name=refundee,proto3" json:"refundee"`
	Instructions []*Instruction `protobuf:"bytes,6,rep,name=instructions,proto3" json:"instructions"`
}

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteMsg) ProtoMessage()    {}

func (ExecuteMsg) Path() string { return pathExecuteMsg }

func (m *ExecuteMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Group", m.Group.Validate())
	errs = errors.AppendField(errs, "Signer", m.Signer.Validate())
	errs = errors.AppendField(errs, "Proposal", m.Proposal.Validate())
	errs = errors.AppendField(errs, "Executor", m.Executor.Validate())
	errs = errors.AppendField(errs, "Refundee", m.Refundee.Validate())
	errs = errors.AppendField(errs, "Instructions", validateInstructions(m.Instructions))
	return errs
}

// CancelMsg withdraws a pending proposal.
type CancelMsg struct {
	Group     quorum.Address `protobuf:"bytes,1,opt,name=group,proto3" json:"group"`
	Proposal  quorum.Address `protobuf:"bytes,2,opt,name=proposal,proto3" json:"proposal"`
	Canceller quorum.Address `protobuf:"bytes,3,opt,name=canceller,proto3" json:"canceller"`
	Refundee  quorum.Address `protobuf:"bytes,4,opt,name=refundee,proto3" json:"refundee"`
}

func (m *CancelMsg) Reset()         { *m = CancelMsg{} }
func (m *CancelMsg) String() string { return proto.CompactTextString(m) }
func (*CancelMsg) ProtoMessage()    {}

func (CancelMsg) Path() string { return pathCancelMsg }

func (m *CancelMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Group", m.Group.Validate())
	errs = errors.AppendField(errs, "Proposal", m.Proposal.Validate())
	errs = errors.AppendField(errs, "Canceller", m.Canceller.Validate())
	errs = errors.AppendField(errs, "Refundee", m.Refundee.Validate())
	return errs
}

// SetOwnersMsg replaces the owner set of a group. It is accepted only
// when authorized by the group signer.
type SetOwnersMsg struct {
	Group  quorum.Address   `protobuf:"bytes,1,opt,name=group,proto3" json:"group"`
	Signer quorum.Address   `protobuf:"bytes,2,opt,name=signer,proto3" json:"signer"`
	Owners []quorum.Address `protobuf:"bytes,3,rep,name=owners,proto3" json:"owners"`
}

func (m *SetOwnersMsg) Reset()         { *m = SetOwnersMsg{} }
func (m *SetOwnersMsg) String() string { return proto.CompactTextString(m) }
func (*SetOwnersMsg) ProtoMessage()    {}

func (SetOwnersMsg) Path() string { return pathSetOwnersMsg }

// Validate checks only the addresses. The owner list is validated against
// the group by the handler, so that its errors are reported after the
// signer checks.
func (m *SetOwnersMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Group", m.Group.Validate())
	errs = errors.AppendField(errs, "Signer", m.Signer.Validate())
	return errs
}

// ChangeThresholdMsg sets the threshold of a group. It is accepted only
// when authorized by the group signer.
type ChangeThresholdMsg struct {
	Group     quorum.Address `protobuf:"bytes,1,opt,name=group,proto3" json:"group"`
	Signer    quorum.Address `protobuf:"bytes,2,opt,name=signer,proto3" json:"signer"`
	Threshold uint64         `protobuf:"varint,3,opt,name=threshold,proto3" json:"threshold"`
}

func (m *ChangeThresholdMsg) Reset()         { *m = ChangeThresholdMsg{} }
func (m *ChangeThresholdMsg) String() string { return proto.CompactTextString(m) }
func (*ChangeThresholdMsg) ProtoMessage()    {}

func (ChangeThresholdMsg) Path() string { return pathChangeThresholdMsg }

func (m *ChangeThresholdMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Group", m.Group.Validate())
	errs = errors.AppendField(errs, "Signer", m.Signer.Validate())
	return errs
}
