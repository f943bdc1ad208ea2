package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

const (
	createGroupCost int64 = 10
	proposeCost     int64 = 10
	approveCost     int64 = 1
	executeCost     int64 = 10
	cancelCost      int64 = 1
	setOwnersCost   int64 = 10

	changeThresholdCost int64 = 5
)

// Refunder moves the balance of a closed proposal account.
type Refunder interface {
	MoveAll(db quorum.KVStore, src, dest quorum.Address) (uint64, error)
}

// RegisterRoutes will instantiate and register all handlers in this
// package. Executed proposals decode their instructions with decoder and
// run them through executor, usually the application router itself.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, decoder quorum.MsgDecoder, executor quorum.Handler, refunds Refunder) {
	groups := NewGroupBucket()
	proposals := NewProposalBucket()
	r.Handle(pathCreateGroupMsg, CreateGroupHandler{auth: auth, groups: groups})
	r.Handle(pathProposeMsg, ProposeHandler{auth: auth, groups: groups, proposals: proposals})
	r.Handle(pathApproveMsg, ApproveHandler{auth: auth, groups: groups, proposals: proposals})
	r.Handle(pathExecuteMsg, ExecuteHandler{
		auth:      auth,
		groups:    groups,
		proposals: proposals,
		decoder:   decoder,
		executor:  executor,
		refunds:   refunds,
	})
	r.Handle(pathCancelMsg, CancelHandler{auth: auth, groups: groups, proposals: proposals, refunds: refunds})
	r.Handle(pathSetOwnersMsg, SetOwnersHandler{auth: auth, groups: groups})
	r.Handle(pathChangeThresholdMsg, ChangeThresholdHandler{auth: auth, groups: groups})
}

// RegisterQuery registers the group and proposal buckets under
// /multisig/groups and /multisig/proposals.
func RegisterQuery(qr quorum.QueryRouter) {
	NewGroupBucket().Register("multisig/groups", qr)
	NewProposalBucket().Register("multisig/proposals", qr)
}

// Multisig state changes are applied in Check as well. The check state
// is discarded on every commit, and applying them lets a single
// transaction propose, approve and execute in a batch.

// CreateGroupHandler registers new groups.
type CreateGroupHandler struct {
	auth   x.Authenticator
	groups GroupBucket
}

var _ quorum.Handler = CreateGroupHandler{}

func (h CreateGroupHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(createGroupCost, ""), nil
}

func (h CreateGroupHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	g, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	signer, err := verifySigner(g, nil)
	if err != nil {
		return nil, err
	}
	quorum.GetLogger(ctx).Info("group created",
		"group", g.Address, "owners", len(g.Owners), "threshold", g.Threshold)
	return &quorum.DeliverResult{Data: signer.Address()}, nil
}

func (h CreateGroupHandler) apply(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*Group, error) {
	var msg CreateGroupMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if len(msg.Owners) > int(conf.MaxOwners) {
		return nil, errors.Wrapf(ErrTooManyOwners, "at most %d owners allowed", conf.MaxOwners)
	}

	g := &Group{
		Address:    msg.Group,
		SignerBump: msg.SignerBump,
		Owners:     msg.Owners,
		Threshold:  msg.Threshold,
	}
	if _, err := verifySigner(g, nil); err != nil {
		return nil, errors.Wrap(err, "multisig signer")
	}
	if !h.auth.HasAddress(ctx, msg.Group) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "group key signature missing")
	}
	switch err := h.groups.Has(db, g.Address); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "group %s", g.Address)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	if err := h.groups.Put(db, g.Address, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ProposeHandler stores new proposals.
type ProposeHandler struct {
	auth      x.Authenticator
	groups    GroupBucket
	proposals ProposalBucket
}

var _ quorum.Handler = ProposeHandler{}

func (h ProposeHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(proposeCost, ""), nil
}

func (h ProposeHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	p, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	proposalEvents.WithLabelValues(eventProposed).Inc()
	return &quorum.DeliverResult{Data: p.Address}, nil
}

func (h ProposeHandler) apply(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*Proposal, error) {
	var msg ProposeMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if len(msg.Instructions) > int(conf.MaxInstructions) {
		return nil, errors.Wrapf(errors.ErrInput, "at most %d instructions allowed", conf.MaxInstructions)
	}

	g, err := h.groups.GetGroup(db, msg.Group)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Proposer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "proposer signature missing")
	}
	if !g.IsOwner(msg.Proposer) {
		return nil, errors.Wrapf(ErrInvalidOwner, "proposer %s", msg.Proposer)
	}

	key, bump, err := DeriveProposal(msg.Nonce)
	if err != nil {
		return nil, err
	}
	if !key.Address().Equals(msg.Proposal) {
		return nil, errors.Wrapf(errors.ErrConstraintSeeds, "nonce %d does not derive %s", msg.Nonce, msg.Proposal)
	}
	switch err := h.proposals.Has(db, msg.Proposal); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "proposal %s", msg.Proposal)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	p := &Proposal{
		Address:         msg.Proposal,
		Group:           g.Address,
		Nonce:           msg.Nonce,
		Bump:            uint32(bump),
		Instructions:    msg.Instructions,
		OwnerSetVersion: g.OwnerSetVersion,
		Approvals:       []quorum.Address{msg.Proposer},
	}
	if err := h.proposals.Put(db, p.Address, p); err != nil {
		return nil, err
	}
	return p, nil
}

// loadProposal loads a proposal and the group it belongs to.
func loadProposal(db quorum.ReadOnlyKVStore, groups GroupBucket, proposals ProposalBucket, groupAddr, proposalAddr quorum.Address) (*Group, *Proposal, error) {
	g, err := groups.GetGroup(db, groupAddr)
	if err != nil {
		return nil, nil, err
	}
	p, err := proposals.GetProposal(db, proposalAddr)
	if err != nil {
		return nil, nil, err
	}
	if !p.Group.Equals(g.Address) {
		return nil, nil, errors.Wrapf(errors.ErrInput, "proposal %s belongs to group %s", p.Address, p.Group)
	}
	return g, p, nil
}

// ApproveHandler records approvals of current owners.
type ApproveHandler struct {
	auth      x.Authenticator
	groups    GroupBucket
	proposals ProposalBucket
}

var _ quorum.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(approveCost, ""), nil
}

func (h ApproveHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	proposalEvents.WithLabelValues(eventApproved).Inc()
	return &quorum.DeliverResult{}, nil
}

func (h ApproveHandler) apply(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) error {
	var msg ApproveMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	g, p, err := loadProposal(db, h.groups, h.proposals, msg.Group, msg.Proposal)
	if err != nil {
		return err
	}
	if p.IsStale(g) {
		return errors.Wrapf(errors.ErrConstraintRaw, "proposal owner set version %d, group %d", p.OwnerSetVersion, g.OwnerSetVersion)
	}
	if p.DidExecute {
		return ErrAlreadyExecuted
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	if !g.IsOwner(msg.Owner) {
		return errors.Wrapf(ErrInvalidOwner, "approver %s", msg.Owner)
	}
	p.Approve(msg.Owner)
	return h.proposals.Put(db, p.Address, p)
}

// CancelHandler withdraws proposals, including the ones disabled by an
// owner set change.
type CancelHandler struct {
	auth      x.Authenticator
	groups    GroupBucket
	proposals ProposalBucket
	refunds   Refunder
}

var _ quorum.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(cancelCost, ""), nil
}

func (h CancelHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	p, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	proposalEvents.WithLabelValues(eventCancelled).Inc()
	quorum.GetLogger(ctx).Info("proposal cancelled", "group", p.Group, "proposal", p.Address)
	return &quorum.DeliverResult{}, nil
}

func (h CancelHandler) apply(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*Proposal, error) {
	var msg CancelMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	g, p, err := loadProposal(db, h.groups, h.proposals, msg.Group, msg.Proposal)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Canceller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "canceller signature missing")
	}
	if !g.IsOwner(msg.Canceller) {
		return nil, errors.Wrapf(ErrInvalidOwner, "canceller %s", msg.Canceller)
	}
	if p.DidExecute {
		return nil, ErrAlreadyExecuted
	}
	if err := closeProposal(db, h.proposals, h.refunds, p, msg.Refundee); err != nil {
		return nil, err
	}
	return p, nil
}

// closeProposal releases the storage of p and sweeps its account balance
// to refundee.
func closeProposal(db quorum.KVStore, proposals ProposalBucket, refunds Refunder, p *Proposal, refundee quorum.Address) error {
	if err := proposals.Delete(db, p.Address); err != nil {
		return errors.Wrap(err, "delete proposal")
	}
	if _, err := refunds.MoveAll(db, p.Address, refundee); err != nil {
		return errors.Wrap(err, "refund")
	}
	return nil
}

// SetOwnersHandler replaces the owner set of a group.
type SetOwnersHandler struct {
	auth   x.Authenticator
	groups GroupBucket
}

var _ quorum.Handler = SetOwnersHandler{}

func (h SetOwnersHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(setOwnersCost, ""), nil
}

func (h SetOwnersHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	g, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	membershipChanges.WithLabelValues(changeOwners).Inc()
	quorum.GetLogger(ctx).Info("owner set replaced",
		"group", g.Address,
		"version", g.OwnerSetVersion,
		"owners", len(g.Owners),
		"threshold", g.Threshold)
	return &quorum.DeliverResult{}, nil
}

func (h SetOwnersHandler) apply(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*Group, error) {
	var msg SetOwnersMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	g, err := loadSignedGroup(ctx, db, h.auth, h.groups, msg.Group, msg.Signer)
	if err != nil {
		return nil, err
	}
	if err := g.ReplaceOwners(msg.Owners); err != nil {
		return nil, err
	}
	if err := h.groups.Put(db, g.Address, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ChangeThresholdHandler sets the threshold of a group.
type ChangeThresholdHandler struct {
	auth   x.Authenticator
	groups GroupBucket
}

var _ quorum.Handler = ChangeThresholdHandler{}

func (h ChangeThresholdHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(changeThresholdCost, ""), nil
}

func (h ChangeThresholdHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	g, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	membershipChanges.WithLabelValues(changeThreshold).Inc()
	quorum.GetLogger(ctx).Info("threshold changed",
		"group", g.Address,
		"threshold", g.Threshold,
		"owners", len(g.Owners))
	return &quorum.DeliverResult{}, nil
}

func (h ChangeThresholdHandler) apply(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*Group, error) {
	var msg ChangeThresholdMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	g, err := loadSignedGroup(ctx, db, h.auth, h.groups, msg.Group, msg.Signer)
	if err != nil {
		return nil, err
	}
	if msg.Threshold < 1 || msg.Threshold > uint64(len(g.Owners)) {
		return nil, errors.Wrapf(ErrInvalidThreshold, "%d of %d", msg.Threshold, len(g.Owners))
	}
	g.Threshold = msg.Threshold
	if err := h.groups.Put(db, g.Address, g); err != nil {
		return nil, err
	}
	return g, nil
}

// loadSignedGroup loads a group and requires that signer is its derived
// signer and that it is authorized in ctx.
func loadSignedGroup(ctx quorum.Context, db quorum.ReadOnlyKVStore, auth x.Authenticator, groups GroupBucket, groupAddr, signer quorum.Address) (*Group, error) {
	g, err := groups.GetGroup(db, groupAddr)
	if err != nil {
		return nil, err
	}
	if _, err := verifySigner(g, signer); err != nil {
		return nil, errors.Wrap(err, "multisig signer")
	}
	if !auth.HasAddress(ctx, signer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "multisig signer not authorized")
	}
	return g, nil
}
