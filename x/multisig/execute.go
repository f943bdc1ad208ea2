package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/utils"
	"github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/libs/common"
)

// ExecuteHandler runs approved proposals.
type ExecuteHandler struct {
	auth      x.Authenticator
	groups    GroupBucket
	proposals ProposalBucket
	decoder   quorum.MsgDecoder
	executor  quorum.Handler
	refunds   Refunder
}

var _ quorum.Handler = ExecuteHandler{}

func (h ExecuteHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var gas int64
	_, err := h.apply(ctx, db, tx, func(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) ([]byte, []common.KVPair, error) {
		res, err := h.executor.Check(ctx, db, tx)
		if err != nil {
			return nil, nil, err
		}
		gas += res.GasAllocated
		return res.Data, nil, nil
	})
	if err != nil {
		return nil, err
	}
	return quorum.NewCheck(executeCost+gas, ""), nil
}

func (h ExecuteHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var gas int64
	out, err := h.apply(ctx, db, tx, func(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) ([]byte, []common.KVPair, error) {
		res, err := h.executor.Deliver(ctx, db, tx)
		if err != nil {
			return nil, nil, err
		}
		gas += res.GasUsed
		return res.Data, res.Tags, nil
	})
	if err != nil {
		return nil, err
	}

	raw, err := out.receipt.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal receipt")
	}
	proposalEvents.WithLabelValues(eventExecuted).Inc()
	quorum.GetLogger(ctx).Info("proposal executed",
		"group", out.proposal.Group,
		"proposal", out.proposal.Address,
		"instructions", len(out.proposal.Instructions))
	return &quorum.DeliverResult{
		Data:    raw,
		Log:     "proposal executed",
		Tags:    out.tags,
		GasUsed: gas,
	}, nil
}

// runFunc runs a single decoded instruction.
type runFunc func(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) ([]byte, []common.KVPair, error)

type execution struct {
	proposal *Proposal
	receipt  ExecutionReceipt
	tags     []common.KVPair
}

func (h ExecuteHandler) apply(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, run runFunc) (*execution, error) {
	var msg ExecuteMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	g, p, err := loadProposal(db, h.groups, h.proposals, msg.Group, msg.Proposal)
	if err != nil {
		return nil, err
	}
	if p.IsStale(g) {
		return nil, errors.Wrapf(errors.ErrConstraintRaw, "proposal owner set version %d, group %d", p.OwnerSetVersion, g.OwnerSetVersion)
	}
	signer, err := verifySigner(g, msg.Signer)
	if err != nil {
		return nil, errors.Wrap(err, "multisig signer")
	}
	if _, err := verifyProposal(p, msg.Proposal); err != nil {
		return nil, errors.Wrap(err, "proposal address")
	}
	if !h.auth.HasAddress(ctx, msg.Executor) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "executor signature missing")
	}
	if !g.IsOwner(msg.Executor) {
		return nil, errors.Wrapf(ErrInvalidOwner, "executor %s", msg.Executor)
	}
	if p.DidExecute {
		return nil, ErrAlreadyExecuted
	}
	if !instructionsEqual(p.Instructions, msg.Instructions) {
		return nil, ErrInstructionMismatch
	}
	if n := p.CountApprovals(g.Owners); n < g.Threshold {
		return nil, errors.Wrapf(ErrNotEnoughSigners, "%d of %d approvals", n, g.Threshold)
	}
	if err := h.checkAccounts(ctx, signer, p.Instructions); err != nil {
		return nil, err
	}

	cdb, ok := db.(quorum.CacheableKVStore)
	if !ok {
		cdb = store.BTreeCacheable{KVStore: db}
	}
	out := &execution{proposal: p}
	err = utils.Atomic(cdb, func(db quorum.KVStore) error {
		// Mark before running, so that an instruction cannot execute
		// the same proposal again.
		p.DidExecute = true
		if err := h.proposals.Put(db, p.Address, p); err != nil {
			return err
		}

		sctx := withSigner(ctx, signer.Condition())
		results := make([][]byte, len(p.Instructions))
		for i, in := range p.Instructions {
			imsg, err := h.decoder.DecodeMsg(in.Path, in.Data)
			if err != nil {
				return errors.Wrapf(err, "decode instruction #%d", i)
			}
			// Only the group signer and the declared signer accounts
			// authorize the instruction.
			scope := append(declaredSigners(signer.Address(), in), signer.Address())
			ictx := x.WithScope(sctx, scope)
			data, tags, err := run(ictx, db, &instructionTx{Tx: tx, msg: imsg})
			if err != nil {
				return errors.Wrapf(err, "instruction #%d", i)
			}
			results[i] = data
			out.tags = append(out.tags, tags...)
		}

		refunded, err := h.refunds.MoveAll(db, p.Address, msg.Refundee)
		if err != nil {
			return errors.Wrap(err, "refund")
		}
		if err := h.proposals.Delete(db, p.Address); err != nil {
			return errors.Wrap(err, "delete proposal")
		}

		encoded, err := amino.MarshalBinaryLengthPrefixed(results)
		if err != nil {
			return errors.Wrap(err, "encode results")
		}
		out.receipt = ExecutionReceipt{
			Proposal: p.Address,
			Refunded: refunded,
			Results:  encoded,
		}
		return nil
	})
	if err != nil {
		p.DidExecute = false
		return nil, err
	}
	return out, nil
}

// checkAccounts requires every signer account of the instructions to be
// either the group signer or authorized in ctx.
func (h ExecuteHandler) checkAccounts(ctx quorum.Context, signer crypto.DerivedKey, ins []*Instruction) error {
	for i, in := range ins {
		if !x.HasAllAddresses(ctx, h.auth, declaredSigners(signer.Address(), in)) {
			return errors.Wrapf(errors.ErrUnauthorized, "instruction #%d: declared signer missing", i)
		}
	}
	return nil
}

// declaredSigners returns the accounts the instruction marks as signers,
// except the group signer.
func declaredSigners(signer quorum.Address, in *Instruction) []quorum.Address {
	var res []quorum.Address
	for _, a := range in.Accounts {
		if a.IsSigner && !a.Address.Equals(signer) {
			res = append(res, a.Address)
		}
	}
	return res
}

// instructionTx presents a single instruction as a transaction.
type instructionTx struct {
	quorum.Tx
	msg quorum.Msg
}

var _ quorum.Tx = (*instructionTx)(nil)

func (tx *instructionTx) GetMsg() (quorum.Msg, error) {
	return tx.msg, nil
}
