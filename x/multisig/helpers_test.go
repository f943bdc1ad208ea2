package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/cash"
	"github.com/stretchr/testify/require"
)

// testRouter dispatches messages by path, like the application router.
type testRouter struct {
	routes map[string]quorum.Handler
}

func (r *testRouter) Handle(path string, h quorum.Handler) {
	r.routes[path] = h
}

func (r *testRouter) handler(tx quorum.Tx) (quorum.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %s", msg.Path())
	}
	return h, nil
}

func (r *testRouter) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *testRouter) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

type testDecoder map[string]func() quorum.Msg

func (d testDecoder) DecodeMsg(path string, data []byte) (quorum.Msg, error) {
	fn, ok := d[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown path %s", path)
	}
	msg := fn()
	if err := msg.Unmarshal(data); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return msg, nil
}

// env is a multisig extension wired to the cash ledger on a memory store.
type env struct {
	t       *testing.T
	db      quorum.CacheableKVStore
	signers *weavetest.CtxAuth
	router  *testRouter
	cash    cash.BaseController
}

func newEnv(t *testing.T) *env {
	t.Helper()

	signers := &weavetest.CtxAuth{Key: "signers"}
	auth := x.ChainAuth(signers, Authenticate{})
	router := &testRouter{routes: make(map[string]quorum.Handler)}
	control := cash.NewController(cash.NewBucket())
	decoder := testDecoder{
		cash.SendMsg{}.Path():  func() quorum.Msg { return &cash.SendMsg{} },
		pathSetOwnersMsg:       func() quorum.Msg { return &SetOwnersMsg{} },
		pathChangeThresholdMsg: func() quorum.Msg { return &ChangeThresholdMsg{} },
		pathExecuteMsg:         func() quorum.Msg { return &ExecuteMsg{} },
		pathApproveMsg:         func() quorum.Msg { return &ApproveMsg{} },
	}
	cash.RegisterRoutes(router, auth, control)
	RegisterRoutes(router, auth, decoder, router, control)

	return &env{
		t:       t,
		db:      store.MemStore(),
		signers: signers,
		router:  router,
		cash:    control,
	}
}

// as returns a context signed by the given keys.
func (e *env) as(signers ...quorum.Condition) quorum.Context {
	return e.signers.SetConditions(context.Background(), signers...)
}

func (e *env) deliver(ctx quorum.Context, msg quorum.Msg) (*quorum.DeliverResult, error) {
	return e.router.Deliver(ctx, e.db, &weavetest.Tx{Msg: msg})
}

func (e *env) check(ctx quorum.Context, msg quorum.Msg) (*quorum.CheckResult, error) {
	return e.router.Check(ctx, e.db, &weavetest.Tx{Msg: msg})
}

type testGroup struct {
	key    quorum.Condition
	signer quorum.Address
	owners []quorum.Condition
}

func (g testGroup) address() quorum.Address {
	return g.key.Address()
}

func ownerAddresses(conds []quorum.Condition) []quorum.Address {
	addrs := make([]quorum.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

func newConditions(n int) []quorum.Condition {
	conds := make([]quorum.Condition, n)
	for i := range conds {
		conds[i] = weavetest.NewCondition()
	}
	return conds
}

// createGroup registers a group of n fresh owners.
func (e *env) createGroup(threshold uint64, n int) testGroup {
	e.t.Helper()

	g := testGroup{key: weavetest.NewCondition(), owners: newConditions(n)}
	_, bump, err := DeriveSigner(g.address())
	require.NoError(e.t, err)

	res, err := e.deliver(e.as(g.key), &CreateGroupMsg{
		Group:      g.address(),
		Owners:     ownerAddresses(g.owners),
		Threshold:  threshold,
		SignerBump: uint32(bump),
	})
	require.NoError(e.t, err)
	g.signer = res.Data
	return g
}

var lastNonce uint64 = 10000000

// propose stores ins as a new proposal of g by proposer.
func (e *env) propose(g testGroup, proposer quorum.Condition, ins ...*Instruction) (quorum.Address, error) {
	e.t.Helper()

	lastNonce++
	key, _, err := DeriveProposal(lastNonce)
	require.NoError(e.t, err)
	_, err = e.deliver(e.as(proposer), &ProposeMsg{
		Group:        g.address(),
		Proposal:     key.Address(),
		Proposer:     proposer.Address(),
		Nonce:        lastNonce,
		Instructions: ins,
	})
	return key.Address(), err
}

func (e *env) mustPropose(g testGroup, proposer quorum.Condition, ins ...*Instruction) quorum.Address {
	e.t.Helper()
	addr, err := e.propose(g, proposer, ins...)
	require.NoError(e.t, err)
	return addr
}

func (e *env) approve(g testGroup, proposal quorum.Address, owner quorum.Condition) error {
	_, err := e.deliver(e.as(owner), &ApproveMsg{
		Group:    g.address(),
		Proposal: proposal,
		Owner:    owner.Address(),
	})
	return err
}

func (e *env) execute(g testGroup, proposal quorum.Address, executor quorum.Condition, refundee quorum.Address, ins ...*Instruction) (*quorum.DeliverResult, error) {
	return e.deliver(e.as(executor), &ExecuteMsg{
		Group:        g.address(),
		Signer:       g.signer,
		Proposal:     proposal,
		Executor:     executor.Address(),
		Refundee:     refundee,
		Instructions: ins,
	})
}

func (e *env) group(g testGroup) *Group {
	e.t.Helper()
	group, err := NewGroupBucket().GetGroup(e.db, g.address())
	require.NoError(e.t, err)
	return group
}

func (e *env) proposal(addr quorum.Address) (*Proposal, error) {
	return NewProposalBucket().GetProposal(e.db, addr)
}

func (e *env) balance(addr quorum.Address) uint64 {
	e.t.Helper()
	b, err := e.cash.Balance(e.db, addr)
	require.NoError(e.t, err)
	return b
}

func mustInstruction(t *testing.T, msg quorum.Msg, accounts ...*AccountMeta) *Instruction {
	t.Helper()
	in, err := NewInstruction(msg, accounts...)
	require.NoError(t, err)
	return in
}

func setOwnersInstruction(t *testing.T, g testGroup, owners ...quorum.Address) *Instruction {
	return mustInstruction(t, &SetOwnersMsg{
		Group:  g.address(),
		Signer: g.signer,
		Owners: owners,
	}, &AccountMeta{Address: g.address(), IsWritable: true}, &AccountMeta{Address: g.signer, IsSigner: true})
}
