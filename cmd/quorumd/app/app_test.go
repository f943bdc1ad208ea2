package app

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/iov-one/quorum/x/batch"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const testChainID = "quorum-test"

// testApp drives a memory backed quorumd application block by block.
type testApp struct {
	t      *testing.T
	abci   abci.Application
	height int64
	seqs   map[string]int64
}

func newTestApp(t *testing.T, state map[string]interface{}) *testApp {
	t.Helper()
	a, err := GenerateApp("", log.NewNopLogger(), true)
	require.NoError(t, err)

	genesis, err := json.Marshal(state)
	require.NoError(t, err)
	a.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: genesis})
	a.Commit()
	return &testApp{t: t, abci: a, height: 1, seqs: make(map[string]int64)}
}

// deliver signs msg with all keys and delivers it in a new block.
func (ta *testApp) deliver(msg quorum.Msg, keys ...*crypto.PrivateKey) abci.ResponseDeliverTx {
	ta.t.Helper()

	tx, err := app.NewTx(msg)
	require.NoError(ta.t, err)
	for _, k := range keys {
		id := k.PublicKey().Address().String()
		require.NoError(ta.t, tx.Sign(k, testChainID, ta.seqs[id]))
		ta.seqs[id]++
	}
	raw, err := tx.Marshal()
	require.NoError(ta.t, err)

	ta.height++
	ta.abci.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: ta.height}})
	res := ta.abci.DeliverTx(raw)
	ta.abci.EndBlock(abci.RequestEndBlock{Height: ta.height})
	ta.abci.Commit()
	return res
}

func (ta *testApp) balance(addr quorum.Address) uint64 {
	ta.t.Helper()
	var w cash.Wallet
	err := app.QueryOne(ta.abci, "/wallets", addr, &w)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(ta.t, err)
	return w.Balance
}

func envelope(t *testing.T, msg quorum.Msg) *batch.Envelope {
	t.Helper()
	e, err := batch.NewEnvelope(msg)
	require.NoError(t, err)
	return e
}

func requireCode(t *testing.T, want *errors.Error, res abci.ResponseDeliverTx) {
	t.Helper()
	if want == nil {
		require.Equal(t, uint32(0), res.Code, res.Log)
		return
	}
	require.Equal(t, want.ABCICode(), res.Code, res.Log)
}

func TestMultisigOverABCI(t *testing.T) {
	groupKey := weavetest.NewKey()
	owners := []*crypto.PrivateKey{weavetest.NewKey(), weavetest.NewKey(), weavetest.NewKey()}
	ownerAddrs := make([]quorum.Address, len(owners))
	for i, o := range owners {
		ownerAddrs[i] = o.PublicKey().Address()
	}
	group := groupKey.PublicKey().Address()
	signerKey, bump, err := multisig.DeriveSigner(group)
	require.NoError(t, err)
	signer := signerKey.Address()
	recipient := weavetest.NewAddress()

	ta := newTestApp(t, map[string]interface{}{
		"cash": []cash.GenesisAccount{{Address: signer, Balance: 1000}},
	})

	res := ta.deliver(&multisig.CreateGroupMsg{
		Group:      group,
		Owners:     ownerAddrs,
		Threshold:  2,
		SignerBump: uint32(bump),
	}, groupKey)
	requireCode(t, nil, res)
	require.Equal(t, []byte(signer), res.Data)

	var stored multisig.Group
	require.NoError(t, app.QueryOne(ta.abci, "/multisig/groups", group, &stored))
	require.Equal(t, ownerAddrs, stored.Owners)
	require.Equal(t, uint64(2), stored.Threshold)

	in, err := multisig.NewInstruction(&cash.SendMsg{
		Source:      signer,
		Destination: recipient,
		Amount:      300,
	},
		&multisig.AccountMeta{Address: signer, IsSigner: true, IsWritable: true},
		&multisig.AccountMeta{Address: recipient, IsWritable: true},
	)
	require.NoError(t, err)

	const nonce = 7
	proposalKey, _, err := multisig.DeriveProposal(nonce)
	require.NoError(t, err)
	proposal := proposalKey.Address()

	res = ta.deliver(&multisig.ProposeMsg{
		Group:        group,
		Proposal:     proposal,
		Proposer:     ownerAddrs[0],
		Nonce:        nonce,
		Instructions: []*multisig.Instruction{in},
	}, owners[0])
	requireCode(t, nil, res)

	execute := &multisig.ExecuteMsg{
		Group:        group,
		Signer:       signer,
		Proposal:     proposal,
		Executor:     ownerAddrs[1],
		Refundee:     ownerAddrs[0],
		Instructions: []*multisig.Instruction{in},
	}

	// only the proposer approved
	requireCode(t, multisig.ErrNotEnoughSigners, ta.deliver(execute, owners[1]))

	// the failed execution used a sequence of owner 1, the batch is
	// signed with the next one

	res = ta.deliver(&batch.ExecuteBatchMsg{Messages: []*batch.Envelope{
		envelope(t, &multisig.ApproveMsg{Group: group, Proposal: proposal, Owner: ownerAddrs[1]}),
		envelope(t, execute),
	}}, owners[1])
	requireCode(t, nil, res)

	require.Equal(t, uint64(700), ta.balance(signer))
	require.Equal(t, uint64(300), ta.balance(recipient))

	var p multisig.Proposal
	err = app.QueryOne(ta.abci, "/multisig/proposals", proposal, &p)
	assert.IsErr(t, errors.ErrNotFound, err)

	// an owner cannot move the group funds directly
	requireCode(t, errors.ErrUnauthorized, ta.deliver(&cash.SendMsg{
		Source:      signer,
		Destination: ownerAddrs[0],
		Amount:      1,
	}, owners[0]))
}

func TestCombinedProposeApproveExecute(t *testing.T) {
	groupKey := weavetest.NewKey()
	owners := []*crypto.PrivateKey{weavetest.NewKey(), weavetest.NewKey()}
	ownerAddrs := []quorum.Address{owners[0].PublicKey().Address(), owners[1].PublicKey().Address()}
	group := groupKey.PublicKey().Address()
	signerKey, bump, err := multisig.DeriveSigner(group)
	require.NoError(t, err)
	signer := signerKey.Address()

	ta := newTestApp(t, map[string]interface{}{
		"cash": []cash.GenesisAccount{{Address: signer, Balance: 50}},
	})
	requireCode(t, nil, ta.deliver(&multisig.CreateGroupMsg{
		Group:      group,
		Owners:     ownerAddrs,
		Threshold:  2,
		SignerBump: uint32(bump),
	}, groupKey))

	in, err := multisig.NewInstruction(&cash.SendMsg{
		Source:      signer,
		Destination: ownerAddrs[1],
		Amount:      50,
	}, &multisig.AccountMeta{Address: signer, IsSigner: true, IsWritable: true})
	require.NoError(t, err)

	const nonce = 1
	proposalKey, _, err := multisig.DeriveProposal(nonce)
	require.NoError(t, err)

	res := ta.deliver(&batch.ExecuteBatchMsg{Messages: []*batch.Envelope{
		envelope(t, &multisig.ProposeMsg{
			Group:        group,
			Proposal:     proposalKey.Address(),
			Proposer:     ownerAddrs[0],
			Nonce:        nonce,
			Instructions: []*multisig.Instruction{in},
		}),
		envelope(t, &multisig.ApproveMsg{Group: group, Proposal: proposalKey.Address(), Owner: ownerAddrs[1]}),
		envelope(t, &multisig.ExecuteMsg{
			Group:        group,
			Signer:       signer,
			Proposal:     proposalKey.Address(),
			Executor:     ownerAddrs[0],
			Refundee:     ownerAddrs[0],
			Instructions: []*multisig.Instruction{in},
		}),
	}}, owners...)
	requireCode(t, nil, res)

	results, err := batch.DecodeResults(res.Data)
	require.NoError(t, err)
	require.Len(t, results, 3)
	var receipt multisig.ExecutionReceipt
	require.NoError(t, receipt.Unmarshal(results[2]))
	require.Equal(t, proposalKey.Address(), receipt.Proposal)

	require.Equal(t, uint64(0), ta.balance(signer))
	require.Equal(t, uint64(50), ta.balance(ownerAddrs[1]))
}

func TestBatchIsAtomic(t *testing.T) {
	groupKey := weavetest.NewKey()
	owner := weavetest.NewKey()
	group := groupKey.PublicKey().Address()
	_, bump, err := multisig.DeriveSigner(group)
	require.NoError(t, err)

	ta := newTestApp(t, map[string]interface{}{})

	// the second message fails, so the group is not created either
	res := ta.deliver(&batch.ExecuteBatchMsg{Messages: []*batch.Envelope{
		envelope(t, &multisig.CreateGroupMsg{
			Group:      group,
			Owners:     []quorum.Address{owner.PublicKey().Address()},
			Threshold:  1,
			SignerBump: uint32(bump),
		}),
		envelope(t, &cash.SendMsg{
			Source:      owner.PublicKey().Address(),
			Destination: group,
			Amount:      10,
		}),
	}}, groupKey, owner)
	requireCode(t, cash.ErrEmptyAccount, res)

	var g multisig.Group
	err = app.QueryOne(ta.abci, "/multisig/groups", group, &g)
	assert.IsErr(t, errors.ErrNotFound, err)

	// the sequences were still used
	var user sigs.UserData
	require.NoError(t, app.QueryOne(ta.abci, "/auth", owner.PublicKey().Address(), &user))
	require.Equal(t, int64(1), user.Sequence)
}

func TestGenesisGroups(t *testing.T) {
	group := weavetest.NewAddress()
	owners := []quorum.Address{weavetest.NewAddress(), weavetest.NewAddress()}
	ta := newTestApp(t, map[string]interface{}{
		"multisig": []map[string]interface{}{
			{"address": group, "owners": owners, "threshold": 2},
		},
		"conf": map[string]interface{}{
			"multisig": multisig.Configuration{MaxOwners: 4, MaxInstructions: 2},
		},
	})

	var g multisig.Group
	require.NoError(t, app.QueryOne(ta.abci, "/multisig/groups", group, &g))
	require.Equal(t, owners, g.Owners)

	_, bump, err := multisig.DeriveSigner(group)
	require.NoError(t, err)
	require.Equal(t, uint32(bump), g.SignerBump)
}

func TestGenInitOptions(t *testing.T) {
	owner := weavetest.NewAddress()
	raw, err := GenInitOptions([]string{owner.String()})
	require.NoError(t, err)

	a, err := GenerateApp("", log.NewNopLogger(), false)
	require.NoError(t, err)
	a.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: raw})
	a.Commit()

	var w cash.Wallet
	require.NoError(t, app.QueryOne(a, "/wallets", owner, &w))
	require.Equal(t, uint64(initialBalance), w.Balance)

	_, err = GenInitOptions([]string{"not-hex"})
	require.Error(t, err)
}

func TestExamples(t *testing.T) {
	examples, err := Examples()
	require.NoError(t, err)
	require.NotEmpty(t, examples)

	// the examples are deterministic
	again, err := Examples()
	require.NoError(t, err)
	require.Equal(t, examples, again)
}
