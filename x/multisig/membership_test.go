package multisig

import (
	"bytes"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestMembershipChangeDisablesPendingProposals(t *testing.T) {
	e := newEnv(t)
	g := e.createGroup(2, 3)
	newOwners := newConditions(3)

	change := setOwnersInstruction(t, g, ownerAddresses(newOwners)...)
	first := e.mustPropose(g, g.owners[0], change)
	noop := setOwnersInstruction(t, g, ownerAddresses(g.owners)...)
	pending := e.mustPropose(g, g.owners[2], noop)

	require.NoError(t, e.approve(g, first, g.owners[1]))
	_, err := e.execute(g, first, g.owners[1], g.owners[0].Address(), change)
	require.NoError(t, err)

	group := e.group(g)
	require.Equal(t, uint32(1), group.OwnerSetVersion)
	require.Equal(t, ownerAddresses(newOwners), group.Owners)
	require.Equal(t, uint64(2), group.Threshold)

	// Old and new owners alike can no longer use the stale proposal.
	assert.IsErr(t, errors.ErrConstraintRaw, e.approve(g, pending, g.owners[0]))
	assert.IsErr(t, errors.ErrConstraintRaw, e.approve(g, pending, newOwners[0]))
	_, err = e.execute(g, pending, newOwners[0], newOwners[0].Address(), noop)
	assert.IsErr(t, errors.ErrConstraintRaw, err)

	// Former owners lost every right on the group.
	_, err = e.propose(g, g.owners[0], noop)
	assert.IsErr(t, ErrInvalidOwner, err)
	_, err = e.deliver(e.as(g.owners[2]), &CancelMsg{
		Group:     g.address(),
		Proposal:  pending,
		Canceller: g.owners[2].Address(),
		Refundee:  g.owners[2].Address(),
	})
	assert.IsErr(t, ErrInvalidOwner, err)

	// The stale proposal is still stored and can be withdrawn.
	p, err := e.proposal(pending)
	require.NoError(t, err)
	require.False(t, p.DidExecute)
	_, err = e.deliver(e.as(newOwners[1]), &CancelMsg{
		Group:     g.address(),
		Proposal:  pending,
		Canceller: newOwners[1].Address(),
		Refundee:  newOwners[1].Address(),
	})
	require.NoError(t, err)

	_, err = e.propose(g, newOwners[0], noop)
	require.NoError(t, err)
}

func TestSetOwnersToEmptySetFails(t *testing.T) {
	e := newEnv(t)
	g := e.createGroup(1, 2)
	in := setOwnersInstruction(t, g)
	proposal := e.mustPropose(g, g.owners[0], in)

	_, err := e.execute(g, proposal, g.owners[0], g.owners[0].Address(), in)
	assert.IsErr(t, ErrNotEnoughOwners, err)

	group := e.group(g)
	require.Equal(t, uint32(0), group.OwnerSetVersion)
	require.Equal(t, ownerAddresses(g.owners), group.Owners)
	p, err := e.proposal(proposal)
	require.NoError(t, err)
	require.False(t, p.DidExecute)
}

func TestSetOwnersSizeRules(t *testing.T) {
	e := newEnv(t)
	g := e.createGroup(3, 3)

	run := func(in *Instruction) error {
		proposal := e.mustPropose(g, g.owners[0], in)
		for _, o := range g.owners[1:] {
			if err := e.approve(g, proposal, o); err != nil {
				return err
			}
		}
		_, err := e.execute(g, proposal, g.owners[0], g.owners[0].Address(), in)
		return err
	}

	// Shrinking below the threshold clamps it.
	require.NoError(t, run(setOwnersInstruction(t, g, g.owners[0].Address(), g.owners[1].Address())))
	group := e.group(g)
	require.Equal(t, uint64(2), group.Threshold)
	require.Equal(t, uint32(1), group.OwnerSetVersion)
	g.owners = g.owners[:2]

	// The set cannot grow back.
	grow := setOwnersInstruction(t, g, append(ownerAddresses(g.owners), weavetest.NewAddress())...)
	assert.IsErr(t, ErrTooManyOwners, run(grow))
	require.Equal(t, uint32(1), e.group(g).OwnerSetVersion)

	// Swapping owners keeps the size and is allowed.
	fresh := newConditions(1)[0]
	require.NoError(t, run(setOwnersInstruction(t, g, g.owners[0].Address(), fresh.Address())))
	group = e.group(g)
	require.Equal(t, uint32(2), group.OwnerSetVersion)
	require.Equal(t, uint64(2), group.Threshold)
	require.True(t, group.IsOwner(fresh.Address()))
	require.False(t, group.IsOwner(g.owners[1].Address()))

	dup := setOwnersInstruction(t, g, g.owners[0].Address(), g.owners[0].Address())
	g.owners = []quorum.Condition{g.owners[0], fresh}
	assert.IsErr(t, ErrUniqueOwners, run(dup))
}

func TestSetOwnersRequiresGroupSigner(t *testing.T) {
	e := newEnv(t)
	g := e.createGroup(1, 2)
	other := e.createGroup(1, 2)

	// Owners cannot bypass the proposal flow.
	_, err := e.deliver(e.as(g.owners...), &SetOwnersMsg{
		Group:  g.address(),
		Signer: g.signer,
		Owners: ownerAddresses(g.owners[:1]),
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// A proposal of another group grants only its own signer.
	in := mustInstruction(t, &SetOwnersMsg{
		Group:  g.address(),
		Signer: other.signer,
		Owners: ownerAddresses(g.owners[:1]),
	})
	proposal := e.mustPropose(other, other.owners[0], in)
	_, err = e.execute(other, proposal, other.owners[0], other.owners[0].Address(), in)
	assert.IsErr(t, errors.ErrConstraintSeeds, err)

	in = mustInstruction(t, &SetOwnersMsg{
		Group:  g.address(),
		Signer: g.signer,
		Owners: ownerAddresses(g.owners[:1]),
	})
	proposal = e.mustPropose(other, other.owners[0], in)
	_, err = e.execute(other, proposal, other.owners[0], other.owners[0].Address(), in)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	require.Len(t, e.group(g).Owners, 2)
}

func TestChangeThreshold(t *testing.T) {
	e := newEnv(t)
	g := e.createGroup(1, 3)

	change := func(threshold uint64) *Instruction {
		return mustInstruction(t, &ChangeThresholdMsg{
			Group:     g.address(),
			Signer:    g.signer,
			Threshold: threshold,
		})
	}

	_, err := e.deliver(e.as(g.owners...), &ChangeThresholdMsg{
		Group:     g.address(),
		Signer:    g.signer,
		Threshold: 2,
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	for _, threshold := range []uint64{0, 4} {
		in := change(threshold)
		proposal := e.mustPropose(g, g.owners[0], in)
		_, err := e.execute(g, proposal, g.owners[0], g.owners[0].Address(), in)
		assert.IsErr(t, ErrInvalidThreshold, err)
	}

	in := change(3)
	proposal := e.mustPropose(g, g.owners[0], in)
	_, err = e.execute(g, proposal, g.owners[0], g.owners[0].Address(), in)
	require.NoError(t, err)

	group := e.group(g)
	require.Equal(t, uint64(3), group.Threshold)
	// Only owner set replacements bump the version.
	require.Equal(t, uint32(0), group.OwnerSetVersion)
}

func TestChangeThresholdIsReported(t *testing.T) {
	e := newEnv(t)
	g := e.createGroup(1, 3)
	signerKey, _, err := DeriveSigner(g.address())
	require.NoError(t, err)

	var logs bytes.Buffer
	ctx := withSigner(e.as(), signerKey.Condition())
	ctx = quorum.WithLogger(ctx, log.NewTMLogger(log.NewSyncWriter(&logs)))
	msg := &ChangeThresholdMsg{Group: g.address(), Signer: g.signer, Threshold: 2}

	cres, err := e.check(ctx, msg)
	require.NoError(t, err)
	require.Equal(t, changeThresholdCost, cres.GasAllocated)

	before := testutil.ToFloat64(membershipChanges.WithLabelValues(changeThreshold))
	_, err = e.deliver(ctx, msg)
	require.NoError(t, err)
	require.Equal(t, before+1, testutil.ToFloat64(membershipChanges.WithLabelValues(changeThreshold)))
	require.Contains(t, logs.String(), "threshold changed")
	require.Contains(t, logs.String(), "threshold=2")
	require.Equal(t, uint64(2), e.group(g).Threshold)
}
