package multisig

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOwnerSet(t *testing.T) {
	a, b, c := weavetest.NewAddress(), weavetest.NewAddress(), weavetest.NewAddress()

	cases := map[string]struct {
		owners    []quorum.Address
		threshold uint64
		wantErr   *errors.Error
	}{
		"one of one":        {owners: []quorum.Address{a}, threshold: 1},
		"three of three":    {owners: []quorum.Address{a, b, c}, threshold: 3},
		"zero threshold":    {owners: []quorum.Address{a, b}, threshold: 0, wantErr: ErrInvalidThreshold},
		"threshold too big": {owners: []quorum.Address{a, b}, threshold: 3, wantErr: ErrInvalidThreshold},
		"no owners":         {owners: nil, threshold: 1, wantErr: ErrNotEnoughOwners},
		"duplicates":        {owners: []quorum.Address{a, b, a}, threshold: 1, wantErr: ErrUniqueOwners},
		"invalid address":   {owners: []quorum.Address{a, quorum.Address("short")}, threshold: 1, wantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, validateOwnerSet(tc.owners, tc.threshold))
		})
	}
}

func TestReplaceOwners(t *testing.T) {
	owners := []quorum.Address{weavetest.NewAddress(), weavetest.NewAddress(), weavetest.NewAddress()}

	cases := map[string]struct {
		threshold     uint64
		replacement   []quorum.Address
		wantErr       *errors.Error
		wantThreshold uint64
	}{
		"same size": {
			threshold:     2,
			replacement:   []quorum.Address{weavetest.NewAddress(), weavetest.NewAddress(), weavetest.NewAddress()},
			wantThreshold: 2,
		},
		"shrink keeps a reachable threshold": {
			threshold:     2,
			replacement:   owners[:2],
			wantThreshold: 2,
		},
		"shrink clamps the threshold": {
			threshold:     3,
			replacement:   owners[:1],
			wantThreshold: 1,
		},
		"empty": {
			threshold: 1,
			wantErr:   ErrNotEnoughOwners,
		},
		"growth": {
			threshold:   1,
			replacement: append(append([]quorum.Address{}, owners...), weavetest.NewAddress()),
			wantErr:     ErrTooManyOwners,
		},
		"duplicates": {
			threshold:   1,
			replacement: []quorum.Address{owners[0], owners[0]},
			wantErr:     ErrUniqueOwners,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			g := Group{
				Address:   weavetest.NewAddress(),
				Owners:    owners,
				Threshold: tc.threshold,
			}
			err := g.ReplaceOwners(tc.replacement)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				require.Equal(t, owners, g.Owners)
				require.Equal(t, uint32(0), g.OwnerSetVersion)
				return
			}
			require.Equal(t, tc.replacement, g.Owners)
			require.Equal(t, tc.wantThreshold, g.Threshold)
			require.Equal(t, uint32(1), g.OwnerSetVersion)
			require.NoError(t, g.Validate())
		})
	}
}

func TestProposalApprovals(t *testing.T) {
	a, b, c := weavetest.NewAddress(), weavetest.NewAddress(), weavetest.NewAddress()
	var p Proposal

	p.Approve(a)
	p.Approve(b)
	p.Approve(a)
	require.Equal(t, []quorum.Address{a, b}, p.Approvals)

	require.Equal(t, uint64(2), p.CountApprovals([]quorum.Address{a, b, c}))
	// Approvals of removed owners do not count.
	require.Equal(t, uint64(1), p.CountApprovals([]quorum.Address{b, c}))
	require.Equal(t, uint64(0), p.CountApprovals(nil))

	g := &Group{OwnerSetVersion: 0}
	require.False(t, p.IsStale(g))
	g.OwnerSetVersion++
	require.True(t, p.IsStale(g))
}

func TestInstructionEquals(t *testing.T) {
	addr := weavetest.NewAddress()
	base := func() *Instruction {
		return &Instruction{
			Path:     "cash/send",
			Accounts: []*AccountMeta{{Address: addr, IsSigner: true}},
			Data:     []byte("payload"),
		}
	}

	cases := map[string]struct {
		modify func(*Instruction)
		want   bool
	}{
		"identical":     {modify: func(*Instruction) {}, want: true},
		"path":          {modify: func(in *Instruction) { in.Path = "cash/other" }},
		"data":          {modify: func(in *Instruction) { in.Data = []byte("other") }},
		"signer flag":   {modify: func(in *Instruction) { in.Accounts[0].IsSigner = false }},
		"writable flag": {modify: func(in *Instruction) { in.Accounts[0].IsWritable = true }},
		"account":       {modify: func(in *Instruction) { in.Accounts[0].Address = weavetest.NewAddress() }},
		"extra account": {modify: func(in *Instruction) { in.Accounts = append(in.Accounts, &AccountMeta{Address: addr}) }},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			other := base()
			tc.modify(other)
			require.Equal(t, tc.want, base().Equals(other))
			require.Equal(t, tc.want, instructionsEqual([]*Instruction{base()}, []*Instruction{other}))
		})
	}

	require.False(t, instructionsEqual([]*Instruction{base()}, []*Instruction{base(), base()}))
	require.True(t, instructionsEqual(nil, nil))
}

func TestBucketsRoundTrip(t *testing.T) {
	e := newEnv(t)

	g := &Group{
		Address:   weavetest.NewAddress(),
		Owners:    []quorum.Address{weavetest.NewAddress(), weavetest.NewAddress()},
		Threshold: 2,
	}
	groups := NewGroupBucket()
	require.NoError(t, groups.Put(e.db, g.Address, g))
	got, err := groups.GetGroup(e.db, g.Address)
	require.NoError(t, err)
	require.Equal(t, g, got)

	_, err = groups.GetGroup(e.db, weavetest.NewAddress())
	assert.IsErr(t, errors.ErrNotFound, err)

	p := &Proposal{
		Address:      weavetest.NewAddress(),
		Group:        g.Address,
		Nonce:        7,
		Instructions: []*Instruction{{Path: "cash/send", Data: []byte{1}}},
		Approvals:    []quorum.Address{g.Owners[0]},
	}
	proposals := NewProposalBucket()
	require.NoError(t, proposals.Put(e.db, p.Address, p))
	gotP, err := proposals.GetProposal(e.db, p.Address)
	require.NoError(t, err)
	require.Equal(t, p, gotP)

	// Invalid models are rejected on write.
	err = groups.Put(e.db, g.Address, &Group{Address: g.Address, Threshold: 1})
	require.Error(t, err)
}
