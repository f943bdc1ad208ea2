package cash

import (
	"math"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveCoins(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()

	cases := map[string]struct {
		aliceHas  uint64
		bobHas    uint64
		amount    uint64
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"move part of the balance": {
			aliceHas: 100, amount: 30,
			wantAlice: 70, wantBob: 30,
		},
		"move everything removes the wallet": {
			aliceHas: 100, bobHas: 5, amount: 100,
			wantAlice: 0, wantBob: 105,
		},
		"empty source": {
			amount:  1,
			wantErr: ErrEmptyAccount,
		},
		"insufficient funds": {
			aliceHas: 10, amount: 11,
			wantErr:   ErrInsufficientFunds,
			wantAlice: 10,
		},
		"zero amount": {
			aliceHas: 10, amount: 0,
			wantErr:   errors.ErrAmount,
			wantAlice: 10,
		},
		"recipient overflow": {
			aliceHas: 10, bobHas: math.MaxUint64 - 5, amount: 10,
			wantErr:   errors.ErrOverflow,
			wantAlice: 10, wantBob: math.MaxUint64 - 5,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			c := NewController(NewBucket())
			require.NoError(t, c.IssueCoins(db, alice, tc.aliceHas))
			require.NoError(t, c.IssueCoins(db, bob, tc.bobHas))

			err := c.MoveCoins(db, alice, bob, tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			got, err := c.Balance(db, alice)
			require.NoError(t, err)
			require.Equal(t, tc.wantAlice, got)
			got, err = c.Balance(db, bob)
			require.NoError(t, err)
			require.Equal(t, tc.wantBob, got)
		})
	}
}

func TestMoveAll(t *testing.T) {
	db := store.MemStore()
	c := NewController(NewBucket())
	src := weavetest.NewAddress()
	dest := weavetest.NewAddress()

	moved, err := c.MoveAll(db, src, dest)
	require.NoError(t, err)
	require.Equal(t, uint64(0), moved)

	require.NoError(t, c.IssueCoins(db, src, 42))
	moved, err = c.MoveAll(db, src, dest)
	require.NoError(t, err)
	require.Equal(t, uint64(42), moved)

	has, err := db.Has(append([]byte(BucketName+":"), src...))
	require.NoError(t, err)
	require.False(t, has)
	bal, err := c.Balance(db, dest)
	require.NoError(t, err)
	require.Equal(t, uint64(42), bal)
}
