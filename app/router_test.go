package app

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	counter := &weavetest.Handler{}
	failing := &weavetest.Handler{DeliverErr: errors.ErrUnauthorized}
	r.Handle("multisig/good", counter)
	r.Handle("multisig/bad", failing)

	// make sure invalid registrations panic
	require.Panics(t, func() { r.Handle("multisig/good", counter) })
	require.Panics(t, func() { r.Handle("l:7", counter) })

	ctx := context.Background()
	txFor := func(path string) quorum.Tx {
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, nil, txFor("multisig/good"))
	require.NoError(t, err)
	_, err = r.Deliver(ctx, nil, txFor("multisig/good"))
	require.NoError(t, err)
	require.Equal(t, 2, counter.CallCount())

	_, err = r.Deliver(ctx, nil, txFor("multisig/bad"))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = r.Deliver(ctx, nil, txFor("multisig/missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Check(ctx, nil, txFor("multisig/missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
	require.Equal(t, 2, counter.CallCount())

	_, err = r.Check(ctx, nil, &weavetest.Tx{Err: errors.ErrInput})
	assert.IsErr(t, errors.ErrInput, err)
}
