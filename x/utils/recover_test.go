package utils

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	h := weavetest.Decorate(weavetest.PanicHandler{Value: "boom"}, NewRecovery())
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/panic"}}

	_, err := h.Check(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	require.Contains(t, err.Error(), "boom")

	_, err = h.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestRecoveryPassesThrough(t *testing.T) {
	handler := &weavetest.Handler{DeliverErr: errors.ErrNotFound}
	h := weavetest.Decorate(handler, NewRecovery())
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/ok"}}

	_, err := h.Check(context.Background(), db, tx)
	assert.IsErr(t, nil, err)
	_, err = h.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	require.Equal(t, 2, handler.CallCount())
}
