package app

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/stretchr/testify/require"
)

func newSendMsg() quorum.Msg { return &cash.SendMsg{} }

func TestCodecDecodeMsg(t *testing.T) {
	codec := NewCodec()
	codec.Register(newSendMsg)

	require.Panics(t, func() { codec.Register(newSendMsg) })
	require.Panics(t, func() {
		codec.Register(func() quorum.Msg { return &weavetest.Msg{RoutePath: "bad path!"} })
	})

	src := &cash.SendMsg{
		Source:      weavetest.NewAddress(),
		Destination: weavetest.NewAddress(),
		Amount:      5,
	}
	raw, err := src.Marshal()
	require.NoError(t, err)

	msg, err := codec.DecodeMsg(src.Path(), raw)
	require.NoError(t, err)
	require.Equal(t, src, msg)

	_, err = codec.DecodeMsg("multisig/unknown", raw)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = codec.DecodeMsg(src.Path(), []byte{0xff, 0xff})
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestTxDecoder(t *testing.T) {
	codec := NewCodec()
	codec.Register(newSendMsg)
	decode := codec.TxDecoder()

	key := weavetest.NewKey()
	msg := &cash.SendMsg{
		Source:      key.PublicKey().Address(),
		Destination: weavetest.NewAddress(),
		Amount:      5,
	}
	tx, err := NewTx(msg)
	require.NoError(t, err)
	require.NoError(t, tx.Sign(key, "test-chain", 0))

	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)
	raw, err := tx.Marshal()
	require.NoError(t, err)
	require.NotEqual(t, raw, unsigned)

	got, err := decode(raw)
	require.NoError(t, err)
	gotMsg, err := got.GetMsg()
	require.NoError(t, err)
	require.Equal(t, msg, gotMsg)
	require.Equal(t, "cash/send", quorum.GetPath(got))

	stx, ok := got.(sigs.SignedTx)
	require.True(t, ok)
	require.Len(t, stx.GetSignatures(), 1)
	gotUnsigned, err := stx.GetSignBytes()
	require.NoError(t, err)
	require.Equal(t, unsigned, gotUnsigned)

	_, err = decode([]byte("not a transaction"))
	require.Error(t, err)

	other, err := (&Tx{Path: "multisig/unknown"}).Marshal()
	require.NoError(t, err)
	_, err = decode(other)
	assert.IsErr(t, errors.ErrNotFound, err)
}
