package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a StoreApp that also decodes and runs transactions.
type BaseApp struct {
	*StoreApp
	decoder quorum.TxDecoder
	handler quorum.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp runs every transaction decoded by decoder through handler.
// With debug set, failed transactions report full error details.
func NewBaseApp(store *StoreApp, decoder quorum.TxDecoder, handler quorum.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: store, decoder: decoder, handler: handler, debug: debug}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, ctx, err := b.prepare("deliver_tx", raw)
	if err != nil {
		return quorum.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return quorum.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, ctx, err := b.prepare("check_tx", raw)
	if err != nil {
		return quorum.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return quorum.CheckOrError(res, err, b.debug)
}

// prepare decodes raw and returns the block context annotated with the
// call and the message path.
func (b BaseApp) prepare(call string, raw []byte) (quorum.Tx, quorum.Context, error) {
	tx, err := b.decode(raw)
	if err != nil {
		return nil, nil, err
	}
	ctx := quorum.WithLogInfo(b.BlockContext(), "call", call, "path", quorum.GetPath(tx))
	return tx, ctx, nil
}

// decode never panics, whatever the bytes.
func (b BaseApp) decode(raw []byte) (tx quorum.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
