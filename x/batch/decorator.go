package batch

import (
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/utils"
	"github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/libs/common"
)

// Decorator iterates through batch transaction messages and passes them
// down the stack.
type Decorator struct {
	decoder quorum.MsgDecoder
}

var _ quorum.Decorator = Decorator{}

// NewDecorator returns a batch decorator that decodes the batched
// messages with decoder.
func NewDecorator(decoder quorum.MsgDecoder) Decorator {
	return Decorator{decoder: decoder}
}

// BatchTx exposes a single batched message as the transaction message.
type BatchTx struct {
	quorum.Tx
	Msg quorum.Msg
}

func (tx *BatchTx) GetMsg() (quorum.Msg, error) {
	return tx.Msg, nil
}

func (d Decorator) messages(tx quorum.Tx) ([]quorum.Msg, bool, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, false, err
	}
	batch, ok := msg.(*ExecuteBatchMsg)
	if !ok {
		return nil, false, nil
	}
	if err := batch.Validate(); err != nil {
		return nil, true, err
	}
	msgs := make([]quorum.Msg, len(batch.Messages))
	for i, e := range batch.Messages {
		m, err := d.decoder.DecodeMsg(e.Path, e.Data)
		if err != nil {
			return nil, true, errors.Wrapf(err, "message #%d", i)
		}
		msgs[i] = m
	}
	return msgs, true, nil
}

// Check iterates through messages in a batch transaction and passes them
// down the stack.
func (d Decorator) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	msgs, ok, err := d.messages(tx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return next.Check(ctx, store, tx)
	}

	checks := make([]*quorum.CheckResult, len(msgs))
	err = atomic(store, func(db quorum.KVStore) error {
		for i, msg := range msgs {
			res, err := next.Check(ctx, db, &BatchTx{Tx: tx, Msg: msg})
			if err != nil {
				return errors.Wrapf(err, "message #%d", i)
			}
			checks[i] = res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return combineChecks(checks), nil
}

// combines all data bytes as a go-amino array.
// joins all log messages with \n
func combineChecks(checks []*quorum.CheckResult) *quorum.CheckResult {
	datas := make([][]byte, len(checks))
	logs := make([]string, len(checks))
	var allocated int64
	for i, r := range checks {
		datas[i] = r.Data
		logs[i] = r.Log
		allocated += r.GasAllocated
	}
	return &quorum.CheckResult{
		Data:         amino.MustMarshalBinaryLengthPrefixed(datas),
		Log:          strings.Join(logs, "\n"),
		GasAllocated: allocated,
	}
}

// Deliver iterates through messages in a batch transaction and passes them
// down the stack.
func (d Decorator) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	msgs, ok, err := d.messages(tx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return next.Deliver(ctx, store, tx)
	}

	delivers := make([]*quorum.DeliverResult, len(msgs))
	err = atomic(store, func(db quorum.KVStore) error {
		for i, msg := range msgs {
			res, err := next.Deliver(ctx, db, &BatchTx{Tx: tx, Msg: msg})
			if err != nil {
				return errors.Wrapf(err, "message #%d", i)
			}
			delivers[i] = res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return combineDelivers(delivers), nil
}

// atomic runs all messages of a batch on a cache of store, so that a
// failing message discards the writes of those before it.
func atomic(store quorum.KVStore, fn func(quorum.KVStore) error) error {
	if cstore, ok := store.(quorum.CacheableKVStore); ok {
		return utils.Atomic(cstore, fn)
	}
	return fn(store)
}

// combines all data bytes as a go-amino array.
// joins all log messages with \n
func combineDelivers(delivers []*quorum.DeliverResult) *quorum.DeliverResult {
	datas := make([][]byte, len(delivers))
	logs := make([]string, len(delivers))
	var used int64
	var tags []common.KVPair
	for i, r := range delivers {
		datas[i] = r.Data
		logs[i] = r.Log
		used += r.GasUsed
		tags = append(tags, r.Tags...)
	}
	return &quorum.DeliverResult{
		Data:    amino.MustMarshalBinaryLengthPrefixed(datas),
		Log:     strings.Join(logs, "\n"),
		GasUsed: used,
		Tags:    tags,
	}
}

// DecodeResults splits the data of a batch result back into the data
// returned by every message.
func DecodeResults(data []byte) ([][]byte, error) {
	var res [][]byte
	if err := amino.UnmarshalBinaryLengthPrefixed(data, &res); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}
