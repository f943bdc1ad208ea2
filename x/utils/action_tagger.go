package utils

import (
	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which ActionTagger records the path of
// every delivered message, so clients can search for executions or
// membership changes.
const ActionKey = "action"

type ActionTagger struct{}

var _ quorum.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags successful results only.
func (ActionTagger) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tag := common.KVPair{Key: []byte(ActionKey), Value: []byte(quorum.GetPath(tx))}
	res.Tags = append(res.Tags, tag)
	return res, nil
}
