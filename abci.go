package quorum

import (
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successfully delivered transaction.
// Failures are always reported as errors, never as a result.
type DeliverResult struct {
	// Data is the machine readable outcome, for example an execution
	// receipt.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and allow searching for the
	// transactions that touched a group or a proposal.
	Tags    []common.KVPair
	GasUsed int64
}

// CheckResult is the outcome of a transaction that passed CheckTx.
type CheckResult struct {
	Data         []byte
	Log          string
	GasAllocated int64
}

// NewCheck returns a check result with the given gas allowance.
func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{GasAllocated: gasAllocated, Log: log}
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags, GasUsed: d.GasUsed}
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasAllocated}
}

// DeliverOrError builds the DeliverTx response from whichever of result
// and err is set.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError builds the CheckTx response from whichever of result and
// err is set.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// ParseDeliverOrError turns a DeliverTx response back into a result, or
// into the registered error matching its code.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	d := DeliverResult{Data: res.Data, Log: res.Log, Tags: res.Tags, GasUsed: res.GasUsed}
	return &d, nil
}

// DeliverTxError converts err into a failed DeliverTx response. Details
// of unregistered errors are only exposed in debug mode.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := abciFailure("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError converts err into a failed CheckTx response.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := abciFailure("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func abciFailure(prefix string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, prefix + ": " + log
}
