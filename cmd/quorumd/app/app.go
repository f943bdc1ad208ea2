/*
Package app links together all the various components
to construct the quorumd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/batch"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/iov-one/quorum/x/utils"
)

// Authenticator returns the typical authentication: public key
// signatures and the signers granted by an executing multisig proposal.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, multisig.Authenticate{})
}

// Codec returns a codec that knows every message the application routes.
func Codec() *app.Codec {
	c := app.NewCodec()
	c.Register(
		func() quorum.Msg { return &cash.SendMsg{} },
		func() quorum.Msg { return &batch.ExecuteBatchMsg{} },
		func() quorum.Msg { return &multisig.CreateGroupMsg{} },
		func() quorum.Msg { return &multisig.ProposeMsg{} },
		func() quorum.Msg { return &multisig.ApproveMsg{} },
		func() quorum.Msg { return &multisig.ExecuteMsg{} },
		func() quorum.Msg { return &multisig.CancelMsg{} },
		func() quorum.Msg { return &multisig.SetOwnersMsg{} },
		func() quorum.Msg { return &multisig.ChangeThresholdMsg{} },
	)
	return c
}

// Chain returns a chain of decorators, to handle authentication,
// batching, logging, metrics and recovery
func Chain(codec quorum.MsgDecoder) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment the sequence
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
		batch.NewDecorator(codec),
		utils.NewActionTagger(),
	)
}

// Router returns the router of all messages. Executed multisig proposals
// are dispatched through the same router.
func Router(authFn x.Authenticator, codec quorum.MsgDecoder) *app.Router {
	r := app.NewRouter()
	control := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, authFn, control)
	multisig.RegisterRoutes(r, authFn, codec, r, control)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth", "/multisig/groups"
// and "/multisig/proposals"
func QueryRouter() quorum.QueryRouter {
	r := quorum.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		multisig.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(codec quorum.MsgDecoder) quorum.Handler {
	authFn := Authenticator()
	return Chain(codec).WithHandler(Router(authFn, codec))
}

// Initializers returns the genesis initializers of every extension.
func Initializers() quorum.Initializer {
	return quorum.ChainInitializers(
		cash.Initializer{},
		multisig.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, h quorum.Handler,
	tx quorum.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path returns a memory store.
func CommitKVStore(dbPath string) (quorum.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	// Some external calls accidentally add a ".db", which is removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
