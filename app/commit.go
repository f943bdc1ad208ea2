package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// CommitStore keeps separate scratch pads over the committed state for
// CheckTx and DeliverTx. Only the deliver pad is ever persisted.
type CommitStore struct {
	committed quorum.CommitKVStore
	deliver   quorum.KVCacheWrap
	check     quorum.KVCacheWrap
}

// NewCommitStore loads the latest committed version of store.
func NewCommitStore(store quorum.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs, nil
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

func (cs *CommitStore) CommitInfo() (quorum.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered in the block and drops the check
// state, which is rebuilt from the new version. Tendermint holds the
// mempool lock during Commit, so no CheckTx races the reset.
func (cs *CommitStore) Commit() (quorum.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return quorum.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() quorum.CacheableKVStore   { return cs.check }
func (cs *CommitStore) DeliverStore() quorum.CacheableKVStore { return cs.deliver }

// Keys under _q: hold application data that belongs to no extension.
var chainIDKey = []byte("_q:chainID")

func loadChainID(db quorum.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain id once, at genesis.
func saveChainID(db quorum.KVStore, chainID string) error {
	if !quorum.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch set, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case set:
		return errors.Wrap(errors.ErrImmutable, "chain id is set at genesis")
	}
	return errors.Wrap(db.Set(chainIDKey, []byte(chainID)), "save chain id")
}
