package iavl

import (
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of iavl nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing
func NewCommitStore(dir, name string) (CommitStore, error) {
	db, err := safeOpenDB(dir, name)
	if err != nil {
		return CommitStore{}, err
	}
	return NewCommitStoreFromDB(db), nil
}

// NewMemCommitStore creates a store that is never persisted.
func NewMemCommitStore() CommitStore {
	return NewCommitStoreFromDB(dbm.NewMemDB())
}

// NewCommitStoreFromDB uses the given database as the tree backend.
func NewCommitStoreFromDB(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, DefaultCacheSize)}
}

func safeOpenDB(dir, name string) (db dbm.DB, err error) {
	defer errors.Recover(&err)
	return dbm.NewDB(name, dbm.GoLevelDBBackend, dir), nil
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions. Writing the
// cache updates the working tree, which is persisted on Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	a := adapter{tree: s.tree}
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

// adapter exposes the working tree as a KVStore.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = adapter{}

func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

func (a adapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return store.NewSliceIterator(a.collect(start, end, true)), nil
}

func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return store.NewSliceIterator(a.collect(start, end, false)), nil
}

func (a adapter) collect(start, end []byte, ascending bool) []store.Model {
	var res []store.Model
	a.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return res
}
