package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree keeps nodes small, cache wraps rarely hold more than the
// writes of a single tx or block.
const btreeDegree = 2

// BTreeCacheable gives any KVStore a btree backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an empty in memory store. Nothing is persisted.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap buffers writes in a btree on top of a read only parent.
// Reads see the buffered writes first. Write replays them into batch.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap buffers writes over parent until Write flushes them
// into batch. Nested wraps share free to reuse btree nodes; nil
// allocates a new list.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(btreeDegree, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all buffered changes to the parent and empties the
// buffer.
func (b BTreeCacheWrap) Write() error {
	defer b.Discard()
	return b.batch.Write()
}

// Discard drops all buffered changes.
func (b BTreeCacheWrap) Discard() {
	for b.tree.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	e, ok := b.lookup(key)
	if !ok {
		return b.parent.Get(key)
	}
	return e.value, nil
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	e, ok := b.lookup(key)
	if !ok {
		return b.parent.Has(key)
	}
	return !e.deleted, nil
}

// lookup returns the buffered entry for key, if any.
func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	found := b.tree.Get(entry{key: key})
	if found == nil {
		return entry{}, false
	}
	return found.(entry), true
}

func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(collectEntries(b.tree, start, end, false), parent, false), nil
}

func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(collectEntries(b.tree, start, end, true), parent, true), nil
}

// entry is a buffered write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
