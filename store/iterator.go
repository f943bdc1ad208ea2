package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/quorum/errors"
)

// collectEntries takes a snapshot of all buffered entries within
// [start, end). A nil bound is open. The result is ordered in the
// iteration direction.
func collectEntries(bt *btree.BTree, start, end []byte, reverse bool) []entry {
	var items []entry
	collect := func(i btree.Item) bool {
		items = append(items, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// mergeIterator combines the cached items of a cache wrap with the
// iterator of its parent store. Cached values shadow parent values with
// the same key and deleted items hide them.
type mergeIterator struct {
	items   []entry
	reverse bool

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentDone bool
	parentErr  error
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []entry, parent Iterator, reverse bool) *mergeIterator {
	it := &mergeIterator{
		items:   items,
		reverse: reverse,
		parent:  parent,
	}
	it.advanceParent()
	return it
}

func (m *mergeIterator) advanceParent() {
	if m.parentDone {
		return
	}
	k, v, err := m.parent.Next()
	if err != nil {
		m.parentDone = true
		m.parentKey, m.parentVal = nil, nil
		if !errors.ErrIteratorDone.Is(err) {
			m.parentErr = err
		}
		return
	}
	m.parentKey, m.parentVal = k, v
}

// first returns true if a should be returned before b.
func (m *mergeIterator) first(a, b []byte) bool {
	if m.reverse {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(a, b) < 0
}

// Next returns the next key value pair or ErrIteratorDone.
func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if m.parentErr != nil {
			return nil, nil, m.parentErr
		}
		if len(m.items) == 0 {
			if m.parentDone {
				return nil, nil, errors.ErrIteratorDone
			}
			k, v := m.parentKey, m.parentVal
			m.advanceParent()
			return k, v, nil
		}

		item := m.items[0]
		if !m.parentDone && m.first(m.parentKey, item.key) {
			k, v := m.parentKey, m.parentVal
			m.advanceParent()
			return k, v, nil
		}

		// Cached item wins, shadowing the parent on equal keys.
		m.items = m.items[1:]
		if !m.parentDone && bytes.Equal(m.parentKey, item.key) {
			m.advanceParent()
		}
		if !item.deleted {
			return item.key, item.value, nil
		}
	}
}

// Release releases the parent iterator and the snapshot.
func (m *mergeIterator) Release() {
	m.items = nil
	m.parent.Release()
}
