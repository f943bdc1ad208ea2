package store

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, it Iterator) []Model {
	t.Helper()
	defer it.Release()
	var res []Model
	k, v, err := it.Next()
	for err == nil {
		res = append(res, Model{Key: k, Value: v})
		k, v, err = it.Next()
	}
	require.True(t, errors.ErrIteratorDone.Is(err), "unexpected error %v", err)
	return res
}

func TestMemStoreGetSetDelete(t *testing.T) {
	db := MemStore()

	v, err := db.Get([]byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, has)

	v, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, db.Delete([]byte("a")))
	has, err = db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("keep"), []byte("base")))
	require.NoError(t, base.Set([]byte("drop"), []byte("base")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("keep"), []byte("cached")))
	require.NoError(t, cache.Delete([]byte("drop")))
	require.NoError(t, cache.Set([]byte("new"), []byte("cached")))

	// The parent is untouched until Write.
	v, err := base.Get([]byte("keep"))
	require.NoError(t, err)
	assert.Equal(t, []byte("base"), v)

	v, err = cache.Get([]byte("drop"))
	require.NoError(t, err)
	assert.Nil(t, v)

	discarded := base.CacheWrap()
	require.NoError(t, discarded.Set([]byte("ghost"), []byte("x")))
	discarded.Discard()
	has, err := base.Has([]byte("ghost"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, cache.Write())
	v, err = base.Get([]byte("keep"))
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), v)
	has, err = base.Has([]byte("drop"))
	require.NoError(t, err)
	assert.False(t, has)
	has, err = base.Has([]byte("new"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestMergedIteration(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}
	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Delete([]byte("c")))
	require.NoError(t, cache.Set([]byte("e"), []byte("cache-e")))

	cases := map[string]struct {
		reverse    bool
		start, end []byte
		want       []Model
	}{
		"full ascending": {
			want: []Model{
				{Key: []byte("a"), Value: []byte("base-a")},
				{Key: []byte("b"), Value: []byte("cache-b")},
				{Key: []byte("d"), Value: []byte("base-d")},
				{Key: []byte("e"), Value: []byte("cache-e")},
			},
		},
		"full descending": {
			reverse: true,
			want: []Model{
				{Key: []byte("e"), Value: []byte("cache-e")},
				{Key: []byte("d"), Value: []byte("base-d")},
				{Key: []byte("b"), Value: []byte("cache-b")},
				{Key: []byte("a"), Value: []byte("base-a")},
			},
		},
		"bounded ascending": {
			start: []byte("b"),
			end:   []byte("e"),
			want: []Model{
				{Key: []byte("b"), Value: []byte("cache-b")},
				{Key: []byte("d"), Value: []byte("base-d")},
			},
		},
		"bounded descending": {
			reverse: true,
			start:   []byte("a"),
			end:     []byte("d"),
			want: []Model{
				{Key: []byte("b"), Value: []byte("cache-b")},
				{Key: []byte("a"), Value: []byte("base-a")},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var it Iterator
			var err error
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, collect(t, it))
		})
	}
}

func TestNonAtomicBatchOps(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)
	require.NoError(t, b.Set([]byte("k"), []byte("v")))
	require.NoError(t, b.Delete([]byte("gone")))
	assert.Equal(t, []Op{SetOp([]byte("k"), []byte("v")), DelOp([]byte("gone"))}, b.ShowOps())

	require.NoError(t, b.Write())
	assert.Empty(t, b.ShowOps())
	v, err := base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}
