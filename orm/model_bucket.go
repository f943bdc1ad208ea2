package orm

import (
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// ModelBucket stores Models of a single type under a common key prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists and ErrNotFound
	// otherwise.
	Has(db quorum.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated
	// before writing.
	Put(db quorum.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db quorum.KVStore, key []byte) error

	// Visit calls fn for every stored entity whose key starts with
	// prefix, in ascending key order. Iteration stops at the first error
	// returned by fn.
	Visit(db quorum.ReadOnlyKVStore, prefix []byte, fn func(key, raw []byte) error) error

	// Register the bucket as a query handler under /<name>.
	Register(name string, r quorum.QueryRouter)
}

// NewModelBucket returns a ModelBucket that stores its records under the
// "<name>:" prefix.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
	}
}

type modelBucket struct {
	prefix []byte
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %T: %s", dest, err)
	}
	return nil
}

func (mb *modelBucket) Has(db quorum.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db quorum.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot serialize %T: %s", m, err)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db quorum.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return db.Delete(mb.dbKey(key))
}

func (mb *modelBucket) Visit(db quorum.ReadOnlyKVStore, prefix []byte, fn func(key, raw []byte) error) error {
	start := mb.dbKey(prefix)
	it, err := db.Iterator(start, PrefixEnd(start))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Release()

	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(k[len(mb.prefix):], v); err != nil {
			return err
		}
	}
}

// PrefixEnd returns the smallest key that is greater than all keys
// starting with prefix, or nil if no such key exists.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
