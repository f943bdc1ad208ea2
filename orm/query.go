package orm

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

func (mb *modelBucket) Register(name string, r quorum.QueryRouter) {
	r.Register("/"+name, bucketQuery{mb})
}

type bucketQuery struct {
	mb *modelBucket
}

var _ quorum.QueryHandler = bucketQuery{}

// Query handles key and prefix queries. Returned keys do not carry
// the bucket prefix.
func (q bucketQuery) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	switch mod {
	case quorum.KeyQueryMod:
		raw, err := db.Get(q.mb.dbKey(data))
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []quorum.Model{quorum.Pair(data, raw)}, nil
	case quorum.PrefixQueryMod:
		var res []quorum.Model
		err := q.mb.Visit(db, data, func(key, raw []byte) error {
			res = append(res, quorum.Pair(key, raw))
			return nil
		})
		return res, err
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
