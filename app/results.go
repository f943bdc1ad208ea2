package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/wire"
)

// ResultSet holds the keys or the values returned by a query. Key and
// value sets of one query response always have the same length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

func (m *ResultSet) Size() int {
	var n int
	for _, r := range m.Results {
		n += wire.SizeElem(1, r)
	}
	return n
}

func (m *ResultSet) Marshal() ([]byte, error) { return wire.Marshal(m) }

func (m *ResultSet) MarshalTo(dst []byte) (int, error) {
	b := dst[:0]
	for _, r := range m.Results {
		b = wire.AppendElem(b, 1, r)
	}
	return wire.Done(dst, b)
}

func (m *ResultSet) Unmarshal(data []byte) error {
	r := wire.NewReader(data)
	for r.Next() {
		switch r.Field() {
		case 1:
			m.Results = append(m.Results, r.Bytes())
		default:
			r.Skip()
		}
	}
	return r.Err()
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []quorum.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []quorum.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]quorum.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]quorum.Model, len(kref))
	for i := range mods {
		mods[i] = quorum.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o quorum.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(err, "result set")
	}
	if len(res.Results) == 0 {
		return errors.ErrNotFound
	}
	return o.Unmarshal(res.Results[0])
}
