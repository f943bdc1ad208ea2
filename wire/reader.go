package wire

import (
	"io"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/errors"
)

// Reader walks the fields of an encoded message. The first failure stops
// the walk and is returned by Err.
//
//	r := wire.NewReader(data)
//	for r.Next() {
//		switch r.Field() {
//		case 1:
//			m.Name = r.Text()
//		default:
//			r.Skip()
//		}
//	}
//	return r.Err()
type Reader struct {
	buf   []byte
	field int
	wt    uint64
	err   error
}

func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// Next reads the key of the next field. It returns false once the input
// is consumed or reading failed.
func (r *Reader) Next() bool {
	if r.err != nil || len(r.buf) == 0 {
		return false
	}
	key := r.varint()
	if r.err != nil {
		return false
	}
	field := key >> 3
	if field == 0 || field > 1<<29-1 {
		r.fail(errors.Wrapf(errors.ErrInput, "illegal field %d", field))
		return false
	}
	r.field, r.wt = int(field), key&7
	return true
}

// Field is the number of the current field.
func (r *Reader) Field() int {
	return r.field
}

// Err returns the first failure, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) expect(wt uint64) bool {
	if r.err != nil {
		return false
	}
	if r.wt != wt {
		r.fail(errors.Wrapf(errors.ErrInput, "field %d: wire type %d, want %d", r.field, r.wt, wt))
		return false
	}
	return true
}

func (r *Reader) varint() uint64 {
	v, n := proto.DecodeVarint(r.buf)
	if n == 0 {
		r.fail(errors.Wrap(errors.ErrInput, io.ErrUnexpectedEOF.Error()))
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

func (r *Reader) take(n uint64) []byte {
	if n > uint64(len(r.buf)) {
		r.fail(errors.Wrapf(errors.ErrInput, "field %d: length %d exceeds input", r.field, n))
		return nil
	}
	v := r.buf[:n]
	r.buf = r.buf[n:]
	return v
}

func (r *Reader) raw() []byte {
	if !r.expect(bytesType) {
		return nil
	}
	n := r.varint()
	if r.err != nil {
		return nil
	}
	return r.take(n)
}

// Uint reads an unsigned varint.
func (r *Reader) Uint() uint64 {
	if !r.expect(varintType) {
		return 0
	}
	return r.varint()
}

// Uint32 reads a varint and truncates it the way proto uint32 does.
func (r *Reader) Uint32() uint32 {
	return uint32(r.Uint())
}

// Int reads a varint written by AppendInt.
func (r *Reader) Int() int64 {
	return int64(r.Uint())
}

func (r *Reader) Bool() bool {
	return r.Uint() != 0
}

// Bytes returns a copy of a length delimited value. A present but empty
// value is returned as an empty, non nil slice.
func (r *Reader) Bytes() []byte {
	v := r.raw()
	if r.err != nil {
		return nil
	}
	return append([]byte{}, v...)
}

// Text reads a length delimited value as a string.
func (r *Reader) Text() string {
	return string(r.raw())
}

// Message decodes an embedded message into m.
func (r *Reader) Message(m Unmarshaler) {
	v := r.raw()
	if r.err != nil {
		return
	}
	if err := m.Unmarshal(v); err != nil {
		r.fail(errors.Wrapf(err, "field %d", r.field))
	}
}

// Skip discards the value of a field the message does not know.
func (r *Reader) Skip() {
	if r.err != nil {
		return
	}
	switch r.wt {
	case varintType:
		r.varint()
	case fixed64Type:
		r.take(8)
	case fixed32Type:
		r.take(4)
	case bytesType:
		r.raw()
	default:
		r.fail(errors.Wrapf(errors.ErrInput, "field %d: unsupported wire type %d", r.field, r.wt))
	}
}
