/*
Package wire encodes the protobuf wire format of the models and messages
described by the codec.proto files of every extension.

Types implement Size, MarshalTo and Unmarshal by listing their fields
with the Append, Size and Reader helpers of this package. Zero values of
scalar fields are omitted, as proto3 does. Elements of repeated fields
are always written.
*/
package wire

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/errors"
)

// Wire types used by the codecs.
const (
	varintType  = 0
	fixed64Type = 1
	bytesType   = 2
	fixed32Type = 5
)

// Marshaler is a message that can serialize itself into a buffer of
// Size bytes.
type Marshaler interface {
	Size() int
	MarshalTo([]byte) (int, error)
}

// Unmarshaler is a message that can restore itself from its encoding.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Marshal allocates a buffer of the size of m and serializes m into it.
func Marshal(m Marshaler) ([]byte, error) {
	b := make([]byte, m.Size())
	n, err := m.MarshalTo(b)
	if err != nil {
		return nil, err
	}
	return b[:n], nil
}

// Done reports the number of bytes written by an append chain that
// started at dst[:0]. It fails if the chain outgrew dst.
func Done(dst, b []byte) (int, error) {
	if len(b) > len(dst) {
		return 0, errors.Wrapf(errors.ErrState, "short buffer: %d bytes needed, %d given", len(b), len(dst))
	}
	return len(b), nil
}

func appendKey(b []byte, field int, wt uint64) []byte {
	return append(b, proto.EncodeVarint(uint64(field)<<3|wt)...)
}

func sizeKey(field int) int {
	return proto.SizeVarint(uint64(field) << 3)
}

// AppendUint writes an unsigned varint field. Zero is omitted.
func AppendUint(b []byte, field int, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = appendKey(b, field, varintType)
	return append(b, proto.EncodeVarint(v)...)
}

// AppendInt writes a signed varint field the way proto int64 does.
func AppendInt(b []byte, field int, v int64) []byte {
	return AppendUint(b, field, uint64(v))
}

// AppendBool writes true as 1. False is omitted.
func AppendBool(b []byte, field int, v bool) []byte {
	if !v {
		return b
	}
	return AppendUint(b, field, 1)
}

// AppendBytes writes a length delimited field. Empty values are omitted.
func AppendBytes(b []byte, field int, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	return AppendElem(b, field, v)
}

// AppendText is AppendBytes for strings.
func AppendText(b []byte, field int, v string) []byte {
	return AppendBytes(b, field, []byte(v))
}

// AppendElem writes one element of a repeated bytes field, even if it is
// empty.
func AppendElem(b []byte, field int, v []byte) []byte {
	b = appendKey(b, field, bytesType)
	b = append(b, proto.EncodeVarint(uint64(len(v)))...)
	return append(b, v...)
}

// AppendMessage writes m as an embedded message. A nil m must be skipped
// by the caller.
func AppendMessage(b []byte, field int, m Marshaler) ([]byte, error) {
	size := m.Size()
	b = appendKey(b, field, bytesType)
	b = append(b, proto.EncodeVarint(uint64(size))...)
	start := len(b)
	b = append(b, make([]byte, size)...)
	n, err := m.MarshalTo(b[start:])
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, errors.Wrapf(errors.ErrState, "message size %d, wrote %d", size, n)
	}
	return b, nil
}

// SizeUint is the encoded size of AppendUint.
func SizeUint(field int, v uint64) int {
	if v == 0 {
		return 0
	}
	return sizeKey(field) + proto.SizeVarint(v)
}

// SizeInt is the encoded size of AppendInt.
func SizeInt(field int, v int64) int {
	return SizeUint(field, uint64(v))
}

// SizeBool is the encoded size of AppendBool.
func SizeBool(field int, v bool) int {
	if !v {
		return 0
	}
	return sizeKey(field) + 1
}

// SizeBytes is the encoded size of AppendBytes.
func SizeBytes(field int, v []byte) int {
	if len(v) == 0 {
		return 0
	}
	return SizeElem(field, v)
}

// SizeText is the encoded size of AppendText.
func SizeText(field int, v string) int {
	return SizeBytes(field, []byte(v))
}

// SizeElem is the encoded size of AppendElem.
func SizeElem(field int, v []byte) int {
	return sizeKey(field) + proto.SizeVarint(uint64(len(v))) + len(v)
}

// SizeMessage is the encoded size of AppendMessage.
func SizeMessage(field int, m Marshaler) int {
	n := m.Size()
	return sizeKey(field) + proto.SizeVarint(uint64(n)) + n
}
