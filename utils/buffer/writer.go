package buffer

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// WriteUint8 writes a single byte on w.
func WriteUint8(w Writer, c uint8) (n int64, err error) {
	inc, err := w.Write([]byte{c})
	return int64(inc), err
}

// WriteUint32 writes a little-endian uint32 on w.
func WriteUint32(w Writer, c uint32) (n int64, err error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], c)
	inc, err := w.Write(buf[:])
	return int64(inc), err
}

// WriteUint64 writes a little-endian uint64 on w.
func WriteUint64(w Writer, c uint64) (n int64, err error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], c)
	inc, err := w.Write(buf[:])
	return int64(inc), err
}

// WriteAsUint64 casts c to an uint64 and writes it on w. The user must
// ensure that c can be stored in an uint64.
func WriteAsUint64[T constraints.Integer](w Writer, c T) (n int64, err error) {
	return WriteUint64(w, uint64(c))
}

// WriteUint8Slice writes a length-prefixed []uint8 on w.
func WriteUint8Slice(w Writer, c []uint8) (n int64, err error) {
	if n, err = WriteAsUint64[int](w, len(c)); err != nil {
		return n, err
	}
	inc, err := w.Write(c)
	return n + int64(inc), err
}
