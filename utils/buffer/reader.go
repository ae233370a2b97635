package buffer

import (
	"encoding/binary"
	"io"

	"golang.org/x/exp/constraints"
)

// ReadUint8 reads a single byte from r into c.
func ReadUint8(r Reader, c *uint8) (n int64, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	*c = b
	return 1, nil
}

// ReadUint32 reads a little-endian uint32 from r into c.
func ReadUint32(r Reader, c *uint32) (n int64, err error) {
	var buf [4]byte
	inc, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(inc), err
	}
	*c = binary.LittleEndian.Uint32(buf[:])
	return int64(inc), nil
}

// ReadUint64 reads a little-endian uint64 from r into c.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {
	var buf [8]byte
	inc, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(inc), err
	}
	*c = binary.LittleEndian.Uint64(buf[:])
	return int64(inc), nil
}

// ReadAsUint64 reads an uint64 from r and casts it to T.
func ReadAsUint64[T constraints.Integer](r Reader, c *T) (n int64, err error) {
	var v uint64
	if n, err = ReadUint64(r, &v); err != nil {
		return n, err
	}
	*c = T(v)
	return n, nil
}

// ReadUint8Slice reads a length-prefixed []uint8 from r into c.
func ReadUint8Slice(r Reader, c *[]uint8) (n int64, err error) {
	var size int
	if n, err = ReadAsUint64[int](r, &size); err != nil {
		return n, err
	}
	s := make([]uint8, size)
	inc, err := io.ReadFull(r, s)
	if err != nil {
		return n + int64(inc), err
	}
	*c = s
	return n + int64(inc), nil
}
