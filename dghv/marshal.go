package dghv

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/she/utils/buffer"
)

// writeBigInt writes x on w as a length-prefixed string in base
// IntegerSerializationBase.
func writeBigInt(w buffer.Writer, x *big.Int) (n int64, err error) {
	return buffer.WriteUint8Slice(w, []byte(x.Text(IntegerSerializationBase)))
}

// readBigInt reads into x a length-prefixed string in base
// IntegerSerializationBase written by writeBigInt.
func readBigInt(r buffer.Reader, x *big.Int) (n int64, err error) {
	var s []uint8
	if n, err = buffer.ReadUint8Slice(r, &s); err != nil {
		return n, err
	}
	if _, ok := x.SetString(string(s), IntegerSerializationBase); !ok {
		return n, fmt.Errorf("cannot parse base-%d integer %q", IntegerSerializationBase, s)
	}
	return n, nil
}

// bigIntBinarySize returns the serialized size of x in bytes.
func bigIntBinarySize(x *big.Int) int {
	return 8 + len(x.Text(IntegerSerializationBase))
}

// writeBigIntSlice writes a length-prefixed slice of big integers on w.
func writeBigIntSlice(w buffer.Writer, xs []*big.Int) (n int64, err error) {

	var inc int64

	if n, err = buffer.WriteAsUint64[int](w, len(xs)); err != nil {
		return n, err
	}

	for _, x := range xs {
		if inc, err = writeBigInt(w, x); err != nil {
			return n + inc, err
		}
		n += inc
	}

	return n, nil
}

// readBigIntSlice reads a length-prefixed slice of big integers from r
// into xs.
func readBigIntSlice(r buffer.Reader, xs *[]*big.Int) (n int64, err error) {

	var inc int64
	var size int

	if n, err = buffer.ReadAsUint64[int](r, &size); err != nil {
		return n, err
	}

	s := make([]*big.Int, size)
	for i := range s {
		s[i] = new(big.Int)
		if inc, err = readBigInt(r, s[i]); err != nil {
			return n + inc, err
		}
		n += inc
	}

	*xs = s
	return n, nil
}

// bigIntSliceBinarySize returns the serialized size of xs in bytes.
func bigIntSliceBinarySize(xs []*big.Int) (size int) {
	size = 8
	for _, x := range xs {
		size += bigIntBinarySize(x)
	}
	return
}
