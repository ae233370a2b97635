package dghv

import (
	"bufio"
	"io"
	"math/big"

	"github.com/tuneinsight/she/utils/buffer"
)

// CompressedCiphertext is the compact form of an encrypted bit vector.
// It stores, for the public element and for each encrypted bit, only
// the difference between the corresponding oracle stream output and
// the actual ciphertext element. Any party knowing the parameters can
// expand it into an EncryptedArray by replaying the oracle stream; the
// secret key is not needed.
//
// A CompressedCiphertext is produced by SecretKey.Encrypt and is
// immutable.
type CompressedCiphertext struct {
	params             Parameters
	publicElementDelta *big.Int
	elementsDeltas     []*big.Int
}

// Parameters returns the parameters of the ciphertext.
func (ct *CompressedCiphertext) Parameters() Parameters {
	return ct.params
}

// Size returns the number of encrypted bits.
func (ct *CompressedCiphertext) Size() int {
	return len(ct.elementsDeltas)
}

// PublicElementDelta returns a copy of the difference between the
// first oracle output and the public element.
func (ct *CompressedCiphertext) PublicElementDelta() *big.Int {
	return new(big.Int).Set(ct.publicElementDelta)
}

// ElementsDeltas returns a copy of the per-bit differences between the
// oracle outputs and the ciphertext elements.
func (ct *CompressedCiphertext) ElementsDeltas() []*big.Int {
	deltas := make([]*big.Int, len(ct.elementsDeltas))
	for i, d := range ct.elementsDeltas {
		deltas[i] = new(big.Int).Set(d)
	}
	return deltas
}

// Expand reconstructs the EncryptedArray underlying the compressed
// form by replaying the oracle stream keyed by (gamma, sigma): the
// public element is o_0 minus the stored delta_0, a multiple of the
// secret p by construction, and each element is o_i minus delta_i.
// The resulting array starts at degree 1 with the maximum degree of
// the parameters.
func (ct *CompressedCiphertext) Expand() *EncryptedArray {

	oracle := NewOracleStream(ct.params.CiphertextSize(), ct.params.OracleSeed())
	oracle.Reset()

	x := oracle.Next()
	x.Sub(x, ct.publicElementDelta)

	elements := make([]*big.Int, len(ct.elementsDeltas))
	for i, delta := range ct.elementsDeltas {
		e := oracle.Next()
		e.Sub(e, delta)
		elements[i] = e
	}

	return &EncryptedArray{
		degree:        1,
		maxDegree:     ct.params.MaxDegree(),
		publicElement: internPublicElement(x),
		elements:      elements,
	}
}

// Equal returns true if the receiver and the operand have identical
// parameters and deltas.
func (ct *CompressedCiphertext) Equal(other *CompressedCiphertext) bool {

	if !ct.params.Equal(other.params) {
		return false
	}

	if ct.publicElementDelta.Cmp(other.publicElementDelta) != 0 {
		return false
	}

	if len(ct.elementsDeltas) != len(other.elementsDeltas) {
		return false
	}

	for i := range ct.elementsDeltas {
		if ct.elementsDeltas[i].Cmp(other.elementsDeltas[i]) != 0 {
			return false
		}
	}

	return true
}

// BinarySize returns the serialized size of the object in bytes.
func (ct *CompressedCiphertext) BinarySize() int {
	return ct.params.BinarySize() + bigIntBinarySize(ct.publicElementDelta) + bigIntSliceBinarySize(ct.elementsDeltas)
}

// WriteTo writes the object on an io.Writer. It implements the
// io.WriterTo interface.
//
// Unless w implements the buffer.Writer interface (see
// she/utils/buffer/buffer.go), it will be wrapped into a bufio.Writer.
func (ct *CompressedCiphertext) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = ct.params.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = writeBigInt(w, ct.publicElementDelta); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = writeBigIntSlice(w, ct.elementsDeltas); err != nil {
			return n + inc, err
		}
		n += inc

		return n, w.Flush()

	default:
		bw := bufio.NewWriter(w)
		n, err = ct.WriteTo(bw)
		if err != nil {
			return n, err
		}
		return n, bw.Flush()
	}
}

// ReadFrom reads the object from an io.Reader. It implements the
// io.ReaderFrom interface. The oracle stream is not retained by the
// compressed form; Expand instantiates it from the loaded parameters.
//
// Unless r implements the buffer.Reader interface (see
// she/utils/buffer/buffer.go), it will be wrapped into a bufio.Reader.
func (ct *CompressedCiphertext) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		if inc, err = ct.params.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc

		ct.publicElementDelta = new(big.Int)
		if inc, err = readBigInt(r, ct.publicElementDelta); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = readBigIntSlice(r, &ct.elementsDeltas); err != nil {
			return n + inc, err
		}
		n += inc

		return n, nil

	default:
		return ct.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a slice of bytes.
func (ct *CompressedCiphertext) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(ct.BinarySize())
	if _, err = ct.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary
// on the object.
func (ct *CompressedCiphertext) UnmarshalBinary(data []byte) (err error) {
	_, err = ct.ReadFrom(buffer.NewBuffer(data))
	return err
}
