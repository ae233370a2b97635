package dghv

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	"github.com/tuneinsight/she/utils/buffer"
)

// PlaintextArray is the noise-free counterpart of EncryptedArray: an
// ordered vector of bits carrying degree 0, participating in the same
// operation surface. Combining a PlaintextArray with an EncryptedArray
// lifts the operation into the encrypted ring under the modulus of the
// encrypted operand.
type PlaintextArray struct {
	bits []uint8
}

// NewPlaintextArray returns a PlaintextArray holding the least
// significant bit of each input byte.
func NewPlaintextArray(bits []uint8) *PlaintextArray {
	b := make([]uint8, len(bits))
	for i, bit := range bits {
		b[i] = bit & 1
	}
	return &PlaintextArray{bits: b}
}

// Bits returns a copy of the bits of the array.
func (pt *PlaintextArray) Bits() []uint8 {
	b := make([]uint8, len(pt.bits))
	copy(b, pt.bits)
	return b
}

// Size returns the number of bits of the array.
func (pt *PlaintextArray) Size() int {
	return len(pt.bits)
}

// Degree returns 0, the degree of any plaintext.
func (pt *PlaintextArray) Degree() int {
	return 0
}

// MaxDegree returns 0.
func (pt *PlaintextArray) MaxDegree() int {
	return 0
}

// CopyNew returns a copy of the array.
func (pt *PlaintextArray) CopyNew() *PlaintextArray {
	return NewPlaintextArray(pt.bits)
}

// Xor replaces the receiver by its element-wise XOR with other over
// the common prefix. The tail of the longer operand is adopted as-is.
func (pt *PlaintextArray) Xor(other *PlaintextArray) error {

	m := min(len(pt.bits), len(other.bits))
	for i := 0; i < m; i++ {
		pt.bits[i] ^= other.bits[i]
	}
	pt.bits = append(pt.bits, other.bits[m:]...)

	return nil
}

// And replaces the receiver by its element-wise AND with other over
// the common prefix. The tail of the longer operand is adopted as-is,
// not zeroed, mirroring the XOR tail rule.
func (pt *PlaintextArray) And(other *PlaintextArray) error {

	m := min(len(pt.bits), len(other.bits))
	for i := 0; i < m; i++ {
		pt.bits[i] &= other.bits[i]
	}
	pt.bits = append(pt.bits, other.bits[m:]...)

	return nil
}

// Extend appends the bits of other to the receiver.
func (pt *PlaintextArray) Extend(other *PlaintextArray) error {
	pt.bits = append(pt.bits, other.bits...)
	return nil
}

// XorCiphertext returns the element-wise XOR of the receiver with ct,
// evaluated in the encrypted ring of ct.
func (pt *PlaintextArray) XorCiphertext(ct *EncryptedArray) (*EncryptedArray, error) {
	out := ct.CopyNew()
	if err := out.XorPlaintext(pt); err != nil {
		return nil, err
	}
	return out, nil
}

// AndCiphertext returns the element-wise AND of the receiver with ct,
// evaluated in the encrypted ring of ct.
func (pt *PlaintextArray) AndCiphertext(ct *EncryptedArray) (*EncryptedArray, error) {
	out := ct.CopyNew()
	if err := out.AndPlaintext(pt); err != nil {
		return nil, err
	}
	return out, nil
}

// EqualToPlaintexts returns, for each candidate of in, one bit that is
// 1 iff the receiver equals the candidate.
func (pt *PlaintextArray) EqualToPlaintexts(in []*PlaintextArray) (*PlaintextArray, error) {

	if len(in) == 0 {
		return nil, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	out := NewPlaintextArray(nil)

	for _, c := range in {

		diff := pt.CopyNew()
		if err := diff.Xor(c); err != nil {
			return nil, err
		}

		all := uint8(1)
		for _, b := range diff.bits {
			all &= b ^ 1
		}
		out.bits = append(out.bits, all)
	}

	return out, nil
}

// EqualToCiphertexts is EqualToPlaintexts lifted into the encrypted
// ring of the candidates, which must all share the same public
// element.
func (pt *PlaintextArray) EqualToCiphertexts(in []*EncryptedArray) (*EncryptedArray, error) {

	if len(in) == 0 {
		return nil, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	if err := in[0].checkInitialized(); err != nil {
		return nil, err
	}

	out := NewEncryptedArray(in[0].publicElement, in[0].maxDegree)

	for _, c := range in {

		if err := in[0].checkOperand(c); err != nil {
			return nil, err
		}

		diff := c.CopyNew()
		if err := diff.XorPlaintext(pt); err != nil {
			return nil, err
		}

		out.elements = append(out.elements, equalProduct(diff))
		out.degree = max(out.degree, diff.degree*len(diff.elements))
	}

	return out, nil
}

// SelectPlaintexts treats the receiver as a selector over the rows of
// in: row i is masked by bit i of the receiver and the masked rows are
// XOR-accumulated. For a one-hot selector the result is the selected
// row.
func (pt *PlaintextArray) SelectPlaintexts(in []*PlaintextArray) (*PlaintextArray, error) {

	if len(in) == 0 {
		return nil, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	out := NewPlaintextArray(nil)

	m := min(len(pt.bits), len(in))
	for i := 0; i < m; i++ {

		picked := in[i].CopyNew()
		for j := range picked.bits {
			picked.bits[j] &= pt.bits[i]
		}

		if err := out.Xor(picked); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// SelectCiphertexts is SelectPlaintexts over encrypted rows, which
// must all share the same public element. Masking by a plaintext bit
// does not add a noise factor.
func (pt *PlaintextArray) SelectCiphertexts(in []*EncryptedArray) (*EncryptedArray, error) {

	if len(in) == 0 {
		return nil, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	if err := in[0].checkInitialized(); err != nil {
		return nil, err
	}

	out := NewEncryptedArray(in[0].publicElement, in[0].maxDegree)

	m := min(len(pt.bits), len(in))
	for i := 0; i < m; i++ {

		if err := in[0].checkOperand(in[i]); err != nil {
			return nil, err
		}

		picked := in[i].CopyNew()
		if pt.bits[i] == 0 {
			for _, e := range picked.elements {
				e.SetInt64(0)
			}
		}

		if err := out.Xor(picked); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Equal returns true if the receiver and the operand hold the same
// bits.
func (pt *PlaintextArray) Equal(other *PlaintextArray) bool {
	return slices.Equal(pt.bits, other.bits)
}

// BinarySize returns the serialized size of the object in bytes.
func (pt *PlaintextArray) BinarySize() int {
	return 8 + len(pt.bits)
}

// WriteTo writes the object on an io.Writer. It implements the
// io.WriterTo interface.
//
// Unless w implements the buffer.Writer interface (see
// she/utils/buffer/buffer.go), it will be wrapped into a bufio.Writer.
func (pt *PlaintextArray) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		if n, err = buffer.WriteUint8Slice(w, pt.bits); err != nil {
			return n, err
		}
		return n, w.Flush()
	default:
		bw := bufio.NewWriter(w)
		n, err = pt.WriteTo(bw)
		if err != nil {
			return n, err
		}
		return n, bw.Flush()
	}
}

// ReadFrom reads the object from an io.Reader. It implements the
// io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface (see
// she/utils/buffer/buffer.go), it will be wrapped into a bufio.Reader.
func (pt *PlaintextArray) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		return buffer.ReadUint8Slice(r, &pt.bits)
	default:
		return pt.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a slice of bytes.
func (pt *PlaintextArray) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(pt.BinarySize())
	if _, err = pt.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary
// on the object.
func (pt *PlaintextArray) UnmarshalBinary(data []byte) (err error) {
	_, err = pt.ReadFrom(buffer.NewBuffer(data))
	return err
}
