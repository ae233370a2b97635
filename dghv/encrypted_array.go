package dghv

import (
	"bufio"
	"fmt"
	"io"
	"math/big"

	"github.com/tuneinsight/she/utils/buffer"
)

// EncryptedArray is a vector of noisy ciphertext elements sharing a
// public element x, a public multiple of the secret p used as the
// modulus of all homomorphic arithmetic. Each element encrypts one bit.
//
// The array tracks its degree, the number of AND factors accumulated by
// its elements, against the maximum degree supported by the parameters.
// Operations never check the budget; use NoiseOK to query it. An array
// whose degree exceeds its budget decrypts to corrupted bits.
//
// Arrays combined by a binary operation must share the same public
// element. Public elements are interned process-wide, so arrays
// expanded from ciphertexts of the same key satisfy this automatically.
type EncryptedArray struct {
	degree        int
	maxDegree     int
	publicElement *big.Int
	elements      []*big.Int
}

// NewEncryptedArray returns an empty EncryptedArray with the given
// public element and degree budget, at degree 1. Elements are
// accumulated through Extend, Xor or And.
func NewEncryptedArray(x *big.Int, maxDegree int) *EncryptedArray {
	return &EncryptedArray{
		degree:        1,
		maxDegree:     maxDegree,
		publicElement: internPublicElement(x),
	}
}

// Degree returns the current degree of the array.
func (ct *EncryptedArray) Degree() int {
	return ct.degree
}

// MaxDegree returns the degree budget of the array.
func (ct *EncryptedArray) MaxDegree() int {
	return ct.maxDegree
}

// NoiseOK returns true if the degree of the array is within its
// budget, i.e. if decryption is expected to be reliable.
func (ct *EncryptedArray) NoiseOK() bool {
	return ct.degree <= ct.maxDegree
}

// Size returns the number of elements of the array.
func (ct *EncryptedArray) Size() int {
	return len(ct.elements)
}

// PublicElement returns the interned public element of the array. The
// returned integer is shared and must not be mutated. It is nil if the
// array is uninitialized.
func (ct *EncryptedArray) PublicElement() *big.Int {
	return ct.publicElement
}

// Elements returns a copy of the elements of the array.
func (ct *EncryptedArray) Elements() []*big.Int {
	elements := make([]*big.Int, len(ct.elements))
	for i, e := range ct.elements {
		elements[i] = new(big.Int).Set(e)
	}
	return elements
}

// CopyNew returns a deep copy of the array. The public element is
// shared, as it is interned.
func (ct *EncryptedArray) CopyNew() *EncryptedArray {
	elements := make([]*big.Int, len(ct.elements))
	for i, e := range ct.elements {
		elements[i] = new(big.Int).Set(e)
	}
	return &EncryptedArray{
		degree:        ct.degree,
		maxDegree:     ct.maxDegree,
		publicElement: ct.publicElement,
		elements:      elements,
	}
}

func (ct *EncryptedArray) checkInitialized() error {
	if ct.publicElement == nil {
		return fmt.Errorf("%w: array initialized (public element not set)", ErrPreconditionNotSatisfied)
	}
	return nil
}

func (ct *EncryptedArray) checkOperand(other *EncryptedArray) error {
	if err := ct.checkInitialized(); err != nil {
		return err
	}
	if err := other.checkInitialized(); err != nil {
		return err
	}
	if ct.publicElement != other.publicElement {
		return fmt.Errorf("%w: matching public elements", ErrPreconditionNotSatisfied)
	}
	return nil
}

// Xor adds other to the receiver element-wise modulo the shared public
// element, the homomorphic XOR. The tail of the longer operand is
// appended unchanged. The degree of the receiver becomes the maximum
// of the two degrees.
func (ct *EncryptedArray) Xor(other *EncryptedArray) error {

	if err := ct.checkOperand(other); err != nil {
		return err
	}

	x := ct.publicElement

	m := min(len(ct.elements), len(other.elements))
	for i := 0; i < m; i++ {
		e := ct.elements[i]
		e.Add(e, other.elements[i])
		e.Mod(e, x)
	}
	for i := m; i < len(other.elements); i++ {
		ct.elements = append(ct.elements, new(big.Int).Set(other.elements[i]))
	}

	ct.degree = max(ct.degree, other.degree)

	return nil
}

// And multiplies the receiver by other element-wise modulo the shared
// public element, the homomorphic AND. The tail of the longer operand
// is appended unchanged. The degrees add up.
func (ct *EncryptedArray) And(other *EncryptedArray) error {

	if err := ct.checkOperand(other); err != nil {
		return err
	}

	x := ct.publicElement

	m := min(len(ct.elements), len(other.elements))
	for i := 0; i < m; i++ {
		e := ct.elements[i]
		e.Mul(e, other.elements[i])
		e.Mod(e, x)
	}
	for i := m; i < len(other.elements); i++ {
		ct.elements = append(ct.elements, new(big.Int).Set(other.elements[i]))
	}

	ct.degree += other.degree

	return nil
}

// XorPlaintext adds the bits of pt to the receiver element-wise modulo
// the public element. Plaintext bits past the end of the receiver are
// appended as trivial elements. The degree is unchanged.
func (ct *EncryptedArray) XorPlaintext(pt *PlaintextArray) error {

	if err := ct.checkInitialized(); err != nil {
		return err
	}

	x := ct.publicElement

	m := min(len(ct.elements), len(pt.bits))
	for i := 0; i < m; i++ {
		if pt.bits[i]&1 == 1 {
			e := ct.elements[i]
			e.Add(e, big.NewInt(1))
			e.Mod(e, x)
		}
	}
	for i := m; i < len(pt.bits); i++ {
		ct.elements = append(ct.elements, big.NewInt(int64(pt.bits[i]&1)))
	}

	return nil
}

// AndPlaintext multiplies the receiver by the bits of pt element-wise
// modulo the public element. Plaintext bits past the end of the
// receiver are appended as trivial elements. Multiplying by a bit does
// not add a noise factor, so the degree is unchanged.
func (ct *EncryptedArray) AndPlaintext(pt *PlaintextArray) error {

	if err := ct.checkInitialized(); err != nil {
		return err
	}

	m := min(len(ct.elements), len(pt.bits))
	for i := 0; i < m; i++ {
		if pt.bits[i]&1 == 0 {
			ct.elements[i].SetInt64(0)
		}
	}
	for i := m; i < len(pt.bits); i++ {
		ct.elements = append(ct.elements, big.NewInt(int64(pt.bits[i]&1)))
	}

	return nil
}

// Extend appends the elements of other to the receiver. The degree of
// the receiver becomes the maximum of the two degrees.
func (ct *EncryptedArray) Extend(other *EncryptedArray) error {

	if err := ct.checkOperand(other); err != nil {
		return err
	}

	for _, e := range other.elements {
		ct.elements = append(ct.elements, new(big.Int).Set(e))
	}

	ct.degree = max(ct.degree, other.degree)

	return nil
}

// equalProduct returns the product of (e_i + 1) mod x over the
// elements of diff. It decrypts to 1 iff every element of diff
// decrypts to 0.
func equalProduct(diff *EncryptedArray) *big.Int {
	x := diff.publicElement
	all := big.NewInt(1)
	t := new(big.Int)
	for _, e := range diff.elements {
		t.Add(e, big.NewInt(1))
		all.Mul(all, t)
		all.Mod(all, x)
	}
	return all
}

// EqualTo returns, for each candidate of in, one element that decrypts
// to 1 iff the receiver and the candidate decrypt to the same bits.
// The degree of the result accounts for the worst-case growth of the
// products: max over the candidates of diff.degree times the number of
// compared bits.
func (ct *EncryptedArray) EqualTo(in []*EncryptedArray) (*EncryptedArray, error) {

	if len(in) == 0 {
		return nil, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	if err := ct.checkInitialized(); err != nil {
		return nil, err
	}

	out := NewEncryptedArray(ct.publicElement, ct.maxDegree)

	for _, c := range in {

		diff := ct.CopyNew()
		if err := diff.Xor(c); err != nil {
			return nil, err
		}

		out.elements = append(out.elements, equalProduct(diff))
		out.degree = max(out.degree, diff.degree*len(diff.elements))
	}

	return out, nil
}

// EqualToPlaintexts is EqualTo against plaintext candidates.
func (ct *EncryptedArray) EqualToPlaintexts(in []*PlaintextArray) (*EncryptedArray, error) {

	if len(in) == 0 {
		return nil, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	if err := ct.checkInitialized(); err != nil {
		return nil, err
	}

	out := NewEncryptedArray(ct.publicElement, ct.maxDegree)

	for _, c := range in {

		diff := ct.CopyNew()
		if err := diff.XorPlaintext(c); err != nil {
			return nil, err
		}

		out.elements = append(out.elements, equalProduct(diff))
		out.degree = max(out.degree, diff.degree*len(diff.elements))
	}

	return out, nil
}

// Select treats the receiver as a selector over the rows of in: each
// row is scaled element-wise by the corresponding selector element and
// the scaled rows are XOR-accumulated. If the selector decrypts to a
// one-hot vector with the 1 at position k, the result decrypts to row
// k. Each scaled row carries the degree of the selector plus the
// degree of the row.
func (ct *EncryptedArray) Select(in []*EncryptedArray) (*EncryptedArray, error) {

	if len(in) == 0 {
		return nil, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	if err := ct.checkInitialized(); err != nil {
		return nil, err
	}

	x := ct.publicElement

	out := NewEncryptedArray(x, ct.maxDegree)

	m := min(len(ct.elements), len(in))
	for i := 0; i < m; i++ {

		if err := ct.checkOperand(in[i]); err != nil {
			return nil, err
		}

		picked := in[i].CopyNew()
		for _, e := range picked.elements {
			e.Mul(e, ct.elements[i])
			e.Mod(e, x)
		}
		picked.degree = ct.degree + in[i].degree

		if err := out.Xor(picked); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// SelectPlaintexts is Select over plaintext rows. Scaling a plaintext
// bit by a selector element yields either zero or the selector element
// itself, so each scaled row carries the degree of the selector.
func (ct *EncryptedArray) SelectPlaintexts(in []*PlaintextArray) (*EncryptedArray, error) {

	if len(in) == 0 {
		return nil, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	if err := ct.checkInitialized(); err != nil {
		return nil, err
	}

	x := ct.publicElement

	out := NewEncryptedArray(x, ct.maxDegree)

	m := min(len(ct.elements), len(in))
	for i := 0; i < m; i++ {

		picked := NewEncryptedArray(x, ct.maxDegree)
		picked.degree = ct.degree
		picked.elements = make([]*big.Int, len(in[i].bits))
		for j, b := range in[i].bits {
			e := new(big.Int)
			if b&1 == 1 {
				e.Mod(ct.elements[i], x)
			}
			picked.elements[j] = e
		}

		if err := out.Xor(picked); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Equal returns true if the receiver and the operand have the same
// public element and element-wise identical elements. The degrees are
// not compared: two arrays are equal iff they decrypt identically
// under the same key, regardless of how they were produced.
func (ct *EncryptedArray) Equal(other *EncryptedArray) bool {

	if ct.publicElement != other.publicElement {
		return false
	}

	if len(ct.elements) != len(other.elements) {
		return false
	}

	for i := range ct.elements {
		if ct.elements[i].Cmp(other.elements[i]) != 0 {
			return false
		}
	}

	return true
}

// BinarySize returns the serialized size of the object in bytes.
func (ct *EncryptedArray) BinarySize() int {
	return 16 + bigIntBinarySize(ct.publicElement) + bigIntSliceBinarySize(ct.elements)
}

// WriteTo writes the object on an io.Writer. It implements the
// io.WriterTo interface. The public element is written by value; it is
// re-interned on read.
//
// Unless w implements the buffer.Writer interface (see
// she/utils/buffer/buffer.go), it will be wrapped into a bufio.Writer.
func (ct *EncryptedArray) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		if err = ct.checkInitialized(); err != nil {
			return 0, err
		}

		var inc int64

		if inc, err = buffer.WriteAsUint64[int](w, ct.degree); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.WriteAsUint64[int](w, ct.maxDegree); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = writeBigInt(w, ct.publicElement); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = writeBigIntSlice(w, ct.elements); err != nil {
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

// ReadFrom reads the object from an io.Reader and re-interns the
// public element. It implements the io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface (see
// she/utils/buffer/buffer.go), it will be wrapped into a bufio.Reader.
func (ct *EncryptedArray) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		if inc, err = buffer.ReadAsUint64[int](r, &ct.degree); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.ReadAsUint64[int](r, &ct.maxDegree); err != nil {
			return n + inc, err
		}
		n += inc

		x := new(big.Int)
		if inc, err = readBigInt(r, x); err != nil {
			return n + inc, err
		}
		n += inc
		ct.publicElement = internPublicElement(x)

		if inc, err = readBigIntSlice(r, &ct.elements); err != nil {
			return n + inc, err
		}
		n += inc

		return n, nil

	default:
		return ct.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a slice of bytes.
func (ct *EncryptedArray) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(ct.BinarySize())
	if _, err = ct.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary
// on the object.
func (ct *EncryptedArray) UnmarshalBinary(data []byte) (err error) {
	_, err = ct.ReadFrom(buffer.NewBuffer(data))
	return err
}
