package dghv

import (
	"bufio"
	"io"
	"math/big"

	"github.com/tuneinsight/she/utils/buffer"
	"github.com/tuneinsight/she/utils/sampling"
)

// SecretKey is the secret key of the scheme: an odd integer p of eta
// bits. The key holder can encrypt bits into a CompressedCiphertext and
// decrypt an EncryptedArray. The key is immutable after generation.
type SecretKey struct {
	params Parameters
	value  *big.Int
	prng   sampling.PRNG
	oracle *OracleStream
}

// NewSecretKey generates a new secret key for the given parameters. The
// secret integer p is drawn uniformly in [0, 2^eta) until odd. An odd
// public multiplier q in [0, 2^gamma/p) is also drawn; only its effect
// on the generator state is retained, as the compressed form carries
// the public randomness implicitly.
func NewSecretKey(params Parameters) *SecretKey {

	sk := &SecretKey{params: params}
	sk.initRandom()

	p := sampling.RandBigInt(sk.prng, params.SecretKeySize())
	for p.Bit(0) == 0 {
		p = sampling.RandBigInt(sk.prng, params.SecretKeySize())
	}
	sk.value = p

	bound := new(big.Int).Lsh(big.NewInt(1), uint(params.CiphertextSize()))
	bound.Quo(bound, p)

	q := sampling.RandBigIntRange(sk.prng, bound)
	for q.Bit(0) == 0 {
		q = sampling.RandBigIntRange(sk.prng, bound)
	}

	return sk
}

// initRandom instantiates the CSPRNG and the oracle stream of the key.
// It is called at generation time and again after deserialization.
func (sk *SecretKey) initRandom() {
	prng, err := sampling.NewPRNG()
	if err != nil {
		panic(err)
	}
	sk.prng = prng
	sk.oracle = NewOracleStream(sk.params.CiphertextSize(), sk.params.OracleSeed())
}

// Parameters returns the parameters of the key.
func (sk *SecretKey) Parameters() Parameters {
	return sk.params
}

// Value returns a copy of the secret integer p.
func (sk *SecretKey) Value() *big.Int {
	return new(big.Int).Set(sk.value)
}

// Encrypt encrypts a vector of bits into a CompressedCiphertext. Each
// input byte contributes its least significant bit.
//
// The oracle stream keyed by (gamma, sigma) is rewound and one integer
// o_i is drawn per bit, plus a leading o_0 for the public element. The
// compressed form stores delta_0 = o_0 mod p and, for each bit m with
// fresh noise r in [1, 2^rho], delta_i = (o_i - 2r - m) mod p.
func (sk *SecretKey) Encrypt(bits []uint8) *CompressedCiphertext {

	p := sk.value

	sk.oracle.Reset()

	publicElementDelta := new(big.Int).Mod(sk.oracle.Next(), p)

	elementsDeltas := make([]*big.Int, len(bits))
	for i, m := range bits {

		r := sampling.RandBigInt(sk.prng, sk.params.NoiseSize())
		r.Add(r, big.NewInt(1))

		delta := sk.oracle.Next()
		delta.Sub(delta, r.Lsh(r, 1))
		delta.Sub(delta, big.NewInt(int64(m&1)))
		delta.Mod(delta, p)

		elementsDeltas[i] = delta
	}

	return &CompressedCiphertext{
		params:             sk.params,
		publicElementDelta: publicElementDelta,
		elementsDeltas:     elementsDeltas,
	}
}

// Decrypt decrypts an EncryptedArray into a vector of bits, one byte
// per element, recovering each bit as (e_i mod p) mod 2.
//
// The degree of the array is not checked: decrypting an array whose
// degree exceeds its budget silently returns corrupted bits. See
// NoiseOK and Noise for diagnostics.
func (sk *SecretKey) Decrypt(ct *EncryptedArray) []uint8 {

	p := sk.value

	bits := make([]uint8, len(ct.elements))
	res := new(big.Int)
	for i, e := range ct.elements {
		res.Mod(e, p)
		bits[i] = uint8(res.Bit(0))
	}

	return bits
}

// Equal returns true if the receiver and the operand have identical
// parameters and secret integers.
func (sk *SecretKey) Equal(other *SecretKey) bool {
	return sk.params.Equal(other.params) && sk.value.Cmp(other.value) == 0
}

// BinarySize returns the serialized size of the object in bytes.
func (sk *SecretKey) BinarySize() int {
	return sk.params.BinarySize() + bigIntBinarySize(sk.value)
}

// WriteTo writes the object on an io.Writer. It implements the
// io.WriterTo interface.
//
// Unless w implements the buffer.Writer interface (see
// she/utils/buffer/buffer.go), it will be wrapped into a bufio.Writer.
func (sk *SecretKey) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = sk.params.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = writeBigInt(w, sk.value); err != nil {
			return n + inc, err
		}
		n += inc

		return n, w.Flush()

	default:
		bw := bufio.NewWriter(w)
		n, err = sk.WriteTo(bw)
		if err != nil {
			return n, err
		}
		return n, bw.Flush()
	}
}

// ReadFrom reads the object from an io.Reader and re-initializes the
// CSPRNG and the oracle stream of the key. It implements the
// io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface (see
// she/utils/buffer/buffer.go), it will be wrapped into a bufio.Reader.
func (sk *SecretKey) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		if inc, err = sk.params.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc

		sk.value = new(big.Int)
		if inc, err = readBigInt(r, sk.value); err != nil {
			return n + inc, err
		}
		n += inc

		sk.initRandom()

		return n, nil

	default:
		return sk.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a slice of bytes.
func (sk *SecretKey) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(sk.BinarySize())
	if _, err = sk.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary
// on the object.
func (sk *SecretKey) UnmarshalBinary(data []byte) (err error) {
	_, err = sk.ReadFrom(buffer.NewBuffer(data))
	return err
}
