// Package dghv implements a symmetric somewhat-homomorphic encryption
// scheme over bits of the DGHV family (van Dijk, Gentry, Halevi and
// Vaikuntanathan, "Fully Homomorphic Encryption over the Integers").
//
// A ciphertext of a bit m has the form c = q*p + 2*r + m, where p is the
// odd secret integer, q a public multiplier and r a small noise term.
// Bitwise XOR and AND are carried out as addition and multiplication
// modulo a public multiple of p. Each AND accumulates noise; the scheme
// supports a bounded number of successive multiplications before
// decryption becomes unreliable.
package dghv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tuneinsight/she/utils/buffer"
)

// IntegerSerializationBase is the base of the string representation used
// when serializing arbitrary precision integers.
const IntegerSerializationBase = 62

// ParametersLiteral is a literal representation of scheme parameters. It
// has public fields and is used to express unchecked user-defined
// parameters literally into Go programs. The NewParametersFromLiteral
// function is used to generate the actual checked parameters from the
// literal representation.
type ParametersLiteral struct {
	Security       int    // lambda
	NoiseSize      int    // rho, bit-size of the encryption noise
	SecretKeySize  int    // eta, bit-size of the secret integer
	CiphertextSize int    // gamma, bit-size of ciphertext elements
	OracleSeed     uint64 // sigma, seed of the compression oracle stream
}

// Parameters represents a checked set of scheme parameters. Its fields
// are private and immutable. See ParametersLiteral for user-specified
// parameters.
type Parameters struct {
	security       int
	noiseSize      int
	secretKeySize  int
	ciphertextSize int
	oracleSeed     uint64
}

// NewParameters returns a new set of parameters from the security
// parameter lambda, the noise size rho, the secret key size eta, the
// ciphertext size gamma (all in bits) and the oracle seed. It returns the
// empty Parameters{} and an error wrapping ErrPreconditionNotSatisfied
// unless gamma >= eta >= rho > 0.
func NewParameters(lambda, rho, eta, gamma int, seed uint64) (Parameters, error) {

	if !(gamma >= eta && eta >= rho && rho > 0) {
		return Parameters{}, fmt.Errorf("%w: gamma >= eta >= rho > 0 (gamma=%d, eta=%d, rho=%d)", ErrPreconditionNotSatisfied, gamma, eta, rho)
	}

	return Parameters{
		security:       lambda,
		noiseSize:      rho,
		secretKeySize:  eta,
		ciphertextSize: gamma,
		oracleSeed:     seed,
	}, nil
}

// NewParametersFromLiteral instantiates a set of parameters from a
// ParametersLiteral specification, validating it in the process.
func NewParametersFromLiteral(lit ParametersLiteral) (Parameters, error) {
	return NewParameters(lit.Security, lit.NoiseSize, lit.SecretKeySize, lit.CiphertextSize, lit.OracleSeed)
}

// GenerateParameters derives a parameter set for the given security
// parameter lambda and oracle seed that supports at least depth
// successive homomorphic multiplications:
//
//	rho = 2*lambda, eta = lambda^2 + lambda*depth, gamma = eta^2 * depth.
//
// It returns an error wrapping ErrPreconditionNotSatisfied unless
// lambda > 0 and depth > 0.
func GenerateParameters(lambda, depth int, seed uint64) (Parameters, error) {

	if lambda <= 0 {
		return Parameters{}, fmt.Errorf("%w: lambda > 0 (lambda=%d)", ErrPreconditionNotSatisfied, lambda)
	}

	if depth <= 0 {
		return Parameters{}, fmt.Errorf("%w: depth > 0 (depth=%d)", ErrPreconditionNotSatisfied, depth)
	}

	rho := 2 * lambda
	eta := lambda*lambda + lambda*depth
	gamma := eta * eta * depth

	return NewParameters(lambda, rho, eta, gamma, seed)
}

// Security returns the security parameter lambda.
func (p Parameters) Security() int {
	return p.security
}

// NoiseSize returns the bit-size rho of the encryption noise.
func (p Parameters) NoiseSize() int {
	return p.noiseSize
}

// SecretKeySize returns the bit-size eta of the secret integer.
func (p Parameters) SecretKeySize() int {
	return p.secretKeySize
}

// CiphertextSize returns the bit-size gamma of ciphertext elements.
func (p Parameters) CiphertextSize() int {
	return p.ciphertextSize
}

// OracleSeed returns the seed sigma of the compression oracle stream.
func (p Parameters) OracleSeed() uint64 {
	return p.oracleSeed
}

// MaxDegree returns eta/rho, the approximate number of homomorphic
// multiplications that can be performed on a ciphertext before
// decryption becomes unreliable.
func (p Parameters) MaxDegree() int {
	return p.secretKeySize / p.noiseSize
}

// ParametersLiteral returns the literal representation of the parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Security:       p.security,
		NoiseSize:      p.noiseSize,
		SecretKeySize:  p.secretKeySize,
		CiphertextSize: p.ciphertextSize,
		OracleSeed:     p.oracleSeed,
	}
}

// Equal returns true if the receiver and the operand are identical
// parameter sets.
func (p Parameters) Equal(other Parameters) bool {
	return p == other
}

// BinarySize returns the serialized size of the object in bytes.
func (p Parameters) BinarySize() int {
	return 40
}

// WriteTo writes the object on an io.Writer. It implements the
// io.WriterTo interface.
//
// Unless w implements the buffer.Writer interface (see
// she/utils/buffer/buffer.go), it will be wrapped into a bufio.Writer.
func (p Parameters) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		for _, c := range []uint64{
			uint64(p.security),
			uint64(p.noiseSize),
			uint64(p.secretKeySize),
			uint64(p.ciphertextSize),
			p.oracleSeed,
		} {
			if inc, err = buffer.WriteUint64(w, c); err != nil {
				return n + inc, err
			}
			n += inc
		}

		return n, w.Flush()

	default:
		bw := bufio.NewWriter(w)
		n, err = p.WriteTo(bw)
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
func (p *Parameters) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64
		var security, noiseSize, secretKeySize, ciphertextSize, oracleSeed uint64

		for _, c := range []*uint64{&security, &noiseSize, &secretKeySize, &ciphertextSize, &oracleSeed} {
			if inc, err = buffer.ReadUint64(r, c); err != nil {
				return n + inc, err
			}
			n += inc
		}

		*p, err = NewParameters(int(security), int(noiseSize), int(secretKeySize), int(ciphertextSize), oracleSeed)

		return n, err

	default:
		return p.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a slice of bytes.
func (p Parameters) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(p.BinarySize())
	if _, err = p.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary on
// the object.
func (p *Parameters) UnmarshalBinary(data []byte) (err error) {
	_, err = p.ReadFrom(buffer.NewBuffer(data))
	return err
}

// MarshalJSON returns a JSON representation of the parameter set, through
// its ParametersLiteral.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the
// receiver, validating it in the process.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var lit ParametersLiteral
	if err = json.Unmarshal(data, &lit); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(lit)
	return err
}
