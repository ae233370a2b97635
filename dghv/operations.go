package dghv

import (
	"fmt"
)

// Operand is the operation surface shared by EncryptedArray and
// PlaintextArray, as used by the folding free functions.
type Operand[T any] interface {
	CopyNew() T
	Xor(T) error
	And(T) error
	Extend(T) error
}

// Sum returns the element-wise XOR of all arrays of in. It returns an
// error wrapping ErrPreconditionNotSatisfied if in is empty.
func Sum[T Operand[T]](in []T) (out T, err error) {

	if len(in) == 0 {
		return out, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	out = in[0].CopyNew()
	for _, op := range in[1:] {
		if err = out.Xor(op); err != nil {
			return out, err
		}
	}

	return out, nil
}

// Product returns the element-wise AND of all arrays of in. For
// encrypted inputs the degree of the result is the sum of the degrees
// of the inputs. It returns an error wrapping
// ErrPreconditionNotSatisfied if in is empty.
func Product[T Operand[T]](in []T) (out T, err error) {

	if len(in) == 0 {
		return out, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	out = in[0].CopyNew()
	for _, op := range in[1:] {
		if err = out.And(op); err != nil {
			return out, err
		}
	}

	return out, nil
}

// Concat returns the concatenation of all arrays of in, in order. It
// returns an error wrapping ErrPreconditionNotSatisfied if in is
// empty.
func Concat[T Operand[T]](in []T) (out T, err error) {

	if len(in) == 0 {
		return out, fmt.Errorf("%w: len(in) > 0", ErrPreconditionNotSatisfied)
	}

	out = in[0].CopyNew()
	for _, op := range in[1:] {
		if err = out.Extend(op); err != nil {
			return out, err
		}
	}

	return out, nil
}
