package dghv

import (
	"errors"
)

// ErrPreconditionNotSatisfied is the sentinel error wrapped by every error
// returned for a violated precondition: invalid parameter sizes, empty
// inputs to Sum, Product, Concat, EqualTo or Select, mismatched public
// elements, and operations on uninitialized arrays.
// The returned error message carries the failing predicate.
var ErrPreconditionNotSatisfied = errors.New("precondition not satisfied")
