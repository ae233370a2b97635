package dghv

import (
	"math/big"
	"sync"
)

// publicElements is the process-wide intern set of public elements. All
// arrays derived from the same encryption hold the same *big.Int, so
// modulus identity is a pointer comparison.
var publicElements = struct {
	sync.RWMutex
	values map[string]*big.Int
}{
	values: make(map[string]*big.Int),
}

// internPublicElement returns the canonical pointer for the value of x.
// The returned integer is shared and must not be mutated.
func internPublicElement(x *big.Int) *big.Int {

	k := string(x.Bytes())

	publicElements.RLock()
	v, ok := publicElements.values[k]
	publicElements.RUnlock()

	if ok {
		return v
	}

	publicElements.Lock()
	defer publicElements.Unlock()

	if v, ok = publicElements.values[k]; ok {
		return v
	}

	v = new(big.Int).Set(x)
	publicElements.values[k] = v
	return v
}
