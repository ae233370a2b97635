package dghv

import (
	"encoding/binary"
	"math/big"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/tuneinsight/she/utils/sampling"
)

// oracleDeriveContext is the domain separation string used to derive the
// XOF key of an oracle stream from its (size, seed) pair.
const oracleDeriveContext = "github.com/tuneinsight/she/dghv oracle stream"

type oracleCacheKey struct {
	size int
	seed uint64
}

// oracleCache is the process-wide cache of observed oracle stream
// prefixes, keyed by (size, seed). Two streams with the same key see
// byte-identical outputs as long as the cache is not reset.
var oracleCache = struct {
	sync.Mutex
	values map[oracleCacheKey][]*big.Int
}{
	values: make(map[oracleCacheKey][]*big.Int),
}

// OracleStream is a deterministic stream of uniformly distributed size-bit
// integers derived from a seed. It is the source of the public randomness
// shared between encryption and ciphertext expansion: the compressed form
// of a ciphertext stores only the differences between the stream outputs
// and the actual ciphertext elements.
//
// All streams with the same (size, seed) pair share a process-wide cache
// of drawn values, so that a stream observed after a Reset replays the
// exact integers previously drawn.
type OracleStream struct {
	size int
	seed uint64
	prng *sampling.KeyedPRNG
	pos  int
}

// NewOracleStream creates a new OracleStream of size-bit integers keyed
// by seed.
func NewOracleStream(size int, seed uint64) *OracleStream {

	var material [16]byte
	binary.LittleEndian.PutUint64(material[:8], uint64(size))
	binary.LittleEndian.PutUint64(material[8:], seed)

	var key [32]byte
	blake3.DeriveKey(oracleDeriveContext, material[:], key[:])

	prng, err := sampling.NewKeyedPRNG(key[:])
	if err != nil {
		panic(err)
	}

	return &OracleStream{size: size, seed: seed, prng: prng}
}

// Next returns the next integer of the stream. The value is served from
// the process-wide cache when it has already been observed by a stream
// with the same (size, seed), and drawn from this stream's generator
// otherwise. The returned integer is a copy and can be freely mutated.
func (os *OracleStream) Next() *big.Int {

	oracleCache.Lock()
	defer oracleCache.Unlock()

	k := oracleCacheKey{size: os.size, seed: os.seed}
	values := oracleCache.values[k]

	for len(values) <= os.pos {
		values = append(values, sampling.RandBigInt(os.prng, os.size))
	}
	oracleCache.values[k] = values

	v := new(big.Int).Set(values[os.pos])
	os.pos++
	return v
}

// Reset rewinds the stream to position 0 without re-seeding it. A
// subsequent Next returns the same value previously observed at position
// 0, as long as the cache has not been reset in between.
func (os *OracleStream) Reset() {
	os.pos = 0
}

// ResetOracleCache clears the process-wide cache shared by all oracle
// streams. After the reset, two freshly built streams with matching keys
// again produce matching sequences, but a Reset of an already positioned
// stream will return newly drawn integers rather than the previously
// cached ones.
func ResetOracleCache() {
	oracleCache.Lock()
	defer oracleCache.Unlock()
	oracleCache.values = make(map[oracleCacheKey][]*big.Int)
}
