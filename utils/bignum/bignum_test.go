package bignum_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/she/utils/bignum"
)

func TestLog2(t *testing.T) {

	for _, k := range []uint{1, 10, 100, 1000} {
		x := new(big.Int).Lsh(big.NewInt(1), k)
		log2, _ := bignum.Log2(bignum.NewFloat(x, 128)).Float64()
		require.InDelta(t, float64(k), log2, 1e-9)
	}

	log2, _ := bignum.Log2(bignum.NewFloat(1, 128)).Float64()
	require.InDelta(t, 0.0, log2, 1e-9)
}
