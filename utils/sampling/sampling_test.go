package sampling_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/she/utils/sampling"
)

func TestPRNG(t *testing.T) {

	t.Run("KeyedPRNG", func(t *testing.T) {

		key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
			0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

		Ha, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)
		Hb, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		sum0 := make([]byte, 512)
		sum1 := make([]byte, 512)

		for i := 0; i < 128; i++ {
			_, err = Hb.Read(sum1)
			require.NoError(t, err)
		}

		Hb.Reset()

		_, err = Ha.Read(sum0)
		require.NoError(t, err)
		_, err = Hb.Read(sum1)
		require.NoError(t, err)

		require.Equal(t, sum0, sum1)
	})

	t.Run("KeyedPRNG/Key", func(t *testing.T) {

		key := []byte{0x01, 0x02, 0x03, 0x04}

		Ha, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)
		require.Equal(t, key, Ha.Key())
	})
}

func TestRandBigInt(t *testing.T) {

	prng, err := sampling.NewPRNG()
	require.NoError(t, err)

	t.Run("Bits", func(t *testing.T) {
		for _, bits := range []int{1, 7, 8, 9, 63, 64, 65, 1000} {
			bound := new(big.Int).Lsh(big.NewInt(1), uint(bits))
			for i := 0; i < 16; i++ {
				n := sampling.RandBigInt(prng, bits)
				require.True(t, n.Sign() >= 0)
				require.True(t, n.Cmp(bound) < 0)
			}
		}
	})

	t.Run("Range", func(t *testing.T) {
		upper := new(big.Int).SetUint64(1000003)
		for i := 0; i < 64; i++ {
			n := sampling.RandBigIntRange(prng, upper)
			require.True(t, n.Sign() >= 0)
			require.True(t, n.Cmp(upper) < 0)
		}
	})
}
