package dghv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/she/dghv"
)

func TestNoise(t *testing.T) {

	params, err := dghv.GenerateParameters(22, 5, 42)
	require.NoError(t, err)

	sk := dghv.NewSecretKey(params)

	bits := []uint8{1, 0, 1, 1, 0, 1, 0, 0}
	ea := sk.Encrypt(bits).Expand()

	t.Run(testString("Fresh", params), func(t *testing.T) {

		noise := dghv.Noise(sk, ea)
		require.Equal(t, len(bits), len(noise))

		// A fresh element carries 2r+m with r in [1, 2^rho].
		for _, b := range noise {
			require.Greater(t, b, 0.0)
			require.LessOrEqual(t, b, float64(params.NoiseSize())+1.001)
		}
	})

	t.Run(testString("Stats", params), func(t *testing.T) {

		report := dghv.NoiseStats(sk, ea)
		require.LessOrEqual(t, report.Min, report.Median)
		require.LessOrEqual(t, report.Median, report.Max)
		require.LessOrEqual(t, report.Max, float64(params.NoiseSize())+1.001)
	})

	t.Run(testString("Margin", params), func(t *testing.T) {

		require.Greater(t, dghv.NoiseMarginBits(sk, ea), 0.0)

		// Noise grows with each multiplication, shrinking the margin.
		product := ea.CopyNew()
		require.NoError(t, product.And(sk.Encrypt(bits).Expand()))
		require.Less(t, dghv.NoiseMarginBits(sk, product), dghv.NoiseMarginBits(sk, ea))
		require.True(t, product.NoiseOK())
	})

	t.Run(testString("Empty", params), func(t *testing.T) {
		empty := sk.Encrypt(nil).Expand()
		require.Empty(t, dghv.Noise(sk, empty))
		require.Equal(t, dghv.NoiseStatsReport{}, dghv.NoiseStats(sk, empty))
	})
}
