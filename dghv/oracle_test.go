package dghv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/she/dghv"
)

func TestOracleStream(t *testing.T) {

	t.Run("Determinism", func(t *testing.T) {

		a := dghv.NewOracleStream(256, 0xf00)
		b := dghv.NewOracleStream(256, 0xf00)

		for i := 0; i < 8; i++ {
			require.Equal(t, 0, a.Next().Cmp(b.Next()))
		}
	})

	t.Run("SeedSeparation", func(t *testing.T) {

		a := dghv.NewOracleStream(256, 0xf01)
		b := dghv.NewOracleStream(256, 0xf02)
		require.NotEqual(t, 0, a.Next().Cmp(b.Next()))
	})

	t.Run("SizeSeparation", func(t *testing.T) {

		a := dghv.NewOracleStream(256, 0xf03)
		b := dghv.NewOracleStream(512, 0xf03)
		require.NotEqual(t, 0, a.Next().Cmp(b.Next()))
	})

	t.Run("Bounds", func(t *testing.T) {

		os := dghv.NewOracleStream(64, 0xf04)
		for i := 0; i < 64; i++ {
			require.LessOrEqual(t, os.Next().BitLen(), 64)
		}
	})

	t.Run("Reset", func(t *testing.T) {

		os := dghv.NewOracleStream(256, 0xf05)

		first := os.Next()
		os.Next()
		os.Next()

		os.Reset()
		require.Equal(t, 0, first.Cmp(os.Next()))
	})

	t.Run("CacheSharing", func(t *testing.T) {

		a := dghv.NewOracleStream(256, 0xf06)
		v := a.Next()

		// A second observer sees the cached prefix, not a private draw.
		b := dghv.NewOracleStream(256, 0xf06)
		require.Equal(t, 0, v.Cmp(b.Next()))

		// Cached values are handed out as copies.
		v.SetInt64(0)
		b.Reset()
		require.NotEqual(t, 0, v.Cmp(b.Next()))
	})

	t.Run("CacheReset", func(t *testing.T) {

		a := dghv.NewOracleStream(256, 0xf07)
		first := a.Next()

		dghv.ResetOracleCache()

		// The positioned stream's generator was not rewound, so its
		// replay of position 0 is a newly drawn integer.
		a.Reset()
		replayed := a.Next()
		require.NotEqual(t, 0, first.Cmp(replayed))

		// Observers of the rebuilt cache agree with each other and with
		// the value that replaced the cleared position 0.
		b := dghv.NewOracleStream(256, 0xf07)
		c := dghv.NewOracleStream(256, 0xf07)
		v := b.Next()
		require.Equal(t, 0, v.Cmp(c.Next()))
		require.Equal(t, 0, v.Cmp(replayed))

		dghv.ResetOracleCache()
	})
}
