package buffer

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferRoundTrip(t *testing.T) {

	t.Run("Uint8", func(t *testing.T) {
		b := NewBufferSize(1)
		_, err := WriteUint8(b, 0xfe)
		require.NoError(t, err)

		var c uint8
		_, err = ReadUint8(NewBuffer(b.Bytes()), &c)
		require.NoError(t, err)
		require.Equal(t, uint8(0xfe), c)
	})

	t.Run("Uint32", func(t *testing.T) {
		b := NewBufferSize(4)
		_, err := WriteUint32(b, 0xdeadbeef)
		require.NoError(t, err)

		var c uint32
		_, err = ReadUint32(NewBuffer(b.Bytes()), &c)
		require.NoError(t, err)
		require.Equal(t, uint32(0xdeadbeef), c)
	})

	t.Run("Uint64", func(t *testing.T) {
		b := NewBufferSize(8)
		_, err := WriteUint64(b, 0x0123456789abcdef)
		require.NoError(t, err)

		var c uint64
		_, err = ReadUint64(NewBuffer(b.Bytes()), &c)
		require.NoError(t, err)
		require.Equal(t, uint64(0x0123456789abcdef), c)
	})

	t.Run("Uint8Slice", func(t *testing.T) {
		s := []uint8{1, 0, 1, 1, 0}
		b := NewBufferSize(16)
		_, err := WriteUint8Slice(b, s)
		require.NoError(t, err)

		var c []uint8
		_, err = ReadUint8Slice(NewBuffer(b.Bytes()), &c)
		require.NoError(t, err)
		require.Equal(t, s, c)
	})

	t.Run("Bufio", func(t *testing.T) {
		var raw bytes.Buffer
		w := bufio.NewWriter(&raw)
		_, err := WriteUint64(w, 42)
		require.NoError(t, err)
		require.NoError(t, w.Flush())

		var c uint64
		_, err = ReadUint64(bufio.NewReader(&raw), &c)
		require.NoError(t, err)
		require.Equal(t, uint64(42), c)
	})
}
