package padding

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vcbridge/vcbridge/errs"
)

func TestLengthPaddingLayout(t *testing.T) {
	p, err := NewLengthPadding(SHA256BlockSize)
	require.NoError(t, err)

	for n := 0; n <= 55; n++ {
		msg := bytes.Repeat([]byte{'a'}, n)
		out, err := p.Pad(msg)
		require.NoError(t, err, "len=%d", n)
		require.Len(t, out, SHA256BlockSize)
		require.Equal(t, msg, out[:n])
		require.Equal(t, byte(0x80), out[n])
		for _, b := range out[n+1 : 56] {
			require.Zero(t, b)
		}
		require.Zero(t, binary.BigEndian.Uint32(out[56:60]))
		require.Equal(t, uint32(n*8), binary.BigEndian.Uint32(out[60:64]))
	}
}

func TestLengthPaddingScenarioLength(t *testing.T) {
	p := LengthPadding{BlockSize: SHA256BlockSize}
	out, err := p.Pad(make([]byte, 52))
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0x01, 0xa0}, out[56:])
}

func TestLengthPaddingOverflow(t *testing.T) {
	p := LengthPadding{BlockSize: SHA256BlockSize}
	require.Equal(t, 55, p.MaxMessageLen())

	out, err := p.Pad(make([]byte, 56))
	require.Nil(t, out)
	require.ErrorIs(t, err, errs.ErrPaddingOverflow)
}

func TestNewLengthPaddingRejectsBadBlockSize(t *testing.T) {
	_, err := NewLengthPadding(8)
	require.Error(t, err)
	_, err = NewLengthPadding(30)
	require.Error(t, err)
}

func TestChunkSplit(t *testing.T) {
	in := []byte("abcdefghijkl")
	chunks, err := ChunkSplit{Count: 4}.Split(in)
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	for _, c := range chunks {
		require.Len(t, c, 3)
	}
	require.Equal(t, in, bytes.Join(chunks, nil))

	chunks[0][0] = 'z'
	require.Equal(t, byte('a'), in[0])
}

func TestChunkSplitMismatch(t *testing.T) {
	_, err := ChunkSplit{Count: 5}.Split(make([]byte, 52))
	require.ErrorIs(t, err, errs.ErrChunkSizeMismatch)

	_, err = ChunkSplit{Count: 0}.Split(make([]byte, 4))
	require.ErrorIs(t, err, errs.ErrChunkSizeMismatch)
}
