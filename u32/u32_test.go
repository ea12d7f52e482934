package u32

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vcbridge/vcbridge/errs"
)

func TestFromBytesRoundTrip(t *testing.T) {
	buf := []byte("Lukas       Financial Technologies")
	buf = append(buf, ' ', ' ')
	require.Zero(t, len(buf)%WordSize)

	words, err := FromBytes(buf)
	require.NoError(t, err)
	require.Len(t, words, len(buf)/WordSize)
	require.Equal(t, uint32(0x4c756b61), words[0]) // "Luka"
	require.Equal(t, buf, words.Bytes())
}

func TestFromBytesRejectsUnaligned(t *testing.T) {
	_, err := FromBytes([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidAlignment)
}

func TestFromStringPadsWithSpaces(t *testing.T) {
	words, err := FromString("VU", 4)
	require.NoError(t, err)
	require.Equal(t, Words{0x56552020}, words)

	_, err = FromString("VU", 6)
	require.ErrorIs(t, err, errs.ErrInvalidAlignment)

	_, err = FromString("Universiteit", 8)
	require.ErrorIs(t, err, errs.ErrFieldTooLong)
}

func TestFromHexDigest(t *testing.T) {
	sum := sha256.Sum256([]byte("abc"))
	words, err := FromHexDigest("0x" + hex.EncodeToString(sum[:]))
	require.NoError(t, err)
	require.Len(t, words, DigestWords)
	require.Equal(t, uint32(0xba7816bf), words[0])
	require.Equal(t, sum[:], words.Bytes())

	_, err = FromHexDigest("abcd")
	require.ErrorIs(t, err, errs.ErrInvalidDigest)
	_, err = FromHexDigest("zz")
	require.ErrorIs(t, err, errs.ErrInvalidDigest)
}

func TestHexInterchange(t *testing.T) {
	words := Words{0, 0x80, 0xdeadbeef}
	rendered := words.Hex()
	require.Equal(t, []string{"0x00000000", "0x00000080", "0xdeadbeef"}, rendered)

	parsed, err := ParseHex(rendered)
	require.NoError(t, err)
	require.True(t, words.Equal(parsed))

	_, err = ParseHex([]string{"0x1ffffffff"})
	require.Error(t, err)
}

func TestSlice(t *testing.T) {
	words := Words{1, 2, 3, 4, 5}
	sub, err := words.Slice(1, 3)
	require.NoError(t, err)
	require.Equal(t, Words{2, 3, 4}, sub)

	sub[0] = 99
	require.Equal(t, uint32(2), words[1])

	_, err = words.Slice(3, 3)
	require.Error(t, err)
}
