// Package u32 converts between byte strings and the big-endian 32-bit word
// arrays that circuit inputs and outputs are expressed in.
package u32

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/vcbridge/vcbridge/errs"
)

const (
	WordSize = 4
	// DigestWords is the number of words in a 256-bit digest.
	DigestWords = 8

	padByte = 0x20
)

// Words is a sequence of 32-bit words. Word i holds bytes [4i, 4i+4) of the
// underlying byte string, most significant byte first.
type Words []uint32

// FromBytes groups buf into big-endian words. len(buf) must be a multiple of
// four.
func FromBytes(buf []byte) (Words, error) {
	if len(buf)%WordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", errs.ErrInvalidAlignment, len(buf), WordSize)
	}
	out := make(Words, len(buf)/WordSize)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(buf[i*WordSize:])
	}
	return out, nil
}

// FromString right-pads s with spaces to length bytes and converts the result.
func FromString(s string, length int) (Words, error) {
	if length < 0 || length%WordSize != 0 {
		return nil, fmt.Errorf("%w: target length %d is not a multiple of %d", errs.ErrInvalidAlignment, length, WordSize)
	}
	if len(s) > length {
		return nil, &errs.FieldTooLongError{Field: "value", MaxWidth: length, Length: len(s)}
	}
	buf := make([]byte, length)
	copy(buf, s)
	for i := len(s); i < length; i++ {
		buf[i] = padByte
	}
	return FromBytes(buf)
}

// FromHexDigest converts a 32-byte hex digest (optionally 0x-prefixed) into
// eight words.
func FromHexDigest(digest string) (Words, error) {
	raw, err := hex.DecodeString(trimHexPrefix(strings.TrimSpace(digest)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidDigest, err)
	}
	if len(raw) != DigestWords*WordSize {
		return nil, fmt.Errorf("%w: got=%d bytes expected=%d", errs.ErrInvalidDigest, len(raw), DigestWords*WordSize)
	}
	return FromBytes(raw)
}

// ParseHex is the inverse of Words.Hex.
func ParseHex(words []string) (Words, error) {
	out := make(Words, len(words))
	for i, w := range words {
		v, err := strconv.ParseUint(trimHexPrefix(strings.TrimSpace(w)), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("parse word %d %q: %w", i, w, err)
		}
		out[i] = uint32(v)
	}
	return out, nil
}

// Bytes is the inverse of FromBytes.
func (w Words) Bytes() []byte {
	out := make([]byte, 0, len(w)*WordSize)
	for _, v := range w {
		out = binary.BigEndian.AppendUint32(out, v)
	}
	return out
}

// Hex renders each word as 0x followed by eight lowercase hex digits.
func (w Words) Hex() []string {
	out := make([]string, len(w))
	for i, v := range w {
		out[i] = fmt.Sprintf("0x%08x", v)
	}
	return out
}

func (w Words) Equal(other Words) bool {
	return len(w) == len(other) && bytes.Equal(w.Bytes(), other.Bytes())
}

// Slice returns a copy of count words starting at offset.
func (w Words) Slice(offset, count int) (Words, error) {
	if offset < 0 || count < 0 || offset+count > len(w) {
		return nil, fmt.Errorf("word range [%d,%d) out of bounds for %d words", offset, offset+count, len(w))
	}
	return append(Words(nil), w[offset:offset+count]...), nil
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
