// Package padding prepares serialized records for a hash circuit's fixed
// input shape.
package padding

import (
	"encoding/binary"
	"fmt"

	"github.com/vcbridge/vcbridge/errs"
)

const (
	// SHA256BlockSize is the SHA-256 block size in bytes.
	SHA256BlockSize = 64

	lengthSuffixLen = 8
	terminator      = 0x80
)

// LengthPadding applies SHA-256 style length padding into exactly one block:
// msg | 0x80 | zeros | 64-bit big-endian bit length.
type LengthPadding struct {
	BlockSize int
}

func NewLengthPadding(blockSize int) (LengthPadding, error) {
	if blockSize <= lengthSuffixLen || blockSize%4 != 0 {
		return LengthPadding{}, fmt.Errorf("invalid block size: %d", blockSize)
	}
	return LengthPadding{BlockSize: blockSize}, nil
}

// MaxMessageLen is the longest message that still fits a single block.
func (p LengthPadding) MaxMessageLen() int {
	return p.BlockSize - lengthSuffixLen - 1
}

func (p LengthPadding) Pad(msg []byte) ([]byte, error) {
	if p.BlockSize <= lengthSuffixLen {
		return nil, fmt.Errorf("invalid block size: %d", p.BlockSize)
	}
	if len(msg) > p.MaxMessageLen() {
		return nil, fmt.Errorf(
			"%w: message of %d bytes does not fit a %d-byte block (max %d)",
			errs.ErrPaddingOverflow, len(msg), p.BlockSize, p.MaxMessageLen(),
		)
	}
	out := make([]byte, p.BlockSize)
	copy(out, msg)
	out[len(msg)] = terminator
	binary.BigEndian.PutUint64(out[p.BlockSize-lengthSuffixLen:], uint64(len(msg))*8)
	return out, nil
}

// ChunkSplit cuts its input into Count equal contiguous chunks.
type ChunkSplit struct {
	Count int
}

func (c ChunkSplit) Split(in []byte) ([][]byte, error) {
	if c.Count <= 0 {
		return nil, fmt.Errorf("%w: chunk count %d", errs.ErrChunkSizeMismatch, c.Count)
	}
	if len(in)%c.Count != 0 {
		return nil, fmt.Errorf("%w: %d bytes cannot be split into %d chunks", errs.ErrChunkSizeMismatch, len(in), c.Count)
	}
	size := len(in) / c.Count
	out := make([][]byte, c.Count)
	for i := range out {
		out[i] = append([]byte(nil), in[i*size:(i+1)*size]...)
	}
	return out, nil
}
