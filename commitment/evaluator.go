package commitment

import (
	"fmt"
	"math/bits"

	"github.com/vcbridge/vcbridge/errs"
	"github.com/vcbridge/vcbridge/u32"
)

// CircuitEvaluator computes a circuit's output words from its input words.
type CircuitEvaluator interface {
	Evaluate(input u32.Words) (u32.Words, error)
}

// BlockWords is the number of words in one 512-bit SHA-256 block.
const BlockWords = 16

// IV is the SHA-256 initial hash value.
var IV = [u32.DigestWords]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var roundConstants = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// BlockCompression models a circuit that runs one SHA-256 compression over a
// 16-word block starting from IV. For a correctly length-padded single block
// the output equals SHA-256 of the unpadded message.
type BlockCompression struct{}

func (BlockCompression) Evaluate(input u32.Words) (u32.Words, error) {
	if len(input) != BlockWords {
		return nil, fmt.Errorf("%w: compression input has %d words, expected %d", errs.ErrInvalidAlignment, len(input), BlockWords)
	}
	state := IV
	compress(&state, input)
	return append(u32.Words(nil), state[:]...), nil
}

func compress(state *[u32.DigestWords]uint32, block u32.Words) {
	var w [64]uint32
	copy(w[:], block)
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]
	for i := 0; i < 64; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + roundConstants[i] + w[i]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		h, g, f, e = g, f, e, d+t1
		d, c, b, a = c, b, a, t1+t2
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
	state[4] += e
	state[5] += f
	state[6] += g
	state[7] += h
}

// ChunkedMiMCEvaluator models the hierarchical MiMC circuit. Every input byte
// is one field element; the elements are split into Chunks equal runs.
type ChunkedMiMCEvaluator struct {
	Chunks int
}

func (e ChunkedMiMCEvaluator) Evaluate(input u32.Words) (u32.Words, error) {
	elems := make([]uint64, 0, len(input)*u32.WordSize)
	for _, w := range input {
		for shift := 24; shift >= 0; shift -= 8 {
			elems = append(elems, uint64((w>>uint(shift))&0xff))
		}
	}
	if e.Chunks <= 0 || len(elems)%e.Chunks != 0 {
		return nil, fmt.Errorf("%w: %d elements cannot be split into %d chunks", errs.ErrChunkSizeMismatch, len(elems), e.Chunks)
	}
	size := len(elems) / e.Chunks
	digests := make([][]byte, 0, e.Chunks)
	for start := 0; start < len(elems); start += size {
		d, err := mimcElements(elems[start : start+size])
		if err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}
	root, err := mimcDigests(digests)
	if err != nil {
		return nil, err
	}
	return u32.FromBytes(root)
}
