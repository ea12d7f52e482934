package zk

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/vcbridge/vcbridge/commitment"
	"github.com/vcbridge/vcbridge/u32"
)

// ChunkedMiMCCircuit proves that Digest is the MiMC hash of the MiMC hashes
// of Chunks equal runs of Data, and that Expected occurs in Data at byte
// SubrangeOffset. Each Data element is one byte.
type ChunkedMiMCCircuit struct {
	Data     []frontend.Variable
	Digest   frontend.Variable   `gnark:",public"`
	Expected []frontend.Variable `gnark:",public"`

	Chunks         int `gnark:"-"`
	SubrangeOffset int `gnark:"-"`
}

// NewChunkedMiMCCircuit returns a circuit definition for dataLen bytes.
func NewChunkedMiMCCircuit(dataLen, chunks, byteOffset, byteCount int) (*ChunkedMiMCCircuit, error) {
	if chunks <= 0 || dataLen%chunks != 0 {
		return nil, fmt.Errorf("invalid chunking: %d bytes into %d chunks", dataLen, chunks)
	}
	if byteCount <= 0 || byteOffset < 0 || byteOffset+byteCount > dataLen {
		return nil, fmt.Errorf("invalid subrange: bytes [%d,%d) of %d", byteOffset, byteOffset+byteCount, dataLen)
	}
	return &ChunkedMiMCCircuit{
		Data:           make([]frontend.Variable, dataLen),
		Expected:       make([]frontend.Variable, byteCount),
		Chunks:         chunks,
		SubrangeOffset: byteOffset,
	}, nil
}

func (c *ChunkedMiMCCircuit) Define(api frontend.API) error {
	if c.Chunks <= 0 || len(c.Data)%c.Chunks != 0 {
		return fmt.Errorf("invalid chunking: %d bytes into %d chunks", len(c.Data), c.Chunks)
	}
	if c.SubrangeOffset < 0 || c.SubrangeOffset+len(c.Expected) > len(c.Data) {
		return fmt.Errorf("subrange exceeds data: offset=%d len=%d", c.SubrangeOffset, len(c.Expected))
	}
	for _, b := range c.Data {
		api.ToBinary(b, 8)
	}

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	size := len(c.Data) / c.Chunks
	inner := make([]frontend.Variable, 0, c.Chunks)
	for start := 0; start < len(c.Data); start += size {
		h.Reset()
		h.Write(c.Data[start : start+size]...)
		inner = append(inner, h.Sum())
	}
	h.Reset()
	h.Write(inner...)
	api.AssertIsEqual(h.Sum(), c.Digest)

	for i := range c.Expected {
		api.AssertIsEqual(c.Data[c.SubrangeOffset+i], c.Expected[i])
	}
	return nil
}

func NewChunkedMiMCAssignment(
	input u32.Words,
	chunks int,
	digest commitment.Commitment,
	wordOffset int,
	expected u32.Words,
) (*ChunkedMiMCCircuit, error) {
	out, err := newChunkedMiMCStatement(len(input)*u32.WordSize, chunks, digest, wordOffset, expected)
	if err != nil {
		return nil, err
	}
	for i, b := range input.Bytes() {
		out.Data[i] = b
	}
	return out, nil
}

func newChunkedMiMCStatement(
	dataLen int,
	chunks int,
	digest commitment.Commitment,
	wordOffset int,
	expected u32.Words,
) (*ChunkedMiMCCircuit, error) {
	out, err := NewChunkedMiMCCircuit(dataLen, chunks, wordOffset*u32.WordSize, len(expected)*u32.WordSize)
	if err != nil {
		return nil, err
	}
	for i := range out.Data {
		out.Data[i] = 0
	}
	el := digest.FieldElement()
	out.Digest = el.BigInt(new(big.Int))
	for i, b := range expected.Bytes() {
		out.Expected[i] = b
	}
	return out, nil
}
