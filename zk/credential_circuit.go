package zk

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/std/permutation/sha2"

	"github.com/vcbridge/vcbridge/commitment"
	"github.com/vcbridge/vcbridge/u32"
)

const (
	CredentialBlockWords  = commitment.BlockWords
	CredentialDigestWords = u32.DigestWords
)

// CredentialBlockCircuit proves that Digest is the SHA-256 compression of a
// single padded block and that Expected occurs in the block at word
// SubrangeOffset.
//
// Block is private witness material. Digest and Expected are public.
type CredentialBlockCircuit struct {
	Block    [CredentialBlockWords]uints.U32
	Digest   [CredentialDigestWords]uints.U32 `gnark:",public"`
	Expected []uints.U32                      `gnark:",public"`

	SubrangeOffset int `gnark:"-"`
}

// NewCredentialBlockCircuit returns a circuit definition for a subrange of
// wordCount words starting at word wordOffset.
func NewCredentialBlockCircuit(wordOffset, wordCount int) (*CredentialBlockCircuit, error) {
	if err := checkWordSubrange(wordOffset, wordCount, CredentialBlockWords); err != nil {
		return nil, err
	}
	return &CredentialBlockCircuit{
		Expected:       make([]uints.U32, wordCount),
		SubrangeOffset: wordOffset,
	}, nil
}

func (c *CredentialBlockCircuit) Define(api frontend.API) error {
	if err := checkWordSubrange(c.SubrangeOffset, len(c.Expected), CredentialBlockWords); err != nil {
		return err
	}
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return err
	}

	var block [CredentialBlockWords * u32.WordSize]uints.U8
	for i := range c.Block {
		copy(block[i*u32.WordSize:(i+1)*u32.WordSize], uapi.UnpackMSB(c.Block[i]))
	}
	var iv [CredentialDigestWords]uints.U32
	for i := range iv {
		iv[i] = uints.NewU32(commitment.IV[i])
	}
	sum := sha2.Permute(uapi, iv, block)
	for i := range sum {
		uapi.AssertEq(c.Digest[i], sum[i])
	}
	for i := range c.Expected {
		uapi.AssertEq(c.Block[c.SubrangeOffset+i], c.Expected[i])
	}
	return nil
}

func NewCredentialBlockAssignment(
	input u32.Words,
	digest commitment.Commitment,
	wordOffset int,
	expected u32.Words,
) (*CredentialBlockCircuit, error) {
	if len(input) != CredentialBlockWords {
		return nil, fmt.Errorf("invalid credential block size: got=%d expected=%d", len(input), CredentialBlockWords)
	}
	out, err := newCredentialBlockStatement(digest, wordOffset, expected)
	if err != nil {
		return nil, err
	}
	for i := range out.Block {
		out.Block[i] = uints.NewU32(input[i])
	}
	return out, nil
}

// newCredentialBlockStatement assigns the public part only; Block is zero.
func newCredentialBlockStatement(digest commitment.Commitment, wordOffset int, expected u32.Words) (*CredentialBlockCircuit, error) {
	out, err := NewCredentialBlockCircuit(wordOffset, len(expected))
	if err != nil {
		return nil, err
	}
	for i := range out.Block {
		out.Block[i] = uints.NewU32(0)
	}
	for i, w := range digest.Words() {
		out.Digest[i] = uints.NewU32(w)
	}
	for i, w := range expected {
		out.Expected[i] = uints.NewU32(w)
	}
	return out, nil
}

func checkWordSubrange(offset, count, total int) error {
	if count <= 0 || offset < 0 || offset+count > total {
		return fmt.Errorf("invalid subrange: words [%d,%d) of %d", offset, offset+count, total)
	}
	return nil
}
