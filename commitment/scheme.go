package commitment

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/vcbridge/vcbridge/consts"
	"github.com/vcbridge/vcbridge/errs"
	"github.com/vcbridge/vcbridge/layout"
	"github.com/vcbridge/vcbridge/padding"
	"github.com/vcbridge/vcbridge/u32"
)

// Scheme ties together how serialized bytes become circuit input words, how
// the circuit digest is computed from them and how the same digest is
// computed natively.
type Scheme interface {
	Name() string
	Encode(serialized []byte) (u32.Words, error)
	NativeDigest(serialized []byte) (Commitment, error)
	CircuitDigest(input u32.Words) (Commitment, error)
}

// ContentAddresser is implemented by schemes whose commitments are standard
// multihash digests.
type ContentAddresser interface {
	ContentID(c Commitment) (cid.Cid, error)
}

// SHA256Block commits to a record that fits one SHA-256 block.
type SHA256Block struct {
	Padding   padding.LengthPadding
	Hasher    NativeHasher
	Evaluator CircuitEvaluator
}

func NewSHA256Block() *SHA256Block {
	return &SHA256Block{
		Padding:   padding.LengthPadding{BlockSize: padding.SHA256BlockSize},
		Hasher:    SHA256Hasher{},
		Evaluator: BlockCompression{},
	}
}

func (*SHA256Block) Name() string { return consts.SchemeSHA256Block }

// Encode pads serialized into one block and returns its 16 words.
func (s *SHA256Block) Encode(serialized []byte) (u32.Words, error) {
	block, err := s.Padding.Pad(serialized)
	if err != nil {
		return nil, err
	}
	return u32.FromBytes(block)
}

func (s *SHA256Block) NativeDigest(serialized []byte) (Commitment, error) {
	return nativeDigest(s.Hasher, serialized)
}

func (s *SHA256Block) CircuitDigest(input u32.Words) (Commitment, error) {
	return circuitDigest(s.Evaluator, input)
}

// ContentID wraps c as a CIDv1 with the raw codec and a sha2-256 multihash.
func (*SHA256Block) ContentID(c Commitment) (cid.Cid, error) {
	mh, err := multihash.Encode(c.Bytes(), multihash.SHA2_256)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

// ChunkedMiMC commits to a record with a hash of chunk hashes.
type ChunkedMiMC struct {
	Split     padding.ChunkSplit
	Hasher    NativeHasher
	Evaluator CircuitEvaluator
}

func NewChunkedMiMC(chunks int) (*ChunkedMiMC, error) {
	if chunks <= 0 {
		return nil, fmt.Errorf("%w: chunk count %d", errs.ErrInvalidScheme, chunks)
	}
	return &ChunkedMiMC{
		Split:     padding.ChunkSplit{Count: chunks},
		Hasher:    ChunkedMiMCHasher{Chunks: chunks},
		Evaluator: ChunkedMiMCEvaluator{Chunks: chunks},
	}, nil
}

func (*ChunkedMiMC) Name() string { return consts.SchemeChunkedMiMC }

// Encode checks that serialized splits evenly and returns its words.
func (s *ChunkedMiMC) Encode(serialized []byte) (u32.Words, error) {
	if _, err := s.Split.Split(serialized); err != nil {
		return nil, err
	}
	return u32.FromBytes(serialized)
}

func (s *ChunkedMiMC) NativeDigest(serialized []byte) (Commitment, error) {
	return nativeDigest(s.Hasher, serialized)
}

func (s *ChunkedMiMC) CircuitDigest(input u32.Words) (Commitment, error) {
	return circuitDigest(s.Evaluator, input)
}

// NewScheme returns the scheme registered under name.
func NewScheme(name string, chunks int) (Scheme, error) {
	switch name {
	case consts.SchemeSHA256Block:
		return NewSHA256Block(), nil
	case consts.SchemeChunkedMiMC:
		return NewChunkedMiMC(chunks)
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidScheme, name)
	}
}

// ComputeDigest serializes r under l and returns the circuit digest of the
// encoded bytes.
func ComputeDigest(r layout.Record, l *layout.FieldLayout, s Scheme) (Commitment, error) {
	serialized, err := l.Serialize(r)
	if err != nil {
		return Commitment{}, err
	}
	input, err := s.Encode(serialized)
	if err != nil {
		return Commitment{}, err
	}
	return s.CircuitDigest(input)
}

func nativeDigest(h NativeHasher, serialized []byte) (Commitment, error) {
	if h == nil {
		return Commitment{}, fmt.Errorf("%w: no native hasher", errs.ErrInvalidScheme)
	}
	sum, err := h.Sum(serialized)
	if err != nil {
		return Commitment{}, err
	}
	return FromDigest(sum)
}

func circuitDigest(e CircuitEvaluator, input u32.Words) (Commitment, error) {
	if e == nil {
		return Commitment{}, fmt.Errorf("%w: no circuit evaluator", errs.ErrInvalidScheme)
	}
	out, err := e.Evaluate(input)
	if err != nil {
		return Commitment{}, err
	}
	return FromWords(out)
}
