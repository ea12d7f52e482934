// Package commitment computes 256-bit commitments over serialized records and
// compares digests produced natively with digests produced by a circuit model.
package commitment

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vcbridge/vcbridge/errs"
	"github.com/vcbridge/vcbridge/u32"
)

const Size = 32

// Commitment is a 256-bit digest. Byte form and word form are two views of
// the same value.
type Commitment struct {
	digest [Size]byte
}

func FromDigest(digest []byte) (Commitment, error) {
	var c Commitment
	if len(digest) != Size {
		return c, fmt.Errorf("%w: got=%d bytes expected=%d", errs.ErrInvalidDigest, len(digest), Size)
	}
	copy(c.digest[:], digest)
	return c, nil
}

func FromWords(words u32.Words) (Commitment, error) {
	if len(words) != u32.DigestWords {
		return Commitment{}, fmt.Errorf("%w: got=%d words expected=%d", errs.ErrInvalidDigest, len(words), u32.DigestWords)
	}
	return FromDigest(words.Bytes())
}

func FromHex(digest string) (Commitment, error) {
	words, err := u32.FromHexDigest(digest)
	if err != nil {
		return Commitment{}, err
	}
	return FromWords(words)
}

func (c Commitment) Bytes() []byte {
	return append([]byte(nil), c.digest[:]...)
}

func (c Commitment) Words() u32.Words {
	w, _ := u32.FromBytes(c.digest[:])
	return w
}

func (c Commitment) Hex() string {
	return hex.EncodeToString(c.digest[:])
}

func (c Commitment) String() string {
	return c.Hex()
}

// Equivalent reports whether c and other denote the same 256-bit integer.
func (c Commitment) Equivalent(other Commitment) bool {
	return bytes.Equal(c.digest[:], other.digest[:])
}

// ID renders the commitment as an avalanchego identifier.
func (c Commitment) ID() ids.ID {
	return ids.ID(c.digest)
}

// FieldElement reduces the commitment into the BN254 scalar field.
func (c Commitment) FieldElement() fr.Element {
	var el fr.Element
	el.SetBytes(c.digest[:])
	return el
}
