package commitment

import (
	"crypto/sha256"

	"github.com/vcbridge/vcbridge/padding"
)

// NativeHasher is the reference implementation a circuit digest is compared
// against.
type NativeHasher interface {
	Sum(data []byte) ([]byte, error)
}

type SHA256Hasher struct{}

func (SHA256Hasher) Sum(data []byte) ([]byte, error) {
	sum := sha256.Sum256(data)
	return sum[:], nil
}

// ChunkedMiMCHasher splits data into Chunks equal parts, hashes each part
// with MiMC (one field element per byte) and hashes the chunk digests.
type ChunkedMiMCHasher struct {
	Chunks int
}

func (h ChunkedMiMCHasher) Sum(data []byte) ([]byte, error) {
	parts, err := padding.ChunkSplit{Count: h.Chunks}.Split(data)
	if err != nil {
		return nil, err
	}
	digests := make([][]byte, len(parts))
	for i, p := range parts {
		elems := make([]uint64, len(p))
		for j, b := range p {
			elems[j] = uint64(b)
		}
		d, err := mimcElements(elems)
		if err != nil {
			return nil, err
		}
		digests[i] = d
	}
	return mimcDigests(digests)
}
