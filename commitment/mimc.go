package commitment

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// mimcElements hashes small integers, each written as one canonical field
// element.
func mimcElements(elems []uint64) ([]byte, error) {
	h := mimc.NewMiMC()
	for _, v := range elems {
		var el fr.Element
		el.SetUint64(v)
		b := el.Bytes()
		if _, err := h.Write(b[:]); err != nil {
			return nil, fmt.Errorf("mimc write: %w", err)
		}
	}
	return h.Sum(nil), nil
}

// mimcDigests hashes previously computed MiMC digests.
func mimcDigests(digests [][]byte) ([]byte, error) {
	h := mimc.NewMiMC()
	for i, d := range digests {
		if len(d) != fr.Bytes {
			return nil, fmt.Errorf("invalid chunk digest %d size: %d", i, len(d))
		}
		if _, err := h.Write(d); err != nil {
			return nil, fmt.Errorf("mimc write: %w", err)
		}
	}
	return h.Sum(nil), nil
}
