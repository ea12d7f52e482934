package zk

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/vcbridge/vcbridge/errs"
)

const (
	proofEnvelopeMagic     = "VCB1"
	proofEnvelopeHeaderLen = 14 // magic(4) + proof_type(1) + circuit_len(1) + proof_len(4) + witness_len(4)
	maxProofCircuitIDLen   = 63

	// MaxProofEnvelopeSize bounds a serialized envelope.
	MaxProofEnvelopeSize = 256 * 1024
)

// Envelope carries a proof together with the public witness it was produced
// for and the circuit it belongs to.
type Envelope struct {
	ProofType     uint8
	CircuitID     string
	Proof         []byte
	PublicWitness []byte
}

// BuildEnvelope creates a VCB1 proof payload:
// magic(4) | proof_type(1) | circuit_len(1) | proof_len(4) | witness_len(4) | circuit_id | proof | public_witness
func BuildEnvelope(
	proofType uint8,
	circuitID string,
	proof []byte,
	publicWitness []byte,
) ([]byte, error) {
	circuitID = strings.TrimSpace(circuitID)
	if proofType == 0 || len(proof) == 0 || len(publicWitness) == 0 {
		return nil, errs.ErrInvalidProofEnvelope
	}
	if !isValidProofCircuitID(circuitID) {
		return nil, errs.ErrInvalidProofEnvelope
	}
	totalLen := proofEnvelopeHeaderLen + len(circuitID) + len(proof) + len(publicWitness)
	if totalLen > MaxProofEnvelopeSize {
		return nil, errs.ErrInvalidProofEnvelope
	}

	out := make([]byte, 0, totalLen)
	out = append(out, []byte(proofEnvelopeMagic)...)
	out = append(out, proofType)
	out = append(out, byte(len(circuitID)))
	out = binary.BigEndian.AppendUint32(out, uint32(len(proof)))
	out = binary.BigEndian.AppendUint32(out, uint32(len(publicWitness)))
	out = append(out, []byte(circuitID)...)
	out = append(out, proof...)
	out = append(out, publicWitness...)
	return out, nil
}

func (e Envelope) Bytes() ([]byte, error) {
	return BuildEnvelope(e.ProofType, e.CircuitID, e.Proof, e.PublicWitness)
}

func ParseEnvelope(blob []byte) (Envelope, error) {
	if len(blob) < proofEnvelopeHeaderLen || len(blob) > MaxProofEnvelopeSize {
		return Envelope{}, errs.ErrInvalidProofEnvelope
	}
	if !bytes.Equal(blob[:len(proofEnvelopeMagic)], []byte(proofEnvelopeMagic)) {
		return Envelope{}, errs.ErrInvalidProofEnvelope
	}
	proofType := blob[4]
	circuitLen := int(blob[5])
	proofLen := int(binary.BigEndian.Uint32(blob[6:10]))
	witnessLen := int(binary.BigEndian.Uint32(blob[10:14]))
	if proofType == 0 || circuitLen <= 0 || circuitLen > maxProofCircuitIDLen || proofLen <= 0 || witnessLen <= 0 {
		return Envelope{}, errs.ErrInvalidProofEnvelope
	}

	totalLen := proofEnvelopeHeaderLen + circuitLen + proofLen + witnessLen
	if len(blob) != totalLen {
		return Envelope{}, errs.ErrInvalidProofEnvelope
	}

	circuitStart := proofEnvelopeHeaderLen
	circuitEnd := circuitStart + circuitLen
	circuitID := string(blob[circuitStart:circuitEnd])
	if !isValidProofCircuitID(circuitID) {
		return Envelope{}, errs.ErrInvalidProofEnvelope
	}
	proofEnd := circuitEnd + proofLen
	witnessEnd := proofEnd + witnessLen

	return Envelope{
		ProofType:     proofType,
		CircuitID:     circuitID,
		Proof:         append([]byte(nil), blob[circuitEnd:proofEnd]...),
		PublicWitness: append([]byte(nil), blob[proofEnd:witnessEnd]...),
	}, nil
}

func isValidProofCircuitID(circuitID string) bool {
	if len(circuitID) == 0 || len(circuitID) > maxProofCircuitIDLen {
		return false
	}
	for _, r := range circuitID {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			continue
		}
		return false
	}
	return true
}
