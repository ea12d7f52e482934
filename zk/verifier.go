package zk

import (
	"bytes"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/consensys/gnark-crypto/ecc"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	groth16bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"

	"github.com/vcbridge/vcbridge/commitment"
	"github.com/vcbridge/vcbridge/consts"
	"github.com/vcbridge/vcbridge/errs"
	"github.com/vcbridge/vcbridge/u32"
)

type Config struct {
	Groth16VerifyingKeyPath string
	RequiredCircuitID       string
}

// Statement is the public claim a proof is checked against: the record
// commitment and the words expected at the circuit's subrange.
type Statement struct {
	Digest   commitment.Commitment
	Expected u32.Words
}

type Verifier struct {
	groth16VK         *groth16bn254.VerifyingKey
	requiredCircuitID string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	p := strings.TrimSpace(cfg.Groth16VerifyingKeyPath)
	if p == "" {
		return nil, errs.ErrProofVerifierUnavailable
	}
	vk, err := loadGroth16VK(p)
	if err != nil {
		return nil, fmt.Errorf("load groth16 vk: %w", err)
	}
	return NewVerifierWithKey(vk, cfg.RequiredCircuitID)
}

func NewVerifierWithKey(vk *groth16bn254.VerifyingKey, requiredCircuitID string) (*Verifier, error) {
	if vk == nil {
		return nil, errs.ErrProofVerifierUnavailable
	}
	v := &Verifier{
		groth16VK:         vk,
		requiredCircuitID: strings.TrimSpace(requiredCircuitID),
	}
	if v.requiredCircuitID != "" && !isSupportedCircuitID(v.requiredCircuitID) {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedProofCircuit, v.requiredCircuitID)
	}
	return v, nil
}

// VerifyEnvelope parses blob and verifies the proof it carries.
func (v *Verifier) VerifyEnvelope(blob []byte, st Statement) error {
	env, err := ParseEnvelope(blob)
	if err != nil {
		return err
	}
	return v.Verify(env.ProofType, env.CircuitID, env.Proof, env.PublicWitness, st)
}

func (v *Verifier) Verify(
	proofType uint8,
	circuitID string,
	proof []byte,
	publicWitness []byte,
	st Statement,
) error {
	circuitID = strings.TrimSpace(circuitID)
	if v.requiredCircuitID != "" && circuitID != v.requiredCircuitID {
		return errs.ErrProofCircuitMismatch
	}
	if !isSupportedCircuitID(circuitID) {
		return errs.ErrUnsupportedProofCircuit
	}
	if proofType != consts.ProofTypeGroth16 {
		return errs.ErrProofTypeMismatch
	}
	if err := verifyGroth16(v.groth16VK, circuitID, proof, publicWitness, st); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProofVerificationFailed, err)
	}
	return nil
}

func loadGroth16VK(path string) (*groth16bn254.VerifyingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vk := new(groth16bn254.VerifyingKey)
	if _, err := vk.ReadFrom(f); err != nil {
		return nil, err
	}
	return vk, nil
}

func verifyGroth16(
	vk *groth16bn254.VerifyingKey,
	circuitID string,
	proofBytes []byte,
	publicWitnessBytes []byte,
	st Statement,
) error {
	proof := new(groth16bn254.Proof)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return err
	}
	publicWitness, err := buildPublicWitnessVector(circuitID, st, publicWitnessBytes)
	if err != nil {
		return err
	}
	return groth16bn254.Verify(proof, vk, publicWitness)
}

// buildPublicWitnessVector decodes the supplied public witness and checks it
// against the witness the statement implies.
func buildPublicWitnessVector(
	circuitID string,
	st Statement,
	publicWitnessBytes []byte,
) (bn254fr.Vector, error) {
	if len(publicWitnessBytes) == 0 {
		return nil, errs.ErrInvalidProofEnvelope
	}

	w, err := witness.New(ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	if err := w.UnmarshalBinary(publicWitnessBytes); err != nil {
		return nil, err
	}
	vec, err := witnessVector(w)
	if err != nil {
		return nil, err
	}

	statement, err := statementAssignment(circuitID, st)
	if err != nil {
		return nil, err
	}
	full, err := frontend.NewWitness(statement, ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	public, err := full.Public()
	if err != nil {
		return nil, err
	}
	expected, err := witnessVector(public)
	if err != nil {
		return nil, err
	}

	if len(vec) != len(expected) {
		return nil, errs.ErrProofPublicInputsMismatch
	}
	for i := range vec {
		if !vec[i].Equal(&expected[i]) {
			return nil, errs.ErrProofPublicInputsMismatch
		}
	}
	return vec, nil
}

func statementAssignment(circuitID string, st Statement) (frontend.Circuit, error) {
	if len(st.Expected) == 0 {
		return nil, errs.ErrProofPublicInputsMismatch
	}
	switch circuitID {
	case consts.ProofCircuitCredentialSHA256V1:
		return newCredentialBlockStatement(st.Digest, 0, st.Expected)
	case consts.ProofCircuitCredentialMiMCV1:
		out := &ChunkedMiMCCircuit{
			Expected: make([]frontend.Variable, 0, len(st.Expected)*u32.WordSize),
		}
		el := st.Digest.FieldElement()
		out.Digest = el.BigInt(new(big.Int))
		for _, b := range st.Expected.Bytes() {
			out.Expected = append(out.Expected, b)
		}
		return out, nil
	default:
		return nil, errs.ErrUnsupportedProofCircuit
	}
}

func witnessVector(w witness.Witness) (bn254fr.Vector, error) {
	vec, ok := w.Vector().(bn254fr.Vector)
	if !ok {
		return nil, fmt.Errorf("unexpected witness vector type %T", w.Vector())
	}
	if len(vec) == 0 {
		return nil, errs.ErrInvalidProofEnvelope
	}
	return vec, nil
}

func isSupportedCircuitID(circuitID string) bool {
	switch circuitID {
	case consts.ProofCircuitCredentialSHA256V1:
		return true
	case consts.ProofCircuitCredentialMiMCV1:
		return true
	default:
		return false
	}
}
