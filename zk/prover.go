package zk

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/consensys/gnark/backend/groth16"
	groth16bn254 "github.com/consensys/gnark/backend/groth16/bn254"

	"github.com/vcbridge/vcbridge/commitment"
	"github.com/vcbridge/vcbridge/consts"
	"github.com/vcbridge/vcbridge/u32"
)

// Timings records how long each proving stage took.
type Timings struct {
	WitnessBuildMs      int64 `json:"witness_build_ms"`
	ProofGenerationMs   int64 `json:"proof_generation_ms"`
	ProofVerificationMs int64 `json:"proof_verification_ms"`
}

// Prover runs groth16 over an Evaluator's compiled circuit.
type Prover struct {
	evaluator *Evaluator
	pk        groth16.ProvingKey
	vk        groth16.VerifyingKey
}

// NewProver runs a fresh groth16 setup for e's circuit.
func NewProver(e *Evaluator) (*Prover, error) {
	pk, vk, err := groth16.Setup(e.ccs)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return &Prover{evaluator: e, pk: pk, vk: vk}, nil
}

func (p *Prover) CircuitID() string {
	return p.evaluator.shape.CircuitID
}

func (p *Prover) VerifyingKey() (*groth16bn254.VerifyingKey, error) {
	vk, ok := p.vk.(*groth16bn254.VerifyingKey)
	if !ok {
		return nil, fmt.Errorf("unexpected verifying key type %T", p.vk)
	}
	return vk, nil
}

func (p *Prover) WriteProvingKey(w io.Writer) error {
	_, err := p.pk.WriteTo(w)
	return err
}

func (p *Prover) WriteVerifyingKey(w io.Writer) error {
	_, err := p.vk.WriteTo(w)
	return err
}

// Prove builds the witness, proves it, checks the proof against the setup's
// verifying key and packs the result into an Envelope.
func (p *Prover) Prove(
	input u32.Words,
	digest commitment.Commitment,
	wordOffset int,
	expected u32.Words,
) (Envelope, Timings, error) {
	var timings Timings

	start := time.Now()
	fullWitness, err := p.evaluator.Witness(input, digest, wordOffset, expected)
	if err != nil {
		return Envelope{}, timings, err
	}
	publicWitness, err := fullWitness.Public()
	if err != nil {
		return Envelope{}, timings, fmt.Errorf("extract public witness: %w", err)
	}
	publicWitnessBytes, err := publicWitness.MarshalBinary()
	if err != nil {
		return Envelope{}, timings, fmt.Errorf("marshal public witness: %w", err)
	}
	timings.WitnessBuildMs = time.Since(start).Milliseconds()

	start = time.Now()
	proofAny, err := groth16.Prove(p.evaluator.ccs, p.pk, fullWitness)
	if err != nil {
		return Envelope{}, timings, fmt.Errorf("prove: %w", err)
	}
	timings.ProofGenerationMs = time.Since(start).Milliseconds()

	start = time.Now()
	if err := groth16.Verify(proofAny, p.vk, publicWitness); err != nil {
		return Envelope{}, timings, fmt.Errorf("verify fresh proof: %w", err)
	}
	timings.ProofVerificationMs = time.Since(start).Milliseconds()

	proofBN, ok := proofAny.(*groth16bn254.Proof)
	if !ok {
		return Envelope{}, timings, fmt.Errorf("unexpected proof type %T", proofAny)
	}
	var proofBuf bytes.Buffer
	if _, err := proofBN.WriteTo(&proofBuf); err != nil {
		return Envelope{}, timings, fmt.Errorf("serialize proof: %w", err)
	}

	return Envelope{
		ProofType:     consts.ProofTypeGroth16,
		CircuitID:     p.evaluator.shape.CircuitID,
		Proof:         proofBuf.Bytes(),
		PublicWitness: publicWitnessBytes,
	}, timings, nil
}
