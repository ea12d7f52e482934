package zk

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/vcbridge/vcbridge/commitment"
	"github.com/vcbridge/vcbridge/consts"
	"github.com/vcbridge/vcbridge/errs"
	"github.com/vcbridge/vcbridge/u32"
)

// Evaluator holds one compiled credential circuit and solves it for concrete
// inputs. It is immutable after construction.
type Evaluator struct {
	shape Shape
	ccs   constraint.ConstraintSystem
}

// NewCredentialSHA256Evaluator compiles CredentialBlockCircuit for a subrange
// of wordCount words at wordOffset.
func NewCredentialSHA256Evaluator(wordOffset, wordCount int, opts ...EvaluatorOption) (*Evaluator, error) {
	circuit, err := NewCredentialBlockCircuit(wordOffset, wordCount)
	if err != nil {
		return nil, err
	}
	return newEvaluator(Shape{
		CircuitID:  consts.ProofCircuitCredentialSHA256V1,
		InputWords: CredentialBlockWords,
		WordOffset: wordOffset,
		WordCount:  wordCount,
	}, circuit, opts)
}

// NewCredentialMiMCEvaluator compiles ChunkedMiMCCircuit for inputs of
// inputWords words.
func NewCredentialMiMCEvaluator(inputWords, chunks, wordOffset, wordCount int, opts ...EvaluatorOption) (*Evaluator, error) {
	circuit, err := NewChunkedMiMCCircuit(
		inputWords*u32.WordSize,
		chunks,
		wordOffset*u32.WordSize,
		wordCount*u32.WordSize,
	)
	if err != nil {
		return nil, err
	}
	return newEvaluator(Shape{
		CircuitID:  consts.ProofCircuitCredentialMiMCV1,
		InputWords: inputWords,
		Chunks:     chunks,
		WordOffset: wordOffset,
		WordCount:  wordCount,
	}, circuit, opts)
}

func newEvaluator(shape Shape, circuit frontend.Circuit, opts []EvaluatorOption) (*Evaluator, error) {
	var o evaluatorOptions
	for _, opt := range opts {
		opt(&o)
	}
	ccs, err := loadOrCompileConstraintSystem(shape, circuit, o)
	if err != nil {
		return nil, err
	}
	return &Evaluator{shape: shape, ccs: ccs}, nil
}

func (e *Evaluator) CircuitID() string {
	return e.shape.CircuitID
}

func (e *Evaluator) Shape() Shape {
	return e.shape
}

func (e *Evaluator) ConstraintSystem() constraint.ConstraintSystem {
	return e.ccs
}

// Assignment builds a full circuit assignment.
func (e *Evaluator) Assignment(
	input u32.Words,
	digest commitment.Commitment,
	wordOffset int,
	expected u32.Words,
) (frontend.Circuit, error) {
	if err := e.checkShape(input, wordOffset, expected); err != nil {
		return nil, err
	}
	switch e.shape.CircuitID {
	case consts.ProofCircuitCredentialSHA256V1:
		return NewCredentialBlockAssignment(input, digest, wordOffset, expected)
	case consts.ProofCircuitCredentialMiMCV1:
		return NewChunkedMiMCAssignment(input, e.shape.Chunks, digest, wordOffset, expected)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedProofCircuit, e.shape.CircuitID)
	}
}

// Witness builds the full witness and checks that it satisfies every
// constraint.
func (e *Evaluator) Witness(
	input u32.Words,
	digest commitment.Commitment,
	wordOffset int,
	expected u32.Words,
) (witness.Witness, error) {
	assignment, err := e.Assignment(input, digest, wordOffset, expected)
	if err != nil {
		return nil, err
	}
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("build witness: %w", err)
	}
	if err := e.ccs.IsSolved(w); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrConstraintsUnsatisfied, e.shape.CircuitID, err)
	}
	return w, nil
}

// CheckConstraints reports whether the compiled circuit accepts the given
// input, digest and subrange.
func (e *Evaluator) CheckConstraints(
	input u32.Words,
	digest commitment.Commitment,
	wordOffset int,
	expected u32.Words,
) error {
	_, err := e.Witness(input, digest, wordOffset, expected)
	return err
}

func (e *Evaluator) checkShape(input u32.Words, wordOffset int, expected u32.Words) error {
	if len(input) != e.shape.InputWords {
		return fmt.Errorf("%s: input has %d words, circuit expects %d", e.shape.CircuitID, len(input), e.shape.InputWords)
	}
	if wordOffset != e.shape.WordOffset || len(expected) != e.shape.WordCount {
		return fmt.Errorf(
			"%s: subrange words [%d,%d), circuit compiled for [%d,%d)",
			e.shape.CircuitID, wordOffset, wordOffset+len(expected), e.shape.WordOffset, e.shape.WordOffset+e.shape.WordCount,
		)
	}
	return nil
}
