// Package equivalence checks that a circuit computes the same commitment as
// the native hash for a record, and that a chosen field sits in the circuit
// input where the layout says it does.
package equivalence

import (
	"errors"
	"fmt"

	"github.com/vcbridge/vcbridge/commitment"
	"github.com/vcbridge/vcbridge/errs"
	"github.com/vcbridge/vcbridge/layout"
	"github.com/vcbridge/vcbridge/u32"
)

// ConstraintChecker evaluates a real constraint system against an encoded
// input, the claimed digest and the expected subrange words. An unsatisfied
// system is reported with an error wrapping errs.ErrConstraintsUnsatisfied.
type ConstraintChecker interface {
	CheckConstraints(input u32.Words, digest commitment.Commitment, wordOffset int, expected u32.Words) error
}

type Checker struct {
	Layout *layout.FieldLayout
	Scheme commitment.Scheme
	// Constraints is optional.
	Constraints ConstraintChecker
}

func NewChecker(l *layout.FieldLayout, s commitment.Scheme) *Checker {
	return &Checker{Layout: l, Scheme: s}
}

// Result of one verification. Mismatches are reported here rather than as
// errors.
type Result struct {
	Scheme        string
	HashMatch     bool
	SubrangeMatch bool
	// CircuitSatisfied is nil when no ConstraintChecker is configured.
	CircuitSatisfied *bool
	ConstraintError  string

	Native  commitment.Commitment
	Circuit commitment.Commitment

	Input      u32.Words
	WordOffset int
	Subrange   u32.Words
	Expected   u32.Words
}

// OK reports whether every check that ran succeeded.
func (r Result) OK() bool {
	ok := r.HashMatch && r.SubrangeMatch
	if r.CircuitSatisfied != nil {
		ok = ok && *r.CircuitSatisfied
	}
	return ok
}

// Err converts failed checks into errors for callers that want to abort.
func (r Result) Err() error {
	var out []error
	if !r.HashMatch {
		out = append(out, fmt.Errorf("%w: native=%s circuit=%s", errs.ErrDigestMismatch, r.Native.Hex(), r.Circuit.Hex()))
	}
	if !r.SubrangeMatch {
		out = append(out, fmt.Errorf("%w: at word %d", errs.ErrSubrangeMismatch, r.WordOffset))
	}
	if r.CircuitSatisfied != nil && !*r.CircuitSatisfied {
		out = append(out, fmt.Errorf("%w: %s", errs.ErrConstraintsUnsatisfied, r.ConstraintError))
	}
	return errors.Join(out...)
}

// Verify serializes r, compares the native digest against the circuit digest
// and compares the words of subrangeField against expected padded to the
// field's width.
func (c *Checker) Verify(r layout.Record, subrangeField string, expected string) (Result, error) {
	if c.Layout == nil || c.Scheme == nil {
		return Result{}, fmt.Errorf("%w: checker needs a layout and a scheme", errs.ErrInvalidScheme)
	}
	wordOffset, wordCount, err := c.Layout.WordSpan(subrangeField)
	if err != nil {
		return Result{}, err
	}
	expectedBytes, err := c.Layout.PadValue(subrangeField, expected)
	if err != nil {
		return Result{}, err
	}
	expectedWords, err := u32.FromBytes(expectedBytes)
	if err != nil {
		return Result{}, err
	}

	serialized, err := c.Layout.Serialize(r)
	if err != nil {
		return Result{}, err
	}
	native, err := c.Scheme.NativeDigest(serialized)
	if err != nil {
		return Result{}, err
	}
	input, err := c.Scheme.Encode(serialized)
	if err != nil {
		return Result{}, err
	}
	circuit, err := c.Scheme.CircuitDigest(input)
	if err != nil {
		return Result{}, err
	}
	subrange, err := input.Slice(wordOffset, wordCount)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Scheme:        c.Scheme.Name(),
		HashMatch:     native.Equivalent(circuit),
		SubrangeMatch: subrange.Equal(expectedWords),
		Native:        native,
		Circuit:       circuit,
		Input:         input,
		WordOffset:    wordOffset,
		Subrange:      subrange,
		Expected:      expectedWords,
	}

	if c.Constraints != nil {
		satisfied := true
		err := c.Constraints.CheckConstraints(input, native, wordOffset, expectedWords)
		switch {
		case errors.Is(err, errs.ErrConstraintsUnsatisfied):
			satisfied = false
			res.ConstraintError = err.Error()
		case err != nil:
			return Result{}, err
		}
		res.CircuitSatisfied = &satisfied
	}
	return res, nil
}
