// Package errs holds the error values shared by the encoding, commitment and
// proof packages.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrFieldTooLong      = errors.New("field too long")
	ErrPaddingOverflow   = errors.New("padding overflow")
	ErrChunkSizeMismatch = errors.New("chunk size mismatch")
	ErrInvalidAlignment  = errors.New("invalid alignment")
	ErrDigestMismatch    = errors.New("digest mismatch")
	ErrSubrangeMismatch  = errors.New("subrange mismatch")

	ErrConstraintsUnsatisfied = errors.New("circuit constraints not satisfied")

	ErrUnknownField  = errors.New("unknown field")
	ErrMissingField  = errors.New("missing field")
	ErrInvalidLayout = errors.New("invalid layout")
	ErrInvalidDigest = errors.New("invalid digest")
	ErrInvalidScheme = errors.New("invalid commitment scheme")

	ErrInvalidProofEnvelope      = errors.New("invalid proof envelope")
	ErrProofVerifierUnavailable  = errors.New("proof verifier unavailable")
	ErrUnsupportedProofCircuit   = errors.New("unsupported proof circuit")
	ErrProofCircuitMismatch      = errors.New("proof circuit mismatch")
	ErrProofTypeMismatch         = errors.New("proof type mismatch")
	ErrProofPublicInputsMismatch = errors.New("proof public inputs mismatch")
	ErrProofVerificationFailed   = errors.New("proof verification failed")
)

// FieldTooLongError reports a value whose byte length exceeds the width
// reserved for it.
type FieldTooLongError struct {
	Field    string
	MaxWidth int
	Length   int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("field %q too long: %d bytes exceeds width %d", e.Field, e.Length, e.MaxWidth)
}

func (e *FieldTooLongError) Is(target error) bool {
	return target == ErrFieldTooLong
}

// FieldTooLong returns the offending field name and width when err wraps a
// FieldTooLongError.
func FieldTooLong(err error) (field string, maxWidth int, ok bool) {
	var ftl *FieldTooLongError
	if !errors.As(err, &ftl) {
		return "", 0, false
	}
	return ftl.Field, ftl.MaxWidth, true
}
