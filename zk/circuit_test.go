package zk

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/vcbridge/vcbridge/commitment"
	"github.com/vcbridge/vcbridge/layout"
	"github.com/vcbridge/vcbridge/u32"
)

type fixture struct {
	input      u32.Words
	digest     commitment.Commitment
	wordOffset int
	expected   u32.Words
}

func credentialFixture(t *testing.T, s commitment.Scheme, degree string) fixture {
	t.Helper()
	l := layout.DefaultCredentialLayout()
	serialized, err := l.Serialize(layout.Record{
		"name":       "Lukas",
		"degree":     "Financial Technologies",
		"university": "VU",
		"year":       "2025",
	})
	require.NoError(t, err)

	input, err := s.Encode(serialized)
	require.NoError(t, err)
	digest, err := s.NativeDigest(serialized)
	require.NoError(t, err)

	wordOffset, wordCount, err := l.WordSpan("degree")
	require.NoError(t, err)
	expected, err := u32.FromString(degree, wordCount*u32.WordSize)
	require.NoError(t, err)

	return fixture{input: input, digest: digest, wordOffset: wordOffset, expected: expected}
}

func TestCredentialBlockCircuitSolved(t *testing.T) {
	f := credentialFixture(t, commitment.NewSHA256Block(), "Financial Technologies")

	circuit, err := NewCredentialBlockCircuit(f.wordOffset, len(f.expected))
	require.NoError(t, err)
	assignment, err := NewCredentialBlockAssignment(f.input, f.digest, f.wordOffset, f.expected)
	require.NoError(t, err)

	require.NoError(t, test.IsSolved(circuit, assignment, ecc.BN254.ScalarField()))
}

func TestCredentialBlockCircuitRejectsWrongDegree(t *testing.T) {
	f := credentialFixture(t, commitment.NewSHA256Block(), "Computer Science")

	circuit, err := NewCredentialBlockCircuit(f.wordOffset, len(f.expected))
	require.NoError(t, err)
	assignment, err := NewCredentialBlockAssignment(f.input, f.digest, f.wordOffset, f.expected)
	require.NoError(t, err)

	require.Error(t, test.IsSolved(circuit, assignment, ecc.BN254.ScalarField()))
}

func TestCredentialBlockCircuitRejectsWrongDigest(t *testing.T) {
	f := credentialFixture(t, commitment.NewSHA256Block(), "Financial Technologies")
	bad := f.digest.Bytes()
	bad[0] ^= 0x01
	badDigest, err := commitment.FromDigest(bad)
	require.NoError(t, err)

	circuit, err := NewCredentialBlockCircuit(f.wordOffset, len(f.expected))
	require.NoError(t, err)
	assignment, err := NewCredentialBlockAssignment(f.input, badDigest, f.wordOffset, f.expected)
	require.NoError(t, err)

	require.Error(t, test.IsSolved(circuit, assignment, ecc.BN254.ScalarField()))
}

func TestCredentialBlockAssignmentRejectsBadShape(t *testing.T) {
	f := credentialFixture(t, commitment.NewSHA256Block(), "Financial Technologies")

	_, err := NewCredentialBlockAssignment(f.input[:15], f.digest, f.wordOffset, f.expected)
	require.Error(t, err)
	_, err = NewCredentialBlockAssignment(f.input, f.digest, 10, f.expected)
	require.Error(t, err)
	_, err = NewCredentialBlockCircuit(0, 0)
	require.Error(t, err)
}

func TestChunkedMiMCCircuitSolved(t *testing.T) {
	s, err := commitment.NewChunkedMiMC(4)
	require.NoError(t, err)
	f := credentialFixture(t, s, "Financial Technologies")

	circuit, err := NewChunkedMiMCCircuit(len(f.input)*u32.WordSize, 4, f.wordOffset*u32.WordSize, len(f.expected)*u32.WordSize)
	require.NoError(t, err)
	assignment, err := NewChunkedMiMCAssignment(f.input, 4, f.digest, f.wordOffset, f.expected)
	require.NoError(t, err)

	require.NoError(t, test.IsSolved(circuit, assignment, ecc.BN254.ScalarField()))
}

func TestChunkedMiMCCircuitRejectsWrongDegree(t *testing.T) {
	s, err := commitment.NewChunkedMiMC(4)
	require.NoError(t, err)
	f := credentialFixture(t, s, "Computer Science")

	circuit, err := NewChunkedMiMCCircuit(len(f.input)*u32.WordSize, 4, f.wordOffset*u32.WordSize, len(f.expected)*u32.WordSize)
	require.NoError(t, err)
	assignment, err := NewChunkedMiMCAssignment(f.input, 4, f.digest, f.wordOffset, f.expected)
	require.NoError(t, err)

	require.Error(t, test.IsSolved(circuit, assignment, ecc.BN254.ScalarField()))
}

func TestNewChunkedMiMCCircuitRejectsBadShape(t *testing.T) {
	_, err := NewChunkedMiMCCircuit(52, 5, 12, 32)
	require.Error(t, err)
	_, err = NewChunkedMiMCCircuit(52, 4, 40, 32)
	require.Error(t, err)
}
