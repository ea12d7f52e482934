package zk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vcbridge/vcbridge/consts"
	"github.com/vcbridge/vcbridge/errs"
)

func TestBuildEnvelopeRoundTrip(t *testing.T) {
	proof := []byte{1, 2, 3, 4}
	witness := []byte{9, 8, 7}
	blob, err := BuildEnvelope(consts.ProofTypeGroth16, consts.ProofCircuitCredentialSHA256V1, proof, witness)
	require.NoError(t, err)
	require.Equal(t, "VCB1", string(blob[:4]))

	env, err := ParseEnvelope(blob)
	require.NoError(t, err)
	require.Equal(t, consts.ProofTypeGroth16, env.ProofType)
	require.Equal(t, consts.ProofCircuitCredentialSHA256V1, env.CircuitID)
	require.Equal(t, proof, env.Proof)
	require.Equal(t, witness, env.PublicWitness)

	again, err := env.Bytes()
	require.NoError(t, err)
	require.Equal(t, blob, again)
}

func TestBuildEnvelopeRejectsInvalidInput(t *testing.T) {
	for name, circuitID := range map[string]string{
		"empty":     "",
		"uppercase": "Credential-v1",
		"space":     "credential v1",
		"too-long":  string(make([]byte, 64)),
	} {
		_, err := BuildEnvelope(consts.ProofTypeGroth16, circuitID, []byte{1}, []byte{2})
		require.ErrorIs(t, err, errs.ErrInvalidProofEnvelope, name)
	}

	_, err := BuildEnvelope(0, consts.ProofCircuitCredentialSHA256V1, []byte{1}, []byte{2})
	require.ErrorIs(t, err, errs.ErrInvalidProofEnvelope)
	_, err = BuildEnvelope(consts.ProofTypeGroth16, consts.ProofCircuitCredentialSHA256V1, nil, []byte{2})
	require.ErrorIs(t, err, errs.ErrInvalidProofEnvelope)
	_, err = BuildEnvelope(consts.ProofTypeGroth16, consts.ProofCircuitCredentialSHA256V1, []byte{1}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidProofEnvelope)
}

func TestParseEnvelopeRejectsMalformed(t *testing.T) {
	blob, err := BuildEnvelope(consts.ProofTypeGroth16, consts.ProofCircuitCredentialMiMCV1, []byte{1, 2}, []byte{3})
	require.NoError(t, err)

	_, err = ParseEnvelope(blob[:len(blob)-1])
	require.ErrorIs(t, err, errs.ErrInvalidProofEnvelope)

	_, err = ParseEnvelope(append(append([]byte(nil), blob...), 0))
	require.ErrorIs(t, err, errs.ErrInvalidProofEnvelope)

	badMagic := append([]byte(nil), blob...)
	badMagic[0] = 'X'
	_, err = ParseEnvelope(badMagic)
	require.ErrorIs(t, err, errs.ErrInvalidProofEnvelope)

	_, err = ParseEnvelope([]byte{0xaa, 0xbb, 0xcc})
	require.ErrorIs(t, err, errs.ErrInvalidProofEnvelope)
}
