package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/vcbridge/vcbridge/errs"
)

const credentialJSON = `{"name":"Lukas","degree":"Financial Technologies","university":"VU","year":"2025"}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeRecord(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte(credentialJSON), 0o644))
	return path
}

func TestDigestCommand(t *testing.T) {
	out, err := execute(t,
		"digest",
		"--set", "name=Lukas",
		"--set", "degree=Financial Technologies",
		"--set", "university=VU",
		"--set", "year=2025",
	)
	require.NoError(t, err)

	var report digestReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.True(t, report.Equivalent)
	require.Len(t, report.CircuitWords, 8)
	require.NotEmpty(t, report.CID)

	want := sha256.Sum256([]byte("Lukas       Financial Technologies          VU  2025"))
	require.Equal(t, hex.EncodeToString(want[:]), report.NativeDigest)
}

func TestVerifyCommandStrictMismatch(t *testing.T) {
	out, err := execute(t,
		"verify",
		"--record", writeRecord(t),
		"--field", "degree",
		"--expected", "Computer Science",
		"--strict",
	)
	require.ErrorIs(t, err, errs.ErrSubrangeMismatch)

	var report verifyReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.True(t, report.HashMatch)
	require.False(t, report.SubrangeMatch)
	require.Equal(t, 3, report.WordOffset)
}

func TestSerializeCommandCBOR(t *testing.T) {
	out, err := execute(t, "serialize", "--record", writeRecord(t), "--format", "cbor")
	require.NoError(t, err)

	var report serializeReport
	require.NoError(t, cbor.Unmarshal([]byte(out), &report))
	require.Equal(t, 52, report.Width)
	require.Len(t, report.InputWords, 16)
	require.Equal(t, "0x4c756b61", report.InputWords[0])
}
