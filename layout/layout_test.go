package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vcbridge/vcbridge/errs"
)

func credential() Record {
	return Record{
		"name":       "Lukas",
		"degree":     "Financial Technologies",
		"university": "VU",
		"year":       "2025",
	}
}

func TestSerializeCredential(t *testing.T) {
	l := DefaultCredentialLayout()
	out, err := l.Serialize(credential())
	require.NoError(t, err)
	require.Len(t, out, 52)
	require.Equal(t, l.Width(), len(out))

	want := "Lukas       " + "Financial Technologies          " + "VU  " + "2025"
	require.Equal(t, want, string(out))
}

func TestSerializeDeterministic(t *testing.T) {
	l := DefaultCredentialLayout()
	a, err := Serialize(credential(), l)
	require.NoError(t, err)
	b, err := Serialize(credential(), l)
	require.NoError(t, err)
	require.True(t, bytes.Equal(a, b))
}

func TestSerializeFieldTooLong(t *testing.T) {
	l := DefaultCredentialLayout()
	r := credential()
	r["name"] = strings.Repeat("x", 13)

	out, err := l.Serialize(r)
	require.Nil(t, out)
	require.ErrorIs(t, err, errs.ErrFieldTooLong)

	field, width, ok := errs.FieldTooLong(err)
	require.True(t, ok)
	require.Equal(t, "name", field)
	require.Equal(t, 12, width)
}

func TestSerializeExactWidthAndEmpty(t *testing.T) {
	l := DefaultCredentialLayout()
	r := credential()
	r["name"] = strings.Repeat("x", 12)
	r["university"] = ""

	out, err := l.Serialize(r)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("x", 12), string(out[:12]))
	require.Equal(t, "    ", string(out[44:48]))
}

func TestSerializeKeySetMismatch(t *testing.T) {
	l := DefaultCredentialLayout()

	r := credential()
	r["gpa"] = "4.0"
	_, err := l.Serialize(r)
	require.ErrorIs(t, err, errs.ErrUnknownField)

	r = credential()
	delete(r, "year")
	_, err = l.Serialize(r)
	require.ErrorIs(t, err, errs.ErrMissingField)
}

func TestNewRejectsBadLayouts(t *testing.T) {
	_, err := New()
	require.ErrorIs(t, err, errs.ErrInvalidLayout)

	_, err = New(Field{Name: "a", Width: 0})
	require.ErrorIs(t, err, errs.ErrInvalidLayout)

	_, err = New(Field{Name: "a", Width: 4}, Field{Name: "a", Width: 4})
	require.ErrorIs(t, err, errs.ErrInvalidLayout)

	_, err = New(Field{Name: " ", Width: 4})
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
}

func TestSpans(t *testing.T) {
	l := DefaultCredentialLayout()

	offset, width, err := l.Span("degree")
	require.NoError(t, err)
	require.Equal(t, 12, offset)
	require.Equal(t, 32, width)

	wordOffset, wordCount, err := l.WordSpan("degree")
	require.NoError(t, err)
	require.Equal(t, 3, wordOffset)
	require.Equal(t, 8, wordCount)

	_, _, err = l.Span("gpa")
	require.ErrorIs(t, err, errs.ErrUnknownField)
}

func TestWordSpanRejectsMisalignedField(t *testing.T) {
	l, err := New(Field{Name: "name", Width: 10}, Field{Name: "degree", Width: 32})
	require.NoError(t, err)

	_, _, err = l.WordSpan("degree")
	require.ErrorIs(t, err, errs.ErrInvalidAlignment)

	_, _, err = l.WordSpan("name")
	require.ErrorIs(t, err, errs.ErrInvalidAlignment)
}

func TestExtractAndPadValue(t *testing.T) {
	l := DefaultCredentialLayout()
	out, err := l.Serialize(credential())
	require.NoError(t, err)

	degree, err := l.Extract(out, "degree")
	require.NoError(t, err)

	padded, err := l.PadValue("degree", "Financial Technologies")
	require.NoError(t, err)
	require.Equal(t, padded, degree)

	_, err = l.Extract(out[:40], "degree")
	require.ErrorIs(t, err, errs.ErrInvalidLayout)

	_, err = l.PadValue("degree", strings.Repeat("y", 33))
	require.ErrorIs(t, err, errs.ErrFieldTooLong)
}
