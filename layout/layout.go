// Package layout serializes credential records into fixed-width byte strings.
//
// A FieldLayout is an ordered list of (name, width) pairs. Each value is
// written at the offset given by the sum of the widths before it and padded
// on the right with spaces, so every field occupies a position that is known
// before any record is seen. Circuits rely on that to locate a field inside
// the serialized bytes.
package layout

import (
	"fmt"
	"strings"

	"github.com/vcbridge/vcbridge/errs"
	"github.com/vcbridge/vcbridge/u32"
)

const PadByte = 0x20

type Field struct {
	Name  string `json:"name"`
	Width int    `json:"width"`
}

// FieldLayout is immutable after New.
type FieldLayout struct {
	fields  []Field
	offsets map[string]int
	width   int
}

func New(fields ...Field) (*FieldLayout, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", errs.ErrInvalidLayout)
	}
	l := &FieldLayout{
		fields:  make([]Field, 0, len(fields)),
		offsets: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty field name", errs.ErrInvalidLayout)
		}
		if f.Width <= 0 {
			return nil, fmt.Errorf("%w: field %q has width %d", errs.ErrInvalidLayout, name, f.Width)
		}
		if _, ok := l.offsets[name]; ok {
			return nil, fmt.Errorf("%w: duplicate field %q", errs.ErrInvalidLayout, name)
		}
		l.offsets[name] = l.width
		l.fields = append(l.fields, Field{Name: name, Width: f.Width})
		l.width += f.Width
	}
	return l, nil
}

// DefaultCredentialLayout is the degree credential layout: name, degree,
// university and year.
func DefaultCredentialLayout() *FieldLayout {
	l, err := New(DefaultCredentialFields()...)
	if err != nil {
		panic(err)
	}
	return l
}

func DefaultCredentialFields() []Field {
	return []Field{
		{Name: "name", Width: 12},
		{Name: "degree", Width: 32},
		{Name: "university", Width: 4},
		{Name: "year", Width: 4},
	}
}

// Fields returns a copy of the ordered field list.
func (l *FieldLayout) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

// Width is the total serialized length in bytes.
func (l *FieldLayout) Width() int {
	return l.width
}

// Span returns the byte offset and width of name.
func (l *FieldLayout) Span(name string) (offset int, width int, err error) {
	offset, ok := l.offsets[name]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrUnknownField, name)
	}
	for _, f := range l.fields {
		if f.Name == name {
			width = f.Width
			break
		}
	}
	return offset, width, nil
}

// WordSpan returns the word offset and word count of name. Both the byte
// offset and the width must be multiples of four.
func (l *FieldLayout) WordSpan(name string) (wordOffset int, wordCount int, err error) {
	offset, width, err := l.Span(name)
	if err != nil {
		return 0, 0, err
	}
	if offset%u32.WordSize != 0 || width%u32.WordSize != 0 {
		return 0, 0, fmt.Errorf(
			"%w: field %q spans bytes [%d,%d) which is not word aligned",
			errs.ErrInvalidAlignment, name, offset, offset+width,
		)
	}
	return offset / u32.WordSize, width / u32.WordSize, nil
}

// Extract returns a copy of the bytes name occupies in serialized.
func (l *FieldLayout) Extract(serialized []byte, name string) ([]byte, error) {
	if len(serialized) != l.width {
		return nil, fmt.Errorf("%w: serialized length %d, layout width %d", errs.ErrInvalidLayout, len(serialized), l.width)
	}
	offset, width, err := l.Span(name)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), serialized[offset:offset+width]...), nil
}

// PadValue right-pads value with spaces to the width of field.
func (l *FieldLayout) PadValue(field string, value string) ([]byte, error) {
	_, width, err := l.Span(field)
	if err != nil {
		return nil, err
	}
	return padRight(field, value, width)
}

func padRight(field string, value string, width int) ([]byte, error) {
	if len(value) > width {
		return nil, &errs.FieldTooLongError{Field: field, MaxWidth: width, Length: len(value)}
	}
	out := make([]byte, width)
	copy(out, value)
	for i := len(value); i < width; i++ {
		out[i] = PadByte
	}
	return out, nil
}
