package layout

import (
	"fmt"
	"sort"

	"github.com/vcbridge/vcbridge/errs"
)

// Record maps field names to values. Values are treated as raw bytes.
type Record map[string]string

// Validate checks that r carries exactly the fields of l.
func (l *FieldLayout) Validate(r Record) error {
	var unknown []string
	for k := range r {
		if _, ok := l.offsets[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %q", errs.ErrUnknownField, unknown)
	}
	for _, f := range l.fields {
		if _, ok := r[f.Name]; !ok {
			return fmt.Errorf("%w: %q", errs.ErrMissingField, f.Name)
		}
	}
	return nil
}

// Serialize concatenates the values of r in layout order, each padded to its
// width. The first value that does not fit fails the whole call.
func (l *FieldLayout) Serialize(r Record) ([]byte, error) {
	if err := l.Validate(r); err != nil {
		return nil, err
	}
	out := make([]byte, 0, l.width)
	for _, f := range l.fields {
		v, err := padRight(f.Name, r[f.Name], f.Width)
		if err != nil {
			return nil, err
		}
		out = append(out, v...)
	}
	return out, nil
}

// Serialize is shorthand for l.Serialize(r).
func Serialize(r Record, l *FieldLayout) ([]byte, error) {
	return l.Serialize(r)
}
