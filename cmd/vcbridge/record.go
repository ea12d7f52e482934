package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/vcbridge/vcbridge/layout"
)

// recordFlags selects the record a command operates on.
type recordFlags struct {
	path   string
	fields map[string]string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "record", "", "path to a JSON object of field values")
	cmd.Flags().StringToStringVar(&f.fields, "set", nil, "field=value pairs (applied after --record)")
}

func (f *recordFlags) load() (layout.Record, error) {
	r := layout.Record{}
	if p := strings.TrimSpace(f.path); p != "" {
		blob, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(blob))
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", p, err)
		}
	}
	for k, v := range f.fields {
		r[k] = v
	}
	if len(r) == 0 {
		return nil, fmt.Errorf("no record given: use --record or --set")
	}
	return r, nil
}

const (
	formatJSON = "json"
	formatCBOR = "cbor"
)

func writeReport(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatCBOR:
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return err
		}
		blob, err := em.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(blob)
		return err
	default:
		return fmt.Errorf("unsupported format %q (json|cbor)", format)
	}
}
