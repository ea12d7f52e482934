package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"
)

type serializeReport struct {
	Serialized string   `json:"serialized"`
	Hex        string   `json:"hex"`
	Width      int      `json:"width"`
	Scheme     string   `json:"scheme"`
	InputWords []string `json:"input_words"`
}

func newSerializeCommand() *cobra.Command {
	var (
		rec    recordFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "serialize",
		Short: "Serializes a record and prints the circuit input words",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := rec.load()
			if err != nil {
				return err
			}
			l, err := cfg.FieldLayout()
			if err != nil {
				return err
			}
			s, err := cfg.BuildScheme()
			if err != nil {
				return err
			}
			serialized, err := l.Serialize(r)
			if err != nil {
				return err
			}
			input, err := s.Encode(serialized)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), format, serializeReport{
				Serialized: string(serialized),
				Hex:        hex.EncodeToString(serialized),
				Width:      l.Width(),
				Scheme:     s.Name(),
				InputWords: input.Hex(),
			})
		},
	}
	rec.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format (json|cbor)")
	return cmd
}
