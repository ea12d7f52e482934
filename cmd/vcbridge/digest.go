package main

import (
	"github.com/spf13/cobra"

	"github.com/vcbridge/vcbridge/commitment"
)

type digestReport struct {
	Scheme       string   `json:"scheme"`
	NativeDigest string   `json:"native_digest"`
	CircuitWords []string `json:"circuit_words"`
	Equivalent   bool     `json:"equivalent"`
	ID           string   `json:"id"`
	CID          string   `json:"cid,omitempty"`
}

func newDigestCommand() *cobra.Command {
	var (
		rec    recordFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Computes the native and circuit commitments of a record",
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
			circuit, err := commitment.ComputeDigest(r, l, s)
			if err != nil {
				return err
			}
			serialized, err := l.Serialize(r)
			if err != nil {
				return err
			}
			native, err := s.NativeDigest(serialized)
			if err != nil {
				return err
			}

			report := digestReport{
				Scheme:       s.Name(),
				NativeDigest: native.Hex(),
				CircuitWords: circuit.Words().Hex(),
				Equivalent:   native.Equivalent(circuit),
				ID:           circuit.ID().String(),
			}
			if ca, ok := s.(commitment.ContentAddresser); ok {
				id, err := ca.ContentID(circuit)
				if err != nil {
					return err
				}
				report.CID = id.String()
			}
			if !report.Equivalent {
				log.Warn().Str("native", native.Hex()).Str("circuit", circuit.Hex()).Msg("digest mismatch")
			}
			return writeReport(cmd.OutOrStdout(), format, report)
		},
	}
	rec.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format (json|cbor)")
	return cmd
}
