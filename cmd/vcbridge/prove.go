package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vcbridge/vcbridge/u32"
	"github.com/vcbridge/vcbridge/zk"
)

func newProveCommand() *cobra.Command {
	var (
		rec      recordFlags
		field    string
		expected string
		outDir   string
		keys     bool
	)
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Runs a groth16 setup and proves a record's commitment and field",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := rec.load()
			if err != nil {
				return err
			}
			if field != "" {
				cfg.SubrangeField = field
			}
			l, err := cfg.FieldLayout()
			if err != nil {
				return err
			}
			s, err := cfg.BuildScheme()
			if err != nil {
				return err
			}
			wordOffset, wordCount, err := l.WordSpan(cfg.SubrangeField)
			if err != nil {
				return err
			}
			expectedWords, err := u32.FromString(expected, wordCount*u32.WordSize)
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
			digest, err := s.NativeDigest(serialized)
			if err != nil {
				return err
			}

			e, err := cfg.NewEvaluator()
			if err != nil {
				return fmt.Errorf("compile circuit: %w", err)
			}
			log.Info().Str("circuit", e.CircuitID()).Int("constraints", e.ConstraintSystem().GetNbConstraints()).Msg("circuit compiled")
			p, err := zk.NewProver(e)
			if err != nil {
				return err
			}
			env, timings, err := p.Prove(input, digest, wordOffset, expectedWords)
			if err != nil {
				return err
			}
			log.Info().
				Int64("witness_build_ms", timings.WitnessBuildMs).
				Int64("proof_generation_ms", timings.ProofGenerationMs).
				Int64("proof_verification_ms", timings.ProofVerificationMs).
				Msg("proof generated")

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("mkdir %s: %w", outDir, err)
			}
			pkName, vkName, prefix := artifactNames(e.CircuitID())
			vkPath := filepath.Join(outDir, vkName)
			if keys {
				if err := writeWith(filepath.Join(outDir, pkName), p.WriteProvingKey); err != nil {
					return fmt.Errorf("write proving key: %w", err)
				}
			}
			if err := writeWith(vkPath, p.WriteVerifyingKey); err != nil {
				return fmt.Errorf("write verifying key: %w", err)
			}
			blob, err := env.Bytes()
			if err != nil {
				return fmt.Errorf("build proof envelope: %w", err)
			}
			files := map[string][]byte{
				prefix + "_digest.hex":         []byte(digest.Hex()),
				prefix + "_public_witness.bin": env.PublicWitness,
				prefix + "_proof.bin":          env.Proof,
				prefix + "_proof_envelope.bin": blob,
			}
			for name, data := range files {
				if err := os.WriteFile(filepath.Join(outDir, name), data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", name, err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "proof artifacts written to %s\n", outDir)
			fmt.Fprintf(out, "  VCB_GROTH16_VK_PATH=%s\n", vkPath)
			fmt.Fprintf(out, "  VCB_REQUIRED_CIRCUIT_ID=%s\n", e.CircuitID())
			return nil
		},
	}
	rec.register(cmd)
	cmd.Flags().StringVar(&field, "field", "", "field to prove (defaults to config subrangeField)")
	cmd.Flags().StringVar(&expected, "expected", "", "value the field is proven to hold")
	cmd.Flags().StringVar(&outDir, "out", "./zk-fixture", "output directory")
	cmd.Flags().BoolVar(&keys, "keys", true, "write the groth16 proving key")
	return cmd
}

func artifactNames(circuitID string) (pkName string, vkName string, prefix string) {
	base := filepath.Base(circuitID)
	return "groth16_" + base + "_pk.bin", "groth16_" + base + "_vk.bin", "sample_" + base
}

func writeWith(path string, write func(io.Writer) error) error {
	buf := &bytes.Buffer{}
	if err := write(buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
