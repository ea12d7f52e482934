package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vcbridge/vcbridge/commitment"
	"github.com/vcbridge/vcbridge/u32"
	"github.com/vcbridge/vcbridge/zk"
)

func newVerifyProofCommand() *cobra.Command {
	var (
		envelopePath string
		vkPath       string
		digestHex    string
		expected     string
		field        string
	)
	cmd := &cobra.Command{
		Use:   "verify-proof",
		Short: "Verifies a proof envelope against a commitment and an expected field value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if field != "" {
				cfg.SubrangeField = field
			}
			if strings.TrimSpace(vkPath) != "" {
				cfg.ZK.Groth16VerifyingKeyPath = vkPath
			}
			l, err := cfg.FieldLayout()
			if err != nil {
				return err
			}
			_, wordCount, err := l.WordSpan(cfg.SubrangeField)
			if err != nil {
				return err
			}
			expectedWords, err := u32.FromString(expected, wordCount*u32.WordSize)
			if err != nil {
				return err
			}
			digest, err := commitment.FromHex(digestHex)
			if err != nil {
				return err
			}
			blob, err := os.ReadFile(envelopePath)
			if err != nil {
				return fmt.Errorf("read envelope: %w", err)
			}

			v, err := zk.NewVerifier(cfg.VerifierConfig())
			if err != nil {
				return err
			}
			if err := v.VerifyEnvelope(blob, zk.Statement{Digest: digest, Expected: expectedWords}); err != nil {
				log.Warn().Err(err).Str("digest", digest.Hex()).Msg("proof rejected")
				return err
			}
			log.Info().Str("digest", digest.Hex()).Str("id", digest.ID().String()).Msg("proof accepted")
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&envelopePath, "envelope", "", "path to a proof envelope")
	cmd.Flags().StringVar(&vkPath, "vk", "", "groth16 verifying key (overrides config)")
	cmd.Flags().StringVar(&digestHex, "digest", "", "hex commitment the proof must bind")
	cmd.Flags().StringVar(&expected, "expected", "", "value the field must hold")
	cmd.Flags().StringVar(&field, "field", "", "field the proof covers (defaults to config subrangeField)")
	_ = cmd.MarkFlagRequired("envelope")
	_ = cmd.MarkFlagRequired("digest")
	return cmd
}
