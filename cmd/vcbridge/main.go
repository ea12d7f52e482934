package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vcbridge/vcbridge/cmd/vcbridge/version"
	"github.com/vcbridge/vcbridge/config"
)

var (
	configPath string
	logLevel   string

	cfg config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "vcbridge",
	Short:             "Credential commitments shared between native code and ZK circuits",
	SuggestFor:        []string{"vcbridge"},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.EnablePrefixMatching = true
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	rootCmd.AddCommand(
		version.NewCommand(),
		newSerializeCommand(),
		newDigestCommand(),
		newVerifyCommand(),
		newProveCommand(),
		newVerifyProofCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vcbridge failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(logLevel) != "" {
		cfg.LogLevel = logLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Str("cmd", cmd.Name()).Logger()
	logger.Set(log)

	log.Debug().
		Str("scheme", cfg.Scheme).
		Int("chunks", cfg.Chunks).
		Str("subrange_field", cfg.SubrangeField).
		Bool("check_constraints", cfg.CheckConstraints).
		Bool("groth16_vk_set", strings.TrimSpace(cfg.ZK.Groth16VerifyingKeyPath) != "").
		Msg("resolved config")
	return nil
}
