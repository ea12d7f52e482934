// Package config resolves vcbridge settings from a JSON file and VCB_*
// environment variables. Environment values win over the file, the file wins
// over defaults.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vcbridge/vcbridge/commitment"
	"github.com/vcbridge/vcbridge/consts"
	"github.com/vcbridge/vcbridge/errs"
	"github.com/vcbridge/vcbridge/layout"
	"github.com/vcbridge/vcbridge/zk"
)

type Config struct {
	Scheme           string         `json:"scheme"`
	Chunks           int            `json:"chunks"`
	Layout           []layout.Field `json:"layout"`
	SubrangeField    string         `json:"subrangeField"`
	CheckConstraints bool           `json:"checkConstraints"`
	LogLevel         string         `json:"logLevel"`
	CacheDir         string         `json:"cacheDir"`
	ZK               ZKConfig       `json:"zk"`
}

type ZKConfig struct {
	Groth16VerifyingKeyPath string `json:"groth16VerifyingKeyPath"`
	RequiredCircuitID       string `json:"requiredCircuitID"`
}

func NewDefaultConfig() Config {
	return Config{
		Scheme:        consts.SchemeSHA256Block,
		Chunks:        consts.DefaultChunkCount,
		Layout:        layout.DefaultCredentialFields(),
		SubrangeField: "degree",
		LogLevel:      "info",
	}
}

// Load reads path (if non-empty) over the defaults and applies environment
// overrides.
func Load(path string) (Config, error) {
	cfg := NewDefaultConfig()
	if p := strings.TrimSpace(path); p != "" {
		blob, err := os.ReadFile(p)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(blob))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", p, err)
		}
	}
	cfg = Resolve(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve applies VCB_* environment overrides.
func Resolve(cfg Config) Config {
	if v, ok := getEnv("VCB_SCHEME"); ok {
		cfg.Scheme = v
	}
	if v, ok := parseEnvInt("VCB_CHUNKS"); ok {
		cfg.Chunks = v
	}
	if v, ok := getEnv("VCB_SUBRANGE_FIELD"); ok {
		cfg.SubrangeField = v
	}
	if v, ok := parseEnvBool("VCB_CHECK_CONSTRAINTS"); ok {
		cfg.CheckConstraints = v
	}
	if v, ok := getEnv("VCB_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnv("VCB_CCS_CACHE_DIR"); ok {
		cfg.CacheDir = v
	}
	if v, ok := getEnv("VCB_GROTH16_VK_PATH"); ok {
		cfg.ZK.Groth16VerifyingKeyPath = v
	}
	if v, ok := getEnv("VCB_REQUIRED_CIRCUIT_ID"); ok {
		cfg.ZK.RequiredCircuitID = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.Scheme {
	case consts.SchemeSHA256Block:
	case consts.SchemeChunkedMiMC:
		if c.Chunks <= 0 {
			return fmt.Errorf("%w: chunks must be positive, got %d", errs.ErrInvalidScheme, c.Chunks)
		}
	default:
		return fmt.Errorf("%w: %q", errs.ErrInvalidScheme, c.Scheme)
	}
	l, err := c.FieldLayout()
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.SubrangeField) != "" {
		if _, _, err := l.WordSpan(c.SubrangeField); err != nil {
			return fmt.Errorf("subrange field: %w", err)
		}
	}
	return nil
}

func (c Config) FieldLayout() (*layout.FieldLayout, error) {
	return layout.New(c.Layout...)
}

func (c Config) BuildScheme() (commitment.Scheme, error) {
	return commitment.NewScheme(c.Scheme, c.Chunks)
}

// CircuitID is the proof circuit matching the configured scheme.
func (c Config) CircuitID() string {
	if c.Scheme == consts.SchemeChunkedMiMC {
		return consts.ProofCircuitCredentialMiMCV1
	}
	return consts.ProofCircuitCredentialSHA256V1
}

// NewEvaluator compiles the circuit for the configured scheme and subrange.
func (c Config) NewEvaluator() (*zk.Evaluator, error) {
	l, err := c.FieldLayout()
	if err != nil {
		return nil, err
	}
	wordOffset, wordCount, err := l.WordSpan(c.SubrangeField)
	if err != nil {
		return nil, err
	}
	opts := []zk.EvaluatorOption{zk.WithConstraintCache(c.CacheDir)}
	switch c.Scheme {
	case consts.SchemeSHA256Block:
		return zk.NewCredentialSHA256Evaluator(wordOffset, wordCount, opts...)
	case consts.SchemeChunkedMiMC:
		if l.Width()%4 != 0 {
			return nil, fmt.Errorf("%w: layout width %d", errs.ErrInvalidAlignment, l.Width())
		}
		return zk.NewCredentialMiMCEvaluator(l.Width()/4, c.Chunks, wordOffset, wordCount, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidScheme, c.Scheme)
	}
}

func (c Config) VerifierConfig() zk.Config {
	required := c.ZK.RequiredCircuitID
	if strings.TrimSpace(required) == "" {
		required = c.CircuitID()
	}
	return zk.Config{
		Groth16VerifyingKeyPath: c.ZK.Groth16VerifyingKeyPath,
		RequiredCircuitID:       required,
	}
}

func parseEnvBool(name string) (bool, bool) {
	v, ok := getEnv(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

func parseEnvInt(name string) (int, bool) {
	v, ok := getEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func getEnv(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return "", false
	}
	return v, true
}
