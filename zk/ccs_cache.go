package zk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
)

// Shape identifies one compiled credential circuit.
type Shape struct {
	CircuitID  string
	InputWords int
	Chunks     int
	WordOffset int
	WordCount  int
}

func (s Shape) cacheFileName() string {
	return fmt.Sprintf(
		"groth16_%s_w%d_c%d_o%d_n%d.ccs.bin",
		sanitizePathComponent(s.CircuitID), s.InputWords, s.Chunks, s.WordOffset, s.WordCount,
	)
}

type EvaluatorOption func(*evaluatorOptions)

type evaluatorOptions struct {
	cacheDir string
}

// WithConstraintCache keeps compiled constraint systems under dir.
func WithConstraintCache(dir string) EvaluatorOption {
	return func(o *evaluatorOptions) {
		o.cacheDir = strings.TrimSpace(dir)
	}
}

func loadOrCompileConstraintSystem(
	shape Shape,
	circuit frontend.Circuit,
	opts evaluatorOptions,
) (constraint.ConstraintSystem, error) {
	log := logger.Logger().With().Str("circuit", shape.CircuitID).Logger()

	var cachePath string
	if opts.cacheDir != "" {
		cachePath = filepath.Join(opts.cacheDir, shape.cacheFileName())
		ccs, err := loadConstraintSystem(cachePath)
		if err == nil {
			log.Debug().Str("path", cachePath).Msg("constraint system cache hit")
			return ccs, nil
		}
		log.Debug().Str("path", cachePath).Err(err).Msg("constraint system cache miss")
	}

	compileStart := time.Now()
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", shape.CircuitID, err)
	}
	log.Debug().Dur("took", time.Since(compileStart)).Int("constraints", ccs.GetNbConstraints()).Msg("constraint system compiled")

	if cachePath != "" {
		if err := storeConstraintSystem(cachePath, ccs); err != nil {
			log.Warn().Str("path", cachePath).Err(err).Msg("constraint system cache write skipped")
		}
	}
	return ccs, nil
}

func loadConstraintSystem(path string) (constraint.ConstraintSystem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ccs := groth16.NewCS(ecc.BN254)
	if _, err := ccs.ReadFrom(f); err != nil {
		return nil, err
	}
	return ccs, nil
}

func storeConstraintSystem(path string, ccs constraint.ConstraintSystem) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	if _, err := ccs.WriteTo(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func sanitizePathComponent(in string) string {
	if in == "" {
		return "unknown"
	}
	out := strings.Builder{}
	out.Grow(len(in))
	for _, r := range in {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			out.WriteRune(r)
		} else {
			out.WriteRune('_')
		}
	}
	return out.String()
}
