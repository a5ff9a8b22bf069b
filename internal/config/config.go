// Package config loads runtime settings from the environment.
//
// Command-line flags take precedence; they are applied by each command after
// Load returns.
package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by every command.
type Config struct {
	// Seed fixes the random source. Zero draws a fresh seed.
	Seed      int64  `env:"TETRA_SEED"`
	HandsFile string `env:"TETRA_HANDS" envDefault:"hands.yaml"`
	Port      int    `env:"TETRA_PORT" envDefault:"8080"`
}

// Load parses Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Source returns a generator seeded from cfg.Seed, or from a fresh seed when
// it is zero. The seed actually used is returned so runs can be replayed.
func Source(cfg Config) (*rand.Rand, int64, error) {
	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, 0, err
		}
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}

// MustSource is like Source for callers without an error path. It panics if
// the system random source cannot be read.
func MustSource(seed int64) *rand.Rand {
	src, _, err := Source(Config{Seed: seed})
	if err != nil {
		panic(err)
	}
	return src
}
