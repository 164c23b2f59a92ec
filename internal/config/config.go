// Package config loads the optional .spiguard.yml policy file from the
// scan root. Absent file means defaults; a present but malformed file is an
// error, never a silent fallback.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the policy file looked up at the scan root.
const FileName = ".spiguard.yml"

// Config is the scan policy.
type Config struct {
	// Checks enables a subset of checks by name. Empty means all.
	Checks []string `yaml:"checks"`

	// AllowedImports are import path prefixes declaration files may use in
	// addition to the standard library.
	AllowedImports []string `yaml:"allowed_imports"`

	// BannedImports are import path prefixes that are always findings,
	// even when covered by an allowed prefix.
	BannedImports []string `yaml:"banned_imports"`

	// HeaderPatterns are substrings that mark a leading file comment as a
	// banned license header.
	HeaderPatterns []string `yaml:"header_patterns"`

	// Baseline is the path of the baseline database, relative to the scan
	// root unless absolute.
	Baseline string `yaml:"baseline"`
}

// Default returns the policy used when no .spiguard.yml exists.
func Default() *Config {
	return &Config{
		AllowedImports: []string{
			"github.com/calder-io/spiguard/contract",
			"github.com/calder-io/spiguard/spi",
		},
		BannedImports: []string{
			"github.com/calder-io/spiguard/internal",
		},
		HeaderPatterns: []string{
			"SPDX-License-Identifier",
		},
		Baseline: ".spiguard.db",
	}
}

// Load reads the policy for a scan root. Fields omitted from the file keep
// their defaults; unknown fields are an error so that a typo in a policy
// file cannot silently disable a check.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}

	return cfg, nil
}

// CheckEnabled reports whether a check participates under this policy.
func (c *Config) CheckEnabled(name string) bool {
	if len(c.Checks) == 0 {
		return true
	}
	for _, n := range c.Checks {
		if n == name {
			return true
		}
	}
	return false
}

// BaselinePath resolves the baseline database path against the scan root.
func (c *Config) BaselinePath(root string) string {
	if c.Baseline == "" {
		c.Baseline = Default().Baseline
	}
	if filepath.IsAbs(c.Baseline) {
		return c.Baseline
	}
	return filepath.Join(root, c.Baseline)
}
