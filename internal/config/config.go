// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management
// for spnlab.
//
// TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - $SPNLAB_CONFIG (explicit path)
//   - ~/.spnlab/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/spnlab/internal/linear"
	"github.com/jeranaias/spnlab/internal/spn"
	"github.com/jeranaias/spnlab/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete spnlab configuration.
type Config struct {
	// Version of the configuration layout.
	Version string `toml:"version" json:"version"`

	// Cipher holds the SPN tables and round structure.
	Cipher CipherConfig `toml:"cipher" json:"cipher"`

	// Attack holds the linear attack relation and pool sizing.
	Attack AttackConfig `toml:"attack" json:"attack"`

	// Output holds terminal output settings.
	Output OutputConfig `toml:"output" json:"output"`
}

// CipherConfig describes the cipher's tables.
type CipherConfig struct {
	// SBox is the substitution table as 16 hex digits, digit i giving
	// the output for input i.
	SBox string `toml:"sbox" json:"sbox"`
	// Permutation maps bit i of the round output to position
	// Permutation[i]; 16 distinct values 0..15.
	Permutation []int `toml:"permutation" json:"permutation"`
	// PermuteLastRound applies the permutation step in round 4 as
	// well. The linear attack requires this off.
	PermuteLastRound bool `toml:"permute_last_round" json:"permute_last_round"`
}

// AttackConfig describes the default linear relation and worker count.
type AttackConfig struct {
	// PlaintextMask is the plaintext bit mask as 4 hex digits.
	PlaintextMask string `toml:"plaintext_mask" json:"plaintext_mask"`
	// TargetSlot is the attacked ciphertext nibble slot, 0..3.
	TargetSlot int `toml:"target_slot" json:"target_slot"`
	// VMask is the nibble mask over the recovered last-round S-box
	// input, one hex digit.
	VMask string `toml:"v_mask" json:"v_mask"`
	// Workers bounds the attack pool; 0 selects GOMAXPROCS.
	Workers int `toml:"workers" json:"workers"`
}

// OutputConfig describes terminal output behavior.
type OutputConfig struct {
	// Color is "auto", "always", or "never".
	Color string `toml:"color" json:"color"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with the textbook tables and the verified
// default attack relation.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Cipher: CipherConfig{
			SBox:             "E4D12FB83A6C5907",
			Permutation:      []int{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15},
			PermuteLastRound: false,
		},

		Attack: AttackConfig{
			PlaintextMask: "0033",
			TargetSlot:    3,
			VMask:         "9",
			Workers:       0, // GOMAXPROCS
		},

		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the spnlab configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".spnlab"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// RunLogPath returns the path of the SQLite run log.
func RunLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "runs.db"), nil
}

// HistoryPath returns the path of the REPL history file.
func HistoryPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from $SPNLAB_CONFIG or the default TOML
// path, falling back to defaults when no file exists. A file that
// exists but fails to decode or validate is a hard error; a cipher
// with a silently wrong table must never run.
func Load() (*Config, error) {
	if path := os.Getenv("SPNLAB_CONFIG"); path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, fmt.Errorf("load %s: %w", tomlPath, err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over the given config, leaving fields
// the file does not mention untouched.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode TOML: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file with full
// validation. Decoding starts from Default so partial files work.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to a TOML file atomically with
// 0600 permissions, creating the config directory (0700) as needed.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# spnlab configuration file")
	fmt.Fprintln(&buf, "# Tables are hex strings; permutation[i] is the destination of bit i.")
	fmt.Fprintln(&buf, "")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field that later feeds a constructor, so bad
// tables or masks fail here with the field named instead of deep in a
// command handler.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := spn.ParseSBox(c.Cipher.SBox); err != nil {
		errs = append(errs, ValidationError{
			Field:   "cipher.sbox",
			Message: err.Error(),
		})
	}

	if mapping, err := c.permutationArray(); err != nil {
		errs = append(errs, ValidationError{
			Field:   "cipher.permutation",
			Message: err.Error(),
		})
	} else if _, err := spn.NewPermutation(mapping); err != nil {
		errs = append(errs, ValidationError{
			Field:   "cipher.permutation",
			Message: err.Error(),
		})
	}

	if mask, err := spn.ParseKey(c.Attack.PlaintextMask); err != nil {
		errs = append(errs, ValidationError{
			Field:   "attack.plaintext_mask",
			Message: err.Error(),
		})
	} else if mask == 0 {
		errs = append(errs, ValidationError{
			Field:   "attack.plaintext_mask",
			Message: "mask must be nonzero",
		})
	}

	if c.Attack.TargetSlot < 0 || c.Attack.TargetSlot >= spn.Slots {
		errs = append(errs, ValidationError{
			Field:   "attack.target_slot",
			Message: fmt.Sprintf("slot must be 0-%d, got %d", spn.Slots-1, c.Attack.TargetSlot),
		})
	}

	if mask, err := spn.ParseNibble("attack.v_mask", c.Attack.VMask); err != nil {
		errs = append(errs, ValidationError{
			Field:   "attack.v_mask",
			Message: err.Error(),
		})
	} else if mask == 0 {
		errs = append(errs, ValidationError{
			Field:   "attack.v_mask",
			Message: "mask must be nonzero",
		})
	}

	if c.Attack.Workers < 0 || c.Attack.Workers > 128 {
		errs = append(errs, ValidationError{
			Field:   "attack.workers",
			Message: fmt.Sprintf("workers must be 0-128, got %d", c.Attack.Workers),
		})
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[strings.ToLower(c.Output.Color)] {
		errs = append(errs, ValidationError{
			Field:   "output.color",
			Message: fmt.Sprintf("invalid color mode '%s', must be one of: auto, always, never", c.Output.Color),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills fields whose zero value is never valid. Integer
// fields keep their decoded values; a config built by Load starts from
// Default, so absent fields already hold defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Cipher.SBox == "" {
		c.Cipher.SBox = defaults.Cipher.SBox
	}
	if len(c.Cipher.Permutation) == 0 {
		c.Cipher.Permutation = defaults.Cipher.Permutation
	}
	if c.Attack.PlaintextMask == "" {
		c.Attack.PlaintextMask = defaults.Attack.PlaintextMask
	}
	if c.Attack.VMask == "" {
		c.Attack.VMask = defaults.Attack.VMask
	}
	if c.Output.Color == "" {
		c.Output.Color = defaults.Output.Color
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - FORCE_COLOR: any value forces output.color to "always"
//   - NO_COLOR: any value forces output.color to "never" (wins over
//     FORCE_COLOR when both are set)
//   - SPNLAB_WORKERS: overrides attack.workers
func (c *Config) ApplyEnvOverrides() {
	if os.Getenv("FORCE_COLOR") != "" {
		c.Output.Color = "always"
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Output.Color = "never"
	}
	if workers := os.Getenv("SPNLAB_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil {
			c.Attack.Workers = n
		}
	}
}

// =============================================================================
// TYPED CONSTRUCTORS
// =============================================================================

// BuildSBox constructs the configured S-box.
func (c *Config) BuildSBox() (*spn.SBox, error) {
	return spn.ParseSBox(c.Cipher.SBox)
}

// BuildPermutation constructs the configured permutation.
func (c *Config) BuildPermutation() (*spn.Permutation, error) {
	mapping, err := c.permutationArray()
	if err != nil {
		return nil, err
	}
	return spn.NewPermutation(mapping)
}

// BuildCipher constructs the configured cipher.
func (c *Config) BuildCipher() (*spn.Cipher, error) {
	sbox, err := c.BuildSBox()
	if err != nil {
		return nil, err
	}
	perm, err := c.BuildPermutation()
	if err != nil {
		return nil, err
	}
	return spn.NewCipher(sbox, perm, c.Cipher.PermuteLastRound), nil
}

// BuildRelation constructs the configured attack relation.
func (c *Config) BuildRelation() (linear.Relation, error) {
	mask, err := spn.ParseKey(c.Attack.PlaintextMask)
	if err != nil {
		return linear.Relation{}, err
	}
	vmask, err := spn.ParseNibble("attack.v_mask", c.Attack.VMask)
	if err != nil {
		return linear.Relation{}, err
	}
	rel := linear.Relation{
		PlaintextMask: mask,
		TargetSlot:    c.Attack.TargetSlot,
		VMask:         vmask,
	}
	if err := rel.Validate(); err != nil {
		return linear.Relation{}, err
	}
	return rel, nil
}

func (c *Config) permutationArray() ([spn.BlockBits]uint8, error) {
	var mapping [spn.BlockBits]uint8
	if len(c.Cipher.Permutation) != spn.BlockBits {
		return mapping, fmt.Errorf("want %d entries, got %d", spn.BlockBits, len(c.Cipher.Permutation))
	}
	for i, v := range c.Cipher.Permutation {
		if v < 0 || v >= spn.BlockBits {
			return mapping, fmt.Errorf("entry %d out of range 0-%d: %d", i, spn.BlockBits-1, v)
		}
		mapping[i] = uint8(v)
	}
	return mapping, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone creates a deep copy of the configuration. The permutation
// slice is copied so mutating a clone never reaches the original.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Cipher.Permutation != nil {
		clone.Cipher.Permutation = make([]int, len(c.Cipher.Permutation))
		copy(clone.Cipher.Permutation, c.Cipher.Permutation)
	}
	return &clone
}

// String returns an indented JSON rendering for debugging and the
// config show command.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

