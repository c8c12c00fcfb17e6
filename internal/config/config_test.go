// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv pins every environment variable the package reads so tests
// never depend on the host shell.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SPNLAB_CONFIG", "")
	t.Setenv("SPNLAB_WORKERS", "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("HOME", t.TempDir())
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestConfig_Default tests the built-in defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Cipher.SBox != "E4D12FB83A6C5907" {
		t.Errorf("Unexpected default sbox: %s", cfg.Cipher.SBox)
	}
	if len(cfg.Cipher.Permutation) != 16 {
		t.Fatalf("Expected 16 permutation entries, got %d", len(cfg.Cipher.Permutation))
	}
	if cfg.Cipher.PermuteLastRound {
		t.Error("permute_last_round should default to false")
	}
	if cfg.Attack.PlaintextMask != "0033" {
		t.Errorf("Unexpected default plaintext mask: %s", cfg.Attack.PlaintextMask)
	}
	if cfg.Attack.TargetSlot != 3 {
		t.Errorf("Unexpected default target slot: %d", cfg.Attack.TargetSlot)
	}
	if cfg.Attack.VMask != "9" {
		t.Errorf("Unexpected default v mask: %s", cfg.Attack.VMask)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("Unexpected default color mode: %s", cfg.Output.Color)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	modified := func(mutate func(*Config)) *Config {
		c := Default()
		mutate(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"valid default config", Default(), false},
		{"sbox with duplicate", modified(func(c *Config) { c.Cipher.SBox = "E4D12FB83A6C5900" }), true},
		{"sbox too short", modified(func(c *Config) { c.Cipher.SBox = "E4D1" }), true},
		{"permutation wrong length", modified(func(c *Config) { c.Cipher.Permutation = []int{0, 1, 2} }), true},
		{"permutation duplicate", modified(func(c *Config) { c.Cipher.Permutation[1] = 0 }), true},
		{"permutation out of range", modified(func(c *Config) { c.Cipher.Permutation[0] = 16 }), true},
		{"plaintext mask zero", modified(func(c *Config) { c.Attack.PlaintextMask = "0000" }), true},
		{"plaintext mask bad hex", modified(func(c *Config) { c.Attack.PlaintextMask = "WXYZ" }), true},
		{"target slot negative", modified(func(c *Config) { c.Attack.TargetSlot = -1 }), true},
		{"target slot too big", modified(func(c *Config) { c.Attack.TargetSlot = 4 }), true},
		{"target slot zero is valid", modified(func(c *Config) { c.Attack.TargetSlot = 0 }), false},
		{"v mask zero", modified(func(c *Config) { c.Attack.VMask = "0" }), true},
		{"v mask bad digit", modified(func(c *Config) { c.Attack.VMask = "G" }), true},
		{"workers negative", modified(func(c *Config) { c.Attack.Workers = -1 }), true},
		{"workers too big", modified(func(c *Config) { c.Attack.Workers = 200 }), true},
		{"bad color mode", modified(func(c *Config) { c.Output.Color = "blue" }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfig_ValidateCollectsAllErrors tests that validation reports
// every broken field, not just the first.
func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Cipher.SBox = "bad"
	cfg.Output.Color = "blue"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	msg := err.Error()
	if !strings.Contains(msg, "cipher.sbox") {
		t.Errorf("Error should name cipher.sbox: %s", msg)
	}
	if !strings.Contains(msg, "output.color") {
		t.Errorf("Error should name output.color: %s", msg)
	}
}

// TestConfig_SetDefaults tests zero-value filling.
func TestConfig_SetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Cipher.SBox == "" {
		t.Error("SetDefaults should fill the sbox")
	}
	if len(cfg.Cipher.Permutation) != 16 {
		t.Error("SetDefaults should fill the permutation")
	}

	// An explicit zero slot is a real setting and must survive.
	cfg2 := Default()
	cfg2.Attack.TargetSlot = 0
	cfg2.SetDefaults()
	if cfg2.Attack.TargetSlot != 0 {
		t.Errorf("SetDefaults clobbered target_slot, got %d", cfg2.Attack.TargetSlot)
	}
}

// TestLoadFromPath tests loading partial and broken files.
func TestLoadFromPath(t *testing.T) {
	clearEnv(t)

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfigFile(t, "[attack]\ntarget_slot = 0\nv_mask = \"2\"\n")

		cfg, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("LoadFromPath failed: %v", err)
		}
		if cfg.Attack.TargetSlot != 0 {
			t.Errorf("target_slot = %d, want 0", cfg.Attack.TargetSlot)
		}
		if cfg.Attack.VMask != "2" {
			t.Errorf("v_mask = %s, want 2", cfg.Attack.VMask)
		}
		if cfg.Cipher.SBox != "E4D12FB83A6C5907" {
			t.Errorf("sbox should keep its default, got %s", cfg.Cipher.SBox)
		}
	})

	t.Run("cipher override", func(t *testing.T) {
		path := writeConfigFile(t, "[cipher]\nsbox = \"0123456789ABCDEF\"\npermute_last_round = true\n")

		cfg, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("LoadFromPath failed: %v", err)
		}
		if cfg.Cipher.SBox != "0123456789ABCDEF" {
			t.Errorf("sbox = %s", cfg.Cipher.SBox)
		}
		if !cfg.Cipher.PermuteLastRound {
			t.Error("permute_last_round should be true")
		}
	})

	t.Run("invalid table is a hard error", func(t *testing.T) {
		path := writeConfigFile(t, "[cipher]\nsbox = \"EEEEEEEEEEEEEEEE\"\n")
		if _, err := LoadFromPath(path); err == nil {
			t.Error("LoadFromPath should fail on a non-bijective sbox")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("LoadFromPath should fail on a missing file")
		}
	})
}

// TestLoad_EnvPath tests the SPNLAB_CONFIG override.
func TestLoad_EnvPath(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "[attack]\nworkers = 2\n")
	t.Setenv("SPNLAB_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Attack.Workers != 2 {
		t.Errorf("workers = %d, want 2", cfg.Attack.Workers)
	}
}

// TestSaveTOML_RoundTrip tests that a saved config loads back equal.
func TestSaveTOML_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	original := Default()
	original.Attack.TargetSlot = 1
	original.Attack.Workers = 4
	if err := SaveTOML(original, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# spnlab configuration file") {
		t.Error("Saved file should start with the header comment")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Config file mode = %o, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Attack.TargetSlot != 1 || loaded.Attack.Workers != 4 {
		t.Errorf("Round trip lost attack settings: %+v", loaded.Attack)
	}
	if loaded.Cipher.SBox != original.Cipher.SBox {
		t.Errorf("Round trip lost sbox: %s", loaded.Cipher.SBox)
	}
}

// TestApplyEnvOverrides tests color and worker overrides.
func TestApplyEnvOverrides(t *testing.T) {
	t.Run("NO_COLOR", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NO_COLOR", "1")
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if cfg.Output.Color != "never" {
			t.Errorf("color = %s, want never", cfg.Output.Color)
		}
	})

	t.Run("FORCE_COLOR", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("FORCE_COLOR", "1")
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if cfg.Output.Color != "always" {
			t.Errorf("color = %s, want always", cfg.Output.Color)
		}
	})

	t.Run("NO_COLOR wins over FORCE_COLOR", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NO_COLOR", "1")
		t.Setenv("FORCE_COLOR", "1")
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if cfg.Output.Color != "never" {
			t.Errorf("color = %s, want never", cfg.Output.Color)
		}
	})

	t.Run("SPNLAB_WORKERS", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SPNLAB_WORKERS", "8")
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if cfg.Attack.Workers != 8 {
			t.Errorf("workers = %d, want 8", cfg.Attack.Workers)
		}
	})

	t.Run("bad SPNLAB_WORKERS ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SPNLAB_WORKERS", "lots")
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if cfg.Attack.Workers != 0 {
			t.Errorf("workers = %d, want 0", cfg.Attack.Workers)
		}
	})
}

// TestBuildCipher tests the typed constructors against a known vector.
func TestBuildCipher(t *testing.T) {
	cfg := Default()

	cipher, err := cfg.BuildCipher()
	if err != nil {
		t.Fatalf("BuildCipher failed: %v", err)
	}
	if got := cipher.EncryptBlock(0xABCD, 0x1234); got != 0x2266 {
		t.Errorf("EncryptBlock(ABCD, 1234) = %04X, want 2266", got)
	}
	if cipher.PermutesLastRound() {
		t.Error("Default cipher should not permute the last round")
	}
}

// TestBuildRelation tests relation construction and mask parsing.
func TestBuildRelation(t *testing.T) {
	cfg := Default()

	rel, err := cfg.BuildRelation()
	if err != nil {
		t.Fatalf("BuildRelation failed: %v", err)
	}
	if rel.PlaintextMask != 0x0033 {
		t.Errorf("plaintext mask = %04X, want 0033", rel.PlaintextMask)
	}
	if rel.TargetSlot != 3 {
		t.Errorf("target slot = %d, want 3", rel.TargetSlot)
	}
	if rel.VMask != 0x9 {
		t.Errorf("v mask = %X, want 9", rel.VMask)
	}

	cfg.Attack.VMask = "0"
	if _, err := cfg.BuildRelation(); err == nil {
		t.Error("BuildRelation should reject a zero v mask")
	}
}

// TestConfig_Clone tests that Clone creates an independent copy.
func TestConfig_Clone(t *testing.T) {
	original := Default()
	clone := original.Clone()

	clone.Version = "cloned"
	clone.Cipher.Permutation[0] = 9

	if original.Version == "cloned" {
		t.Error("Clone should create an independent copy")
	}
	if original.Cipher.Permutation[0] != 0 {
		t.Error("Clone should deep copy the permutation slice")
	}
}

// TestConfig_String tests the debug rendering.
func TestConfig_String(t *testing.T) {
	s := Default().String()

	if !strings.Contains(s, `"sbox": "E4D12FB83A6C5907"`) {
		t.Errorf("String() should render the sbox, got:\n%s", s)
	}
	if !strings.Contains(s, `"plaintext_mask": "0033"`) {
		t.Errorf("String() should render the attack relation, got:\n%s", s)
	}
}
