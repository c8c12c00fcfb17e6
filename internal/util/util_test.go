// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "blocks.hex")
	data := []byte("ABCD1234")

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", string(content), string(data))
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "out", "deep", "blocks.hex")

	if err := AtomicWriteFile(path, []byte("FFFF"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "blocks.hex")

	if err := AtomicWriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "updated" {
		t.Errorf("Content not updated: got %q", string(content))
	}
}

func TestAtomicWriteFile_EmptyData(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "empty.hex")

	if err := AtomicWriteFile(path, []byte{}, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed for empty data: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("File not created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Expected empty file, got size %d", info.Size())
	}
}

func TestAtomicWriteFile_NoTempLeftovers(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "blocks.hex")

	if err := AtomicWriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the target file, found %d entries", len(entries))
	}
}

func TestAtomicWriteFileWithDir(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "private", "config.toml")

	if err := AtomicWriteFileWithDir(path, []byte("data"), 0600, 0700); err != nil {
		t.Fatalf("AtomicWriteFileWithDir failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}

	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Dir not created: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("Dir mode = %o, want 0700", info.Mode().Perm())
	}
}

// =============================================================================
// NUMBER FORMATTING TESTS
// =============================================================================

func TestFormatBias(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{0.042266845703125, "+0.042267"},
		{-0.045013427734375, "-0.045013"},
		{0, "+0.000000"},
		{0.375, "+0.375000"},
		{-0.5, "-0.500000"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if got := FormatBias(tc.input); got != tc.expected {
				t.Errorf("FormatBias(%v) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFormatProbability(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{0.457733154296875, "0.457733"},
		{0.5, "0.500000"},
		{1, "1.000000"},
		{0, "0.000000"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if got := FormatProbability(tc.input); got != tc.expected {
				t.Errorf("FormatProbability(%v) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFormatQuality(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{0.019775390625, "0.019775390625"},
		{0.375, "0.375"},
		{-1, "-1"},
		{0, "0"},
		{math.Inf(1), "+Inf"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if got := FormatQuality(tc.input); got != tc.expected {
				t.Errorf("FormatQuality(%v) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{0.457733154296875, "45.77%"},
		{0.5, "50.00%"},
		{1, "100.00%"},
		{0, "0.00%"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if got := FormatPercent(tc.input); got != tc.expected {
				t.Errorf("FormatPercent(%v) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

// =============================================================================
// WIDTH TESTS
// =============================================================================

func TestStringWidth(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"hello", 5},
		{"", 0},
		{"日本語", 6},
		{"hello世界", 9},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := StringWidth(tc.input); got != tc.expected {
				t.Errorf("StringWidth(%q) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"cjk", "日本語テスト", 8, "日本..."},
		{"tiny budget", "hello", 3, "hel"},
		{"zero", "hello", 0, ""},
		{"empty", "", 5, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateWidth(tc.input, tc.maxWidth)
			if got != tc.expected {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q",
					tc.input, tc.maxWidth, got, tc.expected)
			}
			if tc.maxWidth > 0 && StringWidth(got) > tc.maxWidth {
				t.Errorf("Result %q wider than %d columns", got, tc.maxWidth)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	testCases := []struct {
		input    string
		width    int
		expected string
	}{
		{"ab", 5, "ab   "},
		{"hello", 3, "hello"},
		{"日本", 5, "日本 "},
		{"", 2, "  "},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := PadRight(tc.input, tc.width); got != tc.expected {
				t.Errorf("PadRight(%q, %d) = %q, want %q", tc.input, tc.width, got, tc.expected)
			}
		})
	}
}
