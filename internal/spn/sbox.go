// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sbox.go - Bijective 4-bit substitution box with precomputed inverse

package spn

import (
	"fmt"
	"strconv"
	"strings"
)

// SBoxSize is the number of entries in a 4-bit substitution table.
const SBoxSize = 16

// SBox is an immutable bijective substitution table over {0..15}. The
// inverse table is computed once at construction so that decryption and
// the attack's partial inversion are plain lookups.
type SBox struct {
	table   [SBoxSize]uint8
	inverse [SBoxSize]uint8
}

// NewSBox validates table as a permutation of {0..15} and returns the
// constructed S-box. Non-bijective tables fail with a
// ConfigurationError naming the first offending entry.
func NewSBox(table [SBoxSize]uint8) (*SBox, error) {
	var seen [SBoxSize]bool
	for i, v := range table {
		if v >= SBoxSize {
			return nil, NewConfigurationError("sbox", "entry %d is %d, want a nibble 0-15", i, v)
		}
		if seen[v] {
			return nil, NewConfigurationError("sbox", "value %X appears more than once", v)
		}
		seen[v] = true
	}
	s := &SBox{table: table}
	for i, v := range table {
		s.inverse[v] = uint8(i)
	}
	return s, nil
}

// ParseSBox builds an S-box from 16 hex digits, where digit i is the
// substitution output for input nibble i. Whitespace is ignored.
func ParseSBox(hexStr string) (*SBox, error) {
	cleaned := CleanHex(hexStr)
	if len(cleaned) != SBoxSize {
		return nil, NewFormatError("sbox", hexStr, "want %d hex digits, got %d", SBoxSize, len(cleaned))
	}
	var table [SBoxSize]uint8
	for i := 0; i < SBoxSize; i++ {
		v, err := strconv.ParseUint(cleaned[i:i+1], 16, NibbleBits)
		if err != nil {
			return nil, NewFormatError("sbox", hexStr, "character %d is not a hex digit", i)
		}
		table[i] = uint8(v)
	}
	return NewSBox(table)
}

// Substitute maps a single nibble through the table.
func (s *SBox) Substitute(nibble uint8) uint8 {
	return s.table[nibble&0xF]
}

// Invert maps a single nibble through the precomputed inverse table.
func (s *SBox) Invert(nibble uint8) uint8 {
	return s.inverse[nibble&0xF]
}

// SubstituteBlock applies the table to each of the four block nibbles
// independently.
func (s *SBox) SubstituteBlock(block uint16) uint16 {
	var out uint16
	for slot := 0; slot < Slots; slot++ {
		out |= uint16(s.table[NibbleAt(block, slot)]) << (uint(slot) * NibbleBits)
	}
	return out
}

// InvertBlock applies the inverse table to each block nibble.
func (s *SBox) InvertBlock(block uint16) uint16 {
	var out uint16
	for slot := 0; slot < Slots; slot++ {
		out |= uint16(s.inverse[NibbleAt(block, slot)]) << (uint(slot) * NibbleBits)
	}
	return out
}

// Table returns a copy of the substitution table.
func (s *SBox) Table() [SBoxSize]uint8 {
	return s.table
}

// String renders the table as 16 uppercase hex digits in input order,
// the inverse of ParseSBox.
func (s *SBox) String() string {
	var b strings.Builder
	b.Grow(SBoxSize)
	for _, v := range s.table {
		fmt.Fprintf(&b, "%X", v)
	}
	return b.String()
}
