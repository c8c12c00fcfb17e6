// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package spn

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heysTable is the classroom substitution table used throughout the
// test suite: 0->E, 1->4, 2->D, 3->1, 4->2, 5->F, 6->B, 7->8, 8->3,
// 9->A, A->6, B->C, C->5, D->9, E->0, F->7.
const heysTableHex = "E4D12FB83A6C5907"

func mustSBox(t *testing.T) *SBox {
	t.Helper()
	s, err := ParseSBox(heysTableHex)
	require.NoError(t, err)
	return s
}

func TestParseSBoxDefaultTable(t *testing.T) {
	s := mustSBox(t)

	wants := map[uint8]uint8{
		0x0: 0xE, 0x1: 0x4, 0x2: 0xD, 0x3: 0x1,
		0x4: 0x2, 0x5: 0xF, 0x6: 0xB, 0x7: 0x8,
		0x8: 0x3, 0x9: 0xA, 0xA: 0x6, 0xB: 0xC,
		0xC: 0x5, 0xD: 0x9, 0xE: 0x0, 0xF: 0x7,
	}
	for in, want := range wants {
		assert.Equal(t, want, s.Substitute(in), "substitute(%X)", in)
	}
	assert.Equal(t, heysTableHex, s.String())
}

func TestParseSBoxIgnoresWhitespace(t *testing.T) {
	s, err := ParseSBox("E4D1 2FB8\n3A6C 5907")
	require.NoError(t, err)
	assert.Equal(t, heysTableHex, s.String())
}

func TestSBoxInvertRoundTrip(t *testing.T) {
	s := mustSBox(t)
	for n := uint8(0); n < 16; n++ {
		assert.Equal(t, n, s.Invert(s.Substitute(n)), "invert(substitute(%X))", n)
		assert.Equal(t, n, s.Substitute(s.Invert(n)), "substitute(invert(%X))", n)
	}
}

func TestNewSBoxAcceptsRotations(t *testing.T) {
	// Every cyclic shift of the identity is a bijection and must pass.
	for shift := 0; shift < 16; shift++ {
		var table [SBoxSize]uint8
		for i := range table {
			table[i] = uint8((i + shift) % 16)
		}
		_, err := NewSBox(table)
		require.NoError(t, err, "shift %d", shift)
	}
}

func TestNewSBoxRejectsDuplicates(t *testing.T) {
	table := [SBoxSize]uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 14}
	_, err := NewSBox(table)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "sbox", cfgErr.Field)
}

func TestNewSBoxRejectsOutOfRange(t *testing.T) {
	table := [SBoxSize]uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 16}
	_, err := NewSBox(table)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestParseSBoxRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too short", "E4D12FB83A6C590"},
		{"too long", "E4D12FB83A6C59070"},
		{"empty", ""},
		{"non-hex character", "E4D12FB83A6C590G"},
		{"duplicate digit", "E4D12FB83A6C5900"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSBox(tc.in)
			require.Error(t, err)
		})
	}
}

func TestSubstituteBlock(t *testing.T) {
	s := mustSBox(t)

	// 0x1234 nibble-wise: slot0 4->2, slot1 3->1, slot2 2->D, slot3 1->4.
	assert.Equal(t, uint16(0x4D12), s.SubstituteBlock(0x1234))
	assert.Equal(t, uint16(0x1234), s.InvertBlock(0x4D12))

	for _, block := range []uint16{0x0000, 0xFFFF, 0xABCD, 0x8001} {
		assert.Equal(t, block, s.InvertBlock(s.SubstituteBlock(block)), "block %04X", block)
	}
}

func TestSBoxTableReturnsCopy(t *testing.T) {
	s := mustSBox(t)
	table := s.Table()
	table[0] = 0
	assert.Equal(t, uint8(0xE), s.Substitute(0), "mutating the copy must not affect the S-box")
}

func TestNibbleHelpers(t *testing.T) {
	block := uint16(0xABCD)
	assert.Equal(t, uint8(0xD), NibbleAt(block, 0))
	assert.Equal(t, uint8(0xC), NibbleAt(block, 1))
	assert.Equal(t, uint8(0xB), NibbleAt(block, 2))
	assert.Equal(t, uint8(0xA), NibbleAt(block, 3))

	assert.Equal(t, block, JoinNibbles(SplitNibbles(block)))
}

func ExampleSBox_Substitute() {
	s, _ := ParseSBox("E4D12FB83A6C5907")
	fmt.Printf("%X\n", s.Substitute(0x0))
	// Output: E
}
