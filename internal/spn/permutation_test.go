// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package spn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heysMapping is the classroom bit transposition: bit i of the input
// moves to position heysMapping[i], i.e. bit 4r+s lands at 4s+r.
var heysMapping = [BlockBits]uint8{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}

func mustPermutation(t *testing.T) *Permutation {
	t.Helper()
	p, err := NewPermutation(heysMapping)
	require.NoError(t, err)
	return p
}

func TestPermutationApply(t *testing.T) {
	p := mustPermutation(t)

	tests := []struct {
		name string
		in   uint16
		want uint16
	}{
		{"zero", 0x0000, 0x0000},
		{"all ones", 0xFFFF, 0xFFFF},
		{"bit 0 fixed", 0x0001, 0x0001},
		{"bit 1 to bit 4", 0x0002, 0x0010},
		{"top nibble spreads", 0xF000, 0x8888},
		{"low nibble spreads", 0x000F, 0x1111},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Apply(tc.in))
		})
	}
}

func TestPermutationInverseUndoesApply(t *testing.T) {
	p := mustPermutation(t)
	for block := 0; block < 1<<BlockBits; block += 97 {
		b := uint16(block)
		assert.Equal(t, b, p.ApplyInverse(p.Apply(b)), "block %04X", b)
		assert.Equal(t, b, p.Apply(p.ApplyInverse(b)), "block %04X", b)
	}
}

func TestPermutationIsSelfInverseForThisMapping(t *testing.T) {
	// The classroom transposition is an involution: swapping bit (4r+s)
	// with bit (4s+r) twice restores the input.
	p := mustPermutation(t)
	for _, b := range []uint16{0x0001, 0x8421, 0xDEAD, 0xF0F0} {
		assert.Equal(t, b, p.Apply(p.Apply(b)), "block %04X", b)
	}
}

func TestNewPermutationRejectsDuplicate(t *testing.T) {
	m := heysMapping
	m[15] = m[0]
	_, err := NewPermutation(m)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "permutation", cfgErr.Field)
}

func TestNewPermutationRejectsOutOfRange(t *testing.T) {
	m := heysMapping
	m[3] = 16
	_, err := NewPermutation(m)
	require.Error(t, err)
}

func TestPermutationMappingReturnsCopy(t *testing.T) {
	p := mustPermutation(t)
	m := p.Mapping()
	m[0] = 9
	assert.Equal(t, uint16(0x0001), p.Apply(0x0001), "mutating the copy must not affect the layer")
}
