// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/spnlab/internal/spn"
)

const heysTableHex = "E4D12FB83A6C5907"

var heysMapping = [spn.BlockBits]uint8{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}

// goodTrailHex is a consistent trail whose seven active boxes all
// carry nonzero bias; used across the quality tests.
const goodTrailHex = "39390000390000399800009800000098"

func testSBox(t *testing.T) *spn.SBox {
	t.Helper()
	s, err := spn.ParseSBox(heysTableHex)
	require.NoError(t, err)
	return s
}

func testPermutation(t *testing.T) *spn.Permutation {
	t.Helper()
	p, err := spn.NewPermutation(heysMapping)
	require.NoError(t, err)
	return p
}

func testCipher(t *testing.T) *spn.Cipher {
	t.Helper()
	return spn.NewCipher(testSBox(t), testPermutation(t), false)
}

func TestParseTrailLayout(t *testing.T) {
	trail, err := ParseTrail(goodTrailHex)
	require.NoError(t, err)

	assert.Equal(t, MaskPair{In: 3, Out: 9}, trail.Pair(1, 0))
	assert.Equal(t, MaskPair{In: 3, Out: 9}, trail.Pair(1, 1))
	assert.Equal(t, MaskPair{}, trail.Pair(1, 2))
	assert.Equal(t, MaskPair{In: 3, Out: 9}, trail.Pair(2, 3))
	assert.Equal(t, MaskPair{In: 9, Out: 8}, trail.Pair(3, 0))
	assert.Equal(t, MaskPair{In: 9, Out: 8}, trail.Pair(4, 3))

	assert.Equal(t, 7, trail.ActiveCount())
	assert.Equal(t, goodTrailHex, trail.String())
}

func TestParseTrailIgnoresWhitespace(t *testing.T) {
	trail, err := ParseTrail("39390000 39000039\n98000098 00000098")
	require.NoError(t, err)
	assert.Equal(t, goodTrailHex, trail.String())
}

func TestParseTrailRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too short", "3939"},
		{"31 digits", goodTrailHex[:31]},
		{"33 digits", goodTrailHex + "0"},
		{"non-hex", "3939000039000039980000980000009G"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTrail(tc.in)
			require.Error(t, err)
			var fmtErr *spn.FormatError
			assert.ErrorAs(t, err, &fmtErr)
		})
	}
}

func TestTrailValidate(t *testing.T) {
	perm := testPermutation(t)

	tests := []struct {
		name  string
		trail string
		valid bool
	}{
		{"all inactive", "00000000000000000000000000000000", true},
		{"seven-box trail", goodTrailHex, true},
		{"round 3 feeds round 4", "00000000000000000100000017000000", true},
		{"round 4 appears from nowhere", "00000000000000000000000017000000", false},
		{"round 1 output goes nowhere", "17000000000000000000000000000000", false},
		{"self-loop masks do not connect", "11000000000000000000000000000000", false},
		{"output mask zero connects", "10000000000000000000000000000000", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trail, err := ParseTrail(tc.trail)
			require.NoError(t, err)
			assert.Equal(t, tc.valid, trail.Validate(perm))
		})
	}
}

func TestRoundMaskAccessors(t *testing.T) {
	trail, err := ParseTrail(goodTrailHex)
	require.NoError(t, err)

	assert.Equal(t, [spn.Slots]uint8{3, 3, 0, 0}, trail.RoundInputs(1))
	assert.Equal(t, [spn.Slots]uint8{9, 9, 0, 0}, trail.RoundOutputs(1))
	assert.Equal(t, [spn.Slots]uint8{0, 0, 0, 9}, trail.RoundInputs(4))
	assert.Equal(t, [spn.Slots]uint8{0, 0, 0, 8}, trail.RoundOutputs(4))
}

func TestMaskPairPredicates(t *testing.T) {
	assert.False(t, MaskPair{}.Active())
	assert.True(t, MaskPair{In: 1}.Active())
	assert.True(t, MaskPair{In: 1}.OneSided())
	assert.True(t, MaskPair{Out: 7}.OneSided())
	assert.False(t, MaskPair{In: 1, Out: 7}.OneSided())
	assert.False(t, MaskPair{}.OneSided())
}
