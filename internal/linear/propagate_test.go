// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/spnlab/internal/spn"
)

func TestPropagateForward(t *testing.T) {
	perm := testPermutation(t)

	tests := []struct {
		name string
		in   [spn.Slots]uint8
		want [spn.Slots]uint8
	}{
		{"inactive", [spn.Slots]uint8{0, 0, 0, 0}, [spn.Slots]uint8{0, 0, 0, 0}},
		{"single slot spreads", [spn.Slots]uint8{0xF, 0, 0, 0}, [spn.Slots]uint8{1, 1, 1, 1}},
		{"two bits", [spn.Slots]uint8{0x9, 0, 0, 0}, [spn.Slots]uint8{1, 0, 0, 1}},
		{"all bits", [spn.Slots]uint8{0xF, 0xF, 0xF, 0xF}, [spn.Slots]uint8{0xF, 0xF, 0xF, 0xF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PropagateForward(perm, tt.in))
		})
	}
}

func TestPropagateBackwardUndoesForward(t *testing.T) {
	perm := testPermutation(t)

	for joined := 0; joined <= 0xFFFF; joined += 251 {
		masks := spn.SplitNibbles(uint16(joined))
		forward := PropagateForward(perm, masks)
		assert.Equal(t, masks, PropagateBackward(perm, forward), "masks %04X", joined)
	}
}

func TestDeriveForward(t *testing.T) {
	perm := testPermutation(t)

	trail, err := DeriveForward(perm, 0, MaskPair{In: 0x3, Out: 0x9})
	require.NoError(t, err)

	assert.Equal(t, MaskPair{In: 0x3, Out: 0x9}, trail.Pair(1, 0))
	assert.Equal(t, MaskPair{In: 0x1}, trail.Pair(2, 0))
	assert.Equal(t, MaskPair{}, trail.Pair(2, 1))
	assert.Equal(t, MaskPair{}, trail.Pair(2, 2))
	assert.Equal(t, MaskPair{In: 0x1}, trail.Pair(2, 3))
	assert.Equal(t, "39000000100000100000000000000000", trail.String())

	assert.True(t, trail.Validate(perm))

	// Round 2 boxes carry input masks only, so the chain contributes
	// no bias even though it is consistent.
	s := testSBox(t)
	assert.Equal(t, 0.0, TrailQuality(trail, s, perm))
}

func TestDeriveBackward(t *testing.T) {
	perm := testPermutation(t)

	trail, err := DeriveBackward(perm, 0, MaskPair{In: 0x9, Out: 0x8})
	require.NoError(t, err)

	assert.Equal(t, MaskPair{In: 0x9, Out: 0x8}, trail.Pair(4, 0))
	assert.Equal(t, MaskPair{Out: 0x1}, trail.Pair(3, 0))
	assert.Equal(t, MaskPair{}, trail.Pair(3, 1))
	assert.Equal(t, MaskPair{}, trail.Pair(3, 2))
	assert.Equal(t, MaskPair{Out: 0x1}, trail.Pair(3, 3))
	assert.Equal(t, "00000000000000000100000198000000", trail.String())

	assert.True(t, trail.Validate(perm))
}

func TestDeriveSlotOutOfRange(t *testing.T) {
	perm := testPermutation(t)

	for _, slot := range []int{-1, 4, 99} {
		_, err := DeriveForward(perm, slot, MaskPair{In: 1, Out: 1})
		var confErr *spn.ConfigurationError
		require.ErrorAs(t, err, &confErr, "forward slot %d", slot)

		_, err = DeriveBackward(perm, slot, MaskPair{In: 1, Out: 1})
		require.ErrorAs(t, err, &confErr, "backward slot %d", slot)
	}
}
