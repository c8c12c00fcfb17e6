// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// propagate.go - Mask propagation through the permutation and trail builders

package linear

import (
	"github.com/jeranaias/spnlab/internal/spn"
)

// PropagateForward carries one round's four output masks through the
// permutation into the next round's input masks.
func PropagateForward(perm *spn.Permutation, outMasks [spn.Slots]uint8) [spn.Slots]uint8 {
	return spn.SplitNibbles(perm.Apply(spn.JoinNibbles(outMasks)))
}

// PropagateBackward recovers the previous round's output masks from a
// round's input masks.
func PropagateBackward(perm *spn.Permutation, inMasks [spn.Slots]uint8) [spn.Slots]uint8 {
	return spn.SplitNibbles(perm.ApplyInverse(spn.JoinNibbles(inMasks)))
}

// DeriveForward builds a consistency-valid trail from a single round-1
// approximation at the given slot: its output mask is pushed through
// the permutation into round 2's input masks and all later rounds stay
// inactive. The result always validates, but it scores zero quality
// because the round-2 boxes are one-sided; it demonstrates mask
// continuity rather than a usable bias.
func DeriveForward(perm *spn.Permutation, slot int, pair MaskPair) (*Trail, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	t := &Trail{}
	t.setPair(1, slot, pair)

	round2 := PropagateForward(perm, t.RoundOutputs(1))
	for s := 0; s < spn.Slots; s++ {
		t.setPair(2, s, MaskPair{In: round2[s]})
	}
	return t, nil
}

// DeriveBackward is the mirror image: a single round-4 approximation's
// input mask is pulled backwards through the permutation into round
// 3's output masks, with rounds 1 and 2 inactive.
func DeriveBackward(perm *spn.Permutation, slot int, pair MaskPair) (*Trail, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	t := &Trail{}
	t.setPair(spn.Rounds, slot, pair)

	round3 := PropagateBackward(perm, t.RoundInputs(spn.Rounds))
	for s := 0; s < spn.Slots; s++ {
		t.setPair(spn.Rounds-1, s, MaskPair{Out: round3[s]})
	}
	return t, nil
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= spn.Slots {
		return spn.NewConfigurationError("slot", "slot %d out of range 0-%d", slot, spn.Slots-1)
	}
	return nil
}
