// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// trail.go - Typed linear-approximation trails and their consistency check

package linear

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/spnlab/internal/spn"
)

// TrailPairs is the number of mask pairs in a trail: one per S-box
// instance across all rounds.
const TrailPairs = spn.Rounds * spn.Slots

// MaskPair is the input and output mask of one S-box instance.
type MaskPair struct {
	In  uint8
	Out uint8
}

// Active reports whether the pair selects any bits at all.
func (m MaskPair) Active() bool {
	return m.In != 0 || m.Out != 0
}

// OneSided reports whether exactly one side of the pair selects bits.
// One-sided boxes always measure bias zero against a bijective table.
func (m MaskPair) OneSided() bool {
	return (m.In == 0) != (m.Out == 0)
}

// Trail holds one mask pair per S-box instance, round-major and
// slot-ascending: index (round-1)*4 + slot, with slot 0 the cipher's
// least-significant nibble. Trails are parsed once from hex and
// consumed structurally from then on.
type Trail struct {
	pairs [TrailPairs]MaskPair
}

// ParseTrail decodes a trail from 32 hex digits: 16 two-digit
// (input mask, output mask) pairs in trail order. Whitespace is
// ignored.
func ParseTrail(hexStr string) (*Trail, error) {
	cleaned := spn.CleanHex(hexStr)
	if len(cleaned) != 2*TrailPairs {
		return nil, spn.NewFormatError("trail", hexStr,
			"want %d hex digits, got %d", 2*TrailPairs, len(cleaned))
	}
	t := &Trail{}
	for i := 0; i < TrailPairs; i++ {
		in, err := strconv.ParseUint(cleaned[2*i:2*i+1], 16, 4)
		if err != nil {
			return nil, spn.NewFormatError("trail", hexStr, "character %d is not a hex digit", 2*i)
		}
		out, err := strconv.ParseUint(cleaned[2*i+1:2*i+2], 16, 4)
		if err != nil {
			return nil, spn.NewFormatError("trail", hexStr, "character %d is not a hex digit", 2*i+1)
		}
		t.pairs[i] = MaskPair{In: uint8(in), Out: uint8(out)}
	}
	return t, nil
}

// NewTrail builds a trail directly from mask pairs in trail order.
func NewTrail(pairs [TrailPairs]MaskPair) *Trail {
	return &Trail{pairs: pairs}
}

// Pair returns the mask pair of the given round (1-based) and slot.
func (t *Trail) Pair(round, slot int) MaskPair {
	return t.pairs[(round-1)*spn.Slots+slot]
}

// setPair is the trail builders' write access.
func (t *Trail) setPair(round, slot int, p MaskPair) {
	t.pairs[(round-1)*spn.Slots+slot] = p
}

// RoundInputs collects a round's four input masks, slot-ascending.
func (t *Trail) RoundInputs(round int) [spn.Slots]uint8 {
	var masks [spn.Slots]uint8
	for slot := 0; slot < spn.Slots; slot++ {
		masks[slot] = t.Pair(round, slot).In
	}
	return masks
}

// RoundOutputs collects a round's four output masks, slot-ascending.
func (t *Trail) RoundOutputs(round int) [spn.Slots]uint8 {
	var masks [spn.Slots]uint8
	for slot := 0; slot < spn.Slots; slot++ {
		masks[slot] = t.Pair(round, slot).Out
	}
	return masks
}

// ActiveCount returns the number of active S-box instances.
func (t *Trail) ActiveCount() int {
	n := 0
	for _, p := range t.pairs {
		if p.Active() {
			n++
		}
	}
	return n
}

// Validate checks mask continuity through the permutation: for every
// round transition, the concatenated output masks pushed through the
// permutation must equal the next round's concatenated input masks,
// bit for bit. Any mismatch invalidates the whole trail.
func (t *Trail) Validate(perm *spn.Permutation) bool {
	for round := 1; round < spn.Rounds; round++ {
		outs := spn.JoinNibbles(t.RoundOutputs(round))
		ins := spn.JoinNibbles(t.RoundInputs(round + 1))
		if perm.Apply(outs) != ins {
			return false
		}
	}
	return true
}

// String renders the trail as 32 uppercase hex digits, the inverse of
// ParseTrail for whitespace-free input.
func (t *Trail) String() string {
	var b strings.Builder
	b.Grow(2 * TrailPairs)
	for _, p := range t.pairs {
		fmt.Fprintf(&b, "%X%X", p.In, p.Out)
	}
	return b.String()
}
