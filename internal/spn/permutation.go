// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// permutation.go - 16-bit bit-position permutation layer

package spn

// Permutation is an immutable bijection over bit positions {0..15}.
// Bit i of the input lands at position mapping[i] of the output. The
// inverse mapping is derived once at construction.
type Permutation struct {
	mapping [BlockBits]uint8
	inverse [BlockBits]uint8
}

// NewPermutation validates mapping as a permutation of bit positions
// and returns the constructed layer.
func NewPermutation(mapping [BlockBits]uint8) (*Permutation, error) {
	var seen [BlockBits]bool
	for i, p := range mapping {
		if int(p) >= BlockBits {
			return nil, NewConfigurationError("permutation", "entry %d is %d, want a bit position 0-15", i, p)
		}
		if seen[p] {
			return nil, NewConfigurationError("permutation", "bit position %d appears more than once", p)
		}
		seen[p] = true
	}
	pm := &Permutation{mapping: mapping}
	for i, p := range mapping {
		pm.inverse[p] = uint8(i)
	}
	return pm, nil
}

// Apply moves every set bit i of block to position mapping[i].
func (p *Permutation) Apply(block uint16) uint16 {
	var out uint16
	for i := 0; i < BlockBits; i++ {
		if block&(1<<uint(i)) != 0 {
			out |= 1 << uint(p.mapping[i])
		}
	}
	return out
}

// ApplyInverse undoes Apply.
func (p *Permutation) ApplyInverse(block uint16) uint16 {
	var out uint16
	for i := 0; i < BlockBits; i++ {
		if block&(1<<uint(i)) != 0 {
			out |= 1 << uint(p.inverse[i])
		}
	}
	return out
}

// Mapping returns a copy of the forward bit mapping.
func (p *Permutation) Mapping() [BlockBits]uint8 {
	return p.mapping
}
