// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// block.go - 16-bit block layout shared across the package

package spn

// Block layout constants. A block is a uint16 split into four 4-bit
// S-box slots, slot 0 being the least-significant nibble.
const (
	BlockBits  = 16
	NibbleBits = 4
	Slots      = BlockBits / NibbleBits
	Rounds     = 4
)

// NibbleAt extracts slot (0..3) of block.
func NibbleAt(block uint16, slot int) uint8 {
	return uint8(block>>(uint(slot)*NibbleBits)) & 0xF
}

// JoinNibbles assembles a block from four slot values, slot 0 lowest.
func JoinNibbles(nibbles [Slots]uint8) uint16 {
	var block uint16
	for slot, n := range nibbles {
		block |= uint16(n&0xF) << (uint(slot) * NibbleBits)
	}
	return block
}

// SplitNibbles breaks a block into its four slot values.
func SplitNibbles(block uint16) [Slots]uint8 {
	var nibbles [Slots]uint8
	for slot := range nibbles {
		nibbles[slot] = NibbleAt(block, slot)
	}
	return nibbles
}
