// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// parity.go - Bit-parity helpers for mask algebra

package linear

import "math/bits"

// parity4 returns the XOR of the set bits of a nibble.
func parity4(x uint8) uint8 {
	return uint8(bits.OnesCount8(x) & 1)
}

// parity16 returns the XOR of the set bits of a block.
func parity16(x uint16) uint8 {
	return uint8(bits.OnesCount16(x) & 1)
}
