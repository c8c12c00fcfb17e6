// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// relation.go - The attack's configurable linear relation

package linear

import (
	"fmt"

	"github.com/jeranaias/spnlab/internal/spn"
)

// Relation is the linear approximation the attack counts: a parity
// over plaintext bits XORed with a parity over bits of the partially
// decrypted last-round S-box input at one slot. Which bits these are
// is configuration, not code; the bias a relation achieves is a
// property of the configured S-box and must be measured, not assumed.
type Relation struct {
	// PlaintextMask selects the plaintext bits entering the parity.
	PlaintextMask uint16
	// TargetSlot is the ciphertext nibble whose key nibble is attacked.
	TargetSlot int
	// VMask selects bits of the recovered last-round S-box input.
	VMask uint8
}

// Validate rejects relations that cannot distinguish anything: both
// parities must select at least one bit and the slot must exist.
func (r Relation) Validate() error {
	if r.TargetSlot < 0 || r.TargetSlot >= spn.Slots {
		return spn.NewConfigurationError("relation", "target slot %d out of range 0-%d", r.TargetSlot, spn.Slots-1)
	}
	if r.PlaintextMask == 0 {
		return spn.NewConfigurationError("relation", "plaintext mask selects no bits")
	}
	if r.VMask == 0 || r.VMask > 0xF {
		return spn.NewConfigurationError("relation", "v mask must be a nonzero nibble, got %#X", r.VMask)
	}
	return nil
}

// Bit evaluates the relation for one plaintext and one recovered
// last-round S-box input nibble, returning the approximation's parity
// bit. The attack tallies how often this is zero.
func (r Relation) Bit(plaintext uint16, v uint8) uint8 {
	return parity16(plaintext&r.PlaintextMask) ^ parity4(v&r.VMask)
}

// KeyNibble extracts the key nibble this relation's attack recovers.
func (r Relation) KeyNibble(key uint16) uint8 {
	return spn.NibbleAt(key, r.TargetSlot)
}

// String renders the relation compactly for logs and result headers.
func (r Relation) String() string {
	return fmt.Sprintf("P&%04X ^ V&%X @ slot %d", r.PlaintextMask, r.VMask, r.TargetSlot)
}
