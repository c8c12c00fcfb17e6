// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cipher.go - 4-round SPN block cipher with ECB hex streams

package spn

// Cipher is the 4-round substitution-permutation network. The same
// 16-bit key is XORed into the state in every round and once more as
// final whitening; there is no key schedule. Rounds 1-3 always end
// with the bit permutation; whether round 4 does too is a construction
// option, and decryption mirrors whichever choice was made.
type Cipher struct {
	sbox        *SBox
	perm        *Permutation
	permuteLast bool
}

// NewCipher assembles a cipher from validated components.
func NewCipher(sbox *SBox, perm *Permutation, permuteLastRound bool) *Cipher {
	return &Cipher{sbox: sbox, perm: perm, permuteLast: permuteLastRound}
}

// SBox returns the cipher's substitution box.
func (c *Cipher) SBox() *SBox {
	return c.sbox
}

// Permutation returns the cipher's bit permutation.
func (c *Cipher) Permutation() *Permutation {
	return c.perm
}

// PermutesLastRound reports whether round 4 ends with the permutation.
func (c *Cipher) PermutesLastRound() bool {
	return c.permuteLast
}

// EncryptBlock enciphers one 16-bit block. For a fixed key this is a
// bijection over the block space.
func (c *Cipher) EncryptBlock(plaintext, key uint16) uint16 {
	state := plaintext
	for round := 1; round <= Rounds; round++ {
		state ^= key
		state = c.sbox.SubstituteBlock(state)
		if round < Rounds || c.permuteLast {
			state = c.perm.Apply(state)
		}
	}
	return state ^ key
}

// DecryptBlock inverts EncryptBlock exactly: undo the whitening, then
// run the rounds backwards with the inverse permutation and inverse
// S-box.
func (c *Cipher) DecryptBlock(ciphertext, key uint16) uint16 {
	state := ciphertext ^ key
	for round := Rounds; round >= 1; round-- {
		if round < Rounds || c.permuteLast {
			state = c.perm.ApplyInverse(state)
		}
		state = c.sbox.InvertBlock(state)
		state ^= key
	}
	return state
}

// EncryptHex enciphers a whitespace-tolerant stream of 4-hex-digit
// blocks in ECB mode: every block is processed independently, with no
// chaining or IV.
func (c *Cipher) EncryptHex(data, keyHex string) (string, error) {
	key, err := ParseKey(keyHex)
	if err != nil {
		return "", err
	}
	blocks, err := ParseBlocks(data)
	if err != nil {
		return "", err
	}
	out := make([]uint16, len(blocks))
	for i, b := range blocks {
		out[i] = c.EncryptBlock(b, key)
	}
	return FormatBlocks(out), nil
}

// DecryptHex is the ECB inverse of EncryptHex.
func (c *Cipher) DecryptHex(data, keyHex string) (string, error) {
	key, err := ParseKey(keyHex)
	if err != nil {
		return "", err
	}
	blocks, err := ParseBlocks(data)
	if err != nil {
		return "", err
	}
	out := make([]uint16, len(blocks))
	for i, b := range blocks {
		out[i] = c.DecryptBlock(b, key)
	}
	return FormatBlocks(out), nil
}

// PartialInvertLastRound recovers the final-round S-box input of one
// ciphertext nibble under a key-nibble guess. With the final whitening,
// each ciphertext nibble is S(v) ^ k for its slot's key nibble k, so
// guessing k as g gives v = S^-1(c ^ g). Only meaningful when the
// last-round permutation is disabled; the attack layer enforces that.
func (c *Cipher) PartialInvertLastRound(ciphertextNibble, guess uint8) uint8 {
	return c.sbox.Invert(ciphertextNibble ^ guess)
}
