// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package spn implements a small substitution-permutation-network block
cipher over 16-bit blocks, sized for cryptanalysis exercises rather
than real-world protection.

The cipher runs four rounds of XOR-with-key, nibble-wise S-box
substitution, and a bit permutation, followed by a final key whitening.
The same 16-bit key is used in every round; there is no key schedule.
Whether the permutation also runs in the final round is a construction
option, since textbook presentations disagree, and decryption mirrors
whichever choice was made.

# Components

  - SBox: immutable bijective 4-bit lookup table with a precomputed
    inverse. Construction rejects non-bijective tables.
  - Permutation: immutable 16-bit bit-position permutation with its
    inverse, validated the same way.
  - Cipher: the round composition, single-block encrypt/decrypt, ECB
    hex-stream helpers, and the partial last-round inversion used by
    the linear attack.

All values are plain integers and lookups; nothing in this package
performs I/O or holds mutable state after construction.

# Bit conventions

Bits are numbered from the least-significant end. Nibble slot i of a
block occupies bits 4i..4i+3, so slot 0 is the low nibble. A
permutation maps bit i of its input to bit mapping[i] of its output.
*/
package spn
