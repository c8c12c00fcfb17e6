// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package linear implements linear cryptanalysis of the spn package's
cipher: approximation trails and their Piling-up Lemma quality, the
S-box linear approximation table, and a known-plaintext attack that
recovers one key nibble from empirical bias measurements.

# Trails

A trail assigns every S-box instance of the cipher (4 rounds x 4
slots) an input and output mask. A trail is consistent when each
round's concatenated output masks, pushed through the bit permutation,
equal the next round's concatenated input masks. Consistent trails are
scored with the Piling-up Lemma: quality = 2^(n-1) * product of the n
active boxes' biases. An inconsistent trail scores the sentinel
InvalidTrailQuality, which callers must distinguish from a legitimate
zero.

# Attack

The attack evaluates a configurable linear relation, a parity over
plaintext bits XORed with a parity over bits of the partially
decrypted last-round S-box input, for every key-nibble guess across a
set of known plaintext/ciphertext pairs. Guesses are ranked by the
magnitude of their empirical bias; the correct nibble surfaces because
only it makes the relation's bias survive the final round. Bias values
here are measured, never assumed from theory.
*/
package linear
