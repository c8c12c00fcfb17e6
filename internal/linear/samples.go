// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// samples.go - Deterministic known-plaintext pair generation

package linear

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"

	"github.com/jeranaias/spnlab/internal/spn"
)

// SamplePairs generates n known-plaintext pairs under the given cipher
// and key. Plaintext blocks are read little-endian from a ChaCha20
// keystream whose nonce carries the seed, so the same seed reproduces
// the same sample set on every platform. Attack experiments against a
// 1/2^7-ish bias want tens of thousands of pairs; RequiredSamples
// gives the estimate.
func SamplePairs(cipher *spn.Cipher, key uint16, n int, seed uint64) (plaintexts, ciphertexts []uint16, err error) {
	if n <= 0 {
		return nil, nil, spn.NewFormatError("samples", "", "pair count must be positive, got %d", n)
	}

	var streamKey [chacha20.KeySize]byte
	for i := range streamKey {
		streamKey[i] = byte(i)
	}
	var nonce [chacha20.NonceSize]byte
	binary.LittleEndian.PutUint64(nonce[:8], seed)

	stream, err := chacha20.NewUnauthenticatedCipher(streamKey[:], nonce[:])
	if err != nil {
		return nil, nil, fmt.Errorf("keystream init: %w", err)
	}
	buf := make([]byte, 2*n)
	stream.XORKeyStream(buf, buf)

	plaintexts = make([]uint16, n)
	ciphertexts = make([]uint16, n)
	for i := 0; i < n; i++ {
		p := binary.LittleEndian.Uint16(buf[2*i:])
		plaintexts[i] = p
		ciphertexts[i] = cipher.EncryptBlock(p, key)
	}
	return plaintexts, ciphertexts, nil
}
