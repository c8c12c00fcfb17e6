// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// hex.go - Hex parsing and formatting for keys and block streams

package spn

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// hexDigitsPerBlock is the width of one 16-bit block in hex text.
const hexDigitsPerBlock = BlockBits / 4

// CleanHex strips all whitespace from a hex string. Every textual
// interface of the toolkit is whitespace-tolerant, so line breaks in
// data files do not change their meaning.
func CleanHex(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseKey parses a 16-bit round key from 4 hex digits.
func ParseKey(s string) (uint16, error) {
	cleaned := CleanHex(s)
	if len(cleaned) != hexDigitsPerBlock {
		return 0, NewFormatError("key", s, "want %d hex digits, got %d", hexDigitsPerBlock, len(cleaned))
	}
	v, err := strconv.ParseUint(cleaned, 16, BlockBits)
	if err != nil {
		return 0, NewFormatError("key", s, "not valid hexadecimal")
	}
	return uint16(v), nil
}

// ParseNibble parses a single hex digit into a 4-bit value.
func ParseNibble(field, s string) (uint8, error) {
	cleaned := CleanHex(s)
	if len(cleaned) != 1 {
		return 0, NewFormatError(field, s, "want 1 hex digit, got %d", len(cleaned))
	}
	v, err := strconv.ParseUint(cleaned, 16, NibbleBits)
	if err != nil {
		return 0, NewFormatError(field, s, "not a hex digit")
	}
	return uint8(v), nil
}

// ParseBlocks splits a hex stream into 16-bit blocks. The cleaned
// stream length must be a multiple of 4 hex digits; an empty stream
// yields an empty slice.
func ParseBlocks(s string) ([]uint16, error) {
	cleaned := CleanHex(s)
	if len(cleaned)%hexDigitsPerBlock != 0 {
		return nil, NewFormatError("block stream", "",
			"length %d is not a multiple of %d hex digits", len(cleaned), hexDigitsPerBlock)
	}
	blocks := make([]uint16, 0, len(cleaned)/hexDigitsPerBlock)
	for i := 0; i < len(cleaned); i += hexDigitsPerBlock {
		chunk := cleaned[i : i+hexDigitsPerBlock]
		v, err := strconv.ParseUint(chunk, 16, BlockBits)
		if err != nil {
			return nil, NewFormatError("block stream", chunk,
				"block %d is not valid hexadecimal", i/hexDigitsPerBlock)
		}
		blocks = append(blocks, uint16(v))
	}
	return blocks, nil
}

// FormatBlocks renders blocks as concatenated 4-digit uppercase hex,
// the inverse of ParseBlocks for whitespace-free input.
func FormatBlocks(blocks []uint16) string {
	var b strings.Builder
	b.Grow(len(blocks) * hexDigitsPerBlock)
	for _, blk := range blocks {
		fmt.Fprintf(&b, "%04X", blk)
	}
	return b.String()
}
