// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package hexio reads and writes hex block stream files. Files hold
// concatenated 4-digit blocks with arbitrary whitespace; writes go
// through the atomic writer so a crashed run never leaves a torn
// output file.
package hexio

import (
	"fmt"
	"os"

	"github.com/jeranaias/spnlab/internal/spn"
	"github.com/jeranaias/spnlab/internal/util"
)

// ReadBlocks loads a hex block stream file. Missing files surface the
// underlying fs error for the caller to classify; malformed content
// surfaces a format error naming the file.
func ReadBlocks(path string) ([]uint16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	blocks, err := spn.ParseBlocks(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return blocks, nil
}

// WriteBlocks writes blocks as one line of concatenated 4-digit hex
// followed by a newline.
func WriteBlocks(path string, blocks []uint16) error {
	data := []byte(spn.FormatBlocks(blocks) + "\n")
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
