// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// encrypt_cmd.go - ECB hex stream encryption and decryption commands.
//
// Command: encrypt <input-file> <key-hex> <output-file>
// Command: decrypt <input-file> <key-hex> <output-file>
// Aliases: enc, dec
//
// Input files hold concatenated 4-digit hex blocks, whitespace
// ignored. The key is 4 hex digits. Output is written atomically.
//
// Examples:
//   spnlab encrypt message.hex 1234 message.enc
//   spnlab decrypt message.enc 1234 message.dec
//   spnlab encrypt message.hex 1234 out.hex --json

package cli

import (
	"fmt"

	"github.com/jeranaias/spnlab/internal/hexio"
	"github.com/jeranaias/spnlab/internal/spn"
)

// HandleEncrypt handles the "encrypt" command.
func HandleEncrypt(args Args) error {
	return runCodec(args, "encrypt", func(c *spn.Cipher, b, key uint16) uint16 {
		return c.EncryptBlock(b, key)
	})
}

// HandleDecrypt handles the "decrypt" command.
func HandleDecrypt(args Args) error {
	return runCodec(args, "decrypt", func(c *spn.Cipher, b, key uint16) uint16 {
		return c.DecryptBlock(b, key)
	})
}

// runCodec is the shared body of encrypt and decrypt: same argument
// surface, same stream handling, one block operation swapped.
func runCodec(args Args, name string, op func(c *spn.Cipher, b, key uint16) uint16) error {
	parser := NewArgParser(args.Raw)
	if parser.PositionalCount() != 3 {
		return NewUsageError(name, "expected <input-file> <key-hex> <output-file>")
	}
	inputPath := parser.Positional(0)
	keyHex := parser.Positional(1)
	outputPath := parser.Positional(2)

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	cipher, err := cfg.BuildCipher()
	if err != nil {
		return err
	}
	key, err := spn.ParseKey(keyHex)
	if err != nil {
		return err
	}

	return OutputJSON(args.JSON, name, func() (interface{}, error) {
		blocks, err := hexio.ReadBlocks(inputPath)
		if err != nil {
			return nil, err
		}
		out := make([]uint16, len(blocks))
		for i, b := range blocks {
			out[i] = op(cipher, b, key)
		}
		if err := hexio.WriteBlocks(outputPath, out); err != nil {
			return nil, err
		}

		if !args.JSON && !args.Quiet {
			fmt.Printf("%s %s\n",
				SuccessStyle.Render(fmt.Sprintf("%sed %d blocks:", name, len(out))),
				ValueStyle.Render(outputPath))
		}
		return CodecData{
			Input:  inputPath,
			Output: outputPath,
			Blocks: len(out),
		}, nil
	})
}
