// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for spnlab.
//
// This package implements all spnlab commands, from the block cipher
// codecs through the linear cryptanalysis tools, in both human-readable
// and machine-readable (--json) modes.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed global flags shared by every command
//   - ArgParser: Per-command flag and positional argument parsing
//
// # Usage
//
// Parse and dispatch commands:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdEncrypt:
//	    err = cli.HandleEncrypt(args)
//	case cli.CmdAttack:
//	    err = cli.HandleAttack(args)
//	// ... other commands
//	}
//
// # Commands Overview
//
// Cipher commands:
//   - encrypt, decrypt: ECB hex stream codecs
//   - samples: known-plaintext pair generation
//
// Analysis commands:
//   - lat: linear approximation table of an S-box
//   - trail: trail connectivity checks and single-approximation derivation
//   - quality: Piling-up Lemma trail quality
//   - attack: last-round key nibble recovery
//
// Workbench commands:
//   - explain: rendered background notes
//   - repl: interactive calculator
//   - runs: recorded attack and quality history
//   - config: configuration management
//
// All result-producing commands support --json for scripted pipelines.
package cli
