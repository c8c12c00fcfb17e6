// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the toolkit.
//
// It covers three concerns:
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// Number Formatting:
//   - FormatBias, FormatProbability, FormatQuality, FormatPercent:
//     consistent rendering of attack statistics across the CLI and
//     the interactive explorer
//
// Terminal Width:
//   - StringWidth, TruncateWidth, PadRight: display-width aware
//     string shaping for table columns
//
// # Usage
//
//	// Write result files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
//
//	// Render a signed bias the same way everywhere
//	s := util.FormatBias(candidate.Bias)
package util
