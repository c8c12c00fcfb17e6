// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared glue between commands, config, and the run log.

package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/spnlab/internal/config"
	"github.com/jeranaias/spnlab/internal/linear"
	"github.com/jeranaias/spnlab/internal/runlog"
	"github.com/jeranaias/spnlab/internal/spn"
)

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// loadConfig resolves the effective configuration for a command:
// the --config path when given, otherwise the usual lookup chain.
func loadConfig(args Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		return config.LoadFromPath(args.ConfigPath)
	}
	return config.Load()
}

// applyAttackOverrides clones cfg and applies the attack command's
// relation and pool flags on top of the configured defaults.
func applyAttackOverrides(cfg *config.Config, parser *ArgParser) *config.Config {
	out := cfg.Clone()
	if v := parser.Flag("pmask"); v != "" {
		out.Attack.PlaintextMask = v
	}
	if parser.HasFlag("slot") {
		out.Attack.TargetSlot = parser.FlagIntOrDefault("slot", out.Attack.TargetSlot)
	}
	if v := parser.Flag("vmask"); v != "" {
		out.Attack.VMask = v
	}
	if parser.HasFlag("workers") {
		out.Attack.Workers = parser.FlagIntOrDefault("workers", out.Attack.Workers)
	}
	return out
}

// sboxFromFlagOrConfig builds the S-box from a --sbox flag when
// present, otherwise from the configuration.
func sboxFromFlagOrConfig(parser *ArgParser, cfg *config.Config) (*spn.SBox, error) {
	if hex := parser.Flag("sbox"); hex != "" {
		return spn.ParseSBox(hex)
	}
	return cfg.BuildSBox()
}

// =============================================================================
// RUN LOG
// =============================================================================

// recordRun appends one record to the run log, best effort. Logging
// failure never fails the command that did the real work; a note goes
// to stderr and the command's own exit code stands.
func recordRun(args Args, kind runlog.Kind, params, outcome interface{}) {
	if args.NoLog {
		return
	}
	path, err := config.RunLogPath()
	if err != nil {
		warnRunLog(args, err)
		return
	}
	store, err := runlog.Open(path)
	if err != nil {
		warnRunLog(args, err)
		return
	}
	defer store.Close()

	id, err := store.Record(kind, params, outcome)
	if err != nil {
		warnRunLog(args, err)
		return
	}
	// The note goes to stderr: stdout carries command results only.
	if !args.Quiet && !args.JSON {
		StderrPrintln(DimStyle.Render(fmt.Sprintf("logged run %s", shortID(id))))
	}
}

func warnRunLog(args Args, err error) {
	if args.Quiet {
		return
	}
	fmt.Fprintln(os.Stderr, WarningStyle.Render(fmt.Sprintf("run log unavailable: %v", err)))
}

// openRunLog opens the run log store for the runs command, which
// unlike recordRun does surface failures to the caller.
func openRunLog() (*runlog.Store, error) {
	path, err := config.RunLogPath()
	if err != nil {
		return nil, err
	}
	return runlog.Open(path)
}

// shortID abbreviates a run UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// =============================================================================
// SHARED FORMATTING
// =============================================================================

// nibbleHex renders a nibble as one uppercase hex digit.
func nibbleHex(n uint8) string {
	return fmt.Sprintf("%X", n&0xF)
}

// relationSummary names a relation's three knobs on one line.
func relationSummary(rel linear.Relation) string {
	return fmt.Sprintf("plaintext mask %04X, slot %d, v mask %X",
		rel.PlaintextMask, rel.TargetSlot, rel.VMask)
}
