// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for spnlab.

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdEncrypt
	CmdDecrypt
	CmdAttack
	CmdQuality
	CmdLat
	CmdTrail
	CmdSamples
	CmdRuns
	CmdExplain
	CmdRepl
	CmdConfig
	CmdVersion
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool   // Suppress decoration, print results only
	JSON       bool   // Output in JSON format
	NoLog      bool   // Skip the run log for this invocation
	ConfigPath string // Explicit config file path

	// Command-specific
	Subcommand string

	// Raw args (remaining after global flag parsing)
	Raw []string
}

const usageText = `spnlab - substitution-permutation network laboratory

Spnlab is a workbench for a 16-bit toy SPN cipher and the linear
cryptanalysis that breaks it.

It provides:
  - A 4-round SPN with configurable S-box and bit permutation
  - Linear approximation tables and Piling-up Lemma trail scoring
  - A known-plaintext attack recovering a key nibble by bias ranking
  - Deterministic sample generation for repeatable experiments
  - A run log, an interactive bias table explorer, and a calculator REPL

Usage:
  spnlab encrypt <input> <key> <output>   Encrypt a hex block stream (ECB)
  spnlab decrypt <input> <key> <output>   Decrypt a hex block stream (ECB)
  spnlab attack <plain-file> <cipher-file>  Rank key-nibble guesses by bias
  spnlab quality <sbox> <trail>           Score a trail (one number)
  spnlab lat [flags]                      List or explore S-box biases
  spnlab trail check <trail>              Validate and score a trail
  spnlab trail derive --approx I,O        Build a trail from one approximation
  spnlab samples <count> <key>            Generate known-plaintext pairs
  spnlab runs [list|show <id>|clear]      Inspect the run log
  spnlab explain [topic]                  Rendered theory notes
  spnlab repl                             Interactive calculator
  spnlab config [show|init|path]          Configuration
  spnlab version                          Version information
  spnlab help                             This text

Attack Flags:
  --slot N          Target ciphertext nibble slot 0-3 (config default)
  --pmask HEX       Plaintext mask, 4 hex digits (config default)
  --vmask HEX       Last-round S-box input mask, 1 hex digit (config default)
  --workers N       Worker pool size (default GOMAXPROCS)
  --top N           Show only the N best candidates

Lat Flags:
  --sbox HEX        S-box table, 16 hex digits (config default)
  --min-bias F      Hide entries below |bias| F
  --one-sided       List the one-sided pairs instead
  --interactive     Open the full-screen table explorer

Trail Derive Flags:
  --approx I,O      Seed approximation masks, hex nibbles (required)
  --slot N          Active slot 0-3 (default 0)
  --round 1|4       Seed round: 1 extends forward, 4 backward (default 1)
  --sbox HEX        S-box for the bias annotation (config default)

Samples Flags:
  --seed N          Keystream seed (default 0)
  --plain-out F     Write plaintext blocks to file
  --cipher-out F    Write ciphertext blocks to file

Global Flags:
  -q, --quiet       Minimal output
  --json            Output in JSON format
  --no-log          Skip the run log for this invocation
  --config PATH     Use an explicit config file

Examples:
  # Round-trip a message under key 1234
  spnlab encrypt message.hex 1234 message.enc
  spnlab decrypt message.enc 1234 message.dec

  # Generate 32768 pairs under a secret key, then attack them
  spnlab samples 32768 3a94 --seed 1 --plain-out p.hex --cipher-out c.hex
  spnlab attack p.hex c.hex --top 5

  # Score the classic trail and inspect the S-box that makes it work
  spnlab quality E4D12FB83A6C5907 39390000390000399800009800000098
  spnlab trail check 39390000390000399800009800000098
  spnlab lat --min-bias 0.25
  spnlab lat --interactive

  # Build a trail from the strongest approximation, backward from round 4
  spnlab trail derive --approx 9,8 --slot 0 --round 4

  # Review past experiments
  spnlab runs
  spnlab runs show 3f2a

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("spnlab version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses an argument vector. Split from Parse so tests can
// feed argument lists directly.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdHelp, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "encrypt", "enc":
		return CmdEncrypt, parsedArgs

	case "decrypt", "dec":
		return CmdDecrypt, parsedArgs

	case "attack":
		return CmdAttack, parsedArgs

	case "quality":
		return CmdQuality, parsedArgs

	case "lat", "bias":
		return CmdLat, parsedArgs

	case "trail", "trails":
		// Subcommand dispatch is done in trail_cmd.go HandleTrail
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdTrail, parsedArgs

	case "samples", "sample":
		return CmdSamples, parsedArgs

	case "runs", "run":
		// Subcommand dispatch is done in runs_cmd.go HandleRuns
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdRuns, parsedArgs

	case "explain", "notes":
		return CmdExplain, parsedArgs

	case "repl", "calc":
		return CmdRepl, parsedArgs

	case "config":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Restore the unrecognized token so the handler can name it
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-log":
			parsedArgs.NoLog = true
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--config=") {
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// HandleUnknown reports an unrecognized command and exits with the
// usage code.
func HandleUnknown(args Args) error {
	name := ""
	if len(args.Raw) > 0 {
		name = args.Raw[0]
	}
	return NewUsageError("", "unknown command %q, run 'spnlab help'", name)
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) error {
	if args.JSON {
		return OutputJSON(true, "version", func() (interface{}, error) {
			return VersionData{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
			}, nil
		})
	}
	PrintVersion()
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp(args Args) error {
	PrintUsage()
	return nil
}
