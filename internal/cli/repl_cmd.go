// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl_cmd.go - Interactive calculator for cipher primitives.
//
// Command: repl
// Aliases: calc
//
// A line-oriented calculator over the configured tables, with
// readline editing and persistent history. Commands:
//
//   enc <hex> <key>    Encrypt a block stream
//   dec <hex> <key>    Decrypt a block stream
//   sub <nibble>       S-box forward lookup
//   inv <nibble>       S-box inverse lookup
//   perm <block>       Permute a 16-bit block
//   bias <in> <out>    Signed bias of one S-box approximation
//   quality <trail>    Score a trail against the session tables
//   help               Command summary
//   quit               Leave (also exit, Ctrl+D)

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/spnlab/internal/config"
	"github.com/jeranaias/spnlab/internal/linear"
	"github.com/jeranaias/spnlab/internal/spn"
	"github.com/jeranaias/spnlab/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput provides line editing and persistent history for the REPL.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newReplInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile, err := config.HistoryPath()
	if err != nil {
		historyFile = ""
	}

	in := &replInput{line: line, historyFile: historyFile}
	in.loadHistory()
	return in
}

func (in *replInput) loadHistory() {
	if in.historyFile == "" {
		return
	}
	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}
}

// readInput reads one line, recording non-empty input in history.
func (in *replInput) readInput(prompt string) (string, error) {
	input, err := in.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		in.line.AppendHistory(input)
	}
	return input, nil
}

func (in *replInput) saveHistory() {
	if in.historyFile == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	in.line.WriteHistory(f)
}

func (in *replInput) close() {
	in.saveHistory()
	in.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// replSession holds the tables the calculator works against, fixed
// at startup from the configuration.
type replSession struct {
	cipher *spn.Cipher
	sbox   *spn.SBox
	perm   *spn.Permutation
	table  [spn.SBoxSize][spn.SBoxSize]linear.Entry
}

func newReplSession(args Args) (*replSession, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, err
	}
	sbox, err := cfg.BuildSBox()
	if err != nil {
		return nil, err
	}
	perm, err := cfg.BuildPermutation()
	if err != nil {
		return nil, err
	}
	cipher, err := cfg.BuildCipher()
	if err != nil {
		return nil, err
	}
	return &replSession{
		cipher: cipher,
		sbox:   sbox,
		perm:   perm,
		table:  linear.BiasTable(sbox),
	}, nil
}

// =============================================================================
// HANDLE REPL
// =============================================================================

const replHelpText = `Commands:
  enc <hex> <key>    Encrypt a block stream (4-digit blocks, 4-digit key)
  dec <hex> <key>    Decrypt a block stream
  sub <nibble>       S-box forward lookup
  inv <nibble>       S-box inverse lookup
  perm <block>       Permute a 16-bit block (4 hex digits)
  bias <in> <out>    Signed bias of one S-box approximation
  quality <trail>    Score a 32-digit trail against the session tables
  help               This summary
  quit               Leave (also exit, Ctrl+D)`

// HandleRepl handles the "repl" command.
func HandleRepl(args Args) error {
	if err := RequiresTTY("repl"); err != nil {
		return err
	}

	session, err := newReplSession(args)
	if err != nil {
		return err
	}

	input := newReplInput()
	defer input.close()

	if !args.Quiet {
		fmt.Println(TitleStyle.Render("spnlab calculator"))
		fmt.Println(DimStyle.Render(fmt.Sprintf("S-box %s, type help for commands", session.sbox.String())))
	}

	for {
		line, err := input.readInput("spn> ")
		if err != nil {
			// Ctrl+C or Ctrl+D both leave cleanly
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd := strings.ToLower(fields[0])
		rest := fields[1:]

		if cmd == "quit" || cmd == "exit" || cmd == "q" {
			return nil
		}

		if err := session.eval(cmd, rest); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
		}
	}
}

// eval executes one calculator command.
func (s *replSession) eval(cmd string, rest []string) error {
	switch cmd {
	case "help", "h", "?":
		fmt.Println(replHelpText)
		return nil

	case "enc", "dec":
		if len(rest) != 2 {
			return fmt.Errorf("usage: %s <hex> <key>", cmd)
		}
		var (
			out string
			err error
		)
		if cmd == "enc" {
			out, err = s.cipher.EncryptHex(rest[0], rest[1])
		} else {
			out, err = s.cipher.DecryptHex(rest[0], rest[1])
		}
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil

	case "sub", "inv":
		if len(rest) != 1 {
			return fmt.Errorf("usage: %s <nibble>", cmd)
		}
		n, err := spn.ParseNibble("nibble", rest[0])
		if err != nil {
			return err
		}
		if cmd == "sub" {
			fmt.Printf("S(%X) = %X\n", n, s.sbox.Substitute(n))
		} else {
			fmt.Printf("S^-1(%X) = %X\n", n, s.sbox.Invert(n))
		}
		return nil

	case "perm":
		if len(rest) != 1 {
			return fmt.Errorf("usage: perm <block>")
		}
		blocks, err := spn.ParseBlocks(rest[0])
		if err != nil {
			return err
		}
		for _, b := range blocks {
			fmt.Printf("P(%04X) = %04X\n", b, s.perm.Apply(b))
		}
		return nil

	case "bias":
		if len(rest) != 2 {
			return fmt.Errorf("usage: bias <in> <out>")
		}
		in, err := spn.ParseNibble("input mask", rest[0])
		if err != nil {
			return err
		}
		out, err := spn.ParseNibble("output mask", rest[1])
		if err != nil {
			return err
		}
		e := s.table[in][out]
		fmt.Printf("bias(%X,%X) = %s (holds %d/%d, prob %s)\n",
			in, out, util.FormatBias(e.Bias), e.CountZero, spn.SBoxSize,
			util.FormatProbability(e.Probability))
		return nil

	case "quality":
		if len(rest) != 1 {
			return fmt.Errorf("usage: quality <trail>")
		}
		trail, err := linear.ParseTrail(rest[0])
		if err != nil {
			return err
		}
		fmt.Println(util.FormatQuality(linear.TrailQuality(trail, s.sbox, s.perm)))
		return nil

	default:
		return fmt.Errorf("unknown command %q, type help", cmd)
	}
}
