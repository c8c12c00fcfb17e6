// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// lat_cmd.go - Linear approximation table listing and explorer.
//
// Command: lat [flags]
// Aliases: bias
//
// Lists the S-box's nonzero linear approximations ranked by |bias|,
// or the one-sided pairs, which are all exactly balanced for a
// bijective table. --interactive opens the full-screen explorer.
//
// Flags:
//   --sbox HEX        S-box table, 16 hex digits (config default)
//   --min-bias F      Hide entries below |bias| F
//   --one-sided       List the one-sided pairs instead
//   --interactive     Open the full-screen table explorer
//   --json            Output in JSON format
//
// Examples:
//   spnlab lat
//   spnlab lat --min-bias 0.25
//   spnlab lat --one-sided
//   spnlab lat --sbox 0123456789ABCDEF
//   spnlab lat --interactive

package cli

import (
	"fmt"
	"math"

	"github.com/jeranaias/spnlab/internal/linear"
	"github.com/jeranaias/spnlab/internal/spn"
	"github.com/jeranaias/spnlab/internal/ui"
	"github.com/jeranaias/spnlab/internal/util"
)

// HandleLat handles the "lat" command.
func HandleLat(args Args) error {
	parser := NewArgParser(args.Raw)

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	sbox, err := sboxFromFlagOrConfig(parser, cfg)
	if err != nil {
		return err
	}

	if parser.BoolFlag("interactive") {
		if err := RequiresTTY("lat --interactive"); err != nil {
			return err
		}
		return ui.Explore(sbox)
	}

	if parser.BoolFlag("one-sided") {
		return latOneSided(args, sbox)
	}
	return latNonzero(args, parser, sbox)
}

// latNonzero lists the nonzero-bias approximations, strongest first.
func latNonzero(args Args, parser *ArgParser, sbox *spn.SBox) error {
	minBias := parser.FlagFloatOrDefault("min-bias", 0)
	entries := linear.NonzeroEntries(sbox)

	shown := entries[:0:0]
	for _, e := range entries {
		if math.Abs(e.Bias) >= minBias {
			shown = append(shown, e)
		}
	}

	return OutputJSON(args.JSON, "lat", func() (interface{}, error) {
		if !args.JSON {
			if !args.Quiet {
				fmt.Println(TitleStyle.Render("S-box bias table"))
				fmt.Println(DimStyle.Render(fmt.Sprintf(
					"S-box %s, max |bias| %s, %d nonzero entries",
					sbox.String(), util.FormatProbability(linear.MaxBias(sbox)), len(entries))))
				fmt.Println()
			}
			printLatHeader(true)
			for _, e := range shown {
				fmt.Printf("  %2X  %3X  %5d  %9s  %8s\n",
					e.InMask, e.OutMask, e.CountZero,
					util.FormatBias(e.Bias), util.FormatPercent(e.Probability))
			}
			if hidden := len(entries) - len(shown); hidden > 0 && !args.Quiet {
				fmt.Println(DimStyle.Render(fmt.Sprintf("  (%d below threshold hidden)", hidden)))
			}
		}
		return latData(sbox, shown), nil
	})
}

// latOneSided lists the one-sided pairs. For a bijective S-box every
// one of them is perfectly balanced; the listing is the evidence.
func latOneSided(args Args, sbox *spn.SBox) error {
	entries := linear.OneSidedEntries(sbox)

	return OutputJSON(args.JSON, "lat", func() (interface{}, error) {
		if !args.JSON {
			if !args.Quiet {
				fmt.Println(TitleStyle.Render("One-sided approximations"))
				fmt.Println(DimStyle.Render(fmt.Sprintf(
					"S-box %s: a parity of only inputs or only outputs is perfectly balanced",
					sbox.String())))
				fmt.Println()
			}
			printLatHeader(false)
			for _, e := range entries {
				fmt.Printf("  %2X  %3X  %5d  %9s\n",
					e.InMask, e.OutMask, e.CountZero, util.FormatBias(e.Bias))
			}
		}
		return latData(sbox, entries), nil
	})
}

func printLatHeader(withProbability bool) {
	if withProbability {
		fmt.Printf("  %s  %s  %s  %s  %s\n", "In", "Out", "Count", util.PadRight("Bias", 9), "Pr[hold]")
		fmt.Printf("  %s  %s  %s  %s  %s\n",
			SeparatorStyle.Render("--"), SeparatorStyle.Render("---"),
			SeparatorStyle.Render("-----"), SeparatorStyle.Render("---------"),
			SeparatorStyle.Render("--------"))
		return
	}
	fmt.Printf("  %s  %s  %s  %s\n", "In", "Out", "Count", util.PadRight("Bias", 9))
	fmt.Printf("  %s  %s  %s  %s\n",
		SeparatorStyle.Render("--"), SeparatorStyle.Render("---"),
		SeparatorStyle.Render("-----"), SeparatorStyle.Render("---------"))
}

// latData shapes entries for the JSON envelope.
func latData(sbox *spn.SBox, entries []linear.Entry) LatData {
	out := make([]LatEntryData, 0, len(entries))
	for _, e := range entries {
		out = append(out, LatEntryData{
			InMask:      nibbleHex(e.InMask),
			OutMask:     nibbleHex(e.OutMask),
			CountZero:   e.CountZero,
			Bias:        e.Bias,
			Probability: e.Probability,
		})
	}
	return LatData{
		SBox:    sbox.String(),
		MaxBias: linear.MaxBias(sbox),
		Entries: out,
	}
}
