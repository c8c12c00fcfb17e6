// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// trail_cmd.go - Trail inspection and construction commands.
//
// Command: trail check <trail-hex>
// Command: trail derive --approx I,O [flags]
//
// check validates round connectivity, lists every active S-box with
// its measured bias, scores the trail, and estimates the sample count
// the attack would need against it.
//
// derive builds a connectivity-valid trail from one seed
// approximation: --round 1 pushes its output mask forward through the
// permutation, --round 4 pulls its input mask backward.
//
// Flags (derive):
//   --approx I,O   Seed approximation masks, hex nibbles (required)
//   --slot N       Active slot 0-3 (default 0)
//   --round 1|4    Seed round (default 1)
//   --sbox HEX     S-box for the bias annotation (config default)
//
// Examples:
//   spnlab trail check 39390000390000399800009800000098
//   spnlab trail derive --approx 3,9
//   spnlab trail derive --approx 9,8 --slot 2 --round 4

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/spnlab/internal/linear"
	"github.com/jeranaias/spnlab/internal/spn"
	"github.com/jeranaias/spnlab/internal/util"
)

// biasConfidence is the advisory confidence factor for the
// required-samples estimate.
const biasConfidence = 8

// HandleTrail handles the "trail" command.
func HandleTrail(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "check":
		return handleTrailCheck(args, parser)
	case "derive":
		return handleTrailDerive(args, parser)
	case "":
		return NewUsageError("trail", "expected a subcommand: check or derive")
	default:
		return NewUsageError("trail", "unknown subcommand %q, expected check or derive", parser.Subcommand())
	}
}

// =============================================================================
// TRAIL CHECK
// =============================================================================

func handleTrailCheck(args Args, parser *ArgParser) error {
	if parser.PositionalCount() != 2 {
		return NewUsageError("trail check", "expected <trail-hex>")
	}
	trail, err := linear.ParseTrail(parser.Positional(1))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	sbox, err := sboxFromFlagOrConfig(parser, cfg)
	if err != nil {
		return err
	}
	perm, err := cfg.BuildPermutation()
	if err != nil {
		return err
	}

	valid := trail.Validate(perm)
	boxes := linear.ActiveBiases(trail, sbox)
	quality := linear.TrailQuality(trail, sbox, perm)

	return OutputJSON(args.JSON, "trail check", func() (interface{}, error) {
		data := TrailCheckData{
			Trail:       trail.String(),
			Valid:       valid,
			ActiveBoxes: trailBoxData(boxes),
			Quality:     quality,
		}
		if quality > 0 {
			data.RequiredSamples = linear.RequiredSamples(biasConfidence, quality)
		}

		if !args.JSON {
			printTrailCheck(args, trail, valid, boxes, quality)
		}
		return data, nil
	})
}

func printTrailCheck(args Args, trail *linear.Trail, valid bool, boxes []linear.BoxBias, quality float64) {
	if args.Quiet {
		fmt.Println(util.FormatQuality(quality))
		return
	}

	fmt.Println(TitleStyle.Render("Trail check"))
	fmt.Println(DimStyle.Render(fmt.Sprintf("Trail %s", trail.String())))
	fmt.Println()

	verdict := "rounds connect through the permutation"
	if !valid {
		verdict = "round outputs do not permute onto the next round's inputs"
	}
	fmt.Printf("%s %s %s\n", RenderLabel("Connectivity:"), RenderStatus(valid), verdict)

	fmt.Printf("%s %d\n", RenderLabel("Active boxes:"), len(boxes))
	for _, b := range boxes {
		line := fmt.Sprintf("  round %d slot %d  in %X out %X  bias %s",
			b.Round, b.Slot, b.Pair.In, b.Pair.Out, util.FormatProbability(b.Bias))
		if b.Bias == 0 {
			fmt.Println(DimStyle.Render(line + "  (kills the trail)"))
		} else {
			fmt.Println(line)
		}
	}

	fmt.Printf("%s %s\n", RenderLabel("Quality:"), SectionStyle.Render(util.FormatQuality(quality)))
	if quality > 0 {
		fmt.Printf("%s ~%.0f pairs (t=%d)\n",
			RenderLabel("Samples needed:"),
			linear.RequiredSamples(biasConfidence, quality), biasConfidence)
	}
}

func trailBoxData(boxes []linear.BoxBias) []TrailBoxData {
	out := make([]TrailBoxData, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, TrailBoxData{
			Round:   b.Round,
			Slot:    b.Slot,
			InMask:  nibbleHex(b.Pair.In),
			OutMask: nibbleHex(b.Pair.Out),
			Bias:    b.Bias,
		})
	}
	return out
}

// =============================================================================
// TRAIL DERIVE
// =============================================================================

func handleTrailDerive(args Args, parser *ArgParser) error {
	approx := parser.Flag("approx")
	if approx == "" {
		return NewUsageError("trail derive", "--approx I,O is required")
	}
	pair, err := parseApprox(approx)
	if err != nil {
		return err
	}
	slot := parser.FlagIntOrDefault("slot", 0)
	round := parser.FlagIntOrDefault("round", 1)
	if round != 1 && round != spn.Rounds {
		return NewUsageError("trail derive", "--round must be 1 (forward) or %d (backward), got %d", spn.Rounds, round)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	sbox, err := sboxFromFlagOrConfig(parser, cfg)
	if err != nil {
		return err
	}
	perm, err := cfg.BuildPermutation()
	if err != nil {
		return err
	}

	var (
		trail     *linear.Trail
		direction string
	)
	if round == 1 {
		trail, err = linear.DeriveForward(perm, slot, pair)
		direction = "forward"
	} else {
		trail, err = linear.DeriveBackward(perm, slot, pair)
		direction = "backward"
	}
	if err != nil {
		return err
	}

	seedBias := linear.SBoxBiasSigned(sbox, pair.In, pair.Out)

	return OutputJSON(args.JSON, "trail derive", func() (interface{}, error) {
		if !args.JSON {
			fmt.Println(trail.String())
			if !args.Quiet {
				StderrPrintln(DimStyle.Render(fmt.Sprintf(
					"%s from round %d slot %d, seed approximation %X->%X bias %s",
					direction, round, slot, pair.In, pair.Out, util.FormatBias(seedBias))))
			}
		}
		return TrailDeriveData{
			Trail:     trail.String(),
			Direction: direction,
			Round:     round,
			Slot:      slot,
			InMask:    nibbleHex(pair.In),
			OutMask:   nibbleHex(pair.Out),
			SeedBias:  seedBias,
		}, nil
	})
}

// parseApprox parses an "I,O" flag value into a mask pair.
func parseApprox(s string) (linear.MaskPair, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return linear.MaskPair{}, spn.NewFormatError("approximation", s, "expected two hex nibbles as I,O")
	}
	in, err := spn.ParseNibble("approximation input mask", parts[0])
	if err != nil {
		return linear.MaskPair{}, err
	}
	out, err := spn.ParseNibble("approximation output mask", parts[1])
	if err != nil {
		return linear.MaskPair{}, err
	}
	return linear.MaskPair{In: in, Out: out}, nil
}
