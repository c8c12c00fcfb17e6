// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// quality_cmd.go - Trail quality scoring command.
//
// Command: quality <sbox-hex> <trail-hex>
//
// Prints exactly one number on stdout: the Piling-up Lemma quality,
// 0 for an inactive or zero-bias trail, or -1 for a trail whose
// rounds do not connect through the permutation. All three are
// results, not errors; the exit code is 0 for each.
//
// Examples:
//   spnlab quality E4D12FB83A6C5907 39390000390000399800009800000098
//   spnlab quality E4D12FB83A6C5907 39390000390000399800009800000098 --json

package cli

import (
	"fmt"

	"github.com/jeranaias/spnlab/internal/linear"
	"github.com/jeranaias/spnlab/internal/runlog"
	"github.com/jeranaias/spnlab/internal/spn"
	"github.com/jeranaias/spnlab/internal/util"
)

// HandleQuality handles the "quality" command.
func HandleQuality(args Args) error {
	parser := NewArgParser(args.Raw)
	if parser.PositionalCount() != 2 {
		return NewUsageError("quality", "expected <sbox-hex> <trail-hex>")
	}

	sbox, err := spn.ParseSBox(parser.Positional(0))
	if err != nil {
		return err
	}
	trail, err := linear.ParseTrail(parser.Positional(1))
	if err != nil {
		return err
	}
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	perm, err := cfg.BuildPermutation()
	if err != nil {
		return err
	}

	quality := linear.TrailQuality(trail, sbox, perm)

	if !args.JSON {
		fmt.Println(util.FormatQuality(quality))
	}

	recordRun(args, runlog.KindQuality, runlog.QualityParams{
		SBox:  sbox.String(),
		Trail: trail.String(),
	}, runlog.QualityOutcome{
		Quality: quality,
	})

	if args.JSON {
		return NewJSONResponse("quality", QualityData{
			SBox:    sbox.String(),
			Trail:   trail.String(),
			Quality: quality,
			Valid:   quality != linear.InvalidTrailQuality,
		}).Print()
	}
	return nil
}
