// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// attack_cmd.go - Known-plaintext linear attack command.
//
// Command: attack <plaintext-file> <ciphertext-file>
//
// Ranks all 16 guesses for one key nibble by the empirical bias of
// the configured linear relation over the given pairs. The files must
// hold the same number of blocks, pairwise aligned.
//
// Flags:
//   --slot N       Target ciphertext nibble slot 0-3
//   --pmask HEX    Plaintext mask, 4 hex digits
//   --vmask HEX    Last-round S-box input mask, 1 hex digit
//   --workers N    Worker pool size
//   --top N        Show only the N best candidates
//   --json         Output in JSON format
//   --no-log       Skip the run log
//
// Examples:
//   spnlab attack p.hex c.hex
//   spnlab attack p.hex c.hex --top 5
//   spnlab attack p.hex c.hex --slot 0 --pmask 000b --vmask b

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/spnlab/internal/hexio"
	"github.com/jeranaias/spnlab/internal/linear"
	"github.com/jeranaias/spnlab/internal/runlog"
	"github.com/jeranaias/spnlab/internal/tasks"
	"github.com/jeranaias/spnlab/internal/util"
)

// HandleAttack handles the "attack" command.
func HandleAttack(args Args) error {
	parser := NewArgParser(args.Raw)
	if parser.PositionalCount() != 2 {
		return NewUsageError("attack", "expected <plaintext-file> <ciphertext-file>")
	}
	plainPath := parser.Positional(0)
	cipherPath := parser.Positional(1)

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	cfg = applyAttackOverrides(cfg, parser)
	if err := cfg.Validate(); err != nil {
		return err
	}

	cipher, err := cfg.BuildCipher()
	if err != nil {
		return err
	}
	rel, err := cfg.BuildRelation()
	if err != nil {
		return err
	}
	pool := tasks.NewPool(cfg.Attack.Workers)

	plaintexts, err := hexio.ReadBlocks(plainPath)
	if err != nil {
		return err
	}
	ciphertexts, err := hexio.ReadBlocks(cipherPath)
	if err != nil {
		return err
	}

	result, err := linear.Attack(context.Background(), cipher, rel, plaintexts, ciphertexts, pool)
	if err != nil {
		return err
	}

	top := parser.FlagIntOrDefault("top", linear.GuessCount)
	if top < 1 || top > linear.GuessCount {
		top = linear.GuessCount
	}

	data := attackData(result, cfg.Attack.Workers, top)

	if !args.JSON {
		printAttackResult(args, result, top)
	}

	recordRun(args, runlog.KindAttack, runlog.AttackParams{
		PlaintextFile:  plainPath,
		CiphertextFile: cipherPath,
		PlaintextMask:  fmt.Sprintf("%04X", rel.PlaintextMask),
		TargetSlot:     rel.TargetSlot,
		VMask:          nibbleHex(rel.VMask),
		Pairs:          result.Pairs,
		Workers:        pool.Workers(),
	}, runlog.AttackOutcome{
		TopGuess:    nibbleHex(result.Top().Guess),
		TopBias:     result.Top().Bias,
		Probability: result.Top().Probability,
	})

	if args.JSON {
		return NewJSONResponse("attack", data).Print()
	}
	return nil
}

// attackData shapes a result for the JSON envelope.
func attackData(result *linear.Result, workers, top int) AttackData {
	candidates := make([]CandidateData, 0, top)
	for i := 0; i < top; i++ {
		c := result.Candidates[i]
		candidates = append(candidates, CandidateData{
			Rank:        i + 1,
			Guess:       nibbleHex(c.Guess),
			Bias:        c.Bias,
			Probability: c.Probability,
		})
	}
	return AttackData{
		Relation:       result.Relation.String(),
		PlaintextMask:  fmt.Sprintf("%04X", result.Relation.PlaintextMask),
		TargetSlot:     result.Relation.TargetSlot,
		VMask:          nibbleHex(result.Relation.VMask),
		Pairs:          result.Pairs,
		Workers:        workers,
		TopGuess:       nibbleHex(result.Top().Guess),
		TopBias:        result.Top().Bias,
		TopProbability: result.Top().Probability,
		Candidates:     candidates,
	}
}

// printAttackResult renders the ranked candidate table.
func printAttackResult(args Args, result *linear.Result, top int) {
	if args.Quiet {
		fmt.Println(nibbleHex(result.Top().Guess))
		return
	}

	fmt.Println(TitleStyle.Render("Linear attack"))
	fmt.Println(DimStyle.Render(fmt.Sprintf("%s over %d pairs", relationSummary(result.Relation), result.Pairs)))
	fmt.Println()

	fmt.Printf("  %s  %s  %s  %s\n",
		util.PadRight("Rank", 4),
		util.PadRight("Guess", 5),
		util.PadRight("Bias", 9),
		"Probability")
	fmt.Printf("  %s  %s  %s  %s\n",
		SeparatorStyle.Render("----"),
		SeparatorStyle.Render("-----"),
		SeparatorStyle.Render("---------"),
		SeparatorStyle.Render("-----------"))

	for i := 0; i < top; i++ {
		c := result.Candidates[i]
		line := fmt.Sprintf("  %4d  %5s  %9s  %s",
			i+1,
			nibbleHex(c.Guess),
			util.FormatBias(c.Bias),
			util.FormatProbability(c.Probability))
		if i == 0 {
			fmt.Println(HighlightStyle.Render(line))
		} else {
			fmt.Println(line)
		}
	}
	if top < linear.GuessCount {
		fmt.Println(DimStyle.Render(fmt.Sprintf("  (%d more hidden)", linear.GuessCount-top)))
	}

	fmt.Println()
	fmt.Printf("%s %s\n",
		SectionStyle.Render(fmt.Sprintf("Recovered key nibble for slot %d:", result.Relation.TargetSlot)),
		HighlightStyle.Render(nibbleHex(result.Top().Guess)))
}
