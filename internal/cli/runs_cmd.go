// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// runs_cmd.go - Run log inspection commands.
//
// Command: runs [list|show <id>|clear]
// Aliases: run
//
// Every attack and quality invocation leaves a record; these
// subcommands browse them. show accepts a unique ID prefix.
//
// Examples:
//   spnlab runs
//   spnlab runs show 3f2a
//   spnlab runs show 3f2a --json
//   spnlab runs clear

package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/spnlab/internal/runlog"
	"github.com/jeranaias/spnlab/internal/util"
)

// runTimeLayout renders record timestamps for the list table.
const runTimeLayout = "2006-01-02 15:04:05"

// HandleRuns handles the "runs" command.
func HandleRuns(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "list", "ls":
		return handleRunsList(args)
	case "show":
		return handleRunsShow(args, parser)
	case "clear":
		return handleRunsClear(args)
	default:
		return NewUsageError("runs", "unknown subcommand %q, expected list, show, or clear", parser.Subcommand())
	}
}

// =============================================================================
// RUNS LIST
// =============================================================================

func handleRunsList(args Args) error {
	store, err := openRunLog()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List()
	if err != nil {
		return err
	}

	return OutputJSON(args.JSON, "runs list", func() (interface{}, error) {
		if !args.JSON {
			printRunsTable(args, runs)
		}
		return runs, nil
	})
}

func printRunsTable(args Args, runs []runlog.Run) {
	if len(runs) == 0 {
		if !args.Quiet {
			fmt.Println(DimStyle.Render("no runs recorded yet"))
		}
		return
	}

	if !args.Quiet {
		fmt.Println(TitleStyle.Render("Run log"))
		fmt.Println(DimStyle.Render(fmt.Sprintf("%d runs, newest first", len(runs))))
		fmt.Println()
	}

	fmt.Printf("  %s  %s  %s  %s\n",
		util.PadRight("ID", 8),
		util.PadRight("When", len(runTimeLayout)),
		util.PadRight("Kind", 7),
		"Result")
	fmt.Printf("  %s  %s  %s  %s\n",
		SeparatorStyle.Render("--------"),
		SeparatorStyle.Render("-------------------"),
		SeparatorStyle.Render("-------"),
		SeparatorStyle.Render("------"))

	for _, run := range runs {
		fmt.Printf("  %s  %s  %s  %s\n",
			util.PadRight(shortID(run.ID), 8),
			util.PadRight(run.CreatedAt.Local().Format(runTimeLayout), len(runTimeLayout)),
			util.PadRight(string(run.Kind), 7),
			outcomeSummary(run))
	}
}

// outcomeSummary condenses a record's outcome JSON to one cell.
func outcomeSummary(run runlog.Run) string {
	switch run.Kind {
	case runlog.KindAttack:
		var out runlog.AttackOutcome
		if err := json.Unmarshal([]byte(run.Outcome), &out); err == nil {
			return fmt.Sprintf("top %s (bias %s)", out.TopGuess, util.FormatBias(out.TopBias))
		}
	case runlog.KindQuality:
		var out runlog.QualityOutcome
		if err := json.Unmarshal([]byte(run.Outcome), &out); err == nil {
			return fmt.Sprintf("quality %s", util.FormatQuality(out.Quality))
		}
	}
	return util.TruncateWidth(run.Outcome, 40)
}

// =============================================================================
// RUNS SHOW
// =============================================================================

// RunShowData is the runs show payload, with the stored JSON columns
// re-embedded as JSON rather than strings.
type RunShowData struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Kind      string          `json:"kind"`
	Params    json.RawMessage `json:"params"`
	Outcome   json.RawMessage `json:"outcome"`
}

func handleRunsShow(args Args, parser *ArgParser) error {
	id := parser.Positional(1)
	if id == "" {
		return NewUsageError("runs show", "expected a run id or unique prefix")
	}

	store, err := openRunLog()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Show(id)
	if err != nil {
		return err
	}

	return OutputJSON(args.JSON, "runs show", func() (interface{}, error) {
		if !args.JSON {
			printRunDetail(run)
		}
		return RunShowData{
			ID:        run.ID,
			CreatedAt: run.CreatedAt,
			Kind:      string(run.Kind),
			Params:    json.RawMessage(run.Params),
			Outcome:   json.RawMessage(run.Outcome),
		}, nil
	})
}

func printRunDetail(run *runlog.Run) {
	fmt.Println(TitleStyle.Render("Run " + shortID(run.ID)))
	fmt.Printf("%s %s\n", RenderLabel("ID:"), ValueStyle.Render(run.ID))
	fmt.Printf("%s %s\n", RenderLabel("Created:"), ValueStyle.Render(run.CreatedAt.Local().Format(runTimeLayout)))
	fmt.Printf("%s %s\n", RenderLabel("Kind:"), ValueStyle.Render(string(run.Kind)))
	fmt.Printf("%s %s\n", RenderLabel("Params:"), indentJSON(run.Params))
	fmt.Printf("%s %s\n", RenderLabel("Outcome:"), indentJSON(run.Outcome))
}

// indentJSON pretty-prints a stored JSON column, falling back to the
// raw string when it does not parse.
func indentJSON(s string) string {
	var buf json.RawMessage
	if err := json.Unmarshal([]byte(s), &buf); err != nil {
		return s
	}
	out, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return s
	}
	return string(out)
}

// =============================================================================
// RUNS CLEAR
// =============================================================================

func handleRunsClear(args Args) error {
	store, err := openRunLog()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.Clear()
	if err != nil {
		return err
	}

	return OutputJSON(args.JSON, "runs clear", func() (interface{}, error) {
		if !args.JSON && !args.Quiet {
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("cleared %d runs", deleted)))
		}
		return map[string]interface{}{"deleted": deleted}, nil
	})
}
