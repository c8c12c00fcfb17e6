// spnlab - A workbench for a toy SPN block cipher and the linear
// cryptanalysis that breaks it.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"github.com/jeranaias/spnlab/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdEncrypt:
		err = cli.HandleEncrypt(args)
	case cli.CmdDecrypt:
		err = cli.HandleDecrypt(args)
	case cli.CmdAttack:
		err = cli.HandleAttack(args)
	case cli.CmdQuality:
		err = cli.HandleQuality(args)
	case cli.CmdLat:
		err = cli.HandleLat(args)
	case cli.CmdTrail:
		err = cli.HandleTrail(args)
	case cli.CmdSamples:
		err = cli.HandleSamples(args)
	case cli.CmdRuns:
		err = cli.HandleRuns(args)
	case cli.CmdExplain:
		err = cli.HandleExplain(args)
	case cli.CmdRepl:
		err = cli.HandleRepl(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		err = cli.HandleVersion(args)
	case cli.CmdHelp:
		err = cli.HandleHelp(args)
	default:
		err = cli.HandleUnknown(args)
	}

	cli.HandleErrorAndExit(err, args.JSON)
}
