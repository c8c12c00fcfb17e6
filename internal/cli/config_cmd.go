// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for spnlab.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display the effective configuration
//   init                Write a starter config file with the defaults
//   path                Show the config file location
//
// Examples:
//   spnlab config                  Show effective config (default)
//   spnlab config show --json      Config in JSON format
//   spnlab config init             Create ~/.spnlab/config.toml
//   spnlab config init --force     Overwrite an existing file
//   spnlab config path             Show config file location

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jeranaias/spnlab/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "show":
		return handleConfigShow(args)
	case "init":
		return handleConfigInit(args, parser)
	case "path":
		return handleConfigPath(args)
	default:
		return NewUsageError("config", "unknown subcommand %q, expected show, init, or path", parser.Subcommand())
	}
}

// =============================================================================
// CONFIG SHOW
// =============================================================================

func handleConfigShow(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	path, pathErr := configFilePath(args)
	exists := false
	if pathErr == nil {
		_, statErr := os.Stat(path)
		exists = statErr == nil
	}

	return OutputJSON(args.JSON, "config show", func() (interface{}, error) {
		if !args.JSON {
			printConfig(args, cfg, path, exists)
		}
		return ConfigData{Path: path, Exists: exists, Config: cfg}, nil
	})
}

func printConfig(args Args, cfg *config.Config, path string, exists bool) {
	if !args.Quiet {
		fmt.Println(TitleStyle.Render("Configuration"))
		source := "defaults"
		if exists {
			source = path
		}
		fmt.Println(DimStyle.Render("from " + source))
		fmt.Println()
	}

	fmt.Println(SectionStyle.Render("Cipher"))
	fmt.Printf("  %s %s\n", RenderLabel("S-box:"), ValueStyle.Render(cfg.Cipher.SBox))
	fmt.Printf("  %s %s\n", RenderLabel("Permutation:"), ValueStyle.Render(permutationString(cfg.Cipher.Permutation)))
	fmt.Printf("  %s %s\n", RenderLabel("Permute last:"), ValueStyle.Render(strconv.FormatBool(cfg.Cipher.PermuteLastRound)))
	fmt.Println()

	fmt.Println(SectionStyle.Render("Attack"))
	fmt.Printf("  %s %s\n", RenderLabel("Plaintext mask:"), ValueStyle.Render(cfg.Attack.PlaintextMask))
	fmt.Printf("  %s %s\n", RenderLabel("Target slot:"), ValueStyle.Render(strconv.Itoa(cfg.Attack.TargetSlot)))
	fmt.Printf("  %s %s\n", RenderLabel("V mask:"), ValueStyle.Render(cfg.Attack.VMask))
	workers := "GOMAXPROCS"
	if cfg.Attack.Workers > 0 {
		workers = strconv.Itoa(cfg.Attack.Workers)
	}
	fmt.Printf("  %s %s\n", RenderLabel("Workers:"), ValueStyle.Render(workers))
	fmt.Println()

	fmt.Println(SectionStyle.Render("Output"))
	fmt.Printf("  %s %s\n", RenderLabel("Color:"), ValueStyle.Render(cfg.Output.Color))
}

func permutationString(mapping []int) string {
	parts := make([]string, len(mapping))
	for i, v := range mapping {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// =============================================================================
// CONFIG INIT
// =============================================================================

func handleConfigInit(args Args, parser *ArgParser) error {
	path, err := configFilePath(args)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); statErr == nil && !parser.BoolFlag("force") {
		return NewUsageError("config init", "%s already exists, pass --force to overwrite", path)
	}

	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}

	return OutputJSON(args.JSON, "config init", func() (interface{}, error) {
		if !args.JSON && !args.Quiet {
			fmt.Printf("%s %s\n", SuccessStyle.Render("wrote"), ValueStyle.Render(path))
		}
		return map[string]string{"path": path}, nil
	})
}

// =============================================================================
// CONFIG PATH
// =============================================================================

func handleConfigPath(args Args) error {
	path, err := configFilePath(args)
	if err != nil {
		return err
	}
	return OutputJSON(args.JSON, "config path", func() (interface{}, error) {
		if !args.JSON {
			fmt.Println(path)
		}
		return map[string]string{"path": path}, nil
	})
}

// configFilePath resolves which file config commands operate on,
// mirroring the load order: --config flag, then $SPNLAB_CONFIG, then
// the default location.
func configFilePath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	if path := os.Getenv("SPNLAB_CONFIG"); path != "" {
		return path, nil
	}
	return config.ConfigPathTOML()
}
