// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/tense/internal/config"
)

// Init-specific flag values.
var (
	initForce  bool
	initGlobal bool
)

// initHeader is written at the top of generated tense files.
const initHeader = `Tense unit configuration.
Sections are [<namespace>.<Type>]; values are digits, true/false,
comma lists (a single alias needs a trailing comma) or exp(...).
Add [virtual] blocks with duration and aliases for extra units.`

// initCmd writes a starter tense file.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a starter tense file",
	Long: `Create a .tense file holding the built-in unit table, ready to edit.

This command is non-destructive by default: it skips a file that already
exists. Use --force to regenerate it, or --global to create the user
tense file instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing tense file")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "create the global tense file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return exitError(ExitInvalidArgs, "tense: cannot resolve path %q (%v)", dir, err)
	}
	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "tense: cannot resolve path %q (%v)", dir, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "tense: path %q does not exist", dir)
	}
	if !info.IsDir() {
		return exitError(ExitInvalidArgs, "tense: %q is not a directory", dir)
	}

	target := config.LocalConfigPath(absPath)
	if initGlobal {
		target = config.GlobalConfigPath()
	}

	w := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	_, statErr := os.Stat(target)
	exists := !errors.Is(statErr, fs.ErrNotExist)
	if exists && !initForce {
		_, _ = fmt.Fprintf(w, "%s%s %s\n", dim.Sprint("  - "), target, dim.Sprint("(exists, use --force to overwrite)"))
		return nil
	}

	slog.Info("initializing tense file", "path", target)
	if err := writeMapping(target, config.Default(), initHeader); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "tense init complete")
	_, _ = fmt.Fprintln(w)
	if exists {
		_, _ = fmt.Fprintf(w, "%s%s %s\n", yellow.Sprint("  ~ "), target, dim.Sprint("(overwritten)"))
	} else {
		_, _ = fmt.Fprintf(w, "%s%s %s\n", green.Sprint("  + "), target, dim.Sprint("(created)"))
	}
	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "Next steps:")
	_, _ = fmt.Fprintln(w, "  1. Edit the aliases and add [virtual] units")
	_, _ = fmt.Fprintln(w, "  2. Run: tense check")
	_, _ = fmt.Fprintln(w, "  3. Try: tense parse 1h 30min")
	_, _ = fmt.Fprintln(w)
	return nil
}
