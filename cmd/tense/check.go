// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/tense/internal/config"
	"github.com/davetashner/tense/internal/tensefile"
	"github.com/davetashner/tense/internal/units"
)

// checkCmd compiles and validates tense files.
var checkCmd = &cobra.Command{
	Use:   "check [file]...",
	Short: "Check tense files for errors",
	Long: `Compile and validate tense files, reporting every problem found.

Without arguments, checks the global tense file and ./.tense (or the file
given with --tense-file). Besides syntax, check verifies that every section
and attribute is known, that values have the right shape, and that the
units build on top of the built-in table.

Examples:
  tense check
  tense check team.tense .tense`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		var err error
		if paths, err = defaultCheckPaths(); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if len(paths) == 0 {
		_, _ = fmt.Fprintln(w, "No tense files found.")
		_, _ = fmt.Fprintln(w, "Run 'tense init' to create one.")
		return nil
	}

	results, err := tensefile.CompileFiles(cmd.Context(), paths, 0)
	if err != nil {
		return exitError(ExitConfig, "tense: check interrupted (%v)", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	dim := color.New(color.Faint)

	failed := 0
	for _, r := range results {
		err := r.Err
		if err == nil {
			err = checkMapping(r.Mapping)
		}
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", red.Sprint("FAIL"), r.Path)
			for _, line := range strings.Split(err.Error(), "\n") {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "     %s\n", strings.TrimSpace(line))
			}
			continue
		}
		_, _ = fmt.Fprintf(w, "%s   %s %s\n", green.Sprint("ok"), r.Path, dim.Sprintf("(%d sections)", r.Mapping.Len()))
	}

	if failed > 0 {
		return exitError(ExitConfig, "tense: %d of %d files have errors", failed, len(results))
	}
	return nil
}

// checkMapping validates m and builds the unit model it produces on top of
// the defaults.
func checkMapping(m *config.Mapping) error {
	if err := config.Validate(m); err != nil {
		return err
	}
	merged, err := config.Merge(config.Default(), m)
	if err != nil {
		return err
	}
	_, err = units.FromMapping(merged)
	return err
}

// defaultCheckPaths returns the tense files that currently apply.
func defaultCheckPaths() ([]string, error) {
	if tenseFile != "" {
		return []string{tenseFile}, nil
	}
	wd, err := workDir()
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, p := range config.SearchPaths(wd) {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		paths = append(paths, p)
	}
	return paths, nil
}
