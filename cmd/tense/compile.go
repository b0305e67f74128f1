// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/tense/internal/config"
	"github.com/davetashner/tense/internal/output"
	"github.com/davetashner/tense/internal/tensefile"
)

// Compile-specific flag values.
var (
	compileFormat   string
	compileOutput   string
	compileDefaults bool
	compileJobs     int
)

// compileCmd compiles tense files and prints the resulting configuration.
var compileCmd = &cobra.Command{
	Use:   "compile <file>...",
	Short: "Compile tense files into a unit configuration",
	Long: `Compile one or more tense files and print the resulting configuration.

Files are compiled concurrently and merged left to right, so later files
override earlier ones attribute by attribute. Files ending in .yaml, .yml,
.toml or .json are loaded as mappings instead of compiled.

Examples:
  tense compile .tense
  tense compile --defaults --format tense team.tense .tense
  tense compile -f toml -o units.toml .tense`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileFormat, "format", "f", "json", "output format: json, yaml, toml, tense")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write output to a file instead of stdout")
	compileCmd.Flags().BoolVar(&compileDefaults, "defaults", false, "merge the result onto the built-in unit table")
	compileCmd.Flags().IntVarP(&compileJobs, "jobs", "j", 0, "maximum files compiled at once (0 = unlimited)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	formatter, err := output.GetFormatter(compileFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "tense: %v", err)
	}

	results, err := tensefile.CompileFiles(cmd.Context(), args, compileJobs)
	if err != nil {
		return exitError(ExitConfig, "tense: compile interrupted (%v)", err)
	}

	red := color.New(color.FgRed)
	var layers []*config.Mapping
	if compileDefaults {
		layers = append(layers, config.Default())
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", red.Sprint("error:"), r.Err)
			continue
		}
		slog.Debug("compiled", "path", r.Path, "sections", r.Mapping.Len())
		layers = append(layers, r.Mapping)
	}
	if failed > 0 {
		return exitError(ExitConfig, "tense: %d of %d files failed to compile", failed, len(results))
	}

	merged, err := config.MergeAll(layers...)
	if err != nil {
		return exitError(ExitConfig, "tense: %v", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if compileOutput != "" {
		f, err := os.Create(compileOutput) //nolint:gosec // user-provided output path
		if err != nil {
			return exitError(ExitInvalidArgs, "tense: cannot create %q (%v)", compileOutput, err)
		}
		defer f.Close() //nolint:errcheck // best-effort close; write errors are checked below
		w = f
	}

	if err := formatter.Format(merged, w); err != nil {
		return exitError(ExitConfig, "tense: %v", err)
	}
	return nil
}
