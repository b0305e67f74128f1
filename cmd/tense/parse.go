// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/tense/internal/parser"
	"github.com/davetashner/tense/internal/resolver"
	"github.com/davetashner/tense/internal/units"
)

// Parse-specific flag values.
var (
	parseSmart     bool
	parseTimedelta bool
)

// parseCmd parses duration text into seconds.
var parseCmd = &cobra.Command{
	Use:   "parse <text>...",
	Short: "Parse a human duration",
	Long: `Parse duration text into a number of seconds using the built-in units
and any tense files that apply. Arguments are joined with spaces.

A unit word counts only when a number comes right before it, so
"1h 30min" is 5400 while "hour 30" is 0.

Examples:
  tense parse 1d2minutes 5 sec
  tense parse --smart "1 year and 10 minutes + 5 seconds"
  tense parse --timedelta 90 min`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseSmart, "smart", false, "tolerate prose and punctuation between numbers and units")
	parseCmd.Flags().BoolVar(&parseTimedelta, "timedelta", false, "print a duration such as 1w2d3h instead of seconds")
}

func runParse(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	m, err := loadEffective()
	if err != nil {
		return err
	}
	tense, err := units.FromMapping(m)
	if err != nil {
		return exitError(ExitConfig, "tense: %v", err)
	}

	var opts []parser.Option
	if parseSmart {
		opts = append(opts, parser.WithResolver(resolver.Smart))
	}

	w := cmd.OutOrStdout()
	if parseTimedelta {
		d, err := parser.NewTimedelta(tense, opts...).Parse(text)
		if err != nil {
			return exitError(ExitEval, "tense: cannot parse %q (%v)", text, err)
		}
		_, _ = fmt.Fprintln(w, parser.FormatDuration(d))
		return nil
	}

	seconds, err := parser.NewDigit(tense, opts...).Parse(text)
	if err != nil {
		return exitError(ExitEval, "tense: cannot parse %q (%v)", text, err)
	}
	_, _ = fmt.Fprintln(w, seconds)
	return nil
}
