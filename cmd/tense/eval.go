// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/tense/internal/safeeval"
	"github.com/davetashner/tense/internal/tensefile"
)

// evalCmd evaluates an exp(...) expression outside a tense file.
var evalCmd = &cobra.Command{
	Use:   "eval <expr>...",
	Short: "Evaluate an integer expression",
	Long: `Evaluate the expression language used inside exp(...) in tense files.

Integers, + - * / (truncating division), unary minus and parentheses are
supported. second, minute, hour, day, week and year are constants holding
their length in seconds. Arguments are joined with spaces.

Examples:
  tense eval "week * 2"
  tense eval "(day + hour) / minute"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	expr := strings.Join(args, " ")
	v, err := safeeval.Evaluate(expr, tensefile.UnitConstants())
	if err != nil {
		return exitError(ExitEval, "tense: %v", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
