// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	tenselog "github.com/davetashner/tense/internal/log"
)

// Global flag values.
var (
	verbose   bool
	quiet     bool
	noColor   bool
	logJSON   bool
	tenseFile string
)

// rootCmd is the base command for tense.
var rootCmd = &cobra.Command{
	Use:   "tense",
	Short: "Parse human durations with configurable units",
	Long: `Tense turns human duration text such as "1h 30min" or "2 weeks and a day"
into seconds. Units, their aliases and extra virtual units are declared in
tense files: ./.tense for a project and default.tense in the user config
directory. Project files override the user file, and both override the
built-in unit table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
		tenselog.Setup(tenselog.Options{
			Verbose: verbose,
			Quiet:   quiet,
			JSON:    logJSON,
			Writer:  cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write log records as JSON")
	rootCmd.PersistentFlags().StringVar(&tenseFile, "tense-file", "", "use this tense file instead of the global and local ones")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
