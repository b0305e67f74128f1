// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/tense/internal/config"
	"github.com/davetashner/tense/internal/tensefile"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify unit configuration",
	Long: `View and modify unit configuration.

Tense reads .tense in the current directory and default.tense in the user
config directory ($XDG_CONFIG_HOME/tense or ~/.config/tense). Local
settings override global settings, which override the built-in units.

Keys are dotted paths of the form <namespace>.<Type>.<attribute>, for
example units.Minute.aliases or model.Tense.multiplier.

Note: config set rewrites the file and will not preserve comments.
If you need to keep comments, edit the file directly.`,
}

// configGetCmd retrieves a configuration value by key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dotted key path. A section key such as
units.Minute prints every attribute of the section.

Examples:
  tense config get units.Minute.duration
  tense config get units.Minute
  tense config get --global model.Tense.multiplier`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in a tense file.

Values use tense file syntax: digits, true/false, a comma list or exp(...).
A value for an aliases key without a comma is taken as a single alias.
By default, writes to .tense in the current directory.
Use --global to write to the user tense file.

Examples:
  tense config set units.Minute.aliases "m, min, mins"
  tense config set units.Week.aliases wk
  tense config set model.Tense.multiplier 2
  tense config set --global units.Day.duration "exp(hour * 8)"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List every effective configuration value with its source annotation.

Each value is annotated with where it comes from: the built-in defaults,
the global tense file, the local .tense, or the file given with
--tense-file.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "read only the global tense file")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to the global tense file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]

	var m *config.Mapping
	var err error
	if configGlobal {
		m, err = loadTarget(config.GlobalConfigPath())
	} else {
		m, err = loadEffective()
	}
	if err != nil {
		return err
	}

	val, err := config.GetValue(m, keyPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "tense: %v", err)
	}
	printValue(cmd, val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath, rawValue := args[0], args[1]

	if err := config.ValidateKeyPath(keyPath); err != nil {
		return exitError(ExitInvalidArgs, "tense: %v", err)
	}
	_, attr, _ := config.SplitKeyPath(keyPath)

	value, err := convertSetting(attr, rawValue)
	if err != nil {
		return exitError(ExitInvalidArgs, "tense: %v", err)
	}

	path, err := targetPath(configGlobal)
	if err != nil {
		return err
	}
	m, err := loadTarget(path)
	if err != nil {
		return err
	}

	if err := config.SetValue(m, keyPath, value); err != nil {
		return exitError(ExitInvalidArgs, "tense: %v", err)
	}
	if err := config.Validate(m); err != nil {
		return exitError(ExitConfig, "tense: %v", err)
	}
	if err := writeMapping(path, m, ""); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, config.FormatValue(value))
	return nil
}

// convertSetting converts a command-line value with the tense file value
// converters.
func convertSetting(attr, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if attr == config.AliasesKey && raw != "" && !strings.Contains(raw, ",") {
		return []string{raw}, nil
	}
	return tensefile.ConvertValue(raw)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	wd, err := workDir()
	if err != nil {
		return err
	}
	layers, err := tensefile.LoadLayers(wd, tenseFile)
	if err != nil {
		return exitError(ExitConfig, "tense: %v", err)
	}

	type entry struct {
		value  any
		source string
	}

	seen := make(map[string]entry)
	for k, v := range config.FlattenMap(config.Default()) {
		seen[k] = entry{value: v, source: "default"}
	}
	for _, l := range layers {
		source := layerSource(l.Path, wd)
		for k, v := range config.FlattenMap(l.Mapping) {
			seen[k] = entry{value: v, source: source}
		}
	}

	// Sort keys for stable output.
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		e := seen[k]
		_, _ = fmt.Fprintf(w, "%s = %s %s\n", k, config.FormatValue(e.value), formatSource(e.source))
	}

	if len(layers) == 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "No tense files found; showing built-in defaults.")
		_, _ = fmt.Fprintln(w, "Run 'tense init' to create one, or 'tense config set <key> <value>' to set values.")
	}
	return nil
}

// layerSource names the origin of a configuration layer.
func layerSource(path, wd string) string {
	switch filepath.Clean(path) {
	case filepath.Clean(config.GlobalConfigPath()):
		return "global"
	case filepath.Clean(config.LocalConfigPath(wd)):
		return "local"
	default:
		return "file"
	}
}

// printValue outputs a value: a section as one attribute per line, anything
// else on a single line.
func printValue(cmd *cobra.Command, val any) {
	w := cmd.OutOrStdout()
	section, ok := val.(config.Section)
	if !ok {
		_, _ = fmt.Fprintln(w, config.FormatValue(val))
		return
	}
	keys := make([]string, 0, len(section))
	for k := range section {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s = %s\n", k, config.FormatValue(section[k]))
	}
}

// formatSource returns a colorized source annotation.
func formatSource(source string) string {
	switch source {
	case "global":
		return color.New(color.FgCyan).Sprintf("(global)")
	case "local":
		return color.New(color.FgGreen).Sprintf("(local)")
	case "file":
		return color.New(color.FgYellow).Sprintf("(file)")
	default:
		return color.New(color.Faint).Sprintf("(%s)", source)
	}
}
