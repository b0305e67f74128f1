// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/tense/internal/config"
)

// Alias command flags.
var aliasGlobal bool

// aliasCmd is the parent command for alias edits.
var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Add, remove or rename unit aliases",
	Long: `Edit the aliases of a unit in a tense file.

A unit may be named as "minute", "Minute" or "units.Minute". When the file
does not mention the unit yet, its current aliases are copied in first so
the edit applies on top of what is in effect. All edits of one command are
applied together or not at all.

By default, edits .tense in the current directory.
Use --global to edit the user tense file.`,
}

var aliasAddCmd = &cobra.Command{
	Use:   "add <unit> <alias>...",
	Short: "Add aliases to a unit",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editAliases(cmd, args[0], func(u *config.UnitOfWork, unit string) error {
			return u.AddAliases(unit, args[1:]...)
		}, "Added %s to %s\n", strings.Join(args[1:], ", "))
	},
}

var aliasRmCmd = &cobra.Command{
	Use:     "rm <unit> <alias>...",
	Aliases: []string{"remove"},
	Short:   "Remove aliases from a unit",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editAliases(cmd, args[0], func(u *config.UnitOfWork, unit string) error {
			return u.DeleteAliases(unit, args[1:]...)
		}, "Removed %s from %s\n", strings.Join(args[1:], ", "))
	},
}

var aliasMvCmd = &cobra.Command{
	Use:     "mv <unit> <old> <new>",
	Aliases: []string{"rename"},
	Short:   "Rename an alias of a unit",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editAliases(cmd, args[0], func(u *config.UnitOfWork, unit string) error {
			attrs, _ := u.Mapping().Get(config.UnitSectionKey(unit))
			if !slices.Contains(attrs.Aliases(), args[1]) {
				return fmt.Errorf("%w: %s has no alias %q", config.ErrInvalidValue, config.UnitSectionKey(unit), args[1])
			}
			return u.ReplaceAliases(unit, map[string]string{args[1]: args[2]})
		}, "Renamed %s in %s\n", args[1]+" -> "+args[2])
	},
}

func init() {
	aliasCmd.PersistentFlags().BoolVar(&aliasGlobal, "global", false, "edit the global tense file")

	aliasCmd.AddCommand(aliasAddCmd)
	aliasCmd.AddCommand(aliasRmCmd)
	aliasCmd.AddCommand(aliasMvCmd)
}

// editAliases applies edit to the target tense file in one unit of work
// and writes the result back.
func editAliases(cmd *cobra.Command, unit string, edit func(*config.UnitOfWork, string) error, done, what string) error {
	key := config.UnitSectionKey(unit)
	if !config.IsKnownSection(key) {
		return exitError(ExitInvalidArgs, "tense: unknown unit %q (valid: %s)", unit, strings.Join(config.TypeNames(config.UnitsNamespace), ", "))
	}

	path, err := targetPath(aliasGlobal)
	if err != nil {
		return err
	}
	target, err := loadTarget(path)
	if err != nil {
		return err
	}
	if !target.Has(key) {
		effective, err := loadEffective()
		if err != nil {
			return err
		}
		seed := config.Section{config.AliasesKey: []string{}}
		if attrs, ok := effective.Get(key); ok {
			seed[config.AliasesKey] = slices.Clone(attrs.Aliases())
		}
		target.Set(key, seed)
	}

	store := config.NewStore(target)
	uow := config.Begin(store)
	defer uow.Rollback()

	if err := edit(uow, unit); err != nil {
		return exitError(ExitInvalidArgs, "tense: %v", err)
	}
	if err := config.Validate(uow.Mapping()); err != nil {
		return exitError(ExitConfig, "tense: %v", err)
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	if err := writeMapping(path, store.Snapshot(), ""); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), done, what, key)
	return nil
}
