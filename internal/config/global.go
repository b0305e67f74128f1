// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
)

// GlobalFileName is the tense file name inside the global config directory.
const GlobalFileName = "default.tense"

// GlobalConfigDir returns the directory for global tense configuration.
// It uses $XDG_CONFIG_HOME/tense if set, otherwise ~/.config/tense.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tense")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tense")
}

// GlobalConfigPath returns the path to the global tense file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), GlobalFileName)
}

// LocalConfigPath returns the path to the tense file in dir.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, FileName)
}

// SearchPaths returns the user tense files in precedence order, lowest
// first: the global file, then the one in dir.
func SearchPaths(dir string) []string {
	return []string{GlobalConfigPath(), LocalConfigPath(dir)}
}
