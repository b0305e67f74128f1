// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davetashner/tense/internal/config"
	"github.com/davetashner/tense/internal/output"
	"github.com/davetashner/tense/internal/tensefile"
)

// workDir returns the directory whose .tense file applies.
func workDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", exitError(ExitInvalidArgs, "tense: cannot determine working directory (%v)", err)
	}
	return wd, nil
}

// loadEffective returns the built-in units overlaid with the user's tense
// files, honoring --tense-file.
func loadEffective() (*config.Mapping, error) {
	wd, err := workDir()
	if err != nil {
		return nil, err
	}
	m, err := tensefile.LoadConfig(wd, tenseFile)
	if err != nil {
		return nil, exitError(ExitConfig, "tense: %v", err)
	}
	return m, nil
}

// targetPath returns the file that edits are written to: --tense-file when
// given, the global file with global set, and ./.tense otherwise.
func targetPath(global bool) (string, error) {
	if tenseFile != "" {
		return tenseFile, nil
	}
	if global {
		return config.GlobalConfigPath(), nil
	}
	wd, err := workDir()
	if err != nil {
		return "", err
	}
	return config.LocalConfigPath(wd), nil
}

// loadTarget loads the mapping stored at path, or an empty mapping when the
// file does not exist yet.
func loadTarget(path string) (*config.Mapping, error) {
	m, err := tensefile.LoadOptional(path)
	if err != nil {
		return nil, exitError(ExitConfig, "tense: %v", err)
	}
	if m == nil {
		m = config.NewMapping()
	}
	return m, nil
}

// formatterFor picks the output format matching path's extension. Anything
// that is not yaml, toml or json is written as tense source.
func formatterFor(path, header string) output.Formatter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return &output.YAMLFormatter{}
	case ".toml":
		return &output.TOMLFormatter{}
	case ".json":
		return &output.JSONFormatter{}
	default:
		return &output.TenseFormatter{Header: header}
	}
}

// writeMapping renders m in the format implied by path and replaces the
// file. Parent directories are created as needed.
func writeMapping(path string, m *config.Mapping, header string) error {
	var buf bytes.Buffer
	if err := formatterFor(path, header).Format(m, &buf); err != nil {
		return exitError(ExitConfig, "tense: cannot write %s (%v)", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("tense: cannot create %s (%w)", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("tense: cannot write %s (%w)", path, err)
	}
	return nil
}
