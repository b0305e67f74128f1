// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes tense's parsing and compilation as tools over stdio transport.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/davetashner/tense/internal/config"
)

// PathInfo holds the resolved location used for tense file lookup.
type PathInfo struct {
	// AbsPath is the absolute, symlink-resolved path.
	AbsPath string
	// ConfigRoot is the nearest directory at or above AbsPath holding a
	// .tense file, or AbsPath when there is none.
	ConfigRoot string
}

// ResolvePath resolves a working directory to an absolute path and finds
// the tense file that governs it.
// It returns an error if the path does not exist or is not a directory.
func ResolvePath(path string) (*PathInfo, error) {
	if path == "" {
		path = "."
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("path %q does not exist", path)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", path)
	}

	// Walk up to find the nearest .tense file.
	root := absPath
	for {
		if _, err := os.Stat(config.LocalConfigPath(root)); err == nil {
			break
		}
		parent := filepath.Dir(root)
		if parent == root {
			root = absPath
			break
		}
		root = parent
	}

	return &PathInfo{
		AbsPath:    absPath,
		ConfigRoot: root,
	}, nil
}
