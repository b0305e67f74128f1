// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsStructuredFile reports whether path has an extension LoadMappingFile
// understands. Anything else is treated as tense source.
func IsStructuredFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml", ".json":
		return true
	}
	return false
}

// LoadMappingFile reads a mapping stored as YAML, JSON or TOML, chosen by
// file extension.
func LoadMappingFile(path string) (*Mapping, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return DecodeTOML(string(data))
	case ".yaml", ".yml", ".json":
		// JSON is a subset of YAML.
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%s: unsupported mapping format", path)
	}
}

// DecodeYAML parses a YAML document whose top level maps section keys to
// attributes.
func DecodeYAML(data []byte) (*Mapping, error) {
	m := NewMapping()
	if len(strings.TrimSpace(string(data))) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// WriteYAML marshals the mapping to YAML and writes it to w.
func WriteYAML(w io.Writer, m *Mapping) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(m)
}
