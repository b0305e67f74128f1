// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package output

import (
	"io"

	"github.com/davetashner/tense/internal/config"
)

func init() {
	RegisterFormatter(&YAMLFormatter{})
	RegisterFormatter(&TOMLFormatter{})
}

// YAMLFormatter writes a mapping as YAML, sections in order.
type YAMLFormatter struct{}

var _ Formatter = (*YAMLFormatter)(nil)

// Name returns the format name.
func (f *YAMLFormatter) Name() string { return "yaml" }

// Format writes m to w.
func (f *YAMLFormatter) Format(m *config.Mapping, w io.Writer) error {
	return config.WriteYAML(w, m)
}

// TOMLFormatter writes a mapping as TOML with one quoted table per section.
type TOMLFormatter struct{}

var _ Formatter = (*TOMLFormatter)(nil)

// Name returns the format name.
func (f *TOMLFormatter) Name() string { return "toml" }

// Format writes m to w.
func (f *TOMLFormatter) Format(m *config.Mapping, w io.Writer) error {
	return config.WriteTOML(w, m)
}
