// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// DecodeTOML parses a TOML document of quoted section tables, for example
// ["units.Minute"]. Section order follows the document.
func DecodeTOML(data string) (*Mapping, error) {
	var raw map[string]map[string]any
	md, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, err
	}
	m := NewMapping()
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		attrs, ok := raw[key[0]]
		if !ok {
			return nil, fmt.Errorf("toml: %s is not a table", key[0])
		}
		m.Set(key[0], NormalizeSection(attrs))
	}
	return m, nil
}

// WriteTOML encodes the mapping as TOML. TOML tables are unordered, so the
// encoder sorts sections by key.
func WriteTOML(w io.Writer, m *Mapping) error {
	return toml.NewEncoder(w).Encode(m.ToMap())
}
