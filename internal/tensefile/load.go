// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package tensefile

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/davetashner/tense/internal/config"
)

// Layer is one configuration file that took part in LoadConfig.
type Layer struct {
	Path    string
	Mapping *config.Mapping
}

// LoadOptional loads path like Load but returns a nil mapping and no error
// when the file does not exist.
func LoadOptional(path string) (*config.Mapping, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return Load(path)
}

// LoadLayers loads the files that configure dir, lowest precedence first:
// the global tense file and then dir's .tense. When explicit is non-empty
// it replaces both and must exist. Missing implicit files are skipped.
func LoadLayers(dir, explicit string) ([]Layer, error) {
	if explicit != "" {
		m, err := Load(explicit)
		if err != nil {
			return nil, err
		}
		return []Layer{{Path: explicit, Mapping: m}}, nil
	}

	var layers []Layer
	for _, path := range config.SearchPaths(dir) {
		m, err := LoadOptional(path)
		if err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}
		slog.Debug("tense: loaded config layer", "path", path, "sections", m.Len())
		layers = append(layers, Layer{Path: path, Mapping: m})
	}
	return layers, nil
}

// LoadConfig returns the effective configuration for dir: the built-in
// defaults overlaid with every layer from LoadLayers.
func LoadConfig(dir, explicit string) (*config.Mapping, error) {
	layers, err := LoadLayers(dir, explicit)
	if err != nil {
		return nil, err
	}
	mappings := []*config.Mapping{config.Default()}
	for _, l := range layers {
		mappings = append(mappings, l.Mapping)
	}
	return config.MergeAll(mappings...)
}
