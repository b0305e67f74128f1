// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"dario.cat/mergo"
)

// Merge overlays src onto base and returns the result. Sections present in
// both have their attributes merged, with src winning per attribute. Sections
// only in src are appended in src order. Neither input is modified.
func Merge(base, src *Mapping) (*Mapping, error) {
	out := base.Clone()
	if src == nil {
		return out, nil
	}
	var err error
	src.Each(func(key string, s Section) bool {
		overlay := s.Clone()
		dst, ok := out.Get(key)
		if !ok {
			out.Set(key, overlay)
			return true
		}
		if mergeErr := mergo.Merge(&dst, overlay, mergo.WithOverride); mergeErr != nil {
			err = fmt.Errorf("merging %s: %w", key, mergeErr)
			return false
		}
		out.Set(key, dst)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MergeAll folds each mapping onto the previous one, left to right. Nil
// entries are skipped.
func MergeAll(layers ...*Mapping) (*Mapping, error) {
	out := NewMapping()
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		merged, err := Merge(out, layer)
		if err != nil {
			return nil, err
		}
		out = merged
	}
	return out, nil
}
