// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks every section and attribute of m and returns all
// problems at once. Non-positive durations are not errors here; the unit
// builder warns about them.
func Validate(m *Mapping) error {
	var errs []string

	m.Each(func(key string, s Section) bool {
		ns, _, ok := SplitSectionKey(key)
		if !ok || !IsKnownSection(key) {
			errs = append(errs, fmt.Sprintf("%s: %v", key, ErrUnknownSection))
			return true
		}
		valid := Attributes(ns)
		for _, attr := range sortedSectionKeys(s) {
			if !slices.Contains(valid, attr) {
				errs = append(errs, fmt.Sprintf("%s.%s: %v (valid keys: %s)", key, attr, ErrUnknownKey, strings.Join(valid, ", ")))
				continue
			}
			if err := checkAttribute(key, attr, s[attr]); err != nil {
				errs = append(errs, err.Error())
			}
		}
		return true
	})

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// checkAttribute verifies the shape of one attribute value.
func checkAttribute(section, attr string, v any) error {
	path := section + "." + attr
	switch attr {
	case DurationKey, MultiplierKey:
		if _, ok := v.(int64); !ok {
			return fmt.Errorf("%s: %w: want an integer, got %T", path, ErrInvalidValue, v)
		}
	case AliasesKey:
		aliases, ok := v.([]string)
		if !ok {
			return fmt.Errorf("%s: %w: want a list of aliases, got %T", path, ErrInvalidValue, v)
		}
		for _, a := range aliases {
			if strings.TrimSpace(a) == "" {
				return fmt.Errorf("%s: %w: empty alias", path, ErrInvalidValue)
			}
		}
	case VirtualKey:
		specs, ok := v.([]Section)
		if !ok {
			return fmt.Errorf("%s: %w: want a list of virtual units, got %T", path, ErrInvalidValue, v)
		}
		for i, spec := range specs {
			for _, k := range sortedSectionKeys(spec) {
				if k != DurationKey && k != AliasesKey {
					return fmt.Errorf("%s[%d].%s: %w", path, i, k, ErrUnknownKey)
				}
			}
			if _, ok := spec[DurationKey]; !ok {
				return fmt.Errorf("%s[%d]: %w: missing duration", path, i, ErrInvalidValue)
			}
			if _, ok := spec[AliasesKey]; !ok {
				return fmt.Errorf("%s[%d]: %w: missing aliases", path, i, ErrInvalidValue)
			}
			for _, k := range []string{DurationKey, AliasesKey} {
				if err := checkAttribute(fmt.Sprintf("%s[%d]", path, i), k, spec[k]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
