// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"slices"
	"strings"
)

// SplitKeyPath splits "namespace.Type.attribute" into its section key and
// attribute. The section is always the first two dot-separated parts.
func SplitKeyPath(keyPath string) (section, attr string, err error) {
	parts := strings.SplitN(keyPath, ".", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("key path %q: want <namespace>.<Type>.<attribute>", keyPath)
	}
	return parts[0] + "." + parts[1], parts[2], nil
}

// ValidateKeyPath checks that keyPath names a known section and an
// attribute that section accepts.
func ValidateKeyPath(keyPath string) error {
	section, attr, err := SplitKeyPath(keyPath)
	if err != nil {
		return err
	}
	if !IsKnownSection(section) {
		return fmt.Errorf("%w %q; valid namespaces: %s", ErrUnknownSection, section, strings.Join(Namespaces(), ", "))
	}
	ns, _, _ := SplitSectionKey(section)
	if valid := Attributes(ns); !slices.Contains(valid, attr) {
		return fmt.Errorf("%w %q for %s; valid keys: %s", ErrUnknownKey, attr, section, strings.Join(valid, ", "))
	}
	return nil
}

// GetValue returns a copy of the value at keyPath. A bare section key
// ("units.Minute") returns the whole section.
func GetValue(m *Mapping, keyPath string) (any, error) {
	if _, _, ok := SplitSectionKey(keyPath); ok {
		attrs, found := m.Get(keyPath)
		if !found {
			return nil, fmt.Errorf("key %q not found", keyPath)
		}
		return attrs.Clone(), nil
	}
	section, attr, err := SplitKeyPath(keyPath)
	if err != nil {
		return nil, err
	}
	attrs, ok := m.Get(section)
	if !ok {
		return nil, fmt.Errorf("key %q not found", keyPath)
	}
	v, ok := attrs[attr]
	if !ok {
		return nil, fmt.Errorf("key %q not found", keyPath)
	}
	return cloneValue(v), nil
}

// SetValue stores value at keyPath, creating the section when needed.
// The value must have the shape the attribute expects.
func SetValue(m *Mapping, keyPath string, value any) error {
	if err := ValidateKeyPath(keyPath); err != nil {
		return err
	}
	section, attr, _ := SplitKeyPath(keyPath)
	if err := checkAttribute(section, attr, value); err != nil {
		return err
	}
	m.Ensure(section)[attr] = cloneValue(value)
	return nil
}

// FlattenMap returns every attribute keyed by its full dotted path.
func FlattenMap(m *Mapping) map[string]any {
	result := make(map[string]any)
	m.Each(func(key string, s Section) bool {
		for _, attr := range sortedSectionKeys(s) {
			result[key+"."+attr] = cloneValue(s[attr])
		}
		return true
	})
	return result
}

// FormatValue renders an attribute value the way it is written in a tense
// file.
func FormatValue(v any) string {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, ", ")
	case []Section:
		parts := make([]string, len(t))
		for i, s := range t {
			d, _ := s.Int(DurationKey)
			parts[i] = fmt.Sprintf("{duration=%d aliases=%s}", d, strings.Join(s.Aliases(), ","))
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprint(v)
	}
}
