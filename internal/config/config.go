// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

// Package config holds the unit configuration mapping produced by compiling
// tense files, the built-in defaults, and the store that hands it out.
package config

import (
	"errors"
	"slices"
	"sort"
	"strings"
)

// FileName is the expected tense file name in a working directory.
const FileName = ".tense"

// Well-known section and attribute names.
const (
	TenseSection  = "model.Tense"
	VirtualKey    = "virtual"
	MultiplierKey = "multiplier"
	DurationKey   = "duration"
	AliasesKey    = "aliases"
)

// Recognized namespaces.
const (
	ModelNamespace = "model"
	UnitsNamespace = "units"
)

var (
	// ErrUnknownSection is returned for a section key outside the known vocabulary.
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownKey is returned for an attribute a section does not accept.
	ErrUnknownKey = errors.New("unknown key")
	// ErrInvalidValue is returned when an attribute has the wrong shape.
	ErrInvalidValue = errors.New("invalid value")
	// ErrSettingExists is returned when adding a section that is already present.
	ErrSettingExists = errors.New("setting already exists")
)

// types lists the type names accepted in each namespace, in declaration order.
var types = map[string][]string{
	ModelNamespace: {"Tense"},
	UnitsNamespace: {"Unit", "Second", "Minute", "Hour", "Day", "Week", "Year", "VirtualUnit"},
}

// attributes lists the attribute keys accepted per namespace.
var attributes = map[string][]string{
	ModelNamespace: {MultiplierKey, VirtualKey},
	UnitsNamespace: {DurationKey, AliasesKey},
}

// Namespaces returns the recognized namespace names, sorted.
func Namespaces() []string {
	names := make([]string, 0, len(types))
	for ns := range types {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// TypeNames returns the type names recognized under namespace, or nil.
func TypeNames(namespace string) []string {
	return slices.Clone(types[namespace])
}

// AllTypeNames returns every recognized type name across namespaces.
func AllTypeNames() []string {
	var names []string
	for _, ns := range Namespaces() {
		names = append(names, types[ns]...)
	}
	return names
}

// Attributes returns the attribute keys accepted by sections in namespace.
func Attributes(namespace string) []string {
	return slices.Clone(attributes[namespace])
}

// SectionKey joins a namespace and type name into a section key.
func SectionKey(namespace, typeName string) string {
	return namespace + "." + typeName
}

// SplitSectionKey splits "namespace.Type". It reports false when key does
// not have exactly one dot or either side is empty.
func SplitSectionKey(key string) (namespace, typeName string, ok bool) {
	namespace, typeName, found := strings.Cut(key, ".")
	if !found || namespace == "" || typeName == "" || strings.Contains(typeName, ".") {
		return "", "", false
	}
	return namespace, typeName, true
}

// IsKnownSection reports whether key names a recognized namespace and type.
func IsKnownSection(key string) bool {
	ns, typ, ok := SplitSectionKey(key)
	if !ok {
		return false
	}
	return slices.Contains(types[ns], typ)
}

// UnitSectionKey normalizes a unit reference. "second", "Second" and
// "units.Second" all resolve to "units.Second".
func UnitSectionKey(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	for _, typ := range types[UnitsNamespace] {
		if strings.EqualFold(typ, name) {
			return SectionKey(UnitsNamespace, typ)
		}
	}
	if name == "" {
		return SectionKey(UnitsNamespace, name)
	}
	return SectionKey(UnitsNamespace, strings.ToUpper(name[:1])+strings.ToLower(name[1:]))
}
