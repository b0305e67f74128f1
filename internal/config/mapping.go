// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Section holds the attributes of one section. Values are bool, int64,
// string, []string, or []Section (the model.Tense virtual list).
type Section map[string]any

// Mapping is a source-ordered map from section key to its attributes.
// The zero value is not usable; call NewMapping.
type Mapping struct {
	sections *orderedmap.OrderedMap[string, Section]
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{sections: orderedmap.New[string, Section]()}
}

// Len returns the number of sections.
func (m *Mapping) Len() int { return m.sections.Len() }

// Keys returns the section keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.sections.Len())
	for pair := m.sections.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Get returns the section stored under key. The returned Section is shared
// with the mapping.
func (m *Mapping) Get(key string) (Section, bool) {
	return m.sections.Get(key)
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.sections.Get(key)
	return ok
}

// Set stores s under key. Replacing an existing key keeps its position.
func (m *Mapping) Set(key string, s Section) {
	if s == nil {
		s = Section{}
	}
	m.sections.Set(key, s)
}

// Ensure returns the section under key, creating an empty one at the end
// when it is missing.
func (m *Mapping) Ensure(key string) Section {
	if s, ok := m.sections.Get(key); ok {
		return s
	}
	s := Section{}
	m.sections.Set(key, s)
	return s
}

// Delete removes key and returns the removed section.
func (m *Mapping) Delete(key string) (Section, bool) {
	return m.sections.Delete(key)
}

// Each calls fn for every section in order until fn returns false.
func (m *Mapping) Each(fn func(key string, s Section) bool) {
	for pair := m.sections.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a deep copy. Mutating the copy never affects m.
func (m *Mapping) Clone() *Mapping {
	out := NewMapping()
	for pair := m.sections.Oldest(); pair != nil; pair = pair.Next() {
		out.sections.Set(pair.Key, pair.Value.Clone())
	}
	return out
}

// ToMap converts the mapping into plain nested maps, dropping order.
func (m *Mapping) ToMap() map[string]map[string]any {
	out := make(map[string]map[string]any, m.sections.Len())
	for pair := m.sections.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value.plain()
	}
	return out
}

// Equal reports whether both mappings hold the same sections in the same order.
func (m *Mapping) Equal(other *Mapping) bool {
	if other == nil || m.Len() != other.Len() {
		return false
	}
	if !slices.Equal(m.Keys(), other.Keys()) {
		return false
	}
	a, b := m.ToMap(), other.ToMap()
	for k := range a {
		ja, _ := json.Marshal(a[k])
		jb, _ := json.Marshal(b[k])
		if !bytes.Equal(ja, jb) {
			return false
		}
	}
	return true
}

// MarshalJSON writes sections in order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := m.sections.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(pair.Value.plain())
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", pair.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits a mapping node whose keys follow section order.
func (m *Mapping) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for pair := m.sections.Oldest(); pair != nil; pair = pair.Next() {
		var val yaml.Node
		if err := val.Encode(pair.Value.plain()); err != nil {
			return nil, fmt.Errorf("section %s: %w", pair.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			&val,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a top-level mapping of sections, keeping file order.
func (m *Mapping) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of sections", value.Line)
	}
	if m.sections == nil {
		m.sections = orderedmap.New[string, Section]()
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var attrs map[string]any
		if err := valNode.Decode(&attrs); err != nil {
			return fmt.Errorf("section %s: %w", keyNode.Value, err)
		}
		m.sections.Set(keyNode.Value, NormalizeSection(attrs))
	}
	return nil
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	if s == nil {
		return nil
	}
	out := make(Section, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// Aliases returns the aliases attribute as a string slice.
func (s Section) Aliases() []string {
	aliases, _ := s[AliasesKey].([]string)
	return aliases
}

// Int returns an integer attribute.
func (s Section) Int(key string) (int64, bool) {
	v, ok := s[key].(int64)
	return v, ok
}

// Virtual returns the virtual unit list of a model.Tense section.
func (s Section) Virtual() []Section {
	v, _ := s[VirtualKey].([]Section)
	return v
}

func (s Section) plain() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = plainValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Section:
		return t.Clone()
	case map[string]any:
		return Section(t).Clone()
	case []string:
		return slices.Clone(t)
	case []Section:
		out := make([]Section, len(t))
		for i, s := range t {
			out[i] = s.Clone()
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func plainValue(v any) any {
	switch t := v.(type) {
	case Section:
		return t.plain()
	case []Section:
		out := make([]map[string]any, len(t))
		for i, s := range t {
			out[i] = s.plain()
		}
		return out
	default:
		return cloneValue(v)
	}
}

// NormalizeSection coerces decoded YAML/TOML/JSON attribute values into the
// shapes a compiled tense file produces: integers become int64, string lists
// become []string, and lists of maps become []Section.
func NormalizeSection(attrs map[string]any) Section {
	out := make(Section, len(attrs))
	for k, v := range attrs {
		out[k] = normalizeValue(v)
	}
	if list, ok := out[VirtualKey].([]string); ok && len(list) == 0 {
		out[VirtualKey] = []Section{}
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case uint64:
		return int64(t) //nolint:gosec // values come from small config files
	case float64:
		if t == float64(int64(t)) {
			return int64(t)
		}
		return t
	case map[string]any:
		return NormalizeSection(t)
	case Section:
		return NormalizeSection(t)
	case []map[string]any:
		out := make([]Section, len(t))
		for i, s := range t {
			out[i] = NormalizeSection(s)
		}
		return out
	case []any:
		return normalizeList(t)
	default:
		return v
	}
}

func normalizeList(list []any) any {
	if len(list) == 0 {
		return []string{}
	}
	strs := make([]string, 0, len(list))
	sections := make([]Section, 0, len(list))
	for _, e := range list {
		switch t := e.(type) {
		case string:
			strs = append(strs, t)
		case map[string]any:
			sections = append(sections, NormalizeSection(t))
		}
	}
	switch {
	case len(strs) == len(list):
		return strs
	case len(sections) == len(list):
		return sections
	}
	out := make([]any, len(list))
	for i, e := range list {
		out[i] = normalizeValue(e)
	}
	return out
}

// sortedSectionKeys returns the attribute names of s, sorted.
func sortedSectionKeys(s Section) []string {
	return slices.Sorted(maps.Keys(s))
}
