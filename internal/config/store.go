// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"sync"
)

// Store is the repository of unit configuration consumed by parsers.
// Pass the same *Store to share state; call Clone for an isolated copy.
// A Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	mapping *Mapping
}

// NewStore returns a store seeded with a copy of m. A nil m seeds the
// built-in defaults.
func NewStore(m *Mapping) *Store {
	if m == nil {
		m = Default()
	} else {
		m = m.Clone()
	}
	return &Store{mapping: m}
}

// Snapshot returns a deep copy of the current mapping.
func (s *Store) Snapshot() *Mapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapping.Clone()
}

// Clone returns an independent store holding a copy of the current mapping.
func (s *Store) Clone() *Store {
	return &Store{mapping: s.Snapshot()}
}

// Setting returns a copy of one attribute of a section.
func (s *Store) Setting(section, key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attrs, ok := s.mapping.Get(section)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	v, ok := attrs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownKey, section, key)
	}
	return cloneValue(v), nil
}

// AddSetting adds a new section. It fails with ErrSettingExists when the
// section is already present.
func (s *Store) AddSetting(section string, attrs Section) error {
	if !IsKnownSection(section) {
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mapping.Has(section) {
		return fmt.Errorf("%w: %s", ErrSettingExists, section)
	}
	s.mapping.Set(section, attrs.Clone())
	return nil
}

// AddVirtualUnit appends a virtual unit to model.Tense.
func (s *Store) AddVirtualUnit(duration int64, aliases ...string) error {
	if len(aliases) == 0 {
		return fmt.Errorf("%w: virtual unit needs at least one alias", ErrInvalidValue)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	addVirtual(s.mapping, Section{
		DurationKey: duration,
		AliasesKey:  append([]string(nil), aliases...),
	})
	return nil
}

// AddAliases appends aliases to a unit. The unit may be given as "second",
// "Second" or "units.Second".
func (s *Store) AddAliases(unit string, aliases ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return addAliases(s.mapping, unit, aliases)
}

// Merge overlays m onto the stored mapping.
func (s *Store) Merge(m *Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, err := Merge(s.mapping, m)
	if err != nil {
		return err
	}
	s.mapping = merged
	return nil
}

// replace swaps in m wholesale. The store takes ownership of m.
func (s *Store) replace(m *Mapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapping = m
}

func addVirtual(m *Mapping, spec Section) {
	tense := m.Ensure(TenseSection)
	tense[VirtualKey] = append(tense.Virtual(), spec)
}

func addAliases(m *Mapping, unit string, aliases []string) error {
	key := UnitSectionKey(unit)
	attrs, ok := m.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}
	attrs[AliasesKey] = append(attrs.Aliases(), aliases...)
	return nil
}
