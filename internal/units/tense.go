// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package units

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/davetashner/tense/internal/config"
)

// Tense is the full set of units a parser recognizes plus the global
// multiplier applied to every duration.
type Tense struct {
	Multiplier int64
	units      []Unit
}

// New returns a Tense over the given units.
func New(multiplier int64, units ...Unit) *Tense {
	if multiplier <= 0 {
		slog.Warn("time multiplier is not positive; parsing may be incorrect", "multiplier", multiplier)
	}
	t := &Tense{Multiplier: multiplier}
	for _, u := range units {
		t.units = append(t.units, newUnit(u.Name, u.Kind, u.Aliases, u.Duration))
	}
	return t
}

// FromMapping builds a Tense from a compiled mapping. units.<Kind> sections
// become units in mapping order, followed by the virtual units listed under
// model.Tense, named virtual0, virtual1, and so on.
func FromMapping(m *config.Mapping) (*Tense, error) {
	t := &Tense{Multiplier: 1}
	var virtual []config.Section

	var err error
	m.Each(func(key string, attrs config.Section) bool {
		ns, typ, ok := config.SplitSectionKey(key)
		if !ok || !config.IsKnownSection(key) {
			err = fmt.Errorf("%w: %s", config.ErrUnknownSection, key)
			return false
		}
		if ns == config.ModelNamespace {
			virtual, err = t.applyModel(attrs)
			return err == nil
		}
		var u Unit
		u, err = fromSection(typ, Kind(typ), attrs)
		if err != nil {
			return false
		}
		t.units = append(t.units, u)
		return true
	})
	if err != nil {
		return nil, err
	}

	if t.Multiplier <= 0 {
		slog.Warn("time multiplier is not positive; parsing may be incorrect", "multiplier", t.Multiplier)
	}

	for i, spec := range virtual {
		u, err := fromSection("virtual"+strconv.Itoa(i), KindVirtualUnit, spec)
		if err != nil {
			return nil, err
		}
		t.units = append(t.units, u)
	}
	return t, nil
}

// FromStore builds a Tense from a snapshot of s.
func FromStore(s *config.Store) (*Tense, error) {
	return FromMapping(s.Snapshot())
}

func (t *Tense) applyModel(attrs config.Section) ([]config.Section, error) {
	var virtual []config.Section
	for key, raw := range attrs {
		switch key {
		case config.MultiplierKey:
			m, ok := raw.(int64)
			if !ok {
				return nil, fmt.Errorf("%s.%s: %w: want an integer, got %T", config.TenseSection, key, config.ErrInvalidValue, raw)
			}
			t.Multiplier = m
		case config.VirtualKey:
			specs, ok := raw.([]config.Section)
			if !ok {
				return nil, fmt.Errorf("%s.%s: %w: want a list, got %T", config.TenseSection, key, config.ErrInvalidValue, raw)
			}
			virtual = specs
		default:
			return nil, fmt.Errorf("%s: %w %q", config.TenseSection, config.ErrUnknownKey, key)
		}
	}
	return virtual, nil
}

// Units returns a copy of every unit in declaration order.
func (t *Tense) Units() []Unit {
	out := make([]Unit, len(t.units))
	copy(out, t.units)
	return out
}

// Aliases returns the aliases of every unit, in unit order.
func (t *Tense) Aliases() []string {
	var out []string
	for _, u := range t.units {
		out = append(out, u.Aliases...)
	}
	return out
}

// Lookup returns the units that have alias.
func (t *Tense) Lookup(alias string) []Unit {
	var out []Unit
	for _, u := range t.units {
		if u.Has(alias) {
			out = append(out, u)
		}
	}
	return out
}

// Unit returns the first unit named name.
func (t *Tense) Unit(name string) (Unit, bool) {
	for _, u := range t.units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}
