// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

// Package units builds the typed unit model that parsers consume from a
// compiled configuration mapping.
package units

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/davetashner/tense/internal/config"
)

// Kind is the type name of a unit section, for example "Minute".
type Kind string

// Unit kinds.
const (
	KindUnit        Kind = "Unit"
	KindSecond      Kind = "Second"
	KindMinute      Kind = "Minute"
	KindHour        Kind = "Hour"
	KindDay         Kind = "Day"
	KindWeek        Kind = "Week"
	KindYear        Kind = "Year"
	KindVirtualUnit Kind = "VirtualUnit"
)

// defaultDurations holds the duration a kind falls back to when its section
// omits one. Unit and VirtualUnit have none.
var defaultDurations = map[Kind]int64{
	KindSecond: 1,
	KindMinute: 60,
	KindHour:   60 * 60,
	KindDay:    60 * 60 * 24,
	KindWeek:   60 * 60 * 24 * 7,
	KindYear:   60 * 60 * 24 * 365,
}

// DefaultDuration returns the built-in duration of k in seconds.
func DefaultDuration(k Kind) (int64, bool) {
	d, ok := defaultDurations[k]
	return d, ok
}

// Unit is one unit of time.
type Unit struct {
	// Name is the kind for configured units and virtual<N> for virtual ones.
	Name     string
	Kind     Kind
	Aliases  []string
	Duration int64 // seconds
}

// Virtual reports whether u was declared as a virtual unit.
func (u Unit) Virtual() bool { return u.Kind == KindVirtualUnit }

// Has reports whether alias is one of u's aliases. Matching is case-sensitive.
func (u Unit) Has(alias string) bool { return slices.Contains(u.Aliases, alias) }

func newUnit(name string, kind Kind, aliases []string, duration int64) Unit {
	if duration <= 0 {
		slog.Warn("unit duration is not positive; parsing may be incorrect",
			"unit", name, "duration", duration)
	}
	return Unit{Name: name, Kind: kind, Aliases: slices.Clone(aliases), Duration: duration}
}

// fromSection builds a unit from a units.<Kind> or virtual section.
func fromSection(name string, kind Kind, attrs config.Section) (Unit, error) {
	for key := range attrs {
		if key != config.DurationKey && key != config.AliasesKey {
			return Unit{}, fmt.Errorf("%s: %w %q", name, config.ErrUnknownKey, key)
		}
	}

	aliasesRaw, ok := attrs[config.AliasesKey]
	if !ok {
		return Unit{}, fmt.Errorf("%s: %w: missing aliases", name, config.ErrInvalidValue)
	}
	aliases, ok := aliasesRaw.([]string)
	if !ok {
		return Unit{}, fmt.Errorf("%s: %w: aliases must be a list, got %T", name, config.ErrInvalidValue, aliasesRaw)
	}

	duration, hasDefault := defaultDurations[kind]
	if raw, ok := attrs[config.DurationKey]; ok {
		d, isInt := raw.(int64)
		if !isInt {
			return Unit{}, fmt.Errorf("%s: %w: duration must be an integer, got %T", name, config.ErrInvalidValue, raw)
		}
		duration = d
	} else if !hasDefault {
		return Unit{}, fmt.Errorf("%s: %w: missing duration", name, config.ErrInvalidValue)
	}

	return newUnit(name, kind, aliases, duration), nil
}
