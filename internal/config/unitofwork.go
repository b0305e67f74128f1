// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"slices"
)

// ErrClosed is returned when a UnitOfWork is used after Commit or Rollback.
var ErrClosed = errors.New("unit of work already closed")

// UnitOfWork batches alias edits against a working copy of a Store.
// Nothing is visible to other store users until Commit.
type UnitOfWork struct {
	store   *Store
	working *Mapping
	closed  bool
}

// Begin starts a unit of work on store.
func Begin(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store, working: store.Snapshot()}
}

// Mapping returns the working copy. Edits to it are committed with the rest.
func (u *UnitOfWork) Mapping() *Mapping { return u.working }

// UpdateConfig overlays m onto the working copy.
func (u *UnitOfWork) UpdateConfig(m *Mapping) error {
	if u.closed {
		return ErrClosed
	}
	merged, err := Merge(u.working, m)
	if err != nil {
		return err
	}
	u.working = merged
	return nil
}

// AddAliases appends aliases to unit.
func (u *UnitOfWork) AddAliases(unit string, aliases ...string) error {
	if u.closed {
		return ErrClosed
	}
	return addAliases(u.working, unit, aliases)
}

// DeleteAliases removes each alias from unit. Removing an alias the unit
// does not have is an error and leaves the working copy unchanged.
func (u *UnitOfWork) DeleteAliases(unit string, aliases ...string) error {
	if u.closed {
		return ErrClosed
	}
	key := UnitSectionKey(unit)
	attrs, ok := u.working.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}
	current := slices.Clone(attrs.Aliases())
	for _, alias := range aliases {
		i := slices.Index(current, alias)
		if i < 0 {
			return fmt.Errorf("%w: %s has no alias %q", ErrInvalidValue, key, alias)
		}
		current = slices.Delete(current, i, i+1)
	}
	attrs[AliasesKey] = current
	return nil
}

// ReplaceAliases renames aliases of unit in place, keeping their positions.
// Keys of replacements that the unit does not have are ignored.
func (u *UnitOfWork) ReplaceAliases(unit string, replacements map[string]string) error {
	if u.closed {
		return ErrClosed
	}
	key := UnitSectionKey(unit)
	attrs, ok := u.working.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}
	current := slices.Clone(attrs.Aliases())
	for i, alias := range current {
		if repl, ok := replacements[alias]; ok {
			current[i] = repl
		}
	}
	attrs[AliasesKey] = current
	return nil
}

// Commit publishes the working copy to the store.
func (u *UnitOfWork) Commit() error {
	if u.closed {
		return ErrClosed
	}
	u.closed = true
	u.store.replace(u.working)
	return nil
}

// Rollback discards the working copy. It is safe to call after Commit.
func (u *UnitOfWork) Rollback() {
	u.closed = true
	u.working = nil
}
