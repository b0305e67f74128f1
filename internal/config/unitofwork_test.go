// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aliasesOf(t *testing.T, s *Store, unit string) []string {
	t.Helper()
	v, err := s.Setting(UnitSectionKey(unit), AliasesKey)
	require.NoError(t, err)
	return v.([]string)
}

func TestUnitOfWork_CommitPublishes(t *testing.T) {
	s := NewStore(nil)
	uow := Begin(s)
	require.NoError(t, uow.DeleteAliases("second", "secs", "s"))
	require.NoError(t, uow.ReplaceAliases("Second", map[string]string{"sec": "sek"}))

	// Not visible before commit.
	assert.Equal(t, []string{"s", "sec", "secs", "second", "seconds"}, aliasesOf(t, s, "second"))

	require.NoError(t, uow.Commit())
	assert.Equal(t, []string{"sek", "second", "seconds"}, aliasesOf(t, s, "second"))
}

func TestUnitOfWork_Rollback(t *testing.T) {
	s := NewStore(nil)
	uow := Begin(s)
	require.NoError(t, uow.AddAliases("units.Week", "wk"))
	uow.Rollback()

	assert.NotContains(t, aliasesOf(t, s, "week"), "wk")
	assert.ErrorIs(t, uow.Commit(), ErrClosed)
	assert.ErrorIs(t, uow.AddAliases("week", "wk"), ErrClosed)
}

func TestUnitOfWork_DeleteMissingAlias(t *testing.T) {
	s := NewStore(nil)
	uow := Begin(s)
	err := uow.DeleteAliases("minute", "m", "nope")
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "nope")

	minute, _ := uow.Mapping().Get("units.Minute")
	assert.Contains(t, minute.Aliases(), "m", "failed delete must not leave partial edits")
}

func TestUnitOfWork_UnknownUnit(t *testing.T) {
	uow := Begin(NewStore(nil))
	assert.ErrorIs(t, uow.DeleteAliases("fortnight", "fn"), ErrUnknownSection)
	assert.ErrorIs(t, uow.ReplaceAliases("fortnight", map[string]string{"a": "b"}), ErrUnknownSection)
}

func TestUnitOfWork_ReplaceKeepsPosition(t *testing.T) {
	s := NewStore(nil)
	uow := Begin(s)
	require.NoError(t, uow.ReplaceAliases("day", map[string]string{"day": "jour", "missing": "x"}))
	require.NoError(t, uow.Commit())
	assert.Equal(t, []string{"d", "jour", "days"}, aliasesOf(t, s, "day"))
}

func TestUnitOfWork_UpdateConfig(t *testing.T) {
	s := NewStore(nil)
	uow := Begin(s)
	overlay := NewMapping()
	overlay.Set(TenseSection, Section{MultiplierKey: int64(2)})
	require.NoError(t, uow.UpdateConfig(overlay))
	require.NoError(t, uow.Commit())

	v, err := s.Setting(TenseSection, MultiplierKey)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	v, err = s.Setting(TenseSection, VirtualKey)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestUnitOfWork_WorkingCopyIsolatedFromStore(t *testing.T) {
	s := NewStore(nil)
	uow := Begin(s)
	require.NoError(t, s.AddAliases("hour", "hr"))
	require.NoError(t, uow.Commit())
	// Commit replaces wholesale; the concurrent edit is superseded.
	assert.NotContains(t, aliasesOf(t, s, "hour"), "hr")
}
